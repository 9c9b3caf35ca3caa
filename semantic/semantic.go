// Copyright (c) 2026, The OpenRDL Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package semantic defines the typed errors surfaced by the report
// model: every rejected command and every failed validation check
// reports one of a small set of [Code]s, with enough context to
// identify the offending property, name, or value.
package semantic

import (
	"errors"
	"fmt"
)

// Code identifies the category of a semantic violation.
type Code int32

const (
	// NameCollision indicates a duplicate name within a namespace
	// or structured list.
	NameCollision Code = iota + 1

	// InvalidValue indicates a value that fails a property's
	// type, range, or format constraint.
	InvalidValue

	// ItemNotFound indicates a referenced structure or element
	// that is absent.
	ItemNotFound

	// TypeMismatch indicates an element kind that is not permitted
	// in a containment slot.
	TypeMismatch

	// IndexOutOfRange indicates a slot or list index outside the
	// valid range.
	IndexOutOfRange

	// IllegalOperation indicates a structurally disallowed call,
	// such as mutating a closed document.
	IllegalOperation
)

func (c Code) String() string {
	switch c {
	case NameCollision:
		return "NameCollision"
	case InvalidValue:
		return "InvalidValue"
	case ItemNotFound:
		return "ItemNotFound"
	case TypeMismatch:
		return "TypeMismatch"
	case IndexOutOfRange:
		return "IndexOutOfRange"
	case IllegalOperation:
		return "IllegalOperation"
	}
	return fmt.Sprintf("Code(%d)", int32(c))
}

// Error is a semantic violation. Validation failures never mutate
// state, so an Error from a command means the document is exactly
// as it was before the call.
type Error struct {
	// Code is the violation category.
	Code Code

	// Property is the name of the property involved, if any.
	Property string

	// Name is the element, structure, or namespace name involved, if any.
	Name string

	// Value is the offending value, if any.
	Value any

	// Message is additional free-form context.
	Message string
}

func (e *Error) Error() string {
	s := e.Code.String()
	if e.Property != "" {
		s += " property " + e.Property
	}
	if e.Name != "" {
		s += fmt.Sprintf(" name %q", e.Name)
	}
	if e.Value != nil {
		s += fmt.Sprintf(" value %v", e.Value)
	}
	if e.Message != "" {
		s += ": " + e.Message
	}
	return s
}

// New returns a new [Error] with the given code and message.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Newf returns a new [Error] with the given code and formatted message.
func Newf(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// CodeOf returns the [Code] of the given error if it is (or wraps)
// an [Error], and 0 otherwise.
func CodeOf(err error) Code {
	var se *Error
	if errors.As(err, &se) {
		return se.Code
	}
	return 0
}

// Is reports whether the given error is (or wraps) an [Error]
// with the given code.
func Is(err error, code Code) bool {
	return CodeOf(err) == code
}
