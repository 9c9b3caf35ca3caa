// Copyright (c) 2026, The OpenRDL Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package property implements the typed property model of the report
// design system: scalar values (string, number, bool, dimension,
// enumerated choice) and structured-list properties holding ordered,
// uniquely named record values. Element kinds declare per-property
// [Schema]s that the tree and command layers consult generically.
package property

import (
	"fmt"
	"regexp"
	"slices"

	"openrdl.org/report/semantic"
)

// Type is the value type of a property.
type Type int32

const (
	// String is a free-form string value.
	String Type = iota + 1

	// Number is a float64 value.
	Number

	// Bool is a boolean value.
	Bool

	// Dimension is a measure with a unit suffix, e.g. "8.5in", "12pt".
	Dimension

	// Choice is a string restricted to a declared set of options.
	Choice

	// Bytes is a raw binary value (e.g., embedded image data).
	Bytes

	// StructList is an ordered list of [Structure] values, unique
	// by their name member.
	StructList
)

func (t Type) String() string {
	switch t {
	case String:
		return "string"
	case Number:
		return "number"
	case Bool:
		return "bool"
	case Dimension:
		return "dimension"
	case Choice:
		return "choice"
	case Bytes:
		return "bytes"
	case StructList:
		return "struct-list"
	}
	return fmt.Sprintf("Type(%d)", int32(t))
}

// dimensionRegexp matches a decimal number followed by a unit.
var dimensionRegexp = regexp.MustCompile(`^-?[0-9]+(\.[0-9]+)?(in|cm|mm|pt|pc|px|em|ex|%)$`)

// Schema declares one property of an element kind: its name, value
// type, and constraints. Schemas are metadata shared by all elements
// of a kind; they never hold values.
type Schema struct {
	// Name is the property name, e.g. "author", "config-vars".
	Name string `yaml:"name"`

	// Type is the value type.
	Type Type `yaml:"-"`

	// Choices is the set of permitted values for [Choice] properties.
	Choices []string `yaml:"choices,omitempty"`

	// Default is the default value, returned when the property is unset.
	Default any `yaml:"default,omitempty"`

	// Struct defines the record shape for [StructList] properties.
	Struct *StructDef `yaml:"struct,omitempty"`
}

// Validate checks the given value against the schema, returning a
// [semantic.InvalidValue] error if it fails. StructList properties
// are not settable as whole values; their entries are validated
// individually via [Structure.Validate].
func (s *Schema) Validate(value any) error {
	fail := func(msg string) error {
		return &semantic.Error{Code: semantic.InvalidValue, Property: s.Name, Value: value, Message: msg}
	}
	switch s.Type {
	case String:
		if _, ok := value.(string); !ok {
			return fail("expected string")
		}
	case Number:
		switch value.(type) {
		case float64, int:
		default:
			return fail("expected number")
		}
	case Bool:
		if _, ok := value.(bool); !ok {
			return fail("expected bool")
		}
	case Dimension:
		dv, ok := value.(string)
		if !ok || !dimensionRegexp.MatchString(dv) {
			return fail("expected dimension such as 8.5in or 12pt")
		}
	case Choice:
		cv, ok := value.(string)
		if !ok {
			return fail("expected choice string")
		}
		if !slices.Contains(s.Choices, cv) {
			return fail(fmt.Sprintf("not one of %v", s.Choices))
		}
	case Bytes:
		if _, ok := value.([]byte); !ok {
			return fail("expected bytes")
		}
	case StructList:
		return fail("structured-list properties are mutated per entry, not set as a whole")
	default:
		return fail("unknown property type")
	}
	return nil
}
