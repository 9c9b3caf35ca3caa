// Copyright (c) 2026, The OpenRDL Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package model

import (
	"fmt"

	"openrdl.org/report/property"
	"openrdl.org/report/semantic"
)

// Severity is the severity of a [Diagnostic].
type Severity int32

const (
	// Error marks a finding that makes the document invalid.
	Error Severity = iota + 1

	// Warning marks a finding the document tolerates.
	Warning
)

func (s Severity) String() string {
	switch s {
	case Error:
		return "error"
	case Warning:
		return "warning"
	}
	return fmt.Sprintf("Severity(%d)", int32(s))
}

// Diagnostic is one structured finding from loading or from a
// semantic check.
type Diagnostic struct {
	// Severity is the finding severity.
	Severity Severity

	// Code is the violation category.
	Code semantic.Code

	// Element is the element involved, if any.
	Element *Element

	// Property is the property involved, if any.
	Property string

	// Message describes the finding.
	Message string
}

func (dg *Diagnostic) String() string {
	s := dg.Severity.String() + ": " + dg.Code.String()
	if dg.Element != nil {
		s += fmt.Sprintf(" element #%d (%s)", dg.Element.ID(), dg.Element.Kind().IDName)
	}
	if dg.Property != "" {
		s += " property " + dg.Property
	}
	if dg.Message != "" {
		s += ": " + dg.Message
	}
	return s
}

// CheckReport performs a full semantic walk of the document tree:
// required names, property values against their schemas, slot
// contents against their whitelists, and cross-reference integrity
// (data set to data source). All findings are aggregated into one
// result and one Validation notification, rather than one
// notification per issue.
func (d *Document) CheckReport() []*Diagnostic {
	var diags []*Diagnostic
	add := func(dg *Diagnostic) {
		diags = append(diags, dg)
	}
	d.root.walk(func(e *Element) {
		if e.kind.NameRequired && e.name == "" {
			add(&Diagnostic{Severity: Error, Code: semantic.InvalidValue, Element: e,
				Property: PropName, Message: "kind " + e.kind.Name + " requires a name"})
		}
		for name, v := range e.props {
			ps := e.kind.Property(name)
			if ps == nil {
				add(&Diagnostic{Severity: Warning, Code: semantic.ItemNotFound, Element: e,
					Property: name, Message: "not a property of kind " + e.kind.Name})
				continue
			}
			if ps.Type == property.StructList {
				if l, ok := v.(*property.List); ok {
					for _, s := range l.Values() {
						if err := s.Validate(); err != nil {
							add(diagOf(err, e, name))
						}
					}
				}
				continue
			}
			if err := ps.Validate(v); err != nil {
				add(diagOf(err, e, name))
			}
		}
		for _, s := range e.slots {
			for _, c := range s.children {
				if !s.schema.Permits(c.kind) {
					add(&Diagnostic{Severity: Error, Code: semantic.TypeMismatch, Element: c,
						Message: "kind " + c.kind.Name + " not permitted in slot " + s.Name()})
				}
			}
		}
		if e.kind == DataSet {
			if ref := e.StringProperty("data-source"); ref != "" && d.FindDataSource(ref) == nil {
				add(&Diagnostic{Severity: Error, Code: semantic.ItemNotFound, Element: e,
					Property: "data-source", Message: fmt.Sprintf("data source %q not found", ref)})
			}
		}
	})
	for _, in := range d.includes {
		if !in.Valid() {
			add(&Diagnostic{Severity: Warning, Code: semantic.ItemNotFound,
				Message: fmt.Sprintf("library %q not loaded: %v", in.Namespace, in.Err)})
		}
	}
	d.broadcastValidation(diags)
	return diags
}

// diagOf converts a semantic error into a [Diagnostic] on the given
// element.
func diagOf(err error, e *Element, prop string) *Diagnostic {
	dg := &Diagnostic{Severity: Error, Code: semantic.CodeOf(err), Element: e, Property: prop, Message: err.Error()}
	if dg.Code == 0 {
		dg.Code = semantic.InvalidValue
	}
	return dg
}
