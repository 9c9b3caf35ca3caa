// Copyright (c) 2026, The OpenRDL Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package model

import (
	"log/slog"

	"openrdl.org/report/kind"
	"openrdl.org/report/property"
	"openrdl.org/report/semantic"
)

// Builder is the load boundary: an external parser constructs
// documents through it directly, bypassing command validation, since
// load-time content is assumed to come from a previously valid save.
// Inconsistencies that would be command failures (duplicate names,
// unknown slots) are recovered from and recorded as load
// diagnostics instead. Built content is clean (not dirty) and not
// undoable.
type Builder struct {
	doc *Document
}

// LoadDesign starts building a primary design document.
func LoadDesign(fileName string) *Builder {
	return &Builder{doc: NewDesign(fileName)}
}

// LoadLibrary starts building a library document.
func LoadLibrary(fileName string) *Builder {
	return &Builder{doc: NewLibrary(fileName)}
}

// Document returns the document under construction.
func (b *Builder) Document() *Document {
	return b.doc
}

// AddElement constructs an element of the given kind with the given
// name and appends it to the named slot of the given parent (nil for
// the document root). An unknown or mismatched slot records an error
// diagnostic and returns nil; a duplicate name records a warning and
// gets a generated unique name. A missing required name is kept
// missing, to be surfaced by [Document.CheckReport] and filled in by
// [Document.PrepareToSave].
func (b *Builder) AddElement(parent *Element, slot string, k *kind.Kind, name string) *Element {
	if parent == nil {
		parent = b.doc.root
	}
	s := parent.Slot(slot)
	if s == nil {
		b.Error(semantic.ItemNotFound, "no slot "+slot+" on kind "+parent.kind.Name)
		return nil
	}
	if !s.schema.Permits(k) {
		b.Error(semantic.TypeMismatch, "kind "+k.Name+" not permitted in slot "+slot)
		return nil
	}
	e := NewElement(k, name)
	if name != "" && k.Category != "" && b.doc.namespace.Find(k.Category, name) != nil {
		e.name = b.doc.namespace.GenerateUnique(k.Category, name)
		b.Warning(semantic.NameCollision, "duplicate name "+name+" renamed to "+e.name)
	}
	b.doc.attach(e, false)
	s.children = append(s.children, e)
	e.parent = parent
	return e
}

// SetProperty sets the given property value directly, without
// validation.
func (b *Builder) SetProperty(e *Element, name string, value any) {
	if e == nil {
		slog.Error("model.Builder.SetProperty: nil element", "property", name)
		return
	}
	e.props[name] = value
}

// AddStructure appends an entry with the given member values to the
// given structured-list property. A duplicate name-member value
// records a warning and is skipped, keeping the local list unique.
func (b *Builder) AddStructure(e *Element, prop string, members map[string]any) {
	if e == nil {
		slog.Error("model.Builder.AddStructure: nil element", "property", prop)
		return
	}
	ps := e.kind.Property(prop)
	if ps == nil || ps.Struct == nil {
		b.Error(semantic.ItemNotFound, "no structured-list property "+prop+" on kind "+e.kind.Name)
		return
	}
	s := property.NewStructure(ps.Struct, members)
	if err := e.ensureList(prop).Append(s); err != nil {
		b.Warning(semantic.CodeOf(err), "structure dropped from "+prop+": "+err.Error())
	}
}

// IncludeLibrary appends a library inclusion. A nil library or
// non-nil err marks the inclusion invalid; it is kept for reporting
// but skipped by the override resolver.
func (b *Builder) IncludeLibrary(namespace string, lib *Document, err error) {
	b.doc.includes = append(b.doc.includes, &Include{Namespace: namespace, Library: lib, Err: err})
	if err != nil {
		b.Warning(semantic.ItemNotFound, "library "+namespace+" not loaded: "+err.Error())
	}
}

// AddTranslation adds a text entry directly. A duplicate
// (key, locale) pair records a warning and is skipped.
func (b *Builder) AddTranslation(key, locale, text string) {
	loc, err := canonLocale(locale)
	if err != nil {
		b.Warning(semantic.InvalidValue, "translation "+key+" dropped: "+err.Error())
		return
	}
	if err := b.doc.translations.add(key, loc, text); err != nil {
		b.Warning(semantic.CodeOf(err), "translation "+key+" dropped: "+err.Error())
	}
}

// Error records a fatal load diagnostic.
func (b *Builder) Error(code semantic.Code, message string) {
	b.doc.errs = append(b.doc.errs, &Diagnostic{Severity: Error, Code: code, Message: message})
}

// Warning records a non-fatal load diagnostic.
func (b *Builder) Warning(code semantic.Code, message string) {
	b.doc.warns = append(b.doc.warns, &Diagnostic{Severity: Warning, Code: code, Message: message})
}

// Done finishes loading and returns the document, clean and with an
// empty command history.
func (b *Builder) Done() *Document {
	b.doc.stack.MarkSaved()
	return b.doc
}
