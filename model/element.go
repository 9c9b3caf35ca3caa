// Copyright (c) 2026, The OpenRDL Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package model

import (
	"log/slog"

	"github.com/jinzhu/copier"

	"openrdl.org/report/kind"
	"openrdl.org/report/property"
)

// Element is a typed node in the design tree: a kind, an optional
// name, property values, and ordered containment slots holding child
// elements of permitted kinds. An element belongs to at most one
// document at a time; its identifier is assigned on first attachment
// and is stable across undo / redo.
//
// Elements are mutated exclusively through [Document] commands;
// direct field access is read-only.
type Element struct {
	kind   *kind.Kind
	name   string
	id     uint64
	doc    *Document
	parent *Element
	slots  []*Slot
	props  map[string]any
}

// NewElement returns a new unattached element of the given kind with
// the given name (which may be empty). The element has no document
// or identifier until it is inserted into a slot.
func NewElement(k *kind.Kind, name string) *Element {
	e := &Element{kind: k, name: name, props: map[string]any{}}
	e.slots = make([]*Slot, len(k.Slots))
	for i, ss := range k.Slots {
		e.slots[i] = &Slot{schema: ss, owner: e}
	}
	return e
}

// Kind returns the element's kind metadata.
func (e *Element) Kind() *kind.Kind {
	return e.kind
}

// Name returns the element's name, "" if unnamed.
func (e *Element) Name() string {
	return e.name
}

// ID returns the element's identifier, unique within its owning
// document and stable across undo / redo. It is 0 for an element
// that has never been attached.
func (e *Element) ID() uint64 {
	return e.id
}

// Document returns the element's owning document, nil if detached.
func (e *Element) Document() *Document {
	return e.doc
}

// Parent returns the element's parent element, nil for a root or
// detached element.
func (e *Element) Parent() *Element {
	return e.parent
}

// Slot returns the element's slot with the given name, or nil if
// its kind does not declare it.
func (e *Element) Slot(name string) *Slot {
	for _, s := range e.slots {
		if s.schema.Name == name {
			return s
		}
	}
	return nil
}

// Slots returns the element's slots, in schema order. The returned
// slice is the element's own backing and must not be modified.
func (e *Element) Slots() []*Slot {
	return e.slots
}

// Property returns the element's value of the given property, or the
// schema default if unset, or nil if the kind does not declare the
// property. Structured-list properties are returned as a
// [*property.List].
func (e *Element) Property(name string) any {
	if v, ok := e.props[name]; ok {
		return v
	}
	ps := e.kind.Property(name)
	if ps == nil {
		return nil
	}
	return ps.Default
}

// StringProperty returns the value of a string-valued property,
// "" if unset.
func (e *Element) StringProperty(name string) string {
	s, _ := e.Property(name).(string)
	return s
}

// localList returns the element's local structured list for the given
// property, or nil if absent. It never consults included libraries;
// see [Document.EffectiveStructures] for the merged view.
func (e *Element) localList(name string) *property.List {
	l, _ := e.props[name].(*property.List)
	return l
}

// ensureList returns the element's local structured list for the
// given property, creating an empty one if absent.
func (e *Element) ensureList(name string) *property.List {
	if l := e.localList(name); l != nil {
		return l
	}
	ps := e.kind.Property(name)
	l := property.NewList(ps.Struct)
	e.props[name] = l
	return l
}

// walk calls the given function on the element and all of its
// descendants, depth-first, children in slot order.
func (e *Element) walk(fun func(e *Element)) {
	fun(e)
	for _, s := range e.slots {
		for _, c := range s.children {
			c.walk(fun)
		}
	}
}

// Clone returns a deep copy of the element and its subtree, with no
// document, parent, or identifiers. Scalar property values are deep
// copied; structured lists are cloned entry by entry.
func (e *Element) Clone() *Element {
	nc := NewElement(e.kind, e.name)
	for name, v := range e.props {
		if l, ok := v.(*property.List); ok {
			nl := nc.ensureList(name)
			for _, s := range l.Values() {
				if err := nl.Append(s.Clone()); err != nil {
					slog.Error("model.Element.Clone: structure append", "property", name, "err", err)
				}
			}
			continue
		}
		nc.props[name] = cloneValue(name, v)
	}
	for i, s := range e.slots {
		for _, c := range s.children {
			cc := c.Clone()
			cc.parent = nc
			nc.slots[i].children = append(nc.slots[i].children, cc)
		}
	}
	return nc
}

// cloneValue returns a copy of a scalar property value. Byte slices
// are the only mutable scalar values; everything else copies by
// assignment.
func cloneValue(name string, v any) any {
	b, ok := v.([]byte)
	if !ok {
		return v
	}
	var nb []byte
	if err := copier.CopyWithOption(&nb, &b, copier.Option{DeepCopy: true}); err != nil {
		slog.Error("model.Element.Clone: bytes copy", "property", name, "err", err)
		return append([]byte(nil), b...)
	}
	return nb
}

// Slot is an ordered containment relation of one element, holding a
// whitelisted set of child element kinds.
type Slot struct {
	schema   *kind.SlotSchema
	owner    *Element
	children []*Element
}

// Schema returns the slot's declaring schema.
func (s *Slot) Schema() *kind.SlotSchema {
	return s.schema
}

// Name returns the slot name.
func (s *Slot) Name() string {
	return s.schema.Name
}

// Owner returns the element owning this slot.
func (s *Slot) Owner() *Element {
	return s.owner
}

// Len returns the number of children in the slot.
func (s *Slot) Len() int {
	return len(s.children)
}

// Child returns the child at the given index, nil if out of range.
func (s *Slot) Child(i int) *Element {
	if i < 0 || i >= len(s.children) {
		return nil
	}
	return s.children[i]
}

// Children returns the slot's children in order. The returned slice
// is the slot's own backing and must not be modified.
func (s *Slot) Children() []*Element {
	return s.children
}

// Index returns the index of the given child in the slot, -1 if it
// is not a child.
func (s *Slot) Index(e *Element) int {
	for i, c := range s.children {
		if c == e {
			return i
		}
	}
	return -1
}
