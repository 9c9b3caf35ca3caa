// Copyright (c) 2026, The OpenRDL Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package model

// Notification types and listener registration. Four notification
// kinds each have their own registry; listeners are called
// synchronously in registration order after the triggering command
// commits. Registering an already-registered listener is a no-op,
// and removing an unregistered one returns false rather than
// failing. A listener must not mutate the firing document from
// within its callback.

// AttributeEvent reports a changed property value, including
// pseudo-properties such as [PropFileName] and [PropName].
type AttributeEvent struct {
	// Document is the document that changed.
	Document *Document

	// Element is the element whose property changed.
	Element *Element

	// Property is the name of the changed property.
	Property string
}

// AttributeListener receives [AttributeEvent]s.
type AttributeListener interface {
	AttributeChanged(e *AttributeEvent)
}

// ContentAction is the kind of structural change a [ContentEvent]
// reports.
type ContentAction int32

const (
	// Added indicates an element was inserted into a slot.
	Added ContentAction = iota + 1

	// Removed indicates an element was removed from a slot.
	Removed
)

// ContentEvent reports a structural change: a slot insert or remove.
type ContentEvent struct {
	// Document is the document that changed.
	Document *Document

	// Container is the element owning the slot.
	Container *Element

	// Slot is the slot name.
	Slot string

	// Action is what happened.
	Action ContentAction

	// Index is the slot index of the change.
	Index int

	// Element is the inserted or removed element.
	Element *Element
}

// ContentListener receives [ContentEvent]s.
type ContentListener interface {
	ContentChanged(e *ContentEvent)
}

// DisposeEvent reports that a document is closing. It is terminal:
// no further notifications follow from the document.
type DisposeEvent struct {
	// Document is the closing document.
	Document *Document
}

// DisposeListener receives [DisposeEvent]s.
type DisposeListener interface {
	DocumentDisposed(e *DisposeEvent)
}

// ValidationEvent reports the aggregated result of a semantic check
// ([Document.CheckReport]): one event per check, not one per issue.
type ValidationEvent struct {
	// Document is the checked document.
	Document *Document

	// Diagnostics are all findings of the check.
	Diagnostics []*Diagnostic
}

// ValidationListener receives [ValidationEvent]s.
type ValidationListener interface {
	ValidationReported(e *ValidationEvent)
}

// AddAttributeListener registers the given listener, returning false
// if it was already registered.
func (d *Document) AddAttributeListener(l AttributeListener) bool {
	return d.attribute.Add(l)
}

// RemoveAttributeListener unregisters the given listener, returning
// whether it was registered.
func (d *Document) RemoveAttributeListener(l AttributeListener) bool {
	return d.attribute.Remove(l)
}

// AddContentListener registers the given listener, returning false
// if it was already registered.
func (d *Document) AddContentListener(l ContentListener) bool {
	return d.content.Add(l)
}

// RemoveContentListener unregisters the given listener, returning
// whether it was registered.
func (d *Document) RemoveContentListener(l ContentListener) bool {
	return d.content.Remove(l)
}

// AddDisposeListener registers the given listener, returning false
// if it was already registered.
func (d *Document) AddDisposeListener(l DisposeListener) bool {
	return d.dispose.Add(l)
}

// RemoveDisposeListener unregisters the given listener, returning
// whether it was registered.
func (d *Document) RemoveDisposeListener(l DisposeListener) bool {
	return d.dispose.Remove(l)
}

// AddValidationListener registers the given listener, returning
// false if it was already registered.
func (d *Document) AddValidationListener(l ValidationListener) bool {
	return d.validation.Add(l)
}

// RemoveValidationListener unregisters the given listener, returning
// whether it was registered.
func (d *Document) RemoveValidationListener(l ValidationListener) bool {
	return d.validation.Remove(l)
}

func (d *Document) broadcastAttribute(e *Element, prop string) {
	ev := &AttributeEvent{Document: d, Element: e, Property: prop}
	d.attribute.Notify(func(l AttributeListener) { l.AttributeChanged(ev) })
}

func (d *Document) broadcastContent(container *Element, slot string, action ContentAction, index int, e *Element) {
	ev := &ContentEvent{Document: d, Container: container, Slot: slot, Action: action, Index: index, Element: e}
	d.content.Notify(func(l ContentListener) { l.ContentChanged(ev) })
}

func (d *Document) broadcastValidation(diags []*Diagnostic) {
	ev := &ValidationEvent{Document: d, Diagnostics: diags}
	d.validation.Notify(func(l ValidationListener) { l.ValidationReported(ev) })
}
