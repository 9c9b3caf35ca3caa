// Copyright (c) 2026, The OpenRDL Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package model implements the report design element model and command
engine: a mutable, hierarchical document of typed design elements
with scoped property editing, full undo / redo, and consistency
enforcement at every mutation.

A [Document] owns one element tree rooted at a [ReportDesign] or
[Library] element, a per-category [Namespace] of unique names, an
ordered list of included library documents, a command stack, and the
listener registries of the four notification kinds. All mutation goes
through commands: each one validates fully before touching any state,
applies atomically, records its inverse for undo, and broadcasts a
notification after it commits.

Reads that span the document and its included libraries (effective
iteration and name lookup) go through the override resolver, which
merges definitions with host-over-library, earlier-over-later
precedence and never mutates the libraries it reads.

The model is single-threaded cooperative: one writer per document,
no internal locking, synchronous notification delivery.
*/
package model

import (
	"golang.org/x/text/language"

	"openrdl.org/report/command"
	"openrdl.org/report/events"
	"openrdl.org/report/kind"
	"openrdl.org/report/semantic"
)

// Document is one unit of the design model: a primary design or an
// includable library. Both share the same model; only the root kind
// differs.
type Document struct {
	root     *Element
	fileName string

	// Locale is the document's default locale, used by
	// [Document.Message] when no explicit locale is given.
	Locale language.Tag

	namespace *Namespace
	elements  map[uint64]*Element
	lastID    uint64

	// includes holds the included libraries, in inclusion order.
	includes []*Include

	stack        command.Stack
	translations *Translations

	attribute  events.Registry[AttributeListener]
	content    events.Registry[ContentListener]
	dispose    events.Registry[DisposeListener]
	validation events.Registry[ValidationListener]

	errs   []*Diagnostic
	warns  []*Diagnostic
	closed bool
}

// Include is one library inclusion of a host document: the namespace
// prefix the host knows the library by, the shared library document,
// and the load error, if any. A library that failed to load is
// skipped by the override resolver.
type Include struct {
	// Namespace is the inclusion namespace the host refers to the
	// library by, e.g. "lib".
	Namespace string

	// Library is the included document, shared and read-mostly:
	// multiple hosts may include the same library, and no single
	// host's close destroys it.
	Library *Document

	// Err is the library's load error; non-nil marks the inclusion
	// invalid.
	Err error
}

// Valid reports whether the inclusion's library loaded without fatal
// error and participates in effective views.
func (in *Include) Valid() bool {
	return in.Err == nil && in.Library != nil
}

// newDocument returns a new empty document with a root element of
// the given kind.
func newDocument(k *kind.Kind, fileName string) *Document {
	d := &Document{
		fileName:     fileName,
		elements:     map[uint64]*Element{},
		translations: newTranslations(),
	}
	d.namespace = newNamespace(d)
	d.root = NewElement(k, "")
	d.adopt(d.root)
	return d
}

// NewDesign returns a new empty primary design document.
func NewDesign(fileName string) *Document {
	return newDocument(ReportDesign, fileName)
}

// NewLibrary returns a new empty library document.
func NewLibrary(fileName string) *Document {
	return newDocument(Library, fileName)
}

// Root returns the document's root element.
func (d *Document) Root() *Element {
	return d.root
}

// Kind returns the document's root kind ([ReportDesign] or [Library]).
func (d *Document) Kind() *kind.Kind {
	return d.root.kind
}

// IsLibrary reports whether the document is an includable library.
func (d *Document) IsLibrary() bool {
	return d.root.kind == Library
}

// FileName returns the document's file name.
func (d *Document) FileName() string {
	return d.fileName
}

// SetFileName sets the document's file name and broadcasts an
// attribute notification. A file name change is not a command: it
// does not dirty the document and is not undoable.
func (d *Document) SetFileName(name string) {
	if d.closed || d.fileName == name {
		return
	}
	d.fileName = name
	d.broadcastAttribute(d.root, PropFileName)
}

// Namespace returns the document's local namespace registry.
func (d *Document) Namespace() *Namespace {
	return d.namespace
}

// ElementByID returns the element with the given identifier in this
// document, nil if absent. Identifiers are local to a document;
// included libraries are not consulted.
func (d *Document) ElementByID(id uint64) *Element {
	return d.elements[id]
}

// Includes returns the document's library inclusions in inclusion
// order. The returned slice is the document's own backing and must
// not be modified.
func (d *Document) Includes() []*Include {
	return d.includes
}

// adopt attaches the given subtree to this document, generating
// names for required-name elements that lack one. Used by the
// command path: the subtree must already have been validated as
// legal for this document.
func (d *Document) adopt(e *Element) {
	d.attach(e, true)
}

// attach attaches the given subtree: owning-document back-references,
// identifier assignment (first attachment only; an element keeps its
// identifier across undo / redo), and namespace registration of named
// elements. With autoName false (the load path), required-name
// elements missing a name stay unnamed so [Document.CheckReport] and
// [Document.PrepareToSave] can surface them.
func (d *Document) attach(e *Element, autoName bool) {
	e.walk(func(c *Element) {
		c.doc = d
		if c.id == 0 {
			d.lastID++
			c.id = d.lastID
		}
		d.elements[c.id] = c
		if autoName && c.name == "" && c.kind.NameRequired {
			c.name = d.namespace.GenerateUnique(c.kind.Category, c.kind.IDName)
		}
		if c.name != "" && c.kind.Category != "" {
			d.namespace.Register(c.kind.Category, c.name, c) //nolint:errcheck // validated before attach
		}
	})
}

// abandon detaches the given subtree from this document: namespace
// registrations and element-table entries are removed and the
// owning-document links cleared. Names and identifiers stay on the
// elements so an undo restores them intact.
func (d *Document) abandon(e *Element) {
	e.walk(func(c *Element) {
		if c.name != "" && c.kind.Category != "" {
			d.namespace.Unregister(c.kind.Category, c.name)
		}
		delete(d.elements, c.id)
		c.doc = nil
	})
}

// Rename makes a detached subtree's names legal for this document,
// as used when an element is detached and must remain legal, or is
// about to be reattached (possibly coming from another document).
// A required name that is missing or collides in the effective view
// is replaced with a generated unique name; an optional name that
// collides is cleared. The pass recurses into all descendants.
func (d *Document) Rename(e *Element) {
	reserved := map[string]map[string]bool{}
	reserve := func(category, name string) {
		fold := CategoryFold(category)
		if fold != nil {
			name = fold(name)
		}
		if reserved[category] == nil {
			reserved[category] = map[string]bool{}
		}
		reserved[category][name] = true
	}
	taken := func(category, name string) bool {
		if d.Resolve(category, name) != nil {
			return true
		}
		fold := CategoryFold(category)
		if fold != nil {
			name = fold(name)
		}
		return reserved[category][name]
	}
	e.walk(func(c *Element) {
		cat := c.kind.Category
		if cat == "" {
			return
		}
		switch {
		case c.name == "" && !c.kind.NameRequired:
		case c.name != "" && !taken(cat, c.name):
			reserve(cat, c.name)
		case c.kind.NameRequired:
			base := c.name
			if base == "" {
				base = c.kind.IDName
			}
			c.name = d.namespace.generateUnique(cat, base, reserved[cat])
			reserve(cat, c.name)
		default:
			c.name = ""
		}
	})
}

// Undo / redo:

// CanUndo returns whether there is a command to undo.
func (d *Document) CanUndo() bool {
	return d.stack.CanUndo()
}

// CanRedo returns whether there is a command to redo.
func (d *Document) CanRedo() bool {
	return d.stack.CanRedo()
}

// Undo undoes the most recent command, returning whether there was
// one. The corresponding notifications are broadcast again, with the
// inverse effect.
func (d *Document) Undo() bool {
	if d.closed {
		return false
	}
	return d.stack.Undo() != nil
}

// Redo re-applies the most recently undone command, returning
// whether there was one.
func (d *Document) Redo() bool {
	if d.closed {
		return false
	}
	return d.stack.Redo() != nil
}

// Stack returns the document's command stack. Library documents
// referenced read-only by a host do not share the host's stack.
func (d *Document) Stack() *command.Stack {
	return &d.stack
}

// Saving:

// NeedsSave returns whether the document has mutations since the
// last save (or undo back to the save point).
func (d *Document) NeedsSave() bool {
	return d.stack.IsDirty()
}

// PrepareToSave flushes transient state before an external write:
// elements built by the load boundary with required names missing
// get generated names assigned. It does not dirty the document.
func (d *Document) PrepareToSave() {
	d.root.walk(func(c *Element) {
		if c.name == "" && c.kind.NameRequired {
			c.name = d.namespace.GenerateUnique(c.kind.Category, c.kind.IDName)
			d.namespace.Register(c.kind.Category, c.name, c) //nolint:errcheck // generated name is free
		}
	})
}

// OnSave rebases the command stack's clean marker after a successful
// external write, clearing the dirty flag.
func (d *Document) OnSave() {
	d.stack.MarkSaved()
}

// Save runs one save cycle: [Document.PrepareToSave], then the given
// external writer with read access to the document, then
// [Document.OnSave] if the writer succeeded.
func (d *Document) Save(write func(d *Document) error) error {
	if d.closed {
		return semantic.New(semantic.IllegalOperation, "document is closed")
	}
	d.PrepareToSave()
	if err := write(d); err != nil {
		return err
	}
	d.OnSave()
	return nil
}

// Lifecycle:

// Closed reports whether the document has been closed.
func (d *Document) Closed() bool {
	return d.closed
}

// Close closes the document: it broadcasts exactly one terminal
// dispose notification, releases all listener registrations, and
// discards the command history. Subsequent mutations are rejected
// with [semantic.IllegalOperation]. Included libraries are
// referenced, not owned, and are not closed.
func (d *Document) Close() {
	if d.closed {
		return
	}
	d.closed = true
	ev := &DisposeEvent{Document: d}
	d.dispose.Notify(func(l DisposeListener) { l.DocumentDisposed(ev) })
	d.attribute.Clear()
	d.content.Clear()
	d.dispose.Clear()
	d.validation.Clear()
	d.stack.Flush()
}

// Load diagnostics:

// Errors returns the fatal diagnostics recorded while the document
// was loaded. The returned slice is read-only.
func (d *Document) Errors() []*Diagnostic {
	return d.errs
}

// Warnings returns the non-fatal diagnostics recorded while the
// document was loaded. The returned slice is read-only.
func (d *Document) Warnings() []*Diagnostic {
	return d.warns
}

// Intrinsic document properties:

// Author returns the document author.
func (d *Document) Author() string {
	return d.root.StringProperty(PropAuthor)
}

// SetAuthor sets the document author.
func (d *Document) SetAuthor(author string) error {
	return d.SetProperty(d.root, PropAuthor, author)
}

// CreatedBy returns the tool name that created the document.
func (d *Document) CreatedBy() string {
	return d.root.StringProperty(PropCreatedBy)
}

// SetCreatedBy sets the tool name that created the document.
func (d *Document) SetCreatedBy(toolName string) error {
	return d.SetProperty(d.root, PropCreatedBy, toolName)
}

// DefaultUnits returns the document's default measurement units.
func (d *Document) DefaultUnits() string {
	return d.root.StringProperty(PropDefaultUnits)
}

// SetDefaultUnits sets the document's default measurement units
// (one of in, cm, mm, pt).
func (d *Document) SetDefaultUnits(units string) error {
	return d.SetProperty(d.root, PropDefaultUnits, units)
}

// HelpGuide returns the document help guide reference.
func (d *Document) HelpGuide() string {
	return d.root.StringProperty(PropHelpGuide)
}

// SetHelpGuide sets the document help guide reference.
func (d *Document) SetHelpGuide(helpGuide string) error {
	return d.SetProperty(d.root, PropHelpGuide, helpGuide)
}

// Initialize returns the document initialize script.
func (d *Document) Initialize() string {
	return d.root.StringProperty(PropInitialize)
}

// SetInitialize sets the document initialize script.
func (d *Document) SetInitialize(script string) error {
	return d.SetProperty(d.root, PropInitialize, script)
}
