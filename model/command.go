// Copyright (c) 2026, The OpenRDL Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package model

import (
	"log/slog"
	"slices"

	"openrdl.org/report/command"
	"openrdl.org/report/property"
	"openrdl.org/report/semantic"
)

// Every mutation of a document is one of the docCommand types below.
// The engine runs them through [Document.do]: validation happens
// strictly before any state change, so a rejected command leaves the
// document bit-identical; Apply and Undo are exact inverses and end
// by broadcasting the corresponding notification, so undo and redo
// notify observers just like the original mutation did.

// docCommand is a validated, reversible mutation of one document.
type docCommand interface {
	command.Command
	validate() error
}

// do validates and commits the given command. Validation failures
// surface to the caller and never mutate state.
func (d *Document) do(c docCommand) error {
	if d.closed {
		return semantic.New(semantic.IllegalOperation, "document is closed")
	}
	if err := c.validate(); err != nil {
		return err
	}
	d.stack.Do(c)
	return nil
}

// owns returns an error unless the given element is attached to this
// document.
func (d *Document) owns(e *Element) error {
	if e == nil || e.doc != d {
		return semantic.New(semantic.IllegalOperation, "element does not belong to this document")
	}
	return nil
}

// setProperty:

type setPropertyCmd struct {
	d      *Document
	el     *Element
	name   string
	value  any
	old    any
	hadOld bool
}

// SetProperty sets the given scalar property of the given element,
// validating the value against the kind's schema.
func (d *Document) SetProperty(e *Element, name string, value any) error {
	return d.do(&setPropertyCmd{d: d, el: e, name: name, value: value})
}

func (c *setPropertyCmd) Label() string { return "set " + c.name }

func (c *setPropertyCmd) validate() error {
	if err := c.d.owns(c.el); err != nil {
		return err
	}
	ps := c.el.kind.Property(c.name)
	if ps == nil {
		return &semantic.Error{Code: semantic.ItemNotFound, Property: c.name,
			Message: "not a property of kind " + c.el.kind.Name}
	}
	if err := ps.Validate(c.value); err != nil {
		return err
	}
	c.old, c.hadOld = c.el.props[c.name]
	return nil
}

func (c *setPropertyCmd) Apply() {
	c.el.props[c.name] = c.value
	c.d.broadcastAttribute(c.el, c.name)
}

func (c *setPropertyCmd) Undo() {
	if c.hadOld {
		c.el.props[c.name] = c.old
	} else {
		delete(c.el.props, c.name)
	}
	c.d.broadcastAttribute(c.el, c.name)
}

// addStructure:

type addStructureCmd struct {
	d    *Document
	el   *Element
	prop string
	s    *property.Structure
}

func (c *addStructureCmd) Label() string { return "add " + c.s.Def.Name }

func (c *addStructureCmd) validate() error {
	if err := c.d.owns(c.el); err != nil {
		return err
	}
	ps, err := structListSchema(c.el, c.prop)
	if err != nil {
		return err
	}
	if c.s == nil {
		return &semantic.Error{Code: semantic.InvalidValue, Property: c.prop, Message: "nil structure"}
	}
	if c.s.Def != ps.Struct {
		return &semantic.Error{Code: semantic.TypeMismatch, Property: c.prop,
			Message: "structure is a " + c.s.Def.Name + ", property holds " + ps.Struct.Name}
	}
	if err := c.s.Validate(); err != nil {
		return err
	}
	if l := c.el.localList(c.prop); l != nil && l.Find(c.s.Name()) != nil {
		return &semantic.Error{Code: semantic.NameCollision, Property: c.prop, Name: c.s.Name()}
	}
	return nil
}

func (c *addStructureCmd) Apply() {
	if err := c.el.ensureList(c.prop).Append(c.s); err != nil {
		slog.Error("model.addStructureCmd: append after validation", "property", c.prop, "err", err)
	}
	c.d.broadcastAttribute(c.el, c.prop)
}

func (c *addStructureCmd) Undo() {
	c.el.localList(c.prop).Remove(c.s.Name()) //nolint:errcheck // present by construction
	c.d.broadcastAttribute(c.el, c.prop)
}

// dropStructure:

type dropStructureCmd struct {
	d       *Document
	el      *Element
	prop    string
	name    string
	removed *property.Structure
	idx     int
}

func (c *dropStructureCmd) Label() string { return "drop " + c.name }

func (c *dropStructureCmd) validate() error {
	if err := c.d.owns(c.el); err != nil {
		return err
	}
	if _, err := structListSchema(c.el, c.prop); err != nil {
		return err
	}
	if c.el.localList(c.prop).Find(c.name) == nil {
		return &semantic.Error{Code: semantic.ItemNotFound, Property: c.prop, Name: c.name}
	}
	return nil
}

func (c *dropStructureCmd) Apply() {
	c.removed, c.idx, _ = c.el.localList(c.prop).Remove(c.name)
	c.d.broadcastAttribute(c.el, c.prop)
}

func (c *dropStructureCmd) Undo() {
	if err := c.el.localList(c.prop).InsertAt(c.idx, c.removed); err != nil {
		slog.Error("model.dropStructureCmd: undo insert", "property", c.prop, "err", err)
	}
	c.d.broadcastAttribute(c.el, c.prop)
}

// dropStructures removes several entries as one atomic command with
// one combined notification.

type dropStructuresCmd struct {
	d       *Document
	el      *Element
	prop    string
	names   []string
	removed []*property.Structure
	idxs    []int
}

func (c *dropStructuresCmd) Label() string { return "drop " + c.prop }

func (c *dropStructuresCmd) validate() error {
	if err := c.d.owns(c.el); err != nil {
		return err
	}
	ps, err := structListSchema(c.el, c.prop)
	if err != nil {
		return err
	}
	if len(c.names) == 0 {
		return &semantic.Error{Code: semantic.InvalidValue, Property: c.prop, Message: "no names given"}
	}
	l := c.el.localList(c.prop)
	seen := map[string]bool{}
	for _, name := range c.names {
		if l.Find(name) == nil {
			return &semantic.Error{Code: semantic.ItemNotFound, Property: c.prop, Name: name}
		}
		fn := name
		if fold := ps.Struct.Fold(); fold != nil {
			fn = fold(name)
		}
		if seen[fn] {
			return &semantic.Error{Code: semantic.InvalidValue, Property: c.prop, Name: name,
				Message: "listed twice"}
		}
		seen[fn] = true
	}
	return nil
}

func (c *dropStructuresCmd) Apply() {
	l := c.el.localList(c.prop)
	c.removed = c.removed[:0]
	c.idxs = c.idxs[:0]
	for _, name := range c.names {
		s, idx, _ := l.Remove(name)
		c.removed = append(c.removed, s)
		c.idxs = append(c.idxs, idx)
	}
	c.d.broadcastAttribute(c.el, c.prop)
}

func (c *dropStructuresCmd) Undo() {
	l := c.el.localList(c.prop)
	for i := len(c.removed) - 1; i >= 0; i-- {
		if err := l.InsertAt(c.idxs[i], c.removed[i]); err != nil {
			slog.Error("model.dropStructuresCmd: undo insert", "property", c.prop, "err", err)
		}
	}
	c.d.broadcastAttribute(c.el, c.prop)
}

// replaceStructure:

type replaceStructureCmd struct {
	d       *Document
	el      *Element
	prop    string
	oldName string
	s       *property.Structure
	old     *property.Structure
}

func (c *replaceStructureCmd) Label() string { return "replace " + c.oldName }

func (c *replaceStructureCmd) validate() error {
	if err := c.d.owns(c.el); err != nil {
		return err
	}
	ps, err := structListSchema(c.el, c.prop)
	if err != nil {
		return err
	}
	l := c.el.localList(c.prop)
	if l.Find(c.oldName) == nil {
		return &semantic.Error{Code: semantic.ItemNotFound, Property: c.prop, Name: c.oldName}
	}
	if c.s == nil {
		return &semantic.Error{Code: semantic.InvalidValue, Property: c.prop, Message: "nil structure"}
	}
	if c.s.Def != ps.Struct {
		return &semantic.Error{Code: semantic.TypeMismatch, Property: c.prop,
			Message: "structure is a " + c.s.Def.Name + ", property holds " + ps.Struct.Name}
	}
	if err := c.s.Validate(); err != nil {
		return err
	}
	if !ps.Struct.SameName(c.oldName, c.s.Name()) && l.Find(c.s.Name()) != nil {
		return &semantic.Error{Code: semantic.NameCollision, Property: c.prop, Name: c.s.Name()}
	}
	return nil
}

func (c *replaceStructureCmd) Apply() {
	var err error
	c.old, err = c.el.localList(c.prop).Replace(c.oldName, c.s)
	if err != nil {
		slog.Error("model.replaceStructureCmd: replace after validation", "property", c.prop, "err", err)
	}
	c.d.broadcastAttribute(c.el, c.prop)
}

func (c *replaceStructureCmd) Undo() {
	if _, err := c.el.localList(c.prop).Replace(c.s.Name(), c.old); err != nil {
		slog.Error("model.replaceStructureCmd: undo replace", "property", c.prop, "err", err)
	}
	c.d.broadcastAttribute(c.el, c.prop)
}

// structListSchema returns the structured-list schema of the given
// property of the given element, or an error if the property is
// absent or not a structured list.
func structListSchema(e *Element, prop string) (*property.Schema, error) {
	ps := e.kind.Property(prop)
	if ps == nil {
		return nil, &semantic.Error{Code: semantic.ItemNotFound, Property: prop,
			Message: "not a property of kind " + e.kind.Name}
	}
	if ps.Type != property.StructList {
		return nil, &semantic.Error{Code: semantic.InvalidValue, Property: prop,
			Message: "not a structured-list property"}
	}
	return ps, nil
}

// insertElement:

type insertElementCmd struct {
	d    *Document
	slot *Slot
	idx  int
	el   *Element
}

// Insert inserts the given detached element into the named slot of
// the given parent at the given index; -1 appends. The element's
// kind must be permitted by the slot and every name in its subtree
// must be free in the effective view.
func (d *Document) Insert(parent *Element, slot string, idx int, e *Element) error {
	if err := d.owns(parent); err != nil {
		return err
	}
	s := parent.Slot(slot)
	if s == nil {
		return &semantic.Error{Code: semantic.ItemNotFound, Name: slot,
			Message: "no such slot on kind " + parent.kind.Name}
	}
	if idx == -1 {
		idx = s.Len()
	}
	return d.do(&insertElementCmd{d: d, slot: s, idx: idx, el: e})
}

// Append inserts the given element at the end of the named slot of
// the given parent.
func (d *Document) Append(parent *Element, slot string, e *Element) error {
	return d.Insert(parent, slot, -1, e)
}

func (c *insertElementCmd) Label() string { return "insert " + c.el.kind.IDName }

func (c *insertElementCmd) validate() error {
	if c.el == nil {
		return semantic.New(semantic.InvalidValue, "nil element")
	}
	if c.el.doc != nil {
		return semantic.New(semantic.IllegalOperation, "element is already attached; remove it first")
	}
	if !c.slot.schema.Permits(c.el.kind) {
		return &semantic.Error{Code: semantic.TypeMismatch, Name: c.el.kind.Name,
			Message: "not permitted in slot " + c.slot.Name()}
	}
	if c.idx < 0 || c.idx > c.slot.Len() {
		return semantic.Newf(semantic.IndexOutOfRange, "index %d of slot length %d", c.idx, c.slot.Len())
	}
	// every name in the inserted subtree must be free in the
	// effective view and unique within the subtree itself
	var nameErr error
	seen := map[string]map[string]bool{}
	c.el.walk(func(e *Element) {
		if nameErr != nil || e.name == "" || e.kind.Category == "" {
			return
		}
		cat, name := e.kind.Category, e.name
		if fold := CategoryFold(cat); fold != nil {
			name = fold(name)
		}
		if c.d.Resolve(cat, e.name) != nil || seen[cat][name] {
			nameErr = &semantic.Error{Code: semantic.NameCollision, Name: e.name,
				Message: "in category " + cat}
			return
		}
		if seen[cat] == nil {
			seen[cat] = map[string]bool{}
		}
		seen[cat][name] = true
	})
	return nameErr
}

func (c *insertElementCmd) Apply() {
	c.d.adopt(c.el)
	c.slot.children = slices.Insert(c.slot.children, c.idx, c.el)
	c.el.parent = c.slot.owner
	c.d.broadcastContent(c.slot.owner, c.slot.Name(), Added, c.idx, c.el)
}

func (c *insertElementCmd) Undo() {
	c.slot.children = slices.Delete(c.slot.children, c.idx, c.idx+1)
	c.el.parent = nil
	c.d.abandon(c.el)
	c.d.broadcastContent(c.slot.owner, c.slot.Name(), Removed, c.idx, c.el)
}

// removeElement:

type removeElementCmd struct {
	d    *Document
	slot *Slot
	idx  int
	el   *Element
}

// RemoveAt removes the element at the given index of the named slot
// of the given parent. The removed subtree keeps its names and
// identifiers, so an undo restores it intact.
func (d *Document) RemoveAt(parent *Element, slot string, idx int) error {
	if err := d.owns(parent); err != nil {
		return err
	}
	s := parent.Slot(slot)
	if s == nil {
		return &semantic.Error{Code: semantic.ItemNotFound, Name: slot,
			Message: "no such slot on kind " + parent.kind.Name}
	}
	return d.do(&removeElementCmd{d: d, slot: s, idx: idx})
}

// Remove removes the given element from its parent's slot. Removing
// the document root is illegal.
func (d *Document) Remove(e *Element) error {
	if err := d.owns(e); err != nil {
		return err
	}
	if e == d.root {
		return semantic.New(semantic.IllegalOperation, "cannot remove the document root")
	}
	for _, s := range e.parent.slots {
		if idx := s.Index(e); idx >= 0 {
			return d.do(&removeElementCmd{d: d, slot: s, idx: idx})
		}
	}
	return semantic.New(semantic.ItemNotFound, "element not found in any slot of its parent")
}

func (c *removeElementCmd) Label() string { return "remove element" }

func (c *removeElementCmd) validate() error {
	if c.idx < 0 || c.idx >= c.slot.Len() {
		return semantic.Newf(semantic.IndexOutOfRange, "index %d of slot length %d", c.idx, c.slot.Len())
	}
	c.el = c.slot.children[c.idx]
	return nil
}

func (c *removeElementCmd) Apply() {
	c.slot.children = slices.Delete(c.slot.children, c.idx, c.idx+1)
	c.el.parent = nil
	c.d.abandon(c.el)
	c.d.broadcastContent(c.slot.owner, c.slot.Name(), Removed, c.idx, c.el)
}

func (c *removeElementCmd) Undo() {
	// exact inverse: no name generation, the subtree kept its names
	c.d.attach(c.el, false)
	c.slot.children = slices.Insert(c.slot.children, c.idx, c.el)
	c.el.parent = c.slot.owner
	c.d.broadcastContent(c.slot.owner, c.slot.Name(), Added, c.idx, c.el)
}

// renameElement:

type renameElementCmd struct {
	d    *Document
	el   *Element
	name string
	old  string
}

// SetName renames the given element, enforcing uniqueness in its
// category's effective view. Setting the empty name is permitted
// only for kinds that do not require one.
func (d *Document) SetName(e *Element, name string) error {
	if err := d.owns(e); err != nil {
		return err
	}
	if e.name == name {
		return nil
	}
	return d.do(&renameElementCmd{d: d, el: e, name: name, old: e.name})
}

func (c *renameElementCmd) Label() string { return "rename to " + c.name }

func (c *renameElementCmd) validate() error {
	cat := c.el.kind.Category
	if cat == "" {
		return semantic.New(semantic.IllegalOperation, "kind "+c.el.kind.Name+" is unnamed")
	}
	if c.name == "" {
		if c.el.kind.NameRequired {
			return &semantic.Error{Code: semantic.InvalidValue, Property: PropName,
				Message: "kind " + c.el.kind.Name + " requires a name"}
		}
		return nil
	}
	if ex := c.d.Resolve(cat, c.name); ex != nil && ex != c.el {
		return &semantic.Error{Code: semantic.NameCollision, Name: c.name, Message: "in category " + cat}
	}
	return nil
}

func (c *renameElementCmd) Apply() {
	c.rename(c.old, c.name)
}

func (c *renameElementCmd) Undo() {
	c.rename(c.name, c.old)
}

func (c *renameElementCmd) rename(from, to string) {
	cat := c.el.kind.Category
	if from != "" {
		c.d.namespace.Unregister(cat, from)
	}
	c.el.name = to
	if to != "" {
		c.d.namespace.Register(cat, to, c.el) //nolint:errcheck // validated
	}
	c.d.broadcastAttribute(c.el, PropName)
}

// Library inclusion commands:

type includeLibraryCmd struct {
	d   *Document
	inc *Include
}

// IncludeLibrary appends the given library to the document's
// inclusion list under the given namespace. The library is shared,
// not owned.
func (d *Document) IncludeLibrary(namespace string, lib *Document) error {
	return d.do(&includeLibraryCmd{d: d, inc: &Include{Namespace: namespace, Library: lib}})
}

func (c *includeLibraryCmd) Label() string { return "include library " + c.inc.Namespace }

func (c *includeLibraryCmd) validate() error {
	lib := c.inc.Library
	if lib == nil || !lib.IsLibrary() {
		return semantic.New(semantic.InvalidValue, "not a library document")
	}
	if lib == c.d {
		return semantic.New(semantic.IllegalOperation, "document cannot include itself")
	}
	if c.inc.Namespace == "" {
		return semantic.New(semantic.InvalidValue, "empty inclusion namespace")
	}
	for _, in := range c.d.includes {
		if in.Namespace == c.inc.Namespace {
			return &semantic.Error{Code: semantic.NameCollision, Name: c.inc.Namespace,
				Message: "inclusion namespace already used"}
		}
		if in.Library == lib {
			return semantic.New(semantic.IllegalOperation, "library is already included")
		}
	}
	// reject inclusion cycles through the library's own includes
	cycle := false
	lib.walkEffective(func(doc *Document) {
		if doc == c.d {
			cycle = true
		}
	})
	if cycle {
		return semantic.New(semantic.IllegalOperation, "inclusion cycle")
	}
	return nil
}

func (c *includeLibraryCmd) Apply() {
	c.d.includes = append(c.d.includes, c.inc)
	c.d.broadcastAttribute(c.d.root, PropLibraries)
}

func (c *includeLibraryCmd) Undo() {
	c.d.includes = c.d.includes[:len(c.d.includes)-1]
	c.d.broadcastAttribute(c.d.root, PropLibraries)
}

type dropLibraryCmd struct {
	d   *Document
	lib *Document
	inc *Include
	idx int
}

// DropLibrary removes the given library from the document's
// inclusion list.
func (d *Document) DropLibrary(lib *Document) error {
	return d.do(&dropLibraryCmd{d: d, lib: lib})
}

func (c *dropLibraryCmd) Label() string { return "drop library" }

func (c *dropLibraryCmd) validate() error {
	for i, in := range c.d.includes {
		if in.Library == c.lib {
			c.inc, c.idx = in, i
			return nil
		}
	}
	return semantic.New(semantic.ItemNotFound, "library is not included")
}

func (c *dropLibraryCmd) Apply() {
	c.d.includes = slices.Delete(c.d.includes, c.idx, c.idx+1)
	c.d.broadcastAttribute(c.d.root, PropLibraries)
}

func (c *dropLibraryCmd) Undo() {
	c.d.includes = slices.Insert(c.d.includes, c.idx, c.inc)
	c.d.broadcastAttribute(c.d.root, PropLibraries)
}

type shiftLibraryCmd struct {
	d        *Document
	lib      *Document
	from, to int
}

// ShiftLibrary moves the given included library to the given
// position in the inclusion order, changing override precedence
// among libraries.
func (d *Document) ShiftLibrary(lib *Document, to int) error {
	return d.do(&shiftLibraryCmd{d: d, lib: lib, to: to})
}

func (c *shiftLibraryCmd) Label() string { return "shift library" }

func (c *shiftLibraryCmd) validate() error {
	c.from = -1
	for i, in := range c.d.includes {
		if in.Library == c.lib {
			c.from = i
			break
		}
	}
	if c.from < 0 {
		return semantic.New(semantic.ItemNotFound, "library is not included")
	}
	if c.to < 0 || c.to >= len(c.d.includes) {
		return semantic.Newf(semantic.IndexOutOfRange, "position %d of %d libraries", c.to, len(c.d.includes))
	}
	return nil
}

func (c *shiftLibraryCmd) Apply() {
	c.d.moveInclude(c.from, c.to)
}

func (c *shiftLibraryCmd) Undo() {
	c.d.moveInclude(c.to, c.from)
}

func (d *Document) moveInclude(from, to int) {
	in := d.includes[from]
	d.includes = slices.Delete(d.includes, from, from+1)
	d.includes = slices.Insert(d.includes, to, in)
	d.broadcastAttribute(d.root, PropLibraries)
}
