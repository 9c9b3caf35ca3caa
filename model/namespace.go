// Copyright (c) 2026, The OpenRDL Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package model

import (
	"strconv"

	"openrdl.org/report/base/keylist"
	"openrdl.org/report/semantic"
)

// Namespace is a document's per-category registry of named elements,
// enforcing unique names. Lookups against the local document are
// O(1); lookups spanning included libraries go through
// [Document.Resolve], never through the namespace itself.
type Namespace struct {
	doc        *Document
	categories map[string]*keylist.List[*Element]
}

func newNamespace(doc *Document) *Namespace {
	return &Namespace{doc: doc, categories: map[string]*keylist.List[*Element]{}}
}

// category returns the registry of the given category, creating it
// with the category's declared name fold if absent.
func (ns *Namespace) category(category string) *keylist.List[*Element] {
	c := ns.categories[category]
	if c == nil {
		c = keylist.NewFold[*Element](CategoryFold(category))
		ns.categories[category] = c
	}
	return c
}

// Register registers the given element under the given name, failing
// with [semantic.NameCollision] if the name is taken in the
// category's local namespace.
func (ns *Namespace) Register(category, name string, e *Element) error {
	if err := ns.category(category).Add(name, e); err != nil {
		return &semantic.Error{Code: semantic.NameCollision, Name: name, Message: "in category " + category}
	}
	return nil
}

// Unregister removes the given name from the category's local
// namespace; absent names are a no-op.
func (ns *Namespace) Unregister(category, name string) {
	ns.category(category).DeleteByKey(name)
}

// Find returns the element registered locally under the given name,
// nil if absent. It does not consult included libraries.
func (ns *Namespace) Find(category, name string) *Element {
	return ns.category(category).At(name)
}

// Names returns the locally registered names of the given category
// in registration order.
func (ns *Namespace) Names(category string) []string {
	return ns.category(category).Keys
}

// GenerateUnique returns a name not currently present in the
// category's effective (merged) view, by appending a numeric suffix
// to the base name, scanning upward from 1 until free.
func (ns *Namespace) GenerateUnique(category, base string) string {
	return ns.generateUnique(category, base, nil)
}

// generateUnique is [Namespace.GenerateUnique] that additionally
// avoids the given reserved set of folded names (names claimed
// earlier in a multi-element rename pass).
func (ns *Namespace) generateUnique(category, base string, reserved map[string]bool) string {
	fold := CategoryFold(category)
	free := func(name string) bool {
		if ns.doc.Resolve(category, name) != nil {
			return false
		}
		fn := name
		if fold != nil {
			fn = fold(name)
		}
		return !reserved[fn]
	}
	if base == "" {
		base = "element"
	}
	for i := 1; ; i++ {
		name := base + strconv.Itoa(i)
		if free(name) {
			return name
		}
	}
}
