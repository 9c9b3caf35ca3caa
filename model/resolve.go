// Copyright (c) 2026, The OpenRDL Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package model

import (
	"openrdl.org/report/property"
)

// The override resolver presents the effective (merged) view of
// definitions that exist both locally and in included libraries.
// Precedence is total and deterministic: the host document masks its
// libraries, an earlier-included library masks a later one, and each
// library's own view is computed recursively the same way, giving a
// depth-first, order-preserving, first-writer-wins merge. Invalid
// libraries (load error) are skipped. The resolver only reads; it
// never mutates the libraries it consults.

// walkEffective calls the given function on the document and all of
// its transitively included valid libraries, in precedence order.
// A visited set guards against inclusion cycles in loaded content.
func (d *Document) walkEffective(fun func(doc *Document)) {
	visited := map[*Document]bool{}
	var walk func(doc *Document)
	walk = func(doc *Document) {
		if visited[doc] {
			return
		}
		visited[doc] = true
		fun(doc)
		for _, in := range doc.includes {
			if in.Valid() {
				walk(in.Library)
			}
		}
	}
	walk(d)
}

// Resolve returns the element with the given name in the given
// category's effective view: the local namespace first, then each
// included library recursively in inclusion order. It returns nil
// if the name is nowhere defined.
func (d *Document) Resolve(category, name string) *Element {
	return d.resolve(category, name, map[*Document]bool{})
}

func (d *Document) resolve(category, name string, visited map[*Document]bool) *Element {
	if visited[d] {
		return nil
	}
	visited[d] = true
	if e := d.namespace.Find(category, name); e != nil {
		return e
	}
	for _, in := range d.includes {
		if !in.Valid() {
			continue
		}
		if e := in.Library.resolve(category, name, visited); e != nil {
			return e
		}
	}
	return nil
}

// EffectiveStructures returns the effective entries of the given
// structured-list property of the document root: exactly one entry
// per distinct name-member value, each the one defined earliest in
// precedence order, in merged document order.
func (d *Document) EffectiveStructures(prop string) []*property.Structure {
	ps := d.root.kind.Property(prop)
	if ps == nil || ps.Struct == nil {
		return nil
	}
	fold := ps.Struct.Fold()
	seen := map[string]bool{}
	var out []*property.Structure
	d.walkEffective(func(doc *Document) {
		for _, s := range doc.root.localList(prop).Values() {
			key := s.Name()
			if fold != nil {
				key = fold(key)
			}
			if seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, s)
		}
	})
	return out
}

// FindStructure returns the effective entry with the given
// name-member value of the given structured-list property, or nil.
func (d *Document) FindStructure(prop, name string) *property.Structure {
	ps := d.root.kind.Property(prop)
	if ps == nil || ps.Struct == nil {
		return nil
	}
	var found *property.Structure
	d.walkEffective(func(doc *Document) {
		if found != nil {
			return
		}
		found = doc.root.localList(prop).Find(name)
	})
	return found
}

// EffectiveElements returns the effective named elements of the
// given category: local elements in registration order, then each
// library's unmasked ones recursively in inclusion order.
func (d *Document) EffectiveElements(category string) []*Element {
	fold := CategoryFold(category)
	seen := map[string]bool{}
	var out []*Element
	d.walkEffective(func(doc *Document) {
		c := doc.namespace.category(category)
		for i, name := range c.Keys {
			key := name
			if fold != nil {
				key = fold(key)
			}
			if seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, c.Values[i])
		}
	})
	return out
}

// Libraries returns all libraries visible to the document: directly
// included ones and their transitive includes, deduplicated, in
// precedence order.
func (d *Document) Libraries() []*Document {
	var out []*Document
	d.walkEffective(func(doc *Document) {
		if doc != d {
			out = append(out, doc)
		}
	})
	return out
}

// Library returns the visible library included under the given
// namespace, searching direct inclusions first and then each
// library's own inclusions, or nil if there is none.
func (d *Document) Library(namespace string) *Document {
	var found *Document
	d.walkEffective(func(doc *Document) {
		if found != nil {
			return
		}
		for _, in := range doc.includes {
			if in.Valid() && in.Namespace == namespace {
				found = in.Library
				return
			}
		}
	})
	return found
}

// Named-element finders over the effective view:

// FindStyle returns the effective style with the given name, nil if
// absent. Style names compare case-insensitively.
func (d *Document) FindStyle(name string) *Element {
	return d.Resolve(CategoryStyles, name)
}

// FindDataSource returns the effective data source with the given
// name, nil if absent.
func (d *Document) FindDataSource(name string) *Element {
	return d.Resolve(CategoryDataSources, name)
}

// FindDataSet returns the effective data set with the given name,
// nil if absent.
func (d *Document) FindDataSet(name string) *Element {
	return d.Resolve(CategoryDataSets, name)
}

// FindPage returns the effective master page with the given name,
// nil if absent.
func (d *Document) FindPage(name string) *Element {
	return d.Resolve(CategoryPages, name)
}

// FindParameter returns the effective parameter (or parameter group)
// with the given name, nil if absent.
func (d *Document) FindParameter(name string) *Element {
	return d.Resolve(CategoryParameters, name)
}

// FindElement returns the effective report item with the given name
// in the general elements category, nil if absent.
func (d *Document) FindElement(name string) *Element {
	return d.Resolve(CategoryElements, name)
}

// AllStyles returns the effective styles visible to the document.
func (d *Document) AllStyles() []*Element {
	return d.EffectiveElements(CategoryStyles)
}

// AllDataSources returns the effective data sources visible to the
// document.
func (d *Document) AllDataSources() []*Element {
	return d.EffectiveElements(CategoryDataSources)
}

// AllDataSets returns the effective data sets visible to the
// document.
func (d *Document) AllDataSets() []*Element {
	return d.EffectiveElements(CategoryDataSets)
}

// AllPages returns the effective master pages visible to the
// document.
func (d *Document) AllPages() []*Element {
	return d.EffectiveElements(CategoryPages)
}

// AllParameters returns the effective parameters and parameter
// groups visible to the document.
func (d *Document) AllParameters() []*Element {
	return d.EffectiveElements(CategoryParameters)
}

// FlattenParameters returns the effective parameters with parameter
// groups flattened into their contained parameters, in effective
// order.
func (d *Document) FlattenParameters() []*Element {
	var out []*Element
	for _, e := range d.AllParameters() {
		// grouped parameters are emitted through their group
		if e.parent != nil && e.parent.kind == ParameterGroup {
			continue
		}
		if e.kind != ParameterGroup {
			out = append(out, e)
			continue
		}
		if s := e.Slot(SlotParameters); s != nil {
			out = append(out, s.children...)
		}
	}
	return out
}
