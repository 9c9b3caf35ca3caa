// Copyright (c) 2026, The OpenRDL Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package kind provides a runtime registry of element-kind metadata
// (i.e., a kind registry). Element behavior that varies by kind
// (which properties exist, which children a slot permits, whether a
// name is required) is looked up through this metadata rather than
// fixed code paths, so the tree, namespace, and command layers stay
// generic and the kind set stays extensible.
package kind

import (
	"fmt"
	"log/slog"
	"slices"
	"sync/atomic"

	"openrdl.org/report/property"
)

var (
	// Kinds records all element kinds (i.e., a kind registry).
	// Key is the kind [Kind.Name], e.g. "DataSource".
	Kinds = map[string]*Kind{}

	// kindIDCounter is an atomically incremented uint64 used
	// for assigning new [Kind.ID] numbers.
	kindIDCounter uint64
)

// Kind represents one element kind: the shared metadata consulted
// for every element of that kind.
type Kind struct {
	// Name is the canonical kind name, e.g. "DataSource".
	Name string `yaml:"name"`

	// IDName is the short kebab-case name of the kind, suitable
	// for use in an ID and for generated element names, e.g.
	// "data-source".
	IDName string `yaml:"idName"`

	// Category is the namespace category named elements of this kind
	// register in, e.g. "data-sources". Empty for unnamed kinds.
	Category string `yaml:"category"`

	// NameRequired indicates that every element of this kind must
	// carry a unique name in its category.
	NameRequired bool `yaml:"nameRequired"`

	// Properties declares the property schemas of this kind.
	Properties []*property.Schema `yaml:"properties,omitempty"`

	// Slots declares the ordered containment slots of this kind.
	Slots []*SlotSchema `yaml:"slots,omitempty"`

	// ID is the unique kind ID number.
	ID uint64 `yaml:"-"`
}

func (k *Kind) String() string {
	return k.Name
}

// Property returns the schema of the given property, or nil if the
// kind does not declare it.
func (k *Kind) Property(name string) *property.Schema {
	for _, p := range k.Properties {
		if p.Name == name {
			return p
		}
	}
	return nil
}

// Slot returns the slot schema with the given name, or nil if the
// kind does not declare it.
func (k *Kind) Slot(name string) *SlotSchema {
	for _, s := range k.Slots {
		if s.Name == name {
			return s
		}
	}
	return nil
}

// SlotSchema declares one containment slot of a kind: its name,
// whether child order is significant, and the whitelist of child
// kinds it permits.
type SlotSchema struct {
	// Name is the slot name, e.g. "styles", "pages".
	Name string `yaml:"name"`

	// Ordered indicates that child order is significant. Unordered
	// slots (data sources, styles) still preserve insertion order
	// but impose no meaning on it.
	Ordered bool `yaml:"ordered"`

	// Of is the whitelist of permitted child kind names.
	Of []string `yaml:"of"`
}

// Permits reports whether the slot permits children of the given kind.
func (ss *SlotSchema) Permits(k *Kind) bool {
	return k != nil && slices.Contains(ss.Of, k.Name)
}

// AddKind adds a constructed [Kind] to the registry and returns it.
// This sets the ID. A kind that is already registered is returned
// unchanged.
func AddKind(k *Kind) *Kind {
	if ek, has := Kinds[k.Name]; has {
		slog.Debug("kind.AddKind: kind already exists", "Kind.Name", k.Name)
		return ek
	}
	k.ID = atomic.AddUint64(&kindIDCounter, 1)
	Kinds[k.Name] = k
	return k
}

// KindByName returns a [Kind] by name, or nil if not registered.
func KindByName(name string) *Kind {
	return Kinds[name]
}

// KindByNameTry returns a [Kind] by name, with an error for an
// unregistered name.
func KindByNameTry(name string) (*Kind, error) {
	k, ok := Kinds[name]
	if !ok {
		return nil, fmt.Errorf("kind %q not registered", name)
	}
	return k, nil
}
