// Copyright (c) 2026, The OpenRDL Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package keylist implements an ordered list (slice) of items,
with a map from a key (e.g., names) to indexes,
to support fast lookup by name.

Keys are strings and are folded through a configurable fold
function before indexing, so a list can be case-sensitive
(the default) or case-insensitive about its keys while still
preserving the keys as given.
*/
package keylist

import (
	"fmt"
	"slices"
	"strings"
)

// List implements an ordered list (slice) of Values,
// with a map from a folded key to indexes,
// to support fast lookup by name.
// The zero value is a usable case-sensitive list.
type List[V any] struct {
	// Values is the ordered slice of items.
	Values []V

	// Keys is the ordered list of keys, in same order as [List.Values].
	// Keys keep the casing they were set with regardless of folding.
	Keys []string

	// Fold folds a key before it is indexed and compared.
	// A nil Fold compares keys exactly; use [CaseFold]
	// for case-insensitive keys. It must be set before any
	// items are added and not changed after.
	Fold func(key string) string

	// indexes is the folded-key-to-index mapping.
	indexes map[string]int
}

// New returns a new case-sensitive [List]. The zero value
// is usable without initialization, so this is just a simple
// standard convenience method.
func New[V any]() *List[V] {
	return &List[V]{}
}

// NewFold returns a new [List] that folds keys with the given
// function. [CaseFold] gives case-insensitive keys.
func NewFold[V any](fold func(key string) string) *List[V] {
	return &List[V]{Fold: fold}
}

// CaseFold is a key fold function for case-insensitive lists.
func CaseFold(key string) string {
	return strings.ToLower(key)
}

func (kl *List[V]) fold(key string) string {
	if kl.Fold == nil {
		return key
	}
	return kl.Fold(key)
}

func (kl *List[V]) makeIndexes() {
	kl.indexes = make(map[string]int)
}

// initIndexes ensures that the index map exists.
func (kl *List[V]) initIndexes() {
	if kl.indexes == nil {
		kl.makeIndexes()
	}
}

// Reset resets the list, removing any existing elements.
func (kl *List[V]) Reset() {
	kl.Values = nil
	kl.Keys = nil
	kl.makeIndexes()
}

// Set sets given key to given value, adding to the end of the list
// if not already present, and otherwise replacing with this new value.
// This is the same semantics as a Go map.
// See [List.Add] for version that only adds and does not replace.
func (kl *List[V]) Set(key string, val V) {
	kl.initIndexes()
	fk := kl.fold(key)
	if idx, ok := kl.indexes[fk]; ok {
		kl.Values[idx] = val
		kl.Keys[idx] = key
		return
	}
	kl.indexes[fk] = len(kl.Values)
	kl.Values = append(kl.Values, val)
	kl.Keys = append(kl.Keys, key)
}

// Add adds an item to the list with given key.
// An error is returned if the key is already on the list.
// See [List.Set] for a method that automatically replaces.
func (kl *List[V]) Add(key string, val V) error {
	kl.initIndexes()
	fk := kl.fold(key)
	if _, ok := kl.indexes[fk]; ok {
		return fmt.Errorf("keylist.Add: key %q is already on the list", key)
	}
	kl.indexes[fk] = len(kl.Values)
	kl.Values = append(kl.Values, val)
	kl.Keys = append(kl.Keys, key)
	return nil
}

// Insert inserts the given value with the given key at the given index.
// This is relatively slow because it needs to regenerate the index map.
// An error is returned if the key already exists.
func (kl *List[V]) Insert(idx int, key string, val V) error {
	kl.initIndexes()
	fk := kl.fold(key)
	if _, has := kl.indexes[fk]; has {
		return fmt.Errorf("keylist.Insert: key %q is already on the list", key)
	}
	kl.Keys = slices.Insert(kl.Keys, idx, key)
	kl.Values = slices.Insert(kl.Values, idx, val)
	kl.makeIndexes()
	for i, k := range kl.Keys {
		kl.indexes[kl.fold(k)] = i
	}
	return nil
}

// At returns the value corresponding to the given key,
// with a zero value returned for a missing key. See [List.AtTry]
// for one that returns a bool for missing keys.
// For index-based access, use [List.Values] or [List.Keys] slices directly.
func (kl *List[V]) At(key string) V {
	idx, ok := kl.indexes[kl.fold(key)]
	if ok {
		return kl.Values[idx]
	}
	var zv V
	return zv
}

// AtTry returns the value corresponding to the given key,
// with false returned for a missing key, in case the zero value
// is not diagnostic.
func (kl *List[V]) AtTry(key string) (V, bool) {
	idx, ok := kl.indexes[kl.fold(key)]
	if ok {
		return kl.Values[idx], true
	}
	var zv V
	return zv, false
}

// Has returns whether the given key is on the list.
func (kl *List[V]) Has(key string) bool {
	_, ok := kl.indexes[kl.fold(key)]
	return ok
}

// IndexIsValid returns an error if the given index is invalid.
func (kl *List[V]) IndexIsValid(idx int) error {
	if idx >= len(kl.Values) || idx < 0 {
		return fmt.Errorf("keylist.List: IndexIsValid: index %d is out of range of a list of length %d", idx, len(kl.Values))
	}
	return nil
}

// IndexByKey returns the index of the given key, with a -1 for missing key.
func (kl *List[V]) IndexByKey(key string) int {
	idx, ok := kl.indexes[kl.fold(key)]
	if !ok {
		return -1
	}
	return idx
}

// Len returns the number of items in the list.
func (kl *List[V]) Len() int {
	if kl == nil {
		return 0
	}
	return len(kl.Values)
}

// DeleteByIndex deletes item(s) within the index range [i:j].
// This is relatively slow because it needs to regenerate the
// index map.
func (kl *List[V]) DeleteByIndex(i, j int) {
	ndel := j - i
	if ndel <= 0 {
		panic("index range is <= 0")
	}
	kl.Keys = slices.Delete(kl.Keys, i, j)
	kl.Values = slices.Delete(kl.Values, i, j)
	kl.makeIndexes()
	for i, k := range kl.Keys {
		kl.indexes[kl.fold(k)] = i
	}
}

// DeleteByKey deletes the item with the given key,
// returning false if it does not find it.
// This is relatively slow because it needs to regenerate the
// index map.
func (kl *List[V]) DeleteByKey(key string) bool {
	idx, ok := kl.indexes[kl.fold(key)]
	if !ok {
		return false
	}
	kl.DeleteByIndex(idx, idx+1)
	return true
}

// RenameIndex renames the item at given index to new key.
func (kl *List[V]) RenameIndex(i int, key string) {
	old := kl.Keys[i]
	delete(kl.indexes, kl.fold(old))
	kl.Keys[i] = key
	kl.indexes[kl.fold(key)] = i
}

// Copy copies all of the entries from the given list into this list.
// It keeps existing entries in this list unless they also exist in
// the given list, in which case they are overwritten.
// Use [List.Reset] first to get an exact copy.
func (kl *List[V]) Copy(from *List[V]) {
	for i, v := range from.Values {
		kl.Set(from.Keys[i], v)
	}
}
