// Copyright (c) 2026, The OpenRDL Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package property

import (
	"fmt"

	"openrdl.org/report/base/keylist"
	"openrdl.org/report/semantic"
)

// StructDef defines the record shape of entries in a structured-list
// property: the member fields, which member is the identity ("name
// member"), and how that identity is compared. Case sensitivity is a
// declared policy of the definition, never inferred per call site.
type StructDef struct {
	// Name is the record type name, e.g. "ConfigVar".
	Name string `yaml:"name"`

	// NameMember is the member whose value identifies an entry
	// within a list.
	NameMember string `yaml:"nameMember"`

	// CaseSensitive declares whether name-member values are compared
	// exactly (true) or case-folded (false).
	CaseSensitive bool `yaml:"caseSensitive"`

	// Members declares the record's fields. The name member must
	// be among them.
	Members []Member `yaml:"members"`
}

// Member is one field of a [StructDef].
type Member struct {
	// Name is the member field name.
	Name string `yaml:"name"`

	// Type is the member value type. Only scalar types are permitted.
	Type Type `yaml:"-"`
}

// Member returns the member declaration with the given name,
// or nil if there is none.
func (sd *StructDef) Member(name string) *Member {
	for i := range sd.Members {
		if sd.Members[i].Name == name {
			return &sd.Members[i]
		}
	}
	return nil
}

// Fold returns the key fold function implementing the definition's
// declared case sensitivity: nil (exact) when case-sensitive.
func (sd *StructDef) Fold() func(string) string {
	if sd.CaseSensitive {
		return nil
	}
	return keylist.CaseFold
}

// SameName reports whether two name-member values are equal under
// the definition's declared case sensitivity.
func (sd *StructDef) SameName(a, b string) bool {
	if fold := sd.Fold(); fold != nil {
		return fold(a) == fold(b)
	}
	return a == b
}

// Structure is one record value held in a structured-list property.
// Member values are scalars keyed by member name.
type Structure struct {
	// Def is the shared record definition.
	Def *StructDef

	// members holds the member values by member name.
	members map[string]any
}

// NewStructure returns a new [Structure] of the given definition
// with the given member values. Unknown members are not rejected
// here; [Structure.Validate] reports them.
func NewStructure(def *StructDef, members map[string]any) *Structure {
	s := &Structure{Def: def, members: map[string]any{}}
	for k, v := range members {
		s.members[k] = v
	}
	return s
}

// Name returns the structure's identity: the value of its name member.
func (s *Structure) Name() string {
	nm, _ := s.members[s.Def.NameMember].(string)
	return nm
}

// Member returns the value of the given member, or nil if unset.
func (s *Structure) Member(name string) any {
	return s.members[name]
}

// SetMember sets the value of the given member.
func (s *Structure) SetMember(name string, value any) {
	if s.members == nil {
		s.members = map[string]any{}
	}
	s.members[name] = value
}

// Clone returns a copy of the structure sharing the definition.
func (s *Structure) Clone() *Structure {
	return NewStructure(s.Def, s.members)
}

// Validate checks the structure against its definition: the name
// member must be a non-empty string, every set member must be
// declared, and member values must satisfy their member types.
func (s *Structure) Validate() error {
	if s.Def == nil {
		return semantic.New(semantic.InvalidValue, "structure has no definition")
	}
	if s.Name() == "" {
		return &semantic.Error{Code: semantic.InvalidValue, Property: s.Def.Name,
			Message: fmt.Sprintf("member %q must be a non-empty string", s.Def.NameMember)}
	}
	for name, val := range s.members {
		md := s.Def.Member(name)
		if md == nil {
			return &semantic.Error{Code: semantic.InvalidValue, Property: s.Def.Name,
				Message: fmt.Sprintf("unknown member %q", name)}
		}
		ms := Schema{Name: s.Def.Name + "." + name, Type: md.Type}
		if err := ms.Validate(val); err != nil {
			return err
		}
	}
	return nil
}

// List is a structured-list property value: an ordered sequence of
// [Structure]s, unique by name member under the definition's declared
// case sensitivity.
type List struct {
	// Def is the shared record definition of all entries.
	Def *StructDef

	items *keylist.List[*Structure]
}

// NewList returns a new empty [List] of the given definition.
func NewList(def *StructDef) *List {
	return &List{Def: def, items: keylist.NewFold[*Structure](def.Fold())}
}

// Len returns the number of entries.
func (l *List) Len() int {
	if l == nil {
		return 0
	}
	return l.items.Len()
}

// Values returns the entries in document order. The returned slice
// is the list's own backing and must not be modified.
func (l *List) Values() []*Structure {
	if l == nil {
		return nil
	}
	return l.items.Values
}

// Find returns the entry with the given name-member value,
// or nil if there is none.
func (l *List) Find(name string) *Structure {
	if l == nil {
		return nil
	}
	return l.items.At(name)
}

// Index returns the index of the entry with the given name-member
// value, or -1 if there is none.
func (l *List) Index(name string) int {
	if l == nil {
		return -1
	}
	return l.items.IndexByKey(name)
}

// Append validates and appends the given structure, failing with
// [semantic.NameCollision] if an entry with the same (folded) name
// already exists, without modifying the list.
func (l *List) Append(s *Structure) error {
	if err := l.validateEntry(s); err != nil {
		return err
	}
	return l.add(s)
}

// InsertAt validates and inserts the given structure at the given
// index. The index may equal [List.Len] to append.
func (l *List) InsertAt(idx int, s *Structure) error {
	if err := l.validateEntry(s); err != nil {
		return err
	}
	if idx < 0 || idx > l.items.Len() {
		return semantic.Newf(semantic.IndexOutOfRange, "index %d of list length %d", idx, l.items.Len())
	}
	if idx == l.items.Len() {
		return l.add(s)
	}
	if err := l.items.Insert(idx, s.Name(), s); err != nil {
		return &semantic.Error{Code: semantic.NameCollision, Property: l.Def.Name, Name: s.Name()}
	}
	return nil
}

// Remove removes the entry with the given name-member value,
// failing with [semantic.ItemNotFound] if it is absent.
// It returns the removed entry and its prior index.
func (l *List) Remove(name string) (*Structure, int, error) {
	idx := l.Index(name)
	if idx < 0 {
		return nil, -1, &semantic.Error{Code: semantic.ItemNotFound, Property: l.Def.Name, Name: name}
	}
	s := l.items.Values[idx]
	l.items.DeleteByIndex(idx, idx+1)
	return s, idx, nil
}

// Replace validates and substitutes the entry with the given
// name-member value in place, preserving its index. If the new
// structure carries a different name, that name must be free.
// It returns the replaced entry.
func (l *List) Replace(name string, s *Structure) (*Structure, error) {
	if err := l.validateEntry(s); err != nil {
		return nil, err
	}
	idx := l.Index(name)
	if idx < 0 {
		return nil, &semantic.Error{Code: semantic.ItemNotFound, Property: l.Def.Name, Name: name}
	}
	if !l.Def.SameName(name, s.Name()) && l.items.Has(s.Name()) {
		return nil, &semantic.Error{Code: semantic.NameCollision, Property: l.Def.Name, Name: s.Name()}
	}
	old := l.items.Values[idx]
	l.items.RenameIndex(idx, s.Name())
	l.items.Values[idx] = s
	return old, nil
}

func (l *List) validateEntry(s *Structure) error {
	if s == nil {
		return &semantic.Error{Code: semantic.InvalidValue, Property: l.Def.Name, Message: "nil structure"}
	}
	if s.Def != l.Def {
		return &semantic.Error{Code: semantic.TypeMismatch, Property: l.Def.Name,
			Message: fmt.Sprintf("structure is a %s, list holds %s", s.Def.Name, l.Def.Name)}
	}
	return s.Validate()
}

func (l *List) add(s *Structure) error {
	if err := l.items.Add(s.Name(), s); err != nil {
		return &semantic.Error{Code: semantic.NameCollision, Property: l.Def.Name, Name: s.Name()}
	}
	return nil
}
