// Copyright (c) 2026, The OpenRDL Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package property_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"openrdl.org/report/property"
	"openrdl.org/report/semantic"
)

func TestSchemaValidate(t *testing.T) {
	tests := []struct {
		schema property.Schema
		value  any
		ok     bool
	}{
		{property.Schema{Name: "author", Type: property.String}, "jane", true},
		{property.Schema{Name: "author", Type: property.String}, 7, false},
		{property.Schema{Name: "count", Type: property.Number}, 2.5, true},
		{property.Schema{Name: "count", Type: property.Number}, 3, true},
		{property.Schema{Name: "count", Type: property.Number}, "3", false},
		{property.Schema{Name: "hidden", Type: property.Bool}, true, true},
		{property.Schema{Name: "hidden", Type: property.Bool}, "true", false},
		{property.Schema{Name: "height", Type: property.Dimension}, "8.5in", true},
		{property.Schema{Name: "height", Type: property.Dimension}, "12pt", true},
		{property.Schema{Name: "height", Type: property.Dimension}, "-2.5cm", true},
		{property.Schema{Name: "height", Type: property.Dimension}, "12", false},
		{property.Schema{Name: "height", Type: property.Dimension}, "in", false},
		{property.Schema{Name: "units", Type: property.Choice, Choices: []string{"in", "cm"}}, "cm", true},
		{property.Schema{Name: "units", Type: property.Choice, Choices: []string{"in", "cm"}}, "furlong", false},
		{property.Schema{Name: "data", Type: property.Bytes}, []byte{1}, true},
		{property.Schema{Name: "data", Type: property.Bytes}, "x", false},
	}
	for _, tt := range tests {
		err := tt.schema.Validate(tt.value)
		if tt.ok {
			assert.NoError(t, err, "%s = %v", tt.schema.Name, tt.value)
		} else {
			assert.True(t, semantic.Is(err, semantic.InvalidValue), "%s = %v", tt.schema.Name, tt.value)
		}
	}
}

var varDef = &property.StructDef{
	Name:          "ConfigVar",
	NameMember:    "name",
	CaseSensitive: true,
	Members: []property.Member{
		{Name: "name", Type: property.String},
		{Name: "value", Type: property.String},
	},
}

func TestStructureValidate(t *testing.T) {
	s := property.NewStructure(varDef, map[string]any{"name": "x", "value": "1"})
	require.NoError(t, s.Validate())
	assert.Equal(t, "x", s.Name())
	assert.Equal(t, "1", s.Member("value"))

	empty := property.NewStructure(varDef, map[string]any{"value": "1"})
	assert.True(t, semantic.Is(empty.Validate(), semantic.InvalidValue))

	unknown := property.NewStructure(varDef, map[string]any{"name": "x", "nope": "1"})
	assert.True(t, semantic.Is(unknown.Validate(), semantic.InvalidValue))

	badType := property.NewStructure(varDef, map[string]any{"name": "x", "value": 3})
	assert.True(t, semantic.Is(badType.Validate(), semantic.InvalidValue))
}

func TestListAppend(t *testing.T) {
	l := property.NewList(varDef)
	require.NoError(t, l.Append(property.NewStructure(varDef, map[string]any{"name": "x", "value": "1"})))
	require.NoError(t, l.Append(property.NewStructure(varDef, map[string]any{"name": "y", "value": "2"})))

	err := l.Append(property.NewStructure(varDef, map[string]any{"name": "x", "value": "9"}))
	assert.True(t, semantic.Is(err, semantic.NameCollision))
	assert.Equal(t, 2, l.Len())
	assert.Equal(t, "1", l.Find("x").Member("value"))

	// case-sensitive definition treats X and x as distinct
	require.NoError(t, l.Append(property.NewStructure(varDef, map[string]any{"name": "X", "value": "3"})))
	assert.Equal(t, 3, l.Len())
}

func TestListCaseInsensitive(t *testing.T) {
	def := &property.StructDef{
		Name:       "CustomColor",
		NameMember: "name",
		Members: []property.Member{
			{Name: "name", Type: property.String},
			{Name: "color", Type: property.String},
		},
	}
	l := property.NewList(def)
	require.NoError(t, l.Append(property.NewStructure(def, map[string]any{"name": "Coral", "color": "#ff7f50"})))
	err := l.Append(property.NewStructure(def, map[string]any{"name": "CORAL", "color": "#000000"}))
	assert.True(t, semantic.Is(err, semantic.NameCollision))
	assert.NotNil(t, l.Find("coral"))
}

func TestListRemoveInsertAt(t *testing.T) {
	l := property.NewList(varDef)
	for _, n := range []string{"a", "b", "c"} {
		require.NoError(t, l.Append(property.NewStructure(varDef, map[string]any{"name": n, "value": n})))
	}
	s, idx, err := l.Remove("b")
	require.NoError(t, err)
	assert.Equal(t, 1, idx)
	assert.Equal(t, 2, l.Len())

	_, _, err = l.Remove("b")
	assert.True(t, semantic.Is(err, semantic.ItemNotFound))

	require.NoError(t, l.InsertAt(idx, s))
	assert.Equal(t, []*property.Structure{l.Find("a"), l.Find("b"), l.Find("c")}, l.Values())
}

func TestListReplace(t *testing.T) {
	l := property.NewList(varDef)
	for _, n := range []string{"a", "b", "c"} {
		require.NoError(t, l.Append(property.NewStructure(varDef, map[string]any{"name": n, "value": n})))
	}

	// same name, new value: position preserved
	old, err := l.Replace("b", property.NewStructure(varDef, map[string]any{"name": "b", "value": "9"}))
	require.NoError(t, err)
	assert.Equal(t, "b", old.Member("value"))
	assert.Equal(t, 1, l.Index("b"))
	assert.Equal(t, "9", l.Find("b").Member("value"))

	// renaming onto an existing entry is a collision
	_, err = l.Replace("b", property.NewStructure(varDef, map[string]any{"name": "c", "value": "1"}))
	assert.True(t, semantic.Is(err, semantic.NameCollision))

	// renaming to a free name keeps the index
	_, err = l.Replace("b", property.NewStructure(varDef, map[string]any{"name": "d", "value": "4"}))
	require.NoError(t, err)
	assert.Equal(t, 1, l.Index("d"))
	assert.Nil(t, l.Find("b"))

	_, err = l.Replace("missing", property.NewStructure(varDef, map[string]any{"name": "e", "value": "5"}))
	assert.True(t, semantic.Is(err, semantic.ItemNotFound))
}
