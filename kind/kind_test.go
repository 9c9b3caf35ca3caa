// Copyright (c) 2026, The OpenRDL Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package kind_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"openrdl.org/report/kind"
	"openrdl.org/report/property"
)

func TestAddKind(t *testing.T) {
	k := kind.AddKind(&kind.Kind{
		Name:         "TestWidget",
		IDName:       "test-widget",
		Category:     "widgets",
		NameRequired: true,
		Properties:   []*property.Schema{{Name: "label", Type: property.String}},
		Slots:        []*kind.SlotSchema{{Name: "items", Ordered: true, Of: []string{"TestWidget"}}},
	})
	assert.NotZero(t, k.ID)
	assert.Same(t, k, kind.KindByName("TestWidget"))

	// re-adding returns the registered kind unchanged
	again := kind.AddKind(&kind.Kind{Name: "TestWidget"})
	assert.Same(t, k, again)

	assert.Nil(t, kind.KindByName("NoSuchKind"))
	_, err := kind.KindByNameTry("NoSuchKind")
	assert.Error(t, err)

	assert.NotNil(t, k.Property("label"))
	assert.Nil(t, k.Property("missing"))
	s := k.Slot("items")
	require.NotNil(t, s)
	assert.True(t, s.Permits(k))
	assert.False(t, s.Permits(&kind.Kind{Name: "Other"}))
	assert.False(t, s.Permits(nil))
}

const widgetYAML = `
kinds:
  - name: Chart
    idName: chart
    category: elements
    properties:
      - name: title
        type: string
      - name: legend
        type: choice
        choices: [above, below]
        default: below
      - name: series
        type: struct-list
        struct:
          name: Series
          nameMember: name
          caseSensitive: true
          members:
            - name: name
              type: string
            - name: expr
              type: string
    slots:
      - name: items
        ordered: true
        of: [Chart]
`

func TestFromYAML(t *testing.T) {
	ks, err := kind.FromYAML([]byte(widgetYAML))
	require.NoError(t, err)
	require.Len(t, ks, 1)
	k := ks[0]
	assert.Equal(t, "Chart", k.Name)
	assert.Equal(t, "chart", k.IDName)
	assert.Equal(t, "elements", k.Category)

	legend := k.Property("legend")
	require.NotNil(t, legend)
	assert.Equal(t, property.Choice, legend.Type)
	assert.Equal(t, []string{"above", "below"}, legend.Choices)
	assert.Equal(t, "below", legend.Default)

	series := k.Property("series")
	require.NotNil(t, series)
	assert.Equal(t, property.StructList, series.Type)
	require.NotNil(t, series.Struct)
	assert.Equal(t, "name", series.Struct.NameMember)
	assert.True(t, series.Struct.CaseSensitive)
	require.Len(t, series.Struct.Members, 2)
	assert.Equal(t, property.String, series.Struct.Members[1].Type)

	require.Len(t, k.Slots, 1)
	assert.True(t, k.Slots[0].Ordered)
}

func TestFromYAMLErrors(t *testing.T) {
	_, err := kind.FromYAML([]byte("kinds: [{name: Bad, properties: [{name: p, type: nope}]}]"))
	assert.Error(t, err)

	_, err = kind.FromYAML([]byte("kinds: [{name: Bad, properties: [{name: p, type: struct-list}]}]"))
	assert.Error(t, err)

	_, err = kind.FromYAML([]byte("kinds: [{idName: anon}]"))
	assert.Error(t, err)

	_, err = kind.FromYAML([]byte("not yaml: ["))
	assert.Error(t, err)
}

func TestRegisterYAML(t *testing.T) {
	ks, err := kind.RegisterYAML([]byte("kinds: [{name: RegisteredChart, idName: registered-chart}]"))
	require.NoError(t, err)
	require.Len(t, ks, 1)
	assert.Same(t, ks[0], kind.KindByName("RegisteredChart"))
	assert.NotZero(t, ks[0].ID)
}
