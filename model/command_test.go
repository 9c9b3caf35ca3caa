// Copyright (c) 2026, The OpenRDL Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"openrdl.org/report/model"
	"openrdl.org/report/semantic"
)

func TestInsertElement(t *testing.T) {
	d := model.NewDesign("r.rptdesign")
	rec := &recorder{}
	rec.listen(d)

	ds := model.NewElement(model.DataSource, "db")
	assert.Equal(t, uint64(0), ds.ID())
	require.NoError(t, d.Append(d.Root(), model.SlotDataSources, ds))

	assert.Equal(t, uint64(2), ds.ID())
	assert.Same(t, d, ds.Document())
	assert.Same(t, d.Root(), ds.Parent())
	assert.Same(t, ds, d.ElementByID(2))
	assert.Same(t, ds, d.FindDataSource("db"))
	assert.True(t, d.NeedsSave())

	require.Len(t, rec.contents, 1)
	ev := rec.contents[0]
	assert.Equal(t, model.Added, ev.Action)
	assert.Equal(t, model.SlotDataSources, ev.Slot)
	assert.Equal(t, 0, ev.Index)
	assert.Same(t, ds, ev.Element)
	assert.Same(t, d.Root(), ev.Container)
}

func TestInsertValidation(t *testing.T) {
	d := model.NewDesign("r.rptdesign")

	// kind not permitted by the slot
	err := d.Append(d.Root(), model.SlotStyles, model.NewElement(model.DataSource, "db"))
	require.Error(t, err)
	assert.Equal(t, semantic.TypeMismatch, semantic.CodeOf(err))
	assert.Equal(t, 0, d.Root().Slot(model.SlotStyles).Len())

	// unknown slot
	err = d.Append(d.Root(), "no-such-slot", model.NewElement(model.Style, "s"))
	require.Error(t, err)
	assert.Equal(t, semantic.ItemNotFound, semantic.CodeOf(err))

	// index out of range
	err = d.Insert(d.Root(), model.SlotPages, 3, model.NewElement(model.MasterPage, "pg"))
	require.Error(t, err)
	assert.Equal(t, semantic.IndexOutOfRange, semantic.CodeOf(err))

	// duplicate name in the effective view
	require.NoError(t, d.Append(d.Root(), model.SlotDataSources, model.NewElement(model.DataSource, "db")))
	err = d.Append(d.Root(), model.SlotDataSources, model.NewElement(model.DataSource, "db"))
	require.Error(t, err)
	assert.Equal(t, semantic.NameCollision, semantic.CodeOf(err))

	// an attached element cannot be inserted again
	err = d.Append(d.Root(), model.SlotDataSources, d.FindDataSource("db"))
	require.Error(t, err)
	assert.Equal(t, semantic.IllegalOperation, semantic.CodeOf(err))
}

func TestInsertAutoName(t *testing.T) {
	d := model.NewDesign("r.rptdesign")
	a := model.NewElement(model.DataSource, "")
	b := model.NewElement(model.DataSource, "")
	require.NoError(t, d.Append(d.Root(), model.SlotDataSources, a))
	require.NoError(t, d.Append(d.Root(), model.SlotDataSources, b))

	assert.Equal(t, "data-source1", a.Name())
	assert.Equal(t, "data-source2", b.Name())
	assert.Same(t, a, d.FindDataSource("data-source1"))

	// grids are optionally named: no auto-name
	g := model.NewElement(model.Grid, "")
	require.NoError(t, d.Append(d.Root(), model.SlotComponents, g))
	assert.Equal(t, "", g.Name())
}

func TestRemoveUndoRestoresIdentity(t *testing.T) {
	d := model.NewDesign("r.rptdesign")
	p1 := model.NewElement(model.MasterPage, "first")
	p2 := model.NewElement(model.MasterPage, "second")
	require.NoError(t, d.Append(d.Root(), model.SlotPages, p1))
	require.NoError(t, d.Append(d.Root(), model.SlotPages, p2))
	id := p1.ID()

	require.NoError(t, d.RemoveAt(d.Root(), model.SlotPages, 0))
	assert.Nil(t, p1.Document())
	assert.Nil(t, d.ElementByID(id))
	assert.Nil(t, d.FindPage("first"))
	assert.Equal(t, "first", p1.Name(), "a detached element keeps its name")
	assert.Equal(t, id, p1.ID(), "a detached element keeps its identifier")
	assert.Same(t, p2, d.Root().Slot(model.SlotPages).Child(0))

	// undo restores position, identifier, and name registration
	require.True(t, d.Undo())
	assert.Same(t, p1, d.Root().Slot(model.SlotPages).Child(0))
	assert.Same(t, p2, d.Root().Slot(model.SlotPages).Child(1))
	assert.Same(t, p1, d.ElementByID(id))
	assert.Same(t, p1, d.FindPage("first"))

	require.True(t, d.Redo())
	assert.Nil(t, d.FindPage("first"))
	assert.Equal(t, 1, d.Root().Slot(model.SlotPages).Len())
}

func TestRemove(t *testing.T) {
	d := model.NewDesign("r.rptdesign")
	s := model.NewElement(model.Style, "title")
	require.NoError(t, d.Append(d.Root(), model.SlotStyles, s))
	require.NoError(t, d.Remove(s))
	assert.Nil(t, d.FindStyle("title"))

	// the root cannot be removed
	err := d.Remove(d.Root())
	require.Error(t, err)
	assert.Equal(t, semantic.IllegalOperation, semantic.CodeOf(err))

	// out-of-range removal
	err = d.RemoveAt(d.Root(), model.SlotStyles, 0)
	require.Error(t, err)
	assert.Equal(t, semantic.IndexOutOfRange, semantic.CodeOf(err))
}

func TestRemoveSubtreeUnregistersDescendants(t *testing.T) {
	d := model.NewDesign("r.rptdesign")
	g := model.NewElement(model.ParameterGroup, "g")
	require.NoError(t, d.Append(d.Root(), model.SlotParameters, g))
	p := model.NewElement(model.Parameter, "p")
	require.NoError(t, d.Append(g, model.SlotParameters, p))

	require.NoError(t, d.Remove(g))
	assert.Nil(t, d.FindParameter("g"))
	assert.Nil(t, d.FindParameter("p"))
	assert.Same(t, g, p.Parent(), "the detached subtree stays intact")

	require.True(t, d.Undo())
	assert.Same(t, p, d.FindParameter("p"))
}

func TestSetName(t *testing.T) {
	d := model.NewDesign("r.rptdesign")
	rec := &recorder{}
	rec.listen(d)
	a := model.NewElement(model.DataSource, "a")
	b := model.NewElement(model.DataSource, "b")
	require.NoError(t, d.Append(d.Root(), model.SlotDataSources, a))
	require.NoError(t, d.Append(d.Root(), model.SlotDataSources, b))

	require.NoError(t, d.SetName(a, "renamed"))
	assert.Equal(t, "renamed", a.Name())
	assert.Nil(t, d.FindDataSource("a"))
	assert.Same(t, a, d.FindDataSource("renamed"))

	// collision with another element
	err := d.SetName(a, "b")
	require.Error(t, err)
	assert.Equal(t, semantic.NameCollision, semantic.CodeOf(err))
	assert.Equal(t, "renamed", a.Name())

	// renaming to the current name is a no-op, not a collision
	require.NoError(t, d.SetName(a, "renamed"))

	// a required name cannot be cleared
	err = d.SetName(a, "")
	require.Error(t, err)
	assert.Equal(t, semantic.InvalidValue, semantic.CodeOf(err))

	require.True(t, d.Undo())
	assert.Equal(t, "a", a.Name())
	assert.Same(t, a, d.FindDataSource("a"))
	assert.Nil(t, d.FindDataSource("renamed"))
}

func TestSetNameCaseInsensitiveStyles(t *testing.T) {
	d := model.NewDesign("r.rptdesign")
	s1 := model.NewElement(model.Style, "Header")
	s2 := model.NewElement(model.Style, "Body")
	require.NoError(t, d.Append(d.Root(), model.SlotStyles, s1))
	require.NoError(t, d.Append(d.Root(), model.SlotStyles, s2))

	// style names collide case-insensitively
	err := d.SetName(s2, "HEADER")
	require.Error(t, err)
	assert.Equal(t, semantic.NameCollision, semantic.CodeOf(err))

	// changing only the case of an element's own name is fine
	require.NoError(t, d.SetName(s1, "HEADER"))
	assert.Equal(t, "HEADER", s1.Name())
	assert.Same(t, s1, d.FindStyle("header"))
}

func TestUnnamedKindSetName(t *testing.T) {
	d := model.NewDesign("r.rptdesign")
	g := model.NewElement(model.Grid, "")
	require.NoError(t, d.Append(d.Root(), model.SlotComponents, g))

	require.NoError(t, d.SetName(g, "layout"))
	assert.Same(t, g, d.FindElement("layout"))

	// optional names can be cleared again
	require.NoError(t, d.SetName(g, ""))
	assert.Nil(t, d.FindElement("layout"))
}

func TestNestedGrids(t *testing.T) {
	d := model.NewDesign("r.rptdesign")
	outer := model.NewElement(model.Grid, "outer")
	require.NoError(t, d.Append(d.Root(), model.SlotComponents, outer))
	inner := model.NewElement(model.Grid, "inner")
	require.NoError(t, d.Append(outer, "items", inner))

	assert.Same(t, outer, inner.Parent())
	assert.Same(t, inner, d.FindElement("inner"))

	require.NoError(t, d.Remove(outer))
	assert.Nil(t, d.FindElement("outer"))
	assert.Nil(t, d.FindElement("inner"))
}

func TestUndoRedoNotify(t *testing.T) {
	d := model.NewDesign("r.rptdesign")
	ds := model.NewElement(model.DataSource, "db")
	require.NoError(t, d.Append(d.Root(), model.SlotDataSources, ds))

	rec := &recorder{}
	rec.listen(d)

	require.True(t, d.Undo())
	require.Len(t, rec.contents, 1)
	assert.Equal(t, model.Removed, rec.contents[0].Action)

	require.True(t, d.Redo())
	require.Len(t, rec.contents, 2)
	assert.Equal(t, model.Added, rec.contents[1].Action)
}

func TestClone(t *testing.T) {
	d := model.NewDesign("r.rptdesign")
	g := model.NewElement(model.ParameterGroup, "g")
	require.NoError(t, d.Append(d.Root(), model.SlotParameters, g))
	p := model.NewElement(model.Parameter, "p")
	require.NoError(t, d.Append(g, model.SlotParameters, p))
	require.NoError(t, d.SetProperty(p, "default-value", "42"))
	require.NoError(t, d.SetProperty(p, "hidden", true))

	c := g.Clone()
	assert.Nil(t, c.Document())
	assert.Nil(t, c.Parent())
	assert.Equal(t, uint64(0), c.ID())
	assert.Equal(t, "g", c.Name())

	cs := c.Slot(model.SlotParameters)
	require.Equal(t, 1, cs.Len())
	cp := cs.Child(0)
	assert.Equal(t, "p", cp.Name())
	assert.Equal(t, uint64(0), cp.ID())
	assert.Same(t, c, cp.Parent())
	assert.Equal(t, "42", cp.StringProperty("default-value"))
	assert.Equal(t, true, cp.Property("hidden"))

	// the clone is independent of the original
	require.NoError(t, d.SetProperty(p, "default-value", "43"))
	assert.Equal(t, "42", cp.StringProperty("default-value"))
}
