// Copyright (c) 2026, The OpenRDL Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package model_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"openrdl.org/report/model"
	"openrdl.org/report/semantic"
)

func TestCheckReportClean(t *testing.T) {
	d := model.NewDesign("r.rptdesign")
	ds := model.NewElement(model.DataSource, "db")
	require.NoError(t, d.Append(d.Root(), model.SlotDataSources, ds))
	set := model.NewElement(model.DataSet, "orders")
	require.NoError(t, d.Append(d.Root(), model.SlotDataSets, set))
	require.NoError(t, d.SetProperty(set, "data-source", "db"))

	rec := &recorder{}
	rec.listen(d)
	diags := d.CheckReport()
	assert.Empty(t, diags)

	// one aggregated notification per check, even with no findings
	require.Len(t, rec.checks, 1)
	assert.Empty(t, rec.checks[0].Diagnostics)
}

func TestCheckReportDanglingDataSource(t *testing.T) {
	d := model.NewDesign("r.rptdesign")
	set := model.NewElement(model.DataSet, "orders")
	require.NoError(t, d.Append(d.Root(), model.SlotDataSets, set))
	require.NoError(t, d.SetProperty(set, "data-source", "missing"))

	diags := d.CheckReport()
	require.Len(t, diags, 1)
	assert.Equal(t, model.Error, diags[0].Severity)
	assert.Equal(t, semantic.ItemNotFound, diags[0].Code)
	assert.Same(t, set, diags[0].Element)
	assert.Equal(t, "data-source", diags[0].Property)
}

func TestCheckReportCrossLibraryReference(t *testing.T) {
	lib := model.NewLibrary("lib.rptlibrary")
	require.NoError(t, lib.Append(lib.Root(), model.SlotDataSources, model.NewElement(model.DataSource, "shared")))

	d := model.NewDesign("host.rptdesign")
	require.NoError(t, d.IncludeLibrary("lib", lib))
	set := model.NewElement(model.DataSet, "orders")
	require.NoError(t, d.Append(d.Root(), model.SlotDataSets, set))
	require.NoError(t, d.SetProperty(set, "data-source", "shared"))

	// a reference into a visible library resolves
	assert.Empty(t, d.CheckReport())
}

func TestCheckReportAggregates(t *testing.T) {
	b := model.LoadDesign("r.rptdesign")
	set := b.AddElement(nil, model.SlotDataSets, model.DataSet, "")
	require.NotNil(t, set)
	b.SetProperty(set, "data-source", "missing")
	b.SetProperty(set, "bogus", 1)
	b.IncludeLibrary("broken", nil, errors.New("file not found"))
	d := b.Done()

	rec := &recorder{}
	rec.listen(d)
	diags := d.CheckReport()

	// missing required name, unknown property, dangling reference,
	// and the unloaded library, all in one pass
	require.Len(t, diags, 4)
	var errs, warns int
	for _, dg := range diags {
		switch dg.Severity {
		case model.Error:
			errs++
		case model.Warning:
			warns++
		}
		assert.NotEmpty(t, dg.String())
	}
	assert.Equal(t, 2, errs)
	assert.Equal(t, 2, warns)

	require.Len(t, rec.checks, 1)
	assert.Len(t, rec.checks[0].Diagnostics, 4)
}

func TestCheckReportBadPropertyValue(t *testing.T) {
	b := model.LoadDesign("r.rptdesign")
	st := b.AddElement(nil, model.SlotStyles, model.Style, "title")
	require.NotNil(t, st)
	b.SetProperty(st, "font-size", "huge")
	d := b.Done()

	diags := d.CheckReport()
	require.Len(t, diags, 1)
	assert.Equal(t, semantic.InvalidValue, diags[0].Code)
	assert.Equal(t, "font-size", diags[0].Property)
}
