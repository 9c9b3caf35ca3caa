// Copyright (c) 2026, The OpenRDL Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"openrdl.org/report/model"
	"openrdl.org/report/semantic"
)

func TestAddTranslation(t *testing.T) {
	d := model.NewDesign("r.rptdesign")
	require.NoError(t, d.AddTranslation("title", "", "Report"))
	require.NoError(t, d.AddTranslation("title", "fr", "Rapport"))

	tr, ok := d.Translation("title", "fr")
	require.True(t, ok)
	assert.Equal(t, "Rapport", tr.Text)
	tr, ok = d.Translation("title", "")
	require.True(t, ok)
	assert.Equal(t, "Report", tr.Text)

	// locales canonicalize on the way in
	require.NoError(t, d.AddTranslation("title", "DE-de", "Bericht"))
	tr, ok = d.Translation("title", "de-DE")
	require.True(t, ok)
	assert.Equal(t, "Bericht", tr.Text)

	// duplicate (key, locale)
	err := d.AddTranslation("title", "fr", "Autre")
	require.Error(t, err)
	assert.Equal(t, semantic.NameCollision, semantic.CodeOf(err))

	// empty key and bad locale
	err = d.AddTranslation("", "fr", "x")
	require.Error(t, err)
	assert.Equal(t, semantic.InvalidValue, semantic.CodeOf(err))
	err = d.AddTranslation("title", "!!", "x")
	require.Error(t, err)
	assert.Equal(t, semantic.InvalidValue, semantic.CodeOf(err))

	assert.Equal(t, []string{"title"}, d.TranslationKeys())
	assert.Len(t, d.Translations(), 3)
}

func TestDropTranslation(t *testing.T) {
	d := model.NewDesign("r.rptdesign")
	require.NoError(t, d.AddTranslation("title", "fr", "Rapport"))

	require.NoError(t, d.DropTranslation("title", "fr"))
	_, ok := d.Translation("title", "fr")
	assert.False(t, ok)
	assert.Empty(t, d.TranslationKeys())

	err := d.DropTranslation("title", "fr")
	require.Error(t, err)
	assert.Equal(t, semantic.ItemNotFound, semantic.CodeOf(err))

	require.True(t, d.Undo())
	tr, ok := d.Translation("title", "fr")
	require.True(t, ok)
	assert.Equal(t, "Rapport", tr.Text)
}

func TestMessageFallback(t *testing.T) {
	d := model.NewDesign("r.rptdesign")
	require.NoError(t, d.AddTranslation("title", "", "Report"))
	require.NoError(t, d.AddTranslation("title", "fr", "Rapport"))
	require.NoError(t, d.AddTranslation("title", "fr-CA", "Rapport (CA)"))

	// exact region, base language, then document default
	assert.Equal(t, "Rapport (CA)", d.MessageFor("title", language.MustParse("fr-CA")))
	assert.Equal(t, "Rapport", d.MessageFor("title", language.MustParse("fr-FR")))
	assert.Equal(t, "Rapport", d.MessageFor("title", language.MustParse("fr")))
	assert.Equal(t, "Report", d.MessageFor("title", language.MustParse("de")))
	assert.Equal(t, "Report", d.MessageFor("title", language.Und))
	assert.Equal(t, "", d.MessageFor("missing", language.MustParse("fr")))

	// Message uses the document locale
	d.Locale = language.MustParse("fr-CA")
	assert.Equal(t, "Rapport (CA)", d.Message("title"))
}

func TestTranslationOverride(t *testing.T) {
	lib := model.NewLibrary("lib.rptlibrary")
	require.NoError(t, lib.AddTranslation("title", "fr", "Rapport (lib)"))
	require.NoError(t, lib.AddTranslation("footer", "", "Page"))

	d := model.NewDesign("host.rptdesign")
	require.NoError(t, d.AddTranslation("title", "fr", "Rapport (host)"))
	require.NoError(t, d.IncludeLibrary("lib", lib))

	// override happens per (key, locale)
	assert.Equal(t, "Rapport (host)", d.MessageFor("title", language.MustParse("fr")))
	assert.Equal(t, "Page", d.MessageFor("footer", language.Und))

	// library text shows through for locales the host does not define
	require.NoError(t, lib.AddTranslation("title", "de", "Bericht"))
	assert.Equal(t, "Bericht", d.MessageFor("title", language.MustParse("de")))

	assert.Equal(t, []string{"title", "footer"}, d.MessageKeys())
	assert.Equal(t, []string{"title"}, d.TranslationKeys(), "local keys only")
}
