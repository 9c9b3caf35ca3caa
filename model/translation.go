// Copyright (c) 2026, The OpenRDL Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package model

import (
	"golang.org/x/text/language"

	"openrdl.org/report/base/keylist"
	"openrdl.org/report/semantic"
)

// The message / translation store holds locale-tagged text entries
// keyed by (resource key, locale). Lookup resolves by a locale
// fallback search order: exact language+region, then language, then
// the document default (empty locale). Override precedence across
// included libraries follows the same host-over-library rule as any
// other definition, at (key, locale) granularity.

// Translation is one locale-tagged text entry.
type Translation struct {
	// Key is the resource key.
	Key string

	// Locale is the canonical BCP 47 tag, or "" for the document
	// default text.
	Locale string

	// Text is the translated text.
	Text string
}

// Translations is one document's local translation table.
type Translations struct {
	// entries maps resource key to its locale texts, both in
	// insertion order.
	entries *keylist.List[*keylist.List[string]]
}

func newTranslations() *Translations {
	return &Translations{entries: keylist.New[*keylist.List[string]]()}
}

func (t *Translations) add(key, locale, text string) error {
	locs, ok := t.entries.AtTry(key)
	if !ok {
		locs = keylist.New[string]()
		t.entries.Set(key, locs)
	}
	if locs.Has(locale) {
		return &semantic.Error{Code: semantic.NameCollision, Name: key,
			Message: "translation already defined for locale " + quoteLocale(locale)}
	}
	locs.Set(locale, text)
	return nil
}

func (t *Translations) drop(key, locale string) (string, error) {
	locs, ok := t.entries.AtTry(key)
	if !ok || !locs.Has(locale) {
		return "", &semantic.Error{Code: semantic.ItemNotFound, Name: key,
			Message: "no translation for locale " + quoteLocale(locale)}
	}
	text := locs.At(locale)
	locs.DeleteByKey(locale)
	if locs.Len() == 0 {
		t.entries.DeleteByKey(key)
	}
	return text, nil
}

func (t *Translations) text(key, locale string) (string, bool) {
	locs, ok := t.entries.AtTry(key)
	if !ok {
		return "", false
	}
	return locs.AtTry(locale)
}

func quoteLocale(locale string) string {
	if locale == "" {
		return "(default)"
	}
	return locale
}

// canonLocale parses and canonicalizes the given locale string;
// "" (the document default) stays "".
func canonLocale(locale string) (string, error) {
	if locale == "" {
		return "", nil
	}
	tag, err := language.Parse(locale)
	if err != nil {
		return "", &semantic.Error{Code: semantic.InvalidValue, Value: locale,
			Message: "not a valid locale tag"}
	}
	return tag.String(), nil
}

// Translation commands:

type addTranslationCmd struct {
	d                 *Document
	key, locale, text string
}

// AddTranslation adds a text entry for the given resource key and
// locale ("" for the document default text). A duplicate
// (key, locale) pair fails with NameCollision.
func (d *Document) AddTranslation(key, locale, text string) error {
	loc, err := canonLocale(locale)
	if err != nil {
		return err
	}
	return d.do(&addTranslationCmd{d: d, key: key, locale: loc, text: text})
}

func (c *addTranslationCmd) Label() string { return "add translation " + c.key }

func (c *addTranslationCmd) validate() error {
	if c.key == "" {
		return semantic.New(semantic.InvalidValue, "empty resource key")
	}
	if _, ok := c.d.translations.text(c.key, c.locale); ok {
		return &semantic.Error{Code: semantic.NameCollision, Name: c.key,
			Message: "translation already defined for locale " + quoteLocale(c.locale)}
	}
	return nil
}

func (c *addTranslationCmd) Apply() {
	c.d.translations.add(c.key, c.locale, c.text) //nolint:errcheck // validated
	c.d.broadcastAttribute(c.d.root, PropTranslations)
}

func (c *addTranslationCmd) Undo() {
	c.d.translations.drop(c.key, c.locale) //nolint:errcheck // present by construction
	c.d.broadcastAttribute(c.d.root, PropTranslations)
}

type dropTranslationCmd struct {
	d                 *Document
	key, locale, text string
}

// DropTranslation removes the text entry for the given resource key
// and locale, failing with ItemNotFound if it is absent locally.
func (d *Document) DropTranslation(key, locale string) error {
	loc, err := canonLocale(locale)
	if err != nil {
		return err
	}
	return d.do(&dropTranslationCmd{d: d, key: key, locale: loc})
}

func (c *dropTranslationCmd) Label() string { return "drop translation " + c.key }

func (c *dropTranslationCmd) validate() error {
	text, ok := c.d.translations.text(c.key, c.locale)
	if !ok {
		return &semantic.Error{Code: semantic.ItemNotFound, Name: c.key,
			Message: "no translation for locale " + quoteLocale(c.locale)}
	}
	c.text = text
	return nil
}

func (c *dropTranslationCmd) Apply() {
	c.d.translations.drop(c.key, c.locale) //nolint:errcheck // validated
	c.d.broadcastAttribute(c.d.root, PropTranslations)
}

func (c *dropTranslationCmd) Undo() {
	c.d.translations.add(c.key, c.locale, c.text) //nolint:errcheck // absent by construction
	c.d.broadcastAttribute(c.d.root, PropTranslations)
}

// Lookup:

// effectiveText returns the text for the given (key, canonical
// locale) across the document and its libraries, host first.
func (d *Document) effectiveText(key, locale string) (string, bool) {
	var text string
	var ok bool
	d.walkEffective(func(doc *Document) {
		if ok {
			return
		}
		text, ok = doc.translations.text(key, locale)
	})
	return text, ok
}

// MessageFor returns the text of the given resource key for the
// given locale, searching exact language+region first, then the
// base language, then the document default text, across the
// document and its libraries. It returns "" if nothing matches.
func (d *Document) MessageFor(key string, tag language.Tag) string {
	var candidates []string
	if tag != language.Und {
		candidates = append(candidates, tag.String())
		if base, conf := tag.Base(); conf != language.No {
			if bs := base.String(); bs != tag.String() {
				candidates = append(candidates, bs)
			}
		}
	}
	candidates = append(candidates, "")
	for _, loc := range candidates {
		if text, ok := d.effectiveText(key, loc); ok {
			return text
		}
	}
	return ""
}

// Message returns the text of the given resource key for the
// document's default locale.
func (d *Document) Message(key string) string {
	return d.MessageFor(key, d.Locale)
}

// MessageKeys returns the effective resource keys visible to the
// document, host keys first, deduplicated.
func (d *Document) MessageKeys() []string {
	seen := map[string]bool{}
	var out []string
	d.walkEffective(func(doc *Document) {
		for _, key := range doc.translations.entries.Keys {
			if seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, key)
		}
	})
	return out
}

// TranslationKeys returns the document's local resource keys in
// insertion order.
func (d *Document) TranslationKeys() []string {
	return d.translations.entries.Keys
}

// Translation returns the local text entry for the given resource
// key and locale, with false for an absent entry.
func (d *Document) Translation(key, locale string) (Translation, bool) {
	loc, err := canonLocale(locale)
	if err != nil {
		return Translation{}, false
	}
	text, ok := d.translations.text(key, loc)
	if !ok {
		return Translation{}, false
	}
	return Translation{Key: key, Locale: loc, Text: text}, true
}

// Translations returns all local text entries, keys in insertion
// order, locales in insertion order per key.
func (d *Document) Translations() []Translation {
	var out []Translation
	for i, key := range d.translations.entries.Keys {
		locs := d.translations.entries.Values[i]
		for j, loc := range locs.Keys {
			out = append(out, Translation{Key: key, Locale: loc, Text: locs.Values[j]})
		}
	}
	return out
}
