// Copyright (c) 2026, The OpenRDL Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package model

import (
	"github.com/h2non/filetype"

	"openrdl.org/report/property"
	"openrdl.org/report/semantic"
)

// Typed views over the document's structured-list properties:
// config variables, embedded images, and custom colors. All
// mutations are command-backed; all reads are effective (merged
// with included libraries).

// ConfigVar is one config variable of a document.
type ConfigVar struct {
	// Name identifies the variable, case-sensitively.
	Name string

	// Value is the variable value.
	Value string
}

func configVarOf(s *property.Structure) ConfigVar {
	if s == nil {
		return ConfigVar{}
	}
	v, _ := s.Member("value").(string)
	return ConfigVar{Name: s.Name(), Value: v}
}

func (v ConfigVar) structure() *property.Structure {
	return property.NewStructure(ConfigVarDef, map[string]any{"name": v.Name, "value": v.Value})
}

// AddConfigVariable adds the given config variable to the document.
// An empty name fails with InvalidValue; a name already defined
// locally fails with NameCollision. A variable that merely masks a
// same-named one from a library is permitted.
func (d *Document) AddConfigVariable(v ConfigVar) error {
	return d.do(&addStructureCmd{d: d, el: d.root, prop: PropConfigVars, s: v.structure()})
}

// DropConfigVariable removes the locally defined config variable
// with the given name, failing with ItemNotFound if it is absent.
func (d *Document) DropConfigVariable(name string) error {
	return d.do(&dropStructureCmd{d: d, el: d.root, prop: PropConfigVars, name: name})
}

// ReplaceConfigVariable replaces the locally defined config variable
// with the given name, preserving its position.
func (d *Document) ReplaceConfigVariable(name string, v ConfigVar) error {
	return d.do(&replaceStructureCmd{d: d, el: d.root, prop: PropConfigVars, oldName: name, s: v.structure()})
}

// FindConfigVariable returns the effective config variable with the
// given name, with false for an absent name.
func (d *Document) FindConfigVariable(name string) (ConfigVar, bool) {
	s := d.FindStructure(PropConfigVars, name)
	return configVarOf(s), s != nil
}

// ConfigVariables returns the effective config variables: one per
// distinct name, host definitions masking library ones.
func (d *Document) ConfigVariables() []ConfigVar {
	ss := d.EffectiveStructures(PropConfigVars)
	out := make([]ConfigVar, len(ss))
	for i, s := range ss {
		out[i] = configVarOf(s)
	}
	return out
}

// EmbeddedImage is one embedded image of a document.
type EmbeddedImage struct {
	// Name identifies the image, case-sensitively.
	Name string

	// Type is the image type extension (png, jpg, gif, bmp). If
	// empty on add, it is inferred from the data.
	Type string

	// Data is the raw image payload.
	Data []byte
}

func imageOf(s *property.Structure) EmbeddedImage {
	if s == nil {
		return EmbeddedImage{}
	}
	t, _ := s.Member("type").(string)
	data, _ := s.Member("data").([]byte)
	return EmbeddedImage{Name: s.Name(), Type: t, Data: data}
}

func (im EmbeddedImage) structure() *property.Structure {
	return property.NewStructure(ImageDef, map[string]any{"name": im.Name, "type": im.Type, "data": im.Data})
}

// AddImage adds the given embedded image to the document. The
// payload must be a recognized image format; an empty Type is
// inferred from the data.
func (d *Document) AddImage(im EmbeddedImage) error {
	if !filetype.IsImage(im.Data) {
		return &semantic.Error{Code: semantic.InvalidValue, Property: PropImages, Name: im.Name,
			Message: "data is not a recognized image format"}
	}
	if im.Type == "" {
		if t, err := filetype.Match(im.Data); err == nil {
			im.Type = t.Extension
		}
	}
	return d.do(&addStructureCmd{d: d, el: d.root, prop: PropImages, s: im.structure()})
}

// DropImage removes the locally defined embedded image with the
// given name, failing with ItemNotFound if it is absent.
func (d *Document) DropImage(name string) error {
	return d.do(&dropStructureCmd{d: d, el: d.root, prop: PropImages, name: name})
}

// DropImages removes several locally defined embedded images as one
// atomic command, firing one combined notification. If any name is
// absent, nothing is removed; an empty name list fails with
// InvalidValue rather than committing a no-op.
func (d *Document) DropImages(names []string) error {
	return d.do(&dropStructuresCmd{d: d, el: d.root, prop: PropImages, names: names})
}

// ReplaceImage replaces the locally defined embedded image with the
// given name, preserving its position.
func (d *Document) ReplaceImage(name string, im EmbeddedImage) error {
	if !filetype.IsImage(im.Data) {
		return &semantic.Error{Code: semantic.InvalidValue, Property: PropImages, Name: im.Name,
			Message: "data is not a recognized image format"}
	}
	if im.Type == "" {
		if t, err := filetype.Match(im.Data); err == nil {
			im.Type = t.Extension
		}
	}
	return d.do(&replaceStructureCmd{d: d, el: d.root, prop: PropImages, oldName: name, s: im.structure()})
}

// FindImage returns the effective embedded image with the given
// name, with false for an absent name.
func (d *Document) FindImage(name string) (EmbeddedImage, bool) {
	s := d.FindStructure(PropImages, name)
	return imageOf(s), s != nil
}

// Images returns the effective embedded images.
func (d *Document) Images() []EmbeddedImage {
	ss := d.EffectiveStructures(PropImages)
	out := make([]EmbeddedImage, len(ss))
	for i, s := range ss {
		out[i] = imageOf(s)
	}
	return out
}

// CustomColor is one named custom color of a document.
type CustomColor struct {
	// Name identifies the color, case-insensitively.
	Name string

	// Color is the color value, e.g. "#ff0000".
	Color string
}

func colorOf(s *property.Structure) CustomColor {
	if s == nil {
		return CustomColor{}
	}
	cv, _ := s.Member("color").(string)
	return CustomColor{Name: s.Name(), Color: cv}
}

func (cc CustomColor) structure() *property.Structure {
	return property.NewStructure(ColorDef, map[string]any{"name": cc.Name, "color": cc.Color})
}

// AddColor adds the given custom color to the document. Color names
// compare case-insensitively.
func (d *Document) AddColor(cc CustomColor) error {
	return d.do(&addStructureCmd{d: d, el: d.root, prop: PropColors, s: cc.structure()})
}

// DropColor removes the locally defined custom color with the given
// name, failing with ItemNotFound if it is absent.
func (d *Document) DropColor(name string) error {
	return d.do(&dropStructureCmd{d: d, el: d.root, prop: PropColors, name: name})
}

// FindColor returns the effective custom color with the given name,
// with false for an absent name.
func (d *Document) FindColor(name string) (CustomColor, bool) {
	s := d.FindStructure(PropColors, name)
	return colorOf(s), s != nil
}

// Colors returns the effective custom colors.
func (d *Document) Colors() []CustomColor {
	ss := d.EffectiveStructures(PropColors)
	out := make([]CustomColor, len(ss))
	for i, s := range ss {
		out[i] = colorOf(s)
	}
	return out
}
