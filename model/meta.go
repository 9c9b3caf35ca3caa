// Copyright (c) 2026, The OpenRDL Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package model

import (
	"openrdl.org/report/base/keylist"
	"openrdl.org/report/kind"
	"openrdl.org/report/property"
)

// Namespace categories. Each named element kind registers in exactly
// one category; names are unique per category across the effective
// (merged) view of a document and its libraries.
const (
	CategoryStyles      = "styles"
	CategoryDataSources = "data-sources"
	CategoryDataSets    = "data-sets"
	CategoryPages       = "pages"
	CategoryParameters  = "parameters"
	CategoryElements    = "elements"
)

// Document-level property names, held on the root element.
const (
	PropAuthor       = "author"
	PropCreatedBy    = "created-by"
	PropDefaultUnits = "default-units"
	PropHelpGuide    = "help-guide"
	PropInitialize   = "initialize"
	PropConfigVars   = "config-vars"
	PropImages       = "images"
	PropColors       = "custom-colors"
)

// Pseudo-property names used in attribute notifications for changes
// that are not element properties.
const (
	PropFileName     = "file-name"
	PropName         = "name"
	PropLibraries    = "libraries"
	PropTranslations = "translations"
)

// Root document slot names.
const (
	SlotStyles      = "styles"
	SlotDataSources = "data-sources"
	SlotDataSets    = "data-sets"
	SlotPages       = "pages"
	SlotParameters  = "parameters"
	SlotComponents  = "components"
)

// categoryFolds maps categories to their name fold. Style names are
// compared case-insensitively; all other categories are exact. This
// is declared policy, not per-call behavior.
var categoryFolds = map[string]func(string) string{
	CategoryStyles: keylist.CaseFold,
}

// CategoryFold returns the name fold function of the given category,
// nil for exact comparison.
func CategoryFold(category string) func(string) string {
	return categoryFolds[category]
}

// Structured-list record definitions. Config variables and embedded
// images identify entries case-sensitively; custom colors fold case.
var (
	// ConfigVarDef is the record definition of config variables.
	ConfigVarDef = &property.StructDef{
		Name:          "ConfigVar",
		NameMember:    "name",
		CaseSensitive: true,
		Members: []property.Member{
			{Name: "name", Type: property.String},
			{Name: "value", Type: property.String},
		},
	}

	// ImageDef is the record definition of embedded images.
	ImageDef = &property.StructDef{
		Name:          "EmbeddedImage",
		NameMember:    "name",
		CaseSensitive: true,
		Members: []property.Member{
			{Name: "name", Type: property.String},
			{Name: "type", Type: property.String},
			{Name: "data", Type: property.Bytes},
		},
	}

	// ColorDef is the record definition of custom colors.
	ColorDef = &property.StructDef{
		Name:          "CustomColor",
		NameMember:    "name",
		CaseSensitive: false,
		Members: []property.Member{
			{Name: "name", Type: property.String},
			{Name: "color", Type: property.String},
		},
	}
)

// documentProperties returns the property schemas shared by report
// designs and libraries.
func documentProperties() []*property.Schema {
	return []*property.Schema{
		{Name: PropAuthor, Type: property.String},
		{Name: PropCreatedBy, Type: property.String},
		{Name: PropDefaultUnits, Type: property.Choice, Choices: []string{"in", "cm", "mm", "pt"}, Default: "in"},
		{Name: PropHelpGuide, Type: property.String},
		{Name: PropInitialize, Type: property.String},
		{Name: PropConfigVars, Type: property.StructList, Struct: ConfigVarDef},
		{Name: PropImages, Type: property.StructList, Struct: ImageDef},
		{Name: PropColors, Type: property.StructList, Struct: ColorDef},
	}
}

// documentSlots returns the containment slots shared by report
// designs and libraries. Style and data source order carries no
// meaning; page, parameter, and component order is significant.
func documentSlots() []*kind.SlotSchema {
	return []*kind.SlotSchema{
		{Name: SlotStyles, Of: []string{"Style"}},
		{Name: SlotDataSources, Of: []string{"DataSource"}},
		{Name: SlotDataSets, Of: []string{"DataSet"}},
		{Name: SlotPages, Ordered: true, Of: []string{"MasterPage"}},
		{Name: SlotParameters, Ordered: true, Of: []string{"Parameter", "ParameterGroup"}},
		{Name: SlotComponents, Ordered: true, Of: []string{"Grid"}},
	}
}

// The built-in element kinds. Extension kinds can be added through
// [kind.RegisterYAML].
var (
	// ReportDesign is the root kind of a primary design document.
	ReportDesign = kind.AddKind(&kind.Kind{
		Name:       "ReportDesign",
		IDName:     "report-design",
		Properties: documentProperties(),
		Slots:      documentSlots(),
	})

	// Library is the root kind of an includable library document.
	Library = kind.AddKind(&kind.Kind{
		Name:       "Library",
		IDName:     "library",
		Properties: documentProperties(),
		Slots:      documentSlots(),
	})

	// DataSource is a named connection definition.
	DataSource = kind.AddKind(&kind.Kind{
		Name:         "DataSource",
		IDName:       "data-source",
		Category:     CategoryDataSources,
		NameRequired: true,
		Properties: []*property.Schema{
			{Name: "extension", Type: property.String},
		},
	})

	// DataSet is a named query bound to a data source.
	DataSet = kind.AddKind(&kind.Kind{
		Name:         "DataSet",
		IDName:       "data-set",
		Category:     CategoryDataSets,
		NameRequired: true,
		Properties: []*property.Schema{
			{Name: "data-source", Type: property.String},
			{Name: "query", Type: property.String},
		},
	})

	// Style is a named shared style.
	Style = kind.AddKind(&kind.Kind{
		Name:         "Style",
		IDName:       "style",
		Category:     CategoryStyles,
		NameRequired: true,
		Properties: []*property.Schema{
			{Name: "font-family", Type: property.String},
			{Name: "font-size", Type: property.Dimension},
			{Name: "color", Type: property.String},
			{Name: "bold", Type: property.Bool, Default: false},
		},
	})

	// MasterPage is a named page layout.
	MasterPage = kind.AddKind(&kind.Kind{
		Name:         "MasterPage",
		IDName:       "master-page",
		Category:     CategoryPages,
		NameRequired: true,
		Properties: []*property.Schema{
			{Name: "type", Type: property.Choice, Choices: []string{"a4", "letter", "custom"}, Default: "a4"},
			{Name: "height", Type: property.Dimension},
			{Name: "width", Type: property.Dimension},
		},
	})

	// Parameter is a named report parameter.
	Parameter = kind.AddKind(&kind.Kind{
		Name:         "Parameter",
		IDName:       "parameter",
		Category:     CategoryParameters,
		NameRequired: true,
		Properties: []*property.Schema{
			{Name: "value-type", Type: property.Choice, Choices: []string{"string", "number", "bool", "date"}, Default: "string"},
			{Name: "default-value", Type: property.String},
			{Name: "hidden", Type: property.Bool, Default: false},
		},
	})

	// ParameterGroup is a named group of parameters.
	ParameterGroup = kind.AddKind(&kind.Kind{
		Name:         "ParameterGroup",
		IDName:       "parameter-group",
		Category:     CategoryParameters,
		NameRequired: true,
		Slots: []*kind.SlotSchema{
			{Name: SlotParameters, Ordered: true, Of: []string{"Parameter"}},
		},
	})

	// Grid is a layout container report item. Grids are optionally
	// named in the general elements category.
	Grid = kind.AddKind(&kind.Kind{
		Name:     "Grid",
		IDName:   "grid",
		Category: CategoryElements,
		Properties: []*property.Schema{
			{Name: "height", Type: property.Dimension},
			{Name: "width", Type: property.Dimension},
		},
		Slots: []*kind.SlotSchema{
			{Name: "items", Ordered: true, Of: []string{"Grid"}},
		},
	})
)
