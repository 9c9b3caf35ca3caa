// Copyright (c) 2026, The OpenRDL Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package kind

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"openrdl.org/report/property"
)

// The kind set is data-driven: besides the kinds compiled into the
// model, extension kinds can be declared in a YAML metadata document
// and registered at startup.

// yamlDoc is the top-level shape of a kind metadata document.
type yamlDoc struct {
	Kinds []*yamlKind `yaml:"kinds"`
}

type yamlKind struct {
	Name         string          `yaml:"name"`
	IDName       string          `yaml:"idName"`
	Category     string          `yaml:"category"`
	NameRequired bool            `yaml:"nameRequired"`
	Properties   []*yamlProperty `yaml:"properties"`
	Slots        []*SlotSchema   `yaml:"slots"`
}

type yamlProperty struct {
	Name    string      `yaml:"name"`
	Type    string      `yaml:"type"`
	Choices []string    `yaml:"choices"`
	Default any         `yaml:"default"`
	Struct  *yamlStruct `yaml:"struct"`
}

type yamlStruct struct {
	Name          string       `yaml:"name"`
	NameMember    string       `yaml:"nameMember"`
	CaseSensitive bool         `yaml:"caseSensitive"`
	Members       []yamlMember `yaml:"members"`
}

type yamlMember struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
}

// FromYAML parses a kind metadata document and returns the declared
// kinds, without registering them. Use [RegisterYAML] to parse and
// register in one step.
func FromYAML(data []byte) ([]*Kind, error) {
	var doc yamlDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("kind.FromYAML: %w", err)
	}
	ks := make([]*Kind, 0, len(doc.Kinds))
	for _, yk := range doc.Kinds {
		if yk.Name == "" {
			return nil, fmt.Errorf("kind.FromYAML: kind with empty name")
		}
		k := &Kind{
			Name:         yk.Name,
			IDName:       yk.IDName,
			Category:     yk.Category,
			NameRequired: yk.NameRequired,
			Slots:        yk.Slots,
		}
		for _, yp := range yk.Properties {
			p, err := yp.schema()
			if err != nil {
				return nil, fmt.Errorf("kind.FromYAML: kind %q: %w", yk.Name, err)
			}
			k.Properties = append(k.Properties, p)
		}
		ks = append(ks, k)
	}
	return ks, nil
}

// RegisterYAML parses a kind metadata document and registers all of
// its kinds, returning them.
func RegisterYAML(data []byte) ([]*Kind, error) {
	ks, err := FromYAML(data)
	if err != nil {
		return nil, err
	}
	for i, k := range ks {
		ks[i] = AddKind(k)
	}
	return ks, nil
}

func (yp *yamlProperty) schema() (*property.Schema, error) {
	pt, err := parseType(yp.Type)
	if err != nil {
		return nil, fmt.Errorf("property %q: %w", yp.Name, err)
	}
	p := &property.Schema{Name: yp.Name, Type: pt, Choices: yp.Choices, Default: yp.Default}
	if pt == property.StructList {
		if yp.Struct == nil {
			return nil, fmt.Errorf("property %q: struct-list without struct definition", yp.Name)
		}
		sd := &property.StructDef{
			Name:          yp.Struct.Name,
			NameMember:    yp.Struct.NameMember,
			CaseSensitive: yp.Struct.CaseSensitive,
		}
		for _, ym := range yp.Struct.Members {
			mt, err := parseType(ym.Type)
			if err != nil {
				return nil, fmt.Errorf("property %q member %q: %w", yp.Name, ym.Name, err)
			}
			sd.Members = append(sd.Members, property.Member{Name: ym.Name, Type: mt})
		}
		p.Struct = sd
	}
	return p, nil
}

func parseType(s string) (property.Type, error) {
	switch s {
	case "string":
		return property.String, nil
	case "number":
		return property.Number, nil
	case "bool":
		return property.Bool, nil
	case "dimension":
		return property.Dimension, nil
	case "choice":
		return property.Choice, nil
	case "bytes":
		return property.Bytes, nil
	case "struct-list":
		return property.StructList, nil
	}
	return 0, fmt.Errorf("unknown property type %q", s)
}
