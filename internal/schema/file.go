// Copyright (c) 2026 The tryphon Authors.
// SPDX-License-Identifier: Apache-2.0

package schema

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/apex/log"
	"github.com/hashicorp/hcl/v2/hclsimple"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"gopkg.in/yaml.v3"
)

// File is a parsed schema file.
type File struct {
	Source string     `yaml:"-"`
	Fields []FieldDef `yaml:"fields"`
	Groups []GroupDef `yaml:"groups"`
}

// FieldDef declares one field.
type FieldDef struct {
	Name     string   `yaml:"name"`
	Env      []string `yaml:"env"`
	Type     string   `yaml:"type"`
	Default  *Literal `yaml:"default"`
	Secret   bool     `yaml:"secret"`
	Optional bool     `yaml:"optional"`
	// Values lists the variants of an enum field.
	Values []string `yaml:"values"`
	// Elem is the element type of a list field.
	Elem string `yaml:"elem"`
}

// GroupDef declares a nested group of fields.
type GroupDef struct {
	Name   string     `yaml:"name"`
	Fields []FieldDef `yaml:"fields"`
	Groups []GroupDef `yaml:"groups"`
}

// Literal is a default value in its textual form, exactly as it would be
// read from the environment. Sequences are joined with commas.
type Literal struct {
	Value string
}

// UnmarshalYAML accepts any scalar or a sequence of scalars.
func (l *Literal) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		l.Value = node.Value
		return nil
	case yaml.SequenceNode:
		parts := make([]string, 0, len(node.Content))
		for _, n := range node.Content {
			if n.Kind != yaml.ScalarNode {
				return fmt.Errorf("line %d: default list elements must be scalars", n.Line)
			}
			parts = append(parts, n.Value)
		}
		l.Value = strings.Join(parts, ",")
		return nil
	default:
		return fmt.Errorf("line %d: default must be a scalar or a list", node.Line)
	}
}

// Load reads a schema file, choosing the format by extension.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading schema: %w", err)
	}
	f, err := Parse(path, data)
	if err != nil {
		return nil, err
	}
	log.Debugf("schema: %s has %d field(s) and %d group(s)", path, len(f.Fields), len(f.Groups))
	return f, nil
}

// Parse decodes data; filename selects the format and is used in messages.
func Parse(filename string, data []byte) (*File, error) {
	var (
		f   *File
		err error
	)
	switch ext := strings.ToLower(filepath.Ext(filename)); ext {
	case ".yaml", ".yml":
		f, err = parseYAML(data)
	case ".hcl":
		f, err = parseHCL(filename, data)
	default:
		return nil, fmt.Errorf("%s: unsupported schema format %q, expected .yaml, .yml or .hcl", filename, ext)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	f.Source = filename
	return f, nil
}

func parseYAML(data []byte) (*File, error) {
	var f File
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return &f, nil
		}
		return nil, err
	}
	return &f, nil
}

type hclFile struct {
	Fields []hclField `hcl:"field,block"`
	Groups []hclGroup `hcl:"group,block"`
}

type hclField struct {
	Name     string    `hcl:"name,label"`
	Env      []string  `hcl:"env,optional"`
	Type     string    `hcl:"type"`
	Default  cty.Value `hcl:"default,optional"`
	Secret   bool      `hcl:"secret,optional"`
	Optional bool      `hcl:"optional,optional"`
	Values   []string  `hcl:"values,optional"`
	Elem     string    `hcl:"elem,optional"`
}

type hclGroup struct {
	Name   string     `hcl:"name,label"`
	Fields []hclField `hcl:"field,block"`
	Groups []hclGroup `hcl:"group,block"`
}

func parseHCL(filename string, data []byte) (*File, error) {
	var hf hclFile
	if err := hclsimple.Decode(filename, data, nil, &hf); err != nil {
		return nil, err
	}
	fields, err := fromHCLFields(hf.Fields)
	if err != nil {
		return nil, err
	}
	groups, err := fromHCLGroups(hf.Groups)
	if err != nil {
		return nil, err
	}
	return &File{Fields: fields, Groups: groups}, nil
}

func fromHCLFields(in []hclField) ([]FieldDef, error) {
	out := make([]FieldDef, 0, len(in))
	for _, hf := range in {
		def, err := literal(hf.Default)
		if err != nil {
			return nil, fmt.Errorf("field %q: default: %w", hf.Name, err)
		}
		out = append(out, FieldDef{
			Name:     hf.Name,
			Env:      hf.Env,
			Type:     hf.Type,
			Default:  def,
			Secret:   hf.Secret,
			Optional: hf.Optional,
			Values:   hf.Values,
			Elem:     hf.Elem,
		})
	}
	return out, nil
}

func fromHCLGroups(in []hclGroup) ([]GroupDef, error) {
	out := make([]GroupDef, 0, len(in))
	for _, hg := range in {
		fields, err := fromHCLFields(hg.Fields)
		if err != nil {
			return nil, fmt.Errorf("group %q: %w", hg.Name, err)
		}
		groups, err := fromHCLGroups(hg.Groups)
		if err != nil {
			return nil, fmt.Errorf("group %q: %w", hg.Name, err)
		}
		out = append(out, GroupDef{Name: hg.Name, Fields: fields, Groups: groups})
	}
	return out, nil
}

// literal renders an HCL value the way it would appear in the environment.
func literal(v cty.Value) (*Literal, error) {
	if v.Type() == cty.NilType || v.IsNull() {
		return nil, nil
	}
	if !v.IsWhollyKnown() {
		return nil, errors.New("value must be known")
	}

	ty := v.Type()
	if ty.IsListType() || ty.IsTupleType() || ty.IsSetType() {
		lv, err := convert.Convert(v, cty.List(cty.String))
		if err != nil {
			return nil, err
		}
		parts := make([]string, 0, lv.LengthInt())
		for it := lv.ElementIterator(); it.Next(); {
			_, e := it.Element()
			if e.IsNull() {
				return nil, errors.New("list elements must not be null")
			}
			parts = append(parts, e.AsString())
		}
		return &Literal{Value: strings.Join(parts, ",")}, nil
	}

	sv, err := convert.Convert(v, cty.String)
	if err != nil {
		return nil, err
	}
	return &Literal{Value: sv.AsString()}, nil
}
