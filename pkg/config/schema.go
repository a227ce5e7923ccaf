// Copyright (c) 2026 The tryphon Authors.
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/katlasik/tryphon/pkg/decode"
	"github.com/katlasik/tryphon/pkg/secret"
	"github.com/katlasik/tryphon/pkg/source"
)

// Fielder is implemented by configuration types. Fields declares every field
// of the receiver on s and binds it to the receiver's storage.
type Fielder interface {
	Fields(s *Schema)
}

// Schema is the ordered descriptor list of one configuration shape. Build it
// with Field, Secret, Optional, Nested and Group.
type Schema struct {
	entries []entry
	names   map[string]struct{}
	errs    []error
}

// entry is one descriptor bound to its storage.
type entry interface {
	fieldName() string
	// resolve reads the entry from src without touching its storage. The
	// returned commit writes the resolved value.
	resolve(src source.Source) (commit func(), ferr *FieldError, err error)
	describe(prefix string) []Descriptor
}

// Descriptor is the read-only view of a declared field.
type Descriptor struct {
	Path     string
	EnvVars  []string
	Type     reflect.Type
	Secret   bool
	Optional bool
	Default  bool
}

// NewSchema returns an empty Schema.
func NewSchema() *Schema {
	return &Schema{names: map[string]struct{}{}}
}

// Descriptors returns the flattened descriptor list, nested groups included,
// in declaration order.
func (s *Schema) Descriptors() []Descriptor {
	var out []Descriptor
	for _, e := range s.entries {
		out = append(out, e.describe("")...)
	}
	return out
}

// Err returns the build problems recorded so far, if any.
func (s *Schema) Err() error {
	return errors.Join(s.errs...)
}

func (s *Schema) add(e entry) {
	name := e.fieldName()
	switch {
	case name == "":
		s.errs = append(s.errs, fmt.Errorf("field %d: empty name", len(s.entries)))
	case strings.Contains(name, "."):
		s.errs = append(s.errs, fmt.Errorf("field %q: name must not contain '.'", name))
	default:
		if _, dup := s.names[name]; dup {
			s.errs = append(s.errs, fmt.Errorf("field %q: declared twice", name))
		}
		s.names[name] = struct{}{}
	}
	s.entries = append(s.entries, e)
}

// FieldSpec configures one declared field. Its methods return the receiver
// so calls chain.
type FieldSpec[T any] struct {
	name     string
	keys     []string
	target   *T
	dec      decode.Decoder[T]
	def      *T
	optional bool
	secret   bool
	validate []func(T) error
}

// Field declares a field named name, decoded by dec into target. Without an
// Env call the variable key is the upper-cased name.
func Field[T any](s *Schema, name string, target *T, dec decode.Decoder[T]) *FieldSpec[T] {
	f := &FieldSpec[T]{
		name:   name,
		keys:   []string{strings.ToUpper(name)},
		target: target,
		dec:    dec,
		secret: secret.IsSecretType(reflect.TypeFor[T]()),
	}
	if target == nil {
		s.errs = append(s.errs, fmt.Errorf("field %q: nil target", name))
	}
	if dec == nil {
		s.errs = append(s.errs, fmt.Errorf("field %q: nil decoder", name))
	}
	s.add(f)
	return f
}

// Secret declares a secret field. The decoded value is wrapped before it is
// stored, and raw input never appears in errors.
func Secret[T any](s *Schema, name string, target *secret.Secret[T], dec decode.Decoder[T]) *FieldSpec[secret.Secret[T]] {
	return Field(s, name, target, decode.Secret(dec))
}

// Optional declares a field that is left nil when none of its variables is
// set.
func Optional[T any](s *Schema, name string, target **T, dec decode.Decoder[T]) *FieldSpec[*T] {
	return Field(s, name, target, decode.Pointer(dec)).Optional()
}

// Env replaces the variable keys. Keys are tried in order and the first one
// present wins.
func (f *FieldSpec[T]) Env(keys ...string) *FieldSpec[T] {
	if len(keys) > 0 {
		f.keys = keys
	}
	return f
}

// Default sets the value used when none of the keys is present.
func (f *FieldSpec[T]) Default(v T) *FieldSpec[T] {
	f.def = &v
	return f
}

// Optional makes absence store the zero value instead of failing.
func (f *FieldSpec[T]) Optional() *FieldSpec[T] {
	f.optional = true
	return f
}

// Validate adds a check run on every value read from the environment.
// Defaults are trusted and not validated.
func (f *FieldSpec[T]) Validate(fn func(T) error) *FieldSpec[T] {
	if fn != nil {
		f.validate = append(f.validate, fn)
	}
	return f
}

func (f *FieldSpec[T]) fieldName() string {
	return f.name
}

func (f *FieldSpec[T]) describe(prefix string) []Descriptor {
	return []Descriptor{{
		Path:     joinPath(prefix, f.name),
		EnvVars:  append([]string(nil), f.keys...),
		Type:     reflect.TypeFor[T](),
		Secret:   f.secret,
		Optional: f.optional,
		Default:  f.def != nil,
	}}
}

// groupEntry loads a sub-schema. build is called once per load.
type groupEntry struct {
	name  string
	build func() (sub *Schema, commit func())
}

// Nested declares a sub-configuration loaded into target. Errors inside it
// are reported under name.
func Nested[T any, PT interface {
	*T
	Fielder
}](s *Schema, name string, target *T) {
	if target == nil {
		s.errs = append(s.errs, fmt.Errorf("group %q: nil target", name))
	}
	s.add(&groupEntry{
		name: name,
		build: func() (*Schema, func()) {
			tmp := new(T)
			sub := NewSchema()
			PT(tmp).Fields(sub)
			return sub, func() { *target = *tmp }
		},
	})
}

// Group declares a prebuilt sub-schema under name. It is the dynamic
// counterpart of Nested for schemas assembled at run time.
func (s *Schema) Group(name string, sub *Schema) {
	if sub == nil {
		s.errs = append(s.errs, fmt.Errorf("group %q: nil schema", name))
		sub = NewSchema()
	}
	s.add(&groupEntry{
		name:  name,
		build: func() (*Schema, func()) { return sub, func() {} },
	})
}

func (g *groupEntry) fieldName() string {
	return g.name
}

func (g *groupEntry) describe(prefix string) []Descriptor {
	sub, _ := g.build()
	var out []Descriptor
	for _, e := range sub.entries {
		out = append(out, e.describe(joinPath(prefix, g.name))...)
	}
	return out
}

func joinPath(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return prefix + "." + name
}
