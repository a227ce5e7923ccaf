// Copyright (c) 2026 The tryphon Authors.
// SPDX-License-Identifier: Apache-2.0

package schema

import (
	"errors"
	"fmt"
	"strings"

	"github.com/katlasik/tryphon/pkg/config"
	"github.com/katlasik/tryphon/pkg/decode"
)

// Types lists the field types a schema file may use.
var Types = []string{
	"string", "bool",
	"int", "int8", "int16", "int32", "int64",
	"uint", "uint8", "uint16", "uint32", "uint64",
	"float32", "float64",
	"char", "duration", "bytes",
	"ip", "ipv4", "ipv6", "addrport", "url", "path",
	"enum", "list",
}

// Build turns f into a loader schema and the Values that will hold the
// loaded result. Declaration problems, including defaults that do not
// decode, are returned as one error.
func (f *File) Build() (*config.Schema, *Values, error) {
	vals := &Values{}
	s, err := build("", f.Fields, f.Groups, vals)
	if err != nil {
		return nil, nil, err
	}
	return s, vals, nil
}

func build(prefix string, fields []FieldDef, groups []GroupDef, vals *Values) (*config.Schema, error) {
	s := config.NewSchema()
	var errs []error
	for _, fd := range fields {
		if err := fd.attach(s, vals, prefix); err != nil {
			errs = append(errs, err)
		}
	}
	for _, gd := range groups {
		sub, err := build(joinPath(prefix, gd.Name), gd.Fields, gd.Groups, vals)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		s.Group(gd.Name, sub)
	}
	if err := s.Err(); err != nil {
		if prefix != "" {
			err = fmt.Errorf("group %q: %w", prefix, err)
		}
		errs = append(errs, err)
	}
	return s, errors.Join(errs...)
}

func (fd FieldDef) attach(s *config.Schema, vals *Values, prefix string) error {
	if fd.Type == "list" {
		return fd.attachList(s, vals, prefix)
	}

	switch fd.Type {
	case "string":
		return attach(s, vals, prefix, fd, decode.String)
	case "bool":
		return attach(s, vals, prefix, fd, decode.Bool)
	case "int":
		return attach(s, vals, prefix, fd, decode.Int[int])
	case "int8":
		return attach(s, vals, prefix, fd, decode.Int[int8])
	case "int16":
		return attach(s, vals, prefix, fd, decode.Int[int16])
	case "int32":
		return attach(s, vals, prefix, fd, decode.Int[int32])
	case "int64":
		return attach(s, vals, prefix, fd, decode.Int[int64])
	case "uint":
		return attach(s, vals, prefix, fd, decode.Uint[uint])
	case "uint8":
		return attach(s, vals, prefix, fd, decode.Uint[uint8])
	case "uint16":
		return attach(s, vals, prefix, fd, decode.Uint[uint16])
	case "uint32":
		return attach(s, vals, prefix, fd, decode.Uint[uint32])
	case "uint64":
		return attach(s, vals, prefix, fd, decode.Uint[uint64])
	case "float32":
		return attach(s, vals, prefix, fd, decode.Float[float32])
	case "float64":
		return attach(s, vals, prefix, fd, decode.Float[float64])
	case "char":
		return attach(s, vals, prefix, fd, decode.Char)
	case "duration":
		return attach(s, vals, prefix, fd, decode.Duration)
	case "bytes":
		return attach(s, vals, prefix, fd, decode.Bytes)
	case "ip":
		return attach(s, vals, prefix, fd, decode.IP)
	case "ipv4":
		return attach(s, vals, prefix, fd, decode.IPv4)
	case "ipv6":
		return attach(s, vals, prefix, fd, decode.IPv6)
	case "addrport":
		return attach(s, vals, prefix, fd, decode.AddrPort)
	case "url":
		return attach(s, vals, prefix, fd, decode.URL)
	case "path":
		return attach(s, vals, prefix, fd, decode.Path)
	case "enum":
		if len(fd.Values) == 0 {
			return fmt.Errorf("field %q: enum needs values", joinPath(prefix, fd.Name))
		}
		return attach(s, vals, prefix, fd, decode.OneOf(fd.Values...))
	default:
		return fmt.Errorf("field %q: unknown type %q, expected one of: %s",
			joinPath(prefix, fd.Name), fd.Type, strings.Join(Types, ", "))
	}
}

// attachList supports the scalar element types commonly found in lists.
func (fd FieldDef) attachList(s *config.Schema, vals *Values, prefix string) error {
	switch fd.Elem {
	case "", "string":
		return attach(s, vals, prefix, fd, decode.List(decode.String))
	case "bool":
		return attach(s, vals, prefix, fd, decode.List(decode.Bool))
	case "int":
		return attach(s, vals, prefix, fd, decode.List(decode.Int[int]))
	case "int64":
		return attach(s, vals, prefix, fd, decode.List(decode.Int[int64]))
	case "uint":
		return attach(s, vals, prefix, fd, decode.List(decode.Uint[uint]))
	case "uint16":
		return attach(s, vals, prefix, fd, decode.List(decode.Uint[uint16]))
	case "float64":
		return attach(s, vals, prefix, fd, decode.List(decode.Float[float64]))
	case "duration":
		return attach(s, vals, prefix, fd, decode.List(decode.Duration))
	case "ip":
		return attach(s, vals, prefix, fd, decode.List(decode.IP))
	case "url":
		return attach(s, vals, prefix, fd, decode.List(decode.URL))
	case "path":
		return attach(s, vals, prefix, fd, decode.List(decode.Path))
	case "enum":
		if len(fd.Values) == 0 {
			return fmt.Errorf("field %q: enum needs values", joinPath(prefix, fd.Name))
		}
		return attach(s, vals, prefix, fd, decode.List(decode.OneOf(fd.Values...)))
	default:
		return fmt.Errorf("field %q: unsupported list element type %q", joinPath(prefix, fd.Name), fd.Elem)
	}
}

func attach[T any](s *config.Schema, vals *Values, prefix string, fd FieldDef, dec decode.Decoder[T]) error {
	if fd.Secret {
		return bind(s, vals, prefix, fd, decode.Secret(dec))
	}
	return bind(s, vals, prefix, fd, dec)
}

// bind declares fd on s with fresh storage and records how to read it back.
func bind[T any](s *config.Schema, vals *Values, prefix string, fd FieldDef, dec decode.Decoder[T]) error {
	path := joinPath(prefix, fd.Name)

	var def *T
	if fd.Default != nil {
		v, err := dec(fd.Default.Value)
		if err != nil {
			return fmt.Errorf("field %q: default does not decode as %s: %w", path, fd.Type, err)
		}
		def = &v
	}

	v := Value{
		Path:     path,
		Type:     fd.Type,
		Elem:     fd.Elem,
		Secret:   fd.Secret,
		Optional: fd.Optional,
	}

	if fd.Optional {
		target := new(*T)
		spec := config.Optional(s, fd.Name, target, dec).Env(fd.Env...)
		if def != nil {
			spec.Default(def)
		}
		v.get = func() any {
			if *target == nil {
				return nil
			}
			return **target
		}
		v.EnvVars = envVars(s, fd.Name)
		vals.add(v)
		return nil
	}

	target := new(T)
	spec := config.Field(s, fd.Name, target, dec).Env(fd.Env...)
	if def != nil {
		spec.Default(*def)
	}
	v.get = func() any { return *target }
	v.EnvVars = envVars(s, fd.Name)
	vals.add(v)
	return nil
}

// envVars reads back the keys the schema settled on for name.
func envVars(s *config.Schema, name string) []string {
	for _, d := range s.Descriptors() {
		if d.Path == name {
			return d.EnvVars
		}
	}
	return nil
}

func joinPath(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return prefix + "." + name
}
