// Copyright (c) 2026 The tryphon Authors.
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/apex/log"

	"github.com/katlasik/tryphon/pkg/secret"
	"github.com/katlasik/tryphon/pkg/source"
)

// Load builds T's schema, reads it from src and returns the populated value.
// A nil src reads the process environment. Field problems are returned as
// *Error; declaration problems as a plain error.
func Load[T any, PT interface {
	*T
	Fielder
}](src source.Source) (*T, error) {
	cfg := new(T)
	s := NewSchema()
	PT(cfg).Fields(s)
	if err := s.Load(src); err != nil {
		return nil, err
	}
	return cfg, nil
}

// MustLoad is Load that panics on error.
func MustLoad[T any, PT interface {
	*T
	Fielder
}](src source.Source) *T {
	cfg, err := Load[T, PT](src)
	if err != nil {
		panic(err)
	}
	return cfg
}

// Load reads every field of s from src and writes the bound targets. Targets
// are only written when every field resolved.
func (s *Schema) Load(src source.Source) error {
	if src == nil {
		src = source.OS()
	}

	commits, cfgErr, err := s.resolveAll(src)
	if err != nil {
		return err
	}
	if cfgErr != nil {
		log.Debugf("config: %d field error(s)", len(cfgErr.Fields))
		return cfgErr
	}

	for _, c := range commits {
		c()
	}
	return nil
}

func (s *Schema) resolveAll(src source.Source) ([]func(), *Error, error) {
	if err := s.Err(); err != nil {
		return nil, nil, fmt.Errorf("invalid schema: %w", err)
	}

	var (
		commits []func()
		fields  []*FieldError
	)
	for idx, e := range s.entries {
		commit, ferr, err := e.resolve(src)
		if err != nil {
			return nil, nil, err
		}
		if ferr != nil {
			ferr.Index = idx
			if ferr.Path == "" {
				ferr.Path = ferr.Name
			}
			fields = append(fields, ferr)
			continue
		}
		commits = append(commits, commit)
	}

	if len(fields) > 0 {
		return nil, &Error{Fields: fields}, nil
	}
	return commits, nil, nil
}

func (f *FieldSpec[T]) lookup(src source.Source) (key, raw string, ok bool) {
	for _, k := range f.keys {
		if v, found := src.Lookup(k); found {
			return k, v, true
		}
	}
	return "", "", false
}

func (f *FieldSpec[T]) resolve(src source.Source) (func(), *FieldError, error) {
	key, raw, ok := f.lookup(src)
	if !ok {
		switch {
		case f.def != nil:
			log.Debugf("config: field %s uses its default", f.name)
			v := *f.def
			return func() { *f.target = v }, nil, nil
		case f.optional:
			log.Debugf("config: optional field %s not set", f.name)
			return func() {
				var zero T
				*f.target = zero
			}, nil, nil
		default:
			return nil, &FieldError{
				Name:    f.name,
				Kind:    KindMissing,
				Type:    reflect.TypeFor[T](),
				EnvVars: append([]string(nil), f.keys...),
				Secret:  f.secret,
			}, nil
		}
	}

	log.Debugf("config: field %s read from %s", f.name, key)

	v, err := f.dec(raw)
	if err != nil {
		return nil, f.valueError(KindParse, key, raw, err), nil
	}
	for _, check := range f.validate {
		if err := check(v); err != nil {
			return nil, f.valueError(KindInvalid, key, raw, err), nil
		}
	}
	return func() { *f.target = v }, nil, nil
}

func (f *FieldSpec[T]) valueError(kind Kind, key, raw string, cause error) *FieldError {
	ferr := &FieldError{
		Name:    f.name,
		Kind:    kind,
		Type:    reflect.TypeFor[T](),
		EnvVars: []string{key},
		Raw:     raw,
		Secret:  f.secret,
		Err:     cause,
	}
	if f.secret {
		ferr.Raw = secret.Redact(raw)
		ferr.Err = redactCause(cause, raw, ferr.Raw)
	}
	return ferr
}

func (g *groupEntry) resolve(src source.Source) (func(), *FieldError, error) {
	sub, commit := g.build()
	commits, cfgErr, err := sub.resolveAll(src)
	if err != nil {
		return nil, nil, fmt.Errorf("group %q: %w", g.name, err)
	}
	if cfgErr != nil {
		cfgErr.prefix(g.name)
		return nil, &FieldError{Name: g.name, Kind: KindNested, Nested: cfgErr}, nil
	}
	return func() {
		for _, c := range commits {
			c()
		}
		commit()
	}, nil, nil
}

// redactedError hides raw input a custom decoder or validator echoed back.
type redactedError struct {
	msg   string
	cause error
}

func (e *redactedError) Error() string { return e.msg }

func (e *redactedError) Unwrap() error { return e.cause }

// redactCause replaces raw in the cause text, also in the escaped forms %q
// and %+q produce.
func redactCause(cause error, raw, placeholder string) error {
	if cause == nil || raw == "" {
		return cause
	}

	var pairs []string
	for _, form := range rawForms(raw) {
		pairs = append(pairs, form, placeholder)
	}
	msg := cause.Error()
	redacted := strings.NewReplacer(pairs...).Replace(msg)
	if redacted == msg {
		return cause
	}
	return &redactedError{msg: redacted, cause: cause}
}

// rawForms lists raw as quoted and escaped by strconv, longest first, then
// raw itself.
func rawForms(raw string) []string {
	forms := []string{
		strconv.Quote(raw),
		strconv.QuoteToASCII(raw),
	}
	for _, q := range forms[:2] {
		forms = append(forms, q[1:len(q)-1])
	}
	return append(forms, raw)
}
