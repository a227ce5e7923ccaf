// Copyright (c) 2026 The tryphon Authors.
// SPDX-License-Identifier: Apache-2.0

package source

import (
	"fmt"
	"io"
	"os"

	"github.com/joho/godotenv"
	"github.com/tidwall/gjson"
)

// Source looks up a single key.
type Source interface {
	Lookup(key string) (string, bool)
}

// Func adapts a lookup function to Source.
type Func func(key string) (string, bool)

// Lookup implements Source.
func (f Func) Lookup(key string) (string, bool) {
	return f(key)
}

// OS returns a Source backed by the process environment.
func OS() Source {
	return Func(os.LookupEnv)
}

// Map is a Source backed by a fixed set of values.
type Map map[string]string

// Lookup implements Source.
func (m Map) Lookup(key string) (string, bool) {
	v, ok := m[key]
	return v, ok
}

// chain consults its sources in order.
type chain []Source

func (c chain) Lookup(key string) (string, bool) {
	for _, s := range c {
		if v, ok := s.Lookup(key); ok {
			return v, true
		}
	}
	return "", false
}

// Chain returns a Source that consults sources in order and returns the first
// hit. Nil sources are skipped.
func Chain(sources ...Source) Source {
	c := make(chain, 0, len(sources))
	for _, s := range sources {
		if s != nil {
			c = append(c, s)
		}
	}
	return c
}

// DotEnv reads one or more dotenv files, ".env" when none are given. Keys in
// later files override earlier ones.
func DotEnv(paths ...string) (Map, error) {
	values, err := godotenv.Read(paths...)
	if err != nil {
		return nil, fmt.Errorf("failed to read dotenv file: %w", err)
	}
	return Map(values), nil
}

// ParseDotEnv parses dotenv content from r.
func ParseDotEnv(r io.Reader) (Map, error) {
	values, err := godotenv.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse dotenv content: %w", err)
	}
	return Map(values), nil
}

// JSONSource resolves keys as gjson paths into a JSON document. Scalars
// resolve to their string form; arrays and objects to their raw JSON. A JSON
// null counts as absent.
type JSONSource struct {
	doc []byte
}

// JSON returns a JSONSource over doc.
func JSON(doc []byte) (*JSONSource, error) {
	if !gjson.ValidBytes(doc) {
		return nil, fmt.Errorf("invalid JSON document")
	}
	return &JSONSource{doc: doc}, nil
}

// Lookup implements Source.
func (j *JSONSource) Lookup(key string) (string, bool) {
	res := gjson.GetBytes(j.doc, key)
	if !res.Exists() || res.Type == gjson.Null {
		return "", false
	}
	if res.IsObject() || res.IsArray() {
		return res.Raw, true
	}
	return res.String(), true
}
