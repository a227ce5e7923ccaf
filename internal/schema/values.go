// Copyright (c) 2026 The tryphon Authors.
// SPDX-License-Identifier: Apache-2.0

package schema

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/dustin/go-humanize"
)

// Value is one declared field and, after a successful load, its value.
type Value struct {
	Path     string
	Type     string
	Elem     string
	EnvVars  []string
	Secret   bool
	Optional bool
	get      func() any
}

// Get returns the loaded value: the decoder's type, a secret.Secret for
// secret fields, or nil for an unset optional field.
func (v Value) Get() any {
	if v.get == nil {
		return nil
	}
	return v.get()
}

// Plain returns Get in a form that marshals cleanly: numbers and booleans as
// they are, everything else through its String method. Secrets stay
// redacted.
func (v Value) Plain() any {
	return plain(v.Get(), v.Type, v.Elem)
}

// Display renders the value for text output. Byte sizes use humanized
// units.
func (v Value) Display() string {
	val := v.Get()
	if val == nil {
		return "-"
	}
	if b, ok := val.(uint64); ok && v.Type == "bytes" {
		return fmt.Sprintf("%s (%d)", humanize.Bytes(b), b)
	}

	p := plain(val, v.Type, v.Elem)
	if list, ok := p.([]any); ok {
		parts := make([]string, len(list))
		for i, e := range list {
			parts[i] = fmt.Sprint(e)
		}
		return strings.Join(parts, ", ")
	}
	return fmt.Sprint(p)
}

func plain(val any, typ, elem string) any {
	switch x := val.(type) {
	case nil:
		return nil
	case fmt.Stringer:
		return x.String()
	case bool, string:
		return x
	}

	if typ == "char" {
		if r, ok := val.(rune); ok {
			return string(r)
		}
	}

	rv := reflect.ValueOf(val)
	switch rv.Kind() {
	case reflect.Slice:
		out := make([]any, rv.Len())
		for i := range out {
			out[i] = plain(rv.Index(i).Interface(), elem, "")
		}
		return out
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int()
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return rv.Uint()
	case reflect.Float32, reflect.Float64:
		return rv.Float()
	default:
		return fmt.Sprint(val)
	}
}

// Values holds the Value of every declared field in declaration order.
type Values struct {
	items []Value
}

func (vs *Values) add(v Value) {
	vs.items = append(vs.items, v)
}

// All returns every Value in declaration order.
func (vs *Values) All() []Value {
	return vs.items
}

// Lookup returns the Value at the dotted path.
func (vs *Values) Lookup(path string) (Value, bool) {
	for _, v := range vs.items {
		if v.Path == path {
			return v, true
		}
	}
	return Value{}, false
}

// Tree returns the values nested by path segment, ready for JSON or YAML
// encoding.
func (vs *Values) Tree() map[string]any {
	root := map[string]any{}
	for _, v := range vs.items {
		parts := strings.Split(v.Path, ".")
		node := root
		for _, p := range parts[:len(parts)-1] {
			child, ok := node[p].(map[string]any)
			if !ok {
				child = map[string]any{}
				node[p] = child
			}
			node = child
		}
		node[parts[len(parts)-1]] = v.Plain()
	}
	return root
}
