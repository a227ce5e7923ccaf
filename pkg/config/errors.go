// Copyright (c) 2026 The tryphon Authors.
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
)

// Kind classifies a field failure.
type Kind int

const (
	// KindMissing: no variable found and no default declared.
	KindMissing Kind = iota + 1
	// KindParse: a variable was found but could not be decoded.
	KindParse
	// KindInvalid: the decoded value was rejected by a Validate hook.
	KindInvalid
	// KindNested: a nested group failed; see FieldError.Nested.
	KindNested
)

func (k Kind) String() string {
	switch k {
	case KindMissing:
		return "missing"
	case KindParse:
		return "parse"
	case KindInvalid:
		return "invalid"
	case KindNested:
		return "nested"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Sentinels matched by errors.Is against a FieldError or an Error.
var (
	ErrMissing = errors.New("missing value")
	ErrParse   = errors.New("parsing error")
	ErrInvalid = errors.New("invalid value")
)

func (k Kind) sentinel() error {
	switch k {
	case KindMissing:
		return ErrMissing
	case KindParse:
		return ErrParse
	case KindInvalid:
		return ErrInvalid
	default:
		return nil
	}
}

// FieldError describes the failure of one field.
type FieldError struct {
	// Index is the field's position in its schema.
	Index int
	Name  string
	// Path is Name prefixed with the names of enclosing groups, dot separated.
	Path string
	Kind Kind
	// Type is the Go type the field decodes into. It is nil for KindNested.
	Type reflect.Type
	// EnvVars holds every key tried for KindMissing and the key that was
	// read for KindParse and KindInvalid.
	EnvVars []string
	// Raw is the value read. For secret fields it is already redacted.
	Raw    string
	Secret bool
	Err    error
	// Nested is set for KindNested.
	Nested *Error
}

// Error renders the failure without the field path of enclosing groups.
func (e *FieldError) Error() string {
	switch e.Kind {
	case KindMissing:
		return fmt.Sprintf("missing value for field '%s', tried env vars: %s", e.Name, strings.Join(e.EnvVars, ", "))
	case KindParse:
		return fmt.Sprintf("parsing error for env var '%s' for field '%s': %v (raw value: %s)", e.envVar(), e.Name, e.Err, e.Raw)
	case KindInvalid:
		return fmt.Sprintf("invalid value for field '%s' from env var '%s': %v", e.Name, e.envVar(), e.Err)
	case KindNested:
		return fmt.Sprintf("field '%s': %d nested error(s)", e.Name, len(e.Nested.Leaves()))
	default:
		return fmt.Sprintf("field '%s': %v", e.Name, e.Err)
	}
}

// Unwrap exposes the kind sentinel, the decoder or validator cause and, for
// nested failures, the nested Error.
func (e *FieldError) Unwrap() []error {
	var errs []error
	if s := e.Kind.sentinel(); s != nil {
		errs = append(errs, s)
	}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	if e.Nested != nil {
		errs = append(errs, e.Nested)
	}
	return errs
}

func (e *FieldError) envVar() string {
	if len(e.EnvVars) == 0 {
		return ""
	}
	return e.EnvVars[0]
}

// Error aggregates every field failure of one load.
type Error struct {
	Fields []*FieldError
}

// Error renders the list form.
func (e *Error) Error() string {
	return e.Print(PrintList)
}

// Unwrap exposes each leaf failure to errors.Is and errors.As, so errors.As
// never stops at a nested group wrapper.
func (e *Error) Unwrap() []error {
	leaves := e.Leaves()
	errs := make([]error, 0, len(leaves))
	for _, l := range leaves {
		errs = append(errs, l.FieldError)
	}
	return errs
}

// prefix prepends group to the Path of every failure below e.
func (e *Error) prefix(group string) {
	for _, f := range e.Fields {
		f.Path = joinPath(group, f.Path)
		if f.Nested != nil {
			f.Nested.prefix(group)
		}
	}
}

// Leaf is a non-nested field failure together with its dotted path.
type Leaf struct {
	Path string
	*FieldError
}

// Leaves flattens nested failures in declaration order.
func (e *Error) Leaves() []Leaf {
	if e == nil {
		return nil
	}
	var out []Leaf
	e.collectLeaves("", &out)
	return out
}

func (e *Error) collectLeaves(prefix string, out *[]Leaf) {
	for _, f := range e.Fields {
		path := joinPath(prefix, f.Name)
		if f.Kind == KindNested && f.Nested != nil {
			f.Nested.collectLeaves(path, out)
			continue
		}
		*out = append(*out, Leaf{Path: path, FieldError: f})
	}
}

// Has reports whether the field at the dotted path failed.
func (e *Error) Has(path string) bool {
	for _, l := range e.Leaves() {
		if l.Path == path {
			return true
		}
	}
	return false
}
