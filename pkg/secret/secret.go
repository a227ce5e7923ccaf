// Copyright (c) 2026 The tryphon Authors.
// SPDX-License-Identifier: Apache-2.0

package secret

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"reflect"

	"golang.org/x/crypto/blake2b"
)

// fingerprintLen is the number of digest bytes shown in a rendering.
const fingerprintLen = 8

// Secret holds a value of type T that must never be rendered in clear text.
// The zero value holds the zero value of T.
//
// The value sits behind a pointer, so fmt only ever prints an address when a
// Secret is reached through an unexported struct field. Two Secrets are equal
// by == only if they share storage; use Equal to compare values.
type Secret[T any] struct {
	value *T
}

// Marker is implemented by every Secret instantiation. It lets callers that
// only hold an interface value or a reflect.Type detect secrecy.
type Marker interface {
	redacted()
}

// New wraps v.
func New[T any](v T) Secret[T] {
	return Secret[T]{value: &v}
}

// Expose returns the wrapped value. It is the only way to reach it.
func (s Secret[T]) Expose() T {
	if s.value == nil {
		var zero T
		return zero
	}
	return *s.value
}

// Equal reports whether the wrapped value equals v.
func (s Secret[T]) Equal(v T) bool {
	return reflect.DeepEqual(s.Expose(), v)
}

// Fingerprint returns a hex BLAKE2b digest prefix of the wrapped value.
func (s Secret[T]) Fingerprint() string {
	sum := blake2b.Sum256(fmt.Appendf(nil, "%v", s.Expose()))
	return hex.EncodeToString(sum[:fingerprintLen])
}

// String implements fmt.Stringer.
func (s Secret[T]) String() string {
	return "Secret(" + s.Fingerprint() + ")"
}

// GoString implements fmt.GoStringer so %#v stays redacted.
func (s Secret[T]) GoString() string {
	return s.String()
}

// Format implements fmt.Formatter. Every verb yields the redacted form.
func (s Secret[T]) Format(f fmt.State, _ rune) {
	_, _ = io.WriteString(f, s.String())
}

// MarshalJSON encodes the redacted form as a JSON string.
func (s Secret[T]) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// MarshalText implements encoding.TextMarshaler with the redacted form.
func (s Secret[T]) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// MarshalYAML implements yaml.Marshaler with the redacted form.
func (s Secret[T]) MarshalYAML() (any, error) {
	return s.String(), nil
}

func (Secret[T]) redacted() {}

// IsSecret reports whether v is a Secret or a pointer to one.
func IsSecret(v any) bool {
	_, ok := v.(Marker)
	return ok
}

// IsSecretType reports whether values of type t are Secrets, directly or
// behind any number of pointers.
func IsSecretType(t reflect.Type) bool {
	marker := reflect.TypeFor[Marker]()
	for t != nil {
		if t.Implements(marker) {
			return true
		}
		if t.Kind() != reflect.Pointer {
			return false
		}
		t = t.Elem()
	}
	return false
}

// Redact returns the placeholder a Secret holding raw would render as. It is
// used to keep raw input out of diagnostics.
func Redact(raw string) string {
	return New(raw).String()
}
