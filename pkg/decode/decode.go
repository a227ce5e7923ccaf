// Copyright (c) 2026 The tryphon Authors.
// SPDX-License-Identifier: Apache-2.0

package decode

import (
	"errors"
	"fmt"
	"net/netip"
	"net/url"
	"path/filepath"
	"reflect"
	"slices"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/dustin/go-humanize"
	"golang.org/x/exp/constraints"

	"github.com/katlasik/tryphon/pkg/secret"
)

// Decoder converts a raw string into a T.
type Decoder[T any] func(raw string) (T, error)

// ErrZero is returned by NonZero decoders for zero values.
var ErrZero = errors.New("value must be non-zero")

// String returns raw unchanged.
func String(raw string) (string, error) {
	return raw, nil
}

// Bool accepts the forms understood by strconv.ParseBool.
func Bool(raw string) (bool, error) {
	b, err := strconv.ParseBool(strings.TrimSpace(raw))
	if err != nil {
		return false, errors.New("invalid boolean, expected true or false")
	}
	return b, nil
}

// Int decodes a base-10 signed integer that fits in T.
func Int[T constraints.Signed](raw string) (T, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(raw), 10, bitSize[T]())
	if err != nil {
		return 0, numError("integer", err)
	}
	return T(n), nil
}

// Uint decodes a base-10 unsigned integer that fits in T.
func Uint[T constraints.Unsigned](raw string) (T, error) {
	n, err := strconv.ParseUint(strings.TrimSpace(raw), 10, bitSize[T]())
	if err != nil {
		return 0, numError("unsigned integer", err)
	}
	return T(n), nil
}

// Float decodes a floating point number that fits in T.
func Float[T constraints.Float](raw string) (T, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(raw), bitSize[T]())
	if err != nil {
		return 0, numError("float", err)
	}
	return T(f), nil
}

// Char decodes exactly one character.
func Char(raw string) (rune, error) {
	if utf8.RuneCountInString(raw) != 1 {
		return 0, errors.New("expected exactly one character")
	}
	r, _ := utf8.DecodeRuneInString(raw)
	return r, nil
}

// Duration decodes a time.Duration such as "1m30s".
func Duration(raw string) (time.Duration, error) {
	d, err := time.ParseDuration(strings.TrimSpace(raw))
	if err != nil {
		return 0, errors.New("invalid duration, expected a value like 30s or 1h15m")
	}
	return d, nil
}

// Bytes decodes a human-readable size such as "512", "10MB" or "1.5 GiB".
func Bytes(raw string) (uint64, error) {
	n, err := humanize.ParseBytes(strings.TrimSpace(raw))
	if err != nil {
		return 0, errors.New("invalid byte size, expected a value like 512KB or 10MiB")
	}
	return n, nil
}

// IP decodes an IPv4 or IPv6 address.
func IP(raw string) (netip.Addr, error) {
	addr, err := netip.ParseAddr(strings.TrimSpace(raw))
	if err != nil {
		return netip.Addr{}, errors.New("invalid IP address syntax")
	}
	return addr, nil
}

// IPv4 decodes an IPv4 address.
func IPv4(raw string) (netip.Addr, error) {
	addr, err := IP(raw)
	if err != nil || !addr.Is4() {
		return netip.Addr{}, errors.New("invalid IPv4 address syntax")
	}
	return addr, nil
}

// IPv6 decodes an IPv6 address.
func IPv6(raw string) (netip.Addr, error) {
	addr, err := IP(raw)
	if err != nil || !addr.Is6() {
		return netip.Addr{}, errors.New("invalid IPv6 address syntax")
	}
	return addr, nil
}

// AddrPort decodes a socket address such as "127.0.0.1:8080" or "[::1]:80".
func AddrPort(raw string) (netip.AddrPort, error) {
	ap, err := netip.ParseAddrPort(strings.TrimSpace(raw))
	if err != nil {
		return netip.AddrPort{}, errors.New("invalid socket address syntax")
	}
	return ap, nil
}

// URL decodes an absolute URL.
func URL(raw string) (*url.URL, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || u.Scheme == "" {
		return nil, errors.New("invalid URL, expected scheme://host/path")
	}
	return u, nil
}

// Path decodes a filesystem path and cleans it.
func Path(raw string) (string, error) {
	if strings.TrimSpace(raw) == "" {
		return "", errors.New("empty path")
	}
	return filepath.Clean(raw), nil
}

// Enum decodes one of the keys of values, ignoring case.
func Enum[T any](values map[string]T) Decoder[T] {
	folded := make(map[string]T, len(values))
	names := make([]string, 0, len(values))
	for k, v := range values {
		folded[strings.ToLower(k)] = v
		names = append(names, k)
	}
	slices.Sort(names)

	return func(raw string) (T, error) {
		if v, ok := folded[strings.ToLower(strings.TrimSpace(raw))]; ok {
			return v, nil
		}
		var zero T
		return zero, fmt.Errorf("unknown variant, expected one of: %s", strings.Join(names, ", "))
	}
}

// OneOf is Enum for string-like types whose values are their own names.
func OneOf[T ~string](values ...T) Decoder[T] {
	m := make(map[string]T, len(values))
	for _, v := range values {
		m[string(v)] = v
	}
	return Enum(m)
}

// List decodes a comma-separated list. Blank input yields an empty list.
func List[T any](elem Decoder[T]) Decoder[[]T] {
	return func(raw string) ([]T, error) {
		out := []T{}
		if strings.TrimSpace(raw) == "" {
			return out, nil
		}
		for i, part := range strings.Split(raw, ",") {
			v, err := elem(strings.TrimSpace(part))
			if err != nil {
				return nil, fmt.Errorf("element %d: %w", i, err)
			}
			out = append(out, v)
		}
		return out, nil
	}
}

// NonZero rejects the zero value of T.
func NonZero[T comparable](dec Decoder[T]) Decoder[T] {
	return func(raw string) (T, error) {
		v, err := dec(raw)
		if err != nil {
			return v, err
		}
		var zero T
		if v == zero {
			return zero, ErrZero
		}
		return v, nil
	}
}

// Pointer wraps the decoded value in a pointer. Optional fields use it.
func Pointer[T any](dec Decoder[T]) Decoder[*T] {
	return func(raw string) (*T, error) {
		v, err := dec(raw)
		if err != nil {
			return nil, err
		}
		return &v, nil
	}
}

// Secret wraps the decoded value in a secret.Secret.
func Secret[T any](dec Decoder[T]) Decoder[secret.Secret[T]] {
	return func(raw string) (secret.Secret[T], error) {
		v, err := dec(raw)
		if err != nil {
			return secret.Secret[T]{}, err
		}
		return secret.New(v), nil
	}
}

// TextUnmarshaler adapts any type whose pointer implements
// encoding.TextUnmarshaler.
func TextUnmarshaler[T any, PT interface {
	*T
	UnmarshalText([]byte) error
}](raw string) (T, error) {
	var v T
	if err := PT(&v).UnmarshalText([]byte(raw)); err != nil {
		return v, err
	}
	return v, nil
}

func bitSize[T any]() int {
	return int(reflect.TypeFor[T]().Size()) * 8
}

// numError strips the raw input strconv embeds in its messages.
func numError(kind string, err error) error {
	var ne *strconv.NumError
	if errors.As(err, &ne) {
		if errors.Is(ne.Err, strconv.ErrRange) {
			return fmt.Errorf("%s out of range", kind)
		}
		return fmt.Errorf("invalid %s syntax", kind)
	}
	return fmt.Errorf("invalid %s", kind)
}
