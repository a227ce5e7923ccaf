// Copyright (c) 2026 The tryphon Authors.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package decode converts raw environment strings into typed values.
//
// A Decoder is a plain function, so custom types only need a function with
// the right signature. Built-in decoders never echo the raw input in their
// error messages: the loader may be decoding a secret.
//
// Decoders compose:
//
//	decode.List(decode.Int[int])           // "1, 2, 3" -> []int{1, 2, 3}
//	decode.NonZero(decode.Uint[uint16])    // rejects "0"
//	decode.Secret(decode.String)           // wraps the result
//	decode.OneOf("error", "warn", "info")  // case-insensitive enum
package decode
