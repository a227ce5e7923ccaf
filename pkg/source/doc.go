// Copyright (c) 2026 The tryphon Authors.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package source provides the key/value lookups the config loader reads
// from. OS reads the process environment; Map, DotEnv and JSON let tests and
// tools substitute their own values without touching the real environment.
package source
