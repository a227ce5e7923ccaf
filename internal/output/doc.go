// Copyright (c) 2026 The tryphon Authors.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package output renders load errors, resolved values and field descriptors
// as text tables, JSON or YAML.
package output
