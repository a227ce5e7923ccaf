// Copyright (c) 2026 The tryphon Authors.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package differ computes and renders differences between the resolved
// configuration of two environments.
package differ
