// Copyright (c) 2026 The tryphon Authors.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package secret provides Secret, a wrapper that keeps sensitive
// configuration values out of logs and debug output.
//
// A Secret renders as Secret(<fingerprint>) under every fmt verb and in JSON,
// YAML and text marshalling. The fingerprint is a short BLAKE2b digest of the
// value, so two renderings can be compared without revealing either value.
// The wrapped value is only reachable through Expose.
package secret
