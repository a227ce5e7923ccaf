// Copyright (c) 2026 The tryphon Authors.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package settings loads tryphon's own YAML settings file and offers typed
// accessors over it. The file is located by TRYPHON_CFG_FILE or, failing
// that, as tryphon.yaml in the directory returned by os.UserConfigDir:
//   - Linux: $XDG_CONFIG_HOME/tryphon.yaml or $HOME/.config/tryphon.yaml
//   - macOS: $HOME/Library/Application Support/tryphon.yaml
//   - Windows: %APPDATA%/tryphon.yaml
//
// A missing file is not an error for callers of the getters; every getter
// takes a default.
package settings
