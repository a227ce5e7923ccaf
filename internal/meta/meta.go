// Copyright (c) 2026 The tryphon Authors.
// SPDX-License-Identifier: Apache-2.0

package meta

import (
	"context"

	"github.com/katlasik/tryphon/internal/settings"
)

// Meta contains runtime metadata shared by commands: the raw CLI arguments,
// the loaded settings, the root context and the working directory the
// process started in.
type Meta struct {
	Args        []string
	Settings    settings.Type
	Context     context.Context
	StartingDir string
}
