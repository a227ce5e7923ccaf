// Copyright (c) 2026 The tryphon Authors.
// SPDX-License-Identifier: Apache-2.0

// Do not import any other tryphon packages to avoid import cycles.

package version

import "runtime/debug"

// Version is the module version, or "dev" for local builds.
var Version = func() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}
	return "dev"
}()

// Revision is the VCS revision the binary was built from, shortened to 12
// characters, or empty when unknown.
var Revision = func() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return ""
	}
	for _, s := range info.Settings {
		if s.Key == "vcs.revision" {
			if len(s.Value) > 12 {
				return s.Value[:12]
			}
			return s.Value
		}
	}
	return ""
}()

// String returns Version with the revision appended when known.
func String() string {
	if Revision == "" {
		return Version
	}
	return Version + " (" + Revision + ")"
}
