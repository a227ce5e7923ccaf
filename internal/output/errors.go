// Copyright (c) 2026 The tryphon Authors.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"fmt"
	"io"

	"github.com/katlasik/tryphon/pkg/config"
)

// errorRecord is the JSON and YAML shape of one failure.
type errorRecord struct {
	Field   string   `json:"field" yaml:"field"`
	Kind    string   `json:"kind" yaml:"kind"`
	Type    string   `json:"type,omitempty" yaml:"type,omitempty"`
	EnvVars []string `json:"env_vars" yaml:"env_vars"`
	Raw     string   `json:"raw,omitempty" yaml:"raw,omitempty"`
	Secret  bool     `json:"secret,omitempty" yaml:"secret,omitempty"`
	Error   string   `json:"error" yaml:"error"`
}

// Errors renders every leaf failure of e. The list and table forms are the
// ones config.Error prints itself.
func Errors(w io.Writer, e *config.Error, opts Options) error {
	leaves := e.Leaves()

	records := make([]errorRecord, 0, len(leaves))
	for _, l := range leaves {
		r := errorRecord{
			Field:   l.Path,
			Kind:    l.Kind.String(),
			EnvVars: l.EnvVars,
			Raw:     l.Raw,
			Secret:  l.Secret,
		}
		if l.Type != nil {
			r.Type = l.Type.String()
		}
		if l.Err != nil {
			r.Error = l.Err.Error()
		} else {
			r.Error = l.Row()[2]
		}
		records = append(records, r)
	}

	if ok, err := encode(w, opts.Format, records); ok {
		return err
	}

	mode := config.PrintList
	if opts.Format == FormatTable {
		mode = config.PrintTable
	}
	out := e.Print(mode)
	if mode == config.PrintList {
		out += "\n"
	}
	_, err := fmt.Fprint(w, out)
	return err
}
