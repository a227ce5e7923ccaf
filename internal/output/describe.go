// Copyright (c) 2026 The tryphon Authors.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/apex/log"

	"github.com/katlasik/tryphon/internal/filters"
	"github.com/katlasik/tryphon/pkg/config"
)

var describeColumns = []Column{
	{Key: "field", Title: "FIELD"},
	{Key: "env", Title: "ENV"},
	{Key: "type", Title: "TYPE"},
	{Key: "flags", Title: "FLAGS"},
}

type descriptorRecord struct {
	Field    string   `json:"field" yaml:"field"`
	EnvVars  []string `json:"env_vars" yaml:"env_vars"`
	Type     string   `json:"type" yaml:"type"`
	Secret   bool     `json:"secret" yaml:"secret"`
	Optional bool     `json:"optional" yaml:"optional"`
	Default  bool     `json:"has_default" yaml:"has_default"`
}

// Describe writes the declared fields of a schema: path, variables, Go type
// and secret/optional/default flags.
func Describe(w io.Writer, descs []config.Descriptor, opts Options) error {
	if len(descs) == 0 {
		log.Debugf("describe: no fields declared")
	}

	records := make([]descriptorRecord, 0, len(descs))
	for _, d := range descs {
		records = append(records, descriptorRecord{
			Field:    d.Path,
			EnvVars:  d.EnvVars,
			Type:     d.Type.String(),
			Secret:   d.Secret,
			Optional: d.Optional,
			Default:  d.Default,
		})
	}

	if ok, err := encode(w, opts.Format, records); ok {
		return err
	}

	dataset := make([]map[string]interface{}, 0, len(records))
	for _, r := range records {
		dataset = append(dataset, map[string]interface{}{
			"field": r.Field,
			"env":   strings.Join(r.EnvVars, ", "),
			"type":  r.Type,
			"flags": flagString(r),
		})
	}
	dataset = filters.FilterDataset(dataset, opts.Filter)
	SortDataset(dataset, opts.Sort)

	if opts.Format == FormatTable {
		TableWriter(dataset, describeColumns, opts, w)
		return nil
	}

	for _, row := range dataset {
		line := fmt.Sprintf("%s %s [%s]", row["field"], row["type"], row["env"])
		if f := row["flags"].(string); f != "" {
			line += " " + f
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

func flagString(r descriptorRecord) string {
	var flags []string
	if r.Secret {
		flags = append(flags, "secret")
	}
	if r.Optional {
		flags = append(flags, "optional")
	}
	if r.Default {
		flags = append(flags, "default")
	}
	return strings.Join(flags, ",")
}
