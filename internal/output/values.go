// Copyright (c) 2026 The tryphon Authors.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/katlasik/tryphon/internal/filters"
	"github.com/katlasik/tryphon/internal/schema"
)

var valueColumns = []Column{
	{Key: "field", Title: "FIELD"},
	{Key: "value", Title: "VALUE"},
	{Key: "type", Title: "TYPE"},
	{Key: "env", Title: "ENV"},
}

// Values renders resolved values. JSON and YAML nest them by group; list
// prints "path = value" lines; table uses TableWriter.
func Values(w io.Writer, vals *schema.Values, opts Options) error {
	if ok, err := encode(w, opts.Format, vals.Tree()); ok {
		return err
	}

	dataset := ValueDataset(vals)
	dataset = filters.FilterDataset(dataset, opts.Filter)
	SortDataset(dataset, opts.Sort)

	if opts.Format == FormatTable {
		TableWriter(dataset, valueColumns, opts, w)
		return nil
	}

	for _, row := range dataset {
		if _, err := fmt.Fprintf(w, "%s = %s\n", row["field"], row["value"]); err != nil {
			return err
		}
	}
	return nil
}

// ValueDataset flattens vals into table rows keyed by column.
func ValueDataset(vals *schema.Values) []map[string]interface{} {
	all := vals.All()
	dataset := make([]map[string]interface{}, 0, len(all))
	for _, v := range all {
		typ := v.Type
		if typ == "list" && v.Elem != "" {
			typ = "list(" + v.Elem + ")"
		}
		dataset = append(dataset, map[string]interface{}{
			"field":  v.Path,
			"value":  v.Display(),
			"type":   typ,
			"env":    strings.Join(v.EnvVars, ", "),
			"secret": v.Secret,
		})
	}
	return dataset
}
