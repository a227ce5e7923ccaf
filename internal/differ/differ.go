// Copyright (c) 2026 The tryphon Authors.
// SPDX-License-Identifier: Apache-2.0

package differ

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/apex/log"
	"github.com/yudai/gojsondiff"
	"github.com/yudai/gojsondiff/formatter"
)

// Identical is printed when both sides resolve to the same values.
const Identical = "The configurations are identical."

// Options controls Diff.
type Options struct {
	// Ignore lists top-level keys left out of the comparison.
	Ignore []string
	// Color enables ANSI coloring of the delta.
	Color bool
}

// Diff compares two resolved configurations and writes an ASCII delta to w.
// It reports whether they differ. Secret values arrive already redacted, so
// a changed secret shows up as a changed fingerprint.
func Diff(w io.Writer, left, right map[string]any, opts Options) (bool, error) {
	log.Debugf(">> differ()")

	left, right = without(left, opts.Ignore), without(right, opts.Ignore)

	a, err := json.Marshal(left)
	if err != nil {
		return false, fmt.Errorf("failed to marshal left side: %w", err)
	}
	b, err := json.Marshal(right)
	if err != nil {
		return false, fmt.Errorf("failed to marshal right side: %w", err)
	}
	log.Debugf("differ: %d and %d bytes", len(a), len(b))

	delta, err := gojsondiff.New().Compare(a, b)
	if err != nil {
		return false, fmt.Errorf("failed to compare configurations: %w", err)
	}

	if !delta.Modified() {
		fmt.Fprintln(w, Identical)
		return false, nil
	}

	// The formatter needs the left document in its decoded JSON form.
	var jdoc map[string]interface{}
	if err := json.Unmarshal(a, &jdoc); err != nil {
		return true, fmt.Errorf("failed to unmarshal left side: %w", err)
	}

	config := formatter.AsciiFormatterConfig{
		ShowArrayIndex: false,
		Coloring:       opts.Color,
	}

	diffString, err := formatter.NewAsciiFormatter(jdoc, config).Format(delta)
	if err != nil {
		return true, err
	}

	fmt.Fprint(w, diffString)
	if !strings.HasSuffix(diffString, "\n") {
		fmt.Fprintln(w)
	}
	return true, nil
}

func without(doc map[string]any, keys []string) map[string]any {
	if len(keys) == 0 {
		return doc
	}
	out := make(map[string]any, len(doc))
	for k, v := range doc {
		out[k] = v
	}
	for _, k := range keys {
		if k = strings.TrimSpace(k); k != "" {
			delete(out, k)
		}
	}
	return out
}
