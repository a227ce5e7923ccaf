// Copyright (c) 2026 The tryphon Authors.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katlasik/tryphon/internal/settings"
	"github.com/katlasik/tryphon/internal/version"
)

func TestDeduplicateFlags(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		expected []string
	}{
		{
			name:     "empty args",
			args:     []string{},
			expected: []string{},
		},
		{
			name:     "only program and command",
			args:     []string{"tryphon", "check"},
			expected: []string{"tryphon", "check"},
		},
		{
			name:     "no duplicates",
			args:     []string{"tryphon", "show", "--output", "table", "--titles"},
			expected: []string{"tryphon", "show", "--output", "table", "--titles"},
		},
		{
			name:     "duplicate flag with value - last wins",
			args:     []string{"tryphon", "show", "--output", "json", "--titles", "--output", "table"},
			expected: []string{"tryphon", "show", "--titles", "--output", "table"},
		},
		{
			name:     "duplicate boolean flag",
			args:     []string{"tryphon", "show", "--titles", "--color", "--titles"},
			expected: []string{"tryphon", "show", "--color", "--titles"},
		},
		{
			name:     "boolean flag does not swallow positional",
			args:     []string{"tryphon", "diff", "--exit-code", "a.env", "--exit-code", "b.env"},
			expected: []string{"tryphon", "diff", "a.env", "--exit-code", "b.env"},
		},
		{
			name:     "duplicate flag with equals syntax",
			args:     []string{"tryphon", "show", "--output=json", "--titles", "--output=yaml"},
			expected: []string{"tryphon", "show", "--titles", "--output=yaml"},
		},
		{
			name:     "mixed equals and space syntax - same flag",
			args:     []string{"tryphon", "show", "--output=json", "--output", "yaml"},
			expected: []string{"tryphon", "show", "--output", "yaml"},
		},
		{
			name:     "short flags deduplicated",
			args:     []string{"tryphon", "show", "-o", "json", "-o", "table"},
			expected: []string{"tryphon", "show", "-o", "table"},
		},
		{
			name:     "repeatable flags kept",
			args:     []string{"tryphon", "check", "-e", ".env", "--env-file", ".env.local", "-e", ".env.prod"},
			expected: []string{"tryphon", "check", "-e", ".env", "--env-file", ".env.local", "-e", ".env.prod"},
		},
		{
			name:     "triple duplicate",
			args:     []string{"tryphon", "show", "--schema", "a", "--schema", "b", "--schema", "c"},
			expected: []string{"tryphon", "show", "--schema", "c"},
		},
		{
			name:     "double dash ends processing",
			args:     []string{"tryphon", "show", "--schema", "a", "--", "--schema", "b"},
			expected: []string{"tryphon", "show", "--schema", "a", "--", "--schema", "b"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, deduplicateFlags(tt.args))
		})
	}
}

func TestExpandSet(t *testing.T) {
	tests := []struct {
		name      string
		args      []string
		entries   []string
		insertIdx int
		expected  []string
	}{
		{
			name:      "no entries returns args unchanged",
			args:      []string{"tryphon", "check", "--quiet"},
			insertIdx: 2,
			expected:  []string{"tryphon", "check", "--quiet"},
		},
		{
			name:      "multi-word entry split",
			args:      []string{"tryphon", "check", "--quiet"},
			entries:   []string{"--output table"},
			insertIdx: 2,
			expected:  []string{"tryphon", "check", "--output", "table", "--quiet"},
		},
		{
			name:      "multiple entries",
			args:      []string{"tryphon", "show"},
			entries:   []string{"--titles", "--env-file  .env.prod"},
			insertIdx: 2,
			expected:  []string{"tryphon", "show", "--titles", "--env-file", ".env.prod"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, expandSet(tt.args, tt.entries, tt.insertIdx))
		})
	}
}

func withSettings(t *testing.T, content string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tryphon.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	t.Setenv(settings.EnvFile, path)
	settings.Reset()
	t.Cleanup(settings.Reset)
}

func TestProcessSetArgs(t *testing.T) {
	withSettings(t, `
check:
  defaults:
    - --quiet
  prod:
    - --env-file .env.prod
    - --output table
`)

	assert.Equal(t,
		[]string{"tryphon", "check", "--quiet", "--schema", "s.yaml"},
		processSetArgs([]string{"tryphon", "check", "--schema", "s.yaml"}))

	assert.Equal(t,
		[]string{"tryphon", "check", "--env-file", ".env.prod", "--output", "json"},
		processSetArgs([]string{"tryphon", "check", "@prod", "--output", "json"}))

	assert.Equal(t,
		[]string{"tryphon", "show", "--titles"},
		processSetArgs([]string{"tryphon", "show", "--titles"}))

	assert.Equal(t,
		[]string{"tryphon", "--version"},
		processSetArgs([]string{"tryphon", "--version"}))
}

func TestHandleNakedCommand(t *testing.T) {
	assert.Equal(t, []string{"tryphon", "--help"}, handleNakedCommand([]string{"tryphon"}))
	assert.Equal(t, []string{"tryphon", "check"}, handleNakedCommand([]string{"tryphon", "check"}))
}

func TestRealMain(t *testing.T) {
	withSettings(t, "padding: 2\n")
	dir := t.TempDir()
	schemaPath := filepath.Join(dir, "app.yaml")
	require.NoError(t, os.WriteFile(schemaPath, []byte("fields:\n  - name: tryphon_test_value\n    type: int\n"), 0o600))

	t.Run("version", func(t *testing.T) {
		var out, errOut bytes.Buffer
		assert.Equal(t, 0, realMain([]string{"tryphon", "--version"}, &out, &errOut))
		assert.Equal(t, version.String()+"\n", out.String())
	})

	t.Run("valid", func(t *testing.T) {
		t.Setenv("TRYPHON_TEST_VALUE", "42")
		var out, errOut bytes.Buffer
		assert.Equal(t, 0, realMain([]string{"tryphon", "check", "--schema", schemaPath}, &out, &errOut))
		assert.Contains(t, out.String(), "Configuration is valid")
	})

	t.Run("invalid", func(t *testing.T) {
		t.Setenv("TRYPHON_TEST_VALUE", "forty-two")
		var out, errOut bytes.Buffer
		assert.Equal(t, 1, realMain([]string{"tryphon", "check", "--schema", schemaPath}, &out, &errOut))
		assert.Contains(t, out.String(), "Parsing error for env var 'TRYPHON_TEST_VALUE'")
		assert.Empty(t, errOut.String())
	})

	t.Run("usage", func(t *testing.T) {
		var out, errOut bytes.Buffer
		assert.Equal(t, 2, realMain([]string{"tryphon", "check", "--schema", filepath.Join(dir, "none.yaml")}, &out, &errOut))
		assert.Contains(t, errOut.String(), "reading schema")
	})
}
