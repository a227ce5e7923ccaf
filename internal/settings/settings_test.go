// Copyright (c) 2026 The tryphon Authors.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package settings

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `
schema: ./tryphon.hcl
output: table
color: true
width: 120
ratio: 2.0
colors:
  title: "#FFFFFF"
  even: "#00FF00"
env_files:
  - .env
  - .env.local
mixed:
  - a
  - 1
prod:
  output: json
`

// withSettings writes content to a temp file, points TRYPHON_CFG_FILE at it
// and resets the loaded settings around fn.
func withSettings(t *testing.T, content string, fn func(t *testing.T)) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tryphon.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	t.Setenv(EnvFile, path)
	Reset()
	t.Cleanup(Reset)
	fn(t)
}

func TestLoad(t *testing.T) {
	withSettings(t, sample, func(t *testing.T) {
		s, err := Load()
		require.NoError(t, err)
		assert.NotEmpty(t, s.Source)
		assert.Equal(t, "table", s.Data["output"])
		assert.Equal(t, s, Settings)
	})
}

func TestLoad_InvalidYAML(t *testing.T) {
	withSettings(t, "output: [unterminated", func(t *testing.T) {
		_, err := Load()
		assert.ErrorContains(t, err, "parsing")
	})
}

func TestFile(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		t.Setenv(EnvFile, "/nonexistent/path/tryphon.yaml")
		_, err := File()
		assert.ErrorContains(t, err, "settings file not found")
	})

	t.Run("directory", func(t *testing.T) {
		t.Setenv(EnvFile, t.TempDir())
		_, err := File()
		assert.ErrorContains(t, err, "points to a directory")
	})

	t.Run("user config dir", func(t *testing.T) {
		dir := t.TempDir()
		t.Setenv(EnvFile, "")
		t.Setenv("XDG_CONFIG_HOME", dir)
		t.Setenv("HOME", dir)
		t.Setenv("APPDATA", dir)
		userDir, err := os.UserConfigDir()
		require.NoError(t, err)
		require.NoError(t, os.MkdirAll(userDir, 0o700))
		require.NoError(t, os.WriteFile(filepath.Join(userDir, "tryphon.yaml"), []byte("output: yaml\n"), 0o600))

		path, err := File()
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(userDir, "tryphon.yaml"), path)
	})
}

func TestGetters(t *testing.T) {
	withSettings(t, sample, func(t *testing.T) {
		s, err := GetString("output")
		require.NoError(t, err)
		assert.Equal(t, "table", s)

		s, err = GetString("colors.title")
		require.NoError(t, err)
		assert.Equal(t, "#FFFFFF", s)

		s, err = GetString("colors.odd", "#CCCCCC")
		require.NoError(t, err)
		assert.Equal(t, "#CCCCCC", s)

		_, err = GetString("width")
		assert.ErrorContains(t, err, "not a string")

		_, err = GetString("nope")
		assert.Error(t, err)

		n, err := GetInt("width")
		require.NoError(t, err)
		assert.Equal(t, 120, n)

		n, err = GetInt("ratio")
		require.NoError(t, err)
		assert.Equal(t, 2, n)

		n, err = GetInt("missing", 7)
		require.NoError(t, err)
		assert.Equal(t, 7, n)

		b, err := GetBool("color")
		require.NoError(t, err)
		assert.True(t, b)

		_, err = GetBool("output")
		assert.Error(t, err)

		files, err := GetStringSlice("env_files")
		require.NoError(t, err)
		assert.Equal(t, []string{".env", ".env.local"}, files)

		_, err = GetStringSlice("mixed")
		assert.ErrorContains(t, err, "element 1")

		files, err = GetStringSlice("none", []string{"x"})
		require.NoError(t, err)
		assert.Equal(t, []string{"x"}, files)
	})
}

func TestNamespace(t *testing.T) {
	withSettings(t, sample, func(t *testing.T) {
		_, err := Load()
		require.NoError(t, err)
		Settings.Namespace = "prod"

		s, err := GetString("output")
		require.NoError(t, err)
		assert.Equal(t, "json", s)

		s, err = GetString("schema")
		require.NoError(t, err)
		assert.Equal(t, "./tryphon.hcl", s)
	})
}

func TestGettersWithoutFile(t *testing.T) {
	t.Setenv(EnvFile, "/nonexistent/tryphon.yaml")
	Reset()
	t.Cleanup(Reset)

	s, err := GetString("output", "list")
	require.NoError(t, err)
	assert.Equal(t, "list", s)
}
