// Copyright (c) 2026 The tryphon Authors.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package source

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOS(t *testing.T) {
	t.Setenv("TRYPHON_SOURCE_TEST", "from-env")

	v, ok := OS().Lookup("TRYPHON_SOURCE_TEST")
	assert.True(t, ok)
	assert.Equal(t, "from-env", v)

	t.Setenv("TRYPHON_SOURCE_EMPTY", "")
	v, ok = OS().Lookup("TRYPHON_SOURCE_EMPTY")
	assert.True(t, ok, "set but empty is present")
	assert.Equal(t, "", v)

	_, ok = OS().Lookup("TRYPHON_SOURCE_DOES_NOT_EXIST")
	assert.False(t, ok)
}

func TestChain(t *testing.T) {
	src := Chain(
		Map{"A": "first"},
		nil,
		Map{"A": "second", "B": "second"},
	)

	v, ok := src.Lookup("A")
	assert.True(t, ok)
	assert.Equal(t, "first", v)

	v, ok = src.Lookup("B")
	assert.True(t, ok)
	assert.Equal(t, "second", v)

	_, ok = src.Lookup("C")
	assert.False(t, ok)

	_, ok = Chain().Lookup("A")
	assert.False(t, ok)
}

func TestDotEnv(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "first.env")
	second := filepath.Join(dir, "second.env")
	require.NoError(t, os.WriteFile(first, []byte("DB_HOST=localhost\nDB_PORT=5432\n"), 0o600))
	require.NoError(t, os.WriteFile(second, []byte("# comment\nDB_PORT=6543\nexport API_KEY=\"qwerty\"\n"), 0o600))

	m, err := DotEnv(first, second)
	require.NoError(t, err)
	assert.Equal(t, Map{"DB_HOST": "localhost", "DB_PORT": "6543", "API_KEY": "qwerty"}, m)

	_, err = DotEnv(filepath.Join(dir, "missing.env"))
	assert.Error(t, err)
}

func TestParseDotEnv(t *testing.T) {
	m, err := ParseDotEnv(strings.NewReader("PORT=8080\nNAME='app'\n"))
	require.NoError(t, err)

	v, ok := m.Lookup("NAME")
	assert.True(t, ok)
	assert.Equal(t, "app", v)
}

func TestJSON(t *testing.T) {
	src, err := JSON([]byte(`{"PORT": 8080, "DEBUG": true, "db": {"host": "localhost"}, "tags": ["a","b"], "NONE": null}`))
	require.NoError(t, err)

	tests := []struct {
		key    string
		want   string
		wantOK bool
	}{
		{key: "PORT", want: "8080", wantOK: true},
		{key: "DEBUG", want: "true", wantOK: true},
		{key: "db.host", want: "localhost", wantOK: true},
		{key: "tags", want: `["a","b"]`, wantOK: true},
		{key: "NONE", wantOK: false},
		{key: "MISSING", wantOK: false},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			v, ok := src.Lookup(tt.key)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, v)
		})
	}

	_, err = JSON([]byte(`{broken`))
	assert.Error(t, err)
}
