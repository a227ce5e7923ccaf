// Copyright (c) 2026 The tryphon Authors.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package command

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katlasik/tryphon/internal/settings"
	"github.com/katlasik/tryphon/pkg/secret"
)

const testSchema = `
fields:
  - name: database_url
    env: [DATABASE_URL]
    type: url
  - name: api_key
    env: [API_KEY]
    type: string
    secret: true
  - name: port
    env: [PORT]
    type: uint16
    default: 8080
`

type result struct {
	stdout string
	stderr string
	code   int
	err    error
}

// isolate keeps the user's settings file and TRYPHON_* variables out of the
// test.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv(settings.EnvFile, filepath.Join(dir, "missing.yaml"))
	for _, k := range []string{"TRYPHON_SCHEMA", "TRYPHON_OUTPUT"} {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
	settings.Reset()
	t.Cleanup(settings.Reset)
	return dir
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func run(t *testing.T, args ...string) result {
	t.Helper()
	argv := append([]string{"tryphon"}, args...)

	app, err := InitApp(context.Background(), argv)
	require.NoError(t, err)

	var out, errOut bytes.Buffer
	app.Writer = &out
	app.ErrWriter = &errOut

	err = app.Run(context.Background(), argv)
	return result{stdout: out.String(), stderr: errOut.String(), code: ExitCode(err), err: err}
}

func TestCheck(t *testing.T) {
	dir := isolate(t)
	schemaPath := writeFile(t, dir, "app.yaml", testSchema)
	good := writeFile(t, dir, "good.env", "DATABASE_URL=http://localhost:5432\nAPI_KEY=qwerty\n")
	bad := writeFile(t, dir, "bad.env", "PORT=http\nAPI_KEY=qwerty\n")

	t.Run("valid", func(t *testing.T) {
		r := run(t, "check", "--schema", schemaPath, "--no-env", "--env-file", good)
		require.NoError(t, r.err)
		assert.Equal(t, ExitOK, r.code)
		assert.Equal(t, "Configuration is valid (3 field(s)).\n", r.stdout)
	})

	t.Run("quiet", func(t *testing.T) {
		r := run(t, "check", "--schema", schemaPath, "--no-env", "-e", good, "-q")
		assert.Equal(t, ExitOK, r.code)
		assert.Empty(t, r.stdout)
	})

	t.Run("invalid", func(t *testing.T) {
		r := run(t, "check", "--schema", schemaPath, "--no-env", "--env-file", bad)
		assert.Equal(t, ExitInvalid, r.code)
		assert.Contains(t, r.stdout, "Found 2 configuration error(s):")
		assert.Contains(t, r.stdout, "Missing value for field 'database_url', tried env vars: DATABASE_URL")
		assert.Contains(t, r.stdout, "Parsing error for env var 'PORT' for field 'port'")
		assert.NotContains(t, r.stdout, "qwerty")
	})

	t.Run("invalid as table", func(t *testing.T) {
		r := run(t, "check", "--schema", schemaPath, "--no-env", "--env-file", bad, "--output", "table")
		assert.Equal(t, ExitInvalid, r.code)
		assert.Contains(t, r.stdout, "Field Name")
		assert.Contains(t, r.stdout, "Required variable not set")
	})

	t.Run("invalid as json", func(t *testing.T) {
		r := run(t, "check", "--schema", schemaPath, "--no-env", "--env-file", bad, "-o", "json")
		assert.Equal(t, ExitInvalid, r.code)
		var got []map[string]any
		require.NoError(t, json.Unmarshal([]byte(r.stdout), &got))
		assert.Len(t, got, 2)
	})

	t.Run("process environment wins over env files", func(t *testing.T) {
		t.Setenv("DATABASE_URL", "http://env:1")
		t.Setenv("PORT", "1234")
		r := run(t, "check", "--schema", schemaPath, "--env-file", bad)
		assert.Equal(t, ExitOK, r.code, r.stdout)
	})

	t.Run("json source", func(t *testing.T) {
		doc := writeFile(t, dir, "vars.json", `{"DATABASE_URL": "http://json:1", "API_KEY": "k"}`)
		r := run(t, "check", "--schema", schemaPath, "--no-env", "--json", doc)
		assert.Equal(t, ExitOK, r.code, r.stdout)
	})
}

func TestCheckUsageErrors(t *testing.T) {
	dir := isolate(t)
	schemaPath := writeFile(t, dir, "app.yaml", testSchema)
	broken := writeFile(t, dir, "broken.yaml", "fields:\n  - name: a\n    type: complex\n")

	tests := []struct {
		name string
		args []string
		want string
	}{
		{name: "bad schema", args: []string{"check", "--schema", broken, "--no-env"}, want: `unknown type "complex"`},
		{name: "missing schema file", args: []string{"check", "--schema", filepath.Join(dir, "nope.yaml")}, want: "reading schema"},
		{name: "no schema", args: []string{"check", "--no-env"}, want: "no schema given"},
		{name: "missing env file", args: []string{"check", "--schema", schemaPath, "-e", filepath.Join(dir, "nope.env")}, want: "reading env file"},
		{name: "bad output", args: []string{"check", "--schema", schemaPath, "-o", "xml"}, want: "must be one of"},
		{name: "negative padding", args: []string{"show", "--schema", schemaPath, "--padding=-1"}, want: "--padding"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := run(t, tt.args...)
			assert.Equal(t, ExitUsage, r.code)
			require.Error(t, r.err)
			assert.ErrorContains(t, r.err, tt.want)
		})
	}
}

func TestShow(t *testing.T) {
	dir := isolate(t)
	schemaPath := writeFile(t, dir, "app.yaml", testSchema)
	good := writeFile(t, dir, "good.env", "DATABASE_URL=http://localhost:5432\nAPI_KEY=qwerty\n")

	r := run(t, "show", "--schema", schemaPath, "--no-env", "-e", good)
	require.NoError(t, r.err)
	assert.Equal(t,
		"database_url = http://localhost:5432\n"+
			"api_key = "+secret.Redact("qwerty")+"\n"+
			"port = 8080\n",
		r.stdout)

	r = run(t, "show", "--schema", schemaPath, "--no-env", "-e", good, "--filter", "type=uint16")
	require.NoError(t, r.err)
	assert.Equal(t, "port = 8080\n", r.stdout)

	r = run(t, "show", "--schema", schemaPath, "--no-env", "-e", good, "-o", "json")
	require.NoError(t, r.err)
	assert.NotContains(t, r.stdout, "qwerty")
	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(r.stdout), &got))
	assert.Equal(t, 8080.0, got["port"])

	r = run(t, "show", "--schema", schemaPath, "--no-env", "-o", "table", "--titles")
	assert.Equal(t, ExitInvalid, r.code)
	assert.Empty(t, r.stdout)
	assert.Contains(t, r.stderr, "Field Name")
}

func TestShowOutputFromEnvironment(t *testing.T) {
	dir := isolate(t)
	schemaPath := writeFile(t, dir, "app.yaml", testSchema)
	good := writeFile(t, dir, "good.env", "DATABASE_URL=http://localhost:5432\nAPI_KEY=qwerty\n")
	t.Setenv("TRYPHON_SCHEMA", schemaPath)
	t.Setenv("TRYPHON_OUTPUT", "yaml")

	r := run(t, "show", "--no-env", "-e", good)
	require.NoError(t, r.err)
	assert.Contains(t, r.stdout, "port: 8080\n")
}

func TestSettingsFileSources(t *testing.T) {
	dir := isolate(t)
	schemaPath := writeFile(t, dir, "app.yaml", testSchema)
	good := writeFile(t, dir, "good.env", "DATABASE_URL=http://localhost:5432\nAPI_KEY=qwerty\n")
	cfg := writeFile(t, dir, "tryphon.yaml", "schema: "+schemaPath+"\nshow:\n  output: json\n")
	t.Setenv(settings.EnvFile, cfg)

	r := run(t, "show", "--no-env", "-e", good)
	require.NoError(t, r.err)
	assert.True(t, json.Valid([]byte(r.stdout)), r.stdout)

	r = run(t, "check", "--no-env", "-e", good)
	require.NoError(t, r.err)
	assert.Contains(t, r.stdout, "Configuration is valid")
}

func TestDescribe(t *testing.T) {
	dir := isolate(t)
	schemaPath := writeFile(t, dir, "app.hcl", `
field "database_url" {
  env  = ["DATABASE_URL"]
  type = "url"
}
field "port" {
  type    = "uint16"
  default = 8080
}
`)

	r := run(t, "describe", "--schema", schemaPath)
	require.NoError(t, r.err)
	assert.Equal(t, "database_url *url.URL [DATABASE_URL]\nport uint16 [PORT] default\n", r.stdout)
}

func TestDiff(t *testing.T) {
	dir := isolate(t)
	schemaPath := writeFile(t, dir, "app.yaml", testSchema)
	a := writeFile(t, dir, "a.env", "DATABASE_URL=http://a:1\nAPI_KEY=one\n")
	b := writeFile(t, dir, "b.env", "DATABASE_URL=http://a:1\nAPI_KEY=two\nPORT=9090\n")
	c := writeFile(t, dir, "c.json", `{"DATABASE_URL": "http://a:1", "API_KEY": "one"}`)
	broken := writeFile(t, dir, "broken.env", "PORT=x\n")

	r := run(t, "diff", "--schema", schemaPath, a, c)
	require.NoError(t, r.err)
	assert.Contains(t, r.stdout, "identical")

	r = run(t, "diff", "--schema", schemaPath, "--exit-code", a, b)
	assert.Equal(t, ExitInvalid, r.code)
	assert.Contains(t, r.stdout, "9090")
	assert.Contains(t, r.stdout, secret.Redact("two"))
	assert.NotContains(t, r.stdout, "two\"")

	r = run(t, "diff", "--schema", schemaPath, "--ignore", "port", "--ignore", "api_key", a, b)
	require.NoError(t, r.err)
	assert.Contains(t, r.stdout, "identical")

	r = run(t, "diff", "--schema", schemaPath, a, broken)
	assert.Equal(t, ExitInvalid, r.code)
	assert.Contains(t, r.stderr, broken+":")
	assert.Contains(t, r.stderr, "Found 3 configuration error(s):")

	r = run(t, "diff", "--schema", schemaPath, a)
	assert.Equal(t, ExitUsage, r.code)
	assert.ErrorContains(t, r.err, "exactly two")
}

func TestCompletion(t *testing.T) {
	isolate(t)

	r := run(t, "completion", "bash")
	require.NoError(t, r.err)
	assert.Contains(t, r.stdout, "complete -F _tryphon tryphon")

	r = run(t, "completion", "zsh")
	require.NoError(t, r.err)
	assert.Contains(t, r.stdout, "#compdef tryphon")

	t.Setenv("SHELL", "/bin/fish")
	r = run(t, "completion")
	assert.Equal(t, ExitUsage, r.code)
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, ExitOK, ExitCode(nil))
	assert.Equal(t, ExitUsage, ExitCode(errors.New("boom")))
	assert.Equal(t, ExitInvalid, ExitCode(&ExitError{Code: ExitInvalid}))

	wrapped := errors.Join(errors.New("context"), &ExitError{Code: 7, Err: errors.New("inner")})
	assert.Equal(t, 7, ExitCode(wrapped))
	assert.Equal(t, "exit status 1", (&ExitError{Code: 1}).Error())
}

func TestOutputValidator(t *testing.T) {
	for _, v := range []string{"list", "table", "json", "yaml"} {
		assert.NoError(t, OutputValidator(v))
	}
	assert.Error(t, OutputValidator("text"))
	assert.Error(t, OutputValidator(3))
}

func TestGetMeta(t *testing.T) {
	isolate(t)
	app, err := InitApp(context.Background(), []string{"tryphon", "check"})
	require.NoError(t, err)

	var names []string
	for _, c := range app.Commands {
		names = append(names, c.Name)
		assert.Equal(t, []string{"tryphon", "check"}, GetMeta(c).Args)
	}
	assert.Equal(t, []string{"check", "show", "describe", "diff", "completion"}, names)
	assert.Equal(t, "check", settings.Settings.Namespace)
	assert.Empty(t, GetMeta(nil).Args)
}
