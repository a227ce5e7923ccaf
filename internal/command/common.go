// Copyright (c) 2026 The tryphon Authors.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/katlasik/tryphon/internal/meta"
	"github.com/katlasik/tryphon/internal/output"
	"github.com/katlasik/tryphon/internal/schema"
	"github.com/katlasik/tryphon/pkg/config"
	"github.com/katlasik/tryphon/pkg/source"
)

// Exit codes returned by the tryphon binary.
const (
	ExitOK      = 0
	ExitInvalid = 1
	ExitUsage   = 2
)

// DefaultSchemaFiles are tried in the working directory when --schema is not
// given.
var DefaultSchemaFiles = []string{"tryphon.schema.yaml", "tryphon.schema.yml", "tryphon.schema.hcl"}

// ExitError carries the process exit code out of an action. Err, when set,
// is printed to stderr by main.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit status %d", e.Code)
	}
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// ExitCode maps an error returned by the app to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	var ee *ExitError
	if errors.As(err, &ee) {
		return ee.Code
	}
	return ExitUsage
}

// GetMeta returns the meta.Meta stored in the command's Metadata. If missing
// or of an unexpected type, it returns the zero value.
func GetMeta(cmd *cli.Command) meta.Meta {
	if cmd == nil || cmd.Metadata == nil {
		return meta.Meta{}
	}
	if m, ok := cmd.Metadata["meta"].(meta.Meta); ok {
		return m
	}
	return meta.Meta{}
}

// stdout and stderr return the root command writers.
func stdout(cmd *cli.Command) io.Writer {
	if w := cmd.Root().Writer; w != nil {
		return w
	}
	return os.Stdout
}

func stderr(cmd *cli.Command) io.Writer {
	if w := cmd.Root().ErrWriter; w != nil {
		return w
	}
	return os.Stderr
}

// OutputOptions collects the rendering flags.
func OutputOptions(cmd *cli.Command) output.Options {
	return output.Options{
		Format:  cmd.String("output"),
		Color:   cmd.Bool("color"),
		Titles:  cmd.Bool("titles"),
		Padding: int(cmd.Int("padding")),
		Sort:    cmd.String("sort"),
		Filter:  cmd.String("filter"),
	}
}

// LoadSchema reads --schema, or the first default schema file found in the
// starting directory, and builds it.
func LoadSchema(cmd *cli.Command) (*config.Schema, *schema.Values, error) {
	path := cmd.String("schema")
	if path == "" {
		dir := GetMeta(cmd).StartingDir
		for _, name := range DefaultSchemaFiles {
			candidate := filepath.Join(dir, name)
			if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
				path = candidate
				break
			}
		}
	}
	if path == "" {
		return nil, nil, fmt.Errorf("no schema given: use --schema, TRYPHON_SCHEMA or create one of %s",
			strings.Join(DefaultSchemaFiles, ", "))
	}

	f, err := schema.Load(path)
	if err != nil {
		return nil, nil, err
	}
	s, vals, err := f.Build()
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, vals, nil
}

// BuildSource assembles the variable source from --env-file, --json and the
// process environment. The process environment wins, then env files, then
// the JSON document.
func BuildSource(cmd *cli.Command) (source.Source, error) {
	var chain []source.Source

	if !cmd.Bool("no-env") {
		chain = append(chain, source.OS())
	}

	if files := cmd.StringSlice("env-file"); len(files) > 0 {
		m, err := source.DotEnv(files...)
		if err != nil {
			return nil, fmt.Errorf("reading env file: %w", err)
		}
		log.Debugf("read %d variable(s) from %v", len(m), files)
		chain = append(chain, m)
	}

	if path := cmd.String("json"); path != "" {
		js, err := jsonSource(path)
		if err != nil {
			return nil, err
		}
		chain = append(chain, js)
	}

	return source.Chain(chain...), nil
}

// FileSource reads one variables file: JSON for .json, dotenv otherwise.
func FileSource(path string) (source.Source, error) {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return jsonSource(path)
	}
	m, err := source.DotEnv(path)
	if err != nil {
		return nil, fmt.Errorf("reading env file: %w", err)
	}
	return m, nil
}

func jsonSource(path string) (source.Source, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading json source: %w", err)
	}
	js, err := source.JSON(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return js, nil
}

// reportLoadError renders a load failure and turns it into an exit error.
// Errors other than *config.Error are schema problems.
func reportLoadError(cmd *cli.Command, w io.Writer, err error) error {
	var cfgErr *config.Error
	if !errors.As(err, &cfgErr) {
		return err
	}
	if rerr := output.Errors(w, cfgErr, OutputOptions(cmd)); rerr != nil {
		return rerr
	}
	return &ExitError{Code: ExitInvalid}
}
