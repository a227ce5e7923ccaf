// Copyright (c) 2026 The tryphon Authors.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/katlasik/tryphon/internal/meta"
	"github.com/katlasik/tryphon/internal/output"
)

// showCommandAction loads the schema and prints the resolved values with
// secrets redacted. Load failures are reported on stderr.
func showCommandAction(ctx context.Context, cmd *cli.Command) error {
	log.Debugf("Executing action for %v", GetMeta(cmd).Args[1:])

	s, vals, err := LoadSchema(cmd)
	if err != nil {
		return err
	}
	src, err := BuildSource(cmd)
	if err != nil {
		return err
	}

	if err := s.Load(src); err != nil {
		return reportLoadError(cmd, stderr(cmd), err)
	}

	opts := OutputOptions(cmd)
	if opts.Titles {
		opts.Header = "Resolved configuration:"
	}
	return output.Values(stdout(cmd), vals, opts)
}

// showCommandBuilder constructs the cli.Command for "show".
func showCommandBuilder(meta meta.Meta, cfgFile string) *cli.Command {
	return (&CommandBuilder{
		Name:         "show",
		Usage:        "print the resolved configuration",
		UsageText:    "tryphon show [--schema FILE] [--env-file FILE]... [options]",
		Flags:        NewSourceFlags(),
		Action:       showCommandAction,
		Meta:         meta,
		SettingsFile: cfgFile,
	}).Build()
}
