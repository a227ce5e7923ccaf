// Copyright (c) 2026 The tryphon Authors.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/katlasik/tryphon/internal/meta"
	"github.com/katlasik/tryphon/internal/output"
)

// describeCommandAction lists the fields a schema declares without reading
// any variables.
func describeCommandAction(ctx context.Context, cmd *cli.Command) error {
	s, _, err := LoadSchema(cmd)
	if err != nil {
		return err
	}
	return output.Describe(stdout(cmd), s.Descriptors(), OutputOptions(cmd))
}

// describeCommandBuilder constructs the cli.Command for "describe".
func describeCommandBuilder(meta meta.Meta, cfgFile string) *cli.Command {
	return (&CommandBuilder{
		Name:         "describe",
		Usage:        "list the fields declared by a schema",
		UsageText:    "tryphon describe [--schema FILE] [options]",
		Action:       describeCommandAction,
		Meta:         meta,
		SettingsFile: cfgFile,
	}).Build()
}
