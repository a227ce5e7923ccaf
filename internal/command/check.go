// Copyright (c) 2026 The tryphon Authors.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/katlasik/tryphon/internal/meta"
)

// checkCommandAction loads the schema against the selected sources and
// reports every failure. Invalid configuration exits with ExitInvalid.
func checkCommandAction(ctx context.Context, cmd *cli.Command) error {
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
		return reportLoadError(cmd, stdout(cmd), err)
	}

	if !cmd.Bool("quiet") {
		fmt.Fprintf(stdout(cmd), "Configuration is valid (%d field(s)).\n", len(vals.All()))
	}
	return nil
}

// checkCommandBuilder constructs the cli.Command for "check".
func checkCommandBuilder(meta meta.Meta, cfgFile string) *cli.Command {
	return (&CommandBuilder{
		Name:      "check",
		Usage:     "validate the environment against a schema",
		UsageText: "tryphon check [--schema FILE] [--env-file FILE]... [options]",
		Flags: append(NewSourceFlags(),
			&cli.BoolFlag{
				Name:    "quiet",
				Aliases: []string{"q"},
				Usage:   "print nothing when the configuration is valid",
			},
		),
		Action:       checkCommandAction,
		Meta:         meta,
		SettingsFile: cfgFile,
	}).Build()
}
