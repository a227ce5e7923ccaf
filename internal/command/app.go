// Copyright (c) 2026 The tryphon Authors.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"os"
	"sort"
	"strings"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/katlasik/tryphon/internal/meta"
	"github.com/katlasik/tryphon/internal/settings"
	"github.com/katlasik/tryphon/internal/version"
)

// InitApp builds the root command. args[1], the subcommand, doubles as the
// settings namespace so "check.output" is preferred over "output".
func InitApp(ctx context.Context, args []string) (*cli.Command, error) {
	sd, _ := os.Getwd()

	var ns string
	if len(args) > 1 && !strings.HasPrefix(args[1], "-") {
		ns = args[1]
	}

	// A missing settings file is fine; flags then come from the command line
	// and the environment only.
	cfg, err := settings.Load()
	if err != nil {
		log.Debugf("settings not loaded: %v", err)
	}
	cfg.Namespace = ns
	settings.Settings.Namespace = ns

	meta := meta.Meta{
		Args:        args,
		Settings:    cfg,
		Context:     ctx,
		StartingDir: sd,
	}

	app := &cli.Command{
		Name:    "tryphon",
		Usage:   "typed environment configuration checker",
		Version: version.String(),
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "version",
				Aliases:     []string{"v"},
				Usage:       "tryphon version info",
				HideDefault: true,
			},
		},
		HideVersion: true,
	}

	app.Commands = append(app.Commands,
		checkCommandBuilder(meta, cfg.Source),
		showCommandBuilder(meta, cfg.Source),
		describeCommandBuilder(meta, cfg.Source),
		diffCommandBuilder(meta, cfg.Source),
		completionCommandBuilder(meta),
	)

	// Make sure flags are sorted for the --help text.
	for _, cmd := range app.Commands {
		sort.Slice(cmd.Flags, func(i, j int) bool {
			return cmd.Flags[i].Names()[0] < cmd.Flags[j].Names()[0]
		})
	}

	return app, nil
}
