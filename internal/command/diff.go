// Copyright (c) 2026 The tryphon Authors.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/katlasik/tryphon/internal/differ"
	"github.com/katlasik/tryphon/internal/meta"
)

// diffCommandAction resolves the schema against two variable files and
// prints the delta of the redacted results.
func diffCommandAction(ctx context.Context, cmd *cli.Command) error {
	args := cmd.Args().Slice()
	if len(args) != 2 {
		return fmt.Errorf("diff needs exactly two variable files, got %d", len(args))
	}

	var trees [2]map[string]any
	for i, path := range args {
		tree, err := resolveFile(cmd, path)
		if err != nil {
			return err
		}
		trees[i] = tree
	}

	changed, err := differ.Diff(stdout(cmd), trees[0], trees[1], differ.Options{
		Ignore: cmd.StringSlice("ignore"),
		Color:  cmd.Bool("color"),
	})
	if err != nil {
		return err
	}
	if changed && cmd.Bool("exit-code") {
		return &ExitError{Code: ExitInvalid}
	}
	return nil
}

// resolveFile loads a fresh copy of the schema from one file.
func resolveFile(cmd *cli.Command, path string) (map[string]any, error) {
	s, vals, err := LoadSchema(cmd)
	if err != nil {
		return nil, err
	}
	src, err := FileSource(path)
	if err != nil {
		return nil, err
	}
	log.Debugf("diff: resolving %s", path)

	if err := s.Load(src); err != nil {
		fmt.Fprintf(stderr(cmd), "%s:\n", path)
		return nil, reportLoadError(cmd, stderr(cmd), err)
	}
	return vals.Tree(), nil
}

// diffCommandBuilder constructs the cli.Command for "diff".
func diffCommandBuilder(meta meta.Meta, cfgFile string) *cli.Command {
	return (&CommandBuilder{
		Name:      "diff",
		Usage:     "compare the resolved configuration of two variable files",
		UsageText: "tryphon diff [--schema FILE] [options] A.env B.env",
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:  "ignore",
				Usage: "top-level fields left out of the comparison",
			},
			&cli.BoolFlag{
				Name:  "exit-code",
				Usage: "exit with status 1 when the configurations differ",
			},
		},
		Action:       diffCommandAction,
		Meta:         meta,
		SettingsFile: cfgFile,
	}).Build()
}
