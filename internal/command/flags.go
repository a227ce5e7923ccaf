// Copyright (c) 2026 The tryphon Authors.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	altsrc "github.com/urfave/cli-altsrc/v3"
	yaml "github.com/urfave/cli-altsrc/v3/yaml"
	"github.com/urfave/cli/v3"

	"github.com/katlasik/tryphon/internal/output"
)

// NewGlobalFlags returns the flags shared by every schema driven command.
// With a settings file path, --schema, --output and --sort also fall back to
// the ns-prefixed and bare keys of that file.
func NewGlobalFlags(ns string, cfgFile string) (flags []cli.Flag) {
	schema := &cli.StringFlag{
		Name:  "schema",
		Usage: "schema file (.yaml, .yml or .hcl) declaring the fields",
		Sources: cli.NewValueSourceChain(
			cli.EnvVar("TRYPHON_SCHEMA"),
		),
	}
	outputFlag := &cli.StringFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Usage:   "output format: list, table, json or yaml",
		Value:   output.FormatList,
		Sources: cli.NewValueSourceChain(
			cli.EnvVar("TRYPHON_OUTPUT"),
		),
		Validator: func(value string) error {
			return FlagValidators(value, OutputValidator)
		},
	}
	sortFlag := &cli.StringFlag{
		Name:    "sort",
		Aliases: []string{"s"},
		Usage:   "comma-separated list of columns to sort text output by",
		Sources: cli.NewValueSourceChain(),
	}

	if cfgFile != "" {
		schema = NameSpacedValueChainFlagFromConfigFile(ns, cfgFile, schema)
		outputFlag = NameSpacedValueChainFlagFromConfigFile(ns, cfgFile, outputFlag)
		sortFlag = NameSpacedValueChainFlagFromConfigFile(ns, cfgFile, sortFlag)
	}

	flags = []cli.Flag{
		schema,
		outputFlag,
		sortFlag,
		&cli.StringFlag{
			Name:    "filter",
			Aliases: []string{"f"},
			Usage:   "comma-separated filter expressions for text output, e.g. field^database.",
		},
		&cli.BoolFlag{
			Name:    "color",
			Aliases: []string{"c"},
			Usage:   "enable colored text output",
			Value:   false,
		},
		&cli.IntFlag{
			Name:  "padding",
			Usage: "spaces between table columns",
			Value: 0,
		},
		&cli.BoolFlag{
			Name:    "titles",
			Aliases: []string{"t"},
			Usage:   "show titles with table output",
			Value:   false,
		},
	}

	return
}

// NewSourceFlags returns the flags selecting where variables are read from.
func NewSourceFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringSliceFlag{
			Name:    "env-file",
			Aliases: []string{"e"},
			Usage:   "dotenv file to read variables from; later files win",
		},
		&cli.StringFlag{
			Name:  "json",
			Usage: "JSON document to read variables from; keys are gjson paths",
		},
		&cli.BoolFlag{
			Name:  "no-env",
			Usage: "ignore the process environment",
			Value: false,
		},
	}
}

// NameSpacedValueChainFlagFromConfigFile adds namespaced and global settings
// file sources to the given flag's Sources chain.
func NameSpacedValueChainFlagFromConfigFile(ns string, path string, flag *cli.StringFlag) *cli.StringFlag {
	src := yaml.YAML(ns+"."+flag.Name, altsrc.StringSourcer(path))
	flag.Sources.Chain = append(flag.Sources.Chain, src)

	src = yaml.YAML(flag.Name, altsrc.StringSourcer(path))
	flag.Sources.Chain = append(flag.Sources.Chain, src)

	return flag
}
