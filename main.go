// Copyright (c) 2026 The tryphon Authors.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/katlasik/tryphon/internal/command"
	"github.com/katlasik/tryphon/internal/log"
	"github.com/katlasik/tryphon/internal/settings"
	"github.com/katlasik/tryphon/internal/version"
)

var ctx = context.Background()

// boolFlags never take a value, so the argument after them is not theirs.
var boolFlags = []string{"--color", "-c", "--titles", "-t", "--quiet", "-q", "--no-env", "--exit-code", "--help", "-h"}

// repeatableFlags accumulate and are never deduplicated.
var repeatableFlags = []string{"--env-file", "-e", "--ignore"}

func main() {
	os.Exit(realMain(os.Args, os.Stdout, os.Stderr))
}

// handleVersion checks for --version/-v and returns whether it was handled.
func handleVersion(args []string, w io.Writer) bool {
	for _, a := range args {
		if a == "--" {
			break
		}
		if a == "--version" || a == "-v" {
			fmt.Fprintln(w, version.String())
			return true
		}
	}
	return false
}

// handleNakedCommand appends --help if no command is provided.
func handleNakedCommand(args []string) []string {
	if len(args) <= 1 {
		return append(args, "--help")
	}
	return args
}

// processSetArgs expands a settings set into the arguments right after the
// subcommand. An explicit @name argument selects "<cmd>.<name>"; without one
// "<cmd>.defaults" is used. Explicit flags later on the line win over the set.
func processSetArgs(args []string) []string {
	if len(args) < 2 || strings.HasPrefix(args[1], "-") || args[1] == "completion" {
		return args
	}

	set := "defaults"
	for i := 2; i < len(args); i++ {
		if strings.HasPrefix(args[i], "@") && len(args[i]) > 1 {
			set = args[i][1:]
			args = append(args[:i:i], args[i+1:]...)
			break
		}
	}

	entries, err := settings.GetStringSlice(args[1]+"."+set, nil)
	if err != nil {
		log.Debugf("set %s.%s not usable: %v", args[1], set, err)
		return args
	}
	args = expandSet(args, entries, 2)
	log.Debugf("args after set processing: args=%v", args)
	return deduplicateFlags(args)
}

// expandSet inserts the whitespace separated words of entries at insertIdx.
func expandSet(args []string, entries []string, insertIdx int) []string {
	if len(entries) == 0 {
		return args
	}

	var expanded []string
	for _, entry := range entries {
		expanded = append(expanded, strings.Fields(entry)...)
	}

	out := make([]string, 0, len(args)+len(expanded))
	out = append(out, args[:insertIdx]...)
	out = append(out, expanded...)
	return append(out, args[insertIdx:]...)
}

// deduplicateFlags keeps only the last occurrence of each flag, together with
// its value. Positional arguments and repeatable flags are left alone.
func deduplicateFlags(args []string) []string {
	if len(args) <= 2 {
		return args
	}

	type group struct {
		name  string
		items []string
	}

	var groups []group
	for i := 2; i < len(args); i++ {
		a := args[i]
		if a == "--" {
			groups = append(groups, group{items: args[i:]})
			break
		}
		if !strings.HasPrefix(a, "-") || a == "-" {
			groups = append(groups, group{items: []string{a}})
			continue
		}

		name, _, hasValue := strings.Cut(a, "=")
		g := group{name: name, items: []string{a}}
		if !hasValue && !slices.Contains(boolFlags, name) &&
			i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
			g.items = append(g.items, args[i+1])
			i++
		}
		groups = append(groups, g)
	}

	last := map[string]int{}
	for i, g := range groups {
		if g.name != "" && !slices.Contains(repeatableFlags, g.name) {
			last[g.name] = i
		}
	}

	out := append([]string{}, args[:2]...)
	for i, g := range groups {
		if idx, ok := last[g.name]; ok && idx != i {
			continue
		}
		out = append(out, g.items...)
	}
	return out
}

// initAndRunApp initializes the app and runs it, returning the exit code.
func initAndRunApp(args []string, stdout, stderr io.Writer) int {
	app, err := command.InitApp(ctx, args)
	if err != nil {
		fmt.Fprintln(stderr, err)
		log.Debugf("app init err: err=%v", err)
		return command.ExitUsage
	}
	app.Writer = stdout
	app.ErrWriter = stderr

	err = app.Run(ctx, args)
	code := command.ExitCode(err)
	if err != nil {
		var ee *command.ExitError
		if !errors.As(err, &ee) || ee.Err != nil {
			fmt.Fprintln(stderr, err)
		}
		log.Debugf("app run err: code=%d err=%v", code, err)
	}
	return code
}

func realMain(args []string, stdout, stderr io.Writer) int {
	log.InitLogger()
	log.Debugf("args captured: args=%v", args)

	if handleVersion(args, stdout) {
		return command.ExitOK
	}

	args = handleNakedCommand(args)

	// If --help appears anywhere, skip set processing and let the CLI handle it.
	if !slices.Contains(args, "--help") && !slices.Contains(args, "-h") {
		args = processSetArgs(args)
	}

	return initAndRunApp(args, stdout, stderr)
}
