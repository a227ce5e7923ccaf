// Copyright (c) 2026 The tryphon Authors.
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/charmbracelet/lipgloss/v2/table"
)

// PrintMode selects how Print renders an Error.
type PrintMode int

const (
	// PrintList renders one line per failure under a count header.
	PrintList PrintMode = iota
	// PrintTable renders a bordered three-column table.
	PrintTable
)

// Print renders every leaf failure of e.
func (e *Error) Print(mode PrintMode) string {
	switch mode {
	case PrintTable:
		return printTable(e.Leaves())
	default:
		return printList(e.Leaves())
	}
}

func printList(leaves []Leaf) string {
	lines := make([]string, 0, len(leaves))
	for _, l := range leaves {
		switch l.Kind {
		case KindMissing:
			lines = append(lines, fmt.Sprintf("Missing value for field '%s', tried env vars: %s",
				l.Path, strings.Join(l.EnvVars, ", ")))
		case KindParse:
			lines = append(lines, fmt.Sprintf("Parsing error for env var '%s' for field '%s': %v (raw value: %s)",
				l.envVar(), l.Path, l.Err, l.Raw))
		default:
			lines = append(lines, fmt.Sprintf("Invalid value for field '%s': %v", l.Path, l.Err))
		}
	}
	return fmt.Sprintf("Found %d configuration error(s):\n", len(leaves)) + strings.Join(lines, "\n")
}

// Row returns the table cells for l: field path, variables and details.
func (l Leaf) Row() []string {
	switch l.Kind {
	case KindMissing:
		return []string{l.Path, strings.Join(l.EnvVars, ", "), "Required variable not set"}
	case KindParse:
		details := fmt.Sprintf("%v (raw value: '%s')", l.Err, l.Raw)
		if l.Type != nil {
			details = "expected " + l.Type.String() + ": " + details
		}
		return []string{l.Path, l.envVar(), details}
	default:
		envVar := l.envVar()
		if envVar == "" {
			envVar = "-"
		}
		return []string{l.Path, envVar, fmt.Sprint(l.Err)}
	}
}

func printTable(leaves []Leaf) string {
	if len(leaves) == 0 {
		return "No configuration errors\n"
	}

	rows := make([][]string, 0, len(leaves))
	for _, l := range leaves {
		rows = append(rows, l.Row())
	}

	cell := lipgloss.NewStyle().Padding(0, 1)
	t := table.New().
		Border(lipgloss.NormalBorder()).
		StyleFunc(func(row, col int) lipgloss.Style { return cell }).
		Headers("Field Name", "Environment Variables", "Error Details").
		Rows(rows...)

	return t.String() + "\n"
}
