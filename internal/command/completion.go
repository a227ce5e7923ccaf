// Copyright (c) 2026 The tryphon Authors.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/katlasik/tryphon/internal/meta"
)

const bashCompletionScript = `# bash completion for tryphon
# Fallback if bash-completion is not installed
if ! declare -F _get_comp_words_by_ref >/dev/null 2>&1; then
  _get_comp_words_by_ref() {
    cur=${COMP_WORDS[COMP_CWORD]}
    prev=${COMP_WORDS[COMP_CWORD-1]}
  }
fi

_tryphon()
{
    local cur prev cmd
    COMPREPLY=()
    _get_comp_words_by_ref -n : cur prev

    if [[ ${COMP_CWORD} -eq 1 ]]; then
        COMPREPLY=( $(compgen -W "check show describe diff completion --help --version" -- "$cur") )
        return 0
    fi

    cmd=${COMP_WORDS[1]}
    local common="--schema --output -o --sort -s --color -c --padding --titles -t"
    local sources="--env-file -e --json --no-env"

    case "$prev" in
    --output|-o)
        COMPREPLY=( $(compgen -W "list table json yaml" -- "$cur") )
        return 0
        ;;
    --schema|--env-file|-e|--json)
        COMPREPLY=( $(compgen -f -- "$cur") )
        return 0
        ;;
    esac

    case "$cmd" in
    check)
        local opts="$common $sources --quiet -q"
        ;;
    show)
        local opts="$common $sources"
        ;;
    describe)
        local opts="$common"
        ;;
    diff)
        local opts="$common --ignore --exit-code"
        if [[ "$cur" != -* ]]; then
            COMPREPLY=( $(compgen -f -- "$cur") )
            return 0
        fi
        ;;
    completion)
        COMPREPLY=( $(compgen -W "bash zsh" -- "$cur") )
        return 0
        ;;
    *)
        local opts="$common"
        ;;
    esac

    COMPREPLY=( $(compgen -W "$opts" -- "$cur") )
    return 0
}

complete -F _tryphon tryphon
`

const zshCompletionScript = `#compdef tryphon

_tryphon() {
  local -a cmds
  cmds=(
    'check:validate the environment against a schema'
    'show:print the resolved configuration'
    'describe:list the fields declared by a schema'
    'diff:compare the resolved configuration of two variable files'
    'completion:generate shell completion script'
  )

  local -a common
  common=(
  '--schema[schema file]:schema:_files'
  '(-o --output)'{-o,--output}'[output format]:format:(list table json yaml)'
  '(-s --sort)'{-s,--sort}'[sort columns]:columns'
  '(-c --color)'{-c,--color}'[enable colored text]'
  '--padding[spaces between table columns]:padding'
  '(-t --titles)'{-t,--titles}'[show titles]'
  )

  local -a sources
  sources=(
  '*'{-e,--env-file}'[dotenv file]:file:_files'
  '--json[JSON variables document]:file:_files'
  '--no-env[ignore the process environment]'
  )

  if (( CURRENT == 2 )); then
    _describe -t commands 'tryphon commands' cmds
    return
  fi

  case $words[2] in
    check)
      _arguments -C $common $sources '(-q --quiet)'{-q,--quiet}'[print nothing when valid]'
      ;;
    show)
      _arguments -C $common $sources
      ;;
    describe)
      _arguments -C $common
      ;;
    diff)
      _arguments -C $common \
        '*--ignore[field left out of the comparison]:field' \
        '--exit-code[exit 1 when different]' \
        '1:left:_files' \
        '2:right:_files'
      ;;
    completion)
      _arguments '1: :((bash zsh))'
      ;;
  esac
}

# If this file is sourced directly (not autoloaded via fpath), ensure compsys
# is initialized and register the completion
if ! typeset -f compdef >/dev/null 2>&1; then
  autoload -Uz compinit && compinit -i
fi
compdef _tryphon tryphon
`

func completionCommandAction(ctx context.Context, cmd *cli.Command) error {
	shell := ""
	if args := cmd.Args().Slice(); len(args) > 0 {
		shell = args[0]
	}
	if shell == "" {
		sh := os.Getenv("SHELL")
		switch {
		case strings.HasSuffix(sh, "zsh"):
			shell = "zsh"
		case strings.HasSuffix(sh, "bash"):
			shell = "bash"
		}
	}

	switch shell {
	case "bash":
		fmt.Fprint(stdout(cmd), bashCompletionScript)
	case "zsh":
		fmt.Fprint(stdout(cmd), zshCompletionScript)
	default:
		return fmt.Errorf("usage: tryphon completion [bash|zsh]")
	}
	return nil
}

func completionCommandBuilder(meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "completion",
		Usage:     "generate shell completion script",
		UsageText: "tryphon completion [bash|zsh]",
		Metadata: map[string]any{
			"meta": meta,
		},
		Action: completionCommandAction,
	}
}
