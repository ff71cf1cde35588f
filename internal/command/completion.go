// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/tfctl/apidiff/internal/meta"
)

const bashCompletionScript = `# bash completion for apidiff
# Fallback if bash-completion is not installed
if ! declare -F _get_comp_words_by_ref >/dev/null 2>&1; then
  _get_comp_words_by_ref() {
    cur=${COMP_WORDS[COMP_CWORD]}
    prev=${COMP_WORDS[COMP_CWORD-1]}
  }
fi

_apidiff()
{
    local cur prev cmd
    COMPREPLY=()
    _get_comp_words_by_ref -n : cur prev

    if [[ ${COMP_CWORD} -eq 1 ]]; then
        COMPREPLY=( $(compgen -W "comment extract report completion --help --version" -- "$cur") )
        return 0
    fi

    cmd=${COMP_WORDS[1]}
    case "$cmd" in
        comment)
            local opts="--github-url --pr -n --repo -r --report --token"
            ;;
        extract)
            local opts="--changed-files -f --modules -m --output-dir -o --pick --skip-build"
            ;;
        report)
            local opts="--color -c --commit --endpoint --filter -f --out -O --output -o --profile --region --run-url --sort -s --summary --title --titles -t"
            ;;
        completion)
            COMPREPLY=( $(compgen -W "bash zsh" -- "$cur") )
            return 0
            ;;
        *)
            local opts=""
            ;;
    esac

    if [[ "$cmd" == "report" && ( "$prev" == "--output" || "$prev" == "-o" ) ]]; then
        COMPREPLY=( $(compgen -W "text markdown json yaml delta" -- "$cur") )
        return 0
    fi

    if [[ "$cur" == -* ]]; then
        COMPREPLY=( $(compgen -W "$opts" -- "$cur") )
        return 0
    fi

    # Snapshots and RootDir are paths
    COMPREPLY=( $(compgen -f -- "$cur") )
    return 0
}

complete -F _apidiff apidiff
`

const zshCompletionScript = `#compdef apidiff

_apidiff() {
  local -a cmds
  cmds=(
    'comment:publish a markdown report to a pull request'
    'extract:extract an api snapshot from a repository'
    'report:diff two api snapshots'
    'completion:generate shell completion script'
  )

  if (( CURRENT == 2 )); then
    _describe -t commands 'apidiff commands' cmds
    return
  fi

  local curcontext="$curcontext" state line
  case $words[2] in
    comment)
      _arguments -C \
        '--github-url[GitHub REST endpoint]:url' \
        '(-n --pr)'{-n,--pr}'[pull request number]:number' \
        '(-r --repo)'{-r,--repo}'[owner/repo]:repo' \
        '--report[markdown report]:file:_files' \
        '--token[GitHub token]:token'
      ;;
    extract)
      _arguments -C \
        '(-f --changed-files)'{-f,--changed-files}'[changed paths]:file:_files' \
        '(-m --modules)'{-m,--modules}'[modules to extract]:modules' \
        '(-o --output-dir)'{-o,--output-dir}'[output directory]:dir:_directories' \
        '--pick[choose modules interactively]' \
        '--skip-build[parse existing docs]' \
        '::RootDir:_directories'
      ;;
    report)
      _arguments -C \
        '(-c --color)'{-c,--color}'[enable colored text]' \
        '--commit[commit for the title]:sha' \
        '--endpoint[S3 endpoint]:url' \
        '(-f --filter)'{-f,--filter}'[keep matching changes]:filter' \
        '(-O --out)'{-O,--out}'[report file]:file:_files' \
        '(-o --output)'{-o,--output}'[output format]:format:(text markdown json yaml delta)' \
        '--profile[AWS profile]:profile' \
        '--region[AWS region]:region' \
        '--run-url[workflow run url]:url' \
        '(-s --sort)'{-s,--sort}'[order keys by name]' \
        '--summary[print change counts]' \
        '--title[prefix markdown with a title]' \
        '(-t --titles)'{-t,--titles}'[show summary titles]' \
        '1:NEW:_files' \
        '2:OLD:_files'
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
compdef _apidiff apidiff
`

func completionCommandAction(ctx context.Context, cmd *cli.Command) error {
	w := Stdout(cmd)
	shell := ""
	if args := cmd.Args().Slice(); len(args) > 0 {
		shell = args[0]
	}
	switch shell {
	case "bash":
		fmt.Fprint(w, bashCompletionScript)
	case "zsh":
		fmt.Fprint(w, zshCompletionScript)
	default:
		// Try to detect from SHELL or print help
		sh := os.Getenv("SHELL")
		switch {
		case strings.HasSuffix(sh, "zsh"):
			fmt.Fprint(w, zshCompletionScript)
		case strings.HasSuffix(sh, "bash"):
			fmt.Fprint(w, bashCompletionScript)
		default:
			fmt.Fprintln(os.Stderr, "usage: apidiff completion [bash|zsh]")
			return nil
		}
	}
	return nil
}

func completionCommandBuilder(meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "completion",
		Usage:     "generate shell completion script",
		UsageText: "apidiff completion [bash|zsh]",
		Metadata: map[string]any{
			"meta": meta,
		},
		Action: completionCommandAction,
	}
}
