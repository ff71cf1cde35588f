// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"errors"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/tfctl/apidiff/internal/config"
	"github.com/tfctl/apidiff/internal/log"
	"github.com/tfctl/apidiff/internal/meta"
	"github.com/tfctl/apidiff/internal/publisher"
)

// commentCommandAction publishes a rendered report to a pull request.
func commentCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	config.Config.Namespace = "comment"

	token := cmd.String("token")
	if token == "" {
		return errors.New("a GitHub token is required, set --token or GITHUB_TOKEN")
	}
	owner, repo, err := publisher.SplitRepo(cmd.String("repo"))
	if err != nil {
		return err
	}

	report, err := readInput(cmd, cmd.String("report"))
	if err != nil {
		return err
	}

	p, err := publisher.New(publisher.Options{
		Owner:   owner,
		Repo:    repo,
		Token:   token,
		BaseURL: cmd.String("github-url"),
	})
	if err != nil {
		return err
	}

	pr := cmd.Int("pr")
	if err := p.Publish(ctx, pr, string(report)); err != nil {
		return err
	}
	fmt.Fprintf(Stdout(cmd), "published report to %s/%s#%d\n", owner, repo, pr)
	return nil
}

// commentCommandBuilder constructs the cli.Command for "comment".
func commentCommandBuilder(meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "comment",
		Usage:     "publish a markdown report to a pull request",
		UsageText: "apidiff comment --pr N [--report FILE] [options]",
		Metadata: map[string]any{
			"meta": meta,
		},
		Flags: []cli.Flag{
			NameSpacedValueChainFlagFromConfigFile("comment", config.Path(), &cli.StringFlag{
				Name:    "github-url",
				Usage:   "GitHub REST endpoint",
				Sources: cli.EnvVars("GITHUB_API_URL"),
			}),
			&cli.IntFlag{
				Name:     "pr",
				Aliases:  []string{"n"},
				Usage:    "pull request number",
				Required: true,
				Validator: func(value int) error {
					return FlagValidators(value, PositiveValidator)
				},
			},
			NewRepoFlag("comment"),
			&cli.StringFlag{
				Name:  "report",
				Usage: "markdown report to publish (- for stdin)",
				Value: "-",
			},
			&cli.StringFlag{
				Name:    "token",
				Usage:   "GitHub token",
				Sources: cli.EnvVars("APIDIFF_GITHUB_TOKEN", "GITHUB_TOKEN"),
			},
		},
		Action: commentCommandAction,
	}
}
