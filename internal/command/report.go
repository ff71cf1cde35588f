// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	cienvironment "github.com/cucumber/ci-environment/go"
	"github.com/urfave/cli/v3"

	"github.com/tfctl/apidiff/internal/apitree"
	"github.com/tfctl/apidiff/internal/config"
	"github.com/tfctl/apidiff/internal/differ"
	"github.com/tfctl/apidiff/internal/filters"
	"github.com/tfctl/apidiff/internal/log"
	"github.com/tfctl/apidiff/internal/meta"
	"github.com/tfctl/apidiff/internal/output"
	"github.com/tfctl/apidiff/internal/snapshot"
)

// NoChangesMessage is printed by text reports of identical snapshots.
const NoChangesMessage = "No API Diff Detected."

// now is replaced by tests.
var now = time.Now

// reportCommandAction diffs two snapshots and renders the result.
func reportCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	config.Config.Namespace = "report"

	if cmd.Args().Len() != 2 { //nolint:mnd
		return fmt.Errorf("expected NEW and OLD snapshots, got %d arguments", cmd.Args().Len())
	}
	format, err := output.ParseFormat(cmd.String("output"))
	if err != nil {
		return err
	}

	loader := &snapshot.Loader{AWS: awsOptions(cmd)}
	newTree, err := loader.Load(ctx, ResolvePath(cmd, cmd.Args().Get(0)))
	if err != nil {
		return fmt.Errorf("failed to load new snapshot: %w", err)
	}
	oldTree, err := loader.Load(ctx, ResolvePath(cmd, cmd.Args().Get(1)))
	if err != nil {
		return fmt.Errorf("failed to load old snapshot: %w", err)
	}

	w := Stdout(cmd)
	if out := cmd.String("out"); out != "" {
		f, err := os.Create(ResolvePath(cmd, out))
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", out, err)
		}
		defer f.Close()
		w = f
	}

	color := UseColor(cmd) && format == output.FormatText
	if format == output.FormatDelta {
		return writeDelta(w, newTree, oldTree, UseColor(cmd))
	}

	var opts []differ.Option
	if cmd.Bool("sort") {
		opts = append(opts, differ.WithSortedKeys())
	}
	tree, err := differ.Diff(newTree, oldTree, opts...)
	if err != nil {
		return err
	}
	tree = filters.Apply(tree, filters.BuildFilters(cmd.String("filter")))

	var styles *output.Styles
	if color {
		styles = output.NewStyles()
	}

	switch {
	case tree.Empty() && format == output.FormatText:
		log.Infof("snapshots are identical")
		fmt.Fprintln(w, NoChangesMessage)
	case tree.Empty() && format == output.FormatMarkdown:
		// An empty markdown report tells the comment command there is nothing
		// to publish.
		log.Infof("snapshots are identical")
	case format == output.FormatMarkdown && cmd.Bool("title"):
		commit, runURL := ciMetadata(cmd)
		if _, err := io.WriteString(w, output.Title(commit, runURL, now(), titleLocation())); err != nil {
			return err
		}
		fallthrough
	default:
		if err := output.Emit(w, tree, format, output.WithStyles(styles)); err != nil {
			return err
		}
	}

	if cmd.Bool("summary") {
		output.SummaryWriter(os.Stderr, tree, styles, cmd.Bool("titles"))
	}
	return nil
}

// writeDelta writes the raw structural delta of the two snapshots.
func writeDelta(w io.Writer, newTree, oldTree *apitree.Tree, color bool) error {
	newRaw, err := apitree.Encode(newTree)
	if err != nil {
		return err
	}
	oldRaw, err := apitree.Encode(oldTree)
	if err != nil {
		return err
	}

	same, err := differ.Identical(newRaw, oldRaw)
	if err != nil {
		return err
	}
	if same {
		fmt.Fprintln(w, NoChangesMessage)
		return nil
	}

	delta, err := differ.Delta(newRaw, oldRaw, color)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, delta)
	return err
}

// ciMetadata resolves the commit and workflow run url for the report title.
// Flags win over what the CI environment reports.
func ciMetadata(cmd *cli.Command) (commit, runURL string) {
	commit = cmd.String("commit")
	runURL = cmd.String("run-url")
	if commit != "" && runURL != "" {
		return commit, runURL
	}

	ci := cienvironment.DetectCIEnvironment()
	if ci == nil {
		return commit, runURL
	}
	log.Debugf("detected CI: %s", ci.Name)
	if runURL == "" {
		runURL = ci.URL
	}
	if commit == "" && ci.Git != nil {
		commit = ci.Git.Revision
	}
	return commit, runURL
}

// titleLocation returns the zone for the title's timestamp from report.timezone,
// defaulting to America/Los_Angeles.
func titleLocation() *time.Location {
	name, _ := config.GetString("timezone", "America/Los_Angeles")
	loc, err := time.LoadLocation(name)
	if err != nil {
		log.Warnf("unknown timezone %q, using UTC", name)
		return time.UTC
	}
	return loc
}

// reportCommandBuilder constructs the cli.Command for "report".
func reportCommandBuilder(meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "report",
		Usage:     "diff two api snapshots",
		UsageText: "apidiff report NEW OLD [options]\n\nNEW and OLD are snapshot files, directories holding api_info.json, or s3://bucket/key urls.",
		Metadata: map[string]any{
			"meta": meta,
		},
		Flags: append([]cli.Flag{
			NewOutputFlag("report", string(output.FormatText)),
			NewColorFlag(),
			&cli.StringFlag{
				Name:  "commit",
				Usage: "commit shown in the markdown title (default: from CI)",
			},
			&cli.StringFlag{
				Name:    "filter",
				Aliases: []string{"f"},
				Usage:   "keep only changes matching key=value filters, e.g. status=removed,api_type=Classes",
			},
			&cli.StringFlag{
				Name:    "out",
				Aliases: []string{"O"},
				Usage:   "write the report to a file instead of stdout",
			},
			&cli.StringFlag{
				Name:  "run-url",
				Usage: "workflow run url shown in the markdown title (default: from CI)",
			},
			&cli.BoolFlag{
				Name:    "sort",
				Aliases: []string{"s"},
				Usage:   "order keys by name instead of snapshot order",
			},
			&cli.BoolFlag{
				Name:  "summary",
				Usage: "print change counts per api type to stderr",
			},
			&cli.BoolFlag{
				Name:  "title",
				Usage: "prefix markdown reports with a title",
				Value: true,
			},
			&cli.BoolFlag{
				Name:    "titles",
				Aliases: []string{"t"},
				Usage:   "show column titles in the summary",
			},
		}, NewS3Flags("report")...),
		Action: reportCommandAction,
	}
}
