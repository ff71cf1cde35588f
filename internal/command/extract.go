// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/tfctl/apidiff/internal/apitree"
	"github.com/tfctl/apidiff/internal/config"
	"github.com/tfctl/apidiff/internal/docparse"
	"github.com/tfctl/apidiff/internal/log"
	"github.com/tfctl/apidiff/internal/meta"
	"github.com/tfctl/apidiff/internal/repomodule"
)

// runner executes swift, pod and jazzy. Tests replace it.
var runner repomodule.Runner = repomodule.ExecRunner{}

// pick chooses modules interactively. Tests replace it.
var pick = repomodule.Pick

// extractCommandAction documents the selected modules of a repository and
// writes their declarations as one snapshot.
func extractCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	config.Config.Namespace = "extract"

	root := m.StartingDir
	if cmd.Args().Len() > 0 {
		root = ResolvePath(cmd, cmd.Args().First())
	}
	outDir := ResolvePath(cmd, cmd.String("output-dir"))
	docDir := filepath.Join(outDir, "doc")

	modules, err := selectModules(ctx, cmd, root)
	if err != nil {
		return err
	}
	if len(modules) == 0 {
		// Keep any existing snapshot rather than replacing it with an empty one.
		log.Infof("no modules to extract, %s left untouched", outDir)
		return nil
	}

	tables := repomodule.TablesFromConfig()
	tree := apitree.NewTree(apitree.LevelModule)
	for _, mod := range modules {
		dir := filepath.Join(docDir, mod.Name)
		if !cmd.Bool("skip-build") {
			if err := repomodule.BuildDocs(ctx, runner, root, mod, tables, dir); err != nil {
				log.WithError(err).Errorf("documentation of %s failed", mod.Name)
				tree.Nodes.Put(docparse.ModuleNode(mod.Name, "", apitree.NewChildren()))
				continue
			}
		}

		apiTypes, err := docparse.ParseModuleDocs(ctx, dir)
		if err != nil {
			log.WithError(err).Errorf("parsing documentation of %s failed", mod.Name)
			tree.Nodes.Put(docparse.ModuleNode(mod.Name, "", apitree.NewChildren()))
			continue
		}
		tree.Nodes.Put(docparse.ModuleNode(mod.Name, dir, apiTypes))
	}

	path, err := apitree.WriteFile(outDir, tree)
	if err != nil {
		return err
	}
	fmt.Fprintln(Stdout(cmd), path)
	return nil
}

// selectModules narrows the discovered modules by --modules, --changed-files
// and --pick, in that order.
func selectModules(ctx context.Context, cmd *cli.Command, root string) ([]repomodule.Module, error) {
	modules, err := repomodule.Discover(ctx, runner, root)
	if err != nil {
		return nil, err
	}

	if names := cmd.StringSlice("modules"); len(names) > 0 {
		var selected []repomodule.Module
		for _, mod := range modules {
			if slices.Contains(names, mod.Name) {
				selected = append(selected, mod)
			}
		}
		for _, name := range names {
			if !slices.ContainsFunc(modules, func(m repomodule.Module) bool { return m.Name == name }) {
				log.Warnf("module %s not found in %s", name, root)
			}
		}
		modules = selected
	}

	if list := cmd.String("changed-files"); list != "" {
		data, err := readInput(cmd, list)
		if err != nil {
			return nil, err
		}
		modules = repomodule.DetectChanged(modules, splitFileList(data))
		log.Debugf("changed modules: %d", len(modules))
	}

	if cmd.Bool("pick") && len(modules) > 0 {
		modules, err = pick(modules)
		if err != nil {
			return nil, err
		}
	}
	return modules, nil
}

// splitFileList reads one path per line or whitespace separated paths.
func splitFileList(data []byte) []string {
	var files []string
	sc := bufio.NewScanner(bytes.NewReader(data))
	sc.Split(bufio.ScanWords)
	for sc.Scan() {
		if f := strings.TrimSpace(sc.Text()); f != "" {
			files = append(files, f)
		}
	}
	return files
}

// extractCommandBuilder constructs the cli.Command for "extract".
func extractCommandBuilder(meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "extract",
		Usage:     "extract an api snapshot from a repository",
		UsageText: "apidiff extract [RootDir] [options]",
		Metadata: map[string]any{
			"meta": meta,
		},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "changed-files",
				Aliases: []string{"f"},
				Usage:   "file listing changed paths (- for stdin); only modules they touch are extracted",
			},
			&cli.StringSliceFlag{
				Name:    "modules",
				Aliases: []string{"m"},
				Usage:   "modules to extract",
			},
			NameSpacedValueChainFlagFromConfigFile("extract", config.Path(), &cli.StringFlag{
				Name:    "output-dir",
				Aliases: []string{"o"},
				Usage:   "directory receiving api_info.json and the generated docs",
				Value:   "api_info",
			}),
			&cli.BoolFlag{
				Name:  "pick",
				Usage: "choose modules interactively",
			},
			&cli.BoolFlag{
				Name:  "skip-build",
				Usage: "parse existing docs under <output-dir>/doc instead of running jazzy",
			},
		},
		Action: extractCommandAction,
	}
}
