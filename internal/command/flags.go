// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	altsrc "github.com/urfave/cli-altsrc/v3"
	yaml "github.com/urfave/cli-altsrc/v3/yaml"
	"github.com/urfave/cli/v3"

	"github.com/tfctl/apidiff/internal/config"
)

// NewOutputFlag constructs the --output flag with def as its default format.
func NewOutputFlag(ns string, def string) *cli.StringFlag {
	return NameSpacedValueChainFlagFromConfigFile(ns, config.Path(), &cli.StringFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Usage:   "output format (text, markdown, json, yaml, delta)",
		Value:   def,
		Validator: func(value string) error {
			return FlagValidators(value, OutputValidator)
		},
	})
}

// NewColorFlag constructs the --color flag. When it is not set, color is
// enabled for terminals.
func NewColorFlag() *cli.BoolFlag {
	return &cli.BoolFlag{
		Name:    "color",
		Aliases: []string{"c"},
		Usage:   "enable colored text output (default: auto)",
		Sources: cli.EnvVars("APIDIFF_COLOR"),
	}
}

// NewS3Flags constructs the flags that locate s3:// snapshots.
func NewS3Flags(ns string) []cli.Flag {
	path := config.Path()
	return []cli.Flag{
		NameSpacedValueChainFlagFromConfigFile(ns, path, &cli.StringFlag{
			Name:    "profile",
			Usage:   "AWS profile for s3:// snapshots",
			Sources: cli.EnvVars("APIDIFF_AWS_PROFILE"),
		}),
		NameSpacedValueChainFlagFromConfigFile(ns, path, &cli.StringFlag{
			Name:    "region",
			Usage:   "AWS region for s3:// snapshots",
			Sources: cli.EnvVars("APIDIFF_AWS_REGION"),
		}),
		NameSpacedValueChainFlagFromConfigFile(ns, path, &cli.StringFlag{
			Name:    "endpoint",
			Usage:   "S3 compatible endpoint for s3:// snapshots",
			Sources: cli.EnvVars("APIDIFF_S3_ENDPOINT"),
		}),
	}
}

// NewRepoFlag constructs the --repo flag naming the GitHub repository.
func NewRepoFlag(ns string) *cli.StringFlag {
	return NameSpacedValueChainFlagFromConfigFile(ns, config.Path(), &cli.StringFlag{
		Name:    "repo",
		Aliases: []string{"r"},
		Usage:   "GitHub repository as owner/repo",
		Sources: cli.EnvVars("APIDIFF_REPO", "GITHUB_REPOSITORY"),
		Value:   "firebase/firebase-ios-sdk",
		Validator: func(value string) error {
			return FlagValidators(value, RepoValidator)
		},
	})
}

// NameSpacedValueChainFlagFromConfigFile adds namespaced and global config file
// sources to the given flag's Sources chain. Nothing is added without a config
// file.
func NameSpacedValueChainFlagFromConfigFile(ns string, path string, flag *cli.StringFlag) *cli.StringFlag {
	if path == "" {
		return flag
	}

	if ns != "" {
		src := yaml.YAML(ns+"."+flag.Name, altsrc.StringSourcer(path))
		flag.Sources.Chain = append(flag.Sources.Chain, src)
	}

	src := yaml.YAML(flag.Name, altsrc.StringSourcer(path))
	flag.Sources.Chain = append(flag.Sources.Chain, src)

	return flag
}
