// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/tfctl/apidiff/internal/aws"
	"github.com/tfctl/apidiff/internal/meta"
)

// GetMeta returns the meta.Meta stored in the command's Metadata. If missing
// or of an unexpected type, it returns the zero value.
func GetMeta(cmd *cli.Command) meta.Meta {
	if cmd == nil || cmd.Metadata == nil {
		return meta.Meta{}
	}
	if m, ok := cmd.Metadata["meta"].(meta.Meta); ok {
		return m
	}
	return meta.Meta{}
}

// Stdout returns the writer of the root command, which tests replace.
func Stdout(cmd *cli.Command) io.Writer {
	if w := cmd.Root().Writer; w != nil {
		return w
	}
	return os.Stdout
}

// UseColor resolves --color. An explicit flag wins; otherwise color is on for
// terminals unless NO_COLOR is set.
func UseColor(cmd *cli.Command) bool {
	if cmd.IsSet("color") {
		return cmd.Bool("color")
	}
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	if f, ok := Stdout(cmd).(*os.File); ok {
		return term.IsTerminal(int(f.Fd()))
	}
	return false
}

// ResolvePath makes a relative local path absolute against the starting
// directory. s3:// specs and "-" pass through.
func ResolvePath(cmd *cli.Command, p string) string {
	if p == "" || p == "-" || aws.IsS3URL(p) || filepath.IsAbs(p) {
		return p
	}
	if sd := GetMeta(cmd).StartingDir; sd != "" {
		return filepath.Join(sd, p)
	}
	return p
}

// readInput reads a file, or stdin for "-".
func readInput(cmd *cli.Command, p string) ([]byte, error) {
	if p == "-" {
		r := cmd.Root().Reader
		if r == nil {
			r = os.Stdin
		}
		return io.ReadAll(r)
	}
	data, err := os.ReadFile(ResolvePath(cmd, p))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", p, err)
	}
	return data, nil
}

// awsOptions collects the S3 flags.
func awsOptions(cmd *cli.Command) []aws.Option {
	var opts []aws.Option
	if v := cmd.String("profile"); v != "" {
		opts = append(opts, aws.WithProfile(v))
	}
	if v := cmd.String("region"); v != "" {
		opts = append(opts, aws.WithRegion(v))
	}
	if v := cmd.String("endpoint"); v != "" {
		opts = append(opts, aws.WithEndpoint(v))
	}
	return opts
}
