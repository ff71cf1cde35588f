// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
	"text/template"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/tfctl/apidiff/internal/command"
)

const pageTemplate = `# apidiff {{ .Name }}

{{ .Usage }}

## Usage

` + "```" + `
{{ .UsageText }}
` + "```" + `
{{ if .Flags }}
## Flags

| Flag | Description | Default |
| ---- | ----------- | ------- |
{{- range .Flags }}
| {{ .Syntax }} | {{ .Description }} | {{ .Default }} |
{{- end }}
{{ end }}
_Generated {{ .Date }} for apidiff {{ .Version }}._
`

var page = template.Must(template.New("page").Parse(pageTemplate))

type Flag struct {
	ID          string
	Syntax      string
	Description string
	Default     string
}

type TemplateData struct {
	Name      string
	Usage     string
	UsageText string
	Flags     []Flag
	Date      string
	Version   string
}

func main() {
	docs := "docs"
	if len(os.Args) > 1 {
		docs = os.Args[1]
	}

	app, err := command.InitApp(context.Background(), []string{"apidiff"})
	if err != nil {
		panic(err)
	}

	folder := filepath.Join(docs, "commands")
	if err := os.MkdirAll(folder, 0o755); err != nil {
		panic(err)
	}

	version := getVersion()
	date := time.Now().Format("January 2, 2006")
	for _, sub := range app.Commands {
		path := filepath.Join(folder, sub.Name+".md")
		fmt.Println("Generating", path)

		file, err := os.Create(path)
		if err != nil {
			panic(err)
		}
		if err := render(file, sub, date, version); err != nil {
			panic(err)
		}
		file.Close()
	}
}

// render writes the reference page of one subcommand.
func render(w io.Writer, cmd *cli.Command, date, version string) error {
	data := TemplateData{
		Name:      cmd.Name,
		Usage:     cmd.Usage,
		UsageText: cmd.UsageText,
		Flags:     flags(cmd),
		Date:      date,
		Version:   version,
	}
	if data.UsageText == "" {
		data.UsageText = "apidiff " + cmd.Name
	}
	return page.Execute(w, data)
}

// flags describes the flags of cmd ordered by name.
func flags(cmd *cli.Command) []Flag {
	//nolint:prealloc
	var out []Flag
	for _, f := range cmd.Flags {
		names := f.Names()
		syntax := make([]string, 0, len(names))
		for _, n := range names {
			if len(n) == 1 {
				syntax = append(syntax, "-"+n)
			} else {
				syntax = append(syntax, "--"+n)
			}
		}

		flag := Flag{ID: names[0], Syntax: "`" + strings.Join(syntax, "`, `") + "`"}
		if d, ok := f.(interface{ GetUsage() string }); ok {
			flag.Description = d.GetUsage()
		}
		if d, ok := f.(interface{ GetValue() string }); ok {
			flag.Default = d.GetValue()
		}
		out = append(out, flag)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].ID < out[j].ID
	})
	return out
}

// getVersion returns the version string from git tags, stripping the leading
// "v" prefix. Falls back to "dev" if git describe fails.
func getVersion() string {
	out, err := exec.Command("git", "describe", "--tags", "--abbrev=0").Output()
	if err != nil {
		return "dev"
	}

	version := strings.TrimSpace(string(out))
	return strings.TrimPrefix(version, "v")
}
