// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package repomodule

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"slices"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/tfctl/apidiff/internal/log"
)

// ErrUnknownModule reports a module missing from both tables.
var ErrUnknownModule = errors.New("unknown module")

// Module describes one framework module of the repository.
type Module struct {
	Name           string `json:"name"`
	Scheme         string `json:"scheme"`
	Path           string `json:"path"`
	UmbrellaHeader string `json:"umbrella_header,omitempty"`
}

// Runner runs an external tool in dir and returns its standard output.
type Runner interface {
	Run(ctx context.Context, dir string, name string, args ...string) ([]byte, error)
}

// ExecRunner runs tools with os/exec.
type ExecRunner struct{}

// Run implements Runner.
func (ExecRunner) Run(ctx context.Context, dir string, name string, args ...string) ([]byte, error) {
	log.Debugf("exec: %s %s (in %s)", name, strings.Join(args, " "), dir)
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	out, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && len(exitErr.Stderr) > 0 {
			return out, fmt.Errorf("%s failed: %w: %s", name, err, strings.TrimSpace(string(exitErr.Stderr)))
		}
		return out, fmt.Errorf("%s failed: %w", name, err)
	}
	return out, nil
}

// FromPackageDump reads `swift package dump-package` output. Every product
// names a module by its first target; the product name is the build scheme
// and the target path the module's source directory.
func FromPackageDump(data []byte) (map[string]Module, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("package dump is not valid JSON")
	}
	doc := gjson.ParseBytes(data)

	modules := map[string]Module{}
	for _, product := range doc.Get("products").Array() {
		target := product.Get("targets.0").String()
		if target == "" {
			continue
		}
		modules[target] = Module{Name: target, Scheme: product.Get("name").String()}
	}

	for _, target := range doc.Get("targets").Array() {
		name := target.Get("name").String()
		if m, ok := modules[name]; ok {
			m.Path = target.Get("path").String()
			modules[name] = m
		}
	}
	return modules, nil
}

// FromPodspec reads `pod ipc spec` output and returns the pod name and its
// umbrella header. The first public header glob is used with "*" replaced by
// the pod name.
func FromPodspec(data []byte) (name string, umbrella string, err error) {
	if !gjson.ValidBytes(data) {
		return "", "", fmt.Errorf("podspec is not valid JSON")
	}
	doc := gjson.ParseBytes(data)

	name = doc.Get("name").String()
	if name == "" {
		return "", "", fmt.Errorf("podspec has no name")
	}

	headers := doc.Get("public_header_files")
	var pattern string
	switch {
	case headers.IsArray():
		pattern = headers.Get("0").String()
	case headers.Type == gjson.String:
		pattern = headers.String()
	}
	return name, strings.ReplaceAll(pattern, "*", name), nil
}

// Discover lists the modules of the repository at root that appear both in
// the Swift package manifest and in a podspec, ordered by name.
func Discover(ctx context.Context, runner Runner, root string) ([]Module, error) {
	dump, err := runner.Run(ctx, root, "swift", "package", "dump-package")
	if err != nil {
		return nil, err
	}
	fromPackage, err := FromPackageDump(dump)
	if err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", root, err)
	}

	var modules []Module
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".podspec") {
			continue
		}
		spec, err := runner.Run(ctx, root, "pod", "ipc", "spec", entry.Name())
		if err != nil {
			log.WithError(err).Warnf("skipping %s", entry.Name())
			continue
		}
		name, umbrella, err := FromPodspec(spec)
		if err != nil {
			log.WithError(err).Warnf("skipping %s", entry.Name())
			continue
		}
		if m, ok := fromPackage[name]; ok {
			m.UmbrellaHeader = umbrella
			modules = append(modules, m)
		}
	}

	slices.SortFunc(modules, func(a, b Module) int { return strings.Compare(a.Name, b.Name) })
	log.Debugf("discovered %d modules in %s", len(modules), root)
	return modules, nil
}

// IsAPIFile reports whether a changed file can alter a public API: Swift
// sources and headers under a Public directory.
func IsAPIFile(path string) bool {
	return strings.HasSuffix(path, ".swift") ||
		(strings.HasSuffix(path, ".h") && strings.Contains(path, "Public"))
}

// DetectChanged returns the modules whose source path occurs in one of the
// changed API files, ordered by name.
func DetectChanged(modules []Module, files []string) []Module {
	var changed []Module
	for _, m := range modules {
		if m.Path == "" {
			continue
		}
		for _, f := range files {
			if IsAPIFile(f) && strings.Contains(f, m.Path) {
				changed = append(changed, m)
				break
			}
		}
	}
	slices.SortFunc(changed, func(a, b Module) int { return strings.Compare(a.Name, b.Name) })
	return slices.CompactFunc(changed, func(a, b Module) bool { return a.Name == b.Name })
}

// DocCommand returns the jazzy invocation that documents m into outDir.
func DocCommand(m Module, tables Tables, outDir string) (string, []string, error) {
	lang, ok := tables.Language(m.Name)
	if !ok {
		return "", nil, fmt.Errorf("%w: %s", ErrUnknownModule, m.Name)
	}

	switch lang {
	case Swift:
		scheme := m.Scheme
		if scheme == "" {
			scheme = m.Name
		}
		return "jazzy", []string{
			"--module", m.Name,
			"--swift-build-tool", "xcodebuild",
			"--build-tool-arguments", "-scheme," + scheme + ",-destination,generic/platform=iOS,build",
			"--output", outDir,
		}, nil
	default:
		umbrella := m.UmbrellaHeader
		if umbrella == "" {
			umbrella = filepath.Join(m.Path, "Public", m.Name, m.Name+".h")
		}
		return "jazzy", []string{
			"--objc",
			"--framework-root", m.Path,
			"--umbrella-header", umbrella,
			"--output", outDir,
		}, nil
	}
}

// BuildDocs runs jazzy for m in the repository at root.
func BuildDocs(ctx context.Context, runner Runner, root string, m Module, tables Tables, outDir string) error {
	name, args, err := DocCommand(m, tables, outDir)
	if err != nil {
		return err
	}
	out, err := runner.Run(ctx, root, name, args...)
	if err != nil {
		return fmt.Errorf("failed to document %s: %w", m.Name, err)
	}
	log.Debugf("%s", out)
	return nil
}
