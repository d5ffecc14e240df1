/*
Copyright © 2024-2025 Daniele Rondina <geaaru@macaronios.org>
See AUTHORS and LICENSE for the license details and contributors.
*/
package planner

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/MottainaiCI/ddc-shob/pkg/specs"
)

// ResolveDataDir returns the absolute path of the data directory if it
// is a subdirectory of the project directory.
func ResolveDataDir(projectDir, dataDir string) (string, error) {
	if projectDir == "" || !filepath.IsAbs(projectDir) {
		return "", fmt.Errorf("project directory %q is not absolute", projectDir)
	}
	if strings.TrimSpace(dataDir) == "" {
		return "", fmt.Errorf("empty data directory")
	}

	projectDir = filepath.Clean(projectDir)
	target := dataDir
	if !filepath.IsAbs(target) {
		target = filepath.Join(projectDir, target)
	}
	target = filepath.Clean(target)

	rel, err := filepath.Rel(projectDir, target)
	if err != nil {
		return "", err
	}
	if rel == "." {
		return "", fmt.Errorf("%s is the project directory", dataDir)
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%s is outside the project directory %s", dataDir, projectDir)
	}

	// A data directory is never hidden (.git, .venv) and never has
	// an extension like a source or a compose file.
	for _, elem := range strings.Split(rel, string(filepath.Separator)) {
		if strings.HasPrefix(elem, ".") {
			return "", fmt.Errorf("%s doesn't look like a data directory", dataDir)
		}
	}
	if filepath.Ext(target) != "" {
		return "", fmt.Errorf("%s doesn't look like a data directory", dataDir)
	}

	return target, nil
}

func buildPurgeDb(b *Builder, ctx *buildContext) (*specs.InvocationPlan, error) {
	plan := ctx.newPlan()

	if ctx.Opts.Volume != "" {
		plan.AddStep(b.compose("stop and remove all containers",
			"rm", "--stop", "--force"))
		plan.AddStep(specs.NewProcessInvocation(
			fmt.Sprintf("remove volume %s", ctx.Opts.Volume),
			"docker", "volume", "rm", ctx.Opts.Volume))
		plan.AddStep(b.compose("start all services", "up", "-d"))
		return plan, nil
	}

	dataDir := b.DefaultDataDir
	if len(ctx.Tail) > 0 && ctx.Tail[0] != "" {
		dataDir = ctx.Tail[0]
	}
	if dataDir == "" {
		dataDir = "pg"
	}

	target, err := ResolveDataDir(ctx.Cwd, dataDir)
	if err != nil {
		return nil, newBuildError(ErrUnsafePath, ctx.Subcommand, "%s", err.Error())
	}

	plan.AddStep(b.compose("stop and remove all containers",
		"rm", "--stop", "--force"))
	plan.AddStep(specs.NewRemoveDirInvocation(
		fmt.Sprintf("remove db data directory %s", dataDir), ctx.Cwd, target))
	plan.AddStep(b.compose("start all services", "up", "-d"))

	return plan, nil
}
