/*
Copyright © 2024-2025 Daniele Rondina <geaaru@macaronios.org>
See AUTHORS and LICENSE for the license details and contributors.
*/
package planner

import (
	"fmt"
	"strings"

	"github.com/MottainaiCI/ddc-shob/pkg/specs"
)

const (
	LintBlack      = "black"
	LintFlake8     = "flake8"
	LintProspector = "prospector"
	LintPydocstyle = "pydocstyle"
	LintMypy       = "mypy"
)

var lintJobs = []string{
	LintBlack, LintFlake8, LintProspector, LintPydocstyle, LintMypy,
}

func IsLintJob(name string) bool {
	for _, j := range lintJobs {
		if j == name {
			return true
		}
	}
	return false
}

func buildMigrate(b *Builder, ctx *buildContext) (*specs.InvocationPlan, error) {
	plan := ctx.newPlan()
	app := ""
	if len(ctx.Tail) > 0 && !strings.HasPrefix(ctx.Tail[0], "-") {
		app = ctx.Tail[0]
	}

	makeArgs := func(empty bool) []string {
		args := []string{"makemigrations"}
		if empty {
			args = append(args, "--empty")
		}
		if ctx.Opts.MigrationName != "" {
			args = append(args, "--name", ctx.Opts.MigrationName)
		}
		if app != "" {
			args = append(args, app)
		}
		return args
	}

	if ctx.Opts.Empty {
		if app == "" {
			return nil, newBuildError(ErrMissingRequiredArgument, ctx.Subcommand,
				"an empty migration requires the application name")
		}
		return plan.AddStep(
			b.manage(fmt.Sprintf("create empty migration for %s", app),
				ctx.Service, false, ctx.Opts.TTY, makeArgs(true)...),
		), nil
	}

	if ctx.Opts.MakeMigrations {
		plan.AddStep(
			b.manage("create migrations", ctx.Service, false, ctx.Opts.TTY,
				makeArgs(false)...),
		)
	}

	// The migration id is forwarded as is. zero reverts all the migrations.
	args := []string{"migrate"}
	args = append(args, ctx.Tail...)

	return plan.AddStep(
		b.manage("apply migrations", ctx.Service, false, ctx.Opts.TTY, args...),
	), nil
}

func buildShowUrls(b *Builder, ctx *buildContext) (*specs.InvocationPlan, error) {
	return ctx.newPlan().AddStep(
		b.manage("show urls", ctx.Service, false, ctx.Opts.TTY, "show_urls"),
	), nil
}

func buildAddApp(b *Builder, ctx *buildContext) (*specs.InvocationPlan, error) {
	if len(ctx.Tail) == 0 || strings.TrimSpace(ctx.Tail[0]) == "" {
		return nil, newBuildError(ErrMissingRequiredArgument, ctx.Subcommand,
			"missing application name")
	}
	if strings.HasPrefix(ctx.Tail[0], "-") {
		return nil, newBuildError(ErrInvalidArgument, ctx.Subcommand,
			"invalid application name %q", ctx.Tail[0])
	}

	args := []string{"startapp"}
	args = append(args, ctx.Tail...)

	return ctx.newPlan().AddStep(
		b.manage(fmt.Sprintf("create application %s", ctx.Tail[0]),
			ctx.Service, false, ctx.Opts.TTY, args...),
	), nil
}

func (b *Builder) lintCommand(job, path string, opts *specs.RequestOptions) []string {
	switch job {
	case LintFlake8:
		return []string{"flake8", path, "--exclude=migrations"}
	case LintPydocstyle:
		convention := opts.Convention
		if convention == "" {
			convention = b.Convention
		}
		return []string{
			"pydocstyle", "--convention", convention, path,
			"--match-dir=^(?!migrations).*",
		}
	case LintMypy:
		level := opts.Level
		if level == "" {
			level = b.MypyLevel
		}
		return []string{"mypy", path, "--" + level}
	default:
		return []string{job, path}
	}
}

// buildLint creates one step for every lint job. Tail tokens that match
// a lint job select the jobs in any position, the first other token is
// the path and the rest is forwarded to every job. Tokens after "--"
// are always forwarded.
func buildLint(b *Builder, ctx *buildContext) (*specs.InvocationPlan, error) {
	plan := ctx.newPlan()
	jobs := []string{}
	path := ""
	extra := []string{}

	for idx, t := range ctx.Tail {
		if t == "--" {
			extra = append(extra, ctx.Tail[idx+1:]...)
			break
		}
		if IsLintJob(t) {
			jobs = append(jobs, t)
		} else if path == "" && !strings.HasPrefix(t, "-") {
			path = t
		} else {
			extra = append(extra, t)
		}
	}

	if len(jobs) == 0 {
		jobs = b.LintJobs
	}
	if path == "" {
		path = b.LintPath
	}

	for _, job := range jobs {
		if !IsLintJob(job) {
			return nil, newBuildError(ErrInvalidArgument, ctx.Subcommand,
				"unknown lint job %q", job)
		}

		cmd := b.lintCommand(job, path, ctx.Opts)
		cmd = append(cmd, extra...)
		plan.AddStep(
			b.composeExec(fmt.Sprintf("lint with %s", job),
				ctx.Service, false, ctx.Opts.TTY, cmd...),
		)
	}

	return plan, nil
}

func buildPyTest(b *Builder, ctx *buildContext) (*specs.InvocationPlan, error) {
	cmd := []string{b.Pytest}
	cmd = append(cmd, ctx.Tail...)
	return ctx.newPlan().AddStep(
		b.composeExec("run tests", ctx.Service, true, ctx.Opts.TTY, cmd...),
	), nil
}

func buildShellPlus(b *Builder, ctx *buildContext) (*specs.InvocationPlan, error) {
	return ctx.newPlan().AddStep(
		b.manage("open shell_plus", ctx.Service, true, ctx.Opts.TTY, "shell_plus"),
	), nil
}

func buildManagePy(b *Builder, ctx *buildContext) (*specs.InvocationPlan, error) {
	return ctx.newPlan().AddStep(
		b.manage("run manage.py", ctx.Service, true, ctx.Opts.TTY, ctx.Tail...),
	), nil
}

func buildExec(b *Builder, ctx *buildContext) (*specs.InvocationPlan, error) {
	if len(ctx.Tail) == 0 {
		return nil, newBuildError(ErrMissingRequiredArgument, ctx.Subcommand,
			"missing command to execute")
	}

	return ctx.newPlan().AddStep(
		b.composeExec(fmt.Sprintf("exec %s", ctx.Tail[0]),
			ctx.Service, true, ctx.Opts.TTY, ctx.Tail...),
	), nil
}
