/*
Copyright © 2024-2025 Daniele Rondina <geaaru@macaronios.org>
See AUTHORS and LICENSE for the license details and contributors.
*/
package planner

import (
	"fmt"
	"strconv"

	"github.com/MottainaiCI/ddc-shob/pkg/specs"
)

const allServices = "all"

func buildStart(b *Builder, ctx *buildContext) (*specs.InvocationPlan, error) {
	plan := ctx.newPlan()

	if ctx.Opts.Build || specs.HasFlag(ctx.Tail, "--build", "-b") {
		plan.AddStep(b.compose("build images of all services",
			"build", "--force-rm"))
	}

	return plan.AddStep(b.compose("start all services", "up", "-d")), nil
}

func buildBuild(b *Builder, ctx *buildContext) (*specs.InvocationPlan, error) {
	return ctx.newPlan().AddStep(
		b.compose(fmt.Sprintf("build image of %s", ctx.Service),
			"build", "--force-rm", ctx.Service),
	), nil
}

func buildRestart(b *Builder, ctx *buildContext) (*specs.InvocationPlan, error) {
	plan := ctx.newPlan()

	if ctx.Opts.All || ctx.Service == allServices || specs.HasFlag(ctx.Tail, "--all") {
		plan.Service = ""
		return plan.AddStep(b.compose("restart all services", "restart")), nil
	}

	return plan.AddStep(
		b.compose(fmt.Sprintf("restart %s", ctx.Service), "restart", ctx.Service),
	), nil
}

func buildStop(b *Builder, ctx *buildContext) (*specs.InvocationPlan, error) {
	return ctx.newPlan().AddStep(
		b.compose("stop and remove all containers", "rm", "--stop", "--force", "-v"),
	), nil
}

func buildRebuild(b *Builder, ctx *buildContext) (*specs.InvocationPlan, error) {
	plan := ctx.newPlan()

	// The container could be not present.
	plan.AddStep(
		b.compose(fmt.Sprintf("stop and remove container of %s", ctx.Service),
			"rm", "--stop", "--force", "-v", ctx.Service).SetBestEffort(true),
	)
	plan.AddStep(
		b.compose(fmt.Sprintf("rebuild image of %s", ctx.Service),
			"build", "--force-rm", ctx.Service),
	)
	plan.AddStep(b.compose("start all services", "up", "-d"))

	return plan, nil
}

func buildLogs(b *Builder, ctx *buildContext) (*specs.InvocationPlan, error) {
	args := []string{"logs", "--timestamps"}
	if ctx.Opts.Lines > 0 {
		args = append(args, "--tail="+strconv.Itoa(ctx.Opts.Lines))
	}
	if ctx.Opts.Follow {
		args = append(args, "--follow")
	}
	args = append(args, ctx.Service)

	return ctx.newPlan().AddStep(
		b.compose(fmt.Sprintf("show logs of %s", ctx.Service), args...).SetInteractive(true),
	), nil
}

func buildStatus(b *Builder, ctx *buildContext) (*specs.InvocationPlan, error) {
	return ctx.newPlan().AddStep(
		b.compose("show services status", "ps").SetInteractive(true),
	), nil
}

func buildPurgeDocker(b *Builder, ctx *buildContext) (*specs.InvocationPlan, error) {
	args := []string{"system", "prune"}
	args = append(args, ctx.Tail...)
	return ctx.newPlan().AddStep(
		specs.NewProcessInvocation("purge docker cache and storage",
			"docker", args...).SetInteractive(true),
	), nil
}

func buildDeploy(b *Builder, ctx *buildContext) (*specs.InvocationPlan, error) {
	dir := ctx.Cwd
	if len(ctx.Tail) > 0 && ctx.Tail[0] != "" {
		dir = ctx.Tail[0]
	}
	if dir == "" {
		return nil, newBuildError(ErrMissingRequiredArgument, ctx.Subcommand,
			"no directory to deploy")
	}

	return ctx.newPlan().AddStep(
		specs.NewDeployInvocation(fmt.Sprintf("deploy %s", dir), dir),
	), nil
}
