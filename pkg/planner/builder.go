/*
Copyright © 2024-2025 Daniele Rondina <geaaru@macaronios.org>
See AUTHORS and LICENSE for the license details and contributors.
*/
package planner

import (
	"strings"

	"github.com/MottainaiCI/ddc-shob/pkg/specs"
)

type ruleFunc func(b *Builder, ctx *buildContext) (*specs.InvocationPlan, error)

type buildContext struct {
	Subcommand specs.Subcommand
	Service    string
	Tail       []string
	Cwd        string
	Opts       *specs.RequestOptions
}

func (c *buildContext) newPlan() *specs.InvocationPlan {
	service := c.Service
	if !c.Subcommand.IsServiceScoped() {
		service = ""
	}
	return specs.NewInvocationPlan(c.Subcommand, service)
}

// Builder translates a subcommand to the ordered list of invocations
// to execute. It doesn't touch the filesystem or spawn processes.
type Builder struct {
	ComposeProgram string
	ComposeArgs    []string

	Python         string
	ManageScript   string
	Pytest         string
	LintPath       string
	LintJobs       []string
	Convention     string
	MypyLevel      string
	DefaultDataDir string

	rules map[specs.Subcommand]ruleFunc
}

func NewBuilder(config *specs.DdcConfig) *Builder {
	prog, args := config.GetCompose().GetComposeCommand()
	django := config.GetDjango()

	ans := &Builder{
		ComposeProgram: prog,
		ComposeArgs:    args,
		Python:         django.Python,
		ManageScript:   django.ManageScript,
		Pytest:         django.Pytest,
		LintPath:       django.LintPath,
		LintJobs:       django.LintJobs,
		Convention:     django.PydocstyleConvention,
		MypyLevel:      django.MypyLevel,
		DefaultDataDir: config.GetPurgeDb().DataDir,
	}
	ans.rules = map[specs.Subcommand]ruleFunc{
		specs.SubcommandStart:       buildStart,
		specs.SubcommandBuild:       buildBuild,
		specs.SubcommandRestart:     buildRestart,
		specs.SubcommandStop:        buildStop,
		specs.SubcommandRebuild:     buildRebuild,
		specs.SubcommandPurgeDb:     buildPurgeDb,
		specs.SubcommandMigrate:     buildMigrate,
		specs.SubcommandShowUrls:    buildShowUrls,
		specs.SubcommandAddApp:      buildAddApp,
		specs.SubcommandLint:        buildLint,
		specs.SubcommandPyTest:      buildPyTest,
		specs.SubcommandLogs:        buildLogs,
		specs.SubcommandShellPlus:   buildShellPlus,
		specs.SubcommandManagePy:    buildManagePy,
		specs.SubcommandExec:        buildExec,
		specs.SubcommandDeploy:      buildDeploy,
		specs.SubcommandStatus:      buildStatus,
		specs.SubcommandPurgeDocker: buildPurgeDocker,
	}

	return ans
}

// Build returns the plan of the subcommand for the selected service.
func (b *Builder) Build(sub specs.Subcommand, service string, tail []string,
	cwd string, opts *specs.RequestOptions) (*specs.InvocationPlan, error) {

	rule, ok := b.rules[sub]
	if !ok {
		return nil, newBuildError(ErrUnknownSubcommand, sub,
			"no rule available for subcommand %q", string(sub))
	}

	if opts == nil {
		opts = &specs.NewRequest(sub, service, tail).Options
	}
	if tail == nil {
		tail = []string{}
	}

	if sub.IsServiceScoped() && strings.TrimSpace(service) == "" {
		return nil, newBuildError(ErrMissingRequiredArgument, sub,
			"no service selected")
	}

	return rule(b, &buildContext{
		Subcommand: sub,
		Service:    service,
		Tail:       tail,
		Cwd:        cwd,
		Opts:       opts,
	})
}

// BuildRequest resolves the service of the request and builds the plan.
func (b *Builder) BuildRequest(req *specs.Request, r *Resolver) (*specs.InvocationPlan, error) {
	return b.Build(req.Subcommand, r.Resolve(req.Service), req.Tail,
		req.ProjectDir, &req.Options)
}

func (b *Builder) compose(descr string, args ...string) *specs.Invocation {
	cargs := make([]string, 0, len(b.ComposeArgs)+len(args))
	cargs = append(cargs, b.ComposeArgs...)
	cargs = append(cargs, args...)
	return specs.NewProcessInvocation(descr, b.ComposeProgram, cargs...)
}

// composeExec runs a command inside the service container. Without
// an attached terminal the TTY allocation is disabled.
func (b *Builder) composeExec(descr, service string, interactive, tty bool, cmd ...string) *specs.Invocation {
	args := []string{"exec"}
	if !interactive || !tty {
		args = append(args, "-T")
	}
	args = append(args, service)
	args = append(args, cmd...)
	return b.compose(descr, args...).SetInteractive(interactive)
}

func (b *Builder) manage(descr, service string, interactive, tty bool, args ...string) *specs.Invocation {
	cmd := []string{b.Python, b.ManageScript}
	cmd = append(cmd, args...)
	return b.composeExec(descr, service, interactive, tty, cmd...)
}
