/*
Copyright © 2024-2025 Daniele Rondina <geaaru@macaronios.org>
See AUTHORS and LICENSE for the license details and contributors.
*/
package loader

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/MottainaiCI/ddc-shob/pkg/deploy"
	"github.com/MottainaiCI/ddc-shob/pkg/executor"
	"github.com/MottainaiCI/ddc-shob/pkg/helpers"
	log "github.com/MottainaiCI/ddc-shob/pkg/logger"
	"github.com/MottainaiCI/ddc-shob/pkg/planner"
	specs "github.com/MottainaiCI/ddc-shob/pkg/specs"
)

const ExitCodeBuildError = 1

type DdcInstance struct {
	Config   *specs.DdcConfig
	Logger   *log.DdcLogger
	Remotes  *specs.RemotesConfig
	Resolver *planner.Resolver
	Builder  *planner.Builder
	Emitter  executor.DdcExecutorEmitter

	// Optional. The default runner spawns the processes on the host.
	Runner executor.HostRunner
	Deploy *DeployTarget

	Output io.Writer
}

func NewDdcInstance(config *specs.DdcConfig) (*DdcInstance, error) {
	var err error
	ans := &DdcInstance{
		Config:   config,
		Logger:   log.NewDdcLogger(config),
		Resolver: planner.NewResolver(config.GetGeneral().DefaultService),
		Builder:  planner.NewBuilder(config),
		Emitter:  executor.NewDdcEmitter(),
		Deploy:   NewDeployTarget(),
		Output:   os.Stdout,
	}

	// Initialize logging
	if config.GetLogging().EnableLogFile && config.GetLogging().Path != "" {
		err = ans.Logger.InitLogger2File()
		if err != nil {
			ans.Logger.Fatal("Error on initialize logfile")
		}
	}
	ans.Logger.SetAsDefault()

	ans.Remotes, err = specs.LoadRemotesConfig(
		config.GetGeneral().RemotesConfDir,
	)
	if err == nil {
		ans.Remotes.Sanitize()
	}

	return ans, err
}

func (i *DdcInstance) GetLogger() *log.DdcLogger               { return i.Logger }
func (i *DdcInstance) GetConfig() *specs.DdcConfig             { return i.Config }
func (i *DdcInstance) GetRemotes() *specs.RemotesConfig        { return i.Remotes }
func (i *DdcInstance) SetRemotes(r *specs.RemotesConfig)       { i.Remotes = r }
func (i *DdcInstance) SetRunner(r executor.HostRunner)         { i.Runner = r }
func (i *DdcInstance) GetDeployTarget() *DeployTarget          { return i.Deploy }
func (i *DdcInstance) SetDeployTarget(t *DeployTarget)         { i.Deploy = t }
func (i *DdcInstance) GetResolver() *planner.Resolver          { return i.Resolver }
func (i *DdcInstance) GetEmitter() executor.DdcExecutorEmitter { return i.Emitter }

// BuildPlan resolves the service and creates the plan of the request.
func (i *DdcInstance) BuildPlan(req *specs.Request) (*specs.InvocationPlan, error) {
	if req.ProjectDir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, err
		}
		req.ProjectDir = cwd
	}

	return i.Builder.BuildRequest(req, i.Resolver)
}

func (i *DdcInstance) checkComposeFile(req *specs.Request) {
	if req.Subcommand == specs.SubcommandPurgeDocker {
		return
	}

	if _, ok := helpers.FindComposeFile(req.ProjectDir, i.Config.GetCompose().Files); !ok {
		i.Logger.Warning(fmt.Sprintf(
			"No compose file found in %s. The command could fail.", req.ProjectDir))
	}
}

// RunRequest builds the plan of the request and executes it. It returns
// the exit code of the process.
func (i *DdcInstance) RunRequest(ctx context.Context, req *specs.Request) (int, error) {
	plan, err := i.BuildPlan(req)
	if err != nil {
		return ExitCodeBuildError, err
	}

	i.Logger.Debug(fmt.Sprintf("Plan of %s for service '%s' with %d steps.",
		plan.Subcommand, plan.Service, plan.Len()))

	if i.Config.GetGeneral().DryRun {
		i.RenderPlan(plan, i.Output)
		return 0, nil
	}

	i.checkComposeFile(req)

	runner := i.Runner
	if runner == nil {
		execRunner := executor.NewExecRunner(req.ProjectDir, i.Emitter)
		execRunner.ShowOutput = i.Config.GetLogging().CmdsOutput
		runner = execRunner
	}

	wexec := executor.NewWorkflowExecutor(runner, i.Emitter)
	if plan.Subcommand == specs.SubcommandDeploy {
		packager, err := i.NewPackager()
		if err != nil {
			return ExitCodeBuildError, err
		}
		wexec.SetDeployHandler(packager)
	}

	return wexec.Execute(ctx, plan)
}

// ReportError logs the error with the stages not executed of a
// failed deploy.
func (i *DdcInstance) ReportError(err error) {
	i.Logger.Error(err.Error())

	var configErr *deploy.ConfigError
	if errors.As(err, &configErr) {
		i.Logger.Info(fmt.Sprintf("Stages not executed: %v",
			deploy.StagesFrom(deploy.StageArchiving)))
	} else if stage, ok := FailedStage(err); ok {
		skipped := deploy.StagesFrom(stage)
		if len(skipped) > 1 {
			i.Logger.Info(fmt.Sprintf("Stages not executed: %v", skipped[1:]))
		}
	}
}
