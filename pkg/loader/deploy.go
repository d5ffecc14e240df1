/*
Copyright © 2024-2025 Daniele Rondina <geaaru@macaronios.org>
See AUTHORS and LICENSE for the license details and contributors.
*/
package loader

import (
	"context"
	"errors"
	"fmt"

	"github.com/MottainaiCI/ddc-shob/pkg/deploy"
	"github.com/MottainaiCI/ddc-shob/pkg/executor"
	specs "github.com/MottainaiCI/ddc-shob/pkg/specs"
)

const DefaultDeployUser = "ubuntu"

// DeployTarget contains the deploy options of the command line. Host
// defines an ad hoc remote, otherwise the remote is searched by name.
type DeployTarget struct {
	RemoteName     string
	Host           string
	User           string
	Port           int
	PrivateKeyFile string
	Excludes       []string
}

func NewDeployTarget() *DeployTarget {
	return &DeployTarget{
		User:     DefaultDeployUser,
		Port:     22,
		Excludes: []string{},
	}
}

// ResolveRemote returns the name and the remote to use for the deploy.
func (i *DdcInstance) ResolveRemote() (string, *specs.Remote, error) {
	t := i.Deploy
	if t == nil {
		t = NewDeployTarget()
	}

	if t.Host != "" {
		r := specs.NewRemote(t.Host, "tcp", "", t.Port)
		r.SetUser(t.User)
		if r.User == "" {
			r.SetUser(DefaultDeployUser)
		}
		r.SetPrivateKeyFile(specs.ExpandHome(t.PrivateKeyFile))
		r.Sanitize()
		return t.Host, r, nil
	}

	name := t.RemoteName
	if name == "" {
		name = i.Config.GetDeploy().Remote
	}
	if name == "" && i.Remotes != nil {
		name = i.Remotes.GetDefault()
	}
	if name == "" {
		return "", nil, fmt.Errorf("no deploy remote selected: use --host or --remote")
	}

	if i.Remotes == nil {
		return "", nil, fmt.Errorf("remote %s not found", name)
	}

	r, err := i.Remotes.Lookup(name)
	if err != nil {
		return "", nil, err
	}
	return name, r, nil
}

// NewPackager creates the deploy packager of the selected remote. The
// ssh connection is opened by the uploading stage.
func (i *DdcInstance) NewPackager() (*deploy.Packager, error) {
	name, remote, err := i.ResolveRemote()
	if err != nil {
		return nil, err
	}
	if err := remote.Validate(); err != nil {
		return nil, err
	}

	deployConfig := i.Config.Clone().GetDeploy()
	if i.Deploy != nil {
		deployConfig.Excludes = append(deployConfig.Excludes, i.Deploy.Excludes...)
	}

	opener := func(ctx context.Context) (deploy.Transport, error) {
		e, err := executor.NewDdcSshExecutorFromRemote(name, remote)
		if err != nil {
			return nil, err
		}
		e.SetEmitter(i.Emitter)
		e.ShowCmdsOutput = i.Config.GetLogging().CmdsOutput
		e.RuntimeCmdsOutput = i.Config.GetLogging().RuntimeCmdsOutput

		if err := e.Setup(); err != nil {
			return nil, err
		}
		if err := e.SetupSftp(); err != nil {
			e.Close()
			return nil, err
		}
		return e, nil
	}

	ans := deploy.NewPackager(deployConfig, i.Config.GetCompose().Command,
		remote.GetUser(), remote.GetHost(), opener)
	ans.RemoteDir = remote.GetRemoteDir()
	ans.OnStage = func(s deploy.Stage) {
		i.Logger.Debug(fmt.Sprintf("Deploy stage %s", s))
	}

	return ans, nil
}

// FailedStage returns the stage of a failed deploy.
func FailedStage(err error) (deploy.Stage, bool) {
	var stageErr *deploy.StageError
	if errors.As(err, &stageErr) {
		return stageErr.Stage, true
	}
	return "", false
}
