/*
Copyright © 2024-2025 Daniele Rondina <geaaru@macaronios.org>
See AUTHORS and LICENSE for the license details and contributors.
*/
package deploy

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"

	log "github.com/MottainaiCI/ddc-shob/pkg/logger"
	"github.com/MottainaiCI/ddc-shob/pkg/specs"
	"github.com/MottainaiCI/ddc-shob/pkg/template"
)

// Transport is the channel to the deploy host.
type Transport interface {
	Upload(source, target string) error
	RunCommand(ctx context.Context, command string) (int, error)
	Close() error
}

type TransportOpener func(ctx context.Context) (Transport, error)

// Report describes the result of a deploy. Stage is the last stage
// reached: StageDone on success or the failed one. It's empty when the
// configuration can't be rendered.
type Report struct {
	Stage         Stage
	Completed     []Stage
	Files         int
	Archive       string
	RemoteArchive string
	RemoteDir     string
	Commands      []string
}

func (r *Report) Failed() bool { return r.Stage != StageDone }

type Packager struct {
	Config *specs.DdcDeploy
	// Compose command used on the deploy host.
	ComposeCommand string
	User           string
	Host           string
	// Overrides the remote dir of the config.
	RemoteDir string

	Opener   TransportOpener
	Archiver *Archiver

	// Called when a stage starts.
	OnStage func(Stage)
}

func NewPackager(config *specs.DdcDeploy, composeCommand, user, host string,
	opener TransportOpener) *Packager {
	return &Packager{
		Config:         config,
		ComposeCommand: composeCommand,
		User:           user,
		Host:           host,
		Opener:         opener,
		Archiver:       NewArchiver(config.Excludes, config.IgnoreFile),
	}
}

func (p *Packager) archiveName() string {
	name := p.Config.ArchiveName
	if name == "" {
		name = "deployment"
	}
	return name + ".tar.gz"
}

func (p *Packager) templateValues() (*template.Template, error) {
	t := template.NewTemplate()
	t.SetValues(map[string]interface{}{
		"User":    p.User,
		"Host":    p.Host,
		"Compose": p.ComposeCommand,
		"Archive": p.archiveName(),
	})

	remoteDir := p.RemoteDir
	if remoteDir == "" {
		remoteDir = p.Config.RemoteDir
	}
	remoteDir, err := t.Draw(remoteDir)
	if err != nil {
		return nil, &ConfigError{Field: "remote_dir", Err: err}
	}
	if remoteDir == "" || remoteDir == "/" {
		return nil, &ConfigError{Field: "remote_dir",
			Err: fmt.Errorf("invalid remote dir %q", remoteDir)}
	}
	t.SetValue("RemoteDir", remoteDir)

	uploadDir := p.Config.UploadDir
	if uploadDir == "" {
		uploadDir = "/tmp"
	}
	uploadDir, err = t.Draw(uploadDir)
	if err != nil {
		return nil, &ConfigError{Field: "upload_dir", Err: err}
	}
	t.SetValue("ArchivePath", path.Join(uploadDir, p.archiveName()))

	return t, nil
}

func (p *Packager) enter(report *Report, s Stage) {
	if report.Stage != "" && report.Stage != s {
		report.Completed = append(report.Completed, report.Stage)
	}
	report.Stage = s
	if p.OnStage != nil {
		p.OnStage(s)
	}
}

func (p *Packager) fail(report *Report, err error) (*Report, error) {
	return report, &StageError{Stage: report.Stage, Err: err}
}

// Run executes the deploy stages in order. The first failing stage
// stops the deploy.
func (p *Packager) Run(ctx context.Context, projectDir string) (*Report, error) {
	logger := log.GetDefaultLogger()
	report := &Report{Completed: []Stage{}, Commands: []string{}}

	// Render the commands before doing anything. A render error
	// doesn't start any stage.
	tmpl, err := p.templateValues()
	if err != nil {
		return report, err
	}
	buildCmds, err := tmpl.DrawAll(p.Config.BuildCommands)
	if err != nil {
		return report, &ConfigError{Field: "build_commands", Err: err}
	}
	startCmds, err := tmpl.DrawAll(p.Config.StartCommands)
	if err != nil {
		return report, &ConfigError{Field: "start_commands", Err: err}
	}
	report.RemoteDir = tmpl.Values["RemoteDir"].(string)
	report.RemoteArchive = tmpl.Values["ArchivePath"].(string)

	// Archiving
	p.enter(report, StageArchiving)
	logger.InfoC(logger.Aurora.Bold(":package: Archiving " + projectDir))

	tmpDir, err := os.MkdirTemp("", "ddc-shob-deploy")
	if err != nil {
		return p.fail(report, &ArchiveError{Dir: projectDir, Err: err})
	}
	defer os.RemoveAll(tmpDir)

	report.Archive = filepath.Join(tmpDir, p.archiveName())
	report.Files, err = p.Archiver.Create(projectDir, report.Archive)
	if err != nil {
		return p.fail(report, err)
	}
	logger.Debug(fmt.Sprintf("Archive %s created with %d entries.",
		report.Archive, report.Files))

	if err := ctx.Err(); err != nil {
		return p.fail(report, err)
	}

	// Uploading
	p.enter(report, StageUploading)
	logger.InfoC(logger.Aurora.Bold(fmt.Sprintf(":truck: Uploading to %s:%s",
		p.Host, report.RemoteArchive)))

	if p.Opener == nil {
		return p.fail(report, &TransferError{Target: p.Host, Err: fmt.Errorf("no transport available")})
	}
	transport, err := p.Opener(ctx)
	if err != nil {
		return p.fail(report, &TransferError{Target: p.Host, Err: err})
	}
	defer transport.Close()

	if err := transport.Upload(report.Archive, report.RemoteArchive); err != nil {
		return p.fail(report, &TransferError{Target: p.Host + ":" + report.RemoteArchive, Err: err})
	}

	// RemoteBuilding
	p.enter(report, StageRemoteBuilding)
	logger.InfoC(logger.Aurora.Bold(":hammer: Building on " + p.Host))
	if err := p.runCommands(ctx, transport, report, buildCmds); err != nil {
		return p.fail(report, err)
	}

	// RemoteStarting
	p.enter(report, StageRemoteStarting)
	logger.InfoC(logger.Aurora.Bold(":rocket: Starting services on " + p.Host))
	if err := p.runCommands(ctx, transport, report, startCmds); err != nil {
		return p.fail(report, err)
	}

	p.enter(report, StageDone)
	logger.InfoC(logger.Aurora.Bold(fmt.Sprintf(":tada: Deployed on %s:%s",
		p.Host, report.RemoteDir)))

	return report, nil
}

func (p *Packager) runCommands(ctx context.Context, t Transport, report *Report, cmds []string) error {
	for _, c := range cmds {
		if err := ctx.Err(); err != nil {
			return err
		}

		report.Commands = append(report.Commands, c)
		code, err := t.RunCommand(ctx, c)
		if err != nil || code != 0 {
			return &RemoteCommandError{Command: c, Code: code, Err: err}
		}
	}
	return nil
}

// Deploy runs the stages and returns the exit code of the process.
func (p *Packager) Deploy(ctx context.Context, projectDir string) (int, error) {
	_, err := p.Run(ctx, projectDir)
	if err == nil {
		return 0, nil
	}

	var cmdErr *RemoteCommandError
	if errors.As(err, &cmdErr) && cmdErr.Code != 0 {
		return cmdErr.Code, err
	}
	return 1, err
}

// StagesFrom returns the stages still to run from s.
func StagesFrom(s Stage) []Stage {
	for idx, st := range stageOrder {
		if st == s {
			return append([]Stage{}, stageOrder[idx:]...)
		}
	}
	return []Stage{}
}
