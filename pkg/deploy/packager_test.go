/*
Copyright © 2024-2025 Daniele Rondina <geaaru@macaronios.org>
See AUTHORS and LICENSE for the license details and contributors.
*/
package deploy_test

import (
	"context"
	"errors"
	"os"
	"strings"

	"github.com/MottainaiCI/ddc-shob/pkg/deploy"
	"github.com/MottainaiCI/ddc-shob/pkg/specs"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

type fakeTransport struct {
	Uploads   map[string]string
	Commands  []string
	UploadErr error
	// Exit code of the commands that contain the key.
	Codes  map[string]int
	Closed bool
}

func newFakeTransport() *fakeTransport {
	return &fakeTransport{
		Uploads:  map[string]string{},
		Commands: []string{},
		Codes:    map[string]int{},
	}
}

func (f *fakeTransport) Upload(source, target string) error {
	if f.UploadErr != nil {
		return f.UploadErr
	}
	Expect(source).To(BeAnExistingFile())
	f.Uploads[target] = source
	return nil
}

func (f *fakeTransport) RunCommand(ctx context.Context, command string) (int, error) {
	f.Commands = append(f.Commands, command)
	for k, code := range f.Codes {
		if strings.Contains(command, k) {
			return code, nil
		}
	}
	return 0, nil
}

func (f *fakeTransport) Close() error {
	f.Closed = true
	return nil
}

var _ = Describe("Packager", func() {

	var project string
	var transport *fakeTransport
	var packager *deploy.Packager
	var stages []deploy.Stage
	ctx := context.Background()

	BeforeEach(func() {
		project = createProject()
		transport = newFakeTransport()
		stages = []deploy.Stage{}

		config := specs.NewDefaultDdcConfig()
		packager = deploy.NewPackager(config.GetDeploy(), "docker-compose", "ubuntu", "10.0.0.5",
			func(ctx context.Context) (deploy.Transport, error) {
				return transport, nil
			})
		packager.OnStage = func(s deploy.Stage) {
			stages = append(stages, s)
		}
	})

	AfterEach(func() {
		os.RemoveAll(project)
	})

	It("runs all the stages", func() {
		report, err := packager.Run(ctx, project)
		Expect(err).ShouldNot(HaveOccurred())
		Expect(report.Stage).To(Equal(deploy.StageDone))
		Expect(report.Failed()).To(BeFalse())
		Expect(stages).To(Equal([]deploy.Stage{
			deploy.StageArchiving, deploy.StageUploading, deploy.StageRemoteBuilding, deploy.StageRemoteStarting, deploy.StageDone,
		}))

		Expect(report.RemoteDir).To(Equal("/home/ubuntu/web"))
		Expect(transport.Uploads).To(HaveKey("/tmp/deployment.tar.gz"))
		Expect(transport.Commands).To(Equal([]string{
			"mkdir -p /home/ubuntu/web",
			"tar -zxf /tmp/deployment.tar.gz -C /home/ubuntu/web",
			"rm -f /tmp/deployment.tar.gz",
			"cd /home/ubuntu/web && docker-compose rm -s -f",
			"cd /home/ubuntu/web && docker-compose build",
			"cd /home/ubuntu/web && docker-compose up -d",
		}))
		Expect(transport.Closed).To(BeTrue())
		Expect(report.Archive).ToNot(BeAnExistingFile())
	})

	It("doesn't start the services if the remote build fails", func() {
		transport.Codes["docker-compose build"] = 1

		report, err := packager.Run(ctx, project)
		Expect(err).Should(HaveOccurred())
		Expect(report.Stage).To(Equal(deploy.StageRemoteBuilding))
		Expect(report.Completed).To(Equal([]deploy.Stage{deploy.StageArchiving, deploy.StageUploading}))

		var stageErr *deploy.StageError
		Expect(errors.As(err, &stageErr)).To(BeTrue())
		Expect(stageErr.Stage).To(Equal(deploy.StageRemoteBuilding))

		var cmdErr *deploy.RemoteCommandError
		Expect(errors.As(err, &cmdErr)).To(BeTrue())
		Expect(cmdErr.Code).To(Equal(1))

		Expect(stages).ToNot(ContainElement(deploy.StageRemoteStarting))
		for _, c := range transport.Commands {
			Expect(c).ToNot(ContainSubstring("up -d"))
		}
	})

	It("reports the upload failure", func() {
		transport.UploadErr = errors.New("permission denied")

		report, err := packager.Run(ctx, project)
		Expect(report.Stage).To(Equal(deploy.StageUploading))
		var transferErr *deploy.TransferError
		Expect(errors.As(err, &transferErr)).To(BeTrue())
		Expect(transport.Commands).To(BeEmpty())
	})

	It("reports the connection failure as transfer error", func() {
		packager.Opener = func(ctx context.Context) (deploy.Transport, error) {
			return nil, errors.New("connection refused")
		}

		report, err := packager.Run(ctx, project)
		Expect(report.Stage).To(Equal(deploy.StageUploading))
		var transferErr *deploy.TransferError
		Expect(errors.As(err, &transferErr)).To(BeTrue())
	})

	It("fails on archiving with a missing directory", func() {
		report, err := packager.Run(ctx, project+"/missing")
		Expect(report.Stage).To(Equal(deploy.StageArchiving))
		var archiveErr *deploy.ArchiveError
		Expect(errors.As(err, &archiveErr)).To(BeTrue())
		Expect(stages).To(Equal([]deploy.Stage{deploy.StageArchiving}))
	})

	It("reports a command that can't be rendered as configuration error", func() {
		packager.Config.StartCommands = []string{"cd {{ .Missing }} && up -d"}

		report, err := packager.Run(ctx, project)
		Expect(report.Stage).To(Equal(deploy.Stage("")))
		Expect(report.Failed()).To(BeTrue())

		var configErr *deploy.ConfigError
		Expect(errors.As(err, &configErr)).To(BeTrue())
		Expect(configErr.Field).To(Equal("start_commands"))

		var stageErr *deploy.StageError
		Expect(errors.As(err, &stageErr)).To(BeFalse())

		Expect(stages).To(BeEmpty())
		Expect(transport.Uploads).To(BeEmpty())
		Expect(transport.Commands).To(BeEmpty())
	})

	It("rejects the root as remote directory", func() {
		packager.RemoteDir = "/"

		code, err := packager.Deploy(ctx, project)
		Expect(code).To(Equal(1))
		var configErr *deploy.ConfigError
		Expect(errors.As(err, &configErr)).To(BeTrue())
		Expect(configErr.Field).To(Equal("remote_dir"))
		Expect(stages).To(BeEmpty())
	})

	It("uses the remote directory of the remote", func() {
		packager.RemoteDir = "/srv/{{ .Host }}"
		report, err := packager.Run(ctx, project)
		Expect(err).ShouldNot(HaveOccurred())
		Expect(report.RemoteDir).To(Equal("/srv/10.0.0.5"))
		Expect(transport.Commands[0]).To(Equal("mkdir -p /srv/10.0.0.5"))
	})

	It("returns the exit code of the failed remote command", func() {
		transport.Codes["up -d"] = 4
		code, err := packager.Deploy(ctx, project)
		Expect(err).Should(HaveOccurred())
		Expect(code).To(Equal(4))
	})

	It("lists the stages to run", func() {
		Expect(deploy.StagesFrom(deploy.StageRemoteBuilding)).To(Equal([]deploy.Stage{
			deploy.StageRemoteBuilding, deploy.StageRemoteStarting,
		}))
		Expect(deploy.StagesFrom(deploy.StageDone)).To(BeEmpty())
	})
})
