/*
Copyright © 2024-2025 Daniele Rondina <geaaru@macaronios.org>
See AUTHORS and LICENSE for the license details and contributors.
*/
package planner_test

import (
	. "github.com/MottainaiCI/ddc-shob/pkg/planner"
	specs "github.com/MottainaiCI/ddc-shob/pkg/specs"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

const projectDir = "/srv/project"

func manageArgs(inv *specs.Invocation) []string {
	for idx, a := range inv.Args {
		if a == "manage.py" {
			return inv.Args[idx+1:]
		}
	}
	return nil
}

func commandNames() []string {
	ans := []string{"help", "completion"}
	for _, s := range specs.GetSubcommands() {
		ans = append(ans, s.String())
	}
	return ans
}

var _ = Describe("Builder", func() {

	var builder *Builder
	var resolver *Resolver

	build := func(sub specs.Subcommand, service string, tail ...string) (*specs.InvocationPlan, error) {
		req := specs.NewRequest(sub, service, tail)
		req.ProjectDir = projectDir
		return builder.BuildRequest(req, resolver)
	}

	BeforeEach(func() {
		builder = NewBuilder(specs.NewDefaultDdcConfig())
		resolver = NewResolver("")
	})

	Context("Service resolution", func() {

		It("uses api for every service scoped subcommand", func() {
			for _, sub := range specs.GetSubcommands() {
				if !sub.IsServiceScoped() {
					continue
				}
				tail := []string{}
				if sub == specs.SubcommandAddApp || sub == specs.SubcommandExec {
					tail = []string{"foo"}
				}
				plan, err := build(sub, "", tail...)
				Expect(err).ShouldNot(HaveOccurred())
				Expect(plan.Service).To(Equal("api"), string(sub))
			}
		})

		It("uses the explicit service verbatim", func() {
			plan, err := build(specs.SubcommandShowUrls, "web")
			Expect(err).ShouldNot(HaveOccurred())
			Expect(plan.Service).To(Equal("web"))
			Expect(plan.Steps[0].Args).To(ContainElement("web"))
		})
	})

	Context("Restart", func() {

		It("restarts the positional service", func() {
			args := specs.ParseCliArgs([]string{"web", "restart"}, commandNames(), nil)
			Expect(args.Service).To(Equal("web"))
			Expect(args.Args).To(Equal([]string{"restart"}))

			sub, err := specs.ParseSubcommand(args.Args[0])
			Expect(err).ShouldNot(HaveOccurred())

			plan, err := build(sub, args.Service)
			Expect(err).ShouldNot(HaveOccurred())
			Expect(plan.Len()).To(Equal(1))
			Expect(plan.Steps[0].Program).To(Equal("docker-compose"))
			Expect(plan.Steps[0].Args).To(Equal([]string{"restart", "web"}))
		})

		It("restarts the default service", func() {
			args := specs.ParseCliArgs([]string{"restart"}, commandNames(), nil)
			Expect(args.Service).To(Equal(""))

			plan, err := build(specs.SubcommandRestart, args.Service)
			Expect(err).ShouldNot(HaveOccurred())
			Expect(plan.Len()).To(Equal(1))
			Expect(plan.Steps[0].Args).To(Equal([]string{"restart", "api"}))
		})

		It("restarts all services", func() {
			plan, err := build(specs.SubcommandRestart, "all")
			Expect(err).ShouldNot(HaveOccurred())
			Expect(plan.Steps[0].Args).To(Equal([]string{"restart"}))
			Expect(plan.Service).To(Equal(""))
		})
	})

	Context("Start and stop", func() {

		It("starts all services detached", func() {
			plan, err := build(specs.SubcommandStart, "web")
			Expect(err).ShouldNot(HaveOccurred())
			Expect(plan.Len()).To(Equal(1))
			Expect(plan.Steps[0].Args).To(Equal([]string{"up", "-d"}))
			Expect(plan.Service).To(Equal(""))
		})

		It("builds the images before start with --build", func() {
			plan, err := build(specs.SubcommandStart, "", "--build")
			Expect(err).ShouldNot(HaveOccurred())
			Expect(plan.Len()).To(Equal(2))
			Expect(plan.Steps[0].Args).To(Equal([]string{"build", "--force-rm"}))
			Expect(plan.Steps[1].Args).To(Equal([]string{"up", "-d"}))
		})

		It("stops and removes all containers", func() {
			plan, err := build(specs.SubcommandStop, "")
			Expect(err).ShouldNot(HaveOccurred())
			Expect(plan.Steps[0].Args).To(Equal([]string{"rm", "--stop", "--force", "-v"}))
		})

		It("builds only the selected service", func() {
			plan, err := build(specs.SubcommandBuild, "worker")
			Expect(err).ShouldNot(HaveOccurred())
			Expect(plan.Steps[0].Args).To(Equal([]string{"build", "--force-rm", "worker"}))
		})
	})

	Context("Rebuild", func() {

		It("produces stop, build and start in order", func() {
			for _, service := range []string{"", "web", "db"} {
				plan, err := build(specs.SubcommandRebuild, service)
				Expect(err).ShouldNot(HaveOccurred())
				target := resolver.Resolve(service)

				Expect(plan.Len()).To(Equal(3))
				Expect(plan.Steps[0].Args).To(Equal([]string{"rm", "--stop", "--force", "-v", target}))
				Expect(plan.Steps[0].BestEffort).To(BeTrue())
				Expect(plan.Steps[1].Args).To(Equal([]string{"build", "--force-rm", target}))
				Expect(plan.Steps[1].BestEffort).To(BeFalse())
				Expect(plan.Steps[2].Args).To(Equal([]string{"up", "-d"}))
				Expect(plan.Steps[2].BestEffort).To(BeFalse())
			}
		})
	})

	Context("Migrate", func() {

		It("forwards app and zero", func() {
			plan, err := build(specs.SubcommandMigrate, "", "foo", "zero")
			Expect(err).ShouldNot(HaveOccurred())
			Expect(plan.Len()).To(Equal(1))
			Expect(manageArgs(plan.Steps[0])).To(Equal([]string{"migrate", "foo", "zero"}))
		})

		It("forwards only the app", func() {
			plan, err := build(specs.SubcommandMigrate, "", "foo")
			Expect(err).ShouldNot(HaveOccurred())
			Expect(manageArgs(plan.Steps[0])).To(Equal([]string{"migrate", "foo"}))
		})

		It("runs migrate without arguments", func() {
			plan, err := build(specs.SubcommandMigrate, "")
			Expect(err).ShouldNot(HaveOccurred())
			Expect(manageArgs(plan.Steps[0])).To(Equal([]string{"migrate"}))
			Expect(plan.Steps[0].Args[:5]).To(Equal([]string{"exec", "-T", "api", "python", "manage.py"}))
		})

		It("creates migrations before migrate", func() {
			req := specs.NewRequest(specs.SubcommandMigrate, "", []string{"foo"})
			req.ProjectDir = projectDir
			req.Options.MakeMigrations = true
			req.Options.MigrationName = "init"
			plan, err := builder.BuildRequest(req, resolver)
			Expect(err).ShouldNot(HaveOccurred())
			Expect(plan.Len()).To(Equal(2))
			Expect(manageArgs(plan.Steps[0])).To(Equal([]string{"makemigrations", "--name", "init", "foo"}))
			Expect(manageArgs(plan.Steps[1])).To(Equal([]string{"migrate", "foo"}))
		})

		It("requires the app for an empty migration", func() {
			req := specs.NewRequest(specs.SubcommandMigrate, "", nil)
			req.ProjectDir = projectDir
			req.Options.Empty = true
			plan, err := builder.BuildRequest(req, resolver)
			Expect(plan).To(BeNil())
			Expect(IsBuildError(err, ErrMissingRequiredArgument)).To(BeTrue())

			req.Tail = []string{"foo"}
			plan, err = builder.BuildRequest(req, resolver)
			Expect(err).ShouldNot(HaveOccurred())
			Expect(manageArgs(plan.Steps[0])).To(Equal([]string{"makemigrations", "--empty", "foo"}))
		})
	})

	Context("Purge db", func() {

		It("uses pg without a path", func() {
			plan, err := build(specs.SubcommandPurgeDb, "")
			Expect(err).ShouldNot(HaveOccurred())
			Expect(plan.Len()).To(Equal(3))
			Expect(plan.Steps[0].Args).To(Equal([]string{"rm", "--stop", "--force"}))
			Expect(plan.Steps[1].Kind).To(Equal(specs.InvocationRemoveDir))
			Expect(plan.Steps[1].Args).To(Equal([]string{projectDir + "/pg"}))
			Expect(plan.Steps[1].Root).To(Equal(projectDir))
			Expect(plan.Steps[2].Args).To(Equal([]string{"up", "-d"}))
		})

		It("rejects a path outside the project", func() {
			plan, err := build(specs.SubcommandPurgeDb, "", "../../etc")
			Expect(plan).To(BeNil())
			Expect(IsBuildError(err, ErrUnsafePath)).To(BeTrue())
		})

		It("rejects the project directory and hidden directories", func() {
			for _, p := range []string{".", "./", ".git", "data/.venv", "docker-compose.yml", "/etc"} {
				plan, err := build(specs.SubcommandPurgeDb, "", p)
				Expect(plan).To(BeNil(), p)
				Expect(IsBuildError(err, ErrUnsafePath)).To(BeTrue(), p)
			}
		})

		It("accepts a nested data directory", func() {
			plan, err := build(specs.SubcommandPurgeDb, "", "volumes/pgdata")
			Expect(err).ShouldNot(HaveOccurred())
			Expect(plan.Steps[1].Args).To(Equal([]string{projectDir + "/volumes/pgdata"}))
		})

		It("removes a volume instead of the directory", func() {
			req := specs.NewRequest(specs.SubcommandPurgeDb, "", nil)
			req.ProjectDir = projectDir
			req.Options.Volume = "project_pgdata"
			plan, err := builder.BuildRequest(req, resolver)
			Expect(err).ShouldNot(HaveOccurred())
			Expect(plan.Steps[1].Argv()).To(Equal([]string{"docker", "volume", "rm", "project_pgdata"}))
		})
	})

	Context("Lint", func() {

		It("runs the default jobs", func() {
			plan, err := build(specs.SubcommandLint, "")
			Expect(err).ShouldNot(HaveOccurred())
			Expect(plan.Len()).To(Equal(3))
			Expect(plan.Steps[0].Args).To(Equal([]string{"exec", "-T", "api", "black", "/app"}))
			Expect(plan.Steps[1].Args).To(Equal([]string{"exec", "-T", "api", "flake8", "/app", "--exclude=migrations"}))
			Expect(plan.Steps[2].Args).To(Equal([]string{"exec", "-T", "api", "prospector", "/app"}))
		})

		It("runs only the selected job on a path", func() {
			plan, err := build(specs.SubcommandLint, "web", "mypy", "/app/core")
			Expect(err).ShouldNot(HaveOccurred())
			Expect(plan.Len()).To(Equal(1))
			Expect(plan.Steps[0].Args).To(Equal([]string{"exec", "-T", "web", "mypy", "/app/core", "--strict"}))
		})

		It("selects a job named after the path", func() {
			plan, err := build(specs.SubcommandLint, "", "/app", "black")
			Expect(err).ShouldNot(HaveOccurred())
			Expect(plan.Len()).To(Equal(1))
			Expect(plan.Steps[0].Args).To(Equal([]string{"exec", "-T", "api", "black", "/app"}))
		})

		It("forwards the tokens after the separator", func() {
			plan, err := build(specs.SubcommandLint, "", "flake8", "/app", "--", "black")
			Expect(err).ShouldNot(HaveOccurred())
			Expect(plan.Len()).To(Equal(1))
			Expect(plan.Steps[0].Args).To(Equal([]string{
				"exec", "-T", "api", "flake8", "/app", "--exclude=migrations", "black",
			}))
		})

		It("uses the pydocstyle convention", func() {
			req := specs.NewRequest(specs.SubcommandLint, "", []string{"pydocstyle"})
			req.ProjectDir = projectDir
			req.Options.Convention = "google"
			plan, err := builder.BuildRequest(req, resolver)
			Expect(err).ShouldNot(HaveOccurred())
			Expect(plan.Steps[0].Args).To(ContainElements("--convention", "google"))
		})
	})

	Context("Django commands", func() {

		It("requires the app name for add-app", func() {
			plan, err := build(specs.SubcommandAddApp, "")
			Expect(plan).To(BeNil())
			Expect(IsBuildError(err, ErrMissingRequiredArgument)).To(BeTrue())

			plan, err = build(specs.SubcommandAddApp, "", "")
			Expect(plan).To(BeNil())
			Expect(IsBuildError(err, ErrMissingRequiredArgument)).To(BeTrue())
		})

		It("creates a new app", func() {
			plan, err := build(specs.SubcommandAddApp, "", "blog")
			Expect(err).ShouldNot(HaveOccurred())
			Expect(manageArgs(plan.Steps[0])).To(Equal([]string{"startapp", "blog"}))
		})

		It("shows urls", func() {
			plan, err := build(specs.SubcommandShowUrls, "")
			Expect(err).ShouldNot(HaveOccurred())
			Expect(manageArgs(plan.Steps[0])).To(Equal([]string{"show_urls"}))
		})

		It("forwards the tail to pytest", func() {
			plan, err := build(specs.SubcommandPyTest, "", "-k", "login", "tests/")
			Expect(err).ShouldNot(HaveOccurred())
			Expect(plan.Steps[0].Args).To(Equal([]string{"exec", "api", "pytest", "-k", "login", "tests/"}))
		})

		It("forwards the tail to manage.py", func() {
			plan, err := build(specs.SubcommandManagePy, "", "createsuperuser", "--username", "admin")
			Expect(err).ShouldNot(HaveOccurred())
			Expect(manageArgs(plan.Steps[0])).To(Equal([]string{"createsuperuser", "--username", "admin"}))
			Expect(plan.Steps[0].Interactive).To(BeTrue())
		})

		It("opens shell_plus attached", func() {
			plan, err := build(specs.SubcommandShellPlus, "")
			Expect(err).ShouldNot(HaveOccurred())
			Expect(plan.Steps[0].Interactive).To(BeTrue())
			Expect(plan.Steps[0].Args).To(Equal([]string{"exec", "api", "python", "manage.py", "shell_plus"}))
		})
	})

	Context("Exec and logs", func() {

		It("executes the tail verbatim", func() {
			plan, err := build(specs.SubcommandExec, "db", "psql", "-U", "postgres")
			Expect(err).ShouldNot(HaveOccurred())
			Expect(plan.Steps[0].Args).To(Equal([]string{"exec", "db", "psql", "-U", "postgres"}))
			Expect(plan.Steps[0].Interactive).To(BeTrue())
		})

		It("disables the tty without a terminal", func() {
			req := specs.NewRequest(specs.SubcommandExec, "db", []string{"ls"})
			req.Options.TTY = false
			plan, err := builder.BuildRequest(req, resolver)
			Expect(err).ShouldNot(HaveOccurred())
			Expect(plan.Steps[0].Args).To(Equal([]string{"exec", "-T", "db", "ls"}))
		})

		It("requires a command", func() {
			plan, err := build(specs.SubcommandExec, "db")
			Expect(plan).To(BeNil())
			Expect(IsBuildError(err, ErrMissingRequiredArgument)).To(BeTrue())
		})

		It("streams the logs", func() {
			plan, err := build(specs.SubcommandLogs, "")
			Expect(err).ShouldNot(HaveOccurred())
			Expect(plan.Steps[0].Interactive).To(BeTrue())
			Expect(plan.Steps[0].Args).To(Equal([]string{"logs", "--timestamps", "--tail=10", "--follow", "api"}))
		})
	})

	Context("Deploy and errors", func() {

		It("delegates deploy to the packager", func() {
			plan, err := build(specs.SubcommandDeploy, "")
			Expect(err).ShouldNot(HaveOccurred())
			Expect(plan.Len()).To(Equal(1))
			Expect(plan.Steps[0].Kind).To(Equal(specs.InvocationDeploy))
			Expect(plan.Steps[0].Args).To(Equal([]string{projectDir}))
		})

		It("rejects an unknown subcommand", func() {
			plan, err := build(specs.Subcommand("fly"), "")
			Expect(plan).To(BeNil())
			Expect(IsBuildError(err, ErrUnknownSubcommand)).To(BeTrue())
		})
	})

	Context("Compose command", func() {

		It("supports compose as docker plugin", func() {
			config := specs.NewDefaultDdcConfig()
			config.GetCompose().Command = "docker compose"
			config.GetCompose().ProjectName = "shop"
			config.GetCompose().Files = []string{"compose.dev.yml"}
			b := NewBuilder(config)

			plan, err := b.Build(specs.SubcommandStop, "api", nil, projectDir, nil)
			Expect(err).ShouldNot(HaveOccurred())
			Expect(plan.Steps[0].Argv()).To(Equal([]string{
				"docker", "compose", "-p", "shop", "-f", "compose.dev.yml",
				"rm", "--stop", "--force", "-v",
			}))
		})
	})
})
