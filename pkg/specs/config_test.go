/*
Copyright © 2024-2025 Daniele Rondina <geaaru@macaronios.org>
See AUTHORS and LICENSE for the license details and contributors.
*/
package specs_test

import (
	"os"
	"path/filepath"

	. "github.com/MottainaiCI/ddc-shob/pkg/specs"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Config", func() {

	Context("Defaults", func() {

		config := NewDefaultDdcConfig()

		It("uses api as default service", func() {
			Expect(config.GetGeneral().DefaultService).To(Equal("api"))
		})

		It("uses docker-compose", func() {
			prog, args := config.GetCompose().GetComposeCommand()
			Expect(prog).To(Equal("docker-compose"))
			Expect(args).To(BeEmpty())
		})

		It("has the django defaults", func() {
			Expect(config.GetDjango().LintJobs).To(Equal([]string{"black", "flake8", "prospector"}))
			Expect(config.GetDjango().PydocstyleConvention).To(Equal("numpy"))
			Expect(config.GetPurgeDb().DataDir).To(Equal("pg"))
		})

		It("clones the config", func() {
			c := config.Clone()
			c.GetGeneral().DefaultService = "web"
			Expect(config.GetGeneral().DefaultService).To(Equal("api"))
			Expect(c.Viper).To(BeIdenticalTo(config.Viper))
		})

		It("doesn't share the slices with the clone", func() {
			c := config.Clone()
			c.GetDeploy().Excludes[0] = "media"
			c.GetDjango().LintJobs = append(c.GetDjango().LintJobs[:1], "mypy")
			Expect(config.GetDeploy().Excludes[0]).To(Equal("pg"))
			Expect(config.GetDjango().LintJobs).To(Equal([]string{"black", "flake8", "prospector"}))
		})
	})

	Context("Compose command", func() {

		It("splits the compose plugin command", func() {
			c := &DdcCompose{
				Command:     "docker compose",
				ProjectName: "shop",
				Files:       []string{"a.yml", "b.yml"},
			}
			prog, args := c.GetComposeCommand()
			Expect(prog).To(Equal("docker"))
			Expect(args).To(Equal([]string{"compose", "-p", "shop", "-f", "a.yml", "-f", "b.yml"}))
		})

		It("falls back to docker-compose", func() {
			prog, _ := (&DdcCompose{Command: " "}).GetComposeCommand()
			Expect(prog).To(Equal("docker-compose"))
		})
	})

	Context("Config file", func() {

		It("reads the values from file", func() {
			dir, err := os.MkdirTemp("", "ddc-shob-config")
			Expect(err).ShouldNot(HaveOccurred())
			defer os.RemoveAll(dir)

			file := filepath.Join(dir, ".ddc-shob.yml")
			err = os.WriteFile(file, []byte(`
general:
  default_service: backend
django:
  lint_jobs:
  - mypy
`), 0644)
			Expect(err).ShouldNot(HaveOccurred())

			config := NewDdcConfig(nil)
			config.Viper.SetConfigFile(file)
			Expect(config.Unmarshal()).To(Succeed())
			Expect(config.GetGeneral().DefaultService).To(Equal("backend"))
			Expect(config.GetDjango().LintJobs).To(Equal([]string{"mypy"}))
			Expect(config.GetDjango().Python).To(Equal("python"))
		})
	})
})
