/*
Copyright © 2024-2025 Daniele Rondina <geaaru@macaronios.org>
See AUTHORS and LICENSE for the license details and contributors.
*/
package cmd

import (
	specs "github.com/MottainaiCI/ddc-shob/pkg/specs"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/spf13/cobra"
)

var _ = Describe("Command line", func() {
	var config *specs.DdcConfig
	var rootCmd *cobra.Command

	BeforeEach(func() {
		config = specs.NewDdcConfig(nil)
		initConfig(config)
		rootCmd = &cobra.Command{Use: "ddc-shob"}
		initCommand(rootCmd, config)
	})

	Context("Leading service", func() {

		It("removes the service before the subcommand", func() {
			args := rewriteArgs(rootCmd, config, []string{"web", "restart"})
			Expect(args).To(Equal([]string{"restart"}))
			Expect(config.Viper.GetString("service")).To(Equal("web"))
		})

		It("keeps the global flags", func() {
			args := rewriteArgs(rootCmd, config, []string{"-d", "web", "migrate", "polls", "zero"})
			Expect(args).To(Equal([]string{"-d", "migrate", "polls", "zero"}))
			Expect(config.Viper.GetString("service")).To(Equal("web"))
		})

		It("doesn't change a command without service", func() {
			args := rewriteArgs(rootCmd, config, []string{"restart"})
			Expect(args).To(Equal([]string{"restart"}))
			Expect(config.Viper.GetString("service")).To(Equal(""))
		})

		It("doesn't consume a token without subcommand", func() {
			args := rewriteArgs(rootCmd, config, []string{"web"})
			Expect(args).To(Equal([]string{"web"}))
			Expect(config.Viper.GetString("service")).To(Equal(""))
		})

		It("handles the command aliases", func() {
			args := rewriteArgs(rootCmd, config, []string{"api", "ps"})
			Expect(args).To(Equal([]string{"ps"}))
			Expect(config.Viper.GetString("service")).To(Equal("api"))
		})
	})

	Context("Verbatim commands", func() {

		It("applies the leading global flags", func() {
			args := applyLeadingFlags(rootCmd, []string{"--dry-run", "-s", "api", "exec", "ls", "-la"})
			Expect(args).To(Equal([]string{"exec", "ls", "-la"}))
			Expect(config.Viper.GetBool("general.dry_run")).To(BeTrue())
			Expect(config.Viper.GetString("service")).To(Equal("api"))
		})

		It("doesn't change the other commands", func() {
			args := applyLeadingFlags(rootCmd, []string{"--dry-run", "restart"})
			Expect(args).To(Equal([]string{"--dry-run", "restart"}))
		})
	})

	Context("Subcommands", func() {

		It("registers a command for every subcommand", func() {
			for _, sub := range specs.GetSubcommands() {
				c, _, err := rootCmd.Find([]string{sub.String()})
				Expect(err).ShouldNot(HaveOccurred(), sub.String())

				parsed, err := subcommandOf(c)
				Expect(err).ShouldNot(HaveOccurred())
				Expect(parsed).To(Equal(sub))
			}
		})

		It("resolves the aliases to the subcommand", func() {
			c, _, err := rootCmd.Find([]string{"ps"})
			Expect(err).ShouldNot(HaveOccurred())
			sub, err := subcommandOf(c)
			Expect(err).ShouldNot(HaveOccurred())
			Expect(sub).To(Equal(specs.SubcommandStatus))
		})

		It("rejects a command without subcommand", func() {
			c, _, err := rootCmd.Find([]string{"remote"})
			Expect(err).ShouldNot(HaveOccurred())
			_, err = subcommandOf(c)
			Expect(err).Should(HaveOccurred())
		})
	})
})
