/*
Copyright © 2024-2025 Daniele Rondina <geaaru@macaronios.org>
See AUTHORS and LICENSE for the license details and contributors.
*/
package cmd

import (
	specs "github.com/MottainaiCI/ddc-shob/pkg/specs"

	"github.com/spf13/cobra"
)

func NewMigrateCommand(config *specs.DdcConfig) *cobra.Command {
	var cmd = &cobra.Command{
		Use:   "migrate [app] [migration]",
		Short: "Apply the django migrations.",
		Long: `Apply the django migrations inside the service.

$> ddc-shob migrate

$> ddc-shob api migrate polls 0003

$> ddc-shob migrate polls zero

$> ddc-shob migrate --make polls

$> ddc-shob migrate --empty --name add_index polls
`,
		Args: cobra.MaximumNArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			req := newRequest(config, cmd, args)
			req.Options.MakeMigrations, _ = cmd.Flags().GetBool("make")
			req.Options.Empty, _ = cmd.Flags().GetBool("empty")
			req.Options.MigrationName, _ = cmd.Flags().GetString("name")
			runRequest(config, req, nil)
		},
	}

	var flags = cmd.Flags()
	flags.Bool("make", false, "Create the migrations before apply them.")
	flags.Bool("empty", false, "Create an empty migration of the application.")
	flags.String("name", "", "Name of the migration to create.")

	return cmd
}

func NewShowUrlsCommand(config *specs.DdcConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "show-urls",
		Short: "Show the urls of the django project.",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			runRequest(config, newRequest(config, cmd, args), nil)
		},
	}
}

func NewAddAppCommand(config *specs.DdcConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "add-app <name> [directory]",
		Short: "Create a new django application.",
		Args:  cobra.RangeArgs(1, 2),
		Run: func(cmd *cobra.Command, args []string) {
			runRequest(config, newRequest(config, cmd, args), nil)
		},
	}
}

func NewLintCommand(config *specs.DdcConfig) *cobra.Command {
	var cmd = &cobra.Command{
		Use:   "lint [job...] [path] [-- job-options...]",
		Short: "Run the lint jobs inside the service.",
		Long: `Run the lint jobs inside the service. Without jobs all the
configured jobs are executed and the first failure stops the others.

Available jobs: black, flake8, prospector, pydocstyle, mypy.

$> ddc-shob lint

$> ddc-shob lint flake8 mypy src/

$> ddc-shob lint black -- --check
`,
		Run: func(cmd *cobra.Command, args []string) {
			req := newRequest(config, cmd, args)
			req.Options.Convention, _ = cmd.Flags().GetString("convention")
			req.Options.Level, _ = cmd.Flags().GetString("level")
			runRequest(config, req, nil)
		},
	}

	var flags = cmd.Flags()
	flags.String("convention", "", "Convention of pydocstyle. Ex: pep257, numpy, google.")
	flags.String("level", "", "Strictness option of mypy. Ex: strict.")

	return cmd
}

// Commands with arguments forwarded verbatim.

func NewPyTestCommand(config *specs.DdcConfig) *cobra.Command {
	return &cobra.Command{
		Use:                "py-test [pytest-args...]",
		Short:              "Run the tests inside the service.",
		DisableFlagParsing: true,
		Run: func(cmd *cobra.Command, args []string) {
			runRequest(config, newRequest(config, cmd, args), nil)
		},
	}
}

func NewShellPlusCommand(config *specs.DdcConfig) *cobra.Command {
	return &cobra.Command{
		Use:     "shell-plus",
		Aliases: []string{"shell"},
		Short:   "Open the django shell_plus inside the service.",
		Args:    cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			runRequest(config, newRequest(config, cmd, args), nil)
		},
	}
}

func NewManagePyCommand(config *specs.DdcConfig) *cobra.Command {
	return &cobra.Command{
		Use:                "manage-py [args...]",
		Aliases:            []string{"manage"},
		Short:              "Run manage.py inside the service.",
		DisableFlagParsing: true,
		Run: func(cmd *cobra.Command, args []string) {
			runRequest(config, newRequest(config, cmd, args), nil)
		},
	}
}

func NewExecCommand(config *specs.DdcConfig) *cobra.Command {
	return &cobra.Command{
		Use:                "exec <command> [args...]",
		Short:              "Execute a command inside the service.",
		DisableFlagParsing: true,
		Run: func(cmd *cobra.Command, args []string) {
			runRequest(config, newRequest(config, cmd, args), nil)
		},
	}
}
