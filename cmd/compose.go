/*
Copyright © 2024-2025 Daniele Rondina <geaaru@macaronios.org>
See AUTHORS and LICENSE for the license details and contributors.
*/
package cmd

import (
	"fmt"
	"os"

	"github.com/MottainaiCI/ddc-shob/pkg/helpers"
	specs "github.com/MottainaiCI/ddc-shob/pkg/specs"

	"github.com/spf13/cobra"
)

func NewStartCommand(config *specs.DdcConfig) *cobra.Command {
	var cmd = &cobra.Command{
		Use:   "start [--build]",
		Short: "Start all services in background.",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			req := newRequest(config, cmd, args)
			req.Options.Build, _ = cmd.Flags().GetBool("build")
			runRequest(config, req, nil)
		},
	}

	cmd.Flags().BoolP("build", "b", false, "Build the images before start the services.")

	return cmd
}

func NewBuildCommand(config *specs.DdcConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "build",
		Short: "Build the image of the service.",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			runRequest(config, newRequest(config, cmd, args), nil)
		},
	}
}

func NewRestartCommand(config *specs.DdcConfig) *cobra.Command {
	var cmd = &cobra.Command{
		Use:   "restart [--all]",
		Short: "Restart the service or all services.",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			req := newRequest(config, cmd, args)
			req.Options.All, _ = cmd.Flags().GetBool("all")
			runRequest(config, req, nil)
		},
	}

	cmd.Flags().Bool("all", false, "Restart all services.")

	return cmd
}

func NewStopCommand(config *specs.DdcConfig) *cobra.Command {
	return &cobra.Command{
		Use:     "stop",
		Aliases: []string{"down"},
		Short:   "Stop and remove all containers.",
		Args:    cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			runRequest(config, newRequest(config, cmd, args), nil)
		},
	}
}

func NewRebuildCommand(config *specs.DdcConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "rebuild",
		Short: "Remove the container, rebuild the image and start all services.",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			runRequest(config, newRequest(config, cmd, args), nil)
		},
	}
}

func NewLogsCommand(config *specs.DdcConfig) *cobra.Command {
	var cmd = &cobra.Command{
		Use:   "logs [-n lines] [--no-follow]",
		Short: "Show the logs of the service.",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			req := newRequest(config, cmd, args)
			req.Options.Lines, _ = cmd.Flags().GetInt("lines")
			noFollow, _ := cmd.Flags().GetBool("no-follow")
			req.Options.Follow = !noFollow
			runRequest(config, req, nil)
		},
	}

	var flags = cmd.Flags()
	flags.IntP("lines", "n", 10, "Number of lines to show from the end of the logs.")
	flags.Bool("no-follow", false, "Don't follow the logs output.")

	return cmd
}

func NewStatusCommand(config *specs.DdcConfig) *cobra.Command {
	return &cobra.Command{
		Use:     "status",
		Aliases: []string{"ps"},
		Short:   "Show the status of the services.",
		Args:    cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			runRequest(config, newRequest(config, cmd, args), nil)
		},
	}
}

func NewPurgeDockerCommand(config *specs.DdcConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "purge-docker [prune-options...]",
		Short: "Purge docker cache and unused storage.",
		Run: func(cmd *cobra.Command, args []string) {
			runRequest(config, newRequest(config, cmd, args), nil)
		},
	}
}

func NewPurgeDbCommand(config *specs.DdcConfig) *cobra.Command {
	var cmd = &cobra.Command{
		Use:   "purge-db [data-dir] [--volume name]",
		Short: "Remove the database data and restart all services.",
		Long: `Stop all containers, remove the database data directory
(or the docker volume with --volume) and start all services again.

$> ddc-shob purge-db

$> ddc-shob purge-db data/postgres

$> ddc-shob purge-db --volume project_pgdata
`,
		Args: cobra.MaximumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			yes, _ := cmd.Flags().GetBool("yes")

			req := newRequest(config, cmd, args)
			req.Options.Volume, _ = cmd.Flags().GetString("volume")

			if !yes && !config.GetGeneral().DryRun {
				target := "the database data directory"
				if req.Options.Volume != "" {
					target = "the volume " + req.Options.Volume
				} else if len(args) > 0 {
					target = args[0]
				}
				fmt.Printf("All data of %s will be lost. Continue? [y/N]: ", target)
				if !helpers.Ask(os.Stdin) {
					fmt.Println("Aborted.")
					os.Exit(1)
				}
			}

			runRequest(config, req, nil)
		},
	}

	var flags = cmd.Flags()
	flags.String("volume", "", "Remove the docker volume instead of the data directory.")
	flags.BoolP("yes", "y", false, "Don't ask for confirmation.")

	return cmd
}
