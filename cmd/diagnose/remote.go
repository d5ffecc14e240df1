/*
Copyright © 2024-2025 Daniele Rondina <geaaru@macaronios.org>
See AUTHORS and LICENSE for the license details and contributors.
*/
package cmd_diagnose

import (
	"fmt"
	"os"

	"github.com/MottainaiCI/ddc-shob/pkg/loader"
	"github.com/MottainaiCI/ddc-shob/pkg/specs"

	"github.com/spf13/cobra"
)

func NewRemoteCommand(config *specs.DdcConfig) *cobra.Command {
	var cmd = &cobra.Command{
		Use:     "remote",
		Aliases: []string{"r"},
		Short:   "Show the remote used by the deploy.",
		Args:    cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			remoteName, _ := cmd.Flags().GetString("remote")

			ddc, err := loader.NewDdcInstance(config)
			if err != nil {
				fmt.Println("error on setup instance", err.Error())
				os.Exit(1)
			}

			target := loader.NewDeployTarget()
			target.RemoteName = remoteName
			ddc.SetDeployTarget(target)

			name, r, err := ddc.ResolveRemote()
			if err != nil {
				ddc.GetLogger().Fatal(err.Error())
			}

			dir := r.GetRemoteDir()
			if dir == "" {
				dir = config.GetDeploy().RemoteDir
			}

			fmt.Println(fmt.Sprintf("Remote:      %s", name))
			fmt.Println(fmt.Sprintf("Endpoint:    %s", r.Endpoint()))
			fmt.Println(fmt.Sprintf("User:        %s", r.GetUser()))
			fmt.Println(fmt.Sprintf("Auth Method: %s", r.GetAuthMethod()))
			fmt.Println(fmt.Sprintf("Remote Dir:  %s", dir))
		},
	}

	cmd.Flags().String("remote", "", "Name of the remote to check.")

	return cmd
}
