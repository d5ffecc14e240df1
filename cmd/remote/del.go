/*
Copyright © 2024-2025 Daniele Rondina <geaaru@macaronios.org>
See AUTHORS and LICENSE for the license details and contributors.
*/
package cmd_remote

import (
	"fmt"
	"os"

	loader "github.com/MottainaiCI/ddc-shob/pkg/loader"
	specs "github.com/MottainaiCI/ddc-shob/pkg/specs"

	"github.com/spf13/cobra"
)

func NewDelCommand(config *specs.DdcConfig) *cobra.Command {
	var cmd = &cobra.Command{
		Use:     "del [remote-name]",
		Aliases: []string{"d", "rm"},
		Short:   "Remove a deploy remote.",
		Args:    cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			remoteName := args[0]

			// The instance contains the setup of the logger
			// and the remotes.
			ddc, err := loader.NewDdcInstance(config)
			if err != nil {
				fmt.Println("error on setup instance", err.Error())
				os.Exit(1)
			}

			remotes := ddc.GetRemotes()
			logger := ddc.GetLogger()

			if !remotes.HasRemote(remoteName) {
				logger.Fatal(fmt.Sprintf("Remote %s not present.", remoteName))
			}

			remotes.DelRemote(remoteName)

			if remotes.GetDefault() == remoteName {
				remotes.SetDefault("")
			}

			// Write config
			err = remotes.Write()
			if err != nil {
				logger.Fatal("error on update remote config file:", err.Error())
			}

			logger.InfoC(fmt.Sprintf(":tada: Remote %s removed.", remoteName))
		},
	}

	return cmd
}
