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

func NewSetDefaultCommand(config *specs.DdcConfig) *cobra.Command {
	var cmd = &cobra.Command{
		Use:     "set-default [remote-name]",
		Aliases: []string{"sd", "default"},
		Short:   "Set the default deploy remote.",
		Args:    cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			remoteName := args[0]

			ddc, err := loader.NewDdcInstance(config)
			if err != nil {
				fmt.Println("Error on setup ddc-shob instance:" + err.Error() + "\n")
				os.Exit(1)
			}

			remotes := ddc.GetRemotes()
			logger := ddc.GetLogger()

			if !remotes.HasRemote(remoteName) {
				logger.Fatal(fmt.Sprintf("Remote %s not present.", remoteName))
			}

			remotes.SetDefault(remoteName)

			// Write config
			err = remotes.Write()
			if err != nil {
				logger.Fatal("error on update remote config file:", err.Error())
			}

			logger.InfoC(fmt.Sprintf(":tada: Remote %s set as default.", remoteName))
		},
	}

	return cmd
}
