/*
Copyright © 2024-2025 Daniele Rondina <geaaru@macaronios.org>
See AUTHORS and LICENSE for the license details and contributors.
*/
package cmd_remote

import (
	"encoding/json"
	"fmt"
	"os"

	loader "github.com/MottainaiCI/ddc-shob/pkg/loader"
	specs "github.com/MottainaiCI/ddc-shob/pkg/specs"

	tablewriter "github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

func NewListCommand(config *specs.DdcConfig) *cobra.Command {
	var cmd = &cobra.Command{
		Use:     "list",
		Aliases: []string{"l", "li"},
		Short:   "List the deploy remotes.",
		Args:    cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			jsonOutput, _ := cmd.Flags().GetBool("json")
			search, _ := cmd.Flags().GetString("search")

			ddc, err := loader.NewDdcInstance(config)
			if err != nil {
				fmt.Println("Error on setup ddc-shob instance:" + err.Error() + "\n")
				os.Exit(1)
			}

			remotes := ddc.GetRemotes()

			remoteNames, err := remotes.Names(search)
			if err != nil {
				fmt.Println("Error: " + err.Error())
				os.Exit(1)
			}

			if jsonOutput {
				selected := make(map[string]*specs.Remote, len(remoteNames))
				for _, name := range remoteNames {
					selected[name] = remotes.GetRemote(name)
				}

				data, err := json.Marshal(selected)
				if err != nil {
					fmt.Println("Error on encode remotes ", err.Error())
					os.Exit(1)
				}
				fmt.Println(string(data))
				return
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.SetBorders(tablewriter.Border{Left: true, Top: false, Right: true, Bottom: false})
			table.SetCenterSeparator("|")
			table.SetHeader([]string{
				"Name", "URL", "AuthMethod", "User", "Remote Dir",
			})
			table.SetAutoWrapText(false)

			for _, remote := range remoteNames {
				r := remotes.GetRemote(remote)
				if remote == remotes.GetDefault() {
					remote = remote + " (default)"
				}

				table.Append([]string{
					remote,
					r.Endpoint(),
					r.GetAuthMethod(),
					r.GetUser(),
					r.GetRemoteDir(),
				})
			}

			table.Render()
		},
	}

	var flags = cmd.Flags()
	flags.Bool("json", false, "JSON output")
	flags.String("search", "", "Regex filter to use with remote name.")

	return cmd
}
