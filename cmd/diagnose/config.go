/*
Copyright © 2024-2025 Daniele Rondina <geaaru@macaronios.org>
See AUTHORS and LICENSE for the license details and contributors.
*/
package cmd_diagnose

import (
	"fmt"
	"os"

	"github.com/MottainaiCI/ddc-shob/pkg/specs"

	yamlgo "github.com/ghodss/yaml"
	"github.com/spf13/cobra"
)

func NewConfigCommand(config *specs.DdcConfig) *cobra.Command {
	var cmd = &cobra.Command{
		Use:     "config",
		Aliases: []string{"c"},
		Short:   "Dump the loaded configuration.",
		Args:    cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			jsonFormat, _ := cmd.Flags().GetBool("json")

			data, err := config.Yaml()
			if err != nil {
				fmt.Println("Error on marshal configuration: " + err.Error())
				os.Exit(1)
			}

			if jsonFormat {
				data, err = yamlgo.YAMLToJSON(data)
				if err != nil {
					fmt.Println("Error on convert configuration: " + err.Error())
					os.Exit(1)
				}
			}

			if f := config.Viper.ConfigFileUsed(); f != "" && !jsonFormat {
				fmt.Println("# " + f)
			}
			fmt.Println(string(data))
		},
	}

	cmd.Flags().Bool("json", false, "Dump in JSON format.")

	return cmd
}
