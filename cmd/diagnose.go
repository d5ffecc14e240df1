/*
Copyright © 2024-2025 Daniele Rondina <geaaru@macaronios.org>
See AUTHORS and LICENSE for the license details and contributors.
*/
package cmd

import (
	. "github.com/MottainaiCI/ddc-shob/cmd/diagnose"
	specs "github.com/MottainaiCI/ddc-shob/pkg/specs"

	"github.com/spf13/cobra"
)

func newDiagnoseCommand(config *specs.DdcConfig) *cobra.Command {
	var cmd = &cobra.Command{
		Use:     "diagnose [command] [OPTIONS]",
		Aliases: []string{"g"},
		Short:   "Show the loaded configuration and the resolved deploy remote.",
		Args:    cobra.NoArgs,
	}

	cmd.AddCommand(
		NewConfigCommand(config),
		NewRemoteCommand(config),
	)

	return cmd
}
