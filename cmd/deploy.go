/*
Copyright © 2024-2025 Daniele Rondina <geaaru@macaronios.org>
See AUTHORS and LICENSE for the license details and contributors.
*/
package cmd

import (
	loader "github.com/MottainaiCI/ddc-shob/pkg/loader"
	specs "github.com/MottainaiCI/ddc-shob/pkg/specs"

	"github.com/spf13/cobra"
)

func NewDeployCommand(config *specs.DdcConfig) *cobra.Command {
	var excludes []string

	var cmd = &cobra.Command{
		Use:   "deploy [deploy-dir]",
		Short: "Deploy the project to a remote host.",
		Long: `Create an archive of the project, upload it to the remote host
and rebuild and start the services there.

The stages are: archiving, uploading, remote-building, remote-starting.

$> ddc-shob deploy --remote prod

$> ddc-shob deploy --host 10.0.0.10 --user ubuntu --privatekey-file ~/.ssh/id_ed25519

$> ddc-shob deploy ./dist --exclude 'media/**'
`,
		Args: cobra.MaximumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			target := loader.NewDeployTarget()
			target.RemoteName, _ = cmd.Flags().GetString("remote")
			target.Host, _ = cmd.Flags().GetString("host")
			target.User, _ = cmd.Flags().GetString("user")
			target.Port, _ = cmd.Flags().GetInt("port")
			target.PrivateKeyFile, _ = cmd.Flags().GetString("privatekey-file")
			target.Excludes = excludes

			req := newRequest(config, cmd, args)
			runRequest(config, req, target)
		},
	}

	var flags = cmd.Flags()
	flags.String("remote", "", "Name of the remote to use.")
	flags.String("host", "", "Host to use without a configured remote.")
	flags.String("user", loader.DefaultDeployUser, "User of the ssh connection with --host.")
	flags.Int("port", 22, "Port of the ssh connection with --host.")
	flags.String("privatekey-file", "", "Private key file of the ssh connection with --host.")
	flags.StringArrayVar(&excludes, "exclude", []string{},
		"Exclude files matching the glob pattern from the archive.")

	return cmd
}
