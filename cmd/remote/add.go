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

func remoteFromFlags(cmd *cobra.Command) *specs.Remote {
	flags := cmd.Flags()
	authMethod, _ := flags.GetString("auth-method")
	host, _ := flags.GetString("host")
	port, _ := flags.GetInt("port")
	protocol, _ := flags.GetString("protocol")

	ans := specs.NewRemote(host, protocol, authMethod, port)
	ans.User, _ = flags.GetString("user")
	ans.Pass, _ = flags.GetString("pass")
	ans.PrivateKeyFile, _ = flags.GetString("privatekey-file")
	ans.PrivateKeyPass, _ = flags.GetString("privatekey-pass")
	ans.RemoteDir, _ = flags.GetString("remote-dir")
	ans.Sanitize()

	return ans
}

func NewAddCommand(config *specs.DdcConfig) *cobra.Command {
	var cmd = &cobra.Command{
		Use:     "add <remote-name> --host <host> [flags]",
		Aliases: []string{"a", "i"},
		Short:   "Add a new deploy remote.",
		Long: `Add a new deploy remote. Without --auth-method the private key
is used if defined, then the password, then the ssh-agent.

$> ddc-shob remote add prod --host 10.0.0.10 --user ubuntu \
     --privatekey-file ~/.ssh/id_ed25519 --remote-dir /srv/app --default

$> ddc-shob remote add stage --host stage.example.com --user deploy
`,
		Args: cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			defaultRemote, _ := cmd.Flags().GetBool("default")
			remoteName := args[0]

			remote := remoteFromFlags(cmd)
			if err := remote.Validate(); err != nil {
				fmt.Println("Invalid remote:", err.Error())
				os.Exit(1)
			}

			remotes, err := specs.LoadRemotesConfig(
				config.GetGeneral().RemotesConfDir,
			)
			if err != nil {
				fmt.Println("Error:", err.Error())
				os.Exit(1)
			}

			if remotes.HasRemote(remoteName) {
				fmt.Println(fmt.Sprintf("Remote %s already present.", remoteName))
				os.Exit(1)
			}

			remotes.AddRemote(remoteName, remote)
			if defaultRemote || len(remotes.Remotes) == 1 {
				remotes.SetDefault(remoteName)
			}

			if err = remotes.Write(); err != nil {
				fmt.Println("error on update remote config file:", err.Error())
				os.Exit(1)
			}

			fmt.Println(fmt.Sprintf("Remote %s (%s) created.", remoteName, remote.Endpoint()))
		},
	}

	var flags = cmd.Flags()
	flags.Bool("default", false, "Set the new remote as default deploy target.")
	flags.String("protocol", "tcp", "Network of the connection: tcp|tcp4|tcp6")
	flags.String("auth-method", "", "Ssh authentication: password|publickey|agent")
	flags.String("host", "", "Host or IP address of the remote.")
	flags.Int("port", specs.DefaultSshPort, "Ssh port of the remote.")
	flags.String("user", loader.DefaultDeployUser, "User of the ssh connection.")
	flags.String("pass", "", "Password of the user.")
	flags.String("privatekey-file", "", "Path of the private key.")
	flags.String("privatekey-pass", "", "Passphrase of the private key.")
	flags.String("remote-dir", "", "Directory where the project is deployed.")
	cmd.MarkFlagRequired("host")

	return cmd
}
