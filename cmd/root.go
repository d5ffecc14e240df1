/*
Copyright © 2024-2025 Daniele Rondina <geaaru@macaronios.org>
See AUTHORS and LICENSE for the license details and contributors.
*/
package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	specs "github.com/MottainaiCI/ddc-shob/pkg/specs"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	cliName = `Copyright © 2024-2026 Mottainai - Daniele Rondina

ddc-shob - Docker Compose and Django shortcuts

Usage: ddc-shob [<service>] <subcommand> [args...]`
)

var (
	BuildTime      string
	BuildCommit    string
	BuildGoVersion string
)

// Global flags that consume the next token.
var valueFlags = []string{
	"-c", "--config", "-s", "--service", "--compose-command",
}

func initConfig(config *specs.DdcConfig) {
	// Set env variable
	config.Viper.SetEnvPrefix(specs.DDC_SHOB_ENV_PREFIX)
	config.Viper.BindEnv("config")
	config.Viper.SetDefault("config", "")
	config.Viper.SetDefault("service", "")

	config.Viper.AutomaticEnv()

	// Create EnvKey Replacer for handle complex structure
	replacer := strings.NewReplacer(".", "__")
	config.Viper.SetEnvKeyReplacer(replacer)

	// Set config file name (without extension)
	config.Viper.SetConfigName(specs.DDC_SHOB_CONFIGNAME)

	config.Viper.SetTypeByDefaultValue(true)
}

func initCommand(rootCmd *cobra.Command, config *specs.DdcConfig) {
	var pflags = rootCmd.PersistentFlags()

	pflags.StringP("config", "c", "", "ddc-shob configuration file")
	pflags.StringP("service", "s", "",
		"Target service. The leading positional service wins over this flag.")
	pflags.String("compose-command", config.Viper.GetString("compose.command"),
		"Compose command to use. Ex: docker-compose or \"docker compose\"")
	pflags.Bool("cmds-output", config.Viper.GetBool("logging.cmds_output"),
		"Show commands output or not.")
	pflags.BoolP("debug", "d", config.Viper.GetBool("general.debug"),
		"Enable debug output.")
	pflags.Bool("dry-run", false, "Show the commands without execute them.")

	config.Viper.BindPFlag("config", pflags.Lookup("config"))
	config.Viper.BindPFlag("service", pflags.Lookup("service"))
	config.Viper.BindPFlag("compose.command", pflags.Lookup("compose-command"))
	config.Viper.BindPFlag("general.debug", pflags.Lookup("debug"))
	config.Viper.BindPFlag("general.dry_run", pflags.Lookup("dry-run"))
	config.Viper.BindPFlag("logging.cmds_output", pflags.Lookup("cmds-output"))

	rootCmd.AddCommand(
		NewStartCommand(config),
		NewBuildCommand(config),
		NewRestartCommand(config),
		NewStopCommand(config),
		NewRebuildCommand(config),
		NewLogsCommand(config),
		NewStatusCommand(config),
		NewPurgeDockerCommand(config),
		NewPurgeDbCommand(config),
		NewMigrateCommand(config),
		NewShowUrlsCommand(config),
		NewAddAppCommand(config),
		NewLintCommand(config),
		NewPyTestCommand(config),
		NewShellPlusCommand(config),
		NewManagePyCommand(config),
		NewExecCommand(config),
		NewDeployCommand(config),
		newRemoteCommand(config),
		newDiagnoseCommand(config),
	)
}

func version() string {
	ans := fmt.Sprintf("%s-g%s %s", specs.DDC_SHOB_VERSION,
		BuildCommit, BuildTime)
	if BuildGoVersion != "" {
		ans += " " + BuildGoVersion
	}
	return ans
}

func commandNames(rootCmd *cobra.Command) []string {
	ans := []string{"help", "completion"}
	for _, c := range rootCmd.Commands() {
		ans = append(ans, c.Name())
		ans = append(ans, c.Aliases...)
	}
	return ans
}

// rewriteArgs removes the leading service from the arguments and stores
// it in the configuration.
func rewriteArgs(rootCmd *cobra.Command, config *specs.DdcConfig, args []string) []string {
	cliArgs := specs.ParseCliArgs(args, commandNames(rootCmd), valueFlags)
	if cliArgs.Service == "" {
		return args
	}

	// Without a subcommand the token is an unknown command.
	sub, _, err := rootCmd.Find(cliArgs.Args)
	if err != nil || sub == rootCmd {
		return args
	}

	config.Viper.Set("service", cliArgs.Service)
	return cliArgs.Args
}

// applyLeadingFlags parses the global flags before the subcommand for
// the commands that receive their arguments verbatim.
func applyLeadingFlags(rootCmd *cobra.Command, args []string) []string {
	sub, _, err := rootCmd.Find(args)
	if err != nil || !sub.DisableFlagParsing {
		return args
	}

	pflags := rootCmd.PersistentFlags()
	ans := []string{}
	for idx := 0; idx < len(args); idx++ {
		a := args[idx]
		if !strings.HasPrefix(a, "-") || a == "-" || a == "--" {
			return append(ans, args[idx:]...)
		}

		name, value, hasValue := strings.Cut(strings.TrimLeft(a, "-"), "=")
		f := pflags.Lookup(name)
		if f == nil && !strings.HasPrefix(a, "--") && len(name) == 1 {
			f = pflags.ShorthandLookup(name)
		}
		if f == nil {
			ans = append(ans, a)
			continue
		}

		if !hasValue {
			if f.NoOptDefVal != "" {
				value = f.NoOptDefVal
			} else if idx+1 < len(args) {
				idx++
				value = args[idx]
			}
		}
		if err := pflags.Set(f.Name, value); err != nil {
			fmt.Println(err.Error())
			os.Exit(1)
		}
	}

	return ans
}

func Execute() {
	// Create Main Instance Config object
	var config *specs.DdcConfig = specs.NewDdcConfig(nil)

	initConfig(config)

	var rootCmd = &cobra.Command{
		Use:          "ddc-shob [<service>] <subcommand>",
		Short:        cliName,
		Version:      version(),
		Args:         cobra.OnlyValidArgs,
		SilenceUsage: true,
		PreRun: func(cmd *cobra.Command, args []string) {
			if len(args) == 0 {
				cmd.Help()
				os.Exit(0)
			}
		},
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			var err error
			var v *viper.Viper = config.Viper

			v.SetConfigType("yml")
			if v.GetString("config") == "" {
				config.Viper.AddConfigPath(".")
			} else {
				v.SetConfigFile(v.GetString("config"))
			}

			// Parse configuration file
			err = config.Unmarshal()
			if err != nil {
				var notFound viper.ConfigFileNotFoundError
				if errors.As(err, &notFound) {
					// Without config file the defaults are used.
					err = v.Unmarshal(config)
				}
				if err != nil {
					fmt.Println(err.Error())
					os.Exit(1)
				}
			}
		},
	}

	initCommand(rootCmd, config)

	args := rewriteArgs(rootCmd, config, os.Args[1:])
	args = applyLeadingFlags(rootCmd, args)
	rootCmd.SetArgs(args)

	// Start command execution
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
