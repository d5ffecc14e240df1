/*
Copyright © 2024-2025 Daniele Rondina <geaaru@macaronios.org>
See AUTHORS and LICENSE for the license details and contributors.
*/
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	loader "github.com/MottainaiCI/ddc-shob/pkg/loader"
	specs "github.com/MottainaiCI/ddc-shob/pkg/specs"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/ssh/terminal"
)

// subcommandOf returns the subcommand executed by cmd.
func subcommandOf(cmd *cobra.Command) (specs.Subcommand, error) {
	return specs.ParseSubcommand(cmd.Name())
}

// newRequest creates the request with the service selected by the
// leading positional argument or by the --service flag.
func newRequest(config *specs.DdcConfig, cmd *cobra.Command, args []string) *specs.Request {
	sub, err := subcommandOf(cmd)
	if err != nil {
		fmt.Println(err.Error())
		os.Exit(1)
	}

	req := specs.NewRequest(sub, config.Viper.GetString("service"), args)
	req.Options.TTY = terminal.IsTerminal(int(os.Stdin.Fd()))
	return req
}

func setupInstance(config *specs.DdcConfig) *loader.DdcInstance {
	ddc, err := loader.NewDdcInstance(config)
	if err != nil {
		fmt.Println("Error on setup ddc-shob instance: " + err.Error())
		os.Exit(1)
	}
	return ddc
}

// runRequest executes the request and exits with the exit code
// of the last executed step.
func runRequest(config *specs.DdcConfig, req *specs.Request, target *loader.DeployTarget) {
	ddc := setupInstance(config)
	if target != nil {
		ddc.SetDeployTarget(target)
	}

	ctx, stop := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM)
	code, err := ddc.RunRequest(ctx, req)
	stop()

	if err != nil {
		ddc.ReportError(err)
		if code == 0 {
			code = 1
		}
	}

	os.Exit(code)
}
