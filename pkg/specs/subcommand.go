/*
Copyright © 2024-2025 Daniele Rondina <geaaru@macaronios.org>
See AUTHORS and LICENSE for the license details and contributors.
*/
package specs

import (
	"fmt"
	"sort"
	"strings"
)

type Subcommand string

const (
	SubcommandStart       Subcommand = "start"
	SubcommandRestart     Subcommand = "restart"
	SubcommandStop        Subcommand = "stop"
	SubcommandRebuild     Subcommand = "rebuild"
	SubcommandPurgeDb     Subcommand = "purge-db"
	SubcommandMigrate     Subcommand = "migrate"
	SubcommandShowUrls    Subcommand = "show-urls"
	SubcommandAddApp      Subcommand = "add-app"
	SubcommandLint        Subcommand = "lint"
	SubcommandPyTest      Subcommand = "py-test"
	SubcommandLogs        Subcommand = "logs"
	SubcommandShellPlus   Subcommand = "shell-plus"
	SubcommandDeploy      Subcommand = "deploy"
	SubcommandManagePy    Subcommand = "manage-py"
	SubcommandExec        Subcommand = "exec"
	SubcommandBuild       Subcommand = "build"
	SubcommandStatus      Subcommand = "status"
	SubcommandPurgeDocker Subcommand = "purge-docker"
)

var subcommands = map[Subcommand]bool{
	SubcommandStart:       false,
	SubcommandRestart:     true,
	SubcommandStop:        false,
	SubcommandRebuild:     true,
	SubcommandPurgeDb:     false,
	SubcommandMigrate:     true,
	SubcommandShowUrls:    true,
	SubcommandAddApp:      true,
	SubcommandLint:        true,
	SubcommandPyTest:      true,
	SubcommandLogs:        true,
	SubcommandShellPlus:   true,
	SubcommandDeploy:      false,
	SubcommandManagePy:    true,
	SubcommandExec:        true,
	SubcommandBuild:       true,
	SubcommandStatus:      false,
	SubcommandPurgeDocker: false,
}

// ParseSubcommand converts a raw token to a Subcommand.
func ParseSubcommand(s string) (Subcommand, error) {
	sub := Subcommand(s)
	if _, ok := subcommands[sub]; !ok {
		names := []string{}
		for _, sub := range GetSubcommands() {
			names = append(names, sub.String())
		}
		return "", fmt.Errorf("unknown subcommand %q, available: %s",
			s, strings.Join(names, ", "))
	}
	return sub, nil
}

func (s Subcommand) String() string { return string(s) }

func (s Subcommand) IsValid() bool {
	_, ok := subcommands[s]
	return ok
}

// IsServiceScoped returns true when the subcommand operates on a
// single compose service.
func (s Subcommand) IsServiceScoped() bool {
	return subcommands[s]
}

func GetSubcommands() []Subcommand {
	ans := []Subcommand{}
	for s := range subcommands {
		ans = append(ans, s)
	}
	sort.Slice(ans, func(i, j int) bool { return ans[i] < ans[j] })
	return ans
}
