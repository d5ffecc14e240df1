/*
Copyright © 2024-2025 Daniele Rondina <geaaru@macaronios.org>
See AUTHORS and LICENSE for the license details and contributors.
*/
package specs

import (
	"strings"
)

// CliArgs is the result of the pre-parsing of the command line
// in the format: [<service>] <subcommand> [subcommand-args...]
type CliArgs struct {
	// The explicit service token. Empty if not present.
	Service string
	// The arguments without the service token.
	Args []string
}

// Request is the typed representation of a single invocation.
type Request struct {
	Subcommand Subcommand
	// Explicit service. Empty means not supplied.
	Service string
	// Arguments after the subcommand and the service.
	Tail []string
	// Working directory of the project.
	ProjectDir string

	Options RequestOptions
}

type RequestOptions struct {
	// start
	Build bool
	// restart
	All bool
	// logs
	Follow bool
	Lines  int
	// purge-db
	Volume string
	// migrate
	MakeMigrations bool
	Empty          bool
	MigrationName  string
	// lint
	Convention string
	Level      string

	// Allocate a TTY on compose exec.
	TTY bool
}

func NewRequest(sub Subcommand, service string, tail []string) *Request {
	if tail == nil {
		tail = []string{}
	}
	return &Request{
		Subcommand: sub,
		Service:    service,
		Tail:       tail,
		Options: RequestOptions{
			Follow: true,
			Lines:  10,
			TTY:    true,
		},
	}
}

// ParseCliArgs searches the first positional argument. If it isn't a
// known command it's used as service name and removed from the list.
// valueFlags contains the global flags that consume the next token.
func ParseCliArgs(args []string, commands []string, valueFlags []string) *CliArgs {
	ans := &CliArgs{
		Args: []string{},
	}

	isCommand := func(s string) bool {
		for _, c := range commands {
			if c == s {
				return true
			}
		}
		return false
	}

	needValue := func(s string) bool {
		if strings.Contains(s, "=") {
			return false
		}
		for _, f := range valueFlags {
			if f == s {
				return true
			}
		}
		return false
	}

	for idx := 0; idx < len(args); idx++ {
		a := args[idx]

		if a == "--" {
			ans.Args = append(ans.Args, args[idx:]...)
			return ans
		}

		if strings.HasPrefix(a, "-") {
			ans.Args = append(ans.Args, a)
			if needValue(a) && idx+1 < len(args) {
				idx++
				ans.Args = append(ans.Args, args[idx])
			}
			continue
		}

		if !isCommand(a) && a != "" {
			ans.Service = a
			ans.Args = append(ans.Args, args[idx+1:]...)
		} else {
			ans.Args = append(ans.Args, args[idx:]...)
		}
		break
	}

	return ans
}

// HasFlag checks if one of the flags is present in the tail.
func HasFlag(tail []string, flags ...string) bool {
	for _, t := range tail {
		if t == "--" {
			return false
		}
		for _, f := range flags {
			if t == f {
				return true
			}
		}
	}
	return false
}
