/*
Copyright © 2024-2025 Daniele Rondina <geaaru@macaronios.org>
See AUTHORS and LICENSE for the license details and contributors.
*/
package planner

import (
	"errors"
	"fmt"

	"github.com/MottainaiCI/ddc-shob/pkg/specs"
)

type BuildErrorKind string

const (
	ErrUnknownSubcommand       BuildErrorKind = "unknown-subcommand"
	ErrMissingRequiredArgument BuildErrorKind = "missing-required-argument"
	ErrInvalidArgument         BuildErrorKind = "invalid-argument"
	ErrUnsafePath              BuildErrorKind = "unsafe-path"
)

// BuildError is returned when a request can't be translated to a plan.
// No side effects happen before it.
type BuildError struct {
	Kind       BuildErrorKind
	Subcommand specs.Subcommand
	Detail     string
}

func newBuildError(kind BuildErrorKind, sub specs.Subcommand, format string, args ...interface{}) *BuildError {
	return &BuildError{
		Kind:       kind,
		Subcommand: sub,
		Detail:     fmt.Sprintf(format, args...),
	}
}

func (e *BuildError) Error() string {
	if e.Subcommand == "" {
		return fmt.Sprintf("%s: %s", e.Kind, e.Detail)
	}
	return fmt.Sprintf("%s (%s): %s", e.Kind, e.Subcommand, e.Detail)
}

// IsBuildError checks if err is a BuildError of the selected kind.
func IsBuildError(err error, kind BuildErrorKind) bool {
	var berr *BuildError
	if errors.As(err, &berr) {
		return berr.Kind == kind
	}
	return false
}
