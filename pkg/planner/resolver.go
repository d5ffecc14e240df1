/*
Copyright © 2024-2025 Daniele Rondina <geaaru@macaronios.org>
See AUTHORS and LICENSE for the license details and contributors.
*/
package planner

import (
	"strings"

	"github.com/MottainaiCI/ddc-shob/pkg/specs"
)

// Resolver chooses the effective service of a request.
type Resolver struct {
	DefaultService string
}

func NewResolver(defaultService string) *Resolver {
	if strings.TrimSpace(defaultService) == "" {
		defaultService = specs.DefaultService
	}
	return &Resolver{DefaultService: defaultService}
}

func (r *Resolver) GetDefaultService() string { return r.DefaultService }

// Resolve returns the explicit service when present, otherwise the
// default service.
func (r *Resolver) Resolve(explicitService string) string {
	if strings.TrimSpace(explicitService) != "" {
		return explicitService
	}
	return r.DefaultService
}
