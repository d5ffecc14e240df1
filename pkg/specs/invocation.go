/*
Copyright © 2024-2025 Daniele Rondina <geaaru@macaronios.org>
See AUTHORS and LICENSE for the license details and contributors.
*/
package specs

import (
	"strings"
)

type InvocationKind string

const (
	// External process executed on the host.
	InvocationProcess InvocationKind = "process"
	// Recursive removal of a directory under the project.
	InvocationRemoveDir InvocationKind = "remove-dir"
	// Handoff to the deploy packager.
	InvocationDeploy InvocationKind = "deploy"
)

type Invocation struct {
	Kind        InvocationKind `json:"kind" yaml:"kind"`
	Description string         `json:"description,omitempty" yaml:"description,omitempty"`
	Program     string         `json:"program,omitempty" yaml:"program,omitempty"`
	Args        []string       `json:"args,omitempty" yaml:"args,omitempty"`
	// Attach stdin/stdout/stderr of the child directly.
	Interactive bool `json:"interactive,omitempty" yaml:"interactive,omitempty"`
	// A failure doesn't stop the plan.
	BestEffort bool `json:"best_effort,omitempty" yaml:"best_effort,omitempty"`
	// Directory that must contain the removed directory.
	Root string `json:"root,omitempty" yaml:"root,omitempty"`
}

type InvocationPlan struct {
	Subcommand Subcommand    `json:"subcommand" yaml:"subcommand"`
	Service    string        `json:"service,omitempty" yaml:"service,omitempty"`
	Steps      []*Invocation `json:"steps" yaml:"steps"`
}

func NewProcessInvocation(descr, program string, args ...string) *Invocation {
	return &Invocation{
		Kind:        InvocationProcess,
		Description: descr,
		Program:     program,
		Args:        args,
	}
}

// NewRemoveDirInvocation creates the removal of dir. The directory
// must be inside root also after the resolution of the symlinks.
func NewRemoveDirInvocation(descr, root, dir string) *Invocation {
	return &Invocation{
		Kind:        InvocationRemoveDir,
		Description: descr,
		Args:        []string{dir},
		Root:        root,
	}
}

func NewDeployInvocation(descr, projectDir string) *Invocation {
	return &Invocation{
		Kind:        InvocationDeploy,
		Description: descr,
		Interactive: true,
		Args:        []string{projectDir},
	}
}

func (i *Invocation) SetInteractive(v bool) *Invocation {
	i.Interactive = v
	return i
}

func (i *Invocation) SetBestEffort(v bool) *Invocation {
	i.BestEffort = v
	return i
}

// Argv returns the full argument vector, program included.
func (i *Invocation) Argv() []string {
	ans := []string{}
	if i.Program != "" {
		ans = append(ans, i.Program)
	}
	return append(ans, i.Args...)
}

func (i *Invocation) String() string {
	switch i.Kind {
	case InvocationRemoveDir:
		return "remove directory " + strings.Join(i.Args, " ")
	case InvocationDeploy:
		return "deploy " + strings.Join(i.Args, " ")
	default:
		return strings.Join(i.Argv(), " ")
	}
}

func NewInvocationPlan(sub Subcommand, service string) *InvocationPlan {
	return &InvocationPlan{
		Subcommand: sub,
		Service:    service,
		Steps:      []*Invocation{},
	}
}

func (p *InvocationPlan) AddStep(i *Invocation) *InvocationPlan {
	p.Steps = append(p.Steps, i)
	return p
}

func (p *InvocationPlan) Len() int      { return len(p.Steps) }
func (p *InvocationPlan) IsEmpty() bool { return len(p.Steps) == 0 }
