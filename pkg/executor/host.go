/*
Copyright © 2024-2025 Daniele Rondina <geaaru@macaronios.org>
See AUTHORS and LICENSE for the license details and contributors.
*/
package executor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"os/signal"
	"syscall"

	"github.com/MottainaiCI/ddc-shob/pkg/specs"
)

const (
	ExitCodeNotFound    = 127
	ExitCodeInterrupted = 130
)

// HostRunner executes a process invocation on the local host and
// returns the exit code of the child.
type HostRunner interface {
	Run(ctx context.Context, inv *specs.Invocation) (int, error)
}

type ExecRunner struct {
	// Working directory of the children. Empty means the current one.
	Dir string

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	Emitter DdcExecutorEmitter
	// Show the stdout of the non interactive children.
	ShowOutput bool
}

func NewExecRunner(dir string, emitter DdcExecutorEmitter) *ExecRunner {
	return &ExecRunner{
		Dir:        dir,
		Stdin:      os.Stdin,
		Stdout:     os.Stdout,
		Stderr:     os.Stderr,
		Emitter:    emitter,
		ShowOutput: true,
	}
}

func (r *ExecRunner) Run(ctx context.Context, inv *specs.Invocation) (int, error) {
	if inv.Program == "" {
		return 1, fmt.Errorf("invocation without program")
	}

	cmd := exec.Command(inv.Program, inv.Args...)
	cmd.Dir = r.Dir

	if inv.Interactive {
		cmd.Stdin = r.Stdin
		cmd.Stdout = r.Stdout
		cmd.Stderr = r.Stderr
	} else {
		// Own process group: the terminal SIGINT is forwarded by
		// ForwardSignalsHandler only.
		cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
		cmd.Stdout = r.Emitter.GetHostWriterStdout()
		if !r.ShowOutput {
			cmd.Stdout = io.Discard
		}
		cmd.Stderr = r.Emitter.GetHostWriterStderr()
	}

	if err := cmd.Start(); err != nil {
		if errors.Is(err, exec.ErrNotFound) || errors.Is(err, os.ErrNotExist) {
			return ExitCodeNotFound, fmt.Errorf("command %s not found", inv.Program)
		}
		return 1, err
	}

	sigs := make(chan os.Signal, 1)
	done := make(chan struct{})
	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)
	go ForwardSignalsHandler(ctx, sigs, cmd.Process, inv.Interactive, done)

	err := cmd.Wait()
	close(done)
	signal.Stop(sigs)

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return exitCode(exitErr), nil
		}
		return 1, err
	}

	return 0, nil
}

func exitCode(e *exec.ExitError) int {
	if status, ok := e.Sys().(syscall.WaitStatus); ok && status.Signaled() {
		return 128 + int(status.Signal())
	}
	return e.ExitCode()
}
