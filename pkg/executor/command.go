/*
Copyright © 2024-2025 Daniele Rondina <geaaru@macaronios.org>
See AUTHORS and LICENSE for the license details and contributors.
*/
package executor

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	helpers "github.com/MottainaiCI/ddc-shob/pkg/helpers"
	log "github.com/MottainaiCI/ddc-shob/pkg/logger"
	"github.com/MottainaiCI/ddc-shob/pkg/specs"

	"github.com/google/uuid"
	"golang.org/x/crypto/ssh"
)

// RunCommandWithOutput executes the command on a new session and returns
// the exit code of the remote process.
func (e *DdcSshExecutor) RunCommandWithOutput(ctx context.Context, command string,
	outBuffer, errBuffer io.WriteCloser) (int, error) {
	if outBuffer == nil {
		return 1, errors.New("Invalid outBuffer")
	}
	if errBuffer == nil {
		return 1, errors.New("Invalid errBuffer")
	}

	sid := uuid.New().String()

	session, err := e.GetSession(sid)
	if err != nil {
		return 1, fmt.Errorf("error on get session: %s", err.Error())
	}
	defer e.RemoveSession(sid)

	logger := log.GetDefaultLogger()

	e.Emitter.InfoLog(true, logger.Aurora.Italic(
		logger.Aurora.BrightCyan(
			fmt.Sprintf(">>> [%s] - %s - :coffee:", e.Endpoint, command))))

	_ = session.Setenv("DDC_SHOB_VERSION", specs.DDC_SHOB_VERSION)

	// Disable stdin
	session.Stdin = io.NopCloser(bytes.NewReader(nil))
	session.Stdout = outBuffer
	session.Stderr = errBuffer

	done := make(chan error, 1)
	go func() {
		done <- session.Run(command)
	}()

	select {
	case err = <-done:
	case <-ctx.Done():
		_ = session.Signal(ssh.SIGINT)
		session.Close()
		<-done
		return 130, ctx.Err()
	}

	if err != nil {
		var exitErr *ssh.ExitError
		if errors.As(err, &exitErr) {
			e.Emitter.DebugLog(true,
				logger.Aurora.Bold(
					logger.Aurora.BrightCyan(
						fmt.Sprintf(">>> [%s] Exiting with %d", e.Endpoint, exitErr.ExitStatus()))))
			return exitErr.ExitStatus(), nil
		}

		e.Emitter.InfoLog(true,
			logger.Aurora.Bold(
				logger.Aurora.BrightCyan(
					fmt.Sprintf(">>> [%s] Execution Interrupted: %s",
						e.Endpoint, err.Error()))))
		return 1, err
	}

	e.Emitter.DebugLog(true,
		logger.Aurora.Bold(
			logger.Aurora.BrightCyan(
				fmt.Sprintf(">>> [%s] Exiting", e.Endpoint))))

	return 0, nil
}

func (e *DdcSshExecutor) RunCommand(ctx context.Context, command string) (int, error) {
	var outBuffer, errBuffer bytes.Buffer
	logger := log.GetDefaultLogger()

	if e.RuntimeCmdsOutput && e.ShowCmdsOutput {
		return e.RunCommandWithOutput(ctx, command,
			e.Emitter.GetSshWriterStdout(), e.Emitter.GetSshWriterStderr())
	}

	res, err := e.RunCommandWithOutput(ctx, command,
		helpers.NewNopCloseWriter(&outBuffer), helpers.NewNopCloseWriter(&errBuffer))

	if err == nil && e.ShowCmdsOutput {
		if outBuffer.Len() > 0 {
			e.Emitter.InfoLog(false,
				logger.Aurora.Bold(
					logger.Aurora.BrightCyan(
						fmt.Sprintf(">>> [%s] [stdout]\n%s", e.Endpoint, outBuffer.String()))))
		}

		if errBuffer.Len() > 0 {
			e.Emitter.InfoLog(false,
				logger.Aurora.Bold(
					logger.Aurora.BrightRed(
						fmt.Sprintf(">>> [%s] [stderr]\n%s", e.Endpoint, errBuffer.String()))))
		}
	}

	return res, err
}
