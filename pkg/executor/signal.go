/*
Copyright © 2024-2025 Daniele Rondina <geaaru@macaronios.org>
See AUTHORS and LICENSE for the license details and contributors.
*/
package executor

import (
	"context"
	"fmt"
	"os"

	log "github.com/MottainaiCI/ddc-shob/pkg/logger"
)

// ForwardSignalsHandler forwards the received signals to the child until
// done is closed. An interactive child shares the terminal process group
// and already receives the SIGINT from the terminal.
func ForwardSignalsHandler(ctx context.Context, sigs chan os.Signal,
	proc *os.Process, interactive bool, done <-chan struct{}) {
	logger := log.GetDefaultLogger()
	ctxDone := ctx.Done()
	forwarded := false

	for {
		select {
		case sig := <-sigs:
			if sig == os.Interrupt && (interactive || forwarded) {
				logger.Debug(fmt.Sprintf(
					"Received signal '%s', already delivered to pid %d", sig, proc.Pid))
				continue
			}
			logger.Debug(fmt.Sprintf("Received signal '%s', forwarding to pid %d",
				sig, proc.Pid))
			_ = proc.Signal(sig)
			forwarded = true
		case <-ctxDone:
			ctxDone = nil
			if forwarded || interactive {
				continue
			}
			logger.Debug(fmt.Sprintf("Context cancelled, interrupting pid %d", proc.Pid))
			_ = proc.Signal(os.Interrupt)
			forwarded = true
		case <-done:
			return
		}
	}
}
