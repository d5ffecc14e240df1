/*
Copyright © 2024-2025 Daniele Rondina <geaaru@macaronios.org>
See AUTHORS and LICENSE for the license details and contributors.
*/
package executor

import (
	"io"
	"os"
	"strings"

	log "github.com/MottainaiCI/ddc-shob/pkg/logger"
)

// DdcEmitterWriter streams the output of a child process as is. The
// bytes are also written on the logfile when enabled.
type DdcEmitterWriter struct {
	Type string
	Out  io.Writer
}

func NewDdcEmitterWriter(t string) *DdcEmitterWriter {
	var out io.Writer = os.Stdout
	if strings.HasSuffix(t, "_stderr") {
		out = os.Stderr
	}
	return &DdcEmitterWriter{Type: t, Out: out}
}

func (e *DdcEmitterWriter) Write(p []byte) (int, error) {
	n, err := e.Out.Write(p)
	if n > 0 {
		log.GetDefaultLogger().ToFile("info", e.Type,
			strings.TrimRight(string(p[:n]), "\n"))
	}
	return n, err
}

func (e *DdcEmitterWriter) Close() error {
	return nil
}
