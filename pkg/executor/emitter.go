/*
Copyright © 2024-2025 Daniele Rondina <geaaru@macaronios.org>
See AUTHORS and LICENSE for the license details and contributors.
*/
package executor

import (
	"fmt"
	"io"

	log "github.com/MottainaiCI/ddc-shob/pkg/logger"
)

type DdcEmitter struct {
	HostWriterStdout io.WriteCloser
	HostWriterStderr io.WriteCloser
	SshWriterStdout  io.WriteCloser
	SshWriterStderr  io.WriteCloser
}

func NewDdcEmitter() *DdcEmitter {
	return &DdcEmitter{
		HostWriterStdout: NewDdcEmitterWriter("host_stdout"),
		HostWriterStderr: NewDdcEmitterWriter("host_stderr"),
		SshWriterStdout:  NewDdcEmitterWriter("ssh_stdout"),
		SshWriterStderr:  NewDdcEmitterWriter("ssh_stderr"),
	}
}

func (e *DdcEmitter) GetHostWriterStdout() io.WriteCloser  { return e.HostWriterStdout }
func (e *DdcEmitter) GetHostWriterStderr() io.WriteCloser  { return e.HostWriterStderr }
func (e *DdcEmitter) SetHostWriterStdout(w io.WriteCloser) { e.HostWriterStdout = w }
func (e *DdcEmitter) SetHostWriterStderr(w io.WriteCloser) { e.HostWriterStderr = w }

func (e *DdcEmitter) GetSshWriterStdout() io.WriteCloser  { return e.SshWriterStdout }
func (e *DdcEmitter) GetSshWriterStderr() io.WriteCloser  { return e.SshWriterStderr }
func (e *DdcEmitter) SetSshWriterStdout(w io.WriteCloser) { e.SshWriterStdout = w }
func (e *DdcEmitter) SetSshWriterStderr(w io.WriteCloser) { e.SshWriterStderr = w }

func (e *DdcEmitter) DebugLog(color bool, args ...interface{}) {
	log.GetDefaultLogger().Msg("debug", color, true, args...)
}

func (e *DdcEmitter) InfoLog(color bool, args ...interface{}) {
	log.GetDefaultLogger().Msg("info", color, true, args...)
}

func (e *DdcEmitter) WarnLog(color bool, args ...interface{}) {
	log.GetDefaultLogger().Msg("warning", color, true, args...)
}

func (e *DdcEmitter) ErrorLog(color bool, args ...interface{}) {
	log.GetDefaultLogger().Msg("error", color, true, args...)
}

func (e *DdcEmitter) Emits(eType DdcExecutorEvent, data map[string]interface{}) {
	logger := log.GetDefaultLogger()

	switch eType {
	case SshClientSetupDone:
		logger.Debug(fmt.Sprintf(":satellite: Connected to %v (%v).",
			data["endpoint"], data["host"]))
	case StepStarted:
		logger.InfoC(logger.Aurora.Bold(logger.Aurora.BrightCyan(
			fmt.Sprintf(">>> [%v/%v] %v", data["index"], data["total"], data["description"]))))
		logger.Debug(fmt.Sprintf(":rocket: %v", data["command"]))
	case StepCompleted:
		logger.Debug(fmt.Sprintf(":check_mark: Step %v completed.", data["index"]))
	case StepFailed:
		if be, ok := data["best_effort"].(bool); ok && be {
			logger.Warning(fmt.Sprintf("Step %v (%v) failed with exit code %v. Continue.",
				data["index"], data["description"], data["code"]))
		} else {
			logger.Error(fmt.Sprintf("Step %v (%v) failed with exit code %v.",
				data["index"], data["description"], data["code"]))
		}
	case StepSkipped:
		logger.Debug(fmt.Sprintf("Step %v (%v) skipped.", data["index"], data["description"]))
	}
}
