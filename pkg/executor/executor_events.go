/*
Copyright © 2024-2025 Daniele Rondina <geaaru@macaronios.org>
See AUTHORS and LICENSE for the license details and contributors.
*/
package executor

import (
	"io"
)

const (
	SshClientSetupDone DdcExecutorEvent = "client-setup"
	StepStarted        DdcExecutorEvent = "step-started"
	StepCompleted      DdcExecutorEvent = "step-completed"
	StepFailed         DdcExecutorEvent = "step-failed"
	StepSkipped        DdcExecutorEvent = "step-skipped"
)

type DdcExecutorEvent string

type DdcExecutorEmitter interface {
	Emits(eType DdcExecutorEvent, data map[string]interface{})

	GetHostWriterStdout() io.WriteCloser
	GetHostWriterStderr() io.WriteCloser
	GetSshWriterStdout() io.WriteCloser
	GetSshWriterStderr() io.WriteCloser

	DebugLog(color bool, args ...interface{})
	InfoLog(color bool, args ...interface{})
	WarnLog(color bool, args ...interface{})
	ErrorLog(color bool, args ...interface{})
}
