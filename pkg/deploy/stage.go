/*
Copyright © 2024-2025 Daniele Rondina <geaaru@macaronios.org>
See AUTHORS and LICENSE for the license details and contributors.
*/
package deploy

import (
	"fmt"
)

type Stage string

const (
	StageArchiving      Stage = "archiving"
	StageUploading      Stage = "uploading"
	StageRemoteBuilding Stage = "remote-building"
	StageRemoteStarting Stage = "remote-starting"
	StageDone           Stage = "done"
)

var stageOrder = []Stage{
	StageArchiving, StageUploading, StageRemoteBuilding, StageRemoteStarting,
}

// StageError reports the stage where the deploy failed.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("deploy failed on stage %s: %s", e.Stage, e.Err.Error())
}

func (e *StageError) Unwrap() error { return e.Err }

// ConfigError reports a deploy configuration that can't be rendered.
type ConfigError struct {
	Field string
	Err   error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid deploy configuration %s: %s", e.Field, e.Err.Error())
}

func (e *ConfigError) Unwrap() error { return e.Err }

type ArchiveError struct {
	Dir string
	Err error
}

func (e *ArchiveError) Error() string {
	return fmt.Sprintf("error on archive %s: %s", e.Dir, e.Err.Error())
}

func (e *ArchiveError) Unwrap() error { return e.Err }

type TransferError struct {
	Target string
	Err    error
}

func (e *TransferError) Error() string {
	return fmt.Sprintf("error on transfer to %s: %s", e.Target, e.Err.Error())
}

func (e *TransferError) Unwrap() error { return e.Err }

type RemoteCommandError struct {
	Command string
	Code    int
	Err     error
}

func (e *RemoteCommandError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("remote command '%s' failed: %s", e.Command, e.Err.Error())
	}
	return fmt.Sprintf("remote command '%s' exited with %d", e.Command, e.Code)
}

func (e *RemoteCommandError) Unwrap() error { return e.Err }
