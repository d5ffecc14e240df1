/*
Copyright © 2024-2025 Daniele Rondina <geaaru@macaronios.org>
See AUTHORS and LICENSE for the license details and contributors.
*/
package executor

import (
	"fmt"
)

// ChildProcessError is returned when a step of the plan exits
// with a non zero exit code.
type ChildProcessError struct {
	Step        int
	Description string
	Code        int
	Err         error
}

func (e *ChildProcessError) Error() string {
	ans := fmt.Sprintf("step %d (%s) failed with exit code %d",
		e.Step, e.Description, e.Code)
	if e.Err != nil {
		ans += ": " + e.Err.Error()
	}
	return ans
}

func (e *ChildProcessError) Unwrap() error { return e.Err }

type FilesystemError struct {
	Path string
	Err  error
}

func (e *FilesystemError) Error() string {
	return fmt.Sprintf("error on path %s: %s", e.Path, e.Err.Error())
}

func (e *FilesystemError) Unwrap() error { return e.Err }
