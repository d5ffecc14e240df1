/*
Copyright © 2024-2025 Daniele Rondina <geaaru@macaronios.org>
See AUTHORS and LICENSE for the license details and contributors.
*/
package executor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/MottainaiCI/ddc-shob/pkg/specs"

	"github.com/pkg/errors"
)

// DeployHandler runs the deploy workflow of a project directory.
type DeployHandler interface {
	Deploy(ctx context.Context, projectDir string) (int, error)
}

// WorkflowExecutor runs the steps of a plan sequentially. The first
// failing step that is not best-effort stops the plan.
type WorkflowExecutor struct {
	Runner   HostRunner
	Deployer DeployHandler
	Emitter  DdcExecutorEmitter
}

func NewWorkflowExecutor(runner HostRunner, emitter DdcExecutorEmitter) *WorkflowExecutor {
	if emitter == nil {
		emitter = NewDdcEmitter()
	}
	return &WorkflowExecutor{
		Runner:  runner,
		Emitter: emitter,
	}
}

func (w *WorkflowExecutor) SetDeployHandler(d DeployHandler) { w.Deployer = d }

// Execute returns the exit code of the last step executed or 0 if the plan
// is empty or all the steps succeeded. A failed best-effort step is
// handled as succeeded.
func (w *WorkflowExecutor) Execute(ctx context.Context, plan *specs.InvocationPlan) (int, error) {
	if plan == nil || plan.IsEmpty() {
		return 0, nil
	}

	// Nothing runs if a removal escapes its root.
	for _, step := range plan.Steps {
		if step.Kind != specs.InvocationRemoveDir || len(step.Args) != 1 {
			continue
		}
		if _, err := checkRemoveDir(step.Root, step.Args[0]); err != nil {
			w.emitSkipped(plan, 0)
			return 1, err
		}
	}

	total := plan.Len()
	for idx, step := range plan.Steps {
		if err := ctx.Err(); err != nil {
			w.emitSkipped(plan, idx)
			return ExitCodeInterrupted, err
		}

		data := map[string]interface{}{
			"index":       idx + 1,
			"total":       total,
			"description": step.Description,
			"command":     step.String(),
			"best_effort": step.BestEffort,
		}
		w.Emitter.Emits(StepStarted, data)

		code, err := w.runStep(ctx, step)

		// An interrupted child keeps its exit code. The cancellation
		// only stops the next steps.
		if ctx.Err() != nil && idx+1 < total {
			if err == nil && code == 0 {
				w.Emitter.Emits(StepCompleted, data)
				code = ExitCodeInterrupted
			} else {
				if code == 0 {
					code = 1
				}
				data["code"] = code
				w.Emitter.Emits(StepFailed, data)
			}
			w.emitSkipped(plan, idx+1)
			if err == nil {
				err = ctx.Err()
			}
			return code, &ChildProcessError{
				Step:        idx + 1,
				Description: step.Description,
				Code:        code,
				Err:         err,
			}
		}

		if err == nil && code == 0 {
			w.Emitter.Emits(StepCompleted, data)
			continue
		}

		if code == 0 {
			code = 1
		}
		data["code"] = code
		w.Emitter.Emits(StepFailed, data)

		if step.BestEffort {
			if err != nil {
				w.Emitter.DebugLog(false, err.Error())
			}
			continue
		}

		w.emitSkipped(plan, idx+1)

		// Deploy errors already report the failed stage.
		var fsErr *FilesystemError
		if err != nil && (errors.As(err, &fsErr) || step.Kind == specs.InvocationDeploy) {
			return code, err
		}

		return code, &ChildProcessError{
			Step:        idx + 1,
			Description: step.Description,
			Code:        code,
			Err:         err,
		}
	}

	return 0, nil
}

func (w *WorkflowExecutor) runStep(ctx context.Context, step *specs.Invocation) (int, error) {
	switch step.Kind {
	case specs.InvocationProcess:
		if w.Runner == nil {
			return 1, fmt.Errorf("no host runner available")
		}
		return w.Runner.Run(ctx, step)

	case specs.InvocationRemoveDir:
		if len(step.Args) != 1 {
			return 1, fmt.Errorf("invalid remove-dir invocation")
		}
		if err := removeDir(step.Root, step.Args[0]); err != nil {
			return 1, err
		}
		w.Emitter.DebugLog(false, fmt.Sprintf("Removed directory %s", step.Args[0]))
		return 0, nil

	case specs.InvocationDeploy:
		if w.Deployer == nil {
			return 1, fmt.Errorf("deploy not configured")
		}
		if len(step.Args) != 1 {
			return 1, fmt.Errorf("invalid deploy invocation")
		}
		return w.Deployer.Deploy(ctx, step.Args[0])

	default:
		return 1, fmt.Errorf("unsupported invocation kind %s", step.Kind)
	}
}

func (w *WorkflowExecutor) emitSkipped(plan *specs.InvocationPlan, from int) {
	for i := from; i < plan.Len(); i++ {
		w.Emitter.Emits(StepSkipped, map[string]interface{}{
			"index":       i + 1,
			"description": plan.Steps[i].Description,
		})
	}
}

func isInside(root, path string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	return rel != "." && rel != ".." &&
		!strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// checkRemoveDir returns the path of dir with the symlinks of its
// parents resolved. An empty path means that dir doesn't exist.
func checkRemoveDir(root, dir string) (string, error) {
	if !filepath.IsAbs(dir) {
		return "", &FilesystemError{Path: dir, Err: fmt.Errorf("path is not absolute")}
	}
	if root == "" || !filepath.IsAbs(root) {
		return "", &FilesystemError{Path: dir, Err: fmt.Errorf("invalid root directory %q", root)}
	}
	dir = filepath.Clean(dir)
	if !isInside(filepath.Clean(root), dir) {
		return "", &FilesystemError{Path: dir, Err: fmt.Errorf("outside of %s", root)}
	}

	realRoot, err := filepath.EvalSymlinks(root)
	if err != nil {
		return "", &FilesystemError{Path: root, Err: err}
	}

	realParent, err := filepath.EvalSymlinks(filepath.Dir(dir))
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", &FilesystemError{Path: dir, Err: err}
	}

	target := filepath.Join(realParent, filepath.Base(dir))
	if !isInside(realRoot, target) {
		return "", &FilesystemError{
			Path: dir,
			Err:  fmt.Errorf("resolved to %s outside of %s", target, realRoot),
		}
	}

	return target, nil
}

func removeDir(root, dir string) error {
	target, err := checkRemoveDir(root, dir)
	if err != nil || target == "" {
		return err
	}

	fi, err := os.Lstat(target)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return &FilesystemError{Path: dir, Err: err}
	}
	if !fi.IsDir() {
		return &FilesystemError{
			Path: dir,
			Err:  fmt.Errorf("not a directory"),
		}
	}

	if err := os.RemoveAll(target); err != nil {
		return &FilesystemError{
			Path: dir,
			Err:  errors.Wrap(err, "error on remove directory"),
		}
	}

	return nil
}
