package git

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
)

// Result is what a finished command left behind.
type Result struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// CommandExecutor defines an interface for executing commands
type CommandExecutor interface {
	// Run executes name with args in dir. A non-zero exit is reported through
	// Result.ExitCode; err is only set when the command could not run at all.
	Run(ctx context.Context, dir, name string, args ...string) (Result, error)
}

// ExecExecutor is the default implementation of CommandExecutor
// that delegates to the os/exec package
type ExecExecutor struct{}

// NewExecExecutor creates a new ExecExecutor
func NewExecExecutor() *ExecExecutor {
	return &ExecExecutor{}
}

// Run implements CommandExecutor.Run
func (e *ExecExecutor) Run(ctx context.Context, dir, name string, args ...string) (Result, error) {
	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	result := Result{Stdout: stdout.String(), Stderr: stderr.String()}
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			result.ExitCode = exitErr.ExitCode()
			return result, nil
		}
		result.ExitCode = -1
		return result, err
	}
	return result, nil
}
