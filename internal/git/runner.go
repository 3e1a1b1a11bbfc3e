package git

import (
	"context"
	"fmt"
	"strings"
)

// nothingStagedMarkers are the phrases git prints when a commit has no content.
var nothingStagedMarkers = []string{
	"nothing to commit",
	"no changes added to commit",
	"nothing added to commit",
}

// Runner performs the actual commit.
type Runner struct {
	binary   string
	executor CommandExecutor
}

// NewRunner creates a Runner that invokes binary (usually "git")
func NewRunner(binary string) *Runner {
	return NewRunnerWithExecutor(binary, NewExecExecutor())
}

// NewRunnerWithExecutor creates a Runner with a custom executor
func NewRunnerWithExecutor(binary string, executor CommandExecutor) *Runner {
	if binary == "" {
		binary = "git"
	}
	return &Runner{binary: binary, executor: executor}
}

// Commit runs `git commit -m message` in dir. The message is passed as a
// single argument and never goes through a shell.
func (r *Runner) Commit(ctx context.Context, dir, message string) (Result, error) {
	args := []string{"commit", "-m", message}

	result, err := r.executor.Run(ctx, dir, r.binary, args...)
	if err != nil {
		return result, NewGitError("commit", args, fmt.Errorf("%w: %w", ErrCommitFailed, err), "")
	}

	if result.ExitCode != 0 {
		sentinel := ErrCommitFailed
		if reportsNothingStaged(result) {
			sentinel = ErrNoStagedChanges
		}
		return result, NewGitError("commit", args, sentinel, Diagnostic(result))
	}

	return result, nil
}

// Diagnostic returns the most useful text a failed command printed.
func Diagnostic(result Result) string {
	if text := strings.TrimSpace(result.Stderr); text != "" {
		return text
	}
	return strings.TrimSpace(result.Stdout)
}

func reportsNothingStaged(result Result) bool {
	output := strings.ToLower(result.Stdout + "\n" + result.Stderr)
	for _, marker := range nothingStagedMarkers {
		if strings.Contains(output, marker) {
			return true
		}
	}
	return false
}
