package git

import (
	"errors"
	"fmt"
)

var (
	// ErrCommitFailed indicates git commit exited with a non-zero status
	ErrCommitFailed = errors.New("git commit failed")

	// ErrNoStagedChanges indicates there was nothing staged to commit
	ErrNoStagedChanges = errors.New("no staged changes")

	// ErrNotRepository indicates the directory is not inside a git worktree
	ErrNotRepository = errors.New("not a git repository")
)

// GitError represents an error that occurred during a Git operation.
// It captures the command details, underlying error, and command output.
type GitError struct {
	Operation string
	Args      []string
	Err       error
	Output    string
}

// Error implements the error interface with a detailed, user-friendly error message.
func (e *GitError) Error() string {
	msg := fmt.Sprintf("git %s failed", e.Operation)
	if e.Output != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Output)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

// Unwrap returns the underlying error for use with errors.Is and errors.As.
func (e *GitError) Unwrap() error {
	return e.Err
}

// NewGitError creates a new GitError with the given parameters.
func NewGitError(operation string, args []string, err error, output string) *GitError {
	return &GitError{
		Operation: operation,
		Args:      args,
		Err:       err,
		Output:    output,
	}
}
