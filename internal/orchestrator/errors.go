package orchestrator

import (
	"errors"
	"fmt"
	"strings"

	"commitail-cli/internal/commitcfg"
	"commitail-cli/internal/git"
	"commitail-cli/internal/interfaces"
)

// Error types for different categories of failures
var (
	ErrStructuralConfig = errors.New("config parse error")
	ErrSemanticConfig   = errors.New("config validation error")
	ErrNoConfig         = errors.New("config not found")
	ErrNoWorkspace      = errors.New("no workspace")
	ErrBootstrapFailed  = errors.New("config creation error")
	ErrIgnoreList       = errors.New("ignore list error")
	ErrCommitExecution  = errors.New("commit error")
	ErrNoStagedChanges  = errors.New("no staged changes")
	ErrNoChanges        = errors.New("no changes")
	ErrOutputFailed     = errors.New("output error")
	ErrValidationFailed = errors.New("validation error")
)

// Process exit codes for the terminal states that are failures
const (
	ExitConfig      = 2
	ExitNoWorkspace = 3
	ExitCommit      = 4
)

// CommitailError represents a structured error with actionable guidance.
// Reported is set once the user has already been told about it.
// Recoverable marks failures the flow can continue past.
type CommitailError struct {
	Type        error
	Message     string
	Guidance    string
	Cause       error
	Reported    bool
	Recoverable bool
}

func (e *CommitailError) Error() string {
	if e.Guidance != "" {
		return fmt.Sprintf("%s: %s\n\nSuggestion: %s", e.Type, e.Message, e.Guidance)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

func (e *CommitailError) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Type}
	}
	return []error{e.Type, e.Cause}
}

// ExitCode maps the error type to a process exit code
func (e *CommitailError) ExitCode() int {
	switch e.Type {
	case ErrStructuralConfig, ErrSemanticConfig, ErrNoConfig, ErrBootstrapFailed:
		return ExitConfig
	case ErrNoWorkspace:
		return ExitNoWorkspace
	case ErrCommitExecution, ErrNoStagedChanges, ErrNoChanges:
		return ExitCommit
	default:
		return 1
	}
}

// Error constructors with actionable guidance

func NewConfigLoadError(path string, cause error) *CommitailError {
	switch {
	case errors.Is(cause, commitcfg.ErrNoWorkspace):
		return NewNoWorkspaceError(cause)
	case errors.Is(cause, commitcfg.ErrInvalidConfig):
		return &CommitailError{
			Type:     ErrSemanticConfig,
			Message:  fmt.Sprintf("config file '%s' is invalid", path),
			Guidance: "appendOptions must be a non-empty array of strings or [label, description] pairs; manual must be a boolean; defaultIndex must index an existing option.",
			Cause:    cause,
			Reported: true,
		}
	default:
		return &CommitailError{
			Type:     ErrStructuralConfig,
			Message:  fmt.Sprintf("config file '%s' could not be read", path),
			Guidance: "Check the file is valid JSON. Run 'commitail init --force' to start over from the default config.",
			Cause:    cause,
			Reported: true,
		}
	}
}

func NewNoConfigError(path string) *CommitailError {
	return &CommitailError{
		Type:     ErrNoConfig,
		Message:  fmt.Sprintf("no valid config file found: %s", path),
		Guidance: "Run 'commitail init' to create a sample config.",
		Reported: true,
	}
}

func NewNoWorkspaceError(cause error) *CommitailError {
	return &CommitailError{
		Type:     ErrNoWorkspace,
		Message:  "no workspace is open",
		Guidance: "Run commitail inside a git repository or pass --workspace /path/to/project.",
		Cause:    cause,
		Reported: true,
	}
}

func NewBootstrapError(path string, cause error) *CommitailError {
	guidance := "Check that the workspace directory is writable."
	if cause != nil && strings.Contains(cause.Error(), "permission") {
		guidance = fmt.Sprintf("Permission denied writing '%s'. Check the directory's permissions.", path)
	}
	return &CommitailError{
		Type:     ErrBootstrapFailed,
		Message:  fmt.Sprintf("failed to create config file '%s'", path),
		Guidance: guidance,
		Cause:    cause,
		Reported: true,
	}
}

func NewIgnoreListError(path string, cause error) *CommitailError {
	guidance := fmt.Sprintf("Add the config file name to '%s' by hand.", path)
	if cause != nil && strings.Contains(cause.Error(), "permission") {
		guidance = fmt.Sprintf("Permission denied writing '%s'. Check the file's permissions.", path)
	}
	return &CommitailError{
		Type:        ErrIgnoreList,
		Message:     fmt.Sprintf("failed to update '%s'", path),
		Guidance:    guidance,
		Cause:       cause,
		Recoverable: true,
	}
}

func NewCommitError(cause error) *CommitailError {
	if errors.Is(cause, git.ErrNoStagedChanges) {
		return NewNoStagedChangesError(cause)
	}

	message := "git commit failed"
	var gitErr *git.GitError
	if errors.As(cause, &gitErr) && gitErr.Output != "" {
		message = fmt.Sprintf("git commit failed: %s", gitErr.Output)
	}

	guidance := "The commit message was kept. Fix the problem and run the command again."
	if cause != nil {
		text := cause.Error()
		if strings.Contains(text, "not a git repository") {
			guidance = "The current directory is not a git repository. Make sure you are in the right project."
		} else if strings.Contains(text, "Permission denied") {
			guidance = "Git was denied permission. Check your permission settings."
		} else if strings.Contains(text, "executable file not found") {
			guidance = "The git binary was not found. Install git or set git_binary in the settings file."
		}
	}

	return &CommitailError{
		Type:     ErrCommitExecution,
		Message:  message,
		Guidance: guidance,
		Cause:    cause,
		Reported: true,
	}
}

func NewNoStagedChangesError(cause error) *CommitailError {
	return &CommitailError{
		Type:     ErrNoStagedChanges,
		Message:  "there are no staged changes",
		Guidance: "Stage your changes with 'git add' first. The commit message was kept.",
		Cause:    cause,
		Reported: true,
	}
}

func NewNoChangesError(root string) *CommitailError {
	return &CommitailError{
		Type:     ErrNoChanges,
		Message:  fmt.Sprintf("there are no changes in '%s'", root),
		Guidance: "Make a change first, or pass the message file with -m when running as a git hook.",
		Reported: true,
	}
}

// NewOutputError reports a failed delivery. Only a clipboard failure is
// recoverable, by printing the message instead.
func NewOutputError(target string, cause error) *CommitailError {
	message := fmt.Sprintf("failed to output to target '%s'", target)
	guidance := "Check that the output target is valid and accessible."

	if target == interfaces.TargetClipboard {
		guidance = "Clipboard access failed. Ensure you're running in a graphical environment " +
			"or try using --target stdout instead."
	} else if filePath, ok := interfaces.FileTarget(target); ok {
		guidance = fmt.Sprintf("Failed to write to file '%s'. Check that the directory exists "+
			"and you have write permissions.", filePath)
	}

	return &CommitailError{
		Type:        ErrOutputFailed,
		Message:     message,
		Guidance:    guidance,
		Cause:       cause,
		Recoverable: target == interfaces.TargetClipboard,
	}
}

func NewValidationError(field string, value interface{}, reason string) *CommitailError {
	message := fmt.Sprintf("validation failed for %s: %v (%s)", field, value, reason)
	guidance := "Check the input value and ensure it meets the required format."

	switch field {
	case "mode":
		guidance = "Use either --interactive or --yes, not both."
	case "message":
		guidance = "Pass the commit message as an argument or name a message file with -m."
	case "target":
		guidance = "Target must be 'clipboard', 'stdout', or 'file:/path/to/file'. " +
			"Example: --target file:/tmp/message.txt"
	}

	return &CommitailError{
		Type:     ErrValidationFailed,
		Message:  message,
		Guidance: guidance,
	}
}

// IsRecoverableError checks if an error can be recovered from
func IsRecoverableError(err error) bool {
	var commitailErr *CommitailError
	return errors.As(err, &commitailErr) && commitailErr.Recoverable
}

// IsReported reports whether err was already shown to the user
func IsReported(err error) bool {
	var commitailErr *CommitailError
	return errors.As(err, &commitailErr) && commitailErr.Reported
}

// ExitCodeOf extracts an exit code from any error, defaulting to 1
func ExitCodeOf(err error) int {
	if err == nil {
		return 0
	}
	var commitailErr *CommitailError
	if errors.As(err, &commitailErr) {
		return commitailErr.ExitCode()
	}
	return 1
}
