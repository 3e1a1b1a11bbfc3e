package orchestrator

import (
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"testing"

	"commitail-cli/internal/commitcfg"
	"commitail-cli/internal/git"
)

func TestCommitailError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *CommitailError
		expected string
	}{
		{
			name: "error with guidance",
			err: &CommitailError{
				Type:     ErrNoConfig,
				Message:  "no valid config file found: /repo/commitail.config.json",
				Guidance: "Run 'commitail init' to create a sample config.",
			},
			expected: "config not found: no valid config file found: /repo/commitail.config.json\n\nSuggestion: Run 'commitail init' to create a sample config.",
		},
		{
			name: "error without guidance",
			err: &CommitailError{
				Type:    ErrOutputFailed,
				Message: "failed to output to target 'stdout'",
			},
			expected: "output error: failed to output to target 'stdout'",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("Error() = %q, expected %q", got, tt.expected)
			}
		})
	}
}

func TestNewConfigLoadError(t *testing.T) {
	tests := []struct {
		name    string
		cause   error
		errType error
	}{
		{name: "invalid", cause: fmt.Errorf("%w: manual must be boolean", commitcfg.ErrInvalidConfig), errType: ErrSemanticConfig},
		{name: "malformed", cause: fmt.Errorf("%w: unexpected end of JSON input", commitcfg.ErrMalformedConfig), errType: ErrStructuralConfig},
		{name: "no workspace", cause: commitcfg.ErrNoWorkspace, errType: ErrNoWorkspace},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewConfigLoadError("/repo/commitail.config.json", tt.cause)
			if !errors.Is(err, tt.errType) {
				t.Errorf("expected error type %v, got %v", tt.errType, err.Type)
			}
			if !errors.Is(err, tt.cause) {
				t.Error("expected cause to be preserved")
			}
			if !err.Reported {
				t.Error("config load errors are reported at the source")
			}
		})
	}
}

func TestNewCommitError(t *testing.T) {
	tests := []struct {
		name             string
		cause            error
		errType          error
		expectedGuidance string
	}{
		{
			name:             "nothing staged",
			cause:            git.NewGitError("commit", nil, git.ErrNoStagedChanges, "nothing to commit"),
			errType:          ErrNoStagedChanges,
			expectedGuidance: "git add",
		},
		{
			name:             "binary missing",
			cause:            git.NewGitError("commit", nil, fmt.Errorf("%w: %w", git.ErrCommitFailed, exec.ErrNotFound), ""),
			errType:          ErrCommitExecution,
			expectedGuidance: "git_binary",
		},
		{
			name:             "not a repository",
			cause:            git.NewGitError("commit", nil, git.ErrCommitFailed, "fatal: not a git repository"),
			errType:          ErrCommitExecution,
			expectedGuidance: "not a git repository",
		},
		{
			name:             "other failure",
			cause:            git.NewGitError("commit", nil, git.ErrCommitFailed, "hook rejected"),
			errType:          ErrCommitExecution,
			expectedGuidance: "message was kept",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewCommitError(tt.cause)
			if !errors.Is(err, tt.errType) {
				t.Errorf("expected error type %v, got %v", tt.errType, err.Type)
			}
			if !strings.Contains(err.Guidance, tt.expectedGuidance) {
				t.Errorf("expected guidance to contain %q, got %q", tt.expectedGuidance, err.Guidance)
			}
			if err.ExitCode() != ExitCommit {
				t.Errorf("ExitCode() = %d, expected %d", err.ExitCode(), ExitCommit)
			}
		})
	}
}

func TestNewOutputError(t *testing.T) {
	tests := []struct {
		target           string
		expectedGuidance string
	}{
		{"clipboard", "graphical environment"},
		{"file:/tmp/x.txt", "/tmp/x.txt"},
		{"stdout", "valid and accessible"},
	}

	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			err := NewOutputError(tt.target, errors.New("boom"))
			if !strings.Contains(err.Guidance, tt.expectedGuidance) {
				t.Errorf("expected guidance to contain %q, got %q", tt.expectedGuidance, err.Guidance)
			}
		})
	}
}

func TestIsRecoverableError(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		recoverable bool
	}{
		{name: "ignore list", err: NewIgnoreListError(".gitignore", errors.New("permission denied")), recoverable: true},
		{name: "clipboard", err: NewOutputError("clipboard", errors.New("no display")), recoverable: true},
		{name: "file output", err: NewOutputError("file:/x", errors.New("boom")), recoverable: false},
		{name: "file path naming the clipboard", err: NewOutputError("file:/tmp/clipboard.txt", errors.New("boom")), recoverable: false},
		{name: "stdout output", err: NewOutputError("stdout", errors.New("closed")), recoverable: false},
		{name: "commit", err: NewCommitError(errors.New("boom")), recoverable: false},
		{name: "plain error", err: errors.New("boom"), recoverable: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsRecoverableError(tt.err); got != tt.recoverable {
				t.Errorf("IsRecoverableError() = %v, expected %v", got, tt.recoverable)
			}
		})
	}
}

func TestExitCodeOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
	}{
		{name: "nil", err: nil, code: 0},
		{name: "plain", err: errors.New("boom"), code: 1},
		{name: "no config", err: NewNoConfigError("p"), code: ExitConfig},
		{name: "wrapped semantic", err: fmt.Errorf("wrapped: %w", NewConfigLoadError("p", commitcfg.ErrInvalidConfig)), code: ExitConfig},
		{name: "bootstrap", err: NewBootstrapError("p", errors.New("permission denied")), code: ExitConfig},
		{name: "no workspace", err: NewNoWorkspaceError(nil), code: ExitNoWorkspace},
		{name: "no staged", err: NewNoStagedChangesError(nil), code: ExitCommit},
		{name: "no changes", err: NewNoChangesError("/repo"), code: ExitCommit},
		{name: "validation", err: NewValidationError("mode", "x", "y"), code: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExitCodeOf(tt.err); got != tt.code {
				t.Errorf("ExitCodeOf() = %d, expected %d", got, tt.code)
			}
		})
	}
}

func TestIsReported(t *testing.T) {
	if IsReported(errors.New("boom")) {
		t.Error("plain errors are never reported")
	}
	if IsReported(NewValidationError("mode", "x", "y")) {
		t.Error("validation errors are left to the caller")
	}
	if !IsReported(fmt.Errorf("ctx: %w", NewNoConfigError("p"))) {
		t.Error("wrapped reported errors stay reported")
	}
}
