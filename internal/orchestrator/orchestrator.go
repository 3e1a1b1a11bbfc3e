package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"commitail-cli/internal/commitcfg"
	"commitail-cli/internal/git"
	"commitail-cli/internal/interfaces"
	"commitail-cli/internal/suffix"
	"commitail-cli/pkg/models"
)

// CreateSampleLabel is the affirmative answer when offered a sample config.
const CreateSampleLabel = "Create sample config"

// State is a step of the append flow.
type State int

const (
	StateIdle State = iota
	StateConfigLoading
	StateNoConfig
	StateInvalidConfig
	StateConfigReady
	StateAutoSelect
	StateInteractiveSelect
	StateSkip
	StateComposed
	StateCancelled
	StateDone
)

var stateNames = map[State]string{
	StateIdle:              "idle",
	StateConfigLoading:     "config-loading",
	StateNoConfig:          "no-config",
	StateInvalidConfig:     "invalid-config",
	StateConfigReady:       "config-ready",
	StateAutoSelect:        "auto-select",
	StateInteractiveSelect: "interactive-select",
	StateSkip:              "skip",
	StateComposed:          "composed",
	StateCancelled:         "cancelled",
	StateDone:              "done",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// Outcome is where an invocation ended up.
type Outcome struct {
	State    State
	Original string
	Suffix   string
	Message  string
	Commit   string
}

// Prompter is the pair of interactive collaborators the flows need
type Prompter interface {
	interfaces.Picker
	interfaces.Confirmer
}

// Committer performs the commit itself
type Committer interface {
	Commit(ctx context.Context, dir, message string) (git.Result, error)
}

// Repository is the view of the worktree the commit flow needs
type Repository interface {
	Root() string
	HasStagedChanges() (bool, error)
	Refresh() (string, error)
}

// Orchestrator coordinates config loading, suffix selection and delivery
type Orchestrator struct {
	store         *commitcfg.Store
	prompter      Prompter
	reporter      interfaces.Reporter
	outputHandler interfaces.OutputHandler
}

// New creates a new orchestrator with all required components
func New(store *commitcfg.Store, prompter Prompter, reporter interfaces.Reporter) *Orchestrator {
	return &Orchestrator{
		store:         store,
		prompter:      prompter,
		reporter:      reporter,
		outputHandler: NewOutputHandler(),
	}
}

// SetOutputHandler replaces where composed messages are sent
func (o *Orchestrator) SetOutputHandler(h interfaces.OutputHandler) {
	o.outputHandler = h
}

// Append runs the append flow against msg. Cancelled, Skip and Composed are
// returned with a nil error; NoConfig and InvalidConfig come with an
// already-reported *CommitailError.
func (o *Orchestrator) Append(ctx context.Context, request *models.AppendRequest, msg interfaces.PendingMessage) (*Outcome, error) {
	if err := validateRequest(request); err != nil {
		return &Outcome{State: StateIdle}, err
	}

	outcome := &Outcome{State: StateConfigLoading, Original: strings.TrimSpace(msg.Message())}

	cfg, err := o.loadConfig(ctx, request, outcome)
	if err != nil {
		return outcome, err
	}
	outcome.State = StateConfigReady

	effective := applyMode(cfg, request.Mode())
	if effective.IsManual() {
		outcome.State = StateInteractiveSelect
	} else {
		outcome.State = StateAutoSelect
	}

	selected, err := suffix.Select(ctx, effective, o.prompter)
	if err != nil {
		if errors.Is(err, interfaces.ErrCancelled) {
			o.reporter.Info("Suffix selection cancelled")
			outcome.State = StateCancelled
			return outcome, nil
		}
		return outcome, err
	}
	outcome.Suffix = selected

	composed := suffix.Compose(outcome.Original, selected)
	if composed.Skip {
		o.reporter.InfoToUser("Commit message already contains the selected suffix, nothing to add")
		outcome.State = StateSkip
		return outcome, nil
	}

	outcome.Message = composed.Text
	outcome.State = StateComposed
	return outcome, nil
}

// loadConfig moves the flow to ConfigReady, NoConfig or InvalidConfig
func (o *Orchestrator) loadConfig(ctx context.Context, request *models.AppendRequest, outcome *Outcome) (*commitcfg.Config, error) {
	path, err := o.store.ResolveConfigPath()
	if err != nil {
		outcome.State = StateNoConfig
		o.reporter.ErrorToUser("No workspace is open, cannot load the config file")
		return nil, NewNoWorkspaceError(err)
	}

	cfg, err := o.store.Load(path)
	if err != nil {
		outcome.State = StateInvalidConfig
		return nil, NewConfigLoadError(path, err)
	}

	if cfg == nil {
		outcome.State = StateNoConfig
		o.reporter.ErrorToUser("No valid config file found: %s", path)
		if request.OfferCreate {
			o.offerSampleConfig(ctx)
		}
		return nil, NewNoConfigError(path)
	}

	return cfg, nil
}

// offerSampleConfig asks whether to bootstrap a default config. The answer
// does not change the outcome of the current invocation.
func (o *Orchestrator) offerSampleConfig(ctx context.Context) {
	create, err := o.prompter.Confirm(ctx, "No config file found. Create a sample one?", CreateSampleLabel)
	if err != nil {
		o.reporter.Warning("Failed to ask about creating a sample config: %v", err)
		return
	}
	if !create {
		return
	}
	if _, err := o.CreateDefault(ctx, false); err != nil && !errors.Is(err, interfaces.ErrCancelled) {
		o.reporter.Warning("Sample config was not created: %v", err)
	}
}

// CreateDefault bootstraps the default config and its ignore-list entry
func (o *Orchestrator) CreateDefault(ctx context.Context, force bool) (commitcfg.BootstrapResult, error) {
	result, err := o.store.CreateDefault(ctx, force)
	if err != nil {
		switch {
		case errors.Is(err, commitcfg.ErrNoWorkspace):
			return result, NewNoWorkspaceError(err)
		case errors.Is(err, interfaces.ErrCancelled):
			return result, err
		default:
			return result, NewBootstrapError(result.ConfigPath, err)
		}
	}
	if result.IgnoreErr != nil {
		ignoreErr := NewIgnoreListError(result.IgnorePath, result.IgnoreErr)
		if !IsRecoverableError(ignoreErr) {
			return result, ignoreErr
		}
		o.reporter.Info("Continuing without ignore-list entry: %v", ignoreErr)
	}
	return result, nil
}

// Deliver sends a composed message to its target. With no target the
// pending message is updated in place when it lives in a file, otherwise
// the message goes to stdout.
func (o *Orchestrator) Deliver(outcome *Outcome, target string, msg interfaces.PendingMessage) error {
	if outcome.State != StateComposed {
		return nil
	}

	var err error
	switch {
	case target == "":
		if _, isFile := msg.(*git.MessageFile); isFile {
			err = msg.SetMessage(outcome.Message)
		} else {
			err = o.outputHandler.WriteToStdout(outcome.Message)
		}
	case target == interfaces.TargetStdout:
		err = o.outputHandler.WriteToStdout(outcome.Message)
	case target == interfaces.TargetClipboard:
		err = o.outputHandler.WriteToClipboard(outcome.Message)
	default:
		path, ok := interfaces.FileTarget(target)
		if !ok {
			return NewValidationError("target", target, "unknown output target")
		}
		err = o.outputHandler.WriteToFile(outcome.Message, path)
	}

	if err != nil {
		outErr := NewOutputError(target, err)
		if target != interfaces.TargetClipboard || !IsRecoverableError(outErr) {
			return outErr
		}
		o.reporter.WarningToUser("Clipboard unavailable, printing the message instead")
		if err := o.outputHandler.WriteToStdout(outcome.Message); err != nil {
			return NewOutputError("stdout", err)
		}
	}

	o.reporter.Success("Appended suffix %q to the commit message", outcome.Suffix)
	return nil
}

// Commit runs the append flow and commits the result. A Skip commits the
// original message unchanged. On success the pending message is cleared;
// on failure it is left as it was.
func (o *Orchestrator) Commit(ctx context.Context, request *models.AppendRequest, msg interfaces.PendingMessage, repo Repository, committer Committer) (*Outcome, error) {
	if strings.TrimSpace(msg.Message()) == "" {
		o.reporter.ErrorToUser("Enter a commit message first")
		err := NewValidationError("message", "", "commit message is empty")
		err.Reported = true
		return &Outcome{State: StateIdle}, err
	}

	outcome, err := o.Append(ctx, request, msg)
	if err != nil || outcome.State == StateCancelled {
		return outcome, err
	}

	message := outcome.Message
	if outcome.State == StateSkip {
		message = outcome.Original
	}

	staged, err := repo.HasStagedChanges()
	if err != nil {
		o.reporter.Warning("Could not inspect staged changes, letting git decide: %v", err)
	} else if !staged {
		o.reporter.Warning("No staged changes found")
		o.reporter.ErrorToUser("No staged changes, stage your changes first")
		return outcome, NewNoStagedChangesError(git.ErrNoStagedChanges)
	}

	o.reporter.Info("Executing git commit in %s", repo.Root())
	result, err := committer.Commit(ctx, repo.Root(), message)
	if err != nil {
		commitErr := NewCommitError(err)
		if errors.Is(commitErr, ErrNoStagedChanges) {
			o.reporter.ErrorToUser("No staged changes, stage your changes first")
		} else {
			o.reporter.Error("Git commit failed: %v", err)
			o.reporter.ErrorToUser("Commit failed: %s", git.Diagnostic(result))
		}
		return outcome, commitErr
	}

	if err := msg.Clear(); err != nil {
		o.reporter.Warning("Failed to clear the pending message: %v", err)
	}

	if hash, err := repo.Refresh(); err != nil {
		o.reporter.Warning("Failed to refresh repository state: %v", err)
	} else {
		outcome.Commit = hash
	}

	outcome.Message = message
	outcome.State = StateDone
	o.reporter.Success("Commit successful: %s", message)
	return outcome, nil
}

// validateRequest rejects contradictory flags
func validateRequest(request *models.AppendRequest) error {
	if request == nil {
		return NewValidationError("request", nil, "request cannot be nil")
	}
	if request.ForceInteractive && request.ForceNonInteractive {
		return NewValidationError("mode", "interactive+yes", "cannot use both --interactive and --yes flags")
	}
	return nil
}

// applyMode returns cfg with manual overridden by the requested mode
func applyMode(cfg *commitcfg.Config, mode string) *commitcfg.Config {
	var manual bool
	switch mode {
	case "interactive":
		manual = true
	case "automatic":
		manual = false
	default:
		return cfg
	}
	effective := *cfg
	effective.Manual = &manual
	return &effective
}

// InlineMessage is a pending message held in memory, such as one passed on
// the command line.
type InlineMessage struct {
	text string
}

// NewInlineMessage creates an in-memory pending message
func NewInlineMessage(text string) *InlineMessage {
	return &InlineMessage{text: text}
}

func (m *InlineMessage) Message() string { return m.text }

func (m *InlineMessage) SetMessage(text string) error {
	m.text = text
	return nil
}

func (m *InlineMessage) Clear() error {
	m.text = ""
	return nil
}
