package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"commitail-cli/internal/commitcfg"
	"commitail-cli/internal/config"
	"commitail-cli/internal/git"
	"commitail-cli/internal/interactive"
	"commitail-cli/internal/interfaces"
	"commitail-cli/internal/logger"
	"commitail-cli/internal/orchestrator"
	"commitail-cli/internal/template"
	"commitail-cli/pkg/models"
)

// Options carries the global flags and the process's streams
type Options struct {
	SettingsPath string
	Workspace    string
	LogFile      string
	Verbose      bool
	NumberSelect bool

	// Dir is where workspace discovery starts. Defaults to the working directory.
	Dir    string
	Stdout io.Writer
	Stderr io.Writer

	// Prompter replaces the terminal prompter when set.
	Prompter orchestrator.Prompter
}

// Env is everything one invocation needs, wired from the settings
type Env struct {
	Settings     *interfaces.Settings
	Logger       *logger.Logger
	Workspace    *git.Workspace
	Store        *commitcfg.Store
	Orchestrator *orchestrator.Orchestrator
	Stdout       io.Writer
}

// Setup loads settings and builds the collaborators for one invocation
func Setup(opts Options) (*Env, error) {
	stdout := opts.Stdout
	if stdout == nil {
		stdout = os.Stdout
	}
	stderr := opts.Stderr
	if stderr == nil {
		stderr = os.Stderr
	}

	manager := config.NewManager()
	if _, err := manager.Load(opts.SettingsPath); err != nil {
		return nil, fmt.Errorf("configuration error: %w", err)
	}

	manager.SetFlag("workspace", opts.Workspace)
	manager.SetFlag("log_file", opts.LogFile)
	manager.SetFlag("verbose", opts.Verbose)
	manager.SetFlag("number_select", opts.NumberSelect)

	settings, err := manager.Resolve()
	if err != nil {
		return nil, fmt.Errorf("configuration error: %w", err)
	}
	if err := manager.Validate(settings); err != nil {
		return nil, fmt.Errorf("configuration error: %w", err)
	}

	log := logger.New(logger.Options{
		LogFile: settings.LogFile,
		Verbose: settings.Verbose,
		Stderr:  stderr,
	})

	dir := opts.Dir
	if dir == "" {
		if dir, err = os.Getwd(); err != nil {
			log.Warning("Failed to get working directory: %v", err)
			dir = "."
		}
	}
	workspace := git.NewWorkspace(settings.Workspace, dir)

	prompter := opts.Prompter
	if prompter == nil {
		prompter = interactive.NewPrompter(settings.NumberSelect)
	}

	store := commitcfg.NewStore(workspace, prompter, log)
	store.SetFileNames(settings.ConfigFile, settings.IgnoreFile)

	orch := orchestrator.New(store, prompter, log)
	orch.SetOutputHandler(orchestrator.NewOutputHandlerTo(stdout))

	log.Info("Settings resolved: workspace=%q config_file=%q target=%q", settings.Workspace, settings.ConfigFile, settings.Target)

	return &Env{
		Settings:     settings,
		Logger:       log,
		Workspace:    workspace,
		Store:        store,
		Orchestrator: orch,
		Stdout:       stdout,
	}, nil
}

// Close releases the log file
func (e *Env) Close() error {
	return e.Logger.Close()
}

// Init bootstraps the default config. Declining to overwrite is not an error.
func Init(ctx context.Context, env *Env, force bool) error {
	if _, err := env.Orchestrator.CreateDefault(ctx, force); err != nil {
		if errors.Is(err, interfaces.ErrCancelled) {
			env.Logger.InfoToUser("Config file left unchanged")
			return nil
		}
		return err
	}
	return nil
}

// Append appends the selected suffix to the pending message and delivers it
func Append(ctx context.Context, env *Env, request *models.AppendRequest) error {
	resolveTarget(request, env.Settings)

	msg, err := pendingMessage(request)
	if err != nil {
		return err
	}

	if request.MessageFile == "" {
		if err := requireChanges(env); err != nil {
			return err
		}
	}

	outcome, err := env.Orchestrator.Append(ctx, request, msg)
	if err != nil {
		return err
	}
	env.Logger.Info("Append finished in state %s", outcome.State)

	return env.Orchestrator.Deliver(outcome, request.Target, msg)
}

// Commit appends the selected suffix and commits the staged changes
func Commit(ctx context.Context, env *Env, request *models.AppendRequest) error {
	repo, err := env.Workspace.Repository()
	if err != nil {
		env.Logger.Error("Failed to open repository: %v", err)
		env.Logger.ErrorToUser("Not inside a git repository")
		if errors.Is(err, git.ErrNotRepository) {
			return orchestrator.NewNoWorkspaceError(err)
		}
		return orchestrator.NewCommitError(err)
	}

	msg, err := pendingMessage(request)
	if err != nil {
		return err
	}

	runner := git.NewRunner(env.Settings.GitBinary)
	outcome, err := env.Orchestrator.Commit(ctx, request, msg, repo, runner)
	if err != nil {
		return err
	}
	env.Logger.Info("Commit finished in state %s", outcome.State)

	if outcome.Commit != "" {
		fmt.Fprintln(env.Stdout, outcome.Commit)
	}
	return nil
}

// Validate loads the config at path, or the workspace's one, and prints the verdict
func Validate(env *Env, path string) error {
	path, cfg, err := loadConfig(env, path)
	if err != nil {
		return err
	}

	mode := "interactive"
	if !cfg.IsManual() {
		mode = "automatic"
	}
	fmt.Fprintf(env.Stdout, "%s is valid: %d options loaded, %s selection, default %q\n",
		contractPath(path), len(cfg.AppendOptions), mode, cfg.DefaultOption().Label)
	return nil
}

// List renders the configured options through a template
func List(env *Env, source string) error {
	path, cfg, err := loadConfig(env, "")
	if err != nil {
		return err
	}

	out, err := template.NewProcessor().Render(source, path, cfg)
	if err != nil {
		return orchestrator.NewValidationError("template", source, err.Error())
	}

	_, err = io.WriteString(env.Stdout, out)
	return err
}

// Show prints the loaded config as json or yaml
func Show(env *Env, format string) error {
	_, cfg, err := loadConfig(env, "")
	if err != nil {
		return err
	}

	var data []byte
	switch strings.ToLower(format) {
	case "", "json":
		data, err = commitcfg.Encode(cfg)
	case "yaml", "yml":
		data, err = yaml.Marshal(cfg)
	default:
		return orchestrator.NewValidationError("output", format, "must be json or yaml")
	}
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	_, err = env.Stdout.Write(data)
	return err
}

// loadConfig loads and validates a config for the read-only commands
func loadConfig(env *Env, path string) (string, *commitcfg.Config, error) {
	if path == "" {
		resolved, err := env.Store.ResolveConfigPath()
		if err != nil {
			env.Logger.ErrorToUser("No workspace is open, cannot load the config file")
			return "", nil, orchestrator.NewNoWorkspaceError(err)
		}
		path = resolved
	}

	cfg, err := env.Store.Load(path)
	if err != nil {
		return path, nil, orchestrator.NewConfigLoadError(path, err)
	}
	if cfg == nil {
		env.Logger.ErrorToUser("No valid config file found: %s", path)
		return path, nil, orchestrator.NewNoConfigError(path)
	}

	env.Logger.Info("Loaded %d append options", len(cfg.AppendOptions))
	return path, cfg, nil
}

// pendingMessage picks the message source: a file when one is named,
// otherwise the inline text
func pendingMessage(request *models.AppendRequest) (interfaces.PendingMessage, error) {
	if request.MessageFile == "" {
		return orchestrator.NewInlineMessage(request.Message), nil
	}
	msg, err := git.ReadMessageFile(request.MessageFile)
	if err != nil {
		return nil, orchestrator.NewValidationError("message-file", request.MessageFile, err.Error())
	}
	return msg, nil
}

// requireChanges refuses to work on a repository with nothing to commit. A
// workspace that is not a git repository is not checked. Message files are
// exempt, since git hooks run on amends of a clean tree.
func requireChanges(env *Env) error {
	repo, err := env.Workspace.Repository()
	if err != nil {
		env.Logger.Info("Skipping change check: %v", err)
		return nil
	}

	changed, err := repo.HasChanges()
	if err != nil {
		env.Logger.Warning("Could not inspect the worktree, continuing: %v", err)
		return nil
	}
	if !changed {
		env.Logger.ErrorToUser("No changes in the repository, nothing to commit")
		return orchestrator.NewNoChangesError(repo.Root())
	}
	return nil
}

// resolveTarget falls back to the settings target when no flag was given.
// A message file with no explicit target is always updated in place.
func resolveTarget(request *models.AppendRequest, settings *interfaces.Settings) {
	if request.Target == "" && request.MessageFile == "" {
		request.Target = settings.Target
	}
}

// contractPath converts a full path back to use ~ for the home directory
func contractPath(path string) string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return path
	}

	homeDirWithSlash := homeDir + string(filepath.Separator)
	if strings.HasPrefix(path, homeDirWithSlash) {
		return "~" + path[len(homeDir):]
	}
	return path
}
