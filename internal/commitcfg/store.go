package commitcfg

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"commitail-cli/internal/interfaces"
)

// OverwriteLabel is the affirmative answer to the overwrite question.
const OverwriteLabel = "Overwrite"

// Store reads and writes the suffix document and its ignore-list entry.
type Store struct {
	workspace  interfaces.WorkspaceResolver
	confirmer  interfaces.Confirmer
	reporter   interfaces.Reporter
	fileName   string
	ignoreName string
}

// NewStore creates a store rooted at whatever workspace resolves to
func NewStore(workspace interfaces.WorkspaceResolver, confirmer interfaces.Confirmer, reporter interfaces.Reporter) *Store {
	return &Store{
		workspace:  workspace,
		confirmer:  confirmer,
		reporter:   reporter,
		fileName:   FileName,
		ignoreName: IgnoreFileName,
	}
}

// SetFileNames overrides the config and ignore-list file names. Empty
// values keep the current ones.
func (s *Store) SetFileNames(configFile, ignoreFile string) {
	if configFile != "" {
		s.fileName = configFile
	}
	if ignoreFile != "" {
		s.ignoreName = ignoreFile
	}
}

// FileName returns the config file name the store looks for.
func (s *Store) FileName() string {
	return s.fileName
}

// ResolveConfigPath returns <workspace root>/<config file name>.
func (s *Store) ResolveConfigPath() (string, error) {
	root, ok := s.workspace.Root()
	if !ok {
		return "", ErrNoWorkspace
	}
	return filepath.Join(root, s.fileName), nil
}

// Load reads and validates the config at path, resolving it when path is
// empty. A missing file yields (nil, nil). Parse and validation failures are
// reported here and returned wrapped in ErrMalformedConfig or ErrInvalidConfig.
func (s *Store) Load(path string) (*Config, error) {
	if path == "" {
		resolved, err := s.ResolveConfigPath()
		if err != nil {
			s.reporter.Warning("No workspace found, cannot load config")
			return nil, err
		}
		path = resolved
	}

	content, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			s.reporter.Info("Config file not found: %s", path)
			return nil, nil
		}
		s.reporter.Error("Failed to read config from %s: %v", path, err)
		s.reporter.ErrorToUser("Error reading config file: %v", err)
		return nil, fmt.Errorf("%w: %w", ErrMalformedConfig, err)
	}

	doc, err := Parse(content)
	if err != nil {
		s.reporter.Error("Failed to load config from %s: %v", path, err)
		s.reporter.ErrorToUser("Error reading config file: %v", err)
		return nil, fmt.Errorf("%w: %w", ErrMalformedConfig, err)
	}

	result := Validate(doc)
	if !result.Valid {
		s.reporter.Error("Invalid config: %s", result.Message)
		s.reporter.ErrorToUser("Invalid config file format: %s", result.Message)
		return nil, fmt.Errorf("%w: %s", ErrInvalidConfig, result.Message)
	}

	s.reporter.Info("Config loaded successfully from: %s", path)
	return result.Config, nil
}

// BootstrapResult describes what CreateDefault did. The config write and the
// ignore-list update succeed or fail independently.
type BootstrapResult struct {
	ConfigPath    string
	Written       bool
	IgnorePath    string
	IgnoreUpdated bool
	IgnoreErr     error
}

// CreateDefault writes DefaultConfig to the workspace. An existing file is
// only replaced after the confirmer agrees; declining returns
// interfaces.ErrCancelled. When force is set the question is skipped.
func (s *Store) CreateDefault(ctx context.Context, force bool) (BootstrapResult, error) {
	var result BootstrapResult

	path, err := s.ResolveConfigPath()
	if err != nil {
		s.reporter.Error("No workspace found, cannot create config file")
		s.reporter.ErrorToUser("No workspace is open, cannot create the config file")
		return result, err
	}
	result.ConfigPath = path

	if _, statErr := os.Stat(path); statErr == nil && !force {
		overwrite, err := s.confirmer.Confirm(ctx, "Config file already exists. Overwrite it?", OverwriteLabel)
		if err != nil {
			return result, fmt.Errorf("failed to confirm overwrite: %w", err)
		}
		if !overwrite {
			s.reporter.Info("User cancelled config file creation")
			return result, interfaces.ErrCancelled
		}
	}

	data, err := Encode(DefaultConfig())
	if err != nil {
		return result, fmt.Errorf("failed to encode default config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		s.reporter.Error("Failed to create config file: %v", err)
		s.reporter.ErrorToUser("Error creating config file: %v", err)
		return result, fmt.Errorf("failed to write config file %s: %w", path, err)
	}
	result.Written = true

	result.IgnorePath = filepath.Join(filepath.Dir(path), s.ignoreName)
	added, ignoreErr := EnsureIgnoreEntry(result.IgnorePath, filepath.Base(path))
	if ignoreErr != nil {
		result.IgnoreErr = ignoreErr
		s.reporter.Warning("Failed to update %s: %v", s.ignoreName, ignoreErr)
	} else if added {
		result.IgnoreUpdated = true
		s.reporter.Info("Added config file to %s", s.ignoreName)
	}

	s.reporter.Info("Config file created successfully: %s", path)
	if ignoreErr != nil {
		s.reporter.Success("Config file created: %s", path)
		s.reporter.WarningToUser("Could not add it to %s: %v", s.ignoreName, ignoreErr)
	} else {
		s.reporter.Success("Config file created and listed in %s: %s", s.ignoreName, path)
	}

	return result, nil
}
