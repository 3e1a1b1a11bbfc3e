package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"commitail-cli/internal/interfaces"
)

// Manager implements the SettingsManager interface
type Manager struct {
	v     *viper.Viper
	flags map[string]interface{} // Store flag values for precedence
}

// NewManager creates a new settings manager
func NewManager() *Manager {
	v := viper.New()
	v.SetConfigType("toml")
	v.SetEnvPrefix("COMMITAIL")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Set defaults
	setDefaults(v)

	return &Manager{
		v:     v,
		flags: make(map[string]interface{}),
	}
}

// setDefaults sets the default settings values
func setDefaults(v *viper.Viper) {
	v.SetDefault("workspace", "")
	v.SetDefault("config_file", "commitail.config.json")
	v.SetDefault("ignore_file", ".gitignore")
	v.SetDefault("target", "")
	v.SetDefault("number_select", false)
	v.SetDefault("log_file", "")
	v.SetDefault("verbose", false)
	v.SetDefault("git_binary", "git")
}

// DefaultPath returns ~/.config/commitail/settings.toml
func DefaultPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "commitail", "settings.toml"), nil
}

// Load loads settings from the specified path. A missing file is not an
// error; defaults and environment still apply.
func (m *Manager) Load(path string) (*interfaces.Settings, error) {
	if path == "" {
		defaultPath, err := DefaultPath()
		if err != nil {
			return m.getSettingsFromViper(), nil
		}
		path = defaultPath
	}

	path = expandPath(path)

	// Check if settings file exists
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return m.getSettingsFromViper(), nil
	}

	m.v.SetConfigFile(path)

	if err := m.v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read settings file %s: %w", path, err)
	}

	return m.getSettingsFromViper(), nil
}

// SetFlag sets a flag value for precedence resolution
func (m *Manager) SetFlag(key string, value interface{}) {
	m.flags[key] = value
}

// Resolve applies precedence rules (flags > env > settings file > defaults)
func (m *Manager) Resolve() (*interfaces.Settings, error) {
	settings := m.getSettingsFromViper()

	// Apply flag overrides (highest precedence)
	m.applyFlagOverrides(settings)

	return settings, nil
}

// applyFlagOverrides applies flag values over the settings
func (m *Manager) applyFlagOverrides(settings *interfaces.Settings) {
	if str, ok := m.stringFlag("workspace"); ok {
		settings.Workspace = expandPath(str)
	}
	if str, ok := m.stringFlag("target"); ok {
		settings.Target = str
	}
	if str, ok := m.stringFlag("log_file"); ok {
		settings.LogFile = expandPath(str)
	}
	if b, ok := m.boolFlag("verbose"); ok && b {
		settings.Verbose = true
	}
	if b, ok := m.boolFlag("number_select"); ok && b {
		settings.NumberSelect = true
	}
}

func (m *Manager) stringFlag(key string) (string, bool) {
	val, exists := m.flags[key]
	if !exists || val == nil {
		return "", false
	}
	str, ok := val.(string)
	return str, ok && str != ""
}

func (m *Manager) boolFlag(key string) (bool, bool) {
	val, exists := m.flags[key]
	if !exists || val == nil {
		return false, false
	}
	b, ok := val.(bool)
	return b, ok
}

// Validate validates the settings values
func (m *Manager) Validate(settings *interfaces.Settings) error {
	if settings == nil {
		return fmt.Errorf("settings cannot be nil")
	}

	if err := validateTarget(settings.Target); err != nil {
		return err
	}

	// File names are joined to the workspace root and must stay there
	for key, name := range map[string]string{
		"config_file": settings.ConfigFile,
		"ignore_file": settings.IgnoreFile,
	} {
		if name == "" {
			return fmt.Errorf("%s cannot be empty", key)
		}
		if strings.ContainsAny(name, `/\`) {
			return fmt.Errorf("invalid %s: %s (must be a bare file name)", key, name)
		}
	}

	if settings.GitBinary == "" {
		return fmt.Errorf("git_binary cannot be empty")
	}

	return nil
}

// validateTarget accepts "", stdout, clipboard and file:<path>
func validateTarget(target string) error {
	switch target {
	case "", interfaces.TargetClipboard, interfaces.TargetStdout:
		return nil
	}
	if _, ok := interfaces.FileTarget(target); ok {
		return nil
	}
	return fmt.Errorf("invalid target: %s (must be 'clipboard', 'stdout', or 'file:/path')", target)
}

// getSettingsFromViper converts viper values to a Settings struct
// This handles env > settings file > defaults precedence (flags are applied separately)
func (m *Manager) getSettingsFromViper() *interfaces.Settings {
	return &interfaces.Settings{
		Workspace:    expandPath(m.v.GetString("workspace")),
		ConfigFile:   m.v.GetString("config_file"),
		IgnoreFile:   m.v.GetString("ignore_file"),
		Target:       m.v.GetString("target"),
		NumberSelect: m.v.GetBool("number_select"),
		LogFile:      expandPath(m.v.GetString("log_file")),
		Verbose:      m.v.GetBool("verbose"),
		GitBinary:    m.v.GetString("git_binary"),
	}
}

// expandPath expands ~ to user home directory
func expandPath(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return path // Return original path if we can't get home dir
	}

	return filepath.Join(homeDir, path[2:])
}
