package interfaces

// Settings holds the tool's own settings, as opposed to the per-project
// suffix document (commitail.config.json).
type Settings struct {
	Workspace    string `mapstructure:"workspace"`
	ConfigFile   string `mapstructure:"config_file"`
	IgnoreFile   string `mapstructure:"ignore_file"`
	Target       string `mapstructure:"target"`
	NumberSelect bool   `mapstructure:"number_select"`
	LogFile      string `mapstructure:"log_file"`
	Verbose      bool   `mapstructure:"verbose"`
	GitBinary    string `mapstructure:"git_binary"`
}

// SettingsManager handles settings loading and resolution
type SettingsManager interface {
	// Load loads settings from the specified path
	Load(path string) (*Settings, error)

	// Resolve applies precedence rules (flags > env > settings file > defaults)
	Resolve() (*Settings, error)

	// Validate validates the settings values
	Validate(settings *Settings) error
}
