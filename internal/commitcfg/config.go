// Package commitcfg reads, validates and bootstraps commitail.config.json,
// the project-local document listing the suffixes a commit message can get.
package commitcfg

import (
	"encoding/json"
	"errors"
)

// FileName is the default name of the suffix document at the workspace root.
const FileName = "commitail.config.json"

// IgnoreFileName is the ignore list the config file is added to on bootstrap.
const IgnoreFileName = ".gitignore"

var (
	// ErrNoWorkspace means there is no workspace root to place the config in.
	ErrNoWorkspace = errors.New("no workspace open")

	// ErrMalformedConfig means the config file is not valid JSON.
	ErrMalformedConfig = errors.New("config file could not be parsed")

	// ErrInvalidConfig means the config file parsed but was rejected by Validate.
	ErrInvalidConfig = errors.New("config file is invalid")
)

// Option is one suffix choice. A plain option only has a Label; a paired
// option was written as [label, description].
type Option struct {
	Label       string
	Description string
	Paired      bool
}

// PlainOption returns an option written as a bare string.
func PlainOption(label string) Option {
	return Option{Label: label}
}

// PairedOption returns an option written as a [label, description] pair.
func PairedOption(label, description string) Option {
	return Option{Label: label, Description: description, Paired: true}
}

// MarshalJSON writes the option back in the shape it was read in.
func (o Option) MarshalJSON() ([]byte, error) {
	if o.Paired {
		return json.Marshal([2]string{o.Label, o.Description})
	}
	return json.Marshal(o.Label)
}

// MarshalYAML mirrors MarshalJSON for yaml.v3.
func (o Option) MarshalYAML() (any, error) {
	if o.Paired {
		return []string{o.Label, o.Description}, nil
	}
	return o.Label, nil
}

// Config is a validated suffix document. Values are only produced by
// Validate or DefaultConfig and are not mutated afterwards.
type Config struct {
	AppendOptions []Option `json:"appendOptions" yaml:"appendOptions"`
	Manual        *bool    `json:"manual,omitempty" yaml:"manual,omitempty"`
	DefaultIndex  *int     `json:"defaultIndex,omitempty" yaml:"defaultIndex,omitempty"`
}

// IsManual reports whether the suffix is picked interactively. Absent means true.
func (c *Config) IsManual() bool {
	return c.Manual == nil || *c.Manual
}

// DefaultPosition returns defaultIndex, or 0 when it is absent.
func (c *Config) DefaultPosition() int {
	if c.DefaultIndex == nil {
		return 0
	}
	return *c.DefaultIndex
}

// DefaultOption returns the option automatic selection uses.
func (c *Config) DefaultOption() Option {
	return c.AppendOptions[c.DefaultPosition()]
}

// DefaultConfig returns the document written by CreateDefault.
func DefaultConfig() *Config {
	manual := true
	index := 0
	return &Config{
		AppendOptions: []Option{
			PlainOption("[skip ci]"),
			PlainOption("🔧 chore"),
			PlainOption("🧪 test"),
			PlainOption("🚀 deploy"),
		},
		Manual:       &manual,
		DefaultIndex: &index,
	}
}

// Encode renders cfg as pretty-printed JSON with two-space indentation.
func Encode(cfg *Config) ([]byte, error) {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}
