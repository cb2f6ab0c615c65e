// Package config loads the YAML configuration with environment variable
// expansion.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"gopkg.in/yaml.v3"
)

// Environment variables that override the configuration
const (
	EnvConfig   = "SYNCEDNOTES_CONFIG"
	EnvSettings = "SYNCEDNOTES_SETTINGS"
)

// Defaults
const (
	DefaultSettingsPath  = "~/.config/Code/User/settings.json"
	DefaultSettingsKey   = "syncedNotes.notes"
	DefaultLockTimeout   = 3 * time.Second
	DefaultPreviewLength = 60
)

// Validator is implemented by configuration types that can check themselves
type Validator interface {
	Validate() error
}

// Load reads a YAML file into target, expanding environment variables first.
// Fields missing from the file keep the values target already holds.
func Load[T any](filename string, target *T) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", filename, err)
	}

	expanded := os.ExpandEnv(string(data))

	if err := yaml.Unmarshal([]byte(expanded), target); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", filename, err)
	}

	if v, ok := any(target).(Validator); ok {
		if err := v.Validate(); err != nil {
			return fmt.Errorf("config validation failed: %w", err)
		}
	}
	return nil
}

// Config is the application configuration
type Config struct {
	LogLevel  slog.Level     `yaml:"log_level"`
	DebugMode bool           `yaml:"debug_mode"`
	Settings  SettingsConfig `yaml:"settings"`
	Notes     NotesConfig    `yaml:"notes"`
	// Editor is the command used to edit notes; empty falls back to
	// $VISUAL, $EDITOR and common editors
	Editor string `yaml:"editor"`
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if err := c.Settings.Validate(); err != nil {
		return fmt.Errorf("settings: %w", err)
	}
	if err := c.Notes.Validate(); err != nil {
		return fmt.Errorf("notes: %w", err)
	}
	return nil
}

// Level is the effective log level. Debug mode always logs at debug.
func (c *Config) Level() slog.Level {
	if c.DebugMode {
		return slog.LevelDebug
	}
	return c.LogLevel
}

// SettingsConfig locates the notes inside the settings file
type SettingsConfig struct {
	Path        string        `yaml:"path"`
	Key         string        `yaml:"key"`
	Autorefresh bool          `yaml:"autorefresh"`
	LockTimeout time.Duration `yaml:"lock_timeout"`
}

// Validate validates the settings configuration
func (c *SettingsConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Path, validation.Required),
		validation.Field(&c.Key, validation.Required),
		validation.Field(&c.LockTimeout, validation.Min(time.Duration(0))),
	)
}

// NotesConfig holds note display and editing options
type NotesConfig struct {
	PreviewLength int    `yaml:"preview_length"`
	TempDir       string `yaml:"temp_dir"`
}

// Validate validates the notes configuration
func (c *NotesConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.PreviewLength, validation.Min(1)),
	)
}

// NewDefaultConfig returns a Config with default values
func NewDefaultConfig() *Config {
	return &Config{
		LogLevel: slog.LevelInfo,
		Settings: SettingsConfig{
			Path:        DefaultSettingsPath,
			Key:         DefaultSettingsKey,
			Autorefresh: true,
			LockTimeout: DefaultLockTimeout,
		},
		Notes: NotesConfig{
			PreviewLength: DefaultPreviewLength,
		},
	}
}

// DefaultPath is the config file used when neither a flag nor
// SYNCEDNOTES_CONFIG names one
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "syncednotes", "config.yaml")
}

// Resolve builds the configuration. path comes from a flag and may be empty,
// in which case SYNCEDNOTES_CONFIG and then DefaultPath are tried. A missing
// default file means defaults; a missing file that was asked for is an error.
// SYNCEDNOTES_SETTINGS overrides settings.path.
func Resolve(path string) (*Config, error) {
	cfg := NewDefaultConfig()

	explicit := true
	if path == "" {
		path = os.Getenv(EnvConfig)
	}
	if path == "" {
		path, explicit = DefaultPath(), false
	}

	if path != "" {
		err := Load(path, cfg)
		switch {
		case err == nil:
		case !explicit && errors.Is(err, os.ErrNotExist):
		default:
			return nil, err
		}
	}

	if env := os.Getenv(EnvSettings); env != "" {
		cfg.Settings.Path = env
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}
