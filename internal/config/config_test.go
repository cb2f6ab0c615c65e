package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestResolve_File(t *testing.T) {
	t.Setenv(EnvSettings, "")
	t.Setenv("NOTES_HOME", "/tmp/notes")
	path := writeConfig(t, `
log_level: warn
settings:
  path: ${NOTES_HOME}/settings.json
  autorefresh: false
  lock_timeout: 500ms
notes:
  preview_length: 20
editor: nvim -u NONE
`)

	cfg, err := Resolve(path)
	require.NoError(t, err)
	assert.Equal(t, slog.LevelWarn, cfg.LogLevel)
	assert.Equal(t, "/tmp/notes/settings.json", cfg.Settings.Path)
	assert.Equal(t, DefaultSettingsKey, cfg.Settings.Key, "unset keys keep defaults")
	assert.False(t, cfg.Settings.Autorefresh)
	assert.Equal(t, 500*time.Millisecond, cfg.Settings.LockTimeout)
	assert.Equal(t, 20, cfg.Notes.PreviewLength)
	assert.Equal(t, "nvim -u NONE", cfg.Editor)
}

func TestResolve_EnvConfig(t *testing.T) {
	t.Setenv(EnvSettings, "")
	t.Setenv(EnvConfig, writeConfig(t, "debug_mode: true\n"))

	cfg, err := Resolve("")
	require.NoError(t, err)
	assert.True(t, cfg.DebugMode)
	assert.Equal(t, slog.LevelDebug, cfg.Level())
}

func TestResolve_MissingDefaultFile(t *testing.T) {
	t.Setenv(EnvConfig, "")
	t.Setenv(EnvSettings, "")
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())

	cfg, err := Resolve("")
	require.NoError(t, err)
	assert.Equal(t, NewDefaultConfig(), cfg)
}

func TestResolve_MissingExplicitFile(t *testing.T) {
	_, err := Resolve(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestResolve_SettingsOverride(t *testing.T) {
	t.Setenv(EnvSettings, "/elsewhere/settings.json")

	cfg, err := Resolve(writeConfig(t, "settings:\n  path: /ignored.json\n"))
	require.NoError(t, err)
	assert.Equal(t, "/elsewhere/settings.json", cfg.Settings.Path)
}

func TestResolve_Invalid(t *testing.T) {
	t.Setenv(EnvSettings, "")
	tests := []struct {
		name    string
		content string
	}{
		{"empty key", "settings:\n  key: \"\"\n"},
		{"negative timeout", "settings:\n  lock_timeout: -1s\n"},
		{"zero preview", "notes:\n  preview_length: 0\n"},
		{"bad yaml", "settings: [\n"},
		{"bad level", "log_level: loud\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Resolve(writeConfig(t, tt.content))
			assert.Error(t, err)
		})
	}
}

func TestLevel(t *testing.T) {
	cfg := NewDefaultConfig()
	assert.Equal(t, slog.LevelInfo, cfg.Level())

	cfg.LogLevel = slog.LevelError
	cfg.DebugMode = true
	assert.Equal(t, slog.LevelDebug, cfg.Level())
}
