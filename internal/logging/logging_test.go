package logging

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/buger/jsonparser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_WritesJSONFile(t *testing.T) {
	dir := t.TempDir()
	logger, closer, err := New(Options{Level: slog.LevelInfo, Dir: dir})
	require.NoError(t, err)

	logger.Debug("hidden")
	logger.Info("loaded", "nodes", 6)
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(filepath.Join(dir, "syncednotes.log"))
	require.NoError(t, err)
	assert.NotContains(t, string(data), "hidden")

	msg, err := jsonparser.GetString(data, "msg")
	require.NoError(t, err)
	assert.Equal(t, "loaded", msg)
	nodes, err := jsonparser.GetInt(data, "nodes")
	require.NoError(t, err)
	assert.EqualValues(t, 6, nodes)
}

func TestNew_Stderr(t *testing.T) {
	var stderr bytes.Buffer
	logger, closer, err := New(Options{Level: slog.LevelDebug, Dir: t.TempDir(), Stderr: &stderr})
	require.NoError(t, err)
	defer closer.Close()

	logger.With("path", "settings.json").Info("reloaded")
	logger.Warn("malformed notes", "path", "settings.json")

	assert.NotContains(t, stderr.String(), "reloaded", "stderr only gets warnings")
	assert.Contains(t, stderr.String(), "malformed notes")
}

func TestCacheDir(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/tmp/cache")
	assert.Equal(t, "/tmp/cache/syncednotes", CacheDir())
}
