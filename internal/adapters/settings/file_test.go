package settings

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/buger/jsonparser"
	"github.com/gofrs/flock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"syncednotes/internal/domain"
)

func settingsFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "User", "settings.json")
	if content != "" {
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	}
	return path
}

func TestFileStore_Load(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"missing file", "", "[]"},
		{"blank file", "  \n", "[]"},
		{"missing key", `{"editor.fontSize": 14}`, "[]"},
		{"null key", `{"syncedNotes.notes": null}`, "[]"},
		{"notes", `{"a": 1, "syncedNotes.notes": [{"readme": "aGVsbG8="}], "b": 2}`, `[{"readme": "aGVsbG8="}]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := settingsFile(t, tt.content)

			got, err := NewFileStore(path).Load(context.Background())
			require.NoError(t, err)
			assert.JSONEq(t, tt.want, string(got))
		})
	}
}

func TestFileStore_LoadNotAnArray(t *testing.T) {
	path := settingsFile(t, `{"syncedNotes.notes": {"readme": "x"}}`)

	_, err := NewFileStore(path).Load(context.Background())
	var malformed *domain.MalformedTreeError
	require.ErrorAs(t, err, &malformed)
	assert.Equal(t, "syncedNotes.notes", malformed.Path)
}

func TestFileStore_LoadBrokenJSON(t *testing.T) {
	path := settingsFile(t, `{"syncedNotes.notes": [`)

	_, err := NewFileStore(path).Load(context.Background())
	assert.Error(t, err)
}

func TestFileStore_CustomKey(t *testing.T) {
	path := settingsFile(t, `{"notes": [{"Empty": []}]}`)

	got, err := NewFileStore(path, WithKey("notes")).Load(context.Background())
	require.NoError(t, err)
	assert.JSONEq(t, `[{"Empty": []}]`, string(got))
}

func TestFileStore_SaveKeepsOtherSettings(t *testing.T) {
	path := settingsFile(t, `{"editor.fontSize": 14, "syncedNotes.notes": [], "workbench.colorTheme": "Default Dark+"}`)
	require.NoError(t, os.Chmod(path, 0o640))
	store := NewFileStore(path)

	require.NoError(t, store.Save(context.Background(), []byte(`[{"Work":[]}]`)))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	size, err := jsonparser.GetInt(data, "editor.fontSize")
	require.NoError(t, err)
	assert.EqualValues(t, 14, size)
	theme, err := jsonparser.GetString(data, "workbench.colorTheme")
	require.NoError(t, err)
	assert.Equal(t, "Default Dark+", theme)

	got, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.JSONEq(t, `[{"Work":[]}]`, string(got))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o640), info.Mode().Perm(), "mode is kept")

	leftovers, err := filepath.Glob(filepath.Join(filepath.Dir(path), ".settings.json.*.tmp"))
	require.NoError(t, err)
	assert.Empty(t, leftovers)
}

func TestFileStore_SaveCreatesFile(t *testing.T) {
	path := settingsFile(t, "")

	require.NoError(t, NewFileStore(path).Save(context.Background(), []byte(`[]`)))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, `{"syncedNotes.notes": []}`, string(data))
}

func TestFileStore_LockTimeout(t *testing.T) {
	path := settingsFile(t, `{}`)

	held := flock.New(path + ".lock")
	locked, err := held.TryLock()
	require.NoError(t, err)
	require.True(t, locked)
	defer held.Unlock()

	store := NewFileStore(path, WithLockTimeout(50*time.Millisecond))
	err = store.Save(context.Background(), []byte(`[]`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to lock settings")
}

func TestExpandHome(t *testing.T) {
	t.Setenv("HOME", "/home/ada")
	assert.Equal(t, "/home/ada/.config/Code/User/settings.json", ExpandHome("~/.config/Code/User/settings.json"))
	assert.Equal(t, "/etc/settings.json", ExpandHome("/etc/settings.json"))
}
