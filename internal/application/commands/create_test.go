package commands

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"syncednotes/internal/application"
	"syncednotes/internal/domain"
)

func TestAddNoteCommand_Preselected(t *testing.T) {
	store, mem := newStore(t)

	cmd := NewAddNoteCommand(store, Interaction{})
	cmd.Parent = idOf(t, store, "Work")
	cmd.Label = "plan"
	body := "step one"
	cmd.Content = &body

	result, err := cmd.Execute(context.Background())
	require.NoError(t, err)

	assert.False(t, result.Cancelled)
	assert.Equal(t, "plan", result.Label)
	if !contains(result.Message, "Work") {
		t.Errorf("expected message to name the folder, got %q", result.Message)
	}

	text, err := store.Snapshot().Content(result.NodeID)
	require.NoError(t, err)
	assert.Equal(t, "step one", text)
	assert.Equal(t, []string{"Work", "plan"}, store.Snapshot().Path(result.NodeID))
	assert.Equal(t, 1, mem.Saves())
}

func TestAddNoteCommand_AtRoot(t *testing.T) {
	store, _ := newStore(t)

	cmd := NewAddNoteCommand(store, Interaction{})
	cmd.Parent = At(domain.RootLevel)
	cmd.Label = "top"
	empty := ""
	cmd.Content = &empty

	result, err := cmd.Execute(context.Background())
	require.NoError(t, err)

	roots := store.Snapshot().RootIDs()
	assert.Equal(t, result.NodeID, roots[len(roots)-1])
	assert.True(t, contains(result.Message, "root"))
}

func TestAddNoteCommand_Interactive(t *testing.T) {
	tests := []struct {
		name     string
		picks    []string
		wantPath string
	}{
		{name: "sentinel in subfolder", picks: []string{"Work", application.SentinelNewNote}, wantPath: "Work/plan"},
		{name: "leaf folder resolves", picks: []string{"Empty"}, wantPath: "Empty/plan"},
		{name: "sentinel at root", picks: []string{application.SentinelNewNote}, wantPath: "plan"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, _ := newStore(t)
			s := &script{t: t, picks: tt.picks, inputs: []string{"plan", "body"}}

			result, err := NewAddNoteCommand(store, interactive(s)).Execute(context.Background())
			require.NoError(t, err)
			require.False(t, result.Cancelled)

			assert.True(t, exists(store, tt.wantPath), "expected %s", tt.wantPath)
			text, err := store.Snapshot().Content(result.NodeID)
			require.NoError(t, err)
			assert.Equal(t, "body", text)
		})
	}
}

func TestAddNoteCommand_CancelLeavesNothingBehind(t *testing.T) {
	tests := []struct {
		name   string
		picks  []string
		inputs []string
	}{
		{name: "cancel picker", picks: []string{""}},
		{name: "cancel label", picks: []string{application.SentinelNewNote}, inputs: []string{""}},
		{name: "cancel content", picks: []string{application.SentinelNewNote}, inputs: []string{"plan", ""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, mem := newStore(t)
			before := store.Snapshot().Len()
			s := &script{t: t, picks: tt.picks, inputs: tt.inputs}

			result, err := NewAddNoteCommand(store, interactive(s)).Execute(context.Background())
			require.NoError(t, err)

			assert.True(t, result.Cancelled)
			assert.Equal(t, before, store.Snapshot().Len())
			assert.Zero(t, mem.Saves())
		})
	}
}

func TestAddNoteCommand_Validate(t *testing.T) {
	store, _ := newStore(t)

	tests := []struct {
		name      string
		setup     func(c *AddNoteCommand)
		wantField string
	}{
		{
			name:      "missing label without prompter",
			setup:     func(c *AddNoteCommand) { c.Parent = At(domain.RootLevel) },
			wantField: "label",
		},
		{
			name: "parent is a note",
			setup: func(c *AddNoteCommand) {
				c.Parent = idOf(t, store, "readme")
				c.Label = "x"
			},
			wantField: "parentID",
		},
		{
			name: "unknown parent",
			setup: func(c *AddNoteCommand) {
				c.Parent = At("nope")
				c.Label = "x"
			},
			wantField: "parentID",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := NewAddNoteCommand(store, Interaction{})
			tt.setup(cmd)

			err := cmd.Validate()
			var validationErr *application.ValidationError
			require.True(t, errors.As(err, &validationErr), "got %v", err)
			assert.Equal(t, tt.wantField, validationErr.Field)
		})
	}
}

func TestAddNoteCommand_SaveFailureKeepsTree(t *testing.T) {
	store, mem := newStore(t)
	mem.FailSaves(errors.New("disk full"))
	before := store.Snapshot()

	cmd := NewAddNoteCommand(store, Interaction{})
	cmd.Parent = At(domain.RootLevel)
	cmd.Label = "x"
	body := "y"
	cmd.Content = &body

	_, err := cmd.Execute(context.Background())

	var saveErr *application.SaveError
	require.True(t, errors.As(err, &saveErr), "got %v", err)
	assert.Same(t, before, store.Snapshot())
}

func TestAddFolderCommand(t *testing.T) {
	t.Run("preselected", func(t *testing.T) {
		store, _ := newStore(t)
		cmd := NewAddFolderCommand(store, Interaction{})
		cmd.Parent = idOf(t, store, "Work")
		cmd.Label = "Projects"

		result, err := cmd.Execute(context.Background())
		require.NoError(t, err)

		n, ok := store.Snapshot().Node(result.NodeID)
		require.True(t, ok)
		assert.True(t, n.IsEmptyFolder())
		assert.True(t, exists(store, "Work/Projects"))
	})

	t.Run("interactive", func(t *testing.T) {
		store, _ := newStore(t)
		s := &script{t: t, picks: []string{"Work", "Meetings"}, inputs: []string{"2024"}}

		result, err := NewAddFolderCommand(store, interactive(s)).Execute(context.Background())
		require.NoError(t, err)

		assert.Equal(t, "2024", result.Label)
		assert.True(t, exists(store, "Work/Meetings/2024"))
		assert.Equal(t, []string{"Work", "Empty", application.SentinelNewFolder}, s.offered[0])
	})

	t.Run("blank label rejected", func(t *testing.T) {
		store, mem := newStore(t)
		s := &script{t: t, picks: []string{application.SentinelNewFolder}, inputs: []string{"   "}}

		_, err := NewAddFolderCommand(store, interactive(s)).Execute(context.Background())

		var validationErr *application.ValidationError
		require.True(t, errors.As(err, &validationErr), "got %v", err)
		assert.Zero(t, mem.Saves())
	})
}
