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

func TestMoveCommand_NoteToRootSentinel(t *testing.T) {
	store, mem := newStore(t)
	s := &script{t: t, picks: []string{application.SentinelMoveToRoot}}

	cmd := NewMoveNoteCommand(store, interactive(s))
	cmd.Source = idOf(t, store, "Work/todo")

	result, err := cmd.Execute(context.Background())
	require.NoError(t, err)

	assert.True(t, contains(result.Message, "root"))
	assert.Equal(t, []string{"Work", "Empty", "readme", "todo"}, rootLabels(store))
	assert.False(t, exists(store, "Work/todo"))
	assert.Equal(t, 1, mem.Saves())
}

func TestMoveCommand_NoteIntoFolder(t *testing.T) {
	tests := []struct {
		name     string
		picks    []string
		wantPath string
	}{
		{name: "leaf folder", picks: []string{"readme", "Empty"}, wantPath: "Empty/readme"},
		{name: "move here", picks: []string{"readme", "Work", application.SentinelMoveHere}, wantPath: "Work/readme"},
		{name: "descend to leaf", picks: []string{"readme", "Work", "Meetings"}, wantPath: "Work/Meetings/readme"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, _ := newStore(t)
			s := &script{t: t, picks: tt.picks}

			_, err := NewMoveNoteCommand(store, interactive(s)).Execute(context.Background())
			require.NoError(t, err)

			assert.True(t, exists(store, tt.wantPath), "expected %s", tt.wantPath)
			assert.False(t, exists(store, "readme"))
		})
	}
}

func TestMoveCommand_FolderHidesItselfAsTarget(t *testing.T) {
	store, _ := newStore(t)
	s := &script{t: t, picks: []string{"Work", "Meetings", "Empty"}}

	_, err := NewMoveFolderCommand(store, interactive(s)).Execute(context.Background())
	require.NoError(t, err)

	assert.True(t, exists(store, "Empty/Meetings/standup"))
	assert.False(t, exists(store, "Work/Meetings"))
	// Target step: Work is still offered, Meetings is not
	assert.Equal(t, []string{"Work", "Empty", application.SentinelMoveToRoot}, s.offered[2])
}

func TestMoveCommand_FolderIgnoredAtEveryLevel(t *testing.T) {
	store, _ := newStore(t)
	s := &script{t: t, picks: []string{application.SentinelMoveToRoot}}

	cmd := NewMoveFolderCommand(store, interactive(s))
	cmd.Source = idOf(t, store, "Work")

	_, err := cmd.Execute(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"Empty", application.SentinelMoveToRoot}, s.offered[0])
	// Already at root: order is kept
	assert.Equal(t, []string{"Work", "Empty", "readme"}, rootLabels(store))
}

func TestMoveCommand_CycleRejected(t *testing.T) {
	store, mem := newStore(t)
	before := store.Snapshot()

	cmd := NewMoveFolderCommand(store, Interaction{})
	cmd.Source = idOf(t, store, "Work")
	cmd.Target = idOf(t, store, "Work/Meetings")

	_, err := cmd.Execute(context.Background())

	var moveErr *domain.InvalidMoveError
	require.True(t, errors.As(err, &moveErr), "got %v", err)
	assert.Same(t, before, store.Snapshot())
	assert.Zero(t, mem.Saves())
}

func TestMoveCommand_TargetNotFolder(t *testing.T) {
	store, _ := newStore(t)

	cmd := NewMoveNoteCommand(store, Interaction{})
	cmd.Source = idOf(t, store, "Work/todo")
	cmd.Target = idOf(t, store, "readme")

	err := cmd.Validate()

	var moveErr *application.MoveError
	require.True(t, errors.As(err, &moveErr), "got %v", err)
	assert.ErrorIs(t, err, application.ErrInvalidOperation)
	assert.Equal(t, "todo", moveErr.Source)
}

func TestMoveCommand_Cancelled(t *testing.T) {
	store, mem := newStore(t)
	s := &script{t: t, picks: []string{"readme", ""}}

	result, err := NewMoveNoteCommand(store, interactive(s)).Execute(context.Background())
	require.NoError(t, err)

	assert.True(t, result.Cancelled)
	assert.True(t, exists(store, "readme"))
	assert.Zero(t, mem.Saves())
}

func TestMoveCommand_RequiresPrompter(t *testing.T) {
	store, _ := newStore(t)

	cmd := NewMoveNoteCommand(store, Interaction{})
	cmd.Source = idOf(t, store, "readme")

	err := cmd.Validate()
	var validationErr *application.ValidationError
	require.True(t, errors.As(err, &validationErr), "got %v", err)
	assert.Equal(t, "targetID", validationErr.Field)
}

func rootLabels(store *application.NoteStore) []string {
	var out []string
	for _, n := range store.Snapshot().Roots() {
		out = append(out, n.Label())
	}
	return out
}
