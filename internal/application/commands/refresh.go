package commands

import (
	"context"
	"fmt"

	"syncednotes/internal/application"
)

// RefreshCommand discards the in-memory tree and reloads it from the settings
type RefreshCommand struct {
	store *application.NoteStore
}

// NewRefreshCommand creates a new RefreshCommand
func NewRefreshCommand(store *application.NoteStore) *RefreshCommand {
	return &RefreshCommand{store: store}
}

// Execute runs the refresh command
func (c *RefreshCommand) Execute(ctx context.Context) (*Result, error) {
	if err := c.store.Reload(ctx); err != nil {
		return nil, fmt.Errorf("failed to refresh: %w", err)
	}

	tree := c.store.Snapshot()
	msg := fmt.Sprintf("Loaded %d nodes", tree.Len())
	if bad := c.store.UnreadableCount(); bad > 0 {
		msg = fmt.Sprintf("%s, %d unreadable", msg, bad)
	}
	return &Result{Message: msg}, nil
}
