package commands

import (
	"context"
	"fmt"

	"syncednotes/internal/application"
	"syncednotes/internal/domain"
)

// DeleteCommand removes a note or a folder with its contents
type DeleteCommand struct {
	store *application.NoteStore
	ui    Interaction
	kind  domain.Kind

	// Target is the node to delete; nil asks the user
	Target *domain.NodeID
	// Confirmed skips the prompt for a non-empty folder
	Confirmed bool
}

// NewDeleteNoteCommand creates a DeleteCommand for notes
func NewDeleteNoteCommand(store *application.NoteStore, ui Interaction) *DeleteCommand {
	return &DeleteCommand{store: store, ui: ui, kind: domain.KindNote}
}

// NewDeleteFolderCommand creates a DeleteCommand for folders
func NewDeleteFolderCommand(store *application.NoteStore, ui Interaction) *DeleteCommand {
	return &DeleteCommand{store: store, ui: ui, kind: domain.KindFolder}
}

func (c *DeleteCommand) field() string {
	if c.kind == domain.KindFolder {
		return "folderID"
	}
	return "noteID"
}

// Validate checks if the delete operation is valid
func (c *DeleteCommand) Validate() error {
	if c.Target == nil {
		return c.ui.requirePrompter(c.field())
	}
	return application.ValidateKind(c.store.Snapshot(), c.field(), *c.Target, c.kind)
}

// Execute runs the delete command
func (c *DeleteCommand) Execute(ctx context.Context) (*Result, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	mode, title := application.SelectNote, "Delete note"
	if c.kind == domain.KindFolder {
		mode, title = application.PickDeleteFolder, "Delete folder"
	}
	n, err := c.ui.node(ctx, c.store, c.Target, c.field(), c.kind, mode, title)
	if err != nil {
		return nil, err
	}
	if n == nil {
		return cancelled(), nil
	}

	confirmed := c.Confirmed
	if n.IsFolder() && !n.IsEmptyFolder() && !confirmed {
		if c.ui.Prompter == nil {
			return nil, fmt.Errorf("failed to delete %s: %w", n.Label(), domain.ErrConfirmationRequired)
		}
		question := fmt.Sprintf("Delete %s and everything in it?", application.PathString(c.store.Snapshot(), n.ID()))
		confirmed, err = c.ui.Prompter.Confirm(ctx, question)
		if err != nil {
			return nil, fmt.Errorf("failed to prompt: %w", err)
		}
		if !confirmed {
			return cancelled(), nil
		}
	}

	err = c.store.Mutate(ctx, func(t *domain.Tree) error {
		return t.Delete(n.ID(), confirmed)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to delete %s: %w", n.Label(), err)
	}

	return &Result{
		NodeID:  n.ID(),
		Label:   n.Label(),
		Message: fmt.Sprintf("Deleted %s %s", c.kind, n.Label()),
	}, nil
}
