package commands

import (
	"context"
	"fmt"

	"syncednotes/internal/application"
	"syncednotes/internal/domain"
)

// RenameCommand renames a note or a folder
type RenameCommand struct {
	store *application.NoteStore
	ui    Interaction
	kind  domain.Kind

	// Target is the node to rename; nil asks the user
	Target *domain.NodeID
	// Label is the new name; empty asks the user, prefilled with the old one
	Label string
}

// NewRenameNoteCommand creates a RenameCommand for notes
func NewRenameNoteCommand(store *application.NoteStore, ui Interaction) *RenameCommand {
	return &RenameCommand{store: store, ui: ui, kind: domain.KindNote}
}

// NewRenameFolderCommand creates a RenameCommand for folders
func NewRenameFolderCommand(store *application.NoteStore, ui Interaction) *RenameCommand {
	return &RenameCommand{store: store, ui: ui, kind: domain.KindFolder}
}

func (c *RenameCommand) field() string {
	if c.kind == domain.KindFolder {
		return "folderID"
	}
	return "noteID"
}

// Validate checks if the rename operation is valid
func (c *RenameCommand) Validate() error {
	if c.Target != nil {
		if err := application.ValidateKind(c.store.Snapshot(), c.field(), *c.Target, c.kind); err != nil {
			return err
		}
	}
	if c.Target == nil || c.Label == "" {
		return c.ui.requirePrompter("label")
	}
	return nil
}

// Execute runs the rename command
func (c *RenameCommand) Execute(ctx context.Context) (*Result, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	mode, title := application.SelectNote, "Rename note"
	if c.kind == domain.KindFolder {
		mode, title = application.SelectFolder, "Rename folder"
	}
	n, err := c.ui.node(ctx, c.store, c.Target, c.field(), c.kind, mode, title)
	if err != nil {
		return nil, err
	}
	if n == nil {
		return cancelled(), nil
	}

	label, ok, err := c.ui.label(ctx, c.Label, "New name", n.Label())
	if err != nil || !ok {
		return orCancelled(err)
	}

	res := &Result{NodeID: n.ID(), Label: label}
	if label == n.Label() {
		res.Message = fmt.Sprintf("%s unchanged", label)
		return res, nil
	}

	err = c.store.Mutate(ctx, func(t *domain.Tree) error {
		return t.Rename(n.ID(), label)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to rename %s: %w", c.kind, err)
	}

	res.Message = fmt.Sprintf("Renamed %s to %s", n.Label(), label)
	return res, nil
}
