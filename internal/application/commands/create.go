package commands

import (
	"context"
	"fmt"

	"syncednotes/internal/application"
	"syncednotes/internal/domain"
)

// AddNoteCommand creates a note in a folder or at root level
type AddNoteCommand struct {
	store *application.NoteStore
	ui    Interaction

	// Parent is the containing folder; nil asks the user
	Parent *domain.NodeID
	// Label is the note name; empty asks the user
	Label string
	// Content is the note text; nil asks the user
	Content *string
}

// NewAddNoteCommand creates a new AddNoteCommand
func NewAddNoteCommand(store *application.NoteStore, ui Interaction) *AddNoteCommand {
	return &AddNoteCommand{store: store, ui: ui}
}

// Validate checks if the create operation is valid
func (c *AddNoteCommand) Validate() error {
	if c.Parent != nil {
		if err := folder(c.store, "parentID", *c.Parent); err != nil {
			return err
		}
	}
	if c.Parent == nil || c.Label == "" || c.Content == nil {
		return c.ui.requirePrompter("label")
	}
	return nil
}

// Execute runs the add note command
func (c *AddNoteCommand) Execute(ctx context.Context) (*Result, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	parent := domain.RootLevel
	if c.Parent != nil {
		parent = *c.Parent
	} else {
		res, err := c.ui.pick(ctx, c.store, application.PickAddNote, "Select folder for note")
		if err != nil {
			return nil, err
		}
		if res.State != application.Resolved {
			return cancelled(), nil
		}
		parent = res.Target()
	}

	label, ok, err := c.ui.label(ctx, c.Label, "Note name", "")
	if err != nil || !ok {
		return orCancelled(err)
	}

	var content string
	if c.Content != nil {
		content = *c.Content
	} else {
		value, ok, err := c.ui.Prompter.Input(ctx, "Note content", "")
		if err != nil {
			return nil, fmt.Errorf("failed to prompt: %w", err)
		}
		if !ok {
			return cancelled(), nil
		}
		content = value
	}

	id, err := c.store.AddNote(ctx, label, content, parent)
	if err != nil {
		return nil, fmt.Errorf("failed to add note: %w", err)
	}

	return &Result{
		NodeID:  id,
		Label:   label,
		Message: fmt.Sprintf("Added note %s in %s", label, describe(c.store.Snapshot(), parent)),
	}, nil
}

// AddFolderCommand creates a folder in a folder or at root level
type AddFolderCommand struct {
	store *application.NoteStore
	ui    Interaction

	// Parent is the containing folder; nil asks the user
	Parent *domain.NodeID
	// Label is the folder name; empty asks the user
	Label string
}

// NewAddFolderCommand creates a new AddFolderCommand
func NewAddFolderCommand(store *application.NoteStore, ui Interaction) *AddFolderCommand {
	return &AddFolderCommand{store: store, ui: ui}
}

// Validate checks if the create operation is valid
func (c *AddFolderCommand) Validate() error {
	if c.Parent != nil {
		if err := folder(c.store, "parentID", *c.Parent); err != nil {
			return err
		}
	}
	if c.Parent == nil || c.Label == "" {
		return c.ui.requirePrompter("label")
	}
	return nil
}

// Execute runs the add folder command
func (c *AddFolderCommand) Execute(ctx context.Context) (*Result, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	parent := domain.RootLevel
	if c.Parent != nil {
		parent = *c.Parent
	} else {
		res, err := c.ui.pick(ctx, c.store, application.PickAddFolder, "Select parent folder")
		if err != nil {
			return nil, err
		}
		if res.State != application.Resolved {
			return cancelled(), nil
		}
		parent = res.Target()
	}

	label, ok, err := c.ui.label(ctx, c.Label, "Folder name", "")
	if err != nil || !ok {
		return orCancelled(err)
	}

	id, err := c.store.AddFolder(ctx, label, parent)
	if err != nil {
		return nil, fmt.Errorf("failed to add folder: %w", err)
	}

	return &Result{
		NodeID:  id,
		Label:   label,
		Message: fmt.Sprintf("Added folder %s in %s", label, describe(c.store.Snapshot(), parent)),
	}, nil
}

func orCancelled(err error) (*Result, error) {
	if err != nil {
		return nil, err
	}
	return cancelled(), nil
}
