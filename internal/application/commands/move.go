package commands

import (
	"context"
	"fmt"

	"syncednotes/internal/application"
	"syncednotes/internal/domain"
)

// MoveCommand moves a note or a folder to another folder or to root level
type MoveCommand struct {
	store *application.NoteStore
	ui    Interaction
	kind  domain.Kind

	// Source is the node to move; nil asks the user
	Source *domain.NodeID
	// Target is the destination folder, RootLevel for root; nil asks the user
	Target *domain.NodeID
}

// NewMoveNoteCommand creates a MoveCommand for notes
func NewMoveNoteCommand(store *application.NoteStore, ui Interaction) *MoveCommand {
	return &MoveCommand{store: store, ui: ui, kind: domain.KindNote}
}

// NewMoveFolderCommand creates a MoveCommand for folders
func NewMoveFolderCommand(store *application.NoteStore, ui Interaction) *MoveCommand {
	return &MoveCommand{store: store, ui: ui, kind: domain.KindFolder}
}

func (c *MoveCommand) field() string {
	if c.kind == domain.KindFolder {
		return "folderID"
	}
	return "noteID"
}

// Validate checks if the move operation is valid
func (c *MoveCommand) Validate() error {
	tree := c.store.Snapshot()
	if c.Source != nil {
		if err := application.ValidateKind(tree, c.field(), *c.Source, c.kind); err != nil {
			return err
		}
	}
	if c.Target != nil && *c.Target != domain.RootLevel {
		target, ok := tree.Node(*c.Target)
		if !ok {
			return fmt.Errorf("%w: target %s", application.ErrNotFound, *c.Target)
		}
		if !target.IsFolder() {
			return &application.MoveError{
				Source: c.sourceLabel(tree),
				Dest:   target.Label(),
				Reason: "destination is not a folder",
			}
		}
	}
	if c.Source == nil || c.Target == nil {
		return c.ui.requirePrompter("targetID")
	}
	return nil
}

func (c *MoveCommand) sourceLabel(tree *domain.Tree) string {
	if c.Source == nil {
		return "selection"
	}
	if n, ok := tree.Node(*c.Source); ok {
		return n.Label()
	}
	return string(*c.Source)
}

// Execute runs the move command
func (c *MoveCommand) Execute(ctx context.Context) (*Result, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	mode, title := application.SelectNote, "Select note to move"
	if c.kind == domain.KindFolder {
		mode, title = application.SelectFolder, "Select folder to move"
	}
	n, err := c.ui.node(ctx, c.store, c.Source, c.field(), c.kind, mode, title)
	if err != nil {
		return nil, err
	}
	if n == nil {
		return cancelled(), nil
	}

	var target domain.NodeID
	if c.Target != nil {
		target = *c.Target
	} else {
		targetMode := application.PickMoveNote
		var opts []application.PickerOption
		if c.kind == domain.KindFolder {
			targetMode = application.PickMoveFolder
			opts = append(opts, application.WithIgnore(n.ID()))
		}
		res, err := c.ui.pick(ctx, c.store, targetMode, fmt.Sprintf("Move %s to", n.Label()), opts...)
		if err != nil {
			return nil, err
		}
		if res.State != application.Resolved {
			return cancelled(), nil
		}
		target = res.Target()
	}

	err = c.store.Mutate(ctx, func(t *domain.Tree) error {
		if target == domain.RootLevel {
			return t.MoveToRoot(n.ID())
		}
		return t.Reparent(n.ID(), target)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to move %s: %w", c.kind, err)
	}

	return &Result{
		NodeID:  n.ID(),
		Label:   n.Label(),
		Message: fmt.Sprintf("Moved %s to %s", n.Label(), describe(c.store.Snapshot(), target)),
	}, nil
}
