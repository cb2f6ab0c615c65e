package commands

import (
	"context"
	"fmt"

	"syncednotes/internal/application"
	"syncednotes/internal/domain"
	"syncednotes/internal/ports"
)

// ShowResult is a decoded note
type ShowResult struct {
	NodeID   domain.NodeID
	Label    string
	Path     string
	Text     string
	Rendered string
}

// ShowNoteCommand decodes a note for display
type ShowNoteCommand struct {
	store    *application.NoteStore
	ui       Interaction
	renderer ports.Previewer

	// Note is the note to show; nil asks the user
	Note *domain.NodeID
}

// NewShowNoteCommand creates a new ShowNoteCommand. A nil renderer leaves
// Rendered empty.
func NewShowNoteCommand(store *application.NoteStore, ui Interaction, renderer ports.Previewer) *ShowNoteCommand {
	return &ShowNoteCommand{store: store, ui: ui, renderer: renderer}
}

// Validate checks if the show operation is valid
func (c *ShowNoteCommand) Validate() error {
	if c.Note == nil {
		return c.ui.requirePrompter("noteID")
	}
	return application.ValidateKind(c.store.Snapshot(), "noteID", *c.Note, domain.KindNote)
}

// Execute runs the show command. A nil result with a nil error means the
// user cancelled.
func (c *ShowNoteCommand) Execute(ctx context.Context) (*ShowResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	n, err := c.ui.node(ctx, c.store, c.Note, "noteID", domain.KindNote, application.SelectNote, "Select note")
	if err != nil || n == nil {
		return nil, err
	}

	tree := c.store.Snapshot()
	text, err := tree.Content(n.ID())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", application.ErrUnreadableNote, err)
	}

	res := &ShowResult{
		NodeID: n.ID(),
		Label:  n.Label(),
		Path:   application.PathString(tree, n.ID()),
		Text:   text,
	}
	if c.renderer != nil {
		rendered, err := c.renderer.Render(n.Label(), text)
		if err != nil {
			return nil, fmt.Errorf("failed to render note: %w", err)
		}
		res.Rendered = rendered
	}
	return res, nil
}

// CopyNoteCommand puts a note's text on the clipboard
type CopyNoteCommand struct {
	store     *application.NoteStore
	ui        Interaction
	clipboard ports.Clipboard

	// Note is the note to copy; nil asks the user
	Note *domain.NodeID
}

// NewCopyNoteCommand creates a new CopyNoteCommand
func NewCopyNoteCommand(store *application.NoteStore, ui Interaction, clipboard ports.Clipboard) *CopyNoteCommand {
	return &CopyNoteCommand{store: store, ui: ui, clipboard: clipboard}
}

// Validate checks if the copy operation is valid
func (c *CopyNoteCommand) Validate() error {
	if c.clipboard == nil {
		return &application.ValidationError{Field: "clipboard", Message: "no clipboard available"}
	}
	if c.Note == nil {
		return c.ui.requirePrompter("noteID")
	}
	return application.ValidateKind(c.store.Snapshot(), "noteID", *c.Note, domain.KindNote)
}

// Execute runs the copy command
func (c *CopyNoteCommand) Execute(ctx context.Context) (*Result, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	n, err := c.ui.node(ctx, c.store, c.Note, "noteID", domain.KindNote, application.SelectNote, "Copy note")
	if err != nil {
		return nil, err
	}
	if n == nil {
		return cancelled(), nil
	}

	text, err := c.store.Snapshot().Content(n.ID())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", application.ErrUnreadableNote, err)
	}
	if err := c.clipboard.WriteAll(text); err != nil {
		return nil, fmt.Errorf("failed to copy note: %w", err)
	}

	return &Result{
		NodeID:  n.ID(),
		Label:   n.Label(),
		Message: fmt.Sprintf("Copied %s", n.Label()),
	}, nil
}
