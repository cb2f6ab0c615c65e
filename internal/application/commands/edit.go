package commands

import (
	"context"
	"errors"
	"fmt"

	"syncednotes/internal/application"
	"syncednotes/internal/domain"
)

// Editor drives an edit session until the user is done with it. It calls
// session.Save whenever the scratch file is written.
type Editor interface {
	Edit(ctx context.Context, session *application.EditSession) error
}

// EditResult reports how an edit session ended
type EditResult struct {
	Result
	Saved bool
}

// EditNoteCommand opens a note in an external editor and writes every save
// back to the settings
type EditNoteCommand struct {
	store  *application.NoteStore
	ui     Interaction
	editor Editor

	// Note is the note to edit; nil asks the user
	Note *domain.NodeID
	// TempDir holds the scratch file; empty means os.TempDir()
	TempDir string
	// SessionOptions are passed to the edit session
	SessionOptions []application.EditOption
}

// NewEditNoteCommand creates a new EditNoteCommand
func NewEditNoteCommand(store *application.NoteStore, ui Interaction, editor Editor) *EditNoteCommand {
	return &EditNoteCommand{store: store, ui: ui, editor: editor}
}

// Validate checks if the edit operation is valid
func (c *EditNoteCommand) Validate() error {
	if c.editor == nil {
		return &application.ValidationError{Field: "editor", Message: "no editor configured"}
	}
	if c.Note == nil {
		return c.ui.requirePrompter("noteID")
	}
	return application.ValidateKind(c.store.Snapshot(), "noteID", *c.Note, domain.KindNote)
}

// Execute runs the edit command. The scratch file is removed however the
// editor exits.
func (c *EditNoteCommand) Execute(ctx context.Context) (res *EditResult, err error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	n, err := c.ui.node(ctx, c.store, c.Note, "noteID", domain.KindNote, application.SelectNote, "Edit note")
	if err != nil {
		return nil, err
	}
	if n == nil {
		return &EditResult{Result: *cancelled()}, nil
	}

	session, err := application.OpenEditSession(c.store, n.ID(), c.TempDir, c.SessionOptions...)
	if err != nil {
		return nil, fmt.Errorf("failed to open note: %w", err)
	}
	defer func() {
		if closeErr := session.Close(); closeErr != nil && err == nil {
			res, err = nil, closeErr
		}
	}()

	editErr := c.editor.Edit(ctx, session)

	// Pick up a write that landed after the last save event
	changed, saveErr := session.Save(ctx)
	if err := errors.Join(editErr, saveErr); err != nil {
		return nil, fmt.Errorf("failed to edit note: %w", err)
	}

	saved := changed || session.State() == application.Saved
	msg := fmt.Sprintf("%s unchanged", n.Label())
	if saved {
		msg = fmt.Sprintf("Saved %s", n.Label())
	}
	return &EditResult{
		Result: Result{NodeID: n.ID(), Label: n.Label(), Message: msg},
		Saved:  saved,
	}, nil
}
