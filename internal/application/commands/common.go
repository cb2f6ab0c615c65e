package commands

import (
	"context"
	"fmt"

	"syncednotes/internal/application"
	"syncednotes/internal/domain"
	"syncednotes/internal/ports"
)

// Interaction holds what a command needs to ask the user. A nil Prompter
// means every input must be supplied up front.
type Interaction struct {
	Prompter      ports.Prompter
	PickerOptions []application.PickerOption
}

// Result is returned by commands that change the tree
type Result struct {
	NodeID    domain.NodeID
	Label     string
	Cancelled bool
	Message   string
}

func cancelled() *Result {
	return &Result{Cancelled: true}
}

// At returns a pointer to id, for pre-selecting a node on a command.
// At(domain.RootLevel) selects the root level.
func At(id domain.NodeID) *domain.NodeID {
	return &id
}

func (i Interaction) requirePrompter(field string) error {
	if i.Prompter == nil {
		return &application.ValidationError{
			Field:   field,
			Message: fmt.Sprintf("%s is required when not running interactively", field),
		}
	}
	return nil
}

// pick runs a Picker over the current tree
func (i Interaction) pick(ctx context.Context, store *application.NoteStore, mode application.PickMode, title string, opts ...application.PickerOption) (application.PickResult, error) {
	all := append([]application.PickerOption{application.WithTitle(title)}, i.PickerOptions...)
	all = append(all, opts...)
	return application.NewPicker(i.Prompter, store.Snapshot(), mode, all...).Run(ctx)
}

// label returns given when set, otherwise asks for one prefilled with initial
func (i Interaction) label(ctx context.Context, given, title, initial string) (string, bool, error) {
	if given != "" {
		return given, true, nil
	}
	value, ok, err := i.Prompter.Input(ctx, title, initial)
	if err != nil {
		return "", false, fmt.Errorf("failed to prompt: %w", err)
	}
	if !ok {
		return "", false, nil
	}
	if err := application.ValidateRequired("label", value); err != nil {
		return "", false, err
	}
	return value, true, nil
}

// node returns the pre-selected node, or runs the picker in mode.
// A nil node with a nil error means the user cancelled.
func (i Interaction) node(ctx context.Context, store *application.NoteStore, preset *domain.NodeID, field string, kind domain.Kind, mode application.PickMode, title string) (*domain.Node, error) {
	tree := store.Snapshot()
	if preset != nil {
		if err := application.ValidateKind(tree, field, *preset, kind); err != nil {
			return nil, err
		}
		n, _ := tree.Node(*preset)
		return n, nil
	}

	res, err := i.pick(ctx, store, mode, title)
	if err != nil {
		return nil, err
	}
	if res.State != application.Resolved || res.Node == nil {
		return nil, nil
	}
	if res.Node.Kind() != kind {
		return nil, &application.ValidationError{
			Field:   field,
			Message: fmt.Sprintf("%s is not a %s", res.Node.Label(), kind),
		}
	}
	return res.Node, nil
}

// folder validates a pre-selected container, which may be the root level
func folder(store *application.NoteStore, field string, id domain.NodeID) error {
	if id == domain.RootLevel {
		return nil
	}
	return application.ValidateKind(store.Snapshot(), field, id, domain.KindFolder)
}

func describe(tree *domain.Tree, id domain.NodeID) string {
	if id == domain.RootLevel {
		return "root"
	}
	return application.PathString(tree, id)
}
