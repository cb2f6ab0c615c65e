package commands

import (
	"context"
	"fmt"

	"syncednotes/internal/application"
	"syncednotes/internal/domain"
)

// TreeLine is one node of a tree listing
type TreeLine struct {
	NodeID     domain.NodeID
	Label      string
	Path       string
	Kind       domain.Kind
	Depth      int
	ChildCount int
	Preview    string
	Unreadable bool
}

// TreeCommand lists the forest, or the subtree under a folder, in order
type TreeCommand struct {
	store *application.NoteStore

	// Root limits the listing to a folder's contents; nil lists everything
	Root *domain.NodeID
	// MaxDepth stops the listing below this depth; zero means no limit
	MaxDepth int
	// PreviewLength is the note preview size; zero leaves previews empty
	PreviewLength int
}

// NewTreeCommand creates a new TreeCommand
func NewTreeCommand(store *application.NoteStore) *TreeCommand {
	return &TreeCommand{store: store}
}

// Validate checks if the listing is valid
func (c *TreeCommand) Validate() error {
	if c.MaxDepth < 0 {
		return &application.ValidationError{Field: "depth", Message: "depth must not be negative"}
	}
	if c.Root != nil && *c.Root != domain.RootLevel {
		return application.ValidateKind(c.store.Snapshot(), "folderID", *c.Root, domain.KindFolder)
	}
	return nil
}

// Execute runs the tree command
func (c *TreeCommand) Execute(ctx context.Context) ([]TreeLine, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	tree := c.store.Snapshot()
	var lines []TreeLine
	var visit func(level domain.NodeID, depth int)
	visit = func(level domain.NodeID, depth int) {
		if c.MaxDepth > 0 && depth >= c.MaxDepth {
			return
		}
		for _, n := range tree.Children(level, domain.AllChildren) {
			line := TreeLine{
				NodeID:     n.ID(),
				Label:      n.Label(),
				Path:       application.PathString(tree, n.ID()),
				Kind:       n.Kind(),
				Depth:      depth,
				ChildCount: n.ChildCount(),
				Unreadable: c.store.Unreadable(n.ID()) != nil,
			}
			if n.IsNote() && c.PreviewLength > 0 && !line.Unreadable {
				line.Preview, _ = domain.Preview(n.EncodedContent(), c.PreviewLength)
			}
			lines = append(lines, line)
			if n.IsFolder() {
				visit(n.ID(), depth+1)
			}
		}
	}

	root := domain.RootLevel
	if c.Root != nil {
		root = *c.Root
	}
	visit(root, 0)

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}
	return lines, nil
}
