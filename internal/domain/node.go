package domain

import (
	"slices"

	"github.com/google/uuid"
)

// NodeID identifies a node inside a Tree. IDs are generated per session and
// are never persisted.
type NodeID string

// RootLevel addresses the forest itself wherever a parent is expected
const RootLevel NodeID = ""

// NewNodeID returns a fresh random identifier
func NewNodeID() NodeID {
	return NodeID(uuid.NewString())
}

// Short returns the first 8 characters of the id
func (id NodeID) Short() string {
	if len(id) <= 8 {
		return string(id)
	}
	return string(id[:8])
}

// Kind tells folders and notes apart. It is fixed at construction.
type Kind int

const (
	KindFolder Kind = iota
	KindNote
)

func (k Kind) String() string {
	switch k {
	case KindFolder:
		return "folder"
	case KindNote:
		return "note"
	default:
		return "unknown"
	}
}

// Node is a folder or a note in the forest. Fields are only mutated through
// Tree methods so containment and parent links stay consistent.
type Node struct {
	id       NodeID
	kind     Kind
	label    string
	content  string   // encoded payload, notes only
	parent   NodeID   // RootLevel when in root or detached
	children []NodeID // folders only, never shared between clones
}

func (n *Node) ID() NodeID     { return n.id }
func (n *Node) Kind() Kind     { return n.kind }
func (n *Node) Label() string  { return n.label }
func (n *Node) Parent() NodeID { return n.parent }

// EncodedContent returns the stored payload. Empty for folders.
func (n *Node) EncodedContent() string { return n.content }

func (n *Node) IsFolder() bool { return n.kind == KindFolder }
func (n *Node) IsNote() bool   { return n.kind == KindNote }

// IsEmptyFolder reports a folder without children
func (n *Node) IsEmptyFolder() bool {
	return n.kind == KindFolder && len(n.children) == 0
}

// IsInRoot reports whether the node has no parent folder
func (n *Node) IsInRoot() bool { return n.parent == RootLevel }

// ChildIDs returns a copy of the ordered child ids
func (n *Node) ChildIDs() []NodeID { return slices.Clone(n.children) }

// ChildCount returns the number of direct children
func (n *Node) ChildCount() int { return len(n.children) }

// ViewState describes how a node is presented in a tree widget
type ViewState struct {
	Icon         string
	ContextValue string
	Collapsible  bool
	Command      string
}

// ViewState derives presentation state from the node's current kind
func (n *Node) ViewState() ViewState {
	if n.IsFolder() {
		return ViewState{
			Icon:         "folder",
			ContextValue: "folder",
			Collapsible:  true,
		}
	}
	return ViewState{
		Icon:         "file",
		ContextValue: "note",
		Command:      "show-note",
	}
}

func (n *Node) clone() *Node {
	c := *n
	c.children = slices.Clone(n.children)
	return &c
}
