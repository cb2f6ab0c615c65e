package domain

import (
	"fmt"
	"slices"
	"strings"
)

// ChildFilter selects which children a listing returns
type ChildFilter struct {
	Notes        bool
	Folders      bool
	EmptyFolders bool
}

var (
	AllChildren  = ChildFilter{Notes: true, Folders: true, EmptyFolders: true}
	OnlyNotes    = ChildFilter{Notes: true}
	OnlyFolders  = ChildFilter{Folders: true, EmptyFolders: true}
	NonEmptyTree = ChildFilter{Notes: true, Folders: true}
)

func (f ChildFilter) match(n *Node) bool {
	if n.IsNote() {
		return f.Notes
	}
	if !f.Folders {
		return false
	}
	return f.EmptyFolders || !n.IsEmptyFolder()
}

// Tree is an arena of nodes plus the ordered list of root ids.
//
// Root and children lists are copy-on-write: every mutation installs a new
// slice, so a slice handed out earlier keeps describing the old state.
type Tree struct {
	nodes map[NodeID]*Node
	roots []NodeID
}

// NewTree returns an empty forest
func NewTree() *Tree {
	return &Tree{nodes: make(map[NodeID]*Node)}
}

// Len returns the number of nodes in the arena, detached ones included
func (t *Tree) Len() int { return len(t.nodes) }

// Node looks up a node by id
func (t *Tree) Node(id NodeID) (*Node, bool) {
	n, ok := t.nodes[id]
	return n, ok
}

func (t *Tree) get(id NodeID) (*Node, error) {
	n, ok := t.nodes[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return n, nil
}

// RootIDs returns the ordered root ids. The slice must not be modified.
func (t *Tree) RootIDs() []NodeID { return t.roots }

// Roots returns the root-level nodes in order
func (t *Tree) Roots() []*Node {
	return t.resolve(t.roots)
}

func (t *Tree) resolve(ids []NodeID) []*Node {
	out := make([]*Node, 0, len(ids))
	for _, id := range ids {
		if n, ok := t.nodes[id]; ok {
			out = append(out, n)
		}
	}
	return out
}

// NewFolder creates a detached folder with no children
func (t *Tree) NewFolder(label string) (NodeID, error) {
	if err := validateLabel(label); err != nil {
		return "", err
	}
	return t.insert(&Node{kind: KindFolder, label: label, children: []NodeID{}}), nil
}

// NewNote creates a detached note storing Encode(plain)
func (t *Tree) NewNote(label, plain string) (NodeID, error) {
	if err := validateLabel(label); err != nil {
		return "", err
	}
	return t.insert(&Node{kind: KindNote, label: label, content: Encode(plain)}), nil
}

func (t *Tree) insert(n *Node) NodeID {
	n.id = NewNodeID()
	t.nodes[n.id] = n
	return n.id
}

func validateLabel(label string) error {
	if strings.TrimSpace(label) == "" {
		return ErrEmptyLabel
	}
	if strings.Contains(label, "/") {
		return ErrSlashInLabel
	}
	return nil
}

// IsDetached reports a node that is neither a root nor inside a folder
func (t *Tree) IsDetached(id NodeID) bool {
	n, ok := t.nodes[id]
	if !ok {
		return false
	}
	return n.parent == RootLevel && !slices.Contains(t.roots, id)
}

// AddRoot appends a detached node to the root list
func (t *Tree) AddRoot(id NodeID) error {
	if _, err := t.get(id); err != nil {
		return err
	}
	if !t.IsDetached(id) {
		return fmt.Errorf("%w: %s", ErrAttached, id)
	}
	t.roots = appendCOW(t.roots, id)
	return nil
}

// AddChild appends a detached child to a folder
func (t *Tree) AddChild(parentID, childID NodeID) error {
	parent, err := t.get(parentID)
	if err != nil {
		return err
	}
	if !parent.IsFolder() {
		return fmt.Errorf("%w: %s", ErrNotFolder, parent.label)
	}
	child, err := t.get(childID)
	if err != nil {
		return err
	}
	if !t.IsDetached(childID) {
		return fmt.Errorf("%w: %s", ErrAttached, child.label)
	}
	if parentID == childID || t.IsAncestor(childID, parentID) {
		return &InvalidMoveError{Node: child.label, Target: parent.label, Reason: "target is inside the node"}
	}
	parent.children = appendCOW(parent.children, childID)
	child.parent = parentID
	return nil
}

// RemoveChild unlinks child from parent and leaves it detached
func (t *Tree) RemoveChild(parentID, childID NodeID) error {
	parent, err := t.get(parentID)
	if err != nil {
		return err
	}
	child, err := t.get(childID)
	if err != nil {
		return err
	}
	if !slices.Contains(parent.children, childID) {
		return fmt.Errorf("%w: %s in %s", ErrNotChild, child.label, parent.label)
	}
	parent.children = withoutCOW(parent.children, childID)
	child.parent = RootLevel
	return nil
}

// detach removes the node from whichever container holds it
func (t *Tree) detach(n *Node) {
	if n.parent != RootLevel {
		if p, ok := t.nodes[n.parent]; ok {
			p.children = withoutCOW(p.children, n.id)
		}
		n.parent = RootLevel
		return
	}
	if slices.Contains(t.roots, n.id) {
		t.roots = withoutCOW(t.roots, n.id)
	}
}

// Reparent moves a node under newParent, appending it last.
// Moving a folder into itself or one of its descendants is rejected
// before anything changes.
func (t *Tree) Reparent(id, newParentID NodeID) error {
	n, err := t.get(id)
	if err != nil {
		return err
	}
	target, err := t.get(newParentID)
	if err != nil {
		return err
	}
	if !target.IsFolder() {
		return &InvalidMoveError{Node: n.label, Target: target.label, Reason: "target is not a folder"}
	}
	if id == newParentID {
		return &InvalidMoveError{Node: n.label, Target: target.label, Reason: "cannot move a folder into itself"}
	}
	if t.IsAncestor(id, newParentID) {
		return &InvalidMoveError{Node: n.label, Target: target.label, Reason: "target is inside the moved folder"}
	}

	t.detach(n)
	target.children = appendCOW(target.children, id)
	n.parent = newParentID
	return nil
}

// MoveToRoot detaches the node and appends it to the root list.
// A node already in root stays where it is.
func (t *Tree) MoveToRoot(id NodeID) error {
	n, err := t.get(id)
	if err != nil {
		return err
	}
	if n.parent == RootLevel && slices.Contains(t.roots, id) {
		return nil
	}
	t.detach(n)
	t.roots = appendCOW(t.roots, id)
	return nil
}

// Rename changes the label. Siblings may share labels.
func (t *Tree) Rename(id NodeID, label string) error {
	n, err := t.get(id)
	if err != nil {
		return err
	}
	if err := validateLabel(label); err != nil {
		return err
	}
	n.label = label
	return nil
}

// Delete unlinks the node and drops its subtree from the arena.
// A non-empty folder is only removed when confirmed is true.
func (t *Tree) Delete(id NodeID, confirmed bool) error {
	n, err := t.get(id)
	if err != nil {
		return err
	}
	if n.IsFolder() && !n.IsEmptyFolder() && !confirmed {
		return ErrConfirmationRequired
	}
	t.detach(n)
	t.prune(id)
	return nil
}

func (t *Tree) prune(id NodeID) {
	n, ok := t.nodes[id]
	if !ok {
		return
	}
	for _, c := range n.children {
		t.prune(c)
	}
	delete(t.nodes, id)
}

// SetContent replaces a note's payload with Encode(plain)
func (t *Tree) SetContent(id NodeID, plain string) error {
	n, err := t.get(id)
	if err != nil {
		return err
	}
	if !n.IsNote() {
		return fmt.Errorf("%w: %s", ErrNotNote, n.label)
	}
	n.content = Encode(plain)
	return nil
}

// Content decodes a note's payload
func (t *Tree) Content(id NodeID) (string, error) {
	n, err := t.get(id)
	if err != nil {
		return "", err
	}
	if !n.IsNote() {
		return "", fmt.Errorf("%w: %s", ErrNotNote, n.label)
	}
	return Decode(n.content)
}

// Children returns the filtered, ordered children of id. RootLevel lists
// the roots. Notes have no children.
func (t *Tree) Children(id NodeID, f ChildFilter) []*Node {
	var ids []NodeID
	if id == RootLevel {
		ids = t.roots
	} else {
		n, ok := t.nodes[id]
		if !ok || !n.IsFolder() {
			return nil
		}
		ids = n.children
	}

	out := make([]*Node, 0, len(ids))
	for _, c := range t.resolve(ids) {
		if f.match(c) {
			out = append(out, c)
		}
	}
	return out
}

// ChildrenRecursive is a pre-order walk applying f at every level
func (t *Tree) ChildrenRecursive(id NodeID, f ChildFilter) []*Node {
	var out []*Node
	for _, c := range t.Children(id, f) {
		out = append(out, c)
		out = append(out, t.ChildrenRecursive(c.id, f)...)
	}
	return out
}

// HasSubfolders reports whether any direct child is a folder
func (t *Tree) HasSubfolders(id NodeID) bool {
	return len(t.Children(id, OnlyFolders)) > 0
}

// ContainsNoteRecursive is true for a note, or a folder with a note
// anywhere below it.
func (t *Tree) ContainsNoteRecursive(id NodeID) bool {
	n, ok := t.nodes[id]
	if !ok {
		return false
	}
	if n.IsNote() {
		return true
	}
	for _, c := range n.children {
		if t.ContainsNoteRecursive(c) {
			return true
		}
	}
	return false
}

// IsAncestor reports whether anc is a strict ancestor of id
func (t *Tree) IsAncestor(anc, id NodeID) bool {
	n, ok := t.nodes[id]
	for ok && n.parent != RootLevel {
		if n.parent == anc {
			return true
		}
		n, ok = t.nodes[n.parent]
	}
	return false
}

// Path returns the labels from the root down to id
func (t *Tree) Path(id NodeID) []string {
	var labels []string
	n, ok := t.nodes[id]
	for ok {
		labels = append(labels, n.label)
		if n.parent == RootLevel {
			break
		}
		n, ok = t.nodes[n.parent]
	}
	slices.Reverse(labels)
	return labels
}

// Depth returns 0 for root-level nodes
func (t *Tree) Depth(id NodeID) int {
	return max(len(t.Path(id))-1, 0)
}

// Walk visits attached nodes in pre-order. Returning false from fn skips
// the node's subtree.
func (t *Tree) Walk(fn func(n *Node, depth int) bool) {
	var visit func(ids []NodeID, depth int)
	visit = func(ids []NodeID, depth int) {
		for _, n := range t.resolve(ids) {
			if fn(n, depth) {
				visit(n.children, depth+1)
			}
		}
	}
	visit(t.roots, 0)
}

// Clone deep-copies the forest. Node ids are preserved.
func (t *Tree) Clone() *Tree {
	c := &Tree{
		nodes: make(map[NodeID]*Node, len(t.nodes)),
		roots: slices.Clone(t.roots),
	}
	for id, n := range t.nodes {
		c.nodes[id] = n.clone()
	}
	return c
}

func appendCOW(ids []NodeID, id NodeID) []NodeID {
	return append(slices.Clip(ids), id)
}

func withoutCOW(ids []NodeID, id NodeID) []NodeID {
	out := make([]NodeID, 0, len(ids))
	for _, x := range ids {
		if x != id {
			out = append(out, x)
		}
	}
	return out
}
