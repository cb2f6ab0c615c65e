package application

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"syncednotes/internal/domain"
	"syncednotes/internal/ports"
)

// PickMode selects the candidates and action row a Picker offers
type PickMode int

const (
	SelectNote PickMode = iota
	PickAddNote
	PickAddFolder
	PickMoveNote
	PickMoveFolder
	SelectFolder
	PickDeleteFolder
)

// Sentinel row labels
const (
	SentinelNewNote      = "[NEW NOTE HERE]"
	SentinelNewFolder    = "[NEW FOLDER HERE]"
	SentinelMoveHere     = "[MOVE HERE]"
	SentinelMoveToRoot   = "[MOVE TO ROOT]"
	SentinelThisFolder   = "[THIS FOLDER]"
	SentinelDeleteFolder = "[DELETE THIS FOLDER]"
)

func (m PickMode) String() string {
	switch m {
	case SelectNote:
		return "select-note"
	case PickAddNote:
		return "add-note"
	case PickAddFolder:
		return "add-folder"
	case PickMoveNote:
		return "move-note"
	case PickMoveFolder:
		return "move-folder"
	case SelectFolder:
		return "select-folder"
	case PickDeleteFolder:
		return "delete-folder"
	default:
		return "unknown"
	}
}

func (m PickMode) picksNotes() bool { return m == SelectNote }

// sentinel returns the action row for level, or "" when the mode has none there
func (m PickMode) sentinel(level domain.NodeID) string {
	atRoot := level == domain.RootLevel
	switch m {
	case PickAddNote:
		return SentinelNewNote
	case PickAddFolder:
		return SentinelNewFolder
	case PickMoveNote, PickMoveFolder:
		if atRoot {
			return SentinelMoveToRoot
		}
		return SentinelMoveHere
	case SelectFolder:
		if !atRoot {
			return SentinelThisFolder
		}
	case PickDeleteFolder:
		if !atRoot {
			return SentinelDeleteFolder
		}
	}
	return ""
}

// PickState is the state of a Picker
type PickState int

const (
	Choosing PickState = iota
	Resolved
	Cancelled
)

func (s PickState) String() string {
	switch s {
	case Choosing:
		return "choosing"
	case Resolved:
		return "resolved"
	case Cancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// PickResult is the outcome of a Picker run.
//
// When Here is set the user chose the action row: Level is the folder being
// shown (RootLevel at the top) and Node is that folder, nil at root level.
// Otherwise Node is the chosen note or folder.
type PickResult struct {
	State PickState
	Node  *domain.Node
	Here  bool
	Level domain.NodeID
}

// Target returns the folder id the result points at. At root level, or for
// a chosen note, it returns RootLevel.
func (r PickResult) Target() domain.NodeID {
	if r.Here {
		return r.Level
	}
	if r.Node != nil && r.Node.IsFolder() {
		return r.Node.ID()
	}
	return domain.RootLevel
}

// Picker walks the tree one level at a time, asking the prompter to choose
// among the candidates at each level.
type Picker struct {
	prompter   ports.Prompter
	tree       *domain.Tree
	mode       PickMode
	title      string
	ignore     domain.NodeID
	previewLen int
	logger     *slog.Logger

	state PickState
	level domain.NodeID
}

// PickerOption customizes a Picker
type PickerOption func(*Picker)

// WithIgnore hides a node and its subtree from every level
func WithIgnore(id domain.NodeID) PickerOption {
	return func(p *Picker) { p.ignore = id }
}

// WithTitle sets the prompt title
func WithTitle(title string) PickerOption {
	return func(p *Picker) { p.title = title }
}

// WithPreviewLength sets how many characters of a note are shown next to it
func WithPreviewLength(n int) PickerOption {
	return func(p *Picker) { p.previewLen = n }
}

// WithPickerLogger sets the picker logger
func WithPickerLogger(logger *slog.Logger) PickerOption {
	return func(p *Picker) { p.logger = logger }
}

// NewPicker creates a picker over tree
func NewPicker(prompter ports.Prompter, tree *domain.Tree, mode PickMode, opts ...PickerOption) *Picker {
	p := &Picker{
		prompter:   prompter,
		tree:       tree,
		mode:       mode,
		title:      "Select",
		previewLen: 40,
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
		state:      Choosing,
		level:      domain.RootLevel,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// State returns the current state
func (p *Picker) State() PickState { return p.state }

// Candidates returns the nodes offered at the current level
func (p *Picker) Candidates() []*domain.Node {
	return p.candidates(p.level)
}

func (p *Picker) candidates(level domain.NodeID) []*domain.Node {
	if p.mode.picksNotes() {
		return NoteCandidates(p.tree, level)
	}
	return FolderCandidates(p.tree, level, p.ignore)
}

// Choices returns the rows to show at the current level, sentinel last
func (p *Picker) Choices() []ports.Choice {
	nodes := p.Candidates()
	choices := make([]ports.Choice, 0, len(nodes)+1)
	for _, n := range nodes {
		choices = append(choices, ports.Choice{Label: n.Label(), Description: p.describe(n)})
	}
	if s := p.mode.sentinel(p.level); s != "" {
		choices = append(choices, ports.Choice{Label: s, Description: p.sentinelDescription(), Sentinel: true})
	}
	return choices
}

func (p *Picker) describe(n *domain.Node) string {
	if n.IsFolder() {
		return "open folder"
	}
	preview, err := domain.Preview(n.EncodedContent(), p.previewLen)
	if err != nil {
		return "unreadable"
	}
	return preview
}

func (p *Picker) sentinelDescription() string {
	if p.level == domain.RootLevel {
		return "root"
	}
	return fmt.Sprintf("in %s", PathString(p.tree, p.level))
}

// Select advances the machine with the row at index in Choices(). A
// negative index cancels.
func (p *Picker) Select(index int) (PickResult, error) {
	if p.state != Choosing {
		return PickResult{}, fmt.Errorf("%w: picker is %s", ErrInvalidOperation, p.state)
	}
	if index < 0 {
		p.state = Cancelled
		return PickResult{State: Cancelled}, nil
	}

	nodes := p.Candidates()
	if index == len(nodes) && p.mode.sentinel(p.level) != "" {
		p.state = Resolved
		res := PickResult{State: Resolved, Here: true, Level: p.level}
		if p.level != domain.RootLevel {
			res.Node, _ = p.tree.Node(p.level)
		}
		return res, nil
	}
	if index >= len(nodes) {
		return PickResult{}, fmt.Errorf("%w: choice %d out of range", ErrInvalidOperation, index)
	}

	chosen := nodes[index]
	if p.resolves(chosen) {
		p.state = Resolved
		return PickResult{State: Resolved, Node: chosen, Level: p.level}, nil
	}

	p.logger.Debug("picker descending", "mode", p.mode.String(), "folder", chosen.Label())
	p.level = chosen.ID()
	return PickResult{State: Choosing, Level: p.level}, nil
}

// resolves reports whether choosing n ends the walk
func (p *Picker) resolves(n *domain.Node) bool {
	if n.IsNote() {
		return true
	}
	if p.mode.picksNotes() {
		return len(NoteCandidates(p.tree, n.ID())) == 0
	}
	return len(FolderCandidates(p.tree, n.ID(), p.ignore)) == 0
}

// Run drives the machine with the prompter until it resolves or is cancelled
func (p *Picker) Run(ctx context.Context) (PickResult, error) {
	for p.state == Choosing {
		choices := p.Choices()
		if len(choices) == 0 {
			p.logger.Info("nothing to pick", "mode", p.mode.String())
			p.state = Cancelled
			return PickResult{State: Cancelled}, nil
		}

		index, ok, err := p.prompter.Choose(ctx, p.title, choices)
		if err != nil {
			return PickResult{}, fmt.Errorf("failed to prompt: %w", err)
		}
		if !ok {
			index = -1
		}

		res, err := p.Select(index)
		if err != nil {
			return PickResult{}, err
		}
		if res.State != Choosing {
			return res, nil
		}
	}
	return PickResult{State: p.state}, nil
}

// PathString joins the labels leading to id with "/"
func PathString(t *domain.Tree, id domain.NodeID) string {
	return strings.Join(t.Path(id), "/")
}
