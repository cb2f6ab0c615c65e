package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"syncednotes/internal/adapters/tui/styles"
	"syncednotes/internal/domain"
	"syncednotes/internal/ports"
)

// BrowserKeyMap defines key bindings for the browser view
type BrowserKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Left    key.Binding
	Right   key.Binding
	Enter   key.Binding
	Edit    key.Binding
	Copy    key.Binding
	Refresh key.Binding
	Preview key.Binding
	Help    key.Binding
	Quit    key.Binding
}

var BrowserKeys = BrowserKeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	Left: key.NewBinding(
		key.WithKeys("h", "left"),
		key.WithHelp("h/←", "collapse"),
	),
	Right: key.NewBinding(
		key.WithKeys("l", "right"),
		key.WithHelp("l/→", "expand"),
	),
	Enter: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "toggle/show"),
	),
	Edit: key.NewBinding(
		key.WithKeys("e"),
		key.WithHelp("e", "edit"),
	),
	Copy: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "copy"),
	),
	Refresh: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "refresh"),
	),
	Preview: key.NewBinding(
		key.WithKeys("p"),
		key.WithHelp("p", "preview"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// Row is one visible line of the tree
type Row struct {
	Node     *domain.Node
	Depth    int
	Expanded bool
}

// BrowserModel shows the notes tree with a preview of the selected note
type BrowserModel struct {
	ViewState
	tree       *domain.Tree
	expanded   map[domain.NodeID]bool
	unreadable func(domain.NodeID) error
	renderer   ports.Previewer

	rows  []Row
	pager *Paginator

	showPreview bool
	preview     viewport.Model
	previewKey  string
}

// NewBrowserModel creates a browser. unreadable reports notes that failed
// to decode on load; renderer may be nil for plain text previews.
func NewBrowserModel(renderer ports.Previewer, unreadable func(domain.NodeID) error) *BrowserModel {
	if unreadable == nil {
		unreadable = func(domain.NodeID) error { return nil }
	}
	return &BrowserModel{
		tree:        domain.NewTree(),
		expanded:    map[domain.NodeID]bool{},
		unreadable:  unreadable,
		renderer:    renderer,
		pager:       NewPaginator(20),
		showPreview: true,
		preview:     viewport.New(40, 20),
	}
}

// SetTree swaps in a new tree, keeping the cursor on the same node when it
// still exists
func (m *BrowserModel) SetTree(tree *domain.Tree) {
	var current domain.NodeID
	if n := m.Selected(); n != nil {
		current = n.ID()
	}
	m.tree = tree
	m.previewKey = ""
	m.refreshRows()
	if current != "" {
		m.SelectID(current)
	}
	m.updatePreview()
}

// Rows returns the visible rows
func (m *BrowserModel) Rows() []Row {
	return m.rows
}

// Selected returns the node under the cursor
func (m *BrowserModel) Selected() *domain.Node {
	if c := m.pager.Cursor(); c >= 0 && c < len(m.rows) {
		return m.rows[c].Node
	}
	return nil
}

// SelectID moves the cursor to id, expanding its ancestors
func (m *BrowserModel) SelectID(id domain.NodeID) bool {
	n, ok := m.tree.Node(id)
	if !ok {
		return false
	}
	for p := n.Parent(); p != domain.RootLevel; {
		m.expanded[p] = true
		parent, ok := m.tree.Node(p)
		if !ok {
			break
		}
		p = parent.Parent()
	}
	m.refreshRows()
	for i, r := range m.rows {
		if r.Node.ID() == id {
			m.pager.SetCursor(i)
			return true
		}
	}
	return false
}

func (m *BrowserModel) refreshRows() {
	m.rows = nil
	m.tree.Walk(func(n *domain.Node, depth int) bool {
		open := n.IsFolder() && m.expanded[n.ID()]
		m.rows = append(m.rows, Row{Node: n, Depth: depth, Expanded: open})
		return open
	})
	m.pager.SetTotal(len(m.rows))
}

// Init initializes the browser
func (m *BrowserModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the browser
func (m *BrowserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		m.pager.SetPageSize(msg.Height - 8)
		m.preview.Width = max(msg.Width/2-4, 10)
		m.preview.Height = max(msg.Height-8, 3)
		m.previewKey = ""
		m.updatePreview()
		return m, nil

	case tea.KeyMsg:
		m.ClearMessage()
		return m, m.handleKey(msg)
	}
	return m, nil
}

func (m *BrowserModel) handleKey(msg tea.KeyMsg) tea.Cmd {
	node := m.Selected()

	switch {
	case key.Matches(msg, BrowserKeys.Quit):
		return tea.Quit

	case key.Matches(msg, BrowserKeys.Up):
		m.pager.CursorUp()

	case key.Matches(msg, BrowserKeys.Down):
		m.pager.CursorDown()

	case key.Matches(msg, BrowserKeys.Left):
		if node == nil {
			return nil
		}
		if node.IsFolder() && m.expanded[node.ID()] {
			delete(m.expanded, node.ID())
			m.refreshRows()
		} else if !node.IsInRoot() {
			m.SelectID(node.Parent())
		}

	case key.Matches(msg, BrowserKeys.Right), key.Matches(msg, BrowserKeys.Enter):
		if node == nil {
			return nil
		}
		if node.IsNote() {
			m.showPreview = true
			break
		}
		if !m.expanded[node.ID()] {
			m.expanded[node.ID()] = true
			m.refreshRows()
		} else if key.Matches(msg, BrowserKeys.Enter) {
			delete(m.expanded, node.ID())
			m.refreshRows()
		}

	case key.Matches(msg, BrowserKeys.Preview):
		m.showPreview = !m.showPreview

	case key.Matches(msg, BrowserKeys.Edit):
		if node != nil && node.IsNote() {
			id := node.ID()
			return func() tea.Msg { return EditNoteMsg{ID: id} }
		}

	case key.Matches(msg, BrowserKeys.Copy):
		if node != nil && node.IsNote() {
			id := node.ID()
			return func() tea.Msg { return CopyNoteMsg{ID: id} }
		}

	case key.Matches(msg, BrowserKeys.Refresh):
		return func() tea.Msg { return RefreshMsg{} }

	case key.Matches(msg, BrowserKeys.Help):
		return func() tea.Msg { return SwitchToHelpMsg{} }
	}

	m.updatePreview()
	return nil
}

// updatePreview re-renders the preview when the selected note changed
func (m *BrowserModel) updatePreview() {
	node := m.Selected()
	if node == nil || !node.IsNote() {
		m.previewKey = ""
		m.preview.SetContent("")
		return
	}
	previewKey := string(node.ID()) + node.Label() + node.EncodedContent()
	if previewKey == m.previewKey {
		return
	}
	m.previewKey = previewKey
	m.preview.SetContent(m.renderPreview(node))
	m.preview.GotoTop()
}

func (m *BrowserModel) renderPreview(node *domain.Node) string {
	if err := m.unreadable(node.ID()); err != nil {
		return styles.NodeUnreadable.Render(err.Error())
	}
	text, err := domain.Decode(node.EncodedContent())
	if err != nil {
		return styles.NodeUnreadable.Render(err.Error())
	}
	if m.renderer == nil {
		return text
	}
	out, err := m.renderer.Render(node.Label(), text)
	if err != nil {
		return text
	}
	return out
}

// View renders the browser
func (m *BrowserModel) View() string {
	var tree strings.Builder
	if len(m.rows) == 0 {
		tree.WriteString(styles.MutedText.Render("No notes yet. Add one with `syncednotes add-note`."))
	}
	start, end := m.pager.VisibleRange()
	for i := start; i < end; i++ {
		tree.WriteString(m.renderRow(m.rows[i], i == m.pager.Cursor()))
		tree.WriteString("\n")
	}

	body := tree.String()
	if m.showPreview && m.previewKey != "" {
		left := lipgloss.NewStyle().Width(max(m.Width/2-4, 20)).Render(body)
		body = lipgloss.JoinHorizontal(lipgloss.Top, left, styles.PreviewPane.Render(m.preview.View()))
	}

	status := fmt.Sprintf("%d nodes", m.tree.Len())
	if n := m.Selected(); n != nil {
		status = strings.Join(m.tree.Path(n.ID()), " / ")
	}

	return NewViewBuilder().
		Title("Synced Notes").
		Line(styles.StatusBar.Render(status)).
		Line("").
		Raw(body).
		Message(m.Message, m.MessageErr).
		Help(BrowserKeys.Up, BrowserKeys.Down, BrowserKeys.Right, BrowserKeys.Edit,
			BrowserKeys.Copy, BrowserKeys.Refresh, BrowserKeys.Help, BrowserKeys.Quit).
		String()
}

func (m *BrowserModel) renderRow(r Row, selected bool) string {
	indent := strings.Repeat("  ", r.Depth)
	vs := r.Node.ViewState()

	prefix := styles.TreeLeaf
	if vs.Collapsible {
		prefix = styles.TreeCollapsed
		if r.Expanded {
			prefix = styles.TreeExpanded
		}
	}

	text := styles.Icon(vs.Icon) + r.Node.Label()
	var style lipgloss.Style
	switch {
	case selected:
		style = styles.NodeSelected
	case r.Node.IsFolder():
		style = styles.NodeFolder
	case m.unreadable(r.Node.ID()) != nil:
		style = styles.NodeUnreadable
	default:
		style = styles.NodeNote
	}

	return fmt.Sprintf("%s%s%s", indent, styles.TreeBranch.Render(prefix), style.Render(text))
}

// Messages emitted by the browser
type EditNoteMsg struct {
	ID domain.NodeID
}

type CopyNoteMsg struct {
	ID domain.NodeID
}

type RefreshMsg struct{}

type SwitchToHelpMsg struct{}

type SwitchToBrowserMsg struct{}
