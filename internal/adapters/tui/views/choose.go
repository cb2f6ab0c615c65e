package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"syncednotes/internal/adapters/tui/styles"
	"syncednotes/internal/ports"
)

// ChooseKeyMap defines key bindings for the choose view
type ChooseKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Select   key.Binding
	Cancel   key.Binding
}

var ChooseKeys = ChooseKeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	PageUp: key.NewBinding(
		key.WithKeys("pgup", "ctrl+u"),
		key.WithHelp("pgup", "page up"),
	),
	PageDown: key.NewBinding(
		key.WithKeys("pgdown", "ctrl+d"),
		key.WithHelp("pgdn", "page down"),
	),
	Select: key.NewBinding(
		key.WithKeys("enter", "l", "right"),
		key.WithHelp("enter", "select"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("esc", "q", "ctrl+c"),
		key.WithHelp("esc", "cancel"),
	),
}

// ChosenMsg reports the outcome of a choose view. OK is false when the
// user cancelled.
type ChosenMsg struct {
	Index int
	OK    bool
}

// ChooseModel lets the user pick one row from a list
type ChooseModel struct {
	ViewState
	title   string
	choices []ports.Choice
	pager   *Paginator
}

// NewChooseModel creates a choose view over choices
func NewChooseModel(title string, choices []ports.Choice) *ChooseModel {
	pager := NewPaginator(10)
	pager.SetTotal(len(choices))
	return &ChooseModel{title: title, choices: choices, pager: pager}
}

// Cursor returns the highlighted row
func (m *ChooseModel) Cursor() int {
	return m.pager.Cursor()
}

// Init initializes the choose view
func (m *ChooseModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the choose view
func (m *ChooseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		// Title, help line and padding
		m.pager.SetPageSize(msg.Height - 8)
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, ChooseKeys.Cancel):
			return m, func() tea.Msg { return ChosenMsg{} }
		case key.Matches(msg, ChooseKeys.Up):
			m.pager.CursorUp()
		case key.Matches(msg, ChooseKeys.Down):
			m.pager.CursorDown()
		case key.Matches(msg, ChooseKeys.PageUp):
			m.pager.PageUp()
		case key.Matches(msg, ChooseKeys.PageDown):
			m.pager.PageDown()
		case key.Matches(msg, ChooseKeys.Select):
			if len(m.choices) == 0 {
				return m, nil
			}
			index := m.pager.Cursor()
			return m, func() tea.Msg { return ChosenMsg{Index: index, OK: true} }
		}
	}
	return m, nil
}

// View renders the choose view
func (m *ChooseModel) View() string {
	vb := NewViewBuilder().Title(m.title)

	start, end := m.pager.VisibleRange()
	for i := start; i < end; i++ {
		vb.Line(m.renderChoice(m.choices[i], i == m.pager.Cursor()))
	}
	if end < len(m.choices) {
		vb.Line(styles.MutedText.Render("  ..."))
	}

	return vb.Message(m.Message, m.MessageErr).
		Help(ChooseKeys.Up, ChooseKeys.Down, ChooseKeys.Select, ChooseKeys.Cancel).
		String()
}

func (m *ChooseModel) renderChoice(c ports.Choice, selected bool) string {
	var b strings.Builder
	label := c.Label
	switch {
	case selected:
		b.WriteString(styles.NodeSelected.Render("> " + label))
	case c.Sentinel:
		b.WriteString(styles.Sentinel.Render("  " + label))
	default:
		b.WriteString("  " + label)
	}
	if c.Description != "" {
		b.WriteString(styles.Description.Render(c.Description))
	}
	return b.String()
}
