package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"syncednotes/internal/adapters/tui/styles"
)

// ConfirmKeyMap defines key bindings for confirmation views
type ConfirmKeyMap struct {
	Confirm key.Binding
	Cancel  key.Binding
}

// DefaultConfirmKeys returns the default confirmation key bindings
var DefaultConfirmKeys = ConfirmKeyMap{
	Confirm: key.NewBinding(
		key.WithKeys("y", "Y"),
		key.WithHelp("y", "confirm"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("n", "N", "esc", "ctrl+c"),
		key.WithHelp("n/esc", "cancel"),
	),
}

// ConfirmedMsg reports the answer of a confirmation view
type ConfirmedMsg struct {
	Yes bool
}

// ConfirmationModel asks a yes/no question
type ConfirmationModel struct {
	ViewState
	Question string
	Keys     ConfirmKeyMap
}

// NewConfirmationModel creates a new confirmation model with default keys
func NewConfirmationModel(question string) *ConfirmationModel {
	return &ConfirmationModel{
		Question: question,
		Keys:     DefaultConfirmKeys,
	}
}

// Init initializes the confirmation view
func (m *ConfirmationModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the confirmation view
func (m *ConfirmationModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.Keys.Cancel):
			return m, func() tea.Msg { return ConfirmedMsg{Yes: false} }
		case key.Matches(msg, m.Keys.Confirm):
			return m, func() tea.Msg { return ConfirmedMsg{Yes: true} }
		}
	}
	return m, nil
}

// View renders the confirmation view
func (m *ConfirmationModel) View() string {
	return NewViewBuilder().Line(RenderConfirmPrompt(m.Question)).String()
}

// RenderConfirmPrompt renders the standard confirmation prompt
func RenderConfirmPrompt(question string) string {
	var b strings.Builder
	b.WriteString(question)
	b.WriteString(" ")
	b.WriteString(styles.HelpKey.Render("y"))
	b.WriteString(styles.HelpDesc.Render(" to confirm, "))
	b.WriteString(styles.HelpKey.Render("n"))
	b.WriteString(styles.HelpDesc.Render(" to cancel"))
	return b.String()
}
