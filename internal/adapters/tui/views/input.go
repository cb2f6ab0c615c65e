package views

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"syncednotes/internal/adapters/tui/styles"
)

// InputKeyMap defines key bindings for the input view
type InputKeyMap struct {
	Submit key.Binding
	Cancel key.Binding
}

var InputKeys = InputKeyMap{
	Submit: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "submit"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("esc", "ctrl+c"),
		key.WithHelp("esc", "cancel"),
	),
}

// InputMsg reports the outcome of an input view. OK is false when the user
// cancelled.
type InputMsg struct {
	Value string
	OK    bool
}

// InputModel asks for a single line of text
type InputModel struct {
	ViewState
	title string
	input textinput.Model
}

// NewInputModel creates an input view prefilled with initial
func NewInputModel(title, initial string) *InputModel {
	input := textinput.New()
	input.SetValue(initial)
	input.CursorEnd()
	input.Focus()
	return &InputModel{title: title, input: input}
}

// Value returns the current text
func (m *InputModel) Value() string {
	return m.input.Value()
}

// Init returns the blink command for the input
func (m *InputModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages for the input view
func (m *InputModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		m.input.Width = max(msg.Width-10, 10)
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, InputKeys.Cancel):
			return m, func() tea.Msg { return InputMsg{} }
		case key.Matches(msg, InputKeys.Submit):
			value := m.input.Value()
			return m, func() tea.Msg { return InputMsg{Value: value, OK: true} }
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View renders the input view
func (m *InputModel) View() string {
	return NewViewBuilder().
		Line(styles.InputLabel.Render(m.title)).
		Line(styles.InputFocused.Render(m.input.View())).
		Message(m.Message, m.MessageErr).
		Help(InputKeys.Submit, InputKeys.Cancel).
		String()
}
