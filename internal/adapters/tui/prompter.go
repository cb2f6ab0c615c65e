package tui

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"syncednotes/internal/adapters/tui/views"
	"syncednotes/internal/ports"
)

// Prompter implements ports.Prompter with one short bubbletea program per
// question
type Prompter struct {
	opts []tea.ProgramOption
}

// NewPrompter creates a prompter. opts are passed to every program, which
// lets tests swap the terminal for readers and writers.
func NewPrompter(opts ...tea.ProgramOption) *Prompter {
	return &Prompter{opts: opts}
}

// promptModel runs a view until it reports an answer
type promptModel struct {
	view   tea.Model
	answer tea.Msg
}

func (m *promptModel) Init() tea.Cmd {
	return m.view.Init()
}

func (m *promptModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg.(type) {
	case views.ChosenMsg, views.InputMsg, views.ConfirmedMsg:
		m.answer = msg
		return m, tea.Quit
	}
	var cmd tea.Cmd
	m.view, cmd = m.view.Update(msg)
	return m, cmd
}

func (m *promptModel) View() string {
	if m.answer != nil {
		return ""
	}
	return m.view.View()
}

func (p *Prompter) run(ctx context.Context, view tea.Model) (tea.Msg, error) {
	opts := append([]tea.ProgramOption{tea.WithContext(ctx)}, p.opts...)
	final, err := tea.NewProgram(&promptModel{view: view}, opts...).Run()
	if err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("failed to run prompt: %w", err)
	}
	return final.(*promptModel).answer, nil
}

// Choose shows choices and returns the picked index. ok is false when the
// user backed out.
func (p *Prompter) Choose(ctx context.Context, title string, choices []ports.Choice) (int, bool, error) {
	if len(choices) == 0 {
		return 0, false, nil
	}
	answer, err := p.run(ctx, views.NewChooseModel(title, choices))
	if err != nil {
		return 0, false, err
	}
	chosen, ok := answer.(views.ChosenMsg)
	if !ok || !chosen.OK {
		return 0, false, nil
	}
	return chosen.Index, true, nil
}

// Input asks for one line of text prefilled with initial
func (p *Prompter) Input(ctx context.Context, title, initial string) (string, bool, error) {
	answer, err := p.run(ctx, views.NewInputModel(title, initial))
	if err != nil {
		return "", false, err
	}
	input, ok := answer.(views.InputMsg)
	if !ok || !input.OK {
		return "", false, nil
	}
	return input.Value, true, nil
}

// Confirm asks a yes/no question. Backing out counts as no.
func (p *Prompter) Confirm(ctx context.Context, question string) (bool, error) {
	answer, err := p.run(ctx, views.NewConfirmationModel(question))
	if err != nil {
		return false, err
	}
	confirmed, ok := answer.(views.ConfirmedMsg)
	return ok && confirmed.Yes, nil
}
