package tui

import (
	"context"
	"errors"
	"io"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/sync/errgroup"

	"syncednotes/internal/adapters/editor"
	"syncednotes/internal/adapters/tui/views"
	"syncednotes/internal/application"
	"syncednotes/internal/application/commands"
	"syncednotes/internal/domain"
	"syncednotes/internal/ports"
)

// ViewState represents the current view
type ViewState int

const (
	ViewBrowser ViewState = iota
	ViewHelp
)

// Deps are the collaborators of the browser app. Editor and Clipboard may
// be nil, which disables editing and copying.
type Deps struct {
	Store     *application.NoteStore
	Editor    *editor.Runner
	Clipboard ports.Clipboard
	Previewer ports.Previewer
	TempDir   string
	Logger    *slog.Logger
}

// TreeChangedMsg carries a tree loaded or saved outside the app
type TreeChangedMsg struct {
	Tree *domain.Tree
}

type statusMsg struct {
	text string
	err  error
}

// App is the main TUI application model
type App struct {
	deps    Deps
	ctx     context.Context
	program *tea.Program

	state   ViewState
	browser *views.BrowserModel
	help    *views.HelpModel
}

// NewApp creates a new TUI application
func NewApp(ctx context.Context, deps Deps) *App {
	if deps.Logger == nil {
		deps.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	browser := views.NewBrowserModel(deps.Previewer, deps.Store.Unreadable)
	browser.SetTree(deps.Store.Snapshot())
	return &App{
		deps:    deps,
		ctx:     ctx,
		state:   ViewBrowser,
		browser: browser,
		help:    views.NewHelpModel(),
	}
}

// Init initializes the application
func (a *App) Init() tea.Cmd {
	return a.browser.Init()
}

// Update handles messages for the application
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.browser.Update(msg)
		a.help.Update(msg)
		return a, nil

	case TreeChangedMsg:
		a.browser.SetTree(msg.Tree)
		return a, nil

	case statusMsg:
		if msg.err != nil {
			a.deps.Logger.Error("browser action failed", slog.String("error", msg.err.Error()))
			a.browser.SetMessage(msg.err.Error(), true)
		} else {
			a.browser.SetMessage(msg.text, false)
		}
		a.browser.SetTree(a.deps.Store.Snapshot())
		return a, nil

	case views.SwitchToHelpMsg:
		a.state = ViewHelp
		return a, nil

	case views.SwitchToBrowserMsg:
		a.state = ViewBrowser
		return a, nil

	case views.RefreshMsg:
		return a, a.refresh

	case views.CopyNoteMsg:
		return a, a.copyNote(msg.ID)

	case views.EditNoteMsg:
		return a, a.editNote(msg.ID)
	}

	var cmd tea.Cmd
	switch a.state {
	case ViewHelp:
		_, cmd = a.help.Update(msg)
	default:
		_, cmd = a.browser.Update(msg)
	}
	return a, cmd
}

func (a *App) refresh() tea.Msg {
	res, err := commands.NewRefreshCommand(a.deps.Store).Execute(a.ctx)
	if err != nil {
		return statusMsg{err: err}
	}
	return statusMsg{text: res.Message}
}

func (a *App) copyNote(id domain.NodeID) tea.Cmd {
	return func() tea.Msg {
		cmd := commands.NewCopyNoteCommand(a.deps.Store, commands.Interaction{}, a.deps.Clipboard)
		cmd.Note = commands.At(id)
		res, err := cmd.Execute(a.ctx)
		if err != nil {
			return statusMsg{err: err}
		}
		return statusMsg{text: res.Message}
	}
}

func (a *App) editNote(id domain.NodeID) tea.Cmd {
	if a.deps.Editor == nil || a.program == nil {
		return func() tea.Msg { return statusMsg{err: errors.New("no editor configured")} }
	}
	return func() tea.Msg {
		cmd := commands.NewEditNoteCommand(a.deps.Store, commands.Interaction{}, terminalEditor{program: a.program, runner: a.deps.Editor})
		cmd.Note = commands.At(id)
		cmd.TempDir = a.deps.TempDir
		cmd.SessionOptions = []application.EditOption{application.WithEditLogger(a.deps.Logger)}
		res, err := cmd.Execute(a.ctx)
		if err != nil {
			return statusMsg{err: err}
		}
		return statusMsg{text: res.Message}
	}
}

// terminalEditor hands the terminal to the editor for the length of a session
type terminalEditor struct {
	program *tea.Program
	runner  *editor.Runner
}

func (e terminalEditor) Edit(ctx context.Context, session *application.EditSession) error {
	if err := e.program.ReleaseTerminal(); err != nil {
		return err
	}
	defer func() { _ = e.program.RestoreTerminal() }()
	return e.runner.Edit(ctx, session)
}

// View renders the current view
func (a *App) View() string {
	if a.state == ViewHelp {
		return a.help.View()
	}
	return a.browser.View()
}

// Run shows the browser until the user quits or ctx is done. When watcher
// is set the tree is reloaded whenever the settings change on disk.
func Run(ctx context.Context, deps Deps, watcher ports.SettingsWatcher) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	app := NewApp(ctx, deps)
	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(ctx))
	app.program = p

	g, gctx := errgroup.WithContext(ctx)
	if watcher != nil {
		g.Go(func() error {
			return watcher.Watch(gctx, func() {
				if err := deps.Store.Load(gctx); err != nil {
					p.Send(statusMsg{err: err})
					return
				}
				p.Send(TreeChangedMsg{Tree: deps.Store.Snapshot()})
			})
		})
	}
	g.Go(func() error {
		defer cancel()
		_, err := p.Run()
		if errors.Is(err, tea.ErrProgramKilled) {
			return nil
		}
		return err
	})
	return g.Wait()
}
