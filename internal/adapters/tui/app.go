package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"folio/internal/adapters/tui/views"
	"folio/internal/ports"
)

// ViewState represents the current view
type ViewState int

const (
	ViewBrowser ViewState = iota
	ViewSearch
	ViewHelp
)

// App is the main TUI application model
type App struct {
	editor ports.EditorOpener

	state   ViewState
	browser *views.BrowserModel
	search  *views.SearchModel
	help    *views.HelpModel

	width  int
	height int
}

// NewApp creates a new TUI application. editor may be nil.
func NewApp(browser *views.BrowserModel, editor ports.EditorOpener) *App {
	return &App{
		editor:  editor,
		state:   ViewBrowser,
		browser: browser,
		search:  views.NewSearchModel(),
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
		a.width = msg.Width
		a.height = msg.Height
		a.browser.SetSize(msg.Width, msg.Height)
		a.search.SetSize(msg.Width, msg.Height)
		a.help.SetSize(msg.Width, msg.Height)
		return a, nil

	// View switching messages
	case views.SwitchToSearchMsg:
		a.state = ViewSearch
		return a, a.search.Open(a.browser.Root())

	case views.SwitchToHelpMsg:
		a.state = ViewHelp
		return a, nil

	case views.SwitchToBrowserMsg:
		a.state = ViewBrowser
		return a, nil

	case views.SearchSelectMsg:
		a.state = ViewBrowser
		return a, a.browser.Reveal(msg.ID)

	case views.OpenEditorMsg:
		a.state = ViewBrowser
		return a, a.openEditor(msg.Path)

	case editorFinishedMsg:
		if msg.err != nil {
			a.browser.SetError(msg.err)
		}
		// the note may have a new title or body
		return a, a.browser.Reload()

	case tea.KeyMsg, tea.MouseMsg:
		return a, a.delegate(msg)
	}

	// Frames, reloads and errors belong to the browser whatever is shown
	_, cmd := a.browser.Update(msg)
	if a.state == ViewSearch {
		var searchCmd tea.Cmd
		_, searchCmd = a.search.Update(msg)
		cmd = tea.Batch(cmd, searchCmd)
	}
	return a, cmd
}

// delegate passes input to the current view
func (a *App) delegate(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch a.state {
	case ViewBrowser:
		_, cmd = a.browser.Update(msg)
	case ViewSearch:
		_, cmd = a.search.Update(msg)
	case ViewHelp:
		_, cmd = a.help.Update(msg)
	}
	return cmd
}

type editorFinishedMsg struct{ err error }

func (a *App) openEditor(path string) tea.Cmd {
	if a.editor == nil {
		return nil
	}

	cmd, err := a.editor.Command(path)
	if err != nil {
		return func() tea.Msg {
			return editorFinishedMsg{err: err}
		}
	}

	return tea.ExecProcess(cmd, func(err error) tea.Msg {
		return editorFinishedMsg{err: err}
	})
}

// View renders the current view
func (a *App) View() string {
	switch a.state {
	case ViewSearch:
		return a.search.View()
	case ViewHelp:
		return a.help.View()
	default:
		return a.browser.View()
	}
}
