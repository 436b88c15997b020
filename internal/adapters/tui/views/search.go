package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"folio/internal/adapters/tui/styles"
	"folio/internal/application/commands"
	"folio/internal/domain"
)

// maxResults is the number of results shown at once
const maxResults = 10

// SearchKeyMap defines key bindings for the search overlay
type SearchKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Cancel key.Binding
}

var SearchKeys = SearchKeyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "ctrl+p"),
		key.WithHelp("↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "ctrl+n"),
		key.WithHelp("↓", "down"),
	),
	Select: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "jump"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "cancel"),
	),
}

// SearchModel is the jump-to overlay: fuzzy search over node names
type SearchModel struct {
	ViewState
	root    *domain.Node
	input   textinput.Model
	results []commands.SearchResult
	cursor  int
}

// NewSearchModel creates a new search overlay
func NewSearchModel() *SearchModel {
	input := textinput.New()
	input.Placeholder = "Jump to..."
	input.CharLimit = 100

	return &SearchModel{input: input}
}

// Open resets the overlay to search root
func (m *SearchModel) Open(root *domain.Node) tea.Cmd {
	m.root = root
	m.input.SetValue("")
	m.results = nil
	m.cursor = 0
	return m.input.Focus()
}

// Results returns the current results, best first
func (m *SearchModel) Results() []commands.SearchResult {
	return m.results
}

// Update handles messages for the search overlay
func (m *SearchModel) Update(msg tea.Msg) (*SearchModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, SearchKeys.Cancel):
			m.input.Blur()
			return m, func() tea.Msg {
				return SwitchToBrowserMsg{}
			}

		case key.Matches(msg, SearchKeys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil

		case key.Matches(msg, SearchKeys.Down):
			if m.cursor < min(len(m.results), maxResults)-1 {
				m.cursor++
			}
			return m, nil

		case key.Matches(msg, SearchKeys.Select):
			if m.cursor < len(m.results) {
				id := m.results[m.cursor].Node.ID
				m.input.Blur()
				return m, func() tea.Msg {
					return SearchSelectMsg{ID: id}
				}
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.search()
	return m, cmd
}

// search ranks the tree against the input. Short queries clear the list.
func (m *SearchModel) search() {
	query := strings.TrimSpace(m.input.Value())
	if len(query) < 2 || m.root == nil {
		m.results = nil
		m.cursor = 0
		return
	}
	m.results = commands.Rank(m.root, query)
	m.cursor = min(m.cursor, max(0, min(len(m.results), maxResults)-1))
}

// SearchSelectMsg is sent when a search result is chosen
type SearchSelectMsg struct {
	ID int
}

// View renders the search overlay
func (m *SearchModel) View() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render("Jump to"))
	b.WriteString("\n\n")

	b.WriteString(styles.InputFocused.Render(m.input.View()))
	b.WriteString("\n\n")

	if len(m.results) == 0 {
		if len(strings.TrimSpace(m.input.Value())) >= 2 {
			b.WriteString(styles.MutedText.Render("No results found"))
		} else {
			b.WriteString(styles.MutedText.Render("Type at least 2 characters to search"))
		}
	} else {
		b.WriteString(styles.Subtitle.Render(fmt.Sprintf("%d results", len(m.results))))
		b.WriteString("\n\n")

		for i, r := range m.results[:min(len(m.results), maxResults)] {
			b.WriteString(m.renderResult(r, i == m.cursor))
			b.WriteString("\n")
		}

		if len(m.results) > maxResults {
			b.WriteString(styles.MutedText.Render(fmt.Sprintf("... and %d more", len(m.results)-maxResults)))
		}
	}

	b.WriteString("\n\n")
	b.WriteString(RenderHelpLine(SearchKeys.Up, SearchKeys.Down, SearchKeys.Select, SearchKeys.Cancel))

	return styles.App.Render(b.String())
}

func (m *SearchModel) renderResult(r commands.SearchResult, selected bool) string {
	marker := styles.Marker(r.Node.IsFolder(), false)
	if selected {
		return styles.NodeActive.Render(marker + r.Breadcrumb)
	}
	return marker + r.Breadcrumb
}
