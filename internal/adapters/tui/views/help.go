package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"folio/internal/adapters/tui/styles"
)

// HelpKeyMap defines key bindings for the help view
type HelpKeyMap struct {
	Close key.Binding
}

var HelpKeys = HelpKeyMap{
	Close: key.NewBinding(
		key.WithKeys("esc", "q", "?"),
		key.WithHelp("esc/q/?", "close"),
	),
}

// HelpModel is the model for the help view
type HelpModel struct {
	ViewState
}

// NewHelpModel creates a new help view model
func NewHelpModel() *HelpModel {
	return &HelpModel{}
}

// Init initializes the help view
func (m *HelpModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the help view
func (m *HelpModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, HelpKeys.Close) {
			return m, func() tea.Msg {
				return SwitchToBrowserMsg{}
			}
		}
	}

	return m, nil
}

// View renders the help view
func (m *HelpModel) View() string {
	v := NewViewBuilder().
		Title("Folio Help").
		Subtitle("Notebook browser")

	v.Raw(styles.InputLabel.Render("Tree")).BlankLine().
		Raw(helpLine("j / k / ↑ / ↓", "Move the cursor")).
		Raw(helpLine("enter / space / click", "Toggle folder and select")).
		Raw(helpLine("h / ←", "Collapse folder / go to parent")).
		Raw(helpLine("l / →", "Expand folder")).
		BlankLine()

	v.Raw(styles.InputLabel.Render("Content")).BlankLine().
		Raw(helpLine("o", "Open the first article of the folder")).
		Raw(helpLine("c / esc", "Back to the containing folder")).
		Raw(helpLine("ctrl+d / ctrl+u", "Scroll the content pane")).
		Raw(helpLine("e", "Edit the active note in $EDITOR")).
		Raw(helpLine("y", "Copy the breadcrumb")).
		BlankLine()

	v.Raw(styles.InputLabel.Render("General")).BlankLine().
		Raw(helpLine("/", "Jump to a node")).
		Raw(helpLine("r", "Reload the notebook")).
		Raw(helpLine("?", "Toggle help")).
		Raw(helpLine("q / ctrl+c", "Quit")).
		BlankLine()

	v.Help(HelpKeys.Close)
	return v.String()
}

func helpLine(key, desc string) string {
	return "  " + styles.HelpKey.Render(padRight(key, 24)) + styles.HelpDesc.Render(desc) + "\n"
}

func padRight(s string, length int) string {
	w := len([]rune(s))
	if w >= length {
		return s
	}
	return s + strings.Repeat(" ", length-w)
}
