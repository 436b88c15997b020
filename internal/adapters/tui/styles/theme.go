package styles

import "github.com/charmbracelet/lipgloss"

var (
	// Colors
	Primary   = lipgloss.Color("#7C3AED") // Purple
	Secondary = lipgloss.Color("#10B981") // Green
	Muted     = lipgloss.Color("#6B7280") // Gray
	Faint     = lipgloss.Color("#374151")
	Warning   = lipgloss.Color("#F59E0B") // Amber
	Error     = lipgloss.Color("#EF4444") // Red
	White     = lipgloss.Color("#FFFFFF")
	Black     = lipgloss.Color("#000000")
	Folder    = lipgloss.Color("#60A5FA") // Blue

	// Base styles
	App = lipgloss.NewStyle().
		Padding(0, 1)

	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary)

	Subtitle = lipgloss.NewStyle().
			Foreground(Muted).
			Italic(true)

	// Panes
	Pane = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Primary)

	// PaneInactive marks the tree while an article holds the focus
	PaneInactive = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Faint)

	// Tree node styles
	NodeFolder = lipgloss.NewStyle().
			Foreground(Folder).
			Bold(true)

	NodeFile = lipgloss.NewStyle()

	NodeActive = lipgloss.NewStyle().
			Background(Primary).
			Foreground(White).
			Bold(true)

	NodeCursor = lipgloss.NewStyle().
			Underline(true)

	NodeDimmed = lipgloss.NewStyle().
			Foreground(Muted)

	// Tree indicators
	TreeBranch    = lipgloss.NewStyle().Foreground(Muted)
	TreeExpanded  = "▼ "
	TreeCollapsed = "▶ "
	TreeLeaf      = "  "

	// Scrollbar
	ScrollTrack = lipgloss.NewStyle().Foreground(Faint)
	ScrollThumb = lipgloss.NewStyle().Foreground(Primary)

	// Content pane
	Heading = lipgloss.NewStyle().
		Bold(true).
		Foreground(Secondary)

	Meta = lipgloss.NewStyle().
		Foreground(Muted).
		Italic(true)

	Action = lipgloss.NewStyle().
		Foreground(Primary).
		Bold(true)

	// Status bar
	StatusBar = lipgloss.NewStyle().
			Background(lipgloss.Color("#1F2937")).
			Foreground(White).
			Padding(0, 1)

	// Input styles
	InputLabel = lipgloss.NewStyle().
			Foreground(Secondary).
			Bold(true)

	InputFocused = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Secondary).
			Padding(0, 1)

	// Help styles
	HelpKey = lipgloss.NewStyle().
		Foreground(Primary).
		Bold(true)

	HelpDesc = lipgloss.NewStyle().
			Foreground(Muted)

	HelpSeparator = lipgloss.NewStyle().
			Foreground(Muted).
			SetString(" • ")

	// Message styles
	Success = lipgloss.NewStyle().
		Foreground(Secondary).
		Bold(true)

	ErrorMsg = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)

	// Search
	SearchMatch = lipgloss.NewStyle().
			Background(Warning).
			Foreground(Black)

	// Muted text style (for using Muted color as a style)
	MutedText = lipgloss.NewStyle().
			Foreground(Muted)
)

// Marker returns the fold indicator of a tree row
func Marker(folder, collapsed bool) string {
	switch {
	case !folder:
		return TreeLeaf
	case collapsed:
		return TreeCollapsed
	default:
		return TreeExpanded
	}
}
