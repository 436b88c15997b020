package views

import (
	"fmt"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"

	"folio/internal/adapters/tui/styles"
	"folio/internal/application"
	"folio/internal/domain"
	"folio/internal/logging"
	"folio/internal/ports"
)

// BrowserKeyMap defines key bindings for the browser view
type BrowserKeyMap struct {
	Up         key.Binding
	Down       key.Binding
	Toggle     key.Binding
	Collapse   key.Binding
	Expand     key.Binding
	OpenFirst  key.Binding
	Focus      key.Binding
	ScrollDown key.Binding
	ScrollUp   key.Binding
	Search     key.Binding
	Copy       key.Binding
	Edit       key.Binding
	Reload     key.Binding
	Help       key.Binding
	Quit       key.Binding
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
	Toggle: key.NewBinding(
		key.WithKeys("enter", " "),
		key.WithHelp("enter", "select"),
	),
	Collapse: key.NewBinding(
		key.WithKeys("h", "left"),
		key.WithHelp("h/←", "collapse"),
	),
	Expand: key.NewBinding(
		key.WithKeys("l", "right"),
		key.WithHelp("l/→", "expand"),
	),
	OpenFirst: key.NewBinding(
		key.WithKeys("o"),
		key.WithHelp("o", "open article"),
	),
	Focus: key.NewBinding(
		key.WithKeys("c", "esc"),
		key.WithHelp("c", "catalogue"),
	),
	ScrollDown: key.NewBinding(
		key.WithKeys("ctrl+d", "pgdown"),
		key.WithHelp("ctrl+d", "scroll down"),
	),
	ScrollUp: key.NewBinding(
		key.WithKeys("ctrl+u", "pgup"),
		key.WithHelp("ctrl+u", "scroll up"),
	),
	Search: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "jump"),
	),
	Copy: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "copy path"),
	),
	Edit: key.NewBinding(
		key.WithKeys("e"),
		key.WithHelp("e", "edit"),
	),
	Reload: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "reload"),
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

// Layout constants, in terminal cells
const (
	headerLines  = 2 // title line and a blank line
	footerLines  = 1
	minTreeWidth = 22
	maxTreeWidth = 50
)

// BrowserOptions configures a BrowserModel
type BrowserOptions struct {
	FrameInterval   time.Duration
	NativeScrollbar bool   // scroll the tree without a custom pane
	MarkdownStyle   string // glamour style
	Logger          logrus.FieldLogger
}

// BrowserModel is the two-pane notebook browser: the tree on the left,
// the active node's overview or article on the right
type BrowserModel struct {
	ViewState
	session  *application.Session
	source   ports.TreeSource
	bars     *Scrollbars
	tree     *TreePane
	markdown *Markdown
	interval time.Duration
	log      logrus.FieldLogger

	phase    domain.Phase
	shownID  int // node shown by the mounted content pane
	gliding  bool
	treeOut  int // outer width of the tree pane
	paneRows int // inner height of both panes
}

// NewBrowserModel creates a browser over session. source is read again
// on reload and may be nil.
func NewBrowserModel(session *application.Session, source ports.TreeSource, opts BrowserOptions) *BrowserModel {
	log := opts.Logger
	if log == nil {
		log = logging.Discard()
	}
	interval := opts.FrameInterval
	if interval <= 0 {
		interval = 16 * time.Millisecond
	}

	m := &BrowserModel{
		session:  session,
		source:   source,
		bars:     NewScrollbars(),
		markdown: NewMarkdown(opts.MarkdownStyle, log),
		interval: interval,
		log:      log,
	}
	m.tree = NewTreePane(session)

	m.bars.Register(application.TreeContainer, m.tree.Render)
	m.bars.Register(application.ContentContainer, func(width int) string {
		return renderContent(m.session.Present().Content, m.markdown, width)
	})
	if opts.NativeScrollbar {
		m.bars.Disable(application.TreeContainer)
	}
	m.bars.Mount(application.TreeContainer)
	m.bars.Mount(application.ContentContainer)

	state := session.State()
	m.phase = state.Phase
	m.shownID = state.Active.ID

	session.AttachViewport(m.bars, m.tree, m.tree)
	return m
}

// Init initializes the browser
func (m *BrowserModel) Init() tea.Cmd {
	return nil
}

// Root returns the tree being browsed
func (m *BrowserModel) Root() *domain.Node {
	return m.session.Root()
}

// Session returns the browser's session
func (m *BrowserModel) Session() *application.Session {
	return m.session
}

type foldFrameMsg struct {
	t application.Transition
}

type glideFrameMsg struct{}

type treeLoadedMsg struct {
	root *domain.Node
}

type errMsg struct {
	err error
}

// Update handles messages for the browser
func (m *BrowserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case foldFrameMsg:
		return m, m.advanceFold(msg.t)

	case glideFrameMsg:
		if m.session.Scroll.Tick() {
			return m, m.glideTick()
		}
		m.gliding = false
		return m, nil

	case NotebookChangedMsg:
		return m, m.Reload()

	case treeLoadedMsg:
		m.session.Reload(msg.root)
		if node, _ := domain.FindWithPath(msg.root, m.tree.Cursor()); node == nil {
			m.tree.SetCursor(m.session.State().Active.ID)
		}
		m.syncContent()
		m.bars.Recalculate(application.TreeContainer)
		return m, nil

	case errMsg:
		m.log.WithError(msg.err).Warn("browser error")
		m.SetError(msg.err)
		return m, nil

	case tea.MouseMsg:
		return m, m.handleMouse(msg)

	case tea.KeyMsg:
		m.ClearMessage()
		return m, m.handleKey(msg)
	}

	return m, nil
}

func (m *BrowserModel) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, BrowserKeys.Quit):
		return tea.Quit

	case key.Matches(msg, BrowserKeys.Up):
		m.tree.MoveCursor(-1)
		m.revealCursor()

	case key.Matches(msg, BrowserKeys.Down):
		m.tree.MoveCursor(1)
		m.revealCursor()

	case key.Matches(msg, BrowserKeys.Toggle):
		return m.apply(m.session.ClickRow(m.tree.Cursor()))

	case key.Matches(msg, BrowserKeys.Collapse):
		return m.collapseOrAscend()

	case key.Matches(msg, BrowserKeys.Expand):
		return m.expandOrDescend()

	case key.Matches(msg, BrowserKeys.OpenFirst):
		return m.apply(m.session.OpenFirstArticle())

	case key.Matches(msg, BrowserKeys.Focus):
		return m.apply(m.session.ConcentrateOnContainingFolder())

	case key.Matches(msg, BrowserKeys.ScrollDown):
		m.bars.ScrollBy(application.ContentContainer, max(1, m.paneRows/2))

	case key.Matches(msg, BrowserKeys.ScrollUp):
		m.bars.ScrollBy(application.ContentContainer, -max(1, m.paneRows/2))

	case key.Matches(msg, BrowserKeys.Search):
		return func() tea.Msg {
			return SwitchToSearchMsg{}
		}

	case key.Matches(msg, BrowserKeys.Copy):
		m.copyBreadcrumb()

	case key.Matches(msg, BrowserKeys.Edit):
		active := m.session.State().Active
		if active.Path == "" {
			m.SetMessage("Nothing to edit: this node has no file", true)
			return nil
		}
		return func() tea.Msg {
			return OpenEditorMsg{Path: active.Path}
		}

	case key.Matches(msg, BrowserKeys.Reload):
		return m.Reload()

	case key.Matches(msg, BrowserKeys.Help):
		return func() tea.Msg {
			return SwitchToHelpMsg{}
		}
	}
	return nil
}

// collapseOrAscend folds an open folder under the cursor, or moves the
// cursor to the parent folder
func (m *BrowserModel) collapseOrAscend() tea.Cmd {
	node, path := domain.FindWithPath(m.session.Root(), m.tree.Cursor())
	if node == nil {
		return nil
	}
	if node.HasChildren() && !m.session.Collapse.IsCollapsed(node.ID) {
		return m.apply(m.session.ToggleFold(node.ID))
	}
	if len(path) > 0 {
		m.tree.SetCursor(path[len(path)-1].ID)
		m.revealCursor()
	}
	return nil
}

// expandOrDescend opens a folded folder under the cursor, or moves into
// an open one
func (m *BrowserModel) expandOrDescend() tea.Cmd {
	node, _ := domain.FindWithPath(m.session.Root(), m.tree.Cursor())
	if node == nil || !node.HasChildren() {
		return nil
	}
	if m.session.Collapse.IsCollapsed(node.ID) {
		return m.apply(m.session.ToggleFold(node.ID))
	}
	m.tree.MoveCursor(1)
	m.revealCursor()
	return nil
}

func (m *BrowserModel) handleMouse(msg tea.MouseMsg) tea.Cmd {
	inTree := msg.X < 1+m.treeOut

	switch {
	case msg.Button == tea.MouseButtonWheelUp || msg.Button == tea.MouseButtonWheelDown:
		delta := 3
		if msg.Button == tea.MouseButtonWheelUp {
			delta = -3
		}
		if !inTree {
			m.bars.ScrollBy(application.ContentContainer, delta)
		} else if _, ok := m.bars.Pane(application.TreeContainer); ok {
			m.bars.ScrollBy(application.TreeContainer, delta)
		} else {
			m.tree.ScrollBy(delta)
		}
		return nil

	case msg.Button == tea.MouseButtonLeft && msg.Action == tea.MouseActionPress && inTree:
		line := msg.Y - headerLines - 1
		if line < 0 || line >= m.paneRows {
			return nil
		}
		id, ok := m.tree.RowAt(line + m.treeOffset())
		if !ok {
			return nil
		}
		m.tree.SetCursor(id)
		return m.apply(m.session.ClickRow(id))
	}
	return nil
}

// Reveal selects id, opens its ancestors and scrolls it into view
func (m *BrowserModel) Reveal(id int) tea.Cmd {
	return m.apply(m.session.Reveal(id))
}

// apply turns a session transition's effects into view updates and
// frame commands
func (m *BrowserModel) apply(eff application.Effects) tea.Cmd {
	if eff.Changed {
		m.tree.SetCursor(m.session.State().Active.ID)
		m.syncContent()
	}
	m.bars.Recalculate(application.TreeContainer)

	var cmds []tea.Cmd
	if eff.Fold != nil {
		cmds = append(cmds, m.foldTick(*eff.Fold))
	}
	if eff.Scrolling && !m.gliding {
		m.gliding = true
		cmds = append(cmds, m.glideTick())
	}
	return tea.Batch(cmds...)
}

// syncContent remounts the content pane when the phase changed, so a
// new layout starts at the top, and re-renders it otherwise
func (m *BrowserModel) syncContent() {
	state := m.session.State()
	_, mounted := m.bars.Pane(application.ContentContainer)

	switch {
	case state.Phase != m.phase || !mounted:
		m.bars.Unmount(application.ContentContainer)
		m.bars.Mount(application.ContentContainer)
	case state.Active.ID != m.shownID:
		m.bars.Recalculate(application.ContentContainer)
		m.bars.ScrollBy(application.ContentContainer, -m.contentOffset())
	default:
		m.bars.Recalculate(application.ContentContainer)
	}

	m.phase = state.Phase
	m.shownID = state.Active.ID
}

func (m *BrowserModel) advanceFold(t application.Transition) tea.Cmd {
	switch m.session.Advance(t) {
	case application.StepRunning:
		m.bars.Recalculate(application.TreeContainer)
		return m.foldTick(t)
	case application.StepDone:
		m.bars.Recalculate(application.TreeContainer)
		m.revealCursor()
	}
	return nil
}

func (m *BrowserModel) foldTick(t application.Transition) tea.Cmd {
	return tea.Tick(m.interval, func(time.Time) tea.Msg {
		return foldFrameMsg{t: t}
	})
}

func (m *BrowserModel) glideTick() tea.Cmd {
	return tea.Tick(m.interval, func(time.Time) tea.Msg {
		return glideFrameMsg{}
	})
}

// revealCursor keeps the keyboard cursor on screen without animation
func (m *BrowserModel) revealCursor() {
	m.bars.Recalculate(application.TreeContainer)
	m.session.Scroll.EnsureVisible(m.tree.Cursor(), ports.ScrollOptions{
		Behavior: ports.BehaviorInstant,
		Block:    ports.BlockNearest,
	})
	// a glide tick may still be in flight when nothing moved
	if !m.session.Scroll.Gliding() {
		m.gliding = false
	}
}

func (m *BrowserModel) copyBreadcrumb() {
	crumb := m.session.State().Breadcrumb()
	if err := clipboard.WriteAll(crumb); err != nil {
		m.log.WithError(err).Warn("clipboard unavailable")
		m.SetMessage("Clipboard unavailable: "+err.Error(), true)
		return
	}
	m.SetMessage(fmt.Sprintf("Copied %s", crumb), false)
}

// Reload reads the tree source again
func (m *BrowserModel) Reload() tea.Cmd {
	if m.source == nil {
		return nil
	}
	source := m.source
	return func() tea.Msg {
		root, err := source.Load()
		if err != nil {
			return errMsg{err}
		}
		if err := domain.Validate(root); err != nil {
			return errMsg{err}
		}
		return treeLoadedMsg{root}
	}
}

func (m *BrowserModel) treeOffset() int {
	if p, ok := m.bars.Pane(application.TreeContainer); ok {
		return p.Offset()
	}
	return m.tree.NativeOffset()
}

func (m *BrowserModel) contentOffset() int {
	if p, ok := m.bars.Pane(application.ContentContainer); ok {
		return p.Offset()
	}
	return 0
}

// SetSize updates the view dimensions and lays out the panes
func (m *BrowserModel) SetSize(width, height int) {
	m.ViewState.SetSize(width, height)

	avail := max(width-2, 0) // app padding
	m.treeOut = min(max(avail/3, minTreeWidth), maxTreeWidth)
	contentOut := max(avail-m.treeOut, 4)
	m.paneRows = max(height-headerLines-footerLines-2, 1)

	// one column of each pane is its scrollbar
	m.bars.Resize(application.TreeContainer, max(m.treeOut-3, 1), m.paneRows)
	m.bars.Resize(application.ContentContainer, max(contentOut-3, 1), m.paneRows)
	m.tree.SetHeight(m.paneRows)
}

// View renders the browser
func (m *BrowserModel) View() string {
	if m.Width == 0 {
		return "Loading..."
	}

	p := m.session.Present()

	header := styles.Title.Render("folio") + "  " + styles.MutedText.Render(p.Title)

	treeStyle := styles.Pane
	if !p.TreeActive {
		treeStyle = styles.PaneInactive
	}
	treeBody := m.tree.NativeView(max(m.treeOut-3, 1))
	if pane, ok := m.bars.Pane(application.TreeContainer); ok {
		treeBody = pane.View()
	}
	treeBox := treeStyle.
		Width(m.treeOut - 2).
		Height(m.paneRows).
		Render(treeBody)

	contentBody := ""
	if pane, ok := m.bars.Pane(application.ContentContainer); ok {
		contentBody = pane.View()
	}
	contentStyle := styles.Pane
	if p.TreeActive {
		contentStyle = styles.PaneInactive
	}
	contentBox := contentStyle.
		Width(max(m.Width-2-m.treeOut-2, 2)).
		Height(m.paneRows).
		Render(contentBody)

	body := lipgloss.JoinHorizontal(lipgloss.Top, treeBox, contentBox)

	footer := RenderHelpLine(
		BrowserKeys.Toggle, BrowserKeys.OpenFirst, BrowserKeys.Focus,
		BrowserKeys.Search, BrowserKeys.Help, BrowserKeys.Quit,
	)
	if m.Message != "" {
		footer = RenderMessage(m.Message, m.MessageErr)
	}

	return styles.App.Render(header + "\n\n" + body + "\n" + footer)
}

// Messages for view switching

// SwitchToSearchMsg opens the jump-to overlay
type SwitchToSearchMsg struct{}

// SwitchToHelpMsg opens the help view
type SwitchToHelpMsg struct{}

// SwitchToBrowserMsg returns to the browser
type SwitchToBrowserMsg struct{}

// OpenEditorMsg asks the app to open a note in the editor
type OpenEditorMsg struct {
	Path string
}

// NotebookChangedMsg reports that the tree source changed on disk
type NotebookChangedMsg struct{}
