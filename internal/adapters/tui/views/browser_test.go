package views

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"folio/internal/application"
	"folio/internal/domain"
)

// testTree is
//
//	root(1)
//	  A(2): A-1(3)
//	  B(4): B-1(5): B-1-1(6)
//	  C(7)
func testTree() *domain.Node {
	return domain.NewFolder(1, "root",
		domain.NewFolder(2, "A",
			domain.NewFile(3, "A-1"),
		),
		domain.NewFolder(4, "B",
			domain.NewFolder(5, "B-1",
				domain.NewFile(6, "B-1-1"),
			),
		),
		domain.NewFile(7, "C"),
	)
}

type staticSource struct{ root *domain.Node }

func (s staticSource) Load() (*domain.Node, error) { return s.root, nil }

func newTestBrowser(t *testing.T, root *domain.Node, native bool) *BrowserModel {
	t.Helper()
	session := application.NewSession(root, nil, application.SessionOptions{Frames: 3})
	m := NewBrowserModel(session, staticSource{root: root}, BrowserOptions{
		FrameInterval:   time.Millisecond,
		NativeScrollbar: native,
		MarkdownStyle:   "notty",
	})
	m.SetSize(80, 12)
	return m
}

func keyPress(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// drain runs cmd and every command it leads to, feeding messages back
// into m, until nothing is left
func drain(t *testing.T, m tea.Model, cmd tea.Cmd) []tea.Msg {
	t.Helper()
	var seen []tea.Msg
	queue := []tea.Cmd{cmd}
	for i := 0; len(queue) > 0; i++ {
		if i > 1000 {
			t.Fatal("frames never settled")
		}
		c := queue[0]
		queue = queue[1:]
		if c == nil {
			continue
		}
		msg := c()
		if batch, ok := msg.(tea.BatchMsg); ok {
			queue = append(queue, batch...)
			continue
		}
		seen = append(seen, msg)
		_, next := m.Update(msg)
		queue = append(queue, next)
	}
	return seen
}

func press(t *testing.T, m *BrowserModel, keys ...string) {
	t.Helper()
	for _, k := range keys {
		_, cmd := m.Update(keyPress(k))
		drain(t, m, cmd)
	}
}

func visibleIDs(m *BrowserModel) []int {
	var ids []int
	for _, row := range m.Session().Rows() {
		ids = append(ids, row.Node.ID)
	}
	return ids
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestBrowser_StartsCollapsed(t *testing.T) {
	m := newTestBrowser(t, testTree(), false)

	if got := visibleIDs(m); !equalInts(got, []int{1, 2, 4, 7}) {
		t.Errorf("visible rows = %v, want [1 2 4 7]", got)
	}
	if m.tree.Cursor() != 1 {
		t.Errorf("cursor = %d, want 1", m.tree.Cursor())
	}
}

func TestBrowser_EnterTogglesAndSelects(t *testing.T) {
	m := newTestBrowser(t, testTree(), false)

	press(t, m, "j", "enter")

	s := m.Session()
	if s.Collapse.IsCollapsed(2) {
		t.Error("folder A should be expanded")
	}
	if s.Folds.PendingCount() != 0 {
		t.Errorf("expected all frames to settle, %d pending", s.Folds.PendingCount())
	}
	if got := s.State().Active.ID; got != 2 {
		t.Errorf("active = %d, want 2", got)
	}
	if got := visibleIDs(m); !equalInts(got, []int{1, 2, 3, 4, 7}) {
		t.Errorf("visible rows = %v", got)
	}
}

func TestBrowser_OpenFirstArticleAndBack(t *testing.T) {
	m := newTestBrowser(t, testTree(), false)

	press(t, m, "j", "j", "enter", "o")

	s := m.Session()
	state := s.State()
	if state.Active.ID != 6 || state.Phase != domain.PhaseFileArticle {
		t.Fatalf("expected article 6, got %d in %s", state.Active.ID, state.Phase)
	}
	if s.Collapse.IsCollapsed(5) {
		t.Error("the path to the article should be expanded")
	}
	if m.tree.Cursor() != 6 {
		t.Errorf("cursor = %d, want 6", m.tree.Cursor())
	}
	if !strings.Contains(m.View(), "root/B/B-1/B-1-1") {
		t.Error("expected the breadcrumb in the header")
	}

	press(t, m, "c")
	state = s.State()
	if state.Active.ID != 5 || state.Phase != domain.PhaseFolderOverview {
		t.Errorf("expected folder 5 overview, got %d in %s", state.Active.ID, state.Phase)
	}
}

func TestBrowser_PhaseChangeRemountsContent(t *testing.T) {
	root := testTree()
	file, _ := domain.FindWithPath(root, 6)
	file.Body = strings.Repeat("line\n\n", 40)
	m := newTestBrowser(t, root, false)

	m.Reveal(6)
	m.bars.ScrollBy(application.ContentContainer, 10)
	if m.contentOffset() == 0 {
		t.Fatal("expected the article to scroll")
	}

	press(t, m, "c")
	if m.contentOffset() != 0 {
		t.Errorf("content offset = %d after the phase change, want 0", m.contentOffset())
	}
}

func TestBrowser_CollapseAndExpandKeys(t *testing.T) {
	m := newTestBrowser(t, testTree(), false)
	s := m.Session()

	press(t, m, "j", "l")
	if s.Collapse.IsCollapsed(2) {
		t.Error("l should expand A")
	}
	if s.State().Active.ID != 1 {
		t.Error("folding keys must not change the selection")
	}

	press(t, m, "l")
	if m.tree.Cursor() != 3 {
		t.Errorf("l on an open folder should move into it, cursor = %d", m.tree.Cursor())
	}

	press(t, m, "h")
	if m.tree.Cursor() != 2 {
		t.Errorf("h on a file should move to its folder, cursor = %d", m.tree.Cursor())
	}

	press(t, m, "h")
	if !s.Collapse.IsCollapsed(2) {
		t.Error("h should collapse A")
	}
}

func TestBrowser_MouseClick(t *testing.T) {
	m := newTestBrowser(t, testTree(), false)

	// second tree row
	_, cmd := m.Update(tea.MouseMsg{
		X:      3,
		Y:      headerLines + 1 + 1,
		Button: tea.MouseButtonLeft,
		Action: tea.MouseActionPress,
	})
	drain(t, m, cmd)

	if got := m.Session().State().Active.ID; got != 2 {
		t.Errorf("active = %d, want 2", got)
	}
	if m.Session().Collapse.IsCollapsed(2) {
		t.Error("clicking a folder toggles it")
	}
}

func TestBrowser_RevealScrollsNativeTree(t *testing.T) {
	var children []*domain.Node
	for i := range 20 {
		children = append(children, domain.NewFile(100+i, "note"))
	}
	root := domain.NewFolder(1, "root", children...)
	m := newTestBrowser(t, root, true)

	if _, ok := m.bars.InstanceFor(application.TreeContainer); ok {
		t.Fatal("native mode must not mount a tree pane")
	}

	m.Reveal(119)
	if m.tree.NativeOffset() == 0 {
		t.Error("expected the native offset to follow the revealed row")
	}
	if !strings.Contains(m.View(), "note") {
		t.Error("expected tree rows in the view")
	}
}

func TestBrowser_CursorMoveKeepsGlideChain(t *testing.T) {
	var children []*domain.Node
	for i := range 20 {
		children = append(children, domain.NewFile(100+i, "note"))
	}
	m := newTestBrowser(t, domain.NewFolder(1, "root", children...), false)

	glide := m.Reveal(119)
	if glide == nil || !m.session.Scroll.Gliding() {
		t.Fatal("expected a smooth scroll to start")
	}

	// the cursor row is already on screen, so the glide keeps going
	m.tree.SetCursor(100)
	press(t, m, "k")
	if !m.session.Scroll.Gliding() {
		t.Fatal("a cursor move with nothing to scroll must not stop the glide")
	}
	if !m.gliding {
		t.Error("the browser must still track the glide tick in flight")
	}

	if cmd := m.Reveal(118); cmd != nil {
		t.Error("a second glide chain was started")
	}

	msgs := drain(t, m, glide)
	if m.gliding || m.session.Scroll.Gliding() {
		t.Error("expected the glide to finish")
	}
	if len(msgs) == 0 {
		t.Error("expected glide frames")
	}
}

func TestBrowser_Reload(t *testing.T) {
	m := newTestBrowser(t, testTree(), false)
	press(t, m, "j", "j", "enter", "o")

	smaller := domain.NewFolder(1, "root",
		domain.NewFolder(2, "A", domain.NewFile(3, "A-1")),
		domain.NewFolder(8, "D", domain.NewFile(9, "D-1")),
	)
	m.source = staticSource{root: smaller}
	drain(t, m, m.Reload())

	s := m.Session()
	if s.State().Active.ID != 1 {
		t.Errorf("a removed active node falls back to the root, got %d", s.State().Active.ID)
	}
	if !s.Collapse.IsCollapsed(8) {
		t.Error("new folders get the default rule")
	}
	if m.tree.Cursor() != 1 {
		t.Errorf("cursor = %d, want 1", m.tree.Cursor())
	}
}

func TestBrowser_SearchKeySwitchesView(t *testing.T) {
	m := newTestBrowser(t, testTree(), false)

	_, cmd := m.Update(keyPress("/"))
	if cmd == nil {
		t.Fatal("expected a command")
	}
	if _, ok := cmd().(SwitchToSearchMsg); !ok {
		t.Error("expected SwitchToSearchMsg")
	}
}

func TestBrowser_EditWithoutFile(t *testing.T) {
	m := newTestBrowser(t, testTree(), false)

	_, cmd := m.Update(keyPress("e"))
	if cmd != nil {
		t.Error("expected no editor command for a node without a file")
	}
	if !m.MessageErr {
		t.Error("expected an error message")
	}
}

func TestBrowser_LoadErrorShowsInStatusLine(t *testing.T) {
	m := newTestBrowser(t, testTree(), false)

	m.Update(errMsg{err: errors.New("notebook vanished")})
	if m.Message != "notebook vanished" || !m.MessageErr {
		t.Errorf("message = %q (err=%t)", m.Message, m.MessageErr)
	}

	m.Update(keyPress("j"))
	if m.Message != "" {
		t.Error("a key press should bring the key help back")
	}

	m.SetError(nil)
	if m.MessageErr {
		t.Error("a nil error clears the status line")
	}
}
