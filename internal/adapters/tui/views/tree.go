package views

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"folio/internal/adapters/tui/styles"
	"folio/internal/application"
	"folio/internal/ports"
)

// TreePane renders the session's display rows, one line per row, and
// answers row-position queries for the scroller. With the native
// scrollbar it also keeps its own offset.
type TreePane struct {
	session *application.Session
	cursor  int // id of the keyboard cursor row

	offset int // native offset, unused while a custom pane is mounted
	height int
}

// Ensure TreePane implements RowLocator and NativeScroller
var (
	_ ports.RowLocator     = (*TreePane)(nil)
	_ ports.NativeScroller = (*TreePane)(nil)
)

// NewTreePane creates a tree pane over session
func NewTreePane(session *application.Session) *TreePane {
	return &TreePane{session: session, cursor: session.State().Active.ID}
}

// Cursor returns the id under the keyboard cursor
func (t *TreePane) Cursor() int {
	return t.cursor
}

// SetCursor moves the keyboard cursor to id
func (t *TreePane) SetCursor(id int) {
	t.cursor = id
}

// MoveCursor moves the cursor by delta visible rows and returns the new id
func (t *TreePane) MoveCursor(delta int) int {
	rows := t.session.Rows()
	if len(rows) == 0 {
		return t.cursor
	}
	idx := max(0, t.indexOf(rows, t.cursor))
	idx = min(max(idx+delta, 0), len(rows)-1)
	t.cursor = rows[idx].Node.ID
	return t.cursor
}

// RowAt returns the id of the idx-th visible row
func (t *TreePane) RowAt(idx int) (int, bool) {
	rows := t.session.Rows()
	if idx < 0 || idx >= len(rows) {
		return 0, false
	}
	return rows[idx].Node.ID, true
}

// RowBounds returns the line span of id's row. Rows are one line high.
func (t *TreePane) RowBounds(id int) (top, height int, ok bool) {
	idx := t.indexOf(t.session.Rows(), id)
	if idx < 0 {
		return 0, 0, false
	}
	return idx, 1, true
}

// ScrollIntoView is the fallback scroll without a custom pane. It
// always jumps.
func (t *TreePane) ScrollIntoView(id int, opts ports.ScrollOptions) {
	rows := t.session.Rows()
	idx := t.indexOf(rows, id)
	if idx < 0 {
		return
	}
	if target, move := application.ScrollTarget(t.offset, t.height, len(rows), idx, 1, opts.Block); move {
		t.offset = target
	}
}

// SetHeight sets the number of visible lines for native scrolling
func (t *TreePane) SetHeight(h int) {
	t.height = h
}

// NativeView renders the visible window at the native offset
func (t *TreePane) NativeView(width int) string {
	lines := strings.Split(t.Render(width), "\n")
	t.offset = min(t.offset, max(0, len(lines)-t.height))
	end := min(t.offset+t.height, len(lines))
	return strings.Join(lines[t.offset:end], "\n")
}

// NativeOffset returns the native scroll offset
func (t *TreePane) NativeOffset() int {
	return t.offset
}

// ScrollBy moves the native offset by delta lines
func (t *TreePane) ScrollBy(delta int) {
	t.offset = max(0, t.offset+delta)
}

// Render draws every display row
func (t *TreePane) Render(width int) string {
	rows := t.session.Rows()
	active := t.session.State().Active
	inactive := !t.session.Present().TreeActive

	lines := make([]string, len(rows))
	for i, row := range rows {
		lines[i] = t.renderRow(row, width, row.Node == active, row.Node.ID == t.cursor, inactive)
	}
	return strings.Join(lines, "\n")
}

func (t *TreePane) renderRow(row application.DisplayRow, width int, active, cursor, inactive bool) string {
	indent := strings.Repeat("  ", row.Depth)
	marker := styles.Marker(row.Node.IsFolder(), row.Collapsed)

	room := width - runewidth.StringWidth(indent) - runewidth.StringWidth(marker)
	name := row.Node.Name
	if room > 0 {
		name = runewidth.Truncate(name, room, "…")
	}

	style := styles.NodeFile
	if row.Node.IsFolder() {
		style = styles.NodeFolder
	}
	switch {
	case active:
		style = styles.NodeActive
	case inactive:
		style = styles.NodeDimmed
	}
	if cursor {
		style = style.Inherit(styles.NodeCursor)
	}

	return indent + styles.TreeBranch.Render(marker) + style.Render(name)
}

func (t *TreePane) indexOf(rows []application.DisplayRow, id int) int {
	for i, row := range rows {
		if row.Node.ID == id {
			return i
		}
	}
	return -1
}
