package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"

	"folio/internal/adapters/tui/styles"
	"folio/internal/ports"
)

// Pane is a mounted scroll container: a viewport plus the function that
// renders its content
type Pane struct {
	vp     viewport.Model
	render func(width int) string
}

// Ensure Pane implements ScrollPane
var _ ports.ScrollPane = (*Pane)(nil)

// Offset returns the first visible line
func (p *Pane) Offset() int {
	return p.vp.YOffset
}

// SetOffset scrolls to offset, clamped to the content
func (p *Pane) SetOffset(offset int) {
	p.vp.SetYOffset(offset)
}

// ViewportHeight returns the number of visible lines
func (p *Pane) ViewportHeight() int {
	return p.vp.Height
}

// ContentHeight returns the number of content lines
func (p *Pane) ContentHeight() int {
	return p.vp.TotalLineCount()
}

// View renders the visible lines with a scrollbar column on the right
// when the content overflows
func (p *Pane) View() string {
	body := p.vp.View()
	if p.ContentHeight() <= p.vp.Height {
		return body
	}

	lines := strings.Split(body, "\n")
	bar := scrollbarColumn(p.vp.Height, p.ContentHeight(), p.vp.YOffset)
	for i := range lines {
		if i < len(bar) {
			lines[i] += bar[i]
		}
	}
	return strings.Join(lines, "\n")
}

// scrollbarColumn returns one cell per visible line: a thumb sized and
// placed in proportion to the visible window, on a track
func scrollbarColumn(height, content, offset int) []string {
	if height <= 0 || content <= 0 {
		return nil
	}

	thumb := max(1, height*height/content)
	maxOffset := max(1, content-height)
	top := (height - thumb) * offset / maxOffset

	col := make([]string, height)
	for i := range col {
		if i >= top && i < top+thumb {
			col[i] = styles.ScrollThumb.Render("┃")
		} else {
			col[i] = styles.ScrollTrack.Render("│")
		}
	}
	return col
}

// Scrollbars implements ports.Scrollbar over bubbles/viewport. A
// container has to be registered (its size and renderer) before it can
// be mounted.
type Scrollbars struct {
	panes    map[string]*Pane
	sizes    map[string][2]int
	renders  map[string]func(width int) string
	disabled map[string]bool
}

// Ensure Scrollbars implements Scrollbar
var _ ports.Scrollbar = (*Scrollbars)(nil)

// NewScrollbars creates an empty set of containers
func NewScrollbars() *Scrollbars {
	return &Scrollbars{
		panes:    make(map[string]*Pane),
		sizes:    make(map[string][2]int),
		renders:  make(map[string]func(int) string),
		disabled: make(map[string]bool),
	}
}

// Register declares a container and how to render its content
func (s *Scrollbars) Register(container string, render func(width int) string) {
	s.renders[container] = render
}

// Disable keeps a container from ever being mounted. The tree uses it
// when the native scrollbar is configured.
func (s *Scrollbars) Disable(container string) {
	s.disabled[container] = true
	s.Unmount(container)
}

// Resize sets a container's size, re-rendering it if mounted. The
// width excludes the scrollbar column.
func (s *Scrollbars) Resize(container string, width, height int) {
	s.sizes[container] = [2]int{width, height}
	if p, ok := s.panes[container]; ok {
		p.vp.Width = width
		p.vp.Height = height
		s.Recalculate(container)
	}
}

// Mount creates the container's viewport at offset 0
func (s *Scrollbars) Mount(container string) {
	render, ok := s.renders[container]
	if !ok || s.disabled[container] {
		return
	}
	size := s.sizes[container]
	p := &Pane{vp: viewport.New(size[0], size[1]), render: render}
	p.vp.MouseWheelEnabled = false
	s.panes[container] = p
	s.Recalculate(container)
}

// Unmount drops the container's viewport and its offset
func (s *Scrollbars) Unmount(container string) {
	delete(s.panes, container)
}

// Recalculate re-renders the container's content, keeping the offset
// within bounds
func (s *Scrollbars) Recalculate(container string) {
	p, ok := s.panes[container]
	if !ok {
		return
	}
	p.vp.SetContent(p.render(p.vp.Width))
	p.vp.SetYOffset(p.vp.YOffset)
}

// InstanceFor returns the mounted pane of container
func (s *Scrollbars) InstanceFor(container string) (ports.ScrollPane, bool) {
	p, ok := s.panes[container]
	if !ok {
		return nil, false
	}
	return p, true
}

// Pane returns the concrete mounted pane of container
func (s *Scrollbars) Pane(container string) (*Pane, bool) {
	p, ok := s.panes[container]
	return p, ok
}

// ScrollBy moves a mounted container by delta lines
func (s *Scrollbars) ScrollBy(container string, delta int) {
	if p, ok := s.panes[container]; ok {
		p.SetOffset(p.Offset() + delta)
	}
}
