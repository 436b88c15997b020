package application

import "folio/internal/ports"

// Scroller keeps a node's row visible inside the tree pane
type Scroller struct {
	bars          ports.Scrollbar
	rows          ports.RowLocator
	native        ports.NativeScroller
	reducedMotion bool

	target  int
	gliding bool
}

// NewScroller creates a scroller. bars and native may be nil; with no
// mounted scrollbar the request goes to native, or nowhere.
func NewScroller(bars ports.Scrollbar, rows ports.RowLocator, native ports.NativeScroller, reducedMotion bool) *Scroller {
	return &Scroller{
		bars:          bars,
		rows:          rows,
		native:        native,
		reducedMotion: reducedMotion,
	}
}

// SetReducedMotion forces instant scrolling when on
func (s *Scroller) SetReducedMotion(on bool) {
	s.reducedMotion = on
}

// EnsureVisible scrolls the row of id into view. It returns true when a
// smooth scroll was started and Tick must be driven until it is done.
func (s *Scroller) EnsureVisible(id int, opts ports.ScrollOptions) bool {
	if s.reducedMotion {
		opts.Behavior = ports.BehaviorInstant
	}

	s.recalculate()
	pane, ok := s.pane()
	if !ok {
		if s.native != nil {
			s.native.ScrollIntoView(id, opts)
		}
		return false
	}
	if s.rows == nil {
		return false
	}

	top, height, found := s.rows.RowBounds(id)
	if !found {
		return false
	}

	target, move := ScrollTarget(pane.Offset(), pane.ViewportHeight(), pane.ContentHeight(), top, height, opts.Block)
	if !move {
		return false
	}

	if opts.Behavior == ports.BehaviorInstant {
		s.gliding = false
		pane.SetOffset(target)
		return false
	}

	s.target = target
	s.gliding = true
	return true
}

// Tick advances a smooth scroll by one frame and reports whether more
// frames are needed.
func (s *Scroller) Tick() bool {
	if !s.gliding {
		return false
	}

	pane, ok := s.pane()
	if !ok {
		s.gliding = false
		return false
	}

	cur := pane.Offset()
	diff := s.target - cur
	if diff == 0 {
		s.gliding = false
		return false
	}

	step := diff / 3
	if step == 0 {
		step = diff
	}
	pane.SetOffset(cur + step)

	if pane.Offset() == cur || pane.Offset() == s.target {
		s.gliding = false
		return false
	}
	return true
}

// Gliding reports whether a smooth scroll is in progress
func (s *Scroller) Gliding() bool {
	return s.gliding
}

func (s *Scroller) pane() (ports.ScrollPane, bool) {
	if s.bars == nil {
		return nil, false
	}
	return s.bars.InstanceFor(TreeContainer)
}

func (s *Scroller) recalculate() {
	if s.bars != nil {
		s.bars.Recalculate(TreeContainer)
	}
}

// ScrollTarget computes the offset that brings rows [top, top+height)
// into a viewport of the given size. move is false when the row is
// already fully visible or the offset would not change.
func ScrollTarget(offset, viewport, content, top, height int, block ports.ScrollBlock) (target int, move bool) {
	if top >= offset && top+height <= offset+viewport {
		return offset, false
	}

	switch block {
	case ports.BlockCenter:
		target = top + height/2 - viewport/2
	default:
		if top < offset {
			target = top
		} else {
			target = top + height - viewport
		}
	}

	if maxOffset := content - viewport; target > maxOffset {
		target = maxOffset
	}
	if target < 0 {
		target = 0
	}
	return target, target != offset
}
