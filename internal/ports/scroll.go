package ports

// ScrollBehavior controls whether a scroll jumps or glides
type ScrollBehavior int

const (
	BehaviorSmooth ScrollBehavior = iota
	BehaviorInstant
)

// ScrollBlock is the vertical alignment used when scrolling a row into view
type ScrollBlock int

const (
	BlockNearest ScrollBlock = iota
	BlockCenter
)

// ScrollOptions mirrors scroll-into-view semantics
type ScrollOptions struct {
	Behavior ScrollBehavior
	Block    ScrollBlock
}

// ScrollPane is a mounted custom-scrollbar instance wrapping a container.
// Offsets and heights are measured in rendered lines.
type ScrollPane interface {
	Offset() int
	SetOffset(offset int)
	ViewportHeight() int
	ContentHeight() int
}

// Scrollbar manages custom-scrollbar instances per named container
type Scrollbar interface {
	Mount(container string)
	Unmount(container string)
	Recalculate(container string)
	InstanceFor(container string) (ScrollPane, bool)
}

// RowLocator finds the rendered bounds of a node's row
type RowLocator interface {
	RowBounds(id int) (top, height int, ok bool)
}

// NativeScroller is the fallback used when no custom scrollbar wraps the pane
type NativeScroller interface {
	ScrollIntoView(id int, opts ScrollOptions)
}
