package application

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"folio/internal/ports"
)

func TestScrollTarget(t *testing.T) {
	tests := []struct {
		name                   string
		offset, viewport, size int
		top, height            int
		block                  ports.ScrollBlock
		want                   int
		move                   bool
	}{
		{name: "fully visible", offset: 0, viewport: 10, size: 40, top: 4, height: 1, block: ports.BlockCenter, want: 0},
		{name: "center below", offset: 0, viewport: 10, size: 40, top: 20, height: 1, block: ports.BlockCenter, want: 15, move: true},
		{name: "center above", offset: 30, viewport: 10, size: 40, top: 12, height: 2, block: ports.BlockCenter, want: 8, move: true},
		{name: "center clamps at top", offset: 20, viewport: 10, size: 40, top: 2, height: 1, block: ports.BlockCenter, want: 0, move: true},
		{name: "center clamps at bottom", offset: 0, viewport: 10, size: 40, top: 39, height: 1, block: ports.BlockCenter, want: 30, move: true},
		{name: "nearest below", offset: 0, viewport: 10, size: 40, top: 14, height: 1, block: ports.BlockNearest, want: 5, move: true},
		{name: "nearest above", offset: 20, viewport: 10, size: 40, top: 12, height: 1, block: ports.BlockNearest, want: 12, move: true},
		{name: "partially hidden", offset: 0, viewport: 10, size: 40, top: 9, height: 2, block: ports.BlockNearest, want: 1, move: true},
		{name: "content shorter than viewport", offset: 0, viewport: 10, size: 4, top: 12, height: 1, block: ports.BlockNearest, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, move := ScrollTarget(tt.offset, tt.viewport, tt.size, tt.top, tt.height, tt.block)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.move, move)
		})
	}
}

func TestScroller_InstantCenter(t *testing.T) {
	bars := newFakeBars()
	bars.panes[TreeContainer] = &fakePane{viewport: 10, content: 40}

	s := NewScroller(bars, rowTable{7: 20}, nil, false)
	gliding := s.EnsureVisible(7, ports.ScrollOptions{Behavior: ports.BehaviorInstant, Block: ports.BlockCenter})

	assert.False(t, gliding)
	assert.Equal(t, 15, bars.panes[TreeContainer].offset)
	assert.Equal(t, 1, bars.recalculated)
}

func TestScroller_SmoothGlidesToTarget(t *testing.T) {
	bars := newFakeBars()
	pane := &fakePane{viewport: 10, content: 40}
	bars.panes[TreeContainer] = pane

	s := NewScroller(bars, rowTable{7: 20}, nil, false)
	require.True(t, s.EnsureVisible(7, ports.ScrollOptions{Behavior: ports.BehaviorSmooth, Block: ports.BlockCenter}))
	assert.Equal(t, 0, pane.offset, "smooth scrolls move on Tick")

	prev := pane.offset
	frames := 0
	for s.Tick() {
		assert.Greater(t, pane.offset, prev)
		prev = pane.offset
		frames++
		require.Less(t, frames, 100)
	}
	assert.Equal(t, 15, pane.offset)
	assert.False(t, s.Gliding())
}

func TestScroller_ReducedMotionForcesInstant(t *testing.T) {
	bars := newFakeBars()
	pane := &fakePane{viewport: 10, content: 40}
	bars.panes[TreeContainer] = pane

	s := NewScroller(bars, rowTable{7: 20}, nil, true)
	assert.False(t, s.EnsureVisible(7, ports.ScrollOptions{Behavior: ports.BehaviorSmooth, Block: ports.BlockNearest}))
	assert.Equal(t, 11, pane.offset)
}

func TestScroller_FallsBackToNative(t *testing.T) {
	native := &fakeNative{}
	s := NewScroller(newFakeBars(), rowTable{7: 20}, native, false)

	opts := ports.ScrollOptions{Behavior: ports.BehaviorSmooth, Block: ports.BlockCenter}
	assert.False(t, s.EnsureVisible(7, opts))
	require.Len(t, native.calls, 1)
	assert.Equal(t, nativeCall{id: 7, opts: opts}, native.calls[0])
}

func TestScroller_NativeGetsReducedMotion(t *testing.T) {
	native := &fakeNative{}
	s := NewScroller(nil, nil, native, false)
	s.SetReducedMotion(true)

	s.EnsureVisible(3, ports.ScrollOptions{Behavior: ports.BehaviorSmooth, Block: ports.BlockNearest})
	require.Len(t, native.calls, 1)
	assert.Equal(t, ports.BehaviorInstant, native.calls[0].opts.Behavior)
}

func TestScroller_UnknownRowIsNoop(t *testing.T) {
	bars := newFakeBars()
	pane := &fakePane{viewport: 10, content: 40, offset: 4}
	bars.panes[TreeContainer] = pane

	s := NewScroller(bars, rowTable{}, nil, false)
	assert.False(t, s.EnsureVisible(7, ports.ScrollOptions{Block: ports.BlockCenter}))
	assert.Equal(t, 4, pane.offset)
	assert.False(t, s.Tick())
}

func TestScroller_TickStopsWhenPaneUnmounted(t *testing.T) {
	bars := newFakeBars()
	bars.panes[TreeContainer] = &fakePane{viewport: 10, content: 40}

	s := NewScroller(bars, rowTable{7: 30}, nil, false)
	require.True(t, s.EnsureVisible(7, ports.ScrollOptions{Behavior: ports.BehaviorSmooth}))

	bars.Unmount(TreeContainer)
	assert.False(t, s.Tick())
	assert.False(t, s.Gliding())
}
