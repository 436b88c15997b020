package application

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"folio/internal/domain"
)

type settled struct {
	id    int
	state FoldState
}

func newTestAnimator(frames int, collapsed ...int) (*Animator, *CollapseStore, *[]settled) {
	store := NewCollapseStore(nil, nil)
	for _, id := range collapsed {
		store.Collapse(id)
	}

	var log []settled
	anim := NewAnimator(store, frames)
	anim.OnSettle = func(id int, state FoldState) {
		log = append(log, settled{id, state})
	}
	return anim, store, &log
}

func runToEnd(t *testing.T, anim *Animator, tr Transition) int {
	t.Helper()
	frames := 0
	for {
		frames++
		switch anim.Advance(tr.FolderID, tr.Token) {
		case StepDone:
			return frames
		case StepStale:
			t.Fatalf("transition %d went stale after %d frames", tr.Token, frames)
		}
		if frames > 1000 {
			t.Fatal("transition never finished")
		}
	}
}

func TestAnimator_ExpandFromCollapsed(t *testing.T) {
	root := sampleTree()
	folderA, _ := domain.FindWithPath(root, 2)
	anim, store, log := newTestAnimator(4, 2)

	tr, ok := anim.Toggle(folderA, 2)
	require.True(t, ok)
	assert.True(t, tr.Animated)
	assert.Equal(t, FoldExpanding, tr.State)

	// intent is visible before the animation ends
	assert.False(t, store.IsCollapsed(2))
	h, pinned := anim.Height(2)
	assert.True(t, pinned)
	assert.Equal(t, 0, h)
	assert.True(t, anim.Pending(2))

	assert.Equal(t, 4, runToEnd(t, anim, tr))
	assert.False(t, anim.IsAnimating(2))
	assert.False(t, anim.Pending(2))
	assert.Equal(t, FoldExpanded, anim.State(2))
	assert.Equal(t, []settled{{2, FoldExpanded}}, *log)

	_, pinned = anim.Height(2)
	assert.False(t, pinned, "settled folders take their natural height")
}

func TestAnimator_CollapseFromExpanded(t *testing.T) {
	root := sampleTree()
	folderA, _ := domain.FindWithPath(root, 2)
	anim, store, log := newTestAnimator(3)

	tr, ok := anim.Toggle(folderA, 2)
	require.True(t, ok)
	assert.Equal(t, FoldCollapsing, tr.State)
	assert.True(t, store.IsCollapsed(2))

	h, _ := anim.Height(2)
	assert.Equal(t, 2, h, "collapse starts from the rendered height")

	runToEnd(t, anim, tr)
	assert.Equal(t, FoldCollapsed, anim.State(2))
	assert.Equal(t, []settled{{2, FoldCollapsed}}, *log)
}

func TestAnimator_HeightsAreMonotonic(t *testing.T) {
	root := sampleTree()
	folderB, _ := domain.FindWithPath(root, 5)
	anim, _, _ := newTestAnimator(10, 5)

	tr, _ := anim.Toggle(folderB, 6)
	prev := 0
	for anim.Advance(tr.FolderID, tr.Token) == StepRunning {
		h, pinned := anim.Height(5)
		require.True(t, pinned)
		assert.GreaterOrEqual(t, h, prev)
		assert.LessOrEqual(t, h, 6)
		prev = h
	}
}

func TestAnimator_ToggleMidAnimationSupersedes(t *testing.T) {
	root := sampleTree()
	folderB, _ := domain.FindWithPath(root, 5)
	anim, store, log := newTestAnimator(6, 5)

	first, _ := anim.Toggle(folderB, 6)
	require.Equal(t, StepRunning, anim.Advance(5, first.Token))
	require.Equal(t, StepRunning, anim.Advance(5, first.Token))
	mid, _ := anim.Height(5)
	require.Greater(t, mid, 0)

	second, ok := anim.Toggle(folderB, 6)
	require.True(t, ok)
	assert.NotEqual(t, first.Token, second.Token)
	assert.Equal(t, FoldCollapsing, second.State)
	assert.True(t, store.IsCollapsed(5))

	h, _ := anim.Height(5)
	assert.Equal(t, mid, h, "reversal starts from the current height")
	assert.Equal(t, 1, anim.PendingCount())

	// the first transition's frames are ignored from now on
	assert.Equal(t, StepStale, anim.Advance(5, first.Token))

	runToEnd(t, anim, second)
	assert.Equal(t, StepStale, anim.Advance(5, first.Token))
	assert.Equal(t, []settled{{5, FoldCollapsed}}, *log, "exactly one completion fires")
	assert.True(t, store.IsCollapsed(5))
	assert.Zero(t, anim.PendingCount())
}

func TestAnimator_IgnoresFilesAndEmptyFolders(t *testing.T) {
	root := sampleTree()
	file, _ := domain.FindWithPath(root, 3)
	empty, _ := domain.FindWithPath(root, 12)
	anim, store, log := newTestAnimator(4)

	_, ok := anim.Toggle(file, 0)
	assert.False(t, ok)
	_, ok = anim.Toggle(empty, 0)
	assert.False(t, ok)

	assert.Empty(t, store.IDs())
	assert.Zero(t, anim.PendingCount())
	assert.Empty(t, *log)
}

func TestAnimator_ZeroFramesSettlesImmediately(t *testing.T) {
	root := sampleTree()
	folderA, _ := domain.FindWithPath(root, 2)
	anim, store, log := newTestAnimator(0)

	tr, ok := anim.Toggle(folderA, 2)
	require.True(t, ok)
	assert.False(t, tr.Animated)
	assert.True(t, store.IsCollapsed(2))
	assert.False(t, anim.IsAnimating(2))
	assert.Equal(t, StepStale, anim.Advance(2, tr.Token))
	assert.Equal(t, []settled{{2, FoldCollapsed}}, *log)
}

func TestAnimator_ForceExpandCancelsAnimations(t *testing.T) {
	root := sampleTree()
	folderB, _ := domain.FindWithPath(root, 5)
	anim, store, log := newTestAnimator(5, 5, 9)

	tr, _ := anim.Toggle(folderB, 6)
	store.Collapse(5) // a collapse raced in

	_, path := domain.FindWithPath(root, 10)
	anim.ForceExpand(path)

	assert.False(t, store.IsCollapsed(1))
	assert.False(t, store.IsCollapsed(5))
	assert.False(t, store.IsCollapsed(9))
	assert.False(t, anim.IsAnimating(5))
	assert.Equal(t, StepStale, anim.Advance(5, tr.Token))
	assert.Empty(t, *log)
}

func TestAnimator_PendingMatchesAnimating(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		root := sampleTree()
		var folders []*domain.Node
		domain.Walk(root, func(n *domain.Node, _ int) bool {
			if n.HasChildren() {
				folders = append(folders, n)
			}
			return true
		})

		store := NewCollapseStore(nil, nil)
		anim := NewAnimator(store, rapid.IntRange(0, 5).Draw(t, "frames"))
		completions := make(map[int]int)
		anim.OnSettle = func(id int, _ FoldState) { completions[id]++ }

		toggles := make(map[int]int)
		var issued []Transition
		for range rapid.IntRange(1, 40).Draw(t, "steps") {
			if rapid.Bool().Draw(t, "toggle") || len(issued) == 0 {
				f := rapid.SampledFrom(folders).Draw(t, "folder")
				tr, ok := anim.Toggle(f, NaturalHeight(f, store, anim))
				if ok {
					toggles[f.ID]++
				}
				if ok && tr.Animated {
					issued = append(issued, tr)
				}
				continue
			}
			tr := issued[rapid.IntRange(0, len(issued)-1).Draw(t, "frame")]
			anim.Advance(tr.FolderID, tr.Token)
		}

		for _, f := range folders {
			if completions[f.ID] > toggles[f.ID] {
				t.Fatalf("folder %d settled %d times for %d toggles", f.ID, completions[f.ID], toggles[f.ID])
			}
			if anim.Pending(f.ID) != anim.IsAnimating(f.ID) {
				t.Fatalf("folder %d: pending=%v animating=%v", f.ID, anim.Pending(f.ID), anim.IsAnimating(f.ID))
			}
			want := FoldExpanded
			if store.IsCollapsed(f.ID) {
				want = FoldCollapsed
			}
			if !anim.IsAnimating(f.ID) && anim.State(f.ID) != want {
				t.Fatalf("folder %d settled in %v, store says %v", f.ID, anim.State(f.ID), want)
			}
		}
	})
}
