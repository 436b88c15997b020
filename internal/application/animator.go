package application

import (
	"math"

	"folio/internal/domain"
)

// FoldState is the animation state of one folder
type FoldState int

const (
	FoldExpanded FoldState = iota
	FoldCollapsing
	FoldCollapsed
	FoldExpanding
)

func (s FoldState) String() string {
	switch s {
	case FoldExpanded:
		return "Expanded"
	case FoldCollapsing:
		return "Collapsing"
	case FoldCollapsed:
		return "Collapsed"
	case FoldExpanding:
		return "Expanding"
	default:
		return "Unknown"
	}
}

// StepResult tells the caller what a frame did
type StepResult int

const (
	// StepStale means the frame belongs to a superseded transition
	StepStale StepResult = iota
	StepRunning
	StepDone
)

// Transition identifies one fold/unfold animation. Frames carry the
// token back to Advance; only the latest token of a folder is honoured.
type Transition struct {
	FolderID int
	Token    uint64
	State    FoldState
	Animated bool
}

type fold struct {
	state  FoldState
	height int
	from   int
	to     int
	frame  int
	token  uint64
}

// Animator runs the height transitions of folder child blocks.
// Heights are in rendered rows. A folder only has a record while it is
// animating; settled folders derive their state from the CollapseStore.
type Animator struct {
	store   *CollapseStore
	frames  int
	folds   map[int]*fold
	pending map[int]uint64
	seq     uint64

	// OnSettle runs once when a transition completes
	OnSettle func(id int, state FoldState)
}

// NewAnimator creates an animator mutating store. frames <= 0 disables
// animation: every toggle settles immediately.
func NewAnimator(store *CollapseStore, frames int) *Animator {
	return &Animator{
		store:   store,
		frames:  frames,
		folds:   make(map[int]*fold),
		pending: make(map[int]uint64),
	}
}

// Frames returns the number of frames per transition
func (a *Animator) Frames() int {
	return a.frames
}

// Toggle starts the opposite transition for a folder. natural is the
// full height of the folder's child block. The CollapseSet changes
// immediately so queries reflect intent mid-animation. Files and empty
// folders are ignored and report false.
func (a *Animator) Toggle(node *domain.Node, natural int) (Transition, bool) {
	if !node.HasChildren() {
		return Transition{}, false
	}

	id := node.ID
	current := a.renderedHeight(id, natural)

	f, ok := a.folds[id]
	if !ok {
		f = &fold{}
		a.folds[id] = f
	}
	a.seq++
	f.token = a.seq
	f.frame = 0

	if a.store.IsCollapsed(id) {
		a.store.Expand(id)
		f.state = FoldExpanding
		f.from, f.to = 0, natural
	} else {
		a.store.Collapse(id)
		f.state = FoldCollapsing
		f.from, f.to = current, 0
	}
	f.height = f.from
	a.pending[id] = f.token

	t := Transition{FolderID: id, Token: f.token, State: f.state, Animated: true}
	if a.frames <= 0 {
		a.complete(id, f)
		t.Animated = false
	}
	return t, true
}

// Advance moves transition token of folder id forward by one frame
func (a *Animator) Advance(id int, token uint64) StepResult {
	f, ok := a.folds[id]
	if !ok || f.token != token || a.pending[id] != token {
		return StepStale
	}

	f.frame++
	if f.frame >= a.frames {
		a.complete(id, f)
		return StepDone
	}

	p := float64(f.frame) / float64(a.frames)
	eased := 1 - math.Pow(1-p, 3)
	f.height = f.from + int(math.Round(float64(f.to-f.from)*eased))
	return StepRunning
}

// complete settles a transition. It de-registers the pending completion
// first, so it can run at most once per token.
func (a *Animator) complete(id int, f *fold) {
	delete(a.pending, id)
	delete(a.folds, id)

	settled := FoldExpanded
	if f.state == FoldCollapsing {
		settled = FoldCollapsed
	}
	if a.OnSettle != nil {
		a.OnSettle(id, settled)
	}
}

// ForceExpand instantly expands every folder of path, in order,
// dropping any animation in flight on them.
func (a *Animator) ForceExpand(path []*domain.Node) {
	ids := make([]int, 0, len(path))
	for _, n := range path {
		if !n.IsFolder() {
			continue
		}
		delete(a.folds, n.ID)
		delete(a.pending, n.ID)
		ids = append(ids, n.ID)
	}
	a.store.ExpandAll(ids)
}

// Reset drops every animation in flight
func (a *Animator) Reset() {
	a.folds = make(map[int]*fold)
	a.pending = make(map[int]uint64)
}

// State returns the fold state of folder id
func (a *Animator) State(id int) FoldState {
	if f, ok := a.folds[id]; ok {
		return f.state
	}
	if a.store.IsCollapsed(id) {
		return FoldCollapsed
	}
	return FoldExpanded
}

// IsAnimating reports whether folder id is mid-transition
func (a *Animator) IsAnimating(id int) bool {
	_, ok := a.folds[id]
	return ok
}

// Height returns the pinned child-block height of folder id. pinned is
// false when the height is natural (or zero because collapsed).
func (a *Animator) Height(id int) (rows int, pinned bool) {
	if f, ok := a.folds[id]; ok {
		return f.height, true
	}
	return 0, false
}

// Pending reports whether a completion is registered for folder id
func (a *Animator) Pending(id int) bool {
	_, ok := a.pending[id]
	return ok
}

// PendingCount returns the number of registered completions
func (a *Animator) PendingCount() int {
	return len(a.pending)
}

func (a *Animator) renderedHeight(id, natural int) int {
	if f, ok := a.folds[id]; ok {
		return f.height
	}
	if a.store.IsCollapsed(id) {
		return 0
	}
	return natural
}
