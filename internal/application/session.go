package application

import (
	"github.com/sirupsen/logrus"

	"folio/internal/domain"
	"folio/internal/logging"
	"folio/internal/ports"
)

// SessionOptions configures a Session
type SessionOptions struct {
	Policy        DefaultsPolicy
	Frames        int
	ReducedMotion bool
	Logger        logrus.FieldLogger
}

// Effects reports what a session transition needs from the view
type Effects struct {
	Changed   bool        // the navigation state changed
	Fold      *Transition // an animation to drive with frames
	Scrolling bool        // the scroller needs Tick frames
}

// Session owns the whole navigation context of one tree instance: the
// collapse store, the fold animator, the navigator and the scroller.
// It is not safe for concurrent use.
type Session struct {
	Collapse *CollapseStore
	Folds    *Animator
	Nav      *Navigator
	Scroll   *Scroller

	reducedMotion bool
	log           logrus.FieldLogger
}

// NewSession restores collapse state for root from blob and starts
// navigation at the root.
func NewSession(root *domain.Node, blob ports.BlobStore, opts SessionOptions) *Session {
	log := opts.Logger
	if log == nil {
		log = logging.Discard()
	}

	store := NewCollapseStore(blob, log)
	store.Restore(root, opts.Policy)

	frames := opts.Frames
	if opts.ReducedMotion {
		frames = 0
	}

	return &Session{
		Collapse:      store,
		Folds:         NewAnimator(store, frames),
		Nav:           NewNavigator(root),
		Scroll:        NewScroller(nil, nil, nil, opts.ReducedMotion),
		reducedMotion: opts.ReducedMotion,
		log:           log,
	}
}

// AttachViewport connects the scroller to the view's scrollbar, row
// locator and native fallback.
func (s *Session) AttachViewport(bars ports.Scrollbar, rows ports.RowLocator, native ports.NativeScroller) {
	s.Scroll = NewScroller(bars, rows, native, s.reducedMotion)
}

// Root returns the current tree
func (s *Session) Root() *domain.Node {
	return s.Nav.Root()
}

// State returns the navigation state
func (s *Session) State() domain.NavigationState {
	return s.Nav.State()
}

// Rows returns the tree pane's display rows
func (s *Session) Rows() []DisplayRow {
	return BuildDisplay(s.Root(), s.Collapse, s.Folds)
}

// Present returns the presentation of the current state
func (s *Session) Present() Presentation {
	return Present(s.Nav.State())
}

// ClickRow handles a click on a tree row: the folder (if any) toggles,
// then the node is selected. Unknown ids are a no-op.
func (s *Session) ClickRow(id int) Effects {
	node, _ := domain.FindWithPath(s.Root(), id)
	if node == nil {
		return Effects{}
	}

	eff := s.toggle(node)
	eff.Changed = s.Nav.Select(id)
	return eff
}

// ToggleFold toggles a folder without changing the selection
func (s *Session) ToggleFold(id int) Effects {
	node, _ := domain.FindWithPath(s.Root(), id)
	if node == nil {
		return Effects{}
	}
	return s.toggle(node)
}

func (s *Session) toggle(node *domain.Node) Effects {
	var eff Effects
	t, ok := s.Folds.Toggle(node, NaturalHeight(node, s.Collapse, s.Folds))
	if ok {
		s.log.WithFields(logrus.Fields{
			"folder": node.ID,
			"state":  t.State.String(),
		}).Debug("fold toggled")
	}
	if ok && t.Animated {
		eff.Fold = &t
	}
	return eff
}

// Advance drives one animation frame
func (s *Session) Advance(t Transition) StepResult {
	return s.Folds.Advance(t.FolderID, t.Token)
}

// OpenFirstArticle selects the first file under the active folder,
// force-expands its ancestors and centres the containing folder.
func (s *Session) OpenFirstArticle() Effects {
	if _, ok := s.Nav.OpenFirstArticle(); !ok {
		return Effects{}
	}

	state := s.Nav.State()
	s.Folds.ForceExpand(state.Path)

	eff := Effects{Changed: true}
	if parent := state.Parent(); parent != nil {
		eff.Scrolling = s.Scroll.EnsureVisible(parent.ID, ports.ScrollOptions{
			Behavior: ports.BehaviorSmooth,
			Block:    ports.BlockCenter,
		})
	}
	return eff
}

// ConcentrateOnContainingFolder goes back from an article to its folder
func (s *Session) ConcentrateOnContainingFolder() Effects {
	return Effects{Changed: s.Nav.ConcentrateOnContainingFolder()}
}

// Reveal selects id, force-expands its ancestors and scrolls its row
// into view with minimal movement.
func (s *Session) Reveal(id int) Effects {
	if !s.Nav.Select(id) {
		return Effects{}
	}
	s.Folds.ForceExpand(s.Nav.State().Path)

	return Effects{
		Changed: true,
		Scrolling: s.Scroll.EnsureVisible(id, ports.ScrollOptions{
			Behavior: ports.BehaviorSmooth,
			Block:    ports.BlockNearest,
		}),
	}
}

// Reload swaps in a freshly loaded tree. Stale collapsed ids are
// dropped, folders that did not exist before get the default rule, and
// the active node is kept when it survived.
func (s *Session) Reload(root *domain.Node) {
	known := make(map[int]bool)
	domain.Walk(s.Root(), func(n *domain.Node, _ int) bool {
		known[n.ID] = true
		return true
	})

	s.Folds.Reset()
	s.Nav.Reset(root)

	for id := range domain.DefaultCollapsed(root) {
		if !known[id] {
			s.Collapse.Collapse(id)
		}
	}
	s.Collapse.Prune(root)
}
