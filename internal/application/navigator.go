package application

import "folio/internal/domain"

// Navigator is the navigation state machine of one tree. Every
// transition either replaces the whole state or leaves it untouched.
type Navigator struct {
	root  *domain.Node
	state domain.NavigationState
}

// NewNavigator starts in FolderOverview with the root active
func NewNavigator(root *domain.Node) *Navigator {
	return &Navigator{
		root:  root,
		state: domain.InitialNavigation(root),
	}
}

// Root returns the tree the navigator walks
func (n *Navigator) Root() *domain.Node {
	return n.root
}

// State returns a copy of the current state
func (n *Navigator) State() domain.NavigationState {
	s := n.state
	s.Path = append([]*domain.Node{}, n.state.Path...)
	return s
}

// Active returns the active node
func (n *Navigator) Active() *domain.Node {
	return n.state.Active
}

// Phase returns the current phase
func (n *Navigator) Phase() domain.Phase {
	return n.state.Phase
}

// Select makes targetID the active node. Unknown ids are a no-op.
func (n *Navigator) Select(targetID int) bool {
	node, path := domain.FindWithPath(n.root, targetID)
	if node == nil {
		return false
	}

	n.state = domain.NavigationState{
		Phase:  domain.PhaseFor(node),
		Active: node,
		Path:   path,
	}
	return true
}

// OpenFirstArticle selects the first file under the active folder and
// returns it. It is a no-op unless a folder is active and holds a file.
func (n *Navigator) OpenFirstArticle() (*domain.Node, bool) {
	if !n.state.Active.IsFolder() {
		return nil, false
	}

	leaf := domain.FindFirstLeaf(n.root, n.state.Active.ID)
	if leaf == nil {
		return nil, false
	}
	if !n.Select(leaf.ID) {
		return nil, false
	}
	return leaf, true
}

// ConcentrateOnContainingFolder selects the folder holding the active
// file. It is a no-op outside FileArticle or when the path is empty.
func (n *Navigator) ConcentrateOnContainingFolder() bool {
	if n.state.Phase != domain.PhaseFileArticle {
		return false
	}
	parent := n.state.Parent()
	if parent == nil {
		return false
	}
	return n.Select(parent.ID)
}

// Reset rebinds the navigator to a reloaded tree. The active id is kept
// when it still exists, otherwise the root becomes active.
func (n *Navigator) Reset(root *domain.Node) {
	activeID := 0
	if n.state.Active != nil {
		activeID = n.state.Active.ID
	}

	n.root = root
	if !n.Select(activeID) {
		n.state = domain.InitialNavigation(root)
	}
}
