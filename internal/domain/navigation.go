package domain

import "strings"

// Phase selects the content-pane layout
type Phase int

const (
	PhaseFolderOverview Phase = iota
	PhaseFileArticle
)

func (p Phase) String() string {
	switch p {
	case PhaseFolderOverview:
		return "FolderOverview"
	case PhaseFileArticle:
		return "FileArticle"
	default:
		return "Unknown"
	}
}

// PhaseFor returns the phase implied by the active node's type
func PhaseFor(node *Node) Phase {
	if node.IsFile() {
		return PhaseFileArticle
	}
	return PhaseFolderOverview
}

// NavigationState is the selection shown by the content pane.
// Phase is FileArticle iff Active is a file, and Path is exactly the
// ancestor chain of Active (root first, Active excluded).
type NavigationState struct {
	Phase  Phase
	Active *Node
	Path   []*Node
}

// InitialNavigation returns the state with the root selected
func InitialNavigation(root *Node) NavigationState {
	return NavigationState{
		Phase:  PhaseFor(root),
		Active: root,
		Path:   []*Node{},
	}
}

// Parent returns the last ancestor of the active node, or nil for the root
func (s NavigationState) Parent() *Node {
	if len(s.Path) == 0 {
		return nil
	}
	return s.Path[len(s.Path)-1]
}

// PathIDs returns the ids of the ancestors, root first
func (s NavigationState) PathIDs() []int {
	ids := make([]int, len(s.Path))
	for i, n := range s.Path {
		ids[i] = n.ID
	}
	return ids
}

// Breadcrumb joins ancestor names and the active name with "/"
func (s NavigationState) Breadcrumb() string {
	if s.Active == nil {
		return ""
	}
	names := make([]string, 0, len(s.Path)+1)
	for _, n := range s.Path {
		names = append(names, n.Name)
	}
	names = append(names, s.Active.Name)
	return strings.Join(names, "/")
}
