package application

import "folio/internal/domain"

// Layout is the content-pane arrangement
type Layout int

const (
	LayoutOverview Layout = iota
	LayoutArticle
)

// Content describes what the content pane shows
type Content struct {
	Layout    Layout
	NodeID    int
	Heading   string
	Text      string // folder intro or file body
	CreatedAt string
	Action    string // label of the pane's bottom action
	Source    string // file path, if any
}

// Presentation is everything the view needs to redraw after a transition
type Presentation struct {
	Title      string
	TreeActive bool
	ActiveID   int
	Content    Content
}

const (
	ActionOpenArticle    = "Open article"
	ActionFocusCatalogue = "Focus catalogue"
	ActionNothingToOpen  = "No articles here"
)

// Present derives the view of a navigation state
func Present(state domain.NavigationState) Presentation {
	active := state.Active
	if active == nil {
		return Presentation{}
	}

	p := Presentation{
		Title:      state.Breadcrumb(),
		TreeActive: state.Phase == domain.PhaseFolderOverview,
		ActiveID:   active.ID,
		Content: Content{
			NodeID:    active.ID,
			Heading:   active.Name,
			CreatedAt: active.CreatedAt,
			Source:    active.Path,
		},
	}

	if state.Phase == domain.PhaseFileArticle {
		p.Content.Layout = LayoutArticle
		p.Content.Text = active.Body
		p.Content.Action = ActionFocusCatalogue
		return p
	}

	p.Content.Layout = LayoutOverview
	p.Content.Text = active.Intro
	p.Content.Action = ActionOpenArticle
	if domain.FindFirstLeaf(active, active.ID) == nil {
		p.Content.Action = ActionNothingToOpen
	}
	return p
}
