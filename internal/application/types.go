package application

import (
	"folio/internal/domain"
	"folio/internal/ports"
)

// Re-export domain types for use by adapters
type (
	Node            = domain.Node
	NodeType        = domain.NodeType
	Phase           = domain.Phase
	NavigationState = domain.NavigationState
	CollapseSet     = domain.CollapseSet
)

const (
	NodeTypeFolder      = domain.NodeTypeFolder
	NodeTypeFile        = domain.NodeTypeFile
	PhaseFolderOverview = domain.PhaseFolderOverview
	PhaseFileArticle    = domain.PhaseFileArticle
)

// Re-export scroll options so adapters only import application
type (
	ScrollOptions  = ports.ScrollOptions
	ScrollBehavior = ports.ScrollBehavior
	ScrollBlock    = ports.ScrollBlock
)

const (
	BehaviorSmooth  = ports.BehaviorSmooth
	BehaviorInstant = ports.BehaviorInstant
	BlockNearest    = ports.BlockNearest
	BlockCenter     = ports.BlockCenter
)

// TreeContainer is the scrollbar container name of the tree pane
const TreeContainer = "tree"

// ContentContainer is the scrollbar container name of the content pane
const ContentContainer = "content"
