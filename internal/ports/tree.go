package ports

import "folio/internal/domain"

// TreeSource loads the notebook tree
type TreeSource interface {
	// Load builds the whole tree. Repeated calls on an unchanged source
	// must yield the same ids.
	Load() (*domain.Node, error)
}
