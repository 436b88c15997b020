package commands

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"folio/internal/application"
	"folio/internal/domain"
	"folio/internal/logging"
	"folio/internal/ports"
)

// Env bundles the ports every command runs against
type Env struct {
	Source ports.TreeSource
	Blob   ports.BlobStore
	Policy application.DefaultsPolicy
	Log    logrus.FieldLogger
}

func (e Env) logger() logrus.FieldLogger {
	if e.Log == nil {
		return logging.Discard()
	}
	return e.Log
}

// LoadTree loads and validates the tree
func (e Env) LoadTree() (*domain.Node, error) {
	if e.Source == nil {
		return nil, fmt.Errorf("no tree source configured")
	}

	root, err := e.Source.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load tree: %w", err)
	}
	if err := domain.Validate(root); err != nil {
		return nil, err
	}
	return root, nil
}

// Restore returns the collapse store of root with persisted state applied
func (e Env) Restore(root *domain.Node) *application.CollapseStore {
	store := application.NewCollapseStore(e.Blob, e.logger())
	store.Restore(root, e.Policy)
	return store
}
