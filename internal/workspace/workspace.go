package workspace

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"folio/internal/adapters/filesystem"
	"folio/internal/adapters/kvfile"
	"folio/internal/adapters/sqlite"
	"folio/internal/application/commands"
	"folio/internal/config"
	"folio/internal/logging"
	"folio/internal/ports"
)

// Workspace is an opened notebook or outline together with the state
// store that remembers its ids and collapse state
type Workspace struct {
	Env      commands.Env
	Notebook *filesystem.Notebook // nil when browsing an outline file
	blob     ports.BlobStore
}

// Open wires the tree source and state backend named by cfg
func Open(cfg config.Config, log logrus.FieldLogger) (*Workspace, error) {
	if log == nil {
		log = logging.Discard()
	}

	policy, err := cfg.Policy()
	if err != nil {
		return nil, err
	}

	key := cfg.Root
	if cfg.Outline != "" {
		key = cfg.Outline
	}

	blob, err := openBlob(cfg, key)
	if err != nil {
		return nil, err
	}

	w := &Workspace{blob: blob}
	w.Env = commands.Env{
		Blob:   blob,
		Policy: policy,
		Log:    log,
	}

	if cfg.Outline != "" {
		w.Env.Source = filesystem.NewOutline(cfg.Outline)
		log.WithField("outline", cfg.Outline).Debug("browsing outline file")
		return w, nil
	}

	registry, err := filesystem.LoadIDRegistry(blob)
	if err != nil {
		log.WithError(err).Warn("starting with a fresh id registry")
	}
	w.Notebook = filesystem.NewNotebook(cfg.Root, registry, log)
	w.Env.Source = w.Notebook
	return w, nil
}

func openBlob(cfg config.Config, key string) (ports.BlobStore, error) {
	switch cfg.StateBackend {
	case "sqlite":
		if cfg.StateDir == "" {
			return sqlite.Open(key)
		}
		return sqlite.OpenPath(filepath.Join(cfg.StateDir, stateName(key)+".db"), key)
	default:
		store, err := kvfile.New(filepath.Join(cfg.StatePath(), stateName(key)))
		if err != nil {
			return nil, fmt.Errorf("failed to open state store: %w", err)
		}
		return store, nil
	}
}

// stateName keeps the state of different notebooks apart
func stateName(key string) string {
	h := sha256.Sum256([]byte(key))
	return hex.EncodeToString(h[:8])
}

// Close releases the state store
func (w *Workspace) Close() error {
	if w.blob == nil {
		return nil
	}
	return w.blob.Close()
}
