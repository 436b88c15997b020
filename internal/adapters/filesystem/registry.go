package filesystem

import (
	"errors"
	"fmt"
	"sync"

	"github.com/goccy/go-json"

	"folio/internal/ports"
)

// RegistryKey is the blob-store slot holding the path to id assignments
const RegistryKey = "notebook_node_ids"

type registryFile struct {
	Next  int            `json:"next"`
	Paths map[string]int `json:"paths"`
}

// IDRegistry hands out node ids keyed by notebook-relative path, so a
// note keeps its id (and its collapse state) across reloads and restarts.
// Ids are never reused.
type IDRegistry struct {
	mu    sync.Mutex
	next  int
	paths map[string]int
	blob  ports.BlobStore
	dirty bool
}

// LoadIDRegistry reads the registry from blob. blob may be nil. A
// malformed payload yields a fresh registry together with the error.
func LoadIDRegistry(blob ports.BlobStore) (*IDRegistry, error) {
	r := &IDRegistry{
		next:  1,
		paths: make(map[string]int),
		blob:  blob,
	}
	if blob == nil {
		return r, nil
	}

	raw, err := blob.Get(RegistryKey)
	if errors.Is(err, ports.ErrBlobNotFound) {
		return r, nil
	}
	if err != nil {
		return r, fmt.Errorf("failed to read id registry: %w", err)
	}

	var f registryFile
	if err := json.Unmarshal(raw, &f); err != nil {
		return r, fmt.Errorf("ignoring malformed id registry: %w", err)
	}

	for path, id := range f.Paths {
		if id <= 0 {
			continue
		}
		r.paths[path] = id
		r.next = max(r.next, id+1)
	}
	r.next = max(r.next, f.Next)
	return r, nil
}

// ID returns the id of relPath, assigning the next free one if needed
func (r *IDRegistry) ID(relPath string) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	if id, ok := r.paths[relPath]; ok {
		return id
	}
	id := r.next
	r.next++
	r.paths[relPath] = id
	r.dirty = true
	return id
}

// Lookup returns the id of relPath without assigning one
func (r *IDRegistry) Lookup(relPath string) (int, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id, ok := r.paths[relPath]
	return id, ok
}

// Retain forgets every path not in seen
func (r *IDRegistry) Retain(seen map[string]bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for path := range r.paths {
		if !seen[path] {
			delete(r.paths, path)
			r.dirty = true
		}
	}
}

// Save persists the registry if it changed since the last save
func (r *IDRegistry) Save() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.dirty || r.blob == nil {
		return nil
	}

	raw, err := json.Marshal(registryFile{Next: r.next, Paths: r.paths})
	if err != nil {
		return fmt.Errorf("failed to encode id registry: %w", err)
	}
	if err := r.blob.Put(RegistryKey, raw); err != nil {
		return fmt.Errorf("failed to write id registry: %w", err)
	}
	r.dirty = false
	return nil
}
