package application

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/goccy/go-json"
	"github.com/sirupsen/logrus"

	"folio/internal/domain"
	"folio/internal/logging"
	"folio/internal/ports"
)

// CollapsedIDsKey is the blob-store slot holding the collapsed folder ids
const CollapsedIDsKey = "tree_folder_collapsed_ids"

// DefaultsPolicy decides when the default collapse rule runs at startup
type DefaultsPolicy int

const (
	// DefaultsIfEmpty applies the defaults only when nothing valid was stored
	DefaultsIfEmpty DefaultsPolicy = iota
	// DefaultsAlways re-applies the defaults on every start
	DefaultsAlways
)

func (p DefaultsPolicy) String() string {
	if p == DefaultsAlways {
		return "always"
	}
	return "if-empty"
}

// ParseDefaultsPolicy parses "if-empty" or "always"
func ParseDefaultsPolicy(s string) (DefaultsPolicy, error) {
	switch s {
	case "", "if-empty":
		return DefaultsIfEmpty, nil
	case "always":
		return DefaultsAlways, nil
	default:
		return DefaultsIfEmpty, &ValidationError{
			Field:   "collapse_defaults",
			Message: fmt.Sprintf("expected if-empty or always, got: %s", s),
		}
	}
}

// EncodeCollapsedIDs serializes ids as a JSON array of integers
func EncodeCollapsedIDs(ids []int) ([]byte, error) {
	if ids == nil {
		ids = []int{}
	}
	return json.Marshal(ids)
}

// DecodeCollapsedIDs parses a JSON array of integers.
// Anything else wraps ErrMalformedStorage.
func DecodeCollapsedIDs(raw []byte) ([]int, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, fmt.Errorf("%w: expected a JSON array", ErrMalformedStorage)
	}

	var ids []int
	if err := json.Unmarshal(trimmed, &ids); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedStorage, err)
	}
	return ids, nil
}

// CollapseStore owns the CollapseSet of one session and persists it
// after every change. Storage failures never surface to callers: the
// in-memory set stays authoritative for the session.
type CollapseStore struct {
	set  domain.CollapseSet
	blob ports.BlobStore
	log  logrus.FieldLogger
}

// NewCollapseStore creates an empty store. blob may be nil, in which
// case the set lives in memory only.
func NewCollapseStore(blob ports.BlobStore, log logrus.FieldLogger) *CollapseStore {
	if log == nil {
		log = logging.Discard()
	}
	return &CollapseStore{
		set:  make(domain.CollapseSet),
		blob: blob,
		log:  log,
	}
}

// Load replaces the set with the persisted ids and reports whether a
// valid payload was found. Absent, unreadable and malformed storage
// all leave an empty set.
func (s *CollapseStore) Load() bool {
	ids, err := s.read()
	if err != nil {
		s.set = make(domain.CollapseSet)
		switch {
		case errors.Is(err, ports.ErrBlobNotFound):
			s.log.Debug("no persisted collapse state")
		case errors.Is(err, ErrMalformedStorage):
			s.log.WithError(err).Warn("ignoring malformed collapse state")
		default:
			s.log.WithError(err).Warn("collapse state unavailable, using memory only")
		}
		return false
	}

	s.set = domain.NewCollapseSet(ids...)
	return true
}

func (s *CollapseStore) read() ([]int, error) {
	if s.blob == nil {
		return nil, fmt.Errorf("%w: no blob store configured", ErrStorageUnavailable)
	}

	raw, err := s.blob.Get(CollapsedIDsKey)
	if errors.Is(err, ports.ErrBlobNotFound) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	return DecodeCollapsedIDs(raw)
}

// Restore loads persisted state for root, drops stale ids and applies
// the default rule according to policy.
func (s *CollapseStore) Restore(root *domain.Node, policy DefaultsPolicy) {
	loaded := s.Load()
	s.Prune(root)

	if !loaded || policy == DefaultsAlways {
		s.InitializeDefaults(root)
	}
}

// Prune drops ids that are not folders of root and returns how many
func (s *CollapseStore) Prune(root *domain.Node) int {
	n := s.set.Prune(root)
	if n > 0 {
		s.log.WithField("count", n).Debug("pruned stale collapsed ids")
		s.save()
	}
	return n
}

// InitializeDefaults collapses every folder at depth >= 1
func (s *CollapseStore) InitializeDefaults(root *domain.Node) {
	changed := false
	for id := range domain.DefaultCollapsed(root) {
		if s.set.Add(id) {
			changed = true
		}
	}
	if changed {
		s.save()
	}
}

// Reset discards the current set and applies the default rule
func (s *CollapseStore) Reset(root *domain.Node) {
	s.set = domain.DefaultCollapsed(root)
	s.save()
}

// IsCollapsed reports whether folder id is collapsed
func (s *CollapseStore) IsCollapsed(id int) bool {
	return s.set.Has(id)
}

// Collapse marks folder id as collapsed
func (s *CollapseStore) Collapse(id int) {
	if s.set.Add(id) {
		s.save()
	}
}

// Expand marks folder id as expanded
func (s *CollapseStore) Expand(id int) {
	if s.set.Remove(id) {
		s.save()
	}
}

// ExpandAll expands every id with a single save
func (s *CollapseStore) ExpandAll(ids []int) {
	changed := false
	for _, id := range ids {
		if s.set.Remove(id) {
			changed = true
		}
	}
	if changed {
		s.save()
	}
}

// IDs returns the collapsed ids in ascending order
func (s *CollapseStore) IDs() []int {
	return s.set.IDs()
}

// Snapshot returns a copy of the current set
func (s *CollapseStore) Snapshot() domain.CollapseSet {
	return s.set.Clone()
}

// Flush writes the current set and returns any storage error
func (s *CollapseStore) Flush() error {
	if s.blob == nil {
		return fmt.Errorf("%w: no blob store configured", ErrStorageUnavailable)
	}

	raw, err := EncodeCollapsedIDs(s.set.IDs())
	if err != nil {
		return fmt.Errorf("failed to encode collapse state: %w", err)
	}
	if err := s.blob.Put(CollapsedIDsKey, raw); err != nil {
		return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	return nil
}

func (s *CollapseStore) save() {
	if s.blob == nil {
		return
	}
	if err := s.Flush(); err != nil {
		s.log.WithError(err).Warn("failed to persist collapse state")
	}
}
