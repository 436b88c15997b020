package domain

import "slices"

// CollapseSet holds the ids of folders that are currently collapsed
type CollapseSet map[int]struct{}

// NewCollapseSet creates a set from the given ids
func NewCollapseSet(ids ...int) CollapseSet {
	s := make(CollapseSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

// Has reports whether id is in the set
func (s CollapseSet) Has(id int) bool {
	_, ok := s[id]
	return ok
}

// Add inserts id and reports whether the set changed
func (s CollapseSet) Add(id int) bool {
	if s.Has(id) {
		return false
	}
	s[id] = struct{}{}
	return true
}

// Remove deletes id and reports whether the set changed
func (s CollapseSet) Remove(id int) bool {
	if !s.Has(id) {
		return false
	}
	delete(s, id)
	return true
}

// IDs returns the ids in ascending order
func (s CollapseSet) IDs() []int {
	ids := make([]int, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Equal reports whether both sets hold the same ids
func (s CollapseSet) Equal(other CollapseSet) bool {
	if len(s) != len(other) {
		return false
	}
	for id := range s {
		if !other.Has(id) {
			return false
		}
	}
	return true
}

// Clone returns an independent copy
func (s CollapseSet) Clone() CollapseSet {
	c := make(CollapseSet, len(s))
	for id := range s {
		c[id] = struct{}{}
	}
	return c
}

// Prune drops ids that are not folders of root and reports how many were removed
func (s CollapseSet) Prune(root *Node) int {
	folders := make(map[int]bool)
	Walk(root, func(node *Node, _ int) bool {
		if node.IsFolder() {
			folders[node.ID] = true
		}
		return true
	})

	removed := 0
	for id := range s {
		if !folders[id] {
			delete(s, id)
			removed++
		}
	}
	return removed
}

// DefaultCollapsed applies the default rule: the root stays expanded and
// every folder at depth >= 1 starts collapsed.
func DefaultCollapsed(root *Node) CollapseSet {
	s := make(CollapseSet)
	Walk(root, func(node *Node, depth int) bool {
		if node.IsFolder() && depth >= 1 {
			s[node.ID] = struct{}{}
		}
		return true
	})
	return s
}
