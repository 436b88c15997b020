package domain

import (
	"slices"
	"testing"
)

func TestDefaultCollapsed(t *testing.T) {
	t.Run("three level chain", func(t *testing.T) {
		root := NewFolder(1, "root", NewFolder(2, "child", NewFile(3, "leaf")))

		got := DefaultCollapsed(root).IDs()
		if !slices.Equal(got, []int{2}) {
			t.Errorf("expected [2], got %v", got)
		}
	})

	t.Run("sample tree", func(t *testing.T) {
		got := DefaultCollapsed(sampleTree()).IDs()
		want := []int{2, 5, 6, 9}
		if !slices.Equal(got, want) {
			t.Errorf("expected %v, got %v", want, got)
		}
	})

	t.Run("empty folders are still eligible", func(t *testing.T) {
		root := NewFolder(1, "root", NewFolder(2, "empty"))
		if !DefaultCollapsed(root).Has(2) {
			t.Error("expected empty folder at depth 1 to be collapsed")
		}
	})
}

func TestCollapseSet_Idempotent(t *testing.T) {
	s := NewCollapseSet(4)

	if !s.Add(2) {
		t.Error("first add should change the set")
	}
	once := s.Clone()
	if s.Add(2) {
		t.Error("second add should not change the set")
	}
	if !s.Equal(once) {
		t.Errorf("expected %v, got %v", once.IDs(), s.IDs())
	}

	if !s.Remove(2) {
		t.Error("first remove should change the set")
	}
	once = s.Clone()
	if s.Remove(2) {
		t.Error("second remove should not change the set")
	}
	if !s.Equal(once) {
		t.Errorf("expected %v, got %v", once.IDs(), s.IDs())
	}
}

func TestCollapseSet_Prune(t *testing.T) {
	s := NewCollapseSet(2, 3, 5, 42)

	removed := s.Prune(sampleTree())
	if removed != 2 {
		t.Errorf("expected 2 ids pruned, got %d", removed)
	}
	if got := s.IDs(); !slices.Equal(got, []int{2, 5}) {
		t.Errorf("expected [2 5], got %v", got)
	}
}

func TestNavigationState_Breadcrumb(t *testing.T) {
	root := sampleTree()
	node, path := FindWithPath(root, 10)

	state := NavigationState{Phase: PhaseFor(node), Active: node, Path: path}
	if got := state.Breadcrumb(); got != "root/B/B-2/B-2-1" {
		t.Errorf("unexpected breadcrumb %q", got)
	}
	if state.Phase != PhaseFileArticle {
		t.Errorf("expected FileArticle, got %s", state.Phase)
	}
	if parent := state.Parent(); parent == nil || parent.ID != 9 {
		t.Errorf("expected parent 9, got %v", parent)
	}

	initial := InitialNavigation(root)
	if initial.Breadcrumb() != "root" || initial.Parent() != nil {
		t.Errorf("unexpected initial state %+v", initial)
	}
	if initial.Phase != PhaseFolderOverview {
		t.Errorf("expected FolderOverview, got %s", initial.Phase)
	}
}
