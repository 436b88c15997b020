package views

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func typeQuery(m *SearchModel, query string) {
	for _, r := range query {
		m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func TestSearchModel_RanksAndSelects(t *testing.T) {
	m := NewSearchModel()
	m.Open(testTree())
	typeQuery(m, "b-1-1")

	results := m.Results()
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if results[0].Breadcrumb != "root/B/B-1/B-1-1" {
		t.Errorf("breadcrumb = %q", results[0].Breadcrumb)
	}

	_, cmd := m.Update(keyPress("enter"))
	if cmd == nil {
		t.Fatal("expected a command")
	}
	msg, ok := cmd().(SearchSelectMsg)
	if !ok || msg.ID != 6 {
		t.Errorf("expected SearchSelectMsg{6}, got %#v", msg)
	}
}

func TestSearchModel_ShortQuery(t *testing.T) {
	m := NewSearchModel()
	m.Open(testTree())
	typeQuery(m, "b")

	if len(m.Results()) != 0 {
		t.Errorf("a one-letter query should not search, got %d results", len(m.Results()))
	}

	_, cmd := m.Update(keyPress("enter"))
	if cmd != nil {
		t.Error("enter without results should do nothing")
	}
}

func TestSearchModel_Cancel(t *testing.T) {
	m := NewSearchModel()
	m.Open(testTree())

	_, cmd := m.Update(keyPress("esc"))
	if cmd == nil {
		t.Fatal("expected a command")
	}
	if _, ok := cmd().(SwitchToBrowserMsg); !ok {
		t.Error("expected SwitchToBrowserMsg")
	}
}

func TestSearchModel_OpenResets(t *testing.T) {
	m := NewSearchModel()
	m.Open(testTree())
	typeQuery(m, "b-1")
	if len(m.Results()) == 0 {
		t.Fatal("expected results")
	}

	m.Open(testTree())
	if len(m.Results()) != 0 {
		t.Error("reopening should clear the results")
	}
}
