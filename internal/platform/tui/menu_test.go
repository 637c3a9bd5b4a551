package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func testLevels() []MenuLevel {
	return []MenuLevel{{ID: "open", Name: "Open"}, {ID: "wall", Name: "Wall"}, {ID: "gates", Name: "Gates"}}
}

func menuUpdate(t *testing.T, m MenuModel, msg tea.Msg) MenuModel {
	t.Helper()
	next, _ := m.Update(msg)
	model, ok := next.(MenuModel)
	if !ok {
		t.Fatalf("Update() returned %T", next)
	}
	return model
}

func TestMenuSelectsModeAndLevel(t *testing.T) {
	m := NewMenuModel(testLevels(), "wall", 80, 24)
	if len(m.modes) < 3 {
		t.Fatalf("expected registered modes, got %d", len(m.modes))
	}

	m = menuUpdate(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m = menuUpdate(t, m, tea.KeyMsg{Type: tea.KeyRight})
	m = menuUpdate(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	mode, level, ok := m.Selection()
	if !ok {
		t.Fatal("Selection() ok = false")
	}
	if mode != m.modes[1].ID {
		t.Errorf("mode = %q, want %q", mode, m.modes[1].ID)
	}
	if level != "gates" {
		t.Errorf("level = %q, want %q", level, "gates")
	}
}

func TestMenuLevelWrapsAround(t *testing.T) {
	m := NewMenuModel(testLevels(), "", 80, 24)
	m = menuUpdate(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	if l, _ := m.level(); l.ID != "gates" {
		t.Errorf("level = %q, want %q", l.ID, "gates")
	}
}

func TestMenuScoreboardAndQuit(t *testing.T) {
	m := menuUpdate(t, NewMenuModel(testLevels(), "", 80, 24), tea.KeyMsg{Type: tea.KeyTab})
	if !m.WantsScoreboard() {
		t.Error("tab should request the scoreboard")
	}

	m = menuUpdate(t, NewMenuModel(testLevels(), "", 80, 24), runeKey("q"))
	if !m.IsQuitting() {
		t.Error("q should quit")
	}
	if _, _, ok := m.Selection(); ok {
		t.Error("quitting should not select")
	}
}
