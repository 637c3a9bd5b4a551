package tui

import (
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/blockpong/internal/arena"
	"github.com/vovakirdan/blockpong/internal/core"
	_ "github.com/vovakirdan/blockpong/internal/games/pong"
	"github.com/vovakirdan/blockpong/internal/registry"
	"github.com/vovakirdan/blockpong/internal/storage"
)

func openStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("storage.Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func newTestModel(t *testing.T, mode string, duration float64, store *storage.Store) Model {
	t.Helper()
	level, _ := arena.LevelByID("open")
	cfg := arena.DefaultConfig()
	cfg.MatchDuration = duration

	game, err := registry.Create(mode, registry.Options{Arena: cfg, Level: level})
	if err != nil {
		t.Fatalf("registry.Create() failed: %v", err)
	}
	m, err := NewModel(game, core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 7}, RunOptions{Store: store})
	if err != nil {
		t.Fatalf("NewModel() failed: %v", err)
	}
	return m
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	model, ok := next.(Model)
	if !ok {
		t.Fatalf("Update() returned %T", next)
	}
	return model, cmd
}

func TestModelSavesFinishedMatchOnce(t *testing.T) {
	store := openStore(t)
	m := newTestModel(t, "demo", 0.05, store)

	for range 20 {
		m, _ = update(t, m, TickMsg(time.Now()))
	}
	if !m.gameState.GameOver {
		t.Fatal("expected the match to be over")
	}

	matches, err := store.RecentMatches("demo", 10)
	if err != nil {
		t.Fatalf("RecentMatches() failed: %v", err)
	}
	if len(matches) != 1 {
		t.Fatalf("saved %d matches, want 1", len(matches))
	}
	if matches[0].Reason != "time expired" || matches[0].Level != "open" {
		t.Errorf("unexpected record: %+v", matches[0])
	}
	if matches[0].AILevel == 0 {
		t.Error("expected CPU level to be recorded")
	}
}

func TestModelQuitRecordsAbandonedMatch(t *testing.T) {
	store := openStore(t)
	m := newTestModel(t, "arena", 60, store)

	for range 5 {
		m, _ = update(t, m, TickMsg(time.Now()))
	}
	m, cmd := update(t, m, runeKey("q"))
	if cmd == nil || !m.quitting {
		t.Fatal("expected quit")
	}

	matches, _ := store.RecentMatches("arena", 10)
	if len(matches) != 1 || matches[0].Reason != ReasonAbandoned {
		t.Errorf("expected one abandoned match, got %+v", matches)
	}
}

func TestModelWithoutStore(t *testing.T) {
	m := newTestModel(t, "demo", 0.05, nil)
	for range 20 {
		m, _ = update(t, m, TickMsg(time.Now()))
	}
	if !m.saved {
		t.Error("finished match should be marked as handled")
	}
}

func TestModelKeysFillInputFrame(t *testing.T) {
	m := newTestModel(t, "arena", 60, nil)

	m, _ = update(t, m, runeKey("w"))
	if !m.inputFrame.Has(core.ActionUp) {
		t.Error("expected ActionUp in the input frame")
	}

	m, _ = update(t, m, TickMsg(time.Now()))
	if m.inputFrame.Has(core.ActionUp) {
		t.Error("input frame should be cleared after a tick")
	}
}

func TestModelHelpAndResize(t *testing.T) {
	m := newTestModel(t, "arena", 60, nil)
	if m.screen.Height() != 23 {
		t.Fatalf("screen height = %d, want 23", m.screen.Height())
	}

	m, _ = update(t, m, runeKey("?"))
	if !m.help.ShowAll {
		t.Fatal("expected full help")
	}
	if m.screen.Height() != 20 {
		t.Errorf("screen height with full help = %d, want 20", m.screen.Height())
	}

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	if m.screen.Width() != 100 || m.screen.Height() != 26 {
		t.Errorf("screen = %dx%d, want 100x26", m.screen.Width(), m.screen.Height())
	}
	if m.View() == "" {
		t.Error("View() should render while playing")
	}
}
