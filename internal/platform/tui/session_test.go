package tui

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/treasure-run/internal/config"
	"github.com/vovakirdan/treasure-run/internal/core"
	"github.com/vovakirdan/treasure-run/internal/level"
	"github.com/vovakirdan/treasure-run/internal/storage"
)

const testLevel = `id: flat
name: Flat
description: A plain strip of sand.
map: |
  ..............
  ..P......c....
  ##############
`

// testConfig plays the one-coin test level.
func testConfig() config.Config {
	cfg := config.Default()
	cfg.Rules.CoinTarget = 1
	return cfg
}

func parseTestLevel(t *testing.T) level.Level {
	t.Helper()
	lvl, err := level.Parse([]byte(testLevel))
	if err != nil {
		t.Fatalf("level.Parse() failed: %v", err)
	}
	return lvl
}

func newTestGame(t *testing.T) GameModel {
	t.Helper()
	m, err := NewGameModel(GameOptions{
		Config:  testConfig(),
		Level:   parseTestLevel(t),
		Runtime: core.RuntimeConfig{ScreenW: 60, ScreenH: 16, TickRate: 60, Seed: 1},
		Theme:   MonochromeTheme(),
	})
	if err != nil {
		t.Fatalf("NewGameModel() failed: %v", err)
	}
	return m
}

func updateGame(t *testing.T, m GameModel, msg tea.Msg) GameModel {
	t.Helper()
	next, _ := m.Update(msg)
	gm, ok := next.(GameModel)
	if !ok {
		t.Fatalf("Update() returned %T, expected GameModel", next)
	}
	return gm
}

func TestGameModelTicks(t *testing.T) {
	m := newTestGame(t)

	for range 10 {
		m = updateGame(t, m, TickMsg{Gen: m.gen})
	}
	if got, want := m.State().Elapsed, 10*tickInterval(60); got != want {
		t.Errorf("Elapsed = %v after 10 ticks, expected %v", got, want)
	}

	// Ticks from an older loop are dropped
	m = updateGame(t, m, TickMsg{Gen: m.gen + 100})
	if got, want := m.State().Elapsed, 10*tickInterval(60); got != want {
		t.Errorf("Elapsed = %v after a stale tick, expected %v", got, want)
	}
}

func TestGameModelPauseAndBack(t *testing.T) {
	m := newTestGame(t)

	m = updateGame(t, m, runeKey("p"))
	m = updateGame(t, m, TickMsg{Gen: m.gen})
	if !m.State().Paused {
		t.Fatal("level should be paused after p")
	}

	m = updateGame(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if !m.BackToMenu() || m.IsQuitting() {
		t.Errorf("BackToMenu = %v IsQuitting = %v after esc", m.BackToMenu(), m.IsQuitting())
	}
}

func TestGameModelJumpAutoRepeat(t *testing.T) {
	m := newTestGame(t)
	up := tea.KeyMsg{Type: tea.KeyUp}

	m = updateGame(t, m, up)
	if !m.input.JustPressed(core.ActionJump) {
		t.Fatal("first up should press jump")
	}
	m = updateGame(t, m, TickMsg{Gen: m.gen})

	// Auto-repeats of the same key arrive a few ticks apart
	for i := range 5 {
		m = updateGame(t, m, up)
		if m.input.JustPressed(core.ActionJump) {
			t.Fatalf("repeat %d pressed jump again", i)
		}
		m = updateGame(t, m, TickMsg{Gen: m.gen})
		m = updateGame(t, m, TickMsg{Gen: m.gen})
	}

	for range 20 {
		m = updateGame(t, m, TickMsg{Gen: m.gen})
	}
	m = updateGame(t, m, up)
	if !m.input.JustPressed(core.ActionJump) {
		t.Error("up after the key was released should press jump")
	}
}

func TestGameModelView(t *testing.T) {
	m := newTestGame(t)
	m = updateGame(t, m, TickMsg{Gen: m.gen})

	view := m.View()
	if !strings.Contains(view, "Coins: 0 /") {
		t.Errorf("View() should contain the HUD, got:\n%s", view)
	}
	if !strings.Contains(view, "Flat") {
		t.Error("View() should contain the level name")
	}
}

func updateSession(t *testing.T, m SessionModel, msg tea.Msg) (SessionModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	sm, ok := next.(SessionModel)
	if !ok {
		t.Fatalf("Update() returned %T, expected SessionModel", next)
	}
	return sm, cmd
}

func TestSessionFlow(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("storage.Open() failed: %v", err)
	}
	defer store.Close()

	m := NewSessionModel(SessionOptions{
		Config:  testConfig(),
		Levels:  []level.Level{parseTestLevel(t)},
		Runtime: core.RuntimeConfig{ScreenW: 100, ScreenH: 30, TickRate: 60, Seed: 3},
		Store:   store,
		Theme:   DefaultTheme(),
	})

	if !strings.Contains(m.View(), "Flat") {
		t.Fatal("menu should list the level")
	}

	m, _ = updateSession(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.view != viewHistory {
		t.Fatalf("view = %v after tab, expected history", m.view)
	}
	if !strings.Contains(m.View(), "No runs recorded yet") {
		t.Error("history of an unplayed level should be empty")
	}

	m, _ = updateSession(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.view != viewMenu {
		t.Fatalf("view = %v after esc, expected menu", m.view)
	}

	m, cmd := updateSession(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.view != viewGame || cmd == nil {
		t.Fatalf("view = %v after enter, expected a running game", m.view)
	}

	m, _ = updateSession(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.view != viewMenu || m.game != nil {
		t.Errorf("view = %v after leaving the level, expected menu", m.view)
	}

	m, cmd = updateSession(t, m, runeKey("q"))
	if cmd == nil || m.View() != "" {
		t.Error("q in the menu should quit the session")
	}
}

func TestSessionStartLevel(t *testing.T) {
	lvl := parseTestLevel(t)
	m := NewSessionModel(SessionOptions{
		Config:  testConfig(),
		Levels:  []level.Level{lvl},
		Start:   &lvl,
		Runtime: core.RuntimeConfig{ScreenW: 60, ScreenH: 16, TickRate: 60, Seed: 3},
		Theme:   DefaultTheme(),
	})

	cmd := m.Init()
	if cmd == nil {
		t.Fatal("Init() should start the level")
	}
	m, _ = updateSession(t, m, cmd())
	if m.view != viewGame {
		t.Errorf("view = %v, expected the level to be running", m.view)
	}
}

func TestRunRows(t *testing.T) {
	rows := RunRows([]storage.Run{
		{Coins: 20, Won: true, Stomps: 2, Player: "ann", Duration: 75_000_000_000},
		{Coins: 4},
	})

	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0][0] != "#1" || rows[0][1] != "won" || rows[0][3] != "1:15.0" || rows[0][5] != "ann" {
		t.Errorf("rows[0] = %v", rows[0])
	}
	if rows[1][1] != "lost" || rows[1][5] != "-" {
		t.Errorf("rows[1] = %v", rows[1])
	}
}
