package tui

import (
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/treasure-run/internal/config"
	"github.com/vovakirdan/treasure-run/internal/core"
	"github.com/vovakirdan/treasure-run/internal/level"
	"github.com/vovakirdan/treasure-run/internal/storage"
)

// SessionOptions configures a full session.
type SessionOptions struct {
	Config  config.Config
	Levels  []level.Level
	Start   *level.Level // Skips the level picker when set
	Runtime core.RuntimeConfig
	Store   *storage.Store
	Logger  *log.Logger
	Theme   Theme
}

type sessionView int

const (
	viewMenu sessionView = iota
	viewGame
	viewHistory
)

// SessionModel manages the session flow: menu -> game -> menu and
// menu -> run history -> menu. It is the top-level model for local play
// and for SSH sessions.
type SessionModel struct {
	opts     SessionOptions
	view     sessionView
	menu     MenuModel
	game     *GameModel
	history  HistoryModel
	err      error
	quitting bool
}

// NewSessionModel creates a new session model.
func NewSessionModel(opts SessionOptions) SessionModel {
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	m := SessionModel{opts: opts}
	m.menu = m.newMenu()
	return m
}

func (m SessionModel) newMenu() MenuModel {
	return NewMenuModel(m.opts.Levels, m.opts.Store, m.opts.Runtime.ScreenW, m.opts.Runtime.ScreenH, m.opts.Theme, m.opts.Logger)
}

// Init initializes the session. With a start level it goes straight to
// the game.
func (m SessionModel) Init() tea.Cmd {
	if m.opts.Start == nil {
		return m.menu.Init()
	}
	return func() tea.Msg { return startLevelMsg{level: *m.opts.Start} }
}

type startLevelMsg struct {
	level level.Level
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.opts.Runtime.ScreenW = msg.Width
		m.opts.Runtime.ScreenH = msg.Height
	case startLevelMsg:
		return m.startGame(msg.level)
	}

	switch m.view {
	case viewGame:
		return m.updateGame(msg)
	case viewHistory:
		return m.updateHistory(msg)
	default:
		return m.updateMenu(msg)
	}
}

// updateMenu handles updates when in menu mode.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	if m.menu.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.menu.WantsHistory() {
		startID := ""
		if len(m.opts.Levels) > 0 {
			startID = m.opts.Levels[m.menu.cursor].ID
		}
		m.history = NewHistoryModel(m.opts.Store, m.opts.Levels, startID, m.opts.Runtime.ScreenW, m.opts.Runtime.ScreenH, m.opts.Theme)
		m.history.embedded = true
		m.view = viewHistory
		return m, m.history.Init()
	}

	if selected := m.menu.Selected(); selected != nil {
		return m.startGame(*selected)
	}

	return m, cmd
}

func (m SessionModel) startGame(lvl level.Level) (tea.Model, tea.Cmd) {
	game, err := NewGameModel(GameOptions{
		Config:  m.opts.Config,
		Level:   lvl,
		Runtime: m.opts.Runtime,
		Store:   m.opts.Store,
		Logger:  m.opts.Logger.With("level", lvl.ID),
		Theme:   m.opts.Theme,
	})
	if err != nil {
		m.opts.Logger.Error("could not start level", "level", lvl.ID, "error", err)
		m.err = err
		m.quitting = true
		return m, tea.Quit
	}

	m.game = &game
	m.view = viewGame
	return m, m.game.Init()
}

// updateGame handles updates when in game mode.
func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.game.Update(msg)
	if gameModel, ok := newModel.(GameModel); ok {
		m.game = &gameModel
	}

	if m.game.IsQuitting() {
		m.err = m.game.Err()
		m.quitting = true
		return m, tea.Quit
	}

	if m.game.BackToMenu() {
		m.game = nil
		m.view = viewMenu
		// Reload so best runs include the one just played
		m.menu = m.newMenu()
		return m, m.menu.Init()
	}

	return m, cmd
}

// updateHistory handles updates when the run history is shown.
func (m SessionModel) updateHistory(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.history.Update(msg)
	if historyModel, ok := newModel.(HistoryModel); ok {
		m.history = historyModel
	}

	if m.history.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.history.IsGoingBack() {
		m.view = viewMenu
		m.menu = m.newMenu()
		return m, m.menu.Init()
	}

	return m, cmd
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.view {
	case viewGame:
		return m.game.View()
	case viewHistory:
		return m.history.View()
	default:
		return m.menu.View()
	}
}

// Err returns the error that ended the session, if any.
func (m SessionModel) Err() error {
	return m.err
}

// Run starts a local session in the alternate screen and blocks until the
// player quits.
func Run(opts SessionOptions) error {
	p := tea.NewProgram(NewSessionModel(opts), tea.WithAltScreen())

	final, err := p.Run()
	if err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	if sm, ok := final.(SessionModel); ok && sm.Err() != nil {
		return sm.Err()
	}
	return nil
}
