package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/treasure-run/internal/config"
	"github.com/vovakirdan/treasure-run/internal/core"
	"github.com/vovakirdan/treasure-run/internal/level"
	"github.com/vovakirdan/treasure-run/internal/scene"
	"github.com/vovakirdan/treasure-run/internal/storage"
)

// GameOptions configures one game session.
type GameOptions struct {
	Config  config.Config
	Level   level.Level
	Runtime core.RuntimeConfig
	Store   *storage.Store // Optional; finished runs are saved when set
	Logger  *log.Logger
	Theme   Theme
}

// GameModel is the Bubble Tea model that plays one level. It feeds the
// scene director fixed-size ticks and renders its screen buffer.
type GameModel struct {
	opts     GameOptions
	director *scene.Director
	screen   *core.Screen
	keys     KeyMap
	help     help.Model
	input    core.InputFrame
	held     *holdTracker
	logger   *log.Logger
	gen      uint64

	width, height int
	err           error
	quitting      bool
	backToMenu    bool
}

// NewGameModel creates a game model and enters the level scene.
func NewGameModel(opts GameOptions) (GameModel, error) {
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	// Use time-based seed if not specified
	if opts.Runtime.Seed == 0 {
		opts.Runtime.Seed = time.Now().UnixNano()
	}

	d := scene.NewDirector(scene.Options{
		Config:   opts.Config,
		Level:    opts.Level,
		Seed:     uint64(opts.Runtime.Seed),
		Logger:   opts.Logger,
		OnRunEnd: runSaver(opts.Store, opts.Runtime.Player, opts.Logger),
	})
	if err := d.Start(scene.SceneGame); err != nil {
		return GameModel{}, fmt.Errorf("tui: starting level %s: %w", opts.Level.ID, err)
	}

	m := GameModel{
		opts:     opts,
		director: d,
		keys:     DefaultKeyMap(),
		help:     help.New(),
		input:    core.NewInputFrame(),
		held:     newHoldTracker(),
		logger:   opts.Logger,
		gen:      nextTickGen(),
		screen:   core.NewScreen(1, 1),
	}
	m.resize(opts.Runtime.ScreenW, opts.Runtime.ScreenH)
	return m, nil
}

// runSaver returns the callback that stores finished runs.
func runSaver(store *storage.Store, player string, logger *log.Logger) func(scene.RunResult) {
	if store == nil {
		return nil
	}
	return func(r scene.RunResult) {
		saved, err := store.SaveRun(storage.Run{
			Level:    r.Level,
			Player:   player,
			Coins:    r.Coins,
			Health:   r.Health,
			Won:      r.Won,
			Stomps:   r.Stomps,
			Duration: r.Duration,
		})
		if err != nil {
			logger.Warn("could not save run", "error", err)
			return
		}
		logger.Debug("run saved", "run_id", saved.RunID)
	}
}

// Init starts the tick loop.
func (m GameModel) Init() tea.Cmd {
	return tickCmd(m.opts.Runtime.TickRate, m.gen)
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		if msg.Gen != m.gen || m.quitting || m.backToMenu {
			return m, nil
		}
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		m.director.Close()
		return m, tea.Quit
	case key.Matches(msg, m.keys.Back):
		m.backToMenu = true
		m.director.Close()
		return m, nil
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.resize(m.width, m.height)
		return m, nil
	case key.Matches(msg, m.keys.Screenshot):
		m.saveScreenshot()
		return m, nil
	}

	switch a := m.keys.Action(msg); a {
	case core.ActionNone:
	case core.ActionPause, core.ActionRestart:
		m.input.Press(a)
		m.held.reset()
	default:
		if m.held.press(a) {
			m.input.Press(a)
		}
	}
	return m, nil
}

// handleTick advances the game by one fixed step.
func (m GameModel) handleTick() (tea.Model, tea.Cmd) {
	dt := tickInterval(m.opts.Runtime.TickRate)

	m.held.apply(&m.input)
	if err := m.director.Update(m.input, dt); err != nil {
		m.logger.Error("game update failed", "error", err)
		m.err = err
		m.quitting = true
		return m, tea.Quit
	}
	m.held.advance(dt)

	// Clear input for next frame
	m.input.Clear()

	return m, tickCmd(m.opts.Runtime.TickRate, m.gen)
}

// resize fits the screen buffer above the help footer.
func (m *GameModel) resize(width, height int) {
	if width <= 0 || height <= 0 {
		width, height = core.DefaultConfig().ScreenW, core.DefaultConfig().ScreenH
	}
	m.width, m.height = width, height
	m.help.Width = width

	footer := strings.Count(m.help.View(m.keys), "\n") + 1
	m.screen.Resize(width, max(1, height-footer))
}

// saveScreenshot saves the current screen to a file.
func (m *GameModel) saveScreenshot() {
	m.screen.Clear()
	m.director.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		m.logger.Warn("screenshot skipped", "error", err)
		return
	}
	dir := filepath.Join(home, ".treasure", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("screenshot skipped", "error", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.opts.Level.ID, timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("screenshot failed", "error", err)
		return
	}
	m.logger.Info("screenshot saved", "path", path)
}

// View renders the current state to a string for display.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}

	m.screen.Clear()
	m.director.Render(m.screen)

	return m.cells().Render(m.screen) + "\n" + m.opts.Theme.Help.Render(m.help.View(m.keys))
}

func (m GameModel) cells() Palette {
	if m.opts.Theme.Cells == nil {
		return ANSIPalette()
	}
	return m.opts.Theme.Cells
}

// State returns the status of the current run.
func (m GameModel) State() core.GameState { return m.director.State() }

// Err returns the error that stopped the game, if any.
func (m GameModel) Err() error { return m.err }

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool { return m.quitting }

// BackToMenu returns true if user requested to go back to the level picker.
func (m GameModel) BackToMenu() bool { return m.backToMenu }
