package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/treasure-run/internal/level"
	"github.com/vovakirdan/treasure-run/internal/storage"
)

// MenuKeyMap defines the key bindings for the level picker.
type MenuKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Select  key.Binding
	History key.Binding
	Quit    key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k MenuKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Select, k.History, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k MenuKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// DefaultMenuKeyMap returns default key bindings.
func DefaultMenuKeyMap() MenuKeyMap {
	return MenuKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "w", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "s", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "play"),
		),
		History: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "runs"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c", "esc"),
			key.WithHelp("q", "quit"),
		),
	}
}

// MenuItem is a selectable level in the menu.
type MenuItem struct {
	Level level.Level
	Best  *storage.Run // Nil when the level was never played
}

// MenuModel is the Bubble Tea model for the level picker.
type MenuModel struct {
	items  []MenuItem
	cursor int
	width  int
	height int
	keys   MenuKeyMap
	help   help.Model
	theme  Theme

	quitting    bool
	selected    *level.Level // Set when user selects a level
	openHistory bool         // True if user pressed Tab for the run history
}

// NewMenuModel creates a new menu model. Best runs are looked up in store
// when it is set.
func NewMenuModel(levels []level.Level, store *storage.Store, width, height int, theme Theme, logger *log.Logger) MenuModel {
	items := make([]MenuItem, 0, len(levels))
	for _, lvl := range levels {
		item := MenuItem{Level: lvl}
		if store != nil {
			best, err := store.BestRun(lvl.ID)
			if err != nil && logger != nil {
				logger.Warn("could not load best run", "level", lvl.ID, "error", err)
			}
			item.Best = best
		}
		items = append(items, item)
	}

	h := help.New()
	h.Width = width

	return MenuModel{
		items:  items,
		width:  width,
		height: height,
		keys:   DefaultMenuKeyMap(),
		help:   h,
		theme:  theme,
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keys.Select):
		if len(m.items) > 0 {
			selected := m.items[m.cursor].Level
			m.selected = &selected
		}

	case key.Matches(msg, m.keys.History):
		m.openHistory = true
	}

	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(m.theme.Title.Render(centerText("T R E A S U R E   R U N", m.width)))
	b.WriteString("\n\n")
	b.WriteString(m.theme.Subtitle.Render(centerText("Help the Captain collect his coins. Mind the spikes.", m.width)))
	b.WriteString("\n\n")

	for i, item := range m.items {
		name := item.Level.Name
		if name == "" {
			name = item.Level.ID
		}
		line := fmt.Sprintf("%-16s %3dx%-3d", name, item.Level.Width, item.Level.Height)

		style := m.theme.ItemNormal
		cursor := "  "
		if i == m.cursor {
			style = m.theme.ItemActive
			cursor = "> "
		}
		best := m.bestStyle(item.Best).Render(bestLabel(item.Best))
		b.WriteString(centerText(cursor+style.Render(line)+"  "+best, m.width))
		b.WriteString("\n")
	}

	if len(m.items) > 0 {
		if desc := m.items[m.cursor].Level.Description; desc != "" {
			b.WriteString("\n")
			b.WriteString(m.theme.Description.Render(centerText(desc, m.width)))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(m.theme.Help.Render(centerText(m.help.View(m.keys), m.width)))
	b.WriteString("\n")

	return b.String()
}

func (m MenuModel) bestStyle(best *storage.Run) lipgloss.Style {
	switch {
	case best == nil:
		return m.theme.Description
	case best.Won:
		return m.theme.Won
	default:
		return m.theme.Lost
	}
}

// bestLabel describes the best run of a level.
func bestLabel(best *storage.Run) string {
	switch {
	case best == nil:
		return "not played"
	case best.Won:
		return fmt.Sprintf("won in %s", best.Duration.Round(time.Second))
	default:
		return fmt.Sprintf("best %d coins", best.Coins)
	}
}

// Selected returns the selected level, or nil if none selected.
func (m MenuModel) Selected() *level.Level {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsHistory returns true if user requested the run history.
func (m MenuModel) WantsHistory() bool {
	return m.openHistory
}

// centerText centers text within given width. Styled text is measured
// without its escape sequences.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	padding := (width - w) / 2
	return strings.Repeat(" ", padding) + text
}
