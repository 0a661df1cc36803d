package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/treasure-run/internal/core"
	"github.com/vovakirdan/treasure-run/internal/level"
	"github.com/vovakirdan/treasure-run/internal/platform/tui"
)

var flagTheme string

var playCmd = &cobra.Command{
	Use:   "play [level]",
	Short: "Play a level",
	Long: `Start playing. Without an argument the level picker is shown;
otherwise the named built-in level or YAML level file starts directly.

Controls:
  Left/Right, A/D  - Run
  Up/W/Space       - Jump
  P                - Pause
  R                - Restart the level
  Enter            - Play again (after the run ends)
  Esc              - Back to the level picker
  Ctrl+S           - Save a screenshot
  Q/Ctrl+C         - Quit

Difficulty options:
  easy   - Slower crabs, stronger potions, longer jumps
  normal - The configured values
  hard   - Faster crabs, half health at start

Examples:
  treasure play
  treasure play lagoon
  treasure play island --difficulty hard
  treasure play ./levels/cave.yaml --seed 42`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagTheme, "theme", "default", "Menu theme: default, mono")
}

func runPlay(_ *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	levels, err := level.List()
	if err != nil {
		return err
	}

	var start *level.Level
	if len(args) == 1 {
		lvl, err := level.Load(args[0])
		if err != nil {
			return fmt.Errorf("%w\nRun 'treasure levels' to see available levels", err)
		}
		start = &lvl
	}

	// Get terminal size before the program takes over the screen
	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	store := openStore()
	if store != nil {
		defer store.Close()
	}

	// Log lines on stderr would tear the alternate screen
	if flagLogFile == "" {
		logger.SetOutput(io.Discard)
	}

	return tui.Run(tui.SessionOptions{
		Config: cfg,
		Levels: levels,
		Start:  start,
		Runtime: core.RuntimeConfig{
			ScreenW:  width,
			ScreenH:  height,
			TickRate: flagFPS,
			Seed:     flagSeed,
			Player:   os.Getenv("USER"),
		},
		Store:  store,
		Logger: logger,
		Theme:  tui.ThemeByName(flagTheme),
	})
}
