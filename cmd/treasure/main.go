// treasure is a terminal platformer: guide the Captain through a level and
// collect every coin before the spikes and crabs take his health.
//
// Usage:
//
//	treasure                  - Pick a level from the menu and play
//	treasure play [level]     - Play a level directly (ID or .yaml path)
//	treasure levels           - List built-in levels
//	treasure scores [level]   - Browse finished runs
//	treasure serve            - Start SSH server for remote play
//
// Global flags:
//
//	--fps <rate>           - Set tick rate (default: 60)
//	--seed <value>         - Set RNG seed for reproducible enemy behaviour
//	--db <path>            - Set database path (default: ~/.treasure/runs.db)
//	--config <path>        - Load game tuning from a YAML file
//	--difficulty <preset>  - easy, normal or hard
//	--log-level <level>    - debug, info, warn or error
//	--log-file <path>      - Write logs to a file
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/treasure-run/internal/config"
	"github.com/vovakirdan/treasure-run/internal/storage"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLogLevel   string
	flagLogFile    string
)

var (
	logger  *log.Logger
	logFile *os.File
)

func main() {
	err := rootCmd.Execute()
	if logFile != nil {
		logFile.Close()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "treasure",
	Short: "Treasure Run - help the Captain collect his coins",
	Long: `Treasure Run is a terminal platformer. Run and jump through the
level, stomp the crabs and collect every coin without losing all health.

Available commands:
  play     - Play a level (menu when no level is given)
  levels   - Show the built-in levels
  scores   - Browse finished runs
  serve    - Start SSH server for remote play

Examples:
  treasure
  treasure play island
  treasure play ./my-level.yaml --difficulty hard
  treasure scores lagoon --plain
  treasure serve --ssh :2222`,
	SilenceUsage:      true,
	PersistentPreRunE: setupLogging,
	RunE:              runPlay,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", storage.DefaultPath, "Path to run history database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "warn", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file instead of stderr")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
}

// setupLogging builds the logger shared by every command.
func setupLogging(_ *cobra.Command, _ []string) error {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return fmt.Errorf("invalid --log-level: %w", err)
	}

	var out io.Writer = os.Stderr
	if flagLogFile != "" {
		logFile, err = os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("cannot open log file: %w", err)
		}
		out = logFile
	}

	logger = log.NewWithOptions(out, log.Options{
		Level:           level,
		ReportTimestamp: true,
		Prefix:          "treasure",
	})
	return nil
}

// loadConfig loads the game tuning and applies the difficulty preset.
func loadConfig() (config.Config, error) {
	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return config.Config{}, err
	}
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return config.Config{}, err
	}
	config.ApplyPreset(&cfg, preset)
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	logger.Debug("config loaded", "path", flagConfig, "difficulty", preset)
	return cfg, nil
}

// openStore opens the run history. Play continues without it on failure.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open run history", "path", flagDBPath, "error", err)
		return nil
	}
	return store
}
