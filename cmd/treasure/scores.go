package main

import (
	"errors"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/treasure-run/internal/level"
	"github.com/vovakirdan/treasure-run/internal/platform/tui"
	"github.com/vovakirdan/treasure-run/internal/storage"
)

var (
	flagPlain bool
	flagClear bool
	flagLimit int
)

var scoresCmd = &cobra.Command{
	Use:   "scores [level]",
	Short: "Show finished runs",
	Long: `Browse the best runs of each level: wins first, then most coins,
then fastest time.

Examples:
  treasure scores
  treasure scores lagoon
  treasure scores island --plain --limit 5
  treasure scores island --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagPlain, "plain", false, "Print a plain table instead of the interactive view")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete all runs of the level")
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of runs to print with --plain")
}

func runScores(_ *cobra.Command, args []string) error {
	levels, err := level.List()
	if err != nil {
		return err
	}

	levelID := level.DefaultID
	if len(args) == 1 {
		lvl, err := level.Load(args[0])
		if err != nil {
			return fmt.Errorf("%w\nRun 'treasure levels' to see available levels", err)
		}
		levelID = lvl.ID
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	switch {
	case flagClear:
		if len(args) == 0 {
			return errors.New("--clear needs a level")
		}
		if err := store.ClearRuns(levelID); err != nil {
			return err
		}
		fmt.Printf("Cleared runs of %s.\n", levelID)
		return nil
	case flagPlain || !term.IsTerminal(int(os.Stdout.Fd())):
		return printRuns(store, levelID)
	}

	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width, height = w, h
	}
	return tui.RunHistory(store, levels, levelID, width, height, tui.DefaultTheme())
}

// printRuns writes the best runs of a level as a plain table.
func printRuns(store *storage.Store, levelID string) error {
	runs, err := store.TopRuns(levelID, flagLimit)
	if err != nil {
		return err
	}

	fmt.Printf("Runs - %s\n", levelID)
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'treasure play %s' to record the first one!\n", levelID)
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "  Rank\tResult\tCoins\tTime\tStomps\tPlayer\tDate")
	fmt.Fprintln(w, "  ----\t------\t-----\t----\t------\t------\t----")
	for _, row := range tui.RunRows(runs) {
		fmt.Fprintf(w, "  %s\t%s\t%s\t%s\t%s\t%s\t%s\n", row[0], row[1], row[2], row[3], row[4], row[5], row[6])
	}
	if err := w.Flush(); err != nil {
		return err
	}

	stats, err := store.Stats(levelID)
	if err != nil {
		return err
	}
	fmt.Println()
	fmt.Printf("Runs: %d  Wins: %d  Best coins: %d\n", stats.Runs, stats.Wins, stats.BestCoins)
	if stats.FastestWin > 0 {
		fmt.Printf("Fastest win: %s\n", stats.FastestWin)
	}
	return nil
}
