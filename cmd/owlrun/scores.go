package main

import (
	"fmt"
	"io"
	"slices"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/owl-run/internal/games/owlrun"
	"github.com/vovakirdan/owl-run/internal/platform/tui"
	"github.com/vovakirdan/owl-run/internal/registry"
	"github.com/vovakirdan/owl-run/internal/rng"
	"github.com/vovakirdan/owl-run/internal/storage"
)

var (
	flagScoresLimit int
	flagScoresClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [mode]",
	Short: "Show best runs and achievements",
	Long: `Display the best runs for a mode (owlrun by default), aggregate
statistics, a per-runner breakdown and the achievements unlocked so far.

--seed limits the board to runs played on that seed; --daily limits it to
today's daily seed.

Examples:
  owlrun scores
  owlrun scores owlrun_daily
  owlrun scores --limit 25
  owlrun scores owlrun_daily --daily
  owlrun scores owlrun_daily --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of runs to show")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete every recorded run for the mode")
}

func runScores(cmd *cobra.Command, args []string) error {
	modeID := owlrun.ID
	if len(args) == 1 {
		modeID = args[0]
	}
	if !registry.Exists(modeID) {
		return fmt.Errorf("unknown mode %q (see 'owlrun list')", modeID)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening scores database: %w", err)
	}
	defer store.Close()

	if flagScoresClear {
		return clearScores(cmd.OutOrStdout(), store, modeID)
	}
	seed := flagSeed
	if flagDaily {
		seed = rng.DailySeed(time.Now())
	}
	return writeScores(cmd.OutOrStdout(), store, modeID, seed, flagScoresLimit)
}

// writeScores prints the board for modeID. A zero seed shows every run.
func writeScores(w io.Writer, store *storage.Store, modeID string, seed int64, limit int) error {
	game, err := registry.Create(modeID)
	if err != nil {
		return err
	}

	var scores []storage.ScoreEntry
	if seed != 0 {
		scores, err = store.TopScoresForSeed(modeID, seed, limit)
	} else {
		scores, err = store.TopScores(modeID, limit)
	}
	if err != nil {
		return fmt.Errorf("retrieving scores: %w", err)
	}

	if seed != 0 {
		fmt.Fprintf(w, "Best Runs - %s (seed %d)\n\n", game.Title(), seed)
	} else {
		fmt.Fprintf(w, "Best Runs - %s\n\n", game.Title())
	}

	if len(scores) == 0 {
		fmt.Fprintln(w, "No runs recorded yet.")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Play 'owlrun play' to set the first one!")
	} else {
		fmt.Fprintf(w, "  %-4s  %-8s  %-3s  %-9s  %-10s  %s\n", "Rank", "Score", "Lv", "Runner", "Ended", "Date")
		fmt.Fprintf(w, "  %-4s  %-8s  %-3s  %-9s  %-10s  %s\n", "----", "-----", "--", "------", "-----", "----")
		for i, e := range scores {
			fmt.Fprintf(w, "  %-4d  %-8d  %-3d  %-9s  %-10s  %s\n",
				i+1, e.Score, e.Level, dash(e.Character), dash(e.Reason), e.CreatedAt.Format("2006-01-02 15:04"))
		}

		stats, err := store.Stats(modeID)
		if err != nil {
			return fmt.Errorf("retrieving stats: %w", err)
		}
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Runs: %d  Best: %d  Average: %.0f  Deepest level: %d\n",
			stats.Runs, stats.Best, stats.Average, stats.DeepestLevel)

		runners, err := store.RunnerStats(modeID)
		if err != nil {
			return fmt.Errorf("retrieving runner stats: %w", err)
		}
		for _, r := range runners {
			fmt.Fprintf(w, "  %-9s %3d runs  best %d\n", r.Character, r.Runs, r.Best)
		}
	}

	unlocked := store.Achievements()
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Achievements (%d/%d):\n", len(unlocked), len(owlrun.Achievements()))
	for _, id := range owlrun.Achievements() {
		fmt.Fprintf(w, "  %s\n", tui.AchievementLine(id, slices.Contains(unlocked, id)))
	}
	return nil
}

func clearScores(w io.Writer, store *storage.Store, modeID string) error {
	best, err := store.HighScore(modeID)
	if err != nil {
		return fmt.Errorf("retrieving best score: %w", err)
	}
	if err := store.ClearScores(modeID); err != nil {
		return err
	}
	fmt.Fprintf(w, "Cleared runs for %s (best was %d).\n", modeID, best)
	return nil
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
