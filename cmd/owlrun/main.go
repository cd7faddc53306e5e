// owlrun is a five-lane endless runner for the terminal: dodge trees and
// thin ice while an owl watches your stumbles and swoops.
//
// Usage:
//
//	owlrun play              - Pick a runner and play
//	owlrun sim               - Run the simulation headless and print events
//	owlrun scores            - Show best runs and achievements
//	owlrun serve             - Start SSH server for remote play
//	owlrun list              - List modes and runners
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default: 60)
//	--seed <value>       - Set RNG seed for reproducible runs
//	--daily              - Seed from today's date
//	--db <path>          - Set database path (default: ~/.owlrun/owlrun.db)
//	--config <path>      - Runner tuning YAML
//	--difficulty <name>  - Difficulty preset
//	--log-level <level>  - debug, info, warn or error
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/owl-run/internal/games/owlrun"
	"github.com/vovakirdan/owl-run/internal/storage"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDaily      bool
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLogLevel   string
	flagCharacter  string
	flagEqualize   bool

	logger *log.Logger
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "owlrun",
	Short: "Owl Run - outrun the owl in your terminal",
	Long: `Owl Run is a five-lane endless runner. Obstacles scroll toward you,
pickups help, and every stumble feeds the owl's threat meter. When it
swoops, shadows mark the lanes it will strike: get out from under them.

Available commands:
  play     - Pick a runner and play
  sim      - Headless run that prints spawn events
  scores   - Best runs and achievements
  serve    - Start SSH server for remote play
  list     - Modes and runners

Examples:
  owlrun play
  owlrun play --daily --character scout
  owlrun sim --seed 20240101 --seconds 30
  owlrun serve --ssh :2222`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		level, err := log.ParseLevel(flagLogLevel)
		if err != nil {
			return fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
		}
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "owlrun",
			Level:           level,
		})

		owlrun.SetConfigPath(flagConfig)
		owlrun.SetDifficultyPreset(flagDifficulty)

		if flagCharacter != "" {
			if _, err := owlrun.LookupArchetype(flagCharacter); err != nil {
				return err
			}
		}
		return nil
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	pf.Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	pf.BoolVar(&flagDaily, "daily", false, "Seed the run from today's date")
	pf.StringVar(&flagDBPath, "db", storage.DefaultPath, "Path to scores and progression database")
	pf.StringVar(&flagConfig, "config", "", "Path to runner tuning YAML")
	pf.StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	pf.StringVar(&flagLogLevel, "log-level", "warn", "Log level: debug, info, warn, error")
	pf.StringVar(&flagCharacter, "character", "", "Runner to preselect by name or index (runner, sprinter, bruiser, acrobat, scout)")
	pf.BoolVar(&flagEqualize, "equalize", false, "Neutralize every runner's attributes")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(simCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
}
