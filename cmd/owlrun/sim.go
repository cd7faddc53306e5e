package main

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/owl-run/internal/config"
	"github.com/vovakirdan/owl-run/internal/core"
	"github.com/vovakirdan/owl-run/internal/games/owlrun"
)

var (
	flagSimSeconds float64
	flagSimLane    int
	flagSimAll     bool
)

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Run the simulation headless and print events",
	Long: `Run Owl Run without a terminal UI. The runner steers to --lane and
holds it; nothing else is pressed. Spawn events are printed as they happen
(--all prints every event), followed by the final state.

Two runs with the same seed, tuning and flags print the same output, which
makes this handy for checking daily seeds and tuning changes.

Examples:
  owlrun sim --seed 20240101 --seconds 3
  owlrun sim --daily --seconds 60 --lane 0
  owlrun sim --seed 7 --difficulty hard --all`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		opts := simOptions{
			Seed:      flagSeed,
			Daily:     flagDaily,
			Seconds:   flagSimSeconds,
			Lane:      flagSimLane,
			TickRate:  flagFPS,
			AllEvents: flagSimAll,
			Character: flagCharacter,
			Equalize:  flagEqualize,
		}
		_, err := simulate(cmd.OutOrStdout(), opts)
		return err
	},
}

func init() {
	simCmd.Flags().Float64Var(&flagSimSeconds, "seconds", 30, "Simulated seconds to run")
	simCmd.Flags().IntVar(&flagSimLane, "lane", owlrun.Lanes/2, "Lane the runner holds (0-4)")
	simCmd.Flags().BoolVar(&flagSimAll, "all", false, "Print every event, not only spawns")
}

type simOptions struct {
	Seed      int64
	Daily     bool
	Seconds   float64
	Lane      int
	TickRate  int
	AllEvents bool
	Character string
	Equalize  bool
	Tuning    *config.RunnerConfig // Overrides file config when set
	Clock     func() time.Time
}

// simulate runs one headless game and writes its event log to w.
func simulate(w io.Writer, opts simOptions) (owlrun.Snapshot, error) {
	if opts.Lane < 0 || opts.Lane >= owlrun.Lanes {
		return owlrun.Snapshot{}, fmt.Errorf("--lane must be between 0 and %d", owlrun.Lanes-1)
	}
	if opts.Seconds <= 0 {
		return owlrun.Snapshot{}, fmt.Errorf("--seconds must be positive")
	}

	g := owlrun.New()
	if opts.Tuning != nil {
		g.SetConfig(*opts.Tuning)
	}
	if opts.Clock != nil {
		g.SetClock(opts.Clock)
	}
	if opts.Character != "" {
		a, err := owlrun.LookupArchetype(opts.Character)
		if err != nil {
			return owlrun.Snapshot{}, err
		}
		g.SetCharacter(a)
	}
	g.SetEqualize(opts.Equalize)

	rt := core.DefaultConfig()
	if opts.TickRate > 0 {
		rt.TickRate = opts.TickRate
	}
	rt.Seed = opts.Seed
	rt.Daily = opts.Daily
	g.Reset(rt)
	fmt.Fprintf(w, "seed %d  runner %s  lane %d\n", g.Seed(), g.Character(), opts.Lane)

	ticks := int(opts.Seconds * float64(rt.TickRate))
	for range ticks {
		in := core.NewInputFrame()
		switch target := g.Player().TargetLane; {
		case target < opts.Lane:
			in.Set(core.ActionRight)
		case target > opts.Lane:
			in.Set(core.ActionLeft)
		}
		// Always take the first upgrade so the run continues.
		if g.Phase() == owlrun.PhaseLevelComplete {
			in = core.InputOf(core.ActionLeft)
		}

		res := g.Step(in)
		for _, ev := range g.Events() {
			if ev.Kind == owlrun.EventSpawn || opts.AllEvents {
				writeEvent(w, ev)
			}
		}
		if res.State.GameOver {
			break
		}
	}

	snap := g.Snapshot()
	writeSnapshot(w, snap)
	return snap, nil
}

func writeEvent(w io.Writer, ev owlrun.Event) {
	if ev.Spawn != nil {
		fmt.Fprintf(w, "%8.3f  spawn     %-14s %-10s %-6s %v\n",
			ev.T, ev.Spawn.Pattern, ev.Spawn.Type, ev.Spawn.Tier, ev.Spawn.Lanes)
		return
	}
	fmt.Fprintf(w, "%8.3f  %-9s lane=%d %s %.2f\n", ev.T, ev.Kind, ev.Lane, ev.Detail, ev.Value)
}

func writeSnapshot(w io.Writer, s owlrun.Snapshot) {
	fmt.Fprintf(w, "\nfinal  t=%.3f tick=%d phase=%s reason=%s\n", s.Time, s.Tick, s.Phase, s.Reason)
	fmt.Fprintf(w, "       level=%d difficulty=%d score=%d streak=%d dodges=%d distance=%.0f\n",
		s.Level, s.Difficulty, s.Score, s.Streak, s.Dodges, s.Distance)
	fmt.Fprintf(w, "       lane=%d speed=%.1f stunned=%t threat=%.3f owl=%s obstacles=%d\n",
		s.PlayerLane, s.PlayerSpeed, s.Stunned, s.Threat, s.OwlState, len(s.ObstacleData)/3)
	fmt.Fprintf(w, "       hash=%d\n", s.Hash())
}
