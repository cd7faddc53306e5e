package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/owl-run/internal/audio"
	"github.com/vovakirdan/owl-run/internal/config"
	"github.com/vovakirdan/owl-run/internal/core"
	"github.com/vovakirdan/owl-run/internal/games/owlrun"
	"github.com/vovakirdan/owl-run/internal/platform/tui"
	"github.com/vovakirdan/owl-run/internal/storage"
)

var (
	flagWatch bool
	flagBell  bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Pick a runner and play",
	Long: `Open the mode and runner picker, then play.

Controls:
  Left/Right, A/D  - Change lane
  Space/Up/W       - Jump
  Down/S           - Dash
  E/F              - Swing the axe at a tree ahead
  P                - Pause
  R                - Restart (after game over)
  Esc/B            - Back to menu (paused or game over)
  Q/Ctrl+C         - Quit

Difficulty options:
  easy   - Start at level 1 with gentle spawn scaling
  normal - Default
  hard   - Start deeper with faster spawn scaling
  fixed  - No difficulty progression

Examples:
  owlrun play
  owlrun play --daily
  owlrun play --character acrobat --difficulty hard
  owlrun play --config ./owlrun.yaml --watch`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagWatch, "watch", false, "Reload --config on change (applies from the next run)")
	playCmd.Flags().BoolVar(&flagBell, "bell", false, "Ring the terminal bell on stuns and swoops")
}

func runPlay(cmd *cobra.Command, _ []string) error {
	if flagWatch && flagConfig == "" {
		return errors.New("--watch needs --config")
	}

	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width, height = w, h
	}
	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
		Daily:    flagDaily,
	}

	deps := tui.SessionDeps{Logger: logger}

	store, err := storage.Open(flagDBPath)
	var backing storage.Progress
	if err != nil {
		logger.Warn("could not open database, progress will not be saved", "path", flagDBPath, "error", err)
		backing = storage.NewMemoryProgress()
	} else {
		defer store.Close()
		deps.Scores = store
		backing = store
	}

	progress := storage.NewAsyncProgress(backing, storage.DefaultQueueSize, logger)
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := progress.Close(ctx); err != nil {
			logger.Warn("progress not fully saved", "error", err)
		}
	}()
	if err := applyRunnerFlags(cmd, progress); err != nil {
		return err
	}
	deps.Progress = progress

	deps.Audio = audio.LogSink{Logger: logger}
	if flagBell {
		deps.Audio = audio.Multi{deps.Audio, audio.BellSink{W: os.Stderr}}
	}

	p := tui.NewProgram(deps, cfg)

	if flagWatch {
		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()
		go func() {
			err := config.Watch(ctx, flagConfig,
				func(c config.RunnerConfig) { p.Send(tui.ConfigReloadedMsg{Config: c}) },
				func(err error) { logger.Warn("config reload failed", "path", flagConfig, "error", err) },
			)
			if err != nil {
				logger.Error("config watch stopped", "error", err)
			}
		}()
	}

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}

// applyRunnerFlags persists --character and --equalize so the menu opens
// with them selected.
func applyRunnerFlags(cmd *cobra.Command, progress storage.Progress) error {
	if flagCharacter != "" {
		a, err := owlrun.LookupArchetype(flagCharacter)
		if err != nil {
			return err
		}
		if err := progress.SetCharacterIndex(int(a)); err != nil {
			return fmt.Errorf("saving runner: %w", err)
		}
	}
	if cmd.Flags().Changed("equalize") {
		if err := progress.SetEqualized(flagEqualize); err != nil {
			return fmt.Errorf("saving equalize: %w", err)
		}
	}
	return nil
}
