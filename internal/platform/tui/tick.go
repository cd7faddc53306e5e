// Package tui runs Owl Run in a terminal with Bubble Tea. It owns the tick
// loop, key mapping, the mode and character menu, the scoreboard and the
// SSH server.
package tui

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/owl-run/internal/config"
)

// TickMsg is sent to trigger a game simulation tick. Run tags the loop it
// belongs to so ticks left over from a finished run are ignored.
type TickMsg struct {
	Run  uint64
	Time time.Time
}

var lastRun atomic.Uint64

func nextRunID() uint64 {
	return lastRun.Add(1)
}

// ConfigReloadedMsg carries tuning reloaded from disk. It applies from the
// next run.
type ConfigReloadedMsg struct {
	Config config.RunnerConfig
}

// tickCmd schedules the next tick of run after interval.
func tickCmd(run uint64, interval time.Duration) tea.Cmd {
	if interval <= 0 {
		interval = time.Second / 60
	}
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{Run: run, Time: t}
	})
}
