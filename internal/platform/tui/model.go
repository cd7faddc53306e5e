package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/owl-run/internal/config"
	"github.com/vovakirdan/owl-run/internal/core"
	"github.com/vovakirdan/owl-run/internal/games/owlrun"
	"github.com/vovakirdan/owl-run/internal/registry"
	"github.com/vovakirdan/owl-run/internal/storage"
)

var _ owlrun.ProgressionStore = (*storage.Store)(nil)

// Scores is the score table the UI writes finished runs to and reads the
// scoreboard from.
type Scores interface {
	SaveRun(e storage.ScoreEntry) (int64, error)
	TopScores(gameID string, limit int) ([]storage.ScoreEntry, error)
}

// tunable is implemented by modes that accept reloaded tuning.
type tunable interface {
	SetConfig(cfg config.RunnerConfig)
}

// GameOption configures a GameModel.
type GameOption func(*GameModel)

// WithScores records finished runs in s.
func WithScores(s Scores) GameOption {
	return func(m *GameModel) { m.scores = s }
}

// WithRenderer draws with r instead of the default renderer.
func WithRenderer(r *ScreenRenderer) GameOption {
	return func(m *GameModel) {
		if r != nil {
			m.renderer = r
		}
	}
}

// WithLogger logs to l.
func WithLogger(l *log.Logger) GameOption {
	return func(m *GameModel) {
		if l != nil {
			m.logger = l
		}
	}
}

// GameModel drives one mode at a fixed tick rate.
type GameModel struct {
	game       registry.Game
	run        uint64
	screen     *core.Screen
	renderer   *ScreenRenderer
	scores     Scores
	logger     *log.Logger
	config     core.RuntimeConfig
	keyMapper  *KeyMapper
	inputFrame core.InputFrame
	gameState  core.GameState
	quitting   bool
	backToMenu bool
	scoreSaved bool // Whether the current game over has been recorded
}

// NewGameModel creates a model for game.
func NewGameModel(game registry.Game, cfg core.RuntimeConfig, opts ...GameOption) GameModel {
	m := GameModel{
		game:       game,
		run:        nextRunID(),
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		logger:     log.New(io.Discard),
		config:     cfg,
		keyMapper:  NewKeyMapper(),
		inputFrame: core.NewInputFrame(),
	}
	for _, opt := range opts {
		opt(&m)
	}
	if m.renderer == nil {
		m.renderer = NewScreenRenderer(nil)
	}
	return m
}

// Init resets the game and starts the tick loop.
func (m GameModel) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.run, m.config.TickDuration())
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		// The run keeps going; rendering adapts to the new size.
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil

	case ConfigReloadedMsg:
		if t, ok := m.game.(tunable); ok {
			t.SetConfig(msg.Config)
			m.logger.Info("tuning reloaded, applies from the next run")
		}
		return m, nil

	case TickMsg:
		if msg.Run != m.run {
			return m, nil
		}
		return m.handleTick()
	}

	return m, nil
}

func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	action, isQuit := m.keyMapper.MapKey(msg)
	if isQuit {
		m.quitting = true
		return m, tea.Quit
	}
	if action == core.ActionBack && (m.gameState.GameOver || m.gameState.Paused) {
		m.backToMenu = true
		return m, nil
	}
	if action != core.ActionNone {
		m.inputFrame.Set(action)
	}
	return m, nil
}

func (m GameModel) handleTick() (tea.Model, tea.Cmd) {
	if m.backToMenu || m.quitting {
		return m, nil
	}

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State
	// Fresh frame: the game may keep the one it was handed.
	m.inputFrame = core.NewInputFrame()

	switch {
	case !m.gameState.GameOver:
		m.scoreSaved = false
	case !m.scoreSaved:
		m.recordRun()
		m.scoreSaved = true
	}

	return m, tickCmd(m.run, m.config.TickDuration())
}

func (m *GameModel) recordRun() {
	if m.scores == nil || m.gameState.Score <= 0 {
		return
	}
	entry := runEntry(m.game, m.gameState)
	if _, err := m.scores.SaveRun(entry); err != nil {
		m.logger.Warn("could not save score", "game", entry.GameID, "error", err)
		return
	}
	m.logger.Debug("run recorded", "game", entry.GameID, "score", entry.Score, "level", entry.Level)
}

// runEntry describes a finished run, with owl run details when available.
func runEntry(g registry.Game, st core.GameState) storage.ScoreEntry {
	e := storage.ScoreEntry{GameID: g.ID(), Score: st.Score, Level: 1}
	if og, ok := g.(*owlrun.Game); ok {
		e.Level = og.Progression().Level
		e.Character = og.Character().String()
		e.Seed = og.Seed()
		e.Reason = og.Reason().String()
	}
	return e
}

// saveScreenshot writes the current frame as plain text.
func (m *GameModel) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		m.logger.Warn("could not save screenshot", "error", err)
		return
	}
	dir := filepath.Join(home, ".owlrun", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("could not save screenshot", "error", err)
		return
	}

	name := fmt.Sprintf("%s_%s.txt", m.game.ID(), time.Now().Format("20060102_150405"))
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("could not save screenshot", "error", err)
		return
	}
	m.logger.Info("screenshot saved", "path", path)
}

// View renders the current state to a string for display.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}
	m.game.Render(m.screen)
	return m.renderer.Render(m.screen)
}

// State returns the last observed game state.
func (m GameModel) State() core.GameState {
	return m.gameState
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}
