package tui

import (
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/owl-run/internal/audio"
	"github.com/vovakirdan/owl-run/internal/config"
	"github.com/vovakirdan/owl-run/internal/core"
	"github.com/vovakirdan/owl-run/internal/games/owlrun"
	"github.com/vovakirdan/owl-run/internal/registry"
	"github.com/vovakirdan/owl-run/internal/storage"
)

// SessionDeps are the collaborators shared by every run in a session.
type SessionDeps struct {
	Scores   Scores           // Optional score table
	Progress storage.Progress // Cross-run progression; defaults to in-memory
	Audio    audio.Sink       // Optional
	Logger   *log.Logger      // Optional
	Renderer *ScreenRenderer  // Optional
	Tuning   *config.RunnerConfig
}

type view int

const (
	viewMenu view = iota
	viewGame
	viewScores
)

// SessionModel runs the whole flow: menu -> game -> menu, with the
// scoreboard one key away. Local play and SSH sessions both use it.
type SessionModel struct {
	deps     SessionDeps
	config   core.RuntimeConfig
	username string
	current  view
	menu     MenuModel
	game     *GameModel
	scores   ScoreboardModel
	quitting bool
}

// NewSessionModel creates a session opening on the menu.
func NewSessionModel(deps SessionDeps, cfg core.RuntimeConfig, username string) SessionModel {
	if deps.Progress == nil {
		deps.Progress = storage.NewMemoryProgress()
	}
	if deps.Logger == nil {
		deps.Logger = log.New(io.Discard)
	}
	if deps.Renderer == nil {
		deps.Renderer = NewScreenRenderer(nil)
	}
	m := SessionModel{
		deps:     deps,
		config:   cfg,
		username: username,
	}
	m.menu = m.newMenu()
	return m
}

func (m SessionModel) newMenu() MenuModel {
	p := m.deps.Progress
	return NewMenuModel(m.config, owlrun.ArchetypeFromIndex(p.CharacterIndex()), p.Equalized(), p.BestScore())
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
	case ConfigReloadedMsg:
		cfg := msg.Config
		m.deps.Tuning = &cfg
	}

	switch m.current {
	case viewGame:
		return m.updateGame(msg)
	case viewScores:
		return m.updateScores(msg)
	}
	return m.updateMenu(msg)
}

func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.menu.Update(msg)
	if menu, ok := next.(MenuModel); ok {
		m.menu = menu
	}

	switch {
	case m.menu.IsQuitting():
		m.quitting = true
		return m, tea.Quit

	case m.menu.WantsScoreboard():
		m.scores = NewScoreboardModel(m.deps.Scores, m.deps.Progress, m.config.ScreenW, m.config.ScreenH)
		m.current = viewScores
		return m, m.scores.Init()

	case m.menu.Selected():
		return m.startGame()
	}

	return m, cmd
}

func (m SessionModel) startGame() (tea.Model, tea.Cmd) {
	m.config = m.menu.Config()
	game, err := registry.Create(m.menu.Mode())
	if err != nil {
		m.deps.Logger.Error("cannot start mode", "mode", m.menu.Mode(), "error", err)
		m.menu = m.newMenu()
		return m, nil
	}

	if og, ok := game.(*owlrun.Game); ok {
		og.SetStore(m.deps.Progress)
		og.SetAudio(m.deps.Audio)
		og.SetLogger(m.deps.Logger)
		og.SetCharacter(m.menu.Character())
		og.SetEqualize(m.menu.Equalize())
		if m.deps.Tuning != nil {
			og.SetConfig(*m.deps.Tuning)
		}
	}

	opts := []GameOption{WithRenderer(m.deps.Renderer), WithLogger(m.deps.Logger)}
	if m.deps.Scores != nil {
		opts = append(opts, WithScores(m.deps.Scores))
	}
	gm := NewGameModel(game, m.config, opts...)
	m.game = &gm
	m.current = viewGame
	m.deps.Logger.Info("run started", "user", m.username, "mode", game.ID(), "runner", m.menu.Character())
	return m, m.game.Init()
}

func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.game.Update(msg)
	if gm, ok := next.(GameModel); ok {
		m.game = &gm
	}

	if m.game.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.game.BackToMenu() {
		m.game = nil
		m.current = viewMenu
		m.menu = m.newMenu()
		return m, m.menu.Init()
	}
	return m, cmd
}

func (m SessionModel) updateScores(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.scores.Update(msg)
	if sb, ok := next.(ScoreboardModel); ok {
		m.scores = sb
	}

	if m.scores.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.scores.IsGoingBack() {
		m.current = viewMenu
		m.menu = m.newMenu()
		return m, m.menu.Init()
	}
	return m, cmd
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}
	switch m.current {
	case viewGame:
		return m.game.View()
	case viewScores:
		return m.scores.View()
	}
	return m.menu.View()
}

// NewProgram creates a local session program on the alternate screen.
// Callers may Send it ConfigReloadedMsg values while it runs.
func NewProgram(deps SessionDeps, cfg core.RuntimeConfig) *tea.Program {
	return tea.NewProgram(NewSessionModel(deps, cfg, "local"), tea.WithAltScreen())
}
