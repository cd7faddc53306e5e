package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/owl-run/internal/core"
	"github.com/vovakirdan/owl-run/internal/games/owlrun"
	"github.com/vovakirdan/owl-run/internal/registry"
)

// menuKeys only feeds the help line; input goes through KeyMapper.
type menuKeys struct {
	Mode      key.Binding
	Character key.Binding
	Equalize  key.Binding
	Start     key.Binding
	Scores    key.Binding
	Quit      key.Binding
}

func (k menuKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Mode, k.Character, k.Equalize, k.Start, k.Scores, k.Quit}
}

func (k menuKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

var defaultMenuKeys = menuKeys{
	Mode:      key.NewBinding(key.WithKeys("up", "down"), key.WithHelp("↑/↓", "mode")),
	Character: key.NewBinding(key.WithKeys("left", "right"), key.WithHelp("←/→", "runner")),
	Equalize:  key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "equalize")),
	Start:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "run")),
	Scores:    key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "scores")),
	Quit:      key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
}

var (
	menuTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	menuCardStyle  = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 2)
	menuActiveStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))
	menuDimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	statUpStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	statDownStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

// MenuModel picks a run mode, a character and the equalize setting.
type MenuModel struct {
	modes          []registry.ModeInfo
	cursor         int
	characters     []owlrun.Archetype
	character      int
	equalize       bool
	best           int
	width          int
	height         int
	config         core.RuntimeConfig
	keyMapper      *KeyMapper
	help           help.Model
	quitting       bool
	selected       bool
	openScoreboard bool
}

// NewMenuModel creates a menu preselecting the given character and equalize
// setting. best is shown in the header when positive.
func NewMenuModel(cfg core.RuntimeConfig, character owlrun.Archetype, equalize bool, best int) MenuModel {
	m := MenuModel{
		modes:      registry.List(),
		characters: owlrun.Archetypes(),
		equalize:   equalize,
		best:       best,
		width:      cfg.ScreenW,
		height:     cfg.ScreenH,
		config:     cfg,
		keyMapper:  NewKeyMapper(),
		help:       help.New(),
	}
	for i, a := range m.characters {
		if a == character {
			m.character = i
		}
	}
	if cfg.Daily {
		for i, mode := range m.modes {
			if mode.ID == owlrun.DailyID {
				m.cursor = i
			}
		}
	}
	return m
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.help.Width = msg.Width
		return m, nil
	}

	return m, nil
}

func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < len(m.modes)-1 {
			m.cursor++
		}

	case MenuActionLeft:
		if n := len(m.characters); n > 0 {
			m.character = (m.character - 1 + n) % n
		}

	case MenuActionRight:
		if n := len(m.characters); n > 0 {
			m.character = (m.character + 1) % n
		}

	case MenuActionToggle:
		m.equalize = !m.equalize

	case MenuActionSelect:
		m.selected = len(m.modes) > 0

	case MenuActionScoreboard:
		m.openScoreboard = true
	}

	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(menuTitleStyle.Render("O W L   R U N"), m.width))
	b.WriteString("\n")
	if m.best > 0 {
		b.WriteString(centerText(menuDimStyle.Render(fmt.Sprintf("best %d", m.best)), m.width))
	}
	b.WriteString("\n\n")

	for i, mode := range m.modes {
		line := "  " + mode.Title
		if i == m.cursor {
			line = menuActiveStyle.Render("> " + mode.Title)
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString(centerBlock(menuCardStyle.Render(m.characterCard()), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(m.help.View(defaultMenuKeys), m.width))
	b.WriteString("\n")

	return b.String()
}

func (m MenuModel) characterCard() string {
	a := m.Character()
	var b strings.Builder
	fmt.Fprintf(&b, "◀ %s ▶\n", menuActiveStyle.Render(a.String()))
	b.WriteString(menuDimStyle.Render(a.Description()))
	b.WriteString("\n\n")

	stats := owlrun.ComposeStats(a, nil, m.equalize)
	rows := []struct {
		name   string
		v      float64
		better bool // higher is better
	}{
		{"speed", stats.Speed, true},
		{"stun", stats.Stun, false},
		{"hang", stats.Hang, true},
		{"dash cd", stats.DashCooldown, false},
		{"recovery", stats.Accel, true},
		{"pickups", stats.PickupFreq, true},
		{"warning", stats.Warning, true},
		{"invuln", stats.Invuln, true},
	}
	for _, r := range rows {
		fmt.Fprintf(&b, "%-9s %s\n", r.name, statDelta(r.v, r.better))
	}

	eq := "off"
	if m.equalize {
		eq = "on (all stats neutral)"
	}
	b.WriteString("\nequalize " + eq)
	return b.String()
}

// statDelta formats a multiplier as a signed percentage colored by whether
// the change helps the runner.
func statDelta(v float64, higherIsBetter bool) string {
	pct := int(math.Round((v - 1) * 100))
	if pct == 0 {
		return menuDimStyle.Render("  ·")
	}
	s := fmt.Sprintf("%+d%%", pct)
	if (pct > 0) == higherIsBetter {
		return statUpStyle.Render(s)
	}
	return statDownStyle.Render(s)
}

// Selected reports whether a mode was chosen.
func (m MenuModel) Selected() bool {
	return m.selected
}

// Mode returns the highlighted mode ID.
func (m MenuModel) Mode() string {
	if len(m.modes) == 0 {
		return ""
	}
	return m.modes[m.cursor].ID
}

// Character returns the highlighted character.
func (m MenuModel) Character() owlrun.Archetype {
	if len(m.characters) == 0 {
		return owlrun.Runner
	}
	return m.characters[m.character]
}

// Equalize reports whether equalization is on.
func (m MenuModel) Equalize() bool {
	return m.equalize
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsScoreboard returns true if user requested scoreboard.
func (m MenuModel) WantsScoreboard() bool {
	return m.openScoreboard
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}

// centerBlock centers a multi-line block as a whole.
func centerBlock(block string, width int) string {
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, block)
}
