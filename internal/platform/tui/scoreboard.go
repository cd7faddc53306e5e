package tui

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/owl-run/internal/games/owlrun"
	"github.com/vovakirdan/owl-run/internal/registry"
	"github.com/vovakirdan/owl-run/internal/storage"
)

// Scoreboard layout constants
const (
	minWidthForSidebar = 96  // Minimum width to show the achievements sidebar
	sidebarWidth       = 34  // Width of achievements sidebar
	maxScores          = 100 // Max scores to load
)

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	NextMode key.Binding
	PrevMode key.Binding
	Back     key.Binding
	Quit     key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextMode, k.PrevMode, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextMode, k.PrevMode},
		{k.Back, k.Quit},
	}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		NextMode: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab/→", "next mode"),
		),
		PrevMode: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab/←", "prev mode"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ScoreboardModel lists the best runs per mode next to the unlocked
// achievements.
type ScoreboardModel struct {
	modes       []registry.ModeInfo
	modeCursor  int
	scores      Scores
	progress    storage.Progress
	entries     []storage.ScoreEntry
	loadErr     error
	table       table.Model
	help        help.Model
	keys        ScoreboardKeyMap
	width       int
	height      int
	quitting    bool
	goingBack   bool
	showSidebar bool
}

// NewScoreboardModel creates a scoreboard. Either source may be nil.
func NewScoreboardModel(scores Scores, progress storage.Progress, width, height int) ScoreboardModel {
	h := help.New()
	h.ShowAll = false

	m := ScoreboardModel{
		modes:       registry.List(),
		scores:      scores,
		progress:    progress,
		keys:        DefaultScoreboardKeyMap(),
		help:        h,
		width:       width,
		height:      height,
		showSidebar: width >= minWidthForSidebar,
	}
	m.table = m.createTable()
	if len(m.modes) > 0 {
		m.loadScores(m.modes[0].ID)
	}
	return m
}

func (m *ScoreboardModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Rank", Width: 5},
		{Title: "Score", Width: 8},
		{Title: "Lv", Width: 3},
		{Title: "Runner", Width: 9},
		{Title: "Ended", Width: 8},
		{Title: "Date", Width: 12},
	}

	tableWidth := m.width - 8
	if m.showSidebar {
		tableWidth -= sidebarWidth + 4
	}
	if tableWidth < 52 {
		// Drop the reason column on narrow terminals.
		columns = slices.Delete(columns, 4, 5)
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(3, m.height-9)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

func (m *ScoreboardModel) loadScores(modeID string) {
	m.entries, m.loadErr = nil, nil
	if m.scores != nil {
		m.entries, m.loadErr = m.scores.TopScores(modeID, maxScores)
	}
	m.updateTableRows()
}

func (m *ScoreboardModel) updateTableRows() {
	withReason := len(m.table.Columns()) == 6
	rows := make([]table.Row, len(m.entries))
	for i, e := range m.entries {
		runner := e.Character
		if runner == "" {
			runner = "-"
		}
		row := table.Row{
			fmt.Sprintf("#%d", i+1),
			fmt.Sprintf("%d", e.Score),
			fmt.Sprintf("%d", e.Level),
			runner,
		}
		if withReason {
			row = append(row, e.Reason)
		}
		row = append(row, e.CreatedAt.Format("Jan 02 15:04"))
		rows[i] = row
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, nil

		case key.Matches(msg, m.keys.NextMode):
			if len(m.modes) > 0 {
				m.modeCursor = (m.modeCursor + 1) % len(m.modes)
				m.loadScores(m.modes[m.modeCursor].ID)
			}
			return m, nil

		case key.Matches(msg, m.keys.PrevMode):
			if n := len(m.modes); n > 0 {
				m.modeCursor = (m.modeCursor - 1 + n) % n
				m.loadScores(m.modes[m.modeCursor].ID)
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.showSidebar = m.width >= minWidthForSidebar
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		MarginBottom(1)

	title := "BEST RUNS"
	if len(m.modes) > 0 {
		title = fmt.Sprintf("BEST RUNS - %s", m.modes[m.modeCursor].Title)
	}
	b.WriteString(titleStyle.Render(centerText(title, m.width)))
	b.WriteString("\n\n")

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	tableBox := boxStyle.Render(m.renderTableContent())

	if m.showSidebar {
		side := boxStyle.Width(sidebarWidth).Render(m.renderAchievements())
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, tableBox, "  ", side))
	} else {
		b.WriteString(centerBlock(tableBox, m.width))
		b.WriteString("\n")
		b.WriteString(centerBlock(m.renderAchievementSummary(), m.width))
	}

	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

func (m ScoreboardModel) renderTableContent() string {
	emptyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Italic(true).
		Padding(2, 4)
	switch {
	case m.loadErr != nil:
		return emptyStyle.Render("Could not load scores:\n" + m.loadErr.Error())
	case len(m.entries) == 0:
		return emptyStyle.Render("No runs recorded yet.\nOutrun the owl to set one!")
	}
	return m.table.View()
}

// unlocked returns the set of unlocked achievements and the best score.
func (m ScoreboardModel) unlocked() (map[string]bool, int) {
	got := map[string]bool{}
	if m.progress == nil {
		return got, 0
	}
	for _, id := range m.progress.Achievements() {
		got[id] = true
	}
	return got, m.progress.BestScore()
}

func (m ScoreboardModel) renderAchievements() string {
	got, best := m.unlocked()
	done := lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	todo := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	var b strings.Builder
	fmt.Fprintf(&b, "Best score %d\n\n", best)
	b.WriteString("Achievements\n")
	for _, id := range owlrun.Achievements() {
		line := AchievementLine(id, got[id])
		if got[id] {
			b.WriteString(done.Render(line))
		} else {
			b.WriteString(todo.Render(line))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (m ScoreboardModel) renderAchievementSummary() string {
	got, best := m.unlocked()
	n := 0
	for _, id := range owlrun.Achievements() {
		if got[id] {
			n++
		}
	}
	return fmt.Sprintf("best %d · achievements %d/%d", best, n, len(owlrun.Achievements()))
}

// AchievementLine renders one achievement with its unlock mark.
func AchievementLine(id string, unlocked bool) string {
	mark := "○"
	if unlocked {
		mark = "●"
	}
	return mark + " " + owlrun.AchievementTitle(id)
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}
