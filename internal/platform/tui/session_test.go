package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/owl-run/internal/config"
	"github.com/vovakirdan/owl-run/internal/games/owlrun"
	"github.com/vovakirdan/owl-run/internal/storage"
)

func send(t *testing.T, m SessionModel, msg tea.Msg) SessionModel {
	t.Helper()
	next, _ := m.Update(msg)
	sm, ok := next.(SessionModel)
	require.True(t, ok)
	return sm
}

func newTestSession(t *testing.T, progress storage.Progress) SessionModel {
	t.Helper()
	tuning := config.DefaultRunnerConfig()
	return NewSessionModel(SessionDeps{
		Scores:   &fakeScores{},
		Progress: progress,
		Renderer: plainRenderer(),
		Tuning:   &tuning,
	}, testConfig(), "tester")
}

func TestSessionMenuRestoresSavedChoices(t *testing.T) {
	progress := storage.NewMemoryProgress()
	require.NoError(t, progress.SetCharacterIndex(int(owlrun.Scout)))
	require.NoError(t, progress.SetEqualized(true))
	require.NoError(t, progress.SetBestScore(1234))

	m := newTestSession(t, progress)
	assert.Equal(t, owlrun.Scout, m.menu.Character())
	assert.True(t, m.menu.Equalize())
	assert.Contains(t, m.View(), "best 1234")
	assert.Contains(t, m.View(), "Scout")
}

func TestSessionStartsRunWithMenuChoices(t *testing.T) {
	progress := storage.NewMemoryProgress()
	m := newTestSession(t, progress)

	m = send(t, m, runes("d")) // next character
	m = send(t, m, runes("e")) // equalize on
	require.Equal(t, owlrun.Sprinter, m.menu.Character())

	m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, viewGame, m.current)
	require.NotNil(t, m.game)

	og, ok := m.game.game.(*owlrun.Game)
	require.True(t, ok)
	assert.Equal(t, owlrun.Sprinter, og.Character())
	assert.True(t, og.Equalized())
	assert.Equal(t, int(owlrun.Sprinter), progress.CharacterIndex(), "choice is persisted on reset")
	assert.True(t, progress.Equalized())
	assert.Contains(t, m.View(), "SCORE")
}

func TestSessionBackFromPausedRun(t *testing.T) {
	m := newTestSession(t, storage.NewMemoryProgress())
	m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, viewGame, m.current)

	m = send(t, m, runes("p"))
	m = send(t, m, tick(*m.game))
	require.True(t, m.game.State().Paused)

	m = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, viewMenu, m.current)
	assert.Nil(t, m.game)
}

func TestSessionScoreboardRoundTrip(t *testing.T) {
	progress := storage.NewMemoryProgress()
	require.NoError(t, progress.UnlockAchievement(owlrun.AchievementFirstChop))
	m := newTestSession(t, progress)

	m = send(t, m, tea.KeyMsg{Type: tea.KeyTab})
	require.Equal(t, viewScores, m.current)
	view := m.View()
	assert.Contains(t, view, "BEST RUNS")
	assert.Contains(t, view, "No runs recorded yet")

	m = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, viewMenu, m.current)
}

func TestSessionQuitFromMenu(t *testing.T) {
	m := newTestSession(t, nil)
	next, cmd := m.Update(runes("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
	assert.Empty(t, next.View())
}

func TestAchievementLine(t *testing.T) {
	assert.Equal(t, "● "+owlrun.AchievementTitle(owlrun.AchievementLevel5), AchievementLine(owlrun.AchievementLevel5, true))
	assert.Equal(t, "○ "+owlrun.AchievementTitle(owlrun.AchievementLevel5), AchievementLine(owlrun.AchievementLevel5, false))
}

func TestStatDeltaSign(t *testing.T) {
	assert.Contains(t, statDelta(1.1, true), "+10%")
	assert.Contains(t, statDelta(0.75, false), "-25%")
	assert.Contains(t, statDelta(1, true), "·")
}
