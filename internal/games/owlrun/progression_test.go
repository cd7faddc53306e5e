package owlrun

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vovakirdan/owl-run/internal/config"
	"github.com/vovakirdan/owl-run/internal/rng"
)

func newTestProgression(level int, unlocked ...string) *Progression {
	return NewProgression(config.DefaultRunnerConfig().Progression, level, unlocked)
}

func TestProgressionLevelDistance(t *testing.T) {
	assert.Equal(t, 6000.0, newTestProgression(1).LevelDistance())
	assert.Equal(t, 9000.0, newTestProgression(3).LevelDistance())
	assert.Equal(t, 1, newTestProgression(0).Level, "levels start at 1")
}

func TestProgressionMultiplier(t *testing.T) {
	p := newTestProgression(1)
	assert.Equal(t, 1.0, p.Multiplier())

	for range 5 {
		p.AddBonus(0)
	}
	assert.InDelta(t, 1.5, p.Multiplier(), 1e-12)

	for range 100 {
		p.AddBonus(0)
	}
	assert.Equal(t, 3.0, p.Multiplier(), "multiplier is capped")

	p.BreakStreak()
	assert.Equal(t, 0, p.Streak)
	assert.Equal(t, 1.0, p.Multiplier())
	assert.True(t, p.StunnedLevel)
}

func TestProgressionScoring(t *testing.T) {
	p := newTestProgression(1)
	assert.False(t, p.AddDistance(100))
	assert.InDelta(t, 10, p.Score, 1e-9)
	assert.False(t, p.AddDistance(-5), "negative distance is ignored")
	assert.InDelta(t, 100, p.TotalDistance, 1e-9)

	gained := p.AddBonus(50)
	assert.InDelta(t, 50, gained, 1e-9)
	assert.Equal(t, 1, p.Streak)
	gained = p.AddBonus(50)
	assert.InDelta(t, 55, gained, 1e-9, "bonus uses the current multiplier")
	assert.Equal(t, 115, p.Points())
}

func TestProgressionCompletesLevel(t *testing.T) {
	p := newTestProgression(1)
	assert.False(t, p.AddDistance(5999))
	assert.True(t, p.AddDistance(1))

	p.BreakStreak()
	p.NextLevel()
	assert.Equal(t, 2, p.Level)
	assert.Zero(t, p.Distance)
	assert.Equal(t, 6000.0, p.TotalDistance, "total distance carries over")
	assert.False(t, p.StunnedLevel, "stun tracking is per level")
	assert.Equal(t, 7500.0, p.LevelDistance())
}

func TestProgressionUnlock(t *testing.T) {
	p := newTestProgression(1, AchievementLevel5)
	assert.True(t, p.Unlocked(AchievementLevel5))
	assert.False(t, p.Unlock(AchievementLevel5), "already unlocked")
	assert.True(t, p.Unlock(AchievementFirstChop))
	assert.False(t, p.Unlock(AchievementFirstChop))
	assert.Len(t, Achievements(), 5)
	for _, id := range Achievements() {
		assert.NotEqual(t, id, AchievementTitle(id), "%s needs a title", id)
	}
	assert.Equal(t, "mystery", AchievementTitle("mystery"))
}

func TestProgressionCloseCall(t *testing.T) {
	p := newTestProgression(1)
	assert.False(t, p.TrackThreat(0.4), "not armed yet")
	assert.False(t, p.TrackThreat(0.95))
	assert.False(t, p.TrackThreat(0.7))
	assert.True(t, p.TrackThreat(0.45))
	assert.False(t, p.TrackThreat(0.3), "fires once per arming")
}

func TestOfferUpgrades(t *testing.T) {
	r := rng.New(12)
	offers := OfferUpgrades(r, 3)
	assert.Len(t, offers, 3)
	seen := map[UpgradeKind]bool{}
	for _, u := range offers {
		assert.False(t, seen[u], "duplicate offer %s", u)
		seen[u] = true
	}

	all := OfferUpgrades(r, 50)
	assert.Len(t, all, int(upgradeCount))
	assert.Empty(t, OfferUpgrades(r, 0))

	a := OfferUpgrades(rng.New(4), 3)
	b := OfferUpgrades(rng.New(4), 3)
	assert.Equal(t, a, b)
}
