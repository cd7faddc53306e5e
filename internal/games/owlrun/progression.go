package owlrun

import (
	"math"

	"github.com/vovakirdan/owl-run/internal/config"
	"github.com/vovakirdan/owl-run/internal/rng"
)

// Achievement identifiers.
const (
	AchievementFirstChop   = "first_chop"
	AchievementDodgeMaster = "dodge_master"
	AchievementLevel5      = "level_5"
	AchievementUntouchable = "untouchable"
	AchievementCloseCall   = "close_call"
)

// Achievement thresholds.
const (
	dodgeMasterCount = 10
	closeCallHigh    = 0.9
	closeCallLow     = 0.5
)

// Achievements lists every achievement in display order.
func Achievements() []string {
	return []string{
		AchievementFirstChop,
		AchievementDodgeMaster,
		AchievementLevel5,
		AchievementUntouchable,
		AchievementCloseCall,
	}
}

var achievementTitles = map[string]string{
	AchievementFirstChop:   "First Chop: fell a tree with the axe",
	AchievementDodgeMaster: "Dodge Master: dodge 10 swoops in one run",
	AchievementLevel5:      "Deep Woods: reach level 5",
	AchievementUntouchable: "Untouchable: clear a level without a stun",
	AchievementCloseCall:   "Close Call: bring threat from 90% back under 50%",
}

// AchievementTitle returns a display line for id, or id itself if unknown.
func AchievementTitle(id string) string {
	if t, ok := achievementTitles[id]; ok {
		return t
	}
	return id
}

// Progression tracks level, distance, score and streak for one run.
type Progression struct {
	cfg config.ProgressionConfig

	Level         int
	Distance      float64 // Distance covered in the current level
	TotalDistance float64
	Score         float64
	Streak        int
	Dodges        int
	StunnedLevel  bool // Player was stunned during the current level
	Upgrades      []UpgradeKind

	closeCallArmed bool
	unlocked       map[string]bool
}

// NewProgression starts a run at level with the already-unlocked achievements.
func NewProgression(cfg config.ProgressionConfig, level int, unlocked []string) *Progression {
	if level < 1 {
		level = 1
	}
	p := &Progression{cfg: cfg, Level: level, unlocked: make(map[string]bool, len(unlocked))}
	for _, id := range unlocked {
		p.unlocked[id] = true
	}
	return p
}

// LevelDistance is the distance required to finish the current level.
func (p *Progression) LevelDistance() float64 {
	return p.cfg.BaseDistance + p.cfg.DistancePerLevel*float64(p.Level-1)
}

// Multiplier returns the streak score multiplier.
func (p *Progression) Multiplier() float64 {
	return math.Min(p.cfg.MaxMultiplier, 1+p.cfg.StreakStep*float64(p.Streak))
}

// Points returns the integer score.
func (p *Progression) Points() int {
	return int(p.Score)
}

// AddDistance scores distance and reports whether the level is complete.
func (p *Progression) AddDistance(d float64) bool {
	if d <= 0 {
		return false
	}
	p.Distance += d
	p.TotalDistance += d
	p.Score += d * p.cfg.PointsPerUnit * p.Multiplier()
	return p.Distance >= p.LevelDistance()
}

// AddBonus awards points at the current multiplier and extends the streak.
func (p *Progression) AddBonus(points int) float64 {
	gained := float64(points) * p.Multiplier()
	p.Score += gained
	p.Streak++
	return gained
}

// BreakStreak resets the streak after a stun.
func (p *Progression) BreakStreak() {
	p.Streak = 0
	p.StunnedLevel = true
}

// NextLevel advances to the next level keeping score and upgrades.
func (p *Progression) NextLevel() {
	p.Level++
	p.Distance = 0
	p.StunnedLevel = false
}

// Unlocked reports whether an achievement has been earned.
func (p *Progression) Unlocked(id string) bool {
	return p.unlocked[id]
}

// Unlock marks id earned. Returns true only the first time.
func (p *Progression) Unlock(id string) bool {
	if p.unlocked[id] {
		return false
	}
	p.unlocked[id] = true
	return true
}

// TrackThreat arms the close-call achievement above 0.9 threat and
// reports true when threat then falls below 0.5.
func (p *Progression) TrackThreat(threat float64) bool {
	if threat >= closeCallHigh {
		p.closeCallArmed = true
		return false
	}
	if p.closeCallArmed && threat < closeCallLow {
		p.closeCallArmed = false
		return true
	}
	return false
}

// OfferUpgrades draws n distinct upgrades from r.
func OfferUpgrades(r *rng.Stream, n int) []UpgradeKind {
	pool := Upgrades()
	if n > len(pool) {
		n = len(pool)
	}
	out := make([]UpgradeKind, 0, n)
	for range n {
		i := r.Intn(len(pool))
		out = append(out, pool[i])
		pool = append(pool[:i], pool[i+1:]...)
	}
	return out
}
