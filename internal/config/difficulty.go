package config

// DifficultyManager maps the level index to a capped difficulty value and
// the rate multipliers derived from it.
type DifficultyManager struct {
	cfg DifficultyConfig
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	if cfg.MaxDifficulty < 1 {
		cfg.MaxDifficulty = 1
	}
	if cfg.StartLevel < 1 {
		cfg.StartLevel = 1
	}
	return &DifficultyManager{cfg: cfg}
}

// IsEnabled returns whether difficulty follows the level.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled
}

// StartLevel returns the level a new run begins on.
func (d *DifficultyManager) StartLevel() int {
	return d.cfg.StartLevel
}

// Difficulty returns the difficulty for a level: the level itself capped at
// MaxDifficulty, or the start level when progression is disabled. The result
// is monotonic in level and never below 1.
func (d *DifficultyManager) Difficulty(level int) int {
	if !d.cfg.Enabled {
		level = d.cfg.StartLevel
	}
	if level < 1 {
		level = 1
	}
	if level > d.cfg.MaxDifficulty {
		return d.cfg.MaxDifficulty
	}
	return level
}

// SpawnMultiplier returns the divisor applied to the obstacle interval.
// Difficulty 1 yields 1.0.
func (d *DifficultyManager) SpawnMultiplier(level int) float64 {
	return 1.0 + d.cfg.SpawnStep*float64(d.Difficulty(level)-1)
}
