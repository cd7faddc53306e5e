// Package config provides YAML-based tuning for the runner and the
// difficulty curve that drives spawn rates, pattern tiers and owl timing.
package config

import (
	"errors"
	"fmt"
)

// RunnerConfig contains all tuning for Owl Run. Times are seconds, distances
// and sizes are world units, rates are per second.
type RunnerConfig struct {
	Track       TrackConfig       `yaml:"track"`
	Player      PlayerConfig      `yaml:"player"`
	Spawner     SpawnerConfig     `yaml:"spawner"`
	Owl         OwlConfig         `yaml:"owl"`
	Pickups     PickupConfig      `yaml:"pickups"`
	Progression ProgressionConfig `yaml:"progression"`
	Difficulty  DifficultyConfig  `yaml:"difficulty"`
}

// TrackConfig defines the world geometry.
type TrackConfig struct {
	LaneWidth float64 `yaml:"lane_width"`
	PlayerY   float64 `yaml:"player_y"`  // Fixed world y of the player
	SpawnY    float64 `yaml:"spawn_y"`   // Where entities appear ahead of the player
	DespawnY  float64 `yaml:"despawn_y"` // Entities past this y are pruned
	MaxStep   float64 `yaml:"max_step"`  // Upper bound on a single dt
}

// PlayerConfig defines player kinematics.
type PlayerConfig struct {
	Width             float64 `yaml:"width"`
	Height            float64 `yaml:"height"`
	BaseSpeed         float64 `yaml:"base_speed"`
	MaxSpeed          float64 `yaml:"max_speed"`
	LaneLerpRate      float64 `yaml:"lane_lerp_rate"`
	SnapEpsilon       float64 `yaml:"snap_epsilon"`
	JumpVelocity      float64 `yaml:"jump_velocity"`
	Gravity           float64 `yaml:"gravity"`
	HangThreshold     float64 `yaml:"hang_threshold"`  // Vertical speed under which apex hang applies
	HangMultiplier    float64 `yaml:"hang_multiplier"` // Gravity divisor near the apex
	JumpCooldown      float64 `yaml:"jump_cooldown"`
	DashMultiplier    float64 `yaml:"dash_multiplier"`
	DashDuration      float64 `yaml:"dash_duration"`
	DashCooldown      float64 `yaml:"dash_cooldown"`
	StunSpeedFraction float64 `yaml:"stun_speed_fraction"`
	InvulnDuration    float64 `yaml:"invuln_duration"`
	RecoveryRate      float64 `yaml:"recovery_rate"` // Fraction of base speed regained per second
	ChopRange         float64 `yaml:"chop_range"`
	MinStunFactor     float64 `yaml:"min_stun_factor"`
}

// SpawnerConfig defines spawn timers and obstacle behavior parameters.
type SpawnerConfig struct {
	ObstacleInterval      float64 `yaml:"obstacle_interval"`
	MinObstacleInterval   float64 `yaml:"min_obstacle_interval"`
	PickupInterval        float64 `yaml:"pickup_interval"`
	NPCInterval           float64 `yaml:"npc_interval"`
	MaxNPCs               int     `yaml:"max_npcs"`
	HostileChance         float64 `yaml:"hostile_chance"`
	ProjectileRange       float64 `yaml:"projectile_range"`
	ProjectileCooldownMin float64 `yaml:"projectile_cooldown_min"`
	ProjectileCooldownMax float64 `yaml:"projectile_cooldown_max"`
	ProjectileSpeed       float64 `yaml:"projectile_speed"`
	ProjectileStun        float64 `yaml:"projectile_stun"`
	BallSpeedFactor       float64 `yaml:"ball_speed_factor"`
}

// OwlConfig defines the pursuer's threat model and swoop timeline.
type OwlConfig struct {
	TriggerThreshold   float64 `yaml:"trigger_threshold"`
	Cooldown           float64 `yaml:"cooldown"`
	StunGain           float64 `yaml:"stun_gain"`
	ShadowGain         float64 `yaml:"shadow_gain"`
	Decay              float64 `yaml:"decay"`
	DashDecay          float64 `yaml:"dash_decay"`
	DodgeRelief        float64 `yaml:"dodge_relief"`
	WarningBase        float64 `yaml:"warning_base"`
	WarningStep        float64 `yaml:"warning_step"`
	WarningMin         float64 `yaml:"warning_min"`
	DoubleShadowBase   float64 `yaml:"double_shadow_base"`
	DoubleShadowStep   float64 `yaml:"double_shadow_step"`
	DoubleShadowMax    float64 `yaml:"double_shadow_max"`
	DecoyChance        float64 `yaml:"decoy_chance"`
	DecoyMinDifficulty int     `yaml:"decoy_min_difficulty"`
	StrikeDuration     float64 `yaml:"strike_duration"`
	CaptureWindow      float64 `yaml:"capture_window"`
	CaptureMargin      float64 `yaml:"capture_margin"`
	MinDwell           float64 `yaml:"min_dwell"`
	ShadowWidth        float64 `yaml:"shadow_width"`
	ShadowHeight       float64 `yaml:"shadow_height"`
}

// PickupConfig defines pickup hitboxes and effect magnitudes.
type PickupConfig struct {
	HitboxMargin      float64 `yaml:"hitbox_margin"`
	CollectDuration   float64 `yaml:"collect_duration"`
	BurstMultiplier   float64 `yaml:"burst_multiplier"`
	BurstThreatRelief float64 `yaml:"burst_threat_relief"`
	ThermosFactor     float64 `yaml:"thermos_factor"`
	LanternFactor     float64 `yaml:"lantern_factor"`
	LanternDuration   float64 `yaml:"lantern_duration"`
	SnowglobeFactor   float64 `yaml:"snowglobe_factor"`
	SnowglobeDuration float64 `yaml:"snowglobe_duration"`
}

// ProgressionConfig defines scoring and level lengths.
type ProgressionConfig struct {
	BaseDistance     float64 `yaml:"base_distance"`
	DistancePerLevel float64 `yaml:"distance_per_level"`
	PointsPerUnit    float64 `yaml:"points_per_unit"`
	StreakStep       float64 `yaml:"streak_step"`
	MaxMultiplier    float64 `yaml:"max_multiplier"`
	DodgeBonus       int     `yaml:"dodge_bonus"`
	ChopBonus        int     `yaml:"chop_bonus"`
	PickupBonus      int     `yaml:"pickup_bonus"`
	NPCPassBonus     int     `yaml:"npc_pass_bonus"`
	UpgradeOffers    int     `yaml:"upgrade_offers"`
}

// DifficultyConfig defines how difficulty follows the level index.
type DifficultyConfig struct {
	Enabled       bool    `yaml:"enabled"`        // false keeps difficulty at StartLevel
	StartLevel    int     `yaml:"start_level"`    // Level a new run begins on
	MaxDifficulty int     `yaml:"max_difficulty"` // Cap on the difficulty value
	SpawnStep     float64 `yaml:"spawn_step"`     // Obstacle rate gained per difficulty point
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset maps a CLI string to a preset. Unknown strings yield "".
func ParsePreset(s string) DifficultyPreset {
	switch DifficultyPreset(s) {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return DifficultyPreset(s)
	default:
		return ""
	}
}

// ApplyRunnerPreset modifies the config based on a difficulty preset.
func ApplyRunnerPreset(cfg *RunnerConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.StartLevel = 1
		cfg.Difficulty.MaxDifficulty = 4
		cfg.Owl.Cooldown *= 1.25
	case DifficultyNormal:
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.StartLevel = 1
	case DifficultyHard:
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.StartLevel = 3
		cfg.Owl.Cooldown *= 0.8
	case DifficultyFixed:
		cfg.Difficulty.Enabled = false
	}
}

// Validate reports every tuning value that would make the simulation
// degenerate (zero intervals, non-positive sizes and the like).
func (c RunnerConfig) Validate() error {
	var errs []error
	positive := []struct {
		name string
		v    float64
	}{
		{"track.lane_width", c.Track.LaneWidth},
		{"track.max_step", c.Track.MaxStep},
		{"player.width", c.Player.Width},
		{"player.height", c.Player.Height},
		{"player.base_speed", c.Player.BaseSpeed},
		{"player.gravity", c.Player.Gravity},
		{"player.hang_multiplier", c.Player.HangMultiplier},
		{"spawner.obstacle_interval", c.Spawner.ObstacleInterval},
		{"spawner.min_obstacle_interval", c.Spawner.MinObstacleInterval},
		{"spawner.pickup_interval", c.Spawner.PickupInterval},
		{"spawner.npc_interval", c.Spawner.NPCInterval},
		{"owl.warning_min", c.Owl.WarningMin},
		{"owl.strike_duration", c.Owl.StrikeDuration},
	}
	for _, p := range positive {
		if p.v <= 0 {
			errs = append(errs, fmt.Errorf("%s must be positive, got %v", p.name, p.v))
		}
	}
	if c.Player.MaxSpeed < c.Player.BaseSpeed {
		errs = append(errs, errors.New("player.max_speed must be >= player.base_speed"))
	}
	if c.Owl.CaptureWindow > c.Owl.StrikeDuration {
		errs = append(errs, errors.New("owl.capture_window must not exceed owl.strike_duration"))
	}
	if c.Track.DespawnY <= c.Track.PlayerY || c.Track.SpawnY >= c.Track.PlayerY {
		errs = append(errs, errors.New("track: spawn_y < player_y < despawn_y is required"))
	}
	if c.Difficulty.MaxDifficulty < 1 {
		errs = append(errs, errors.New("difficulty.max_difficulty must be at least 1"))
	}
	return errors.Join(errs...)
}
