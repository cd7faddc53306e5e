package config

import (
	_ "embed"
)

//go:embed defaults/owlrun.yaml
var defaultRunnerYAML []byte

// DefaultRunnerConfig returns the hardcoded Owl Run configuration. It mirrors
// defaults/owlrun.yaml and is used when the embedded file cannot be parsed.
func DefaultRunnerConfig() RunnerConfig {
	return RunnerConfig{
		Track: TrackConfig{
			LaneWidth: 100,
			PlayerY:   500,
			SpawnY:    -80,
			DespawnY:  640,
			MaxStep:   0.05,
		},
		Player: PlayerConfig{
			Width:             40,
			Height:            40,
			BaseSpeed:         300,
			MaxSpeed:          540,
			LaneLerpRate:      12,
			SnapEpsilon:       1,
			JumpVelocity:      560,
			Gravity:           1900,
			HangThreshold:     140,
			HangMultiplier:    1.5,
			JumpCooldown:      0.12,
			DashMultiplier:    1.8,
			DashDuration:      0.35,
			DashCooldown:      2.4,
			StunSpeedFraction: 0.35,
			InvulnDuration:    1.0,
			RecoveryRate:      1.5,
			ChopRange:         140,
			MinStunFactor:     0.4,
		},
		Spawner: SpawnerConfig{
			ObstacleInterval:      1.6,
			MinObstacleInterval:   0.55,
			PickupInterval:        7.5,
			NPCInterval:           4,
			MaxNPCs:               3,
			HostileChance:         0.6,
			ProjectileRange:       360,
			ProjectileCooldownMin: 1.2,
			ProjectileCooldownMax: 2.4,
			ProjectileSpeed:       420,
			ProjectileStun:        0.45,
			BallSpeedFactor:       1.4,
		},
		Owl: OwlConfig{
			TriggerThreshold:   0.3,
			Cooldown:           4,
			StunGain:           0.30,
			ShadowGain:         0.35,
			Decay:              0.04,
			DashDecay:          0.12,
			DodgeRelief:        0.10,
			WarningBase:        1.6,
			WarningStep:        0.12,
			WarningMin:         0.7,
			DoubleShadowBase:   0.2,
			DoubleShadowStep:   0.1,
			DoubleShadowMax:    0.8,
			DecoyChance:        0.5,
			DecoyMinDifficulty: 3,
			StrikeDuration:     0.5,
			CaptureWindow:      0.15,
			CaptureMargin:      30,
			MinDwell:           0.2,
			ShadowWidth:        90,
			ShadowHeight:       90,
		},
		Pickups: PickupConfig{
			HitboxMargin:      20,
			CollectDuration:   0.3,
			BurstMultiplier:   1.5,
			BurstThreatRelief: 0.15,
			ThermosFactor:     0.85,
			LanternFactor:     0.6,
			LanternDuration:   6,
			SnowglobeFactor:   1.5,
			SnowglobeDuration: 8,
		},
		Progression: ProgressionConfig{
			BaseDistance:     6000,
			DistancePerLevel: 1500,
			PointsPerUnit:    0.1,
			StreakStep:       0.1,
			MaxMultiplier:    3,
			DodgeBonus:       50,
			ChopBonus:        30,
			PickupBonus:      20,
			NPCPassBonus:     10,
			UpgradeOffers:    3,
		},
		Difficulty: DifficultyConfig{
			Enabled:       true,
			StartLevel:    1,
			MaxDifficulty: 6,
			SpawnStep:     0.18,
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultRunnerYAML
}
