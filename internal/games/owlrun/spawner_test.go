package owlrun

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/owl-run/internal/config"
	"github.com/vovakirdan/owl-run/internal/rng"
)

func newTestSpawner(seed int64) *Spawner {
	return NewSpawner(config.DefaultRunnerConfig(), rng.New(seed))
}

func baseContext() SpawnContext {
	return SpawnContext{Difficulty: 1, SpawnMultiplier: 1, SlowFactor: 1, PickupFreq: 1}
}

// runSpawner collects every batch over seconds of simulated time.
func runSpawner(s *Spawner, ctx SpawnContext, seconds float64) SpawnBatch {
	const dt = 1.0 / 60
	var all SpawnBatch
	for i := range int(seconds / dt) {
		ctx.Now = float64(i+1) * dt
		b := s.Update(dt, ctx)
		all.Obstacles = append(all.Obstacles, b.Obstacles...)
		all.Pickups = append(all.Pickups, b.Pickups...)
		all.NPCs = append(all.NPCs, b.NPCs...)
		all.Events = append(all.Events, b.Events...)
	}
	return all
}

func TestObstacleInterval(t *testing.T) {
	s := newTestSpawner(1)
	ctx := baseContext()

	assert.InDelta(t, 1.6, s.ObstacleInterval(ctx), 1e-12)

	ctx.SpawnMultiplier = 1.9
	assert.InDelta(t, 1.6/1.9, s.ObstacleInterval(ctx), 1e-12)

	ctx.SpawnMultiplier = 10
	assert.InDelta(t, 0.55, s.ObstacleInterval(ctx), 1e-12, "interval floors at the minimum")

	ctx.SlowFactor = 1.5
	assert.InDelta(t, 0.825, s.ObstacleInterval(ctx), 1e-12, "snowglobe stretches the floored interval")

	zero := SpawnContext{}
	assert.InDelta(t, 1.6, s.ObstacleInterval(zero), 1e-12, "zero factors are neutral")
}

func TestPickupInterval(t *testing.T) {
	s := newTestSpawner(1)
	ctx := baseContext()
	assert.InDelta(t, 7.5, s.PickupInterval(ctx), 1e-12)
	ctx.PickupFreq = 1.3
	assert.InDelta(t, 7.5/1.3, s.PickupInterval(ctx), 1e-12)
}

func TestSpawnerRowCount(t *testing.T) {
	batch := runSpawner(newTestSpawner(5), baseContext(), 17)
	assert.Len(t, batch.Events, 10)

	occupied := 0
	for _, ev := range batch.Events {
		occupied += len(ev.Lanes)
		assert.Equal(t, TierBase, ev.Tier, "difficulty 1 only draws base patterns")
	}
	assert.Len(t, batch.Obstacles, occupied)
	for _, o := range batch.Obstacles {
		assert.Equal(t, -80.0, o.Y)
		assert.True(t, o.Active)
	}
}

func TestSpawnerDeterministic(t *testing.T) {
	ctx := baseContext()
	ctx.Difficulty = 4
	ctx.SpawnMultiplier = 1.54

	a := runSpawner(newTestSpawner(99), ctx, 60)
	b := runSpawner(newTestSpawner(99), ctx, 60)

	require.Equal(t, len(a.Events), len(b.Events))
	for i := range a.Events {
		assert.Equal(t, a.Events[i].Pattern, b.Events[i].Pattern)
		assert.Equal(t, a.Events[i].Lanes, b.Events[i].Lanes)
	}
	require.Equal(t, len(a.Pickups), len(b.Pickups))
	for i := range a.Pickups {
		assert.Equal(t, a.Pickups[i].Type, b.Pickups[i].Type)
		assert.Equal(t, a.Pickups[i].Lane, b.Pickups[i].Lane)
	}
	for i := range a.Obstacles {
		assert.Equal(t, a.Obstacles[i].Hostile, b.Obstacles[i].Hostile)
	}
}

func TestSpawnerRestrictsDuringWarning(t *testing.T) {
	ctx := baseContext()
	ctx.Difficulty = 6
	ctx.WarningActive = true

	batch := runSpawner(newTestSpawner(3), ctx, 60)
	require.NotEmpty(t, batch.Events)
	for _, ev := range batch.Events {
		assert.Equal(t, TierBase, ev.Tier, "pattern %s drawn during a warning", ev.Pattern)
	}
}

func TestSpawnerAlwaysLeavesFreeLane(t *testing.T) {
	ctx := baseContext()
	ctx.Difficulty = 6
	ctx.SpawnMultiplier = 1.9

	batch := runSpawner(newTestSpawner(11), ctx, 120)
	require.NotEmpty(t, batch.Events)
	hard := 0
	for _, ev := range batch.Events {
		assert.Less(t, len(ev.Lanes), Lanes)
		if ev.Tier == TierHard {
			hard++
		}
	}
	assert.Positive(t, hard, "hard patterns should appear at difficulty 6")
}

func TestSpawnerNPCCap(t *testing.T) {
	ctx := baseContext()
	batch := runSpawner(newTestSpawner(8), ctx, 20.5)
	assert.Len(t, batch.NPCs, 5)

	ctx.ActiveNPCs = 3
	batch = runSpawner(newTestSpawner(8), ctx, 20.5)
	assert.Empty(t, batch.NPCs)
}

func TestSpawnerPickups(t *testing.T) {
	batch := runSpawner(newTestSpawner(21), baseContext(), 31)
	assert.Len(t, batch.Pickups, 4)
	for _, pk := range batch.Pickups {
		assert.Equal(t, PickupActive, pk.State)
		assert.Equal(t, laneCenter(config.DefaultRunnerConfig().Track, pk.Lane), pk.X)
	}
}

func TestSpawnerResetClearsTimers(t *testing.T) {
	s := newTestSpawner(4)
	ctx := baseContext()
	runSpawner(s, ctx, 1.5)
	s.Reset()

	// After reset the first row needs the full interval again.
	batch := runSpawner(s, ctx, 1.5)
	assert.Empty(t, batch.Events)
}

func TestHostileFiguresGetCooldown(t *testing.T) {
	s := newTestSpawner(2)
	ctx := baseContext()
	var batch SpawnBatch
	for range 500 {
		s.spawnRow(ctx, &batch)
	}
	figures := 0
	for _, o := range batch.Obstacles {
		if o.Type != ObstacleFigure {
			continue
		}
		figures++
		assert.GreaterOrEqual(t, o.FireCooldown, 1.2)
		assert.LessOrEqual(t, o.FireCooldown, 2.4)
	}
	assert.Positive(t, figures)
}
