package owlrun

import (
	"math"

	"github.com/vovakirdan/owl-run/internal/config"
	"github.com/vovakirdan/owl-run/internal/rng"
)

// SpawnContext is the per-tick state the spawner depends on.
type SpawnContext struct {
	Now             float64
	Difficulty      int
	SpawnMultiplier float64 // Difficulty divisor for the obstacle interval
	SlowFactor      float64 // Snowglobe multiplier on the obstacle interval
	PickupFreq      float64 // Character pickup frequency
	WarningActive   bool    // Owl has a shadow on the ground
	ActiveNPCs      int
}

// SpawnEvent records one obstacle row.
type SpawnEvent struct {
	T       float64
	Pattern string
	Tier    Tier
	Type    ObstacleType
	Lanes   []int
}

// SpawnBatch holds everything created in one update.
type SpawnBatch struct {
	Obstacles []*Obstacle
	Pickups   []*Pickup
	NPCs      []*NPC
	Events    []SpawnEvent
}

// Spawner creates obstacle rows, pickups and NPCs on independent timers.
type Spawner struct {
	cfg   config.SpawnerConfig
	track config.TrackConfig
	rng   *rng.Stream

	obstacleTimer float64
	pickupTimer   float64
	npcTimer      float64
}

// NewSpawner creates a spawner drawing from r.
func NewSpawner(cfg config.RunnerConfig, r *rng.Stream) *Spawner {
	return &Spawner{cfg: cfg.Spawner, track: cfg.Track, rng: r}
}

// Reset zeroes every timer.
func (s *Spawner) Reset() {
	s.obstacleTimer = 0
	s.pickupTimer = 0
	s.npcTimer = 0
}

// ObstacleInterval returns the seconds between obstacle rows.
func (s *Spawner) ObstacleInterval(ctx SpawnContext) float64 {
	mul := ctx.SpawnMultiplier
	if mul <= 0 {
		mul = 1
	}
	slow := ctx.SlowFactor
	if slow <= 0 {
		slow = 1
	}
	return math.Max(s.cfg.MinObstacleInterval, s.cfg.ObstacleInterval/mul) * slow
}

// PickupInterval returns the seconds between pickups.
func (s *Spawner) PickupInterval(ctx SpawnContext) float64 {
	freq := ctx.PickupFreq
	if freq <= 0 {
		freq = 1
	}
	return s.cfg.PickupInterval / freq
}

// Update advances the timers by dt and returns whatever spawned.
func (s *Spawner) Update(dt float64, ctx SpawnContext) SpawnBatch {
	var batch SpawnBatch

	s.obstacleTimer += dt
	if interval := s.ObstacleInterval(ctx); s.obstacleTimer >= interval {
		s.obstacleTimer -= interval
		s.spawnRow(ctx, &batch)
	}

	s.pickupTimer += dt
	if interval := s.PickupInterval(ctx); s.pickupTimer >= interval {
		s.pickupTimer -= interval
		t := PickupType(s.rng.Intn(int(pickupTypeCount)))
		lane := s.rng.Intn(Lanes)
		batch.Pickups = append(batch.Pickups, &Pickup{
			Type: t,
			Lane: lane,
			X:    laneCenter(s.track, lane),
			Y:    s.track.SpawnY,
		})
	}

	s.npcTimer += dt
	if s.npcTimer >= s.cfg.NPCInterval {
		s.npcTimer -= s.cfg.NPCInterval
		if ctx.ActiveNPCs < s.cfg.MaxNPCs {
			batch.NPCs = append(batch.NPCs, newNPC(s.track, s.rng))
		}
	}

	return batch
}

// ChoosePattern draws one pattern uniformly from the eligible pool.
func (s *Spawner) ChoosePattern(difficulty int, restricted bool) Pattern {
	pool := EligiblePatterns(difficulty, restricted)
	return pool[s.rng.Intn(len(pool))]
}

func (s *Spawner) spawnRow(ctx SpawnContext, batch *SpawnBatch) {
	p := s.ChoosePattern(ctx.Difficulty, ctx.WarningActive)
	lanes := p.Occupied()
	for _, lane := range lanes {
		o := newObstacle(p.Type, lane, laneCenter(s.track, lane), s.track.SpawnY)
		o.Tier = p.Tier
		if p.Type == ObstacleFigure {
			o.Hostile = s.rng.Chance(s.cfg.HostileChance)
			o.FireCooldown = s.rng.Range(s.cfg.ProjectileCooldownMin, s.cfg.ProjectileCooldownMax)
		}
		batch.Obstacles = append(batch.Obstacles, o)
	}
	batch.Events = append(batch.Events, SpawnEvent{
		T:       ctx.Now,
		Pattern: p.Name,
		Tier:    p.Tier,
		Type:    p.Type,
		Lanes:   lanes,
	})
}
