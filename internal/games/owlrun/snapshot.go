package owlrun

import "math"

// Snapshot is a flattened view of the run for determinism checks and the
// headless simulator. Uses primitive types only for stable comparison.
type Snapshot struct {
	Tick       uint64
	Time       float64
	Seed       int64
	Phase      string
	Reason     string
	Level      int
	Difficulty int
	Score      int
	Streak     int
	Dodges     int
	Distance   float64

	PlayerLane   int
	PlayerTarget int
	PlayerX      float64
	PlayerSpeed  float64
	JumpZ        float64
	Stunned      bool
	Invulnerable bool
	HasAxe       bool

	Threat    float64
	OwlState  string
	Shadows   int
	Strikes   int
	Cooldown  float64
	Modifiers int

	// Each obstacle is 3 ints: Type, Lane, rounded Y
	ObstacleData []int
	PickupCount  int
	NPCCount     int
}

// Snapshot returns the current game state as a Snapshot.
func (g *Game) Snapshot() Snapshot {
	obstacleData := make([]int, 0, len(g.obstacles)*3)
	for _, o := range g.obstacles {
		obstacleData = append(obstacleData, int(o.Type), o.Lane, int(math.Round(o.Y)))
	}

	p := g.player
	return Snapshot{
		Tick:       g.tick,
		Time:       g.now,
		Seed:       g.seed,
		Phase:      g.phase.String(),
		Reason:     g.reason.String(),
		Level:      g.prog.Level,
		Difficulty: g.Difficulty(),
		Score:      g.prog.Points(),
		Streak:     g.prog.Streak,
		Dodges:     g.prog.Dodges,
		Distance:   g.prog.TotalDistance,

		PlayerLane:   p.Lane,
		PlayerTarget: p.TargetLane,
		PlayerX:      p.X,
		PlayerSpeed:  p.Speed,
		JumpZ:        p.JumpZ,
		Stunned:      p.Stunned,
		Invulnerable: p.Invulnerable,
		HasAxe:       p.HasAxe,

		Threat:    g.owl.Threat,
		OwlState:  g.owl.State.String(),
		Shadows:   len(g.owl.Shadows),
		Strikes:   len(g.owl.Strikes),
		Cooldown:  g.owl.Cooldown,
		Modifiers: p.Mods.Len(),

		ObstacleData: obstacleData,
		PickupCount:  len(g.pickups),
		NPCCount:     len(g.npcs),
	}
}

// Hash returns a simple hash of the snapshot for determinism testing.
func (snap *Snapshot) Hash() uint64 {
	h := snap.Tick
	mix := func(v uint64) { h = h*31 + v }

	mix(uint64(snap.Seed))       //#nosec G115 -- hash computation
	mix(uint64(snap.Level))      //#nosec G115 -- hash computation
	mix(uint64(snap.Score))      //#nosec G115 -- hash computation
	mix(uint64(snap.Streak))     //#nosec G115 -- hash computation
	mix(uint64(snap.PlayerLane)) //#nosec G115 -- hash computation
	mix(math.Float64bits(snap.PlayerX))
	mix(math.Float64bits(snap.PlayerSpeed))
	mix(math.Float64bits(snap.JumpZ))
	mix(math.Float64bits(snap.Threat))
	mix(math.Float64bits(snap.Distance))
	mix(uint64(snap.Shadows)) //#nosec G115 -- hash computation
	mix(uint64(snap.Strikes)) //#nosec G115 -- hash computation

	for _, v := range snap.ObstacleData {
		mix(uint64(v)) //#nosec G115 -- hash computation
	}
	mix(uint64(snap.PickupCount)) //#nosec G115 -- hash computation
	mix(uint64(snap.NPCCount))    //#nosec G115 -- hash computation

	return h
}
