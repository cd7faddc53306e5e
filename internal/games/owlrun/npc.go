package owlrun

import (
	"math"

	"github.com/vovakirdan/owl-run/internal/config"
	"github.com/vovakirdan/owl-run/internal/core"
	"github.com/vovakirdan/owl-run/internal/rng"
)

// NPC wander and capture timings.
const (
	npcWanderMin   = 1.5
	npcWanderMax   = 3.5
	npcSpeedMin    = 0.55
	npcSpeedMax    = 0.8
	npcCaptureTime = 0.6
	npcLaneRate    = 6.0
	npcSize        = 30
)

// NPC is a decorative runner that wanders between lanes.
type NPC struct {
	Lane, TargetLane int
	X, Y             float64
	SpeedFrac        float64 // Fraction of the scroll speed it runs forward at
	WanderTimer      float64
	Captured         bool
	CaptureTimer     float64
	Passed           bool
	Active           bool
}

func newNPC(track config.TrackConfig, r *rng.Stream) *NPC {
	lane := r.Intn(Lanes)
	return &NPC{
		Lane:        lane,
		TargetLane:  lane,
		X:           laneCenter(track, lane),
		Y:           track.SpawnY,
		SpeedFrac:   r.Range(npcSpeedMin, npcSpeedMax),
		WanderTimer: r.Range(npcWanderMin, npcWanderMax),
		Active:      true,
	}
}

// Box returns the NPC hitbox.
func (n *NPC) Box() core.Box {
	return core.NewBox(n.X, n.Y, npcSize, npcSize)
}

// Update advects the NPC by what remains of the scroll after its own
// running and handles lane wandering and the capture animation.
func (n *NPC) Update(dt, scroll float64, track config.TrackConfig, r *rng.Stream) {
	if !n.Active {
		return
	}
	if n.Captured {
		n.CaptureTimer -= dt
		if n.CaptureTimer <= 0 {
			n.Active = false
		}
		return
	}
	n.Y += scroll * (1 - n.SpeedFrac)

	n.WanderTimer -= dt
	if n.WanderTimer <= 0 {
		step := 1
		if r.Chance(0.5) {
			step = -1
		}
		n.TargetLane = core.Clamp(n.TargetLane+step, 0, Lanes-1)
		n.WanderTimer = r.Range(npcWanderMin, npcWanderMax)
	}
	tx := laneCenter(track, n.TargetLane)
	n.X += (tx - n.X) * math.Min(1, npcLaneRate*dt)
	if core.AbsF(tx-n.X) < 1 {
		n.X = tx
		n.Lane = n.TargetLane
	}
}

// Capture starts the capture animation. Returns false if already captured.
func (n *NPC) Capture() bool {
	if n.Captured || !n.Active {
		return false
	}
	n.Captured = true
	n.CaptureTimer = npcCaptureTime
	return true
}
