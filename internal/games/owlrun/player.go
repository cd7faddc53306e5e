package owlrun

import (
	"math"

	"github.com/vovakirdan/owl-run/internal/config"
	"github.com/vovakirdan/owl-run/internal/core"
)

// Lanes is the number of lanes on the track.
const Lanes = 5

// laneCenter returns the canonical x of a lane.
func laneCenter(track config.TrackConfig, lane int) float64 {
	return track.LaneWidth/2 + track.LaneWidth*float64(lane)
}

// Player is the runner's kinematic state.
type Player struct {
	Lane       int     // Lane the player is snapped to
	TargetLane int     // Lane the player is steering toward
	X          float64 // Horizontal world position
	JumpZ      float64 // Height above the ground
	JumpVel    float64 // Vertical velocity, positive is up
	Speed      float64 // Current forward speed

	Jumping      bool
	Stunned      bool
	Dashing      bool
	Invulnerable bool

	StunTimer    float64
	InvulnTimer  float64
	DashTimer    float64
	DashCooldown float64
	JumpCooldown float64

	HasAxe     bool    // Carries the chopping capability
	StunFactor float64 // Accumulated thermos reduction, floored

	Stats Stats
	Mods  Modifiers

	cfg   config.PlayerConfig
	track config.TrackConfig
}

// NewPlayer creates a player standing in the middle lane at base speed.
func NewPlayer(cfg config.RunnerConfig, stats Stats) *Player {
	p := &Player{cfg: cfg.Player, track: cfg.Track}
	p.Reset(stats)
	return p
}

// Reset returns the player to the middle lane with stats applied.
func (p *Player) Reset(stats Stats) {
	lane := Lanes / 2
	*p = Player{
		Lane:       lane,
		TargetLane: lane,
		X:          laneCenter(p.track, lane),
		StunFactor: 1,
		Stats:      stats,
		cfg:        p.cfg,
		track:      p.track,
	}
	p.Speed = p.BaseSpeed()
}

// SetStats replaces the attribute multipliers (after an upgrade).
func (p *Player) SetStats(stats Stats) {
	p.Stats = stats
}

// BaseSpeed is the character-scaled cruising speed.
func (p *Player) BaseSpeed() float64 {
	return p.cfg.BaseSpeed * p.Stats.Speed
}

// TargetSpeed is the speed the player eases toward when not stunned or dashing.
func (p *Player) TargetSpeed() float64 {
	return math.Min(p.BaseSpeed()*p.Mods.Factor(ModSpeed), p.cfg.MaxSpeed)
}

// Box returns the player's ground hitbox.
func (p *Player) Box() core.Box {
	return core.NewBox(p.X, p.track.PlayerY, p.cfg.Width, p.cfg.Height)
}

// Airborne reports whether the player is off the ground.
func (p *Player) Airborne() bool {
	return p.Jumping && p.JumpZ > 0
}

// MoveLeft shifts the target lane one to the left. Ignored while stunned.
func (p *Player) MoveLeft() bool {
	return p.steer(-1)
}

// MoveRight shifts the target lane one to the right. Ignored while stunned.
func (p *Player) MoveRight() bool {
	return p.steer(1)
}

func (p *Player) steer(dir int) bool {
	if p.Stunned {
		return false
	}
	next := core.Clamp(p.TargetLane+dir, 0, Lanes-1)
	if next == p.TargetLane {
		return false
	}
	p.TargetLane = next
	return true
}

// CanJump reports whether a jump intent would be honored now.
func (p *Player) CanJump() bool {
	return !p.Jumping && !p.Stunned && p.JumpCooldown <= 0
}

// Jump starts a jump if possible.
func (p *Player) Jump() bool {
	if !p.CanJump() {
		return false
	}
	p.Jumping = true
	p.JumpVel = p.cfg.JumpVelocity
	return true
}

// JumpFromLanding starts a jump asked for before touching down. The
// re-jump cooldown does not apply to it.
func (p *Player) JumpFromLanding() bool {
	if p.Jumping || p.Stunned {
		return false
	}
	p.JumpCooldown = 0
	return p.Jump()
}

// CanDash reports whether a dash intent would be honored now.
func (p *Player) CanDash() bool {
	return !p.Stunned && !p.Dashing && p.DashCooldown <= 0
}

// Dash starts a dash. The full cooldown starts immediately.
func (p *Player) Dash() bool {
	if !p.CanDash() {
		return false
	}
	p.Dashing = true
	p.DashTimer = p.cfg.DashDuration
	p.DashCooldown = p.cfg.DashCooldown * p.Stats.DashCooldown
	p.Speed = math.Min(p.BaseSpeed()*p.cfg.DashMultiplier, p.cfg.MaxSpeed)
	return true
}

// Stun applies a stun of the given base duration scaled by the character
// and thermos factors. A stun while already stunned or invulnerable is a
// no-op. Starting a stun ends any dash.
func (p *Player) Stun(base float64) bool {
	if p.Stunned || p.Invulnerable {
		return false
	}
	d := base * p.Stats.Stun * p.StunFactor
	if d <= 0 {
		return false
	}
	p.Stunned = true
	p.StunTimer = d
	p.Dashing = false
	p.DashTimer = 0
	p.Speed = p.stunSpeed()
	return true
}

func (p *Player) stunSpeed() float64 {
	return p.BaseSpeed() * p.cfg.StunSpeedFraction
}

// ReduceStuns applies a thermos: future stuns shrink by factor, floored.
func (p *Player) ReduceStuns(factor float64) {
	p.StunFactor = math.Max(p.StunFactor*factor, p.cfg.MinStunFactor)
}

// Burst multiplies the current speed; recovery eases it back to target.
func (p *Player) Burst(mult float64) {
	if p.Stunned {
		return
	}
	p.Speed = math.Min(p.Speed*mult, p.cfg.MaxSpeed)
}

// Update advances status timers, speed, lane interpolation and the jump.
// It returns true on the tick the player lands.
func (p *Player) Update(dt float64) bool {
	if p.JumpCooldown > 0 {
		p.JumpCooldown -= dt
	}
	if p.DashCooldown > 0 {
		p.DashCooldown -= dt
	}

	// Invulnerability only begins once a stun has ended.
	if p.Stunned {
		p.StunTimer -= dt
		if p.StunTimer <= 0 {
			p.Stunned = false
			p.StunTimer = 0
			p.Invulnerable = true
			p.InvulnTimer = p.cfg.InvulnDuration * p.Stats.Invuln
		}
	} else if p.Invulnerable {
		p.InvulnTimer -= dt
		if p.InvulnTimer <= 0 {
			p.Invulnerable = false
			p.InvulnTimer = 0
		}
	}

	if p.Dashing {
		p.DashTimer -= dt
		if p.DashTimer <= 0 {
			p.Dashing = false
			p.DashTimer = 0
		}
	}

	switch {
	case p.Stunned:
		p.Speed = p.stunSpeed()
	case p.Dashing:
		p.Speed = math.Min(p.BaseSpeed()*p.cfg.DashMultiplier, p.cfg.MaxSpeed)
	default:
		rate := p.cfg.RecoveryRate * p.Stats.Accel * p.cfg.BaseSpeed
		p.Speed = core.Approach(p.Speed, p.TargetSpeed(), rate*dt)
	}
	p.Speed = core.ClampF(p.Speed, 0, p.cfg.MaxSpeed)

	p.updateLane(dt)
	landed := p.updateJump(dt)
	p.Mods.Tick(dt)
	return landed
}

func (p *Player) updateLane(dt float64) {
	tx := laneCenter(p.track, p.TargetLane)
	rate := p.cfg.LaneLerpRate * p.Mods.Factor(ModSteering)
	p.X += (tx - p.X) * math.Min(1, rate*dt)
	if core.AbsF(tx-p.X) <= p.cfg.SnapEpsilon {
		p.X = tx
		p.Lane = p.TargetLane
	}
}

func (p *Player) updateJump(dt float64) bool {
	if !p.Jumping {
		return false
	}
	g := p.cfg.Gravity
	if core.AbsF(p.JumpVel) < p.cfg.HangThreshold {
		g /= p.cfg.HangMultiplier * p.Stats.Hang
	}
	p.JumpVel -= g * dt
	p.JumpZ += p.JumpVel * dt
	if p.JumpZ <= 0 {
		p.JumpZ = 0
		p.JumpVel = 0
		p.Jumping = false
		p.JumpCooldown = p.cfg.JumpCooldown
		return true
	}
	return false
}
