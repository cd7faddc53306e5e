package owlrun

import (
	"math"

	"github.com/vovakirdan/owl-run/internal/core"
)

// ObstacleType is one of the eight obstacle kinds.
type ObstacleType int

const (
	ObstacleLog ObstacleType = iota
	ObstacleFigure
	ObstacleTree
	ObstacleBall
	ObstacleIcePatch
	ObstacleThinIce
	ObstacleSnowMound
	ObstacleBranch
	obstacleTypeCount
)

// HitEffect is the response applied when the player touches an obstacle.
type HitEffect int

const (
	EffectStun        HitEffect = iota // Plain stun
	EffectHostileStun                  // Stun only if the figure is hostile
	EffectChoppable                    // Stun unless the player carries an axe
	EffectSteer                        // Steering modifier, no stun
	EffectCrack                        // One-shot stun plus speed modifier
	EffectSlow                         // Speed modifier, no stun
)

// Behavior describes how an obstacle type looks and reacts to contact.
type Behavior struct {
	Name        string
	Glyph       rune
	W, H        float64
	Jumpable    bool    // Airborne players pass over it
	BaseStun    float64 // Seconds, zero means no stun
	Effect      HitEffect
	Rolls       bool         // Moves toward the player faster than the scroll
	Mod         ModifierKind // Modifier applied by steer/crack/slow effects
	ModValue    float64
	ModDuration float64
}

var behaviors = [obstacleTypeCount]Behavior{
	ObstacleLog:       {Name: "log", Glyph: '═', W: 80, H: 30, Jumpable: true, BaseStun: 0.6, Effect: EffectStun},
	ObstacleFigure:    {Name: "figure", Glyph: '♟', W: 36, H: 50, BaseStun: 0.5, Effect: EffectHostileStun},
	ObstacleTree:      {Name: "tree", Glyph: '♣', W: 50, H: 60, BaseStun: 0.8, Effect: EffectChoppable},
	ObstacleBall:      {Name: "ball", Glyph: '●', W: 40, H: 40, Jumpable: true, BaseStun: 0.6, Effect: EffectStun, Rolls: true},
	ObstacleIcePatch:  {Name: "ice_patch", Glyph: '~', W: 90, H: 60, Effect: EffectSteer, Mod: ModSteering, ModValue: 0.4, ModDuration: 1.5},
	ObstacleThinIce:   {Name: "thin_ice", Glyph: '≈', W: 90, H: 50, BaseStun: 0.4, Effect: EffectCrack, Mod: ModSpeed, ModValue: 0.7, ModDuration: 2},
	ObstacleSnowMound: {Name: "snow_mound", Glyph: '∩', W: 70, H: 30, Jumpable: true, Effect: EffectSlow, Mod: ModSpeed, ModValue: 0.6, ModDuration: 1.2},
	ObstacleBranch:    {Name: "branch", Glyph: '─', W: 90, H: 20, Jumpable: true, BaseStun: 0.5, Effect: EffectStun},
}

// Behavior returns the behavior table entry for t.
func (t ObstacleType) Behavior() Behavior {
	if t < 0 || t >= obstacleTypeCount {
		return Behavior{Name: "unknown", Glyph: '?'}
	}
	return behaviors[t]
}

// String returns the obstacle name.
func (t ObstacleType) String() string {
	return t.Behavior().Name
}

// Obstacle is a single obstacle instance on the track.
type Obstacle struct {
	Type   ObstacleType
	Lane   int
	X, Y   float64
	Active bool

	Hostile      bool    // Figures only
	FireCooldown float64 // Seconds until a hostile figure may throw again
	Cracked      bool    // Thin ice only
	Touched      bool    // Contact already resolved
	Tier         Tier
}

func newObstacle(t ObstacleType, lane int, x, y float64) *Obstacle {
	return &Obstacle{Type: t, Lane: lane, X: x, Y: y, Active: true}
}

// Box returns the obstacle hitbox.
func (o *Obstacle) Box() core.Box {
	b := o.Type.Behavior()
	return core.NewBox(o.X, o.Y, b.W, b.H)
}

// Glyph returns the rune to draw, reflecting per-instance state.
func (o *Obstacle) Glyph() rune {
	switch {
	case o.Type == ObstacleFigure && o.Hostile:
		return '♜'
	case o.Type == ObstacleThinIce && o.Cracked:
		return '×'
	default:
		return o.Type.Behavior().Glyph
	}
}

// Projectile is thrown by a hostile figure toward the player.
type Projectile struct {
	X, Y   float64
	VX, VY float64
	Active bool
}

// projectileSize is the square hitbox edge of a projectile.
const projectileSize = 16

// Box returns the projectile hitbox.
func (p *Projectile) Box() core.Box {
	return core.NewBox(p.X, p.Y, projectileSize, projectileSize)
}

// aimProjectile returns a projectile launched from (x, y) toward (tx, ty).
func aimProjectile(x, y, tx, ty, speed float64) *Projectile {
	dx, dy := tx-x, ty-y
	dist := math.Hypot(dx, dy)
	if dist == 0 {
		return &Projectile{X: x, Y: y, VY: speed, Active: true}
	}
	return &Projectile{X: x, Y: y, VX: dx / dist * speed, VY: dy / dist * speed, Active: true}
}
