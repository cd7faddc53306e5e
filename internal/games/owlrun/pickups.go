package owlrun

import "github.com/vovakirdan/owl-run/internal/core"

// PickupType represents the five collectible kinds.
type PickupType int

const (
	PickupAxe       PickupType = iota // Grants the chopping capability
	PickupBurst                       // Instant speed burst, lowers threat
	PickupThermos                     // Shortens future stuns
	PickupLantern                     // Shorter owl warnings for a while
	PickupSnowglobe                   // Slower obstacle spawns for a while
	pickupTypeCount
)

// Glyph returns the display character for a pickup type.
func (p PickupType) Glyph() rune {
	switch p {
	case PickupAxe:
		return '⚒'
	case PickupBurst:
		return '»'
	case PickupThermos:
		return 'θ'
	case PickupLantern:
		return '☼'
	case PickupSnowglobe:
		return '❄'
	default:
		return '?'
	}
}

// String returns the name of the pickup type.
func (p PickupType) String() string {
	switch p {
	case PickupAxe:
		return "axe"
	case PickupBurst:
		return "burst"
	case PickupThermos:
		return "thermos"
	case PickupLantern:
		return "lantern"
	case PickupSnowglobe:
		return "snowglobe"
	default:
		return "unknown"
	}
}

// PickupState is the pickup lifecycle.
type PickupState int

const (
	PickupActive PickupState = iota
	PickupCollected
	PickupExpired
)

// pickupSize is the visual square edge of a pickup.
const pickupSize = 30

// Pickup is a collectible on the track.
type Pickup struct {
	Type  PickupType
	Lane  int
	X, Y  float64
	State PickupState
	Anim  float64 // Remaining collected-animation time
	anim0 float64
}

// Box returns the visual box.
func (p *Pickup) Box() core.Box {
	return core.NewBox(p.X, p.Y, pickupSize, pickupSize)
}

// HitBox returns the collection box, grown by margin.
func (p *Pickup) HitBox(margin float64) core.Box {
	return p.Box().Expand(margin)
}

// Collect switches the pickup into its shrink-and-fade animation.
func (p *Pickup) Collect(duration float64) {
	if p.State != PickupActive {
		return
	}
	p.State = PickupCollected
	p.Anim = duration
	p.anim0 = duration
	if duration <= 0 {
		p.State = PickupExpired
	}
}

// Update advances the collected animation.
func (p *Pickup) Update(dt float64) {
	if p.State != PickupCollected {
		return
	}
	p.Anim -= dt
	if p.Anim <= 0 {
		p.Anim = 0
		p.State = PickupExpired
	}
}

// Scale returns the draw scale in [0, 1]; active pickups are full size.
func (p *Pickup) Scale() float64 {
	switch p.State {
	case PickupActive:
		return 1
	case PickupCollected:
		if p.anim0 <= 0 {
			return 0
		}
		return p.Anim / p.anim0
	default:
		return 0
	}
}
