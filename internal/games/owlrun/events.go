package owlrun

import "github.com/vovakirdan/owl-run/internal/audio"

// EventKind identifies something that happened during a tick.
type EventKind int

const (
	EventSpawn EventKind = iota
	EventPickupSpawn
	EventNPCSpawn
	EventJump
	EventLand
	EventDash
	EventStun
	EventChop
	EventPickup
	EventIceCrack
	EventProjectile
	EventSwoopWarning
	EventScreech
	EventCapture
	EventDodge
	EventNPCPass
	EventLevelComplete
	EventUpgrade
	EventAchievement
	EventGameOver
)

var eventNames = [...]string{
	EventSpawn:         "spawn",
	EventPickupSpawn:   "pickup_spawn",
	EventNPCSpawn:      "npc_spawn",
	EventJump:          "jump",
	EventLand:          "land",
	EventDash:          "dash",
	EventStun:          "stun",
	EventChop:          "chop",
	EventPickup:        "pickup",
	EventIceCrack:      "ice_crack",
	EventProjectile:    "projectile",
	EventSwoopWarning:  "swoop_warning",
	EventScreech:       "screech",
	EventCapture:       "capture",
	EventDodge:         "dodge",
	EventNPCPass:       "npc_pass",
	EventLevelComplete: "level_complete",
	EventUpgrade:       "upgrade",
	EventAchievement:   "achievement",
	EventGameOver:      "game_over",
}

// String returns the event name.
func (k EventKind) String() string {
	if k < 0 || int(k) >= len(eventNames) {
		return "unknown"
	}
	return eventNames[k]
}

// Cue maps an event to its sound cue, if it has one.
func (k EventKind) Cue() (audio.Cue, bool) {
	switch k {
	case EventJump:
		return audio.CueJump, true
	case EventLand:
		return audio.CueLand, true
	case EventDash:
		return audio.CueDash, true
	case EventStun:
		return audio.CueStun, true
	case EventChop:
		return audio.CueChop, true
	case EventPickup:
		return audio.CuePickup, true
	case EventIceCrack:
		return audio.CueIceCrack, true
	case EventSwoopWarning:
		return audio.CueSwoopWarning, true
	case EventScreech:
		return audio.CueScreech, true
	case EventCapture:
		return audio.CueCapture, true
	case EventDodge:
		return audio.CueDodge, true
	case EventLevelComplete:
		return audio.CueLevelComplete, true
	default:
		return 0, false
	}
}

// Event is one entry in the per-tick event log.
type Event struct {
	T      float64 // Simulation time
	Kind   EventKind
	Lane   int     // Lane involved, -1 if none
	Detail string  // Obstacle/pickup/pattern/achievement name
	Value  float64 // Kind-specific: stun seconds, screech intensity, points
	Spawn  *SpawnEvent
}
