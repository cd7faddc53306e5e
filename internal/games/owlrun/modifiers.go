package owlrun

// ModifierKind selects which attribute a timed modifier scales.
type ModifierKind int

const (
	ModSteering      ModifierKind = iota // Lane-change responsiveness
	ModSpeed                             // Target running speed
	ModWarning                           // Owl warning duration
	ModSpawnInterval                     // Obstacle spawn interval
)

// String returns a short label for HUD display.
func (k ModifierKind) String() string {
	switch k {
	case ModSteering:
		return "steer"
	case ModSpeed:
		return "speed"
	case ModWarning:
		return "warn"
	case ModSpawnInterval:
		return "slow"
	default:
		return "?"
	}
}

// Modifier is a multiplicative factor that expires after Remaining seconds.
type Modifier struct {
	Kind      ModifierKind
	Value     float64
	Remaining float64
}

// Modifiers is the player's list of active timed modifiers.
// Several modifiers of the same kind multiply together.
type Modifiers struct {
	list []Modifier
}

// Add appends a modifier. Non-positive durations are ignored.
func (m *Modifiers) Add(kind ModifierKind, value, duration float64) {
	if duration <= 0 || value <= 0 {
		return
	}
	m.list = append(m.list, Modifier{Kind: kind, Value: value, Remaining: duration})
}

// Factor returns the product of all active modifiers of kind (1 if none).
func (m *Modifiers) Factor(kind ModifierKind) float64 {
	f := 1.0
	for _, mod := range m.list {
		if mod.Kind == kind {
			f *= mod.Value
		}
	}
	return f
}

// Active reports whether any modifier of kind is in effect.
func (m *Modifiers) Active(kind ModifierKind) bool {
	for _, mod := range m.list {
		if mod.Kind == kind {
			return true
		}
	}
	return false
}

// Tick advances every modifier by dt and drops the expired ones.
// Order of the survivors is preserved.
func (m *Modifiers) Tick(dt float64) {
	kept := m.list[:0]
	for _, mod := range m.list {
		mod.Remaining -= dt
		if mod.Remaining > 0 {
			kept = append(kept, mod)
		}
	}
	m.list = kept
}

// Len returns the number of active modifiers.
func (m *Modifiers) Len() int {
	return len(m.list)
}

// List returns a copy of the active modifiers.
func (m *Modifiers) List() []Modifier {
	out := make([]Modifier, len(m.list))
	copy(out, m.list)
	return out
}

// Clear removes every modifier.
func (m *Modifiers) Clear() {
	m.list = m.list[:0]
}
