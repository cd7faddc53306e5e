package owlrun

import (
	"fmt"
	"strconv"
	"strings"
)

// Stats holds the multiplicative attribute modifiers of a runner.
// 1.0 is neutral for every field.
type Stats struct {
	Speed        float64 // Base running speed
	Stun         float64 // Stun duration
	Hang         float64 // Extra gravity reduction near the jump apex
	DashCooldown float64 // Dash cooldown length
	Accel        float64 // Speed recovery rate
	PickupFreq   float64 // Pickup spawn frequency
	Warning      float64 // Owl warning duration
	Invuln       float64 // Post-stun invulnerability duration
}

// NeutralStats returns stats with every multiplier at 1.0.
func NeutralStats() Stats {
	return Stats{
		Speed:        1,
		Stun:         1,
		Hang:         1,
		DashCooldown: 1,
		Accel:        1,
		PickupFreq:   1,
		Warning:      1,
		Invuln:       1,
	}
}

// Mul returns the component-wise product of s and o.
func (s Stats) Mul(o Stats) Stats {
	return Stats{
		Speed:        s.Speed * o.Speed,
		Stun:         s.Stun * o.Stun,
		Hang:         s.Hang * o.Hang,
		DashCooldown: s.DashCooldown * o.DashCooldown,
		Accel:        s.Accel * o.Accel,
		PickupFreq:   s.PickupFreq * o.PickupFreq,
		Warning:      s.Warning * o.Warning,
		Invuln:       s.Invuln * o.Invuln,
	}
}

const (
	minStat = 0.25
	maxStat = 4.0
)

func clampStat(v float64) float64 {
	if v < minStat {
		return minStat
	}
	if v > maxStat {
		return maxStat
	}
	return v
}

// Clamped keeps every multiplier inside [0.25, 4] so long upgrade chains
// cannot produce zero or runaway values.
func (s Stats) Clamped() Stats {
	return Stats{
		Speed:        clampStat(s.Speed),
		Stun:         clampStat(s.Stun),
		Hang:         clampStat(s.Hang),
		DashCooldown: clampStat(s.DashCooldown),
		Accel:        clampStat(s.Accel),
		PickupFreq:   clampStat(s.PickupFreq),
		Warning:      clampStat(s.Warning),
		Invuln:       clampStat(s.Invuln),
	}
}

// Archetype is a selectable character.
type Archetype int

const (
	Runner Archetype = iota
	Sprinter
	Bruiser
	Acrobat
	Scout
	archetypeCount
)

type archetypeInfo struct {
	name  string
	blurb string
	stats Stats
}

var archetypes = [archetypeCount]archetypeInfo{
	Runner: {"Runner", "Balanced, no strengths or weaknesses", NeutralStats()},
	Sprinter: {"Sprinter", "Fast and quick to recover, stuns hit harder", Stats{
		Speed: 1.1, Stun: 1.15, Hang: 1, DashCooldown: 1, Accel: 1.2, PickupFreq: 1, Warning: 1, Invuln: 1,
	}},
	Bruiser: {"Bruiser", "Shrugs off stuns, a little slower", Stats{
		Speed: 0.95, Stun: 0.75, Hang: 1, DashCooldown: 1.1, Accel: 1, PickupFreq: 1, Warning: 1, Invuln: 1.2,
	}},
	Acrobat: {"Acrobat", "Floaty jumps and frequent dashes", Stats{
		Speed: 1, Stun: 1, Hang: 1.3, DashCooldown: 0.8, Accel: 1, PickupFreq: 1, Warning: 1, Invuln: 0.9,
	}},
	Scout: {"Scout", "Spots the owl early and finds more pickups", Stats{
		Speed: 1, Stun: 1.05, Hang: 1, DashCooldown: 1, Accel: 0.9, PickupFreq: 1.3, Warning: 1.25, Invuln: 1,
	}},
}

// Archetypes returns every selectable character in menu order.
func Archetypes() []Archetype {
	out := make([]Archetype, 0, archetypeCount)
	for a := Runner; a < archetypeCount; a++ {
		out = append(out, a)
	}
	return out
}

// ArchetypeFromIndex maps a persisted index to an archetype, falling back
// to Runner for anything out of range.
func ArchetypeFromIndex(i int) Archetype {
	if i < 0 || i >= int(archetypeCount) {
		return Runner
	}
	return Archetype(i)
}

// ParseArchetype accepts a name (case-insensitive) or a menu index.
func ParseArchetype(s string) (Archetype, bool) {
	for a := Runner; a < archetypeCount; a++ {
		if strings.EqualFold(archetypes[a].name, s) {
			return a, true
		}
	}
	if i, err := strconv.Atoi(s); err == nil && i >= 0 && i < int(archetypeCount) {
		return Archetype(i), true
	}
	return Runner, false
}

// LookupArchetype is ParseArchetype with an error naming the valid runners.
func LookupArchetype(s string) (Archetype, error) {
	if a, ok := ParseArchetype(s); ok {
		return a, nil
	}
	names := make([]string, 0, archetypeCount)
	for a := Runner; a < archetypeCount; a++ {
		names = append(names, fmt.Sprintf("%d=%s", a, strings.ToLower(archetypes[a].name)))
	}
	return Runner, fmt.Errorf("unknown runner %q (valid: %s)", s, strings.Join(names, ", "))
}

// String returns the character name.
func (a Archetype) String() string {
	if a < 0 || a >= archetypeCount {
		return "?"
	}
	return archetypes[a].name
}

// Description returns a one-line summary for menus.
func (a Archetype) Description() string {
	if a < 0 || a >= archetypeCount {
		return ""
	}
	return archetypes[a].blurb
}

// Stats returns the character's base multipliers.
func (a Archetype) Stats() Stats {
	if a < 0 || a >= archetypeCount {
		return NeutralStats()
	}
	return archetypes[a].stats
}

// UpgradeKind is a permanent run upgrade offered on level completion.
type UpgradeKind int

const (
	UpgradeSwiftFeet UpgradeKind = iota
	UpgradeThickCoat
	UpgradeFeatherJump
	UpgradeQuickDash
	UpgradeStrongLegs
	UpgradeKeenEye
	UpgradeScavenger
	upgradeCount
)

type upgradeInfo struct {
	id    string
	title string
	apply func(*Stats)
}

var upgrades = [upgradeCount]upgradeInfo{
	UpgradeSwiftFeet:   {"swift_feet", "Swift Feet: +5% speed", func(s *Stats) { s.Speed *= 1.05 }},
	UpgradeThickCoat:   {"thick_coat", "Thick Coat: -10% stun", func(s *Stats) { s.Stun *= 0.9 }},
	UpgradeFeatherJump: {"feather_jump", "Feather Jump: +10% hang", func(s *Stats) { s.Hang *= 1.1 }},
	UpgradeQuickDash:   {"quick_dash", "Quick Dash: -10% dash cooldown", func(s *Stats) { s.DashCooldown *= 0.9 }},
	UpgradeStrongLegs:  {"strong_legs", "Strong Legs: +10% recovery", func(s *Stats) { s.Accel *= 1.1 }},
	UpgradeKeenEye:     {"keen_eye", "Keen Eye: +10% owl warning", func(s *Stats) { s.Warning *= 1.1 }},
	UpgradeScavenger:   {"scavenger", "Scavenger: +15% pickups", func(s *Stats) { s.PickupFreq *= 1.15 }},
}

// Upgrades returns every upgrade in declaration order.
func Upgrades() []UpgradeKind {
	out := make([]UpgradeKind, 0, upgradeCount)
	for u := UpgradeSwiftFeet; u < upgradeCount; u++ {
		out = append(out, u)
	}
	return out
}

// String returns the persisted identifier of the upgrade.
func (u UpgradeKind) String() string {
	if u < 0 || u >= upgradeCount {
		return "unknown"
	}
	return upgrades[u].id
}

// Title returns the menu label of the upgrade.
func (u UpgradeKind) Title() string {
	if u < 0 || u >= upgradeCount {
		return "?"
	}
	return upgrades[u].title
}

// ParseUpgrade maps a persisted identifier back to an upgrade.
func ParseUpgrade(id string) (UpgradeKind, bool) {
	for u := UpgradeSwiftFeet; u < upgradeCount; u++ {
		if upgrades[u].id == id {
			return u, true
		}
	}
	return 0, false
}

// ParseUpgrades decodes a persisted list, skipping unknown entries.
func ParseUpgrades(ids []string) []UpgradeKind {
	out := make([]UpgradeKind, 0, len(ids))
	for _, id := range ids {
		if u, ok := ParseUpgrade(id); ok {
			out = append(out, u)
		}
	}
	return out
}

// UpgradeIDs encodes upgrades for persistence.
func UpgradeIDs(ups []UpgradeKind) []string {
	out := make([]string, len(ups))
	for i, u := range ups {
		out[i] = u.String()
	}
	return out
}

// ComposeStats stacks upgrades multiplicatively onto the archetype's stats.
// With equalize set every multiplier is neutral regardless of character
// and upgrades.
func ComposeStats(a Archetype, ups []UpgradeKind, equalize bool) Stats {
	if equalize {
		return NeutralStats()
	}
	s := a.Stats()
	for _, u := range ups {
		if u >= 0 && u < upgradeCount {
			upgrades[u].apply(&s)
		}
	}
	return s.Clamped()
}
