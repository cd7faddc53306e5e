package owlrun

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupArchetype(t *testing.T) {
	tests := []struct {
		in   string
		want Archetype
	}{
		{"scout", Scout},
		{"Bruiser", Bruiser},
		{"0", Runner},
		{"3", Acrobat},
	}
	for _, tc := range tests {
		a, err := LookupArchetype(tc.in)
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, a, tc.in)
	}

	for _, bad := range []string{"ninja", "5", "-1"} {
		_, err := LookupArchetype(bad)
		require.Error(t, err, bad)
		assert.Contains(t, err.Error(), "4=scout")
	}
}

func TestArchetypeStats(t *testing.T) {
	assert.Equal(t, NeutralStats(), Runner.Stats())
	assert.InDelta(t, 1.1, Sprinter.Stats().Speed, 1e-12)
	assert.InDelta(t, 0.75, Bruiser.Stats().Stun, 1e-12)
	assert.InDelta(t, 1.3, Acrobat.Stats().Hang, 1e-12)
	assert.InDelta(t, 1.25, Scout.Stats().Warning, 1e-12)
	assert.Equal(t, NeutralStats(), Archetype(99).Stats())
}

func TestArchetypeLookup(t *testing.T) {
	assert.Len(t, Archetypes(), 5)
	assert.Equal(t, Runner, ArchetypeFromIndex(-1))
	assert.Equal(t, Runner, ArchetypeFromIndex(42))
	assert.Equal(t, Scout, ArchetypeFromIndex(int(Scout)))

	a, ok := ParseArchetype("ACROBAT")
	assert.True(t, ok)
	assert.Equal(t, Acrobat, a)

	_, ok = ParseArchetype("ninja")
	assert.False(t, ok)

	for _, a := range Archetypes() {
		assert.NotEmpty(t, a.Description(), a.String())
	}
}

func TestUpgradesStackMultiplicatively(t *testing.T) {
	s := ComposeStats(Runner, []UpgradeKind{UpgradeSwiftFeet, UpgradeSwiftFeet}, false)
	assert.InDelta(t, 1.1025, s.Speed, 1e-12)

	s = ComposeStats(Sprinter, []UpgradeKind{UpgradeSwiftFeet}, false)
	assert.InDelta(t, 1.155, s.Speed, 1e-12)

	s = ComposeStats(Bruiser, []UpgradeKind{UpgradeThickCoat, UpgradeQuickDash}, false)
	assert.InDelta(t, 0.675, s.Stun, 1e-12)
	assert.InDelta(t, 0.99, s.DashCooldown, 1e-12)
}

func TestUpgradesAreClamped(t *testing.T) {
	ups := make([]UpgradeKind, 60)
	for i := range ups {
		ups[i] = UpgradeSwiftFeet
	}
	assert.Equal(t, 4.0, ComposeStats(Runner, ups, false).Speed)

	for i := range ups {
		ups[i] = UpgradeThickCoat
	}
	assert.Equal(t, 0.25, ComposeStats(Runner, ups, false).Stun)
}

func TestEqualizeIsNeutral(t *testing.T) {
	ups := []UpgradeKind{UpgradeSwiftFeet, UpgradeFeatherJump, UpgradeScavenger}
	for _, a := range Archetypes() {
		assert.Equal(t, NeutralStats(), ComposeStats(a, ups, true), a.String())
	}
}

func TestUpgradeIDsRoundTrip(t *testing.T) {
	ups := []UpgradeKind{UpgradeKeenEye, UpgradeStrongLegs, UpgradeKeenEye}
	ids := UpgradeIDs(ups)
	assert.Equal(t, []string{"keen_eye", "strong_legs", "keen_eye"}, ids)
	assert.Equal(t, ups, ParseUpgrades(ids))

	got := ParseUpgrades([]string{"scavenger", "laser_eyes", ""})
	require.Len(t, got, 1)
	assert.Equal(t, UpgradeScavenger, got[0])

	for u := UpgradeSwiftFeet; u < upgradeCount; u++ {
		assert.NotEqual(t, "?", u.Title())
		parsed, ok := ParseUpgrade(u.String())
		assert.True(t, ok)
		assert.Equal(t, u, parsed)
	}
}
