package owlrun

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/owl-run/internal/config"
	"github.com/vovakirdan/owl-run/internal/core"
	"github.com/vovakirdan/owl-run/internal/rng"
)

const frameDt = 1.0 / 60

func newTestOwl(seed int64) *Owl {
	return NewOwl(config.DefaultRunnerConfig(), rng.New(seed))
}

// laneBox is the player's hitbox standing in lane.
func laneBox(lane int) core.Box {
	cfg := config.DefaultRunnerConfig()
	return core.NewBox(laneCenter(cfg.Track, lane), cfg.Track.PlayerY, cfg.Player.Width, cfg.Player.Height)
}

func owlInput(lane, difficulty int) OwlInput {
	return OwlInput{Dt: frameDt, PlayerLane: lane, PlayerBox: laneBox(lane), Difficulty: difficulty, Warning: 1}
}

func TestOwlThreatClamped(t *testing.T) {
	o := newTestOwl(1)
	r := rng.New(77)

	maxed := 0
	for range 5000 {
		if o.AddThreat(r.Range(-0.4, 0.4)) {
			maxed++
		}
		require.GreaterOrEqual(t, o.Threat, 0.0)
		require.LessOrEqual(t, o.Threat, 1.0)
	}
	assert.Equal(t, 1, maxed, "threat maxed must be reported once")
}

func TestOwlThreatRates(t *testing.T) {
	o := newTestOwl(1)
	o.Cooldown = 100 // keep it idle

	o.Threat = 0.5
	o.Update(OwlInput{Dt: 1, PlayerBox: laneBox(2)})
	assert.InDelta(t, 0.46, o.Threat, 1e-9, "passive decay")

	o.Threat = 0.5
	o.Update(OwlInput{Dt: 1, PlayerBox: laneBox(2), Dashing: true})
	assert.InDelta(t, 0.38, o.Threat, 1e-9, "dashing decays faster")

	o.Threat = 0.1
	o.Update(OwlInput{Dt: 1, PlayerBox: laneBox(2), Stunned: true})
	assert.InDelta(t, 0.4, o.Threat, 1e-9, "stun raises threat")
}

func TestOwlTriggersWarning(t *testing.T) {
	o := newTestOwl(3)
	o.Threat = 0.5

	rep := o.Update(owlInput(2, 1))
	require.True(t, rep.Warned)
	assert.Equal(t, OwlWarning, o.State)
	assert.Equal(t, len(o.Shadows), rep.Shadows)
	assert.InDelta(t, 1.6, o.Countdown, 1e-9)
	assert.True(t, o.WarningActive())

	first := o.Shadows[0]
	assert.False(t, first.Decoy)
	assert.LessOrEqual(t, absInt(first.Lane-2), 1, "first shadow lands near the player")
	assert.Equal(t, 500.0, first.Y)
}

func TestOwlRespectsThresholdAndCooldown(t *testing.T) {
	o := newTestOwl(3)
	o.Threat = 0.2
	assert.False(t, o.Update(owlInput(2, 1)).Warned, "below threshold")

	o.Threat = 0.9
	o.Cooldown = 1
	assert.False(t, o.Update(owlInput(2, 1)).Warned, "still cooling down")
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func TestOwlDecoys(t *testing.T) {
	sawDecoy := false
	for seed := range int64(300) {
		for _, d := range []int{1, 2, 3, 6} {
			o := newTestOwl(seed)
			o.Threat = 0.5
			require.True(t, o.Update(owlInput(2, d)).Warned)

			for i, s := range o.Shadows {
				if i == 0 {
					assert.False(t, s.Decoy, "first shadow is never a decoy")
				}
				if d < 3 {
					assert.False(t, s.Decoy, "no decoys below difficulty 3")
				}
				if s.Decoy {
					sawDecoy = true
				}
				if i == 1 {
					assert.NotEqual(t, o.Shadows[0].Lane, s.Lane)
					assert.LessOrEqual(t, absInt(s.Lane-o.Shadows[0].Lane), 2)
				}
			}
		}
	}
	assert.True(t, sawDecoy, "decoys should appear at high difficulty")
}

func TestOwlWarningDuration(t *testing.T) {
	o := newTestOwl(1)
	assert.InDelta(t, 1.6, o.WarningDuration(1, 1), 1e-9)
	assert.InDelta(t, 1.24, o.WarningDuration(4, 1), 1e-9)
	assert.InDelta(t, 0.7, o.WarningDuration(20, 1), 1e-9, "floored at the minimum")
	assert.InDelta(t, 0.96, o.WarningDuration(1, 0.6), 1e-9, "lantern factor scales the duration")
	assert.InDelta(t, 1.6, o.WarningDuration(1, 0), 1e-9, "non-positive factor is neutral")
}

func TestOwlExecutesStrikes(t *testing.T) {
	o := newTestOwl(5)
	o.Threat = 0.5
	require.True(t, o.Update(owlInput(0, 1)).Warned)

	live := []int{}
	for _, s := range o.Shadows {
		if !s.Decoy {
			live = append(live, s.Lane)
		}
	}

	var rep OwlReport
	for range 200 {
		// Stay away from every shadow.
		rep = o.Update(OwlInput{Dt: frameDt, PlayerLane: 4, PlayerBox: core.NewBox(5000, 500, 40, 40), Difficulty: 1, Warning: 1})
		if rep.Executed {
			break
		}
	}
	require.True(t, rep.Executed)
	assert.Equal(t, OwlExecuting, o.State)
	assert.Empty(t, o.Shadows)
	require.Len(t, rep.Strikes, len(live))
	for i, s := range rep.Strikes {
		assert.Equal(t, live[i], s.Lane)
		assert.True(t, o.Capturing(s))
	}

	for range 12 {
		o.Update(owlInput(4, 1))
	}
	require.NotEmpty(t, o.Strikes)
	assert.False(t, o.Capturing(o.Strikes[0]), "capture window is 0.15s")

	for range 30 {
		o.Update(owlInput(4, 1))
	}
	assert.Equal(t, OwlIdle, o.State)
	assert.Empty(t, o.Strikes)
	assert.Positive(t, o.Cooldown)
}

func TestOwlCancel(t *testing.T) {
	o := newTestOwl(5)
	o.Threat = 0.6
	require.True(t, o.Update(owlInput(2, 1)).Warned)

	o.Cancel()
	o.Cancel()
	assert.Equal(t, OwlIdle, o.State)
	assert.Empty(t, o.Shadows)
	assert.GreaterOrEqual(t, o.Cooldown, 4.0)

	for range 180 {
		rep := o.Update(owlInput(2, 1))
		assert.False(t, rep.Executed, "a cancelled swoop must never strike")
		assert.False(t, rep.Warned)
	}
	assert.Empty(t, o.Strikes)

	idle := newTestOwl(1)
	idle.Cancel()
	assert.Equal(t, OwlIdle, idle.State, "cancel with nothing pending is harmless")
}

// placeShadow puts the owl mid-warning with a single live shadow on lane.
func placeShadow(o *Owl, lane int, countdown float64) {
	cfg := config.DefaultRunnerConfig()
	o.State = OwlWarning
	o.Countdown = countdown
	o.Shadows = []Shadow{{
		Lane: lane,
		X:    laneCenter(cfg.Track, lane),
		Y:    cfg.Track.PlayerY,
		W:    cfg.Owl.ShadowWidth,
		H:    cfg.Owl.ShadowHeight,
	}}
}

func TestOwlDodgeCreditedOnce(t *testing.T) {
	o := newTestOwl(1)
	o.Threat = 0.5
	placeShadow(o, 2, 1.0)

	dodges := 0
	step := func(lane int) {
		rep := o.Update(owlInput(lane, 1))
		if rep.Dodged {
			dodges++
		}
	}

	for range 18 {
		step(2)
		assert.True(t, o.InShadow())
	}
	before := o.Threat
	step(0)
	assert.Equal(t, 1, dodges, "leaving after 0.3s counts as a dodge")
	assert.Less(t, o.Threat, before-0.09, "a dodge relieves threat")

	// Going back in and out again earns nothing.
	for range 18 {
		step(2)
	}
	step(0)
	assert.Equal(t, 1, dodges)

	// The strike lands on the shadow's lane and misses the player.
	var rep OwlReport
	for range 60 {
		rep = o.Update(owlInput(0, 1))
		if rep.Executed {
			break
		}
	}
	require.True(t, rep.Executed)
	require.Len(t, rep.Strikes, 1)
	assert.Equal(t, 2, rep.Strikes[0].Lane)
	assert.False(t, o.OnLine(rep.Strikes[0], laneCenter(config.DefaultRunnerConfig().Track, 0)))
}

func TestOwlShortDwellIsNotADodge(t *testing.T) {
	o := newTestOwl(1)
	o.Threat = 0.5
	placeShadow(o, 2, 1.0)

	for range 6 {
		o.Update(owlInput(2, 1))
	}
	rep := o.Update(owlInput(0, 1))
	assert.False(t, rep.Dodged)
}

func TestOwlDecoyShadowIsHarmless(t *testing.T) {
	o := newTestOwl(1)
	o.Threat = 0.5
	placeShadow(o, 2, 1.0)
	o.Shadows[0].Decoy = true

	for range 18 {
		o.Update(owlInput(2, 1))
		assert.False(t, o.InShadow(), "decoys do not count as shadows")
	}
	assert.Less(t, o.Threat, 0.5, "standing in a decoy still decays threat")
}

func TestOwlCaptureMargin(t *testing.T) {
	o := newTestOwl(1)
	s := Strike{Lane: 2, X: 250}
	assert.True(t, o.OnLine(s, 250))
	assert.True(t, o.OnLine(s, 280))
	assert.False(t, o.OnLine(s, 281))
	assert.True(t, o.Capturing(Strike{Age: 0.15}))
	assert.False(t, o.Capturing(Strike{Age: 0.16}))
}

func TestOwlReset(t *testing.T) {
	o := newTestOwl(1)
	o.Threat = 0.8
	o.Update(owlInput(2, 1))
	o.Reset()
	assert.Equal(t, OwlIdle, o.State)
	assert.Zero(t, o.Threat)
	assert.Empty(t, o.Shadows)
}
