package owlrun

import (
	"math"

	"github.com/vovakirdan/owl-run/internal/config"
	"github.com/vovakirdan/owl-run/internal/core"
	"github.com/vovakirdan/owl-run/internal/rng"
)

// OwlState is the swoop lifecycle.
type OwlState int

const (
	OwlIdle OwlState = iota
	OwlWarning
	OwlExecuting
)

// String returns the state name.
func (s OwlState) String() string {
	switch s {
	case OwlIdle:
		return "idle"
	case OwlWarning:
		return "warning"
	case OwlExecuting:
		return "executing"
	default:
		return "?"
	}
}

// Shadow is a ground warning zone.
type Shadow struct {
	Lane  int
	X, Y  float64
	W, H  float64
	Decoy bool
}

// Box returns the shadow's ground area.
func (s Shadow) Box() core.Box {
	return core.NewBox(s.X, s.Y, s.W, s.H)
}

// Strike is a vertical capture line from the top of the screen down to a lane.
type Strike struct {
	Lane int
	X    float64
	Age  float64
}

// OwlInput is what the owl observes about the player each tick.
type OwlInput struct {
	Dt         float64
	PlayerLane int
	PlayerBox  core.Box
	Stunned    bool
	Dashing    bool
	Difficulty int
	Warning    float64 // Combined character and lantern warning factor
}

// OwlReport describes the transitions that happened during one update.
type OwlReport struct {
	Warned      bool     // A swoop began
	Shadows     int      // Shadows placed when Warned
	Executed    bool     // Warning resolved into strikes
	Strikes     []Strike // Strikes created on execution
	Dodged      bool     // Player left a live shadow in time
	ThreatMaxed bool     // Threat reached 1.0; reported once per run
}

// Owl is the pursuer state machine. The warning phase is an explicit
// countdown checked every tick, so Cancel only has to reset fields.
type Owl struct {
	cfg   config.OwlConfig
	track config.TrackConfig
	rng   *rng.Stream

	State     OwlState
	Threat    float64
	Shadows   []Shadow
	Strikes   []Strike
	Countdown float64 // Seconds left in the warning phase
	StrikeFor float64 // Seconds left in the executing phase
	Cooldown  float64 // Seconds before another swoop may begin

	maxed    bool
	inShadow bool
	dwell    float64
	dodged   bool
	shadowed bool // Player is inside a live shadow this tick
}

// NewOwl creates an idle owl drawing shadow lanes from r.
func NewOwl(cfg config.RunnerConfig, r *rng.Stream) *Owl {
	return &Owl{cfg: cfg.Owl, track: cfg.Track, rng: r}
}

// Reset clears all state including threat.
func (o *Owl) Reset() {
	*o = Owl{cfg: o.cfg, track: o.track, rng: o.rng}
}

// WarningActive reports whether any shadow is on the ground.
func (o *Owl) WarningActive() bool {
	return o.State == OwlWarning && len(o.Shadows) > 0
}

// InShadow reports whether the player stood in a live shadow last update.
func (o *Owl) InShadow() bool {
	return o.shadowed
}

// WarningDuration returns the warning length at difficulty d scaled by factor.
func (o *Owl) WarningDuration(d int, factor float64) float64 {
	if factor <= 0 {
		factor = 1
	}
	base := math.Max(o.cfg.WarningMin, o.cfg.WarningBase-o.cfg.WarningStep*float64(d-1))
	return base * factor
}

// AddThreat changes threat by delta, clamped to [0, 1]. It returns true the
// first time threat reaches 1.0.
func (o *Owl) AddThreat(delta float64) bool {
	o.Threat = core.ClampF(o.Threat+delta, 0, 1)
	if o.Threat >= 1 && !o.maxed {
		o.maxed = true
		return true
	}
	return false
}

// Cancel aborts any warning or strike and clears all shadows. Calling it
// with nothing in progress is harmless.
func (o *Owl) Cancel() {
	o.State = OwlIdle
	o.Shadows = nil
	o.Strikes = nil
	o.Countdown = 0
	o.StrikeFor = 0
	o.Cooldown = math.Max(o.Cooldown, o.cfg.Cooldown)
	o.resetDodge()
}

func (o *Owl) resetDodge() {
	o.inShadow = false
	o.dwell = 0
	o.dodged = false
	o.shadowed = false
}

// Update advances threat and the swoop timeline by one tick.
func (o *Owl) Update(in OwlInput) OwlReport {
	var rep OwlReport
	dt := in.Dt

	o.shadowed = o.playerInLiveShadow(in.PlayerBox)

	rate := 0.0
	if in.Stunned {
		rate += o.cfg.StunGain
	}
	if o.shadowed {
		rate += o.cfg.ShadowGain
	}
	if rate == 0 {
		if in.Dashing {
			rate = -o.cfg.DashDecay
		} else {
			rate = -o.cfg.Decay
		}
	}
	if o.AddThreat(rate * dt) {
		rep.ThreatMaxed = true
	}

	if o.Cooldown > 0 {
		o.Cooldown = math.Max(0, o.Cooldown-dt)
	}

	switch o.State {
	case OwlIdle:
		if o.Threat >= o.cfg.TriggerThreshold && o.Cooldown <= 0 {
			o.beginWarning(in)
			rep.Warned = true
			rep.Shadows = len(o.Shadows)
		}
	case OwlWarning:
		if o.trackDodge(dt) {
			rep.Dodged = true
			if o.AddThreat(-o.cfg.DodgeRelief) {
				rep.ThreatMaxed = true
			}
		}
		o.Countdown -= dt
		if o.Countdown <= 0 {
			o.execute()
			rep.Executed = true
			rep.Strikes = append([]Strike(nil), o.Strikes...)
		}
	case OwlExecuting:
		for i := range o.Strikes {
			o.Strikes[i].Age += dt
		}
		o.StrikeFor -= dt
		if o.StrikeFor <= 0 {
			o.State = OwlIdle
			o.Strikes = nil
			o.StrikeFor = 0
			o.Cooldown = o.cfg.Cooldown
		}
	}
	return rep
}

func (o *Owl) playerInLiveShadow(b core.Box) bool {
	if o.State != OwlWarning {
		return false
	}
	for _, s := range o.Shadows {
		if !s.Decoy && s.Box().Intersects(b) {
			return true
		}
	}
	return false
}

// trackDodge accumulates dwell time inside live shadows and reports the
// tick the player leaves after more than the minimum dwell. Credited once
// per swoop.
func (o *Owl) trackDodge(dt float64) bool {
	if o.shadowed {
		o.inShadow = true
		o.dwell += dt
		return false
	}
	if !o.inShadow {
		return false
	}
	dwell := o.dwell
	o.inShadow = false
	o.dwell = 0
	if dwell > o.cfg.MinDwell && !o.dodged {
		o.dodged = true
		return true
	}
	return false
}

func (o *Owl) beginWarning(in OwlInput) {
	d := in.Difficulty
	if d < 1 {
		d = 1
	}
	count := 1
	twoChance := math.Min(o.cfg.DoubleShadowMax, o.cfg.DoubleShadowBase+o.cfg.DoubleShadowStep*float64(d))
	if o.rng.Chance(twoChance) {
		count = 2
	}

	first := core.Clamp(in.PlayerLane+o.rng.Intn(3)-1, 0, Lanes-1)
	lanes := []int{first}
	if count == 2 {
		// Second shadow lands within two lanes of the first.
		candidates := make([]int, 0, 4)
		for l := first - 2; l <= first+2; l++ {
			if l >= 0 && l < Lanes && l != first {
				candidates = append(candidates, l)
			}
		}
		lanes = append(lanes, candidates[o.rng.Intn(len(candidates))])
	}

	o.Shadows = o.Shadows[:0]
	for i, lane := range lanes {
		decoy := false
		if i > 0 && d >= o.cfg.DecoyMinDifficulty {
			decoy = o.rng.Chance(o.cfg.DecoyChance)
		}
		o.Shadows = append(o.Shadows, Shadow{
			Lane:  lane,
			X:     laneCenter(o.track, lane),
			Y:     o.track.PlayerY,
			W:     o.cfg.ShadowWidth,
			H:     o.cfg.ShadowHeight,
			Decoy: decoy,
		})
	}
	o.State = OwlWarning
	o.Countdown = o.WarningDuration(d, in.Warning)
	o.resetDodge()
}

// execute turns live shadows into strikes. Decoys vanish.
func (o *Owl) execute() {
	o.Strikes = o.Strikes[:0]
	for _, s := range o.Shadows {
		if s.Decoy {
			continue
		}
		o.Strikes = append(o.Strikes, Strike{Lane: s.Lane, X: s.X})
	}
	o.Shadows = nil
	o.Countdown = 0
	o.State = OwlExecuting
	o.StrikeFor = o.cfg.StrikeDuration
	o.resetDodge()
}

// Capturing reports whether a strike is still in its capture window.
func (o *Owl) Capturing(s Strike) bool {
	return s.Age <= o.cfg.CaptureWindow
}

// OnLine reports whether x is within the capture margin of the strike.
func (o *Owl) OnLine(s Strike, x float64) bool {
	return core.NewBox(s.X, 0, 2*o.cfg.CaptureMargin, 0).ContainsX(x)
}
