// Package audio defines the fire-and-forget sound cue interface the runner
// calls for discrete gameplay events. Sound synthesis lives outside the
// simulation; implementations here log, ring the terminal bell, or record.
package audio

import (
	"errors"
	"io"
	"sync"

	"github.com/charmbracelet/log"
)

// Cue identifies a discrete sound event.
type Cue int

const (
	CueJump Cue = iota
	CueLand
	CueStun
	CueChop
	CuePickup
	CueDash
	CueIceCrack
	CueSwoopWarning
	CueScreech
	CueCapture
	CueLevelComplete
	CueDodge
)

// String returns the cue name.
func (c Cue) String() string {
	switch c {
	case CueJump:
		return "jump"
	case CueLand:
		return "land"
	case CueStun:
		return "stun"
	case CueChop:
		return "chop"
	case CuePickup:
		return "pickup"
	case CueDash:
		return "dash"
	case CueIceCrack:
		return "ice_crack"
	case CueSwoopWarning:
		return "swoop_warning"
	case CueScreech:
		return "screech"
	case CueCapture:
		return "capture"
	case CueLevelComplete:
		return "level_complete"
	case CueDodge:
		return "dodge"
	default:
		return "unknown"
	}
}

// Sink receives cues. Intensity is in [0, 1] and only meaningful for the
// screech cue. Callers never wait on or depend on the result beyond logging.
type Sink interface {
	Play(cue Cue, intensity float64) error
}

// Nop discards every cue.
type Nop struct{}

// Play implements Sink.
func (Nop) Play(Cue, float64) error { return nil }

// LogSink writes cues to a logger at debug level.
type LogSink struct {
	Logger *log.Logger
}

// Play implements Sink.
func (s LogSink) Play(cue Cue, intensity float64) error {
	if s.Logger == nil {
		return nil
	}
	s.Logger.Debug("cue", "name", cue.String(), "intensity", intensity)
	return nil
}

// BellSink rings the terminal bell for cues that need the player's attention.
type BellSink struct {
	W io.Writer
}

// Play implements Sink.
func (s BellSink) Play(cue Cue, _ float64) error {
	if s.W == nil {
		return nil
	}
	switch cue {
	case CueStun, CueSwoopWarning, CueCapture:
		_, err := s.W.Write([]byte{'\a'})
		return err
	}
	return nil
}

// Multi fans a cue out to several sinks and joins their errors.
type Multi []Sink

// Play implements Sink.
func (m Multi) Play(cue Cue, intensity float64) error {
	var errs []error
	for _, s := range m {
		if err := s.Play(cue, intensity); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Played is one cue captured by a Recorder.
type Played struct {
	Cue       Cue
	Intensity float64
}

// Recorder keeps every cue it receives. Useful in tests.
type Recorder struct {
	mu     sync.Mutex
	played []Played
}

// Play implements Sink.
func (r *Recorder) Play(cue Cue, intensity float64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.played = append(r.played, Played{Cue: cue, Intensity: intensity})
	return nil
}

// Count returns how many times cue was played.
func (r *Recorder) Count(cue Cue) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, p := range r.played {
		if p.Cue == cue {
			n++
		}
	}
	return n
}

// All returns a copy of every recorded cue in order.
func (r *Recorder) All() []Played {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Played, len(r.played))
	copy(out, r.played)
	return out
}
