package storage

import (
	"context"
	"errors"
	"sync"

	"github.com/charmbracelet/log"
)

// DefaultQueueSize is the write queue length used when none is given.
const DefaultQueueSize = 64

var (
	// ErrQueueFull is returned when a write was dropped.
	ErrQueueFull = errors.New("storage: progress queue full")
	// ErrClosed is returned for writes after Close.
	ErrClosed = errors.New("storage: progress store closed")
)

// AsyncProgress keeps progression writes off the simulation goroutine.
// Reads are served from an in-memory copy that is updated synchronously,
// so a value read right after a write reflects it. Writes to the backing
// store happen in order on a single worker goroutine.
type AsyncProgress struct {
	cache   *MemoryProgress
	backing Progress
	logger  *log.Logger

	mu     sync.Mutex
	ops    chan func(Progress) error
	closed bool
	done   chan struct{}
}

var _ Progress = (*AsyncProgress)(nil)

// NewAsyncProgress loads the current values of backing and starts the
// write worker. A nil logger discards worker errors.
func NewAsyncProgress(backing Progress, queue int, logger *log.Logger) *AsyncProgress {
	if queue <= 0 {
		queue = DefaultQueueSize
	}
	a := &AsyncProgress{
		cache:   copyProgress(backing),
		backing: backing,
		logger:  logger,
		ops:     make(chan func(Progress) error, queue),
		done:    make(chan struct{}),
	}
	go a.run()
	return a
}

func (a *AsyncProgress) run() {
	defer close(a.done)
	for op := range a.ops {
		if err := op(a.backing); err != nil && a.logger != nil {
			a.logger.Warn("progress write failed", "error", err)
		}
	}
}

// enqueue hands op to the worker without blocking.
func (a *AsyncProgress) enqueue(op func(Progress) error) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.closed {
		return ErrClosed
	}
	select {
	case a.ops <- op:
		return nil
	default:
		if a.logger != nil {
			a.logger.Warn("progress queue full, dropping write")
		}
		return ErrQueueFull
	}
}

// Close stops accepting writes and waits for queued ones to finish or for
// ctx to expire.
func (a *AsyncProgress) Close(ctx context.Context) error {
	a.mu.Lock()
	if !a.closed {
		a.closed = true
		close(a.ops)
	}
	a.mu.Unlock()

	select {
	case <-a.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (a *AsyncProgress) BestScore() int         { return a.cache.BestScore() }
func (a *AsyncProgress) Achievements() []string { return a.cache.Achievements() }
func (a *AsyncProgress) CharacterIndex() int    { return a.cache.CharacterIndex() }
func (a *AsyncProgress) Upgrades() []string     { return a.cache.Upgrades() }
func (a *AsyncProgress) Equalized() bool        { return a.cache.Equalized() }

func (a *AsyncProgress) SetBestScore(score int) error {
	_ = a.cache.SetBestScore(score)
	return a.enqueue(func(p Progress) error { return p.SetBestScore(score) })
}

func (a *AsyncProgress) UnlockAchievement(id string) error {
	_ = a.cache.UnlockAchievement(id)
	return a.enqueue(func(p Progress) error { return p.UnlockAchievement(id) })
}

func (a *AsyncProgress) SetCharacterIndex(i int) error {
	_ = a.cache.SetCharacterIndex(i)
	return a.enqueue(func(p Progress) error { return p.SetCharacterIndex(i) })
}

func (a *AsyncProgress) SetUpgrades(ids []string) error {
	_ = a.cache.SetUpgrades(ids)
	ids = append([]string(nil), ids...)
	return a.enqueue(func(p Progress) error { return p.SetUpgrades(ids) })
}

func (a *AsyncProgress) SetEqualized(on bool) error {
	_ = a.cache.SetEqualized(on)
	return a.enqueue(func(p Progress) error { return p.SetEqualized(on) })
}
