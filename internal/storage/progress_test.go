package storage

import (
	"bytes"
	"context"
	"errors"
	"io"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// exerciseProgress runs the shared Progress contract against p.
func exerciseProgress(t *testing.T, p Progress) {
	t.Helper()

	assert.Equal(t, 0, p.BestScore())
	assert.Empty(t, p.Achievements())
	assert.Equal(t, 0, p.CharacterIndex())
	assert.Empty(t, p.Upgrades())
	assert.False(t, p.Equalized())

	require.NoError(t, p.SetBestScore(420))
	require.NoError(t, p.UnlockAchievement("first_chop"))
	require.NoError(t, p.UnlockAchievement("first_chop"))
	require.NoError(t, p.UnlockAchievement("level_5"))
	require.NoError(t, p.SetCharacterIndex(3))
	require.NoError(t, p.SetUpgrades([]string{"swift_feet", "swift_feet", "keen_eye"}))
	require.NoError(t, p.SetEqualized(true))

	assert.Equal(t, 420, p.BestScore())
	assert.Equal(t, []string{"first_chop", "level_5"}, p.Achievements())
	assert.Equal(t, 3, p.CharacterIndex())
	assert.Equal(t, []string{"swift_feet", "swift_feet", "keen_eye"}, p.Upgrades())
	assert.True(t, p.Equalized())

	require.NoError(t, p.SetUpgrades(nil))
	assert.Empty(t, p.Upgrades())
}

func TestStoreProgress(t *testing.T) {
	exerciseProgress(t, openTestStore(t))
}

func TestMemoryProgress(t *testing.T) {
	exerciseProgress(t, NewMemoryProgress())
}

func TestMemoryProgressReturnsCopies(t *testing.T) {
	m := NewMemoryProgress()
	ups := []string{"quick_dash"}
	require.NoError(t, m.SetUpgrades(ups))
	ups[0] = "mutated"

	got := m.Upgrades()
	assert.Equal(t, []string{"quick_dash"}, got)
	got[0] = "mutated"
	assert.Equal(t, []string{"quick_dash"}, m.Upgrades())
}

func TestStoreProgressSurvivesReopen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "progress.db")

	store, err := Open(dbPath)
	require.NoError(t, err)
	require.NoError(t, store.SetBestScore(99))
	require.NoError(t, store.UnlockAchievement("dodge_master"))
	require.NoError(t, store.Close())

	store, err = Open(dbPath)
	require.NoError(t, err)
	defer store.Close()

	assert.Equal(t, 99, store.BestScore())
	assert.Equal(t, []string{"dodge_master"}, store.Achievements())
}

func TestStoreCorruptValuesUseDefaults(t *testing.T) {
	store := openTestStore(t)

	require.NoError(t, store.set(keyBestScore, "not a number"))
	require.NoError(t, store.set(keyCharacter, "-4"))
	require.NoError(t, store.set(keyUpgrades, "{broken"))
	require.NoError(t, store.set(keyEqualized, "maybe"))
	require.NoError(t, store.set(keyAchievements, "[1,2"))

	assert.Equal(t, 0, store.BestScore())
	assert.Equal(t, 0, store.CharacterIndex())
	assert.Empty(t, store.Upgrades())
	assert.False(t, store.Equalized())
	assert.Empty(t, store.Achievements())

	// A corrupt achievement list does not block new unlocks.
	require.NoError(t, store.UnlockAchievement("close_call"))
	assert.Equal(t, []string{"close_call"}, store.Achievements())
}

func TestAsyncProgressWritesThrough(t *testing.T) {
	backing := openTestStore(t)
	require.NoError(t, backing.SetBestScore(10))

	a := NewAsyncProgress(backing, 8, log.New(io.Discard))
	assert.Equal(t, 10, a.BestScore(), "initial values are loaded from backing")

	require.NoError(t, a.SetBestScore(50))
	require.NoError(t, a.UnlockAchievement("untouchable"))
	require.NoError(t, a.SetCharacterIndex(2))
	require.NoError(t, a.SetUpgrades([]string{"thick_coat"}))
	require.NoError(t, a.SetEqualized(true))

	// Reads see writes immediately.
	assert.Equal(t, 50, a.BestScore())
	assert.True(t, a.Equalized())

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, a.Close(ctx))

	assert.Equal(t, 50, backing.BestScore())
	assert.Equal(t, []string{"untouchable"}, backing.Achievements())
	assert.Equal(t, 2, backing.CharacterIndex())
	assert.Equal(t, []string{"thick_coat"}, backing.Upgrades())
	assert.True(t, backing.Equalized())

	assert.ErrorIs(t, a.SetBestScore(1), ErrClosed)
	require.NoError(t, a.Close(ctx), "closing twice is safe")
}

// blockingProgress holds every write until release is closed.
type blockingProgress struct {
	*MemoryProgress
	release chan struct{}
}

func (b *blockingProgress) SetBestScore(score int) error {
	<-b.release
	return b.MemoryProgress.SetBestScore(score)
}

func TestAsyncProgressDropsWhenFull(t *testing.T) {
	backing := &blockingProgress{MemoryProgress: NewMemoryProgress(), release: make(chan struct{})}
	a := NewAsyncProgress(backing, 1, nil)

	var dropped bool
	for i := range 10 {
		if err := a.SetBestScore(i); err != nil {
			assert.ErrorIs(t, err, ErrQueueFull)
			dropped = true
		}
	}
	assert.True(t, dropped, "a one-slot queue behind a blocked writer must drop")
	assert.Equal(t, 9, a.BestScore(), "cache keeps the latest value even when the write is dropped")

	close(backing.release)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, a.Close(ctx))
}

func TestAsyncProgressCloseHonorsContext(t *testing.T) {
	backing := &blockingProgress{MemoryProgress: NewMemoryProgress(), release: make(chan struct{})}
	defer close(backing.release)
	a := NewAsyncProgress(backing, 4, nil)
	require.NoError(t, a.SetBestScore(1))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, a.Close(ctx), context.DeadlineExceeded)
}

// failingProgress rejects every best-score write.
type failingProgress struct {
	*MemoryProgress
}

func (failingProgress) SetBestScore(int) error { return errors.New("disk on fire") }

func TestAsyncProgressLogsWriteErrors(t *testing.T) {
	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{Formatter: log.LogfmtFormatter})
	a := NewAsyncProgress(failingProgress{NewMemoryProgress()}, 4, logger)
	require.NoError(t, a.SetBestScore(7))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, a.Close(ctx))

	assert.Contains(t, buf.String(), "progress write failed")
	assert.Contains(t, buf.String(), `error="disk on fire"`)
}
