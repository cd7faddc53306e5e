package storage

import (
	"slices"
	"sync"
)

// MemoryProgress is an in-process Progress for tests, SSH sessions and
// runs without a database.
type MemoryProgress struct {
	mu           sync.Mutex
	best         int
	achievements []string
	character    int
	upgrades     []string
	equalized    bool
}

var _ Progress = (*MemoryProgress)(nil)

// NewMemoryProgress returns an empty progress store.
func NewMemoryProgress() *MemoryProgress {
	return &MemoryProgress{}
}

// copyProgress loads every value of src into a new MemoryProgress.
func copyProgress(src Progress) *MemoryProgress {
	return &MemoryProgress{
		best:         src.BestScore(),
		achievements: slices.Clone(src.Achievements()),
		character:    src.CharacterIndex(),
		upgrades:     slices.Clone(src.Upgrades()),
		equalized:    src.Equalized(),
	}
}

func (m *MemoryProgress) BestScore() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.best
}

func (m *MemoryProgress) SetBestScore(score int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.best = score
	return nil
}

func (m *MemoryProgress) Achievements() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.achievements)
}

func (m *MemoryProgress) UnlockAchievement(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !slices.Contains(m.achievements, id) {
		m.achievements = append(m.achievements, id)
	}
	return nil
}

func (m *MemoryProgress) CharacterIndex() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.character
}

func (m *MemoryProgress) SetCharacterIndex(i int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.character = i
	return nil
}

func (m *MemoryProgress) Upgrades() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.upgrades)
}

func (m *MemoryProgress) SetUpgrades(ids []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.upgrades = slices.Clone(ids)
	return nil
}

func (m *MemoryProgress) Equalized() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.equalized
}

func (m *MemoryProgress) SetEqualized(on bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.equalized = on
	return nil
}
