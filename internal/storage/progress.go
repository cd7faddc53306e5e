package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strconv"
)

// Progress is the typed cross-run state the runner persists. Getters never
// fail: a missing or unreadable value yields the documented default.
type Progress interface {
	BestScore() int                    // default 0
	SetBestScore(score int) error      //
	Achievements() []string            // default empty
	UnlockAchievement(id string) error //
	CharacterIndex() int               // default 0
	SetCharacterIndex(i int) error     //
	Upgrades() []string                // default empty
	SetUpgrades(ids []string) error    //
	Equalized() bool                   // default false
	SetEqualized(on bool) error        //
}

// Keys in the kv table.
const (
	keyBestScore    = "best_score"
	keyAchievements = "achievements"
	keyCharacter    = "character_index"
	keyUpgrades     = "upgrades"
	keyEqualized    = "equalized"
)

var _ Progress = (*Store)(nil)

// get returns the raw value for key and whether it was present.
func (s *Store) get(key string) (string, bool) {
	var v string
	err := s.db.QueryRow("SELECT value FROM kv WHERE key = ?", key).Scan(&v)
	if err != nil {
		return "", false
	}
	return v, true
}

func (s *Store) set(key, value string) error {
	_, err := s.db.Exec(
		`INSERT INTO kv (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save %s: %w", key, err)
	}
	return nil
}

func (s *Store) getInt(key string) int {
	v, ok := s.get(key)
	if !ok {
		return 0
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0
	}
	return n
}

func (s *Store) getList(key string) []string {
	v, ok := s.get(key)
	if !ok {
		return nil
	}
	var out []string
	if err := json.Unmarshal([]byte(v), &out); err != nil {
		return nil
	}
	return out
}

func (s *Store) setList(key string, list []string) error {
	if list == nil {
		list = []string{}
	}
	data, err := json.Marshal(list)
	if err != nil {
		return fmt.Errorf("storage: cannot encode %s: %w", key, err)
	}
	return s.set(key, string(data))
}

// BestScore returns the stored best score, 0 when absent or corrupt.
func (s *Store) BestScore() int {
	return max(s.getInt(keyBestScore), 0)
}

// SetBestScore stores the best score.
func (s *Store) SetBestScore(score int) error {
	return s.set(keyBestScore, strconv.Itoa(score))
}

// Achievements returns the unlocked achievement ids.
func (s *Store) Achievements() []string {
	return s.getList(keyAchievements)
}

// UnlockAchievement adds id to the unlocked set. Unlocking twice is a no-op.
func (s *Store) UnlockAchievement(id string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // No-op after commit

	var raw string
	var list []string
	err = tx.QueryRow("SELECT value FROM kv WHERE key = ?", keyAchievements).Scan(&raw)
	switch {
	case errors.Is(err, sql.ErrNoRows):
	case err != nil:
		return fmt.Errorf("storage: cannot read achievements: %w", err)
	default:
		// A corrupt list is replaced rather than blocking new unlocks.
		_ = json.Unmarshal([]byte(raw), &list)
	}
	if slices.Contains(list, id) {
		return nil
	}
	list = append(list, id)
	data, err := json.Marshal(list)
	if err != nil {
		return fmt.Errorf("storage: cannot encode achievements: %w", err)
	}
	if _, err := tx.Exec(
		`INSERT INTO kv (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		keyAchievements, string(data),
	); err != nil {
		return fmt.Errorf("storage: cannot save achievements: %w", err)
	}
	return tx.Commit()
}

// CharacterIndex returns the chosen character, 0 when absent or corrupt.
func (s *Store) CharacterIndex() int {
	return max(s.getInt(keyCharacter), 0)
}

// SetCharacterIndex stores the chosen character.
func (s *Store) SetCharacterIndex(i int) error {
	return s.set(keyCharacter, strconv.Itoa(i))
}

// Upgrades returns the current run's upgrade ids.
func (s *Store) Upgrades() []string {
	return s.getList(keyUpgrades)
}

// SetUpgrades replaces the stored upgrade list.
func (s *Store) SetUpgrades(ids []string) error {
	return s.setList(keyUpgrades, ids)
}

// Equalized reports the attribute-equalization toggle, false when absent.
func (s *Store) Equalized() bool {
	v, ok := s.get(keyEqualized)
	if !ok {
		return false
	}
	on, err := strconv.ParseBool(v)
	return err == nil && on
}

// SetEqualized stores the attribute-equalization toggle.
func (s *Store) SetEqualized(on bool) error {
	return s.set(keyEqualized, strconv.FormatBool(on))
}
