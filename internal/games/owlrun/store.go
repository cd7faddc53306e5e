package owlrun

// ProgressionStore persists best score, achievements and preferences
// across runs. Getters never fail: missing or corrupt values yield the
// documented default (0, nil, Runner, false). Setters may be slow or fail;
// the game swallows their errors after logging.
type ProgressionStore interface {
	BestScore() int
	SetBestScore(score int) error
	Achievements() []string
	UnlockAchievement(id string) error
	CharacterIndex() int
	SetCharacterIndex(i int) error
	Upgrades() []string
	SetUpgrades(ids []string) error
	Equalized() bool
	SetEqualized(on bool) error
}
