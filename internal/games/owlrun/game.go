// Package owlrun implements Owl Run, a five-lane endless runner where the
// player outruns obstacles while an owl tracks a threat meter and swoops.
//
// The simulation is advanced in seconds; one tick runs input, kinematics,
// scroll, spawning, the owl, collisions, scoring and pruning in that order.
package owlrun

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/owl-run/internal/audio"
	"github.com/vovakirdan/owl-run/internal/config"
	"github.com/vovakirdan/owl-run/internal/core"
	"github.com/vovakirdan/owl-run/internal/registry"
	"github.com/vovakirdan/owl-run/internal/rng"
	"github.com/vovakirdan/owl-run/internal/storage"
)

// Game IDs.
const (
	ID      = "owlrun"
	DailyID = "owlrun_daily"
)

func init() {
	registry.Register(ID, func() registry.Game { return New() })
	registry.Register(DailyID, func() registry.Game { return NewDaily() })
}

// Phase is the top-level run state.
type Phase int

const (
	PhasePlaying Phase = iota
	PhasePaused
	PhaseLevelComplete
	PhaseGameOver
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhasePlaying:
		return "playing"
	case PhasePaused:
		return "paused"
	case PhaseLevelComplete:
		return "level_complete"
	case PhaseGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// GameOverReason explains how a run ended.
type GameOverReason int

const (
	ReasonNone   GameOverReason = iota
	ReasonThreat                // Threat meter filled
	ReasonStrike                // Caught by a strike line
)

// String returns the reason name.
func (r GameOverReason) String() string {
	switch r {
	case ReasonThreat:
		return "threat"
	case ReasonStrike:
		return "strike"
	default:
		return "none"
	}
}

// configPath stores the custom config path set via CLI
var configPath string
var difficultyPreset config.DifficultyPreset

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset. Unknown names clear it.
func SetDifficultyPreset(preset string) {
	difficultyPreset = config.ParsePreset(preset)
}

// Game implements the Owl Run simulation.
type Game struct {
	id, title string
	daily     bool
	clock     func() time.Time

	cfg         config.RunnerConfig
	cfgOverride *config.RunnerConfig
	runtime     core.RuntimeConfig
	seed        int64
	difficulty  *config.DifficultyManager

	spawnRNG *rng.Stream // Obstacle rows, pickups, NPC spawns
	owlRNG   *rng.Stream // Shadow count, lanes, decoys
	worldRNG *rng.Stream // NPC wandering, projectile timing, upgrade offers

	player  *Player
	owl     *Owl
	spawner *Spawner
	prog    *Progression

	obstacles   []*Obstacle
	projectiles []*Projectile
	pickups     []*Pickup
	npcs        []*NPC

	input    *core.InputBuffer
	landedAt float64 // Sim time of the last landing, -1 before the first
	now      float64
	tick     uint64
	phase    Phase
	reason   GameOverReason
	offers   []UpgradeKind
	events   []Event

	character    Archetype
	characterSet bool
	equalize     bool
	equalizeSet  bool
	best         int

	store  ProgressionStore
	sink   audio.Sink
	logger *log.Logger
}

// New creates an endless-campaign game.
func New() *Game {
	return &Game{
		id:     ID,
		title:  "Owl Run",
		clock:  time.Now,
		store:  storage.NewMemoryProgress(),
		sink:   audio.Nop{},
		logger: log.New(io.Discard),
	}
}

// NewDaily creates a game seeded from today's date.
func NewDaily() *Game {
	g := New()
	g.id = DailyID
	g.title = "Owl Run: Daily Challenge"
	g.daily = true
	return g
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return g.id
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return g.title
}

// SetStore injects the progression store. Nil restores the in-memory default.
func (g *Game) SetStore(s ProgressionStore) {
	if s == nil {
		s = storage.NewMemoryProgress()
	}
	g.store = s
}

// SetAudio injects the sound sink. Nil silences the game.
func (g *Game) SetAudio(s audio.Sink) {
	if s == nil {
		s = audio.Nop{}
	}
	g.sink = s
}

// SetLogger injects a logger. Nil discards.
func (g *Game) SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(io.Discard)
	}
	g.logger = l
}

// SetConfig overrides file-based configuration for subsequent resets.
func (g *Game) SetConfig(cfg config.RunnerConfig) {
	g.cfgOverride = &cfg
}

// SetCharacter selects the archetype used from the next reset and
// persists the choice.
func (g *Game) SetCharacter(a Archetype) {
	g.character = a
	g.characterSet = true
}

// SetEqualize toggles attribute equalization from the next reset and
// persists the choice.
func (g *Game) SetEqualize(on bool) {
	g.equalize = on
	g.equalizeSet = true
}

// SetClock replaces the clock used for daily seeds.
func (g *Game) SetClock(clock func() time.Time) {
	if clock != nil {
		g.clock = clock
	}
}

func (g *Game) loadConfig() config.RunnerConfig {
	var cfg config.RunnerConfig
	if g.cfgOverride != nil {
		cfg = *g.cfgOverride
	} else {
		loaded, err := config.LoadRunner(configPath)
		if err != nil {
			g.logger.Warn("could not load config, using defaults", "path", configPath, "error", err)
			loaded = config.DefaultRunnerConfig()
		}
		cfg = loaded
	}
	if difficultyPreset != "" {
		config.ApplyRunnerPreset(&cfg, difficultyPreset)
	}
	return cfg
}

func (g *Game) resolveSeed(runtime core.RuntimeConfig) int64 {
	switch {
	case g.daily:
		return rng.DailySeed(g.clock())
	case runtime.Seed != 0:
		return runtime.Seed
	case runtime.Daily:
		return rng.DailySeed(g.clock())
	default:
		return rng.TimeSeed()
	}
}

// Reset initializes or restarts the game.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime
	g.cfg = g.loadConfig()
	g.difficulty = config.NewDifficultyManager(g.cfg.Difficulty)

	g.seed = g.resolveSeed(runtime)
	g.spawnRNG = rng.New(g.seed)
	g.owlRNG = rng.New(g.seed*31 + 7)
	g.worldRNG = rng.New(g.seed*131 + 17)

	if g.characterSet {
		g.save("character", g.store.SetCharacterIndex(int(g.character)))
	} else {
		g.character = ArchetypeFromIndex(g.store.CharacterIndex())
	}
	if g.equalizeSet {
		g.save("equalize", g.store.SetEqualized(g.equalize))
	} else {
		g.equalize = g.store.Equalized()
	}
	g.best = g.store.BestScore()

	g.prog = NewProgression(g.cfg.Progression, g.difficulty.StartLevel(), g.store.Achievements())
	g.prog.Upgrades = ParseUpgrades(g.store.Upgrades())

	g.player = NewPlayer(g.cfg, g.stats())
	g.owl = NewOwl(g.cfg, g.owlRNG)
	g.spawner = NewSpawner(g.cfg, g.spawnRNG)

	g.obstacles = g.obstacles[:0]
	g.projectiles = g.projectiles[:0]
	g.pickups = g.pickups[:0]
	g.npcs = g.npcs[:0]

	g.input = core.NewInputBuffer(core.DefaultBufferWindow)
	g.landedAt = -1
	g.now = 0
	g.tick = 0
	g.phase = PhasePlaying
	g.reason = ReasonNone
	g.offers = nil
	g.events = g.events[:0]
}

func (g *Game) stats() Stats {
	return ComposeStats(g.character, g.prog.Upgrades, g.equalize)
}

// Step advances the game by one fixed tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	rate := g.runtime.TickRate
	if rate <= 0 {
		rate = 60
	}
	return g.Advance(in, 1/float64(rate))
}

// Advance runs one simulation tick of dt seconds. Non-positive deltas only
// process menu-style input; large deltas are clamped to the max step.
func (g *Game) Advance(in core.InputFrame, dt float64) core.StepResult {
	g.events = g.events[:0]

	switch g.phase {
	case PhaseGameOver:
		if in.Has(core.ActionRestart) {
			g.Reset(g.runtime)
		}
		return g.result()
	case PhaseLevelComplete:
		g.chooseUpgrade(in)
		return g.result()
	}

	if in.Has(core.ActionPause) {
		if g.phase == PhasePaused {
			g.phase = PhasePlaying
		} else {
			g.phase = PhasePaused
		}
	}
	if g.phase == PhasePaused || dt <= 0 {
		return g.result()
	}
	if dt > g.cfg.Track.MaxStep {
		dt = g.cfg.Track.MaxStep
	}

	g.now += dt
	g.tick++
	g.input.Record(in, g.now)

	g.applyIntents()
	if g.player.Update(dt) {
		g.landedAt = g.now
		g.emit(EventLand, g.player.Lane, "", 0)
	}
	scroll := g.player.Speed * dt
	g.scrollWorld(dt, scroll)
	g.spawn(dt)
	g.updateOwl(dt)
	if g.phase != PhasePlaying {
		return g.result()
	}
	g.resolveCollisions()
	if g.phase != PhasePlaying {
		return g.result()
	}
	g.updateProgression(scroll)
	g.prune()

	return g.result()
}

func (g *Game) applyIntents() {
	p := g.player
	now := g.now

	if !p.Stunned {
		if g.input.Consume(core.ActionLeft, now) {
			p.MoveLeft()
		}
		if g.input.Consume(core.ActionRight, now) {
			p.MoveRight()
		}
	}
	switch {
	case p.CanJump() && g.input.Consume(core.ActionJump, now):
		p.Jump()
		g.emit(EventJump, p.Lane, "", 0)
	case g.pressedBeforeLanding(core.ActionJump, now) && p.JumpFromLanding():
		g.input.Consume(core.ActionJump, now)
		g.emit(EventJump, p.Lane, "", 0)
	}
	if p.CanDash() && g.input.Consume(core.ActionDash, now) {
		p.Dash()
		g.emit(EventDash, p.Lane, "", 0)
	}
	if p.HasAxe && g.input.Peek(core.ActionUseTool, now) {
		if tree := g.treeAhead(); tree != nil {
			g.input.Consume(core.ActionUseTool, now)
			g.chop(tree)
		}
	}
}

// pressedBeforeLanding reports whether a pending press of a was made while
// the player was still in the air.
func (g *Game) pressedBeforeLanding(a core.Action, now float64) bool {
	at, ok := g.input.PressedAt(a, now)
	return ok && g.landedAt >= 0 && at <= g.landedAt
}

// treeAhead returns the nearest active tree in the player's lane within
// chopping range, or nil.
func (g *Game) treeAhead() *Obstacle {
	var best *Obstacle
	for _, o := range g.obstacles {
		if !o.Active || o.Type != ObstacleTree || o.Lane != g.player.Lane {
			continue
		}
		dist := g.cfg.Track.PlayerY - o.Y
		if dist < 0 || dist > g.cfg.Player.ChopRange {
			continue
		}
		if best == nil || o.Y > best.Y {
			best = o
		}
	}
	return best
}

func (g *Game) scrollWorld(dt, scroll float64) {
	for _, o := range g.obstacles {
		if !o.Active {
			continue
		}
		factor := 1.0
		if o.Type.Behavior().Rolls {
			factor = g.cfg.Spawner.BallSpeedFactor
		}
		o.Y += scroll * factor
		if o.Type == ObstacleFigure && o.Hostile {
			g.updateFigure(o, dt)
		}
	}
	for _, pr := range g.projectiles {
		pr.X += pr.VX * dt
		pr.Y += scroll + pr.VY*dt
	}
	for _, pk := range g.pickups {
		pk.Y += scroll
		pk.Update(dt)
	}
	for _, n := range g.npcs {
		n.Update(dt, scroll, g.cfg.Track, g.worldRNG)
	}
}

// updateFigure lets a hostile figure throw at the player once in range.
func (g *Game) updateFigure(o *Obstacle, dt float64) {
	dist := g.cfg.Track.PlayerY - o.Y
	if dist <= 0 || dist > g.cfg.Spawner.ProjectileRange {
		return
	}
	o.FireCooldown -= dt
	if o.FireCooldown > 0 {
		return
	}
	sc := g.cfg.Spawner
	g.projectiles = append(g.projectiles,
		aimProjectile(o.X, o.Y, g.player.X, g.cfg.Track.PlayerY, sc.ProjectileSpeed))
	o.FireCooldown = g.worldRNG.Range(sc.ProjectileCooldownMin, sc.ProjectileCooldownMax)
	g.emit(EventProjectile, o.Lane, o.Type.String(), 0)
}

func (g *Game) spawn(dt float64) {
	ctx := SpawnContext{
		Now:             g.now,
		Difficulty:      g.Difficulty(),
		SpawnMultiplier: g.difficulty.SpawnMultiplier(g.prog.Level),
		SlowFactor:      g.player.Mods.Factor(ModSpawnInterval),
		PickupFreq:      g.player.Stats.PickupFreq,
		WarningActive:   g.owl.WarningActive(),
		ActiveNPCs:      g.activeNPCs(),
	}
	batch := g.spawner.Update(dt, ctx)

	g.obstacles = append(g.obstacles, batch.Obstacles...)
	for i := range batch.Events {
		ev := batch.Events[i]
		g.events = append(g.events, Event{T: g.now, Kind: EventSpawn, Lane: -1, Detail: ev.Pattern, Spawn: &ev})
	}
	for _, pk := range batch.Pickups {
		g.pickups = append(g.pickups, pk)
		g.emit(EventPickupSpawn, pk.Lane, pk.Type.String(), 0)
	}
	for _, n := range batch.NPCs {
		g.npcs = append(g.npcs, n)
		g.emit(EventNPCSpawn, n.Lane, "", 0)
	}
}

func (g *Game) activeNPCs() int {
	n := 0
	for _, npc := range g.npcs {
		if npc.Active {
			n++
		}
	}
	return n
}

func (g *Game) updateOwl(dt float64) {
	p := g.player
	rep := g.owl.Update(OwlInput{
		Dt:         dt,
		PlayerLane: p.Lane,
		PlayerBox:  p.Box(),
		Stunned:    p.Stunned,
		Dashing:    p.Dashing,
		Difficulty: g.Difficulty(),
		Warning:    p.Stats.Warning * p.Mods.Factor(ModWarning),
	})

	if rep.Warned {
		lane := -1
		if len(g.owl.Shadows) > 0 {
			lane = g.owl.Shadows[0].Lane
		}
		g.emit(EventSwoopWarning, lane, "", g.owl.Countdown)
	}
	if rep.Dodged {
		g.prog.Dodges++
		g.emit(EventDodge, p.Lane, "", g.prog.AddBonus(g.cfg.Progression.DodgeBonus))
		if g.prog.Dodges >= dodgeMasterCount {
			g.unlock(AchievementDodgeMaster)
		}
	}
	if rep.Executed {
		g.emit(EventScreech, -1, "", g.owl.Threat)
	}
	if rep.ThreatMaxed {
		g.endRun(ReasonThreat)
	}
}

func (g *Game) updateProgression(scroll float64) {
	complete := g.prog.AddDistance(scroll)

	playerY := g.cfg.Track.PlayerY
	for _, n := range g.npcs {
		if !n.Active || n.Captured || n.Passed || n.Y <= playerY {
			continue
		}
		n.Passed = true
		g.emit(EventNPCPass, n.Lane, "", g.prog.AddBonus(g.cfg.Progression.NPCPassBonus))
	}

	if g.prog.TrackThreat(g.owl.Threat) {
		g.unlock(AchievementCloseCall)
	}
	if complete {
		g.completeLevel()
	}
}

func (g *Game) completeLevel() {
	g.owl.Cancel()
	if !g.prog.StunnedLevel {
		g.unlock(AchievementUntouchable)
	}
	g.emit(EventLevelComplete, -1, "", float64(g.prog.Level))
	g.offers = OfferUpgrades(g.worldRNG, g.cfg.Progression.UpgradeOffers)
	if len(g.offers) == 0 {
		g.startNextLevel()
		return
	}
	g.phase = PhaseLevelComplete
}

// chooseUpgrade maps Left, Jump/Confirm and Right to the first, middle and
// last offer.
func (g *Game) chooseUpgrade(in core.InputFrame) {
	n := len(g.offers)
	if n == 0 {
		g.startNextLevel()
		return
	}
	idx := -1
	switch {
	case in.Has(core.ActionLeft):
		idx = 0
	case in.Has(core.ActionRight):
		idx = n - 1
	case in.Has(core.ActionJump), in.Has(core.ActionConfirm):
		idx = n / 2
	}
	if idx < 0 {
		return
	}
	g.applyUpgrade(g.offers[idx])
	g.startNextLevel()
}

func (g *Game) applyUpgrade(u UpgradeKind) {
	g.prog.Upgrades = append(g.prog.Upgrades, u)
	g.player.SetStats(g.stats())
	g.save("upgrades", g.store.SetUpgrades(UpgradeIDs(g.prog.Upgrades)))
	g.emit(EventUpgrade, -1, u.String(), 0)
}

func (g *Game) startNextLevel() {
	g.prog.NextLevel()
	g.offers = nil
	g.obstacles = g.obstacles[:0]
	g.projectiles = g.projectiles[:0]
	g.pickups = g.pickups[:0]
	g.spawner.Reset()
	g.phase = PhasePlaying
	if g.prog.Level >= 5 {
		g.unlock(AchievementLevel5)
	}
}

func (g *Game) prune() {
	despawn := g.cfg.Track.DespawnY

	obstacles := g.obstacles[:0]
	for _, o := range g.obstacles {
		if o.Active && o.Box().Top() <= despawn {
			obstacles = append(obstacles, o)
		}
	}
	g.obstacles = obstacles

	projectiles := g.projectiles[:0]
	for _, pr := range g.projectiles {
		if pr.Active && pr.Box().Top() <= despawn {
			projectiles = append(projectiles, pr)
		}
	}
	g.projectiles = projectiles

	pickups := g.pickups[:0]
	for _, pk := range g.pickups {
		if pk.State != PickupExpired && pk.Box().Top() <= despawn {
			pickups = append(pickups, pk)
		}
	}
	g.pickups = pickups

	npcs := g.npcs[:0]
	for _, n := range g.npcs {
		if n.Active && n.Box().Top() <= despawn {
			npcs = append(npcs, n)
		}
	}
	g.npcs = npcs
}

// endRun moves to game over exactly once and records the best score.
func (g *Game) endRun(reason GameOverReason) {
	if g.phase == PhaseGameOver {
		return
	}
	g.phase = PhaseGameOver
	g.reason = reason
	g.owl.Cancel()
	g.emit(EventGameOver, g.player.Lane, reason.String(), float64(g.prog.Points()))

	if score := g.prog.Points(); score > g.best {
		g.best = score
		g.save("best score", g.store.SetBestScore(score))
	}
	g.save("upgrades", g.store.SetUpgrades(nil))
}

func (g *Game) unlock(id string) {
	if !g.prog.Unlock(id) {
		return
	}
	g.emit(EventAchievement, -1, id, 0)
	g.save("achievement", g.store.UnlockAchievement(id))
}

// emit appends to the tick's event log and plays the matching cue.
func (g *Game) emit(kind EventKind, lane int, detail string, value float64) {
	g.events = append(g.events, Event{T: g.now, Kind: kind, Lane: lane, Detail: detail, Value: value})
	cue, ok := kind.Cue()
	if !ok {
		return
	}
	intensity := 1.0
	if kind == EventScreech {
		intensity = core.ClampF(value, 0, 1)
	}
	if err := g.sink.Play(cue, intensity); err != nil {
		g.logger.Debug("audio cue failed", "cue", cue.String(), "error", err)
	}
}

func (g *Game) save(what string, err error) {
	if err != nil {
		g.logger.Warn("could not save progression", "what", what, "error", err)
	}
}

func (g *Game) result() core.StepResult {
	return core.StepResult{State: g.State()}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.prog == nil {
		return core.GameState{}
	}
	return core.GameState{
		Score:    g.prog.Points(),
		GameOver: g.phase == PhaseGameOver,
		Paused:   g.phase == PhasePaused,
	}
}

// Events returns the events emitted during the last tick.
func (g *Game) Events() []Event {
	return g.events
}

// Difficulty returns the current capped difficulty.
func (g *Game) Difficulty() int {
	return g.difficulty.Difficulty(g.prog.Level)
}

// Phase returns the current run phase.
func (g *Game) Phase() Phase { return g.phase }

// Reason returns why the run ended, if it has.
func (g *Game) Reason() GameOverReason { return g.reason }

// Offers returns the upgrades offered on level completion.
func (g *Game) Offers() []UpgradeKind { return g.offers }

// Player returns the player.
func (g *Game) Player() *Player { return g.player }

// Owl returns the pursuer.
func (g *Game) Owl() *Owl { return g.owl }

// Progression returns level and score tracking.
func (g *Game) Progression() *Progression { return g.prog }

// Obstacles returns the live obstacles.
func (g *Game) Obstacles() []*Obstacle { return g.obstacles }

// Projectiles returns the live projectiles.
func (g *Game) Projectiles() []*Projectile { return g.projectiles }

// Pickups returns the live pickups.
func (g *Game) Pickups() []*Pickup { return g.pickups }

// NPCs returns the live NPCs.
func (g *Game) NPCs() []*NPC { return g.npcs }

// Time returns elapsed simulation seconds.
func (g *Game) Time() float64 { return g.now }

// Seed returns the seed the current run was started with.
func (g *Game) Seed() int64 { return g.seed }

// Character returns the active archetype.
func (g *Game) Character() Archetype { return g.character }

// Equalized reports whether attribute equalization is on.
func (g *Game) Equalized() bool { return g.equalize }

// BestScore returns the best score including the current run if finished.
func (g *Game) BestScore() int { return g.best }

// Config returns the tuning in effect.
func (g *Game) Config() config.RunnerConfig { return g.cfg }
