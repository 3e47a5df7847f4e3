// Package pbj implements a peanut-butter-and-jelly sandwich collection game.
// The avatar slides around a small board picking up ingredients from counters
// on the border in a fixed order; finishing the order makes a sandwich and
// shuffles the counters.
package pbj

import (
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/pbj-arcade/internal/config"
	"github.com/vovakirdan/pbj-arcade/internal/core"
	"github.com/vovakirdan/pbj-arcade/internal/registry"
)

// Mode represents the game mode.
type Mode string

const (
	ModeClassic Mode = "classic" // endless play
	ModeRush    Mode = "rush"    // as many sandwiches as possible before the clock runs out
)

// Package-level configuration applied on Reset.
var (
	configPath       string
	difficultyPreset string
	logger           = log.New(io.Discard)
)

// SetConfigPath sets a custom YAML config path.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset applied on top of the config.
func SetDifficultyPreset(preset string) {
	difficultyPreset = preset
}

// SetLogger sets the logger used by games created afterwards.
func SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(io.Discard)
	}
	logger = l
}

var (
	_ registry.Steerable = (*Game)(nil)
	_ registry.Sounding  = (*Game)(nil)
	_ registry.Reporter  = (*Game)(nil)
)

func init() {
	registry.Register("pbj", func() registry.Game {
		return New()
	})
	registry.Register("pbj_rush", func() registry.Game {
		return NewRush()
	})
}

// Game composes the board, level generator, progression and movement model.
type Game struct {
	mode     Mode
	settings Settings
	fixed    bool // settings supplied by the caller; skip config loading
	logger   *log.Logger
	handlers []func(Pickup)

	rng      *rand.Rand
	tickRate int
	tick     uint64
	elapsed  time.Duration

	board       Board
	roster      Roster
	generator   *Generator
	progression *Progression
	mover       *Mover
	difficulty  *config.DifficultyManager
	avatar      Avatar
	controls    Controls

	levels     int
	exhausted  int
	pickups    int
	lastLevel  LevelReport
	lastPickup *Pickup

	paused   bool
	gameOver bool
}

// Option configures a Game.
type Option func(*Game)

// WithSettings uses s instead of loading the YAML config.
func WithSettings(s Settings) Option {
	return func(g *Game) {
		g.settings = s
		g.fixed = true
	}
}

// WithLogger sets the game's logger.
func WithLogger(l *log.Logger) Option {
	return func(g *Game) {
		if l != nil {
			g.logger = l
		}
	}
}

// WithPickupHandler registers a pickup callback.
func WithPickupHandler(h func(Pickup)) Option {
	return func(g *Game) {
		g.OnPickup(h)
	}
}

// New creates a classic (endless) game.
func New(opts ...Option) *Game {
	return newGame(ModeClassic, opts)
}

// NewRush creates a timed game.
func NewRush(opts ...Option) *Game {
	return newGame(ModeRush, opts)
}

func newGame(mode Mode, opts []Option) *Game {
	g := &Game{
		mode:     mode,
		settings: DefaultSettings(),
		logger:   logger,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// ID returns the game identifier.
func (g *Game) ID() string {
	if g.mode == ModeRush {
		return "pbj_rush"
	}
	return "pbj"
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.mode == ModeRush {
		return "PB&J Rush"
	}
	return "PB&J"
}

// OnPickup registers a callback invoked for every collected counter.
// Callbacks run synchronously inside Step and must not block.
func (g *Game) OnPickup(h func(Pickup)) {
	if h != nil {
		g.handlers = append(g.handlers, h)
	}
}

// OnNote registers a callback receiving the note index of each pickup.
// The note is the pickup's position in the sequence.
func (g *Game) OnNote(h func(note int)) {
	if h == nil {
		return
	}
	g.OnPickup(func(p Pickup) { h(p.Step) })
}

// Reset initializes/restarts the game.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	if !g.fixed {
		g.settings = g.loadSettings()
	}

	g.rng = rand.New(rand.NewSource(cfg.Seed))
	g.tickRate = cfg.TickRate
	if g.tickRate <= 0 {
		g.tickRate = 60
	}
	g.tick = 0
	g.elapsed = 0
	g.paused = false
	g.gameOver = false
	g.levels = 0
	g.exhausted = 0
	g.pickups = 0
	g.lastPickup = nil

	s := g.settings
	g.board = s.Board
	g.roster = NewRoster()
	g.generator = NewGenerator(s.Board, s.SpawnLeeway)
	g.progression = NewProgression(s.Sequence, s.CollectLeeway)
	g.mover = NewMover(s.Board, s.Physics)
	g.difficulty = config.NewDifficultyManager(s.Difficulty)
	g.avatar = Avatar{Position: s.AvatarStart, Facing: FacingRight}
	g.controls = Controls{}

	g.regenerate()
	g.roster.MarkActive(g.progression.Target())
}

// loadSettings reads the YAML config, falling back to defaults on error.
func (g *Game) loadSettings() Settings {
	cfg, err := config.LoadPBJ(configPath)
	if err != nil {
		g.logger.Warn("using default config", "path", configPath, "error", err)
		cfg = config.DefaultPBJConfig()
	}
	if difficultyPreset != "" {
		config.ApplyPBJPreset(&cfg, config.DifficultyPreset(difficultyPreset))
	}

	s, err := SettingsFromConfig(cfg)
	if err != nil {
		g.logger.Warn("invalid config, using defaults", "error", err)
		return DefaultSettings()
	}
	return s
}

// SetDirection records a direction key press or release.
func (g *Game) SetDirection(d core.Direction, pressed bool) {
	g.controls.Set(d, pressed)
}

// Step advances the game by one fixed tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++

	// Handle restart
	if in.Has(core.ActionRestart) && g.gameOver {
		g.Reset(core.RuntimeConfig{
			Seed:     g.rng.Int63(),
			TickRate: g.tickRate,
		})
		return core.StepResult{State: g.State()}
	}

	// Handle pause toggle
	if in.Has(core.ActionPause) && !g.gameOver {
		g.paused = !g.paused
	}

	if g.paused || g.gameOver {
		return core.StepResult{State: g.State()}
	}

	g.Update(1.0 / float64(g.tickRate))

	return core.StepResult{State: g.State()}
}

// Update runs one simulation step of dt seconds: collection first, then
// movement. Step calls it with the fixed tick length.
func (g *Game) Update(dt float64) {
	if g.gameOver {
		return
	}

	if pickup, ok := g.progression.Check(g.avatar.Position, &g.roster); ok {
		g.collect(pickup)
	}
	g.roster.MarkActive(g.progression.Target())

	if g.difficulty.IsEnabled() {
		g.applyDifficulty()
	}
	g.mover.Update(&g.avatar, g.controls, dt)

	if g.mode == ModeRush {
		g.advanceClock(dt)
	}
}

// collect emits a pickup and reshuffles the board when a sandwich is done.
func (g *Game) collect(p Pickup) {
	g.lastPickup = &p
	g.pickups++
	g.logger.Debug("pickup", "step", p.Step, "role", p.Role, "tick", g.tick)

	for _, h := range g.handlers {
		h(p)
	}

	if p.Completed {
		g.logger.Info("sandwich made", "count", p.Sandwich, "mode", g.mode)
		g.regenerate()
	}
}

// regenerate shuffles the counters around the current avatar position.
func (g *Game) regenerate() {
	g.lastLevel = g.generator.Generate(g.avatar.Position, &g.roster, g.rng)
	g.levels++

	placements := g.lastLevel.Placements
	g.logger.Debug("level generated",
		"level", g.levels,
		"avatar", g.avatar.Position,
		"peanut", placements[RolePeanut].Cell,
		"bread", placements[RoleBread].Cell,
		"jelly", placements[RoleJelly].Cell,
		"serve", placements[RoleServe].Cell,
	)
	if exhausted := g.lastLevel.Exhausted(); len(exhausted) > 0 {
		g.exhausted++
		g.logger.Warn("no conflict-free cell for counters", "roles", exhausted, "level", g.levels)
	}
}

// applyDifficulty scales the avatar's speed with progress.
func (g *Game) applyDifficulty() {
	base := g.settings.Physics
	scale := g.difficulty.Speed(1, g.progression.Sandwiches(), int(g.tick))

	p := base
	p.MaxVelocity = base.MaxVelocity * scale
	p.Acceleration = base.Acceleration * scale
	g.mover.SetPhysics(p)
}

// advanceClock ends a rush round once its duration has passed.
func (g *Game) advanceClock(dt float64) {
	if dt > 0 {
		g.elapsed += time.Duration(dt * float64(time.Second))
	}
	if g.settings.RushDuration > 0 && g.elapsed >= g.settings.RushDuration {
		g.gameOver = true
		g.logger.Info("rush over", "sandwiches", g.progression.Sandwiches())
	}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.progression.Sandwiches(),
		GameOver: g.gameOver,
		Paused:   g.paused,
	}
}

// Board returns the board dimensions.
func (g *Game) Board() Board {
	return g.board
}

// Avatar returns a copy of the avatar state.
func (g *Game) Avatar() Avatar {
	return g.avatar
}

// Counters returns a copy of the counter roster.
func (g *Game) Counters() Roster {
	return g.roster
}

// Sandwiches returns the number of completed sandwiches.
func (g *Game) Sandwiches() int {
	return g.progression.Sandwiches()
}

// Target returns the role of the active counter.
func (g *Game) Target() Role {
	return g.progression.Target()
}

// Cursor returns the progression cursor.
func (g *Game) Cursor() int {
	return g.progression.Cursor()
}

// Levels returns how many layouts have been generated since Reset.
func (g *Game) Levels() int {
	return g.levels
}

// LastLevel returns the report of the most recent layout.
func (g *Game) LastLevel() LevelReport {
	return g.lastLevel
}

// RunStats summarizes the session since Reset.
func (g *Game) RunStats() registry.RunStats {
	return registry.RunStats{
		Pickups:   g.pickups,
		Levels:    g.levels,
		Exhausted: g.exhausted,
	}
}

// LastPickup returns the most recent pickup since Reset, if any.
func (g *Game) LastPickup() (Pickup, bool) {
	if g.lastPickup == nil {
		return Pickup{}, false
	}
	return *g.lastPickup, true
}

// Controls returns the held directions.
func (g *Game) Controls() Controls {
	return g.controls
}

// Remaining returns the time left in a rush round, or 0 in classic mode.
func (g *Game) Remaining() time.Duration {
	if g.mode != ModeRush {
		return 0
	}
	return max(g.settings.RushDuration-g.elapsed, 0)
}
