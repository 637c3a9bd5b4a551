// Package arena is the simulation core of a pong arena with breakout blocks:
// ball and paddle motion, collisions, timed power-ups, the CPU opponent and
// the per-tick orchestration that ties them together. It knows nothing about
// terminals, files or time sources; the caller drives Tick.
package arena

import (
	"fmt"
	"math"

	"github.com/vovakirdan/blockpong/internal/core"
)

// OutcomeKind classifies the result of a tick.
type OutcomeKind int

const (
	Continuing OutcomeKind = iota
	TimeExpired
	LevelCleared
)

func (k OutcomeKind) String() string {
	switch k {
	case TimeExpired:
		return "time expired"
	case LevelCleared:
		return "level complete"
	default:
		return "continuing"
	}
}

// TickOutcome is returned by every tick. Winner is only meaningful for
// TimeExpired and is NoPlayer on a tie.
type TickOutcome struct {
	Kind   OutcomeKind
	Winner core.PlayerID
}

// Option customizes a State at construction.
type Option func(*State)

// WithItemFactory replaces the weighted item factory.
func WithItemFactory(f ItemFactory) Option {
	return func(s *State) { s.factory = f }
}

// WithListener subscribes l before the first tick.
func WithListener(l Listener) Option {
	return func(s *State) { s.Subscribe(l) }
}

// State aggregates everything in one match. It is not safe for concurrent
// use; a whole Tick is one critical section.
type State struct {
	cfg   Config
	level Level

	ball    *Ball
	paddles [2]*Paddle
	blocks  []*Block
	items   []Item

	scores  [2]int
	elapsed float64
	active  bool
	paused  bool
	outcome TickOutcome

	destructible int // Destructible blocks the level started with

	rng        *SimpleRNG
	factory    ItemFactory
	dispatcher Dispatcher
	ai         *Controller
	aiPlayer   core.PlayerID
	overrides  [2]MovementStrategy

	listeners []Listener
	pending   []Event
}

// NewState validates cfg and starts a match on level.
func NewState(cfg Config, level Level, opts ...Option) (*State, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	s := &State{cfg: cfg, rng: NewSimpleRNG(cfg.Seed)}
	s.factory = NewWeightedItemFactory(cfg.Items, s.rng)
	for _, opt := range opts {
		opt(s)
	}

	if cfg.AIEnabled {
		d, err := DifficultyForLevel(cfg.AILevel)
		if err != nil {
			return nil, err
		}
		s.ai = NewController(d, cfg.FieldHeight, s.rng)
		s.aiPlayer = cfg.AIPlayer
	}

	if err := s.SetLevel(level, cfg.FieldWidth, cfg.FieldHeight); err != nil {
		return nil, err
	}
	return s, nil
}

// SetLevel replaces the blocks and re-derives ball and paddle placement for
// a field of the given size. Scores and elapsed time are kept. Nothing is
// changed when it fails.
func (s *State) SetLevel(level Level, fieldW, fieldH float64) error {
	cfg := s.cfg
	cfg.FieldWidth, cfg.FieldHeight = fieldW, fieldH
	if err := cfg.Validate(); err != nil {
		return err
	}

	specs, err := level.Blocks(fieldW, fieldH)
	if err != nil {
		return err
	}
	blocks := make([]*Block, 0, len(specs))
	destructible := 0
	for _, spec := range specs {
		b, err := NewBlock(spec)
		if err != nil {
			return err
		}
		if b.Category.Destructible() {
			destructible++
		}
		blocks = append(blocks, b)
	}

	ball, paddles, err := s.place(cfg)
	if err != nil {
		return err
	}

	s.dropItems()
	s.cfg = cfg
	s.level = level
	s.blocks = blocks
	s.destructible = destructible
	s.ball = ball
	s.paddles = paddles
	s.active = true
	s.outcome = TickOutcome{}
	s.dispatcher = Dispatcher{
		Wall:   WallCollision{Width: fieldW, Height: fieldH, Random: s.rng.Float64},
		Paddle: PaddleCollision{Acceleration: cfg.Acceleration, MaxDeflection: cfg.MaxDeflection},
		Block:  BlockCollision{Factory: s.factory},
	}
	if s.ai != nil {
		s.ai.SetFieldHeight(fieldH)
		s.ai.Reset()
	}
	for _, m := range s.overrides {
		if a, ok := m.(*AIInput); ok && a.controller != nil {
			a.controller.SetFieldHeight(fieldH)
			a.controller.Reset()
			a.held = core.DirNone
		}
	}
	s.attachMovement()
	return nil
}

// place builds a fresh ball at the center and both paddles.
func (s *State) place(cfg Config) (*Ball, [2]*Paddle, error) {
	var paddles [2]*Paddle

	towardRight := s.rng.Intn(2) == 0
	ball, err := NewBall(BallConfig{
		X:        cfg.FieldWidth / 2,
		Y:        cfg.FieldHeight / 2,
		Radius:   cfg.BallRadius,
		Speed:    cfg.BallSpeed,
		MaxSpeed: cfg.BallMaxSpeed,
		Angle:    ServeAngle(towardRight, s.rng.Float64()),
	})
	if err != nil {
		return nil, paddles, err
	}

	base := PaddleConfig{
		Y:          cfg.FieldHeight / 2,
		HalfHeight: cfg.PaddleHalfHeight,
		Thickness:  cfg.PaddleThickness,
		Speed:      cfg.PaddleSpeed,
		North:      cfg.PaddleMargin,
		South:      cfg.FieldHeight - cfg.PaddleMargin,
	}

	left := base
	left.X = cfg.PaddleOffset
	left.Side = SideLeft
	left.Color, left.Accent = core.ColorBlue, core.ColorCyan

	right := base
	right.X = cfg.FieldWidth - cfg.PaddleOffset
	right.Side = SideRight
	right.Color, right.Accent = core.ColorRed, core.ColorMagenta

	for i, pc := range []PaddleConfig{left, right} {
		p, err := NewPaddle(pc)
		if err != nil {
			return nil, paddles, fmt.Errorf("player %d: %w", i+1, err)
		}
		p.player = core.PlayerID(i + 1)
		paddles[i] = p
	}
	return ball, paddles, nil
}

func (s *State) attachMovement() {
	for i, p := range s.paddles {
		if m := s.overrides[i]; m != nil {
			p.SetMovement(m)
			continue
		}
		if s.ai != nil && p.Player() == s.aiPlayer {
			p.SetMovement(NewAIInput(s.ai))
		} else {
			p.SetMovement(HumanInput{})
		}
	}
}

// Restart begins a new match on the current level: new entities, zero
// scores and clock.
func (s *State) Restart() error {
	if err := s.SetLevel(s.level, s.cfg.FieldWidth, s.cfg.FieldHeight); err != nil {
		return err
	}
	s.scores = [2]int{}
	s.elapsed = 0
	s.paused = false
	return nil
}

// Tick advances the match by dt seconds. dt is clamped to the configured
// maximum step. A stopped or paused match is left untouched.
func (s *State) Tick(dt float64) (TickOutcome, error) {
	if dt <= 0 || math.IsNaN(dt) {
		return TickOutcome{}, fmt.Errorf("%w: non-positive time delta %v", ErrContractViolation, dt)
	}
	if !s.active {
		return s.outcome, nil
	}
	if s.paused {
		return TickOutcome{Kind: Continuing}, nil
	}
	dt = min(dt, s.cfg.MaxDelta)
	defer s.flush()

	s.elapsed += dt
	if s.elapsed >= s.cfg.MatchDuration {
		return s.finish(TimeExpired), nil
	}

	s.ball.Update(dt)
	for _, p := range s.paddles {
		p.Move(p.Movement().Direction(dt, s.ball, p), dt)
	}

	s.pruneBlocks()
	if err := s.tickItems(dt); err != nil {
		return TickOutcome{}, err
	}

	if err := s.dispatcher.Run(s); err != nil {
		return TickOutcome{}, err
	}

	if s.destructible > 0 && s.RemainingBlocks() == 0 {
		s.emit(LevelComplete{Level: s.level.ID})
		return s.finish(LevelCleared), nil
	}
	return TickOutcome{Kind: Continuing}, nil
}

func (s *State) finish(kind OutcomeKind) TickOutcome {
	s.active = false
	s.outcome = TickOutcome{Kind: kind, Winner: s.Leader()}
	reason := EndTimeExpired
	if kind == LevelCleared {
		reason = EndLevelComplete
	}
	s.emit(MatchComplete{
		Reason:  reason,
		Winner:  s.outcome.Winner,
		Score1:  s.scores[0],
		Score2:  s.scores[1],
		Elapsed: s.elapsed,
	})
	return s.outcome
}

func (s *State) pruneBlocks() {
	kept := s.blocks[:0]
	for _, b := range s.blocks {
		if b.Active {
			kept = append(kept, b)
		}
	}
	clear(s.blocks[len(kept):])
	s.blocks = kept
}

func (s *State) tickItems(dt float64) error {
	kept := s.items[:0]
	for _, it := range s.items {
		if err := it.Tick(dt); err != nil {
			return fmt.Errorf("tick %s item: %w", it.Kind(), err)
		}
		if !it.Expired() {
			kept = append(kept, it)
		}
	}
	clear(s.items[len(kept):])
	s.items = kept
	return nil
}

// dropItems deactivates every item so targets return to their prior state.
func (s *State) dropItems() {
	for _, it := range s.items {
		_ = it.Deactivate()
	}
	s.items = nil
}

// spawnItem adds a dropped item and applies it to target, if any. An
// active item of the same kind on the same target is retired first so
// effects do not stack.
func (s *State) spawnItem(it Item, target *Paddle) error {
	s.items = append(s.items, it)
	ev := ItemSpawned{Kind: it.Kind()}
	if target != nil {
		for _, other := range s.items {
			if other != it && other.IsActive() && other.Kind() == it.Kind() && other.Target() == any(target) {
				if err := other.Deactivate(); err != nil {
					return err
				}
			}
		}
		if err := it.Apply(target); err != nil {
			return err
		}
		ev.Target = target.Player()
	}
	s.emit(ev)
	return nil
}

func (s *State) addPoint(p core.PlayerID) {
	if !p.Valid() {
		return
	}
	s.scores[p-1]++
	s.emit(ScoreChanged{Scorer: p, Score1: s.scores[0], Score2: s.scores[1]})
}

// Subscribe registers a listener for events raised by later ticks.
func (s *State) Subscribe(l Listener) {
	if l != nil {
		s.listeners = append(s.listeners, l)
	}
}

func (s *State) emit(e Event) {
	s.pending = append(s.pending, e)
}

func (s *State) flush() {
	events := s.pending
	s.pending = nil
	for _, e := range events {
		for _, l := range s.listeners {
			l(e)
		}
	}
}

// SetAIDifficulty retunes the CPU paddle to a table level. Without a CPU
// paddle the level is still validated and remembered for EnableAI.
func (s *State) SetAIDifficulty(level int) error {
	d, err := DifficultyForLevel(level)
	if err != nil {
		return err
	}
	s.cfg.AILevel = level
	if s.ai != nil {
		s.ai.SetDifficulty(d)
	}
	return nil
}

// EnableAI hands player's paddle to the CPU.
func (s *State) EnableAI(player core.PlayerID) error {
	if !player.Valid() {
		return fmt.Errorf("%w: unknown player %d", ErrContractViolation, player)
	}
	level := s.cfg.AILevel
	if level == 0 {
		level = (MinAILevel + MaxAILevel) / 2
	}
	d, err := DifficultyForLevel(level)
	if err != nil {
		return err
	}
	if s.ai == nil {
		s.ai = NewController(d, s.cfg.FieldHeight, s.rng)
	} else {
		s.ai.SetDifficulty(d)
		s.ai.Reset()
	}
	s.cfg.AIEnabled, s.cfg.AIPlayer, s.cfg.AILevel = true, player, level
	s.aiPlayer = player
	s.attachMovement()
	return nil
}

// DisableAI returns both paddles to human control.
func (s *State) DisableAI() {
	s.ai = nil
	s.aiPlayer = core.NoPlayer
	s.cfg.AIEnabled = false
	s.attachMovement()
}

// AIEnabled reports which paddle the CPU steers, if any.
func (s *State) AIEnabled() (core.PlayerID, bool) {
	return s.aiPlayer, s.ai != nil
}

// SetMovement installs a custom strategy for player's paddle. It takes
// precedence over the built-in CPU and survives level loads and restarts.
// A nil strategy restores the default.
func (s *State) SetMovement(player core.PlayerID, m MovementStrategy) error {
	if !player.Valid() {
		return fmt.Errorf("%w: unknown player %d", ErrContractViolation, player)
	}
	s.overrides[player-1] = m
	s.attachMovement()
	return nil
}

// SetPaddleIntent records the direction a human wants player's paddle to
// travel on the next tick. It does not move anything itself.
func (s *State) SetPaddleIntent(player core.PlayerID, dir core.Direction) error {
	if !player.Valid() {
		return fmt.Errorf("%w: unknown player %d", ErrContractViolation, player)
	}
	s.paddles[player-1].SetIntent(dir)
	return nil
}

// SetPaused freezes or resumes the simulation. Reads keep working.
func (s *State) SetPaused(p bool) { s.paused = p }

func (s *State) Paused() bool     { return s.paused }
func (s *State) Active() bool     { return s.active }
func (s *State) Elapsed() float64 { return s.elapsed }

// Remaining returns the match time left.
func (s *State) Remaining() float64 {
	return max(s.cfg.MatchDuration-s.elapsed, 0)
}

// Config returns the configuration in effect.
func (s *State) Config() Config { return s.cfg }

// Level returns the loaded level.
func (s *State) Level() Level { return s.level }

// Score returns player's score, or 0 for an unknown player.
func (s *State) Score(player core.PlayerID) int {
	if !player.Valid() {
		return 0
	}
	return s.scores[player-1]
}

// Leader returns the higher-scoring player, or NoPlayer on a tie.
func (s *State) Leader() core.PlayerID {
	switch {
	case s.scores[0] > s.scores[1]:
		return core.Player1
	case s.scores[1] > s.scores[0]:
		return core.Player2
	default:
		return core.NoPlayer
	}
}

// RemainingBlocks counts active destructible blocks.
func (s *State) RemainingBlocks() int {
	n := 0
	for _, b := range s.blocks {
		if b.Active && b.Category.Destructible() {
			n++
		}
	}
	return n
}
