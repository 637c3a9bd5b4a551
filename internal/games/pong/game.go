// Package pong turns the arena simulation into a playable registry game.
// It maps input frames to paddle intents, advances the match with a fixed
// step and draws it into a character screen.
package pong

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/blockpong/internal/arena"
	"github.com/vovakirdan/blockpong/internal/config"
	"github.com/vovakirdan/blockpong/internal/core"
	"github.com/vovakirdan/blockpong/internal/registry"
)

// inputHold is how long a key press keeps a paddle moving. Terminals only
// report presses, so a held key shows up as a stream of repeats.
const inputHold = 0.15

// Game drives one match for a registry mode.
type Game struct {
	mode   registry.Mode
	opts   registry.Options
	logger *log.Logger

	state       *arena.State
	runtime     core.RuntimeConfig
	progression *config.DifficultyManager

	held     [2]core.Direction
	holdLeft [2]float64
	aiLevel  int // 0 when no CPU paddle
	initial  int
	result   *arena.MatchComplete
}

// New creates a match for mode. The match itself is built by Reset.
func New(mode registry.Mode, opts registry.Options) (*Game, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	g := &Game{
		mode:   mode,
		opts:   opts,
		logger: logger.WithPrefix(mode.ID),
	}
	if err := g.arenaConfig(0).Validate(); err != nil {
		return nil, fmt.Errorf("pong: %w", err)
	}
	return g, nil
}

// ID returns the mode identifier.
func (g *Game) ID() string {
	return g.mode.ID
}

// Title returns the display name for this mode.
func (g *Game) Title() string {
	return g.mode.Title
}

// arenaConfig hands the first CPU paddle of the mode to the built-in
// controller.
func (g *Game) arenaConfig(seed int64) arena.Config {
	cfg := g.opts.Arena
	cfg.Seed = seed
	level := cfg.AILevel
	if level == 0 {
		level = (arena.MinAILevel + arena.MaxAILevel) / 2
	}
	cfg.AIEnabled, cfg.AIPlayer = false, core.NoPlayer
	for i, src := range g.mode.Sources {
		if src == arena.SourceAI {
			cfg.AIEnabled, cfg.AIPlayer, cfg.AILevel = true, core.PlayerID(i+1), level
			break
		}
	}
	return cfg
}

// Reset starts a fresh match.
func (g *Game) Reset(runtime core.RuntimeConfig) error {
	cfg := g.arenaConfig(runtime.Seed)
	st, err := arena.NewState(cfg, g.opts.Level, arena.WithListener(g.onEvent))
	if err != nil {
		return fmt.Errorf("pong: %w", err)
	}
	if g.opts.OnEvent != nil {
		st.Subscribe(g.opts.OnEvent)
	}

	// Every CPU paddle past the first gets its own controller.
	for i, src := range g.mode.Sources {
		p := core.PlayerID(i + 1)
		if src != arena.SourceAI || p == cfg.AIPlayer {
			continue
		}
		d, err := arena.DifficultyForLevel(cfg.AILevel)
		if err != nil {
			return fmt.Errorf("pong: %w", err)
		}
		ctrl := arena.NewController(d, cfg.FieldHeight, arena.NewSimpleRNG(runtime.Seed+int64(p)))
		if err := st.SetMovement(p, arena.NewAIInput(ctrl)); err != nil {
			return fmt.Errorf("pong: %w", err)
		}
	}

	g.state = st
	g.runtime = runtime
	g.held = [2]core.Direction{}
	g.holdLeft = [2]float64{}
	g.result = nil
	g.aiLevel = 0
	if cfg.AIEnabled {
		g.aiLevel = cfg.AILevel
	}
	g.initial = g.aiLevel
	g.progression = config.NewDifficultyManager(g.opts.Progression, cfg.AILevel)

	g.logger.Info("match started", "level", st.Level().ID, "seed", runtime.Seed, "cpu", g.aiLevel)
	return nil
}

// restart replays the current level from zero.
func (g *Game) restart() {
	if err := g.state.Restart(); err != nil {
		g.logger.Error("restart failed", "err", err)
		return
	}
	g.held = [2]core.Direction{}
	g.holdLeft = [2]float64{}
	g.result = nil
	if g.aiLevel != g.initial {
		if err := g.state.SetAIDifficulty(g.initial); err == nil {
			g.aiLevel = g.initial
		}
	}
	g.logger.Info("match restarted", "level", g.state.Level().ID)
}

// Step advances the match by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.state == nil {
		return core.StepResult{}
	}

	if in.Has(core.ActionRestart) && !g.state.Active() {
		g.restart()
	}
	if in.Has(core.ActionPause) && g.state.Active() {
		g.state.SetPaused(!g.state.Paused())
	}

	dt := g.runtime.TickDelta()
	if !g.state.Paused() {
		g.steer(in, dt)
	}
	if _, err := g.state.Tick(dt); err != nil {
		g.logger.Error("tick failed", "err", err)
	}
	g.progress()

	return core.StepResult{State: g.State()}
}

// steer turns key presses into held paddle intents.
func (g *Game) steer(in core.InputFrame, dt float64) {
	for _, p := range []core.PlayerID{core.Player1, core.Player2} {
		if !g.mode.Human(p) {
			continue
		}
		i := p - 1
		if dir := g.intent(in, p); dir != core.DirNone {
			g.held[i], g.holdLeft[i] = dir, inputHold
		} else if g.holdLeft[i] > 0 {
			g.holdLeft[i] -= dt
			if g.holdLeft[i] <= 0 {
				g.held[i] = core.DirNone
			}
		}
		//nolint:errcheck // p is always a valid player here
		g.state.SetPaddleIntent(p, g.held[i])
	}
}

// intent reads the keys bound to player. A lone human may use either set.
func (g *Game) intent(in core.InputFrame, p core.PlayerID) core.Direction {
	if p == core.Player2 {
		return in.Direction(core.ActionUp2, core.ActionDown2)
	}
	dir := in.Direction(core.ActionUp, core.ActionDown)
	if dir == core.DirNone && !g.mode.Human(core.Player2) {
		dir = in.Direction(core.ActionUp2, core.ActionDown2)
	}
	return dir
}

// progress retunes the CPU against human players as the match goes on.
func (g *Game) progress() {
	if g.aiLevel == 0 || !g.progression.IsEnabled() || !g.state.Active() {
		return
	}
	points := 0
	for _, p := range []core.PlayerID{core.Player1, core.Player2} {
		if g.mode.Human(p) {
			points += g.state.Score(p)
		}
	}
	level := g.progression.Level(points, g.state.Elapsed())
	if level == g.aiLevel {
		return
	}
	if err := g.state.SetAIDifficulty(level); err != nil {
		g.logger.Warn("cpu level rejected", "level", level, "err", err)
		return
	}
	g.aiLevel = level
	g.logger.Info("cpu level", "level", level)
}

func (g *Game) onEvent(e arena.Event) {
	switch ev := e.(type) {
	case arena.ScoreChanged:
		g.logger.Debug("score", "player", ev.Scorer, "p1", ev.Score1, "p2", ev.Score2)
	case arena.BlockDestroyed:
		g.logger.Debug("block destroyed", "category", ev.Category, "x", ev.X, "y", ev.Y)
	case arena.ItemSpawned:
		g.logger.Debug("item spawned", "kind", ev.Kind, "target", ev.Target)
	case arena.LevelComplete:
		g.logger.Info("level complete", "level", ev.Level)
	case arena.MatchComplete:
		g.result = &ev
		g.logger.Info("match complete",
			"reason", ev.Reason, "winner", ev.Winner,
			"p1", ev.Score1, "p2", ev.Score2, "elapsed", ev.Elapsed)
	}
}

// State returns the current match state.
func (g *Game) State() core.GameState {
	if g.state == nil {
		return core.GameState{}
	}
	st := core.GameState{
		Score1:   g.state.Score(core.Player1),
		Score2:   g.state.Score(core.Player2),
		GameOver: !g.state.Active(),
		Paused:   g.state.Paused(),
		Level:    g.state.Level().ID,
		Elapsed:  g.state.Elapsed(),
		AILevel:  g.aiLevel,
	}
	if g.result != nil {
		st.Winner = g.result.Winner
		st.Reason = g.result.Reason.String()
	}
	return st
}

// Snapshot returns the full simulation state.
func (g *Game) Snapshot() arena.Snapshot {
	if g.state == nil {
		return arena.Snapshot{}
	}
	return g.state.Snapshot()
}

// Register the modes with the registry
func init() {
	for _, mode := range []registry.Mode{registry.ModeArena, registry.ModeVersus, registry.ModeDemo} {
		registry.Register(mode, func(m registry.Mode, opts registry.Options) (registry.Game, error) {
			g, err := New(m, opts)
			if err != nil {
				return nil, err
			}
			return g, nil
		})
	}
}
