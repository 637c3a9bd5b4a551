package arena

import (
	"errors"
	"math"
	"testing"

	"github.com/vovakirdan/blockpong/internal/core"
)

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.AIEnabled = false
	cfg.MatchDuration = 60
	cfg.Seed = 1
	return cfg
}

func newTestState(t *testing.T, level Level, opts ...Option) *State {
	t.Helper()
	s, err := NewState(testConfig(), level, opts...)
	if err != nil {
		t.Fatalf("NewState: %v", err)
	}
	return s
}

func singleBlock(cat Category, res int) Level {
	return Level{ID: "single", Specs: []BlockSpec{
		{X: 500, Y: 290, W: 20, H: 20, Resistance: res, Category: cat},
	}}
}

func aim(s *State, x, y, angle float64) {
	s.ball.SetPosition(x, y)
	s.ball.SetAngle(angle)
}

func collect(s *State) *[]Event {
	var events []Event
	s.Subscribe(func(e Event) { events = append(events, e) })
	return &events
}

func TestNewStateRejectsBadConfig(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"ai level", func(c *Config) { c.AIEnabled, c.AILevel = true, 11 }},
		{"ai player", func(c *Config) { c.AIEnabled, c.AIPlayer = true, core.NoPlayer }},
		{"paddle too tall", func(c *Config) { c.PaddleHalfHeight = 400 }},
		{"zero field", func(c *Config) { c.FieldWidth = 0 }},
		{"ball too fast", func(c *Config) { c.BallSpeed = c.BallMaxSpeed + 1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			tt.mutate(&cfg)
			if _, err := NewState(cfg, Level{}); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestTickRejectsNonPositiveDelta(t *testing.T) {
	s := newTestState(t, Level{})
	for _, dt := range []float64{0, -0.016, math.NaN()} {
		if _, err := s.Tick(dt); !errors.Is(err, ErrContractViolation) {
			t.Errorf("Tick(%v): expected ErrContractViolation, got %v", dt, err)
		}
	}
	if s.Elapsed() != 0 {
		t.Errorf("rejected ticks advanced the clock to %v", s.Elapsed())
	}
}

func TestBallCrossesOpenField(t *testing.T) {
	s := newTestState(t, Level{})
	aim(s, 400, 300, 0)

	for elapsed := 0.0; elapsed < 1.0-1e-9; elapsed += 0.016 {
		out, err := s.Tick(0.016)
		if err != nil {
			t.Fatalf("Tick: %v", err)
		}
		if out.Kind != Continuing {
			t.Fatalf("unexpected outcome %v", out.Kind)
		}
	}

	ball := s.Ball()
	if math.Abs(ball.X-700) > 5 {
		t.Errorf("ball x = %v, want about 700", ball.X)
	}
	if ball.Y != 300 || ball.Speed != 300 {
		t.Errorf("ball drifted: y=%v speed=%v", ball.Y, ball.Speed)
	}
}

func TestTickClampsDelta(t *testing.T) {
	s := newTestState(t, Level{})
	if _, err := s.Tick(5); err != nil {
		t.Fatalf("Tick: %v", err)
	}
	if s.Elapsed() != DefaultMaxDelta {
		t.Errorf("elapsed = %v, want %v", s.Elapsed(), DefaultMaxDelta)
	}
}

func TestLeftExitScoresForPlayerTwo(t *testing.T) {
	s := newTestState(t, Level{})
	events := collect(s)
	aim(s, 5, 100, math.Pi)

	if _, err := s.Tick(0.016); err != nil {
		t.Fatalf("Tick: %v", err)
	}
	if s.Score(core.Player2) != 1 || s.Score(core.Player1) != 0 {
		t.Errorf("scores = %d:%d, want 0:1", s.Score(core.Player1), s.Score(core.Player2))
	}

	ball := s.Ball()
	if ball.X != 400 || ball.Y != 300 || ball.Speed != 300 {
		t.Errorf("ball not re-served from center: %+v", ball)
	}
	if !(ball.Angle >= 13*math.Pi/8-eps || ball.Angle <= math.Pi/8+eps) {
		t.Errorf("serve angle %v does not head right", ball.Angle)
	}

	if len(*events) != 1 {
		t.Fatalf("expected one event, got %d", len(*events))
	}
	sc, ok := (*events)[0].(ScoreChanged)
	if !ok || sc.Scorer != core.Player2 || sc.Score2 != 1 {
		t.Errorf("unexpected event %#v", (*events)[0])
	}
}

func TestRightExitScoresForPlayerOne(t *testing.T) {
	s := newTestState(t, Level{})
	aim(s, 795, 500, 0)
	if _, err := s.Tick(0.016); err != nil {
		t.Fatalf("Tick: %v", err)
	}
	if s.Score(core.Player1) != 1 || s.Score(core.Player2) != 0 {
		t.Errorf("scores = %d:%d, want 1:0", s.Score(core.Player1), s.Score(core.Player2))
	}
	if a := s.Ball().Angle; a < 7*math.Pi/8-eps || a > 11*math.Pi/8+eps {
		t.Errorf("serve angle %v does not head left", a)
	}
}

func TestTopWallBounceInTick(t *testing.T) {
	s := newTestState(t, Level{})
	aim(s, 400, 10, math.Pi/2)
	if _, err := s.Tick(0.016); err != nil {
		t.Fatalf("Tick: %v", err)
	}
	ball := s.Ball()
	if math.Abs(ball.Angle-3*math.Pi/2) > eps {
		t.Errorf("angle after top bounce = %v, want 3pi/2", ball.Angle)
	}
	if ball.Speed != 300 || ball.Y != ball.Radius {
		t.Errorf("bounce changed speed or left ball in wall: %+v", ball)
	}
}

func TestPaddleHitInTick(t *testing.T) {
	s := newTestState(t, Level{})
	aim(s, 40, 300, math.Pi)
	if _, err := s.Tick(0.016); err != nil {
		t.Fatalf("Tick: %v", err)
	}
	ball := s.Ball()
	if math.Abs(ball.Speed-315) > 1e-9 {
		t.Errorf("speed = %v, want 315", ball.Speed)
	}
	if math.Abs(ball.Angle) > eps {
		t.Errorf("center hit should send the ball straight right, angle %v", ball.Angle)
	}
	if ball.LastStruck != core.Player1 {
		t.Errorf("last struck = %v, want P1", ball.LastStruck)
	}
}

func TestLevelCompleteWhenLastBlockFalls(t *testing.T) {
	s := newTestState(t, singleBlock(CategoryDestructible, 1))
	events := collect(s)
	aim(s, 490, 300, 0)

	out, err := s.Tick(0.016)
	if err != nil {
		t.Fatalf("Tick: %v", err)
	}
	if out.Kind != LevelCleared {
		t.Fatalf("outcome = %v, want level complete", out.Kind)
	}
	if s.Active() {
		t.Error("match should be inactive after level complete")
	}
	if s.RemainingBlocks() != 0 {
		t.Errorf("remaining blocks = %d", s.RemainingBlocks())
	}

	var sawDestroyed, sawLevel, sawMatch bool
	for _, e := range *events {
		switch ev := e.(type) {
		case BlockDestroyed:
			sawDestroyed = true
		case LevelComplete:
			sawLevel = ev.Level == "single"
		case MatchComplete:
			sawMatch = ev.Reason == EndLevelComplete
		}
	}
	if !sawDestroyed || !sawLevel || !sawMatch {
		t.Errorf("missing events: destroyed=%v level=%v match=%v", sawDestroyed, sawLevel, sawMatch)
	}

	// Further ticks are no-ops that repeat the outcome.
	before := s.Snapshot()
	again, err := s.Tick(0.016)
	if err != nil || again.Kind != LevelCleared {
		t.Errorf("tick after end = %v, %v", again, err)
	}
	after := s.Snapshot()
	if before.Hash() != after.Hash() {
		t.Error("inactive match changed on tick")
	}
}

func TestMultiHitBlockSurvivesFirstHit(t *testing.T) {
	s := newTestState(t, singleBlock(CategoryMultiHit, 2))
	aim(s, 490, 300, 0)
	out, _ := s.Tick(0.016)
	if out.Kind != Continuing {
		t.Fatalf("outcome = %v, want continuing", out.Kind)
	}
	blocks := s.Blocks()
	if len(blocks) != 1 || blocks[0].Resistance != 1 {
		t.Errorf("blocks = %+v, want one block with resistance 1", blocks)
	}
}

func TestIndestructibleLevelNeverCompletes(t *testing.T) {
	s := newTestState(t, singleBlock(CategoryIndestructible, 0))
	aim(s, 490, 300, 0)
	for range 10 {
		out, err := s.Tick(0.016)
		if err != nil {
			t.Fatalf("Tick: %v", err)
		}
		if out.Kind != Continuing {
			t.Fatalf("outcome = %v, want continuing", out.Kind)
		}
	}
	if len(s.Blocks()) != 1 {
		t.Error("indestructible block disappeared")
	}
}

func fixedItems(newItem func() Item) Option {
	return WithItemFactory(ItemFactoryFunc(func(*Block) Item { return newItem() }))
}

func TestBonusItemAppliedToLastStriker(t *testing.T) {
	s := newTestState(t, singleBlock(CategoryBonus, 1), fixedItems(func() Item { return NewSpeedBoost(2, 5) }))
	events := collect(s)
	aim(s, 490, 300, 0)
	s.ball.strike(s.paddles[0])

	if _, err := s.Tick(0.016); err != nil {
		t.Fatalf("Tick: %v", err)
	}
	if got := s.Paddle(core.Player1).Speed; got != 720 {
		t.Errorf("P1 speed = %v, want 720", got)
	}
	items := s.Items()
	if len(items) != 1 || !items[0].Active || items[0].Target != core.Player1 {
		t.Errorf("items = %+v", items)
	}

	var spawned *ItemSpawned
	for _, e := range *events {
		if ev, ok := e.(ItemSpawned); ok {
			spawned = &ev
		}
	}
	if spawned == nil || spawned.Kind != ItemSpeedBoost || spawned.Target != core.Player1 {
		t.Errorf("ItemSpawned event = %+v", spawned)
	}
}

func TestBonusItemWithoutStrikerStaysIdle(t *testing.T) {
	s := newTestState(t, singleBlock(CategoryBonus, 1), fixedItems(func() Item { return NewFog(5) }))
	aim(s, 490, 300, 0)

	if _, err := s.Tick(0.016); err != nil {
		t.Fatalf("Tick: %v", err)
	}
	items := s.Items()
	if len(items) != 1 || items[0].Active || items[0].Target != core.NoPlayer {
		t.Errorf("items = %+v, want one idle item", items)
	}
	for _, p := range []core.PlayerID{core.Player1, core.Player2} {
		if s.Paddle(p).Fogged {
			t.Errorf("%v fogged without a striker", p)
		}
	}
}

func TestSameKindItemsDoNotStack(t *testing.T) {
	s := newTestState(t, Level{})
	p := s.paddles[0]

	first := NewSpeedBoost(2, 5)
	if err := s.spawnItem(first, p); err != nil {
		t.Fatalf("spawnItem: %v", err)
	}
	if err := s.spawnItem(NewSpeedBoost(2, 5), p); err != nil {
		t.Fatalf("spawnItem: %v", err)
	}
	if p.Speed() != 720 {
		t.Errorf("speed = %v, want 720 without stacking", p.Speed())
	}
	if first.IsActive() {
		t.Error("older boost should have been retired")
	}

	if _, err := s.Tick(0.016); err != nil {
		t.Fatalf("Tick: %v", err)
	}
	if n := len(s.Items()); n != 1 {
		t.Errorf("expected retired item pruned, %d items left", n)
	}
}

func TestItemsExpireDuringTicks(t *testing.T) {
	s := newTestState(t, Level{})
	p := s.paddles[1]
	if err := s.spawnItem(NewResize(2, 0.05), p); err != nil {
		t.Fatalf("spawnItem: %v", err)
	}
	if p.HalfHeight() != 100 {
		t.Fatalf("half-height = %v, want 100", p.HalfHeight())
	}
	for range 5 {
		if _, err := s.Tick(0.016); err != nil {
			t.Fatalf("Tick: %v", err)
		}
	}
	if p.HalfHeight() != 50 {
		t.Errorf("half-height after expiry = %v, want 50", p.HalfHeight())
	}
	if len(s.Items()) != 0 {
		t.Errorf("expired item not pruned: %+v", s.Items())
	}
}

func TestTimeExpired(t *testing.T) {
	tests := []struct {
		name   string
		score  []core.PlayerID
		winner core.PlayerID
	}{
		{"p1 leads", []core.PlayerID{core.Player1}, core.Player1},
		{"p2 leads", []core.PlayerID{core.Player2, core.Player2, core.Player1}, core.Player2},
		{"tie", nil, core.NoPlayer},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			cfg.MatchDuration = 0.05
			s, err := NewState(cfg, Level{})
			if err != nil {
				t.Fatal(err)
			}
			events := collect(s)
			for _, p := range tt.score {
				s.addPoint(p)
			}

			var out TickOutcome
			for range 10 {
				if out, err = s.Tick(0.016); err != nil {
					t.Fatal(err)
				}
				if out.Kind != Continuing {
					break
				}
			}
			if out.Kind != TimeExpired || out.Winner != tt.winner {
				t.Errorf("outcome = %+v, want time expired won by %v", out, tt.winner)
			}
			if s.Active() {
				t.Error("match still active")
			}

			last := (*events)[len(*events)-1]
			if mc, ok := last.(MatchComplete); !ok || mc.Winner != tt.winner || mc.Reason != EndTimeExpired {
				t.Errorf("last event = %#v", last)
			}
		})
	}
}

func TestPausedTickIsNoop(t *testing.T) {
	s := newTestState(t, Level{})
	s.SetPaused(true)
	before := s.Snapshot()
	out, err := s.Tick(0.016)
	if err != nil || out.Kind != Continuing {
		t.Fatalf("paused tick = %v, %v", out, err)
	}
	after := s.Snapshot()
	if before.Hash() != after.Hash() {
		t.Error("paused tick changed the state")
	}
	s.SetPaused(false)
	if _, err := s.Tick(0.016); err != nil || s.Elapsed() == 0 {
		t.Errorf("resumed tick did not advance: %v", err)
	}
}

func TestSetPaddleIntent(t *testing.T) {
	s := newTestState(t, Level{})
	if err := s.SetPaddleIntent(core.NoPlayer, core.DirUp); !errors.Is(err, ErrContractViolation) {
		t.Errorf("expected ErrContractViolation, got %v", err)
	}

	if err := s.SetPaddleIntent(core.Player1, core.DirUp); err != nil {
		t.Fatal(err)
	}
	if err := s.SetPaddleIntent(core.Player2, core.DirDown); err != nil {
		t.Fatal(err)
	}
	if s.Paddle(core.Player1).Y != 300 {
		t.Error("intent moved the paddle before a tick")
	}

	_, _ = s.Tick(0.1)
	if y := s.Paddle(core.Player1).Y; y >= 300 {
		t.Errorf("P1 should have moved up, y=%v", y)
	}
	if y := s.Paddle(core.Player2).Y; y <= 300 {
		t.Errorf("P2 should have moved down, y=%v", y)
	}
}

func TestAIControlsPaddle(t *testing.T) {
	cfg := testConfig()
	cfg.AIEnabled, cfg.AIPlayer, cfg.AILevel = true, core.Player2, 10
	s, err := NewState(cfg, Level{})
	if err != nil {
		t.Fatal(err)
	}
	if s.Paddle(core.Player2).Source != SourceAI || s.Paddle(core.Player1).Source != SourceHuman {
		t.Fatal("wrong movement sources")
	}

	aim(s, 400, 100, math.Pi/8)
	for range 30 {
		_, _ = s.Tick(0.016)
	}
	if y := s.Paddle(core.Player2).Y; y >= 300 {
		t.Errorf("CPU paddle should chase the ball upward, y=%v", y)
	}

	// A human intent on the CPU paddle is ignored.
	_ = s.SetPaddleIntent(core.Player2, core.DirDown)
	if s.Paddle(core.Player2).Source != SourceAI {
		t.Error("intent replaced the CPU")
	}
}

func TestSetAIDifficulty(t *testing.T) {
	s := newTestState(t, Level{})
	for _, level := range []int{0, 11} {
		if err := s.SetAIDifficulty(level); !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("level %d: expected ErrInvalidConfig, got %v", level, err)
		}
	}

	if err := s.EnableAI(core.Player1); err != nil {
		t.Fatal(err)
	}
	if err := s.SetAIDifficulty(10); err != nil {
		t.Fatal(err)
	}
	want, _ := DifficultyForLevel(10)
	if got := s.ai.Difficulty(); got != want {
		t.Errorf("difficulty = %+v, want %+v", got, want)
	}
	if player, on := s.AIEnabled(); !on || player != core.Player1 {
		t.Errorf("AIEnabled = %v, %v", player, on)
	}

	s.DisableAI()
	if s.Paddle(core.Player1).Source != SourceHuman {
		t.Error("DisableAI left the CPU in charge")
	}
	if err := s.EnableAI(core.NoPlayer); !errors.Is(err, ErrContractViolation) {
		t.Errorf("expected ErrContractViolation, got %v", err)
	}
}

func TestSetMovementOverride(t *testing.T) {
	cfg := testConfig()
	cfg.AIEnabled, cfg.AIPlayer, cfg.AILevel = true, core.Player2, 5
	s, err := NewState(cfg, Level{})
	if err != nil {
		t.Fatal(err)
	}
	d, _ := DifficultyForLevel(5)
	left := NewAIInput(NewController(d, cfg.FieldHeight, NewSimpleRNG(7)))
	if err := s.SetMovement(core.Player1, left); err != nil {
		t.Fatal(err)
	}
	if s.Paddle(core.Player1).Source != SourceAI || s.Paddle(core.Player2).Source != SourceAI {
		t.Fatal("expected two CPU paddles")
	}

	// Overrides survive a restart.
	if err := s.Restart(); err != nil {
		t.Fatal(err)
	}
	if s.Paddle(core.Player1).Source != SourceAI {
		t.Error("restart dropped the override")
	}

	if err := s.SetMovement(core.Player1, nil); err != nil {
		t.Fatal(err)
	}
	if s.Paddle(core.Player1).Source != SourceHuman {
		t.Error("nil override did not restore the human paddle")
	}
	if err := s.SetMovement(core.NoPlayer, left); !errors.Is(err, ErrContractViolation) {
		t.Errorf("expected ErrContractViolation, got %v", err)
	}
}

func TestSetLevelKeepsScores(t *testing.T) {
	s := newTestState(t, Level{})
	s.addPoint(core.Player1)
	wall, _ := LevelByID("wall")

	if err := s.SetLevel(wall, 1000, 700); err != nil {
		t.Fatalf("SetLevel: %v", err)
	}
	if s.Score(core.Player1) != 1 {
		t.Error("SetLevel reset the score")
	}
	if len(s.Blocks()) != 40 {
		t.Errorf("blocks = %d, want 40", len(s.Blocks()))
	}
	ball := s.Ball()
	if ball.X != 500 || ball.Y != 350 {
		t.Errorf("ball not re-centered: (%v, %v)", ball.X, ball.Y)
	}
	if x := s.Paddle(core.Player2).X; x != 1000-s.Config().PaddleOffset {
		t.Errorf("right paddle at %v", x)
	}

	if err := s.SetLevel(Level{}, 0, 700); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
	if s.Level().ID != "wall" || len(s.Blocks()) != 40 {
		t.Error("failed SetLevel changed the state")
	}
}

func TestRestart(t *testing.T) {
	s := newTestState(t, singleBlock(CategoryDestructible, 1))
	s.addPoint(core.Player2)
	aim(s, 490, 300, 0)
	_, _ = s.Tick(0.016)
	if s.Active() {
		t.Fatal("expected level complete")
	}

	if err := s.Restart(); err != nil {
		t.Fatal(err)
	}
	if !s.Active() || s.Elapsed() != 0 || s.Score(core.Player2) != 0 {
		t.Errorf("restart did not reset: active=%v elapsed=%v", s.Active(), s.Elapsed())
	}
	if s.RemainingBlocks() != 1 {
		t.Errorf("blocks not rebuilt: %d", s.RemainingBlocks())
	}
}

func TestStateDeterminism(t *testing.T) {
	run := func() uint64 {
		cfg := testConfig()
		cfg.AIEnabled, cfg.AIPlayer, cfg.AILevel = true, core.Player2, 6
		cfg.Seed = 12345
		level, _ := LevelByID("checker")
		s, err := NewState(cfg, level)
		if err != nil {
			t.Fatal(err)
		}
		for i := range 900 {
			dir := core.DirUp
			if i%90 < 45 {
				dir = core.DirDown
			}
			_ = s.SetPaddleIntent(core.Player1, dir)
			if _, err := s.Tick(1.0 / 60); err != nil {
				t.Fatal(err)
			}
		}
		snap := s.Snapshot()
		return snap.Hash()
	}
	if a, b := run(), run(); a != b {
		t.Errorf("determinism failed: %d != %d", a, b)
	}
}

func TestBuiltinLevelsLayOut(t *testing.T) {
	for _, l := range BuiltinLevels() {
		specs, err := l.Blocks(800, 600)
		if err != nil {
			t.Fatalf("%s: %v", l.ID, err)
		}
		for _, b := range specs {
			if b.X < 0 || b.Y < 0 || b.X+b.W > 800 || b.Y+b.H > 600 {
				t.Errorf("%s: block outside field: %+v", l.ID, b)
			}
			if b.X < DefaultConfig().PaddleOffset || b.X+b.W > 800-DefaultConfig().PaddleOffset {
				t.Errorf("%s: block overlaps paddle lanes: %+v", l.ID, b)
			}
		}
	}
	if _, ok := LevelByID("nope"); ok {
		t.Error("unknown level found")
	}
}

func TestParseLevelCategories(t *testing.T) {
	l := ParseLevel("t", "T", []string{"#B3X."})
	specs, err := l.Blocks(800, 600)
	if err != nil {
		t.Fatal(err)
	}
	want := []struct {
		cat Category
		res int
	}{
		{CategoryDestructible, 1},
		{CategoryBonus, 1},
		{CategoryMultiHit, 3},
		{CategoryIndestructible, 0},
	}
	if len(specs) != len(want) {
		t.Fatalf("got %d blocks, want %d", len(specs), len(want))
	}
	for i, w := range want {
		if specs[i].Category != w.cat || specs[i].Resistance != w.res {
			t.Errorf("block %d = %v/%d, want %v/%d", i, specs[i].Category, specs[i].Resistance, w.cat, w.res)
		}
	}
}
