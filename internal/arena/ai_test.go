package arena

import (
	"errors"
	"math"
	"testing"

	"github.com/vovakirdan/blockpong/internal/core"
)

func TestDifficultyTable(t *testing.T) {
	first, err := DifficultyForLevel(1)
	if err != nil {
		t.Fatalf("level 1: %v", err)
	}
	if first.ReactionDelay != 0.8 || first.ErrorAmplitude != 35 {
		t.Errorf("level 1 = %+v, want {0.8 35}", first)
	}
	last, _ := DifficultyForLevel(10)
	if last.ReactionDelay != 0.02 || last.ErrorAmplitude != 1 {
		t.Errorf("level 10 = %+v, want {0.02 1}", last)
	}

	prev := first
	for level := 2; level <= MaxAILevel; level++ {
		d, err := DifficultyForLevel(level)
		if err != nil {
			t.Fatalf("level %d: %v", level, err)
		}
		if d.ReactionDelay >= prev.ReactionDelay || d.ErrorAmplitude >= prev.ErrorAmplitude {
			t.Errorf("level %d (%+v) is not harder than level %d (%+v)", level, d, level-1, prev)
		}
		if err := d.Validate(); err != nil {
			t.Errorf("level %d fails validation: %v", level, err)
		}
		prev = d
	}

	for _, level := range []int{0, 11, -3} {
		if _, err := DifficultyForLevel(level); !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("level %d: expected ErrInvalidConfig, got %v", level, err)
		}
	}
}

func TestNewDifficultyValidation(t *testing.T) {
	tests := []struct {
		delay, amp float64
		ok         bool
	}{
		{0.5, 10, true},
		{2.0, 40, true},
		{0.001, 0, true},
		{0, 10, false},
		{2.01, 10, false},
		{0.5, -1, false},
		{0.5, 40.5, false},
	}
	for _, tt := range tests {
		_, err := NewDifficulty(tt.delay, tt.amp)
		if tt.ok && err != nil {
			t.Errorf("NewDifficulty(%v, %v): unexpected error %v", tt.delay, tt.amp, err)
		}
		if !tt.ok && !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("NewDifficulty(%v, %v): expected ErrInvalidConfig, got %v", tt.delay, tt.amp, err)
		}
	}
}

func TestFoldY(t *testing.T) {
	tests := []struct {
		y, want float64
	}{
		{250, 250},
		{600, 600},
		{800, 400},
		{1300, 100},
		{-100, 100},
		{-700, 500},
	}
	for _, tt := range tests {
		if got := FoldY(tt.y, 600); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("FoldY(%v) = %v, want %v", tt.y, got, tt.want)
		}
	}
}

func TestPredictY(t *testing.T) {
	tests := []struct {
		name   string
		ball   *Ball
		target float64
		want   float64
	}{
		{"straight", newTestBall(t, 400, 300, 300, 0), 770, 300},
		{"moving away", newTestBall(t, 400, 123, 300, math.Pi+0.3), 770, 123},
		{"vertical", newTestBall(t, 400, 222, 300, math.Pi/2), 770, 222},
		{"one bounce", newTestBall(t, 100, 100, 300, -math.Pi/4), 800, 400},
		{"leftward bounce", newTestBall(t, 700, 100, 300, 5*math.Pi/4), 0, 400},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PredictY(tt.ball, tt.target, 600); math.Abs(got-tt.want) > 1e-6 {
				t.Errorf("PredictY = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAIDeterministicWithZeroAmplitude(t *testing.T) {
	d, err := NewDifficulty(0.1, 0)
	if err != nil {
		t.Fatal(err)
	}
	c1 := NewController(d, 600, NewSimpleRNG(1))
	c2 := NewController(d, 600, NewSimpleRNG(999))
	ball := newTestBall(t, 400, 300, 300, 0)

	for _, y := range []float64{100, 300, 500} {
		p1 := newTestPaddle(t, SideRight, 770)
		p1.y = y
		p2 := newTestPaddle(t, SideRight, 770)
		p2.y = y
		for i := range 20 {
			if a, b := c1.Decide(0.05, ball, p1), c2.Decide(0.05, ball, p2); a != b {
				t.Fatalf("paddle y=%v tick %d: %v != %v", y, i, a, b)
			}
		}
	}

	p := newTestPaddle(t, SideRight, 770)
	c := NewController(d, 600, nil)
	tests := []struct {
		y    float64
		want core.Direction
	}{
		{100, core.DirDown},
		{300, core.DirNone},
		{500, core.DirUp},
	}
	for _, tt := range tests {
		p.y = tt.y
		c.Reset()
		if got := c.Decide(0.1, ball, p); got != tt.want {
			t.Errorf("paddle at %v: got %v, want %v", tt.y, got, tt.want)
		}
	}
}

func TestAIReactionGate(t *testing.T) {
	d, _ := DifficultyForLevel(1)
	c := NewController(d, 600, NewSimpleRNG(5))
	ball := newTestBall(t, 400, 100, 300, 0)
	p := newTestPaddle(t, SideRight, 770)

	const dt = 0.016
	var decisions []int
	for i := range 300 {
		if dir := c.Decide(dt, ball, p); dir != core.DirNone {
			decisions = append(decisions, i)
		}
	}
	if len(decisions) < 2 {
		t.Fatalf("expected several decisions in 4.8s, got %d", len(decisions))
	}
	minTicks := int(d.ReactionDelay/dt) - 1
	for i := 1; i < len(decisions); i++ {
		if gap := decisions[i] - decisions[i-1]; gap < minTicks {
			t.Errorf("decisions %d ticks apart, want at least %d", gap, minTicks)
		}
	}
}

func TestAIInputHoldsDecision(t *testing.T) {
	d, _ := NewDifficulty(0.5, 0)
	in := NewAIInput(NewController(d, 600, nil))
	ball := newTestBall(t, 400, 100, 0, 0)
	p := newTestPaddle(t, SideRight, 770)

	if dir := in.Direction(0.5, ball, p); dir != core.DirUp {
		t.Fatalf("first decision = %v, want Up", dir)
	}
	if dir := in.Direction(0.1, ball, p); dir != core.DirUp {
		t.Errorf("decision not held between re-plans: %v", dir)
	}
	p.y = 99
	if dir := in.Direction(0.1, ball, p); dir != core.DirNone {
		t.Errorf("paddle past target should stop, got %v", dir)
	}
	if in.Source() != SourceAI || (HumanInput{}).Source() != SourceHuman {
		t.Error("movement sources mislabeled")
	}
}

func TestHumanInputReplaysIntent(t *testing.T) {
	p := newTestPaddle(t, SideLeft, 30)
	p.SetIntent(core.DirDown)
	if dir := (HumanInput{}).Direction(0.1, nil, p); dir != core.DirDown {
		t.Errorf("got %v, want Down", dir)
	}
}
