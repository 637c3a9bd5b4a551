package arena

import (
	"math"

	"github.com/vovakirdan/blockpong/internal/core"
)

// BallSnapshot is a read-only copy of the ball.
type BallSnapshot struct {
	X, Y       float64
	Radius     float64
	Speed      float64
	MaxSpeed   float64
	Angle      float64
	LastStruck core.PlayerID
}

// PaddleSnapshot is a read-only copy of a paddle.
type PaddleSnapshot struct {
	Player     core.PlayerID
	Side       Side
	X, Y       float64
	HalfHeight float64
	Thickness  float64
	Speed      float64
	Fogged     bool
	Source     MovementSource
	Color      core.Color
	Accent     core.Color
}

// Bounds returns the paddle body.
func (p PaddleSnapshot) Bounds() core.Box {
	if p.Side == SideRight {
		return core.Box{MinX: p.X, MinY: p.Y - p.HalfHeight, MaxX: p.X + p.Thickness, MaxY: p.Y + p.HalfHeight}
	}
	return core.Box{MinX: p.X - p.Thickness, MinY: p.Y - p.HalfHeight, MaxX: p.X, MaxY: p.Y + p.HalfHeight}
}

// BlockSnapshot is a read-only copy of a block.
type BlockSnapshot struct {
	X, Y, W, H float64
	Resistance int
	Category   Category
	Active     bool
	Color      core.Color
}

// ItemSnapshot is a read-only view of an item.
type ItemSnapshot struct {
	Kind      ItemKind
	Active    bool
	Duration  float64
	Remaining float64
	Target    core.PlayerID
}

// Snapshot contains everything a renderer needs for one frame.
type Snapshot struct {
	FieldWidth  float64
	FieldHeight float64
	Level       string

	Ball    BallSnapshot
	Paddles [2]PaddleSnapshot
	Blocks  []BlockSnapshot
	Items   []ItemSnapshot

	Score1    int
	Score2    int
	Elapsed   float64
	Remaining float64
	Active    bool
	Paused    bool
}

// Ball returns a copy of the ball state.
func (s *State) Ball() BallSnapshot {
	b := s.ball
	snap := BallSnapshot{
		X: b.X(), Y: b.Y(),
		Radius:   b.Radius(),
		Speed:    b.Speed(),
		MaxSpeed: b.MaxSpeed(),
		Angle:    b.Angle(),
	}
	if p := b.LastStruck(); p != nil {
		snap.LastStruck = p.Player()
	}
	return snap
}

// Paddle returns a copy of player's paddle. Unknown players yield the zero
// snapshot.
func (s *State) Paddle(player core.PlayerID) PaddleSnapshot {
	if !player.Valid() {
		return PaddleSnapshot{}
	}
	p := s.paddles[player-1]
	color, accent := p.Colors()
	return PaddleSnapshot{
		Player:     p.Player(),
		Side:       p.Side(),
		X:          p.X(),
		Y:          p.Y(),
		HalfHeight: p.HalfHeight(),
		Thickness:  p.Thickness(),
		Speed:      p.Speed(),
		Fogged:     p.Fogged(),
		Source:     p.Movement().Source(),
		Color:      color,
		Accent:     accent,
	}
}

// Blocks returns copies of the blocks still in play.
func (s *State) Blocks() []BlockSnapshot {
	out := make([]BlockSnapshot, 0, len(s.blocks))
	for _, b := range s.blocks {
		if !b.Active {
			continue
		}
		out = append(out, BlockSnapshot{
			X: b.X, Y: b.Y, W: b.W, H: b.H,
			Resistance: b.Resistance,
			Category:   b.Category,
			Active:     b.Active,
			Color:      b.Color,
		})
	}
	return out
}

// Items returns views of the items not yet pruned.
func (s *State) Items() []ItemSnapshot {
	out := make([]ItemSnapshot, 0, len(s.items))
	for _, it := range s.items {
		snap := ItemSnapshot{
			Kind:      it.Kind(),
			Active:    it.IsActive(),
			Duration:  it.Duration(),
			Remaining: it.Remaining(),
		}
		if p, ok := it.Target().(*Paddle); ok && p != nil {
			snap.Target = p.Player()
		}
		out = append(out, snap)
	}
	return out
}

// Snapshot returns the full frame state.
func (s *State) Snapshot() Snapshot {
	return Snapshot{
		FieldWidth:  s.cfg.FieldWidth,
		FieldHeight: s.cfg.FieldHeight,
		Level:       s.level.ID,
		Ball:        s.Ball(),
		Paddles:     [2]PaddleSnapshot{s.Paddle(core.Player1), s.Paddle(core.Player2)},
		Blocks:      s.Blocks(),
		Items:       s.Items(),
		Score1:      s.scores[0],
		Score2:      s.scores[1],
		Elapsed:     s.elapsed,
		Remaining:   s.Remaining(),
		Active:      s.active,
		Paused:      s.paused,
	}
}

// Hash returns a simple hash of the snapshot for determinism testing.
func (snap *Snapshot) Hash() uint64 {
	h := uint64(snap.Score1)<<32 | uint64(snap.Score2) //#nosec G115 -- hash computation
	mix := func(f float64) {
		h = h*31 + math.Float64bits(f)
	}
	mix(snap.Elapsed)
	mix(snap.Ball.X)
	mix(snap.Ball.Y)
	mix(snap.Ball.Speed)
	mix(snap.Ball.Angle)
	for _, p := range snap.Paddles {
		mix(p.Y)
		mix(p.HalfHeight)
		mix(p.Speed)
	}
	for _, b := range snap.Blocks {
		h = h*31 + uint64(b.Resistance) //#nosec G115 -- hash computation
		mix(b.X)
		mix(b.Y)
	}
	for _, it := range snap.Items {
		h = h*31 + uint64(it.Kind) //#nosec G115 -- hash computation
		mix(it.Remaining)
	}
	return h
}
