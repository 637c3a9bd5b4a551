package arena

import (
	"fmt"

	"github.com/vovakirdan/blockpong/internal/core"
)

// Side tells which wall a paddle guards.
type Side int

const (
	SideLeft Side = iota
	SideRight
)

func (s Side) String() string {
	if s == SideRight {
		return "right"
	}
	return "left"
}

// PaddleConfig describes a paddle. X is the collision plane: the face that
// looks at the field. The body extends Thickness behind it toward its wall.
type PaddleConfig struct {
	X, Y       float64
	HalfHeight float64
	Thickness  float64
	Speed      float64 // Pixels per second
	North      float64 // Upper travel limit (smallest y)
	South      float64 // Lower travel limit (largest y)
	Side       Side
	Color      core.Color
	Accent     core.Color
}

// Paddle is a vertically moving bat.
type Paddle struct {
	x, y       float64
	halfHeight float64
	thickness  float64
	speed      float64
	north      float64
	south      float64
	side       Side
	color      core.Color
	accent     core.Color

	player   core.PlayerID
	original PaddleConfig
	fogged   bool
	intent   core.Direction
	movement MovementStrategy
}

// NewPaddle validates the geometry and builds a paddle. The paddle starts
// clamped inside its travel limits under human control.
func NewPaddle(cfg PaddleConfig) (*Paddle, error) {
	switch {
	case cfg.HalfHeight <= 0:
		return nil, fmt.Errorf("%w: paddle half-height must be positive, got %v", ErrInvalidConfig, cfg.HalfHeight)
	case cfg.Thickness <= 0:
		return nil, fmt.Errorf("%w: paddle thickness must be positive, got %v", ErrInvalidConfig, cfg.Thickness)
	case cfg.Speed < 0:
		return nil, fmt.Errorf("%w: paddle speed must not be negative, got %v", ErrInvalidConfig, cfg.Speed)
	case cfg.South-cfg.North < 2*cfg.HalfHeight:
		return nil, fmt.Errorf("%w: paddle of height %v does not fit limits [%v, %v]",
			ErrInvalidConfig, 2*cfg.HalfHeight, cfg.North, cfg.South)
	}
	p := &Paddle{original: cfg, movement: HumanInput{}}
	p.RestoreOriginal()
	return p, nil
}

func (p *Paddle) X() float64          { return p.x }
func (p *Paddle) Y() float64          { return p.y }
func (p *Paddle) HalfHeight() float64 { return p.halfHeight }
func (p *Paddle) Thickness() float64  { return p.thickness }
func (p *Paddle) Speed() float64      { return p.speed }
func (p *Paddle) North() float64      { return p.north }
func (p *Paddle) South() float64      { return p.south }
func (p *Paddle) Side() Side          { return p.side }
func (p *Paddle) Player() core.PlayerID {
	return p.player
}

// Colors returns the body and accent colors.
func (p *Paddle) Colors() (core.Color, core.Color) { return p.color, p.accent }

// IsActive reports whether the paddle takes part in the simulation.
func (p *Paddle) IsActive() bool { return true }

// Bounds returns the paddle body.
func (p *Paddle) Bounds() core.Box {
	top := p.y - p.halfHeight
	if p.side == SideRight {
		return core.Box{MinX: p.x, MinY: top, MaxX: p.x + p.thickness, MaxY: p.y + p.halfHeight}
	}
	return core.Box{MinX: p.x - p.thickness, MinY: top, MaxX: p.x, MaxY: p.y + p.halfHeight}
}

// Move integrates one step of travel and keeps the body inside the limits.
func (p *Paddle) Move(dir core.Direction, dt float64) {
	switch dir {
	case core.DirUp:
		p.y -= p.speed * dt
	case core.DirDown:
		p.y += p.speed * dt
	}
	p.clamp()
}

func (p *Paddle) clamp() {
	p.y = core.ClampF(p.y, p.north+p.halfHeight, p.south-p.halfHeight)
}

// SetSpeed changes the travel speed. Negative values are treated as zero.
func (p *Paddle) SetSpeed(speed float64) {
	p.speed = max(speed, 0)
}

// SetHalfHeight resizes the paddle. The size is capped so the body always
// fits between the limits, and the paddle is pushed back inside them.
func (p *Paddle) SetHalfHeight(h float64) {
	limit := (p.south - p.north) / 2
	p.halfHeight = core.ClampF(h, 0, limit)
	p.clamp()
}

// Fogged reports whether a fog item currently affects this paddle.
func (p *Paddle) Fogged() bool { return p.fogged }

// SetFogged sets the visual fog flag. It has no effect on physics.
func (p *Paddle) SetFogged(f bool) { p.fogged = f }

// Intent returns the direction recorded by the human input collaborator.
func (p *Paddle) Intent() core.Direction { return p.intent }

// SetIntent records the direction consumed by the next integrator pass.
func (p *Paddle) SetIntent(d core.Direction) { p.intent = d }

// Movement returns the strategy that steers this paddle.
func (p *Paddle) Movement() MovementStrategy { return p.movement }

// SetMovement replaces the steering strategy.
func (p *Paddle) SetMovement(m MovementStrategy) {
	if m == nil {
		m = HumanInput{}
	}
	p.movement = m
}

// RestoreOriginal resets geometry and speed to the construction snapshot and
// clears any fog.
func (p *Paddle) RestoreOriginal() {
	o := p.original
	p.x, p.y = o.X, o.Y
	p.halfHeight = o.HalfHeight
	p.thickness = o.Thickness
	p.speed = o.Speed
	p.north, p.south = o.North, o.South
	p.side = o.Side
	p.color, p.accent = o.Color, o.Accent
	p.fogged = false
	p.intent = core.DirNone
	p.clamp()
}
