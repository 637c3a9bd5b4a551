package arena

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/vovakirdan/blockpong/internal/core"
)

const twoPi = 2 * math.Pi

// BallConfig describes a ball at serve time. It is kept as the ball's
// original snapshot and restored after every point.
type BallConfig struct {
	X, Y     float64
	Radius   float64
	Speed    float64 // Pixels per second
	MaxSpeed float64
	Angle    float64 // Radians; 0 points right, pi/2 points up
}

// Ball is the single moving projectile. Position is its center.
type Ball struct {
	x, y     float64
	radius   float64
	speed    float64
	maxSpeed float64
	angle    float64

	original   BallConfig
	lastStruck *Paddle
}

// NewBall validates cfg and builds a ball from it.
func NewBall(cfg BallConfig) (*Ball, error) {
	if cfg.Radius <= 0 {
		return nil, fmt.Errorf("%w: ball radius must be positive, got %v", ErrInvalidConfig, cfg.Radius)
	}
	if cfg.MaxSpeed <= 0 || cfg.Speed < 0 || cfg.Speed > cfg.MaxSpeed {
		return nil, fmt.Errorf("%w: ball speed %v must be within [0, %v]", ErrInvalidConfig, cfg.Speed, cfg.MaxSpeed)
	}
	cfg.Angle = normalizeAngle(cfg.Angle)
	b := &Ball{original: cfg}
	b.RestoreOriginal()
	return b, nil
}

func (b *Ball) X() float64        { return b.x }
func (b *Ball) Y() float64        { return b.y }
func (b *Ball) Radius() float64   { return b.radius }
func (b *Ball) Speed() float64    { return b.speed }
func (b *Ball) MaxSpeed() float64 { return b.maxSpeed }
func (b *Ball) Angle() float64    { return b.angle }

// IsActive reports whether the ball takes part in the simulation. The ball
// is never retired, only re-served.
func (b *Ball) IsActive() bool { return true }

// LastStruck returns the paddle that hit the ball most recently, or nil.
func (b *Ball) LastStruck() *Paddle { return b.lastStruck }

// Velocity returns the velocity in field coordinates (y grows downward).
func (b *Ball) Velocity() mgl64.Vec2 {
	return mgl64.Vec2{math.Cos(b.angle) * b.speed, -math.Sin(b.angle) * b.speed}
}

// Bounds returns the bounding square of the ball.
func (b *Ball) Bounds() core.Box {
	return core.SquareAround(b.x, b.y, b.radius)
}

// Update advances the ball along its heading.
func (b *Ball) Update(dt float64) {
	v := b.Velocity().Mul(dt)
	b.x += v.X()
	b.y += v.Y()
}

// SetSpeed sets the scalar speed, capped at the ball's maximum.
func (b *Ball) SetSpeed(speed float64) {
	b.speed = core.ClampF(speed, 0, b.maxSpeed)
}

// SetAngle sets the heading, normalized into [0, 2pi).
func (b *Ball) SetAngle(angle float64) {
	b.angle = normalizeAngle(angle)
}

// SetPosition moves the ball center without touching its velocity.
func (b *Ball) SetPosition(x, y float64) {
	b.x, b.y = x, y
}

// ReflectVertical flips the vertical velocity component.
func (b *Ball) ReflectVertical() {
	b.SetAngle(-b.angle)
}

// ReflectHorizontal flips the horizontal velocity component.
func (b *Ball) ReflectHorizontal() {
	b.SetAngle(math.Pi - b.angle)
}

// RestoreOriginal resets position, speed and heading to the serve snapshot
// and forgets the last paddle that struck the ball.
func (b *Ball) RestoreOriginal() {
	o := b.original
	b.x, b.y = o.X, o.Y
	b.radius = o.Radius
	b.speed = o.Speed
	b.maxSpeed = o.MaxSpeed
	b.angle = o.Angle
	b.lastStruck = nil
}

func (b *Ball) strike(p *Paddle) {
	b.lastStruck = p
}

func normalizeAngle(a float64) float64 {
	a = math.Mod(a, twoPi)
	if a < 0 {
		a += twoPi
	}
	if a >= twoPi {
		a = 0
	}
	return a
}
