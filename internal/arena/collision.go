package arena

import (
	"math"

	"github.com/vovakirdan/blockpong/internal/core"
)

// WallSide names the boundary the ball touched.
type WallSide int

const (
	WallNone WallSide = iota
	WallLeft
	WallRight
	WallTop
	WallBottom
)

func (w WallSide) String() string {
	switch w {
	case WallLeft:
		return "left"
	case WallRight:
		return "right"
	case WallTop:
		return "top"
	case WallBottom:
		return "bottom"
	default:
		return "none"
	}
}

// Exit reports whether the ball left the field through this side.
func (w WallSide) Exit() bool {
	return w == WallLeft || w == WallRight
}

// Serve ranges: a quarter turn starting at each lower bound.
const (
	serveRightFrom = -3 * math.Pi / 8
	serveLeftFrom  = 7 * math.Pi / 8
	serveSpread    = math.Pi / 2
)

// ServeAngle maps r in [0, 1) onto the serve range toward one side.
func ServeAngle(towardRight bool, r float64) float64 {
	from := serveLeftFrom
	if towardRight {
		from = serveRightFrom
	}
	return normalizeAngle(from + r*serveSpread)
}

// WallCollision handles the field boundary.
type WallCollision struct {
	Width, Height float64
	Random        func() float64 // Source for serve angles, in [0, 1)
}

// Side returns which boundary the ball touches. Exits take priority over
// top and bottom contact.
func (w WallCollision) Side(b *Ball) WallSide {
	r := b.Radius()
	switch {
	case b.X()-r <= 0:
		return WallLeft
	case b.X()+r >= w.Width:
		return WallRight
	case b.Y()-r <= 0:
		return WallTop
	case b.Y()+r >= w.Height:
		return WallBottom
	default:
		return WallNone
	}
}

// Verify reports whether the ball touches any boundary.
func (w WallCollision) Verify(b *Ball) bool {
	return w.Side(b) != WallNone
}

// Resolve reflects off top and bottom, or re-serves the ball toward the
// side it did not exit. It returns the side that was resolved.
func (w WallCollision) Resolve(b *Ball) WallSide {
	side := w.Side(b)
	r := b.Radius()
	switch side {
	case WallTop:
		if b.Velocity().Y() < 0 {
			b.ReflectVertical()
		}
		b.SetPosition(b.X(), r)
	case WallBottom:
		if b.Velocity().Y() > 0 {
			b.ReflectVertical()
		}
		b.SetPosition(b.X(), w.Height-r)
	case WallLeft, WallRight:
		b.RestoreOriginal()
		b.SetAngle(ServeAngle(side == WallLeft, w.random()))
	}
	return side
}

func (w WallCollision) random() float64 {
	if w.Random == nil {
		return 0.5
	}
	return w.Random()
}

// PaddleCollision handles ball against paddle.
type PaddleCollision struct {
	Acceleration  float64
	MaxDeflection float64 // Radians at the paddle tips
}

// Verify is an AABB test between the ball's bounding square and the paddle.
func (pc PaddleCollision) Verify(b *Ball, p *Paddle) bool {
	return p != nil && b.Bounds().Intersects(p.Bounds())
}

// Resolve sends the ball back across the field. The further from the paddle
// center the impact, the steeper the rebound. Speed grows by Acceleration up
// to the ball's maximum.
func (pc PaddleCollision) Resolve(b *Ball, p *Paddle) {
	offset := core.ClampF((b.Y()-p.Y())/p.HalfHeight(), -1, 1)
	deflection := offset * pc.MaxDeflection

	// y grows downward while angles grow upward, so a hit below center
	// (positive offset) heads down.
	if p.Side() == SideRight {
		b.SetAngle(math.Pi + deflection)
		b.SetPosition(p.X()-b.Radius(), b.Y())
	} else {
		b.SetAngle(-deflection)
		b.SetPosition(p.X()+b.Radius(), b.Y())
	}
	b.SetSpeed(b.Speed() * pc.Acceleration)
	b.strike(p)
}

// BlockHit describes the outcome of one ball-block resolution.
type BlockHit struct {
	Destroyed bool
	Item      Item // Set when a destroyed bonus block dropped an item
}

// BlockCollision handles ball against block.
type BlockCollision struct {
	Factory ItemFactory
}

// Verify is an AABB test against active blocks only.
func (bc BlockCollision) Verify(b *Ball, blk *Block) bool {
	return blk != nil && blk.Active && b.Bounds().Intersects(blk.Bounds())
}

// Resolve damages the block and bounces the ball off the face with the
// shallower penetration, pushing it clear of the block.
func (bc BlockCollision) Resolve(b *Ball, blk *Block) BlockHit {
	ball, box := b.Bounds(), blk.Bounds()
	dx, dy := ball.Penetration(box)
	cx, cy := box.Center()
	v := b.Velocity()
	r := b.Radius()

	if dx < dy {
		left := b.X() < cx
		if (left && v.X() > 0) || (!left && v.X() < 0) {
			b.ReflectHorizontal()
		}
		if left {
			b.SetPosition(box.MinX-r, b.Y())
		} else {
			b.SetPosition(box.MaxX+r, b.Y())
		}
	} else {
		above := b.Y() < cy
		if (above && v.Y() > 0) || (!above && v.Y() < 0) {
			b.ReflectVertical()
		}
		if above {
			b.SetPosition(b.X(), box.MinY-r)
		} else {
			b.SetPosition(b.X(), box.MaxY+r)
		}
	}

	hit := BlockHit{Destroyed: blk.Hit()}
	if hit.Destroyed && blk.Category == CategoryBonus && bc.Factory != nil {
		hit.Item = bc.Factory.NewItem(blk)
	}
	return hit
}
