// Package core provides fundamental types shared by the simulation and the
// terminal platform. It has no UI dependencies so game logic stays pure and
// testable.
package core

import "math"

// Rect is an integer cell rectangle used when drawing into a Screen.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Box is an axis-aligned bounding box in field units (pixels).
// Edges are inclusive: touching boxes overlap.
type Box struct {
	MinX, MinY float64
	MaxX, MaxY float64
}

// NewBox creates a box from its top-left corner and size.
func NewBox(x, y, w, h float64) Box {
	return Box{MinX: x, MinY: y, MaxX: x + w, MaxY: y + h}
}

// SquareAround returns the bounding square of a circle.
func SquareAround(cx, cy, radius float64) Box {
	return Box{MinX: cx - radius, MinY: cy - radius, MaxX: cx + radius, MaxY: cy + radius}
}

// Width returns the horizontal extent.
func (b Box) Width() float64 {
	return b.MaxX - b.MinX
}

// Height returns the vertical extent.
func (b Box) Height() float64 {
	return b.MaxY - b.MinY
}

// Center returns the center point of the box.
func (b Box) Center() (float64, float64) {
	return (b.MinX + b.MaxX) / 2, (b.MinY + b.MaxY) / 2
}

// Intersects reports whether two boxes overlap (AABB test).
func (b Box) Intersects(other Box) bool {
	if b.MaxX < other.MinX || other.MaxX < b.MinX {
		return false
	}
	if b.MaxY < other.MinY || other.MaxY < b.MinY {
		return false
	}
	return true
}

// Penetration returns how deep two boxes overlap on each axis.
// Values are <= 0 when the boxes are apart on that axis.
func (b Box) Penetration(other Box) (dx, dy float64) {
	dx = math.Min(b.MaxX, other.MaxX) - math.Max(b.MinX, other.MinX)
	dy = math.Min(b.MaxY, other.MaxY) - math.Max(b.MinY, other.MinY)
	return dx, dy
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// ClampF restricts a float64 value to be within [min, max].
func ClampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// Max returns the larger of two integers.
func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
