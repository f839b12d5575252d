// Package core provides fundamental types and utilities shared by the game
// engine and the terminal platform. It has no external dependencies (no Bubble
// Tea) so simulation code stays pure and testable.
package core

// Rect is an integer axis-aligned box in screen cells.
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

// RectF is an axis-aligned bounding box in field units, used for collision
// detection in the simulation.
type RectF struct {
	X, Y float64 // Top-left corner
	W, H float64 // Width and height
}

// NewRectF creates a new float rectangle.
func NewRectF(x, y, w, h float64) RectF {
	return RectF{X: x, Y: y, W: w, H: h}
}

// CenteredRectF creates a rectangle horizontally centered on cx with its top at y.
func CenteredRectF(cx, y, w, h float64) RectF {
	return RectF{X: cx - w/2, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r RectF) Right() float64 {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r RectF) Bottom() float64 {
	return r.Y + r.H
}

// Intersects reports whether the two rectangles overlap.
// All four comparisons are strict: rectangles that only share an edge do not
// intersect.
func (r RectF) Intersects(other RectF) bool {
	return r.X < other.Right() &&
		r.Right() > other.X &&
		r.Y < other.Bottom() &&
		r.Bottom() > other.Y
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
