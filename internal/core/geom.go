// Package core provides fundamental types and utilities shared by the game
// and its hosts. It has no dependency on Bubble Tea so the simulation stays
// pure and testable.
package core

import "math"

// Rect represents an axis-aligned area of the screen, in cells.
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

// Contains returns true if the point (x, y) is inside this rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Inset shrinks the rectangle by n cells on every side.
func (r Rect) Inset(n int) Rect {
	w := Max(0, r.W-2*n)
	h := Max(0, r.H-2*n)
	return Rect{X: r.X + n, Y: r.Y + n, W: w, H: h}
}

// Project maps a point of a canvas (cw x ch units) onto cells of r.
// Points outside the canvas map outside r; callers clip via Contains.
func (r Rect) Project(x, y, cw, ch float64) (int, int) {
	if cw <= 0 || ch <= 0 || r.W <= 0 || r.H <= 0 {
		return r.X, r.Y
	}
	col := r.X + int(math.Floor(x/cw*float64(r.W)))
	row := r.Y + int(math.Floor(y/ch*float64(r.H)))
	return col, row
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

// Min returns the smaller of two integers.
func Min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// Max returns the larger of two integers.
func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
