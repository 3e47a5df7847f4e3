// Package core provides fundamental types and utilities for the arcade platform.
// It contains no external dependencies (especially no Bubble Tea) to keep game
// logic pure and testable.
package core

import "fmt"

// Rect represents an axis-aligned bounding box in screen cells.
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

// Cell is an integer grid coordinate. Cells are 0-indexed from the
// bottom-left corner of a board, with y growing upwards.
type Cell struct {
	X, Y int
}

// C is shorthand for constructing a Cell.
func C(x, y int) Cell {
	return Cell{X: x, Y: y}
}

// Vec returns the cell's lower-left corner as a continuous position.
func (c Cell) Vec() Vec2 {
	return Vec2{X: float64(c.X), Y: float64(c.Y)}
}

func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// Vec2 is a continuous 2D vector used for avatar position and velocity.
type Vec2 struct {
	X, Y float64
}

// V is shorthand for constructing a Vec2.
func V(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

// IsZero reports whether both components are exactly zero.
func (v Vec2) IsZero() bool {
	return v.X == 0 && v.Y == 0
}

// Round returns the nearest grid cell.
func (v Vec2) Round() Cell {
	return Cell{X: roundHalfUp(v.X), Y: roundHalfUp(v.Y)}
}

func (v Vec2) String() string {
	return fmt.Sprintf("(%.2f,%.2f)", v.X, v.Y)
}

func roundHalfUp(f float64) int {
	if f >= 0 {
		return int(f + 0.5)
	}
	return -int(-f + 0.5)
}

// Adjacent reports whether b lies inside the 3x3 neighbourhood box of a,
// widened by leeway on every side. Both positions are treated as unit-sized
// tiles anchored at their lower-left corner, so the test is
//
//	a.X-1-leeway <= b.X  &&  b.X+1 <= a.X+2+leeway
//
// and the same on Y. Bounds are inclusive. With leeway 0 this is the Moore
// neighbourhood of a (including a itself).
func Adjacent(a, b Vec2, leeway float64) bool {
	xLo := a.X - 1 - leeway
	xHi := a.X + 2 + leeway
	yLo := a.Y - 1 - leeway
	yHi := a.Y + 2 + leeway

	return b.X >= xLo && b.X+1 <= xHi &&
		b.Y >= yLo && b.Y+1 <= yHi
}

// AdjacentCells is Adjacent for two grid cells.
func AdjacentCells(a, b Cell, leeway float64) bool {
	return Adjacent(a.Vec(), b.Vec(), leeway)
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

// Sign returns -1, 0 or 1 matching the sign of f.
func Sign(f float64) float64 {
	switch {
	case f < 0:
		return -1
	case f > 0:
		return 1
	default:
		return 0
	}
}

// Abs returns the absolute value of an integer.
func Abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
