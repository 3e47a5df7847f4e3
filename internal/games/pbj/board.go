package pbj

import (
	"github.com/vovakirdan/pbj-arcade/internal/core"
)

// Axis names the coordinate that varies along an edge.
type Axis uint8

const (
	AxisX Axis = iota // edge runs horizontally, y is fixed
	AxisY             // edge runs vertically, x is fixed
)

// End says which extreme of the perpendicular axis an edge sits on.
type End uint8

const (
	EndMin End = iota // coordinate 0
	EndMax            // coordinate size-1
)

// Edge is one of the four border lines of the board.
type Edge uint8

const (
	EdgeBottom Edge = iota
	EdgeTop
	EdgeLeft
	EdgeRight

	edgeCount = 4
)

// edgeInfo is the constant attribute table for the four edges.
var edgeInfo = [edgeCount]struct {
	name    string
	axis    Axis
	end     End
	outward float64 // degrees, 0 = +x, 90 = +y
}{
	EdgeBottom: {"bottom", AxisX, EndMin, -90},
	EdgeTop:    {"top", AxisX, EndMax, 90},
	EdgeLeft:   {"left", AxisY, EndMin, 180},
	EdgeRight:  {"right", AxisY, EndMax, 0},
}

// Axis returns the coordinate that varies along the edge.
func (e Edge) Axis() Axis { return edgeInfo[e].axis }

// End returns which side of the perpendicular axis the edge sits on.
func (e Edge) End() End { return edgeInfo[e].end }

// Outward returns the rotation in degrees of something facing off the board
// across this edge.
func (e Edge) Outward() float64 { return edgeInfo[e].outward }

func (e Edge) String() string {
	if int(e) >= edgeCount {
		return "unknown"
	}
	return edgeInfo[e].name
}

// EdgeSet is a bitset of edges.
type EdgeSet uint8

// AllEdges contains every edge.
const AllEdges EdgeSet = 1<<edgeCount - 1

// Has reports whether e is in the set.
func (s EdgeSet) Has(e Edge) bool { return s&(1<<e) != 0 }

// Without returns the set with e removed.
func (s EdgeSet) Without(e Edge) EdgeSet { return s &^ (1 << e) }

// Len returns the number of edges in the set.
func (s EdgeSet) Len() int {
	n := 0
	for e := Edge(0); e < edgeCount; e++ {
		if s.Has(e) {
			n++
		}
	}
	return n
}

// Nth returns the i-th member in ascending edge order.
// i must be in [0, Len()).
func (s EdgeSet) Nth(i int) Edge {
	for e := Edge(0); e < edgeCount; e++ {
		if !s.Has(e) {
			continue
		}
		if i == 0 {
			return e
		}
		i--
	}
	panic("pbj: EdgeSet.Nth index out of range")
}

// Board is a fixed-size rectangular grid. The outer ring holds counters and
// the avatar moves inside [1, size-2] on each axis.
type Board struct {
	Width  int
	Height int
}

// NewBoard creates a board of the given size.
func NewBoard(width, height int) Board {
	return Board{Width: width, Height: height}
}

// AxisLen returns the number of cells along an axis.
func (b Board) AxisLen(a Axis) int {
	if a == AxisX {
		return b.Width
	}
	return b.Height
}

// PlacementRange returns the inclusive range of positions along e where a
// counter may be placed. Corners are excluded.
func (b Board) PlacementRange(e Edge) (lo, hi int) {
	return 1, b.AxisLen(e.Axis()) - 2
}

// EdgeCell returns the cell at position pos along edge e.
func (b Board) EdgeCell(e Edge, pos int) core.Cell {
	switch e.Axis() {
	case AxisX:
		y := 0
		if e.End() == EndMax {
			y = b.Height - 1
		}
		return core.C(pos, y)
	default:
		x := 0
		if e.End() == EndMax {
			x = b.Width - 1
		}
		return core.C(x, pos)
	}
}

// OnEdge reports whether c lies on the outer ring.
func (b Board) OnEdge(c core.Cell) bool {
	return c.X == 0 || c.Y == 0 || c.X == b.Width-1 || c.Y == b.Height-1
}

// IsCorner reports whether c is one of the four corner cells.
func (b Board) IsCorner(c core.Cell) bool {
	return (c.X == 0 || c.X == b.Width-1) && (c.Y == 0 || c.Y == b.Height-1)
}

// EdgeOf returns the edge a non-corner ring cell belongs to.
func (b Board) EdgeOf(c core.Cell) (Edge, bool) {
	if !b.OnEdge(c) || b.IsCorner(c) {
		return 0, false
	}
	switch {
	case c.Y == 0:
		return EdgeBottom, true
	case c.Y == b.Height-1:
		return EdgeTop, true
	case c.X == 0:
		return EdgeLeft, true
	default:
		return EdgeRight, true
	}
}

// InteriorMin is the lowest coordinate the avatar may occupy on either axis.
func (b Board) InteriorMin() float64 {
	return 1
}

// InteriorMax returns the highest coordinate the avatar may occupy on axis a.
func (b Board) InteriorMax(a Axis) float64 {
	return float64(b.AxisLen(a) - 2)
}

// Center returns the middle cell of the board.
func (b Board) Center() core.Cell {
	return core.C(b.Width/2, b.Height/2)
}
