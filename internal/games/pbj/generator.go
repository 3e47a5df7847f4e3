package pbj

import (
	"github.com/vovakirdan/pbj-arcade/internal/core"
)

// DefaultSpawnLeeway is the separation, in tiles, kept between a newly placed
// counter and both the avatar and the counters placed before it.
const DefaultSpawnLeeway = 1.0

// RandomSource is the subset of *rand.Rand the generator needs.
type RandomSource interface {
	Intn(n int) int
}

// Placement records where one counter ended up.
type Placement struct {
	Role      Role
	Edge      Edge
	Cell      core.Cell
	Conflicts int  // number of separation rules the chosen cell still breaks
	Exhausted bool // no conflict-free cell existed on the edge
}

// LevelReport describes a generated layout.
type LevelReport struct {
	Placements [roleCount]Placement
}

// Exhausted returns the roles that had to accept a conflicting cell.
func (r LevelReport) Exhausted() []Role {
	var roles []Role
	for _, p := range r.Placements {
		if p.Exhausted {
			roles = append(roles, p.Role)
		}
	}
	return roles
}

// Generator lays out the counter roster on the board edges.
type Generator struct {
	board  Board
	leeway float64
}

// NewGenerator creates a generator for a board. A non-positive leeway falls
// back to DefaultSpawnLeeway.
func NewGenerator(board Board, leeway float64) *Generator {
	if leeway <= 0 {
		leeway = DefaultSpawnLeeway
	}
	return &Generator{board: board, leeway: leeway}
}

// GenerateLevel places the roster on board with the default spawn leeway.
func GenerateLevel(board Board, avatar core.Vec2, roster *Roster, rng RandomSource) LevelReport {
	return NewGenerator(board, DefaultSpawnLeeway).Generate(avatar, roster, rng)
}

// Generate relocates every counter in roster order. Each counter gets its own
// edge, picked uniformly from the edges still free, and a random non-corner
// cell on it. A cell too close to the avatar or to an earlier counter is
// skipped by stepping along the edge (wrapping); after one full sweep the
// least-conflicting cell seen is kept.
func (g *Generator) Generate(avatar core.Vec2, roster *Roster, rng RandomSource) LevelReport {
	var report LevelReport
	remaining := AllEdges

	for i := range roster {
		edge := remaining.Nth(rng.Intn(remaining.Len()))
		remaining = remaining.Without(edge)

		lo, hi := g.board.PlacementRange(edge)
		span := max(hi-lo+1, 1)

		pos := lo + rng.Intn(span)
		best := g.board.EdgeCell(edge, pos)
		bestConflicts := -1
		for range span {
			cell := g.board.EdgeCell(edge, pos)
			conflicts := g.conflicts(cell, avatar, roster, i)
			if bestConflicts < 0 || conflicts < bestConflicts {
				best, bestConflicts = cell, conflicts
			}
			if conflicts == 0 {
				break
			}
			pos = lo + (pos-lo+1)%span
		}

		counter := &roster[i]
		counter.Location = best
		if counter.Role == RoleServe {
			counter.Rotation = edge.Outward()
		}

		report.Placements[i] = Placement{
			Role:      counter.Role,
			Edge:      edge,
			Cell:      best,
			Conflicts: bestConflicts,
			Exhausted: bestConflicts > 0,
		}
	}

	return report
}

// conflicts counts how many separation rules cell breaks against the avatar
// and the first n counters of the roster.
func (g *Generator) conflicts(cell core.Cell, avatar core.Vec2, roster *Roster, n int) int {
	count := 0
	if core.Adjacent(cell.Vec(), avatar, g.leeway) {
		count++
	}
	for j := range n {
		if core.AdjacentCells(roster[j].Location, cell, g.leeway) {
			count++
		}
	}
	return count
}
