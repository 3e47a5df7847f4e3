package pbj

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/pbj-arcade/internal/core"
)

// scriptedRand returns queued values (mod n), then zeros.
type scriptedRand struct {
	vals []int
	i    int
}

func (r *scriptedRand) Intn(n int) int {
	if r.i >= len(r.vals) {
		return 0
	}
	v := r.vals[r.i] % n
	r.i++
	return v
}

// checkLayout asserts the structural guarantees that hold for every layout.
func checkLayout(t *testing.T, b Board, roster *Roster, report LevelReport) {
	t.Helper()

	seen := map[Edge]bool{}
	for i, c := range roster {
		p := report.Placements[i]
		require.Equal(t, c.Role, p.Role)
		require.Equal(t, c.Location, p.Cell)

		edge, ok := b.EdgeOf(c.Location)
		require.True(t, ok, "%v at %v is not on a non-corner edge cell", c.Role, c.Location)
		require.Equal(t, p.Edge, edge)
		require.False(t, seen[edge], "edge %v used twice", edge)
		seen[edge] = true

		if c.Role == RoleServe {
			assert.Equal(t, edge.Outward(), c.Rotation)
		} else {
			assert.Equal(t, defaultCounterRotation, c.Rotation)
		}
	}
	assert.Len(t, seen, 4)
}

func TestGenerateCenterAvatarKeepsSeparation(t *testing.T) {
	b := NewBoard(9, 9)
	avatar := b.Center().Vec()

	for seed := int64(0); seed < 500; seed++ {
		roster := NewRoster()
		report := GenerateLevel(b, avatar, &roster, rand.New(rand.NewSource(seed)))

		checkLayout(t, b, &roster, report)
		require.Empty(t, report.Exhausted(), "seed %d", seed)

		for i, c := range roster {
			assert.False(t, core.Adjacent(c.Location.Vec(), avatar, DefaultSpawnLeeway),
				"seed %d: %v at %v too close to avatar", seed, c.Role, c.Location)
			for j := range i {
				assert.False(t, core.AdjacentCells(roster[j].Location, c.Location, DefaultSpawnLeeway),
					"seed %d: %v and %v too close", seed, roster[j].Role, c.Role)
			}
		}
	}
}

func TestGenerateRandomAvatar(t *testing.T) {
	b := NewBoard(9, 9)
	rng := rand.New(rand.NewSource(7))

	for range 1000 {
		avatar := core.V(1+rng.Float64()*6, 1+rng.Float64()*6)
		roster := NewRoster()
		report := GenerateLevel(b, avatar, &roster, rng)

		checkLayout(t, b, &roster, report)

		// Separation is only guaranteed for placements that found a free cell.
		for i, c := range roster {
			p := report.Placements[i]
			if p.Exhausted {
				assert.Positive(t, p.Conflicts)
				continue
			}
			assert.Zero(t, p.Conflicts)
			assert.False(t, core.Adjacent(c.Location.Vec(), avatar, DefaultSpawnLeeway))
			for j := range i {
				assert.False(t, core.AdjacentCells(roster[j].Location, c.Location, DefaultSpawnLeeway))
			}
		}
	}
}

func TestGenerateExhaustionOnSmallBoard(t *testing.T) {
	// Every edge cell of a 5x5 board is within reach of a centred avatar.
	b := NewBoard(5, 5)
	roster := NewRoster()
	report := GenerateLevel(b, core.V(2, 2), &roster, rand.New(rand.NewSource(1)))

	checkLayout(t, b, &roster, report)
	assert.Len(t, report.Exhausted(), 4)
	for _, p := range report.Placements {
		assert.True(t, p.Exhausted)
		assert.GreaterOrEqual(t, p.Conflicts, 1)
	}
}

func TestGenerateStepsPastConflicts(t *testing.T) {
	b := NewBoard(9, 9)
	roster := NewRoster()

	// Peanut: bottom edge, start at x=4 right under the avatar; x=4..6 are
	// too close so x=7 is taken.
	rng := &scriptedRand{vals: []int{0, 3}}
	report := GenerateLevel(b, core.V(4, 1), &roster, rng)

	p := report.Placements[RolePeanut]
	assert.Equal(t, EdgeBottom, p.Edge)
	assert.Equal(t, core.C(7, 0), p.Cell)
	assert.Zero(t, p.Conflicts)
}

func TestGenerateWrapsAlongEdge(t *testing.T) {
	b := NewBoard(9, 9)
	roster := NewRoster()

	// Start at the last bottom cell x=7, next to the avatar; the search
	// wraps to x=1.
	rng := &scriptedRand{vals: []int{0, 6}}
	report := GenerateLevel(b, core.V(6, 1), &roster, rng)

	assert.Equal(t, core.C(1, 0), report.Placements[RolePeanut].Cell)
	assert.False(t, report.Placements[RolePeanut].Exhausted)
}

func TestGenerateIsDeterministic(t *testing.T) {
	b := NewBoard(9, 9)
	avatar := core.V(3.4, 5.2)

	r1, r2 := NewRoster(), NewRoster()
	rep1 := GenerateLevel(b, avatar, &r1, rand.New(rand.NewSource(99)))
	rep2 := GenerateLevel(b, avatar, &r2, rand.New(rand.NewSource(99)))

	assert.Equal(t, r1, r2)
	assert.Equal(t, rep1, rep2)
}

func TestGenerateRelocatesInPlace(t *testing.T) {
	b := NewBoard(9, 9)
	roster := NewRoster()
	roster.MarkActive(RoleJelly)

	GenerateLevel(b, b.Center().Vec(), &roster, rand.New(rand.NewSource(3)))

	assert.True(t, roster.Get(RoleJelly).Active, "generation keeps the active flag")
	for i, c := range roster {
		assert.Equal(t, Role(i), c.Role)
	}
}

func TestNewGeneratorDefaultsLeeway(t *testing.T) {
	g := NewGenerator(NewBoard(9, 9), 0)
	assert.Equal(t, DefaultSpawnLeeway, g.leeway)
}
