package pbj

import (
	"github.com/vovakirdan/pbj-arcade/internal/core"
)

// DefaultCollectLeeway is the adjacency tolerance used to decide that the
// avatar has reached the active counter.
const DefaultCollectLeeway = 0.5

// DefaultSequence is the classic collection order for one sandwich.
var DefaultSequence = []Role{RoleBread, RolePeanut, RoleJelly, RoleBread, RoleServe}

// Pickup is emitted every time the avatar collects the active counter.
type Pickup struct {
	Step      int  // position in the sequence that was just collected
	Role      Role // role of the collected counter
	Completed bool // this pickup finished a sandwich
	Sandwich  int  // sandwiches completed so far, including this one
}

// Progression tracks which counter the avatar must reach next.
// The cursor always stays in [0, len(sequence)).
type Progression struct {
	sequence   []Role
	cursor     int
	sandwiches int
	leeway     float64
}

// NewProgression creates a state machine over sequence. The slice is kept by
// reference and must not be modified afterwards; an empty sequence falls back
// to DefaultSequence.
func NewProgression(sequence []Role, leeway float64) *Progression {
	if len(sequence) == 0 {
		sequence = DefaultSequence
	}
	if leeway <= 0 {
		leeway = DefaultCollectLeeway
	}
	return &Progression{sequence: sequence, leeway: leeway}
}

// Target returns the role the avatar must reach next.
func (p *Progression) Target() Role {
	return p.sequence[p.cursor]
}

// Cursor returns the current index into the sequence.
func (p *Progression) Cursor() int {
	return p.cursor
}

// Len returns the sequence length.
func (p *Progression) Len() int {
	return len(p.sequence)
}

// Sequence returns the collection order. Callers must not modify it.
func (p *Progression) Sequence() []Role {
	return p.sequence
}

// Sandwiches returns the number of completed sequences.
func (p *Progression) Sandwiches() int {
	return p.sandwiches
}

// Reset rewinds the cursor and clears the sandwich count.
func (p *Progression) Reset() {
	p.cursor = 0
	p.sandwiches = 0
}

// Check compares the avatar against the active counter and advances at most
// once. It returns the pickup and true on a hit.
func (p *Progression) Check(avatar core.Vec2, roster *Roster) (Pickup, bool) {
	target := roster.Get(p.Target())
	if !core.Adjacent(target.Location.Vec(), avatar, p.leeway) {
		return Pickup{}, false
	}
	return p.Advance(), true
}

// Advance collects the current target unconditionally.
func (p *Progression) Advance() Pickup {
	pickup := Pickup{Step: p.cursor, Role: p.Target()}

	p.cursor++
	if p.cursor == len(p.sequence) {
		p.cursor = 0
		p.sandwiches++
		pickup.Completed = true
	}
	pickup.Sandwich = p.sandwiches

	return pickup
}
