package pbj

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/pbj-arcade/internal/core"
)

// Role is the ingredient or station a counter represents.
type Role uint8

const (
	RolePeanut Role = iota
	RoleBread
	RoleJelly
	RoleServe

	roleCount = 4
)

var roleNames = [roleCount]string{
	RolePeanut: "peanut",
	RoleBread:  "bread",
	RoleJelly:  "jelly",
	RoleServe:  "serve",
}

func (r Role) String() string {
	if int(r) >= roleCount {
		return "unknown"
	}
	return roleNames[r]
}

// ParseRole converts a role name such as "jelly" to a Role.
func ParseRole(s string) (Role, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, n := range roleNames {
		if n == name {
			return Role(i), nil
		}
	}
	return 0, fmt.Errorf("pbj: unknown role %q", s)
}

// ParseRoles converts a list of role names.
func ParseRoles(names []string) ([]Role, error) {
	roles := make([]Role, 0, len(names))
	for _, n := range names {
		r, err := ParseRole(n)
		if err != nil {
			return nil, err
		}
		roles = append(roles, r)
	}
	return roles, nil
}

// defaultCounterRotation is the facing of a counter that was never turned.
const defaultCounterRotation = -90.0

// Counter is a pickup station on the board edge.
type Counter struct {
	Role     Role
	Location core.Cell
	Rotation float64 // degrees; only the serve counter is turned to face outward
	Active   bool    // whether this is the current progression target
}

// Roster holds exactly one counter per role, indexed by role. Levels relocate
// counters in place; they are never created or destroyed after NewRoster.
type Roster [roleCount]Counter

// NewRoster returns the four counters, unplaced.
func NewRoster() Roster {
	var r Roster
	for i := range r {
		r[i] = Counter{Role: Role(i), Rotation: defaultCounterRotation}
	}
	return r
}

// Get returns the counter for a role.
func (r *Roster) Get(role Role) *Counter {
	return &r[role]
}

// At returns the counter occupying cell c, if any.
func (r *Roster) At(c core.Cell) (*Counter, bool) {
	for i := range r {
		if r[i].Location == c {
			return &r[i], true
		}
	}
	return nil, false
}

// MarkActive flags the counter for role as active and clears the others.
func (r *Roster) MarkActive(role Role) {
	for i := range r {
		r[i].Active = Role(i) == role
	}
}
