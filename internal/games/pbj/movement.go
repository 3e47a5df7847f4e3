package pbj

import (
	"github.com/vovakirdan/pbj-arcade/internal/core"
)

// Facing is the avatar's cardinal orientation.
type Facing uint8

const (
	FacingRight Facing = iota
	FacingUp
	FacingLeft
	FacingDown
)

// Degrees returns the rotation for the facing: right 0, up 90, left 180, down -90.
func (f Facing) Degrees() float64 {
	switch f {
	case FacingUp:
		return 90
	case FacingLeft:
		return 180
	case FacingDown:
		return -90
	default:
		return 0
	}
}

func (f Facing) String() string {
	switch f {
	case FacingUp:
		return "up"
	case FacingLeft:
		return "left"
	case FacingDown:
		return "down"
	default:
		return "right"
	}
}

// FacingOf maps an input direction to the facing it produces.
func FacingOf(d core.Direction) Facing {
	switch d {
	case core.DirUp:
		return FacingUp
	case core.DirLeft:
		return FacingLeft
	case core.DirDown:
		return FacingDown
	default:
		return FacingRight
	}
}

// Physics holds the movement tuning.
type Physics struct {
	MaxVelocity  float64 // tiles per tick
	Acceleration float64 // velocity gained per second of held input
	Deceleration float64 // velocity lost per second with no input on an axis
	MaxDT        float64 // largest step accepted by Update, in seconds
}

// DefaultPhysics returns the classic tuning.
func DefaultPhysics() Physics {
	return Physics{
		MaxVelocity:  0.15,
		Acceleration: 0.75,
		Deceleration: 0.75,
		MaxDT:        0.1,
	}
}

// Controls is the set of held directions, indexed by core.Direction.
type Controls [4]bool

// Set records a press or release.
func (c *Controls) Set(d core.Direction, pressed bool) {
	c[d] = pressed
}

// Held reports whether d is pressed.
func (c Controls) Held(d core.Direction) bool {
	return c[d]
}

// Any reports whether any direction is pressed.
func (c Controls) Any() bool {
	return c[core.DirLeft] || c[core.DirUp] || c[core.DirRight] || c[core.DirDown]
}

// Avatar is the player-controlled entity.
type Avatar struct {
	Position core.Vec2
	Velocity core.Vec2
	Facing   Facing
}

// Mover integrates avatar motion inside a board's interior.
type Mover struct {
	physics Physics
	board   Board
}

// NewMover creates a movement model for board.
func NewMover(board Board, physics Physics) *Mover {
	return &Mover{physics: physics, board: board}
}

// Physics returns the tuning in use.
func (m *Mover) Physics() Physics {
	return m.physics
}

// SetPhysics replaces the tuning; the next Update uses it.
func (m *Mover) SetPhysics(p Physics) {
	m.physics = p
}

// Update advances the avatar by one step of dt seconds.
//
// Held directions are applied in the order left, up, right, down. All of them
// change velocity; the last one applied decides the facing, so holding left
// and right together faces right and holding up and down faces down.
func (m *Mover) Update(a *Avatar, c Controls, dt float64) {
	p := m.physics
	if p.MaxDT > 0 {
		dt = core.ClampF(dt, 0, p.MaxDT)
	} else if dt < 0 {
		dt = 0
	}

	step := p.Acceleration * dt
	for _, d := range core.Directions {
		if !c.Held(d) {
			continue
		}
		switch d {
		case core.DirLeft:
			a.Velocity.X -= step
		case core.DirUp:
			a.Velocity.Y += step
		case core.DirRight:
			a.Velocity.X += step
		case core.DirDown:
			a.Velocity.Y -= step
		}
		a.Facing = FacingOf(d)
	}

	if !c.Held(core.DirLeft) && !c.Held(core.DirRight) {
		a.Velocity.X = m.decelerate(a.Velocity.X, dt)
	}
	if !c.Held(core.DirUp) && !c.Held(core.DirDown) {
		a.Velocity.Y = m.decelerate(a.Velocity.Y, dt)
	}

	a.Velocity.X = core.ClampF(a.Velocity.X, -p.MaxVelocity, p.MaxVelocity)
	a.Velocity.Y = core.ClampF(a.Velocity.Y, -p.MaxVelocity, p.MaxVelocity)

	if a.Velocity.IsZero() {
		return
	}

	a.Position = a.Position.Add(a.Velocity)

	lo := m.board.InteriorMin()
	hiX := m.board.InteriorMax(AxisX)
	hiY := m.board.InteriorMax(AxisY)
	a.Position.X = core.ClampF(a.Position.X, lo, hiX)
	a.Position.Y = core.ClampF(a.Position.Y, lo, hiY)

	// An avatar resting on an interior bound keeps no speed on that axis.
	if a.Position.X == lo || a.Position.X == hiX {
		a.Velocity.X = 0
	}
	if a.Position.Y == lo || a.Position.Y == hiY {
		a.Velocity.Y = 0
	}
}

// decelerate moves v toward zero by the deceleration for dt without crossing it.
func (m *Mover) decelerate(v, dt float64) float64 {
	if v == 0 {
		return 0
	}
	limit := m.physics.MaxVelocity
	if v > 0 {
		return core.ClampF(v-m.physics.Deceleration*dt, 0, limit)
	}
	return core.ClampF(v+m.physics.Deceleration*dt, -limit, 0)
}
