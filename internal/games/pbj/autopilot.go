package pbj

import "github.com/vovakirdan/pbj-arcade/internal/core"

// arriveSlack is how close the autopilot must get before it lets go.
const arriveSlack = 0.25

// Autopilot steers the avatar toward the current target counter by holding
// directions, the same way a player would. It drives the headless sim.
type Autopilot struct {
	game *Game
}

// NewAutopilot attaches an autopilot to g.
func NewAutopilot(g *Game) *Autopilot {
	return &Autopilot{game: g}
}

// Goal returns the interior point the autopilot is heading for: the tile
// touching the target counter.
func (a *Autopilot) Goal() core.Vec2 {
	g := a.game
	loc := g.roster.Get(g.progression.Target()).Location
	return core.V(
		core.ClampF(float64(loc.X), g.board.InteriorMin(), g.board.InteriorMax(AxisX)),
		core.ClampF(float64(loc.Y), g.board.InteriorMin(), g.board.InteriorMax(AxisY)),
	)
}

// Steer sets the held directions for the next tick.
func (a *Autopilot) Steer() {
	g := a.game
	goal := a.Goal()
	pos, vel := g.avatar.Position, g.avatar.Velocity

	// velocity lost per tick once a key is let go
	brake := g.mover.Physics().Deceleration / float64(g.tickRate)

	a.steerAxis(goal.X-pos.X, vel.X, brake, core.DirLeft, core.DirRight)
	a.steerAxis(goal.Y-pos.Y, vel.Y, brake, core.DirDown, core.DirUp)
}

func (a *Autopilot) steerAxis(delta, v, brake float64, neg, pos core.Direction) {
	stop := 0.0
	if brake > 0 {
		stop = v * v / (2 * brake)
	}

	switch {
	case delta > stop+arriveSlack:
		a.game.SetDirection(neg, false)
		a.game.SetDirection(pos, true)
	case delta < -(stop + arriveSlack):
		a.game.SetDirection(pos, false)
		a.game.SetDirection(neg, true)
	default:
		a.game.SetDirection(neg, false)
		a.game.SetDirection(pos, false)
	}
}
