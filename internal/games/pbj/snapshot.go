package pbj

// Snapshot captures the complete game state for determinism testing and replay.
// Counter data is flattened per role: X, Y, Rotation (degrees), Active (0/1).
type Snapshot struct {
	Tick       uint64
	Mode       string
	Sandwiches int
	Cursor     int
	Levels     int
	AvatarX    float64
	AvatarY    float64
	VelocityX  float64
	VelocityY  float64
	Facing     Facing
	Counters   [roleCount * 4]int
	ElapsedMS  int64
	Paused     bool
	GameOver   bool
}

// Snapshot returns the current game snapshot for determinism verification.
func (g *Game) Snapshot() Snapshot {
	s := Snapshot{
		Tick:       g.tick,
		Mode:       string(g.mode),
		Sandwiches: g.progression.Sandwiches(),
		Cursor:     g.progression.Cursor(),
		Levels:     g.levels,
		AvatarX:    g.avatar.Position.X,
		AvatarY:    g.avatar.Position.Y,
		VelocityX:  g.avatar.Velocity.X,
		VelocityY:  g.avatar.Velocity.Y,
		Facing:     g.avatar.Facing,
		ElapsedMS:  g.elapsed.Milliseconds(),
		Paused:     g.paused,
		GameOver:   g.gameOver,
	}
	for i, c := range g.roster {
		active := 0
		if c.Active {
			active = 1
		}
		s.Counters[i*4] = c.Location.X
		s.Counters[i*4+1] = c.Location.Y
		s.Counters[i*4+2] = int(c.Rotation)
		s.Counters[i*4+3] = active
	}
	return s
}
