package pbj

import (
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/vovakirdan/pbj-arcade/internal/core"
)

// Glyphs used for board elements.
const (
	GlyphFloor = '·'
	GlyphWall  = '▒'
)

const hudHeight = 2

// tileScale is the terminal footprint of one board tile.
type tileScale struct {
	w, h int
}

// Preferred and fallback tile sizes; terminal cells are roughly twice as
// tall as they are wide, so 4x2 keeps tiles square.
var (
	scaleLarge   = tileScale{w: 4, h: 2}
	scaleCompact = tileScale{w: 2, h: 1}
)

var roleGlyphs = [roleCount]rune{
	RolePeanut: 'P',
	RoleBread:  'B',
	RoleJelly:  'J',
	RoleServe:  'S',
}

var roleColors = [roleCount]core.Color{
	RolePeanut: core.ColorOrange,
	RoleBread:  core.ColorYellow,
	RoleJelly:  core.ColorMagenta,
	RoleServe:  core.ColorCyan,
}

// Render draws the game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	scale, ok := g.fitScale(dst)
	if !ok {
		g.renderTooSmall(dst)
		return
	}

	boardW := g.board.Width * scale.w
	boardH := g.board.Height * scale.h
	boardX := (dst.Width() - boardW) / 2
	boardY := hudHeight + max((dst.Height()-hudHeight-boardH)/2, 0)

	g.renderHUD(dst, boardX, boardW)
	g.renderBoard(dst, boardX, boardY, scale)
	g.renderCounters(dst, boardX, boardY, scale)
	g.renderAvatar(dst, boardX, boardY, scale)
	g.renderOverlay(dst, boardY, boardH)
}

// fitScale picks the largest tile size the screen can hold.
func (g *Game) fitScale(dst *core.Screen) (tileScale, bool) {
	for _, s := range []tileScale{scaleLarge, scaleCompact} {
		if g.board.Width*s.w <= dst.Width() && g.board.Height*s.h+hudHeight <= dst.Height() {
			return s, true
		}
	}
	return tileScale{}, false
}

// renderTooSmall shows a "window too small" message.
func (g *Game) renderTooSmall(dst *core.Screen) {
	y := dst.Height() / 2
	dst.DrawTextCentered(y-1, "Window too small")
	dst.DrawTextCentered(y+1, fmt.Sprintf("Need %dx%d", g.board.Width*scaleCompact.w, g.board.Height*scaleCompact.h+hudHeight))
}

// renderHUD draws the sandwich count, the next ingredient and the sequence strip.
func (g *Game) renderHUD(dst *core.Screen, boardX, boardW int) {
	left := fmt.Sprintf("sandwiches made: %d", g.progression.Sandwiches())

	var right string
	if g.mode == ModeRush {
		secs := int(math.Ceil(g.Remaining().Seconds()))
		right = fmt.Sprintf("time %d:%02d", secs/60, secs%60)
	} else {
		right = "next: " + g.progression.Target().String()
	}

	// The HUD may be wider than a compact board.
	hudW := max(boardW, utf8.RuneCountInString(left)+utf8.RuneCountInString(right)+2)
	hudW = min(hudW, dst.Width())
	hudX := (dst.Width() - hudW) / 2
	dst.DrawText(hudX, 0, left)
	dst.DrawText(hudX+hudW-utf8.RuneCountInString(right), 0, right)

	// Sequence strip: collected steps gray, current bracketed.
	var b strings.Builder
	for i := range g.progression.Len() {
		if i > 0 {
			b.WriteByte(' ')
		}
		r := roleGlyphs[g.progression.Sequence()[i]]
		if i == g.progression.Cursor() {
			b.WriteString("[" + string(r) + "]")
		} else {
			b.WriteRune(r)
		}
	}
	strip := b.String()
	x := boardX + (boardW-len(strip))/2
	for i, r := range strip {
		color := core.ColorWhite
		if i < strings.IndexByte(strip, '[') {
			color = core.ColorDarkGray
		}
		if r == '[' || r == ']' {
			color = core.ColorBrightWhite
		}
		dst.SetColored(x+i, 1, r, color)
	}
}

// tileOrigin returns the top-left terminal cell of board tile (x, y).
// Board y grows upward; screen rows grow downward.
func (g *Game) tileOrigin(x, y, boardX, boardY int, s tileScale) (int, int) {
	return boardX + x*s.w, boardY + (g.board.Height-1-y)*s.h
}

// renderBoard draws walls on the border and floor in the interior.
func (g *Game) renderBoard(dst *core.Screen, boardX, boardY int, s tileScale) {
	for y := range g.board.Height {
		for x := range g.board.Width {
			px, py := g.tileOrigin(x, y, boardX, boardY, s)
			if g.board.OnEdge(core.C(x, y)) {
				fillTile(dst, px, py, s, GlyphWall, core.ColorBrown)
				continue
			}
			dst.SetColored(px+s.w/2, py+s.h/2, GlyphFloor, core.ColorDarkGray)
		}
	}
}

// renderCounters draws each counter on its edge tile. The active counter is
// drawn in its role color, the others in gray.
func (g *Game) renderCounters(dst *core.Screen, boardX, boardY int, s tileScale) {
	for _, c := range g.roster {
		px, py := g.tileOrigin(c.Location.X, c.Location.Y, boardX, boardY, s)
		color := core.ColorGray
		if c.Active {
			color = roleColors[c.Role]
		}
		fillTile(dst, px, py, s, ' ', core.ColorDefault)

		glyph := roleGlyphs[c.Role]
		if c.Role == RoleServe {
			glyph = arrowFor(c.Rotation)
		}
		dst.SetColored(px+s.w/2, py+s.h/2, glyph, color)
		if s.w > 2 {
			dst.SetColored(px+s.w/2-1, py+s.h/2, '[', color)
			dst.SetColored(px+s.w/2+1, py+s.h/2, ']', color)
		}
	}
}

// renderAvatar draws the avatar at its continuous position.
func (g *Game) renderAvatar(dst *core.Screen, boardX, boardY int, s tileScale) {
	pos := g.avatar.Position
	px := boardX + int(math.Round(pos.X*float64(s.w))) + s.w/2
	py := boardY + int(math.Round((float64(g.board.Height-1)-pos.Y)*float64(s.h))) + s.h/2
	dst.SetColored(px, py, avatarGlyph(g.avatar.Facing), core.ColorBrightYellow)
}

// renderOverlay draws pause and game-over messages over the board.
func (g *Game) renderOverlay(dst *core.Screen, boardY, boardH int) {
	mid := boardY + boardH/2
	switch {
	case g.gameOver:
		dst.DrawTextCentered(mid-1, " TIME UP ")
		dst.DrawTextCentered(mid, fmt.Sprintf(" %d sandwiches ", g.progression.Sandwiches()))
		dst.DrawTextCentered(mid+1, " R to restart ")
	case g.paused:
		dst.DrawTextCentered(mid, " PAUSED ")
	}
}

func fillTile(dst *core.Screen, px, py int, s tileScale, r rune, c core.Color) {
	for dy := range s.h {
		for dx := range s.w {
			dst.SetColored(px+dx, py+dy, r, c)
		}
	}
}

// arrowFor maps a serve rotation to the arrow pointing the same way.
func arrowFor(degrees float64) rune {
	switch int(math.Round(degrees)) {
	case 0:
		return '→'
	case 90:
		return '↑'
	case 180, -180:
		return '←'
	default:
		return '↓'
	}
}

func avatarGlyph(f Facing) rune {
	switch f {
	case FacingUp:
		return '^'
	case FacingLeft:
		return '<'
	case FacingDown:
		return 'v'
	default:
		return '>'
	}
}
