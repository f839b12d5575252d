package lanedodge

import (
	"fmt"
	"math"

	"github.com/vovakirdan/lane-dodge/internal/core"
)

// Visual characters for rendering
const (
	LaneChar     = '┆'
	DividerChar  = '┃'
	ObstacleChar = '█'
	PlayerBody   = '█'
	PlayerHead   = '▲'
)

// Player colors: cyan for player 1, yellow for player 2.
var playerColors = []core.Color{core.ColorBrightCyan, core.ColorBrightYellow}

// hudRows is the number of screen rows above the field.
const hudRows = 1

// projection maps field units onto screen cells below the HUD.
type projection struct {
	scaleX, scaleY float64
	rows           int
}

func newProjection(l Layout, dst *core.Screen) projection {
	rows := max(dst.Height()-hudRows, 1)
	return projection{
		scaleX: float64(dst.Width()) / l.FieldWidth,
		scaleY: float64(rows) / l.FieldHeight,
		rows:   rows,
	}
}

func (p projection) x(v float64) int { return int(math.Floor(v * p.scaleX)) }
func (p projection) y(v float64) int { return hudRows + int(math.Floor(v*p.scaleY)) }

// cells converts a field rectangle to screen cells, at least one cell wide
// and tall so small obstacles stay visible.
func (p projection) cells(r core.RectF) core.Rect {
	x0, y0 := p.x(r.X), p.y(r.Y)
	x1 := int(math.Ceil(r.Right() * p.scaleX))
	y1 := hudRows + int(math.Ceil(r.Bottom()*p.scaleY))
	return core.NewRect(x0, y0, max(x1-x0, 1), max(y1-y0, 1))
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if g.engine == nil || dst.Width() == 0 || dst.Height() == 0 {
		return
	}

	snap := g.engine.Snapshot()
	layout := g.engine.Layout()
	proj := newProjection(layout, dst)

	g.drawLanes(dst, layout, proj)
	for _, o := range snap.Obstacles {
		g.drawObstacle(dst, layout, proj, o)
	}
	for _, p := range snap.Players {
		g.drawPlayer(dst, layout, proj, p)
	}
	g.drawHUD(dst, snap)

	if !snap.Running {
		g.drawOverlay(dst, snap)
	}
}

// drawLanes draws lane guides and, in duo mode, the center divider.
func (g *Game) drawLanes(dst *core.Screen, l Layout, proj projection) {
	for _, group := range l.Groups {
		for _, x := range group.LaneX {
			dst.DrawVLine(proj.x(x), hudRows, proj.rows, LaneChar, core.ColorGray)
		}
	}
	if l.Mode == ModeDuo {
		dst.DrawVLine(proj.x(l.FieldWidth/2), hudRows, proj.rows, DividerChar, core.ColorWhite)
	}
}

// drawObstacle renders a single obstacle, clipped to the field.
func (g *Game) drawObstacle(dst *core.Screen, l Layout, proj projection, o Obstacle) {
	r := proj.cells(l.ObstacleRect(o))
	if r.Y < hudRows {
		r.H -= hudRows - r.Y
		r.Y = hudRows
	}
	if r.H <= 0 {
		return
	}
	dst.DrawRect(r, ObstacleChar, o.Color)
}

// drawPlayer renders a player as a body with a pointed head row.
func (g *Game) drawPlayer(dst *core.Screen, l Layout, proj projection, p Player) {
	color := playerColors[int(p.ID)%len(playerColors)]
	r := proj.cells(l.PlayerRect(p))
	dst.DrawRect(r, PlayerBody, color)
	for x := r.X; x < r.Right(); x++ {
		dst.SetColored(x, r.Y, PlayerHead, color)
	}
}

// drawHUD draws time, multipliers and mode on the top row.
func (g *Game) drawHUD(dst *core.Screen, snap Snapshot) {
	seconds := snap.ElapsedSeconds
	if snap.RoundEnded {
		seconds = snap.SurvivalSeconds
	}
	left := fmt.Sprintf(" Time %ds  Speed %.1fx  Difficulty %.1fx ", seconds, snap.SpeedMultiplier, snap.DifficultyMultiplier)
	dst.DrawTextColored(0, 0, left, core.ColorBrightWhite)

	right := fmt.Sprintf(" %s ", snap.NextMode)
	if snap.Running {
		right = fmt.Sprintf(" %s ", snap.Mode)
	}
	dst.DrawTextColored(dst.Width()-len(right), 0, right, core.ColorCyan)
}

// drawOverlay draws the start or crash message box.
func (g *Game) drawOverlay(dst *core.Screen, snap Snapshot) {
	title := "Ready!"
	message := "A/D or ←/→ to switch lanes"
	if snap.NextMode == ModeDuo {
		message = "P1 uses A/D or the left half, P2 uses ←/→ or the right half"
	}
	hint := "SPACE play  ·  M mode  ·  Q quit"

	if snap.RoundEnded && g.started {
		title = "Crash!"
		message = fmt.Sprintf("You survived %d seconds", snap.SurvivalSeconds)
		if snap.Mode == ModeDuo {
			message = fmt.Sprintf("Teamwork failed. You survived %d seconds", snap.SurvivalSeconds)
		}
		hint = "SPACE retry  ·  M mode  ·  Q quit"
	}

	w := dst.Width()
	h := dst.Height()
	textW := max(runeLen(title), runeLen(message), runeLen(hint))
	boxW := min(textW+4, w)
	boxH := 7
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	box := core.NewRect(boxX, boxY, boxW, boxH)
	dst.DrawRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box, core.ColorBrightWhite)

	dst.DrawTextCentered(boxY+1, title, core.ColorBrightYellow)
	dst.DrawTextCentered(boxY+3, message, core.ColorDefault)
	dst.DrawTextCentered(boxY+5, hint, core.ColorGray)
}

func runeLen(s string) int {
	return len([]rune(s))
}
