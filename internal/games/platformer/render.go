package platformer

import (
	"fmt"
	"math"
	"unicode/utf8"

	"github.com/vovakirdan/tui-platformer/internal/core"
)

// Drawing characters
const (
	PlatformTopChar  = '▀'
	PlatformFillChar = '░'
	CoinChar         = 'o'
	EnemyTopChar     = '▄'
	EnemyFillChar    = '█'
	StarChar         = '·'
)

// Player sprites, 4x3. Idle frames sway the arms; running cycles the legs.
var (
	idleSprite = [idleFrames][3]string{
		{" () ", "/||\\", " /\\ "},
		{" () ", "-||-", " /\\ "},
		{" () ", "\\||/", " /\\ "},
	}
	runLegs = [...]string{" /| ", " |\\ ", " /\\ ", "/  \\", " /\\ "}
)

// Render draws the current frame to the screen.
func (g *Game) Render(dst *core.Screen) {
	RenderScene(dst, g.Scene(), g.paused)
}

// RenderScene maps a scene from world units onto terminal cells.
// Row 0 is reserved for the HUD.
func RenderScene(dst *core.Screen, sc Scene, paused bool) {
	dst.Clear()

	cw := sc.ViewportW / float64(max(dst.Width(), 1))
	ch := sc.ViewportH / float64(max(dst.Height(), 1))
	if cw <= 0 || ch <= 0 {
		return
	}
	v := view{cam: sc.CameraX, cw: cw, ch: ch}

	drawBackground(dst, sc.BackgroundOffset/cw)

	for _, p := range sc.Platforms {
		drawPlatform(dst, v, p, sc.PlatformDepth)
	}
	for _, c := range sc.Coins {
		if c.Collected {
			continue
		}
		dst.SetColored(v.col(c.X), v.row(c.Y), CoinChar, core.ColorBrightYellow)
	}
	for _, e := range sc.Enemies {
		drawEnemy(dst, v, e)
	}
	if sc.Player.Visible {
		drawPlayer(dst, v, sc.Player)
	}

	drawHUD(dst, sc.HUD)

	if paused {
		drawCenteredMessage(dst, "PAUSED", "Press P to resume")
	}
	if sc.Phase == PhaseGameOver {
		drawCenteredMessage(dst, "GAME OVER",
			fmt.Sprintf("Time: %.1fs  Score: %d  |  Press R to restart", sc.HUD.Elapsed.Seconds(), sc.HUD.Score))
	}
}

// view converts world coordinates to cells.
type view struct {
	cam    float64
	cw, ch float64
}

func (v view) col(x float64) int {
	return int(math.Floor((x - v.cam) / v.cw))
}

func (v view) row(y float64) int {
	return int(math.Floor(y / v.ch))
}

// cells returns how many cells a world length covers, at least one.
func (v view) cells(length, unit float64) int {
	return max(1, int(math.Round(length/unit)))
}

func drawBackground(dst *core.Screen, offset float64) {
	shift := int(offset)
	for y := 1; y < dst.Height(); y++ {
		for x := 0; x < dst.Width(); x++ {
			if ((x+shift)*7+y*13)%53 == 0 {
				dst.SetColored(x, y, StarChar, core.ColorGray)
			}
		}
	}
}

func drawPlatform(dst *core.Screen, v view, p Platform, depth float64) {
	x0 := v.col(p.X)
	x1 := int(math.Ceil((p.Right() - v.cam) / v.cw))
	y := v.row(p.Y)
	dst.DrawHLine(x0, y, x1-x0, PlatformTopChar, core.ColorWhite)
	for dy := 1; dy < v.cells(depth, v.ch)+1; dy++ {
		dst.DrawHLine(x0, y+dy, x1-x0, PlatformFillChar, core.ColorGray)
	}
}

func drawEnemy(dst *core.Screen, v view, e Enemy) {
	x := v.col(e.X)
	y := v.row(e.Y)
	w := v.cells(e.W, v.cw)
	h := v.cells(e.H, v.ch)
	dst.DrawHLine(x, y, w, EnemyTopChar, core.ColorBrightRed)
	for dy := 1; dy < h; dy++ {
		dst.DrawHLine(x, y+dy, w, EnemyFillChar, core.ColorRed)
	}
}

func drawPlayer(dst *core.Screen, v view, p PlayerSprite) {
	x := v.col(p.X)
	y := v.row(p.Y)

	var rows [3]string
	if p.Moving {
		rows[0] = " () "
		if p.Facing < 0 {
			rows[1] = "<|| "
		} else {
			rows[1] = " ||>"
		}
		rows[2] = runLegs[p.Frame%len(runLegs)]
	} else {
		rows = idleSprite[p.Frame%idleFrames]
	}

	for dy, line := range rows {
		for dx, r := range []rune(line) {
			if r != ' ' {
				dst.SetColored(x+dx, y+dy, r, core.ColorBrightCyan)
			}
		}
	}
}

func drawHUD(dst *core.Screen, hud HUD) {
	dst.DrawHLine(0, 0, dst.Width(), ' ', core.ColorDefault)
	dst.DrawTextColored(1, 0, hud.Text(), core.ColorBrightWhite)
	// Heart glyph in red
	dst.SetColored(1, 0, '❤', core.ColorBrightRed)

	speed := fmt.Sprintf("Spd: %.1f", hud.ScrollSpeed)
	dst.DrawTextColored(dst.Width()-utf8.RuneCountInString(speed)-1, 0, speed, core.ColorGray)
}

// drawCenteredMessage draws a message box in the center of the screen.
func drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	titleLen := utf8.RuneCountInString(title)
	subLen := utf8.RuneCountInString(subtitle)

	boxW := max(titleLen, subLen) + 4
	boxH := 5
	box := core.NewRect((dst.Width()-boxW)/2, (dst.Height()-boxH)/2, boxW, boxH)

	dst.DrawRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box)

	dst.DrawTextColored(box.X+(boxW-titleLen)/2, box.Y+1, title, core.ColorBrightYellow)
	dst.DrawText(box.X+(boxW-subLen)/2, box.Y+3, subtitle)
}
