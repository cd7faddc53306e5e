package owlrun

import (
	"fmt"
	"math"
	"strings"

	"github.com/vovakirdan/owl-run/internal/core"
)

// Visual characters for rendering
const (
	PlayerChar      = '▲'
	PlayerStunChar  = '✶'
	PlayerShadow    = '_'
	NPCChar         = 'ȯ'
	NPCCaptureChar  = '*'
	ProjectileChar  = '•'
	ShadowChar      = '░'
	DecoyShadowChar = '·'
	StrikeChar      = '┃'
	StrikeFadeChar  = '│'
	BorderChar      = '│'
	LaneMarkChar    = '┊'
)

const (
	hudRows     = 2
	statusRows  = 1
	maxLaneCols = 14
	minLaneCols = 3
)

// viewport maps world coordinates onto screen cells.
type viewport struct {
	left, top  int
	laneCols   int
	rows       int
	laneWidth  float64
	spawnY     float64
	spanY      float64
	screenW    int
	screenH    int
	trackWidth int
}

func (g *Game) viewport(dst *core.Screen) viewport {
	w, h := dst.Width(), dst.Height()
	laneCols := core.Clamp((w-2)/Lanes, minLaneCols, maxLaneCols)
	trackW := laneCols * Lanes
	t := g.cfg.Track
	return viewport{
		left:       (w - trackW) / 2,
		top:        hudRows,
		laneCols:   laneCols,
		rows:       max(h-hudRows-statusRows, 1),
		laneWidth:  t.LaneWidth,
		spawnY:     t.SpawnY,
		spanY:      t.DespawnY - t.SpawnY,
		screenW:    w,
		screenH:    h,
		trackWidth: trackW,
	}
}

func (v viewport) col(x float64) int {
	return v.left + int(math.Floor(x/v.laneWidth*float64(v.laneCols)))
}

func (v viewport) row(y float64) int {
	return v.top + int(math.Floor((y-v.spawnY)/v.spanY*float64(v.rows)))
}

// cells returns the cell rectangle covering a world box, at least 1x1.
func (v viewport) cells(b core.Box) core.Rect {
	c0, c1 := v.col(b.Left()), v.col(b.Right())
	r0, r1 := v.row(b.Top()), v.row(b.Bottom())
	if c1 <= c0 {
		c1 = c0 + 1
	}
	if r1 <= r0 {
		r1 = r0 + 1
	}
	return core.NewRect(c0, r0, c1-c0, r1-r0)
}

// clipTrack clips a rect to the track area so entities above the spawn
// line or below the despawn line do not overwrite the HUD.
func (v viewport) clipTrack(r core.Rect) core.Rect {
	top, bottom := v.top, v.top+v.rows
	if r.Y < top {
		r.H -= top - r.Y
		r.Y = top
	}
	if r.Bottom() > bottom {
		r.H = bottom - r.Y
	}
	if r.H < 0 {
		r.H = 0
	}
	return r
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if g.prog == nil {
		return
	}
	v := g.viewport(dst)

	g.drawTrack(dst, v)
	g.drawShadows(dst, v)
	g.drawObstacles(dst, v)
	g.drawPickups(dst, v)
	g.drawNPCs(dst, v)
	g.drawProjectiles(dst, v)
	g.drawStrikes(dst, v)
	g.drawPlayer(dst, v)
	g.drawHUD(dst, v)

	switch g.phase {
	case PhasePaused:
		drawMessage(dst, core.ColorBrightWhite, "PAUSED", "Press P to resume")
	case PhaseLevelComplete:
		lines := []string{fmt.Sprintf("LEVEL %d COMPLETE", g.prog.Level), ""}
		keys := offerKeys(len(g.offers))
		for i, u := range g.offers {
			lines = append(lines, fmt.Sprintf("[%s] %s", keys[i], u.Title()))
		}
		drawMessage(dst, core.ColorBrightYellow, lines...)
	case PhaseGameOver:
		cause := "The owl caught you"
		if g.reason == ReasonThreat {
			cause = "The owl closed in"
		}
		drawMessage(dst, core.ColorBrightRed,
			"GAME OVER", cause,
			fmt.Sprintf("Score: %d  Best: %d", g.prog.Points(), g.best),
			"Press R to restart")
	}
}

// offerKeys returns the key hint for each offer slot.
func offerKeys(n int) []string {
	keys := make([]string, n)
	for i := range keys {
		switch {
		case i == 0:
			keys[i] = "←"
		case i == n-1:
			keys[i] = "→"
		case i == n/2:
			keys[i] = "␣"
		default:
			keys[i] = " "
		}
	}
	return keys
}

func (g *Game) drawTrack(dst *core.Screen, v viewport) {
	bottom := v.top + v.rows
	for y := v.top; y < bottom; y++ {
		dst.SetColor(v.left-1, y, BorderChar, core.ColorGray)
		dst.SetColor(v.left+v.trackWidth, y, BorderChar, core.ColorGray)
		// Lane marks scroll with distance.
		if (y+int(g.prog.TotalDistance/20))%3 != 0 {
			continue
		}
		for lane := 1; lane < Lanes; lane++ {
			dst.SetColor(v.left+lane*v.laneCols, y, LaneMarkChar, core.ColorGray)
		}
	}
}

func (g *Game) drawShadows(dst *core.Screen, v viewport) {
	for _, s := range g.owl.Shadows {
		ch, c := ShadowChar, core.ColorMagenta
		if s.Decoy {
			ch, c = DecoyShadowChar, core.ColorGray
		}
		dst.FillRect(v.clipTrack(v.cells(s.Box())), ch, c)
	}
}

func obstacleColor(o *Obstacle) core.Color {
	switch o.Type {
	case ObstacleLog, ObstacleBranch:
		return core.ColorBrown
	case ObstacleFigure:
		if o.Hostile {
			return core.ColorRed
		}
		return core.ColorWhite
	case ObstacleTree:
		return core.ColorGreen
	case ObstacleBall:
		return core.ColorOrange
	case ObstacleIcePatch, ObstacleThinIce:
		return core.ColorBrightCyan
	case ObstacleSnowMound:
		return core.ColorBrightWhite
	default:
		return core.ColorDefault
	}
}

func (g *Game) drawObstacles(dst *core.Screen, v viewport) {
	for _, o := range g.obstacles {
		if !o.Active {
			continue
		}
		dst.FillRect(v.clipTrack(v.cells(o.Box())), o.Glyph(), obstacleColor(o))
	}
}

func (g *Game) drawPickups(dst *core.Screen, v viewport) {
	for _, pk := range g.pickups {
		scale := pk.Scale()
		if scale <= 0 {
			continue
		}
		ch := pk.Type.Glyph()
		if scale < 0.5 {
			ch = '·'
		}
		r := v.cells(pk.Box())
		if r.Y >= v.top && r.Y < v.top+v.rows {
			dst.SetColor(r.X+r.W/2, r.Y, ch, core.ColorBrightYellow)
		}
	}
}

func (g *Game) drawNPCs(dst *core.Screen, v viewport) {
	for _, n := range g.npcs {
		r := v.cells(n.Box())
		if r.Y < v.top || r.Y >= v.top+v.rows {
			continue
		}
		ch, c := NPCChar, core.ColorCyan
		if n.Captured {
			ch, c = NPCCaptureChar, core.ColorMagenta
		}
		dst.SetColor(r.X+r.W/2, r.Y, ch, c)
	}
}

func (g *Game) drawProjectiles(dst *core.Screen, v viewport) {
	for _, pr := range g.projectiles {
		if !pr.Active {
			continue
		}
		x, y := v.col(pr.X), v.row(pr.Y)
		if y >= v.top && y < v.top+v.rows {
			dst.SetColor(x, y, ProjectileChar, core.ColorBrightRed)
		}
	}
}

func (g *Game) drawStrikes(dst *core.Screen, v viewport) {
	playerRow := v.row(g.cfg.Track.PlayerY)
	for _, s := range g.owl.Strikes {
		ch, c := StrikeChar, core.ColorBrightRed
		if !g.owl.Capturing(s) {
			ch, c = StrikeFadeChar, core.ColorRed
		}
		dst.DrawVLine(v.col(s.X), v.top, playerRow-v.top+1, ch, c)
	}
}

func (g *Game) drawPlayer(dst *core.Screen, v viewport) {
	p := g.player
	x := v.col(p.X)
	ground := v.row(g.cfg.Track.PlayerY)
	lift := int(math.Round(p.JumpZ / v.spanY * float64(v.rows)))

	ch, c := PlayerChar, core.ColorBrightWhite
	switch {
	case p.Stunned:
		ch, c = PlayerStunChar, core.ColorYellow
	case p.Invulnerable && g.tick%8 < 4:
		c = core.ColorGray
	case p.Dashing:
		c = core.ColorBrightCyan
	}
	if lift > 0 {
		dst.SetColor(x, ground, PlayerShadow, core.ColorGray)
	}
	dst.SetColor(x, ground-lift, ch, c)
}

func (g *Game) drawHUD(dst *core.Screen, v viewport) {
	p := g.player
	hud := fmt.Sprintf(" LV %d  SCORE %d  x%.1f  %3.0f%%", g.prog.Level, g.prog.Points(),
		g.prog.Multiplier(), 100*math.Min(1, g.prog.Distance/g.prog.LevelDistance()))
	dst.DrawTextColor(0, 0, hud, core.ColorBrightWhite)
	if g.best > 0 {
		best := fmt.Sprintf("BEST %d ", g.best)
		dst.DrawTextColor(v.screenW-len(best), 0, best, core.ColorGray)
	}

	threatColor := core.ColorGreen
	switch {
	case g.owl.Threat >= 0.75:
		threatColor = core.ColorBrightRed
	case g.owl.Threat >= g.cfg.Owl.TriggerThreshold:
		threatColor = core.ColorYellow
	}
	dst.DrawTextColor(0, 1, " OWL "+threatBar(g.owl.Threat, 20), threatColor)
	if g.owl.State == OwlWarning {
		dst.DrawTextColor(28, 1, fmt.Sprintf("SWOOP %.1fs", math.Max(0, g.owl.Countdown)), core.ColorMagenta)
	}

	var status []string
	status = append(status, g.character.String())
	if g.equalize {
		status = append(status, "equal")
	}
	if p.HasAxe {
		status = append(status, "axe")
	}
	if p.DashCooldown <= 0 && !p.Stunned {
		status = append(status, "dash ready")
	}
	for _, m := range p.Mods.List() {
		status = append(status, fmt.Sprintf("%s %.1fs", m.Kind, m.Remaining))
	}
	dst.DrawTextColor(0, v.screenH-1, " "+strings.Join(status, " · "), core.ColorGray)
}

// threatBar renders threat in [0,1] as a fixed-width meter.
func threatBar(threat float64, width int) string {
	filled := int(math.Round(core.ClampF(threat, 0, 1) * float64(width)))
	return "[" + strings.Repeat("█", filled) + strings.Repeat("─", width-filled) + "]"
}

// drawMessage draws a box with centered lines in the middle of the screen.
func drawMessage(dst *core.Screen, c core.Color, lines ...string) {
	w, h := dst.Width(), dst.Height()
	boxW := 0
	for _, l := range lines {
		boxW = max(boxW, len([]rune(l)))
	}
	boxW += 4
	boxH := len(lines) + 2
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	rect := core.NewRect(boxX, boxY, boxW, boxH)
	dst.FillRect(rect, ' ', core.ColorDefault)
	dst.DrawBox(rect, c)
	for i, l := range lines {
		dst.DrawTextCentered(boxY+1+i, l, c)
	}
}
