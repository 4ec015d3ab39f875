package sim

import (
	"fmt"
	"strconv"

	"github.com/vovakirdan/ballcore/internal/core"
)

// Visual characters for rendering
const (
	BallChar     = '●'
	PaddleChar   = '='
	OccupiedChar = '░'
)

// Render draws the world scaled to fit dst: a HUD on the top row and the
// field inside a border below it.
func (w *World) Render(dst *core.Screen) {
	dst.Clear()
	w.renderHUD(dst)

	if dst.Width() < 4 || dst.Height() < 5 {
		return
	}
	frame := core.NewRect(0, 1, dst.Width(), dst.Height()-1)
	dst.DrawBox(frame, core.ColorGray)

	inner := core.NewRect(1, 2, dst.Width()-2, dst.Height()-3)
	w.renderOccupancy(dst, inner)
	w.renderPaddle(dst, inner)
	w.renderBalls(dst, inner)

	if w.paused {
		msg := "PAUSED"
		dst.DrawText((dst.Width()-len(msg))/2, dst.Height()/2, msg, core.ColorWhite)
	}
}

func (w *World) renderHUD(dst *core.Screen) {
	pilot := "manual"
	if w.auto {
		pilot = "auto"
	}
	level := strconv.Itoa(w.Level())
	if !w.speed.IsProgressive() {
		level += " fixed"
	}
	hud := fmt.Sprintf("tick %d  level %s  balls %d  hits %d  %s  %s",
		w.tick, level, len(w.balls), w.stats.PaddleHits, pilot, w.engine.Mode)
	dst.DrawText(0, 0, hud, core.ColorDefault)
}

// toScreen maps a pixel position to a cell inside area.
func (w *World) toScreen(x, y int, area core.Rect) (int, int) {
	f := w.cfg.Field
	cx := area.X + x*area.W/f.Width
	cy := area.Y + y*area.H/f.Height
	cx = core.Clamp(cx, area.X, area.Right()-1)
	cy = core.Clamp(cy, area.Y, area.Bottom()-1)
	return cx, cy
}

func (w *World) renderOccupancy(dst *core.Screen, area core.Rect) {
	f := w.cfg.Field
	cw, rh := f.ColWidth(), f.RowHeight()
	for row := range w.occ {
		for col, n := range w.occ[row] {
			if n == 0 {
				continue
			}
			x0, y0 := w.toScreen(col*cw, row*rh, area)
			x1, y1 := w.toScreen((col+1)*cw-1, (row+1)*rh-1, area)
			for y := y0; y <= y1; y++ {
				for x := x0; x <= x1; x++ {
					dst.Set(x, y, OccupiedChar, core.ColorGray)
				}
			}
		}
	}
}

func (w *World) renderPaddle(dst *core.Screen, area core.Rect) {
	x0, y := w.toScreen(w.paddle.X, w.paddle.Y, area)
	x1, _ := w.toScreen(w.paddle.Right()-1, w.paddle.Y, area)
	dst.DrawHLine(x0, y, x1-x0+1, PaddleChar, core.ColorWhite)
}

func (w *World) renderBalls(dst *core.Screen, area core.Rect) {
	for i, b := range w.balls {
		x, y := w.toScreen(b.Pos.X, b.Pos.Y, area)
		dst.Set(x, y, BallChar, core.BallColors[i%len(core.BallColors)])
	}
}
