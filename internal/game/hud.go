package game

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"
)

// hudFace is the bitmap face used for the big HUD numbers.
var hudFace = text.NewGoXFace(basicfont.Face7x13)

// drawText draws s at (x, y) scaled by scale in colour c.
func drawText(screen *ebiten.Image, s string, x, y, scale float64, c color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(c)
	text.Draw(screen, s, hudFace, op)
}

// healthColor fades from green to red as health drops.
func healthColor(health, max int) color.RGBA {
	if max <= 0 {
		return color.RGBA{R: 200, G: 200, B: 200, A: 255}
	}
	f := float64(health) / float64(max)
	return color.RGBA{R: uint8(230 * (1 - f)), G: uint8(60 + 170*f), B: 50, A: 255}
}

// drawHUD renders health, score, stability and the key legend.
func (g *Game) drawHUD(screen *ebiten.Image) {
	s := g.session
	cfg := s.Config()

	// Health bar.
	vector.FillRect(screen, 16, 12, 204, 20, color.RGBA{R: 20, G: 14, B: 10, A: 220}, false)
	frac := float32(s.Health()) / float32(max(cfg.StartHealth, 1))
	vector.FillRect(screen, 18, 14, 200*frac, 16, healthColor(s.Health(), cfg.StartHealth), false)
	drawText(screen, fmt.Sprintf("%d", s.Health()), 226, 12, 1.5, color.White)

	drawText(screen, fmt.Sprintf("SCORE %d", s.Score()), 300, 12, 1.5, color.RGBA{R: 250, G: 220, B: 150, A: 255})

	st := s.Stability()
	stCol := color.RGBA{R: 140, G: 220, B: 120, A: 255}
	if st.StabilityPercentage < 50 {
		stCol = color.RGBA{R: 240, G: 120, B: 60, A: 255}
	}
	drawText(screen, fmt.Sprintf("STABILITY %.0f%%", st.StabilityPercentage), 460, 12, 1.5, stCol)

	if g.flash != "" {
		ebitenutil.DebugPrintAt(screen, g.flash, 16, 40)
	}

	if g.showHUD {
		legend := "[click] remove / shoo  [R] new pile  [C] copy report  [M] mute  [A] annotations  [H] hide"
		if g.sound != nil && g.sound.Muted() {
			legend += "  (muted)"
		}
		ebitenutil.DebugPrintAt(screen, legend, 16, int(cfg.Height)-20)
	}

	if s.Over() {
		w, h := float32(cfg.Width), float32(cfg.Height)
		vector.FillRect(screen, 0, 0, w, h, color.RGBA{A: 150}, false)
		msg := "PILE CLEARED"
		if s.Health() <= 0 {
			msg = "FLATTENED"
		}
		drawText(screen, msg, float64(w)/2-float64(len(msg))*7*2, float64(h)/2-40, 4, color.White)
		drawText(screen, fmt.Sprintf("score %d - press R", s.Score()), float64(w)/2-120, float64(h)/2+20, 2, color.White)
	}
}
