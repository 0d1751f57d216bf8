package game

import (
	"image/color"
	"math"

	"github.com/Garsondee/Stack-Sense/internal/pile"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// woodColors maps each wood kind to its fill colour.
var woodColors = map[pile.Kind]color.RGBA{
	pile.KindPlank: {R: 196, G: 150, B: 96, A: 255},  // pine
	pile.KindBeam:  {R: 150, G: 104, B: 62, A: 255},  // oak
	pile.KindBlock: {R: 214, G: 180, B: 128, A: 255}, // birch
	pile.KindLog:   {R: 120, G: 82, B: 50, A: 255},   // bark
}

// riskColors maps each predicted tier to its highlight border colour.
var riskColors = map[pile.Risk]color.RGBA{
	pile.RiskLow:          {R: 240, G: 230, B: 140, A: 200},
	pile.RiskMedium:       {R: 250, G: 200, B: 40, A: 230},
	pile.RiskHigh:         {R: 255, G: 130, B: 20, A: 255},
	pile.RiskWillCollapse: {R: 235, G: 40, B: 30, A: 255},
}

// annotationColors marks the standing risk from the last stability pass.
var annotationColors = map[pile.Risk]color.RGBA{
	pile.RiskLow:    {R: 150, G: 200, B: 90, A: 220},
	pile.RiskMedium: {R: 230, G: 180, B: 40, A: 220},
	pile.RiskHigh:   {R: 220, G: 60, B: 40, A: 220},
}

var creatureColors = [...]color.RGBA{
	CreatureBeetle:   {R: 40, G: 60, B: 40, A: 255},
	CreatureMouse:    {R: 150, G: 150, B: 160, A: 255},
	CreatureSquirrel: {R: 190, G: 90, B: 30, A: 255},
}

func shade(c color.RGBA, f float64) color.RGBA {
	return color.RGBA{
		R: uint8(math.Min(255, float64(c.R)*f)),
		G: uint8(math.Min(255, float64(c.G)*f)),
		B: uint8(math.Min(255, float64(c.B)*f)),
		A: c.A,
	}
}

// drawPiece fills one standing piece with a darker rim.
func drawPiece(screen *ebiten.Image, p *pile.Piece, ox, oy float32) {
	base := woodColors[p.Kind]
	x, y := ox+float32(p.X), oy+float32(p.Y)
	w, h := float32(p.W), float32(p.H)
	if p.Shape == pile.ShapeCircle {
		r := w / 2
		vector.FillCircle(screen, x+r, y+r, r, base, true)
		vector.StrokeCircle(screen, x+r, y+r, r*0.55, 1.0, shade(base, 0.75), true) // growth ring
		vector.StrokeCircle(screen, x+r, y+r, r-0.5, 1.0, shade(base, 0.6), true)
		return
	}
	vector.FillRect(screen, x, y, w, h, base, false)
	// Grain.
	for gy := y + 6; gy < y+h-3; gy += 8 {
		vector.StrokeLine(screen, x+4, gy, x+w-4, gy, 1.0, shade(base, 0.88), false)
	}
	vector.StrokeRect(screen, x, y, w, h, 1.0, shade(base, 0.6), false)
}

// drawOutline strokes a highlight just outside the piece.
func drawOutline(screen *ebiten.Image, p *pile.Piece, ox, oy float32, width float32, c color.Color) {
	x, y := ox+float32(p.X), oy+float32(p.Y)
	if p.Shape == pile.ShapeCircle {
		r := float32(p.W) / 2
		vector.StrokeCircle(screen, x+r, y+r, r+width/2, width, c, true)
		return
	}
	vector.StrokeRect(screen, x-width/2, y-width/2, float32(p.W)+width, float32(p.H)+width, width, c, false)
}

// drawCreature draws the occupant sitting on top of its piece, with a
// shrinking timer bar.
func drawCreature(screen *ebiten.Image, p *pile.Piece, c *Creature, tick int, ox, oy float32) {
	cx := ox + float32(p.CenterX())
	cy := oy + float32(p.Y) - 7
	col := creatureColors[c.Kind]
	vector.FillCircle(screen, cx, cy, 7, col, true)
	vector.FillCircle(screen, cx+4, cy-3, 1.5, color.White, true)

	total := float32(c.Deadline - c.SpawnTick)
	if total <= 0 {
		return
	}
	frac := float32(c.Remaining(tick)) / total
	barCol := color.RGBA{R: 120, G: 220, B: 90, A: 255}
	if frac < 0.35 {
		barCol = color.RGBA{R: 240, G: 60, B: 40, A: 255}
	}
	vector.FillRect(screen, cx-12, cy-14, 24, 3, color.RGBA{A: 160}, false)
	vector.FillRect(screen, cx-12, cy-14, 24*frac, 3, barCol, false)
}

// drawFalling draws an animating piece. Rectangles are drawn as a thick
// rotated line, which is what a plank is.
func drawFalling(screen *ebiten.Image, f *FallingPiece, ox, oy float32) {
	base := woodColors[f.Kind]
	base.A = uint8(255 * f.Alpha())
	cx := ox + float32(f.X+f.W/2)
	cy := oy + float32(f.Y+f.H/2)
	if f.Shape == pile.ShapeCircle {
		vector.FillCircle(screen, cx, cy, float32(f.W/2), base, true)
		return
	}
	dx := float32(math.Cos(f.Angle) * f.W / 2)
	dy := float32(math.Sin(f.Angle) * f.W / 2)
	vector.StrokeLine(screen, cx-dx, cy-dy, cx+dx, cy+dy, float32(f.H), base, true)
}

// drawPile renders the standing pile, the hover prediction and creatures.
func (g *Game) drawPile(screen *ebiten.Image, ox, oy float32) {
	s := g.session
	tick := s.CurrentTick()
	for _, p := range s.Pieces() {
		if p.Removed() {
			continue
		}
		drawPiece(screen, p, ox, oy)
		if g.showAnnotations {
			if c, ok := annotationColors[p.Risk()]; ok {
				vector.FillRect(screen, ox+float32(p.Right())-7, oy+float32(p.Y)+3, 4, 4, c, false)
			}
		}
	}

	// Prediction borders go on top so neighbours cannot hide them.
	for _, p := range s.Pieces() {
		if r, ok := g.hoverRisks[p.ID]; ok && !p.Removed() {
			w := float32(2)
			if r == pile.RiskWillCollapse {
				// Pulse so the pieces about to fall catch the eye.
				w = 2.5 + 1.2*float32(math.Sin(float64(tick)*0.25))
			}
			drawOutline(screen, p, ox, oy, w, riskColors[r])
		}
	}
	if g.hovered != nil && !g.hovered.Removed() {
		drawOutline(screen, g.hovered, ox, oy, 2, color.RGBA{R: 255, G: 255, B: 255, A: 230})
	}

	for _, p := range s.Pieces() {
		if c := creatureOn(p); c != nil && !p.Removed() {
			drawCreature(screen, p, c, tick, ox, oy)
		}
	}
	for _, f := range s.Falling() {
		drawFalling(screen, f, ox, oy)
	}
}
