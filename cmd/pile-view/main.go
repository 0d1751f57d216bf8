package main

import (
	"flag"
	"fmt"
	"math"
	"os"

	"github.com/gdamore/tcell/v2"

	"github.com/Garsondee/Stack-Sense/internal/pile"
	"github.com/Garsondee/Stack-Sense/internal/sfx"
)

const (
	worldW = 1280.0
	worldH = 720.0

	statusLines = 2
)

var riskStyles = map[pile.Risk]tcell.Style{
	pile.RiskLow:          tcell.StyleDefault.Background(tcell.ColorOlive),
	pile.RiskMedium:       tcell.StyleDefault.Background(tcell.ColorDarkOrange),
	pile.RiskHigh:         tcell.StyleDefault.Background(tcell.ColorRed),
	pile.RiskWillCollapse: tcell.StyleDefault.Background(tcell.ColorDarkMagenta).Bold(true),
}

var kindRunes = map[pile.Kind]rune{
	pile.KindPlank: '=',
	pile.KindBeam:  '#',
	pile.KindBlock: '%',
	pile.KindLog:   'o',
}

type viewer struct {
	screen tcell.Screen
	sound  *sfx.Player

	rows int
	seed int64

	store   *pile.Store
	geom    *pile.Geometry
	manager *pile.CollisionManager
	pred    *pile.Predictor

	cursor *pile.Piece
	status string
}

func (v *viewer) regenerate() error {
	store, geom, err := pile.Generate(pile.GenerateConfig{Width: worldW, Height: worldH, Rows: v.rows, Seed: v.seed})
	if err != nil {
		return err
	}
	v.store, v.geom = store, geom
	v.manager = pile.NewCollisionManager(geom)
	v.pred = pile.NewPredictor(geom)
	v.manager.UpdateCollapseRisks(store.Pieces())
	v.cursor = topmost(store.Active())
	v.status = fmt.Sprintf("seed %d, %d pieces", v.seed, store.Len())
	return nil
}

// remove pulls the piece under the cursor and moves the cursor to the
// nearest survivor.
func (v *viewer) remove() {
	if v.cursor == nil {
		return
	}
	all := v.store.Pieces()
	res := v.manager.HandlePotentialCollapse(v.cursor, all)
	v.manager.UpdateCollapseRisks(all)
	st := v.manager.CheckStability(all)
	if len(res.Cascade) > 0 {
		v.status = fmt.Sprintf("%s brought down %d (damage %d) | %s", v.cursor.ID, len(res.Cascade), res.Damage, st)
		v.play(sfx.CueCollapse, len(res.Cascade))
	} else {
		v.status = fmt.Sprintf("%s removed | %s", v.cursor.ID, st)
		v.play(sfx.CueRemove, 0)
	}
	v.cursor = nearest(v.store.Active(), v.cursor.CenterX(), v.cursor.CenterY())
}

func (v *viewer) play(c sfx.Cue, size int) {
	if v.sound != nil {
		v.sound.Play(c, size)
	}
}

// handleKey returns false when the viewer should exit.
func (v *viewer) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyEnter:
		v.remove()
	case tcell.KeyLeft:
		v.cursor = step(v.store.Active(), v.cursor, -1, 0)
	case tcell.KeyRight:
		v.cursor = step(v.store.Active(), v.cursor, 1, 0)
	case tcell.KeyUp:
		v.cursor = step(v.store.Active(), v.cursor, 0, -1)
	case tcell.KeyDown:
		v.cursor = step(v.store.Active(), v.cursor, 0, 1)
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q':
			return false
		case 'r':
			v.seed++
			if err := v.regenerate(); err != nil {
				v.status = err.Error()
			}
		case ' ':
			v.remove()
		}
	}
	return true
}

func (v *viewer) draw() {
	v.screen.Clear()
	cols, rows := v.screen.Size()
	field := rows - statusLines

	groundRow := int(v.geom.GroundLine() * float64(field) / worldH)
	for x := 0; x < cols; x++ {
		v.screen.SetContent(x, groundRow, '▔', nil, tcell.StyleDefault.Foreground(tcell.ColorGreen))
	}

	risks := v.pred.RiskMap(v.cursor, v.store.Pieces())
	for _, p := range v.store.Active() {
		style := tcell.StyleDefault.Foreground(tcell.ColorTan)
		if p.Risk() >= pile.RiskHigh {
			style = style.Foreground(tcell.ColorOrangeRed)
		}
		if s, ok := riskStyles[risks[p.ID]]; ok {
			style = s.Foreground(tcell.ColorWhite)
		}
		if p == v.cursor {
			style = style.Reverse(true)
		}
		x0, y0, x1, y1 := cellRect(p, cols, field)
		for y := y0; y <= y1; y++ {
			for x := x0; x <= x1; x++ {
				v.screen.SetContent(x, y, kindRunes[p.Kind], nil, style)
			}
		}
	}

	help := "arrows move  enter remove  r new pile  q quit"
	if v.cursor != nil {
		help = fmt.Sprintf("[%s %s %s] %s", v.cursor.ID, v.cursor.Kind, v.cursor.Risk(), help)
	}
	drawString(v.screen, 0, rows-2, v.status, tcell.StyleDefault)
	drawString(v.screen, 0, rows-1, help, tcell.StyleDefault.Dim(true))
	v.screen.Show()
}

func drawString(s tcell.Screen, x, y int, str string, style tcell.Style) {
	for i, r := range str {
		s.SetContent(x+i, y, r, nil, style)
	}
}

// cellRect maps a piece's world rectangle onto inclusive cell bounds.
// Every piece covers at least one cell.
func cellRect(p *pile.Piece, cols, rows int) (x0, y0, x1, y1 int) {
	sx := float64(cols) / worldW
	sy := float64(rows) / worldH
	x0 = int(p.X * sx)
	y0 = int(p.Y * sy)
	x1 = max(x0, int(math.Ceil(p.Right()*sx))-1)
	y1 = max(y0, int(math.Ceil(p.Bottom()*sy))-1)
	return x0, y0, x1, y1
}

// topmost is the piece with the highest top edge, or nil.
func topmost(pieces []*pile.Piece) *pile.Piece {
	var best *pile.Piece
	for _, p := range pieces {
		if best == nil || p.Y < best.Y {
			best = p
		}
	}
	return best
}

func nearest(pieces []*pile.Piece, x, y float64) *pile.Piece {
	var best *pile.Piece
	bestD := math.Inf(1)
	for _, p := range pieces {
		d := math.Hypot(p.CenterX()-x, p.CenterY()-y)
		if d < bestD {
			best, bestD = p, d
		}
	}
	return best
}

// step moves from cur to the closest piece lying in direction (dx, dy).
// Distance off the travel axis counts double so movement stays straight.
// With no candidate the cursor stays put.
func step(pieces []*pile.Piece, cur *pile.Piece, dx, dy float64) *pile.Piece {
	if cur == nil {
		return topmost(pieces)
	}
	var best *pile.Piece
	bestScore := math.Inf(1)
	for _, p := range pieces {
		if p == cur {
			continue
		}
		ox := p.CenterX() - cur.CenterX()
		oy := p.CenterY() - cur.CenterY()
		along := ox*dx + oy*dy
		if along <= 0 {
			continue
		}
		across := math.Abs(ox*dy - oy*dx)
		if score := along + 2*across; score < bestScore {
			best, bestScore = p, score
		}
	}
	if best == nil {
		return cur
	}
	return best
}

func main() {
	v := &viewer{}
	var withSound bool
	flag.Int64Var(&v.seed, "seed", 1, "pile layout seed")
	flag.IntVar(&v.rows, "rows", 9, "rows in the pile")
	flag.BoolVar(&withSound, "sound", false, "play removal and collapse cues")
	flag.Parse()

	if err := v.regenerate(); err != nil {
		fmt.Fprintf(os.Stderr, "generate: %v\n", err)
		os.Exit(1)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	defer screen.Fini()
	v.screen = screen

	if withSound {
		v.sound = sfx.NewPlayer(0.5)
		if err := v.sound.Init(); err != nil {
			v.sound = nil
			v.status = "audio disabled: " + err.Error()
		} else {
			defer v.sound.Close()
		}
	}

	v.draw()
	for {
		switch ev := screen.PollEvent().(type) {
		case *tcell.EventKey:
			if !v.handleKey(ev) {
				return
			}
		case *tcell.EventResize:
			screen.Sync()
		case nil:
			return
		}
		v.draw()
	}
}
