package game

import (
	"image/color"
	"log"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/Garsondee/Stack-Sense/internal/pile"
	"github.com/Garsondee/Stack-Sense/internal/sfx"
)

// flashTicks is how long a status message stays on screen.
const flashTicks = 120

// Game adapts a Session to ebiten. It owns input, the hover preview and
// everything drawn; the Session owns the rules.
type Game struct {
	cfg     Config
	session *Session
	sound   *sfx.Player
	panel   *EventPanel

	width  int // playfield plus log panel
	height int

	hovered    *pile.Piece
	hoverRisks map[string]pile.Risk

	showHUD         bool
	showAnnotations bool
	prevKeys        map[ebiten.Key]bool
	prevMouseLeft   bool

	flash     string
	flashLeft int
}

// New builds a game for cfg. sound may be nil to run silent.
func New(cfg Config, sound *sfx.Player) (*Game, error) {
	g := &Game{
		cfg:      cfg,
		sound:    sound,
		width:    int(cfg.Width) + panelWidth,
		height:   int(cfg.Height),
		showHUD:  true,
		prevKeys: make(map[ebiten.Key]bool),
	}
	if err := g.restart(cfg.Seed); err != nil {
		return nil, err
	}
	return g, nil
}

// restart throws the current round away and generates a new pile.
func (g *Game) restart(seed int64) error {
	cfg := g.cfg
	cfg.Seed = seed
	var sink SoundSink
	if g.sound != nil {
		sink = g.sound
	}
	s, err := NewSession(cfg, sink)
	if err != nil {
		return err
	}
	g.cfg = cfg
	g.session = s
	g.panel = NewEventPanel()
	g.hovered = nil
	g.hoverRisks = nil
	return nil
}

func (g *Game) setFlash(msg string) {
	g.flash = msg
	g.flashLeft = flashTicks
}

func (g *Game) Update() error {
	g.handleInput()
	g.session.Tick()
	g.panel.Sync(g.session.Log())
	if g.flashLeft > 0 {
		g.flashLeft--
		if g.flashLeft == 0 {
			g.flash = ""
		}
	}
	return nil
}

// keyPressed is edge-triggered: true only on the frame the key goes down.
func (g *Game) keyPressed(k ebiten.Key, current map[ebiten.Key]bool) bool {
	current[k] = ebiten.IsKeyPressed(k)
	return current[k] && !g.prevKeys[k]
}

// handleInput processes mouse hover/click and key toggles.
func (g *Game) handleInput() {
	currentKeys := map[ebiten.Key]bool{}

	if g.keyPressed(ebiten.KeyR, currentKeys) {
		if err := g.restart(g.cfg.Seed + 1); err != nil {
			log.Printf("restart: %v", err)
			g.setFlash("could not build a new pile")
		}
	}
	if g.keyPressed(ebiten.KeyH, currentKeys) {
		g.showHUD = !g.showHUD
	}
	if g.keyPressed(ebiten.KeyA, currentKeys) {
		g.showAnnotations = !g.showAnnotations
	}
	if g.keyPressed(ebiten.KeyM, currentKeys) && g.sound != nil {
		if g.sound.ToggleMute() {
			g.setFlash("sound off")
		} else {
			g.setFlash("sound on")
		}
	}
	if g.keyPressed(ebiten.KeyC, currentKeys) {
		if err := copyReport(g.session); err != nil {
			log.Printf("copy report: %v", err)
			g.setFlash("clipboard unavailable")
		} else {
			g.setFlash("stability report copied")
		}
	}
	g.prevKeys = currentKeys

	mx, my := ebiten.CursorPosition()
	fx, fy := float64(mx), float64(my)
	if fx < g.cfg.Width {
		g.hovered, g.hoverRisks = g.session.Hover(fx, fy)
	} else {
		g.hovered, g.hoverRisks = nil, nil
	}

	mouseLeft := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	if mouseLeft && !g.prevMouseLeft && fx < g.cfg.Width {
		switch g.session.Click(fx, fy) {
		case ClickCollapse:
			g.setFlash("collapse!")
		case ClickShoo:
			g.setFlash("shoo!")
		}
		// The pile changed under the cursor; recompute next frame.
		g.hovered, g.hoverRisks = nil, nil
	}
	g.prevMouseLeft = mouseLeft
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 70, G: 110, B: 150, A: 255})

	// Screen shake is a decaying wobble on the playfield only.
	var ox, oy float32
	if sh := g.session.Shake(); sh > 0 {
		t := float64(g.session.CurrentTick())
		ox = float32(sh * math.Sin(t*1.7))
		oy = float32(sh * math.Cos(t*2.3))
	}

	ground := float32(g.session.Geometry().GroundLine())
	gw, gh := float32(g.cfg.Width), float32(g.cfg.Height)
	vector.FillRect(screen, 0, ground+oy, gw, gh-ground, color.RGBA{R: 60, G: 90, B: 40, A: 255}, false)
	vector.StrokeLine(screen, 0, ground+oy, gw, ground+oy, 2.0, color.RGBA{R: 40, G: 60, B: 28, A: 255}, false)

	g.drawPile(screen, ox, oy)
	g.drawHUD(screen)
	g.panel.Draw(screen, int(g.cfg.Width), g.height)
}

func (g *Game) Layout(_, _ int) (int, int) {
	return g.width, g.height
}

// WindowSize is the size the window should open at.
func (g *Game) WindowSize() (int, int) {
	return g.width, g.height
}
