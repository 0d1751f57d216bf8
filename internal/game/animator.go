package game

import (
	"math/rand"

	"github.com/Garsondee/Stack-Sense/internal/pile"
)

const (
	fallGravity   = 0.45 // px per tick²
	fallFadeTicks = 50
)

// FallingPiece is the animation state of a piece that left the pile.
// The engine has already flagged it removed; this is purely visual.
type FallingPiece struct {
	ID    string
	X, Y  float64
	W, H  float64
	Shape pile.Shape
	Kind  pile.Kind
	VX    float64
	VY    float64
	Angle float64
	Spin  float64
	Age   int
	Delay int // ticks before it starts moving, so cascades ripple
}

// Alpha fades the piece out over its last ticks.
func (f *FallingPiece) Alpha() float64 {
	if f.Age < fallFadeTicks {
		return 1
	}
	a := 1 - float64(f.Age-fallFadeTicks)/float64(fallFadeTicks)
	if a < 0 {
		return 0
	}
	return a
}

// Animator owns the transient fall state keyed by piece id.
type Animator struct {
	rng     *rand.Rand
	falling map[string]*FallingPiece
	order   []string
	floorY  float64
}

// NewAnimator creates an animator; pieces vanish once below floorY.
func NewAnimator(rng *rand.Rand, floorY float64) *Animator {
	return &Animator{rng: rng, falling: make(map[string]*FallingPiece), floorY: floorY}
}

// Start begins falls for the given pieces. Later pieces in the slice
// start later so the cascade reads bottom-up, and a batch queues behind
// any pieces still waiting to move.
func (a *Animator) Start(pieces []*pile.Piece) {
	waiting := 0
	for _, id := range a.order {
		if a.falling[id].Age == 0 {
			waiting++
		}
	}
	i := waiting
	for _, p := range pieces {
		if _, dup := a.falling[p.ID]; dup {
			continue
		}
		a.falling[p.ID] = &FallingPiece{
			ID: p.ID, X: p.X, Y: p.Y, W: p.W, H: p.H,
			Shape: p.Shape, Kind: p.Kind,
			VX:    (a.rng.Float64() - 0.5) * 2.5,
			Spin:  (a.rng.Float64() - 0.5) * 0.12,
			Delay: i * 3,
		}
		a.order = append(a.order, p.ID)
		i++
	}
}

// Step advances every fall by one tick and drops finished ones.
func (a *Animator) Step() {
	kept := a.order[:0]
	for _, id := range a.order {
		f := a.falling[id]
		if f.Delay > 0 {
			f.Delay--
			kept = append(kept, id)
			continue
		}
		f.Age++
		f.VY += fallGravity
		f.X += f.VX
		f.Y += f.VY
		f.Angle += f.Spin
		if f.Alpha() <= 0 || f.Y > a.floorY+200 {
			delete(a.falling, id)
			continue
		}
		kept = append(kept, id)
	}
	a.order = kept
}

// Falling returns the pieces still animating in start order.
func (a *Animator) Falling() []*FallingPiece {
	out := make([]*FallingPiece, 0, len(a.order))
	for _, id := range a.order {
		out = append(out, a.falling[id])
	}
	return out
}

// Busy reports whether anything is still falling.
func (a *Animator) Busy() bool {
	return len(a.order) > 0
}
