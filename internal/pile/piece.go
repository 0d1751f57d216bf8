// Package pile is the structural engine of the wood pile: support geometry,
// collapse prediction, cascade resolution and stability scoring.
package pile

import "math"

// Shape selects how a piece is interpreted for support and hit-testing.
type Shape int

const (
	ShapeRect Shape = iota
	ShapeCircle
)

func (s Shape) String() string {
	switch s {
	case ShapeRect:
		return "rect"
	case ShapeCircle:
		return "circle"
	default:
		return "unknown"
	}
}

// Kind is the cosmetic wood type of a piece. The engine never reads it.
type Kind int

const (
	KindPlank Kind = iota
	KindBeam
	KindBlock
	KindLog
)

func (k Kind) String() string {
	switch k {
	case KindPlank:
		return "plank"
	case KindBeam:
		return "beam"
	case KindBlock:
		return "block"
	case KindLog:
		return "log"
	default:
		return "unknown"
	}
}

// Risk is a graded collapse classification. Higher values are worse.
type Risk int

const (
	RiskNone Risk = iota
	RiskLow
	RiskMedium
	RiskHigh
	RiskWillCollapse
)

func (r Risk) String() string {
	switch r {
	case RiskNone:
		return "none"
	case RiskLow:
		return "low"
	case RiskMedium:
		return "medium"
	case RiskHigh:
		return "high"
	case RiskWillCollapse:
		return "will_collapse"
	default:
		return "unknown"
	}
}

// Piece is a positioned, sized wood piece in the pile.
// X,Y is the top-left corner; Y grows downward.
type Piece struct {
	ID    string
	X, Y  float64
	W, H  float64
	Shape Shape
	Kind  Kind

	// Creature is an optional occupant owned by the game layer.
	Creature any

	removed bool
	risk    Risk
}

// Removed reports whether the piece has left the pile. Never reset.
func (p *Piece) Removed() bool { return p.removed }

// Risk returns the advisory annotation from the last stability pass.
func (p *Piece) Risk() Risk { return p.risk }

func (p *Piece) Right() float64   { return p.X + p.W }
func (p *Piece) Bottom() float64  { return p.Y + p.H }
func (p *Piece) CenterX() float64 { return p.X + p.W/2 }
func (p *Piece) CenterY() float64 { return p.Y + p.H/2 }

// Contains reports whether the point lies on the piece. Circles use
// their inscribed radius.
func (p *Piece) Contains(x, y float64) bool {
	if p.Shape == ShapeCircle {
		r := math.Min(p.W, p.H) / 2
		dx := x - p.CenterX()
		dy := y - p.CenterY()
		return dx*dx+dy*dy <= r*r
	}
	return x >= p.X && x < p.Right() && y >= p.Y && y < p.Bottom()
}

// overlapX returns the width of the shared horizontal span, or 0.
func overlapX(a, b *Piece) float64 {
	lo := math.Max(a.X, b.X)
	hi := math.Min(a.Right(), b.Right())
	if hi <= lo {
		return 0
	}
	return hi - lo
}

// indexOf returns the position of p in pieces, or -1.
func indexOf(p *Piece, pieces []*Piece) int {
	for i, c := range pieces {
		if c == p {
			return i
		}
	}
	return -1
}
