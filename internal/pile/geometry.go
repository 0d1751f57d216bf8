package pile

import "math"

// Default tuning values. Pieces are laid out on a grid of rows, so the
// tolerances only need to absorb float drift, not real gaps.
const (
	defaultGroundMargin       = 40.0 // floor strip at the bottom of the viewport
	defaultGroundTolerance    = 2.0
	defaultAdjacencyTolerance = 2.0
	defaultMinOverlapFraction = 0.5 // of the supported piece's width
	defaultCircleProximity    = 1.0 // in diameters of the supported log
	defaultDamagePerPiece     = 10
	defaultStabilityPrecision = 0 // decimal places
)

// Tuning holds the geometric thresholds and scoring constants.
type Tuning struct {
	GroundMargin       float64
	GroundTolerance    float64
	AdjacencyTolerance float64
	MinOverlapFraction float64
	CircleProximity    float64
	DamagePerPiece     int
	StabilityPrecision int
}

// DefaultTuning returns the tuning used by the game.
func DefaultTuning() Tuning {
	return Tuning{
		GroundMargin:       defaultGroundMargin,
		GroundTolerance:    defaultGroundTolerance,
		AdjacencyTolerance: defaultAdjacencyTolerance,
		MinOverlapFraction: defaultMinOverlapFraction,
		CircleProximity:    defaultCircleProximity,
		DamagePerPiece:     defaultDamagePerPiece,
		StabilityPrecision: defaultStabilityPrecision,
	}
}

// Geometry answers the support questions every other component builds on.
// The only state it keeps is the ground line derived from the viewport.
type Geometry struct {
	tuning     Tuning
	groundLine float64
}

// NewGeometry creates an evaluator for a viewport of the given height.
func NewGeometry(viewportHeight float64, t Tuning) *Geometry {
	g := &Geometry{tuning: t}
	g.SetViewportHeight(viewportHeight)
	return g
}

// SetViewportHeight must be called whenever the playfield is resized.
func (g *Geometry) SetViewportHeight(h float64) {
	g.groundLine = h - g.tuning.GroundMargin
}

// GroundLine is the y coordinate pieces rest on at the bottom of the pile.
func (g *Geometry) GroundLine() float64 { return g.groundLine }

// Tuning returns the thresholds in use.
func (g *Geometry) Tuning() Tuning { return g.tuning }

// IsOnGround reports whether the piece's bottom edge sits on the floor strip.
func (g *Geometry) IsOnGround(p *Piece) bool {
	if p == nil {
		return false
	}
	return math.Abs(p.Bottom()-g.groundLine) <= g.tuning.GroundTolerance
}

// IsPieceSupporting reports whether below currently holds up above.
// Support only ever flows from a lower piece to a higher one.
func (g *Geometry) IsPieceSupporting(above, below *Piece) bool {
	if above == nil || below == nil || above == below {
		return false
	}
	if above.removed || below.removed {
		return false
	}

	t := g.tuning
	// Thin pieces can sit within tolerance of each other's tops, so the
	// lower piece must also be lower by centre, and actually underneath.
	overlap := overlapX(above, below)
	if math.Abs(above.Bottom()-below.Y) <= t.AdjacencyTolerance &&
		below.CenterY() > above.CenterY() &&
		overlap > 0 && overlap >= t.MinOverlapFraction*above.W {
		return true
	}

	if above.Shape != ShapeCircle {
		return false
	}
	// Round logs touch what is beneath them at a point, so the overlap
	// rule above undercounts contact. Accept any strictly lower piece
	// whose centre is within reach of the log's centre.
	dy := below.CenterY() - above.CenterY()
	if dy <= t.AdjacencyTolerance {
		return false
	}
	reach := t.CircleProximity * above.W
	return math.Abs(below.CenterX()-above.CenterX()) <= reach && dy <= reach
}

// FindSupportingPieces returns the active pieces of all that hold up p.
func (g *Geometry) FindSupportingPieces(p *Piece, all []*Piece) []*Piece {
	return g.supportsExcluding(p, all, nil)
}

// supportsExcluding is FindSupportingPieces with an extra set of pieces
// treated as already gone. Used for hypothetical removals.
func (g *Geometry) supportsExcluding(p *Piece, all []*Piece, gone map[*Piece]bool) []*Piece {
	if p == nil {
		return nil
	}
	var out []*Piece
	for _, c := range all {
		if c == p || c.removed || gone[c] {
			continue
		}
		if g.IsPieceSupporting(p, c) {
			out = append(out, c)
		}
	}
	return out
}
