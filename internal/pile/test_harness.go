package pile

import "fmt"

// TestPile is a hand-built pile used by tests and by the headless report.
// Pieces are added through options so scenarios read like a drawing of
// the stack.
type TestPile struct {
	Width     float64
	Height    float64
	Store     *Store
	Geometry  *Geometry
	Manager   *CollisionManager
	Predictor *Predictor
	Log       *EventLog

	tuning Tuning
	pieces []*Piece
}

// pileOptionKind controls the pass in which an option is applied.
type pileOptionKind int

const (
	pileOptInfra pileOptionKind = iota // viewport and tuning, applied first
	pileOptPiece                       // pieces, applied once the ground line is known
)

// PileOption is a builder function applied to a TestPile during construction.
type PileOption struct {
	kind pileOptionKind
	fn   func(*TestPile)
}

// WithViewport sets the playfield dimensions.
func WithViewport(w, h float64) PileOption {
	return PileOption{pileOptInfra, func(tp *TestPile) {
		tp.Width = w
		tp.Height = h
	}}
}

// WithTuning replaces the default thresholds.
func WithTuning(t Tuning) PileOption {
	return PileOption{pileOptInfra, func(tp *TestPile) {
		tp.tuning = t
	}}
}

// WithRect adds a rectangular piece with its top-left at (x, y).
func WithRect(id string, x, y, w, h float64) PileOption {
	return PileOption{pileOptPiece, func(tp *TestPile) {
		tp.pieces = append(tp.pieces, &Piece{ID: id, X: x, Y: y, W: w, H: h, Shape: ShapeRect, Kind: KindPlank})
	}}
}

// WithCircle adds a round log of diameter d with its top-left at (x, y).
func WithCircle(id string, x, y, d float64) PileOption {
	return PileOption{pileOptPiece, func(tp *TestPile) {
		tp.pieces = append(tp.pieces, &Piece{ID: id, X: x, Y: y, W: d, H: d, Shape: ShapeCircle, Kind: KindLog})
	}}
}

// WithColumn stacks n rectangles of size w×h straight up from the ground
// at x. Ids are prefix0 (bottom) to prefix<n-1> (top).
func WithColumn(prefix string, x, w, h float64, n int) PileOption {
	return PileOption{pileOptPiece, func(tp *TestPile) {
		y := tp.Geometry.GroundLine() - h
		for i := 0; i < n; i++ {
			tp.pieces = append(tp.pieces, &Piece{
				ID: fmt.Sprintf("%s%d", prefix, i), X: x, Y: y, W: w, H: h,
				Shape: ShapeRect, Kind: KindBlock,
			})
			y -= h
		}
	}}
}

// NewTestPile builds a TestPile in two passes: infrastructure first, then
// pieces, then the engine components and one stability pass.
func NewTestPile(opts ...PileOption) *TestPile {
	tp := &TestPile{
		Width:  800,
		Height: 600,
		tuning: DefaultTuning(),
		Log:    NewEventLog(),
		Store:  NewStore(),
	}
	for _, o := range opts {
		if o.kind == pileOptInfra {
			o.fn(tp)
		}
	}
	tp.Geometry = NewGeometry(tp.Height, tp.tuning)
	for _, o := range opts {
		if o.kind == pileOptPiece {
			o.fn(tp)
		}
	}
	for _, p := range tp.pieces {
		if err := tp.Store.Add(p); err != nil {
			panic(fmt.Sprintf("test pile: %v", err))
		}
	}
	tp.Manager = NewCollisionManager(tp.Geometry, WithEventLog(tp.Log))
	tp.Predictor = NewPredictor(tp.Geometry)
	tp.Manager.UpdateCollapseRisks(tp.Store.Pieces())
	return tp
}

// Ground is the y coordinate a piece of height h must have to sit on the floor.
func (tp *TestPile) Ground(h float64) float64 {
	return tp.Geometry.GroundLine() - h
}

// Piece returns the piece with the given id, or nil.
func (tp *TestPile) Piece(id string) *Piece {
	p, _ := tp.Store.Get(id)
	return p
}

// All returns every piece in the pile.
func (tp *TestPile) All() []*Piece {
	return tp.Store.Pieces()
}

// Remove commits a removal of the piece with the given id.
func (tp *TestPile) Remove(id string) CollapseResult {
	return tp.Manager.HandlePotentialCollapse(tp.Piece(id), tp.All())
}
