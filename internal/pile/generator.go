package pile

import (
	"errors"
	"fmt"
	"math/rand"
)

// Row layout constants, in playfield pixels.
const (
	rowHeight    = 36.0
	pieceGap     = 2.0
	pileFraction = 0.7 // share of the viewport width the ground row spans
)

// kindSpec is the footprint of one wood kind.
type kindSpec struct {
	kind  Kind
	shape Shape
	w     float64
}

var kindSpecs = []kindSpec{
	{KindPlank, ShapeRect, rowHeight * 3},
	{KindBeam, ShapeRect, rowHeight * 4.5},
	{KindBlock, ShapeRect, rowHeight}, // square, but still a rect
	{KindLog, ShapeCircle, rowHeight},
}

// GenerateConfig describes a pile to build.
type GenerateConfig struct {
	Width  float64
	Height float64
	Rows   int
	Seed   int64
	Tuning Tuning
}

// Generate lays out a fresh pile, row by row from the ground up. Every
// piece above the ground row rests on at least one piece below with the
// overlap the tuning asks for, so a new pile never starts with a cascade.
func Generate(cfg GenerateConfig) (*Store, *Geometry, error) {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, nil, fmt.Errorf("invalid viewport %.0fx%.0f", cfg.Width, cfg.Height)
	}
	if cfg.Rows <= 0 {
		return nil, nil, errors.New("pile needs at least one row")
	}
	if cfg.Tuning == (Tuning{}) {
		cfg.Tuning = DefaultTuning()
	}
	geom := NewGeometry(cfg.Height, cfg.Tuning)
	if float64(cfg.Rows)*rowHeight > geom.GroundLine() {
		return nil, nil, fmt.Errorf("%d rows do not fit above ground line %.0f", cfg.Rows, geom.GroundLine())
	}

	rng := rand.New(rand.NewSource(cfg.Seed)) // #nosec G404 -- level layout only
	store := NewStore()
	nextID := 0
	add := func(spec kindSpec, x, y float64) *Piece {
		p := &Piece{
			ID:    fmt.Sprintf("p%02d", nextID),
			X:     x,
			Y:     y,
			W:     spec.w,
			H:     rowHeight,
			Shape: spec.shape,
			Kind:  spec.kind,
		}
		nextID++
		// ids are generated, a collision is impossible
		_ = store.Add(p)
		return p
	}

	// Ground row: rectangles only, so the base never rolls.
	span := cfg.Width * pileFraction
	left := (cfg.Width - span) / 2
	y := geom.GroundLine() - rowHeight
	var below []*Piece
	for x := left; ; {
		spec := kindSpecs[rng.Intn(3)]
		if x+spec.w > left+span {
			break
		}
		below = append(below, add(spec, x, y))
		x += spec.w + pieceGap
	}

	minOverlap := cfg.Tuning.MinOverlapFraction
	for row := 1; row < cfg.Rows && len(below) > 0; row++ {
		y -= rowHeight
		// Higher rows thin out so the pile tapers.
		skip := 0.15 + 0.5*float64(row)/float64(cfg.Rows)
		var placed []*Piece
		lastRight := -1.0
		for _, b := range below {
			if rng.Float64() < skip {
				continue
			}
			spec := kindSpecs[rng.Intn(len(kindSpecs))]
			offset := (rng.Float64() - 0.5) * b.W
			x := b.CenterX() + offset - spec.w/2
			if x < lastRight+pieceGap {
				x = lastRight + pieceGap
			}
			if x < left || x+spec.w > left+span {
				continue
			}
			candidate := Piece{X: x, W: spec.w}
			if overlapX(&candidate, b) < minOverlap*spec.w {
				continue
			}
			p := add(spec, x, y)
			placed = append(placed, p)
			lastRight = p.Right()
		}
		below = placed
	}
	return store, geom, nil
}
