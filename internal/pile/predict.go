package pile

// Affected pairs a piece with its predicted risk for one hypothetical removal.
type Affected struct {
	Piece *Piece
	Risk  Risk
}

// Predictor previews what removing a piece would do, without touching
// the pile. It backs the hover highlight.
type Predictor struct {
	geom *Geometry
}

// NewPredictor creates a predictor over the given geometry.
func NewPredictor(geom *Geometry) *Predictor {
	return &Predictor{geom: geom}
}

// tierFor grades a piece by how many supports it has left after losing
// at least one.
func tierFor(remaining int) Risk {
	switch {
	case remaining == 0:
		return RiskWillCollapse
	case remaining == 1:
		return RiskHigh
	default:
		return RiskMedium
	}
}

// CalculateAffectedPieces returns every piece whose standing would change
// if hovered were removed now, in the order they appear in all. Pieces
// with no risk are omitted. hovered itself is never included.
func (pr *Predictor) CalculateAffectedPieces(hovered *Piece, all []*Piece) []Affected {
	if hovered == nil || hovered.removed || indexOf(hovered, all) < 0 {
		return nil
	}

	// Only airborne pieces can fall; ground pieces are never candidates.
	var candidates []*Piece
	supports := make(map[*Piece][]*Piece)
	for _, p := range all {
		if p == hovered || p.removed || pr.geom.IsOnGround(p) {
			continue
		}
		candidates = append(candidates, p)
		supports[p] = pr.geom.FindSupportingPieces(p, all)
	}
	if len(candidates) == 0 {
		return nil
	}

	risk := make(map[*Piece]Risk, len(candidates))
	gone := map[*Piece]bool{hovered: true}

	// Direct pass, then propagate until nothing changes. Each pass only
	// raises tiers, so the bound is never reached on sane input.
	for pass := 0; pass <= len(candidates); pass++ {
		changed := false
		for _, p := range candidates {
			if risk[p] == RiskWillCollapse {
				continue
			}
			sup := supports[p]
			if len(sup) == 0 {
				continue
			}
			left := 0
			for _, s := range sup {
				if !gone[s] {
					left++
				}
			}
			if left == len(sup) {
				continue
			}
			if tier := tierFor(left); tier > risk[p] {
				risk[p] = tier
				changed = true
				if tier == RiskWillCollapse {
					gone[p] = true
				}
			}
		}
		if !changed {
			break
		}
	}

	// Softer warning for pieces resting on a shaken but standing piece.
	for _, p := range candidates {
		if risk[p] != RiskNone {
			continue
		}
		for _, s := range supports[p] {
			if r := risk[s]; r == RiskHigh || r == RiskMedium {
				risk[p] = RiskLow
				break
			}
		}
	}

	var out []Affected
	for _, p := range candidates {
		if r := risk[p]; r != RiskNone {
			out = append(out, Affected{Piece: p, Risk: r})
		}
	}
	return out
}

// RiskMap is CalculateAffectedPieces keyed by piece id, the shape the
// renderer wants.
func (pr *Predictor) RiskMap(hovered *Piece, all []*Piece) map[string]Risk {
	affected := pr.CalculateAffectedPieces(hovered, all)
	if len(affected) == 0 {
		return nil
	}
	m := make(map[string]Risk, len(affected))
	for _, a := range affected {
		m[a.Piece.ID] = a.Risk
	}
	return m
}
