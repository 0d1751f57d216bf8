package pile

// Resolver works out which pieces actually fall after a removal.
type Resolver struct {
	geom *Geometry
}

// NewResolver creates a cascade resolver over the given geometry.
func NewResolver(geom *Geometry) *Resolver {
	return &Resolver{geom: geom}
}

// Resolve removes target from the pile and then every piece left without
// support, repeating until a pass changes nothing. It returns the pieces
// that fell as a consequence, in the order they were found; target itself
// is not included. Ground pieces never fall this way.
func (r *Resolver) Resolve(target *Piece, all []*Piece) []*Piece {
	if target == nil || target.removed || indexOf(target, all) < 0 {
		return nil
	}
	fallen := r.Simulate(target, all)
	target.removed = true
	for _, p := range fallen {
		p.removed = true
	}
	return fallen
}

// Simulate runs the same fixed point as Resolve against an overlay of
// hypothetically removed pieces. Nothing is mutated.
func (r *Resolver) Simulate(target *Piece, all []*Piece) []*Piece {
	if target == nil || target.removed || indexOf(target, all) < 0 {
		return nil
	}

	gone := map[*Piece]bool{target: true}
	var fallen []*Piece

	// Every productive pass removes at least one piece, so len(all)
	// passes is enough. Anything left unresolved past that is returned
	// as is.
	for pass := 0; pass < len(all); pass++ {
		changed := false
		for _, p := range all {
			if p.removed || gone[p] || r.geom.IsOnGround(p) {
				continue
			}
			if len(r.geom.supportsExcluding(p, all, gone)) == 0 {
				gone[p] = true
				fallen = append(fallen, p)
				changed = true
			}
		}
		if !changed {
			break
		}
	}
	return fallen
}
