package pile

import (
	"fmt"
	"math"
	"strings"
)

// CollapseFunc is called after a removal that brought other pieces down.
type CollapseFunc func(damage int, cascade []*Piece)

// Stability summarises the advisory annotations of a pile.
type Stability struct {
	StablePieces        int
	UnstablePieces      int
	TotalPieces         int
	StabilityPercentage float64
}

func (s Stability) String() string {
	return fmt.Sprintf("%d/%d stable (%.0f%%)", s.StablePieces, s.TotalPieces, s.StabilityPercentage)
}

// CollapseResult is what one authoritative removal did to the pile.
type CollapseResult struct {
	Removed   *Piece
	Cascade   []*Piece
	Damage    int
	Stability Stability
}

// CollisionManager is the mutating entry point for player removals.
// It holds no state between calls beyond its options and callback.
type CollisionManager struct {
	geom           *Geometry
	resolver       *Resolver
	damagePerPiece int
	precision      int
	onCollapse     CollapseFunc
	log            *EventLog
}

// ManagerOption configures a CollisionManager.
type ManagerOption func(*CollisionManager)

// WithDamagePerPiece overrides the tuning's per-piece damage.
func WithDamagePerPiece(d int) ManagerOption {
	return func(m *CollisionManager) { m.damagePerPiece = d }
}

// WithEventLog records removals, cascades and stability summaries.
func WithEventLog(l *EventLog) ManagerOption {
	return func(m *CollisionManager) { m.log = l }
}

// WithCollapseCallback registers fn as the collapse callback.
func WithCollapseCallback(fn CollapseFunc) ManagerOption {
	return func(m *CollisionManager) { m.onCollapse = fn }
}

// NewCollisionManager creates a manager over the given geometry.
func NewCollisionManager(geom *Geometry, opts ...ManagerOption) *CollisionManager {
	t := geom.Tuning()
	m := &CollisionManager{
		geom:           geom,
		resolver:       NewResolver(geom),
		damagePerPiece: t.DamagePerPiece,
		precision:      t.StabilityPrecision,
	}
	for _, o := range opts {
		o(m)
	}
	return m
}

// SetCollapseCallback replaces the collapse callback. nil disables it.
func (m *CollisionManager) SetCollapseCallback(fn CollapseFunc) {
	m.onCollapse = fn
}

// WillCauseCollapse reports whether removing p would bring anything down.
func (m *CollisionManager) WillCauseCollapse(p *Piece, all []*Piece) bool {
	return len(m.resolver.Simulate(p, all)) > 0
}

// GetCollapsingPieces previews the cascade of removing p without
// committing it.
func (m *CollisionManager) GetCollapsingPieces(p *Piece, all []*Piece) []*Piece {
	return m.resolver.Simulate(p, all)
}

// HandlePotentialCollapse removes p, resolves the cascade, refreshes the
// risk annotations and reports damage. The callback fires only when the
// cascade is non-empty. Unknown or already removed pieces are ignored.
func (m *CollisionManager) HandlePotentialCollapse(p *Piece, all []*Piece) CollapseResult {
	if p == nil || p.removed || indexOf(p, all) < 0 {
		return CollapseResult{}
	}

	cascade := m.resolver.Resolve(p, all)
	m.UpdateCollapseRisks(all)
	res := CollapseResult{
		Removed:   p,
		Cascade:   cascade,
		Damage:    m.CalculateCollapseDamage(cascade),
		Stability: m.CheckStability(all),
	}

	if m.log != nil {
		m.log.Add(p.ID, CategoryRemoval, "removed", p.Kind.String(), 0)
		for _, c := range cascade {
			m.log.Add(c.ID, CategoryCascade, "fell", "after "+p.ID, 0)
		}
		if len(cascade) > 0 {
			m.log.Add(p.ID, CategoryCascade, "damage", pieceIDs(cascade), float64(res.Damage))
		}
		m.log.Add("--", CategoryStability, "summary", res.Stability.String(), res.Stability.StabilityPercentage)
	}

	if len(cascade) > 0 && m.onCollapse != nil {
		m.onCollapse(res.Damage, cascade)
	}
	return res
}

// CalculateCollapseDamage is len(pieces) times the per-piece damage.
func (m *CollisionManager) CalculateCollapseDamage(pieces []*Piece) int {
	return len(pieces) * m.damagePerPiece
}

// CheckStability counts the active pieces whose annotation is RiskNone.
// It reads annotations as they are; call UpdateCollapseRisks first for
// fresh numbers.
func (m *CollisionManager) CheckStability(all []*Piece) Stability {
	var s Stability
	for _, p := range all {
		if p.removed {
			continue
		}
		s.TotalPieces++
		if p.risk == RiskNone {
			s.StablePieces++
		} else {
			s.UnstablePieces++
		}
	}
	if s.TotalPieces == 0 {
		s.StabilityPercentage = 100
		return s
	}
	scale := math.Pow(10, float64(m.precision))
	pct := 100 * float64(s.StablePieces) / float64(s.TotalPieces)
	s.StabilityPercentage = math.Round(pct*scale) / scale
	return s
}

// UpdateCollapseRisks re-annotates every active piece from the pile as it
// stands now and returns all. Running it twice in a row changes nothing.
func (m *CollisionManager) UpdateCollapseRisks(all []*Piece) []*Piece {
	for _, p := range all {
		if p.removed {
			continue
		}
		p.risk = m.standingRisk(p, all)
	}
	return all
}

// standingRisk grades a piece by the supports it has right now.
func (m *CollisionManager) standingRisk(p *Piece, all []*Piece) Risk {
	if m.geom.IsOnGround(p) {
		return RiskNone
	}
	sup := m.geom.FindSupportingPieces(p, all)
	switch len(sup) {
	case 0:
		return RiskHigh
	case 1:
		if overlapX(p, sup[0]) >= p.W {
			return RiskLow
		}
		return RiskMedium
	default:
		return RiskNone
	}
}

func pieceIDs(pieces []*Piece) string {
	ids := make([]string, len(pieces))
	for i, p := range pieces {
		ids[i] = p.ID
	}
	return strings.Join(ids, ",")
}
