package pile

import "testing"

func riskOf(affected []Affected, id string) (Risk, bool) {
	for _, a := range affected {
		if a.Piece.ID == id {
			return a.Risk, true
		}
	}
	return RiskNone, false
}

// dualSupport is two touching ground pieces sharing one piece above them,
// with a cap resting on that piece.
func dualSupport(extra ...PileOption) *TestPile {
	opts := []PileOption{
		WithRect("l", 0, 520, 100, 40),
		WithRect("r", 100, 520, 100, 40),
		WithRect("top", 60, 480, 80, 40),
	}
	return NewTestPile(append(opts, extra...)...)
}

func TestPredict_IsolatedPiece(t *testing.T) {
	tp := NewTestPile(WithRect("solo", 0, 520, 100, 40))
	if got := tp.Predictor.CalculateAffectedPieces(tp.Piece("solo"), tp.All()); len(got) != 0 {
		t.Fatalf("expected no affected pieces, got %d", len(got))
	}
}

func TestPredict_EmptyPile(t *testing.T) {
	tp := NewTestPile()
	hover := &Piece{ID: "ghost", X: 0, Y: 520, W: 100, H: 40}
	if got := tp.Predictor.CalculateAffectedPieces(hover, nil); len(got) != 0 {
		t.Fatalf("expected empty result for empty pile, got %d", len(got))
	}
}

func TestPredict_ColumnCascadesTransitively(t *testing.T) {
	tp := NewTestPile(WithColumn("c", 100, 80, 40, 4))
	got := tp.Predictor.CalculateAffectedPieces(tp.Piece("c0"), tp.All())
	if len(got) != 3 {
		t.Fatalf("expected 3 affected pieces, got %d", len(got))
	}
	for _, id := range []string{"c1", "c2", "c3"} {
		r, ok := riskOf(got, id)
		if !ok || r != RiskWillCollapse {
			t.Fatalf("expected %s to be will_collapse, got %v (present=%v)", id, r, ok)
		}
	}
}

func TestPredict_HoveredPieceNeverInItsOwnList(t *testing.T) {
	tp := NewTestPile(WithColumn("c", 100, 80, 40, 3))
	hover := tp.Piece("c1")
	for _, a := range tp.Predictor.CalculateAffectedPieces(hover, tp.All()) {
		if a.Piece == hover {
			t.Fatal("hovered piece listed as affected by its own removal")
		}
	}
}

func TestPredict_DualSupportIsHighRisk(t *testing.T) {
	tp := dualSupport()
	for _, id := range []string{"l", "r"} {
		got := tp.Predictor.CalculateAffectedPieces(tp.Piece(id), tp.All())
		r, ok := riskOf(got, "top")
		if !ok || r != RiskHigh {
			t.Fatalf("removing %s: expected top high risk, got %v (present=%v)", id, r, ok)
		}
	}
}

func TestPredict_ThreeSupportsIsMediumRisk(t *testing.T) {
	tuning := DefaultTuning()
	tuning.MinOverlapFraction = 0.3
	tp := NewTestPile(
		WithTuning(tuning),
		WithRect("a", 0, 520, 30, 40),
		WithRect("b", 30, 520, 30, 40),
		WithRect("c", 60, 520, 30, 40),
		WithRect("top", 0, 480, 90, 40),
	)
	got := tp.Predictor.CalculateAffectedPieces(tp.Piece("b"), tp.All())
	r, ok := riskOf(got, "top")
	if !ok || r != RiskMedium {
		t.Fatalf("expected top medium risk with two supports left, got %v (present=%v)", r, ok)
	}
}

func TestPredict_LowRiskAboveShakenPiece(t *testing.T) {
	tp := dualSupport(WithRect("cap", 60, 440, 80, 40))
	got := tp.Predictor.CalculateAffectedPieces(tp.Piece("l"), tp.All())
	r, ok := riskOf(got, "cap")
	if !ok || r != RiskLow {
		t.Fatalf("expected cap low risk, got %v (present=%v)", r, ok)
	}
}

func TestPredict_GroundPiecesNeverWillCollapse(t *testing.T) {
	tp := dualSupport(WithRect("cap", 60, 440, 80, 40))
	for _, hover := range tp.All() {
		for _, a := range tp.Predictor.CalculateAffectedPieces(hover, tp.All()) {
			if tp.Geometry.IsOnGround(a.Piece) && a.Risk == RiskWillCollapse {
				t.Fatalf("ground piece %s predicted to collapse when hovering %s", a.Piece.ID, hover.ID)
			}
		}
	}
}

func TestPredict_TopPieceAffectsNothing(t *testing.T) {
	tp := NewTestPile(WithColumn("c", 100, 80, 40, 3))
	if got := tp.Predictor.CalculateAffectedPieces(tp.Piece("c2"), tp.All()); len(got) != 0 {
		t.Fatalf("removing the top of a column should affect nothing, got %d", len(got))
	}
}

func TestPredict_RemovedOrForeignHoverIsNoOp(t *testing.T) {
	tp := NewTestPile(WithColumn("c", 100, 80, 40, 3))
	foreign := &Piece{ID: "c0", X: 100, Y: 520, W: 80, H: 40}
	if got := tp.Predictor.CalculateAffectedPieces(foreign, tp.All()); len(got) != 0 {
		t.Fatal("piece outside the collection should have no effect")
	}
	tp.Remove("c2")
	if got := tp.Predictor.CalculateAffectedPieces(tp.Piece("c2"), tp.All()); len(got) != 0 {
		t.Fatal("removed piece should have no effect")
	}
}

func TestPredict_DoesNotMutate(t *testing.T) {
	tp := dualSupport(WithColumn("c", 300, 80, 40, 3))
	before := make(map[string]Risk)
	for _, p := range tp.All() {
		before[p.ID] = p.Risk()
	}
	for _, hover := range tp.All() {
		tp.Predictor.CalculateAffectedPieces(hover, tp.All())
	}
	for _, p := range tp.All() {
		if p.Removed() {
			t.Fatalf("prediction removed %s", p.ID)
		}
		if p.Risk() != before[p.ID] {
			t.Fatalf("prediction changed the annotation of %s", p.ID)
		}
	}
}

func TestPredict_PropagationUpgradesSharedPiece(t *testing.T) {
	// "top" rests on column piece c1 and on ground piece g. Removing c0
	// takes c1 down, which leaves top with only g.
	tp := NewTestPile(
		WithColumn("c", 0, 100, 40, 2),
		WithRect("g", 100, 480, 100, 80),
		WithRect("top", 60, 440, 80, 40),
	)
	got := tp.Predictor.CalculateAffectedPieces(tp.Piece("c0"), tp.All())
	if r, _ := riskOf(got, "c1"); r != RiskWillCollapse {
		t.Fatalf("expected c1 will_collapse, got %v", r)
	}
	if r, _ := riskOf(got, "top"); r != RiskHigh {
		t.Fatalf("expected top high risk after c1 falls, got %v", r)
	}
}

func TestPredict_MatchesAuthoritativeCascade(t *testing.T) {
	for seed := int64(1); seed <= 5; seed++ {
		store, geom, err := Generate(GenerateConfig{Width: 1200, Height: 700, Rows: 7, Seed: seed})
		if err != nil {
			t.Fatalf("seed %d: %v", seed, err)
		}
		pr := NewPredictor(geom)
		res := NewResolver(geom)
		for _, hover := range store.Pieces() {
			predicted := map[string]bool{}
			for _, a := range pr.CalculateAffectedPieces(hover, store.Pieces()) {
				if a.Risk == RiskWillCollapse {
					predicted[a.Piece.ID] = true
				}
			}
			fallen := res.Simulate(hover, store.Pieces())
			if len(fallen) != len(predicted) {
				t.Fatalf("seed %d hover %s: predicted %d falls, cascade has %d", seed, hover.ID, len(predicted), len(fallen))
			}
			for _, p := range fallen {
				if !predicted[p.ID] {
					t.Fatalf("seed %d hover %s: %s falls but was not predicted", seed, hover.ID, p.ID)
				}
			}
		}
	}
}
