package pile

import "testing"

// With the default 600px viewport and 40px floor strip the ground line is 560.

func TestIsOnGround_BottomOnGroundLine(t *testing.T) {
	tp := NewTestPile(
		WithRect("g", 0, 520, 100, 40),
		WithRect("up", 0, 480, 100, 40),
	)
	if !tp.Geometry.IsOnGround(tp.Piece("g")) {
		t.Fatal("piece ending at the ground line should be on the ground")
	}
	if tp.Geometry.IsOnGround(tp.Piece("up")) {
		t.Fatal("piece one row up should not be on the ground")
	}
}

func TestIsOnGround_WithinTolerance(t *testing.T) {
	tp := NewTestPile(WithRect("g", 0, 521.5, 100, 40))
	if !tp.Geometry.IsOnGround(tp.Piece("g")) {
		t.Fatal("1.5px below the ground line is within tolerance")
	}
}

func TestSetViewportHeight_MovesGroundLine(t *testing.T) {
	tp := NewTestPile(WithRect("g", 0, 520, 100, 40))
	g := tp.Piece("g")
	tp.Geometry.SetViewportHeight(700)
	if tp.Geometry.GroundLine() != 660 {
		t.Fatalf("expected ground line 660, got %.1f", tp.Geometry.GroundLine())
	}
	if tp.Geometry.IsOnGround(g) {
		t.Fatal("piece should no longer touch the ground after the viewport grew")
	}
	g.Y = 620
	if !tp.Geometry.IsOnGround(g) {
		t.Fatal("piece moved onto the new ground line should be on the ground")
	}
}

func TestIsPieceSupporting_StackedPieces(t *testing.T) {
	tp := NewTestPile(
		WithRect("low", 0, 520, 100, 40),
		WithRect("high", 0, 480, 100, 40),
	)
	low, high := tp.Piece("low"), tp.Piece("high")
	if !tp.Geometry.IsPieceSupporting(high, low) {
		t.Fatal("lower piece should support the piece resting on it")
	}
	if tp.Geometry.IsPieceSupporting(low, high) {
		t.Fatal("support must not flow upward")
	}
}

func TestIsPieceSupporting_OverlapThreshold(t *testing.T) {
	tp := NewTestPile(
		WithRect("low", 0, 520, 100, 40),
		WithRect("half", 50, 480, 100, 40),
		WithRect("less", 61, 440, 100, 40),
	)
	if !tp.Geometry.IsPieceSupporting(tp.Piece("half"), tp.Piece("low")) {
		t.Fatal("exactly 50% overlap should count as support")
	}
	less := tp.Piece("less")
	less.Y = 480
	if tp.Geometry.IsPieceSupporting(less, tp.Piece("low")) {
		t.Fatal("39% overlap should not count as support")
	}
}

func TestIsPieceSupporting_ThresholdMeasuredOnUpperPiece(t *testing.T) {
	tp := NewTestPile(
		WithRect("narrowLow", 0, 520, 60, 40),
		WithRect("wideHigh", 0, 480, 200, 40),
		WithRect("wideLow", 300, 520, 200, 40),
		WithRect("narrowHigh", 300, 480, 60, 40),
	)
	if tp.Geometry.IsPieceSupporting(tp.Piece("wideHigh"), tp.Piece("narrowLow")) {
		t.Fatal("a narrow piece covering 30% of a wide one should not hold it up")
	}
	if !tp.Geometry.IsPieceSupporting(tp.Piece("narrowHigh"), tp.Piece("wideLow")) {
		t.Fatal("a wide piece should hold up a narrow one fully resting on it")
	}
}

func TestIsPieceSupporting_SameRowNeverSymmetric(t *testing.T) {
	tp := NewTestPile(
		WithRect("a", 0, 480, 100, 40),
		WithRect("b", 60, 480, 100, 40),
		WithCircle("c", 200, 480, 40),
		WithCircle("d", 230, 480, 40),
	)
	pairs := [][2]string{{"a", "b"}, {"c", "d"}, {"b", "c"}}
	for _, pr := range pairs {
		x, y := tp.Piece(pr[0]), tp.Piece(pr[1])
		if tp.Geometry.IsPieceSupporting(x, y) && tp.Geometry.IsPieceSupporting(y, x) {
			t.Fatalf("%s and %s at the same height support each other", pr[0], pr[1])
		}
		if tp.Geometry.IsPieceSupporting(x, y) || tp.Geometry.IsPieceSupporting(y, x) {
			t.Fatalf("%s and %s at the same height should not support each other at all", pr[0], pr[1])
		}
	}
}

func TestIsPieceSupporting_ThinSameRowNeverSymmetric(t *testing.T) {
	// 1px high pieces have their top and bottom within tolerance.
	tp := NewTestPile(
		WithRect("a", 0, 300, 100, 1),
		WithRect("b", 20, 300, 100, 1),
	)
	a, b := tp.Piece("a"), tp.Piece("b")
	if tp.Geometry.IsPieceSupporting(a, b) || tp.Geometry.IsPieceSupporting(b, a) {
		t.Fatal("thin pieces on the same row should not support each other")
	}
}

func TestIsPieceSupporting_ZeroWidthNeedsOverlap(t *testing.T) {
	tp := NewTestPile(
		WithRect("base", 0, 500, 50, 20),
		WithRect("sliver", 700, 480, 0, 20),
		WithRect("onTop", 20, 480, 0, 20),
	)
	if tp.Geometry.IsPieceSupporting(tp.Piece("sliver"), tp.Piece("base")) {
		t.Fatal("a zero-width piece far to the side should not be held up")
	}
	if tp.Geometry.IsPieceSupporting(tp.Piece("onTop"), tp.Piece("base")) {
		t.Fatal("a zero-width piece has no overlap to rest on")
	}
}

func TestIsPieceSupporting_RemovedPieceNeverSupports(t *testing.T) {
	tp := NewTestPile(WithColumn("c", 0, 100, 40, 2))
	tp.Piece("c0").removed = true
	if tp.Geometry.IsPieceSupporting(tp.Piece("c1"), tp.Piece("c0")) {
		t.Fatal("removed piece should never be a support")
	}
}

func TestIsPieceSupporting_LogNestledBetweenLogs(t *testing.T) {
	// Classic log pyramid: the top log sits lower than a full row because
	// it rests in the groove between the two below it.
	tp := NewTestPile(
		WithCircle("left", 0, 520, 40),
		WithCircle("right", 40, 520, 40),
		WithCircle("top", 20, 486, 40),
	)
	top := tp.Piece("top")
	for _, id := range []string{"left", "right"} {
		if !tp.Geometry.IsPieceSupporting(top, tp.Piece(id)) {
			t.Fatalf("log %s should hold up the nestled log", id)
		}
	}
	if tp.Geometry.IsPieceSupporting(tp.Piece("left"), top) {
		t.Fatal("nestled log should not hold up the logs beneath it")
	}
}

func TestIsPieceSupporting_SquareRectIsNotALog(t *testing.T) {
	// Same footprint as the pyramid test, but tagged as rectangles.
	tp := NewTestPile(
		WithRect("left", 0, 520, 40, 40),
		WithRect("right", 40, 520, 40, 40),
		WithRect("top", 20, 486, 40, 40),
	)
	if tp.Geometry.IsPieceSupporting(tp.Piece("top"), tp.Piece("left")) {
		t.Fatal("square rectangles should only use the adjacency rule")
	}
}

func TestFindSupportingPieces_EmptyList(t *testing.T) {
	geom := NewGeometry(600, DefaultTuning())
	p := &Piece{ID: "p", X: 0, Y: 480, W: 100, H: 40}
	if got := geom.FindSupportingPieces(p, nil); len(got) != 0 {
		t.Fatalf("expected no supports from an empty list, got %d", len(got))
	}
}

func TestFindSupportingPieces_ExcludesSelfAndRemoved(t *testing.T) {
	tp := NewTestPile(
		WithRect("l", 0, 520, 100, 40),
		WithRect("r", 100, 520, 100, 40),
		WithRect("top", 60, 480, 80, 40),
	)
	top := tp.Piece("top")
	got := tp.Geometry.FindSupportingPieces(top, tp.All())
	if len(got) != 2 {
		t.Fatalf("expected 2 supports, got %d", len(got))
	}
	for _, s := range got {
		if s == top {
			t.Fatal("a piece must never support itself")
		}
	}
	tp.Piece("l").removed = true
	got = tp.Geometry.FindSupportingPieces(top, tp.All())
	if len(got) != 1 || got[0].ID != "r" {
		t.Fatalf("expected only r after removing l, got %v", pieceIDs(got))
	}
}

func TestPieceContains_CircleUsesRadius(t *testing.T) {
	p := &Piece{ID: "log", X: 0, Y: 0, W: 40, H: 40, Shape: ShapeCircle}
	if !p.Contains(20, 20) {
		t.Fatal("centre of a log should be inside it")
	}
	if p.Contains(2, 2) {
		t.Fatal("bounding-box corner of a log should be outside it")
	}
	p.Shape = ShapeRect
	if !p.Contains(2, 2) {
		t.Fatal("corner of a rectangle should be inside it")
	}
}
