package canvas

import (
	"testing"

	"diffraction-viewer/pkg/geometry"
)

func newTestGesture() *SelectionGesture {
	g := NewSelectionGesture()
	g.SetExtent(100, 80)
	return g
}

func TestGesture_TwoPressesCommitOneRect(t *testing.T) {
	g := newTestGesture()

	g.Press(10, 20)
	if g.Phase() != PhasePending {
		t.Fatalf("after first press phase = %v, want pending", g.Phase())
	}
	if _, ok := g.Committed(); ok {
		t.Fatal("no rectangle should be committed while pending")
	}

	g.Press(50, 60)
	if g.Phase() != PhaseIdle {
		t.Fatalf("after second press phase = %v, want idle", g.Phase())
	}
	rect, ok := g.Committed()
	if !ok {
		t.Fatal("second press must commit a rectangle")
	}
	want := geometry.NewRect(10, 20, 40, 40)
	if rect != want {
		t.Fatalf("committed %v, want %v", rect, want)
	}
	if _, ok := g.Preview(); ok {
		t.Fatal("preview must be discarded on commit")
	}
}

func TestGesture_CornersNormalized(t *testing.T) {
	g := newTestGesture()

	// Drag up-left: second corner above and left of the first.
	g.Press(50, 60)
	g.Press(10, 20)

	rect, ok := g.Committed()
	if !ok {
		t.Fatal("expected committed rectangle")
	}
	if rect.X != 10 || rect.Y != 20 || rect.Width != 40 || rect.Height != 40 {
		t.Fatalf("rectangle not normalized: %v", rect)
	}
}

func TestGesture_OutOfBoundsPressIgnored(t *testing.T) {
	g := newTestGesture()

	g.Press(-1, 10)
	g.Press(10, -1)
	g.Press(100, 10)
	g.Press(10, 80)
	if g.Phase() != PhaseIdle {
		t.Fatal("out-of-bounds press must not start a gesture")
	}

	g.Press(10, 10)
	g.Press(200, 200)
	if g.Phase() != PhasePending {
		t.Fatal("out-of-bounds press must not commit a pending gesture")
	}
	if _, ok := g.Committed(); ok {
		t.Fatal("out-of-bounds press committed a rectangle")
	}
}

func TestGesture_MotionUpdatesPreviewOnlyWhilePending(t *testing.T) {
	g := newTestGesture()

	g.Move(30, 30)
	if _, ok := g.Preview(); ok {
		t.Fatal("motion while idle must not create a preview")
	}

	g.Press(10, 10)
	g.Move(30, 40)
	rect, ok := g.Preview()
	if !ok {
		t.Fatal("motion while pending must update the preview")
	}
	if rect != geometry.NewRect(10, 10, 20, 30) {
		t.Fatalf("preview = %v", rect)
	}

	// Preview follows the cursor.
	g.Move(15, 12)
	rect, _ = g.Preview()
	if rect != geometry.NewRect(10, 10, 5, 2) {
		t.Fatalf("preview did not follow motion: %v", rect)
	}

	// Out-of-bounds motion is ignored, preview unchanged.
	g.Move(-5, 500)
	if got, _ := g.Preview(); got != rect {
		t.Fatalf("out-of-bounds motion changed preview to %v", got)
	}
}

func TestGesture_NewPressDiscardsCommitted(t *testing.T) {
	g := newTestGesture()

	g.Press(10, 10)
	g.Press(20, 20)
	if _, ok := g.Committed(); !ok {
		t.Fatal("expected committed rectangle")
	}

	g.Press(30, 30)
	if _, ok := g.Committed(); ok {
		t.Fatal("starting a new gesture must discard the committed rectangle")
	}
	if g.Phase() != PhasePending {
		t.Fatalf("phase = %v, want pending", g.Phase())
	}
}

func TestGesture_ReleaseIsInert(t *testing.T) {
	g := newTestGesture()

	g.Press(10, 10)
	g.Release(50, 50)
	if g.Phase() != PhasePending {
		t.Fatal("release must not change gesture state")
	}
	if _, ok := g.Committed(); ok {
		t.Fatal("release must not commit")
	}

	g.Press(20, 20)
	g.Release(5, 5)
	if _, ok := g.Committed(); !ok {
		t.Fatal("committed rectangle lost after release")
	}
}

func TestGesture_ResetClearsEverything(t *testing.T) {
	g := newTestGesture()

	g.Press(10, 10)
	g.Move(20, 20)
	g.Press(30, 30)
	g.Reset()

	if g.Phase() != PhaseIdle {
		t.Fatal("reset must return to idle")
	}
	if _, ok := g.Committed(); ok {
		t.Fatal("reset must clear the committed rectangle")
	}
	if _, ok := g.Preview(); ok {
		t.Fatal("reset must clear the preview")
	}
}

func TestGesture_Callbacks(t *testing.T) {
	g := newTestGesture()

	var begins []geometry.Point2D
	var previews, commits []geometry.Rect
	g.OnBegin(func(p geometry.Point2D) { begins = append(begins, p) })
	g.OnPreview(func(start, current geometry.Point2D, r geometry.Rect) {
		if start != begins[0] {
			t.Fatalf("preview start %v, want %v", start, begins[0])
		}
		previews = append(previews, r)
	})
	g.OnCommit(func(r geometry.Rect) { commits = append(commits, r) })

	g.Press(1, 2)
	g.Move(5, 6)
	g.Move(7, 8)
	g.Press(9, 10)

	if len(begins) != 1 || begins[0] != geometry.NewPoint2D(1, 2) {
		t.Fatalf("begin callbacks: %v", begins)
	}
	if len(previews) != 2 {
		t.Fatalf("expected 2 preview callbacks, got %d", len(previews))
	}
	if len(commits) != 1 || commits[0] != geometry.NewRect(1, 2, 8, 8) {
		t.Fatalf("commit callbacks: %v", commits)
	}
}

func TestGesture_NoExtentIgnoresEverything(t *testing.T) {
	g := NewSelectionGesture()

	g.Press(0, 0)
	g.Move(1, 1)
	if g.Phase() != PhaseIdle {
		t.Fatal("gesture without extent must ignore events")
	}
}
