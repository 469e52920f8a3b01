package geometry

import (
	"testing"
)

func TestRectFromCorners_Normalizes(t *testing.T) {
	cases := []struct {
		a, b Point2D
		want Rect
	}{
		{NewPoint2D(1, 2), NewPoint2D(5, 8), NewRect(1, 2, 4, 6)},
		{NewPoint2D(5, 8), NewPoint2D(1, 2), NewRect(1, 2, 4, 6)},
		{NewPoint2D(5, 2), NewPoint2D(1, 8), NewRect(1, 2, 4, 6)},
		{NewPoint2D(3, 3), NewPoint2D(3, 3), NewRect(3, 3, 0, 0)},
	}
	for _, c := range cases {
		if got := RectFromCorners(c.a, c.b); got != c.want {
			t.Errorf("RectFromCorners(%v, %v) = %v, want %v", c.a, c.b, got, c.want)
		}
	}
}

func TestRect_TruncateTowardZero(t *testing.T) {
	r := NewRect(0.9, 1.9, 2.3, 1.8) // corners (0.9,1.9) and (3.2,3.7)
	got := r.Truncate()
	if got.X != 0 || got.Y != 1 {
		t.Fatalf("origin truncated to (%d,%d), want (0,1)", got.X, got.Y)
	}
	if got.X+got.Width != 3 || got.Y+got.Height != 3 {
		t.Fatalf("far corner truncated to (%d,%d), want (3,3)",
			got.X+got.Width, got.Y+got.Height)
	}
}
