package dialogs

import (
	"testing"

	"github.com/rs/zerolog"
)

func TestRenderProjectionChart_KnownSeries(t *testing.T) {
	img := renderProjectionChart(zerolog.Nop(), []float64{22, 38, 30, 41})
	b := img.Bounds()
	if b.Dx() != chartWidth || b.Dy() != chartHeight {
		t.Fatalf("chart is %dx%d, want %dx%d", b.Dx(), b.Dy(), chartWidth, chartHeight)
	}
}

func TestRenderProjectionChart_DegenerateInput(t *testing.T) {
	// A single point has no renderable range; the presenter must still
	// produce an image rather than fail.
	for _, sums := range [][]float64{nil, {}, {5}} {
		img := renderProjectionChart(zerolog.Nop(), sums)
		if img == nil {
			t.Fatalf("no image for %v", sums)
		}
		b := img.Bounds()
		if b.Dx() != chartWidth || b.Dy() != chartHeight {
			t.Fatalf("fallback chart is %dx%d", b.Dx(), b.Dy())
		}
	}
}
