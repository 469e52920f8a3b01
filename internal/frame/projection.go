package frame

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"diffraction-viewer/pkg/geometry"
)

// ITU-R 601 luma weights, matching the usual L = 0.299R + 0.587G + 0.114B
// grayscale conversion.
const (
	lumaR = 0.299
	lumaG = 0.587
	lumaB = 0.114
)

// Luminance reduces the frame to a single intensity channel. Grayscale
// frames return their only channel directly.
func (f *Frame) Luminance() *mat.Dense {
	if f.IsGray() {
		return f.channels[0]
	}

	rows, cols := f.rows, f.cols
	out := mat.NewDense(rows, cols, nil)
	r := make([]float64, cols)
	g := make([]float64, cols)
	b := make([]float64, cols)
	for y := 0; y < rows; y++ {
		mat.Row(r, y, f.channels[0])
		mat.Row(g, y, f.channels[1])
		mat.Row(b, y, f.channels[2])
		for x := 0; x < cols; x++ {
			out.Set(y, x, lumaR*r[x]+lumaG*g[x]+lumaB*b[x])
		}
	}
	return out
}

// RowSums crops the frame to the selection rectangle and sums pixel
// intensities along each row of the cropped region. Multi-channel frames
// are luminance-converted first. Rectangle corners are truncated toward
// zero and clamped to the image, so an out-of-range selection silently
// shrinks to the valid region; a degenerate selection yields no rows.
func (f *Frame) RowSums(sel geometry.Rect) []float64 {
	bounds := sel.Truncate()
	x0, y0 := bounds.X, bounds.Y
	x1, y1 := bounds.X+bounds.Width, bounds.Y+bounds.Height

	x0 = clampInt(x0, 0, f.cols)
	x1 = clampInt(x1, 0, f.cols)
	y0 = clampInt(y0, 0, f.rows)
	y1 = clampInt(y1, 0, f.rows)
	if x1 <= x0 || y1 <= y0 {
		return nil
	}

	region := f.Luminance().Slice(y0, y1, x0, x1)
	sums := make([]float64, y1-y0)
	row := make([]float64, x1-x0)
	for i := range sums {
		mat.Row(row, i, region)
		sums[i] = floats.Sum(row)
	}
	return sums
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
