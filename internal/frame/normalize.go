package frame

import (
	"image"
	"image/color"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Normalize linearly rescales a matrix to [0,1] using (v-min)/(max-min).
// A constant-valued matrix has no range to stretch; it maps to mid-gray 0.5
// everywhere so the renderer never sees NaN or Inf.
func Normalize(m *mat.Dense) *mat.Dense {
	rows, cols := m.Dims()
	lo, hi := matRange(m)

	out := mat.NewDense(rows, cols, nil)
	if hi == lo {
		scratch := make([]float64, cols)
		for i := range scratch {
			scratch[i] = 0.5
		}
		for y := 0; y < rows; y++ {
			out.SetRow(y, scratch)
		}
		return out
	}

	span := hi - lo
	row := make([]float64, cols)
	for y := 0; y < rows; y++ {
		mat.Row(row, y, m)
		for x, v := range row {
			row[x] = (v - lo) / span
		}
		out.SetRow(y, row)
	}
	return out
}

// matRange returns the minimum and maximum values in a matrix.
func matRange(m *mat.Dense) (float64, float64) {
	rows, cols := m.Dims()
	row := make([]float64, cols)
	mat.Row(row, 0, m)
	lo := floats.Min(row)
	hi := floats.Max(row)
	for y := 1; y < rows; y++ {
		mat.Row(row, y, m)
		if v := floats.Min(row); v < lo {
			lo = v
		}
		if v := floats.Max(row); v > hi {
			hi = v
		}
	}
	return lo, hi
}

// DisplayImage converts a frame to a renderable image. Grayscale frames are
// normalized to full range first; multi-channel frames are shown as-is with
// values clamped to 8 bits.
func DisplayImage(f *Frame) image.Image {
	rows := f.Rows()
	cols := f.Cols()

	if f.IsGray() {
		norm := Normalize(f.Channel(0))
		out := image.NewGray(image.Rect(0, 0, cols, rows))
		row := make([]float64, cols)
		for y := 0; y < rows; y++ {
			mat.Row(row, y, norm)
			for x, v := range row {
				out.SetGray(x, y, color.Gray{Y: uint8(v*255 + 0.5)})
			}
		}
		return out
	}

	out := image.NewRGBA(image.Rect(0, 0, cols, rows))
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			out.SetRGBA(x, y, color.RGBA{
				R: clamp8(f.Channel(0).At(y, x)),
				G: clamp8(f.Channel(1).At(y, x)),
				B: clamp8(f.Channel(2).At(y, x)),
				A: 255,
			})
		}
	}
	return out
}

func clamp8(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v + 0.5)
}
