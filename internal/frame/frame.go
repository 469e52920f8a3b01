// Package frame provides the in-memory image buffer and the numeric
// operations performed on it: display normalization, luminance conversion,
// and region projection.
package frame

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Source indicates which decoder produced a frame.
type Source int

const (
	SourceUnknown Source = iota
	SourceRaster         // standard raster decoder (png, jpeg)
	SourceScientific     // any-depth scientific decoder (tif, tiff)
)

func (s Source) String() string {
	switch s {
	case SourceRaster:
		return "raster"
	case SourceScientific:
		return "scientific"
	default:
		return "unknown"
	}
}

// Frame is the loaded image buffer. Pixel data is stored as one dense
// float64 matrix per channel, all with identical dimensions. A frame is
// immutable after construction and replaced wholesale on each load.
type Frame struct {
	Path string
	From Source

	channels []*mat.Dense
	rows     int
	cols     int
}

// New creates a frame from per-channel matrices. All channels must share
// the same dimensions and at least one channel is required.
func New(channels []*mat.Dense) (*Frame, error) {
	if len(channels) == 0 {
		return nil, fmt.Errorf("frame needs at least one channel")
	}
	rows, cols := channels[0].Dims()
	if rows == 0 || cols == 0 {
		return nil, fmt.Errorf("frame has empty dimensions %dx%d", rows, cols)
	}
	for i, ch := range channels[1:] {
		r, c := ch.Dims()
		if r != rows || c != cols {
			return nil, fmt.Errorf("channel %d is %dx%d, want %dx%d", i+1, r, c, rows, cols)
		}
	}
	return &Frame{channels: channels, rows: rows, cols: cols}, nil
}

// Rows returns the image height in pixels.
func (f *Frame) Rows() int { return f.rows }

// Cols returns the image width in pixels.
func (f *Frame) Cols() int { return f.cols }

// Channels returns the number of channels.
func (f *Frame) Channels() int { return len(f.channels) }

// Channel returns the matrix for a single channel.
func (f *Frame) Channel(i int) *mat.Dense { return f.channels[i] }

// IsGray reports whether the frame is single-channel.
func (f *Frame) IsGray() bool { return len(f.channels) == 1 }

// Size returns the frame dimensions as width x height.
func (f *Frame) Size() (int, int) { return f.cols, f.rows }
