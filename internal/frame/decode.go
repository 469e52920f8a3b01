package frame

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"

	"gocv.io/x/gocv"
	"gonum.org/v1/gonum/mat"

	_ "golang.org/x/image/tiff"
)

// rasterExtensions are decoded with the standard library raster decoders.
// Everything else accepted by the open dialog goes through the any-depth
// scientific decoder, which preserves the full dynamic range of 16- and
// 32-bit detector images.
var rasterExtensions = map[string]bool{
	".png":  true,
	".jpeg": true,
}

// SupportedExtensions returns the file extensions accepted by the open dialog.
func SupportedExtensions() []string {
	return []string{".png", ".jpeg", ".tif", ".tiff"}
}

// DecoderFor returns which decoder handles the given file extension.
func DecoderFor(ext string) Source {
	if rasterExtensions[strings.ToLower(ext)] {
		return SourceRaster
	}
	return SourceScientific
}

// Load reads and decodes the image at path, routing by file extension.
func Load(path string) (*Frame, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read image: %w", err)
	}

	var f *Frame
	switch DecoderFor(filepath.Ext(path)) {
	case SourceRaster:
		f, err = decodeRaster(data)
	default:
		f, err = decodeScientific(data)
		if err != nil {
			// Baseline TIFFs that OpenCV rejects can still decode through
			// the registered x/image/tiff decoder.
			if rf, rerr := decodeRaster(data); rerr == nil {
				f, err = rf, nil
			}
		}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", filepath.Base(path), err)
	}
	f.Path = path
	return f, nil
}

// decodeRaster decodes png/jpeg data via the standard image decoders.
// Grayscale images become a single channel, everything else is reduced to
// three channels with alpha discarded.
func decodeRaster(data []byte) (*Frame, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	bounds := img.Bounds()
	rows := bounds.Dy()
	cols := bounds.Dx()
	if rows == 0 || cols == 0 {
		return nil, fmt.Errorf("decoded image is empty")
	}

	switch src := img.(type) {
	case *image.Gray:
		ch := mat.NewDense(rows, cols, nil)
		for y := 0; y < rows; y++ {
			for x := 0; x < cols; x++ {
				ch.Set(y, x, float64(src.GrayAt(bounds.Min.X+x, bounds.Min.Y+y).Y))
			}
		}
		f, err := New([]*mat.Dense{ch})
		if err != nil {
			return nil, err
		}
		f.From = SourceRaster
		return f, nil

	case *image.Gray16:
		ch := mat.NewDense(rows, cols, nil)
		for y := 0; y < rows; y++ {
			for x := 0; x < cols; x++ {
				ch.Set(y, x, float64(src.Gray16At(bounds.Min.X+x, bounds.Min.Y+y).Y))
			}
		}
		f, err := New([]*mat.Dense{ch})
		if err != nil {
			return nil, err
		}
		f.From = SourceRaster
		return f, nil

	default:
		r := mat.NewDense(rows, cols, nil)
		g := mat.NewDense(rows, cols, nil)
		b := mat.NewDense(rows, cols, nil)
		for y := 0; y < rows; y++ {
			for x := 0; x < cols; x++ {
				pr, pg, pb, _ := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
				r.Set(y, x, float64(pr>>8))
				g.Set(y, x, float64(pg>>8))
				b.Set(y, x, float64(pb>>8))
			}
		}
		f, err := New([]*mat.Dense{r, g, b})
		if err != nil {
			return nil, err
		}
		f.From = SourceRaster
		return f, nil
	}
}

// decodeScientific decodes detector formats through OpenCV with the
// any-depth/any-color flags, so 16-bit and floating-point TIFFs keep their
// native range instead of being squashed to 8 bits.
func decodeScientific(data []byte) (*Frame, error) {
	m, err := gocv.IMDecode(data, gocv.IMReadAnyDepth|gocv.IMReadAnyColor)
	if err != nil {
		return nil, fmt.Errorf("imdecode: %w", err)
	}
	defer m.Close()
	if m.Empty() {
		return nil, fmt.Errorf("imdecode produced an empty matrix")
	}

	rows := m.Rows()
	cols := m.Cols()
	nch := m.Channels()
	if nch != 1 && nch != 3 {
		return nil, fmt.Errorf("unsupported channel count %d", nch)
	}

	wide := gocv.NewMat()
	defer wide.Close()
	m.ConvertTo(&wide, gocv.MatTypeCV64F)

	raw, err := wide.DataPtrFloat64()
	if err != nil {
		return nil, fmt.Errorf("reading matrix data: %w", err)
	}

	channels := make([]*mat.Dense, nch)
	for i := range channels {
		channels[i] = mat.NewDense(rows, cols, nil)
	}
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			base := (y*cols + x) * nch
			if nch == 1 {
				channels[0].Set(y, x, raw[base])
				continue
			}
			// OpenCV stores interleaved BGR; reorder to RGB.
			channels[0].Set(y, x, raw[base+2])
			channels[1].Set(y, x, raw[base+1])
			channels[2].Set(y, x, raw[base])
		}
	}

	f, err := New(channels)
	if err != nil {
		return nil, err
	}
	f.From = SourceScientific
	return f, nil
}
