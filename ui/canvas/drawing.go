package canvas

import (
	"image"
	"image/color"

	"diffraction-viewer/pkg/geometry"
)

// Selection outlines are red, matching the red rubber-band rectangle
// convention for region-of-interest tools.
var selectionColor = color.RGBA{R: 229, G: 57, B: 53, A: 255}

// canvasRect converts an image-space rectangle to canvas pixel corners.
func (ic *ImageCanvas) canvasRect(rect geometry.Rect) (int, int, int, int) {
	x1, y1 := ic.ImageToCanvas(rect.X, rect.Y)
	x2, y2 := ic.ImageToCanvas(rect.X+rect.Width, rect.Y+rect.Height)
	return int(x1), int(y1), int(x2), int(y2)
}

// drawCommittedRect draws the committed selection as a solid outline,
// two pixels thick.
func (ic *ImageCanvas) drawCommittedRect(output *image.RGBA, rect geometry.Rect) {
	x1, y1, x2, y2 := ic.canvasRect(rect)
	for t := 0; t < 2; t++ {
		drawRectOutline(output, x1+t, y1+t, x2-t, y2-t, selectionColor)
	}
}

// drawPreviewRect draws the transient preview as a dashed outline.
func (ic *ImageCanvas) drawPreviewRect(output *image.RGBA, rect geometry.Rect) {
	x1, y1, x2, y2 := ic.canvasRect(rect)
	bounds := output.Bounds()

	// Dashed edges: alternate pixels in groups of two.
	for x := x1; x <= x2; x++ {
		if (x+y1)%4 < 2 {
			setClipped(output, bounds, x, y1)
		}
		if (x+y2)%4 < 2 {
			setClipped(output, bounds, x, y2)
		}
	}
	for y := y1; y <= y2; y++ {
		if (x1+y)%4 < 2 {
			setClipped(output, bounds, x1, y)
		}
		if (x2+y)%4 < 2 {
			setClipped(output, bounds, x2, y)
		}
	}
}

// drawRectOutline draws a one-pixel rectangle outline clipped to the output.
func drawRectOutline(output *image.RGBA, x1, y1, x2, y2 int, col color.RGBA) {
	bounds := output.Bounds()
	for x := x1; x <= x2; x++ {
		setClippedColor(output, bounds, x, y1, col)
		setClippedColor(output, bounds, x, y2, col)
	}
	for y := y1; y <= y2; y++ {
		setClippedColor(output, bounds, x1, y, col)
		setClippedColor(output, bounds, x2, y, col)
	}
}

func setClipped(output *image.RGBA, bounds image.Rectangle, x, y int) {
	setClippedColor(output, bounds, x, y, selectionColor)
}

func setClippedColor(output *image.RGBA, bounds image.Rectangle, x, y int, col color.RGBA) {
	if x < bounds.Min.X || x >= bounds.Max.X || y < bounds.Min.Y || y >= bounds.Max.Y {
		return
	}
	output.SetRGBA(x, y, col)
}
