// Package canvas provides an image canvas with pan, zoom, and two-press
// rectangle selection.
package canvas

import (
	"image"

	"fyne.io/fyne/v2"
	fynecanvas "fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
)

const (
	minZoom  = 0.1
	maxZoom  = 10.0
	zoomStep = 1.25
)

// ImageCanvas displays a single image with pan, zoom, and the selection
// gesture overlays.
type ImageCanvas struct {
	widget.BaseWidget

	// Display state
	img    image.Image
	raster *fynecanvas.Raster
	zoom   float64

	// Selection gesture (image coordinates)
	gesture *SelectionGesture

	// Container
	scroll  *zoomScroll
	content *gestureContent
	imgSize fyne.Size

	// Fit to window
	fitToWindow    bool
	lastScrollSize fyne.Size

	onZoomChange func(zoom float64)
}

// zoomScroll wraps a scroll container but intercepts the wheel for zoom.
type zoomScroll struct {
	widget.BaseWidget
	scroll *container.Scroll
	canvas *ImageCanvas
}

func newZoomScroll(content fyne.CanvasObject, canvas *ImageCanvas) *zoomScroll {
	scroll := container.NewScroll(content)
	scroll.Direction = container.ScrollBoth
	zs := &zoomScroll{scroll: scroll, canvas: canvas}
	zs.ExtendBaseWidget(zs)
	return zs
}

func (zs *zoomScroll) Scrolled(ev *fyne.ScrollEvent) {
	if ev.Scrolled.DY > 0 {
		zs.canvas.ZoomIn()
	} else if ev.Scrolled.DY < 0 {
		zs.canvas.ZoomOut()
	}
}

func (zs *zoomScroll) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(zs.scroll)
}

// Offset returns the scroll container's current offset.
func (zs *zoomScroll) Offset() fyne.Position {
	return zs.scroll.Offset
}

// Size returns the scroll container's size.
func (zs *zoomScroll) Size() fyne.Size {
	return zs.scroll.Size()
}

// Refresh refreshes the scroll container.
func (zs *zoomScroll) Refresh() {
	zs.scroll.Refresh()
	zs.BaseWidget.Refresh()
}

// Resize sets the size of the scroll container.
func (zs *zoomScroll) Resize(size fyne.Size) {
	zs.scroll.Resize(size)
	zs.BaseWidget.Resize(size)
}

// gestureContent wraps the raster and feeds mouse events to the selection
// gesture in image coordinates.
type gestureContent struct {
	widget.BaseWidget
	canvas *ImageCanvas
	raster *fynecanvas.Raster
}

var (
	_ desktop.Mouseable = (*gestureContent)(nil)
	_ desktop.Hoverable = (*gestureContent)(nil)
)

func newGestureContent(ic *ImageCanvas, raster *fynecanvas.Raster) *gestureContent {
	gc := &gestureContent{canvas: ic, raster: raster}
	gc.ExtendBaseWidget(gc)
	return gc
}

func (gc *gestureContent) CreateRenderer() fyne.WidgetRenderer {
	return &gestureContentRenderer{content: gc}
}

func (gc *gestureContent) MinSize() fyne.Size {
	return gc.raster.MinSize()
}

// imagePos converts a widget-relative event position to image coordinates.
func (gc *gestureContent) imagePos(pos fyne.Position) (float64, float64) {
	return float64(pos.X) / gc.canvas.zoom, float64(pos.Y) / gc.canvas.zoom
}

func (gc *gestureContent) MouseDown(ev *desktop.MouseEvent) {
	x, y := gc.imagePos(ev.Position)
	gc.canvas.gesture.Press(x, y)
	gc.canvas.Refresh()
}

// MouseUp is forwarded but the gesture keeps release inert.
func (gc *gestureContent) MouseUp(ev *desktop.MouseEvent) {
	x, y := gc.imagePos(ev.Position)
	gc.canvas.gesture.Release(x, y)
}

func (gc *gestureContent) MouseIn(ev *desktop.MouseEvent) {}

func (gc *gestureContent) MouseMoved(ev *desktop.MouseEvent) {
	x, y := gc.imagePos(ev.Position)
	if gc.canvas.gesture.Phase() != PhasePending {
		return
	}
	gc.canvas.gesture.Move(x, y)
	gc.canvas.Refresh()
}

func (gc *gestureContent) MouseOut() {}

type gestureContentRenderer struct {
	content *gestureContent
}

func (r *gestureContentRenderer) Layout(size fyne.Size) {
	r.content.raster.Resize(size)
}

func (r *gestureContentRenderer) MinSize() fyne.Size {
	return r.content.raster.MinSize()
}

func (r *gestureContentRenderer) Refresh() {
	r.content.raster.Refresh()
}

func (r *gestureContentRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.content.raster}
}

func (r *gestureContentRenderer) Destroy() {}

// NewImageCanvas creates a new image canvas.
func NewImageCanvas() *ImageCanvas {
	ic := &ImageCanvas{
		zoom:    1.0,
		imgSize: fyne.NewSize(400, 300),
		gesture: NewSelectionGesture(),
	}

	ic.raster = fynecanvas.NewRaster(ic.draw)
	ic.raster.ScaleMode = fynecanvas.ImageScalePixels
	ic.raster.SetMinSize(ic.imgSize)

	ic.content = newGestureContent(ic, ic.raster)
	ic.scroll = newZoomScroll(ic.content, ic)

	ic.ExtendBaseWidget(ic)
	return ic
}

// Gesture returns the selection gesture state machine.
func (ic *ImageCanvas) Gesture() *SelectionGesture {
	return ic.gesture
}

// Container returns the canvas container for embedding in layouts.
func (ic *ImageCanvas) Container() fyne.CanvasObject {
	return ic.scroll
}

// SetImage replaces the displayed image and resets the selection gesture.
func (ic *ImageCanvas) SetImage(img image.Image) {
	ic.img = img
	ic.gesture.Reset()
	if img != nil {
		b := img.Bounds()
		ic.gesture.SetExtent(float64(b.Dx()), float64(b.Dy()))
	} else {
		ic.gesture.SetExtent(0, 0)
	}
	ic.updateContentSize()
}

// Image returns the displayed image, or nil.
func (ic *ImageCanvas) Image() image.Image {
	return ic.img
}

// SetZoom sets the zoom level.
func (ic *ImageCanvas) SetZoom(zoom float64) {
	if zoom < minZoom {
		zoom = minZoom
	}
	if zoom > maxZoom {
		zoom = maxZoom
	}
	ic.zoom = zoom
	ic.updateContentSize()

	if ic.onZoomChange != nil {
		ic.onZoomChange(zoom)
	}
}

// GetZoom returns the current zoom level.
func (ic *ImageCanvas) GetZoom() float64 {
	return ic.zoom
}

// ZoomIn increases the zoom level.
func (ic *ImageCanvas) ZoomIn() {
	ic.SetZoom(ic.zoom * zoomStep)
}

// ZoomOut decreases the zoom level.
func (ic *ImageCanvas) ZoomOut() {
	ic.SetZoom(ic.zoom / zoomStep)
}

// FitToWindow adjusts zoom to fit the image in the visible area.
func (ic *ImageCanvas) FitToWindow() {
	if ic.img == nil {
		return
	}
	bounds := ic.img.Bounds()
	if bounds.Dx() == 0 || bounds.Dy() == 0 {
		return
	}

	viewSize := ic.scroll.Size()
	if viewSize.Width <= 0 || viewSize.Height <= 0 {
		return
	}

	zoomX := float64(viewSize.Width) / float64(bounds.Dx())
	zoomY := float64(viewSize.Height) / float64(bounds.Dy())

	zoom := zoomX
	if zoomY < zoomX {
		zoom = zoomY
	}

	ic.SetZoom(zoom * 0.95) // Leave a small margin
}

// SetFitToWindow enables or disables auto-fit on resize.
func (ic *ImageCanvas) SetFitToWindow(fit bool) {
	ic.fitToWindow = fit
	if fit {
		ic.FitToWindow()
	}
}

// GetFitToWindow returns the current fit-to-window state.
func (ic *ImageCanvas) GetFitToWindow() bool {
	return ic.fitToWindow
}

// CheckResize checks if the scroll container was resized and auto-fits if
// enabled.
func (ic *ImageCanvas) CheckResize(size fyne.Size) {
	if !ic.fitToWindow {
		return
	}
	if size.Width > 0 && size.Height > 0 && size != ic.lastScrollSize {
		ic.lastScrollSize = size
		ic.FitToWindow()
	}
}

// OnZoomChange sets a callback for zoom changes.
func (ic *ImageCanvas) OnZoomChange(callback func(zoom float64)) {
	ic.onZoomChange = callback
}

// ImageToCanvas converts image coordinates to canvas coordinates.
func (ic *ImageCanvas) ImageToCanvas(imgX, imgY float64) (float64, float64) {
	return imgX * ic.zoom, imgY * ic.zoom
}

// CanvasToImage converts canvas coordinates to image coordinates.
func (ic *ImageCanvas) CanvasToImage(canvasX, canvasY float64) (float64, float64) {
	return canvasX / ic.zoom, canvasY / ic.zoom
}

// Refresh refreshes the canvas display.
func (ic *ImageCanvas) Refresh() {
	ic.raster.Refresh()
}

// updateContentSize updates the content size based on image and zoom.
func (ic *ImageCanvas) updateContentSize() {
	if ic.img == nil {
		ic.imgSize = fyne.NewSize(400, 300)
	} else {
		bounds := ic.img.Bounds()
		width := float32(float64(bounds.Dx()) * ic.zoom)
		height := float32(float64(bounds.Dy()) * ic.zoom)
		ic.imgSize = fyne.NewSize(width, height)
	}

	ic.raster.SetMinSize(ic.imgSize)
	ic.raster.Resize(ic.imgSize)
	if ic.content != nil {
		ic.content.Resize(ic.imgSize)
		ic.content.Refresh()
	}
	ic.raster.Refresh()
	if ic.scroll != nil {
		ic.scroll.Refresh()
	}
}

// draw is the raster drawing function.
func (ic *ImageCanvas) draw(w, h int) image.Image {
	currentSize := fyne.NewSize(float32(w), float32(h))
	if ic.fitToWindow && currentSize != ic.lastScrollSize && w > 0 && h > 0 {
		ic.lastScrollSize = currentSize
		go func() {
			ic.FitToWindow()
		}()
	}

	output := image.NewRGBA(image.Rect(0, 0, w, h))

	// Black background
	for i := 3; i < len(output.Pix); i += 4 {
		output.Pix[i] = 255
	}

	if ic.img != nil {
		ic.blitImage(output, w, h)
	}

	if rect, ok := ic.gesture.Committed(); ok {
		ic.drawCommittedRect(output, rect)
	}
	if rect, ok := ic.gesture.Preview(); ok {
		ic.drawPreviewRect(output, rect)
	}

	return output
}

// blitImage scales the source image onto the output by nearest neighbour,
// honouring the current zoom.
func (ic *ImageCanvas) blitImage(output *image.RGBA, w, h int) {
	src := ic.img
	srcBounds := src.Bounds()

	for y := 0; y < h; y++ {
		srcY := int(float64(y)/ic.zoom) + srcBounds.Min.Y
		if srcY < srcBounds.Min.Y || srcY >= srcBounds.Max.Y {
			continue
		}
		for x := 0; x < w; x++ {
			srcX := int(float64(x)/ic.zoom) + srcBounds.Min.X
			if srcX < srcBounds.Min.X || srcX >= srcBounds.Max.X {
				continue
			}
			output.Set(x, y, src.At(srcX, srcY))
		}
	}
}

// CreateRenderer implements fyne.Widget.
func (ic *ImageCanvas) CreateRenderer() fyne.WidgetRenderer {
	return &imageCanvasRenderer{canvas: ic}
}

type imageCanvasRenderer struct {
	canvas *ImageCanvas
}

func (r *imageCanvasRenderer) Layout(size fyne.Size) {
	if r.canvas.scroll != nil {
		r.canvas.scroll.Resize(size)
	} else if r.canvas.content != nil {
		r.canvas.content.Resize(size)
	}
	r.canvas.CheckResize(size)
}

func (r *imageCanvasRenderer) MinSize() fyne.Size {
	return fyne.NewSize(100, 100)
}

func (r *imageCanvasRenderer) Refresh() {
	r.canvas.raster.Refresh()
}

func (r *imageCanvasRenderer) Objects() []fyne.CanvasObject {
	if r.canvas.scroll != nil {
		return []fyne.CanvasObject{r.canvas.scroll}
	}
	return []fyne.CanvasObject{r.canvas.content}
}

func (r *imageCanvasRenderer) Destroy() {}
