package canvas

import (
	"diffraction-viewer/pkg/geometry"
)

// GesturePhase is the state of the two-press selection gesture.
type GesturePhase int

const (
	PhaseIdle    GesturePhase = iota // no gesture in progress
	PhasePending                     // first corner recorded, awaiting second press
)

// SelectionGesture implements the rectangle selection state machine in image
// coordinates, independent of the widget toolkit. The first press records a
// corner and discards any previously committed rectangle; motion while
// pending updates a transient preview; the second press commits the
// normalized rectangle. Events outside the image extent are ignored in every
// phase, and release is deliberately inert.
type SelectionGesture struct {
	phase  GesturePhase
	extent geometry.Size
	start  geometry.Point2D

	preview   *geometry.Rect
	committed *geometry.Rect

	onBegin   func(start geometry.Point2D)
	onPreview func(start, current geometry.Point2D, r geometry.Rect)
	onCommit  func(r geometry.Rect)
}

// NewSelectionGesture creates an idle gesture with no extent. Until
// SetExtent is called every event falls outside the image and is ignored.
func NewSelectionGesture() *SelectionGesture {
	return &SelectionGesture{}
}

// SetExtent sets the image extent in image coordinates. Called on each load.
func (g *SelectionGesture) SetExtent(width, height float64) {
	g.extent = geometry.NewSize(width, height)
}

// OnBegin sets the callback for the first press of a gesture.
func (g *SelectionGesture) OnBegin(cb func(start geometry.Point2D)) { g.onBegin = cb }

// OnPreview sets the callback for preview updates during motion. It
// receives the gesture's start point, the current cursor position, and the
// normalized preview rectangle.
func (g *SelectionGesture) OnPreview(cb func(start, current geometry.Point2D, r geometry.Rect)) {
	g.onPreview = cb
}

// OnCommit sets the callback for the committing press.
func (g *SelectionGesture) OnCommit(cb func(r geometry.Rect)) { g.onCommit = cb }

func (g *SelectionGesture) inExtent(x, y float64) bool {
	return x >= 0 && x < g.extent.Width && y >= 0 && y < g.extent.Height
}

// Press feeds a mouse press at image coordinates into the state machine.
func (g *SelectionGesture) Press(x, y float64) {
	if !g.inExtent(x, y) {
		return
	}

	if g.phase == PhaseIdle {
		g.phase = PhasePending
		g.start = geometry.NewPoint2D(x, y)
		g.preview = nil
		g.committed = nil
		if g.onBegin != nil {
			g.onBegin(g.start)
		}
		return
	}

	rect := geometry.RectFromCorners(g.start, geometry.NewPoint2D(x, y))
	g.committed = &rect
	g.preview = nil
	g.phase = PhaseIdle
	if g.onCommit != nil {
		g.onCommit(rect)
	}
}

// Move feeds a mouse motion event into the state machine. Motion only
// matters while a gesture is pending.
func (g *SelectionGesture) Move(x, y float64) {
	if g.phase != PhasePending || !g.inExtent(x, y) {
		return
	}

	current := geometry.NewPoint2D(x, y)
	rect := geometry.RectFromCorners(g.start, current)
	g.preview = &rect
	if g.onPreview != nil {
		g.onPreview(g.start, current, rect)
	}
}

// Release is intentionally a no-op, kept for parity with press and motion.
func (g *SelectionGesture) Release(x, y float64) {}

// Reset discards all gesture state, pending and committed.
func (g *SelectionGesture) Reset() {
	g.phase = PhaseIdle
	g.preview = nil
	g.committed = nil
}

// Phase returns the current gesture phase.
func (g *SelectionGesture) Phase() GesturePhase { return g.phase }

// Preview returns the transient preview rectangle, if a gesture is pending.
func (g *SelectionGesture) Preview() (geometry.Rect, bool) {
	if g.preview == nil {
		return geometry.Rect{}, false
	}
	return *g.preview, true
}

// Committed returns the committed rectangle, if one exists.
func (g *SelectionGesture) Committed() (geometry.Rect, bool) {
	if g.committed == nil {
		return geometry.Rect{}, false
	}
	return *g.committed, true
}
