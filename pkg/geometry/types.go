// Package geometry provides basic geometric types used throughout the application.
package geometry

import (
	"math"
)

// Point2D represents a 2D point with floating-point coordinates.
type Point2D struct {
	X float64
	Y float64
}

// NewPoint2D creates a new Point2D.
func NewPoint2D(x, y float64) Point2D {
	return Point2D{X: x, Y: y}
}

// Distance returns the Euclidean distance to another point.
func (p Point2D) Distance(other Point2D) float64 {
	dx := p.X - other.X
	dy := p.Y - other.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// PointInt represents a 2D point with integer coordinates.
type PointInt struct {
	X int
	Y int
}

// ToFloat converts to Point2D.
func (p PointInt) ToFloat() Point2D {
	return Point2D{X: float64(p.X), Y: float64(p.Y)}
}

// Rect represents a rectangle with floating-point coordinates.
type Rect struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// NewRect creates a new Rect.
func NewRect(x, y, width, height float64) Rect {
	return Rect{X: x, Y: y, Width: width, Height: height}
}

// RectFromCorners builds a normalized rectangle from two opposite corner
// points. The corners may be given in any order; the result always has
// non-negative width and height.
func RectFromCorners(a, b Point2D) Rect {
	x0 := math.Min(a.X, b.X)
	y0 := math.Min(a.Y, b.Y)
	x1 := math.Max(a.X, b.X)
	y1 := math.Max(a.Y, b.Y)
	return Rect{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}

// Contains returns true if the point is inside the rectangle.
func (r Rect) Contains(p Point2D) bool {
	return p.X >= r.X && p.X <= r.X+r.Width &&
		p.Y >= r.Y && p.Y <= r.Y+r.Height
}

// Corners returns the top-left and bottom-right corners.
func (r Rect) Corners() (Point2D, Point2D) {
	return Point2D{X: r.X, Y: r.Y}, Point2D{X: r.X + r.Width, Y: r.Y + r.Height}
}

// Truncate converts the rectangle corners to integer coordinates,
// truncating toward zero.
func (r Rect) Truncate() RectInt {
	x0 := int(r.X)
	y0 := int(r.Y)
	x1 := int(r.X + r.Width)
	y1 := int(r.Y + r.Height)
	return RectInt{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}

// RectInt represents a rectangle with integer coordinates.
type RectInt struct {
	X      int
	Y      int
	Width  int
	Height int
}

// ToFloat converts to Rect.
func (r RectInt) ToFloat() Rect {
	return Rect{X: float64(r.X), Y: float64(r.Y), Width: float64(r.Width), Height: float64(r.Height)}
}

// Size represents a 2D size.
type Size struct {
	Width  float64
	Height float64
}

// NewSize creates a new Size.
func NewSize(width, height float64) Size {
	return Size{Width: width, Height: height}
}
