// Package geom provides the 2D geometry primitives used by the scene model
// and the export engine. All coordinates are in scene units (pixels at 1x).
package geom

import "math"

// Rect is an axis-aligned rectangle described by its top-left corner and size.
type Rect struct {
	Left   float64
	Top    float64
	Width  float64
	Height float64
}

// Right returns the x coordinate of the right edge.
func (r Rect) Right() float64 { return r.Left + r.Width }

// Bottom returns the y coordinate of the bottom edge.
func (r Rect) Bottom() float64 { return r.Top + r.Height }

// CenterX returns the horizontal center of the rectangle.
func (r Rect) CenterX() float64 { return r.Left + r.Width/2 }

// CenterY returns the vertical center of the rectangle.
func (r Rect) CenterY() float64 { return r.Top + r.Height/2 }

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool { return r.Width <= 0 || r.Height <= 0 }

// Union returns the smallest rectangle containing both r and other.
func (r Rect) Union(other Rect) Rect {
	left := math.Min(r.Left, other.Left)
	top := math.Min(r.Top, other.Top)
	right := math.Max(r.Right(), other.Right())
	bottom := math.Max(r.Bottom(), other.Bottom())
	return Rect{Left: left, Top: top, Width: right - left, Height: bottom - top}
}

// FromCenter builds a rectangle of the given size centered on (cx, cy).
func FromCenter(cx, cy, w, h float64) Rect {
	return Rect{Left: cx - w/2, Top: cy - h/2, Width: w, Height: h}
}

// RotatedAABB returns the axis-aligned bounding box of a w×h box centered on
// (cx, cy) and rotated by deg degrees around its center.
func RotatedAABB(cx, cy, w, h, deg float64) Rect {
	if deg == 0 {
		return FromCenter(cx, cy, w, h)
	}
	rad := deg * math.Pi / 180
	cos := math.Abs(math.Cos(rad))
	sin := math.Abs(math.Sin(rad))
	rw := w*cos + h*sin
	rh := w*sin + h*cos
	return FromCenter(cx, cy, rw, rh)
}
