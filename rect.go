package smallpath

import "math"

// Rect is an axis-aligned rectangle with float64 coordinates.
// A rectangle with MaxX <= MinX or MaxY <= MinY is considered empty.
type Rect struct {
	MinX, MinY, MaxX, MaxY float64
}

// RectWH creates a rectangle from an origin and dimensions.
func RectWH(x, y, w, h float64) Rect {
	return Rect{MinX: x, MinY: y, MaxX: x + w, MaxY: y + h}
}

// Width returns the horizontal extent of the rectangle.
func (r Rect) Width() float64 { return r.MaxX - r.MinX }

// Height returns the vertical extent of the rectangle.
func (r Rect) Height() float64 { return r.MaxY - r.MinY }

// IsEmpty reports whether the rectangle encloses no area.
func (r Rect) IsEmpty() bool {
	return r.MaxX <= r.MinX || r.MaxY <= r.MinY
}

// Offset returns the rectangle translated by (dx, dy).
func (r Rect) Offset(dx, dy float64) Rect {
	return Rect{MinX: r.MinX + dx, MinY: r.MinY + dy, MaxX: r.MaxX + dx, MaxY: r.MaxY + dy}
}

// Scale returns the rectangle with all coordinates multiplied by s.
func (r Rect) Scale(s float64) Rect {
	return Rect{MinX: r.MinX * s, MinY: r.MinY * s, MaxX: r.MaxX * s, MaxY: r.MaxY * s}
}

// Union returns the smallest rectangle containing both r and o.
// If either rectangle is empty, the other is returned.
func (r Rect) Union(o Rect) Rect {
	if r.IsEmpty() {
		return o
	}
	if o.IsEmpty() {
		return r
	}
	return Rect{
		MinX: math.Min(r.MinX, o.MinX),
		MinY: math.Min(r.MinY, o.MinY),
		MaxX: math.Max(r.MaxX, o.MaxX),
		MaxY: math.Max(r.MaxY, o.MaxY),
	}
}

// ExtendPoint returns the smallest rectangle containing r and p.
// The accumulator r must already contain at least one point; callers
// seed it from their first point, so a degenerate single-point r is a
// valid input and is not treated as empty.
func (r Rect) ExtendPoint(p Point) Rect {
	return Rect{
		MinX: math.Min(r.MinX, p.X),
		MinY: math.Min(r.MinY, p.Y),
		MaxX: math.Max(r.MaxX, p.X),
		MaxY: math.Max(r.MaxY, p.Y),
	}
}

// RoundOut returns the smallest integer rectangle containing r.
func (r Rect) RoundOut() IRect {
	return IRect{
		MinX: int(math.Floor(r.MinX)),
		MinY: int(math.Floor(r.MinY)),
		MaxX: int(math.Ceil(r.MaxX)),
		MaxY: int(math.Ceil(r.MaxY)),
	}
}

// IRect is an axis-aligned rectangle with integer coordinates.
type IRect struct {
	MinX, MinY, MaxX, MaxY int
}

// IRectWH creates an integer rectangle from an origin and dimensions.
func IRectWH(x, y, w, h int) IRect {
	return IRect{MinX: x, MinY: y, MaxX: x + w, MaxY: y + h}
}

// Width returns the horizontal extent of the rectangle.
func (r IRect) Width() int { return r.MaxX - r.MinX }

// Height returns the vertical extent of the rectangle.
func (r IRect) Height() int { return r.MaxY - r.MinY }

// Rect converts the rectangle to float64 coordinates.
func (r IRect) Rect() Rect {
	return Rect{
		MinX: float64(r.MinX), MinY: float64(r.MinY),
		MaxX: float64(r.MaxX), MaxY: float64(r.MaxY),
	}
}
