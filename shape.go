package smallpath

// Style describes how a shape's geometry is interpreted when drawing.
type Style int

const (
	// StyleFill fills the shape interior. The only style this renderer
	// accepts; the caller may pre-apply stroking to obtain a fill.
	StyleFill Style = iota
	// StyleStroke outlines the shape.
	StyleStroke
	// StyleStrokeAndFill both fills and outlines the shape.
	StyleStrokeAndFill
)

// String returns the style name.
func (s Style) String() string {
	switch s {
	case StyleFill:
		return "Fill"
	case StyleStroke:
		return "Stroke"
	case StyleStrokeAndFill:
		return "StrokeAndFill"
	default:
		return "Unknown"
	}
}

// Shape is a drawable vector shape together with the metadata the
// renderer needs to accept and cache it. The identity key and style are
// supplied by the caller; the renderer does not derive them from geometry.
type Shape struct {
	// Path is the shape geometry in local units.
	Path *Path

	// IdentityKey identifies the shape content for cache lookups.
	// Zero means the shape has no stable identity and can never be
	// cached; CanDraw rejects such shapes.
	IdentityKey uint64

	// Style is the shape styling. Only StyleFill is accepted.
	Style Style

	// InverseFilled marks shapes whose exterior is filled.
	// Inverse fills are not supported.
	InverseFilled bool
}

// NewShape creates a filled shape with the given identity key.
func NewShape(path *Path, identityKey uint64) *Shape {
	return &Shape{
		Path:        path,
		IdentityKey: identityKey,
		Style:       StyleFill,
	}
}

// Bounds returns the shape bounds in local units.
func (s *Shape) Bounds() Rect {
	if s.Path == nil {
		return Rect{}
	}
	return s.Path.Bounds()
}

// HasIdentityKey reports whether the shape content has a stable identity
// usable as a cache key.
func (s *Shape) HasIdentityKey() bool {
	return s.IdentityKey != 0
}
