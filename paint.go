package smallpath

import "math"

// RGBA represents a color with red, green, blue, and alpha components.
// Each component is in the range [0, 1].
type RGBA struct {
	R, G, B, A float64
}

// RGB creates an opaque color from RGB components.
func RGB(r, g, b float64) RGBA {
	return RGBA{R: r, G: g, B: b, A: 1.0}
}

// Packed returns the color as premultiplied 8-bit RGBA packed into a
// uint32 (R in the low byte), the layout the vertex stream uses.
func (c RGBA) Packed() uint32 {
	a := clamp01(c.A)
	r := uint32(math.Round(clamp01(c.R) * a * 255))
	g := uint32(math.Round(clamp01(c.G) * a * 255))
	b := uint32(math.Round(clamp01(c.B) * a * 255))
	ua := uint32(math.Round(a * 255))
	return r | g<<8 | b<<16 | ua<<24
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Paint carries the styling applied to a batch of shapes.
// Masked shapes are drawn with a single flat color per shape.
type Paint struct {
	// Color is the fill color.
	Color RGBA
}

// AntialiasMode selects the antialiasing strategy requested by the caller.
type AntialiasMode int

const (
	// AntialiasNone disables antialiasing.
	AntialiasNone AntialiasMode = iota
	// AntialiasCoverage uses per-pixel fractional coverage. The only
	// mode this renderer accepts.
	AntialiasCoverage
	// AntialiasMSAA uses hardware multisampling.
	AntialiasMSAA
)

// String returns the antialias mode name.
func (m AntialiasMode) String() string {
	switch m {
	case AntialiasNone:
		return "None"
	case AntialiasCoverage:
		return "Coverage"
	case AntialiasMSAA:
		return "MSAA"
	default:
		return "Unknown"
	}
}

// BlendMode selects how a batch is composited over the destination.
type BlendMode int

const (
	// BlendSourceOver is the default alpha blending mode.
	BlendSourceOver BlendMode = iota
	// BlendSourceCopy replaces the destination with the source.
	BlendSourceCopy
	// BlendPlus adds source to destination.
	BlendPlus
)

// DrawSettings carries the pipeline state a batch is drawn with.
// Two batches can only be merged when their settings are compatible.
type DrawSettings struct {
	// Blend is the compositing mode.
	Blend BlendMode

	// StencilRef identifies the user stencil configuration, zero when
	// stenciling is disabled. Opaque to this package; batches with
	// different values never merge.
	StencilRef uint32

	// UsesLocalCoords indicates the consuming shader samples in shape
	// local space, requiring an inverse view matrix at prepare time.
	UsesLocalCoords bool
}

// CompatibleWith reports whether two batches with these settings can be
// drawn by one pipeline configuration.
func (s DrawSettings) CompatibleWith(o DrawSettings) bool {
	return s == o
}
