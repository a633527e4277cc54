package smallpath

import (
	"image"

	"golang.org/x/image/vector"

	"github.com/gogpu/smallpath/internal/distfield"
)

// VectorRasterizer is the default Rasterizer, built on the scanline
// rasterizer from golang.org/x/image/vector. It has no direct
// distance-field path, so distance-field masks go through the coverage
// fallback.
type VectorRasterizer struct{}

// NewVectorRasterizer returns the default rasterizer.
func NewVectorRasterizer() *VectorRasterizer {
	return &VectorRasterizer{}
}

// RasterizeCoverage fills the transformed path into a width x height
// 8-bit coverage buffer.
func (v *VectorRasterizer) RasterizeCoverage(path *Path, transform Matrix, width, height int) ([]byte, error) {
	r := vector.NewRasterizer(width, height)

	open := false
	for _, elem := range path.Elements() {
		switch e := elem.(type) {
		case MoveTo:
			if open {
				r.ClosePath()
			}
			p := transform.TransformPoint(e.Point)
			r.MoveTo(float32(p.X), float32(p.Y))
			open = true
		case LineTo:
			p := transform.TransformPoint(e.Point)
			r.LineTo(float32(p.X), float32(p.Y))
		case QuadTo:
			c := transform.TransformPoint(e.Control)
			p := transform.TransformPoint(e.Point)
			r.QuadTo(float32(c.X), float32(c.Y), float32(p.X), float32(p.Y))
		case CubicTo:
			c1 := transform.TransformPoint(e.Control1)
			c2 := transform.TransformPoint(e.Control2)
			p := transform.TransformPoint(e.Point)
			r.CubeTo(float32(c1.X), float32(c1.Y), float32(c2.X), float32(c2.Y),
				float32(p.X), float32(p.Y))
		case Close:
			if open {
				r.ClosePath()
				open = false
			}
		}
	}
	if open {
		r.ClosePath()
	}

	dst := image.NewAlpha(image.Rect(0, 0, width, height))
	r.Draw(dst, dst.Bounds(), image.Opaque, image.Point{})
	return dst.Pix, nil
}

// PathToDistanceField reports that direct generation is unsupported; the
// caller converts a coverage raster instead.
func (v *VectorRasterizer) PathToDistanceField(path *Path, transform Matrix, width, height int) ([]byte, error) {
	return nil, ErrDistanceFieldUnsupported
}

// CoverageToDistanceField converts a coverage buffer to a distance field
// padded by the distance-field pad on every side.
func (v *VectorRasterizer) CoverageToDistanceField(coverage []byte, width, height int) []byte {
	return distfield.FromCoverage(coverage, width, height)
}
