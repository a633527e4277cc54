package smallpath

import (
	"errors"
	"math"

	"github.com/gogpu/smallpath/internal/distfield"
)

// distanceFieldPad is the extra padding, in texels, around a
// distance-field mask representing distance beyond the shape edge.
const distanceFieldPad = distfield.Pad

// ErrDistanceFieldUnsupported is returned by Rasterizer implementations
// that cannot generate a distance field directly from a path. The caller
// falls back to rasterizing coverage and converting it.
var ErrDistanceFieldUnsupported = errors.New("smallpath: direct distance-field generation unsupported")

// ErrEmptyShape is returned when a shape has no area to rasterize.
var ErrEmptyShape = errors.New("smallpath: empty shape bounds")

// Rasterizer produces mask pixels from paths. Implementations are
// supplied by the caller; VectorRasterizer is the default.
type Rasterizer interface {
	// RasterizeCoverage fills the transformed path into a width x height
	// 8-bit coverage buffer, one byte per texel, row-major.
	RasterizeCoverage(path *Path, transform Matrix, width, height int) ([]byte, error)

	// PathToDistanceField generates a width x height distance field
	// directly from the transformed path, using the byte encoding
	// documented in the distfield package. The transform already places
	// the shape inside the padded buffer. Implementations without direct
	// generation return ErrDistanceFieldUnsupported.
	PathToDistanceField(path *Path, transform Matrix, width, height int) ([]byte, error)

	// CoverageToDistanceField converts a width x height coverage buffer
	// to a distance field of size (width+2*pad) x (height+2*pad), where
	// pad is the distance-field pad.
	CoverageToDistanceField(coverage []byte, width, height int) []byte
}

// maskData is a generated mask ready for atlas insertion.
type maskData struct {
	pixels []byte
	width  int
	height int

	// bounds is the shape-space rectangle the mask covers; it becomes
	// the cache entry bounds and the render quad.
	bounds Rect

	// texInset is the inset applied to the stored texel rectangle so
	// that texture coordinates skip the distance-field pad. Zero for
	// bitmap masks.
	texInset int
}

// generateDistanceFieldMask renders a shape's distance field at the
// snapped mip dimension. The raster is padded by the antialias pad, and
// the field extends a further distance-field pad on every side; texture
// coordinates address only the antialias-padded interior.
func generateDistanceFieldMask(rast Rasterizer, shape *Shape, dimension int) (*maskData, error) {
	bounds := shape.Bounds()
	maxDim := math.Max(bounds.Width(), bounds.Height())
	if maxDim <= 0 {
		return nil, ErrEmptyShape
	}
	scale := float64(dimension) / maxDim

	// Scale the bounds to the mip level and strip the integer origin;
	// only the fractional offset is baked into the texels.
	scaled := bounds.Scale(scale)
	dx := math.Floor(scaled.MinX)
	dy := math.Floor(scaled.MinY)

	dev := scaled.Offset(-dx, -dy).RoundOut()
	width := dev.Width() + 2*antiAliasPad
	height := dev.Height() + 2*antiAliasPad
	translateX := float64(antiAliasPad) - dx
	translateY := float64(antiAliasPad) - dy

	drawMatrix := Scale(scale, scale).PostTranslate(translateX, translateY)

	dfWidth := width + 2*distanceFieldPad
	dfHeight := height + 2*distanceFieldPad

	// Prefer direct path-to-field generation; fall back to converting a
	// coverage raster. Both paths produce the same encoding.
	dfMatrix := drawMatrix.PostTranslate(distanceFieldPad, distanceFieldPad)
	pixels, err := rast.PathToDistanceField(shape.Path, dfMatrix, dfWidth, dfHeight)
	if err != nil {
		if !errors.Is(err, ErrDistanceFieldUnsupported) {
			return nil, err
		}
		coverage, cerr := rast.RasterizeCoverage(shape.Path, drawMatrix, width, height)
		if cerr != nil {
			return nil, cerr
		}
		pixels = rast.CoverageToDistanceField(coverage, width, height)
	}

	maskBounds := RectWH(0, 0, float64(width), float64(height)).
		Offset(-translateX, -translateY).
		Scale(1 / scale)

	return &maskData{
		pixels:   pixels,
		width:    dfWidth,
		height:   dfHeight,
		bounds:   maskBounds,
		texInset: distanceFieldPad,
	}, nil
}

// generateBitmapMask rasterizes a shape's coverage mask at the exact
// view transform. Only the fractional part of the transform's
// translation affects texel content; an integer pan reuses the mask.
func generateBitmapMask(rast Rasterizer, shape *Shape, view Matrix) (*maskData, error) {
	bounds := shape.Bounds()
	if bounds.IsEmpty() {
		return nil, ErrEmptyShape
	}

	_, drawMatrix := view.SplitTranslation()

	devBounds := drawMatrix.MapRect(bounds)
	dx := math.Floor(devBounds.MinX)
	dy := math.Floor(devBounds.MinY)

	dev := devBounds.Offset(-dx, -dy).RoundOut()
	width := dev.Width() + 2*antiAliasPad
	height := dev.Height() + 2*antiAliasPad
	translateX := float64(antiAliasPad) - dx
	translateY := float64(antiAliasPad) - dy

	pixels, err := rast.RasterizeCoverage(shape.Path,
		drawMatrix.PostTranslate(translateX, translateY), width, height)
	if err != nil {
		return nil, err
	}

	maskBounds := RectWH(0, 0, float64(width), float64(height)).
		Offset(-translateX, -translateY)

	return &maskData{
		pixels: pixels,
		width:  width,
		height: height,
		bounds: maskBounds,
	}, nil
}
