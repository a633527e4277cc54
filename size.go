package smallpath

import "math"

// Mask sizing constants. Dimensions are in texels.
const (
	// idealMinMIP is the smallest distance-field raster size that still
	// preserves shape detail; smaller targets are snapped up to it.
	idealMinMIP = 12

	// maxMIP is the largest raster dimension a single mask may occupy,
	// bounding per-shape atlas memory. Shapes whose device bounds exceed
	// it are rendered as distance fields rather than baked bitmaps.
	maxMIP = 162

	// maxLocalDim is the largest acceptable shape bound in local units.
	maxLocalDim = 73

	// minDeviceSize and maxDeviceSize bound the device-space size of
	// acceptable shapes.
	minDeviceSize = 0.5
	maxDeviceSize = 2 * maxMIP

	// antiAliasPad is the padding, in texels, around a mask for
	// antialiased edge pixels.
	antiAliasPad = 1
)

// useDistanceField decides the mask mode for a shape whose device-space
// bounds are devBounds. Bitmap masks are exact but single-transform;
// anything larger than maxMIP in device space goes to a distance field so
// the atlas is not filled with near-duplicate large bitmaps.
func useDistanceField(devBounds Rect, alwaysDF bool) bool {
	if alwaysDF {
		return true
	}
	return devBounds.Width() > maxMIP || devBounds.Height() > maxMIP
}

// mipScale snaps maxScale to the enclosing power of two (1/2, 1, 2, 4...).
// The returned value always satisfies mipScale >= maxScale, so a mask
// rendered at the snapped scale is never magnified at draw time.
func mipScale(maxScale float64) float64 {
	switch {
	case maxScale <= 0.5:
		log := math.Floor(math.Log2(1 / maxScale))
		return math.Pow(2, -log)
	case maxScale > 1:
		log := math.Ceil(math.Log2(maxScale))
		return math.Pow(2, log)
	default:
		return 1
	}
}

// desiredDimension returns the snapped distance-field raster dimension
// for a shape with the given maximum bound dimension under the given
// maximum view scale. The result is in (0, maxMIP] for positive inputs;
// degenerate inputs yield 0 and the shape cannot be rendered.
//
// Very small shapes are rendered at an enlarged resolution to preserve
// detail, but scaling a distance field down by more than 4x introduces
// artifacts, so the enlargement is capped at 4x the snapped size.
func desiredDimension(maxScale, maxDim float64) int {
	mipSize := mipScale(maxScale) * math.Abs(maxDim)
	if mipSize <= 0 || math.IsNaN(mipSize) {
		return 0
	}

	if mipSize < idealMinMIP {
		newMipSize := mipSize
		for newMipSize < idealMinMIP {
			newMipSize *= 2
		}
		for newMipSize > 4*mipSize {
			newMipSize *= 0.25
		}
		mipSize = newMipSize
	}

	desired := math.Min(mipSize, maxMIP)
	return int(math.Ceil(desired))
}
