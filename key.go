package smallpath

// MaskMode selects the mask format a shape is cached in.
type MaskMode uint8

const (
	// MaskDistanceField stores a signed distance field, keyed by the
	// snapped raster dimension. DF masks survive rotation and moderate
	// rescaling, so keying by dimension alone maximizes reuse.
	MaskDistanceField MaskMode = iota

	// MaskBitmap stores an 8-bit coverage bitmap baked at one exact
	// transform, including the sub-pixel translation, so the key must
	// carry the full transform.
	MaskBitmap
)

// String returns the mask mode name.
func (m MaskMode) String() string {
	switch m {
	case MaskDistanceField:
		return "DistanceField"
	case MaskBitmap:
		return "Bitmap"
	default:
		return "Unknown"
	}
}

// MaskKey identifies a cached mask. It is a tagged union: the Mode field
// selects which of the remaining fields participate in identity, and the
// constructors zero the inactive fields so that plain == comparison is
// total over both variants. Keys of different modes never compare equal.
type MaskKey struct {
	// Shape is the shape-content identity supplied by the caller.
	Shape uint64

	// Mode is the variant tag.
	Mode MaskMode

	// Dimension is the snapped raster dimension. Distance-field keys only.
	Dimension int

	// Transform is the exact view transform, compared coefficient-wise
	// with no tolerance. Bitmap keys only.
	Transform Matrix
}

// DistanceFieldKey creates a cache key for a distance-field mask.
func DistanceFieldKey(shape uint64, dimension int) MaskKey {
	return MaskKey{
		Shape:     shape,
		Mode:      MaskDistanceField,
		Dimension: dimension,
	}
}

// BitmapKey creates a cache key for a coverage-bitmap mask.
func BitmapKey(shape uint64, transform Matrix) MaskKey {
	return MaskKey{
		Shape:     shape,
		Mode:      MaskBitmap,
		Transform: transform,
	}
}
