package smallpath

import "math"

// Matrix represents a 2D transformation matrix in row-major order:
//
//	| A  B  C |
//	| D  E  F |
//	| P0 P1 1 |
//
// This represents the transformation:
//
//	x' = A*x + B*y + C
//	y' = D*x + E*y + F
//
// P0 and P1 are perspective terms; affine transforms have P0 = P1 = 0.
// The renderer never draws through a perspective transform, but the terms
// are carried so that CanDraw can reject such transforms.
//
// Matrix is comparable; bitmap-mode cache keys rely on tolerance-free
// equality of its coefficients.
type Matrix struct {
	A, B, C float64
	D, E, F float64
	P0, P1  float64
}

// Identity returns the identity transformation matrix.
func Identity() Matrix {
	return Matrix{
		A: 1, B: 0, C: 0,
		D: 0, E: 1, F: 0,
	}
}

// Translate creates a translation matrix.
func Translate(x, y float64) Matrix {
	return Matrix{
		A: 1, B: 0, C: x,
		D: 0, E: 1, F: y,
	}
}

// Scale creates a scaling matrix.
func Scale(x, y float64) Matrix {
	return Matrix{
		A: x, B: 0, C: 0,
		D: 0, E: y, F: 0,
	}
}

// Rotate creates a rotation matrix (angle in radians).
func Rotate(angle float64) Matrix {
	cos := math.Cos(angle)
	sin := math.Sin(angle)
	return Matrix{
		A: cos, B: -sin, C: 0,
		D: sin, E: cos, F: 0,
	}
}

// Multiply multiplies two affine matrices (m * other).
// Perspective terms of both operands are ignored.
func (m Matrix) Multiply(other Matrix) Matrix {
	return Matrix{
		A: m.A*other.A + m.B*other.D,
		B: m.A*other.B + m.B*other.E,
		C: m.A*other.C + m.B*other.F + m.C,
		D: m.D*other.A + m.E*other.D,
		E: m.D*other.B + m.E*other.E,
		F: m.D*other.C + m.E*other.F + m.F,
	}
}

// PreTranslate returns the matrix with a translation applied before m,
// equivalent to m * Translate(x, y).
func (m Matrix) PreTranslate(x, y float64) Matrix {
	return m.Multiply(Translate(x, y))
}

// PostTranslate returns the matrix with a translation applied after m.
func (m Matrix) PostTranslate(x, y float64) Matrix {
	m.C += x
	m.F += y
	return m
}

// TransformPoint applies the transformation to a point.
// Perspective terms are ignored.
func (m Matrix) TransformPoint(p Point) Point {
	return Point{
		X: m.A*p.X + m.B*p.Y + m.C,
		Y: m.D*p.X + m.E*p.Y + m.F,
	}
}

// MapRect returns the axis-aligned bounds of the transformed rectangle.
func (m Matrix) MapRect(r Rect) Rect {
	corners := [4]Point{
		{r.MinX, r.MinY},
		{r.MaxX, r.MinY},
		{r.MaxX, r.MaxY},
		{r.MinX, r.MaxY},
	}
	var out Rect
	for i, c := range corners {
		p := m.TransformPoint(c)
		if i == 0 {
			out = Rect{MinX: p.X, MinY: p.Y, MaxX: p.X, MaxY: p.Y}
		} else {
			out = out.ExtendPoint(p)
		}
	}
	return out
}

// Invert returns the inverse matrix and true, or the identity matrix and
// false if the matrix is not invertible. Perspective matrices are treated
// as non-invertible here; callers reject them before drawing.
func (m Matrix) Invert() (Matrix, bool) {
	if m.HasPerspective() {
		return Identity(), false
	}
	det := m.A*m.E - m.B*m.D
	if math.Abs(det) < 1e-10 {
		return Identity(), false
	}

	invDet := 1.0 / det
	return Matrix{
		A: m.E * invDet,
		B: -m.B * invDet,
		C: (m.B*m.F - m.C*m.E) * invDet,
		D: -m.D * invDet,
		E: m.A * invDet,
		F: (m.C*m.D - m.A*m.F) * invDet,
	}, true
}

// HasPerspective reports whether the matrix has nonzero perspective terms.
func (m Matrix) HasPerspective() bool {
	return m.P0 != 0 || m.P1 != 0
}

// IsIdentity returns true if the matrix is the identity matrix.
func (m Matrix) IsIdentity() bool {
	return m == Identity()
}

// MinMaxScales returns the minimum and maximum factors by which the
// matrix scales distances, as the singular values of its upper-left 2x2
// block. Returns ok = false for perspective or non-finite matrices.
func (m Matrix) MinMaxScales() (minScale, maxScale float64, ok bool) {
	if m.HasPerspective() {
		return 0, 0, false
	}

	// Eigenvalues of Mt*M for the 2x2 block; singular values are their
	// square roots.
	a := m.A*m.A + m.D*m.D
	b := m.A*m.B + m.D*m.E
	c := m.B*m.B + m.E*m.E

	trace := a + c
	det := a*c - b*b
	disc := trace*trace - 4*det
	if disc < 0 {
		disc = 0
	}
	root := math.Sqrt(disc)

	hi := (trace + root) / 2
	lo := (trace - root) / 2
	if lo < 0 {
		lo = 0
	}

	minScale = math.Sqrt(lo)
	maxScale = math.Sqrt(hi)
	if math.IsNaN(minScale) || math.IsInf(maxScale, 0) || math.IsNaN(maxScale) {
		return 0, 0, false
	}
	return minScale, maxScale, true
}

// MaxScaleFactor returns the largest factor by which the matrix scales
// distances, or 0 if it cannot be computed.
func (m Matrix) MaxScaleFactor() float64 {
	_, maxScale, ok := m.MinMaxScales()
	if !ok {
		return 0
	}
	return maxScale
}

// SplitTranslation splits the matrix translation into its integer part
// and a matrix carrying only the fractional remainder. Baking only the
// fractional offset into a mask lets an integer pan reuse the mask with a
// positional offset instead of regenerating it.
func (m Matrix) SplitTranslation() (intPart Point, fractional Matrix) {
	intPart = Point{X: math.Floor(m.C), Y: math.Floor(m.F)}
	fractional = m
	fractional.C -= intPart.X
	fractional.F -= intPart.Y
	return intPart, fractional
}
