package smallpath

import (
	"math"
	"testing"
)

func TestMatrixIdentity(t *testing.T) {
	m := Identity()
	if !m.IsIdentity() {
		t.Error("Identity().IsIdentity() = false, want true")
	}
	p := m.TransformPoint(Pt(3, 4))
	if p != Pt(3, 4) {
		t.Errorf("TransformPoint(3, 4) = %v, want (3, 4)", p)
	}
}

func TestMatrixTransformPoint(t *testing.T) {
	tests := []struct {
		name string
		m    Matrix
		in   Point
		want Point
	}{
		{"translate", Translate(10, 20), Pt(1, 2), Pt(11, 22)},
		{"scale", Scale(2, 3), Pt(1, 2), Pt(2, 6)},
		{"rotate90", Rotate(math.Pi / 2), Pt(1, 0), Pt(0, 1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.m.TransformPoint(tt.in)
			if math.Abs(got.X-tt.want.X) > 1e-9 || math.Abs(got.Y-tt.want.Y) > 1e-9 {
				t.Errorf("TransformPoint(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestMatrixInvert(t *testing.T) {
	tests := []struct {
		name string
		m    Matrix
		ok   bool
	}{
		{"identity", Identity(), true},
		{"translate", Translate(5, -3), true},
		{"scale", Scale(2, 4), true},
		{"rotated", Rotate(0.7).Multiply(Scale(3, 3)), true},
		{"singular", Scale(0, 1), false},
		{"perspective", Matrix{A: 1, E: 1, P0: 0.01}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv, ok := tt.m.Invert()
			if ok != tt.ok {
				t.Fatalf("Invert() ok = %v, want %v", ok, tt.ok)
			}
			if !ok {
				return
			}
			// m * inv must round-trip points.
			p := Pt(7, 11)
			got := inv.TransformPoint(tt.m.TransformPoint(p))
			if math.Abs(got.X-p.X) > 1e-9 || math.Abs(got.Y-p.Y) > 1e-9 {
				t.Errorf("round trip = %v, want %v", got, p)
			}
		})
	}
}

func TestMatrixMinMaxScales(t *testing.T) {
	tests := []struct {
		name    string
		m       Matrix
		wantMin float64
		wantMax float64
	}{
		{"identity", Identity(), 1, 1},
		{"uniform", Scale(3, 3), 3, 3},
		{"anisotropic", Scale(2, 5), 2, 5},
		{"rotation preserves scale", Rotate(1.2), 1, 1},
		{"rotated anisotropic", Rotate(0.5).Multiply(Scale(2, 5)), 2, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotMin, gotMax, ok := tt.m.MinMaxScales()
			if !ok {
				t.Fatal("MinMaxScales() ok = false, want true")
			}
			if math.Abs(gotMin-tt.wantMin) > 1e-9 {
				t.Errorf("min = %v, want %v", gotMin, tt.wantMin)
			}
			if math.Abs(gotMax-tt.wantMax) > 1e-9 {
				t.Errorf("max = %v, want %v", gotMax, tt.wantMax)
			}
		})
	}

	if _, _, ok := (Matrix{A: 1, E: 1, P1: 0.5}).MinMaxScales(); ok {
		t.Error("MinMaxScales() ok = true for perspective matrix, want false")
	}
}

func TestMatrixSplitTranslation(t *testing.T) {
	m := Scale(2, 2).PostTranslate(10.25, -3.5)
	intPart, frac := m.SplitTranslation()

	if intPart != Pt(10, -4) {
		t.Errorf("integer part = %v, want (10, -4)", intPart)
	}
	if math.Abs(frac.C-0.25) > 1e-9 || math.Abs(frac.F-0.5) > 1e-9 {
		t.Errorf("fractional translation = (%v, %v), want (0.25, 0.5)", frac.C, frac.F)
	}
	// Recomposing must give back the original.
	if got := frac.PostTranslate(intPart.X, intPart.Y); got != m {
		t.Errorf("recomposed = %+v, want %+v", got, m)
	}
}

func TestMatrixMapRect(t *testing.T) {
	r := RectWH(0, 0, 10, 10)
	got := Rotate(math.Pi / 4).MapRect(r)
	want := 10 * math.Sqrt2
	if math.Abs(got.Width()-want) > 1e-9 || math.Abs(got.Height()-want) > 1e-9 {
		t.Errorf("rotated bounds = %v x %v, want %v", got.Width(), got.Height(), want)
	}
}
