package smallpath

import "testing"

func TestRectExtendPoint(t *testing.T) {
	// Accumulating from a single-point seed must grow the rectangle,
	// not restart it: the degenerate seed is a valid one-point bound.
	r := Rect{MinX: 3, MinY: 4, MaxX: 3, MaxY: 4}
	r = r.ExtendPoint(Pt(10, 1))
	r = r.ExtendPoint(Pt(0, 8))

	want := Rect{MinX: 0, MinY: 1, MaxX: 10, MaxY: 8}
	if r != want {
		t.Errorf("accumulated rect = %v, want %v", r, want)
	}
}

func TestRectUnion(t *testing.T) {
	a := RectWH(0, 0, 10, 10)
	b := RectWH(5, 5, 10, 10)
	want := Rect{MinX: 0, MinY: 0, MaxX: 15, MaxY: 15}
	if got := a.Union(b); got != want {
		t.Errorf("Union = %v, want %v", got, want)
	}
	if got := (Rect{}).Union(a); got != a {
		t.Errorf("empty Union = %v, want %v", got, a)
	}
}

func TestRectRoundOut(t *testing.T) {
	r := Rect{MinX: 0.2, MinY: -0.7, MaxX: 9.1, MaxY: 10}
	want := IRect{MinX: 0, MinY: -1, MaxX: 10, MaxY: 10}
	if got := r.RoundOut(); got != want {
		t.Errorf("RoundOut = %v, want %v", got, want)
	}
}
