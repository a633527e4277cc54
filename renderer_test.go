// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package smallpath

import (
	"errors"
	"image"
	"testing"
)

func TestNewRendererConfig(t *testing.T) {
	if _, err := NewRenderer(DefaultConfig()); err != nil {
		t.Fatalf("DefaultConfig: %v", err)
	}
	// Zero config falls back to the default atlas.
	if _, err := NewRenderer(Config{}); err != nil {
		t.Fatalf("zero config: %v", err)
	}

	bad := DefaultConfig()
	bad.Atlas.PlotsX = 3
	if _, err := NewRenderer(bad); err == nil {
		t.Fatal("invalid atlas config accepted")
	}
}

func TestRendererCanDraw(t *testing.T) {
	r, err := NewRenderer(DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}

	stroked := testSquareShape(1, 10)
	stroked.Style = StyleStroke
	inverse := testSquareShape(1, 10)
	inverse.InverseFilled = true

	tests := []struct {
		name  string
		shape *Shape
		view  Matrix
		aa    AntialiasMode
		want  bool
	}{
		{"plain small shape", testSquareShape(1, 10), Identity(), AntialiasCoverage, true},
		{"no antialiasing", testSquareShape(1, 10), Identity(), AntialiasNone, false},
		{"msaa", testSquareShape(1, 10), Identity(), AntialiasMSAA, false},
		{"no identity key", testSquareShape(0, 10), Identity(), AntialiasCoverage, false},
		{"stroked", stroked, Identity(), AntialiasCoverage, false},
		{"inverse filled", inverse, Identity(), AntialiasCoverage, false},
		{"perspective", testSquareShape(1, 10), Matrix{A: 1, E: 1, P0: 0.01}, AntialiasCoverage, false},
		{"at local limit", testSquareShape(1, maxLocalDim), Identity(), AntialiasCoverage, true},
		{"over local limit", testSquareShape(1, maxLocalDim+1), Identity(), AntialiasCoverage, false},
		{"at min device size", testSquareShape(1, 1), Scale(minDeviceSize, minDeviceSize), AntialiasCoverage, true},
		{"under min device size", testSquareShape(1, 1), Scale(0.4, 0.4), AntialiasCoverage, false},
		{"near max device size", testSquareShape(1, 10), Scale(32, 32), AntialiasCoverage, true},
		{"over max device size", testSquareShape(1, 10), Scale(33, 33), AntialiasCoverage, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := r.CanDraw(tt.shape, tt.view, tt.aa)
			if got != tt.want {
				t.Errorf("CanDraw = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRendererDrawUnsupported(t *testing.T) {
	r, err := NewRenderer(DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	_, err = r.Draw(testSquareShape(0, 10), Identity(), Paint{Color: RGB(1, 0, 0)}, DrawSettings{})
	if !errors.Is(err, ErrUnsupportedShape) {
		t.Errorf("Draw error = %v, want ErrUnsupportedShape", err)
	}
}

func TestRendererDrawBatching(t *testing.T) {
	r, err := NewRenderer(DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	paint := Paint{Color: RGB(1, 1, 1)}

	op1, err := r.Draw(testSquareShape(1, 10), Identity(), paint, DrawSettings{})
	if err != nil {
		t.Fatal(err)
	}
	op2, err := r.Draw(testSquareShape(2, 12), Identity(), paint, DrawSettings{})
	if err != nil {
		t.Fatal(err)
	}
	if op1 != op2 {
		t.Error("compatible consecutive draws did not share a batch")
	}
	if op1.Len() != 2 {
		t.Errorf("batch Len = %v, want 2", op1.Len())
	}

	// A different blend mode cannot share the batch.
	op3, err := r.Draw(testSquareShape(3, 10), Identity(), paint, DrawSettings{Blend: BlendPlus})
	if err != nil {
		t.Fatal(err)
	}
	if op3 == op1 {
		t.Error("incompatible draw merged into the previous batch")
	}
}

// Draws a shape, redraws it, then forces an atlas eviction and redraws
// again, checking the cache transitions: miss, hit, then miss with a
// fresh atlas region.
func TestRendererCacheLifecycle(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Atlas = AtlasConfig{Width: 64, Height: 64, PlotsX: 2, PlotsY: 2}
	r, err := NewRenderer(cfg)
	if err != nil {
		t.Fatal(err)
	}
	paint := Paint{Color: RGB(1, 1, 1)}
	target := NewRecordingTarget()

	// Shapes whose bitmap masks fill a 32x32 plot exactly.
	draw := func(key uint64) {
		t.Helper()
		if _, err := r.Draw(testSquareShape(key, 30), Identity(), paint, DrawSettings{}); err != nil {
			t.Fatal(err)
		}
		if err := r.Flush(target); err != nil {
			t.Fatal(err)
		}
	}

	draw(1)
	stats := r.Stats()
	if m, c := stats.Misses.Load(), stats.Cached.Load(); m != 1 || c != 1 {
		t.Fatalf("after first draw: misses = %v, cached = %v, want 1, 1", m, c)
	}

	draw(1)
	if h := stats.Hits.Load(); h != 1 {
		t.Fatalf("after redraw: hits = %v, want 1", h)
	}
	if got := r.CacheLen(); got != 1 {
		t.Fatalf("cache Len = %v, want 1", got)
	}

	// Fill the remaining plots, then overflow to force an eviction of
	// the least recently used plot, which holds shape 1.
	draw(2)
	draw(3)
	draw(4)
	draw(5)
	if e := stats.Evicted.Load(); e != 1 {
		t.Fatalf("after overflow: evicted = %v, want 1", e)
	}

	missesBefore := stats.Misses.Load()
	draw(1)
	if m := stats.Misses.Load(); m != missesBefore+1 {
		t.Errorf("redraw after eviction: misses = %v, want %v", m, missesBefore+1)
	}
}

// Two plot-filling shapes in one batch against a single-plot atlas: the
// second insertion finds the atlas full of in-flight masks, so the batch
// must flush the first quad mid-prepare, release the plot, and draw the
// second shape after evicting the first, instead of skipping it.
func TestRendererMidBatchFlushReclaimsPlot(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Atlas = AtlasConfig{Width: 32, Height: 32, PlotsX: 1, PlotsY: 1}
	r, err := NewRenderer(cfg)
	if err != nil {
		t.Fatal(err)
	}
	paint := Paint{Color: RGB(1, 1, 1)}

	op1, err := r.Draw(testSquareShape(1, 30), Identity(), paint, DrawSettings{})
	if err != nil {
		t.Fatal(err)
	}
	op2, err := r.Draw(testSquareShape(2, 30), Identity(), paint, DrawSettings{})
	if err != nil {
		t.Fatal(err)
	}
	if op1 != op2 {
		t.Fatal("draws did not share a batch")
	}

	target := NewRecordingTarget()
	if err := r.Flush(target); err != nil {
		t.Fatal(err)
	}

	draws := target.Draws()
	quads := 0
	for _, d := range draws {
		quads += len(d.Vertices) / VertsPerQuad
	}
	if quads != 2 {
		t.Fatalf("quads drawn = %v, want 2 (no shape may be skipped)", quads)
	}
	if len(draws) != 2 {
		t.Errorf("draw calls = %v, want 2 (mid-batch flush plus final)", len(draws))
	}

	// The first shape's plot was reclaimed for the second.
	stats := r.Stats()
	if e := stats.Evicted.Load(); e != 1 {
		t.Errorf("evicted = %v, want 1", e)
	}
	if got := r.CacheLen(); got != 1 {
		t.Errorf("cache Len = %v, want 1", got)
	}
}

func TestRendererImageTargetBitmap(t *testing.T) {
	r, err := NewRenderer(DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}

	shape := testSquareShape(1, 20)
	if _, err := r.Draw(shape, Translate(10, 10), Paint{Color: RGB(1, 0, 0)}, DrawSettings{}); err != nil {
		t.Fatal(err)
	}

	target := NewImageTarget(image.NewRGBA(image.Rect(0, 0, 64, 64)))
	if err := r.Flush(target); err != nil {
		t.Fatal(err)
	}

	img := target.Image()
	center := img.RGBAAt(20, 20)
	if center.R < 250 || center.A < 250 {
		t.Errorf("center pixel = %+v, want solid red", center)
	}
	if center.G != 0 || center.B != 0 {
		t.Errorf("center pixel = %+v, want no green or blue", center)
	}
	outside := img.RGBAAt(5, 5)
	if outside.A != 0 {
		t.Errorf("outside pixel = %+v, want transparent", outside)
	}
}

func TestRendererImageTargetDistanceField(t *testing.T) {
	cfg := DefaultConfig()
	cfg.AlwaysDistanceField = true
	r, err := NewRenderer(cfg)
	if err != nil {
		t.Fatal(err)
	}

	shape := testSquareShape(1, 20)
	if _, err := r.Draw(shape, Translate(10, 10), Paint{Color: RGB(0, 1, 0)}, DrawSettings{}); err != nil {
		t.Fatal(err)
	}

	target := NewImageTarget(image.NewRGBA(image.Rect(0, 0, 64, 64)))
	if err := r.Flush(target); err != nil {
		t.Fatal(err)
	}

	img := target.Image()
	center := img.RGBAAt(20, 20)
	if center.G < 200 || center.A < 200 {
		t.Errorf("center pixel = %+v, want solid green", center)
	}
	outside := img.RGBAAt(3, 3)
	if outside.A > 30 {
		t.Errorf("outside pixel = %+v, want transparent", outside)
	}
}
