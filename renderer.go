// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package smallpath

import (
	"errors"
	"math"
	"sync"
)

// ErrUnsupportedShape is returned by Draw for shapes CanDraw rejects.
var ErrUnsupportedShape = errors.New("smallpath: shape not drawable by this renderer")

// Config holds renderer configuration.
type Config struct {
	// AlwaysDistanceField forces every mask into distance-field mode,
	// trading exact-transform bitmap quality for maximum cache reuse.
	AlwaysDistanceField bool

	// Atlas configures the mask atlas. Zero value: DefaultAtlasConfig.
	Atlas AtlasConfig

	// Rasterizer generates mask pixels. Nil: VectorRasterizer.
	Rasterizer Rasterizer
}

// DefaultConfig returns the default renderer configuration.
func DefaultConfig() Config {
	return Config{
		Atlas: DefaultAtlasConfig(),
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	return c.Atlas.Validate()
}

// Renderer draws small, repeatedly-used vector shapes through a cache of
// atlas-resident masks. Shapes it accepts are rasterized once, stored as
// a distance field or coverage bitmap, and thereafter drawn as textured
// quads batched into few draw calls.
//
// All methods are safe for concurrent use.
type Renderer struct {
	mu    sync.Mutex
	cfg   Config
	rast  Rasterizer
	cache *maskCache
	atlas Atlas
	ops   []*BatchOp
}

// NewRenderer creates a renderer. The atlas texture is allocated on
// first use, not up front.
func NewRenderer(cfg Config) (*Renderer, error) {
	if cfg.Atlas == (AtlasConfig{}) {
		cfg.Atlas = DefaultAtlasConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	rast := cfg.Rasterizer
	if rast == nil {
		rast = NewVectorRasterizer()
	}
	return &Renderer{
		cfg:   cfg,
		rast:  rast,
		cache: newMaskCache(),
	}, nil
}

// CanDraw reports whether the renderer accepts the shape under the given
// view transform and antialias mode. Only coverage-antialiased, filled,
// non-inverse shapes with a stable identity key qualify, under a
// non-perspective transform, within the local and device size bounds.
func (r *Renderer) CanDraw(shape *Shape, view Matrix, aa AntialiasMode) bool {
	if aa != AntialiasCoverage {
		return false
	}
	if shape == nil || !shape.HasIdentityKey() {
		return false
	}
	if shape.Style != StyleFill || shape.InverseFilled {
		return false
	}
	if view.HasPerspective() {
		return false
	}
	minScale, maxScale, ok := view.MinMaxScales()
	if !ok {
		return false
	}

	bounds := shape.Bounds()
	minDim := math.Min(bounds.Width(), bounds.Height())
	maxDim := math.Max(bounds.Width(), bounds.Height())
	if maxDim > maxLocalDim {
		return false
	}
	minSize := minDim * math.Abs(minScale)
	maxSize := maxDim * math.Abs(maxScale)
	if minSize < minDeviceSize || maxSize > maxDeviceSize {
		return false
	}
	return true
}

// Draw records a shape for drawing. The shape joins the most recent
// pending batch when their draw configurations are compatible, otherwise
// it opens a new batch. Nothing touches the cache, the atlas, or the
// target until Flush. Returns ErrUnsupportedShape for shapes CanDraw
// would reject.
func (r *Renderer) Draw(shape *Shape, view Matrix, paint Paint, settings DrawSettings) (*BatchOp, error) {
	if !r.CanDraw(shape, view, AntialiasCoverage) {
		return nil, ErrUnsupportedShape
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.ensureAtlas(); err != nil {
		return nil, err
	}

	devBounds := view.MapRect(shape.Bounds())
	useDF := useDistanceField(devBounds, r.cfg.AlwaysDistanceField)

	entry := batchEntry{
		shape: shape,
		color: paint.Color.Packed(),
	}
	opView := view
	if !useDF {
		// Bake only the fractional translation into the mask transform;
		// the integer pan travels per entry so panned redraws reuse the
		// cached bitmap.
		entry.translate, opView = view.SplitTranslation()
	}

	op := &BatchOp{
		entries:           []batchEntry{entry},
		settings:          settings,
		viewMatrix:        opView,
		usesDistanceField: useDF,
		devBounds:         devBounds,
		cache:             r.cache,
		atlas:             r.atlas,
		rast:              r.rast,
	}

	if n := len(r.ops); n > 0 && r.ops[n-1].Combine(op) {
		return r.ops[n-1], nil
	}
	r.ops = append(r.ops, op)
	return op, nil
}

// Flush prepares and submits every pending batch to target, in draw
// order. Batches that fail to prepare are dropped; their errors are
// joined into the return value and the remaining batches still run.
func (r *Renderer) Flush(target DrawTarget) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var errs []error
	for _, op := range r.ops {
		if err := op.PrepareDraws(target); err != nil {
			errs = append(errs, err)
		}
	}
	r.ops = r.ops[:0]
	return errors.Join(errs...)
}

// OnEvicted purges cache entries referencing a reclaimed atlas region.
// It implements EvictionHandler and runs synchronously inside atlas
// insertion; the renderer lock is already held on that path.
func (r *Renderer) OnEvicted(id AtlasID) {
	n := r.cache.EvictAtlas(id)
	if n > 0 {
		Logger().Debug("smallpath: atlas eviction purged cache entries",
			"atlasID", uint64(id), "entries", n)
	}
}

// Stats returns the cache counters.
func (r *Renderer) Stats() *CacheStats {
	return r.cache.Stats()
}

// CacheLen returns the number of cached masks.
func (r *Renderer) CacheLen() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.cache.Len()
}

func (r *Renderer) ensureAtlas() error {
	if r.atlas != nil {
		return nil
	}
	a, err := NewPlotAtlas(r.cfg.Atlas, r)
	if err != nil {
		return err
	}
	r.atlas = a
	return nil
}
