// Package smallpath renders large numbers of small filled vector shapes
// by caching per-shape masks in a shared texture atlas and batching the
// cached shapes into as few GPU draw submissions as possible.
//
// # Overview
//
// For each drawable shape the renderer decides between two mask formats:
//
//   - Signed distance field (DF): resolution-independent, reusable across
//     rotations and moderate scale changes. Cached per (shape, snapped
//     dimension).
//   - Coverage bitmap: an 8-bit antialiased alpha mask baked at one exact
//     transform, including the sub-pixel translation. Cached per
//     (shape, transform).
//
// Masks are generated once, stored in a plot-based texture atlas, and
// reused across frames. When the atlas reclaims a plot under capacity
// pressure, the affected cache entries are purged synchronously through
// an eviction callback.
//
// # Quick Start
//
//	r, err := smallpath.NewRenderer(smallpath.DefaultConfig())
//	if err != nil {
//	    ...
//	}
//
//	shape := smallpath.NewShape(path, 1) // 1 = stable identity key
//	view := smallpath.Scale(2, 2)
//
//	if r.CanDraw(shape, view, smallpath.AntialiasCoverage) {
//	    op, err := r.Draw(shape, view, paint, settings)
//	    ...
//	}
//	r.Flush(target)
//
// # Scope
//
// The renderer handles non-inverse coverage-antialiased fills of shapes
// whose bounds fit the atlas size envelope. Strokes, inverse fills and
// perspective transforms are rejected by CanDraw; the caller is expected
// to fall back to another rendering strategy for those.
//
// # Concurrency
//
// A Renderer guards its cache, eviction order and atlas with a single
// mutex; Draw and Flush may be called from any goroutine but never
// overlap. All other types are single-threaded unless noted.
package smallpath
