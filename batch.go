// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package smallpath

import (
	"errors"
	"math"
)

// ErrNonInvertibleView is returned when a batch needs local coordinates
// but its view matrix cannot be inverted. The whole batch is dropped.
var ErrNonInvertibleView = errors.New("smallpath: view matrix not invertible")

// batchEntry is one shape recorded into a batch. For bitmap-mode batches
// translate carries the integer device translation stripped from the
// shape's view matrix; the shared batch matrix holds the rest.
type batchEntry struct {
	shape     *Shape
	color     uint32
	translate Point
}

// BatchOp batches masked shapes that share a mask mode, a view matrix,
// and pipeline settings into as few draw calls as possible. Ops are
// created by Renderer.Draw, merged with Combine, and resolved against
// the cache and atlas in PrepareDraws.
type BatchOp struct {
	entries           []batchEntry
	settings          DrawSettings
	viewMatrix        Matrix
	usesDistanceField bool
	devBounds         Rect

	cache *maskCache
	atlas Atlas
	rast  Rasterizer

	// prepare state
	verts []Vertex
	desc  GeometryDesc
}

// Bounds returns the batch's device-space bounds.
func (b *BatchOp) Bounds() Rect { return b.devBounds }

// UsesDistanceField reports the batch's mask mode.
func (b *BatchOp) UsesDistanceField() bool { return b.usesDistanceField }

// Len returns the number of shapes in the batch.
func (b *BatchOp) Len() int { return len(b.entries) }

// Combine merges other into b when the two batches can share one draw
// configuration: compatible settings, the same mask mode, and the exact
// same view matrix. Bitmap batches needing local coordinates must also
// share the integer translation, since the local transform is computed
// once per batch. Returns false, leaving both untouched, otherwise.
func (b *BatchOp) Combine(other *BatchOp) bool {
	if !b.settings.CompatibleWith(other.settings) {
		return false
	}
	if b.usesDistanceField != other.usesDistanceField {
		return false
	}
	if b.viewMatrix != other.viewMatrix {
		return false
	}
	if !b.usesDistanceField && b.settings.UsesLocalCoords {
		if b.entries[0].translate != other.entries[0].translate {
			return false
		}
	}
	b.entries = append(b.entries, other.entries...)
	b.devBounds = b.devBounds.Union(other.devBounds)
	return true
}

// PrepareDraws resolves every shape in the batch to an atlas-resident
// mask and submits the quads to target, chunked to the index-buffer
// limit. Shapes whose masks cannot be generated or placed are skipped;
// an atlas-full condition flushes the quads accumulated so far and
// retries the insertion once before skipping.
func (b *BatchOp) PrepareDraws(target DrawTarget) error {
	if len(b.entries) == 0 {
		return nil
	}

	b.desc = GeometryDesc{
		Mode:     MaskDistanceField,
		View:     b.viewMatrix,
		Settings: b.settings,
	}
	if !b.usesDistanceField {
		b.desc.Mode = MaskBitmap
		// Bitmap quads are emitted in device space; the fractional
		// offset is baked into the texels and the quad positions.
		b.desc.View = Identity()
		if b.settings.UsesLocalCoords {
			inv, ok := b.viewMatrix.Invert()
			if !ok {
				return ErrNonInvertibleView
			}
			tr := b.entries[0].translate
			b.desc.Local = inv.PreTranslate(-tr.X, -tr.Y)
			b.desc.HasLocal = true
		}
	}
	if pa, ok := b.atlas.(*PlotAtlas); ok {
		b.desc.Texture = AtlasTexture{
			Pixels: pa.Pixels(),
			Width:  pa.Stride(),
			Height: len(pa.Pixels()) / pa.Stride(),
			Format: pa.Format(),
		}
	}

	for i := range b.entries {
		e := &b.entries[i]
		entry, err := b.resolveMask(target, e.shape)
		if err != nil {
			Logger().Debug("smallpath: skipping shape",
				"shape", e.shape.IdentityKey, "err", err)
			continue
		}
		b.atlas.MarkLastUse(entry.AtlasID, target.NextDrawToken())
		b.appendQuad(target, entry, e)
	}
	return b.flush(target)
}

// resolveMask returns an atlas-resident cache entry for the shape,
// generating and inserting the mask on a miss or after a stale hit.
func (b *BatchOp) resolveMask(target DrawTarget, shape *Shape) (CacheEntry, error) {
	var key MaskKey
	var dimension int
	if b.usesDistanceField {
		bounds := shape.Bounds()
		maxDim := math.Max(bounds.Width(), bounds.Height())
		dimension = desiredDimension(b.viewMatrix.MaxScaleFactor(), maxDim)
		if dimension <= 0 {
			return CacheEntry{}, ErrEmptyShape
		}
		key = DistanceFieldKey(shape.IdentityKey, dimension)
	} else {
		_, frac := b.viewMatrix.SplitTranslation()
		key = BitmapKey(shape.IdentityKey, frac)
	}

	if entry, ok := b.cache.Find(key); ok {
		if b.atlas.IsResident(entry.AtlasID) {
			return entry, nil
		}
		// The atlas reclaimed the region after the entry was created;
		// regenerate under the same key.
		b.cache.Remove(key)
	}

	var mask *maskData
	var err error
	if b.usesDistanceField {
		mask, err = generateDistanceFieldMask(b.rast, shape, dimension)
	} else {
		mask, err = generateBitmapMask(b.rast, shape, b.viewMatrix)
	}
	if err != nil {
		return CacheEntry{}, err
	}

	id, loc, err := b.atlas.Insert(mask.width, mask.height, mask.pixels)
	if errors.Is(err, ErrAtlasFull) {
		// Flushing submits the pending quads and advances the draw
		// token, making their plots evictable for one retry.
		if ferr := b.flush(target); ferr != nil {
			return CacheEntry{}, ferr
		}
		id, loc, err = b.atlas.Insert(mask.width, mask.height, mask.pixels)
	}
	if err != nil {
		return CacheEntry{}, err
	}

	entry := CacheEntry{
		Key:     key,
		AtlasID: id,
		TexRect: IRectWH(loc.X+mask.texInset, loc.Y+mask.texInset,
			mask.width-2*mask.texInset, mask.height-2*mask.texInset),
		Bounds: mask.bounds,
	}
	b.cache.Insert(entry)
	return entry, nil
}

// appendQuad writes the four vertices for one shape, flushing first if
// the pending draw is at the index-buffer limit.
func (b *BatchOp) appendQuad(target DrawTarget, entry CacheEntry, e *batchEntry) {
	if len(b.verts)/VertsPerQuad >= maxQuadsPerDraw {
		if err := b.flush(target); err != nil {
			return
		}
	}

	quad := entry.Bounds
	if !b.usesDistanceField {
		quad = quad.Offset(e.translate.X, e.translate.Y)
	}

	u0 := uint16(entry.TexRect.MinX)
	v0 := uint16(entry.TexRect.MinY)
	u1 := uint16(entry.TexRect.MaxX)
	v1 := uint16(entry.TexRect.MaxY)

	l, t := float32(quad.MinX), float32(quad.MinY)
	r, bt := float32(quad.MaxX), float32(quad.MaxY)

	b.verts = append(b.verts,
		Vertex{X: l, Y: t, Color: e.color, U: u0, V: v0},
		Vertex{X: l, Y: bt, Color: e.color, U: u0, V: v1},
		Vertex{X: r, Y: bt, Color: e.color, U: u1, V: v1},
		Vertex{X: r, Y: t, Color: e.color, U: u1, V: v0},
	)
}

// flush submits the pending vertices, if any, as one draw call and
// tells the atlas the submitted draw is no longer in flight, so its
// plots can be reclaimed by a retried insertion.
func (b *BatchOp) flush(target DrawTarget) error {
	if len(b.verts) == 0 {
		return nil
	}
	err := target.Draw(b.desc, b.verts)
	b.verts = b.verts[:0]
	b.atlas.AdvanceToken(target.NextDrawToken())
	return err
}
