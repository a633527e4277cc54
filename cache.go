package smallpath

import "sync/atomic"

// CacheEntry is the metadata for one mask resident in the atlas.
type CacheEntry struct {
	// Key is the owning cache key.
	Key MaskKey

	// AtlasID identifies the atlas region holding the mask. It must be
	// revalidated with Atlas.IsResident before every use; the atlas may
	// have reclaimed the region since the entry was created.
	AtlasID AtlasID

	// TexRect is the mask's texel region within the atlas texture. For
	// distance-field masks it is inset by the distance-field pad so that
	// sampling aligns with the unpadded shape silhouette.
	TexRect IRect

	// Bounds is the shape-space rectangle the mask covers, used to
	// reconstruct the render quad with correct local coordinates.
	Bounds Rect
}

// CacheStats counts cache activity. All counters are cumulative:
// Cached counts successful insertions, Freed counts removals of any
// cause, Evicted counts the subset of removals triggered by atlas
// reclamation.
type CacheStats struct {
	Hits    atomic.Uint64
	Misses  atomic.Uint64
	Cached  atomic.Uint64
	Freed   atomic.Uint64
	Evicted atomic.Uint64
}

// maskCache indexes cache entries by key and keeps every live entry in a
// sweep order for atlas-eviction processing.
//
// Entries live in an arena of slots addressed by stable handle; the key
// lookup and the sweep order both reference handles, so insert and remove
// update the two views through one ownership path. A live entry appears
// in the lookup exactly once and in the sweep order exactly once.
//
// maskCache is not safe for concurrent use; the owning Renderer guards it.
type maskCache struct {
	lookup map[MaskKey]int32
	slots  []cacheSlot
	free   []int32
	order  []int32
	stats  CacheStats
}

type cacheSlot struct {
	entry CacheEntry
	live  bool
}

func newMaskCache() *maskCache {
	return &maskCache{
		lookup: make(map[MaskKey]int32),
	}
}

// Find returns the entry for key, or false on a miss.
func (c *maskCache) Find(key MaskKey) (CacheEntry, bool) {
	h, ok := c.lookup[key]
	if !ok {
		c.stats.Misses.Add(1)
		return CacheEntry{}, false
	}
	c.stats.Hits.Add(1)
	return c.slots[h].entry, true
}

// Insert records an entry, replacing any previous entry with the same key.
func (c *maskCache) Insert(entry CacheEntry) {
	if h, ok := c.lookup[entry.Key]; ok {
		c.release(h)
	}

	var h int32
	if n := len(c.free); n > 0 {
		h = c.free[n-1]
		c.free = c.free[:n-1]
		c.slots[h] = cacheSlot{entry: entry, live: true}
	} else {
		h = int32(len(c.slots))
		c.slots = append(c.slots, cacheSlot{entry: entry, live: true})
	}
	c.lookup[entry.Key] = h
	c.order = append(c.order, h)
	c.stats.Cached.Add(1)
}

// Remove drops the entry for key from both the lookup and the sweep
// order. Returns false if the key is not cached.
func (c *maskCache) Remove(key MaskKey) bool {
	h, ok := c.lookup[key]
	if !ok {
		return false
	}
	c.release(h)
	return true
}

// EvictAtlas removes every entry whose mask lived in the reclaimed atlas
// region. The sweep is O(n) over live entries, which is bounded by atlas
// capacity rather than by the number of shapes ever drawn. Safe to call
// from an atlas eviction callback that re-enters during Insert.
func (c *maskCache) EvictAtlas(id AtlasID) int {
	removed := 0
	kept := c.order[:0]
	for _, h := range c.order {
		slot := &c.slots[h]
		if !slot.live {
			continue
		}
		if slot.entry.AtlasID != id {
			kept = append(kept, h)
			continue
		}
		delete(c.lookup, slot.entry.Key)
		c.freeSlot(h)
		removed++
		c.stats.Evicted.Add(1)
	}
	c.order = kept
	return removed
}

// Len returns the number of live entries.
func (c *maskCache) Len() int {
	return len(c.lookup)
}

// Stats returns the cache counters.
func (c *maskCache) Stats() *CacheStats {
	return &c.stats
}

// release removes a live handle from the lookup and the sweep order.
// The handle must leave the order before its slot can be reused, or the
// same handle could appear twice in one sweep.
func (c *maskCache) release(h int32) {
	delete(c.lookup, c.slots[h].entry.Key)
	for i, o := range c.order {
		if o == h {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	c.freeSlot(h)
}

func (c *maskCache) freeSlot(h int32) {
	c.slots[h] = cacheSlot{}
	c.free = append(c.free, h)
	c.stats.Freed.Add(1)
}
