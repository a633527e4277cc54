package smallpath

import "testing"

func testEntry(shape uint64, dimension int, id AtlasID) CacheEntry {
	return CacheEntry{
		Key:     DistanceFieldKey(shape, dimension),
		AtlasID: id,
		TexRect: IRectWH(0, 0, 16, 16),
		Bounds:  RectWH(0, 0, 10, 10),
	}
}

func TestMaskCacheFindInsert(t *testing.T) {
	c := newMaskCache()

	key := DistanceFieldKey(1, 32)
	if _, ok := c.Find(key); ok {
		t.Fatal("Find on empty cache = hit, want miss")
	}

	c.Insert(testEntry(1, 32, 7))
	got, ok := c.Find(key)
	if !ok {
		t.Fatal("Find after Insert = miss, want hit")
	}
	if got.AtlasID != 7 {
		t.Errorf("AtlasID = %v, want 7", got.AtlasID)
	}

	stats := c.Stats()
	if h := stats.Hits.Load(); h != 1 {
		t.Errorf("Hits = %v, want 1", h)
	}
	if m := stats.Misses.Load(); m != 1 {
		t.Errorf("Misses = %v, want 1", m)
	}
}

func TestMaskCacheKeyModesDistinct(t *testing.T) {
	c := newMaskCache()
	c.Insert(testEntry(1, 32, 7))

	// A bitmap key for the same shape must not collide with the
	// distance-field entry.
	if _, ok := c.Find(BitmapKey(1, Identity())); ok {
		t.Error("bitmap key hit a distance-field entry")
	}
	if _, ok := c.Find(DistanceFieldKey(1, 64)); ok {
		t.Error("different dimension hit the entry")
	}
}

func TestMaskCacheReplace(t *testing.T) {
	c := newMaskCache()
	c.Insert(testEntry(1, 32, 7))
	c.Insert(testEntry(1, 32, 9))

	if got := c.Len(); got != 1 {
		t.Fatalf("Len = %v, want 1", got)
	}
	entry, _ := c.Find(DistanceFieldKey(1, 32))
	if entry.AtlasID != 9 {
		t.Errorf("AtlasID after replace = %v, want 9", entry.AtlasID)
	}
	if f := c.Stats().Freed.Load(); f != 1 {
		t.Errorf("Freed = %v, want 1", f)
	}
}

func TestMaskCacheRemove(t *testing.T) {
	c := newMaskCache()
	c.Insert(testEntry(1, 32, 7))

	if !c.Remove(DistanceFieldKey(1, 32)) {
		t.Fatal("Remove = false, want true")
	}
	if c.Remove(DistanceFieldKey(1, 32)) {
		t.Fatal("second Remove = true, want false")
	}
	if got := c.Len(); got != 0 {
		t.Errorf("Len = %v, want 0", got)
	}
}

func TestMaskCacheEvictAtlas(t *testing.T) {
	c := newMaskCache()
	c.Insert(testEntry(1, 32, 7))
	c.Insert(testEntry(2, 32, 7))
	c.Insert(testEntry(3, 32, 8))

	removed := c.EvictAtlas(7)
	if removed != 2 {
		t.Fatalf("EvictAtlas removed %v, want 2", removed)
	}
	if got := c.Len(); got != 1 {
		t.Errorf("Len = %v, want 1", got)
	}
	if _, ok := c.Find(DistanceFieldKey(3, 32)); !ok {
		t.Error("entry in surviving atlas region was evicted")
	}
	if e := c.Stats().Evicted.Load(); e != 2 {
		t.Errorf("Evicted = %v, want 2", e)
	}
}

// Slot reuse after removal must not leave stale handles behind: an
// eviction sweep over the whole cache may visit each live entry once.
func TestMaskCacheSlotReuse(t *testing.T) {
	c := newMaskCache()
	c.Insert(testEntry(1, 32, 7))
	c.Remove(DistanceFieldKey(1, 32))
	c.Insert(testEntry(2, 32, 7))
	c.Insert(testEntry(1, 32, 7))
	c.Insert(testEntry(1, 32, 9)) // replace, reuses a slot again

	if removed := c.EvictAtlas(7); removed != 1 {
		t.Errorf("EvictAtlas(7) removed %v, want 1", removed)
	}
	if removed := c.EvictAtlas(9); removed != 1 {
		t.Errorf("EvictAtlas(9) removed %v, want 1", removed)
	}
	if got := c.Len(); got != 0 {
		t.Errorf("Len = %v, want 0", got)
	}
}

func BenchmarkMaskCacheFind(b *testing.B) {
	c := newMaskCache()
	for i := 0; i < 1024; i++ {
		c.Insert(testEntry(uint64(i+1), 32, AtlasID(i%8+1)))
	}
	keys := make([]MaskKey, 1024)
	for i := range keys {
		keys[i] = DistanceFieldKey(uint64(i+1), 32)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, ok := c.Find(keys[i%len(keys)]); !ok {
			b.Fatal("unexpected miss")
		}
	}
}

func BenchmarkMaskCacheEvictAtlas(b *testing.B) {
	for i := 0; i < b.N; i++ {
		b.StopTimer()
		c := newMaskCache()
		for j := 0; j < 1024; j++ {
			c.Insert(testEntry(uint64(j+1), 32, AtlasID(j%8+1)))
		}
		b.StartTimer()
		c.EvictAtlas(AtlasID(i%8 + 1))
	}
}
