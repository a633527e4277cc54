// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package smallpath

import (
	"image"

	"github.com/gogpu/gputypes"
)

// AtlasConfig holds plot-atlas configuration.
type AtlasConfig struct {
	// Format is the texture format. Must be a single-channel 8-bit
	// format; both coverage and distance-field masks are one byte per
	// texel. Default: R8Unorm.
	Format gputypes.TextureFormat

	// Width and Height are the atlas texture dimensions.
	// Default: 2048 x 2048.
	Width  int
	Height int

	// PlotsX and PlotsY subdivide the texture into independently
	// reclaimable plots. Must divide Width and Height evenly.
	// Default: 4 x 8 (512 x 256 texel plots).
	PlotsX int
	PlotsY int
}

// DefaultAtlasConfig returns the default configuration.
func DefaultAtlasConfig() AtlasConfig {
	return AtlasConfig{
		Format: gputypes.TextureFormatR8Unorm,
		Width:  2048,
		Height: 2048,
		PlotsX: 4,
		PlotsY: 8,
	}
}

// AtlasConfigError represents a configuration validation error.
type AtlasConfigError struct {
	Field  string
	Reason string
}

func (e *AtlasConfigError) Error() string {
	return "smallpath: invalid atlas config." + e.Field + ": " + e.Reason
}

// Validate checks if the configuration is valid.
func (c *AtlasConfig) Validate() error {
	// Masks are one byte per texel; a multi-channel format would make the
	// backing pixel buffer the wrong size. Undefined selects the default.
	if c.Format != gputypes.TextureFormatUndefined && c.Format != gputypes.TextureFormatR8Unorm {
		return &AtlasConfigError{Field: "Format", Reason: "must be a single-channel 8-bit format"}
	}
	if c.Width < 1 || c.Height < 1 {
		return &AtlasConfigError{Field: "Width", Reason: "dimensions must be positive"}
	}
	// Texture coordinates travel as 16-bit texel indices.
	if c.Width > 1<<16 || c.Height > 1<<16 {
		return &AtlasConfigError{Field: "Width", Reason: "dimensions must fit 16-bit texel coords"}
	}
	if c.PlotsX < 1 || c.PlotsY < 1 {
		return &AtlasConfigError{Field: "PlotsX", Reason: "plot counts must be positive"}
	}
	if c.Width%c.PlotsX != 0 {
		return &AtlasConfigError{Field: "PlotsX", Reason: "must divide Width evenly"}
	}
	if c.Height%c.PlotsY != 0 {
		return &AtlasConfigError{Field: "PlotsY", Reason: "must divide Height evenly"}
	}
	return nil
}

// PlotAtlas is an in-memory Atlas backed by a single-channel texture
// subdivided into a grid of plots. Each plot packs masks with a shelf
// packer and is reclaimed as a unit: when every plot is full, the least
// recently used plot not referenced by the in-flight draw is evicted,
// its generation bumped, and the registered EvictionHandler notified.
//
// PlotAtlas is not safe for concurrent use; the owning Renderer guards it.
type PlotAtlas struct {
	cfg     AtlasConfig
	handler EvictionHandler

	plots  []plot
	pixels []byte

	// highest is the newest token seen via MarkLastUse. Plots whose
	// last use equals it belong to the draw under construction.
	highest DrawToken

	evictions uint64
}

type plot struct {
	index      int
	generation uint32
	x, y       int
	width      int
	height     int
	packer     shelfPacker
	lastUse    DrawToken
	dirty      IRect
	hasDirty   bool
}

// NewPlotAtlas creates a plot atlas and registers the eviction handler.
// The handler may be nil when no cache consistency is required.
func NewPlotAtlas(cfg AtlasConfig, handler EvictionHandler) (*PlotAtlas, error) {
	if cfg.Format == gputypes.TextureFormatUndefined {
		cfg.Format = gputypes.TextureFormatR8Unorm
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	plotW := cfg.Width / cfg.PlotsX
	plotH := cfg.Height / cfg.PlotsY

	a := &PlotAtlas{
		cfg:     cfg,
		handler: handler,
		plots:   make([]plot, cfg.PlotsX*cfg.PlotsY),
		pixels:  make([]byte, cfg.Width*cfg.Height),
	}
	for i := range a.plots {
		col := i % cfg.PlotsX
		row := i / cfg.PlotsX
		a.plots[i] = plot{
			index:      i,
			generation: 1,
			x:          col * plotW,
			y:          row * plotH,
			width:      plotW,
			height:     plotH,
			packer:     newShelfPacker(plotW, plotH),
		}
	}
	return a, nil
}

// makeAtlasID packs a plot index and generation into an AtlasID.
func makeAtlasID(index int, generation uint32) AtlasID {
	return AtlasID(uint64(index)<<32 | uint64(generation))
}

func (id AtlasID) plotIndex() int     { return int(uint64(id) >> 32) }
func (id AtlasID) generation() uint32 { return uint32(uint64(id)) }

// Insert stores a mask, evicting the least recently used plot if needed.
func (a *PlotAtlas) Insert(width, height int, pixels []byte) (AtlasID, image.Point, error) {
	if width <= 0 || height <= 0 || len(pixels) < width*height {
		return invalidAtlasID, image.Point{}, &AtlasConfigError{Field: "Insert", Reason: "invalid mask dimensions"}
	}
	plotW := a.cfg.Width / a.cfg.PlotsX
	plotH := a.cfg.Height / a.cfg.PlotsY
	if width > plotW || height > plotH {
		return invalidAtlasID, image.Point{}, ErrMaskTooLarge
	}

	if id, loc, ok := a.tryInsert(width, height, pixels); ok {
		return id, loc, nil
	}

	// All plots are full; reclaim the least recently used plot that is
	// not part of the in-flight draw.
	victim := a.evictionCandidate()
	if victim < 0 {
		return invalidAtlasID, image.Point{}, ErrAtlasFull
	}
	a.evictPlot(&a.plots[victim])

	if id, loc, ok := a.tryInsert(width, height, pixels); ok {
		return id, loc, nil
	}
	return invalidAtlasID, image.Point{}, ErrAtlasFull
}

func (a *PlotAtlas) tryInsert(width, height int, pixels []byte) (AtlasID, image.Point, bool) {
	for i := range a.plots {
		p := &a.plots[i]
		px, py, ok := p.packer.allocate(width, height)
		if !ok {
			continue
		}
		x := p.x + px
		y := p.y + py
		a.copyMask(x, y, width, height, pixels)
		p.growDirty(IRectWH(x, y, width, height))
		return makeAtlasID(p.index, p.generation), image.Point{X: x, Y: y}, true
	}
	return invalidAtlasID, image.Point{}, false
}

func (a *PlotAtlas) copyMask(x, y, width, height int, pixels []byte) {
	for row := 0; row < height; row++ {
		dst := (y+row)*a.cfg.Width + x
		src := row * width
		copy(a.pixels[dst:dst+width], pixels[src:src+width])
	}
}

// evictionCandidate returns the index of the least recently used plot
// that holds masks and is not referenced by the in-flight draw, or -1.
func (a *PlotAtlas) evictionCandidate() int {
	best := -1
	var bestUse DrawToken
	for i := range a.plots {
		p := &a.plots[i]
		if p.packer.empty() {
			continue
		}
		if p.lastUse >= a.highest {
			continue
		}
		if best < 0 || p.lastUse < bestUse {
			best = i
			bestUse = p.lastUse
		}
	}
	return best
}

func (a *PlotAtlas) evictPlot(p *plot) {
	evicted := makeAtlasID(p.index, p.generation)
	p.generation++
	p.packer.reset()
	p.lastUse = 0
	a.evictions++
	if a.handler != nil {
		a.handler.OnEvicted(evicted)
	}
}

// IsResident reports whether id still refers to stored texels.
func (a *PlotAtlas) IsResident(id AtlasID) bool {
	idx := id.plotIndex()
	if idx < 0 || idx >= len(a.plots) {
		return false
	}
	return a.plots[idx].generation == id.generation()
}

// MarkLastUse records that id is referenced by the given draw submission.
func (a *PlotAtlas) MarkLastUse(id AtlasID, token DrawToken) {
	idx := id.plotIndex()
	if idx < 0 || idx >= len(a.plots) {
		return
	}
	p := &a.plots[idx]
	if p.generation != id.generation() {
		return
	}
	if token > p.lastUse {
		p.lastUse = token
	}
	if token > a.highest {
		a.highest = token
	}
}

// AdvanceToken moves the in-flight boundary to token. Plots whose last
// use is older than it are free to be reclaimed on the next insertion.
func (a *PlotAtlas) AdvanceToken(token DrawToken) {
	if token > a.highest {
		a.highest = token
	}
}

// Pixels returns the backing texture data, one byte per texel.
func (a *PlotAtlas) Pixels() []byte { return a.pixels }

// Stride returns the number of bytes per texture row.
func (a *PlotAtlas) Stride() int { return a.cfg.Width }

// Format returns the texture format of the atlas.
func (a *PlotAtlas) Format() gputypes.TextureFormat { return a.cfg.Format }

// DirtyRects returns the texel regions modified since the last MarkClean,
// one rectangle per touched plot, for incremental texture upload.
func (a *PlotAtlas) DirtyRects() []IRect {
	var rects []IRect
	for i := range a.plots {
		if a.plots[i].hasDirty {
			rects = append(rects, a.plots[i].dirty)
		}
	}
	return rects
}

// MarkClean marks the whole texture as uploaded.
func (a *PlotAtlas) MarkClean() {
	for i := range a.plots {
		a.plots[i].hasDirty = false
		a.plots[i].dirty = IRect{}
	}
}

// Evictions returns the number of plot evictions since creation.
func (a *PlotAtlas) Evictions() uint64 { return a.evictions }

func (p *plot) growDirty(r IRect) {
	if !p.hasDirty {
		p.dirty = r
		p.hasDirty = true
		return
	}
	if r.MinX < p.dirty.MinX {
		p.dirty.MinX = r.MinX
	}
	if r.MinY < p.dirty.MinY {
		p.dirty.MinY = r.MinY
	}
	if r.MaxX > p.dirty.MaxX {
		p.dirty.MaxX = r.MaxX
	}
	if r.MaxY > p.dirty.MaxY {
		p.dirty.MaxY = r.MaxY
	}
}

// shelfPacker packs rectangles into horizontal shelves. Each shelf has a
// fixed height set by its first occupant; new masks are placed left to
// right until the shelf is out of width, then a new shelf opens below.
type shelfPacker struct {
	width   int
	height  int
	shelves []shelf
	used    int
}

type shelf struct {
	y      int
	height int
	x      int
}

func newShelfPacker(width, height int) shelfPacker {
	return shelfPacker{width: width, height: height}
}

func (s *shelfPacker) allocate(w, h int) (x, y int, ok bool) {
	if w > s.width || h > s.height {
		return -1, -1, false
	}

	for i := range s.shelves {
		sh := &s.shelves[i]
		if h > sh.height || sh.x+w > s.width {
			continue
		}
		x, y = sh.x, sh.y
		sh.x += w
		s.used += w * h
		return x, y, true
	}

	newY := 0
	if n := len(s.shelves); n > 0 {
		last := s.shelves[n-1]
		newY = last.y + last.height
	}
	if newY+h > s.height {
		return -1, -1, false
	}
	s.shelves = append(s.shelves, shelf{y: newY, height: h, x: w})
	s.used += w * h
	return 0, newY, true
}

func (s *shelfPacker) reset() {
	s.shelves = s.shelves[:0]
	s.used = 0
}

func (s *shelfPacker) empty() bool {
	return len(s.shelves) == 0
}
