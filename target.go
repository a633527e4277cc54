package smallpath

import (
	"image"
	"math"
)

// RecordedDraw is one Draw call captured by a RecordingTarget.
type RecordedDraw struct {
	Desc     GeometryDesc
	Vertices []Vertex
	Token    DrawToken
}

// RecordingTarget is a DrawTarget that captures submitted geometry
// without rendering it. Useful for inspection and as a dry-run sink.
type RecordingTarget struct {
	draws []RecordedDraw
	next  DrawToken
}

// NewRecordingTarget creates an empty recording target.
func NewRecordingTarget() *RecordingTarget {
	return &RecordingTarget{next: 1}
}

// NextDrawToken returns the token of the next submission.
func (t *RecordingTarget) NextDrawToken() DrawToken { return t.next }

// Draw records the submission.
func (t *RecordingTarget) Draw(desc GeometryDesc, vertices []Vertex) error {
	verts := make([]Vertex, len(vertices))
	copy(verts, vertices)
	t.draws = append(t.draws, RecordedDraw{Desc: desc, Vertices: verts, Token: t.next})
	t.next++
	return nil
}

// Draws returns the recorded submissions in order.
func (t *RecordingTarget) Draws() []RecordedDraw { return t.draws }

// ImageTarget composites prepared geometry into an RGBA image on the
// CPU, sampling mask texels from the atlas texture carried in each
// GeometryDesc. It renders what a GPU backend would, minus multisampling,
// and backs the package's end-to-end tests.
type ImageTarget struct {
	dst  *image.RGBA
	next DrawToken
}

// NewImageTarget creates a target compositing into dst.
func NewImageTarget(dst *image.RGBA) *ImageTarget {
	return &ImageTarget{dst: dst, next: 1}
}

// NextDrawToken returns the token of the next submission.
func (t *ImageTarget) NextDrawToken() DrawToken { return t.next }

// Image returns the destination image.
func (t *ImageTarget) Image() *image.RGBA { return t.dst }

// Draw composites the quads into the destination image.
func (t *ImageTarget) Draw(desc GeometryDesc, vertices []Vertex) error {
	t.next++
	inv, ok := desc.View.Invert()
	if !ok {
		return nil
	}
	for i := 0; i+VertsPerQuad <= len(vertices); i += VertsPerQuad {
		t.drawQuad(desc, inv, vertices[i:i+VertsPerQuad])
	}
	return nil
}

// drawQuad rasterizes one quad. Vertex order is (l,t), (l,b), (r,b),
// (r,t) in the quad's own space; the view transform maps that space to
// device pixels.
func (t *ImageTarget) drawQuad(desc GeometryDesc, inv Matrix, q []Vertex) {
	left := float64(q[0].X)
	top := float64(q[0].Y)
	right := float64(q[2].X)
	bottom := float64(q[2].Y)
	if right <= left || bottom <= top {
		return
	}

	u0, v0 := float64(q[0].U), float64(q[0].V)
	u1, v1 := float64(q[2].U), float64(q[2].V)

	// Device-space bounding box of the transformed quad.
	dev := desc.View.MapRect(Rect{MinX: left, MinY: top, MaxX: right, MaxY: bottom})
	bbox := dev.RoundOut()
	clip := t.dst.Bounds()
	if bbox.MinX < clip.Min.X {
		bbox.MinX = clip.Min.X
	}
	if bbox.MinY < clip.Min.Y {
		bbox.MinY = clip.Min.Y
	}
	if bbox.MaxX > clip.Max.X {
		bbox.MaxX = clip.Max.X
	}
	if bbox.MaxY > clip.Max.Y {
		bbox.MaxY = clip.Max.Y
	}

	// Texels per device pixel, for the distance-field antialias filter.
	texelScale := 1.0
	if u1 > u0 && dev.Width() > 0 {
		texelScale = (u1 - u0) / dev.Width()
	}

	cr, cg, cb, ca := unpackColor(q[0].Color)

	for py := bbox.MinY; py < bbox.MaxY; py++ {
		for px := bbox.MinX; px < bbox.MaxX; px++ {
			local := inv.TransformPoint(Pt(float64(px)+0.5, float64(py)+0.5))
			if local.X < left || local.X >= right || local.Y < top || local.Y >= bottom {
				continue
			}
			fu := (local.X - left) / (right - left)
			fv := (local.Y - top) / (bottom - top)
			sample := sampleAtlas(desc.Texture, u0+fu*(u1-u0), v0+fv*(v1-v0))

			var alpha float64
			if desc.Mode == MaskDistanceField {
				// Decode signed texel distance and apply a one-pixel
				// antialias ramp in device space.
				dist := (sample - 0.5) * 2 * distanceFieldPad
				alpha = clamp01(0.5 + dist/texelScale)
			} else {
				alpha = sample
			}
			if alpha <= 0 {
				continue
			}
			t.blendPixel(desc.Settings.Blend, px, py, cr*alpha, cg*alpha, cb*alpha, ca*alpha)
		}
	}
}

// sampleAtlas bilinearly samples the single-channel atlas at texel
// coordinates (u, v), returning a value in [0, 1].
func sampleAtlas(tex AtlasTexture, u, v float64) float64 {
	if tex.Width == 0 || tex.Height == 0 {
		return 0
	}
	u -= 0.5
	v -= 0.5
	x0 := int(math.Floor(u))
	y0 := int(math.Floor(v))
	fx := u - float64(x0)
	fy := v - float64(y0)

	at := func(x, y int) float64 {
		if x < 0 {
			x = 0
		} else if x >= tex.Width {
			x = tex.Width - 1
		}
		if y < 0 {
			y = 0
		} else if y >= tex.Height {
			y = tex.Height - 1
		}
		return float64(tex.Pixels[y*tex.Width+x]) / 255
	}

	top := at(x0, y0)*(1-fx) + at(x0+1, y0)*fx
	bot := at(x0, y0+1)*(1-fx) + at(x0+1, y0+1)*fx
	return top*(1-fy) + bot*fy
}

func unpackColor(packed uint32) (r, g, b, a float64) {
	r = float64(packed&0xff) / 255
	g = float64(packed>>8&0xff) / 255
	b = float64(packed>>16&0xff) / 255
	a = float64(packed>>24&0xff) / 255
	return r, g, b, a
}

// blendPixel composites a premultiplied source sample onto the pixel.
func (t *ImageTarget) blendPixel(mode BlendMode, x, y int, sr, sg, sb, sa float64) {
	o := t.dst.PixOffset(x, y)
	pix := t.dst.Pix[o : o+4 : o+4]

	dr := float64(pix[0]) / 255
	dg := float64(pix[1]) / 255
	db := float64(pix[2]) / 255
	da := float64(pix[3]) / 255

	var r, g, b, a float64
	switch mode {
	case BlendSourceCopy:
		r, g, b, a = sr, sg, sb, sa
	case BlendPlus:
		r, g, b, a = clamp01(sr+dr), clamp01(sg+dg), clamp01(sb+db), clamp01(sa+da)
	default: // BlendSourceOver
		inv := 1 - sa
		r = sr + dr*inv
		g = sg + dg*inv
		b = sb + db*inv
		a = sa + da*inv
	}

	pix[0] = byte(math.Round(r * 255))
	pix[1] = byte(math.Round(g * 255))
	pix[2] = byte(math.Round(b * 255))
	pix[3] = byte(math.Round(a * 255))
}
