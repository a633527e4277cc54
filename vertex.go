package smallpath

import "github.com/gogpu/gputypes"

// Vertex is one corner of a masked quad: device-space position, packed
// premultiplied color, and atlas texel coordinates. 16 bytes.
type Vertex struct {
	X, Y  float32
	Color uint32
	U, V  uint16
}

// Quad geometry constants. Indices are 16-bit, which bounds the number
// of quads one draw call can address.
const (
	VertsPerQuad   = 4
	IndicesPerQuad = 6

	maxQuadsPerDraw = (1 << 16) / VertsPerQuad
)

// QuadIndices returns the index stream for quadCount quads laid out
// consecutively in a vertex buffer, two triangles per quad.
func QuadIndices(quadCount int) []uint16 {
	idx := make([]uint16, 0, quadCount*IndicesPerQuad)
	for q := 0; q < quadCount; q++ {
		base := uint16(q * VertsPerQuad)
		idx = append(idx, base, base+1, base+2, base, base+2, base+3)
	}
	return idx
}

// AtlasTexture describes the mask atlas backing texture so a target can
// upload or sample it. Pixels is one byte per texel, row-major, and
// aliases the live atlas storage; targets must consume it before the
// next insertion.
type AtlasTexture struct {
	Pixels        []byte
	Width, Height int
	Format        gputypes.TextureFormat
}

// GeometryDesc describes how a vertex stream is to be drawn: the mask
// interpretation, the transforms, the pipeline settings, and the atlas
// texture the texel coordinates address.
type GeometryDesc struct {
	// Mode tells the consumer whether texels are distance-field encoded
	// or plain coverage.
	Mode MaskMode

	// View is the transform from the vertex positions to device space.
	// Distance-field quads carry local-space positions and need it;
	// bitmap quads are pre-transformed to device space and carry only
	// the residual fractional translation here.
	View Matrix

	// Local is the inverse view transform for shaders sampling in shape
	// local space. Valid only when HasLocal is set.
	Local    Matrix
	HasLocal bool

	// Settings is the pipeline state the batch was recorded with.
	Settings DrawSettings

	// Texture is the atlas backing the U, V coordinates.
	Texture AtlasTexture
}

// DrawTarget consumes prepared geometry. Implementations translate the
// vertex stream into backend draw calls, or composite it directly for
// CPU targets.
type DrawTarget interface {
	// NextDrawToken returns the token that will identify the next Draw
	// call. Atlas regions marked with it are part of the submission
	// under construction and are protected from eviction.
	NextDrawToken() DrawToken

	// Draw submits len(vertices)/VertsPerQuad quads. Consuming the call
	// advances the draw token.
	Draw(desc GeometryDesc, vertices []Vertex) error
}
