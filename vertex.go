package glf

import (
	"unsafe"

	"github.com/go-gl/mathgl/mgl32"
)

// Vertex is one corner of a sprite quad. Its memory layout is fixed:
// position at byte 0, color at byte 16, uv at byte 32, 40 bytes total.
type Vertex struct {
	Position mgl32.Vec4
	Color    mgl32.Vec4
	UV       mgl32.Vec2
}

// VertexSize is the byte stride of a Vertex.
const VertexSize = int(unsafe.Sizeof(Vertex{}))

// VertexAttrib describes one vertex attribute inside an interleaved buffer.
type VertexAttrib struct {
	Index      uint32     // shader attribute location
	Size       int32      // component count
	Type       AttribType // component type
	Normalized bool
	Offset     uintptr // byte offset within a vertex
}

// VertexLayout is the full attribute description of an interleaved vertex
// buffer. The renderer consumes it instead of hard-coding attribute calls.
type VertexLayout struct {
	Stride  int32
	Attribs []VertexAttrib
}

// QuadLayout is the layout of Vertex: position (4 floats), color (4 floats)
// and uv (2 floats) at locations 0, 1 and 2.
var QuadLayout = VertexLayout{
	Stride: int32(VertexSize),
	Attribs: []VertexAttrib{
		{Index: 0, Size: 4, Type: Float32, Offset: unsafe.Offsetof(Vertex{}.Position)},
		{Index: 1, Size: 4, Type: Float32, Offset: unsafe.Offsetof(Vertex{}.Color)},
		{Index: 2, Size: 2, Type: Float32, Offset: unsafe.Offsetof(Vertex{}.UV)},
	},
}

// quadIndices is the triangle-fan order every sprite is drawn with.
var quadIndices = [4]byte{0, 1, 2, 3}

// QuadIndices returns a copy of the fixed fan index order.
func QuadIndices() [4]byte { return quadIndices }

// vertexBytes views the quad's vertices as raw bytes for upload. The result
// aliases q and must not outlive it.
func vertexBytes(q *[4]Vertex) []byte {
	return unsafe.Slice((*byte)(unsafe.Pointer(&q[0])), len(q)*VertexSize)
}
