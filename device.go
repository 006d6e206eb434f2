package glf

import "github.com/go-gl/mathgl/mgl32"

// BufferTarget selects the binding point of a buffer object.
type BufferTarget uint8

const (
	ArrayBuffer        BufferTarget = iota // GL_ARRAY_BUFFER
	ElementArrayBuffer                     // GL_ELEMENT_ARRAY_BUFFER
)

// String returns the GL name of the target.
func (t BufferTarget) String() string {
	switch t {
	case ArrayBuffer:
		return "ARRAY_BUFFER"
	case ElementArrayBuffer:
		return "ELEMENT_ARRAY_BUFFER"
	default:
		return "UNKNOWN_BUFFER"
	}
}

// BufferUsage is the usage hint passed with buffer data.
type BufferUsage uint8

const (
	StaticDraw  BufferUsage = iota // GL_STATIC_DRAW
	DynamicDraw                    // GL_DYNAMIC_DRAW
	StreamDraw                     // GL_STREAM_DRAW
)

// AttribType is the component type of a vertex attribute.
type AttribType uint8

const (
	Float32 AttribType = iota // GL_FLOAT
	Uint8                     // GL_UNSIGNED_BYTE
)

// Size returns the byte size of one component.
func (t AttribType) Size() int {
	switch t {
	case Uint8:
		return 1
	default:
		return 4
	}
}

// IndexType is the element type of an index buffer.
type IndexType uint8

const (
	IndexUint8  IndexType = iota // GL_UNSIGNED_BYTE
	IndexUint16                  // GL_UNSIGNED_SHORT
	IndexUint32                  // GL_UNSIGNED_INT
)

// DrawMode is the primitive topology of a draw call.
type DrawMode uint8

const (
	TriangleFan   DrawMode = iota // GL_TRIANGLE_FAN
	TriangleStrip                 // GL_TRIANGLE_STRIP
	Triangles                     // GL_TRIANGLES
)

// Device is the graphics context every operation in this package runs
// against. It exposes the subset of OpenGL the sprite layer uses, with info
// logs returned as owned strings.
//
// A Device is bound to the thread that created its context. None of its
// methods may be called concurrently.
type Device interface {
	CreateShader(kind ShaderKind) uint32
	ShaderSource(shader uint32, src string)
	CompileShader(shader uint32)
	ShaderCompiled(shader uint32) bool
	ShaderInfoLog(shader uint32) string
	DeleteShader(shader uint32)

	CreateProgram() uint32
	AttachShader(program, shader uint32)
	DetachShader(program, shader uint32)
	LinkProgram(program uint32)
	ProgramLinked(program uint32) bool
	ProgramInfoLog(program uint32) string
	UseProgram(program uint32)
	DeleteProgram(program uint32)
	UniformLocation(program uint32, name string) int32
	UniformMatrix4(location int32, m *mgl32.Mat4)

	GenBuffer() uint32
	BindBuffer(target BufferTarget, buffer uint32)
	BufferData(target BufferTarget, data []byte, usage BufferUsage)
	DeleteBuffer(buffer uint32)

	GenTexture() uint32
	ActiveTexture(unit uint32)
	BindTexture(texture uint32)
	TexImage2D(width, height int, rgba []byte)
	DeleteTexture(texture uint32)

	EnableVertexAttribArray(index uint32)
	DisableVertexAttribArray(index uint32)
	VertexAttribPointer(index uint32, size int32, typ AttribType, normalized bool, stride int32, offset uintptr)
	DrawElements(mode DrawMode, count int32, typ IndexType, offset uintptr)

	// ReadPixels returns the RGBA contents of the given framebuffer
	// rectangle, bottom row first.
	ReadPixels(x, y, width, height int) []byte
}
