package glf

import "github.com/go-gl/mathgl/mgl32"

// Renderer issues one textured-quad draw per sprite. It keeps no GPU state
// between draws: every Draw respecifies both of the sprite's buffers and
// rebinds everything it uses.
type Renderer struct {
	dev    Device
	layout VertexLayout
	stats  FrameStats
}

// NewRenderer returns a Renderer drawing Vertex quads with QuadLayout.
func NewRenderer(dev Device) *Renderer {
	return &Renderer{dev: dev, layout: QuadLayout}
}

// Layout returns the vertex layout the renderer declares each draw.
func (r *Renderer) Layout() VertexLayout { return r.layout }

// Draw uploads the sprite's quad and fan indices, then draws it with
// program, sampling the sprite's texture on unit 0 and uploading projection
// into the program's projection uniform.
//
// A nil sprite or program, or a sprite whose buffers were deleted, draws
// nothing. Upload failures are not detected.
func (r *Renderer) Draw(s *Sprite, program *Program, projection mgl32.Mat4) {
	if s == nil || program == nil || s.vbo == 0 || s.ibo == 0 {
		return
	}
	dev := r.dev

	vb := vertexBytes(&s.Vertices)
	dev.BindBuffer(ArrayBuffer, s.vbo)
	dev.BufferData(ArrayBuffer, vb, StaticDraw)

	idx := quadIndices
	dev.BindBuffer(ElementArrayBuffer, s.ibo)
	dev.BufferData(ElementArrayBuffer, idx[:], StaticDraw)
	dev.BindBuffer(ElementArrayBuffer, 0)

	program.Use()

	var tex uint32
	if s.texture != nil {
		tex = s.texture.handle
	}
	dev.ActiveTexture(0)
	dev.BindTexture(tex)

	program.SetProjection(projection)

	for _, a := range r.layout.Attribs {
		dev.EnableVertexAttribArray(a.Index)
	}

	dev.BindBuffer(ArrayBuffer, s.vbo)
	dev.BindBuffer(ElementArrayBuffer, s.ibo)
	for _, a := range r.layout.Attribs {
		dev.VertexAttribPointer(a.Index, a.Size, a.Type, a.Normalized, r.layout.Stride, a.Offset)
	}

	dev.DrawElements(TriangleFan, int32(len(idx)), IndexUint8, 0)

	// Leave no attribute arrays or buffer bindings behind for the next draw.
	for _, a := range r.layout.Attribs {
		dev.DisableVertexAttribArray(a.Index)
	}
	dev.BindBuffer(ArrayBuffer, 0)
	dev.BindBuffer(ElementArrayBuffer, 0)
	dev.BindTexture(0)

	r.stats.DrawCalls++
	r.stats.VertexBytes += len(vb)
	r.stats.IndexBytes += len(idx)
}

// Stats returns the counters accumulated since the last ResetStats.
func (r *Renderer) Stats() FrameStats { return r.stats }

// ResetStats zeroes the per-frame counters.
func (r *Renderer) ResetStats() { r.stats = FrameStats{} }
