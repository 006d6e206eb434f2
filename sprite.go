package glf

import "github.com/go-gl/mathgl/mgl32"

// Sprite is a textured quad: exactly four vertices, a texture, and the
// vertex and index buffers it is uploaded through on every draw.
//
// Vertex order is top-left, bottom-left, bottom-right, top-right, matching
// the fan order 0,1,2,3.
type Sprite struct {
	// Vertices holds the quad. Animators and SetUV/SetRegion write the UV
	// fields; the renderer uploads the whole array each draw.
	Vertices [4]Vertex

	dev         Device
	texture     *Texture
	ownsTexture bool
	vbo         uint32
	ibo         uint32

	x, y, width, height float32
}

// NewSprite loads the image at path into a texture and builds a quad at
// (x, y) with the image's pixel size. The sprite owns the texture.
func NewSprite(dev Device, path string, x, y float32) (*Sprite, error) {
	tex, err := LoadTexture(dev, path)
	if err != nil {
		return nil, err
	}
	w, h := tex.Size()
	s := NewSpriteFromTexture(dev, tex, x, y, float32(w), float32(h))
	s.ownsTexture = true
	return s, nil
}

// NewSpriteFromTexture builds a quad of the given size sampling the whole of
// tex. The texture stays owned by the caller.
func NewSpriteFromTexture(dev Device, tex *Texture, x, y, width, height float32) *Sprite {
	s := &Sprite{
		dev:     dev,
		texture: tex,
		vbo:     dev.GenBuffer(),
		ibo:     dev.GenBuffer(),
	}
	s.SetColor(ColorWhite)
	s.SetUV(0, 0, 1, 1)
	s.SetRect(x, y, width, height)
	return s
}

// SetRect positions the quad with its top-left corner at (x, y).
func (s *Sprite) SetRect(x, y, width, height float32) {
	s.x, s.y, s.width, s.height = x, y, width, height
	s.Vertices[0].Position = vec4(x, y)
	s.Vertices[1].Position = vec4(x, y+height)
	s.Vertices[2].Position = vec4(x+width, y+height)
	s.Vertices[3].Position = vec4(x+width, y)
}

// SetPosition moves the quad, keeping its size.
func (s *Sprite) SetPosition(x, y float32) {
	s.SetRect(x, y, s.width, s.height)
}

// Position returns the top-left corner.
func (s *Sprite) Position() (x, y float32) { return s.x, s.y }

// Size returns the quad size.
func (s *Sprite) Size() (width, height float32) { return s.width, s.height }

// Bounds returns the quad as a Rect.
func (s *Sprite) Bounds() Rect {
	return Rect{X: float64(s.x), Y: float64(s.y), Width: float64(s.width), Height: float64(s.height)}
}

// Contains reports whether the point (for example a cursor position) lies on the quad.
func (s *Sprite) Contains(x, y float64) bool {
	return s.Bounds().Contains(x, y)
}

// SetColor sets the second vertex attribute of all four corners.
func (s *Sprite) SetColor(c Color) {
	v := c.Vec4()
	for i := range s.Vertices {
		s.Vertices[i].Color = v
	}
}

// SetUV assigns the texture window (u0,v0)-(u1,v1) to the four corners.
func (s *Sprite) SetUV(u0, v0, u1, v1 float32) {
	s.Vertices[0].UV = mgl32.Vec2{u0, v0}
	s.Vertices[1].UV = mgl32.Vec2{u0, v1}
	s.Vertices[2].UV = mgl32.Vec2{u1, v1}
	s.Vertices[3].UV = mgl32.Vec2{u1, v0}
}

// Texture returns the sampled texture.
func (s *Sprite) Texture() *Texture { return s.texture }

// VertexBuffer returns the vertex buffer handle.
func (s *Sprite) VertexBuffer() uint32 { return s.vbo }

// IndexBuffer returns the index buffer handle.
func (s *Sprite) IndexBuffer() uint32 { return s.ibo }

// Delete releases both buffers and, when the sprite loaded it, the texture.
// Safe to call more than once.
func (s *Sprite) Delete() {
	if s.vbo != 0 {
		s.dev.DeleteBuffer(s.vbo)
		s.vbo = 0
	}
	if s.ibo != 0 {
		s.dev.DeleteBuffer(s.ibo)
		s.ibo = 0
	}
	if s.ownsTexture && s.texture != nil {
		s.texture.Delete()
	}
}

func vec4(x, y float32) mgl32.Vec4 {
	return mgl32.Vec4{x, y, 0, 1}
}
