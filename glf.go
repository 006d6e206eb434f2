package glf

import "github.com/go-gl/mathgl/mgl32"

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
type Color struct {
	R, G, B, A float32
}

// ColorWhite is the default vertex color (no tint).
var ColorWhite = Color{1, 1, 1, 1}

// Vec4 returns the color as a vertex attribute value.
func (c Color) Vec4() mgl32.Vec4 {
	return mgl32.Vec4{c.R, c.G, c.B, c.A}
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Intersects reports whether r and other overlap.
// Adjacent rectangles (sharing only an edge) are considered intersecting.
func (r Rect) Intersects(other Rect) bool {
	return r.X <= other.X+other.Width &&
		r.X+r.Width >= other.X &&
		r.Y <= other.Y+other.Height &&
		r.Y+r.Height >= other.Y
}

// ShaderKind identifies a shader stage.
type ShaderKind uint8

const (
	VertexShader   ShaderKind = iota // vertex stage
	FragmentShader                   // fragment stage
)

// String returns the stage name used in diagnostics ("vertex" or "fragment").
func (k ShaderKind) String() string {
	switch k {
	case VertexShader:
		return "vertex"
	case FragmentShader:
		return "fragment"
	default:
		return "unknown"
	}
}

// Direction selects the axis a sprite-sheet animation slides along.
type Direction uint8

const (
	Horizontal Direction = iota // step along U (cells laid out in a row)
	Vertical                    // step along V (cells laid out in a column)
)
