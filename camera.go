package glf

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// scroll eases the camera from one point to another. The tween runs from 0
// to 1 and the position is interpolated from it.
type scroll struct {
	from, to mgl64.Vec2
	progress *gween.Tween
}

// Camera produces the orthographic projection for a 2D view. X and Y are
// the world point shown at the center of Viewport; Zoom scales world units
// to pixels (2 shows half as much of the world).
type Camera struct {
	X, Y     float64
	Zoom     float64
	Viewport Rect

	// When BoundsEnabled, Update keeps the visible area inside Bounds.
	BoundsEnabled bool
	Bounds        Rect

	scroll *scroll
}

// NewCamera returns a camera over viewport whose world coordinates match
// screen coordinates until it is moved or zoomed.
func NewCamera(viewport Rect) *Camera {
	center := viewportCenter(viewport)
	return &Camera{X: center.X(), Y: center.Y(), Zoom: 1, Viewport: viewport}
}

// ScrollTo moves the camera to (x, y) over duration seconds, eased by fn.
// It replaces any scroll in progress.
func (c *Camera) ScrollTo(x, y float64, duration float32, fn ease.TweenFunc) {
	c.scroll = &scroll{
		from:     mgl64.Vec2{c.X, c.Y},
		to:       mgl64.Vec2{x, y},
		progress: gween.New(0, 1, duration, fn),
	}
}

// Scrolling reports whether a ScrollTo is still running.
func (c *Camera) Scrolling() bool { return c.scroll != nil }

// SetBounds turns on clamping to bounds.
func (c *Camera) SetBounds(bounds Rect) {
	c.Bounds = bounds
	c.BoundsEnabled = true
}

// ClearBounds turns clamping off.
func (c *Camera) ClearBounds() { c.BoundsEnabled = false }

// Update advances a running scroll by dt seconds, then clamps.
func (c *Camera) Update(dt float32) {
	if s := c.scroll; s != nil {
		t, done := s.progress.Update(dt)
		if done {
			t = 1
			c.scroll = nil
		}
		p := s.from.Add(s.to.Sub(s.from).Mul(float64(t)))
		c.X, c.Y = p.X(), p.Y()
	}
	if c.BoundsEnabled {
		c.X = clampAxis(c.X, c.Bounds.X, c.Bounds.Width, c.Viewport.Width/(2*c.Zoom))
		c.Y = clampAxis(c.Y, c.Bounds.Y, c.Bounds.Height, c.Viewport.Height/(2*c.Zoom))
	}
}

// clampAxis keeps a camera coordinate whose view extends half either side
// inside [lo, lo+size]. A range narrower than the view centers it.
func clampAxis(v, lo, size, half float64) float64 {
	if size < 2*half {
		return lo + size/2
	}
	return mgl64.Clamp(v, lo+half, lo+size-half)
}

// VisibleBounds returns the world-space rectangle the camera sees.
func (c *Camera) VisibleBounds() Rect {
	w, h := c.Viewport.Width/c.Zoom, c.Viewport.Height/c.Zoom
	return Rect{X: c.X - w/2, Y: c.Y - h/2, Width: w, Height: h}
}

// Projection returns the orthographic projection of the visible area, with
// Y increasing downward.
func (c *Camera) Projection() mgl32.Mat4 {
	v := c.VisibleBounds()
	return Ortho(float32(v.X), float32(v.X+v.Width), float32(v.Y+v.Height), float32(v.Y), -1, 1)
}

// WorldToScreen maps a world point into viewport pixels.
func (c *Camera) WorldToScreen(wx, wy float64) (sx, sy float64) {
	p := mgl64.Vec2{wx - c.X, wy - c.Y}.Mul(c.Zoom).Add(viewportCenter(c.Viewport))
	return p.X(), p.Y()
}

// ScreenToWorld maps viewport pixels (a cursor position, say) into the world.
func (c *Camera) ScreenToWorld(sx, sy float64) (wx, wy float64) {
	p := mgl64.Vec2{sx, sy}.Sub(viewportCenter(c.Viewport)).Mul(1 / c.Zoom).Add(mgl64.Vec2{c.X, c.Y})
	return p.X(), p.Y()
}

func viewportCenter(r Rect) mgl64.Vec2 {
	return mgl64.Vec2{r.X + r.Width/2, r.Y + r.Height/2}
}
