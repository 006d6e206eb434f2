package glf

import (
	"fmt"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// AnimationWindow is the UV sub-rectangle a sprite currently samples from a
// uniform sprite-sheet grid.
type AnimationWindow struct {
	OriginU, OriginV float32
	// CellWidth is 1/columns and CellHeight is 1/rows.
	CellWidth, CellHeight float32
}

// Animator slides a sprite's texture window across a grid of equally sized
// cells. Its state is the current (column, row) cell; every transition
// rewrites all four UVs from that state, so the quad keeps its shape and no
// rounding error accumulates.
//
// Cells outside the grid are not wrapped: Advance past the last column keeps
// sliding, and callers that need wrapping use SetFrame or Reset.
type Animator struct {
	sprite     *Sprite
	originU    float32
	originV    float32
	cols, rows int
	dir        Direction
	col, row   int
}

// NewAnimator binds an animator to s with the grid's first cell at origin
// (in UV space) and grid = {columns, rows}. The sprite's UVs are set to that
// first cell: top-left (u0,v0), bottom-left (u0,v0+1/rows),
// bottom-right (u0+1/cols,v0+1/rows), top-right (u0+1/cols,v0).
func NewAnimator(s *Sprite, origin [2]float32, grid [2]int) (*Animator, error) {
	if s == nil {
		return nil, ErrNilSprite
	}
	if grid[0] <= 0 || grid[1] <= 0 {
		return nil, fmt.Errorf("%w: got %dx%d", ErrInvalidGrid, grid[0], grid[1])
	}
	a := &Animator{
		sprite:  s,
		originU: origin[0],
		originV: origin[1],
		cols:    grid[0],
		rows:    grid[1],
	}
	a.apply()
	return a, nil
}

// SetDirection selects the axis Advance steps along. Horizontal (the
// default) slides U; Vertical slides V for sheets laid out in a column.
func (a *Animator) SetDirection(d Direction) { a.dir = d }

// Direction returns the stepping axis.
func (a *Animator) Direction() Direction { return a.dir }

// Grid returns the column and row counts.
func (a *Animator) Grid() (cols, rows int) { return a.cols, a.rows }

// Cell returns the current column and row.
func (a *Animator) Cell() (col, row int) { return a.col, a.row }

// Advance steps the window by one cell along the animator's direction.
func (a *Animator) Advance() {
	if a.dir == Vertical {
		a.row++
	} else {
		a.col++
	}
	a.apply()
}

// Reset returns the window to the first cell.
func (a *Animator) Reset() {
	a.col, a.row = 0, 0
	a.apply()
}

// SetCell moves the window to an explicit cell.
func (a *Animator) SetCell(col, row int) {
	a.col, a.row = col, row
	a.apply()
}

// Frames returns the number of cells in the grid.
func (a *Animator) Frames() int { return a.cols * a.rows }

// Frame returns the current cell as a frame index, counting along the
// animator's direction first.
func (a *Animator) Frame() int {
	if a.dir == Vertical {
		return a.col*a.rows + a.row
	}
	return a.row*a.cols + a.col
}

// SetFrame moves the window to frame i, wrapping into the next row (or
// column, for vertical sheets) at the grid edge.
func (a *Animator) SetFrame(i int) {
	if a.dir == Vertical {
		a.SetCell(i/a.rows, i%a.rows)
		return
	}
	a.SetCell(i%a.cols, i/a.cols)
}

// Window returns the current UV sub-rectangle.
func (a *Animator) Window() AnimationWindow {
	w := AnimationWindow{
		CellWidth:  1 / float32(a.cols),
		CellHeight: 1 / float32(a.rows),
	}
	w.OriginU = a.originU + float32(a.col)*w.CellWidth
	w.OriginV = a.originV + float32(a.row)*w.CellHeight
	return w
}

func (a *Animator) apply() {
	w := a.Window()
	a.sprite.SetUV(w.OriginU, w.OriginV, w.OriginU+w.CellWidth, w.OriginV+w.CellHeight)
}

// Animate sets s to the first cell of the grid at origin and then advances
// it exactly steps cells horizontally. Negative steps count as zero.
func Animate(s *Sprite, origin [2]float32, grid [2]int, steps int) error {
	a, err := NewAnimator(s, origin, grid)
	if err != nil {
		return err
	}
	for i := 0; i < steps; i++ {
		a.Advance()
	}
	return nil
}

// Player drives an Animator through a fixed number of frames over a
// duration, using a tween to map elapsed time to a frame index. Call
// Update(dt) each frame; there is no global animation manager.
type Player struct {
	anim     *Animator
	frames   int
	duration float32
	tween    *gween.Tween

	// Loop restarts playback from the first frame once the last is reached.
	Loop bool
	// Done is set when a non-looping playback has shown its last frame.
	Done bool
	// Paused holds the current frame; Update does nothing while set.
	Paused bool
}

// NewPlayer plays frames cells of anim over duration seconds with linear
// timing, starting from the first frame.
func NewPlayer(anim *Animator, frames int, duration float32, loop bool) *Player {
	if frames < 1 {
		frames = 1
	}
	p := &Player{anim: anim, frames: frames, duration: duration, Loop: loop}
	p.tween = gween.New(0, float32(frames), duration, ease.Linear)
	anim.SetFrame(0)
	return p
}

// SetEase replaces the timing curve and restarts playback.
func (p *Player) SetEase(fn ease.TweenFunc) {
	p.tween = gween.New(0, float32(p.frames), p.duration, fn)
	p.Done = false
	p.anim.SetFrame(0)
}

// Animator returns the driven animator.
func (p *Player) Animator() *Animator { return p.anim }

// Update advances playback by dt seconds and moves the animator to the
// frame for the new time.
func (p *Player) Update(dt float32) {
	if p.Done || p.Paused {
		return
	}
	val, finished := p.tween.Update(dt)
	frame := int(val)
	if frame >= p.frames {
		frame = p.frames - 1
	}
	if frame < 0 {
		frame = 0
	}
	if frame != p.anim.Frame() {
		p.anim.SetFrame(frame)
	}
	if finished {
		if p.Loop {
			p.tween.Reset()
		} else {
			p.Done = true
		}
	}
}
