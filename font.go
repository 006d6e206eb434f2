package glf

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// DefaultFirstGlyph is the code point of the first cell of a glyph sheet.
const DefaultFirstGlyph = ' '

// Font is a bitmap font: a texture holding equally sized glyph cells laid
// out row-major by code point, starting at First.
type Font struct {
	First rune
	// Scale multiplies the cell size when drawing.
	Scale float32

	texture     *Texture
	ownsTexture bool
	cols, rows  int
	glyph       *Sprite
}

// LoadFont loads a glyph sheet image with cols x rows cells.
func LoadFont(dev Device, path string, cols, rows int) (*Font, error) {
	tex, err := LoadTexture(dev, path)
	if err != nil {
		return nil, err
	}
	f, err := NewFont(dev, tex, cols, rows)
	if err != nil {
		tex.Delete()
		return nil, err
	}
	f.ownsTexture = true
	return f, nil
}

// NewFont builds a font over an existing glyph sheet texture. The texture
// stays owned by the caller.
func NewFont(dev Device, tex *Texture, cols, rows int) (*Font, error) {
	if cols <= 0 || rows <= 0 {
		return nil, fmt.Errorf("%w: font sheet %dx%d", ErrInvalidGrid, cols, rows)
	}
	f := &Font{
		First:   DefaultFirstGlyph,
		Scale:   1,
		texture: tex,
		cols:    cols,
		rows:    rows,
	}
	w, h := f.CellSize()
	f.glyph = NewSpriteFromTexture(dev, tex, 0, 0, w, h)
	return f, nil
}

// CellSize returns the unscaled pixel size of one glyph.
func (f *Font) CellSize() (width, height float32) {
	tw, th := f.texture.Size()
	return float32(tw) / float32(f.cols), float32(th) / float32(f.rows)
}

// Glyph returns the UV rectangle for r, or false if r has no cell.
func (f *Font) Glyph(r rune) (UVRect, bool) {
	i := int(r - f.First)
	if r < f.First || i >= f.cols*f.rows {
		return UVRect{}, false
	}
	cw, ch := 1/float32(f.cols), 1/float32(f.rows)
	col, row := i%f.cols, i/f.cols
	u0, v0 := float32(col)*cw, float32(row)*ch
	return UVRect{U0: u0, V0: v0, U1: u0 + cw, V1: v0 + ch}, true
}

// Measure returns the size text occupies when drawn.
func (f *Font) Measure(text string) (width, height float32) {
	cw, ch := f.CellSize()
	cw, ch = cw*f.Scale, ch*f.Scale
	var line, longest float32
	lines := 1
	for _, r := range text {
		if r == '\n' {
			lines++
			line = 0
			continue
		}
		line += cw
		longest = max(longest, line)
	}
	return longest, float32(lines) * ch
}

// Draw renders text with its top-left corner at (x, y), one quad per glyph.
// Runes without a cell are skipped but still advance the pen, as do spaces;
// '\n' starts a new line.
func (f *Font) Draw(r *Renderer, program *Program, projection mgl32.Mat4, text string, x, y float32) {
	cw, ch := f.CellSize()
	cw, ch = cw*f.Scale, ch*f.Scale
	penX, penY := x, y
	for _, c := range text {
		if c == '\n' {
			penX = x
			penY += ch
			continue
		}
		if uv, ok := f.Glyph(c); ok && c != ' ' {
			f.glyph.SetRect(penX, penY, cw, ch)
			f.glyph.SetRegion(uv)
			r.Draw(f.glyph, program, projection)
			r.stats.Glyphs++
		}
		penX += cw
	}
}

// Texture returns the glyph sheet.
func (f *Font) Texture() *Texture { return f.texture }

// Delete releases the glyph quad's buffers and, when the font loaded it,
// the glyph sheet.
func (f *Font) Delete() {
	f.glyph.Delete()
	if f.ownsTexture {
		f.texture.Delete()
	}
}
