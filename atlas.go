package glf

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/go-gl/mathgl/mgl32"
)

// Region describes a named pixel rectangle within an atlas page.
type Region struct {
	Page      int // index into Atlas.Pages
	X, Y      int // top-left corner within the page
	Width     int // upright width; a rotated frame occupies Height pixels across
	Height    int // upright height; a rotated frame occupies Width pixels down
	OriginalW int // untrimmed sprite width
	OriginalH int // untrimmed sprite height
	OffsetX   int // trim offset
	OffsetY   int
	Rotated   bool // stored 90 degrees clockwise in the page
}

// UVRect is a region normalized against its page texture.
type UVRect struct {
	Page           int
	U0, V0, U1, V1 float32
	Rotated        bool
}

// FullUV samples a whole texture.
var FullUV = UVRect{U1: 1, V1: 1}

// Atlas holds the page textures of a TexturePacker sheet and its named regions.
type Atlas struct {
	Pages   []*Texture
	regions map[string]Region
}

// Region returns the named region.
func (a *Atlas) Region(name string) (Region, bool) {
	r, ok := a.regions[name]
	return r, ok
}

// Len returns the number of regions in the atlas.
func (a *Atlas) Len() int { return len(a.regions) }

// UV returns the rectangle the named region occupies on its page,
// normalized against the page size. A rotated region is stored sideways, so
// its extent on the page is Height across by Width down. A missing
// name (or a region on a page that was not supplied) is logged and maps to
// the whole first page.
func (a *Atlas) UV(name string) UVRect {
	r, ok := a.regions[name]
	if !ok || r.Page >= len(a.Pages) || a.Pages[r.Page] == nil {
		Logger().Warn("glf: atlas region not found", "name", name)
		return FullUV
	}
	w, h := a.Pages[r.Page].Size()
	if w == 0 || h == 0 {
		return FullUV
	}
	fw, fh := float32(w), float32(h)
	sw, sh := r.Width, r.Height
	if r.Rotated {
		sw, sh = sh, sw
	}
	return UVRect{
		Page:    r.Page,
		U0:      float32(r.X) / fw,
		V0:      float32(r.Y) / fh,
		U1:      float32(r.X+sw) / fw,
		V1:      float32(r.Y+sh) / fh,
		Rotated: r.Rotated,
	}
}

// NewSprite builds a quad at (x, y) showing the named region upright, sized
// to the region's frame. The page texture stays owned by the
// caller.
func (a *Atlas) NewSprite(dev Device, name string, x, y float32) (*Sprite, error) {
	r, ok := a.regions[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrRegionNotFound, name)
	}
	if r.Page >= len(a.Pages) || a.Pages[r.Page] == nil {
		return nil, fmt.Errorf("glf: atlas region %q: page %d not loaded", name, r.Page)
	}
	s := NewSpriteFromTexture(dev, a.Pages[r.Page], x, y, float32(r.Width), float32(r.Height))
	s.SetRegion(a.UV(name))
	return s, nil
}

// LoadAtlasFile reads a TexturePacker JSON file. See LoadAtlas.
func LoadAtlasFile(path string, pages []*Texture) (*Atlas, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("glf: read atlas: %w", err)
	}
	return LoadAtlas(data, pages)
}

// LoadAtlas parses TexturePacker JSON data and associates the given page
// textures. Both the hash format (single "frames" object) and the array
// format ("textures" array with per-page frame lists) are accepted.
func LoadAtlas(jsonData []byte, pages []*Texture) (*Atlas, error) {
	var head struct {
		Frames   json.RawMessage `json:"frames"`
		Textures json.RawMessage `json:"textures"`
	}
	if err := json.Unmarshal(jsonData, &head); err != nil {
		return nil, fmt.Errorf("glf: parse atlas JSON: %w", err)
	}

	atlas := &Atlas{
		Pages:   pages,
		regions: make(map[string]Region),
	}

	switch {
	case head.Textures != nil:
		if err := parseArrayFormat(head.Textures, atlas); err != nil {
			return nil, err
		}
	case head.Frames != nil:
		if err := parseHashFrames(head.Frames, 0, atlas); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("glf: atlas JSON has neither \"frames\" nor \"textures\" key")
	}
	return atlas, nil
}

type jsonRect struct {
	X int `json:"x"`
	Y int `json:"y"`
	W int `json:"w"`
	H int `json:"h"`
}

type jsonSize struct {
	W int `json:"w"`
	H int `json:"h"`
}

type jsonFrame struct {
	Frame            jsonRect `json:"frame"`
	Rotated          bool     `json:"rotated"`
	Trimmed          bool     `json:"trimmed"`
	SpriteSourceSize jsonRect `json:"spriteSourceSize"`
	SourceSize       jsonSize `json:"sourceSize"`
}

type jsonTexturePage struct {
	Image  string               `json:"image"`
	Frames map[string]jsonFrame `json:"frames"`
}

func parseHashFrames(raw json.RawMessage, page int, atlas *Atlas) error {
	var frames map[string]jsonFrame
	if err := json.Unmarshal(raw, &frames); err != nil {
		return fmt.Errorf("glf: parse atlas frames: %w", err)
	}
	for name, f := range frames {
		atlas.regions[name] = frameToRegion(f, page)
	}
	return nil
}

func parseArrayFormat(raw json.RawMessage, atlas *Atlas) error {
	var textures []jsonTexturePage
	if err := json.Unmarshal(raw, &textures); err != nil {
		return fmt.Errorf("glf: parse atlas textures array: %w", err)
	}
	for i, tex := range textures {
		for name, f := range tex.Frames {
			atlas.regions[name] = frameToRegion(f, i)
		}
	}
	return nil
}

func frameToRegion(f jsonFrame, page int) Region {
	return Region{
		Page:      page,
		X:         f.Frame.X,
		Y:         f.Frame.Y,
		Width:     f.Frame.W,
		Height:    f.Frame.H,
		OriginalW: f.SourceSize.W,
		OriginalH: f.SourceSize.H,
		OffsetX:   f.SpriteSourceSize.X,
		OffsetY:   f.SpriteSourceSize.Y,
		Rotated:   f.Rotated,
	}
}

// SetRegion points the sprite's UVs at r. A rotated region is stored
// clockwise in the page, so its corners are assigned counter-clockwise to
// bring the image upright.
func (s *Sprite) SetRegion(r UVRect) {
	if !r.Rotated {
		s.SetUV(r.U0, r.V0, r.U1, r.V1)
		return
	}
	s.Vertices[0].UV = mgl32.Vec2{r.U1, r.V0}
	s.Vertices[1].UV = mgl32.Vec2{r.U0, r.V0}
	s.Vertices[2].UV = mgl32.Vec2{r.U0, r.V1}
	s.Vertices[3].UV = mgl32.Vec2{r.U1, r.V1}
}
