package glf

import (
	"os"
	"path/filepath"
	"testing"
)

const singlePageJSON = `{
  "frames": {
    "hero.png": {
      "frame": {"x": 0, "y": 0, "w": 64, "h": 64},
      "rotated": false,
      "trimmed": false,
      "spriteSourceSize": {"x": 0, "y": 0, "w": 64, "h": 64},
      "sourceSize": {"w": 64, "h": 64}
    },
    "enemy.png": {
      "frame": {"x": 64, "y": 0, "w": 32, "h": 48},
      "rotated": false,
      "trimmed": false,
      "spriteSourceSize": {"x": 0, "y": 0, "w": 32, "h": 48},
      "sourceSize": {"w": 32, "h": 48}
    },
    "trimmed.png": {
      "frame": {"x": 100, "y": 50, "w": 60, "h": 58},
      "rotated": false,
      "trimmed": true,
      "spriteSourceSize": {"x": 2, "y": 3, "w": 60, "h": 58},
      "sourceSize": {"w": 64, "h": 64}
    },
    "rotated.png": {
      "frame": {"x": 128, "y": 0, "w": 64, "h": 32},
      "rotated": true,
      "trimmed": false,
      "spriteSourceSize": {"x": 0, "y": 0, "w": 64, "h": 32},
      "sourceSize": {"w": 32, "h": 64}
    }
  },
  "meta": {
    "image": "atlas.png",
    "size": {"w": 256, "h": 128}
  }
}`

const multiPageJSON = `{
  "textures": [
    {
      "image": "atlas-0.png",
      "frames": {
        "page0_sprite.png": {
          "frame": {"x": 0, "y": 0, "w": 64, "h": 64},
          "sourceSize": {"w": 64, "h": 64}
        }
      }
    },
    {
      "image": "atlas-1.png",
      "frames": {
        "page1_sprite.png": {
          "frame": {"x": 16, "y": 32, "w": 16, "h": 16},
          "sourceSize": {"w": 16, "h": 16}
        }
      }
    }
  ]
}`

func page(w, h int) *Texture { return &Texture{width: w, height: h} }

func TestLoadAtlasSinglePage(t *testing.T) {
	atlas, err := LoadAtlas([]byte(singlePageJSON), []*Texture{page(256, 128)})
	if err != nil {
		t.Fatalf("LoadAtlas: %v", err)
	}
	if got := atlas.Len(); got != 4 {
		t.Errorf("region count = %d, want 4", got)
	}
	r, ok := atlas.Region("enemy.png")
	if !ok {
		t.Fatal("enemy.png missing")
	}
	if r.X != 64 || r.Y != 0 || r.Width != 32 || r.Height != 48 || r.Page != 0 {
		t.Errorf("enemy.png = %+v", r)
	}
}

func TestLoadAtlasTrimmedRegion(t *testing.T) {
	atlas, err := LoadAtlas([]byte(singlePageJSON), []*Texture{page(256, 128)})
	if err != nil {
		t.Fatalf("LoadAtlas: %v", err)
	}
	r, _ := atlas.Region("trimmed.png")
	if r.OffsetX != 2 || r.OffsetY != 3 || r.OriginalW != 64 || r.OriginalH != 64 {
		t.Errorf("trimmed.png = %+v", r)
	}
}

func TestAtlasUV(t *testing.T) {
	atlas, err := LoadAtlas([]byte(singlePageJSON), []*Texture{page(256, 128)})
	if err != nil {
		t.Fatalf("LoadAtlas: %v", err)
	}
	tests := []struct {
		name string
		want UVRect
	}{
		{"hero.png", UVRect{U0: 0, V0: 0, U1: 0.25, V1: 0.5}},
		{"enemy.png", UVRect{U0: 0.25, V0: 0, U1: 0.375, V1: 0.375}},
		{"rotated.png", UVRect{U0: 0.5, V0: 0, U1: 0.625, V1: 0.5, Rotated: true}},
		{"missing.png", FullUV},
	}
	for _, tt := range tests {
		if got := atlas.UV(tt.name); got != tt.want {
			t.Errorf("UV(%q) = %+v, want %+v", tt.name, got, tt.want)
		}
	}
}

func TestAtlasUVRotatedUsesStoredExtent(t *testing.T) {
	const data = `{"frames": {"r": {"frame": {"x": 0, "y": 0, "w": 20, "h": 10}, "rotated": true}}}`
	atlas, err := LoadAtlas([]byte(data), []*Texture{page(100, 100)})
	if err != nil {
		t.Fatalf("LoadAtlas: %v", err)
	}
	want := UVRect{U0: 0, V0: 0, U1: 0.1, V1: 0.2, Rotated: true}
	got := atlas.UV("r")
	if got != want {
		t.Fatalf("UV(r) = %+v, want %+v", got, want)
	}

	// Upright corners: top edge runs down the stored column at U1.
	s := &Sprite{}
	s.SetRegion(got)
	wantUV := [4][2]float32{{0.1, 0}, {0, 0}, {0, 0.2}, {0.1, 0.2}}
	if uv := uvs(s); uv != wantUV {
		t.Errorf("rotated sprite uvs = %v, want %v", uv, wantUV)
	}
}

func TestLoadAtlasMultiPage(t *testing.T) {
	atlas, err := LoadAtlas([]byte(multiPageJSON), []*Texture{page(64, 64), page(64, 64)})
	if err != nil {
		t.Fatalf("LoadAtlas: %v", err)
	}
	r, ok := atlas.Region("page1_sprite.png")
	if !ok || r.Page != 1 {
		t.Fatalf("page1_sprite.png = %+v, ok=%v", r, ok)
	}
	want := UVRect{Page: 1, U0: 0.25, V0: 0.5, U1: 0.5, V1: 0.75}
	if got := atlas.UV("page1_sprite.png"); got != want {
		t.Errorf("UV = %+v, want %+v", got, want)
	}
}

func TestAtlasUVMissingPage(t *testing.T) {
	atlas, err := LoadAtlas([]byte(multiPageJSON), []*Texture{page(64, 64)})
	if err != nil {
		t.Fatalf("LoadAtlas: %v", err)
	}
	if got := atlas.UV("page1_sprite.png"); got != FullUV {
		t.Errorf("UV on absent page = %+v, want FullUV", got)
	}
}

func TestLoadAtlasErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"invalid", `{not json`},
		{"no frames", `{"meta": {}}`},
		{"bad frames", `{"frames": [1, 2]}`},
		{"bad textures", `{"textures": {"a": 1}}`},
	}
	for _, tt := range tests {
		if _, err := LoadAtlas([]byte(tt.data), nil); err == nil {
			t.Errorf("%s: expected error", tt.name)
		}
	}
}

func TestLoadAtlasFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "atlas.json")
	if err := os.WriteFile(path, []byte(singlePageJSON), 0o644); err != nil {
		t.Fatal(err)
	}
	atlas, err := LoadAtlasFile(path, []*Texture{page(256, 128)})
	if err != nil {
		t.Fatalf("LoadAtlasFile: %v", err)
	}
	if atlas.Len() != 4 {
		t.Errorf("Len() = %d", atlas.Len())
	}
	if _, err := LoadAtlasFile(filepath.Join(t.TempDir(), "nope.json"), nil); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestSpriteSetRegion(t *testing.T) {
	s := &Sprite{}
	s.SetRegion(UVRect{U0: 0.25, V0: 0.5, U1: 0.75, V1: 1})
	want := [4][2]float32{{0.25, 0.5}, {0.25, 1}, {0.75, 1}, {0.75, 0.5}}
	if got := uvs(s); got != want {
		t.Errorf("upright uvs = %v, want %v", got, want)
	}

	s.SetRegion(UVRect{U0: 0.25, V0: 0.5, U1: 0.75, V1: 1, Rotated: true})
	want = [4][2]float32{{0.75, 0.5}, {0.25, 0.5}, {0.25, 1}, {0.75, 1}}
	if got := uvs(s); got != want {
		t.Errorf("rotated uvs = %v, want %v", got, want)
	}
}
