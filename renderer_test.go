package glf_test

import (
	"bytes"
	"encoding/binary"
	"image"
	"math"
	"slices"
	"strings"
	"testing"

	"github.com/phanxgames/glf"
	"github.com/phanxgames/glf/gltest"
)

func newTestProgram(t *testing.T, dev *gltest.Device) *glf.Program {
	t.Helper()
	b := glf.NewBuilder(dev, glf.BuildConfig{Diagnostics: &bytes.Buffer{}})
	prog, err := b.LinkSources(glf.DefaultVertexSource, glf.DefaultFragmentSource)
	if err != nil {
		t.Fatalf("LinkSources: %v", err)
	}
	return prog
}

func newTestSprite(dev *gltest.Device) (*glf.Sprite, *glf.Texture) {
	tex := glf.NewTexture(dev, image.NewRGBA(image.Rect(0, 0, 8, 4)))
	return glf.NewSpriteFromTexture(dev, tex, 10, 20, 32, 16), tex
}

func floatAt(b []byte, off int) float32 {
	return math.Float32frombits(binary.NativeEndian.Uint32(b[off : off+4]))
}

func TestRendererDrawSequence(t *testing.T) {
	dev := gltest.New()
	prog := newTestProgram(t, dev)
	sprite, tex := newTestSprite(dev)
	r := glf.NewRenderer(dev)
	proj := glf.ScreenOrtho(800, 600)

	r.Draw(sprite, prog, proj)

	if len(dev.Errors) != 0 {
		t.Fatalf("device errors: %v", dev.Errors)
	}
	if len(dev.Draws) != 1 {
		t.Fatalf("draws = %d, want 1", len(dev.Draws))
	}
	dc := dev.Draws[0]
	if dc.Mode != glf.TriangleFan || dc.Count != 4 || dc.IndexType != glf.IndexUint8 || dc.Offset != 0 {
		t.Errorf("draw = mode %d count %d type %d offset %d", dc.Mode, dc.Count, dc.IndexType, dc.Offset)
	}
	if dc.Program != prog.Handle() {
		t.Errorf("program = %d, want %d", dc.Program, prog.Handle())
	}
	if dc.Texture != tex.Handle() || dc.TextureUnit != 0 {
		t.Errorf("texture = %d on unit %d, want %d on 0", dc.Texture, dc.TextureUnit, tex.Handle())
	}
	if dc.ArrayBuffer != sprite.VertexBuffer() || dc.ElementBuffer != sprite.IndexBuffer() {
		t.Errorf("buffers = %d/%d, want %d/%d", dc.ArrayBuffer, dc.ElementBuffer, sprite.VertexBuffer(), sprite.IndexBuffer())
	}
	if !slices.Equal(dc.Enabled, []uint32{0, 1, 2}) {
		t.Errorf("enabled = %v, want [0 1 2]", dc.Enabled)
	}
	wantPtrs := map[uint32]gltest.AttribPointer{
		0: {Size: 4, Type: glf.Float32, Stride: 40, Offset: 0, Buffer: sprite.VertexBuffer()},
		1: {Size: 4, Type: glf.Float32, Stride: 40, Offset: 16, Buffer: sprite.VertexBuffer()},
		2: {Size: 2, Type: glf.Float32, Stride: 40, Offset: 32, Buffer: sprite.VertexBuffer()},
	}
	for i, want := range wantPtrs {
		if dc.Pointers[i] != want {
			t.Errorf("pointer %d = %+v, want %+v", i, dc.Pointers[i], want)
		}
	}
	if !bytes.Equal(dc.Indices, []byte{0, 1, 2, 3}) {
		t.Errorf("indices = %v, want [0 1 2 3]", dc.Indices)
	}
	if len(dc.Vertices) != 4*glf.VertexSize {
		t.Fatalf("vertex bytes = %d, want %d", len(dc.Vertices), 4*glf.VertexSize)
	}
	// bottom-right corner position
	if x, y := floatAt(dc.Vertices, 2*40), floatAt(dc.Vertices, 2*40+4); x != 42 || y != 36 {
		t.Errorf("vertex 2 position = (%v,%v), want (42,36)", x, y)
	}
	if dc.Projection != proj {
		t.Errorf("projection = %v, want %v", dc.Projection, proj)
	}

	if dev.ArrayBinding != 0 || dev.ElementBinding != 0 || dev.TextureBinding != 0 {
		t.Errorf("bindings left behind: array %d element %d texture %d",
			dev.ArrayBinding, dev.ElementBinding, dev.TextureBinding)
	}
	if len(dev.EnabledAttribs) != 0 {
		t.Errorf("attribute arrays left enabled: %v", dev.EnabledList())
	}
}

func TestRendererCustomProjectionUniform(t *testing.T) {
	dev := gltest.New()
	b := glf.NewBuilder(dev, glf.BuildConfig{Diagnostics: &bytes.Buffer{}, ProjectionUniform: "uViewProj"})
	vert := strings.ReplaceAll(glf.DefaultVertexSource, "Projection", "uViewProj")
	prog, err := b.LinkSources(vert, glf.DefaultFragmentSource)
	if err != nil {
		t.Fatalf("LinkSources: %v", err)
	}
	if prog.ProjectionLocation() < 0 {
		t.Fatal("uViewProj not resolved")
	}
	sprite, _ := newTestSprite(dev)

	proj := glf.ScreenOrtho(320, 240)
	glf.NewRenderer(dev).Draw(sprite, prog, proj)
	if len(dev.Draws) != 1 {
		t.Fatalf("draws = %d, want 1", len(dev.Draws))
	}
	if got := dev.Draws[0].Projection; got != proj {
		t.Errorf("projection = %v, want %v", got, proj)
	}
}

func TestRendererDrawIsIdempotent(t *testing.T) {
	dev := gltest.New()
	prog := newTestProgram(t, dev)
	sprite, _ := newTestSprite(dev)
	r := glf.NewRenderer(dev)
	proj := glf.ScreenOrtho(800, 600)

	dev.ResetCalls()
	r.Draw(sprite, prog, proj)
	first := slices.Clone(dev.Calls)

	dev.ResetCalls()
	r.Draw(sprite, prog, proj)
	second := slices.Clone(dev.Calls)

	if !slices.Equal(first, second) {
		t.Errorf("draw sequences differ:\nfirst:  %v\nsecond: %v", first, second)
	}
	if got := len(dev.Buffers[sprite.VertexBuffer()].Data); got != 160 {
		t.Errorf("vertex buffer = %d bytes, want 160", got)
	}
	if got := len(dev.Buffers[sprite.IndexBuffer()].Data); got != 4 {
		t.Errorf("index buffer = %d bytes, want 4", got)
	}
	if st := r.Stats(); st.DrawCalls != 2 || st.VertexBytes != 320 || st.IndexBytes != 8 {
		t.Errorf("stats = %+v", st)
	}
	r.ResetStats()
	if r.Stats().DrawCalls != 0 {
		t.Error("ResetStats did not clear counters")
	}
}

func TestRendererRespecifiesStaleBuffers(t *testing.T) {
	dev := gltest.New()
	prog := newTestProgram(t, dev)
	sprite, _ := newTestSprite(dev)
	r := glf.NewRenderer(dev)

	dev.BindBuffer(glf.ArrayBuffer, sprite.VertexBuffer())
	dev.BufferData(glf.ArrayBuffer, make([]byte, 4096), glf.StreamDraw)
	dev.BindBuffer(glf.ElementArrayBuffer, sprite.IndexBuffer())
	dev.BufferData(glf.ElementArrayBuffer, []byte{9, 9, 9, 9, 9, 9}, glf.StreamDraw)

	r.Draw(sprite, prog, glf.ScreenOrtho(800, 600))

	vb := dev.Buffers[sprite.VertexBuffer()]
	ib := dev.Buffers[sprite.IndexBuffer()]
	if len(vb.Data) != 160 || vb.Usage != glf.StaticDraw {
		t.Errorf("vertex buffer = %d bytes usage %d", len(vb.Data), vb.Usage)
	}
	if !bytes.Equal(ib.Data, []byte{0, 1, 2, 3}) {
		t.Errorf("index buffer = %v", ib.Data)
	}
}

func TestRendererUploadsAnimatedUVs(t *testing.T) {
	dev := gltest.New()
	prog := newTestProgram(t, dev)
	sprite, _ := newTestSprite(dev)
	r := glf.NewRenderer(dev)

	if err := glf.Animate(sprite, [2]float32{0, 0}, [2]int{4, 1}, 1); err != nil {
		t.Fatal(err)
	}
	r.Draw(sprite, prog, glf.ScreenOrtho(800, 600))

	vb := dev.Draws[0].Vertices
	// vertex 0 uv.u at byte 32
	if u := floatAt(vb, 32); u != 0.25 {
		t.Errorf("uploaded u = %v, want 0.25", u)
	}
}

func TestRendererNilAndDeletedAreNoOps(t *testing.T) {
	dev := gltest.New()
	prog := newTestProgram(t, dev)
	sprite, _ := newTestSprite(dev)
	r := glf.NewRenderer(dev)

	dev.ResetCalls()
	r.Draw(nil, prog, glf.ScreenOrtho(1, 1))
	r.Draw(sprite, nil, glf.ScreenOrtho(1, 1))
	if len(dev.Calls) != 0 {
		t.Errorf("nil draw made calls: %v", dev.Calls)
	}

	sprite.Delete()
	sprite.Delete()
	dev.ResetCalls()
	r.Draw(sprite, prog, glf.ScreenOrtho(1, 1))
	if len(dev.Calls) != 0 {
		t.Errorf("deleted sprite draw made calls: %v", dev.Calls)
	}
	if dev.LiveBuffers() != 0 {
		t.Errorf("LiveBuffers = %d, want 0", dev.LiveBuffers())
	}
}
