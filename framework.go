package glf

import (
	"fmt"
	"io"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"
)

// Framework bundles what a small sprite program needs: the textured
// program, a camera-driven projection, the renderer, input, an optional
// bitmap font and the frame tooling. Resources created through it are
// released by Close.
//
// All methods must be called on the thread that owns the device's context.
type Framework struct {
	dev      Device
	input    InputQuery
	scripted *ScriptedInput
	builder  *Builder
	program  *Program
	watcher  *ShaderWatcher
	renderer *Renderer
	camera   *Camera
	font     *Font
	sprites  []*Sprite
	textures []*Texture
	atlases  map[string]*Atlas
	pointer  *Pointer
	events   []PointerEvent

	shots  Screenshots
	runner *TestRunner
	fps    *FPSCounter

	// fbWidth and fbHeight size screenshot captures. On high-density
	// displays they differ from the camera viewport.
	fbWidth, fbHeight int

	now        func() time.Time
	lastFrame  time.Time
	frameStart time.Time
}

// Option configures a Framework.
type Option func(*frameworkOptions)

type frameworkOptions struct {
	diagnostics io.Writer
	now         func() time.Time
}

// WithDiagnostics sends compile and link logs to w instead of os.Stderr.
func WithDiagnostics(w io.Writer) Option {
	return func(o *frameworkOptions) { o.diagnostics = w }
}

// WithClock replaces time.Now for frame timing.
func WithClock(now func() time.Time) Option {
	return func(o *frameworkOptions) { o.now = now }
}

// New builds the textured program described by cfg.Shaders (the built-in
// sources when no paths are given), a camera covering the window, and a
// renderer. In permissive mode a failed build still yields a Framework;
// the build error is returned alongside it.
func New(dev Device, input InputQuery, cfg AppConfig, opts ...Option) (*Framework, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	o := frameworkOptions{now: time.Now}
	for _, fn := range opts {
		fn(&o)
	}

	f := &Framework{
		dev:      dev,
		input:    input,
		renderer: NewRenderer(dev),
		camera:   NewCamera(Rect{Width: float64(cfg.Window.Width), Height: float64(cfg.Window.Height)}),
		fps:      NewFPSCounter(),
		atlases:  make(map[string]*Atlas),
		pointer:  NewPointer(MouseButtonLeft),
		fbWidth:  cfg.Window.Width,
		fbHeight: cfg.Window.Height,
		now:      o.now,
	}
	f.shots.Dir = cfg.ScreenshotDir
	f.builder = NewBuilder(dev, BuildConfig{Diagnostics: o.diagnostics, Strict: cfg.Shaders.Strict})

	var err error
	switch {
	case cfg.Shaders.Watch:
		f.watcher, err = NewShaderWatcher(f.builder, cfg.Shaders.Vertex, cfg.Shaders.Fragment)
		if f.watcher == nil {
			return nil, err
		}
	case cfg.Shaders.Vertex != "":
		f.program, err = f.builder.LinkProgram(cfg.Shaders.Vertex, cfg.Shaders.Fragment)
	default:
		f.program, err = f.builder.LinkSources(DefaultVertexSource, DefaultFragmentSource)
	}
	if f.watcher == nil && f.program == nil {
		return nil, err
	}
	return f, err
}

// Device returns the graphics context.
func (f *Framework) Device() Device { return f.dev }

// Program returns the current textured program.
func (f *Framework) Program() *Program {
	if f.watcher != nil {
		return f.watcher.Program()
	}
	return f.program
}

// Renderer returns the sprite renderer.
func (f *Framework) Renderer() *Renderer { return f.renderer }

// Camera returns the camera the projection is taken from.
func (f *Framework) Camera() *Camera { return f.camera }

// Projection returns the camera's current orthographic projection.
func (f *Framework) Projection() mgl32.Mat4 { return f.camera.Projection() }

// FPS returns the frame-rate counter fed by BeginFrame.
func (f *Framework) FPS() *FPSCounter { return f.fps }

// Resize sets the camera viewport to the window size, in the units cursor
// positions are reported in.
func (f *Framework) Resize(width, height int) {
	f.camera.Viewport = Rect{Width: float64(width), Height: float64(height)}
}

// SetFramebufferSize sets the pixel size screenshots capture. It starts at
// the configured window size; call it with the real framebuffer size once
// the window is open and on every framebuffer resize.
func (f *Framework) SetFramebufferSize(width, height int) {
	f.fbWidth, f.fbHeight = width, height
}

// LoadAtlas reads a TexturePacker sheet and its page images. Atlases are
// cached by jsonPath; the pages are deleted by Close.
func (f *Framework) LoadAtlas(jsonPath string, pagePaths ...string) (*Atlas, error) {
	if a, ok := f.atlases[jsonPath]; ok {
		return a, nil
	}
	pages := make([]*Texture, 0, len(pagePaths))
	for _, p := range pagePaths {
		tex, err := LoadTexture(f.dev, p)
		if err != nil {
			for _, t := range pages {
				t.Delete()
			}
			return nil, err
		}
		pages = append(pages, tex)
	}
	a, err := LoadAtlasFile(jsonPath, pages)
	if err != nil {
		for _, t := range pages {
			t.Delete()
		}
		return nil, err
	}
	f.textures = append(f.textures, pages...)
	f.atlases[jsonPath] = a
	return a, nil
}

// LoadRegionSprite builds a sprite showing one atlas region at (x, y). The
// sprite is deleted by Close.
func (f *Framework) LoadRegionSprite(a *Atlas, region string, x, y float32) (*Sprite, error) {
	s, err := a.NewSprite(f.dev, region, x, y)
	if err != nil {
		return nil, err
	}
	f.sprites = append(f.sprites, s)
	return s, nil
}

// LoadSprite loads an image as a sprite at (x, y). The sprite is deleted by
// Close.
func (f *Framework) LoadSprite(path string, x, y float32) (*Sprite, error) {
	s, err := NewSprite(f.dev, path, x, y)
	if err != nil {
		return nil, err
	}
	f.sprites = append(f.sprites, s)
	return s, nil
}

// DrawSprite draws s with the textured program and the camera projection.
func (f *Framework) DrawSprite(s *Sprite) {
	f.renderer.Draw(s, f.Program(), f.camera.Projection())
}

// IsKeyPressed reports whether key is held.
func (f *Framework) IsKeyPressed(key Key) bool { return f.input.IsKeyPressed(key) }

// IsMousePressed reports whether button is held.
func (f *Framework) IsMousePressed(button MouseButton) bool {
	return f.input.IsMousePressed(button)
}

// MousePosition returns the cursor in window coordinates.
func (f *Framework) MousePosition() mgl64.Vec2 {
	x, y := f.input.CursorPos()
	return mgl64.Vec2{x, y}
}

// MouseWorldPosition returns the cursor in world coordinates.
func (f *Framework) MouseWorldPosition() mgl64.Vec2 {
	x, y := f.camera.ScreenToWorld(f.input.CursorPos())
	return mgl64.Vec2{x, y}
}

// Pointer returns the left-button pointer BeginFrame updates.
func (f *Framework) Pointer() *Pointer { return f.pointer }

// PointerEvents returns the pointer transitions of the current frame, in
// window coordinates. The slice is reused by the next BeginFrame.
func (f *Framework) PointerEvents() []PointerEvent { return f.events }

// Clicked reports whether a click this frame landed inside area, tested in
// world coordinates.
func (f *Framework) Clicked(area HitShape) bool {
	for _, ev := range f.events {
		if ev.Type != PointerClick {
			continue
		}
		if area.Contains(f.camera.ScreenToWorld(ev.X, ev.Y)) {
			return true
		}
	}
	return false
}

// AddFont loads a glyph sheet of cols x rows cells and makes it the font
// DrawString uses, replacing any previous one.
func (f *Framework) AddFont(path string, cols, rows int) error {
	font, err := LoadFont(f.dev, path, cols, rows)
	if err != nil {
		return fmt.Errorf("glf: add font: %w", err)
	}
	if f.font != nil {
		f.font.Delete()
	}
	f.font = font
	return nil
}

// Font returns the current font, or nil.
func (f *Framework) Font() *Font { return f.font }

// DrawString draws text with its top-left corner at (x, y). Without a font
// it draws nothing.
func (f *Framework) DrawString(text string, x, y float32) {
	if f.font == nil {
		return
	}
	f.font.Draw(f.renderer, f.Program(), f.camera.Projection(), text, x, y)
}

// Animate steps s through a sprite sheet; see the package-level Animate.
func (f *Framework) Animate(s *Sprite, origin [2]float32, grid [2]int, steps int) error {
	return Animate(s, origin, grid, steps)
}

// Screenshot queues a capture of the frame, written at EndFrame.
func (f *Framework) Screenshot(label string) { f.shots.Queue(label) }

// RunScript drives input from runner. The framework's input is wrapped in a
// ScriptedInput so real input keeps working alongside the script.
func (f *Framework) RunScript(runner *TestRunner) {
	if f.scripted == nil {
		if si, ok := f.input.(*ScriptedInput); ok {
			f.scripted = si
		} else {
			f.scripted = NewScriptedInput(f.input)
			f.input = f.scripted
		}
	}
	f.runner = runner
}

// ScriptDone reports whether a script was attached and has finished.
func (f *Framework) ScriptDone() bool { return f.runner != nil && f.runner.Done() }

// BeginFrame starts a frame and returns the seconds since the previous
// one (zero on the first frame). It relinks changed shaders, advances any
// script by one step, applies one scripted input event, updates the pointer
// from the resulting input, then updates the camera and the FPS counter.
func (f *Framework) BeginFrame() float32 {
	now := f.now()
	var dt float32
	if !f.lastFrame.IsZero() {
		dt = float32(now.Sub(f.lastFrame).Seconds())
	}
	f.lastFrame = now
	f.frameStart = now
	if dt > 0 {
		f.fps.Tick(float64(dt))
	}

	if f.watcher != nil {
		if _, err := f.watcher.Poll(); err != nil {
			Logger().Debug("glf: shader reload pending a fix", "err", err)
		}
	}
	if f.runner != nil {
		f.runner.Step(f.scripted, &f.shots)
	}
	if f.scripted != nil {
		f.scripted.Step()
	}
	f.events = f.events[:0]
	if f.input != nil {
		f.events = f.pointer.Update(f.input)
	}
	f.camera.Update(dt)
	f.renderer.ResetStats()
	return dt
}

// EndFrame logs the frame's stats at debug level and writes queued
// screenshots. It returns the frame's stats.
func (f *Framework) EndFrame() FrameStats {
	stats := f.renderer.Stats()
	stats.FrameTime = f.now().Sub(f.frameStart)
	debugLog(stats)
	if _, err := f.shots.Flush(f.dev, f.fbWidth, f.fbHeight); err != nil {
		Logger().Error("glf: screenshots", "err", err)
	}
	return stats
}

// Close releases every sprite, font and program created through the
// framework and stops the shader watcher.
func (f *Framework) Close() {
	for _, s := range f.sprites {
		s.Delete()
	}
	f.sprites = nil
	for _, t := range f.textures {
		t.Delete()
	}
	f.textures = nil
	clear(f.atlases)
	if f.font != nil {
		f.font.Delete()
		f.font = nil
	}
	if f.watcher != nil {
		f.watcher.Program().Delete()
		if err := f.watcher.Close(); err != nil {
			Logger().Warn("glf: closing shader watcher", "err", err)
		}
		f.watcher = nil
	}
	if f.program != nil {
		f.program.Delete()
		f.program = nil
	}
}
