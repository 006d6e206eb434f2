// Command glfdemo opens a window and plays the sprites listed in a config
// file, with an FPS readout drawn in the configured bitmap font.
package main

import (
	"errors"
	"flag"
	"image"
	"image/color"
	"io/fs"
	"log"
	"log/slog"
	"os"
	"runtime"

	"github.com/phanxgames/glf"
	"github.com/phanxgames/glf/gldevice"
	"github.com/phanxgames/glf/glfwwindow"
)

func init() {
	// GLFW event handling must run on the main thread.
	runtime.LockOSThread()
}

func main() {
	var (
		configPath = flag.String("config", "", "YAML or TOML config file")
		scriptPath = flag.String("script", "", "JSON test script (overrides the config)")
		screenshot = flag.String("screenshot", "", "capture the first frame under this label")
	)
	flag.Parse()

	cfg := glf.DefaultAppConfig()
	if *configPath != "" {
		var err error
		if cfg, err = glf.LoadAppConfig(*configPath); err != nil {
			log.Fatalf("config: %v", err)
		}
	}
	if *scriptPath != "" {
		cfg.Script = *scriptPath
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
	slog.SetDefault(logger)
	glf.SetLogger(logger)

	if err := run(cfg, *screenshot); err != nil {
		log.Fatal(err)
	}
}

type actor struct {
	sprite *glf.Sprite
	player *glf.Player
	hit    string
	owned  bool
}

// area returns the actor's click area at its current position.
func (a *actor) area() glf.HitShape {
	if h, err := glf.NewHitShape(a.hit, a.sprite.Bounds()); err == nil {
		return h
	}
	return a.sprite
}

func run(cfg glf.AppConfig, screenshot string) error {
	win, err := glfwwindow.Open(glfwwindow.OptionsFromConfig(cfg.Window))
	if err != nil {
		return err
	}
	defer win.Close()

	dev, err := gldevice.New()
	if err != nil {
		return err
	}
	defer dev.Close()
	dev.EnableAlphaBlend()

	fw, err := glf.New(dev, win, cfg)
	if fw == nil {
		return err
	}
	defer fw.Close()
	if err != nil {
		slog.Warn("shaders failed to build; drawing is disabled until fixed", "err", err)
	}

	// The camera works in window units, which cursor positions use; the
	// viewport and screenshots work in framebuffer pixels.
	resize := func(fbw, fbh int) {
		dev.Viewport(0, 0, fbw, fbh)
		fw.SetFramebufferSize(fbw, fbh)
		fw.Resize(win.Size())
	}
	resize(win.FramebufferSize())
	win.OnResize = resize

	actors, err := loadActors(fw, dev, cfg.Sprites)
	if err != nil {
		return err
	}
	defer func() {
		for _, a := range actors {
			if a.owned {
				a.sprite.Texture().Delete()
				a.sprite.Delete()
			}
		}
	}()

	if cfg.Font.Image != "" {
		if err := fw.AddFont(cfg.Font.Image, cfg.Font.Cols, cfg.Font.Rows); err != nil {
			slog.Warn("font unavailable", "err", err)
		}
	}
	if cfg.Script != "" {
		runner, err := glf.LoadTestScriptFile(cfg.Script)
		if err != nil {
			return err
		}
		fw.RunScript(runner)
	}
	if screenshot != "" {
		fw.Screenshot(screenshot)
	}

	background := glf.Color{R: 0.1, G: 0.1, B: 0.12, A: 1}
	dragged := -1
	for !win.ShouldClose() {
		dev.Clear(background)
		dt := fw.BeginFrame()

		if fw.IsKeyPressed(glf.KeyEscape) {
			win.SetShouldClose(true)
		}
		dragged = handlePointer(fw, actors, dragged)
		for _, a := range actors {
			if a.player != nil {
				a.player.Update(dt)
			}
			fw.DrawSprite(a.sprite)
		}
		fw.DrawString(fw.FPS().String(), 8, 8)

		fw.EndFrame()
		win.SwapBuffers()
		win.PollEvents()

		if fw.ScriptDone() {
			win.SetShouldClose(true)
		}
	}
	return nil
}

// loadActors creates a sprite and player per config entry. A missing image
// is replaced by a checkerboard so a half-written config still runs.
func loadActors(fw *glf.Framework, dev glf.Device, sprites []glf.SpriteConfig) ([]actor, error) {
	actors := make([]actor, 0, len(sprites))
	for _, sc := range sprites {
		a := actor{hit: sc.Hit}
		s, err := loadSprite(fw, sc)
		switch {
		case err == nil:
			a.sprite = s
		case errors.Is(err, fs.ErrNotExist):
			slog.Warn("sprite image missing, using placeholder", "sprite", sc.Name, "image", sc.Image)
			tex := glf.NewTexture(dev, checkerboard(64, 64, 8))
			a.sprite = glf.NewSpriteFromTexture(dev, tex, sc.X, sc.Y, 64, 64)
			a.owned = true
		default:
			return nil, err
		}
		if sc.Width > 0 && sc.Height > 0 {
			a.sprite.SetRect(sc.X, sc.Y, sc.Width, sc.Height)
		}

		grid := sc.Grid()
		if grid[0]*grid[1] > 1 {
			anim, err := glf.NewAnimator(a.sprite, [2]float32{0, 0}, grid)
			if err != nil {
				return nil, err
			}
			if sc.Vertical {
				anim.SetDirection(glf.Vertical)
			}
			duration := sc.Duration
			if duration == 0 {
				duration = 1
			}
			a.player = glf.NewPlayer(anim, sc.FrameCount(), duration, sc.Loop)
		}
		actors = append(actors, a)
	}
	return actors, nil
}

func loadSprite(fw *glf.Framework, sc glf.SpriteConfig) (*glf.Sprite, error) {
	if sc.Atlas == "" {
		return fw.LoadSprite(sc.Image, sc.X, sc.Y)
	}
	atlas, err := fw.LoadAtlas(sc.Atlas, sc.Image)
	if err != nil {
		return nil, err
	}
	return fw.LoadRegionSprite(atlas, sc.Region, sc.X, sc.Y)
}

// handlePointer toggles the animation of a clicked actor and moves the
// actor a drag started on. It returns the index of the actor being
// dragged, or -1.
func handlePointer(fw *glf.Framework, actors []actor, dragged int) int {
	cam := fw.Camera()
	for _, ev := range fw.PointerEvents() {
		switch ev.Type {
		case glf.PointerDragStart:
			wx, wy := cam.ScreenToWorld(ev.StartX, ev.StartY)
			dragged = actorAt(actors, wx, wy)
		case glf.PointerDrag:
			if dragged >= 0 {
				s := actors[dragged].sprite
				x, y := s.Position()
				s.SetPosition(x+float32(ev.DeltaX/cam.Zoom), y+float32(ev.DeltaY/cam.Zoom))
			}
		case glf.PointerDragEnd:
			dragged = -1
		}
	}
	for i := range actors {
		if p := actors[i].player; p != nil && fw.Clicked(actors[i].area()) {
			p.Paused = !p.Paused
		}
	}
	return dragged
}

// actorAt returns the topmost actor whose area contains the world point.
func actorAt(actors []actor, x, y float64) int {
	for i := len(actors) - 1; i >= 0; i-- {
		if actors[i].area().Contains(x, y) {
			return i
		}
	}
	return -1
}

func checkerboard(w, h, cell int) image.Image {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	light := color.NRGBA{R: 0xcc, G: 0x44, B: 0xcc, A: 0xff}
	dark := color.NRGBA{R: 0x22, G: 0x22, B: 0x22, A: 0xff}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if (x/cell+y/cell)%2 == 0 {
				img.SetNRGBA(x, y, light)
			} else {
				img.SetNRGBA(x, y, dark)
			}
		}
	}
	return img
}
