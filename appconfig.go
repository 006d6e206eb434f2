package glf

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// AppConfig describes an application built on the framework: its window,
// shader sources, sprites and tooling. It loads from YAML or TOML.
type AppConfig struct {
	Window  WindowConfig   `yaml:"window" toml:"window"`
	Shaders ShaderConfig   `yaml:"shaders" toml:"shaders"`
	Font    FontConfig     `yaml:"font" toml:"font"`
	Sprites []SpriteConfig `yaml:"sprites" toml:"sprites"`

	// LogLevel is one of debug, info, warn or error.
	LogLevel      string `yaml:"log_level" toml:"log_level"`
	ScreenshotDir string `yaml:"screenshot_dir" toml:"screenshot_dir"`
	// Script is an optional JSON test script run against scripted input.
	Script string `yaml:"script" toml:"script"`
}

// WindowConfig sizes the window and its orthographic projection.
type WindowConfig struct {
	Title     string `yaml:"title" toml:"title"`
	Width     int    `yaml:"width" toml:"width"`
	Height    int    `yaml:"height" toml:"height"`
	VSync     bool   `yaml:"vsync" toml:"vsync"`
	Resizable bool   `yaml:"resizable" toml:"resizable"`
}

// ShaderConfig names the shader sources. Empty paths select the built-in
// sources.
type ShaderConfig struct {
	Vertex   string `yaml:"vertex" toml:"vertex"`
	Fragment string `yaml:"fragment" toml:"fragment"`
	Strict   bool   `yaml:"strict" toml:"strict"`
	// Watch relinks when the source files change.
	Watch bool `yaml:"watch" toml:"watch"`
}

// FontConfig names a bitmap glyph sheet.
type FontConfig struct {
	Image string `yaml:"image" toml:"image"`
	Cols  int    `yaml:"cols" toml:"cols"`
	Rows  int    `yaml:"rows" toml:"rows"`
}

// SpriteConfig places one sprite: either an animated sheet or, when Atlas
// is set, one named region of a TexturePacker sheet whose page is Image.
type SpriteConfig struct {
	Name   string `yaml:"name" toml:"name"`
	Image  string `yaml:"image" toml:"image"`
	Atlas  string `yaml:"atlas" toml:"atlas"`
	Region string `yaml:"region" toml:"region"`
	// Hit is the click area inside the sprite: rect (default), circle or diamond.
	Hit string `yaml:"hit" toml:"hit"`

	X float32 `yaml:"x" toml:"x"`
	Y float32 `yaml:"y" toml:"y"`
	// Width and Height override the image size when positive.
	Width  float32 `yaml:"width" toml:"width"`
	Height float32 `yaml:"height" toml:"height"`
	Cols   int     `yaml:"cols" toml:"cols"`
	Rows   int     `yaml:"rows" toml:"rows"`
	// Frames defaults to Cols*Rows.
	Frames   int     `yaml:"frames" toml:"frames"`
	Duration float32 `yaml:"duration" toml:"duration"`
	Loop     bool    `yaml:"loop" toml:"loop"`
	Vertical bool    `yaml:"vertical" toml:"vertical"`
}

// DefaultAppConfig returns an 800x600 window using the built-in shaders.
func DefaultAppConfig() AppConfig {
	return AppConfig{
		Window: WindowConfig{
			Title:  "glf",
			Width:  800,
			Height: 600,
			VSync:  true,
		},
		LogLevel:      "info",
		ScreenshotDir: DefaultScreenshotDir,
	}
}

// LoadAppConfig reads a config file, choosing the format by extension
// (.yaml, .yml or .toml). Fields absent from the file keep their defaults;
// unknown fields are an error. The result is validated.
func LoadAppConfig(path string) (AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return AppConfig{}, fmt.Errorf("glf: read config: %w", err)
	}
	var format string
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		format = "yaml"
	case ".toml":
		format = "toml"
	default:
		return AppConfig{}, fmt.Errorf("glf: config %s: unsupported extension", path)
	}
	cfg, err := ParseAppConfig(data, format)
	if err != nil {
		return AppConfig{}, fmt.Errorf("glf: config %s: %w", path, err)
	}
	return cfg, nil
}

// ParseAppConfig decodes data in the given format ("yaml" or "toml") over
// DefaultAppConfig and validates the result.
func ParseAppConfig(data []byte, format string) (AppConfig, error) {
	cfg := DefaultAppConfig()
	switch format {
	case "yaml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
			return AppConfig{}, fmt.Errorf("parse yaml: %w", err)
		}
	case "toml":
		dec := toml.NewDecoder(bytes.NewReader(data)).DisallowUnknownFields()
		if err := dec.Decode(&cfg); err != nil {
			return AppConfig{}, fmt.Errorf("parse toml: %w", err)
		}
	default:
		return AppConfig{}, fmt.Errorf("unknown config format %q", format)
	}
	if err := cfg.Validate(); err != nil {
		return AppConfig{}, err
	}
	return cfg, nil
}

// Validate reports every problem in the config at once.
func (c AppConfig) Validate() error {
	var errs []error
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size %dx%d must be positive", c.Window.Width, c.Window.Height))
	}
	if (c.Shaders.Vertex == "") != (c.Shaders.Fragment == "") {
		errs = append(errs, errors.New("shaders: vertex and fragment must be set together"))
	}
	if c.Shaders.Watch && c.Shaders.Vertex == "" {
		errs = append(errs, errors.New("shaders: watch needs source files"))
	}
	if c.Font.Image != "" && (c.Font.Cols <= 0 || c.Font.Rows <= 0) {
		errs = append(errs, fmt.Errorf("font: %w: got %dx%d", ErrInvalidGrid, c.Font.Cols, c.Font.Rows))
	}
	if _, err := parseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}
	for i, s := range c.Sprites {
		if s.Image == "" {
			errs = append(errs, fmt.Errorf("sprite %d (%s): image is required", i, s.Name))
		}
		if s.Cols < 0 || s.Rows < 0 {
			errs = append(errs, fmt.Errorf("sprite %d (%s): %w: got %dx%d", i, s.Name, ErrInvalidGrid, s.Cols, s.Rows))
		}
		if s.Duration < 0 {
			errs = append(errs, fmt.Errorf("sprite %d (%s): negative duration", i, s.Name))
		}
		if (s.Atlas == "") != (s.Region == "") {
			errs = append(errs, fmt.Errorf("sprite %d (%s): atlas and region must be set together", i, s.Name))
		}
		if s.Atlas != "" && (s.Cols > 1 || s.Rows > 1) {
			errs = append(errs, fmt.Errorf("sprite %d (%s): atlas regions cannot be animated", i, s.Name))
		}
		if _, err := NewHitShape(s.Hit, Rect{}); err != nil {
			errs = append(errs, fmt.Errorf("sprite %d (%s): %w", i, s.Name, err))
		}
	}
	return errors.Join(errs...)
}

// SlogLevel returns LogLevel as a slog level, defaulting to info.
func (c AppConfig) SlogLevel() slog.Level {
	l, err := parseLevel(c.LogLevel)
	if err != nil {
		return slog.LevelInfo
	}
	return l
}

func parseLevel(s string) (slog.Level, error) {
	if s == "" {
		return slog.LevelInfo, nil
	}
	var l slog.Level
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("log_level: %w", err)
	}
	return l, nil
}

// Grid returns the sprite's sheet layout, treating unset dimensions as 1.
func (s SpriteConfig) Grid() [2]int {
	g := [2]int{s.Cols, s.Rows}
	for i := range g {
		if g[i] == 0 {
			g[i] = 1
		}
	}
	return g
}

// FrameCount returns Frames, or every cell of the grid when unset.
func (s SpriteConfig) FrameCount() int {
	if s.Frames > 0 {
		return s.Frames
	}
	g := s.Grid()
	return g[0] * g[1]
}
