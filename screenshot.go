package glf

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// DefaultScreenshotDir is where Screenshots writes when Dir is empty.
const DefaultScreenshotDir = "screenshots"

// Capture reads a width x height framebuffer and returns it top row first.
// GL returns rows bottom first, so they are flipped here.
func Capture(dev Device, width, height int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	if width <= 0 || height <= 0 {
		return img
	}
	pixels := dev.ReadPixels(0, 0, width, height)
	stride := 4 * width
	for row := 0; row < height; row++ {
		src := (height - 1 - row) * stride
		if src+stride > len(pixels) {
			continue
		}
		copy(img.Pix[row*img.Stride:row*img.Stride+stride], pixels[src:src+stride])
	}
	return img
}

// Screenshots queues labeled captures and writes them as PNG files when the
// frame is flushed. Labels may be queued at any point in a frame.
type Screenshots struct {
	Dir string

	queue []string
	now   func() time.Time
}

// Queue records a screenshot to take at the next Flush.
func (s *Screenshots) Queue(label string) {
	s.queue = append(s.queue, label)
}

// Pending returns the queued labels.
func (s *Screenshots) Pending() []string { return s.queue }

// Flush captures the framebuffer once for all queued labels and writes one
// file per label, named <timestamp>_<label>.png. It returns the written
// paths. Write errors are logged and skipped; the queue is cleared either way.
func (s *Screenshots) Flush(dev Device, width, height int) ([]string, error) {
	if len(s.queue) == 0 {
		return nil, nil
	}
	defer func() { s.queue = s.queue[:0] }()

	dir := s.Dir
	if dir == "" {
		dir = DefaultScreenshotDir
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("glf: screenshot dir %s: %w", dir, err)
	}

	img := Capture(dev, width, height)
	now := time.Now
	if s.now != nil {
		now = s.now
	}
	stamp := now().Format("20060102_150405")

	var paths []string
	for _, label := range s.queue {
		path := filepath.Join(dir, stamp+"_"+sanitizeLabel(label)+".png")
		if err := SavePNG(path, img); err != nil {
			Logger().Error("glf: screenshot failed", "path", path, "err", err)
			continue
		}
		Logger().Info("glf: screenshot written", "path", path)
		paths = append(paths, path)
	}
	return paths, nil
}

// SavePNG encodes img to a PNG file at path.
func SavePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("glf: create %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("glf: encode %s: %w", path, err)
	}
	return f.Close()
}

// sanitizeLabel replaces characters that are unsafe in file names with
// underscores and falls back to "unlabeled" for empty strings.
func sanitizeLabel(label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return "unlabeled"
	}
	var b strings.Builder
	b.Grow(len(label))
	for _, r := range label {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z',
			r >= '0' && r <= '9', r == '-', r == '.':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}
