package glf_test

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/phanxgames/glf"
	"github.com/phanxgames/glf/gltest"
)

// twoRowFramebuffer is 1x2: bottom row red, top row blue, in GL order.
func twoRowFramebuffer(dev *gltest.Device) {
	dev.SetFramebuffer(1, 2, []byte{
		255, 0, 0, 255, // y=0, bottom
		0, 0, 255, 255, // y=1, top
	})
}

func TestCaptureFlipsRows(t *testing.T) {
	dev := gltest.New()
	twoRowFramebuffer(dev)

	img := glf.Capture(dev, 1, 2)
	if c := img.NRGBAAt(0, 0); c.B != 255 || c.R != 0 {
		t.Errorf("top pixel = %+v, want blue", c)
	}
	if c := img.NRGBAAt(0, 1); c.R != 255 || c.B != 0 {
		t.Errorf("bottom pixel = %+v, want red", c)
	}
}

func TestCaptureEmpty(t *testing.T) {
	dev := gltest.New()
	img := glf.Capture(dev, 0, 0)
	if !img.Rect.Empty() {
		t.Errorf("Rect = %v, want empty", img.Rect)
	}
	if countCalls(dev, "ReadPixels") != 0 {
		t.Error("ReadPixels called for an empty capture")
	}
}

func TestScreenshotsFlush(t *testing.T) {
	dev := gltest.New()
	twoRowFramebuffer(dev)
	s := &glf.Screenshots{Dir: filepath.Join(t.TempDir(), "shots")}
	s.Queue("first")
	s.Queue("second shot")

	paths, err := s.Flush(dev, 1, 2)
	if err != nil {
		t.Fatalf("Flush: %v", err)
	}
	if len(paths) != 2 {
		t.Fatalf("paths = %v, want 2", paths)
	}
	if !strings.HasSuffix(paths[0], "_first.png") || !strings.HasSuffix(paths[1], "_second_shot.png") {
		t.Errorf("paths = %v", paths)
	}
	if countCalls(dev, "ReadPixels") != 1 {
		t.Error("framebuffer should be read once per flush")
	}
	if len(s.Pending()) != 0 {
		t.Error("queue not cleared")
	}

	again, err := s.Flush(dev, 1, 2)
	if err != nil || again != nil {
		t.Errorf("empty Flush = %v, %v", again, err)
	}
}
