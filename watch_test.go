package glf_test

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/phanxgames/glf"
	"github.com/phanxgames/glf/gltest"
)

func newWatcher(t *testing.T, dev *gltest.Device) (*glf.ShaderWatcher, string, string) {
	t.Helper()
	dir := t.TempDir()
	vert := writeFile(t, dir, "sprite.vert", glf.DefaultVertexSource)
	frag := writeFile(t, dir, "sprite.frag", glf.DefaultFragmentSource)
	b := glf.NewBuilder(dev, glf.BuildConfig{Diagnostics: &bytes.Buffer{}})
	sw, err := glf.NewShaderWatcher(b, vert, frag)
	if err != nil {
		t.Fatalf("NewShaderWatcher: %v", err)
	}
	t.Cleanup(func() { sw.Close() })
	return sw, vert, frag
}

func TestShaderWatcherReloadSwapsOnSuccess(t *testing.T) {
	dev := gltest.New()
	sw, _, _ := newWatcher(t, dev)
	old := sw.Program()

	swapped, err := sw.Reload()
	if err != nil || !swapped {
		t.Fatalf("Reload = %v, %v", swapped, err)
	}
	if sw.Program() == old || !sw.Program().Linked() {
		t.Error("program not replaced by a linked one")
	}
	if old.Handle() != 0 {
		t.Error("old program not deleted")
	}
	if dev.LivePrograms() != 1 {
		t.Errorf("LivePrograms = %d, want 1", dev.LivePrograms())
	}
}

func TestShaderWatcherReloadKeepsProgramOnFailure(t *testing.T) {
	dev := gltest.New()
	sw, _, frag := newWatcher(t, dev)
	old := sw.Program()
	writeFile(t, "", frag, badFragmentSource)

	swapped, err := sw.Reload()
	if swapped || err == nil {
		t.Fatalf("Reload = %v, %v; want false with error", swapped, err)
	}
	if sw.Program() != old || old.Handle() == 0 {
		t.Error("previous program should stay in place")
	}
	if dev.LivePrograms() != 1 {
		t.Errorf("LivePrograms = %d, want 1", dev.LivePrograms())
	}
}

func TestShaderWatcherPollIdle(t *testing.T) {
	dev := gltest.New()
	sw, _, _ := newWatcher(t, dev)
	swapped, err := sw.Poll()
	if swapped || err != nil {
		t.Errorf("idle Poll = %v, %v", swapped, err)
	}
}

func TestShaderWatcherPollRelinksOnWrite(t *testing.T) {
	dev := gltest.New()
	sw, vert, _ := newWatcher(t, dev)
	old := sw.Program()

	writeFile(t, "", vert, glf.DefaultVertexSource+"\n// edited\n")

	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		swapped, err := sw.Poll()
		if err != nil {
			t.Fatalf("Poll: %v", err)
		}
		if swapped {
			if sw.Program() == old {
				t.Fatal("Poll reported a swap but kept the old program")
			}
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("no relink after the vertex source changed")
}

func TestNewShaderWatcherStrictMissingFile(t *testing.T) {
	dev := gltest.New()
	b := glf.NewBuilder(dev, glf.BuildConfig{Diagnostics: &bytes.Buffer{}, Strict: true})
	if _, err := glf.NewShaderWatcher(b, "/nonexistent/a.vert", "/nonexistent/a.frag"); err == nil {
		t.Error("expected error for missing sources in strict mode")
	}
}

func TestNewShaderWatcherPermissiveReturnsBuildError(t *testing.T) {
	dev := gltest.New()
	dir := t.TempDir()
	vert := writeFile(t, dir, "s.vert", glf.DefaultVertexSource)
	frag := writeFile(t, dir, "s.frag", badFragmentSource)

	b := glf.NewBuilder(dev, glf.BuildConfig{Diagnostics: &bytes.Buffer{}})
	sw, err := glf.NewShaderWatcher(b, vert, frag)
	if sw == nil {
		t.Fatalf("NewShaderWatcher returned no watcher: %v", err)
	}
	defer sw.Close()
	var ce *glf.CompileError
	if !errors.As(err, &ce) || ce.Kind != glf.FragmentShader {
		t.Errorf("err = %v, want fragment *CompileError", err)
	}
	if sw.Program().Linked() {
		t.Error("program linked from a broken source")
	}
}
