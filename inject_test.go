package glf

import (
	"math"
	"testing"
)

type fixedInput struct {
	keys map[Key]bool
	x, y float64
}

func (f fixedInput) IsKeyPressed(k Key) bool            { return f.keys[k] }
func (f fixedInput) IsMousePressed(b MouseButton) bool { return b == MouseButtonRight }
func (f fixedInput) CursorPos() (float64, float64)     { return f.x, f.y }

func TestScriptedInputOneEventPerStep(t *testing.T) {
	in := NewScriptedInput(nil)
	in.TapKey(KeySpace)
	if in.Pending() != 2 {
		t.Fatalf("Pending() = %d, want 2", in.Pending())
	}

	if !in.Step() {
		t.Fatal("Step() = false with events queued")
	}
	if !in.IsKeyPressed(KeySpace) {
		t.Error("space should be pressed after the first step")
	}
	in.Step()
	if in.IsKeyPressed(KeySpace) {
		t.Error("space should be released after the second step")
	}
	if in.Step() {
		t.Error("Step() = true on an empty queue")
	}
}

func TestScriptedInputClick(t *testing.T) {
	in := NewScriptedInput(nil)
	in.Click(30, 40)

	in.Step()
	if !in.IsMousePressed(MouseButtonLeft) {
		t.Error("left button should be down on the press frame")
	}
	if x, y := in.CursorPos(); x != 30 || y != 40 {
		t.Errorf("CursorPos() = (%v, %v), want (30, 40)", x, y)
	}
	in.Step()
	if in.IsMousePressed(MouseButtonLeft) {
		t.Error("left button should be up on the release frame")
	}
}

func TestScriptedInputDragInterpolates(t *testing.T) {
	in := NewScriptedInput(nil)
	in.Drag(0, 0, 100, 50, 6)
	if in.Pending() != 6 {
		t.Fatalf("Pending() = %d, want 6", in.Pending())
	}
	var xs []float64
	for in.Step() {
		x, _ := in.CursorPos()
		xs = append(xs, x)
	}
	want := []float64{0, 20, 40, 60, 80, 100}
	for i := range want {
		if math.Abs(xs[i]-want[i]) > 1e-9 {
			t.Errorf("frame %d: x = %v, want %v", i, xs[i], want[i])
		}
	}
}

func TestScriptedInputDragMinimumFrames(t *testing.T) {
	in := NewScriptedInput(nil)
	in.Drag(0, 0, 10, 10, 0)
	if in.Pending() != 2 {
		t.Errorf("Pending() = %d, want 2", in.Pending())
	}
}

func TestScriptedInputWait(t *testing.T) {
	in := NewScriptedInput(nil)
	in.PressKey(KeyA)
	in.Wait(3)
	in.ReleaseKey(KeyA)
	in.Step()
	for i := 0; i < 3; i++ {
		in.Step()
		if !in.IsKeyPressed(KeyA) {
			t.Fatalf("wait frame %d released the key", i)
		}
	}
	in.Step()
	if in.IsKeyPressed(KeyA) {
		t.Error("key should be released")
	}
}

func TestScriptedInputFallback(t *testing.T) {
	hw := fixedInput{keys: map[Key]bool{KeyEscape: true}, x: 7, y: 9}
	in := NewScriptedInput(hw)

	if !in.IsKeyPressed(KeyEscape) {
		t.Error("fallback key not reported")
	}
	if !in.IsMousePressed(MouseButtonRight) {
		t.Error("fallback button not reported")
	}
	if x, y := in.CursorPos(); x != 7 || y != 9 {
		t.Errorf("CursorPos() = (%v, %v), want fallback (7, 9)", x, y)
	}

	in.Hover(1, 2)
	in.Step()
	if x, y := in.CursorPos(); x != 1 || y != 2 {
		t.Errorf("CursorPos() = (%v, %v), want scripted (1, 2)", x, y)
	}
}
