package glf

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestHitRectContains(t *testing.T) {
	r := HitRect{X: 10, Y: 20, Width: 100, Height: 50}

	tests := []struct {
		name string
		x, y float64
		want bool
	}{
		{"inside", 50, 40, true},
		{"top-left corner", 10, 20, true},
		{"bottom-right corner", 110, 70, true},
		{"outside left", 5, 40, false},
		{"outside right", 115, 40, false},
		{"outside top", 50, 15, false},
		{"outside bottom", 50, 75, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.Contains(tt.x, tt.y); got != tt.want {
				t.Errorf("HitRect.Contains(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestHitCircleContains(t *testing.T) {
	c := HitCircle{CenterX: 50, CenterY: 50, Radius: 25}

	tests := []struct {
		name string
		x, y float64
		want bool
	}{
		{"center", 50, 50, true},
		{"on circumference", 75, 50, true},
		{"outside", 80, 50, false},
		{"outside diagonal", 70, 70, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.Contains(tt.x, tt.y); got != tt.want {
				t.Errorf("HitCircle.Contains(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestHitPolygonContains(t *testing.T) {
	square := HitPolygon{Points: []mgl64.Vec2{{0, 0}, {100, 0}, {100, 100}, {0, 100}}}
	reversed := HitPolygon{Points: []mgl64.Vec2{{0, 100}, {100, 100}, {100, 0}, {0, 0}}}

	for _, p := range []HitPolygon{square, reversed} {
		if !p.Contains(50, 50) {
			t.Error("polygon should contain its center")
		}
		if !p.Contains(0, 50) {
			t.Error("polygon should contain a point on its edge")
		}
		if p.Contains(-1, 50) {
			t.Error("polygon should not contain an outside point")
		}
	}

	degen := HitPolygon{Points: []mgl64.Vec2{{0, 0}, {1, 1}}}
	if degen.Contains(0, 0) {
		t.Error("degenerate polygon should not contain anything")
	}
}

func TestNewHitShape(t *testing.T) {
	bounds := Rect{X: 100, Y: 100, Width: 40, Height: 20}
	tests := []struct {
		kind    string
		x, y    float64
		want    bool
		wantErr bool
	}{
		{"", 101, 101, true, false},
		{HitKindRect, 139, 119, true, false},
		{HitKindCircle, 120, 110, true, false},
		{HitKindCircle, 101, 101, false, false},
		{HitKindCircle, 131, 110, false, false},
		{HitKindDiamond, 120, 101, true, false},
		{HitKindDiamond, 102, 102, false, false},
		{"hexagon", 0, 0, false, true},
	}
	for _, tc := range tests {
		shape, err := NewHitShape(tc.kind, bounds)
		if tc.wantErr {
			if err == nil {
				t.Errorf("NewHitShape(%q): expected error", tc.kind)
			}
			continue
		}
		if err != nil {
			t.Fatalf("NewHitShape(%q): %v", tc.kind, err)
		}
		if got := shape.Contains(tc.x, tc.y); got != tc.want {
			t.Errorf("%q Contains(%v, %v) = %v, want %v", tc.kind, tc.x, tc.y, got, tc.want)
		}
	}
}

func TestKeyCodesMatchGLFW(t *testing.T) {
	tests := []struct {
		key  Key
		want int
	}{
		{KeySpace, 32},
		{KeyA, 65},
		{KeyZ, 90},
		{Key0, 48},
		{KeyEscape, 256},
		{KeyRight, 262},
		{KeyUp, 265},
		{KeyF12, 301},
		{KeyRightSuper, 347},
	}
	for _, tt := range tests {
		if int(tt.key) != tt.want {
			t.Errorf("key = %d, want %d", tt.key, tt.want)
		}
	}
	if MouseButtonLeft != 0 || MouseButtonRight != 1 || MouseButtonMiddle != 2 {
		t.Error("mouse button codes do not match GLFW")
	}
}

func TestKeyByName(t *testing.T) {
	tests := []struct {
		name string
		want Key
		ok   bool
	}{
		{"a", KeyA, true},
		{"z", KeyZ, true},
		{"7", Key7, true},
		{"space", KeySpace, true},
		{"left", KeyLeft, true},
		{"f1", KeyF1, true},
		{"f12", KeyF12, true},
		{"f13", KeyUnknown, false},
		{"fx", KeyUnknown, false},
		{"A", KeyUnknown, false},
		{"", KeyUnknown, false},
	}
	for _, tt := range tests {
		got, ok := KeyByName(tt.name)
		if got != tt.want || ok != tt.ok {
			t.Errorf("KeyByName(%q) = %d, %v; want %d, %v", tt.name, got, ok, tt.want, tt.ok)
		}
	}
}

func eventTypes(evs []PointerEvent) []PointerEventType {
	out := make([]PointerEventType, len(evs))
	for i, e := range evs {
		out[i] = e.Type
	}
	return out
}

func sameTypes(a, b []PointerEventType) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestPointerClick(t *testing.T) {
	in := NewScriptedInput(nil)
	in.Click(50, 50)
	p := NewPointer(MouseButtonLeft)

	in.Step()
	if got := eventTypes(p.Update(in)); !sameTypes(got, []PointerEventType{PointerDown}) {
		t.Errorf("press frame = %v", got)
	}
	if !p.Down() {
		t.Error("pointer should be down")
	}
	in.Step()
	if got := eventTypes(p.Update(in)); !sameTypes(got, []PointerEventType{PointerClick, PointerUp}) {
		t.Errorf("release frame = %v", got)
	}
}

func TestPointerDrag(t *testing.T) {
	in := NewScriptedInput(nil)
	in.Drag(10, 10, 200, 200, 4)
	p := NewPointer(MouseButtonLeft)

	var all []PointerEventType
	for in.Step() {
		all = append(all, eventTypes(p.Update(in))...)
	}
	want := []PointerEventType{
		PointerDown,
		PointerDragStart, PointerDrag,
		PointerDrag,
		PointerDragEnd, PointerUp,
	}
	if !sameTypes(all, want) {
		t.Errorf("events = %v, want %v", all, want)
	}
}

func TestPointerDeadZone(t *testing.T) {
	in := NewScriptedInput(nil)
	in.Press(10, 10)
	in.Move(12, 11)
	in.Release(12, 11)
	p := NewPointer(MouseButtonLeft)

	var all []PointerEventType
	for in.Step() {
		all = append(all, eventTypes(p.Update(in))...)
	}
	want := []PointerEventType{PointerDown, PointerClick, PointerUp}
	if !sameTypes(all, want) {
		t.Errorf("events = %v, want %v", all, want)
	}
}

func TestPointerHoverMove(t *testing.T) {
	in := NewScriptedInput(nil)
	in.Hover(5, 7)
	p := NewPointer(MouseButtonLeft)
	in.Step()
	evs := p.Update(in)
	if len(evs) != 1 || evs[0].Type != PointerMove || evs[0].DeltaX != 5 || evs[0].DeltaY != 7 {
		t.Errorf("hover events = %+v", evs)
	}
	if evs := p.Update(in); len(evs) != 0 {
		t.Errorf("stationary cursor produced %+v", evs)
	}
}
