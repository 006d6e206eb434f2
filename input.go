package glf

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// InputQuery answers immediate-mode input questions for the current frame.
// Implementations pass through to the windowing backend without buffering.
type InputQuery interface {
	IsKeyPressed(key Key) bool
	IsMousePressed(button MouseButton) bool
	CursorPos() (x, y float64)
}

// Key identifies a keyboard key. Values equal the GLFW key codes, so a
// GLFW-backed query can pass them through unchanged.
type Key int

const (
	KeyUnknown    Key = -1
	KeySpace      Key = 32
	KeyApostrophe Key = 39
	KeyComma      Key = 44
	KeyMinus      Key = 45
	KeyPeriod     Key = 46
	KeySlash      Key = 47
	Key0          Key = 48
	Key1          Key = 49
	Key2          Key = 50
	Key3          Key = 51
	Key4          Key = 52
	Key5          Key = 53
	Key6          Key = 54
	Key7          Key = 55
	Key8          Key = 56
	Key9          Key = 57
	KeySemicolon  Key = 59
	KeyEqual      Key = 61
	KeyA          Key = 65
	KeyB          Key = 66
	KeyC          Key = 67
	KeyD          Key = 68
	KeyE          Key = 69
	KeyF          Key = 70
	KeyG          Key = 71
	KeyH          Key = 72
	KeyI          Key = 73
	KeyJ          Key = 74
	KeyK          Key = 75
	KeyL          Key = 76
	KeyM          Key = 77
	KeyN          Key = 78
	KeyO          Key = 79
	KeyP          Key = 80
	KeyQ          Key = 81
	KeyR          Key = 82
	KeyS          Key = 83
	KeyT          Key = 84
	KeyU          Key = 85
	KeyV          Key = 86
	KeyW          Key = 87
	KeyX          Key = 88
	KeyY          Key = 89
	KeyZ          Key = 90
	KeyEscape     Key = 256
	KeyEnter      Key = 257
	KeyTab        Key = 258
	KeyBackspace  Key = 259
	KeyInsert     Key = 260
	KeyDelete     Key = 261
	KeyRight      Key = 262
	KeyLeft       Key = 263
	KeyDown       Key = 264
	KeyUp         Key = 265
	KeyPageUp     Key = 266
	KeyPageDown   Key = 267
	KeyHome       Key = 268
	KeyEnd        Key = 269
	KeyF1         Key = 290
	KeyF2         Key = 291
	KeyF3         Key = 292
	KeyF4         Key = 293
	KeyF5         Key = 294
	KeyF6         Key = 295
	KeyF7         Key = 296
	KeyF8         Key = 297
	KeyF9         Key = 298
	KeyF10        Key = 299
	KeyF11        Key = 300
	KeyF12        Key = 301
	KeyLeftShift  Key = 340
	KeyLeftCtrl   Key = 341
	KeyLeftAlt    Key = 342
	KeyLeftSuper  Key = 343
	KeyRightShift Key = 344
	KeyRightCtrl  Key = 345
	KeyRightAlt   Key = 346
	KeyRightSuper Key = 347

	KeyLast = KeyRightSuper
)

var keyNames = map[string]Key{
	"space": KeySpace, "escape": KeyEscape, "enter": KeyEnter, "tab": KeyTab,
	"backspace": KeyBackspace, "insert": KeyInsert, "delete": KeyDelete,
	"right": KeyRight, "left": KeyLeft, "down": KeyDown, "up": KeyUp,
	"pageup": KeyPageUp, "pagedown": KeyPageDown, "home": KeyHome, "end": KeyEnd,
	"shift": KeyLeftShift, "ctrl": KeyLeftCtrl, "alt": KeyLeftAlt,
	"rshift": KeyRightShift, "rctrl": KeyRightCtrl, "ralt": KeyRightAlt,
	"minus": KeyMinus, "equal": KeyEqual, "comma": KeyComma, "period": KeyPeriod,
	"slash": KeySlash, "semicolon": KeySemicolon, "apostrophe": KeyApostrophe,
}

// KeyByName resolves a key name as used in test scripts and config files:
// a single letter or digit, "f1" through "f12", or a named key such as
// "space", "escape" or "left". Matching is exact and lower case.
func KeyByName(name string) (Key, bool) {
	if k, ok := keyNames[name]; ok {
		return k, true
	}
	if len(name) == 1 {
		switch c := name[0]; {
		case c >= 'a' && c <= 'z':
			return KeyA + Key(c-'a'), true
		case c >= '0' && c <= '9':
			return Key0 + Key(c-'0'), true
		}
	}
	if len(name) >= 2 && name[0] == 'f' {
		n := 0
		for _, c := range name[1:] {
			if c < '0' || c > '9' {
				return KeyUnknown, false
			}
			n = n*10 + int(c-'0')
		}
		if n >= 1 && n <= 12 {
			return KeyF1 + Key(n-1), true
		}
	}
	return KeyUnknown, false
}

// MouseButton identifies a mouse button. Values equal the GLFW codes.
type MouseButton int

const (
	MouseButtonLeft   MouseButton = 0
	MouseButtonRight  MouseButton = 1
	MouseButtonMiddle MouseButton = 2
)

// HitShape is an area that can be tested against a point.
type HitShape interface {
	Contains(x, y float64) bool
}

// HitRect is an axis-aligned rectangular hit area.
type HitRect struct {
	X, Y, Width, Height float64
}

// Contains reports whether (x, y) lies inside the rectangle.
func (r HitRect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// HitCircle is a circular hit area.
type HitCircle struct {
	CenterX, CenterY, Radius float64
}

// Contains reports whether (x, y) lies inside or on the circle.
func (c HitCircle) Contains(x, y float64) bool {
	dx := x - c.CenterX
	dy := y - c.CenterY
	return dx*dx+dy*dy <= c.Radius*c.Radius
}

// HitPolygon is a convex polygon hit area in either winding order.
type HitPolygon struct {
	Points []mgl64.Vec2
}

// Contains reports whether (x, y) lies inside the polygon using a
// cross-product sign test.
func (p HitPolygon) Contains(x, y float64) bool {
	n := len(p.Points)
	if n < 3 {
		return false
	}
	var positive, negative bool
	for i := 0; i < n; i++ {
		a := p.Points[i]
		b := p.Points[(i+1)%n]
		cross := (b[0]-a[0])*(y-a[1]) - (b[1]-a[1])*(x-a[0])
		if cross > 0 {
			positive = true
		} else if cross < 0 {
			negative = true
		}
		if positive && negative {
			return false
		}
	}
	return true
}

// Hit area kinds accepted by NewHitShape.
const (
	HitKindRect    = "rect"
	HitKindCircle  = "circle"
	HitKindDiamond = "diamond"
)

// NewHitShape returns the hit area of the given kind inscribed in bounds.
// An empty kind is a rect. A circle uses the smaller half-extent as its
// radius; a diamond joins the midpoints of the four edges.
func NewHitShape(kind string, bounds Rect) (HitShape, error) {
	cx, cy := bounds.X+bounds.Width/2, bounds.Y+bounds.Height/2
	switch kind {
	case "", HitKindRect:
		return HitRect{X: bounds.X, Y: bounds.Y, Width: bounds.Width, Height: bounds.Height}, nil
	case HitKindCircle:
		return HitCircle{CenterX: cx, CenterY: cy, Radius: math.Min(bounds.Width, bounds.Height) / 2}, nil
	case HitKindDiamond:
		return HitPolygon{Points: []mgl64.Vec2{
			{cx, bounds.Y},
			{bounds.X + bounds.Width, cy},
			{cx, bounds.Y + bounds.Height},
			{bounds.X, cy},
		}}, nil
	default:
		return nil, fmt.Errorf("glf: unknown hit shape %q", kind)
	}
}

// PointerEventType identifies what a Pointer observed during Update.
type PointerEventType uint8

const (
	PointerDown PointerEventType = iota
	PointerUp
	PointerMove
	PointerClick
	PointerDragStart
	PointerDrag
	PointerDragEnd
)

// PointerEvent is one transition of a Pointer's state machine.
type PointerEvent struct {
	Type PointerEventType
	X, Y float64
	// StartX and StartY hold the press position.
	StartX, StartY float64
	// DeltaX and DeltaY hold the movement since the previous event.
	DeltaX, DeltaY float64
	Button         MouseButton
}

// DefaultDragDeadZone is the distance in pixels a held pointer must travel
// before a drag starts.
const DefaultDragDeadZone = 4.0

// Pointer derives press, click and drag transitions from polled mouse state.
// Call Update once per frame after the window's events have been polled.
type Pointer struct {
	Button   MouseButton
	DeadZone float64

	down     bool
	dragging bool
	startX   float64
	startY   float64
	lastX    float64
	lastY    float64
	events   []PointerEvent
}

// NewPointer tracks button with the default drag dead zone.
func NewPointer(button MouseButton) *Pointer {
	return &Pointer{Button: button, DeadZone: DefaultDragDeadZone}
}

// Down reports whether the tracked button is held.
func (p *Pointer) Down() bool { return p.down }

// Dragging reports whether the pointer is past the dead zone while held.
func (p *Pointer) Dragging() bool { return p.dragging }

// Update samples in and returns the transitions since the previous call.
// The returned slice is reused by the next call.
func (p *Pointer) Update(in InputQuery) []PointerEvent {
	x, y := in.CursorPos()
	pressed := in.IsMousePressed(p.Button)
	p.events = p.events[:0]

	switch {
	case pressed && !p.down:
		p.down, p.dragging = true, false
		p.startX, p.startY = x, y
		p.lastX, p.lastY = x, y
		p.emit(PointerDown, x, y, 0, 0)
	case !pressed && p.down:
		if p.dragging {
			p.emit(PointerDragEnd, x, y, x-p.lastX, y-p.lastY)
		} else {
			p.emit(PointerClick, x, y, 0, 0)
		}
		p.emit(PointerUp, x, y, 0, 0)
		p.down, p.dragging = false, false
		p.lastX, p.lastY = x, y
	case pressed && p.down:
		if x != p.lastX || y != p.lastY {
			if !p.dragging {
				dx, dy := x-p.startX, y-p.startY
				if math.Sqrt(dx*dx+dy*dy) > p.DeadZone {
					p.dragging = true
					p.emit(PointerDragStart, x, y, dx, dy)
				}
			}
			if p.dragging {
				p.emit(PointerDrag, x, y, x-p.lastX, y-p.lastY)
			}
		}
		p.lastX, p.lastY = x, y
	default:
		if x != p.lastX || y != p.lastY {
			p.emit(PointerMove, x, y, x-p.lastX, y-p.lastY)
			p.lastX, p.lastY = x, y
		}
	}
	return p.events
}

func (p *Pointer) emit(typ PointerEventType, x, y, dx, dy float64) {
	p.events = append(p.events, PointerEvent{
		Type: typ, X: x, Y: y,
		StartX: p.startX, StartY: p.startY,
		DeltaX: dx, DeltaY: dy,
		Button: p.Button,
	})
}
