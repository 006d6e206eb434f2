// Package ebiteninput answers glf.InputQuery from Ebitengine's input state,
// for hosts that run glf inside an ebiten game loop.
package ebiteninput

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/glf"
)

// Input reads ebiten's polled keyboard and mouse state. Like ebiten's own
// functions it must be used from within the game's Update or Draw.
type Input struct{}

var _ glf.InputQuery = Input{}

// New returns an Input.
func New() Input { return Input{} }

// IsKeyPressed reports whether key is held. Keys without an ebiten
// equivalent are never pressed.
func (Input) IsKeyPressed(key glf.Key) bool {
	k, ok := EbitenKey(key)
	if !ok {
		return false
	}
	return ebiten.IsKeyPressed(k)
}

// IsMousePressed reports whether button is held.
func (Input) IsMousePressed(button glf.MouseButton) bool {
	b, ok := EbitenMouseButton(button)
	if !ok {
		return false
	}
	return ebiten.IsMouseButtonPressed(b)
}

// CursorPos returns the cursor in logical screen coordinates.
func (Input) CursorPos() (x, y float64) {
	cx, cy := ebiten.CursorPosition()
	return float64(cx), float64(cy)
}

// EbitenKey converts a GLFW-coded key to its ebiten key.
func EbitenKey(key glf.Key) (ebiten.Key, bool) {
	k, ok := keyTable[key]
	return k, ok
}

var keyTable = map[glf.Key]ebiten.Key{
	glf.KeyA: ebiten.KeyA,
	glf.KeyB: ebiten.KeyB,
	glf.KeyC: ebiten.KeyC,
	glf.KeyD: ebiten.KeyD,
	glf.KeyE: ebiten.KeyE,
	glf.KeyF: ebiten.KeyF,
	glf.KeyG: ebiten.KeyG,
	glf.KeyH: ebiten.KeyH,
	glf.KeyI: ebiten.KeyI,
	glf.KeyJ: ebiten.KeyJ,
	glf.KeyK: ebiten.KeyK,
	glf.KeyL: ebiten.KeyL,
	glf.KeyM: ebiten.KeyM,
	glf.KeyN: ebiten.KeyN,
	glf.KeyO: ebiten.KeyO,
	glf.KeyP: ebiten.KeyP,
	glf.KeyQ: ebiten.KeyQ,
	glf.KeyR: ebiten.KeyR,
	glf.KeyS: ebiten.KeyS,
	glf.KeyT: ebiten.KeyT,
	glf.KeyU: ebiten.KeyU,
	glf.KeyV: ebiten.KeyV,
	glf.KeyW: ebiten.KeyW,
	glf.KeyX: ebiten.KeyX,
	glf.KeyY: ebiten.KeyY,
	glf.KeyZ: ebiten.KeyZ,

	glf.Key0: ebiten.KeyDigit0,
	glf.Key1: ebiten.KeyDigit1,
	glf.Key2: ebiten.KeyDigit2,
	glf.Key3: ebiten.KeyDigit3,
	glf.Key4: ebiten.KeyDigit4,
	glf.Key5: ebiten.KeyDigit5,
	glf.Key6: ebiten.KeyDigit6,
	glf.Key7: ebiten.KeyDigit7,
	glf.Key8: ebiten.KeyDigit8,
	glf.Key9: ebiten.KeyDigit9,

	glf.KeyF1:  ebiten.KeyF1,
	glf.KeyF2:  ebiten.KeyF2,
	glf.KeyF3:  ebiten.KeyF3,
	glf.KeyF4:  ebiten.KeyF4,
	glf.KeyF5:  ebiten.KeyF5,
	glf.KeyF6:  ebiten.KeyF6,
	glf.KeyF7:  ebiten.KeyF7,
	glf.KeyF8:  ebiten.KeyF8,
	glf.KeyF9:  ebiten.KeyF9,
	glf.KeyF10: ebiten.KeyF10,
	glf.KeyF11: ebiten.KeyF11,
	glf.KeyF12: ebiten.KeyF12,

	glf.KeySpace:      ebiten.KeySpace,
	glf.KeyApostrophe: ebiten.KeyQuote,
	glf.KeyComma:      ebiten.KeyComma,
	glf.KeyMinus:      ebiten.KeyMinus,
	glf.KeyPeriod:     ebiten.KeyPeriod,
	glf.KeySlash:      ebiten.KeySlash,
	glf.KeySemicolon:  ebiten.KeySemicolon,
	glf.KeyEqual:      ebiten.KeyEqual,
	glf.KeyEscape:     ebiten.KeyEscape,
	glf.KeyEnter:      ebiten.KeyEnter,
	glf.KeyTab:        ebiten.KeyTab,
	glf.KeyBackspace:  ebiten.KeyBackspace,
	glf.KeyInsert:     ebiten.KeyInsert,
	glf.KeyDelete:     ebiten.KeyDelete,
	glf.KeyRight:      ebiten.KeyArrowRight,
	glf.KeyLeft:       ebiten.KeyArrowLeft,
	glf.KeyDown:       ebiten.KeyArrowDown,
	glf.KeyUp:         ebiten.KeyArrowUp,
	glf.KeyPageUp:     ebiten.KeyPageUp,
	glf.KeyPageDown:   ebiten.KeyPageDown,
	glf.KeyHome:       ebiten.KeyHome,
	glf.KeyEnd:        ebiten.KeyEnd,
	glf.KeyLeftShift:  ebiten.KeyShiftLeft,
	glf.KeyLeftCtrl:   ebiten.KeyControlLeft,
	glf.KeyLeftAlt:    ebiten.KeyAltLeft,
	glf.KeyLeftSuper:  ebiten.KeyMetaLeft,
	glf.KeyRightShift: ebiten.KeyShiftRight,
	glf.KeyRightCtrl:  ebiten.KeyControlRight,
	glf.KeyRightAlt:   ebiten.KeyAltRight,
	glf.KeyRightSuper: ebiten.KeyMetaRight,
}

// EbitenMouseButton converts a GLFW-coded button. GLFW numbers the right
// button 1 and the middle button 2; ebiten has them the other way round.
func EbitenMouseButton(b glf.MouseButton) (ebiten.MouseButton, bool) {
	switch b {
	case glf.MouseButtonLeft:
		return ebiten.MouseButtonLeft, true
	case glf.MouseButtonRight:
		return ebiten.MouseButtonRight, true
	case glf.MouseButtonMiddle:
		return ebiten.MouseButtonMiddle, true
	}
	return 0, false
}
