package glf

// scriptedEvent is one queued synthetic input change. A zero-value event
// (kind eventWait) only consumes a frame.
type scriptedEvent struct {
	kind    scriptedKind
	key     Key
	button  MouseButton
	x, y    float64
	pressed bool
}

type scriptedKind uint8

const (
	eventWait scriptedKind = iota
	eventKey
	eventPointer
)

// ScriptedInput is an InputQuery fed from a queue of synthetic events, one
// event applied per Step. Screen coordinates are used, matching what a
// screenshot shows. Real input from Fallback is merged in: a key or button
// counts as pressed if either source holds it, and the cursor follows
// Fallback until the first synthetic pointer event.
type ScriptedInput struct {
	Fallback InputQuery

	queue     []scriptedEvent
	keys      map[Key]bool
	buttons   map[MouseButton]bool
	x, y      float64
	hasCursor bool
}

// NewScriptedInput returns an empty queue over fallback, which may be nil.
func NewScriptedInput(fallback InputQuery) *ScriptedInput {
	return &ScriptedInput{
		Fallback: fallback,
		keys:     make(map[Key]bool),
		buttons:  make(map[MouseButton]bool),
	}
}

// PressKey queues a key press.
func (s *ScriptedInput) PressKey(k Key) {
	s.queue = append(s.queue, scriptedEvent{kind: eventKey, key: k, pressed: true})
}

// ReleaseKey queues a key release.
func (s *ScriptedInput) ReleaseKey(k Key) {
	s.queue = append(s.queue, scriptedEvent{kind: eventKey, key: k})
}

// TapKey queues a press followed by a release. Consumes two frames.
func (s *ScriptedInput) TapKey(k Key) {
	s.PressKey(k)
	s.ReleaseKey(k)
}

// Press queues a left-button press at the given screen coordinates.
func (s *ScriptedInput) Press(x, y float64) {
	s.queue = append(s.queue, scriptedEvent{kind: eventPointer, x: x, y: y, pressed: true})
}

// Move queues a cursor move with the left button held. Use it between
// Press and Release to simulate a drag.
func (s *ScriptedInput) Move(x, y float64) {
	s.queue = append(s.queue, scriptedEvent{kind: eventPointer, x: x, y: y, pressed: true})
}

// Hover queues a cursor move with no button held.
func (s *ScriptedInput) Hover(x, y float64) {
	s.queue = append(s.queue, scriptedEvent{kind: eventPointer, x: x, y: y})
}

// Release queues a left-button release at the given screen coordinates.
func (s *ScriptedInput) Release(x, y float64) {
	s.queue = append(s.queue, scriptedEvent{kind: eventPointer, x: x, y: y})
}

// Click queues a press followed by a release at the same position.
// Consumes two frames.
func (s *ScriptedInput) Click(x, y float64) {
	s.Press(x, y)
	s.Release(x, y)
}

// Drag queues a press at (fromX, fromY), linearly interpolated moves over
// frames-2 intermediate frames, and a release at (toX, toY). The sequence
// consumes frames frames, at least two.
func (s *ScriptedInput) Drag(fromX, fromY, toX, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	s.Press(fromX, fromY)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		s.Move(fromX+(toX-fromX)*t, fromY+(toY-fromY)*t)
	}
	s.Release(toX, toY)
}

// Wait queues frames frames in which nothing changes.
func (s *ScriptedInput) Wait(frames int) {
	for i := 0; i < frames; i++ {
		s.queue = append(s.queue, scriptedEvent{})
	}
}

// Pending returns the number of queued events.
func (s *ScriptedInput) Pending() int { return len(s.queue) }

// Step applies the next queued event. It reports false when the queue was
// empty.
func (s *ScriptedInput) Step() bool {
	if len(s.queue) == 0 {
		return false
	}
	evt := s.queue[0]
	copy(s.queue, s.queue[1:])
	s.queue = s.queue[:len(s.queue)-1]

	switch evt.kind {
	case eventKey:
		if evt.pressed {
			s.keys[evt.key] = true
		} else {
			delete(s.keys, evt.key)
		}
	case eventPointer:
		s.x, s.y, s.hasCursor = evt.x, evt.y, true
		if evt.pressed {
			s.buttons[evt.button] = true
		} else {
			delete(s.buttons, evt.button)
		}
	}
	return true
}

// IsKeyPressed implements InputQuery.
func (s *ScriptedInput) IsKeyPressed(k Key) bool {
	if s.keys[k] {
		return true
	}
	return s.Fallback != nil && s.Fallback.IsKeyPressed(k)
}

// IsMousePressed implements InputQuery.
func (s *ScriptedInput) IsMousePressed(b MouseButton) bool {
	if s.buttons[b] {
		return true
	}
	return s.Fallback != nil && s.Fallback.IsMousePressed(b)
}

// CursorPos implements InputQuery.
func (s *ScriptedInput) CursorPos() (x, y float64) {
	if !s.hasCursor && s.Fallback != nil {
		return s.Fallback.CursorPos()
	}
	return s.x, s.y
}
