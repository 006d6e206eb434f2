package glf

import (
	"encoding/json"
	"fmt"
	"os"
)

// testStep is a single action in a test script.
type testStep struct {
	Action string  `json:"action"`
	Label  string  `json:"label,omitempty"`
	Key    string  `json:"key,omitempty"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	FromX  float64 `json:"fromX,omitempty"`
	FromY  float64 `json:"fromY,omitempty"`
	ToX    float64 `json:"toX,omitempty"`
	ToY    float64 `json:"toY,omitempty"`
	Frames int     `json:"frames,omitempty"`

	key Key
}

type testScript struct {
	Steps []testStep `json:"steps"`
}

// TestRunner sequences scripted input and screenshots across frames for
// automated visual testing. Call Step once per frame before reading input.
//
// Actions: "press", "release", "move" and "click" take x and y; "key",
// "keydown" and "keyup" take a key name (see KeyByName); "drag" takes
// fromX, fromY, toX, toY and frames; "wait" takes frames; "screenshot"
// takes a label.
type TestRunner struct {
	steps     []testStep
	cursor    int
	waitCount int
	done      bool
}

// LoadTestScript parses a JSON test script. Unknown actions and key names
// are rejected here rather than mid-run.
func LoadTestScript(jsonData []byte) (*TestRunner, error) {
	var script testScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("glf: parse test script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("glf: parse test script: no steps")
	}
	for i := range script.Steps {
		st := &script.Steps[i]
		switch st.Action {
		case "press", "release", "move", "click", "drag", "wait", "screenshot":
		case "key", "keydown", "keyup":
			k, ok := KeyByName(st.Key)
			if !ok {
				return nil, fmt.Errorf("glf: test script step %d: unknown key %q", i, st.Key)
			}
			st.key = k
		default:
			return nil, fmt.Errorf("glf: test script step %d: unknown action %q", i, st.Action)
		}
	}
	return &TestRunner{steps: script.Steps}, nil
}

// LoadTestScriptFile reads and parses a JSON test script.
func LoadTestScriptFile(path string) (*TestRunner, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("glf: read test script: %w", err)
	}
	return LoadTestScript(data)
}

// Done reports whether all steps have been executed.
func (r *TestRunner) Done() bool {
	return r.done
}

// Step advances the script by one frame. Queued input must drain before the
// next action runs, so multi-frame actions such as drags finish first.
func (r *TestRunner) Step(in *ScriptedInput, shots *Screenshots) {
	if r.done {
		return
	}
	if in.Pending() > 0 {
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++
	Logger().Debug("glf: test step", "index", r.cursor-1, "action", st.Action)

	switch st.Action {
	case "screenshot":
		if shots != nil {
			shots.Queue(st.Label)
		}
	case "press":
		in.Press(st.X, st.Y)
	case "release":
		in.Release(st.X, st.Y)
	case "move":
		in.Hover(st.X, st.Y)
	case "click":
		in.Click(st.X, st.Y)
	case "drag":
		in.Drag(st.FromX, st.FromY, st.ToX, st.ToY, st.Frames)
	case "key":
		in.TapKey(st.key)
	case "keydown":
		in.PressKey(st.key)
	case "keyup":
		in.ReleaseKey(st.key)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && in.Pending() == 0 {
		r.done = true
	}
}
