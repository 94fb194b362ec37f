package particlefield

import (
	"encoding/json"
	"fmt"
)

// scriptStep represents a single action in a layer script.
type scriptStep struct {
	Action string `json:"action"`
	Label  string `json:"label,omitempty"`
	Width  int    `json:"width,omitempty"`
	Height int    `json:"height,omitempty"`
	Frames int    `json:"frames,omitempty"`
}

type script struct {
	Steps []scriptStep `json:"steps"`
}

// ScriptRunner sequences viewport resizes, screenshots and waits across
// frames for automated visual checks. Attach to a Layer via SetScript.
//
// Actions:
//
//	{"action": "screenshot", "label": "before"}
//	{"action": "wait", "frames": 30}
//	{"action": "resize", "width": 640, "height": 360}
//	{"action": "unforce"}
//	{"action": "close"}
//
// "resize" pins the logical screen size reported by Layout until "unforce";
// ebiten scales it to the window.
type ScriptRunner struct {
	steps     []scriptStep
	cursor    int
	waitCount int
	done      bool
}

// LoadScript parses a JSON script and returns a ScriptRunner ready to be
// attached to a Layer.
func LoadScript(jsonData []byte) (*ScriptRunner, error) {
	var sc script
	if err := json.Unmarshal(jsonData, &sc); err != nil {
		return nil, fmt.Errorf("parse script: %w", err)
	}
	if len(sc.Steps) == 0 {
		return nil, fmt.Errorf("parse script: no steps")
	}
	for i, st := range sc.Steps {
		switch st.Action {
		case "screenshot", "wait", "unforce", "close":
		case "resize":
			if st.Width <= 0 || st.Height <= 0 {
				return nil, fmt.Errorf("parse script: step %d: resize needs a positive width and height", i)
			}
		default:
			return nil, fmt.Errorf("parse script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &ScriptRunner{steps: sc.Steps}, nil
}

// SetScript attaches a ScriptRunner to the layer. Its step method runs at the
// start of every Update.
func (l *Layer) SetScript(runner *ScriptRunner) {
	l.script = runner
}

// Done reports whether every step has run.
func (r *ScriptRunner) Done() bool {
	return r.done
}

// step advances the runner by one frame.
func (r *ScriptRunner) step(l *Layer) {
	if r.done {
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

	switch st.Action {
	case "screenshot":
		l.Screenshot(st.Label)
	case "resize":
		l.forceW, l.forceH = st.Width, st.Height
		l.Layout(l.outsideW, l.outsideH)
	case "unforce":
		l.forceW, l.forceH = 0, 0
		l.Layout(l.outsideW, l.outsideH)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	case "close":
		l.Close()
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 {
		r.done = true
	}
}
