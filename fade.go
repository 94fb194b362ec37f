package particlefield

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// fade animates the layer's composite alpha from 0 to 1 after mount. A zero
// duration starts fully opaque.
type fade struct {
	tween *gween.Tween
	alpha float64
	done  bool
}

func newFade(duration float32, fn ease.TweenFunc) *fade {
	if duration <= 0 {
		return &fade{alpha: 1, done: true}
	}
	if fn == nil {
		fn = ease.OutQuad
	}
	return &fade{tween: gween.New(0, 1, duration, fn)}
}

// Update advances the fade by dt seconds.
func (f *fade) Update(dt float32) {
	if f.done {
		return
	}
	v, finished := f.tween.Update(dt)
	f.alpha = clamp01(float64(v))
	if finished {
		f.alpha = 1
		f.done = true
	}
}

// Alpha returns the current composite alpha.
func (f *fade) Alpha() float64 {
	return f.alpha
}

// Done reports whether the fade has finished.
func (f *fade) Done() bool {
	return f.done
}
