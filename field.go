package particlefield

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
)

// ErrAlreadyMounted is returned by Mount on a field that is not Idle. A
// stopped field cannot be restarted; create a new one instead.
var ErrAlreadyMounted = errors.New("particlefield: field already mounted")

// Host is everything a Field needs from the environment it is mounted in:
// viewport size and resize notifications, a per-frame scheduler, and a
// drawable surface.
type Host interface {
	Viewport
	Scheduler
	// AcquireSurface returns a fresh drawable for the field. An error (or a
	// nil Drawable) means no surface is available.
	AcquireSurface() (Drawable, error)
}

// Field is the particle background: a population of drifting points that
// is advanced, linked and painted once per frame until unmounted.
//
// A Field is single-threaded. Mount, Unmount, resize notifications and
// frame callbacks must all arrive on the same goroutine.
type Field struct {
	id     uuid.UUID
	config Config
	rng    *rand.Rand
	debug  bool

	state   State
	host    Host
	surface *Surface
	pop     *Population
	pending FrameHandle
	detach  func()
	tickFn  func()

	frames uint64
	stats  FrameStats
}

// NewField creates an idle field. Zero-valued Config fields take their
// defaults.
func NewField(cfg Config) *Field {
	f := &Field{
		id:     uuid.New(),
		config: cfg.withDefaults(),
	}
	f.tickFn = f.tick
	return f
}

// SetRand sets the random source used for seeding. Must be called before
// Mount to take effect.
func (f *Field) SetRand(rng *rand.Rand) {
	f.rng = rng
}

// SetDebugMode enables or disables per-frame stats on stderr.
func (f *Field) SetDebugMode(enabled bool) {
	f.debug = enabled
}

// ID returns the field's instance ID.
func (f *Field) ID() uuid.UUID {
	return f.id
}

// Config returns the resolved configuration.
func (f *Field) Config() Config {
	return f.config
}

// State returns the lifecycle state.
func (f *Field) State() State {
	return f.state
}

// Population returns the particle population, or nil before Mount.
func (f *Field) Population() *Population {
	return f.pop
}

// Bounds returns the current surface dimensions. Zero before Mount.
func (f *Field) Bounds() Bounds {
	if f.surface == nil {
		return Bounds{}
	}
	return f.surface.Bounds()
}

// Frames returns the number of ticks rendered so far.
func (f *Field) Frames() uint64 {
	return f.frames
}

// LastFrame returns stats for the most recent tick.
func (f *Field) LastFrame() FrameStats {
	return f.stats
}

// Mount acquires a surface from h, sizes it to the viewport, seeds the
// population, renders the first frame and schedules the next. If the surface
// cannot be acquired the field moves straight to Stopped and the returned
// error wraps ErrSurfaceUnavailable; nothing is scheduled or subscribed.
func (f *Field) Mount(h Host) error {
	if f.state != StateIdle {
		return ErrAlreadyMounted
	}

	d, err := h.AcquireSurface()
	if err == nil && d == nil {
		err = errors.New("host returned no drawable")
	}
	if err != nil {
		f.state = StateStopped
		if errors.Is(err, ErrSurfaceUnavailable) {
			return err
		}
		return fmt.Errorf("%w: %w", ErrSurfaceUnavailable, err)
	}

	f.host = h
	f.surface = newSurface(h, d)
	f.pop = NewPopulation(f.config, f.rng)
	f.surface.Resize()
	f.pop.Seed(f.surface.Bounds())
	f.state = StateRunning
	f.detach = h.OnResize(f.handleResize)

	if f.debug {
		f.debugLogSeed("mount")
	}

	f.tick()
	return nil
}

// Unmount stops the loop. The pending frame is cancelled before anything
// else is released, so a callback the host fires late finds the field
// stopped and does nothing. Unmount is idempotent.
func (f *Field) Unmount() {
	switch f.state {
	case StateStopped:
		return
	case StateIdle:
		f.state = StateStopped
		return
	}

	if f.pending != 0 {
		f.host.Cancel(f.pending)
		f.pending = 0
	}
	f.state = StateStopped

	if f.detach != nil {
		f.detach()
		f.detach = nil
	}
	f.surface.release()
	f.pop.clear()

	if f.debug {
		f.debugLogEvent("unmount")
	}
}

// handleResize resizes the surface and, if the size changed, replaces the
// whole population. Particles are not carried over.
func (f *Field) handleResize() {
	if f.state != StateRunning {
		return
	}
	if !f.surface.Resize() {
		return
	}
	f.pop.Seed(f.surface.Bounds())
	if f.debug {
		f.debugLogSeed("resize")
	}
}

// tick renders one frame: clear, advance, connect, draw particles, then
// schedule the next tick.
func (f *Field) tick() {
	f.pending = 0
	if f.state != StateRunning {
		return
	}

	canvas := f.surface.Canvas()
	b := f.surface.Bounds()
	particles := f.pop.Particles()

	var stats FrameStats
	stats.Particles = len(particles)
	var t0 time.Time

	canvas.Clear()

	if f.debug {
		t0 = time.Now()
	}
	f.pop.Advance(b)
	if f.debug {
		stats.AdvanceTime = time.Since(t0)
		t0 = time.Now()
	}

	drawConnections(canvas, particles, &f.config, &stats)
	if f.debug {
		stats.ConnectTime = time.Since(t0)
		t0 = time.Now()
	}

	drawParticles(canvas, particles, &f.config)
	if f.debug {
		stats.DrawTime = time.Since(t0)
	}

	f.frames++
	f.stats = stats
	if f.debug {
		f.debugLog(stats)
	}

	f.pending = f.host.ScheduleNext(f.tickFn)
}
