// Package term hosts a particlefield.Field in a terminal using tcell.
//
// Each terminal cell is split into two subpixels with a half-block glyph.
// The field sees a virtual pixel surface of CellWidth×CellHeight pixels per
// cell, so its density and link distance read the same as in a window.
package term

import (
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/phanxgames/particlefield"
)

// frameEvent is posted to the screen's event queue once per frame interval.
// Frame callbacks run when the event loop receives it, on the same
// goroutine as resize handling.
type frameEvent struct {
	when time.Time
}

func (e *frameEvent) When() time.Time { return e.when }

type resizeListener struct {
	id int
	fn func()
}

// Host implements particlefield.Host on a tcell.Screen.
type Host struct {
	screen tcell.Screen
	config RunConfig

	listeners    []resizeListener
	nextListener int

	pendingHandle particlefield.FrameHandle
	pendingFn     func()
	nextHandle    particlefield.FrameHandle

	surface *cellSurface
}

// NewHost wraps screen. The screen must already be initialized.
func NewHost(screen tcell.Screen, cfg RunConfig) *Host {
	return &Host{screen: screen, config: cfg.withDefaults()}
}

// Size returns the terminal size in virtual pixels.
func (h *Host) Size() (width, height int) {
	if h.screen == nil {
		return 0, 0
	}
	cols, rows := h.screen.Size()
	return cols * h.config.CellWidth, rows * h.config.CellHeight
}

// OnResize registers fn to run after every *tcell.EventResize.
func (h *Host) OnResize(fn func()) (detach func()) {
	h.nextListener++
	id := h.nextListener
	h.listeners = append(h.listeners, resizeListener{id: id, fn: fn})
	return func() {
		for i, rl := range h.listeners {
			if rl.id == id {
				h.listeners = append(h.listeners[:i], h.listeners[i+1:]...)
				return
			}
		}
	}
}

// ScheduleNext queues fn for the next frame event.
func (h *Host) ScheduleNext(fn func()) particlefield.FrameHandle {
	h.nextHandle++
	h.pendingHandle = h.nextHandle
	h.pendingFn = fn
	return h.nextHandle
}

// Cancel drops the queued callback if handle is still pending. A frame
// event already in the queue then finds nothing to run.
func (h *Host) Cancel(handle particlefield.FrameHandle) {
	if h.pendingHandle == handle {
		h.pendingHandle = 0
		h.pendingFn = nil
	}
}

// AcquireSurface returns a subpixel surface, or ErrSurfaceUnavailable when
// there is no screen to present it on.
func (h *Host) AcquireSurface() (particlefield.Drawable, error) {
	if h.screen == nil {
		return nil, particlefield.ErrSurfaceUnavailable
	}
	h.surface = newCellSurface(h.config.CellWidth, h.config.CellHeight)
	return h.surface, nil
}

// HandleEvent processes one screen event and reports whether the user asked
// to quit.
func (h *Host) HandleEvent(ev tcell.Event) (quit bool) {
	switch ev := ev.(type) {
	case *frameEvent:
		h.runFrame()
	case *tcell.EventResize:
		h.screen.Sync()
		h.notifyResize()
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return true
		case tcell.KeyRune:
			return ev.Rune() == 'q'
		}
	case *tcell.EventInterrupt:
		return true
	}
	return false
}

// runFrame fires the pending callback and shows the result.
func (h *Host) runFrame() {
	fn := h.pendingFn
	if fn == nil {
		return
	}
	h.pendingHandle = 0
	h.pendingFn = nil
	fn()
	if h.surface != nil {
		h.surface.present(h.screen, h.config.Background)
		h.screen.Show()
	}
}

func (h *Host) notifyResize() {
	ls := make([]resizeListener, len(h.listeners))
	copy(ls, h.listeners)
	for _, rl := range ls {
		rl.fn()
	}
}
