package particlefield

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/tanema/gween/ease"
)

// RunConfig configures a Layer and the window opened by Run.
type RunConfig struct {
	// Title is the window title.
	Title string
	// Width and Height are the initial window size. Default 1280×720.
	Width, Height int
	// Field configures the particle field.
	Field Config
	// FadeIn is the time in seconds the layer takes to fade in after mount.
	// Zero shows it at full strength immediately.
	FadeIn float32
	// FadeEase is the easing curve for FadeIn. Default ease.OutQuad.
	FadeEase ease.TweenFunc
	// ClearColor fills the window before the layer is composited.
	ClearColor Color
	// ShowFPS draws an FPS/TPS and particle counter over everything.
	ShowFPS bool
	// Debug prints per-frame field stats to stderr.
	Debug bool
	// ScreenshotDir is where Screenshot writes PNGs. Default "screenshots".
	ScreenshotDir string
	// Foreground draws sibling content above the field each frame. It is
	// the only place input may be handled; the field never reads input.
	Foreground func(screen *ebiten.Image)
	// OnUpdate runs once per Update before the field is touched.
	OnUpdate func() error
}

type resizeListener struct {
	id int
	fn func()
}

// Layer hosts a Field inside an ebiten game. It implements ebiten.Game and
// Host: Layout is the resize source, Draw is the frame driver, and the
// field paints into an offscreen image composited beneath Foreground.
type Layer struct {
	config RunConfig
	field  *Field

	width, height      int
	outsideW, outsideH int
	forceW, forceH     int
	listeners          []resizeListener
	nextListener       int

	pending    frameRequest
	nextHandle FrameHandle

	surface         *imageSurface
	fade            *fade
	fps             *fpsOverlay
	screenshotQueue []string
	script          *ScriptRunner
	op              ebiten.DrawImageOptions

	mounted bool
	closed  bool
}

// NewLayer creates a layer with an idle field. The field mounts on the
// first Update, after ebiten has reported the window size through Layout.
func NewLayer(cfg RunConfig) *Layer {
	if cfg.ScreenshotDir == "" {
		cfg.ScreenshotDir = "screenshots"
	}
	l := &Layer{
		config: cfg,
		field:  NewField(cfg.Field),
		fade:   newFade(cfg.FadeIn, cfg.FadeEase),
	}
	l.field.SetDebugMode(cfg.Debug)
	if cfg.ShowFPS {
		l.fps = newFPSOverlay()
	}
	return l
}

// Field returns the hosted field.
func (l *Layer) Field() *Field {
	return l.field
}

// Size returns the last size reported by Layout.
func (l *Layer) Size() (width, height int) {
	return l.width, l.height
}

// OnResize registers fn to run whenever Layout reports a new size.
func (l *Layer) OnResize(fn func()) (detach func()) {
	l.nextListener++
	id := l.nextListener
	l.listeners = append(l.listeners, resizeListener{id: id, fn: fn})
	return func() {
		for i, rl := range l.listeners {
			if rl.id == id {
				l.listeners = append(l.listeners[:i], l.listeners[i+1:]...)
				return
			}
		}
	}
}

// ScheduleNext queues fn for the next Draw. Only one callback is kept; a
// newer request replaces an older one.
func (l *Layer) ScheduleNext(fn func()) FrameHandle {
	l.nextHandle++
	l.pending = frameRequest{handle: l.nextHandle, fn: fn}
	return l.nextHandle
}

// Cancel drops the queued callback if h is still pending.
func (l *Layer) Cancel(h FrameHandle) {
	if l.pending.handle == h {
		l.pending = frameRequest{}
	}
}

// AcquireSurface hands the field a new offscreen surface. It fails once the
// layer has been closed.
func (l *Layer) AcquireSurface() (Drawable, error) {
	if l.closed {
		return nil, ErrSurfaceUnavailable
	}
	l.surface = newImageSurface()
	return l.surface, nil
}

// Close unmounts the field. The next Update returns ebiten.Termination.
func (l *Layer) Close() {
	l.field.Unmount()
	l.closed = true
}

// Update mounts the field on the first call and advances the fade.
func (l *Layer) Update() error {
	if l.closed {
		return ebiten.Termination
	}
	if l.config.OnUpdate != nil {
		if err := l.config.OnUpdate(); err != nil {
			return err
		}
	}
	if l.script != nil {
		l.script.step(l)
		if l.closed {
			return ebiten.Termination
		}
	}
	if !l.mounted {
		l.mounted = true
		if err := l.field.Mount(l); err != nil {
			log.Printf("particlefield: background disabled: %v", err)
		}
	}
	l.fade.Update(tickSeconds(ebiten.TPS(), ebiten.ActualTPS()))
	if l.fps != nil {
		l.fps.update(l.field)
	}
	return nil
}

// Draw runs the pending frame callback, then composites the field layer,
// the foreground and the optional FPS overlay onto screen.
func (l *Layer) Draw(screen *ebiten.Image) {
	l.runPending()

	if l.config.ClearColor.A > 0 {
		screen.Fill(l.config.ClearColor.toRGBA())
	}

	if l.field.State() == StateRunning && l.surface != nil && l.surface.Image() != nil {
		op := &l.op
		op.GeoM.Reset()
		op.ColorScale.Reset()
		op.ColorScale.ScaleAlpha(float32(l.fade.Alpha()))
		screen.DrawImage(l.surface.Image(), op)
	}

	if l.config.Foreground != nil {
		l.config.Foreground(screen)
	}
	if l.fps != nil {
		l.fps.draw(screen)
	}

	l.flushCaptures(screen)
}

// Layout tracks the outside size 1:1, or the size pinned by a script, and
// notifies resize listeners when it changes.
func (l *Layer) Layout(outsideWidth, outsideHeight int) (int, int) {
	l.outsideW, l.outsideH = outsideWidth, outsideHeight
	w, h := outsideWidth, outsideHeight
	if l.forceW > 0 && l.forceH > 0 {
		w, h = l.forceW, l.forceH
	}
	if w != l.width || h != l.height {
		l.width, l.height = w, h
		l.notifyResize()
	}
	return w, h
}

// tickSeconds is the duration of one Update. Under ebiten.SyncWithFPS the
// configured TPS is negative, so the measured rate is used, then 60.
func tickSeconds(tps int, actual float64) float32 {
	switch {
	case tps > 0:
		return 1 / float32(tps)
	case actual > 0:
		return float32(1 / actual)
	default:
		return 1.0 / 60
	}
}

// runPending fires the queued frame callback, if any.
func (l *Layer) runPending() {
	req := l.pending
	if req.fn == nil {
		return
	}
	l.pending = frameRequest{}
	req.fn()
}

func (l *Layer) notifyResize() {
	if len(l.listeners) == 0 {
		return
	}
	// Copy so a listener may detach itself.
	ls := make([]resizeListener, len(l.listeners))
	copy(ls, l.listeners)
	for _, rl := range ls {
		rl.fn()
	}
}

// Run opens a resizable window showing the field and blocks until the
// window closes.
func Run(cfg RunConfig) error {
	if cfg.Width <= 0 {
		cfg.Width = 1280
	}
	if cfg.Height <= 0 {
		cfg.Height = 720
	}
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	l := NewLayer(cfg)
	defer l.field.Unmount()
	return ebiten.RunGame(l)
}
