package term

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/phanxgames/particlefield"
)

// RunConfig configures a terminal host.
type RunConfig struct {
	// Field configures the particle field.
	Field particlefield.Config
	// FrameRate is the number of frames per second. Default 30.
	FrameRate int
	// CellWidth and CellHeight are the virtual pixel size of one terminal
	// cell. Default 8×16.
	CellWidth, CellHeight int
	// Background is the opaque color behind the field. Default black.
	Background particlefield.Color
	// Debug prints per-frame field stats to stderr. Redirect stderr when
	// using it or the output lands on the screen.
	Debug bool
}

func (c RunConfig) withDefaults() RunConfig {
	if c.FrameRate <= 0 {
		c.FrameRate = 30
	}
	if c.CellWidth <= 0 {
		c.CellWidth = 8
	}
	if c.CellHeight <= 0 {
		c.CellHeight = 16
	}
	c.Background.A = 1
	return c
}

// Run takes over the terminal and shows the field until Esc, Ctrl-C or q is
// pressed or ctx is done. The field is always unmounted before the terminal
// is restored.
func Run(ctx context.Context, cfg RunConfig) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("term: new screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("term: init screen: %w", err)
	}
	defer screen.Fini()
	return RunScreen(ctx, screen, cfg)
}

// RunScreen runs the event loop on an initialized screen. It does not call
// Fini.
func RunScreen(ctx context.Context, screen tcell.Screen, cfg RunConfig) error {
	cfg = cfg.withDefaults()
	screen.HideCursor()
	screen.Clear()

	h := NewHost(screen, cfg)
	field := particlefield.NewField(cfg.Field)
	field.SetDebugMode(cfg.Debug)
	defer field.Unmount()

	if err := field.Mount(h); err != nil {
		log.Printf("particlefield: background disabled: %v", err)
		return nil
	}
	screen.Show()

	stop := make(chan struct{})
	defer close(stop)
	go postFrames(screen, time.Second/time.Duration(cfg.FrameRate), stop)
	go func() {
		select {
		case <-ctx.Done():
			_ = screen.PostEvent(tcell.NewEventInterrupt(nil))
		case <-stop:
		}
	}()

	for {
		ev := screen.PollEvent()
		if ev == nil {
			return nil
		}
		if h.HandleEvent(ev) {
			return nil
		}
	}
}

// postFrames posts a frameEvent every interval until stop closes. A full
// event queue drops the frame.
func postFrames(screen tcell.Screen, interval time.Duration, stop <-chan struct{}) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case t := <-ticker.C:
			_ = screen.PostEvent(&frameEvent{when: t})
		}
	}
}
