package particlefield

import (
	"fmt"
	"os"
	"time"

	"github.com/dustin/go-humanize"
)

// FrameStats holds per-tick counts and, in debug mode, timings.
type FrameStats struct {
	Particles    int
	PairsChecked int
	Connections  int
	AdvanceTime  time.Duration
	ConnectTime  time.Duration
	DrawTime     time.Duration
}

// Total returns the summed phase timings.
func (s FrameStats) Total() time.Duration {
	return s.AdvanceTime + s.ConnectTime + s.DrawTime
}

// debugLog prints timing and pair counts for one tick to stderr.
func (f *Field) debugLog(stats FrameStats) {
	if !f.debug {
		return
	}
	_, _ = fmt.Fprintf(os.Stderr,
		"[particlefield] frame %s | advance: %v | connect: %v | draw: %v | total: %v\n",
		humanize.Comma(int64(f.frames)), stats.AdvanceTime, stats.ConnectTime, stats.DrawTime, stats.Total())
	_, _ = fmt.Fprintf(os.Stderr,
		"[particlefield] particles: %d | pairs: %s | connections: %s\n",
		stats.Particles, humanize.Comma(int64(stats.PairsChecked)), humanize.Comma(int64(stats.Connections)))
}

// debugLogSeed reports a (re)seed with the surface size that produced it.
func (f *Field) debugLogSeed(reason string) {
	b := f.surface.Bounds()
	_, _ = fmt.Fprintf(os.Stderr,
		"[particlefield] %s %s: surface %dx%d (%s) seeded %d particles\n",
		f.id, reason, b.Width, b.Height, humanize.SIWithDigits(float64(b.Area()), 1, "px²"), f.pop.Len())
}

// debugLogEvent reports a lifecycle event.
func (f *Field) debugLogEvent(event string) {
	_, _ = fmt.Fprintf(os.Stderr, "[particlefield] %s %s after %s frames\n",
		f.id, event, humanize.Comma(int64(f.frames)))
}
