package particlefield

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

func TestLayerImplementsInterfaces(t *testing.T) {
	var _ ebiten.Game = (*Layer)(nil)
	var _ Host = (*Layer)(nil)
}

func TestLayerLayoutNotifiesOnChange(t *testing.T) {
	l := NewLayer(RunConfig{})
	calls := 0
	detach := l.OnResize(func() { calls++ })

	if w, h := l.Layout(640, 480); w != 640 || h != 480 {
		t.Errorf("Layout = %dx%d, want 640x480", w, h)
	}
	l.Layout(640, 480)
	l.Layout(800, 600)
	if calls != 2 {
		t.Errorf("listener called %d times, want 2", calls)
	}
	if w, h := l.Size(); w != 800 || h != 600 {
		t.Errorf("Size = %dx%d, want 800x600", w, h)
	}

	detach()
	l.Layout(1024, 768)
	if calls != 2 {
		t.Errorf("detached listener called")
	}
}

func TestLayerListenerDetachDuringNotify(t *testing.T) {
	l := NewLayer(RunConfig{})
	var detach func()
	calls := 0
	detach = l.OnResize(func() {
		calls++
		detach()
	})
	other := 0
	l.OnResize(func() { other++ })

	l.Layout(10, 10)
	l.Layout(20, 20)
	if calls != 1 || other != 2 {
		t.Errorf("calls = %d other = %d, want 1 and 2", calls, other)
	}
}

func TestLayerScheduleAndCancel(t *testing.T) {
	l := NewLayer(RunConfig{})
	ran := 0
	h1 := l.ScheduleNext(func() { ran++ })
	h2 := l.ScheduleNext(func() { ran += 10 })
	if h1 == h2 || h1 == 0 {
		t.Fatalf("handles %d, %d not distinct and non-zero", h1, h2)
	}

	// Cancelling the replaced handle leaves the newer one alone.
	l.Cancel(h1)
	l.runPending()
	if ran != 10 {
		t.Errorf("ran = %d, want 10", ran)
	}

	l.runPending()
	if ran != 10 {
		t.Error("runPending fired the same callback twice")
	}

	h3 := l.ScheduleNext(func() { ran++ })
	l.Cancel(h3)
	l.runPending()
	if ran != 10 {
		t.Error("cancelled callback ran")
	}
}

func TestLayerMountsOnFirstUpdate(t *testing.T) {
	l := NewLayer(RunConfig{})
	l.field.SetRand(testRand())
	l.Layout(800, 600)

	if l.Field().State() != StateIdle {
		t.Fatal("field mounted before Update")
	}
	if err := l.Update(); err != nil {
		t.Fatalf("Update: %v", err)
	}
	f := l.Field()
	if f.State() != StateRunning {
		t.Fatalf("State = %v, want running", f.State())
	}
	if f.Population().Len() != 32 {
		t.Errorf("Len = %d, want 32", f.Population().Len())
	}
	if f.Frames() != 1 {
		t.Errorf("Frames = %d, want 1", f.Frames())
	}

	screen := ebiten.NewImage(800, 600)
	l.Draw(screen)
	if f.Frames() != 2 {
		t.Errorf("Frames after Draw = %d, want 2", f.Frames())
	}

	l.Layout(300, 200)
	if f.Population().Len() != 4 {
		t.Errorf("Len after Layout = %d, want 4", f.Population().Len())
	}
	if b := l.surface.Image().Bounds(); b.Dx() != 300 || b.Dy() != 200 {
		t.Errorf("surface = %v, want 300x200", b)
	}

	// Update does not mount twice.
	if err := l.Update(); err != nil {
		t.Fatal(err)
	}
	if f.State() != StateRunning {
		t.Errorf("State = %v, want running", f.State())
	}
}

func TestLayerClose(t *testing.T) {
	l := NewLayer(RunConfig{})
	l.Layout(800, 600)
	if err := l.Update(); err != nil {
		t.Fatal(err)
	}

	l.Close()
	if l.Field().State() != StateStopped {
		t.Errorf("State = %v, want stopped", l.Field().State())
	}
	if l.pending.fn != nil {
		t.Error("pending frame survived Close")
	}
	if err := l.Update(); !errors.Is(err, ebiten.Termination) {
		t.Errorf("Update after Close = %v, want ebiten.Termination", err)
	}
	if _, err := l.AcquireSurface(); !errors.Is(err, ErrSurfaceUnavailable) {
		t.Errorf("AcquireSurface after Close = %v, want ErrSurfaceUnavailable", err)
	}

	// Drawing a closed layer still draws the foreground.
	drawn := false
	l.config.Foreground = func(*ebiten.Image) { drawn = true }
	l.Draw(ebiten.NewImage(8, 8))
	if !drawn {
		t.Error("foreground not drawn")
	}
}

func TestLayerOnUpdateError(t *testing.T) {
	sentinel := errors.New("stop")
	l := NewLayer(RunConfig{OnUpdate: func() error { return sentinel }})
	if err := l.Update(); !errors.Is(err, sentinel) {
		t.Errorf("Update = %v, want sentinel", err)
	}
	if l.Field().State() != StateIdle {
		t.Error("field mounted despite OnUpdate error")
	}
}

func TestLayerFadeIn(t *testing.T) {
	l := NewLayer(RunConfig{FadeIn: 1})
	l.Layout(400, 300)
	if l.fade.Alpha() != 0 {
		t.Fatalf("alpha = %f before first Update, want 0", l.fade.Alpha())
	}
	for i := 0; i < ebiten.TPS()+1; i++ {
		if err := l.Update(); err != nil {
			t.Fatal(err)
		}
	}
	if !l.fade.Done() || l.fade.Alpha() != 1 {
		t.Errorf("fade alpha %f done %v after 1s of updates", l.fade.Alpha(), l.fade.Done())
	}
}

func TestTickSeconds(t *testing.T) {
	tests := []struct {
		name   string
		tps    int
		actual float64
		want   float64
	}{
		{"fixed 60", 60, 0, 1.0 / 60},
		{"fixed 120", 120, 59, 1.0 / 120},
		{"sync with fps", ebiten.SyncWithFPS, 144, 1.0 / 144},
		{"sync before first measurement", ebiten.SyncWithFPS, 0, 1.0 / 60},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tickSeconds(tt.tps, tt.actual)
			if math.Abs(float64(got)-tt.want) > 1e-6 {
				t.Errorf("tickSeconds(%d, %v) = %v, want %v", tt.tps, tt.actual, got, tt.want)
			}
		})
	}
}

func TestFadeProgressesUnderSyncWithFPS(t *testing.T) {
	f := newFade(0.5, nil)
	for i := 0; i < 31; i++ {
		f.Update(tickSeconds(ebiten.SyncWithFPS, 0))
	}
	if !f.Done() || f.Alpha() != 1 {
		t.Errorf("alpha %f done %v after 0.5s of frames", f.Alpha(), f.Done())
	}
}

func TestLayerDebugConfig(t *testing.T) {
	l := NewLayer(RunConfig{Debug: true, ShowFPS: true})
	if !l.field.debug {
		t.Error("Debug not passed to field")
	}
	if l.fps == nil {
		t.Error("ShowFPS did not create overlay")
	}
}

func TestFPSText(t *testing.T) {
	got := fpsText(59.94, 60, FrameStats{Particles: 32, Connections: 17})
	want := "FPS: 59.9\nTPS: 60.0\nParticles: 32\nLinks: 17"
	if got != want {
		t.Errorf("fpsText = %q, want %q", got, want)
	}
	if strings.Count(got, "\n") != 3 {
		t.Error("expected four lines")
	}
}
