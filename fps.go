package particlefield

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// fpsRefreshTicks is how many Updates pass between overlay redraws (~0.5s).
const fpsRefreshTicks = 30

// fpsOverlay shows FPS, TPS and the field's last frame counts. The text is
// rendered into its own image and refreshed every fpsRefreshTicks updates.
type fpsOverlay struct {
	img   *ebiten.Image
	ticks int
	text  string
}

func newFPSOverlay() *fpsOverlay {
	return &fpsOverlay{ticks: fpsRefreshTicks}
}

func (o *fpsOverlay) update(f *Field) {
	o.ticks++
	if o.ticks < fpsRefreshTicks {
		return
	}
	o.ticks = 0
	o.text = fpsText(ebiten.ActualFPS(), ebiten.ActualTPS(), f.LastFrame())
	if o.img == nil {
		// 140x60 is enough for four short lines of debug font.
		o.img = ebiten.NewImage(140, 60)
	}
	o.img.Clear()
	o.img.Fill(color.RGBA{0, 0, 0, 128})
	ebitenutil.DebugPrint(o.img, o.text)
}

func (o *fpsOverlay) draw(screen *ebiten.Image) {
	if o.img == nil {
		return
	}
	screen.DrawImage(o.img, nil)
}

func fpsText(fps, tps float64, stats FrameStats) string {
	return fmt.Sprintf("FPS: %.1f\nTPS: %.1f\nParticles: %d\nLinks: %d",
		fps, tps, stats.Particles, stats.Connections)
}
