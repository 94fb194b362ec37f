package particlefield

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
)

// Screenshot queues a labeled capture. At the end of the next Draw the layer
// writes the composited frame and, while the field is running, the field
// layer on its own, named after the field ID and frame number.
func (l *Layer) Screenshot(label string) {
	l.screenshotQueue = append(l.screenshotQueue, label)
}

// flushCaptures writes every queued capture into RunConfig.ScreenshotDir.
func (l *Layer) flushCaptures(screen *ebiten.Image) {
	if len(l.screenshotQueue) == 0 {
		return
	}
	defer func() { l.screenshotQueue = l.screenshotQueue[:0] }()

	dir := l.config.ScreenshotDir
	if err := os.MkdirAll(dir, 0o755); err != nil {
		log.Printf("particlefield: capture: %v", err)
		return
	}

	shots := map[string]*image.RGBA{"": readRGBA(screen)}
	if l.field.State() == StateRunning && l.surface != nil && l.surface.Image() != nil {
		shots["field"] = readRGBA(l.surface.Image())
	}

	prefix := capturePrefix(l.field)
	for _, label := range l.screenshotQueue {
		for layer, img := range shots {
			path := filepath.Join(dir, captureName(prefix, label, layer))
			if err := saveCapture(path, img); err != nil {
				log.Printf("particlefield: capture: %v", err)
			}
		}
	}
}

// readRGBA copies img into an *image.RGBA. ebiten pixels are premultiplied,
// which is the layout image.RGBA expects, so png.Encode straightens alpha.
func readRGBA(img *ebiten.Image) *image.RGBA {
	b := img.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	img.ReadPixels(out.Pix)
	return out
}

// capturePrefix identifies the field and frame a capture was taken at.
func capturePrefix(f *Field) string {
	return fmt.Sprintf("%s_f%06d", f.ID().String()[:8], f.Frames())
}

// captureName joins prefix, a file-safe label and an optional layer suffix.
func captureName(prefix, label, layer string) string {
	name := prefix + "_" + captureSlug(label)
	if layer != "" {
		name += "_" + layer
	}
	return name + ".png"
}

// captureSlug keeps ASCII letters, digits, '-' and '.' and maps everything
// else to '_'.
func captureSlug(label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return "capture"
	}
	return strings.Map(func(r rune) rune {
		switch {
		case 'a' <= r && r <= 'z', 'A' <= r && r <= 'Z', '0' <= r && r <= '9', r == '-', r == '.':
			return r
		}
		return '_'
	}, label)
}

// saveCapture encodes img in memory, then writes it to path.
func saveCapture(path string, img image.Image) error {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return fmt.Errorf("encode %s: %w", filepath.Base(path), err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
