package particlefield

import (
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// glowTextureRadius is the radius of the cached halo texture. Halos of any
// size are drawn by scaling it.
const glowTextureRadius = 32

// imageSurface is a Drawable backed by an offscreen *ebiten.Image. A zero
// sized surface has no image and ignores paint calls.
type imageSurface struct {
	image *ebiten.Image
	w, h  int
	glow  *ebiten.Image
	op    ebiten.DrawImageOptions
}

func newImageSurface() *imageSurface {
	return &imageSurface{}
}

// Image returns the backing image, or nil while the surface has zero area.
func (s *imageSurface) Image() *ebiten.Image {
	return s.image
}

// Resize reallocates the backing image.
func (s *imageSurface) Resize(width, height int) {
	if s.image != nil {
		s.image.Deallocate()
		s.image = nil
	}
	s.w, s.h = width, height
	if width > 0 && height > 0 {
		s.image = ebiten.NewImage(width, height)
	}
}

// Release frees the backing image and the halo texture.
func (s *imageSurface) Release() {
	if s.image != nil {
		s.image.Deallocate()
		s.image = nil
	}
	if s.glow != nil {
		s.glow.Deallocate()
		s.glow = nil
	}
	s.w, s.h = 0, 0
}

// Clear fills the image with transparent black.
func (s *imageSurface) Clear() {
	if s.image == nil {
		return
	}
	s.image.Clear()
}

// StrokeLine draws an anti-aliased line.
func (s *imageSurface) StrokeLine(x0, y0, x1, y1, width float64, c Color) {
	if s.image == nil {
		return
	}
	vector.StrokeLine(s.image, float32(x0), float32(y0), float32(x1), float32(y1), float32(width), c.toRGBA(), true)
}

// FillCircle draws an anti-aliased filled circle.
func (s *imageSurface) FillCircle(cx, cy, r float64, c Color) {
	if s.image == nil || r <= 0 {
		return
	}
	vector.FillCircle(s.image, float32(cx), float32(cy), float32(r), c.toRGBA(), true)
}

// Glow draws the cached feathered circle scaled to r+blur and tinted with c.
func (s *imageSurface) Glow(cx, cy, r, blur float64, c Color, blend BlendMode) {
	if s.image == nil || c.A <= 0 {
		return
	}
	if s.glow == nil {
		s.glow = ebiten.NewImageFromImage(haloImage(glowTextureRadius))
	}
	size := (r + blur) * 2
	if size <= 0 {
		return
	}
	src := float64(s.glow.Bounds().Dx())

	op := &s.op
	op.GeoM.Reset()
	op.GeoM.Scale(size/src, size/src)
	op.GeoM.Translate(cx-size/2, cy-size/2)
	op.ColorScale.Reset()
	a := float32(clamp01(c.A))
	op.ColorScale.Scale(float32(c.R)*a, float32(c.G)*a, float32(c.B)*a, a)
	op.Blend = blend.EbitenBlend()
	op.Filter = ebiten.FilterLinear
	s.image.DrawImage(s.glow, op)
}

// haloImage is the glow sprite: a white disc of the given radius whose
// premultiplied alpha eases from 1 at the centre to 0 at the rim.
func haloImage(radius int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 2*radius, 2*radius))
	r := float64(radius)
	for y := range 2 * radius {
		for x := range 2 * radius {
			d := math.Hypot(float64(x)+0.5-r, float64(y)+0.5-r) / r
			a := uint8(255 * haloFalloff(d))
			img.SetRGBA(x, y, color.RGBA{a, a, a, a})
		}
	}
	return img
}

// haloFalloff maps a normalised distance from the centre to alpha with a
// smoothstep curve.
func haloFalloff(d float64) float64 {
	if d >= 1 {
		return 0
	}
	t := 1 - d
	return t * t * (3 - 2*t)
}

// toRGBA converts a Color to a premultiplied color.RGBA.
func (c Color) toRGBA() color.RGBA {
	a := clamp01(c.A)
	return color.RGBA{
		R: uint8(clamp01(c.R*a) * 255),
		G: uint8(clamp01(c.G*a) * 255),
		B: uint8(clamp01(c.B*a) * 255),
		A: uint8(a * 255),
	}
}
