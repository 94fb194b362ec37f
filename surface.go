package particlefield

import "errors"

// ErrSurfaceUnavailable is returned by Mount when the host cannot provide a
// drawable surface. The field does not start and is not retried.
var ErrSurfaceUnavailable = errors.New("particlefield: surface unavailable")

// Canvas is the set of paint operations the render loop issues each tick.
// Coordinates are in surface pixels; colors are straight (not premultiplied).
type Canvas interface {
	// Clear erases the whole surface to transparent.
	Clear()
	// StrokeLine draws a line segment of the given width.
	StrokeLine(x0, y0, x1, y1, width float64, c Color)
	// FillCircle draws a filled circle.
	FillCircle(cx, cy, r float64, c Color)
	// Glow draws a soft halo of radius r+blur centered on (cx, cy), fading
	// from c at the core to transparent at the rim.
	Glow(cx, cy, r, blur float64, c Color, blend BlendMode)
}

// Drawable is a resizable pixel buffer owned by a Surface.
type Drawable interface {
	Canvas
	// Resize reallocates the buffer to width×height pixels. Contents are
	// undefined afterwards.
	Resize(width, height int)
	// Release frees the buffer. The Drawable is not used again.
	Release()
}

// Viewport reports the host's visible area and notifies on changes.
type Viewport interface {
	// Size returns the current viewport size in pixels.
	Size() (width, height int)
	// OnResize registers fn to run after every viewport size change, on the
	// same thread as frame callbacks. The returned func detaches fn.
	OnResize(fn func()) (detach func())
}

// Bounds is a read-only snapshot of the surface dimensions.
type Bounds struct {
	Width, Height int
}

// W returns the width as float64.
func (b Bounds) W() float64 { return float64(b.Width) }

// H returns the height as float64.
func (b Bounds) H() float64 { return float64(b.Height) }

// Area returns Width*Height in px².
func (b Bounds) Area() int { return b.Width * b.Height }

// Surface owns a Drawable and keeps its pixel size in sync with a Viewport.
// It is the only writer of the field's dimensions; everything else reads
// them through Bounds.
type Surface struct {
	drawable Drawable
	viewport Viewport
	bounds   Bounds
	sized    bool
}

// newSurface wraps d and sizes it to the viewport on the first Resize.
func newSurface(vp Viewport, d Drawable) *Surface {
	return &Surface{drawable: d, viewport: vp}
}

// Resize sets the surface size to the viewport's current size. It reports
// whether the dimensions changed; an unchanged size leaves the buffer alone.
func (s *Surface) Resize() bool {
	w, h := s.viewport.Size()
	b := Bounds{Width: max(w, 0), Height: max(h, 0)}
	if s.sized && b == s.bounds {
		return false
	}
	s.bounds = b
	s.sized = true
	s.drawable.Resize(b.Width, b.Height)
	return true
}

// Bounds returns the current surface dimensions.
func (s *Surface) Bounds() Bounds {
	return s.bounds
}

// Canvas returns the paint target.
func (s *Surface) Canvas() Canvas {
	return s.drawable
}

// release frees the underlying drawable. Safe to call more than once.
func (s *Surface) release() {
	if s.drawable == nil {
		return
	}
	s.drawable.Release()
	s.drawable = nil
}
