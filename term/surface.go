package term

import (
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/phanxgames/particlefield"
)

// halfBlock draws the top subpixel of a cell in the foreground color and
// the bottom one in the background color.
const halfBlock = '▀'

// dotBoost scales the coverage of sub-subpixel circles.
const dotBoost = 4

// rgba is a premultiplied color accumulated in a subpixel.
type rgba struct {
	r, g, b, a float64
}

// over composites src (straight alpha) onto dst with source-over.
func (dst rgba) over(c particlefield.Color, coverage float64) rgba {
	a := clamp01(c.A * coverage)
	return rgba{
		r: c.R*a + dst.r*(1-a),
		g: c.G*a + dst.g*(1-a),
		b: c.B*a + dst.b*(1-a),
		a: a + dst.a*(1-a),
	}
}

// add composites src additively.
func (dst rgba) add(c particlefield.Color, coverage float64) rgba {
	a := clamp01(c.A * coverage)
	return rgba{
		r: clamp01(dst.r + c.R*a),
		g: clamp01(dst.g + c.G*a),
		b: clamp01(dst.b + c.B*a),
		a: clamp01(dst.a + a),
	}
}

// cellSurface is a Drawable that rasterizes into a grid of subpixels, two
// per terminal cell (top and bottom half). Surface coordinates are in
// virtual pixels; cellW×cellH virtual pixels make one cell, so each
// subpixel covers cellW×(cellH/2).
type cellSurface struct {
	cellW, cellH float64
	cols, rows   int
	pix          []rgba
}

func newCellSurface(cellW, cellH int) *cellSurface {
	return &cellSurface{cellW: float64(cellW), cellH: float64(cellH)}
}

// subW and subH return the subpixel size in virtual pixels.
func (s *cellSurface) subW() float64 { return s.cellW }
func (s *cellSurface) subH() float64 { return s.cellH / 2 }

// Resize reallocates the subpixel grid for a width×height virtual-pixel
// surface.
func (s *cellSurface) Resize(width, height int) {
	s.cols = int(math.Ceil(float64(width) / s.cellW))
	s.rows = int(math.Ceil(float64(height) / s.cellH))
	n := s.cols * s.rows * 2
	if cap(s.pix) < n {
		s.pix = make([]rgba, n)
	}
	s.pix = s.pix[:n]
	s.Clear()
}

// Release drops the grid.
func (s *cellSurface) Release() {
	s.pix = nil
	s.cols, s.rows = 0, 0
}

// Clear resets every subpixel to transparent.
func (s *cellSurface) Clear() {
	clear(s.pix)
}

// StrokeLine plots the segment with Bresenham's integer algorithm on the
// subpixel grid. Width is ignored; one subpixel is already wider than any
// sensible stroke.
func (s *cellSurface) StrokeLine(x0, y0, x1, y1, _ float64, c particlefield.Color) {
	ax, ay := s.toSub(x0, y0)
	bx, by := s.toSub(x1, y1)

	dx := abs(bx - ax)
	sx := -1
	if ax < bx {
		sx = 1
	}
	dy := -abs(by - ay)
	sy := -1
	if ay < by {
		sy = 1
	}
	err := dx + dy
	for {
		s.blend(ax, ay, c, 1, particlefield.BlendNormal)
		if ax == bx && ay == by {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			ax += sx
		}
		if e2 <= dx {
			err += dx
			ay += sy
		}
	}
}

// FillCircle fills every subpixel whose center lies inside the circle. A
// circle smaller than one subpixel covers its center subpixel in proportion
// to its area, times dotBoost so single dots stay visible.
func (s *cellSurface) FillCircle(cx, cy, r float64, c particlefield.Color) {
	if r <= 0 {
		return
	}
	sw, sh := s.subW(), s.subH()
	if r*2 < math.Min(sw, sh) {
		x, y := s.toSub(cx, cy)
		coverage := math.Pi * r * r / (sw * sh)
		s.blend(x, y, c, math.Min(1, coverage*dotBoost), particlefield.BlendNormal)
		return
	}
	s.disc(cx, cy, r, func(d float64) float64 { return 1 }, c, particlefield.BlendNormal)
}

// Glow paints a disc of radius r+blur whose coverage falls off with
// smoothstep from the center.
func (s *cellSurface) Glow(cx, cy, r, blur float64, c particlefield.Color, blend particlefield.BlendMode) {
	outer := r + blur
	if outer <= 0 || c.A <= 0 {
		return
	}
	s.disc(cx, cy, outer, func(d float64) float64 {
		t := 1 - d
		return t * t * (3 - 2*t)
	}, c, blend)
}

// disc visits every subpixel whose center is within radius of (cx, cy) and
// blends c with falloff(normalized distance) coverage.
func (s *cellSurface) disc(cx, cy, radius float64, falloff func(float64) float64, c particlefield.Color, blend particlefield.BlendMode) {
	sw, sh := s.subW(), s.subH()
	x0, y0 := s.toSub(cx-radius, cy-radius)
	x1, y1 := s.toSub(cx+radius, cy+radius)
	hit := false
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			px := (float64(x) + 0.5) * sw
			py := (float64(y) + 0.5) * sh
			d := math.Hypot(px-cx, py-cy) / radius
			if d >= 1 {
				continue
			}
			hit = true
			s.blend(x, y, c, falloff(d), blend)
		}
	}
	if !hit {
		x, y := s.toSub(cx, cy)
		s.blend(x, y, c, falloff(0), blend)
	}
}

// toSub maps virtual pixel coordinates to a subpixel index pair.
func (s *cellSurface) toSub(x, y float64) (int, int) {
	return int(math.Floor(x / s.subW())), int(math.Floor(y / s.subH()))
}

func (s *cellSurface) blend(x, y int, c particlefield.Color, coverage float64, mode particlefield.BlendMode) {
	if x < 0 || y < 0 || x >= s.cols || y >= s.rows*2 {
		return
	}
	i := y*s.cols + x
	switch mode {
	case particlefield.BlendAdd, particlefield.BlendScreen:
		s.pix[i] = s.pix[i].add(c, coverage)
	default:
		s.pix[i] = s.pix[i].over(c, coverage)
	}
}

// at returns the subpixel at (x, y).
func (s *cellSurface) at(x, y int) rgba {
	return s.pix[y*s.cols+x]
}

// present writes the grid to screen, compositing every subpixel over bg.
func (s *cellSurface) present(screen tcell.Screen, bg particlefield.Color) {
	sw, sh := screen.Size()
	for row := 0; row < s.rows && row < sh; row++ {
		for col := 0; col < s.cols && col < sw; col++ {
			top := s.at(col, row*2)
			bottom := s.at(col, row*2+1)
			if top.a == 0 && bottom.a == 0 {
				screen.SetContent(col, row, ' ', nil, tcell.StyleDefault.Background(toTcell(bg, rgba{})))
				continue
			}
			style := tcell.StyleDefault.
				Foreground(toTcell(bg, top)).
				Background(toTcell(bg, bottom))
			screen.SetContent(col, row, halfBlock, nil, style)
		}
	}
}

// toTcell composites p over the opaque background bg.
func toTcell(bg particlefield.Color, p rgba) tcell.Color {
	r := p.r + bg.R*(1-p.a)
	g := p.g + bg.G*(1-p.a)
	b := p.b + bg.B*(1-p.a)
	return tcell.NewRGBColor(int32(clamp01(r)*255), int32(clamp01(g)*255), int32(clamp01(b)*255))
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
