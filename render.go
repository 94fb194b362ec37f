package particlefield

import "math"

// ConnectionOpacity returns the line opacity for two particles distance
// apart. Pairs at or beyond threshold are not connected (ok is false);
// closer pairs fade linearly from maxOpacity at distance 0 to 0 at threshold.
func ConnectionOpacity(distance, threshold, maxOpacity float64) (opacity float64, ok bool) {
	if distance < 0 || distance >= threshold {
		return 0, false
	}
	return (1 - distance/threshold) * maxOpacity, true
}

// drawConnections links every unordered pair (i < j) closer than the link
// distance. The squared distance rejects far pairs before the square root.
func drawConnections(c Canvas, ps []Particle, cfg *Config, stats *FrameStats) {
	if cfg.NoLinks {
		return
	}
	limit := cfg.LinkDistance
	limitSq := limit * limit
	for i := 0; i < len(ps); i++ {
		a := &ps[i]
		for j := i + 1; j < len(ps); j++ {
			b := &ps[j]
			stats.PairsChecked++

			dx := a.Pos.X - b.Pos.X
			dy := a.Pos.Y - b.Pos.Y
			distSq := dx*dx + dy*dy
			if distSq >= limitSq {
				continue
			}

			alpha, ok := ConnectionOpacity(math.Sqrt(distSq), limit, cfg.LinkOpacity)
			if !ok {
				continue
			}
			c.StrokeLine(a.Pos.X, a.Pos.Y, b.Pos.X, b.Pos.Y, cfg.LinkWidth, cfg.Color.WithAlpha(alpha))
			stats.Connections++
		}
	}
}

// drawParticles paints each particle as a filled disc at its own opacity,
// then a glowing core on top.
func drawParticles(c Canvas, ps []Particle, cfg *Config) {
	for i := range ps {
		p := &ps[i]
		c.FillCircle(p.Pos.X, p.Pos.Y, p.radius, cfg.Color.WithAlpha(p.opacity))

		coreR := p.radius * cfg.CoreScale
		coreA := clamp01(p.opacity * cfg.CoreAlpha)
		glow := cfg.GlowColor
		glow.A *= coreA
		c.Glow(p.Pos.X, p.Pos.Y, coreR, cfg.GlowBlur, glow, cfg.GlowBlend)
		c.FillCircle(p.Pos.X, p.Pos.Y, coreR, cfg.Color.WithAlpha(coreA))
	}
}
