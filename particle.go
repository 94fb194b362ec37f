package particlefield

import "math/rand/v2"

// Particle is a single drifting point. Pos and Vel change every tick;
// radius and opacity are fixed when the particle is seeded.
type Particle struct {
	Pos Vec2
	Vel Vec2

	radius  float64
	opacity float64
}

// Radius returns the particle radius in pixels.
func (p Particle) Radius() float64 { return p.radius }

// Opacity returns the particle opacity in [0, 1].
func (p Particle) Opacity() float64 { return p.opacity }

// Population owns the particle set of a Field. It reads surface dimensions
// but never changes them.
type Population struct {
	config    Config
	rng       *rand.Rand
	particles []Particle
}

// NewPopulation creates an empty population. If rng is nil a randomly
// seeded PCG source is used.
func NewPopulation(cfg Config, rng *rand.Rand) *Population {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Population{config: cfg.withDefaults(), rng: rng}
}

// Seed discards every particle and creates TargetCount(b) new ones at
// uniformly random positions inside b.
func (p *Population) Seed(b Bounds) {
	n := TargetCount(b.Width, b.Height, p.config)
	if cap(p.particles) < n {
		p.particles = make([]Particle, n)
	}
	p.particles = p.particles[:n]

	cfg := &p.config
	for i := range p.particles {
		p.particles[i] = Particle{
			Pos:     Vec2{X: p.rng.Float64() * b.W(), Y: p.rng.Float64() * b.H()},
			Vel:     Vec2{X: cfg.Velocity.Random(p.rng), Y: cfg.Velocity.Random(p.rng)},
			radius:  cfg.Radius.Random(p.rng),
			opacity: cfg.Opacity.Random(p.rng),
		}
	}
}

// Advance moves every particle by its velocity. A particle that crosses an
// edge of b has that velocity axis reflected and its position clamped back
// inside. Advance does not allocate.
func (p *Population) Advance(b Bounds) {
	w, h := b.W(), b.H()
	for i := range p.particles {
		pt := &p.particles[i]
		pt.Pos.X += pt.Vel.X
		pt.Pos.Y += pt.Vel.Y

		if pt.Pos.X < 0 || pt.Pos.X > w {
			pt.Vel.X = -pt.Vel.X
			pt.Pos.X = clamp(pt.Pos.X, 0, w)
		}
		if pt.Pos.Y < 0 || pt.Pos.Y > h {
			pt.Vel.Y = -pt.Vel.Y
			pt.Pos.Y = clamp(pt.Pos.Y, 0, h)
		}
	}
}

// Len returns the number of particles.
func (p *Population) Len() int {
	return len(p.particles)
}

// At returns a copy of particle i.
func (p *Population) At(i int) Particle {
	return p.particles[i]
}

// Particles returns the live particle slice. The returned slice MUST NOT be
// mutated and is only valid until the next Seed.
func (p *Population) Particles() []Particle {
	return p.particles
}

// clear drops every particle, keeping the backing array.
func (p *Population) clear() {
	p.particles = p.particles[:0]
}
