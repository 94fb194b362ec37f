package particlefield

// Default design parameters.
const (
	DefaultMaxParticles    = 50
	DefaultAreaPerParticle = 15000.0
	DefaultLinkDistance    = 120.0
	DefaultLinkOpacity     = 0.3
)

// Config controls how a Field seeds, moves and paints its particles.
// Zero-valued fields are replaced with the defaults listed on each field,
// so a zero Velocity or LinkOpacity cannot be expressed directly; use Still
// and NoLinks for those.
type Config struct {
	// MaxParticles caps the population regardless of surface area. Default 50.
	// A negative value disables seeding entirely.
	MaxParticles int
	// AreaPerParticle is the surface area in px² that earns one particle.
	// Default 15000.
	AreaPerParticle float64
	// Velocity is the per-axis velocity range in pixels per tick.
	// Default [-0.25, 0.25].
	Velocity Range
	// Still seeds every particle at rest. Velocity resolves to [0, 0].
	Still bool
	// Radius is the particle radius range in pixels. Default [1, 3].
	Radius Range
	// Opacity is the particle opacity range. Default [0.2, 0.7].
	Opacity Range

	// LinkDistance is the proximity threshold in pixels below which two
	// particles are connected. Default 120.
	LinkDistance float64
	// LinkOpacity is the opacity of a connection between coincident
	// particles; it falls off linearly to zero at LinkDistance. Default 0.3.
	LinkOpacity float64
	// LinkWidth is the stroke width of connections. Default 1.
	LinkWidth float64
	// NoLinks turns connections off. LinkOpacity resolves to 0 and no
	// pairs are tested.
	NoLinks bool

	// Color is the particle and connection color; its alpha is ignored.
	// Default rgb(0, 150, 255).
	Color Color
	// GlowColor is the halo color drawn around each particle core.
	// Default rgba(0, 210, 255, 0.5).
	GlowColor Color
	// GlowBlur is the halo radius beyond the core in pixels. Default 10.
	GlowBlur float64
	// GlowBlend composites the halo over the particle. Default BlendNormal.
	GlowBlend BlendMode
	// CoreScale is the inner core radius as a fraction of the particle
	// radius. Default 0.5.
	CoreScale float64
	// CoreAlpha multiplies the particle opacity for the inner core.
	// Default 0.8.
	CoreAlpha float64
}

// DefaultConfig returns a Config with every field set to its default.
func DefaultConfig() Config {
	return Config{
		MaxParticles:    DefaultMaxParticles,
		AreaPerParticle: DefaultAreaPerParticle,
		Velocity:        Range{-0.25, 0.25},
		Radius:          Range{1, 3},
		Opacity:         Range{0.2, 0.7},
		LinkDistance:    DefaultLinkDistance,
		LinkOpacity:     DefaultLinkOpacity,
		LinkWidth:       1,
		Color:           Color{R: 0, G: 150.0 / 255, B: 1, A: 1},
		GlowColor:       Color{R: 0, G: 210.0 / 255, B: 1, A: 0.5},
		GlowBlur:        10,
		GlowBlend:       BlendNormal,
		CoreScale:       0.5,
		CoreAlpha:       0.8,
	}
}

// withDefaults returns a copy of c with zero-valued fields filled in.
func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.MaxParticles == 0 {
		c.MaxParticles = d.MaxParticles
	}
	if c.AreaPerParticle <= 0 {
		c.AreaPerParticle = d.AreaPerParticle
	}
	if c.Velocity == (Range{}) {
		c.Velocity = d.Velocity
	}
	if c.Radius == (Range{}) {
		c.Radius = d.Radius
	}
	if c.Opacity == (Range{}) {
		c.Opacity = d.Opacity
	}
	if c.LinkDistance <= 0 {
		c.LinkDistance = d.LinkDistance
	}
	if c.LinkOpacity <= 0 {
		c.LinkOpacity = d.LinkOpacity
	}
	if c.LinkWidth <= 0 {
		c.LinkWidth = d.LinkWidth
	}
	if c.Color == (Color{}) {
		c.Color = d.Color
	}
	if c.GlowColor == (Color{}) {
		c.GlowColor = d.GlowColor
	}
	if c.GlowBlur <= 0 {
		c.GlowBlur = d.GlowBlur
	}
	if c.CoreScale <= 0 {
		c.CoreScale = d.CoreScale
	}
	if c.CoreAlpha <= 0 {
		c.CoreAlpha = d.CoreAlpha
	}
	if c.Still {
		c.Velocity = Range{}
	}
	if c.NoLinks {
		c.LinkOpacity = 0
	}
	return c
}

// TargetCount returns the population size for a width×height surface:
// one particle per AreaPerParticle px², never more than MaxParticles.
func TargetCount(width, height int, cfg Config) int {
	cfg = cfg.withDefaults()
	if width <= 0 || height <= 0 {
		return 0
	}
	n := int(float64(width) * float64(height) / cfg.AreaPerParticle)
	return max(0, min(cfg.MaxParticles, n))
}
