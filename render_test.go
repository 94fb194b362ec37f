package particlefield

import (
	"math"
	"testing"
)

func TestConnectionOpacity(t *testing.T) {
	tests := []struct {
		name      string
		distance  float64
		wantAlpha float64
		wantOK    bool
	}{
		{"coincident", 0, 0.3, true},
		{"halfway", 60, 0.15, true},
		{"100px", 100, 0.05, true},
		{"just inside", 119.999, (1 - 119.999/120) * 0.3, true},
		{"at threshold", 120, 0, false},
		{"beyond", 200, 0, false},
		{"negative", -1, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			alpha, ok := ConnectionOpacity(tt.distance, 120, 0.3)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			assertNear(t, "opacity", alpha, tt.wantAlpha)
		})
	}
}

func TestConnectionOpacityMonotonic(t *testing.T) {
	prev := math.Inf(1)
	for d := 0.0; d < 120; d += 0.5 {
		alpha, ok := ConnectionOpacity(d, 120, 0.3)
		if !ok {
			t.Fatalf("distance %f not connected", d)
		}
		if alpha <= 0 || alpha > 0.3 {
			t.Fatalf("distance %f: opacity %f outside (0, 0.3]", d, alpha)
		}
		if alpha >= prev {
			t.Fatalf("distance %f: opacity %f not below %f", d, alpha, prev)
		}
		prev = alpha
	}
}

func placed(positions ...Vec2) []Particle {
	ps := make([]Particle, len(positions))
	for i, pos := range positions {
		ps[i] = Particle{Pos: pos, radius: 2, opacity: 0.5}
	}
	return ps
}

func TestDrawConnectionsSinglePair(t *testing.T) {
	cfg := DefaultConfig()
	c := &recordCanvas{}
	var stats FrameStats
	drawConnections(c, placed(Vec2{0, 0}, Vec2{100, 0}), &cfg, &stats)

	lines := c.ops("line")
	if len(lines) != 1 {
		t.Fatalf("lines = %d, want 1", len(lines))
	}
	l := lines[0]
	assertNear(t, "x0", l.x0, 0)
	assertNear(t, "x1", l.x1, 100)
	assertNear(t, "width", l.w, 1)
	assertNear(t, "alpha", l.c.A, 0.05)
	if l.c.R != cfg.Color.R || l.c.G != cfg.Color.G || l.c.B != cfg.Color.B {
		t.Errorf("line color = %v, want particle color", l.c)
	}
	if stats.PairsChecked != 1 || stats.Connections != 1 {
		t.Errorf("stats = %+v, want 1 pair 1 connection", stats)
	}
}

func TestDrawConnectionsThreshold(t *testing.T) {
	cfg := DefaultConfig()
	tests := []struct {
		name string
		b    Vec2
		want int
	}{
		{"119.999 connects", Vec2{119.999, 0}, 1},
		{"120 does not", Vec2{120, 0}, 0},
		{"diagonal inside", Vec2{80, 80}, 1},
		{"diagonal outside", Vec2{90, 90}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &recordCanvas{}
			var stats FrameStats
			drawConnections(c, placed(Vec2{0, 0}, tt.b), &cfg, &stats)
			if got := len(c.ops("line")); got != tt.want {
				t.Errorf("lines = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestDrawConnectionsNoLinks(t *testing.T) {
	cfg := Config{NoLinks: true}.withDefaults()
	c := &recordCanvas{}
	var stats FrameStats
	drawConnections(c, placed(Vec2{0, 0}, Vec2{10, 0}, Vec2{20, 0}), &cfg, &stats)
	if len(c.log) != 0 {
		t.Errorf("ops = %v, want none", c.log)
	}
	if stats.PairsChecked != 0 || stats.Connections != 0 {
		t.Errorf("stats = %+v, want zero", stats)
	}
}

func TestDrawConnectionsPairsOnce(t *testing.T) {
	cfg := DefaultConfig()
	c := &recordCanvas{}
	var stats FrameStats
	// Four particles within 120px of each other: C(4,2) = 6 links.
	drawConnections(c, placed(Vec2{0, 0}, Vec2{10, 0}, Vec2{0, 10}, Vec2{10, 10}), &cfg, &stats)
	if got := len(c.ops("line")); got != 6 {
		t.Errorf("lines = %d, want 6", got)
	}
	if stats.PairsChecked != 6 {
		t.Errorf("PairsChecked = %d, want 6", stats.PairsChecked)
	}
}

func TestDrawConnectionsCoincident(t *testing.T) {
	cfg := DefaultConfig()
	c := &recordCanvas{}
	var stats FrameStats
	drawConnections(c, placed(Vec2{50, 50}, Vec2{50, 50}), &cfg, &stats)
	lines := c.ops("line")
	if len(lines) != 1 {
		t.Fatalf("lines = %d, want 1", len(lines))
	}
	assertNear(t, "alpha", lines[0].c.A, cfg.LinkOpacity)
}

func TestDrawConnectionsEmpty(t *testing.T) {
	cfg := DefaultConfig()
	c := &recordCanvas{}
	var stats FrameStats
	drawConnections(c, nil, &cfg, &stats)
	drawConnections(c, placed(Vec2{1, 1}), &cfg, &stats)
	if len(c.log) != 0 || stats.PairsChecked != 0 {
		t.Errorf("expected no ops, got %d ops, %d pairs", len(c.log), stats.PairsChecked)
	}
}

func TestDrawParticles(t *testing.T) {
	cfg := DefaultConfig()
	c := &recordCanvas{}
	ps := []Particle{{Pos: Vec2{10, 20}, radius: 2, opacity: 0.5}}
	drawParticles(c, ps, &cfg)

	if len(c.log) != 3 {
		t.Fatalf("ops = %d, want 3 (disc, glow, core)", len(c.log))
	}
	disc, glow, core := c.log[0], c.log[1], c.log[2]

	if disc.kind != "circle" || glow.kind != "glow" || core.kind != "circle" {
		t.Fatalf("op order = %s, %s, %s", disc.kind, glow.kind, core.kind)
	}
	assertNear(t, "disc r", disc.r, 2)
	assertNear(t, "disc alpha", disc.c.A, 0.5)

	assertNear(t, "glow x", glow.x0, 10)
	assertNear(t, "glow y", glow.y0, 20)
	assertNear(t, "glow r", glow.r, 1)
	assertNear(t, "glow blur", glow.w, 10)
	assertNear(t, "glow alpha", glow.c.A, 0.5*0.4)
	if glow.blend != BlendNormal {
		t.Errorf("glow blend = %d, want BlendNormal", glow.blend)
	}

	assertNear(t, "core r", core.r, 1)
	assertNear(t, "core alpha", core.c.A, 0.4)
}

func TestDrawParticlesCount(t *testing.T) {
	cfg := DefaultConfig()
	c := &recordCanvas{}
	p := NewPopulation(cfg, testRand())
	p.Seed(Bounds{Width: 800, Height: 600})
	drawParticles(c, p.Particles(), &cfg)
	if got := len(c.ops("circle")); got != 2*p.Len() {
		t.Errorf("circles = %d, want %d", got, 2*p.Len())
	}
	if got := len(c.ops("glow")); got != p.Len() {
		t.Errorf("glows = %d, want %d", got, p.Len())
	}
}
