package systems

import (
	"math"
	"math/rand"

	"github.com/ojrac/opensimplex-go"

	"github.com/pthm-cable/galaxy/components"
	"github.com/pthm-cable/galaxy/config"
)

// noise3 is a continuous 3D noise source returning values roughly in [-1, 1].
type noise3 interface {
	Eval3(x, y, z float64) float64
}

// NoiseField is a deterministic vector field sampled by position and time.
// It holds no mutable state after construction.
type NoiseField struct {
	src       noise3
	scale     float64
	timeScale float64
	magnitude float64
}

// NewNoiseField creates a noise field with the configured backend and seed.
func NewNoiseField(cfg config.NoiseConfig) *NoiseField {
	var src noise3
	switch cfg.Backend {
	case config.NoisePerlin:
		src = NewPerlinNoise(cfg.Seed)
	default:
		src = opensimplex.New(cfg.Seed)
	}
	return &NoiseField{
		src:       src,
		scale:     cfg.Scale,
		timeScale: cfg.TimeScale,
		magnitude: cfg.Magnitude,
	}
}

// Angle returns the drift direction at (x, y, t) in [0, 2π). Two octaves
// are combined: base frequency, then double frequency at half amplitude.
func (f *NoiseField) Angle(x, y, t float64) float64 {
	nx := x * f.scale
	ny := y * f.scale
	nt := t * f.timeScale

	n1 := f.src.Eval3(nx, ny, nt)
	n2 := f.src.Eval3(nx*2, ny*2, nt*2) * 0.5

	return normalizeHeading((n1 + n2) * 2 * math.Pi)
}

// Sample returns the drift vector at (x, y, t). Non-finite input yields no
// drift.
func (f *NoiseField) Sample(x, y, t float64) components.Vec2 {
	if !components.Finite(x, y, t) {
		return components.Vec2{}
	}
	a := f.Angle(x, y, t)
	return components.Vec2{
		X: math.Cos(a) * f.magnitude,
		Y: math.Sin(a) * f.magnitude,
	}
}

// PerlinNoise generates coherent noise values from a seeded permutation
// table.
type PerlinNoise struct {
	perm [512]int
}

// NewPerlinNoise creates a new Perlin noise generator.
func NewPerlinNoise(seed int64) *PerlinNoise {
	p := &PerlinNoise{}
	rng := rand.New(rand.NewSource(seed))

	var perm [256]int
	for i := range perm {
		perm[i] = i
	}
	rng.Shuffle(len(perm), func(i, j int) {
		perm[i], perm[j] = perm[j], perm[i]
	})

	// Duplicate so corner hashes never need a wrap.
	copy(p.perm[:256], perm[:])
	copy(p.perm[256:], perm[:])

	return p
}

// Eval3 returns a noise value for 3D coordinates.
func (p *PerlinNoise) Eval3(x, y, z float64) float64 {
	fx, fy, fz := math.Floor(x), math.Floor(y), math.Floor(z)
	X := int(fx) & 255
	Y := int(fy) & 255
	Z := int(fz) & 255

	x -= fx
	y -= fy
	z -= fz

	u := fade(x)
	v := fade(y)
	w := fade(z)

	A := p.perm[X] + Y
	AA := p.perm[A] + Z
	AB := p.perm[A+1] + Z
	B := p.perm[X+1] + Y
	BA := p.perm[B] + Z
	BB := p.perm[B+1] + Z

	x0 := lerp(u, grad3D(p.perm[AA], x, y, z), grad3D(p.perm[BA], x-1, y, z))
	x1 := lerp(u, grad3D(p.perm[AB], x, y-1, z), grad3D(p.perm[BB], x-1, y-1, z))
	x2 := lerp(u, grad3D(p.perm[AA+1], x, y, z-1), grad3D(p.perm[BA+1], x-1, y, z-1))
	x3 := lerp(u, grad3D(p.perm[AB+1], x, y-1, z-1), grad3D(p.perm[BB+1], x-1, y-1, z-1))

	return lerp(w, lerp(v, x0, x1), lerp(v, x2, x3))
}

func fade(t float64) float64 {
	return t * t * t * (t*(t*6-15) + 10)
}

func lerp(t, a, b float64) float64 {
	return a + t*(b-a)
}

func grad3D(hash int, x, y, z float64) float64 {
	h := hash & 15
	u := x
	if h >= 8 {
		u = y
	}
	v := y
	if h >= 4 {
		if h == 12 || h == 14 {
			v = x
		} else {
			v = z
		}
	}
	if h&1 != 0 {
		u = -u
	}
	if h&2 != 0 {
		v = -v
	}
	return u + v
}
