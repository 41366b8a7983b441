package particle

import (
	"math/rand/v2"
	"slices"

	"github.com/tejashwikalptaru/spectra/internal/domain"
)

// MaxDensity caps the density factor so loud buckets cannot burst unbounded.
const MaxDensity = 3.0

// Sink receives spawned particles. Buffer implements it.
type Sink interface {
	Add(p domain.Particle) bool
}

// Spawner decides per bucket and per frame whether a particle is born.
//
// Each spawner owns its random source. Spawners must not share one: the
// generator is not safe for concurrent use.
type Spawner struct {
	cfg    domain.ParticleConfig
	tables *Tables
	rng    *rand.Rand

	mode      domain.RenderMode
	threshold float32
	baseSize  float32

	glyphs []rune
	drift  float32
}

// NewSpawner creates a spawner in normal mode. A zero seed picks a random one.
func NewSpawner(cfg domain.ParticleConfig, tables *Tables, seed uint64) *Spawner {
	if seed == 0 {
		seed = rand.Uint64()
	}
	s := &Spawner{
		cfg:    cfg,
		tables: tables,
		rng:    rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
	s.SetMode(domain.ModeNormal)
	return s
}

// SetMode swaps the threshold and base size for mode.
func (s *Spawner) SetMode(mode domain.RenderMode) {
	s.mode = mode
	s.threshold = s.cfg.Threshold(mode)
	s.baseSize = s.cfg.BaseSize(mode)
}

// Mode returns the current display mode.
func (s *Spawner) Mode() domain.RenderMode {
	return s.mode
}

// Threshold returns the active spawn threshold.
func (s *Spawner) Threshold() float32 {
	return s.threshold
}

// BaseSize returns the active base particle size.
func (s *Spawner) BaseSize() float32 {
	return s.baseSize
}

// SetGlyphs turns on the text-particle variant: every particle carries a
// random glyph and drifts sideways by up to ±drift/2 scaled by its density.
// An empty glyph set turns it off.
func (s *Spawner) SetGlyphs(glyphs []rune, drift float32) {
	s.glyphs = slices.Clone(glyphs)
	s.drift = drift
}

// Spawn rolls one spawn per bucket and hands new particles to sink.
// It returns how many particles sink accepted.
//
// A bucket spawns only when its value is strictly above the threshold, with
// probability min(value/threshold, MaxDensity) * SpawnProbability. The same
// density factor scales velocity and size.
func (s *Spawner) Spawn(values []float32, spawnY float32, frame domain.FrameInfo, sink Sink) int {
	if s.threshold <= 0 {
		return 0
	}

	xStep := frame.XStep()
	spawned := 0
	for i, v := range values {
		if v <= s.threshold {
			continue
		}

		density := min(v/s.threshold, MaxDensity)
		if s.rng.Float32() >= density*s.cfg.SpawnProbability {
			continue
		}

		p := domain.Particle{
			X:         float32(i)*xStep + s.rng.Float32()*frame.BarWidth,
			Y:         spawnY,
			VelocityY: s.tables.Velocity.Sample(s.rng) * density,
			Size:      s.baseSize * density,
			Life:      s.cfg.ParticleLife,
			Alpha:     1,
			Active:    true,
		}
		if len(s.glyphs) > 0 {
			p.Character = s.glyphs[s.rng.IntN(len(s.glyphs))]
			p.VelocityX = (s.rng.Float32() - 0.5) * s.drift * density
		}

		if sink.Add(p) {
			spawned++
		}
	}
	return spawned
}
