// Package particle implements the pooled particle simulation shared by the
// particle renderers: lookup tables, a fixed-capacity ring buffer with
// per-frame compaction, the probabilistic spawner and the travel band.
package particle

import (
	"math"
	"math/rand/v2"

	"github.com/tejashwikalptaru/spectra/internal/domain"
)

// AlphaLevels is the number of discrete alpha levels in an AlphaCurve.
const AlphaLevels = 101

// DefaultVelocityTableSize is the velocity table size used when none is configured.
const DefaultVelocityTableSize = 1024

// VelocityTable holds uniformly spaced velocities in [min, min+range).
// Spawning picks a random index instead of drawing a random real.
type VelocityTable struct {
	values []float32
}

// NewVelocityTable builds table[i] = minVelocity + velocityRange*i/size.
func NewVelocityTable(minVelocity, velocityRange float32, size int) *VelocityTable {
	if size < 1 {
		size = DefaultVelocityTableSize
	}
	t := &VelocityTable{values: make([]float32, size)}
	for i := range t.values {
		t.values[i] = minVelocity + velocityRange*float32(i)/float32(size)
	}
	return t
}

// Len returns the number of entries.
func (t *VelocityTable) Len() int {
	return len(t.values)
}

// At returns entry i.
func (t *VelocityTable) At(i int) float32 {
	return t.values[i]
}

// Sample returns a uniformly chosen entry.
func (t *VelocityTable) Sample(rng *rand.Rand) float32 {
	return t.values[rng.IntN(len(t.values))]
}

// AlphaCurve maps a life ratio to alpha through 101 precomputed levels of
// (i/100)^exponent, avoiding a pow call per particle per frame.
type AlphaCurve struct {
	levels [AlphaLevels]float32
}

// NewAlphaCurve builds the curve for the given exponent.
func NewAlphaCurve(exponent float32) *AlphaCurve {
	c := &AlphaCurve{}
	for i := range c.levels {
		c.levels[i] = float32(math.Pow(float64(i)/float64(AlphaLevels-1), float64(exponent)))
	}
	return c
}

// At returns the alpha for lifeRatio, quantized to floor(lifeRatio*100) and
// clamped to the table.
func (c *AlphaCurve) At(lifeRatio float32) float32 {
	if !(lifeRatio > 0) {
		return c.levels[0]
	}
	idx := int(lifeRatio * (AlphaLevels - 1))
	if idx > AlphaLevels-1 {
		idx = AlphaLevels - 1
	}
	return c.levels[idx]
}

// Level returns level i of the curve.
func (c *AlphaCurve) Level(i int) float32 {
	return c.levels[i]
}

// Tables bundles the lookup tables derived from a configuration.
// They are immutable and shared read-only by every particle.
type Tables struct {
	Velocity *VelocityTable
	Alpha    *AlphaCurve
}

// NewTables builds both tables from cfg.
func NewTables(cfg domain.ParticleConfig) *Tables {
	return &Tables{
		Velocity: NewVelocityTable(cfg.VelocityMin, cfg.VelocityRange(), cfg.VelocityTableSize),
		Alpha:    NewAlphaCurve(cfg.AlphaDecayExponent),
	}
}
