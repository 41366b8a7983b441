package particle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tejashwikalptaru/spectra/internal/domain"
)

type recordingSink struct {
	particles []domain.Particle
	limit     int
}

func (s *recordingSink) Add(p domain.Particle) bool {
	if s.limit > 0 && len(s.particles) >= s.limit {
		return false
	}
	s.particles = append(s.particles, p)
	return true
}

func spawnConfig() domain.ParticleConfig {
	cfg := domain.DefaultParticleConfig()
	cfg.SpawnThresholdNormal = 0.5
	cfg.SpawnThresholdOverlay = 0.25
	cfg.SpawnProbability = 1.0
	cfg.ParticleSizeNormal = 3
	cfg.ParticleSizeOverlay = 2
	cfg.Seed = 42
	return cfg
}

var testFrame = domain.FrameInfo{Width: 400, Height: 300, BarWidth: 8, BarSpacing: 2, BarCount: 40}

func TestSpawner_ThresholdIsStrict(t *testing.T) {
	cfg := spawnConfig()
	s := NewSpawner(cfg, NewTables(cfg), cfg.Seed)

	for range 100 {
		sink := &recordingSink{}
		assert.Zero(t, s.Spawn([]float32{0.5}, 300, testFrame, sink))
		assert.Empty(t, sink.particles)
	}
}

func TestSpawner_AboveThresholdAlwaysSpawnsAtFullProbability(t *testing.T) {
	cfg := spawnConfig()
	s := NewSpawner(cfg, NewTables(cfg), cfg.Seed)

	for range 100 {
		sink := &recordingSink{}
		assert.Equal(t, 1, s.Spawn([]float32{0.51}, 300, testFrame, sink))
	}
}

func TestSpawner_ParticleAttributes(t *testing.T) {
	cfg := spawnConfig()
	tables := NewTables(cfg)
	s := NewSpawner(cfg, tables, cfg.Seed)
	sink := &recordingSink{}

	s.Spawn([]float32{0, 0, 1.0, 0, 5.0}, 280, testFrame, sink)
	require.Len(t, sink.particles, 2)

	double := sink.particles[0]
	assert.True(t, double.Active)
	assert.Equal(t, float32(280), double.Y)
	assert.Equal(t, cfg.ParticleLife, double.Life)
	assert.Equal(t, float32(1), double.Alpha)
	assert.Equal(t, float32(6), double.Size)
	assert.GreaterOrEqual(t, double.X, float32(20))
	assert.Less(t, double.X, float32(28))
	assert.GreaterOrEqual(t, double.VelocityY, cfg.VelocityMin*2)
	assert.Less(t, double.VelocityY, cfg.VelocityMax*2)
	assert.Zero(t, double.VelocityX)
	assert.Zero(t, double.Character)

	capped := sink.particles[1]
	assert.Equal(t, float32(3*MaxDensity), capped.Size)
	assert.GreaterOrEqual(t, capped.X, float32(40))
}

func TestSpawner_ZeroProbabilityNeverSpawns(t *testing.T) {
	cfg := spawnConfig()
	cfg.SpawnProbability = 0
	s := NewSpawner(cfg, NewTables(cfg), cfg.Seed)
	sink := &recordingSink{}

	for range 100 {
		s.Spawn([]float32{10, 10, 10}, 300, testFrame, sink)
	}
	assert.Empty(t, sink.particles)
}

func TestSpawner_SeedIsDeterministic(t *testing.T) {
	cfg := spawnConfig()
	cfg.SpawnProbability = 0.3
	values := []float32{0.6, 0.9, 1.2, 0.2, 3.0, 0.7}

	run := func() []domain.Particle {
		s := NewSpawner(cfg, NewTables(cfg), 7)
		sink := &recordingSink{}
		for range 50 {
			s.Spawn(values, 300, testFrame, sink)
		}
		return sink.particles
	}

	first := run()
	require.NotEmpty(t, first)
	assert.Equal(t, first, run())
}

func TestSpawner_SetMode(t *testing.T) {
	cfg := spawnConfig()
	s := NewSpawner(cfg, NewTables(cfg), cfg.Seed)

	assert.Equal(t, domain.ModeNormal, s.Mode())
	assert.Equal(t, float32(0.5), s.Threshold())
	assert.Equal(t, float32(3), s.BaseSize())

	s.SetMode(domain.ModeOverlay)
	assert.Equal(t, domain.ModeOverlay, s.Mode())
	assert.Equal(t, float32(0.25), s.Threshold())
	assert.Equal(t, float32(2), s.BaseSize())

	sink := &recordingSink{}
	s.Spawn([]float32{0.3}, 300, testFrame, sink)
	assert.Len(t, sink.particles, 1)
}

func TestSpawner_FullSinkCountsAcceptedOnly(t *testing.T) {
	cfg := spawnConfig()
	s := NewSpawner(cfg, NewTables(cfg), cfg.Seed)
	sink := &recordingSink{limit: 2}

	assert.Equal(t, 2, s.Spawn([]float32{1, 1, 1, 1}, 300, testFrame, sink))
}

func TestSpawner_FeedsBuffer(t *testing.T) {
	cfg := spawnConfig()
	cfg.MaxParticles = 3
	tables := NewTables(cfg)
	s := NewSpawner(cfg, tables, cfg.Seed)
	b := NewBuffer(NewPool(int(cfg.MaxParticles)), DynamicsFor(cfg, tables))

	assert.Equal(t, 3, s.Spawn([]float32{1, 1, 1, 1, 1}, 300, testFrame, b))
	assert.Equal(t, 3, b.Len())
}

func TestSpawner_Glyphs(t *testing.T) {
	cfg := spawnConfig()
	s := NewSpawner(cfg, NewTables(cfg), cfg.Seed)
	s.SetGlyphs([]rune("ab"), 4)
	sink := &recordingSink{}

	for range 50 {
		s.Spawn([]float32{1}, 300, testFrame, sink)
	}

	require.NotEmpty(t, sink.particles)
	for _, p := range sink.particles {
		assert.Contains(t, []rune("ab"), p.Character)
		// density 2, drift 4: |VelocityX| <= 4
		assert.LessOrEqual(t, p.VelocityX, float32(4))
		assert.GreaterOrEqual(t, p.VelocityX, float32(-4))
	}

	s.SetGlyphs(nil, 0)
	sink.particles = nil
	s.Spawn([]float32{1}, 300, testFrame, sink)
	require.Len(t, sink.particles, 1)
	assert.Zero(t, sink.particles[0].Character)
}
