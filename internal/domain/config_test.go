package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultParticleConfig_IsValid(t *testing.T) {
	require.NoError(t, DefaultParticleConfig().Validate())
}

func TestParticleConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*ParticleConfig)
		field  string
	}{
		{"zero life", func(c *ParticleConfig) { c.ParticleLife = 0 }, "particle_life"},
		{"zero decay", func(c *ParticleConfig) { c.ParticleLifeDecay = 0 }, "particle_life_decay"},
		{"negative exponent", func(c *ParticleConfig) { c.AlphaDecayExponent = -1 }, "alpha_decay_exponent"},
		{"zero overlay threshold", func(c *ParticleConfig) { c.SpawnThresholdOverlay = 0 }, "spawn_threshold_overlay"},
		{"zero normal threshold", func(c *ParticleConfig) { c.SpawnThresholdNormal = 0 }, "spawn_threshold_normal"},
		{"negative probability", func(c *ParticleConfig) { c.SpawnProbability = -0.1 }, "spawn_probability"},
		{"zero overlay size", func(c *ParticleConfig) { c.ParticleSizeOverlay = 0 }, "particle_size_overlay"},
		{"zero normal size", func(c *ParticleConfig) { c.ParticleSizeNormal = 0 }, "particle_size_normal"},
		{"negative min velocity", func(c *ParticleConfig) { c.VelocityMin = -1 }, "velocity_min"},
		{"inverted velocity", func(c *ParticleConfig) { c.VelocityMax = c.VelocityMin - 1 }, "velocity_max"},
		{"no capacity", func(c *ParticleConfig) { c.MaxParticles = 0 }, "max_particles"},
		{"overlay multiplier above one", func(c *ParticleConfig) { c.OverlayHeightMultiplier = 1.5 }, "overlay_height_multiplier"},
		{"zero normal smoothing", func(c *ParticleConfig) { c.SmoothingNormal = 0 }, "smoothing_normal"},
		{"overlay smoothing above one", func(c *ParticleConfig) { c.SmoothingOverlay = 2 }, "smoothing_overlay"},
		{"size decay above one", func(c *ParticleConfig) { c.SizeDecay = 1.01 }, "size_decay"},
		{"no velocity levels", func(c *ParticleConfig) { c.VelocityTableSize = 0 }, "velocity_table_size"},
		{"inverted clamp", func(c *ParticleConfig) { c.ClampMin, c.ClampMax = 1, 0 }, "clamp_max"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultParticleConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()

			var validation *ValidationError
			require.ErrorAs(t, err, &validation)
			assert.Equal(t, tt.field, validation.Field)
		})
	}
}

func TestParticleConfig_ModeAccessors(t *testing.T) {
	cfg := DefaultParticleConfig()

	assert.Equal(t, cfg.SpawnThresholdNormal, cfg.Threshold(ModeNormal))
	assert.Equal(t, cfg.SpawnThresholdOverlay, cfg.Threshold(ModeOverlay))
	assert.Equal(t, cfg.ParticleSizeNormal, cfg.BaseSize(ModeNormal))
	assert.Equal(t, cfg.ParticleSizeOverlay, cfg.BaseSize(ModeOverlay))
	assert.Equal(t, cfg.SmoothingNormal, cfg.Smoothing(ModeNormal))
	assert.Equal(t, cfg.SmoothingOverlay, cfg.Smoothing(ModeOverlay))
	assert.Equal(t, float32(2), cfg.VelocityRange())
}

func TestParticleConfig_ClampEnabled(t *testing.T) {
	cfg := DefaultParticleConfig()
	assert.False(t, cfg.ClampEnabled())

	cfg.ClampMin, cfg.ClampMax = 0.5, 0.5
	assert.False(t, cfg.ClampEnabled())

	cfg.ClampMax = 1
	assert.True(t, cfg.ClampEnabled())
}

func TestErrors_Unwrap(t *testing.T) {
	rendererErr := NewRendererError("particles", "render", "renderer used after dispose", ErrDisposed)
	assert.True(t, errors.Is(rendererErr, ErrDisposed))
	assert.Equal(t, "renderer particles.render failed: renderer used after dispose", rendererErr.Error())

	repoErr := NewRepositoryError("load", "toml", "decode failed", ErrSettingsNotFound)
	assert.True(t, errors.Is(repoErr, ErrSettingsNotFound))
	assert.Contains(t, repoErr.Error(), "repository toml.load failed")

	validation := NewValidationError("width", 0, "must be positive")
	assert.Equal(t, "validation error for width: must be positive (value: 0)", validation.Error())
}
