package domain

// ParticleConfig holds the tuning options of a particle renderer.
// It is supplied once at construction by a settings collaborator.
type ParticleConfig struct {
	// ParticleLife is the initial lifetime of a spawned particle
	ParticleLife float32 `toml:"particle_life"`

	// ParticleLifeDecay is subtracted from Life on every update
	ParticleLifeDecay float32 `toml:"particle_life_decay"`

	// AlphaDecayExponent shapes the alpha curve (life ratio raised to this power)
	AlphaDecayExponent float32 `toml:"alpha_decay_exponent"`

	// Spawn thresholds per display mode; a bucket must strictly exceed them
	SpawnThresholdOverlay float32 `toml:"spawn_threshold_overlay"`
	SpawnThresholdNormal  float32 `toml:"spawn_threshold_normal"`

	// SpawnProbability is scaled by the density factor for each spawn roll
	SpawnProbability float32 `toml:"spawn_probability"`

	// Base particle sizes per display mode
	ParticleSizeOverlay float32 `toml:"particle_size_overlay"`
	ParticleSizeNormal  float32 `toml:"particle_size_normal"`

	// Velocity range sampled through the velocity table
	VelocityMin float32 `toml:"velocity_min"`
	VelocityMax float32 `toml:"velocity_max"`

	// VelocityMultiplier scales the per-frame displacement
	VelocityMultiplier float32 `toml:"velocity_multiplier"`

	// MaxParticles is the fixed capacity of the particle buffer
	MaxParticles uint32 `toml:"max_particles"`

	// OverlayHeightMultiplier is the fraction of the canvas used as travel band in overlay mode
	OverlayHeightMultiplier float32 `toml:"overlay_height_multiplier"`

	// Smoothing factors per display mode
	SmoothingNormal  float32 `toml:"smoothing_normal"`
	SmoothingOverlay float32 `toml:"smoothing_overlay"`

	// SizeDecay multiplies the particle size on every update
	SizeDecay float32 `toml:"size_decay"`

	// VelocityTableSize is the number of quantized velocity levels
	VelocityTableSize int `toml:"velocity_table_size"`

	// ClampMin and ClampMax bound smoothed values; clamping is off when they are equal
	ClampMin float32 `toml:"clamp_min"`
	ClampMax float32 `toml:"clamp_max"`

	// Seed seeds the spawn random source; zero picks a random seed
	Seed uint64 `toml:"seed"`
}

// DefaultParticleConfig returns the configuration used when no settings are stored.
func DefaultParticleConfig() ParticleConfig {
	return ParticleConfig{
		ParticleLife:            1.0,
		ParticleLifeDecay:       0.016,
		AlphaDecayExponent:      2.0,
		SpawnThresholdOverlay:   0.15,
		SpawnThresholdNormal:    0.1,
		SpawnProbability:        0.08,
		ParticleSizeOverlay:     2.0,
		ParticleSizeNormal:      3.0,
		VelocityMin:             1.0,
		VelocityMax:             3.0,
		VelocityMultiplier:      1.0,
		MaxParticles:            2000,
		OverlayHeightMultiplier: 0.3,
		SmoothingNormal:         0.3,
		SmoothingOverlay:        0.5,
		SizeDecay:               0.99,
		VelocityTableSize:       1024,
	}
}

// Validate checks every option and returns a *ValidationError for the first bad field.
func (c ParticleConfig) Validate() error {
	switch {
	case c.ParticleLife <= 0:
		return NewValidationError("particle_life", c.ParticleLife, "must be positive")
	case c.ParticleLifeDecay <= 0:
		return NewValidationError("particle_life_decay", c.ParticleLifeDecay, "must be positive")
	case c.AlphaDecayExponent <= 0:
		return NewValidationError("alpha_decay_exponent", c.AlphaDecayExponent, "must be positive")
	case c.SpawnThresholdOverlay <= 0:
		return NewValidationError("spawn_threshold_overlay", c.SpawnThresholdOverlay, "must be positive")
	case c.SpawnThresholdNormal <= 0:
		return NewValidationError("spawn_threshold_normal", c.SpawnThresholdNormal, "must be positive")
	case c.SpawnProbability < 0:
		return NewValidationError("spawn_probability", c.SpawnProbability, "must not be negative")
	case c.ParticleSizeOverlay <= 0:
		return NewValidationError("particle_size_overlay", c.ParticleSizeOverlay, "must be positive")
	case c.ParticleSizeNormal <= 0:
		return NewValidationError("particle_size_normal", c.ParticleSizeNormal, "must be positive")
	case c.VelocityMin < 0:
		return NewValidationError("velocity_min", c.VelocityMin, "must not be negative")
	case c.VelocityMax < c.VelocityMin:
		return NewValidationError("velocity_max", c.VelocityMax, "must not be below velocity_min")
	case c.MaxParticles == 0:
		return NewValidationError("max_particles", c.MaxParticles, "must be positive")
	case c.OverlayHeightMultiplier <= 0 || c.OverlayHeightMultiplier > 1:
		return NewValidationError("overlay_height_multiplier", c.OverlayHeightMultiplier, "must be in (0, 1]")
	case c.SmoothingNormal <= 0 || c.SmoothingNormal > 1:
		return NewValidationError("smoothing_normal", c.SmoothingNormal, "must be in (0, 1]")
	case c.SmoothingOverlay <= 0 || c.SmoothingOverlay > 1:
		return NewValidationError("smoothing_overlay", c.SmoothingOverlay, "must be in (0, 1]")
	case c.SizeDecay <= 0 || c.SizeDecay > 1:
		return NewValidationError("size_decay", c.SizeDecay, "must be in (0, 1]")
	case c.VelocityTableSize <= 0:
		return NewValidationError("velocity_table_size", c.VelocityTableSize, "must be positive")
	case c.ClampMax < c.ClampMin:
		return NewValidationError("clamp_max", c.ClampMax, "must not be below clamp_min")
	}
	return nil
}

// Threshold returns the spawn threshold for the given mode.
func (c ParticleConfig) Threshold(mode RenderMode) float32 {
	if mode == ModeOverlay {
		return c.SpawnThresholdOverlay
	}
	return c.SpawnThresholdNormal
}

// BaseSize returns the base particle size for the given mode.
func (c ParticleConfig) BaseSize(mode RenderMode) float32 {
	if mode == ModeOverlay {
		return c.ParticleSizeOverlay
	}
	return c.ParticleSizeNormal
}

// Smoothing returns the temporal smoothing factor for the given mode.
func (c ParticleConfig) Smoothing(mode RenderMode) float32 {
	if mode == ModeOverlay {
		return c.SmoothingOverlay
	}
	return c.SmoothingNormal
}

// VelocityRange returns VelocityMax - VelocityMin.
func (c ParticleConfig) VelocityRange() float32 {
	return c.VelocityMax - c.VelocityMin
}

// ClampEnabled reports whether smoothed values should be clamped.
func (c ParticleConfig) ClampEnabled() bool {
	return c.ClampMax > c.ClampMin
}
