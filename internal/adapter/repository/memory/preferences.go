// Package memory provides repository implementations backed by Fyne preferences.
package memory

import (
	"strconv"
	"sync"

	"fyne.io/fyne/v2"

	"github.com/tejashwikalptaru/spectra/internal/domain"
	"github.com/tejashwikalptaru/spectra/internal/ports"
)

const (
	keyPrefix = "settings."
	keyMode   = keyPrefix + "mode"
	keySeed   = keyPrefix + "seed"
	keyMax    = keyPrefix + "max_particles"
	keyTable  = keyPrefix + "velocity_table_size"
)

// floatSetting binds a float option of ParticleConfig to a preferences key.
type floatSetting struct {
	key   string
	field func(*domain.ParticleConfig) *float32
}

var floatSettings = []floatSetting{
	{"particle_life", func(c *domain.ParticleConfig) *float32 { return &c.ParticleLife }},
	{"particle_life_decay", func(c *domain.ParticleConfig) *float32 { return &c.ParticleLifeDecay }},
	{"alpha_decay_exponent", func(c *domain.ParticleConfig) *float32 { return &c.AlphaDecayExponent }},
	{"spawn_threshold_overlay", func(c *domain.ParticleConfig) *float32 { return &c.SpawnThresholdOverlay }},
	{"spawn_threshold_normal", func(c *domain.ParticleConfig) *float32 { return &c.SpawnThresholdNormal }},
	{"spawn_probability", func(c *domain.ParticleConfig) *float32 { return &c.SpawnProbability }},
	{"particle_size_overlay", func(c *domain.ParticleConfig) *float32 { return &c.ParticleSizeOverlay }},
	{"particle_size_normal", func(c *domain.ParticleConfig) *float32 { return &c.ParticleSizeNormal }},
	{"velocity_min", func(c *domain.ParticleConfig) *float32 { return &c.VelocityMin }},
	{"velocity_max", func(c *domain.ParticleConfig) *float32 { return &c.VelocityMax }},
	{"velocity_multiplier", func(c *domain.ParticleConfig) *float32 { return &c.VelocityMultiplier }},
	{"overlay_height_multiplier", func(c *domain.ParticleConfig) *float32 { return &c.OverlayHeightMultiplier }},
	{"smoothing_normal", func(c *domain.ParticleConfig) *float32 { return &c.SmoothingNormal }},
	{"smoothing_overlay", func(c *domain.ParticleConfig) *float32 { return &c.SmoothingOverlay }},
	{"size_decay", func(c *domain.ParticleConfig) *float32 { return &c.SizeDecay }},
	{"clamp_min", func(c *domain.ParticleConfig) *float32 { return &c.ClampMin }},
	{"clamp_max", func(c *domain.ParticleConfig) *float32 { return &c.ClampMax }},
}

// PreferencesRepository implements ports.SettingsRepository using Fyne preferences.
// Every option is stored under its own "settings.*" key so a partial store
// falls back to defaults field by field.
//
// Fyne preferences automatically use OS-specific app data directories:
// - macOS: ~/Library/Preferences/com.spectra.app.plist
// - Linux: ~/.config/fyne/com.spectra.app/
// - Windows: %APPDATA%\fyne\com.spectra.app\
//
// Thread-safe: All operations protected by sync.RWMutex.
type PreferencesRepository struct {
	prefs fyne.Preferences
	mu    sync.RWMutex
}

// NewPreferencesRepository creates a new preferences' repository.
// The preferences parameter should be obtained from fyne.CurrentApp().Preferences().
func NewPreferencesRepository(prefs fyne.Preferences) *PreferencesRepository {
	return &PreferencesRepository{
		prefs: prefs,
	}
}

// SaveParticleConfig persists every particle option.
func (r *PreferencesRepository) SaveParticleConfig(cfg domain.ParticleConfig) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, s := range floatSettings {
		r.prefs.SetFloat(keyPrefix+s.key, float64(*s.field(&cfg)))
	}
	r.prefs.SetInt(keyMax, int(cfg.MaxParticles))
	r.prefs.SetInt(keyTable, cfg.VelocityTableSize)
	// Preferences have no unsigned 64-bit type
	r.prefs.SetString(keySeed, strconv.FormatUint(cfg.Seed, 10))
	return nil
}

// LoadParticleConfig retrieves the saved particle options.
// Options that were never saved keep their default value.
func (r *PreferencesRepository) LoadParticleConfig() (domain.ParticleConfig, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cfg := domain.DefaultParticleConfig()
	for _, s := range floatSettings {
		field := s.field(&cfg)
		*field = float32(r.prefs.FloatWithFallback(keyPrefix+s.key, float64(*field)))
	}

	maxParticles := r.prefs.IntWithFallback(keyMax, int(cfg.MaxParticles))
	if maxParticles < 0 {
		return cfg, domain.NewRepositoryError("load", "preferences", "negative max_particles",
			domain.NewValidationError("max_particles", maxParticles, "must be positive"))
	}
	cfg.MaxParticles = uint32(maxParticles)
	cfg.VelocityTableSize = r.prefs.IntWithFallback(keyTable, cfg.VelocityTableSize)

	if raw := r.prefs.String(keySeed); raw != "" {
		seed, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return cfg, domain.NewRepositoryError("load", "preferences", "failed to parse seed", err)
		}
		cfg.Seed = seed
	}

	return cfg, nil
}

// SaveMode persists the display mode.
func (r *PreferencesRepository) SaveMode(mode domain.RenderMode) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.prefs.SetString(keyMode, mode.String())
	return nil
}

// LoadMode retrieves the saved display mode, defaulting to domain.ModeNormal.
func (r *PreferencesRepository) LoadMode() (domain.RenderMode, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	mode, err := domain.ParseRenderMode(r.prefs.String(keyMode))
	if err != nil {
		return domain.ModeNormal, domain.NewRepositoryError("load", "preferences", "unknown mode", err)
	}
	return mode, nil
}

// Clear removes all saved settings.
func (r *PreferencesRepository) Clear() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, s := range floatSettings {
		r.prefs.RemoveValue(keyPrefix + s.key)
	}
	r.prefs.RemoveValue(keyMax)
	r.prefs.RemoveValue(keyTable)
	r.prefs.RemoveValue(keySeed)
	r.prefs.RemoveValue(keyMode)

	return nil
}

// Verify interface implementation
var _ ports.SettingsRepository = (*PreferencesRepository)(nil)
