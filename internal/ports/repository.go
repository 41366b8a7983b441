// Package ports define repository interfaces for data persistence abstraction.
// These interfaces enable the repository pattern and allow swapping persistence mechanisms.
package ports

import (
	"github.com/tejashwikalptaru/spectra/internal/domain"
)

// SettingsRepository persists renderer settings between sessions.
//
// Implementations must be thread-safe.
type SettingsRepository interface {
	// Particle configuration

	// SaveParticleConfig persists the particle configuration.
	//
	// Returns an error if saving fails.
	SaveParticleConfig(cfg domain.ParticleConfig) error

	// LoadParticleConfig retrieves the saved particle configuration.
	// Options that were never saved fall back to domain.DefaultParticleConfig.
	//
	// Returns the configuration or an error if loading fails.
	LoadParticleConfig() (domain.ParticleConfig, error)

	// Display mode

	// SaveMode persists the display mode.
	//
	// Returns an error if saving fails.
	SaveMode(mode domain.RenderMode) error

	// LoadMode retrieves the saved display mode.
	// If no mode was saved, returns domain.ModeNormal.
	//
	// Returns the mode or an error if loading fails.
	LoadMode() (domain.RenderMode, error)

	// Utility methods

	// Clear removes all saved settings.
	//
	// Returns an error if clearing fails.
	Clear() error
}
