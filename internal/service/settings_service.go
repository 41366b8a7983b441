// Package service provides the application services of the spectrum visualizer.
package service

import (
	"log/slog"
	"sync"

	"github.com/tejashwikalptaru/spectra/internal/domain"
	"github.com/tejashwikalptaru/spectra/internal/ports"
)

// SettingsService manages the particle configuration and display mode.
// All operations are thread-safe via sync.RWMutex.
type SettingsService struct {
	// Dependencies (injected)
	logger     *slog.Logger
	repository ports.SettingsRepository
	bus        ports.EventBus

	// Cached settings
	config domain.ParticleConfig
	mode   domain.RenderMode

	// Concurrency control
	mu sync.RWMutex
}

// NewSettingsService creates a settings service and loads the stored settings.
// Unreadable or invalid settings are logged and replaced by defaults.
func NewSettingsService(
	logger *slog.Logger,
	repository ports.SettingsRepository,
	bus ports.EventBus,
) *SettingsService {
	service := &SettingsService{
		logger:     logger,
		repository: repository,
		bus:        bus,
		config:     domain.DefaultParticleConfig(),
		mode:       domain.ModeNormal,
	}

	service.loadSettings()

	logger.Debug("settings service initialized",
		slog.String("mode", service.mode.String()),
		slog.Int("max_particles", int(service.config.MaxParticles)))

	return service
}

// loadSettings loads the configuration and mode from the repository into the cache.
func (s *SettingsService) loadSettings() {
	s.mu.Lock()
	defer s.mu.Unlock()

	cfg, err := s.repository.LoadParticleConfig()
	switch {
	case err != nil:
		s.logger.Warn("failed to load particle settings, using defaults", slog.Any("error", err))
	default:
		if verr := cfg.Validate(); verr != nil {
			s.logger.Warn("stored particle settings are invalid, using defaults", slog.Any("error", verr))
		} else {
			s.config = cfg
		}
	}

	if mode, err := s.repository.LoadMode(); err != nil {
		s.logger.Warn("failed to load display mode", slog.Any("error", err))
	} else {
		s.mode = mode
	}
}

// Config returns the current particle configuration.
func (s *SettingsService) Config() domain.ParticleConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.config
}

// Mode returns the current display mode.
func (s *SettingsService) Mode() domain.RenderMode {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.mode
}

// SetConfig validates and persists cfg.
// Renderers pick the new configuration up when they are next constructed.
func (s *SettingsService) SetConfig(cfg domain.ParticleConfig) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	if err := s.repository.SaveParticleConfig(cfg); err != nil {
		return err
	}

	s.mu.Lock()
	s.config = cfg
	mode := s.mode
	s.mu.Unlock()

	s.bus.Publish(domain.NewSettingsChangedEvent(cfg, mode))
	return nil
}

// SetMode persists the display mode.
func (s *SettingsService) SetMode(mode domain.RenderMode) error {
	if mode != domain.ModeNormal && mode != domain.ModeOverlay {
		return domain.NewValidationError("mode", mode, "must be normal or overlay")
	}

	if err := s.repository.SaveMode(mode); err != nil {
		return err
	}

	s.mu.Lock()
	changed := s.mode != mode
	s.mode = mode
	cfg := s.config
	s.mu.Unlock()

	if changed {
		s.bus.Publish(domain.NewSettingsChangedEvent(cfg, mode))
	}
	return nil
}

// ResetToDefaults clears the stored settings and restores the defaults.
func (s *SettingsService) ResetToDefaults() error {
	if err := s.repository.Clear(); err != nil {
		return err
	}

	s.mu.Lock()
	s.config = domain.DefaultParticleConfig()
	s.mode = domain.ModeNormal
	cfg, mode := s.config, s.mode
	s.mu.Unlock()

	s.logger.Info("settings reset to defaults")
	s.bus.Publish(domain.NewSettingsChangedEvent(cfg, mode))
	return nil
}

// Shutdown cleans up resources.
func (s *SettingsService) Shutdown() error {
	// No cleanup needed for settings service
	return nil
}
