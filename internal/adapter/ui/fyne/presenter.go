// Package fyne provides Fyne UI adapter implementations.
// This package implements the UI layer using the Fyne toolkit.
package fyne

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/tejashwikalptaru/spectra/internal/adapter/repository/file"
	"github.com/tejashwikalptaru/spectra/internal/domain"
	"github.com/tejashwikalptaru/spectra/internal/ports"
	"github.com/tejashwikalptaru/spectra/internal/renderer"
	"github.com/tejashwikalptaru/spectra/internal/service"
)

// DefaultStatsInterval is how often renderer counters are pushed to the view.
const DefaultStatsInterval = 500 * time.Millisecond

// UIView defines the interface for UI updates.
// The actual UI implementation (MainWindow) must implement this interface.
// Methods may be called from any goroutine.
type UIView interface {
	// SetMode shows the display mode; bars are limited to barShare of the height
	SetMode(mode domain.RenderMode, barShare float32)

	// SetStats shows the renderer counters
	SetStats(stats renderer.Stats)

	// Notifications
	ShowNotification(title, message string)
}

// StatsSource exposes the counters of the renderer being displayed.
type StatsSource interface {
	Stats() renderer.Stats
}

// Presenter implements the Presenter pattern (MVP architecture).
// It coordinates between services and the UI, handling all event-driven updates.
//
// Responsibilities:
// - Subscribe to events from the event bus
// - Map domain events to UI updates
// - Translate UI commands to service method calls
//
// The On* command handlers are called by the window on the Fyne UI goroutine,
// which is also the render goroutine; mode switches rely on that.
type Presenter struct {
	// Dependencies
	logger *slog.Logger

	// Services (injected)
	renderService   *service.RenderService
	settingsService *service.SettingsService

	// Event bus for subscriptions
	EventBus ports.EventBus

	// UI view
	view  UIView
	stats StatsSource

	subscriptions []domain.SubscriptionID
	statsTicker   *time.Ticker
	stopStats     chan struct{}
	statsDone     sync.WaitGroup

	shutdownOnce sync.Once
}

// NewPresenter creates a new presenter.
// stats may be nil, in which case no counters are shown.
func NewPresenter(
	logger *slog.Logger,
	renderService *service.RenderService,
	settingsService *service.SettingsService,
	eventBus ports.EventBus,
	view UIView,
	stats StatsSource,
	statsInterval time.Duration,
) *Presenter {
	p := &Presenter{
		logger:          logger,
		renderService:   renderService,
		settingsService: settingsService,
		EventBus:        eventBus,
		view:            view,
		stats:           stats,
		stopStats:       make(chan struct{}),
	}

	// Subscribe to events
	p.subscribeToEvents()

	// Sync UI with current state
	p.syncInitialState()

	// Start stats ticker
	if stats != nil {
		if statsInterval <= 0 {
			statsInterval = DefaultStatsInterval
		}
		p.startStatsUpdates(statsInterval)
	}

	return p
}

// subscribeToEvents subscribes to all relevant events from the event bus.
func (p *Presenter) subscribeToEvents() {
	subscriptions := map[domain.EventType]domain.EventHandler{
		domain.EventRendererConfigured: p.onRendererConfigured,
		domain.EventCaptureError:       p.onCaptureError,
		domain.EventSettingsChanged:    p.onSettingsChanged,
	}

	for eventType, handler := range subscriptions {
		p.subscriptions = append(p.subscriptions, p.EventBus.Subscribe(eventType, handler))
	}
}

// syncInitialState synchronizes the UI with the saved settings.
func (p *Presenter) syncInitialState() {
	mode := p.settingsService.Mode()
	p.view.SetMode(mode, p.barShare(mode))
}

// barShare is the height fraction bars may use in mode.
func (p *Presenter) barShare(mode domain.RenderMode) float32 {
	if mode == domain.ModeOverlay {
		return p.settingsService.Config().OverlayHeightMultiplier
	}
	return 1
}

// Event handlers

func (p *Presenter) onRendererConfigured(event domain.Event) {
	e, ok := event.(domain.RendererConfiguredEvent)
	if !ok {
		return
	}

	p.view.SetMode(e.Mode, p.barShare(e.Mode))
}

func (p *Presenter) onCaptureError(event domain.Event) {
	e, ok := event.(domain.CaptureErrorEvent)
	if !ok {
		return
	}

	p.view.ShowNotification("Capture Error",
		fmt.Sprintf("Spectrum capture failed: %v", e.Error))
}

func (p *Presenter) onSettingsChanged(event domain.Event) {
	e, ok := event.(domain.SettingsChangedEvent)
	if !ok {
		return
	}

	p.logger.Debug("settings changed", slog.String("mode", e.Mode.String()))
	p.view.SetMode(e.Mode, p.barShare(e.Mode))
}

func (p *Presenter) startStatsUpdates(interval time.Duration) {
	p.statsTicker = time.NewTicker(interval)

	p.statsDone.Add(1)
	go func() {
		defer p.statsDone.Done()
		for {
			select {
			case <-p.statsTicker.C:
				p.view.SetStats(p.stats.Stats())
			case <-p.stopStats:
				return
			}
		}
	}()
}

// UI Command handlers (called by UI)

// OnToggleMode switches between normal and overlay mode.
func (p *Presenter) OnToggleMode() {
	next := domain.ModeOverlay
	if p.settingsService.Mode() == domain.ModeOverlay {
		next = domain.ModeNormal
	}

	if err := p.renderService.SetMode(next); err != nil {
		p.logger.Error("mode change failed", slog.Any("error", err))
		p.view.ShowNotification("Settings Error",
			fmt.Sprintf("Failed to save display mode: %v", err))
	}
}

// OnResetSettings restores the default settings.
// Particle options take effect on the next start; the mode applies at once.
func (p *Presenter) OnResetSettings() {
	if err := p.settingsService.ResetToDefaults(); err != nil {
		p.logger.Error("settings reset failed", slog.Any("error", err))
		p.view.ShowNotification("Settings Error",
			fmt.Sprintf("Failed to reset settings: %v", err))
		return
	}
	if err := p.renderService.SetMode(p.settingsService.Mode()); err != nil {
		p.logger.Warn("mode restore failed", slog.Any("error", err))
	}
	p.view.ShowNotification("Settings Reset", "Defaults restored; particle options apply on next start")
}

// OnExportSettings writes the current settings to a TOML file at path.
func (p *Presenter) OnExportSettings(path string) error {
	repo := file.NewSettingsRepository(path, p.logger)
	if err := repo.SaveParticleConfig(p.settingsService.Config()); err != nil {
		return err
	}
	if err := repo.SaveMode(p.settingsService.Mode()); err != nil {
		return err
	}

	p.logger.Info("settings exported", slog.String("path", path))
	return nil
}

// OnImportSettings loads settings from a TOML file at path and saves them.
func (p *Presenter) OnImportSettings(path string) error {
	repo := file.NewSettingsRepository(path, p.logger)
	cfg, err := repo.LoadParticleConfig()
	if err != nil {
		return err
	}
	mode, err := repo.LoadMode()
	if err != nil {
		return err
	}

	if err := p.settingsService.SetConfig(cfg); err != nil {
		return err
	}
	if err := p.renderService.SetMode(mode); err != nil {
		return err
	}

	p.logger.Info("settings imported", slog.String("path", path))
	p.view.ShowNotification("Settings Imported", "Particle options apply on next start")
	return nil
}

// Shutdown cleans up resources.
// It's safe to call multiple times (idempotent).
func (p *Presenter) Shutdown() {
	p.shutdownOnce.Do(func() {
		// Stop the ticker first to prevent new iterations
		if p.statsTicker != nil {
			p.statsTicker.Stop()
		}
		close(p.stopStats)
		p.statsDone.Wait()

		for _, id := range p.subscriptions {
			p.EventBus.Unsubscribe(id)
		}
	})
}
