// Package app provides application-level orchestration and dependency injection.
// This package wires together all components and manages the application lifecycle.
package app

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	fyneapp "fyne.io/fyne/v2/app"

	"github.com/tejashwikalptaru/spectra/internal/adapter/audio/mock"
	"github.com/tejashwikalptaru/spectra/internal/adapter/eventbus"
	"github.com/tejashwikalptaru/spectra/internal/adapter/repository/file"
	"github.com/tejashwikalptaru/spectra/internal/adapter/repository/memory"
	fyneui "github.com/tejashwikalptaru/spectra/internal/adapter/ui/fyne"
	"github.com/tejashwikalptaru/spectra/internal/adapter/ui/fyne/widgets/visualizer"
	"github.com/tejashwikalptaru/spectra/internal/logger"
	"github.com/tejashwikalptaru/spectra/internal/ports"
	"github.com/tejashwikalptaru/spectra/internal/renderer"
	"github.com/tejashwikalptaru/spectra/internal/service"
)

// Application is the root application structure that holds all dependencies.
// It follows the Dependency Injection pattern with constructor-based injection.
//
// The Application struct is responsible for:
// - Creating and wiring all dependencies
// - Managing the application lifecycle (startup, shutdown)
// - Providing a clean entry point for cmd/main.go
type Application struct {
	// Core dependencies
	logger  *slog.Logger
	fyneApp fyne.App
	config  Config

	// Infrastructure
	eventBus ports.EventBus
	source   ports.SpectrumSource

	// Repositories
	settingsRepo ports.SettingsRepository

	// Renderer
	renderer *renderer.ParticleRenderer

	// Services
	settingsService *service.SettingsService
	renderService   *service.RenderService

	// UI
	presenter  *fyneui.Presenter
	mainWindow *fyneui.MainWindow

	shutdownOnce sync.Once
	shutdownErr  error
}

// Config holds application configuration.
type Config struct {
	// AppID is the unique application identifier
	AppID string

	// AppName is the display name
	AppName string

	// LogLevel controls logging verbosity
	LogLevel slog.Level

	// LogFormat is "text" or "json"
	LogFormat string

	// SettingsPath is a TOML settings file; empty uses the Fyne preferences
	SettingsPath string

	// UseMockSource feeds the renderer from the synthetic spectrum source
	UseMockSource bool

	// SourceBins is the number of FFT bins of the spectrum source
	SourceBins int

	// BarCount is the number of spectrum bars
	BarCount int

	// BarSpacing is the gap between bars in pixels
	BarSpacing float32

	// Glyphs enables text particles drawn with the given characters
	Glyphs string

	// GlyphDrift is the horizontal drift of text particles
	GlyphDrift float32

	// CaptureInterval and FrameInterval set the loop cadences
	CaptureInterval time.Duration
	FrameInterval   time.Duration

	// TestFyneApp allows injecting a test Fyne app for testing (nil for production)
	TestFyneApp fyne.App
}

// DefaultConfig returns the default application configuration.
func DefaultConfig() Config {
	loggerCfg := logger.DefaultConfig()
	return Config{
		AppID:           "com.spectra.app",
		AppName:         "Spectra",
		LogLevel:        loggerCfg.Level,
		LogFormat:       loggerCfg.Format,
		UseMockSource:   true,
		SourceBins:      mock.DefaultBins,
		BarCount:        64,
		BarSpacing:      2,
		GlyphDrift:      1.5,
		CaptureInterval: service.DefaultCaptureInterval,
		FrameInterval:   service.DefaultFrameInterval,
	}
}

// ErrNoSource is returned when no spectrum source is configured.
var ErrNoSource = errors.New("no spectrum source configured")

// NewApplication creates a new application with all dependencies wired.
// This is the main dependency injection function.
func NewApplication(config Config) (*Application, error) {
	app := &Application{config: config}

	// Step 1: Create Fyne application
	if config.TestFyneApp != nil {
		app.fyneApp = config.TestFyneApp
	} else {
		app.fyneApp = fyneapp.NewWithID(config.AppID)
	}

	// Step 1.5: Create logger
	app.logger = logger.NewLogger(logger.Config{
		Level:  config.LogLevel,
		Format: config.LogFormat,
	})
	app.logger.Info("initializing application",
		slog.String("app_id", config.AppID),
		slog.String("app_name", config.AppName),
		slog.String("version", GetVersionInfo().FullString()))

	// Step 2: Create an event bus
	syncBus := eventbus.NewSyncEventBus()
	syncBus.SetLogger(app.logger.With(slog.String("component", "eventbus")))
	app.eventBus = syncBus

	// Step 3: Create a spectrum source
	if !config.UseMockSource {
		return nil, ErrNoSource
	}
	source := mock.NewSource(config.SourceBins)
	source.SetLogger(app.logger.With(slog.String("source", "mock")))
	app.source = source

	// Step 4: Create repositories
	if config.SettingsPath != "" {
		app.settingsRepo = file.NewSettingsRepository(config.SettingsPath,
			app.logger.With(slog.String("repository", "toml")))
	} else {
		app.settingsRepo = memory.NewPreferencesRepository(app.fyneApp.Preferences())
	}

	// Step 5: Create services (with dependency injection)
	app.settingsService = service.NewSettingsService(
		app.logger.With(slog.String("service", "settings")),
		app.settingsRepo,
		app.eventBus,
	)

	if err := app.createRenderer(); err != nil {
		return nil, err
	}

	// Step 6: Create UI
	bars := visualizer.NewBars(config.BarCount, config.BarSpacing, framesPerSecond(config.FrameInterval))
	particles := visualizer.NewParticleView(app.renderer, config.BarCount, config.BarSpacing)
	app.mainWindow = fyneui.NewMainWindow(app.fyneApp, config.AppName, bars, particles,
		app.logger.With(slog.String("component", "window")))

	app.renderService = service.NewRenderService(
		app.logger.With(slog.String("service", "render")),
		app.source,
		app.renderer,
		app.settingsService,
		app.eventBus,
		service.WithCaptureInterval(config.CaptureInterval),
		service.WithFrameInterval(config.FrameInterval),
		service.WithSpectrumSink(bars),
	)

	// Step 7: Create Presenter and wire with UI
	app.presenter = fyneui.NewPresenter(
		app.logger.With(slog.String("component", "presenter")),
		app.renderService,
		app.settingsService,
		app.eventBus,
		app.mainWindow,
		particles,
		fyneui.DefaultStatsInterval,
	)

	// Connect presenter to the main window
	app.mainWindow.SetPresenter(app.presenter)

	// Stop the loops before the window goes away
	app.mainWindow.SetOnBeforeClose(func() {
		if err := app.renderService.Shutdown(); err != nil {
			app.logger.Warn("failed to stop render service on close", slog.Any("error", err))
		}
	})

	return app, nil
}

// createRenderer builds and initializes the particle renderer in the saved mode.
func (a *Application) createRenderer() error {
	opts := []renderer.Option{renderer.WithEventBus(a.eventBus)}
	if a.config.Glyphs != "" {
		opts = append(opts, renderer.WithGlyphs(a.config.Glyphs, a.config.GlyphDrift))
	}

	a.renderer = renderer.NewParticleRenderer(
		a.logger.With(slog.String("renderer", renderer.ParticleRendererName)),
		a.settingsService.Config(),
		opts...,
	)
	if err := a.renderer.Initialize(); err != nil {
		return fmt.Errorf("failed to initialize renderer: %w", err)
	}
	a.renderer.Configure(a.settingsService.Mode())
	return nil
}

// framesPerSecond converts a frame interval to a whole frame rate.
func framesPerSecond(interval time.Duration) int {
	if interval <= 0 {
		interval = service.DefaultFrameInterval
	}
	return max(int(time.Second/interval), 1)
}

// Start launches the capture and frame loops.
func (a *Application) Start() error {
	return a.renderService.Start(a.mainWindow.FrameTarget())
}

// Run starts the application.
// This is called from cmd/main.go and blocks until the window is closed.
func (a *Application) Run() error {
	if err := a.Start(); err != nil {
		return fmt.Errorf("failed to start render service: %w", err)
	}

	a.logger.Info("spectra started", slog.String("mode", a.settingsService.Mode().String()))

	// Show and run UI (blocks until the window is closed)
	a.mainWindow.ShowAndRun()
	return nil
}

// Shutdown gracefully shuts down the application.
// This should be called via deferring in cmd/main.go. It is idempotent.
func (a *Application) Shutdown() error {
	a.shutdownOnce.Do(func() {
		a.shutdownErr = a.shutdown()
	})
	return a.shutdownErr
}

func (a *Application) shutdown() error {
	a.logger.Info("shutting down application")
	var errs []error

	// Shutdown UI and presenter
	if a.presenter != nil {
		a.presenter.Shutdown()
	}

	// Shutdown services (in reverse order of creation)
	if a.renderService != nil {
		if err := a.renderService.Shutdown(); err != nil {
			errs = append(errs, fmt.Errorf("render service: %w", err))
		}
	}

	if a.renderer != nil {
		a.renderer.Dispose()
	}

	if a.settingsService != nil {
		if err := a.settingsService.Shutdown(); err != nil {
			errs = append(errs, fmt.Errorf("settings service: %w", err))
		}
	}

	if a.source != nil {
		if err := a.source.Close(); err != nil {
			errs = append(errs, fmt.Errorf("spectrum source: %w", err))
		}
	}

	if a.eventBus != nil {
		if err := a.eventBus.Close(); err != nil {
			errs = append(errs, fmt.Errorf("event bus: %w", err))
		}
	}

	a.logger.Info("application shutdown complete")
	return errors.Join(errs...)
}

// GetEventBus returns the application event bus.
func (a *Application) GetEventBus() ports.EventBus {
	return a.eventBus
}

// GetFyneApp returns the Fyne application.
func (a *Application) GetFyneApp() fyne.App {
	return a.fyneApp
}

// GetServices returns the application services.
func (a *Application) GetServices() (*service.RenderService, *service.SettingsService) {
	return a.renderService, a.settingsService
}

// GetRenderer returns the particle renderer.
func (a *Application) GetRenderer() *renderer.ParticleRenderer {
	return a.renderer
}
