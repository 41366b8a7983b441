package service

import (
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/tejashwikalptaru/spectra/internal/domain"
	"github.com/tejashwikalptaru/spectra/internal/ports"
)

// Default loop cadences.
const (
	DefaultCaptureInterval = 10 * time.Millisecond
	DefaultFrameInterval   = time.Second / 60
)

// RenderService drives a renderer from a spectrum source.
//
// It owns two goroutines: the capture loop polls the source and submits each
// spectrum to the renderer, the frame loop asks the frame target to redraw.
// Drawing itself happens wherever the target renders (the UI thread for the
// Fyne view), which is also the only place Configure may be called from.
type RenderService struct {
	// Dependencies (injected)
	logger   *slog.Logger
	source   ports.SpectrumSource
	renderer ports.Renderer
	settings *SettingsService
	bus      ports.EventBus
	sinks    []ports.SpectrumSink

	captureInterval time.Duration
	frameInterval   time.Duration

	// Counters
	captured      atomic.Uint64
	rejected      atomic.Uint64
	captureErrors atomic.Uint64

	// Concurrency control
	mu      sync.Mutex
	running bool
	stopped bool
	stop    chan struct{}
	wg      sync.WaitGroup // waits for both loops to exit
}

// RenderServiceOption configures a RenderService.
type RenderServiceOption func(*RenderService)

// WithCaptureInterval sets how often the source is polled.
func WithCaptureInterval(d time.Duration) RenderServiceOption {
	return func(s *RenderService) {
		if d > 0 {
			s.captureInterval = d
		}
	}
}

// WithFrameInterval sets how often the frame target is refreshed.
func WithFrameInterval(d time.Duration) RenderServiceOption {
	return func(s *RenderService) {
		if d > 0 {
			s.frameInterval = d
		}
	}
}

// WithSpectrumSink forwards every captured spectrum to sink as well.
func WithSpectrumSink(sink ports.SpectrumSink) RenderServiceOption {
	return func(s *RenderService) {
		if sink != nil {
			s.sinks = append(s.sinks, sink)
		}
	}
}

// NewRenderService creates a stopped render service.
// settings may be nil, in which case mode changes are not persisted.
func NewRenderService(
	logger *slog.Logger,
	source ports.SpectrumSource,
	renderer ports.Renderer,
	settings *SettingsService,
	bus ports.EventBus,
	opts ...RenderServiceOption,
) *RenderService {
	service := &RenderService{
		logger:          logger,
		source:          source,
		renderer:        renderer,
		settings:        settings,
		bus:             bus,
		captureInterval: DefaultCaptureInterval,
		frameInterval:   DefaultFrameInterval,
		stop:            make(chan struct{}),
	}
	for _, opt := range opts {
		opt(service)
	}

	logger.Debug("render service initialized",
		slog.String("renderer", renderer.Name()),
		slog.Duration("capture_interval", service.captureInterval),
		slog.Duration("frame_interval", service.frameInterval))

	return service
}

// Start launches the capture loop and, when target is not nil, the frame loop.
// It returns domain.ErrAlreadyRunning when already started and
// domain.ErrDisposed after Shutdown.
func (s *RenderService) Start(target ports.FrameTarget) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch {
	case s.stopped:
		return domain.ErrDisposed
	case s.running:
		return domain.ErrAlreadyRunning
	}
	s.running = true

	s.wg.Add(1)
	go s.captureLoop()

	if target != nil {
		s.wg.Add(1)
		go s.frameLoop(target)
	}

	s.logger.Info("render service started", slog.String("renderer", s.renderer.Name()))
	return nil
}

// captureLoop polls the source and hands every spectrum to the renderer.
// A capture error is published once per failure streak.
func (s *RenderService) captureLoop() {
	defer s.wg.Done()
	ticker := time.NewTicker(s.captureInterval)
	defer ticker.Stop()

	failing := false
	for {
		select {
		case <-s.stop:
			return

		case <-ticker.C:
			data, err := s.source.Spectrum()
			if err != nil {
				s.captureErrors.Add(1)
				if !failing {
					failing = true
					s.logger.Warn("spectrum capture failed", slog.Any("error", err))
					s.bus.Publish(domain.NewCaptureErrorEvent(err))
				}
				continue
			}
			if failing {
				failing = false
				s.logger.Info("spectrum capture recovered")
			}

			for _, sink := range s.sinks {
				sink.UpdateSpectrum(data)
			}
			if s.renderer.Submit(data) {
				s.captured.Add(1)
			} else {
				s.rejected.Add(1)
			}
		}
	}
}

// frameLoop requests a redraw at the frame cadence.
func (s *RenderService) frameLoop(target ports.FrameTarget) {
	defer s.wg.Done()
	ticker := time.NewTicker(s.frameInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stop:
			return

		case <-ticker.C:
			target.Refresh()
		}
	}
}

// SetMode switches the renderer's display mode and persists it.
// It must be called from the goroutine that renders.
func (s *RenderService) SetMode(mode domain.RenderMode) error {
	s.renderer.Configure(mode)

	if s.settings == nil {
		return nil
	}
	return s.settings.SetMode(mode)
}

// Captured returns how many spectra the renderer accepted.
func (s *RenderService) Captured() uint64 {
	return s.captured.Load()
}

// Rejected returns how many spectra the renderer turned down.
func (s *RenderService) Rejected() uint64 {
	return s.rejected.Load()
}

// CaptureErrors returns how many polls of the source failed.
func (s *RenderService) CaptureErrors() uint64 {
	return s.captureErrors.Load()
}

// IsRunning reports whether the loops are active.
func (s *RenderService) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// Shutdown stops both loops and waits for them to exit. It is idempotent.
// The source and renderer stay owned by the caller.
func (s *RenderService) Shutdown() error {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return nil
	}
	s.stopped = true
	s.running = false
	close(s.stop)

	// Release lock before waiting for the loops to exit
	s.mu.Unlock()

	s.wg.Wait()

	s.logger.Info("render service stopped",
		slog.Uint64("captured", s.captured.Load()),
		slog.Uint64("capture_errors", s.captureErrors.Load()))
	return nil
}
