// Package renderer provides the lifecycle wrapper around the particle pipeline.
package renderer

import (
	"log/slog"

	"github.com/tejashwikalptaru/spectra/internal/domain"
	"github.com/tejashwikalptaru/spectra/internal/particle"
	"github.com/tejashwikalptaru/spectra/internal/ports"
	"github.com/tejashwikalptaru/spectra/internal/spectrum"
)

// ParticleRendererName identifies the particle renderer in logs and events.
const ParticleRendererName = "particles"

type lifecycle int

const (
	stateUninitialized lifecycle = iota
	stateInitialized
	stateDisposed
)

// Stats is a snapshot of renderer counters.
type Stats struct {
	Live           int
	Capacity       int
	FramesRendered uint64
	FramesSkipped  uint64
	Spawned        uint64
	Pruned         uint64
	Mode           domain.RenderMode
}

// ParticleRenderer turns spectra into rising particles.
//
// Per frame: spectrum -> scale -> smooth -> spawn -> update -> draw.
// Render and RenderLatest belong to the render goroutine; Submit may be
// called from an audio goroutine and never blocks the render side.
type ParticleRenderer struct {
	// Dependencies (injected)
	logger *slog.Logger
	bus    ports.EventBus

	cfg   domain.ParticleConfig
	mode  domain.RenderMode
	state lifecycle

	// Simulation (allocated by Initialize)
	tables  *particle.Tables
	pool    *particle.Pool
	buffer  *particle.Buffer
	spawner *particle.Spawner
	bounds  particle.BoundsCache

	handoff *spectrum.Handoff
	bars    []float32
	glyphs  []rune
	drift   float32

	stats Stats
}

// Option configures a ParticleRenderer.
type Option func(*ParticleRenderer)

// WithEventBus publishes lifecycle and skipped-frame events to bus.
func WithEventBus(bus ports.EventBus) Option {
	return func(r *ParticleRenderer) {
		r.bus = bus
	}
}

// WithGlyphs enables the text-particle variant.
func WithGlyphs(glyphs string, drift float32) Option {
	return func(r *ParticleRenderer) {
		r.glyphs = []rune(glyphs)
		r.drift = drift
	}
}

// NewParticleRenderer creates an uninitialized renderer.
// The configuration must already be valid; see domain.ParticleConfig.Validate.
func NewParticleRenderer(logger *slog.Logger, cfg domain.ParticleConfig, opts ...Option) *ParticleRenderer {
	r := &ParticleRenderer{
		logger:  logger,
		cfg:     cfg,
		mode:    domain.ModeNormal,
		handoff: spectrum.NewHandoff(cfg.Smoothing(domain.ModeNormal)),
	}
	for _, opt := range opts {
		opt(r)
	}
	if cfg.ClampEnabled() {
		r.handoff.SetClamp(cfg.ClampMin, cfg.ClampMax)
	}
	return r
}

// Name returns the renderer identifier.
func (r *ParticleRenderer) Name() string {
	return ParticleRendererName
}

// Initialize allocates the pool, buffer and lookup tables.
// Calling it again is a no-op; calling it after Dispose returns domain.ErrDisposed.
func (r *ParticleRenderer) Initialize() error {
	switch r.state {
	case stateInitialized:
		return nil
	case stateDisposed:
		return domain.NewRendererError(r.Name(), "initialize", "renderer already disposed", domain.ErrDisposed)
	}

	if err := r.cfg.Validate(); err != nil {
		return domain.NewRendererError(r.Name(), "initialize", "invalid configuration", err)
	}

	r.tables = particle.NewTables(r.cfg)
	r.pool = particle.NewPool(int(r.cfg.MaxParticles))
	r.buffer = particle.NewBuffer(r.pool, particle.DynamicsFor(r.cfg, r.tables))
	r.spawner = particle.NewSpawner(r.cfg, r.tables, r.cfg.Seed)
	r.spawner.SetMode(r.mode)
	if len(r.glyphs) > 0 {
		r.spawner.SetGlyphs(r.glyphs, r.drift)
	}
	r.state = stateInitialized

	r.logger.Debug("renderer initialized",
		slog.Int("capacity", r.buffer.Cap()),
		slog.String("mode", r.mode.String()))
	r.publish(domain.EventRendererInitialized, func() domain.Event {
		return domain.NewRendererInitializedEvent(r.Name(), r.buffer.Cap())
	})
	return nil
}

// Configure switches between normal and overlay constants.
// Live particles are rescaled so each keeps its size relative to the base size.
func (r *ParticleRenderer) Configure(mode domain.RenderMode) {
	r.mustNotBeDisposed("configure")
	if mode == r.mode {
		return
	}

	previous := r.mode
	r.mode = mode
	r.handoff.SetFactor(r.cfg.Smoothing(mode))
	r.bounds.Invalidate()

	if r.state == stateInitialized {
		r.spawner.SetMode(mode)
		r.buffer.Rescale(r.cfg.BaseSize(mode) / r.cfg.BaseSize(previous))
	}

	r.logger.Debug("renderer configured",
		slog.String("from", previous.String()),
		slog.String("to", mode.String()))
	r.publish(domain.EventRendererConfigured, func() domain.Event {
		return domain.NewRendererConfiguredEvent(r.Name(), previous, mode)
	})
}

// Mode returns the current display mode.
func (r *ParticleRenderer) Mode() domain.RenderMode {
	return r.mode
}

// Submit hands a raw spectrum to the renderer from any goroutine.
// The bucket count is the one of the last rendered frame.
func (r *ParticleRenderer) Submit(raw []float32) bool {
	return r.handoff.Submit(raw)
}

// Render draws one frame from raw on the calling (render) goroutine.
// Invalid input skips the frame without error.
func (r *ParticleRenderer) Render(raw []float32, frame domain.FrameInfo, canvas ports.Canvas) {
	r.mustNotBeDisposed("render")
	if len(raw) < 2 {
		r.skip(domain.ErrEmptySpectrum)
		return
	}
	if frame.BarCount > 0 {
		r.handoff.SetBucketCount(frame.BarCount)
	}
	r.handoff.Submit(raw)
	r.RenderLatest(frame, canvas)
}

// RenderLatest draws one frame from the most recently submitted spectrum.
// When the producer is busy the previous frame's spectrum is reused.
func (r *ParticleRenderer) RenderLatest(frame domain.FrameInfo, canvas ports.Canvas) {
	r.mustNotBeDisposed("render")
	if r.state != stateInitialized {
		r.skip(domain.ErrNotInitialized)
		return
	}
	if canvas == nil {
		r.skip(domain.ErrInvalidFrame)
		return
	}
	if err := frame.Validate(); err != nil {
		r.skip(err)
		return
	}

	r.handoff.SetBucketCount(frame.BarCount)
	r.bars, _ = r.handoff.Latest(r.bars)
	if len(r.bars) == 0 {
		r.skip(domain.ErrSpectrumUnavailable)
		return
	}

	band := r.bounds.Get(frame.Height, r.mode == domain.ModeOverlay, r.cfg.OverlayHeightMultiplier)
	spawned := r.spawner.Spawn(r.bars, band.SpawnY, frame, r.buffer)
	pruned := r.buffer.Update(band.Upper, band.Lower)

	canvas.Clear()
	for _, p := range r.buffer.Active() {
		if p.Size <= 0 {
			continue
		}
		canvas.DrawParticle(p)
	}

	r.stats.FramesRendered++
	r.stats.Spawned += uint64(spawned)
	r.stats.Pruned += uint64(pruned)
}

// Particles returns the live particles, valid until the next frame.
func (r *ParticleRenderer) Particles() []domain.Particle {
	if r.state != stateInitialized {
		return nil
	}
	return r.buffer.Active()
}

// Stats returns a snapshot of the renderer counters.
// Like Render, it belongs to the render goroutine.
func (r *ParticleRenderer) Stats() Stats {
	s := r.stats
	s.Mode = r.mode
	if r.state == stateInitialized {
		s.Live = r.buffer.Len()
		s.Capacity = r.buffer.Cap()
	}
	return s
}

// Dispose releases the pool and tables. Calling it again is a no-op.
func (r *ParticleRenderer) Dispose() {
	if r.state == stateDisposed {
		return
	}
	if r.pool != nil {
		r.pool.Release()
	}
	r.buffer = nil
	r.spawner = nil
	r.tables = nil
	r.bars = nil
	r.handoff.Reset()
	r.state = stateDisposed

	r.logger.Debug("renderer disposed")
	r.publish(domain.EventRendererDisposed, func() domain.Event {
		return domain.NewRendererDisposedEvent(r.Name())
	})
}

// mustNotBeDisposed panics on use after Dispose.
func (r *ParticleRenderer) mustNotBeDisposed(op string) {
	if r.state == stateDisposed {
		panic(domain.NewRendererError(r.Name(), op, "renderer used after dispose", domain.ErrDisposed))
	}
}

func (r *ParticleRenderer) skip(reason error) {
	r.stats.FramesSkipped++

	r.logger.Debug("frame skipped", slog.Any("reason", reason))
	r.publish(domain.EventFrameSkipped, func() domain.Event {
		return domain.NewFrameSkippedEvent(r.Name(), reason)
	})
}

// publish builds the event only when somebody listens.
func (r *ParticleRenderer) publish(eventType domain.EventType, build func() domain.Event) {
	if r.bus == nil || !r.bus.HasSubscribers(eventType) {
		return
	}
	r.bus.Publish(build())
}

// Verify interface implementation at compile time.
var _ ports.Renderer = (*ParticleRenderer)(nil)
