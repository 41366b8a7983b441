package ports

import (
	"github.com/tejashwikalptaru/spectra/internal/domain"
)

// Canvas is the drawing backend a renderer issues its per-frame draw calls to.
// The concrete backend (raster image, GPU context) lives outside the core.
type Canvas interface {
	// Clear resets the canvas before a frame is drawn.
	Clear()

	// DrawParticle draws a single live particle.
	// Renderers only pass particles with a positive size.
	DrawParticle(p domain.Particle)
}

// Renderer is the lifecycle shared by every spectrum renderer.
//
// State machine: Uninitialized -> Initialized -> (Configured)* -> Disposed.
// Render must only be called from the render goroutine; Submit may be called
// from any goroutine.
type Renderer interface {
	// Name returns a short identifier used in logs and events.
	Name() string

	// Initialize allocates pools and lookup tables. It is idempotent and
	// returns domain.ErrDisposed once the renderer has been disposed.
	Initialize() error

	// Configure switches the display mode. Unchanged modes are a no-op.
	Configure(mode domain.RenderMode)

	// Render draws one frame from a raw spectrum. Invalid input skips the frame.
	Render(spectrum []float32, frame domain.FrameInfo, canvas Canvas)

	// Submit hands a raw spectrum over from a producer goroutine.
	// Returns false when the spectrum was rejected.
	Submit(spectrum []float32) bool

	// RenderLatest draws one frame from the most recently submitted spectrum.
	RenderLatest(frame domain.FrameInfo, canvas Canvas)

	// Dispose releases all resources. It is idempotent.
	Dispose()
}

// FrameTarget is anything that can be asked to redraw itself on the UI thread.
type FrameTarget interface {
	Refresh()
}
