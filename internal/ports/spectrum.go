// Package ports define interfaces for dependency inversion.
// These interfaces keep the particle pipeline independent of audio and drawing frameworks.
package ports

// SpectrumSource is the audio-side collaborator that produces FFT magnitudes.
// It runs at its own cadence, decoupled from rendering.
//
// Implementations must be thread-safe as they are polled from a capture goroutine.
type SpectrumSource interface {
	// Spectrum returns the most recent magnitude spectrum.
	// The returned slice may be reused by the source on the next call;
	// callers that keep it must copy.
	//
	// Returns domain.ErrSpectrumUnavailable when no data is ready yet.
	Spectrum() ([]float32, error)

	// Close releases the source.
	Close() error
}

// SpectrumSink receives every captured spectrum, e.g. a bar display.
// UpdateSpectrum is called from the capture goroutine and must copy raw.
type SpectrumSink interface {
	UpdateSpectrum(raw []float32)
}
