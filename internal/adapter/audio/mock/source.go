// Package mock provides a synthetic implementation of the SpectrumSource interface.
// It is used to run the visualizer and test services without an audio backend.
package mock

import (
	"log/slog"
	"math"
	"sync"

	"github.com/tejashwikalptaru/spectra/internal/domain"
	"github.com/tejashwikalptaru/spectra/internal/ports"
)

// DefaultBins is the number of bins a source produces when none is given.
const DefaultBins = 1024

// Source generates a moving synthetic spectrum.
//
// Each call to Spectrum advances a phase: a bass pulse beats at the low end and
// two peaks sweep across the mid range, over a floor that falls off toward
// high frequencies.
//
// Thread-safety: This implementation is thread-safe.
type Source struct {
	// Dependencies
	logger *slog.Logger

	bins  int
	phase int
	mu    sync.Mutex

	// Behavior configuration (for testing error scenarios)
	fail   bool
	silent bool
	closed bool
}

// NewSource creates a source producing bins values per spectrum.
func NewSource(bins int) *Source {
	if bins < 2 {
		bins = DefaultBins
	}
	return &Source{bins: bins}
}

// SetLogger sets the logger for this source.
// This should be called after construction before using the source.
func (s *Source) SetLogger(logger *slog.Logger) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.logger = logger
}

// SetFail makes Spectrum return domain.ErrSpectrumUnavailable (for testing).
func (s *Source) SetFail(fail bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fail = fail
}

// SetSilent makes Spectrum return all zeros (for testing).
func (s *Source) SetSilent(silent bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.silent = silent
}

// Bins returns the spectrum length.
func (s *Source) Bins() int {
	return s.bins
}

// Frames returns how many spectra have been generated.
func (s *Source) Frames() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

// Spectrum returns the next synthetic spectrum with values in [0, 1].
func (s *Source) Spectrum() ([]float32, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, domain.ErrDisposed
	}
	if s.fail {
		return nil, domain.ErrSpectrumUnavailable
	}

	data := make([]float32, s.bins)
	s.phase++
	if s.silent {
		return data, nil
	}

	t := float64(s.phase)
	n := float64(s.bins)
	beat := 0.5 + 0.5*math.Sin(t*0.21)
	sweepA := n * (0.15 + 0.1*math.Sin(t*0.03))
	sweepB := n * (0.3 + 0.12*math.Cos(t*0.017))

	for i := range data {
		x := float64(i)
		v := 0.25 * (1 - x/n)
		v += 0.9 * beat * math.Exp(-x/(n*0.01))
		v += 0.6 * gaussian(x, sweepA, n*0.015)
		v += 0.45 * gaussian(x, sweepB, n*0.02)
		data[i] = float32(min(v, 1))
	}

	return data, nil
}

func gaussian(x, center, width float64) float64 {
	d := (x - center) / width
	return math.Exp(-d * d)
}

// Close stops the source. Further Spectrum calls return domain.ErrDisposed.
func (s *Source) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true
	if s.logger != nil {
		s.logger.Debug("mock spectrum source closed", slog.Int("frames", s.phase))
	}
	return nil
}

// Verify that Source implements the SpectrumSource interface
var _ ports.SpectrumSource = (*Source)(nil)
