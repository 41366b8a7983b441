package spectrum

import (
	"sync"
	"sync/atomic"
)

// Handoff shares the last processed spectrum between an audio producer and
// the render goroutine.
//
// The producer processes under the lock. The consumer only ever try-locks:
// when the producer holds the lock the consumer keeps the previous frame's
// values instead of waiting.
type Handoff struct {
	mu          sync.Mutex
	proc        *Processor
	latest      []float32
	frames      uint64
	bucketCount atomic.Int64
}

// NewHandoff creates a handoff whose processor smooths with factor.
func NewHandoff(factor float32) *Handoff {
	return &Handoff{proc: NewProcessor(factor)}
}

// SetBucketCount sets the bucket count used by the next Submit.
// Safe to call from the render goroutine while a producer is running.
func (h *Handoff) SetBucketCount(n int) {
	h.bucketCount.Store(int64(n))
}

// BucketCount returns the bucket count used by Submit.
func (h *Handoff) BucketCount() int {
	return int(h.bucketCount.Load())
}

// SetFactor changes the smoothing factor.
func (h *Handoff) SetFactor(factor float32) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.proc.Smoother().SetFactor(factor)
}

// SetClamp bounds processed values to [lo, hi].
func (h *Handoff) SetClamp(lo, hi float32) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.proc.Smoother().SetClamp(lo, hi)
}

// Submit processes raw and publishes the result.
// It returns false when raw is too short to scale or no bucket count is set.
func (h *Handoff) Submit(raw []float32) bool {
	n := h.BucketCount()
	if len(raw) < 2 || n < 1 {
		return false
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	out := h.proc.Process(raw, n)
	h.latest = append(h.latest[:0], out...)
	h.frames++
	return true
}

// Latest copies the most recent processed spectrum into dst.
// When the producer holds the lock it returns dst untouched and false.
func (h *Handoff) Latest(dst []float32) ([]float32, bool) {
	if !h.mu.TryLock() {
		return dst, false
	}
	defer h.mu.Unlock()

	return append(dst[:0], h.latest...), true
}

// Frames returns how many spectra have been submitted.
func (h *Handoff) Frames() uint64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.frames
}

// Reset drops the published spectrum and the smoothing history.
func (h *Handoff) Reset() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.latest = h.latest[:0]
	h.proc.Smoother().Reset()
}
