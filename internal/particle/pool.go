package particle

import (
	"github.com/tejashwikalptaru/spectra/internal/domain"
)

// Pool is a fixed-capacity arena of particle records.
// Storage is allocated once; particles are born by copying into a slot and
// die by being left out of the next compaction. Nothing is freed per frame.
type Pool struct {
	slots    []domain.Particle
	released bool
}

// NewPool allocates capacity slots. Capacities below one are raised to one.
func NewPool(capacity int) *Pool {
	return &Pool{slots: make([]domain.Particle, max(capacity, 1))}
}

// Cap returns the number of slots.
func (p *Pool) Cap() int {
	return len(p.slots)
}

// Slots returns the backing storage.
// Panics with domain.ErrDisposed after Release.
func (p *Pool) Slots() []domain.Particle {
	if p.released {
		panic(domain.NewRendererError("pool", "slots", "pool used after release", domain.ErrDisposed))
	}
	return p.slots
}

// Reset tombstones every slot.
func (p *Pool) Reset() {
	clear(p.slots)
}

// Release drops the storage. Calling it twice is a no-op.
func (p *Pool) Release() {
	p.slots = nil
	p.released = true
}

// Released reports whether Release has been called.
func (p *Pool) Released() bool {
	return p.released
}
