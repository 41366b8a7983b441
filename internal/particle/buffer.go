package particle

import (
	"slices"

	"github.com/tejashwikalptaru/spectra/internal/domain"
)

// Dynamics are the per-update rules applied by Buffer.Update.
type Dynamics struct {
	ParticleLife       float32
	LifeDecay          float32
	VelocityMultiplier float32
	SizeDecay          float32
	Alpha              *AlphaCurve
}

// DynamicsFor derives the update rules from a configuration and its tables.
func DynamicsFor(cfg domain.ParticleConfig, tables *Tables) Dynamics {
	return Dynamics{
		ParticleLife:       cfg.ParticleLife,
		LifeDecay:          cfg.ParticleLifeDecay,
		VelocityMultiplier: cfg.VelocityMultiplier,
		SizeDecay:          cfg.SizeDecay,
		Alpha:              tables.Alpha,
	}
}

// Buffer is a ring buffer of particles over a Pool.
//
// Add appends at tail; Update rewrites the live region in place, dropping
// dead particles and leaving survivors as a contiguous prefix with head = 0.
// The buffer never grows: adds beyond capacity are dropped.
//
// Not safe for concurrent use; it belongs to the render goroutine.
type Buffer struct {
	pool  *Pool
	slots []domain.Particle
	head  int
	tail  int
	count int
	dyn   Dynamics
}

// NewBuffer creates a buffer over pool's storage.
func NewBuffer(pool *Pool, dyn Dynamics) *Buffer {
	return &Buffer{
		pool:  pool,
		slots: pool.Slots(),
		dyn:   dyn,
	}
}

// SetDynamics replaces the update rules; live particles keep their state.
func (b *Buffer) SetDynamics(dyn Dynamics) {
	b.dyn = dyn
}

// Len returns the number of live particles.
func (b *Buffer) Len() int {
	return b.count
}

// Cap returns the fixed capacity.
func (b *Buffer) Cap() int {
	return len(b.slots)
}

// Add copies p into the buffer. It returns false, leaving the buffer
// untouched, when the buffer is full.
func (b *Buffer) Add(p domain.Particle) bool {
	capacity := len(b.slots)
	if b.count >= capacity {
		return false
	}
	b.slots[b.tail] = p
	b.tail = (b.tail + 1) % capacity
	b.count++
	return true
}

// Update ages, moves and compacts the live particles and returns how many
// were pruned. A particle is pruned when it is inactive, its life drops to
// zero or below, or its new Y leaves [upper, lower]. Survivors get their alpha
// from the curve and their size decayed.
//
// The pass touches count slots, not capacity.
func (b *Buffer) Update(upper, lower float32) int {
	capacity := len(b.slots)
	if b.count == 0 {
		b.head, b.tail = 0, 0
		return 0
	}

	d := b.dyn
	// The write cursor trails the read cursor along the same circular order,
	// so a survivor never overwrites a slot that has not been read yet.
	w := 0
	for i := range b.count {
		p := b.slots[(b.head+i)%capacity]
		if !p.Active {
			continue
		}

		p.Life -= d.LifeDecay
		if p.Life <= 0 {
			continue
		}

		p.Y -= p.VelocityY * d.VelocityMultiplier
		p.X += p.VelocityX * d.VelocityMultiplier
		if p.Y < upper || p.Y > lower {
			continue
		}

		p.Alpha = d.Alpha.At(p.Life / d.ParticleLife)
		p.Size *= d.SizeDecay

		b.slots[(b.head+w)%capacity] = p
		w++
	}

	pruned := b.count - w
	b.count = w
	b.normalize()
	return pruned
}

// normalize moves the live region to start at slot 0.
func (b *Buffer) normalize() {
	if b.head != 0 {
		slices.Reverse(b.slots[:b.head])
		slices.Reverse(b.slots[b.head:])
		slices.Reverse(b.slots)
	}
	b.head = 0
	b.tail = b.count % len(b.slots)
}

// Active returns the live particles. The slice aliases the buffer and is only
// valid until the next Add, Update or Rescale call.
func (b *Buffer) Active() []domain.Particle {
	if b.head+b.count > len(b.slots) {
		b.normalize()
	}
	return b.slots[b.head : b.head+b.count]
}

// Rescale multiplies the size of every live particle by factor.
func (b *Buffer) Rescale(factor float32) {
	live := b.Active()
	for i := range live {
		live[i].Size *= factor
	}
}

// Clear drops every particle.
func (b *Buffer) Clear() {
	b.head, b.tail, b.count = 0, 0, 0
	b.pool.Reset()
}
