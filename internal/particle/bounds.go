package particle

// Bounds is the vertical travel band of particles.
// Particles spawn at SpawnY and move toward Upper (decreasing Y); anything
// leaving [Upper, Lower] is pruned.
type Bounds struct {
	Upper  float32
	Lower  float32
	SpawnY float32
}

// Contains reports whether y lies inside the band.
func (b Bounds) Contains(y float32) bool {
	return y >= b.Upper && y <= b.Lower
}

// BoundsFor derives the band from the canvas height.
// In overlay mode only the bottom height*overlayHeightMultiplier strip is used.
func BoundsFor(height int, overlay bool, overlayHeightMultiplier float32) Bounds {
	h := float32(height)
	if overlay {
		return Bounds{Upper: h - h*overlayHeightMultiplier, Lower: h, SpawnY: h}
	}
	return Bounds{Upper: 0, Lower: h, SpawnY: h}
}

// BoundsCache recomputes Bounds only when the height or mode changes.
type BoundsCache struct {
	height     int
	overlay    bool
	multiplier float32
	bounds     Bounds
	valid      bool
}

// Get returns the cached band, recomputing it when an input changed.
func (c *BoundsCache) Get(height int, overlay bool, overlayHeightMultiplier float32) Bounds {
	if c.valid && c.height == height && c.overlay == overlay && c.multiplier == overlayHeightMultiplier {
		return c.bounds
	}
	c.height, c.overlay, c.multiplier = height, overlay, overlayHeightMultiplier
	c.bounds = BoundsFor(height, overlay, overlayHeightMultiplier)
	c.valid = true
	return c.bounds
}

// Invalidate forces the next Get to recompute.
func (c *BoundsCache) Invalidate() {
	c.valid = false
}
