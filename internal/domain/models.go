// Package domain contains core models and logic with no external dependencies.
// This package defines the fundamental entities of the spectrum particle pipeline.
package domain

// Particle is a single simulated particle.
// It is a plain value type: buffers copy particles in and out and never hold
// pointers to individual records between frames.
type Particle struct {
	// X and Y are the canvas position
	X, Y float32

	// Z is the depth used by perspective variants (0 for flat renderers)
	Z float32

	// VelocityY is the per-frame upward displacement before the velocity multiplier
	VelocityY float32

	// VelocityX is the horizontal drift used by the text-particle variant
	VelocityX float32

	// Size is the current radius, shrinking toward zero over the lifetime
	Size float32

	// Life is the remaining lifetime, starting at ParticleConfig.ParticleLife
	Life float32

	// Alpha is derived from Life through the alpha curve; never authoritative
	Alpha float32

	// Character is the glyph drawn by the text-particle variant
	Character rune

	// Active is the tombstone flag; inactive particles are removed on the next compaction
	Active bool
}

// Visible reports whether the particle should be handed to a drawing backend.
func (p Particle) Visible() bool {
	return p.Active && p.Size > 0 && p.Alpha > 0
}

// RenderMode selects between the full-screen and compact overlay constants.
type RenderMode int

const (
	// ModeNormal is the full-screen display context
	ModeNormal RenderMode = iota

	// ModeOverlay is the compact overlay display context
	ModeOverlay
)

// String returns the human-readable mode name.
func (m RenderMode) String() string {
	switch m {
	case ModeNormal:
		return "normal"
	case ModeOverlay:
		return "overlay"
	default:
		return "unknown"
	}
}

// ParseRenderMode converts a stored mode name back to a RenderMode.
func ParseRenderMode(s string) (RenderMode, error) {
	switch s {
	case "normal", "":
		return ModeNormal, nil
	case "overlay":
		return ModeOverlay, nil
	default:
		return ModeNormal, NewValidationError("mode", s, "must be normal or overlay")
	}
}

// FrameInfo describes the canvas and bar layout for one frame.
type FrameInfo struct {
	// Width and Height are the canvas size in pixels
	Width  int
	Height int

	// BarWidth is the width of a single spectrum bar
	BarWidth float32

	// BarSpacing is the gap between neighbouring bars
	BarSpacing float32

	// BarCount is the number of display buckets the spectrum is scaled to
	BarCount int
}

// Validate checks that the frame can be rendered.
func (f FrameInfo) Validate() error {
	switch {
	case f.Width <= 0:
		return NewValidationError("width", f.Width, "must be positive")
	case f.Height <= 0:
		return NewValidationError("height", f.Height, "must be positive")
	case f.BarCount <= 0:
		return NewValidationError("bar_count", f.BarCount, "must be positive")
	case f.BarWidth <= 0:
		return NewValidationError("bar_width", f.BarWidth, "must be positive")
	case f.BarSpacing < 0:
		return NewValidationError("bar_spacing", f.BarSpacing, "must not be negative")
	}
	return nil
}

// XStep returns the horizontal distance between the left edges of two bars.
func (f FrameInfo) XStep() float32 {
	return f.BarWidth + f.BarSpacing
}

// LayoutBars derives a FrameInfo that spreads barCount bars evenly over the canvas.
func LayoutBars(width, height, barCount int, spacing float32) FrameInfo {
	frame := FrameInfo{
		Width:      width,
		Height:     height,
		BarSpacing: spacing,
		BarCount:   barCount,
	}
	if barCount > 0 {
		frame.BarWidth = (float32(width) - spacing*float32(barCount-1)) / float32(barCount)
	}
	return frame
}
