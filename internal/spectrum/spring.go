package spectrum

import "github.com/charmbracelet/harmonica"

// SpringSmoother eases each bucket toward its target with a damped spring.
// Bars get a little overshoot on attacks, which reads better than a plain
// moving average for bar-style renderers.
type SpringSmoother struct {
	spring harmonica.Spring
	pos    []float64
	vel    []float64
}

// NewSpringSmoother creates a spring smoother stepping at fps frames per second.
func NewSpringSmoother(fps int, frequency, damping float64) *SpringSmoother {
	return &SpringSmoother{spring: harmonica.NewSpring(harmonica.FPS(fps), frequency, damping)}
}

// Smooth advances every bucket one step toward target and writes the positions to dst.
// dst is resized to len(target) and returned.
func (s *SpringSmoother) Smooth(dst, target []float32) []float32 {
	if len(s.pos) != len(target) {
		s.pos = make([]float64, len(target))
		s.vel = make([]float64, len(target))
	}

	dst = dst[:0]
	for i, t := range target {
		s.pos[i], s.vel[i] = s.spring.Update(s.pos[i], s.vel[i], float64(t))
		dst = append(dst, float32(s.pos[i]))
	}
	return dst
}

// Reset zeroes every spring.
func (s *SpringSmoother) Reset() {
	clear(s.pos)
	clear(s.vel)
}
