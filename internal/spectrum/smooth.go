package spectrum

// Smoother is a per-bucket exponential moving average.
//
// The carried state is the previous frame. When the bucket count changes the
// history is dropped and restarted from the incoming values; old history is
// never resampled.
//
// Not safe for concurrent use.
type Smoother struct {
	factor float32
	state  []float32

	clamp    bool
	min, max float32
	out      []float32
}

// NewSmoother creates a smoother with the given factor in (0, 1].
// Higher factors follow the input more closely.
func NewSmoother(factor float32) *Smoother {
	return &Smoother{factor: factor}
}

// Factor returns the smoothing coefficient.
func (s *Smoother) Factor() float32 {
	return s.factor
}

// SetFactor changes the smoothing coefficient without touching the state.
func (s *Smoother) SetFactor(factor float32) {
	s.factor = factor
}

// SetClamp bounds the values returned by Smooth to [lo, hi].
// The carried state stays unclamped.
func (s *Smoother) SetClamp(lo, hi float32) {
	s.clamp = true
	s.min, s.max = lo, hi
}

// ClearClamp disables output clamping.
func (s *Smoother) ClearClamp() {
	s.clamp = false
}

// Smooth folds current into the state and returns the smoothed values.
// The returned slice is owned by the smoother and valid until the next call.
func (s *Smoother) Smooth(current []float32) []float32 {
	if len(s.state) != len(current) {
		s.state = append(s.state[:0], current...)
	} else {
		for i, v := range current {
			s.state[i] += (v - s.state[i]) * s.factor
		}
	}

	if !s.clamp {
		return s.state
	}

	s.out = append(s.out[:0], s.state...)
	for i, v := range s.out {
		s.out[i] = min(max(v, s.min), s.max)
	}
	return s.out
}

// State returns the carried previous-frame values.
func (s *Smoother) State() []float32 {
	return s.state
}

// Reset drops the history; the next Smooth call restarts from its input.
func (s *Smoother) Reset() {
	s.state = s.state[:0]
}
