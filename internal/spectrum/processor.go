package spectrum

// Processor runs scale then smooth with buffers it owns, so steady-state
// frames do not allocate. Buffers are only reallocated when the bucket count
// changes.
//
// Not safe for concurrent use; see Handoff for the cross-goroutine variant.
type Processor struct {
	smoother *Smoother
	scaled   []float32
}

// NewProcessor creates a processor with the given smoothing factor.
func NewProcessor(factor float32) *Processor {
	return &Processor{smoother: NewSmoother(factor)}
}

// Smoother exposes the processor's smoother for factor and clamp changes.
func (p *Processor) Smoother() *Smoother {
	return p.smoother
}

// Process scales raw to bucketCount buckets and smooths the result.
// The returned slice is owned by the processor and valid until the next call.
func (p *Processor) Process(raw []float32, bucketCount int) []float32 {
	if bucketCount < 1 {
		return nil
	}
	if len(p.scaled) != bucketCount {
		p.scaled = make([]float32, bucketCount)
	}
	ScaleInto(p.scaled, raw)
	return p.smoother.Smooth(p.scaled)
}
