package spectrum

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSmoother_FirstFrameSeedsState(t *testing.T) {
	s := NewSmoother(0.3)

	got := s.Smooth([]float32{0.2, 0.8})

	assert.Equal(t, []float32{0.2, 0.8}, got)
}

func TestSmoother_MovesTowardInput(t *testing.T) {
	s := NewSmoother(0.5)
	s.Smooth([]float32{0})

	got := s.Smooth([]float32{1})

	assert.InDelta(t, 0.5, got[0], 1e-6)
}

func TestSmoother_Converges(t *testing.T) {
	s := NewSmoother(0.3)
	s.Smooth([]float32{0, 1, 0.5})

	target := []float32{1, 0, 0.25}
	var got []float32
	for range 200 {
		got = s.Smooth(target)
	}

	for i := range target {
		assert.InDelta(t, target[i], got[i], 1e-6)
	}
}

func TestSmoother_StaysInUnitRange(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	s := NewSmoother(0.3)

	frame := make([]float32, 16)
	for range 1000 {
		for i := range frame {
			frame[i] = rng.Float32()
		}
		for i, v := range s.Smooth(frame) {
			require.GreaterOrEqual(t, v, float32(0), "bucket %d", i)
			require.LessOrEqual(t, v, float32(1), "bucket %d", i)
		}
	}
}

func TestSmoother_ResizeRestartsFromInput(t *testing.T) {
	s := NewSmoother(0.3)
	s.Smooth([]float32{1, 1, 1})
	s.Smooth([]float32{0, 0, 0})

	got := s.Smooth([]float32{0.4, 0.6})

	assert.Equal(t, []float32{0.4, 0.6}, got)
	assert.Len(t, s.State(), 2)
}

func TestSmoother_ClampIsExplicit(t *testing.T) {
	s := NewSmoother(1)

	assert.Equal(t, []float32{1.5, -0.5}, s.Smooth([]float32{1.5, -0.5}))

	s.SetClamp(0, 1)
	assert.Equal(t, []float32{1, 0}, s.Smooth([]float32{1.5, -0.5}))
	// The carried state is not clamped
	assert.Equal(t, []float32{1.5, -0.5}, s.State())

	s.ClearClamp()
	assert.Equal(t, []float32{1.5, -0.5}, s.Smooth([]float32{1.5, -0.5}))
}

func TestSmoother_Reset(t *testing.T) {
	s := NewSmoother(0.3)
	s.Smooth([]float32{1})
	s.Reset()

	assert.Equal(t, []float32{0.25}, s.Smooth([]float32{0.25}))
}

func TestSpringSmoother_ApproachesTarget(t *testing.T) {
	s := NewSpringSmoother(60, 6.0, 1.0)
	target := []float32{1, 0.5}

	var out []float32
	for range 600 {
		out = s.Smooth(out, target)
	}

	require.Len(t, out, 2)
	assert.InDelta(t, 1.0, out[0], 0.01)
	assert.InDelta(t, 0.5, out[1], 0.01)

	s.Reset()
	out = s.Smooth(out, []float32{0, 0})
	assert.Equal(t, []float32{0, 0}, out)
}
