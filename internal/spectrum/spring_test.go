package spectrum

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpringSmoother_SettlesOnTarget(t *testing.T) {
	s := NewSpringSmoother(60, 8.0, 1.0)
	target := []float32{0.2, 0.8, 0}

	var out []float32
	for range 240 {
		out = s.Smooth(out, target)
	}

	require.Len(t, out, 3)
	for i := range target {
		assert.InDelta(t, target[i], out[i], 1e-3)
	}
}

func TestSpringSmoother_StartsFromZero(t *testing.T) {
	s := NewSpringSmoother(60, 8.0, 0.6)

	out := s.Smooth(nil, []float32{1})

	assert.Greater(t, out[0], float32(0))
	assert.Less(t, out[0], float32(1))
}

func TestSpringSmoother_ResizesAndResets(t *testing.T) {
	s := NewSpringSmoother(60, 8.0, 0.6)
	out := s.Smooth(nil, []float32{1, 1})
	out = s.Smooth(out, []float32{1, 1, 1, 1})
	assert.Len(t, out, 4)

	s.Smooth(out, []float32{1, 1, 1, 1})
	s.Reset()
	out = s.Smooth(out, []float32{0, 0, 0, 0})
	for _, v := range out {
		assert.Zero(t, v)
	}
}
