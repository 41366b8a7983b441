package spectrum

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProcessor_ScalesThenSmooths(t *testing.T) {
	p := NewProcessor(0.5)

	first := p.Process([]float32{1, 2, 3, 4, 5, 6, 7, 8}, 2)
	assert.Equal(t, []float32{1.5, 3.5}, first)

	second := p.Process([]float32{0, 0, 0, 0, 0, 0, 0, 0}, 2)
	assert.Equal(t, []float32{0.75, 1.75}, second)

	assert.Nil(t, p.Process([]float32{1, 2}, 0))
}

func TestHandoff_SubmitRequiresBucketCount(t *testing.T) {
	h := NewHandoff(0.3)

	assert.False(t, h.Submit([]float32{1, 2, 3, 4}))

	h.SetBucketCount(2)
	assert.False(t, h.Submit([]float32{1}))
	assert.True(t, h.Submit([]float32{1, 2, 3, 4}))
	assert.Equal(t, uint64(1), h.Frames())
}

func TestHandoff_LatestCopiesProcessed(t *testing.T) {
	h := NewHandoff(0.3)
	h.SetBucketCount(2)
	require.True(t, h.Submit([]float32{1, 2, 3, 4, 5, 6, 7, 8}))

	got, ok := h.Latest(nil)
	require.True(t, ok)
	assert.Equal(t, []float32{1.5, 3.5}, got)

	// The copy is independent of later submissions
	got[0] = 42
	again, ok := h.Latest(nil)
	require.True(t, ok)
	assert.Equal(t, float32(1.5), again[0])
}

func TestHandoff_LatestDoesNotBlockOnBusyProducer(t *testing.T) {
	h := NewHandoff(0.3)
	h.SetBucketCount(2)
	require.True(t, h.Submit([]float32{1, 2, 3, 4, 5, 6, 7, 8}))

	previous, ok := h.Latest(nil)
	require.True(t, ok)

	// Simulate the producer holding the lock mid-frame
	h.mu.Lock()
	got, ok := h.Latest(previous)
	h.mu.Unlock()

	assert.False(t, ok)
	assert.Equal(t, []float32{1.5, 3.5}, got)
}

func TestHandoff_ConcurrentProducer(t *testing.T) {
	h := NewHandoff(0.3)
	h.SetBucketCount(8)

	raw := make([]float32, 64)
	for i := range raw {
		raw[i] = 0.5
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for range 500 {
			h.Submit(raw)
		}
	}()

	var dst []float32
	for range 500 {
		dst, _ = h.Latest(dst)
		if len(dst) > 0 {
			require.Len(t, dst, 8)
		}
	}
	wg.Wait()

	dst, ok := h.Latest(dst)
	require.True(t, ok)
	for _, v := range dst {
		assert.InDelta(t, 0.5, v, 1e-6)
	}
}

func TestHandoff_ClampAndReset(t *testing.T) {
	h := NewHandoff(1)
	h.SetBucketCount(1)
	h.SetClamp(0, 1)
	require.True(t, h.Submit([]float32{3, 3}))

	got, ok := h.Latest(nil)
	require.True(t, ok)
	assert.Equal(t, []float32{1}, got)

	h.Reset()
	got, ok = h.Latest(got)
	require.True(t, ok)
	assert.Empty(t, got)
}
