package particle

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBoundsFor_Normal(t *testing.T) {
	b := BoundsFor(400, false, 0.3)

	assert.Equal(t, Bounds{Upper: 0, Lower: 400, SpawnY: 400}, b)
	assert.True(t, b.Contains(0))
	assert.True(t, b.Contains(400))
	assert.False(t, b.Contains(-0.1))
}

func TestBoundsFor_Overlay(t *testing.T) {
	b := BoundsFor(200, true, 0.25)

	assert.Equal(t, Bounds{Upper: 150, Lower: 200, SpawnY: 200}, b)
	assert.False(t, b.Contains(149))
}

func TestBoundsCache_RecomputesOnChange(t *testing.T) {
	var c BoundsCache

	assert.Equal(t, float32(0), c.Get(100, false, 0.5).Upper)
	assert.Equal(t, float32(50), c.Get(100, true, 0.5).Upper)
	assert.Equal(t, float32(100), c.Get(200, true, 0.5).Upper)

	c.Invalidate()
	assert.Equal(t, float32(100), c.Get(200, true, 0.5).Upper)
}
