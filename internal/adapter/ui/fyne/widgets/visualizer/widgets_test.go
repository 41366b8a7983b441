package visualizer

import (
	"image"
	"sync/atomic"
	"testing"
	"time"

	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tejashwikalptaru/spectra/internal/domain"
	"github.com/tejashwikalptaru/spectra/internal/logger"
	"github.com/tejashwikalptaru/spectra/internal/renderer"
)

func loudSpectrum(n int) []float32 {
	raw := make([]float32, n)
	for i := range raw {
		raw[i] = 0.9
	}
	return raw
}

func newTestRenderer(t *testing.T) *renderer.ParticleRenderer {
	t.Helper()

	cfg := domain.DefaultParticleConfig()
	cfg.SpawnProbability = 1
	cfg.Seed = 7
	r := renderer.NewParticleRenderer(logger.NewTestLogger(), cfg)
	require.NoError(t, r.Initialize())
	t.Cleanup(r.Dispose)
	return r
}

func inkedPixels(img image.Image) int {
	rgba := img.(*image.RGBA)
	n := 0
	for i := 3; i < len(rgba.Pix); i += 4 {
		if rgba.Pix[i] > 0 {
			n++
		}
	}
	return n
}

func TestParticleView_RendersLatestSpectrum(t *testing.T) {
	test.NewApp()

	r := newTestRenderer(t)
	view := NewParticleView(r, 16, 2)

	// First frame teaches the renderer its bucket count
	img := view.render(320, 240)
	assert.Zero(t, inkedPixels(img))
	assert.Equal(t, uint64(1), view.Stats().FramesSkipped)

	require.True(t, r.Submit(loudSpectrum(256)))
	img = view.render(320, 240)

	stats := view.Stats()
	assert.Equal(t, uint64(1), stats.FramesRendered)
	assert.Equal(t, 16, stats.Live)
	assert.Greater(t, inkedPixels(img), 0)
}

func TestParticleView_ZeroSize(t *testing.T) {
	test.NewApp()

	view := NewParticleView(newTestRenderer(t), 16, 2)

	img := view.render(0, 0)
	assert.Equal(t, image.Rect(0, 0, 0, 0), img.Bounds())
	assert.Zero(t, view.Stats().FramesRendered+view.Stats().FramesSkipped)
}

func TestBars_DrawsSpectrum(t *testing.T) {
	test.NewApp()

	bars := NewBars(8, 2, 60)
	assert.Zero(t, inkedBars(bars.render(160, 100)), "no spectrum yet")

	bars.UpdateSpectrum(loudSpectrum(64))
	for range 30 {
		bars.render(160, 100)
	}
	img := bars.render(160, 100).(*image.RGBA)

	assert.Greater(t, inkedBars(img), 0)
	// Bottom row of the first bar is lit, the gap after it is background
	assert.NotEqual(t, uint8(0), img.RGBAAt(1, 99).R)
	frame := domain.LayoutBars(160, 100, 8, 2)
	gapX := int(frame.BarWidth) + 1
	assert.Equal(t, uint8(0), img.RGBAAt(gapX, 99).R)
}

func TestBars_MaxShare(t *testing.T) {
	test.NewApp()

	bars := NewBars(4, 0, 60)
	bars.SetMaxShare(0.25)
	bars.UpdateSpectrum(loudSpectrum(32))
	for range 60 {
		bars.render(40, 100)
	}

	for _, h := range bars.heights {
		assert.LessOrEqual(t, h, float32(25))
	}
	for _, c := range bars.caps {
		assert.LessOrEqual(t, c, float32(25))
	}
}

func TestBars_CopiesSpectrum(t *testing.T) {
	test.NewApp()

	bars := NewBars(4, 0, 60)
	raw := loudSpectrum(16)
	bars.UpdateSpectrum(raw)
	raw[0] = 42

	assert.Equal(t, float32(0.9), bars.raw[0])
}

func TestBars_Reset(t *testing.T) {
	test.NewApp()

	bars := NewBars(4, 0, 60)
	bars.UpdateSpectrum(loudSpectrum(16))
	bars.render(40, 40)
	bars.Reset()

	assert.Empty(t, bars.raw)
	for _, c := range bars.caps {
		assert.Zero(t, c)
	}
}

// inkedBars counts non-black pixels on an opaque bar image.
func inkedBars(img image.Image) int {
	rgba := img.(*image.RGBA)
	n := 0
	for i := 0; i < len(rgba.Pix); i += 4 {
		if rgba.Pix[i] > 0 || rgba.Pix[i+1] > 0 {
			n++
		}
	}
	return n
}

// refreshCounter is a canvas object that counts refreshes.
type refreshCounter struct {
	*canvas.Rectangle
	n atomic.Int32
}

func (r *refreshCounter) Refresh() { r.n.Add(1) }

func TestFrameTarget_RefreshesAll(t *testing.T) {
	test.NewApp()

	a := &refreshCounter{Rectangle: canvas.NewRectangle(nil)}
	b := &refreshCounter{Rectangle: canvas.NewRectangle(nil)}
	target := NewFrameTarget(a, b)

	go target.Refresh()

	assert.Eventually(t, func() bool {
		return a.n.Load() == 1 && b.n.Load() == 1
	}, time.Second, 5*time.Millisecond)
}
