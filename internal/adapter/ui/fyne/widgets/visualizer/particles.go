package visualizer

import (
	"image"

	"fyne.io/fyne/v2/canvas"

	"github.com/tejashwikalptaru/spectra/internal/domain"
	"github.com/tejashwikalptaru/spectra/internal/ports"
	"github.com/tejashwikalptaru/spectra/internal/renderer"
)

// FrameRenderer is the part of a particle renderer the view drives.
type FrameRenderer interface {
	RenderLatest(frame domain.FrameInfo, canvas ports.Canvas)
	Stats() renderer.Stats
}

// ParticleView is a raster widget that renders one particle frame per refresh.
//
// The raster generator runs on the Fyne UI goroutine, which therefore is the
// render goroutine of the wrapped renderer. Stats may be read from anywhere.
type ParticleView struct {
	BaseVisualizer

	renderer FrameRenderer
	canvas   *RasterCanvas
	barCount int
	spacing  float32

	stats renderer.Stats
}

// NewParticleView creates a particle view laid out over barCount bars.
func NewParticleView(r FrameRenderer, barCount int, spacing float32) *ParticleView {
	v := &ParticleView{
		renderer: r,
		canvas:   NewRasterCanvas(),
		barCount: barCount,
		spacing:  spacing,
	}

	v.Raster = canvas.NewRaster(v.render)
	v.ExtendBaseWidget(v)

	return v
}

// Stats returns the renderer counters captured after the last frame.
func (v *ParticleView) Stats() renderer.Stats {
	v.Mu.Lock()
	defer v.Mu.Unlock()
	return v.stats
}

// render is the raster generator function that draws the particles.
func (v *ParticleView) render(w, h int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	if w == 0 || h == 0 {
		return img
	}

	v.canvas.Begin(img)
	v.renderer.RenderLatest(domain.LayoutBars(w, h, v.barCount, v.spacing), v.canvas)
	stats := v.renderer.Stats()

	v.Mu.Lock()
	v.stats = stats
	v.Mu.Unlock()

	return img
}

// Verify interface implementation at compile time.
var _ Visualizer = (*ParticleView)(nil)
