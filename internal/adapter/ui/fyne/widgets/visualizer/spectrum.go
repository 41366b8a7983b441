package visualizer

import (
	"image"
	"image/color"

	"fyne.io/fyne/v2/canvas"

	"github.com/tejashwikalptaru/spectra/internal/domain"
	"github.com/tejashwikalptaru/spectra/internal/ports"
	"github.com/tejashwikalptaru/spectra/internal/spectrum"
)

// Bars is a widget that displays the spectrum as bars with falling caps.
// It uses the same bucket scaling and layout as the particle renderer, so
// particles rise from the top of their bar.
type Bars struct {
	BaseVisualizer

	raw      []float32 // latest spectrum, guarded by Mu
	buckets  []float32
	heights  []float32
	caps     []float32
	numBars  int
	spacing  float32
	maxShare float32 // fraction of the height a full-scale bar reaches

	smoother *spectrum.SpringSmoother

	// Visual configuration
	background color.Color
	capHeight  int
	capFalloff float32 // Pixels per update the cap falls

	// Layout cache (recalculated only when size changes)
	lastWidth  int
	lastHeight int
	frame      domain.FrameInfo

	draw DrawingUtils
}

// NewBars creates a new bar widget with the specified number of bars.
// fps is the expected refresh rate driving the bar springs.
func NewBars(numBars int, spacing float32, fps int) *Bars {
	v := &Bars{
		numBars:    numBars,
		spacing:    spacing,
		maxShare:   1,
		buckets:    make([]float32, numBars),
		caps:       make([]float32, numBars),
		smoother:   spectrum.NewSpringSmoother(fps, 8.0, 0.6),
		background: color.Black,
		capHeight:  2,
		capFalloff: 2.0,
	}

	v.Raster = canvas.NewRaster(v.render)
	v.ExtendBaseWidget(v)

	return v
}

// UpdateSpectrum stores a copy of raw for the next refresh.
// It may be called from any goroutine.
func (v *Bars) UpdateSpectrum(raw []float32) {
	v.Mu.Lock()
	v.raw = append(v.raw[:0], raw...)
	v.Mu.Unlock()
}

// SetMaxShare limits bars to the given fraction of the widget height.
// Overlay mode keeps bars inside the particle band.
func (v *Bars) SetMaxShare(share float32) {
	v.Mu.Lock()
	v.maxShare = min(max(share, 0), 1)
	v.Mu.Unlock()
}

// Reset clears the visualizer state.
func (v *Bars) Reset() {
	v.Mu.Lock()
	v.raw = v.raw[:0]
	clear(v.caps)
	v.smoother.Reset()
	v.Mu.Unlock()
}

// render is the raster generator function that draws the visualizer.
func (v *Bars) render(w, h int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	v.draw.FillBackground(img, v.background)

	if w == 0 || h == 0 || v.numBars == 0 {
		return img
	}

	// Recalculate layout only if size changed
	if v.lastWidth != w || v.lastHeight != h {
		v.lastWidth, v.lastHeight = w, h
		v.frame = domain.LayoutBars(w, h, v.numBars, v.spacing)
	}
	if v.frame.BarWidth < 1 {
		return img
	}

	v.Mu.Lock()
	defer v.Mu.Unlock()
	if len(v.raw) < 2 {
		return img
	}

	spectrum.ScaleInto(v.buckets, v.raw)
	v.heights = v.smoother.Smooth(v.heights, v.buckets)
	maxHeight := v.maxShare * float32(h)
	for i, level := range v.heights {
		v.heights[i] = min(max(level, 0), 1) * maxHeight
	}
	v.updateCapHeights()
	v.drawBars(img, h)

	return img
}

// updateCapHeights updates cap positions with falling animation.
func (v *Bars) updateCapHeights() {
	for i, barH := range v.heights {
		if barH > v.caps[i] {
			v.caps[i] = barH
		} else {
			v.caps[i] = max(v.caps[i]-v.capFalloff, 0)
		}
	}
}

// drawBars renders all bars and their caps to the image.
func (v *Bars) drawBars(img *image.RGBA, h int) {
	step := v.frame.XStep()
	barWidth := int(v.frame.BarWidth)

	for i, barH := range v.heights {
		x0 := int(float32(i) * step)
		x1 := x0 + barWidth

		top := h - int(barH)
		for y := top; y < h; y++ {
			col := v.draw.GetGradientColor(float64(h-y) / float64(h))
			v.draw.FillRect(img, image.Rect(x0, y, x1, y+1), col)
		}

		capY := h - int(v.caps[i])
		if v.caps[i] > 0 && capY-v.capHeight >= 0 {
			v.draw.FillRect(img, image.Rect(x0, capY-v.capHeight, x1, capY), color.RGBA{R: 255, G: 255, B: 255, A: 255})
		}
	}
}

// Verify interface implementation at compile time.
var (
	_ Visualizer         = (*Bars)(nil)
	_ ports.SpectrumSink = (*Bars)(nil)
)
