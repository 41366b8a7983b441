// Package visualizer provides the raster widgets that draw the spectrum bars
// and the particles rising from them.
package visualizer

import (
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"
)

// BaseVisualizer provides common functionality for all visualizers.
// It is designed to be embedded in concrete visualizer implementations.
type BaseVisualizer struct {
	widget.BaseWidget

	Raster *canvas.Raster
	Mu     sync.Mutex
}

// CreateRenderer implements fyne.Widget.
func (v *BaseVisualizer) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(v.Raster)
}

// MinSize returns the minimum size of the visualizer.
func (v *BaseVisualizer) MinSize() fyne.Size {
	return fyne.NewSize(0, 0)
}
