package visualizer

import (
	"fyne.io/fyne/v2"

	"github.com/tejashwikalptaru/spectra/internal/ports"
)

// Visualizer is a canvas object redrawn once per frame.
type Visualizer interface {
	fyne.CanvasObject
}

// FrameTarget refreshes a set of canvas objects on the Fyne UI goroutine.
// It lets a background frame loop drive raster widgets.
type FrameTarget struct {
	objects []fyne.CanvasObject
}

// NewFrameTarget creates a target refreshing objects in order.
func NewFrameTarget(objects ...fyne.CanvasObject) *FrameTarget {
	return &FrameTarget{objects: objects}
}

// Refresh implements ports.FrameTarget. It does not wait for the redraw.
func (t *FrameTarget) Refresh() {
	fyne.Do(t.refresh)
}

func (t *FrameTarget) refresh() {
	for _, obj := range t.objects {
		obj.Refresh()
	}
}

// Verify interface implementation at compile time.
var _ ports.FrameTarget = (*FrameTarget)(nil)
