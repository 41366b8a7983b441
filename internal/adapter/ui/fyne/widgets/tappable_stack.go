// Package widgets provides custom Fyne widgets for the spectra window.
package widgets

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
)

// TappableStack is a container that wraps content and responds to secondary
// (right-click) and double taps. The window uses it around the visualizer to
// open the context menu and toggle full screen.
type TappableStack struct {
	widget.BaseWidget

	content        fyne.CanvasObject
	onSecondaryTap func(*fyne.PointEvent)
	onDoubleTap    func(*fyne.PointEvent)
}

// NewTappableStack creates a new tappable stack with the given content.
func NewTappableStack(content fyne.CanvasObject, onSecondaryTap func(*fyne.PointEvent)) *TappableStack {
	t := &TappableStack{
		content:        content,
		onSecondaryTap: onSecondaryTap,
	}
	t.ExtendBaseWidget(t)
	return t
}

// SetOnDoubleTapped sets the double-tap handler.
func (t *TappableStack) SetOnDoubleTapped(fn func(*fyne.PointEvent)) {
	t.onDoubleTap = fn
}

// CreateRenderer implements fyne.Widget.
func (t *TappableStack) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(t.content)
}

// Tapped implements fyne.Tappable (primary tap - left click).
// We don't do anything on primary tap.
func (t *TappableStack) Tapped(*fyne.PointEvent) {
	// No action on the primary tap
}

// TappedSecondary implements fyne.SecondaryTappable (right-click).
func (t *TappableStack) TappedSecondary(pe *fyne.PointEvent) {
	if t.onSecondaryTap != nil {
		t.onSecondaryTap(pe)
	}
}

// DoubleTapped implements fyne.DoubleTappable.
func (t *TappableStack) DoubleTapped(pe *fyne.PointEvent) {
	if t.onDoubleTap != nil {
		t.onDoubleTap(pe)
	}
}

// MouseIn implements desktop.Hoverable.
func (t *TappableStack) MouseIn(*desktop.MouseEvent) {}

// MouseMoved implements desktop.Hoverable.
func (t *TappableStack) MouseMoved(*desktop.MouseEvent) {}

// MouseOut implements desktop.Hoverable.
func (t *TappableStack) MouseOut() {}

// Ensure TappableStack implements the required interfaces
var (
	_ fyne.Tappable          = (*TappableStack)(nil)
	_ fyne.SecondaryTappable = (*TappableStack)(nil)
	_ fyne.DoubleTappable    = (*TappableStack)(nil)
	_ desktop.Hoverable      = (*TappableStack)(nil)
)
