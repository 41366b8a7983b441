package fyne

import (
	"fmt"
	"log/slog"
	"sync"

	fyneapp "fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/tejashwikalptaru/spectra/internal/adapter/ui/fyne/widgets"
	"github.com/tejashwikalptaru/spectra/internal/adapter/ui/fyne/widgets/visualizer"
	"github.com/tejashwikalptaru/spectra/internal/domain"
	"github.com/tejashwikalptaru/spectra/internal/renderer"
	"github.com/tejashwikalptaru/spectra/res"
)

// Window defaults.
const (
	WIDTH  = 960
	HEIGHT = 540
)

// MainWindow is the main UI window implementing the UIView interface.
// It stacks the particle view over the spectrum bars.
//
// The MainWindow follows the MVP pattern:
// - It's a "dumb view" that just displays data
// - All business logic is in the Presenter
// - User interactions are forwarded to the Presenter
type MainWindow struct {
	app    fyneapp.App
	window fyneapp.Window
	logger *slog.Logger
	name   string

	// UI components
	bars      *visualizer.Bars
	particles *visualizer.ParticleView
	stage     *widgets.TappableStack
	status    *widget.Label

	// Lifecycle management
	closeOnce     sync.Once
	onBeforeClose func()

	// Presenter (set after construction)
	presenter *Presenter
}

// NewMainWindow creates a new main window around the two visualizers.
func NewMainWindow(
	app fyneapp.App,
	name string,
	bars *visualizer.Bars,
	particles *visualizer.ParticleView,
	logger *slog.Logger,
) *MainWindow {
	w := &MainWindow{
		app:       app,
		logger:    logger,
		name:      name,
		bars:      bars,
		particles: particles,
	}

	// Create a window
	w.window = app.NewWindow(name)

	// Build UI
	w.buildUI()

	// Set window properties
	w.window.Resize(fyneapp.NewSize(WIDTH, HEIGHT))
	w.window.SetCloseIntercept(w.Close)

	return w
}

// SetPresenter connects the presenter to this view.
// This must be called before showing the window.
func (w *MainWindow) SetPresenter(presenter *Presenter) {
	w.presenter = presenter
	w.addShortcuts()
}

// SetOnBeforeClose registers a callback run once before the window closes.
func (w *MainWindow) SetOnBeforeClose(fn func()) {
	w.onBeforeClose = fn
}

// FrameTarget returns the target a frame loop refreshes every frame.
func (w *MainWindow) FrameTarget() *visualizer.FrameTarget {
	return visualizer.NewFrameTarget(w.bars, w.particles)
}

// buildUI constructs the UI components.
func (w *MainWindow) buildUI() {
	w.status = widget.NewLabel("")
	w.status.Truncation = fyneapp.TextTruncateClip
	w.status.TextStyle = fyneapp.TextStyle{Monospace: true}

	w.stage = widgets.NewTappableStack(container.NewStack(w.bars, w.particles), w.showContextMenu)
	w.stage.SetOnDoubleTapped(func(*fyneapp.PointEvent) {
		w.toggleFullScreen()
	})

	w.window.SetContent(container.NewBorder(nil, w.status, nil, nil, w.stage))

	// Menu
	w.window.SetMainMenu(fyneapp.NewMainMenu(w.createMenu()...))
}

// createMenu creates the application menu.
func (w *MainWindow) createMenu() []*fyneapp.Menu {
	separator := fyneapp.NewMenuItemSeparator()

	importSettings := fyneapp.NewMenuItem("Import Settings...", w.handleImport)
	exportSettings := fyneapp.NewMenuItem("Export Settings...", w.handleExport)
	resetSettings := fyneapp.NewMenuItem("Reset Settings", w.handleReset)
	exitMenu := fyneapp.NewMenuItem("Exit", w.Close)
	exitMenu.IsQuit = true

	toggleMode := fyneapp.NewMenuItem("Toggle Overlay", w.handleToggleMode)
	fullScreen := fyneapp.NewMenuItem("Full Screen", w.toggleFullScreen)

	about := fyneapp.NewMenuItem("About", w.showAbout)

	return []*fyneapp.Menu{
		fyneapp.NewMenu("File", importSettings, exportSettings, separator, resetSettings, separator, exitMenu),
		fyneapp.NewMenu("View", toggleMode, fullScreen),
		fyneapp.NewMenu("Help", about),
	}
}

// showContextMenu shows the view menu at the pointer.
func (w *MainWindow) showContextMenu(pe *fyneapp.PointEvent) {
	menu := fyneapp.NewMenu("",
		fyneapp.NewMenuItem("Toggle Overlay", w.handleToggleMode),
		fyneapp.NewMenuItem("Full Screen", w.toggleFullScreen),
		fyneapp.NewMenuItemSeparator(),
		fyneapp.NewMenuItem("Reset Settings", w.handleReset),
	)
	widget.ShowPopUpMenuAtPosition(menu, w.window.Canvas(), pe.AbsolutePosition)
}

func (w *MainWindow) handleToggleMode() {
	if w.presenter != nil {
		w.presenter.OnToggleMode()
	}
}

func (w *MainWindow) handleReset() {
	if w.presenter != nil {
		w.presenter.OnResetSettings()
	}
}

// handleImport handles the "Import Settings" menu action.
func (w *MainWindow) handleImport() {
	if w.presenter == nil {
		return
	}

	NewFileDialog(w.window, func(path string) {
		if err := w.presenter.OnImportSettings(path); err != nil {
			dialog.ShowError(fmt.Errorf("failed to import settings: %w", err), w.window)
		}
	}, w.logger).Show()
}

// handleExport handles the "Export Settings" menu action.
func (w *MainWindow) handleExport() {
	if w.presenter == nil {
		return
	}

	NewSaveDialog(w.window, func(path string) {
		if err := w.presenter.OnExportSettings(path); err != nil {
			dialog.ShowError(fmt.Errorf("failed to export settings: %w", err), w.window)
		}
	}, w.logger).Show()
}

func (w *MainWindow) showAbout() {
	content := widget.NewRichTextFromMarkdown(res.AboutContent)
	content.Wrapping = fyneapp.TextWrapWord
	d := dialog.NewCustom("About "+w.name, "Close", content, w.window)
	d.Resize(fyneapp.NewSize(420, 300))
	d.Show()
}

func (w *MainWindow) toggleFullScreen() {
	w.window.SetFullScreen(!w.window.FullScreen())
}

// addShortcuts adds keyboard shortcuts.
func (w *MainWindow) addShortcuts() {
	w.window.Canvas().SetOnTypedKey(func(ev *fyneapp.KeyEvent) {
		switch ev.Name {
		case fyneapp.KeyO:
			w.handleToggleMode()
		case fyneapp.KeyF:
			w.toggleFullScreen()
		case fyneapp.KeyEscape:
			if w.window.FullScreen() {
				w.window.SetFullScreen(false)
			}
		}
	})
}

// ShowAndRun shows the window and runs the application.
func (w *MainWindow) ShowAndRun() {
	w.window.ShowAndRun()
}

// Close runs the before-close callback and closes the window.
// It's safe to call multiple times (idempotent).
func (w *MainWindow) Close() {
	w.closeOnce.Do(func() {
		if w.onBeforeClose != nil {
			w.onBeforeClose()
		}
		w.window.Close()
	})
}

// GetWindow returns the underlying Fyne window.
func (w *MainWindow) GetWindow() fyneapp.Window {
	return w.window
}

// UIView interface implementation

// SetMode updates the title and the bar height limit.
func (w *MainWindow) SetMode(mode domain.RenderMode, barShare float32) {
	w.bars.SetMaxShare(barShare)
	fyneapp.Do(func() {
		w.window.SetTitle(fmt.Sprintf("%s (%s)", w.name, mode))
	})
}

// SetStats updates the status line.
func (w *MainWindow) SetStats(stats renderer.Stats) {
	text := fmt.Sprintf("%s  particles %d/%d  frames %d  skipped %d",
		stats.Mode, stats.Live, stats.Capacity, stats.FramesRendered, stats.FramesSkipped)
	fyneapp.Do(func() {
		w.status.SetText(text)
	})
}

// ShowNotification displays a system notification.
func (w *MainWindow) ShowNotification(title, message string) {
	w.app.SendNotification(fyneapp.NewNotification(title, message))
}

// Verify UIView implementation
var _ UIView = (*MainWindow)(nil)
