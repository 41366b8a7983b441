package fyne

import (
	"log/slog"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
)

// settingsFilter limits file dialogs to TOML settings files.
var settingsFilter = storage.NewExtensionFileFilter([]string{".toml"})

// FileDialog is a helper for creating settings file open dialogs.
type FileDialog struct {
	window   fyne.Window
	callback func(string)
	logger   *slog.Logger
}

// NewFileDialog creates a new file dialog.
func NewFileDialog(window fyne.Window, callback func(string), logger *slog.Logger) *FileDialog {
	return &FileDialog{
		window:   window,
		callback: callback,
		logger:   logger,
	}
}

// Show displays the file dialog.
func (d *FileDialog) Show() {
	open := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			d.logger.Error("file dialog error", slog.Any("error", err))
			return
		}
		if reader == nil {
			return // User cancelled
		}
		defer reader.Close()

		if d.callback != nil {
			d.callback(reader.URI().Path())
		}
	}, d.window)
	open.SetFilter(settingsFilter)
	open.Show()
}

// SaveDialog is a helper for creating settings file save dialogs.
type SaveDialog struct {
	window   fyne.Window
	callback func(string)
	logger   *slog.Logger
}

// NewSaveDialog creates a new save dialog.
func NewSaveDialog(window fyne.Window, callback func(string), logger *slog.Logger) *SaveDialog {
	return &SaveDialog{
		window:   window,
		callback: callback,
		logger:   logger,
	}
}

// Show displays the save dialog.
// The chosen file is closed again before the callback runs; the callback
// replaces it atomically.
func (d *SaveDialog) Show() {
	save := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil {
			d.logger.Error("save dialog error", slog.Any("error", err))
			return
		}
		if writer == nil {
			return // User cancelled
		}
		path := writer.URI().Path()
		if err := writer.Close(); err != nil {
			d.logger.Warn("failed to close save target", slog.Any("error", err))
		}

		if d.callback != nil {
			d.callback(path)
		}
	}, d.window)
	save.SetFilter(settingsFilter)
	save.SetFileName("spectra.toml")
	save.Show()
}
