package ui

import (
	"log/slog"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"

	"InkBoard/internal/export"
	"InkBoard/internal/state"
)

// Controller bundles the actions the toolbar and shortcuts share, the parts
// that need a window for dialogs.
type Controller struct {
	board  *BoardWidget
	scene  *state.Scene
	window fyne.Window
	log    *slog.Logger
}

// DeleteOrClear removes the selected object; with nothing selected and a
// non-empty scene it asks before wiping the whole board.
func (c *Controller) DeleteOrClear() {
	m := c.board.Machine()
	if m.DeleteSelected() {
		c.board.Refresh()
		return
	}
	if c.scene.Len() == 0 {
		return
	}
	dialog.ShowConfirm("Clear board", "Delete everything on the board?", func(ok bool) {
		if ok {
			m.ClearAll()
			c.board.Refresh()
		}
	}, c.window)
}

// ExportPDF asks for a target file and writes the committed scene to it.
func (c *Controller) ExportPDF() {
	dialog.ShowFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		path := writer.URI().Path()
		writer.Close()
		if err := export.PDF(path, c.scene.Objects()); err != nil {
			c.log.Error("pdf export failed", "path", path, "err", err)
			dialog.ShowError(err, c.window)
			return
		}
		c.log.Info("exported board", "path", path)
	}, c.window)
}

// RunApp builds the window around an already-wired board widget and blocks
// until the user closes it.
func RunApp(board *BoardWidget, scene *state.Scene, logger *slog.Logger) {
	if logger == nil {
		logger = slog.Default()
	}
	a := app.New()
	w := a.NewWindow("InkBoard")
	w.Resize(fyne.NewSize(1024, 768))

	ctrl := &Controller{board: board, scene: scene, window: w, log: logger}
	toolbar := NewToolbar(board, ctrl)
	w.SetContent(container.NewBorder(toolbar, nil, nil, nil, board))

	registerShortcuts(w, board, ctrl)
	w.ShowAndRun()
}

// registerShortcuts wires Delete and the undo/redo combinations. They are
// accepted in any state; a draft mid-gesture is unaffected.
func registerShortcuts(w fyne.Window, board *BoardWidget, ctrl *Controller) {
	m := board.Machine()

	undo := func(fyne.Shortcut) {
		m.Undo()
		board.Refresh()
	}
	redo := func(fyne.Shortcut) {
		m.Redo()
		board.Refresh()
	}

	c := w.Canvas()
	c.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyZ, Modifier: fyne.KeyModifierShortcutDefault}, undo)
	c.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyZ, Modifier: fyne.KeyModifierShortcutDefault | fyne.KeyModifierShift}, redo)
	c.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyY, Modifier: fyne.KeyModifierShortcutDefault}, redo)

	c.SetOnTypedKey(func(e *fyne.KeyEvent) {
		switch e.Name {
		case fyne.KeyDelete, fyne.KeyBackspace:
			ctrl.DeleteOrClear()
		}
	})
}
