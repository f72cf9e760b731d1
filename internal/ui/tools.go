package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"InkBoard/internal/interact"
)

// Palette colors, as persisted stroke strings.
var paletteColors = []string{"#1a1a1a", "#e03131", "#2f9e44", "#1971c2", "#f08c00"}

// --- color swatch widget ---

type colorSwatch struct {
	widget.BaseWidget
	hex      string
	OnTapped func(hex string)
}

func newColorSwatch(hex string, tapped func(string)) *colorSwatch {
	s := &colorSwatch{hex: hex, OnTapped: tapped}
	s.ExtendBaseWidget(s)
	return s
}

func (s *colorSwatch) CreateRenderer() fyne.WidgetRenderer {
	rect := canvas.NewRectangle(parseColor(s.hex, color.Black))
	rect.SetMinSize(fyne.NewSize(28, 28))

	border := canvas.NewRectangle(color.Transparent)
	border.StrokeColor = color.Gray{Y: 150}
	border.StrokeWidth = 1

	return widget.NewSimpleRenderer(container.NewStack(rect, border))
}

func (s *colorSwatch) Tapped(_ *fyne.PointEvent) {
	if s.OnTapped != nil {
		s.OnTapped(s.hex)
	}
}

// --- the main toolbar ---

// NewToolbar builds the tool strip: tool modes, undo/redo, the color
// palette and a stroke-width slider.
func NewToolbar(board *BoardWidget, ctrl *Controller) fyne.CanvasObject {
	m := board.Machine()

	tb := widget.NewToolbar(
		widget.NewToolbarAction(theme.MailForwardIcon(), func() { m.SetTool(interact.ToolSelect) }),
		widget.NewToolbarAction(theme.DocumentCreateIcon(), func() { m.SetTool(interact.ToolPen) }),
		widget.NewToolbarAction(theme.ContentClearIcon(), func() { m.SetTool(interact.ToolEraser) }),
		widget.NewToolbarSeparator(),
		widget.NewToolbarAction(theme.CheckButtonIcon(), func() { m.SetTool(interact.ToolAddRectangle) }),
		widget.NewToolbarAction(theme.RadioButtonIcon(), func() { m.SetTool(interact.ToolAddOval) }),
		widget.NewToolbarAction(theme.DocumentIcon(), func() { m.SetTool(interact.ToolAddText) }),
		widget.NewToolbarSeparator(),
		widget.NewToolbarAction(theme.NavigateBackIcon(), func() {
			m.Undo()
			board.Refresh()
		}),
		widget.NewToolbarAction(theme.NavigateNextIcon(), func() {
			m.Redo()
			board.Refresh()
		}),
		widget.NewToolbarSeparator(),
		widget.NewToolbarAction(theme.DeleteIcon(), func() { ctrl.DeleteOrClear() }),
		widget.NewToolbarAction(theme.DocumentSaveIcon(), func() { ctrl.ExportPDF() }),
	)

	colorBox := container.NewHBox()
	for _, hex := range paletteColors {
		colorBox.Add(newColorSwatch(hex, func(hex string) {
			m.SetStrokeColor(hex)
			board.Refresh()
		}))
	}

	strokeSlider := widget.NewSlider(1.0, 24.0)
	strokeSlider.SetValue(m.Style().StrokeWidth)
	strokeSlider.OnChanged = func(val float64) {
		m.SetStrokeWidth(val)
		board.Refresh()
	}
	sliderBox := container.New(layout.NewGridWrapLayout(fyne.NewSize(140, 35)), strokeSlider)

	return container.NewHBox(
		tb,
		widget.NewSeparator(),
		widget.NewLabel("Color:"),
		colorBox,
		widget.NewSeparator(),
		widget.NewLabel("Size:"),
		sliderBox,
		layout.NewSpacer(),
	)
}
