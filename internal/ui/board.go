package ui

import (
	"image/color"
	"strconv"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"InkBoard/internal/interact"
	"InkBoard/internal/state"
)

// BoardWidget paints the committed scene plus the in-progress draft and
// feeds pointer events into the interaction machine.
type BoardWidget struct {
	widget.BaseWidget
	scene   *state.Scene
	history *state.History
	machine *interact.Machine
}

var _ fyne.Widget = (*BoardWidget)(nil)
var _ fyne.Draggable = (*BoardWidget)(nil)
var _ desktop.Mouseable = (*BoardWidget)(nil)

func NewBoardWidget(scene *state.Scene, history *state.History, machine *interact.Machine) *BoardWidget {
	b := &BoardWidget{scene: scene, history: history, machine: machine}
	machine.HitTest = b.hitTest
	b.ExtendBaseWidget(b)
	return b
}

// Machine exposes the interaction machine for the toolbar and shortcuts.
func (b *BoardWidget) Machine() *interact.Machine {
	return b.machine
}

// ViewportSize implements interact.Environment.
func (b *BoardWidget) ViewportSize() (float64, float64) {
	s := b.Size()
	return float64(s.Width), float64(s.Height)
}

// SetCursorHint implements interact.Environment. The actual cursor swap
// happens through the Cursor() callback below; a refresh is enough here.
func (b *BoardWidget) SetCursorHint(interact.Tool) {
	b.Refresh()
}

// Cursor implements desktop.Cursorable so the pointer reflects the tool.
func (b *BoardWidget) Cursor() desktop.Cursor {
	switch b.machine.Tool() {
	case interact.ToolAddText:
		return desktop.TextCursor
	case interact.ToolSelect:
		return desktop.DefaultCursor
	default:
		return desktop.CrosshairCursor
	}
}

func (b *BoardWidget) MouseDown(e *desktop.MouseEvent) {
	if e.Button != desktop.MouseButtonPrimary {
		return
	}
	b.machine.PointerDown(float64(e.Position.X), float64(e.Position.Y))
	b.Refresh()
}

func (b *BoardWidget) MouseUp(e *desktop.MouseEvent) {
	if e.Button != desktop.MouseButtonPrimary {
		return
	}
	b.machine.PointerUp(float64(e.Position.X), float64(e.Position.Y))
	b.Refresh()
}

func (b *BoardWidget) Dragged(e *fyne.DragEvent) {
	b.machine.PointerMove(float64(e.Position.X), float64(e.Position.Y))
	b.Refresh()
}

func (b *BoardWidget) DragEnd()                       {}
func (b *BoardWidget) MouseIn(*desktop.MouseEvent)    {}
func (b *BoardWidget) MouseOut()                      {}
func (b *BoardWidget) MouseMoved(*desktop.MouseEvent) {}

// hitTest returns the id of the topmost object under (x, y), honoring
// insertion order: later objects sit on top.
func (b *BoardWidget) hitTest(x, y float64) string {
	objects := b.scene.Objects()
	for i := len(objects) - 1; i >= 0; i-- {
		if objectContains(&objects[i], x, y) {
			return objects[i].ID
		}
	}
	return state.NoSelection
}

func objectContains(o *state.CanvasObject, x, y float64) bool {
	switch o.Type {
	case state.TypeInk:
		slack := o.StrokeWidth/2 + 4
		for i := 0; i+1 < len(o.Points); i += 2 {
			dx, dy := o.Points[i]-x, o.Points[i+1]-y
			if dx*dx+dy*dy <= slack*slack {
				return true
			}
		}
		return false
	default:
		return x >= o.X && x <= o.X+o.Width && y >= o.Y && y <= o.Y+o.Height
	}
}

func (b *BoardWidget) CreateRenderer() fyne.WidgetRenderer {
	r := &boardRenderer{board: b}
	r.background = canvas.NewRectangle(color.White)
	return r
}

type boardRenderer struct {
	board      *BoardWidget
	background *canvas.Rectangle
}

func (r *boardRenderer) Objects() []fyne.CanvasObject {
	out := []fyne.CanvasObject{r.background}

	objects := r.board.scene.Objects()
	if draft, ok := r.board.machine.Draft(); ok {
		objects = append(objects, draft)
	}
	for i := range objects {
		out = append(out, renderObject(&objects[i])...)
	}

	if sel := r.board.scene.SelectedID(); sel != state.NoSelection {
		if o, ok := r.board.scene.Get(sel); ok {
			out = append(out, selectionHandles(&o)...)
		} else if draft, ok := r.board.machine.Draft(); ok && draft.ID == sel {
			out = append(out, selectionHandles(&draft)...)
		}
	}
	return out
}

func renderObject(o *state.CanvasObject) []fyne.CanvasObject {
	switch o.Type {
	case state.TypeInk:
		return renderInk(o)
	case state.TypeShape:
		return []fyne.CanvasObject{renderShape(o)}
	case state.TypeText:
		return []fyne.CanvasObject{renderText(o)}
	}
	return nil
}

func renderInk(o *state.CanvasObject) []fyne.CanvasObject {
	c := parseColor(o.Stroke, color.Black)
	if o.Tool == state.InkEraser {
		c = color.White
	}
	var segs []fyne.CanvasObject
	for i := 2; i+1 < len(o.Points); i += 2 {
		line := canvas.NewLine(c)
		line.StrokeWidth = float32(o.StrokeWidth)
		line.Position1 = fyne.NewPos(float32(o.Points[i-2]), float32(o.Points[i-1]))
		line.Position2 = fyne.NewPos(float32(o.Points[i]), float32(o.Points[i+1]))
		segs = append(segs, line)
	}
	if len(segs) == 0 {
		// A single-point stroke still shows as a dot.
		dot := canvas.NewCircle(c)
		r := float32(o.StrokeWidth / 2)
		if r < 1 {
			r = 1
		}
		dot.Move(fyne.NewPos(float32(o.Points[0])-r, float32(o.Points[1])-r))
		dot.Resize(fyne.NewSize(2*r, 2*r))
		segs = append(segs, dot)
	}
	return segs
}

func renderShape(o *state.CanvasObject) fyne.CanvasObject {
	strokeColor := parseColor(o.Stroke, color.Black)
	fillColor := color.Color(color.Transparent)
	if o.Fill != "" {
		fillColor = parseColor(o.Fill, color.Transparent)
	}

	pos := fyne.NewPos(float32(o.X), float32(o.Y))
	size := fyne.NewSize(float32(o.Width), float32(o.Height))
	if o.ShapeName == state.ShapeOval {
		c := canvas.NewCircle(fillColor)
		c.StrokeColor = strokeColor
		c.StrokeWidth = float32(o.StrokeWidth)
		c.Move(pos)
		c.Resize(size)
		return c
	}
	rect := canvas.NewRectangle(fillColor)
	rect.StrokeColor = strokeColor
	rect.StrokeWidth = float32(o.StrokeWidth)
	rect.Move(pos)
	rect.Resize(size)
	return rect
}

func renderText(o *state.CanvasObject) fyne.CanvasObject {
	t := canvas.NewText(o.Text, parseColor(o.Fill, color.Black))
	t.TextSize = float32(o.FontSize)
	t.Move(fyne.NewPos(float32(o.X), float32(o.Y)))
	t.Resize(fyne.NewSize(float32(o.Width), float32(o.Height)))
	return t
}

// selectionHandles draws a dashed-look bounding border around the selected
// object so it is obvious which one edits will target.
func selectionHandles(o *state.CanvasObject) []fyne.CanvasObject {
	x, y, w, h := bounds(o)
	border := canvas.NewRectangle(color.Transparent)
	border.StrokeColor = color.NRGBA{R: 30, G: 120, B: 255, A: 255}
	border.StrokeWidth = 1
	border.Move(fyne.NewPos(float32(x-2), float32(y-2)))
	border.Resize(fyne.NewSize(float32(w+4), float32(h+4)))
	return []fyne.CanvasObject{border}
}

func bounds(o *state.CanvasObject) (x, y, w, h float64) {
	if o.Type != state.TypeInk {
		return o.X, o.Y, o.Width, o.Height
	}
	if len(o.Points) < 2 {
		return 0, 0, 0, 0
	}
	minX, minY := o.Points[0], o.Points[1]
	maxX, maxY := minX, minY
	for i := 2; i+1 < len(o.Points); i += 2 {
		if o.Points[i] < minX {
			minX = o.Points[i]
		}
		if o.Points[i] > maxX {
			maxX = o.Points[i]
		}
		if o.Points[i+1] < minY {
			minY = o.Points[i+1]
		}
		if o.Points[i+1] > maxY {
			maxY = o.Points[i+1]
		}
	}
	return minX, minY, maxX - minX, maxY - minY
}

// parseColor reads #rgb / #rrggbb strings, falling back when unparsable.
func parseColor(s string, fallback color.Color) color.Color {
	s = strings.TrimPrefix(s, "#")
	switch len(s) {
	case 3:
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	case 6:
	default:
		return fallback
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return fallback
	}
	return color.NRGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}
}

func (r *boardRenderer) Refresh() {
	canvas.Refresh(r.board)
}

func (r *boardRenderer) Layout(size fyne.Size) {
	r.background.Resize(size)
}

func (r *boardRenderer) MinSize() fyne.Size {
	return fyne.NewSize(400, 300)
}

func (r *boardRenderer) Destroy() {}
