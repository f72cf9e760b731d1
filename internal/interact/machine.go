// Package interact turns raw pointer gestures into scene mutations. It owns
// the active tool, the current drawing style, and the uncommitted draft
// object; the rendering layer stays a thin adapter on top.
package interact

import (
	"log/slog"

	"InkBoard/internal/state"
)

// Tool is the active toolbar mode.
type Tool string

const (
	ToolSelect       Tool = "select"
	ToolPen          Tool = "pen"
	ToolEraser       Tool = "eraser"
	ToolAddRectangle Tool = "addRectangle"
	ToolAddOval      Tool = "addOval"
	ToolAddText      Tool = "addText"
)

func knownTool(t Tool) bool {
	switch t {
	case ToolSelect, ToolPen, ToolEraser, ToolAddRectangle, ToolAddOval, ToolAddText:
		return true
	}
	return false
}

// Style is the stroke settings applied to new drafts.
type Style struct {
	StrokeColor string
	StrokeWidth float64
}

// Environment abstracts the display surface the machine runs against, so
// tests can drive it without a real window.
type Environment interface {
	ViewportSize() (w, h float64)
	SetCursorHint(t Tool)
}

// nullEnv is used when no environment is injected.
type nullEnv struct{}

func (nullEnv) ViewportSize() (float64, float64) { return 0, 0 }
func (nullEnv) SetCursorHint(Tool)               {}

// Machine is the pointer-driven interaction state machine. It has two
// states: idle (no draft) and drafting (m.draft != nil). All methods run on
// the single UI event loop; there is no internal locking.
type Machine struct {
	scene   *state.Scene
	history *state.History
	env     Environment
	log     *slog.Logger

	tool  Tool
	style Style
	draft *state.CanvasObject

	// anchorX/Y pin the top-left corner of a shape/text draft while the
	// pointer drags out its size.
	anchorX, anchorY float64

	// HitTest, when set by the renderer, maps a pointer position to the id
	// of the topmost object under it (or NoSelection). It decides whether a
	// pointer-down on an active selection belongs to that object's own
	// handle dragging, which the renderer owns.
	HitTest func(x, y float64) string
}

// New creates a machine over the scene/history pair. env and logger may be
// nil.
func New(scene *state.Scene, history *state.History, env Environment, logger *slog.Logger) *Machine {
	if env == nil {
		env = nullEnv{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Machine{
		scene:   scene,
		history: history,
		env:     env,
		log:     logger,
		tool:    ToolPen,
		style:   Style{StrokeColor: "#1a1a1a", StrokeWidth: 2},
	}
}

// SetEnvironment swaps the display environment in. The renderer is built
// after the machine, so wiring happens in two steps.
func (m *Machine) SetEnvironment(env Environment) {
	if env != nil {
		m.env = env
	}
}

// Tool returns the active tool.
func (m *Machine) Tool() Tool {
	return m.tool
}

// SetTool switches the active tool. An in-progress draft is committed
// first at its current geometry so user input is never silently lost.
// Unrecognized tools log a warning and change nothing.
func (m *Machine) SetTool(t Tool) {
	if !knownTool(t) {
		m.log.Warn("ignoring unknown tool", "tool", string(t))
		return
	}
	if m.draft != nil {
		m.commitDraft()
	}
	m.tool = t
	m.env.SetCursorHint(t)
}

// Style returns the current draft style.
func (m *Machine) Style() Style {
	return m.style
}

// SetStrokeColor updates the style for future drafts. With an active
// selection the selected object is restyled in place, which commits.
func (m *Machine) SetStrokeColor(c string) {
	m.style.StrokeColor = c
	if id := m.scene.SelectedID(); id != state.NoSelection {
		if err := m.scene.Update(id, state.Patch{Stroke: state.Str(c)}); err != nil {
			m.log.Debug("restyle skipped", "id", id, "err", err)
		}
	}
}

// SetStrokeWidth updates the style for future drafts, restyling the
// selection like SetStrokeColor.
func (m *Machine) SetStrokeWidth(w float64) {
	m.style.StrokeWidth = w
	if id := m.scene.SelectedID(); id != state.NoSelection {
		if err := m.scene.Update(id, state.Patch{StrokeWidth: state.Float(w)}); err != nil {
			m.log.Debug("restyle skipped", "id", id, "err", err)
		}
	}
}

// Draft returns a copy of the pending object, or false when idle. The
// renderer paints it on top of the committed scene.
func (m *Machine) Draft() (state.CanvasObject, bool) {
	if m.draft == nil {
		return state.CanvasObject{}, false
	}
	return m.draft.Clone(), true
}

// clampToViewport keeps pointer coordinates on the canvas. Drags can leave
// the window; the draft should not. A zero-sized viewport (headless tests,
// nullEnv) disables clamping.
func (m *Machine) clampToViewport(x, y float64) (float64, float64) {
	w, h := m.env.ViewportSize()
	if w > 0 {
		x = min(max(x, 0), w)
	}
	if h > 0 {
		y = min(max(y, 0), h)
	}
	return x, y
}

// PointerDown starts a gesture at canvas coordinates (x, y).
func (m *Machine) PointerDown(x, y float64) {
	x, y = m.clampToViewport(x, y)
	if m.draft != nil {
		// A stray second press mid-draft; treat like a move.
		m.PointerMove(x, y)
		return
	}

	if sel := m.scene.SelectedID(); sel != state.NoSelection {
		if m.HitTest != nil && m.HitTest(x, y) == sel {
			// The press landed on the selected object; its drag/resize
			// handles belong to the renderer, not to drafting.
			return
		}
		m.scene.Select(state.NoSelection)
		return
	}

	switch m.tool {
	case ToolSelect:
		if m.HitTest != nil {
			m.scene.Select(m.HitTest(x, y))
		}
	case ToolPen:
		d := state.NewInk(state.InkPen, x, y, m.style.StrokeColor, m.style.StrokeWidth)
		m.draft = &d
	case ToolEraser:
		d := state.NewInk(state.InkEraser, x, y, m.style.StrokeColor, m.style.StrokeWidth)
		m.draft = &d
	case ToolAddRectangle:
		m.startShapeDraft(state.NewShape(state.ShapeRectangle, x, y, m.style.StrokeColor, m.style.StrokeWidth), x, y)
	case ToolAddOval:
		m.startShapeDraft(state.NewShape(state.ShapeOval, x, y, m.style.StrokeColor, m.style.StrokeWidth), x, y)
	case ToolAddText:
		m.startShapeDraft(state.NewText(x, y, m.style.StrokeColor), x, y)
	default:
		m.log.Warn("pointer down with unknown tool", "tool", string(m.tool))
	}
}

func (m *Machine) startShapeDraft(d state.CanvasObject, x, y float64) {
	m.draft = &d
	m.anchorX, m.anchorY = x, y
	// Select immediately so the handles show while dragging out the size.
	m.scene.Select(d.ID)
}

// PointerMove extends the current draft. Idle moves are ignored.
func (m *Machine) PointerMove(x, y float64) {
	if m.draft == nil {
		return
	}
	x, y = m.clampToViewport(x, y)
	switch m.draft.Type {
	case state.TypeInk:
		m.draft.AppendPoint(x, y)
	case state.TypeShape, state.TypeText:
		// The anchor stays put; the pointer drags out width/height, which
		// SetSize clamps to the type minimum.
		m.draft.SetSize(x-m.anchorX, y-m.anchorY)
	}
}

// PointerUp ends the gesture, committing the draft into the scene. A
// release with no movement still commits: a click with a create tool yields
// a minimum-size object, a motionless pen stroke a single point pair.
func (m *Machine) PointerUp(x, y float64) {
	if m.draft == nil {
		return
	}
	x, y = m.clampToViewport(x, y)
	switch m.draft.Type {
	case state.TypeInk:
		// Only record the release point if the pointer actually moved.
		n := len(m.draft.Points)
		if x != m.draft.Points[n-2] || y != m.draft.Points[n-1] {
			m.draft.AppendPoint(x, y)
		}
	case state.TypeShape, state.TypeText:
		// The release position is the final resize; it can differ from the
		// last move event.
		m.draft.SetSize(x-m.anchorX, y-m.anchorY)
	}
	m.commitDraft()
}

func (m *Machine) commitDraft() {
	d := *m.draft
	m.draft = nil
	if err := m.scene.Add(d); err != nil {
		// Duplicate ids cannot happen with generated ids; log and drop
		// rather than take the session down.
		m.log.Error("draft commit failed", "id", d.ID, "err", err)
		if m.scene.SelectedID() == d.ID {
			m.scene.Select(state.NoSelection)
		}
	}
}

// DeleteSelected removes the selected object and reports whether anything
// was deleted. With no selection the caller may offer a clear-all instead;
// that confirmation flow belongs to the UI.
func (m *Machine) DeleteSelected() bool {
	id := m.scene.SelectedID()
	if id == state.NoSelection {
		return false
	}
	m.scene.Delete(id)
	return true
}

// ClearAll empties the scene, discarding any draft.
func (m *Machine) ClearAll() {
	m.draft = nil
	m.scene.Reset()
}

// Undo and Redo pass through to the history manager; they are accepted in
// any state.
func (m *Machine) Undo() { m.history.Undo() }
func (m *Machine) Redo() { m.history.Redo() }
