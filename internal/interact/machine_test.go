package interact_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"InkBoard/internal/interact"
	"InkBoard/internal/state"
)

type fakeEnv struct {
	cursorHints []interact.Tool
}

func (e *fakeEnv) ViewportSize() (float64, float64) { return 800, 600 }
func (e *fakeEnv) SetCursorHint(t interact.Tool)    { e.cursorHints = append(e.cursorHints, t) }

func newMachine(t *testing.T) (*state.Scene, *state.History, *interact.Machine, *fakeEnv) {
	t.Helper()
	s := state.NewScene()
	h := state.NewHistory(s)
	env := &fakeEnv{}
	return s, h, interact.New(s, h, env, nil), env
}

func TestMachine_PenStrokeNoMovement(t *testing.T) {
	s, _, m, _ := newMachine(t)
	m.SetTool(interact.ToolPen)

	m.PointerDown(10, 10)
	m.PointerUp(10, 10)

	objects := s.Objects()
	require.Len(t, objects, 1)
	assert.Equal(t, state.TypeInk, objects[0].Type)
	assert.Equal(t, []float64{10, 10}, objects[0].Points, "motionless stroke commits exactly one point pair")
	_, drafting := m.Draft()
	assert.False(t, drafting)
}

func TestMachine_PenStrokeCollectsPoints(t *testing.T) {
	s, _, m, _ := newMachine(t)
	m.SetTool(interact.ToolPen)

	m.PointerDown(0, 0)
	m.PointerMove(1, 1)
	m.PointerMove(2, 2)
	m.PointerUp(3, 3)

	objects := s.Objects()
	require.Len(t, objects, 1)
	assert.Equal(t, []float64{0, 0, 1, 1, 2, 2, 3, 3}, objects[0].Points)
}

func TestMachine_RectangleClickCommitsMinimumSize(t *testing.T) {
	s, _, m, _ := newMachine(t)
	m.SetTool(interact.ToolAddRectangle)

	m.PointerDown(100, 100)
	m.PointerUp(100, 100)

	objects := s.Objects()
	require.Len(t, objects, 1)
	o := objects[0]
	assert.Equal(t, state.TypeShape, o.Type)
	assert.Equal(t, state.ShapeRectangle, o.ShapeName)
	assert.Equal(t, 100.0, o.X)
	assert.Equal(t, 100.0, o.Y)
	assert.Equal(t, state.ShapeMinWidth, o.Width)
	assert.Equal(t, state.ShapeMinHeight, o.Height)
	assert.Equal(t, o.ID, s.SelectedID(), "committed create-tool object stays selected")
}

func TestMachine_DraftSelectedWhileDragging(t *testing.T) {
	s, _, m, _ := newMachine(t)
	m.SetTool(interact.ToolAddOval)

	m.PointerDown(10, 20)
	draft, ok := m.Draft()
	require.True(t, ok)
	assert.Equal(t, draft.ID, s.SelectedID(), "selection follows the draft so handles show")
	assert.Equal(t, 0, s.Len(), "draft is not in the committed scene yet")
}

func TestMachine_ShapeResizeTracksPointer(t *testing.T) {
	s, _, m, _ := newMachine(t)
	m.SetTool(interact.ToolAddRectangle)

	m.PointerDown(10, 10)
	m.PointerMove(70, 50)
	draft, ok := m.Draft()
	require.True(t, ok)
	assert.Equal(t, 60.0, draft.Width)
	assert.Equal(t, 40.0, draft.Height)
	assert.Equal(t, 10.0, draft.X, "anchor does not move")
	assert.Equal(t, 10.0, draft.Y)

	m.PointerUp(70, 50)
	objects := s.Objects()
	require.Len(t, objects, 1)
	assert.Equal(t, 60.0, objects[0].Width)
}

func TestMachine_ReleasePositionIsFinalSize(t *testing.T) {
	s, _, m, _ := newMachine(t)
	m.SetTool(interact.ToolAddRectangle)

	m.PointerDown(10, 10)
	m.PointerMove(40, 40)
	m.PointerUp(90, 70) // release lands past the last move

	o := s.Objects()[0]
	assert.Equal(t, 80.0, o.Width)
	assert.Equal(t, 60.0, o.Height)
	assert.Equal(t, 10.0, o.X)
	assert.Equal(t, 10.0, o.Y)
}

func TestMachine_NegativeDragClampsToMinimum(t *testing.T) {
	s, _, m, _ := newMachine(t)
	m.SetTool(interact.ToolAddRectangle)

	m.PointerDown(100, 100)
	m.PointerMove(40, 60) // up-left of the anchor
	m.PointerUp(40, 60)

	o := s.Objects()[0]
	assert.Equal(t, 100.0, o.X)
	assert.Equal(t, 100.0, o.Y)
	assert.Equal(t, state.ShapeMinWidth, o.Width)
	assert.Equal(t, state.ShapeMinHeight, o.Height)
}

func TestMachine_TextDraft(t *testing.T) {
	s, _, m, _ := newMachine(t)
	m.SetTool(interact.ToolAddText)

	m.PointerDown(5, 5)
	m.PointerMove(6, 6) // barely moved: still clamped
	m.PointerUp(6, 6)

	o := s.Objects()[0]
	assert.Equal(t, state.TypeText, o.Type)
	assert.Equal(t, state.DefaultText, o.Text)
	assert.Equal(t, state.TextMinWidth, o.Width)
	assert.Equal(t, state.TextMinHeight, o.Height)
}

func TestMachine_PointerDownOnEmptyClearsSelection(t *testing.T) {
	s, _, m, _ := newMachine(t)
	m.SetTool(interact.ToolPen)
	o := state.NewShape(state.ShapeRectangle, 0, 0, "", 1)
	require.NoError(t, s.Add(o))
	s.Select(o.ID)

	m.PointerDown(500, 500)

	assert.Equal(t, state.NoSelection, s.SelectedID())
	_, drafting := m.Draft()
	assert.False(t, drafting, "clearing the selection does not start a draft")
	m.PointerUp(500, 500)
	assert.Equal(t, 1, s.Len(), "nothing committed by the clearing gesture")
}

func TestMachine_PointerDownOnSelectedDefersToHandles(t *testing.T) {
	s, _, m, _ := newMachine(t)
	o := state.NewShape(state.ShapeRectangle, 0, 0, "", 1)
	require.NoError(t, s.Add(o))
	s.Select(o.ID)
	m.HitTest = func(x, y float64) string { return o.ID }

	m.PointerDown(2, 2)

	assert.Equal(t, o.ID, s.SelectedID(), "selection survives")
	_, drafting := m.Draft()
	assert.False(t, drafting, "handle drags belong to the renderer")
}

func TestMachine_SelectToolPicksTopmost(t *testing.T) {
	s, _, m, _ := newMachine(t)
	m.SetTool(interact.ToolSelect)
	o := state.NewShape(state.ShapeRectangle, 0, 0, "", 1)
	require.NoError(t, s.Add(o))
	m.HitTest = func(x, y float64) string { return o.ID }

	m.PointerDown(2, 2)
	assert.Equal(t, o.ID, s.SelectedID())
}

func TestMachine_UnknownToolIgnored(t *testing.T) {
	_, _, m, _ := newMachine(t)
	m.SetTool(interact.ToolPen)

	m.SetTool(interact.Tool("laser"))

	assert.Equal(t, interact.ToolPen, m.Tool())
}

func TestMachine_ToolSwitchMidDraftCommits(t *testing.T) {
	s, _, m, _ := newMachine(t)
	m.SetTool(interact.ToolAddRectangle)
	m.PointerDown(10, 10)
	m.PointerMove(60, 60)

	m.SetTool(interact.ToolPen)

	objects := s.Objects()
	require.Len(t, objects, 1, "in-progress draft is committed, not dropped")
	assert.Equal(t, 50.0, objects[0].Width)
	_, drafting := m.Draft()
	assert.False(t, drafting)
	assert.Equal(t, interact.ToolPen, m.Tool())
}

func TestMachine_CursorHintFollowsTool(t *testing.T) {
	_, _, m, env := newMachine(t)

	m.SetTool(interact.ToolEraser)
	m.SetTool(interact.ToolAddText)

	assert.Equal(t, []interact.Tool{interact.ToolEraser, interact.ToolAddText}, env.cursorHints)
}

func TestMachine_DeleteSelected(t *testing.T) {
	s, _, m, _ := newMachine(t)
	o := state.NewShape(state.ShapeRectangle, 0, 0, "", 1)
	require.NoError(t, s.Add(o))
	s.Select(o.ID)

	assert.True(t, m.DeleteSelected())
	assert.Equal(t, 0, s.Len())
	assert.Equal(t, state.NoSelection, s.SelectedID())

	assert.False(t, m.DeleteSelected(), "no selection, nothing deleted")
}

func TestMachine_ClearAllDiscardsDraft(t *testing.T) {
	s, _, m, _ := newMachine(t)
	require.NoError(t, s.Add(state.NewShape(state.ShapeRectangle, 0, 0, "", 1)))
	m.SetTool(interact.ToolPen)
	m.PointerDown(1, 1)

	m.ClearAll()

	assert.Equal(t, 0, s.Len())
	_, drafting := m.Draft()
	assert.False(t, drafting)
}

func TestMachine_UndoRedoPassThrough(t *testing.T) {
	s, h, m, _ := newMachine(t)
	m.SetTool(interact.ToolPen)
	m.PointerDown(1, 1)
	m.PointerUp(2, 2)
	require.Equal(t, 1, s.Len())

	m.Undo()
	assert.Equal(t, 0, s.Len())
	assert.True(t, h.CanRedo())
	m.Redo()
	assert.Equal(t, 1, s.Len())
}

func TestMachine_RestyleSelection(t *testing.T) {
	s, _, m, _ := newMachine(t)
	o := state.NewShape(state.ShapeRectangle, 0, 0, "#1a1a1a", 2)
	require.NoError(t, s.Add(o))
	s.Select(o.ID)

	m.SetStrokeColor("#e03131")
	m.SetStrokeWidth(8)

	got, _ := s.Get(o.ID)
	assert.Equal(t, "#e03131", got.Stroke)
	assert.Equal(t, 8.0, got.StrokeWidth)

	// New drafts pick the style up too.
	s.Select(state.NoSelection)
	m.SetTool(interact.ToolPen)
	m.PointerDown(1, 1)
	draft, ok := m.Draft()
	require.True(t, ok)
	assert.Equal(t, "#e03131", draft.Stroke)
	assert.Equal(t, 8.0, draft.StrokeWidth)
}

func TestMachine_PointerClampedToViewport(t *testing.T) {
	s, _, m, _ := newMachine(t) // fakeEnv viewport is 800x600
	m.SetTool(interact.ToolPen)

	m.PointerDown(10, 10)
	m.PointerMove(900, -50)
	m.PointerUp(900, -50)

	o := s.Objects()[0]
	assert.Equal(t, []float64{10, 10, 800, 0}, o.Points, "drag outside the window pins to the canvas edge")
}

func TestMachine_EraserDraftsInk(t *testing.T) {
	s, _, m, _ := newMachine(t)
	m.SetTool(interact.ToolEraser)

	m.PointerDown(1, 1)
	m.PointerMove(2, 2)
	m.PointerUp(3, 3)

	o := s.Objects()[0]
	assert.Equal(t, state.TypeInk, o.Type)
	assert.Equal(t, state.InkEraser, o.Tool)
}
