package state_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"InkBoard/internal/state"
)

func TestScene_AddAppendsInOrder(t *testing.T) {
	s := state.NewScene()
	a := state.NewShape(state.ShapeRectangle, 0, 0, "", 1)
	b := state.NewShape(state.ShapeOval, 10, 10, "", 1)

	require.NoError(t, s.Add(a))
	require.NoError(t, s.Add(b))

	objects := s.Objects()
	require.Len(t, objects, 2)
	assert.Equal(t, a.ID, objects[0].ID)
	assert.Equal(t, b.ID, objects[1].ID)
}

func TestScene_AddDuplicateID(t *testing.T) {
	s := state.NewScene()
	o := state.NewShape(state.ShapeRectangle, 0, 0, "", 1)
	require.NoError(t, s.Add(o))

	err := s.Add(o)
	require.Error(t, err)
	assert.ErrorIs(t, err, state.ErrDuplicateID)
	assert.Equal(t, 1, s.Len())
}

func TestScene_UpdateMergesFields(t *testing.T) {
	s := state.NewScene()
	o := state.NewShape(state.ShapeRectangle, 0, 0, "#1a1a1a", 2)
	require.NoError(t, s.Add(o))

	err := s.Update(o.ID, state.Patch{
		X:      state.Float(50),
		Stroke: state.Str("#e03131"),
	})
	require.NoError(t, err)

	got, ok := s.Get(o.ID)
	require.True(t, ok)
	assert.Equal(t, 50.0, got.X)
	assert.Equal(t, "#e03131", got.Stroke)
	assert.Equal(t, 0.0, got.Y, "unpatched fields stay put")
}

func TestScene_UpdateReclampsSize(t *testing.T) {
	s := state.NewScene()
	o := state.NewText(0, 0, "")
	require.NoError(t, s.Add(o))

	err := s.Update(o.ID, state.Patch{Width: state.Float(1), Height: state.Float(-10)})
	require.NoError(t, err)

	got, _ := s.Get(o.ID)
	assert.Equal(t, state.TextMinWidth, got.Width)
	assert.Equal(t, state.TextMinHeight, got.Height)
}

func TestScene_UpdateMissing(t *testing.T) {
	s := state.NewScene()
	err := s.Update("nope", state.Patch{X: state.Float(1)})
	assert.ErrorIs(t, err, state.ErrNotFound)
}

func TestScene_DeletePreservesOrder(t *testing.T) {
	s := state.NewScene()
	a := state.NewShape(state.ShapeRectangle, 0, 0, "", 1)
	b := state.NewShape(state.ShapeOval, 1, 1, "", 1)
	c := state.NewText(2, 2, "")
	for _, o := range []state.CanvasObject{a, b, c} {
		require.NoError(t, s.Add(o))
	}
	s.Select(b.ID)

	s.Delete(b.ID)

	objects := s.Objects()
	require.Len(t, objects, 2)
	assert.Equal(t, a.ID, objects[0].ID)
	assert.Equal(t, c.ID, objects[1].ID)
	assert.Equal(t, state.NoSelection, s.SelectedID(), "deleting the selected object clears selection")
}

func TestScene_DeleteMissingIsNoOp(t *testing.T) {
	s := state.NewScene()
	require.NoError(t, s.Add(state.NewShape(state.ShapeRectangle, 0, 0, "", 1)))

	s.Delete("absent")
	assert.Equal(t, 1, s.Len())
}

func TestScene_DeleteOtherKeepsSelection(t *testing.T) {
	s := state.NewScene()
	a := state.NewShape(state.ShapeRectangle, 0, 0, "", 1)
	b := state.NewShape(state.ShapeOval, 1, 1, "", 1)
	require.NoError(t, s.Add(a))
	require.NoError(t, s.Add(b))
	s.Select(a.ID)

	s.Delete(b.ID)
	assert.Equal(t, a.ID, s.SelectedID())
}

func TestScene_SelectStaleIDAllowed(t *testing.T) {
	s := state.NewScene()
	s.Select("never-existed")
	assert.Equal(t, "never-existed", s.SelectedID())

	s.Select(state.NoSelection)
	assert.Equal(t, state.NoSelection, s.SelectedID())
}

func TestScene_Reset(t *testing.T) {
	s := state.NewScene()
	o := state.NewShape(state.ShapeRectangle, 0, 0, "", 1)
	require.NoError(t, s.Add(o))
	s.Select(o.ID)

	s.Reset()

	assert.Equal(t, 0, s.Len())
	assert.Equal(t, state.NoSelection, s.SelectedID())
}

func TestScene_ReplaceAllKeepsSelection(t *testing.T) {
	s := state.NewScene()
	a := state.NewShape(state.ShapeRectangle, 0, 0, "", 1)
	require.NoError(t, s.Add(a))
	s.Select(a.ID)

	b := state.NewShape(state.ShapeOval, 5, 5, "", 1)
	s.ReplaceAll([]state.CanvasObject{b})

	require.Equal(t, 1, s.Len())
	assert.Equal(t, a.ID, s.SelectedID(), "replaceAll does not touch selection")
}

func TestScene_ObjectsReturnsCopies(t *testing.T) {
	s := state.NewScene()
	require.NoError(t, s.Add(state.NewInk(state.InkPen, 1, 1, "", 1)))

	objects := s.Objects()
	objects[0].AppendPoint(9, 9)
	objects[0].X = 42

	fresh := s.Objects()
	assert.Equal(t, []float64{1, 1}, fresh[0].Points)
	assert.Equal(t, 0.0, fresh[0].X)
}

func TestScene_NotifiesOnMutations(t *testing.T) {
	s := state.NewScene()
	var count int
	s.SetOnChange(func(state.Origin) { count++ })

	o := state.NewShape(state.ShapeRectangle, 0, 0, "", 1)
	require.NoError(t, s.Add(o))
	require.NoError(t, s.Update(o.ID, state.Patch{X: state.Float(1)}))
	s.Select(o.ID) // selection changes are not history-relevant
	s.Delete(o.ID)
	s.Reset()
	s.ReplaceAll(nil)

	assert.Equal(t, 5, count)
}

func TestScene_FailedMutationsDoNotNotify(t *testing.T) {
	s := state.NewScene()
	o := state.NewShape(state.ShapeRectangle, 0, 0, "", 1)
	require.NoError(t, s.Add(o))

	var count int
	s.SetOnChange(func(state.Origin) { count++ })

	_ = s.Add(o)                         // duplicate
	_ = s.Update("ghost", state.Patch{}) // not found
	s.Delete("ghost")                    // silent no-op

	assert.Equal(t, 0, count)
}
