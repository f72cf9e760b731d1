package state

import (
	"errors"
	"fmt"
)

var (
	// ErrDuplicateID is returned by Add when the id is already present.
	// Ids are uuid-generated so this indicates a caller bug; it is logged
	// and swallowed at the UI boundary rather than crashing the session.
	ErrDuplicateID = errors.New("scene: duplicate object id")

	// ErrNotFound is returned by Update when no object has the given id.
	ErrNotFound = errors.New("scene: object not found")
)

// Origin tags a scene change so the history layer can tell an external edit
// from its own restore.
type Origin int

const (
	// OriginEdit is a user/tool mutation; it produces a history entry.
	OriginEdit Origin = iota
	// OriginRestore is a history-driven replace; it must not re-commit.
	OriginRestore
)

// Scene owns the ordered object sequence and the selected id. All mutation
// goes through its methods; accessors hand out copies. Insertion order is
// paint and hit-test order, later objects on top.
type Scene struct {
	objects  []CanvasObject
	selected string
	onChange func(Origin)
}

func NewScene() *Scene {
	return &Scene{selected: NoSelection}
}

// SetOnChange registers the mutation hook. The history manager is the sole
// subscriber; it receives the origin of every successful mutation.
func (s *Scene) SetOnChange(fn func(Origin)) {
	s.onChange = fn
}

func (s *Scene) notify(origin Origin) {
	if s.onChange != nil {
		s.onChange(origin)
	}
}

// Objects returns a deep copy of the object sequence in paint order.
func (s *Scene) Objects() []CanvasObject {
	return cloneObjects(s.objects)
}

// Len reports the number of committed objects.
func (s *Scene) Len() int {
	return len(s.objects)
}

// SelectedID returns the selected object id, or NoSelection.
func (s *Scene) SelectedID() string {
	return s.selected
}

// Get returns a copy of the object with the given id.
func (s *Scene) Get(id string) (CanvasObject, bool) {
	for i := range s.objects {
		if s.objects[i].ID == id {
			return s.objects[i].Clone(), true
		}
	}
	return CanvasObject{}, false
}

// Add appends an object to the end of the sequence.
func (s *Scene) Add(o CanvasObject) error {
	for i := range s.objects {
		if s.objects[i].ID == o.ID {
			return fmt.Errorf("%w: %s", ErrDuplicateID, o.ID)
		}
	}
	s.objects = append(s.objects, o.Clone())
	s.notify(OriginEdit)
	return nil
}

// Update merges the patch into the object with the given id.
func (s *Scene) Update(id string, p Patch) error {
	for i := range s.objects {
		if s.objects[i].ID == id {
			p.apply(&s.objects[i])
			s.notify(OriginEdit)
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrNotFound, id)
}

// Delete removes the object with the given id, clearing the selection if it
// pointed at it. A missing id is a silent no-op: the object may have been
// removed between selection and edit.
func (s *Scene) Delete(id string) {
	for i := range s.objects {
		if s.objects[i].ID == id {
			s.objects = append(s.objects[:i], s.objects[i+1:]...)
			if s.selected == id {
				s.selected = NoSelection
			}
			s.notify(OriginEdit)
			return
		}
	}
}

// Select sets the selected id. The sentinel NoSelection clears the
// selection. Existence is deliberately not validated: selecting a stale id
// simply shows no handles. Selection is not part of history snapshots, so
// no change is notified.
func (s *Scene) Select(id string) {
	s.selected = id
}

// Reset empties the scene and clears the selection.
func (s *Scene) Reset() {
	s.objects = nil
	s.selected = NoSelection
	s.notify(OriginEdit)
}

// ReplaceAll swaps in a whole new object sequence, used for the initial
// load from persistence. The selection is left as-is.
func (s *Scene) ReplaceAll(objects []CanvasObject) {
	s.replaceAll(objects, OriginEdit)
}

// replaceAll is the shared implementation; the history manager calls it
// with OriginRestore so restores do not snowball into new commits.
func (s *Scene) replaceAll(objects []CanvasObject, origin Origin) {
	s.objects = cloneObjects(objects)
	s.notify(origin)
}
