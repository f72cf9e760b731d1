package state

// maxHistoryEntries bounds the retained snapshot window. Once full, the
// oldest entry is dropped; undo simply bottoms out one step later.
const maxHistoryEntries = 200

// History layers linear undo/redo over a Scene by snapshotting the full
// object sequence at every committed mutation. Entry 0 is the scene as it
// was at construction (possibly empty), so undoing past the first edit is a
// no-op rather than an error.
type History struct {
	scene   *Scene
	entries [][]CanvasObject
	cursor  int

	// OnCommit, if set, receives a deep copy of each committed snapshot.
	// Persistence and the LAN viewer hang off this; it also fires after
	// undo/redo so the saved file always matches the screen.
	OnCommit func([]CanvasObject)

	restoring bool
}

// NewHistory wires a history manager onto the scene, seeding entry 0 with
// the scene's current contents and subscribing to its mutation hook.
func NewHistory(scene *Scene) *History {
	h := &History{scene: scene}
	h.entries = [][]CanvasObject{cloneObjects(scene.objects)}
	scene.SetOnChange(h.sceneChanged)
	return h
}

func (h *History) sceneChanged(origin Origin) {
	if origin == OriginRestore || h.restoring {
		return
	}
	h.commit()
}

// commit truncates any redo branch, appends a snapshot of the current
// scene, and advances the cursor to it. Standard linear-history discipline:
// once a new edit lands, the discarded future is unreachable.
func (h *History) commit() {
	h.entries = append(h.entries[:h.cursor+1], cloneObjects(h.scene.objects))
	h.cursor = len(h.entries) - 1
	if len(h.entries) > maxHistoryEntries {
		drop := len(h.entries) - maxHistoryEntries
		h.entries = h.entries[drop:]
		h.cursor -= drop
	}
	h.fireOnCommit()
}

func (h *History) fireOnCommit() {
	if h.OnCommit != nil {
		h.OnCommit(cloneObjects(h.entries[h.cursor]))
	}
}

// CanUndo reports whether an earlier snapshot exists.
func (h *History) CanUndo() bool {
	return h.cursor > 0
}

// CanRedo reports whether a later snapshot exists.
func (h *History) CanRedo() bool {
	return h.cursor < len(h.entries)-1
}

// Undo steps the scene back one snapshot. Silent no-op at the start.
func (h *History) Undo() {
	if !h.CanUndo() {
		return
	}
	h.cursor--
	h.restore()
}

// Redo steps the scene forward one snapshot. Silent no-op at the end.
func (h *History) Redo() {
	if !h.CanRedo() {
		return
	}
	h.cursor++
	h.restore()
}

func (h *History) restore() {
	h.restoring = true
	h.scene.replaceAll(h.entries[h.cursor], OriginRestore)
	h.restoring = false
	h.fireOnCommit()
}
