package input

import (
	"github.com/zyedidia/generic/mapset"
)

// PointerID identifies a mouse or touch pointer. Touch ids from ebiten are
// non-negative, so the mouse uses -1.
type PointerID int

// MousePointer is the id used for the mouse
const MousePointer PointerID = -1

// Button distinguishes the primary and secondary mouse buttons
type Button int

const (
	ButtonPrimary Button = iota
	ButtonSecondary
)

// Modifiers is the modifier-key state at the time of a pointer event
type Modifiers struct {
	Shift bool
	Ctrl  bool
}

// PointerTracker decides which pointer owns the current selection. The
// first pointer to go down wins; others are ignored until it is released or
// the selection is ended.
type PointerTracker struct {
	active   PointerID
	tracking bool
	pressed  mapset.Set[PointerID]
}

// NewPointerTracker creates an idle tracker
func NewPointerTracker() *PointerTracker {
	return &PointerTracker{pressed: mapset.New[PointerID]()}
}

// Down registers a press and reports whether id now owns the selection
func (t *PointerTracker) Down(id PointerID) bool {
	t.pressed.Put(id)
	if t.tracking {
		return false
	}
	t.active = id
	t.tracking = true
	return true
}

// Move reports whether a move of id belongs to the selection
func (t *PointerTracker) Move(id PointerID) bool {
	return t.tracking && t.active == id
}

// Up registers a release and reports whether it ended the selection
func (t *PointerTracker) Up(id PointerID) bool {
	t.pressed.Remove(id)
	if !t.tracking || t.active != id {
		return false
	}
	t.tracking = false
	return true
}

// End stops tracking without waiting for a release. Pointers that are still
// down stay ignored until they are pressed again.
func (t *PointerTracker) End() {
	t.tracking = false
}

// Active returns the owning pointer, if any
func (t *PointerTracker) Active() (PointerID, bool) {
	return t.active, t.tracking
}

// Pressed returns how many pointers are currently down
func (t *PointerTracker) Pressed() int {
	return t.pressed.Size()
}
