package ebiten

import (
	"github.com/hajimehoshi/ebiten/v2"

	"kmap/pkg/engine/grid"
	"kmap/pkg/engine/input"
)

var (
	cursorPosition       = ebiten.CursorPosition
	isMouseButtonPressed = ebiten.IsMouseButtonPressed
	isKeyPressed         = ebiten.IsKeyPressed
	appendTouchIDs       = ebiten.AppendTouchIDs
	touchPosition        = ebiten.TouchPosition
)

// SetInputForTest replaces input functions during tests and returns a function
// that puts the real ones back.
func SetInputForTest(
	cursor func() (int, int),
	mouse func(ebiten.MouseButton) bool,
	key func(ebiten.Key) bool,
	touches func([]ebiten.TouchID) []ebiten.TouchID,
	touchPos func(ebiten.TouchID) (int, int),
) func() {
	oldCursor := cursorPosition
	oldMouse := isMouseButtonPressed
	oldKey := isKeyPressed
	oldTouches := appendTouchIDs
	oldTouchPos := touchPosition
	cursorPosition = cursor
	isMouseButtonPressed = mouse
	isKeyPressed = key
	appendTouchIDs = touches
	touchPosition = touchPos
	return func() {
		cursorPosition = oldCursor
		isMouseButtonPressed = oldMouse
		isKeyPressed = oldKey
		appendTouchIDs = oldTouches
		touchPosition = oldTouchPos
	}
}

// keyCode names an ebiten key the way bindings spell it. shifted, when set,
// replaces code while shift is held.
type keyCode struct {
	key     ebiten.Key
	code    string
	shifted string
}

var keyCodes = []keyCode{
	{ebiten.KeyEnter, "enter", ""},
	{ebiten.KeyNumpadEnter, "enter", ""},
	{ebiten.KeyEscape, "escape", ""},
	{ebiten.KeySpace, "space", ""},
	{ebiten.KeyTab, "tab", ""},
	{ebiten.KeyDelete, "delete", ""},
	{ebiten.KeyBackspace, "backspace", ""},
	{ebiten.KeyEqual, "=", "+"},
	{ebiten.KeyMinus, "-", ""},
	{ebiten.KeyNumpadAdd, "numpad_add", ""},
	{ebiten.KeyNumpadSubtract, "numpad_subtract", ""},
	{ebiten.KeySlash, "/", "?"},
	{ebiten.KeyF1, "f1", ""},
	{ebiten.KeyF2, "f2", ""},
	{ebiten.KeyF3, "f3", ""},
	{ebiten.KeyF4, "f4", ""},
	{ebiten.KeyDigit1, "1", ""},
	{ebiten.KeyDigit2, "2", ""},
	{ebiten.KeyDigit3, "3", ""},
	{ebiten.KeyDigit4, "4", ""},
	{ebiten.KeyDigit5, "5", ""},
	{ebiten.KeyDigit6, "6", ""},
	{ebiten.KeyDigit7, "7", ""},
	{ebiten.KeyDigit8, "8", ""},
	{ebiten.KeyDigit9, "9", ""},
	{ebiten.KeyA, "a", ""},
	{ebiten.KeyB, "b", ""},
	{ebiten.KeyC, "c", ""},
	{ebiten.KeyD, "d", ""},
	{ebiten.KeyE, "e", ""},
	{ebiten.KeyF, "f", ""},
	{ebiten.KeyG, "g", ""},
	{ebiten.KeyH, "h", ""},
	{ebiten.KeyI, "i", ""},
	{ebiten.KeyJ, "j", ""},
	{ebiten.KeyK, "k", ""},
	{ebiten.KeyL, "l", ""},
	{ebiten.KeyM, "m", ""},
	{ebiten.KeyN, "n", ""},
	{ebiten.KeyO, "o", ""},
	{ebiten.KeyP, "p", ""},
	{ebiten.KeyQ, "q", ""},
	{ebiten.KeyR, "r", ""},
	{ebiten.KeyS, "s", ""},
	{ebiten.KeyT, "t", ""},
	{ebiten.KeyU, "u", ""},
	{ebiten.KeyV, "v", ""},
	{ebiten.KeyW, "w", ""},
	{ebiten.KeyX, "x", ""},
	{ebiten.KeyY, "y", ""},
	{ebiten.KeyZ, "z", ""},
}

var mouseButtons = [...]struct {
	mouse  ebiten.MouseButton
	button input.Button
}{
	{ebiten.MouseButtonLeft, input.ButtonPrimary},
	{ebiten.MouseButtonRight, input.ButtonSecondary},
}

// inputState remembers last tick's device state so presses and releases
// are seen exactly once
type inputState struct {
	mouseDown [len(mouseButtons)]bool
	pressed   int // mouseButtons index that began the current press, -1 when none
	cursor    grid.Point
	keysDown  map[ebiten.Key]bool
	touches   map[ebiten.TouchID]grid.Point
	touchBuf  []ebiten.TouchID
}

func newInputState() inputState {
	return inputState{
		pressed:  -1,
		keysDown: make(map[ebiten.Key]bool),
		touches:  make(map[ebiten.TouchID]grid.Point),
	}
}

func modifiers() input.Modifiers {
	return input.Modifiers{
		Shift: isKeyPressed(ebiten.KeyShift),
		Ctrl:  isKeyPressed(ebiten.KeyControl),
	}
}

// handleInput feeds one tick of mouse, touch and keyboard input to the editor
func (w *Window) handleInput() {
	w.handleMouse()
	w.handleTouches()
	for _, intent := range w.checkKeys() {
		w.editor.Handle(intent)
	}
}

func (w *Window) handleMouse() {
	x, y := cursorPosition()
	pos := grid.Point{X: float64(x), Y: float64(y)}
	if pos != w.input.cursor {
		w.input.cursor = pos
		w.editor.PointerMove(input.MousePointer, pos)
	}

	mods := modifiers()
	for i, b := range mouseButtons {
		down := isMouseButtonPressed(b.mouse)
		was := w.input.mouseDown[i]
		w.input.mouseDown[i] = down
		// Other buttons are ignored until the first one is released.
		switch {
		case down && !was && w.input.pressed < 0:
			w.input.pressed = i
			w.editor.PointerDown(input.MousePointer, pos, b.button, mods)
		case !down && was && w.input.pressed == i:
			w.input.pressed = -1
			w.editor.PointerUp(input.MousePointer, pos)
		}
	}
}

func (w *Window) handleTouches() {
	w.input.touchBuf = appendTouchIDs(w.input.touchBuf[:0])
	current := make(map[ebiten.TouchID]grid.Point, len(w.input.touchBuf))
	for _, id := range w.input.touchBuf {
		x, y := touchPosition(id)
		pos := grid.Point{X: float64(x), Y: float64(y)}
		current[id] = pos

		prev, known := w.input.touches[id]
		switch {
		case !known:
			w.editor.PointerDown(input.PointerID(id), pos, input.ButtonPrimary, input.Modifiers{})
		case prev != pos:
			w.editor.PointerMove(input.PointerID(id), pos)
		}
	}
	for id, pos := range w.input.touches {
		if _, ok := current[id]; !ok {
			w.editor.PointerUp(input.PointerID(id), pos)
		}
	}
	w.input.touches = current
}

// checkKeys returns the intents for keys pressed since the last tick
func (w *Window) checkKeys() []input.Intent {
	mods := modifiers()
	var intents []input.Intent
	for _, k := range keyCodes {
		down := isKeyPressed(k.key)
		was := w.input.keysDown[k.key]
		w.input.keysDown[k.key] = down
		if !down || was {
			continue
		}

		code := k.code
		if mods.Shift && k.shifted != "" {
			code = k.shifted
		}
		if mods.Ctrl {
			code = "ctrl+" + code
		}
		intent := input.MapToIntent(input.NewDebouncedInput(input.RawInput{
			Device: input.DeviceKeyboard,
			Code:   code,
		}))
		if intent.Action != input.ActionNone {
			intents = append(intents, intent)
		}
	}
	return intents
}
