package input

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Device represents a physical input source.
type Device int

const (
	DeviceUnknown Device = iota
	DeviceKeyboard
	DeviceMouse
	DeviceTouch
)

// Action represents a high-level intent in the editor.
type Action int

const (
	ActionNone Action = iota

	// Groups
	ActionConfirm     // Finish the group being dragged
	ActionCancel      // Drop the group being dragged
	ActionClearGroups // Remove every group
	ActionNextColor   // Cycle the color of new groups
	ActionSelectColor // Jump to a palette slot, Intent.Index holds the slot
	ActionToggleSnap  // Switch between power-of-two and free-size groups

	// Map
	ActionVariables // Change the variable count, Intent.Index holds the count
	ActionZoomIn    // Increase cell size
	ActionZoomOut   // Decrease cell size

	// Files / meta
	ActionSave
	ActionExport
	ActionHelp
	ActionQuit
)

// Intent is the 4th-layer, high-level description of what the user wants to do.
type Intent struct {
	Action Action
	Index  int
}

// RawInput is the 1st-layer event emitted directly from an input device.
// Code is a device-specific identifier (e.g. "enter", "ctrl+s", "f2").
type RawInput struct {
	Device    Device
	Code      string
	Timestamp time.Time
}

// DebouncedInput is the 2nd-layer representation after debouncing/deduplication.
// Ebiten's just-pressed helpers already debounce keys, so this is a thin copy.
type DebouncedInput struct {
	Device Device
	Code   string
}

// NewDebouncedInput converts a raw event to a debounced event.
func NewDebouncedInput(raw RawInput) DebouncedInput {
	return DebouncedInput{
		Device: raw.Device,
		Code:   strings.ToLower(raw.Code),
	}
}

// binding is an action plus its fixed argument
type binding struct {
	action Action
	index  int
}

// reserved codes always keep their default binding
var reserved = map[string]bool{
	"enter":  true,
	"escape": true,
}

func defaultBindings() map[string]binding {
	return map[string]binding{
		// Confirm / cancel (reserved)
		"enter":  {ActionConfirm, 0},
		"space":  {ActionConfirm, 0},
		"escape": {ActionCancel, 0},

		// Groups
		"delete":    {ActionClearGroups, 0},
		"backspace": {ActionClearGroups, 0},
		"c":         {ActionNextColor, 0},
		"tab":       {ActionNextColor, 0},
		"1":         {ActionSelectColor, 0},
		"2":         {ActionSelectColor, 1},
		"3":         {ActionSelectColor, 2},
		"4":         {ActionSelectColor, 3},
		"5":         {ActionSelectColor, 4},
		"6":         {ActionSelectColor, 5},
		"7":         {ActionSelectColor, 6},
		"g":         {ActionToggleSnap, 0},

		// Variable count
		"f2": {ActionVariables, 2},
		"f3": {ActionVariables, 3},
		"f4": {ActionVariables, 4},

		// Zoom
		"=":               {ActionZoomIn, 0},
		"+":               {ActionZoomIn, 0},
		"numpad_add":      {ActionZoomIn, 0},
		"-":               {ActionZoomOut, 0},
		"numpad_subtract": {ActionZoomOut, 0},

		// Files / meta
		"ctrl+s": {ActionSave, 0},
		"s":      {ActionSave, 0},
		"ctrl+e": {ActionExport, 0},
		"p":      {ActionExport, 0},
		"?":      {ActionHelp, 0},
		"h":      {ActionHelp, 0},
		"q":      {ActionQuit, 0},
		"ctrl+q": {ActionQuit, 0},
	}
}

// bindings maps raw codes to actions (3rd-layer bindings).
// Multiple codes may point to the same Action.
var bindings = defaultBindings()

// MapToIntent is the 3rd+4th layer: it applies the current bindings to a
// debounced input and returns a high-level Intent.
func MapToIntent(ev DebouncedInput) Intent {
	if b, ok := bindings[ev.Code]; ok {
		return Intent{Action: b.action, Index: b.index}
	}
	return Intent{Action: ActionNone}
}

var actionNames = map[Action]string{
	ActionConfirm:     "Confirm",
	ActionCancel:      "Cancel",
	ActionClearGroups: "Clear Groups",
	ActionNextColor:   "Next Color",
	ActionSelectColor: "Select Color",
	ActionToggleSnap:  "Toggle Snap",
	ActionVariables:   "Variables",
	ActionZoomIn:      "Zoom In",
	ActionZoomOut:     "Zoom Out",
	ActionSave:        "Save",
	ActionExport:      "Export",
	ActionHelp:        "Help",
	ActionQuit:        "Quit",
}

// ActionName returns a human-friendly name for an action.
func ActionName(a Action) string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return "None"
}

// ParseAction resolves a config name such as "zoom_in" or "Zoom In"
func ParseAction(name string) (Action, error) {
	norm := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(name), "_", " "))
	for a, n := range actionNames {
		if strings.ToLower(n) == norm {
			return a, nil
		}
	}
	return ActionNone, fmt.Errorf("unknown action %q", name)
}

// GetBindingsByAction returns the current bindings grouped by action.
func GetBindingsByAction() map[Action][]string {
	result := make(map[Action][]string)
	for code, b := range bindings {
		result[b.action] = append(result[b.action], code)
	}
	// Stable ordering so the help line doesn't flicker.
	for act, codes := range result {
		sort.Strings(codes)
		result[act] = codes
	}
	return result
}

// indexed actions carry an argument in their binding and are rebound one
// index at a time, e.g. "variables_3" or "select_color_2"
var indexed = map[Action]func(n int) (int, bool){
	ActionVariables:   func(n int) (int, bool) { return n, n >= 2 && n <= 4 },
	ActionSelectColor: func(n int) (int, bool) { return n - 1, n >= 1 },
}

// ParseBinding resolves a config binding name into an action and its index.
// Indexed actions need a numeric suffix: "variables_3" is the F3 binding and
// "select_color_1" the first palette slot.
func ParseBinding(name string) (Action, int, error) {
	if act, err := ParseAction(name); err == nil {
		if _, ok := indexed[act]; ok {
			return ActionNone, 0, fmt.Errorf("action %q needs an index, e.g. %s_2", name, strings.TrimSpace(name))
		}
		return act, 0, nil
	}
	trimmed := strings.TrimSpace(name)
	cut := strings.LastIndexAny(trimmed, "_ ")
	if cut < 0 {
		return ActionNone, 0, fmt.Errorf("unknown action %q", name)
	}
	act, err := ParseAction(trimmed[:cut])
	if err != nil {
		return ActionNone, 0, fmt.Errorf("unknown action %q", name)
	}
	toIndex, ok := indexed[act]
	if !ok {
		return ActionNone, 0, fmt.Errorf("action %q takes no index", trimmed[:cut])
	}
	n, err := strconv.Atoi(trimmed[cut+1:])
	if err != nil {
		return ActionNone, 0, fmt.Errorf("bad index in %q: %w", name, err)
	}
	idx, ok := toIndex(n)
	if !ok {
		return ActionNone, 0, fmt.Errorf("index %d out of range in %q", n, name)
	}
	return act, idx, nil
}

// SetSingleBinding replaces all bindings for the given action with a single code.
// Reserved codes are neither removed nor rebound.
func SetSingleBinding(action Action, code string) {
	setBinding(binding{action: action}, func(b binding) bool { return b.action == action }, code)
}

// SetIndexedBinding replaces the bindings of one index of an indexed action,
// leaving its other indexes alone.
func SetIndexedBinding(action Action, index int, code string) {
	b := binding{action: action, index: index}
	setBinding(b, func(other binding) bool { return other == b }, code)
}

func setBinding(b binding, replaces func(binding) bool, code string) {
	for c, old := range bindings {
		if reserved[c] {
			continue
		}
		if replaces(old) {
			delete(bindings, c)
		}
	}
	code = strings.ToLower(code)
	if code != "" && !reserved[code] {
		bindings[code] = b
	}
}

// ApplyBindings rebinds actions from a name -> code table, as read from config
func ApplyBindings(table map[string]string) error {
	names := make([]string, 0, len(table))
	for name := range table {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		act, idx, err := ParseBinding(name)
		if err != nil {
			return err
		}
		if _, ok := indexed[act]; ok {
			SetIndexedBinding(act, idx, table[name])
		} else {
			SetSingleBinding(act, table[name])
		}
	}
	return nil
}

// ResetBindings restores the default table
func ResetBindings() {
	bindings = defaultBindings()
}
