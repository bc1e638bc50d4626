package input

import (
	"testing"
	"time"
)

func intentFor(code string) Intent {
	return MapToIntent(NewDebouncedInput(RawInput{Device: DeviceKeyboard, Code: code, Timestamp: time.Now()}))
}

func TestMapToIntent(t *testing.T) {
	defer ResetBindings()

	tests := []struct {
		code  string
		want  Action
		index int
	}{
		{"enter", ActionConfirm, 0},
		{"Escape", ActionCancel, 0},
		{"3", ActionSelectColor, 2},
		{"f3", ActionVariables, 3},
		{"+", ActionZoomIn, 0},
		{"ctrl+s", ActionSave, 0},
		{"nothing", ActionNone, 0},
	}
	for _, tt := range tests {
		got := intentFor(tt.code)
		if got.Action != tt.want || got.Index != tt.index {
			t.Errorf("MapToIntent(%q) = %+v, want {%v %d}", tt.code, got, ActionName(tt.want), tt.index)
		}
	}
}

func TestSetSingleBinding(t *testing.T) {
	defer ResetBindings()

	SetSingleBinding(ActionSave, "w")
	if got := intentFor("w").Action; got != ActionSave {
		t.Errorf("w = %v, want Save", ActionName(got))
	}
	if got := intentFor("ctrl+s").Action; got != ActionNone {
		t.Errorf("old binding ctrl+s = %v, want None", ActionName(got))
	}
	codes := GetBindingsByAction()[ActionSave]
	if len(codes) != 1 || codes[0] != "w" {
		t.Errorf("Save codes = %v, want [w]", codes)
	}

	SetSingleBinding(ActionQuit, "enter")
	if got := intentFor("enter").Action; got != ActionConfirm {
		t.Errorf("reserved enter rebound to %v", ActionName(got))
	}
	SetSingleBinding(ActionConfirm, "x")
	if got := intentFor("enter").Action; got != ActionConfirm {
		t.Error("reserved enter lost its binding")
	}
}

func TestApplyBindings(t *testing.T) {
	defer ResetBindings()

	if err := ApplyBindings(map[string]string{"zoom_in": "i", "next color": "n"}); err != nil {
		t.Fatalf("ApplyBindings() = %v", err)
	}
	if got := intentFor("i").Action; got != ActionZoomIn {
		t.Errorf("i = %v, want Zoom In", ActionName(got))
	}
	if got := intentFor("n").Action; got != ActionNextColor {
		t.Errorf("n = %v, want Next Color", ActionName(got))
	}
	if err := ApplyBindings(map[string]string{"fly": "f"}); err == nil {
		t.Error("ApplyBindings(unknown action) = nil error")
	}
}

func TestApplyBindings_Indexed(t *testing.T) {
	defer ResetBindings()

	if err := ApplyBindings(map[string]string{"variables_3": "v", "select_color_2": "x"}); err != nil {
		t.Fatalf("ApplyBindings() = %v", err)
	}
	if got := intentFor("v"); got != (Intent{Action: ActionVariables, Index: 3}) {
		t.Errorf("v = %+v, want Variables index 3", got)
	}
	if got := intentFor("f3").Action; got != ActionNone {
		t.Errorf("f3 = %v, want unbound", ActionName(got))
	}
	for code, want := range map[string]int{"f2": 2, "f4": 4} {
		if got := intentFor(code); got != (Intent{Action: ActionVariables, Index: want}) {
			t.Errorf("%s = %+v, want Variables index %d kept", code, got, want)
		}
	}
	if got := intentFor("x"); got != (Intent{Action: ActionSelectColor, Index: 1}) {
		t.Errorf("x = %+v, want Select Color slot 1", got)
	}
	if got := intentFor("3"); got != (Intent{Action: ActionSelectColor, Index: 2}) {
		t.Errorf("3 = %+v, want the other slots kept", got)
	}

	for _, name := range []string{"variables", "select_color", "variables_5", "select_color_0", "variables_x", "zoom_in_2"} {
		if err := ApplyBindings(map[string]string{name: "z"}); err == nil {
			t.Errorf("ApplyBindings(%q) = nil error", name)
		}
	}
	if got := intentFor("f2").Action; got != ActionVariables {
		t.Errorf("f2 = %v after rejected bindings, want Variables", ActionName(got))
	}
}

func TestParseAction(t *testing.T) {
	for a, name := range actionNames {
		got, err := ParseAction(name)
		if err != nil || got != a {
			t.Errorf("ParseAction(%q) = %v, %v", name, got, err)
		}
	}
}

func TestPointerTracker_FirstPointerWins(t *testing.T) {
	tr := NewPointerTracker()

	if !tr.Down(MousePointer) {
		t.Fatal("first pointer rejected")
	}
	if tr.Down(PointerID(3)) {
		t.Error("second pointer took over the selection")
	}
	if tr.Move(PointerID(3)) {
		t.Error("move of ignored pointer accepted")
	}
	if !tr.Move(MousePointer) {
		t.Error("move of owning pointer rejected")
	}
	if tr.Pressed() != 2 {
		t.Errorf("Pressed() = %d, want 2", tr.Pressed())
	}
	if tr.Up(PointerID(3)) {
		t.Error("release of ignored pointer ended the selection")
	}
	if id, ok := tr.Active(); !ok || id != MousePointer {
		t.Errorf("Active() = %v, %v, want mouse", id, ok)
	}
	if !tr.Up(MousePointer) {
		t.Error("release of owning pointer did not end the selection")
	}
	if _, ok := tr.Active(); ok {
		t.Error("still tracking after release")
	}
	if !tr.Down(PointerID(3)) {
		t.Error("new press after release rejected")
	}
}

func TestPointerTracker_End(t *testing.T) {
	tr := NewPointerTracker()
	tr.Down(PointerID(0))
	tr.End()
	if tr.Move(PointerID(0)) {
		t.Error("move accepted after End")
	}
	if tr.Up(PointerID(0)) {
		t.Error("release after End reported as ending the selection")
	}
	if tr.Pressed() != 0 {
		t.Errorf("Pressed() = %d, want 0", tr.Pressed())
	}
}
