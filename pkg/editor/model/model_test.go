package model

import (
	"errors"
	"reflect"
	"testing"

	"kmap/pkg/editor/group"
	"kmap/pkg/editor/style"
	"kmap/pkg/engine/grid"
	"kmap/pkg/engine/palette"
)

func TestNew_Defaults(t *testing.T) {
	m := New()
	if m.VariableCount() != 4 {
		t.Errorf("VariableCount() = %d, want 4", m.VariableCount())
	}
	if got := m.Size(); got != (grid.Size{Cols: 4, Rows: 4}) {
		t.Errorf("Size() = %+v, want 4x4", got)
	}
	if m.CellSize() != DefaultCellSize {
		t.Errorf("CellSize() = %v, want %v", m.CellSize(), DefaultCellSize)
	}
	if m.Style() != style.Default() {
		t.Errorf("Style() = %+v, want default", m.Style())
	}
	cols, rows := m.AxisNames()
	if cols != "AB" || rows != "CD" {
		t.Errorf("AxisNames() = %q, %q, want AB, CD", cols, rows)
	}
}

func TestThreeVariableScenario(t *testing.T) {
	m := New()
	if err := m.ChangeVariableCount(3, []string{"A", "B", "C"}, true); err != nil {
		t.Fatalf("ChangeVariableCount(3) = %v", err)
	}
	if got := m.Size(); got != (grid.Size{Cols: 4, Rows: 2}) {
		t.Fatalf("Size() = %+v, want 4 cols x 2 rows", got)
	}
	cols, rows := m.AxisLabels()
	if !reflect.DeepEqual(cols, []string{"00", "01", "11", "10"}) {
		t.Errorf("column labels = %v", cols)
	}
	if !reflect.DeepEqual(rows, []string{"0", "1"}) {
		t.Errorf("row labels = %v", rows)
	}

	m.ToggleOutput(0, 0)
	if v, _ := m.Output(0, 0); v != 1 {
		t.Errorf("after first toggle Output(0,0) = %d, want 1", v)
	}
	m.ToggleOutput(0, 0)
	if v, _ := m.Output(0, 0); v != 0 {
		t.Errorf("after second toggle Output(0,0) = %d, want 0", v)
	}

	before := m.OutValues()
	m.ToggleOutput(5, 0)
	if !reflect.DeepEqual(before, m.OutValues()) {
		t.Error("ToggleOutput(5,0) changed the map")
	}
	if _, ok := m.Output(5, 0); ok {
		t.Error("Output(5,0) reported on grid")
	}
}

func TestChangeVariableCount_Errors(t *testing.T) {
	m := New()
	m.ToggleOutput(1, 1)
	m.AddGroup(grid.Cell{X: 0, Y: 0}, grid.Cell{X: 1, Y: 1}, palette.Red, group.SnapNearest)
	snap := m.Snapshot()

	if err := m.ChangeVariableCount(5, []string{"A", "B", "C", "D", "E"}, true); !errors.Is(err, grid.ErrInvalidVariableCount) {
		t.Errorf("ChangeVariableCount(5) = %v, want ErrInvalidVariableCount", err)
	}
	if err := m.ChangeVariableCount(3, []string{"A", "B"}, true); !errors.Is(err, ErrInvalidConfiguration) {
		t.Errorf("ChangeVariableCount(3, two names) = %v, want ErrInvalidConfiguration", err)
	}
	if !reflect.DeepEqual(snap, m.Snapshot()) {
		t.Error("model changed after rejected ChangeVariableCount")
	}
}

func TestChangeVariableCount_ResetGroups(t *testing.T) {
	m := New()
	m.AddGroup(grid.Cell{X: 0, Y: 0}, grid.Cell{X: 0, Y: 0}, palette.Red, group.SnapNearest)
	m.ToggleOutput(0, 0)

	if err := m.ChangeVariableCount(4, DefaultVarNames, false); err != nil {
		t.Fatal(err)
	}
	if m.GroupCount() != 1 {
		t.Errorf("GroupCount() = %d after keep, want 1", m.GroupCount())
	}
	if v, _ := m.Output(0, 0); v != 0 {
		t.Errorf("Output(0,0) = %d, want outputs zeroed", v)
	}

	if err := m.ChangeVariableCount(2, DefaultVarNames, true); err != nil {
		t.Fatal(err)
	}
	if m.GroupCount() != 0 {
		t.Errorf("GroupCount() = %d after reset, want 0", m.GroupCount())
	}
}

func TestTopGroupAt(t *testing.T) {
	m := New()
	if _, i, ok := m.TopGroupAt(0, 0); ok || i != -1 {
		t.Errorf("TopGroupAt on empty map = %d, %v, want -1, false", i, ok)
	}

	big := m.AddGroup(grid.Cell{X: 0, Y: 0}, grid.Cell{X: 3, Y: 3}, palette.Red, group.SnapNearest)
	small := m.AddGroup(grid.Cell{X: 3, Y: 0}, grid.Cell{X: 0, Y: 0}, palette.Blue, group.SnapNearest)

	g, i, ok := m.TopGroupAt(0, 0)
	if !ok || i != 1 || g != small {
		t.Errorf("TopGroupAt(0,0) = %+v, %d, %v, want most recent group", g, i, ok)
	}
	g, i, ok = m.TopGroupAt(1, 2)
	if !ok || i != 0 || g != big {
		t.Errorf("TopGroupAt(1,2) = %+v, %d, %v, want first group", g, i, ok)
	}

	if err := m.ChangeVariableCount(4, DefaultVarNames, true); err != nil {
		t.Fatal(err)
	}
	m.AddGroup(grid.Cell{X: 0, Y: 0}, grid.Cell{X: 0, Y: 0}, palette.Red, group.SnapNearest)
	if _, _, ok := m.TopGroupAt(2, 2); ok {
		t.Error("TopGroupAt(2,2) found a group, want none")
	}
}

func TestReplaceAndRemoveLastGroup(t *testing.T) {
	m := New()
	if _, ok := m.ReplaceLastGroup(grid.Cell{}, grid.Cell{}, palette.Red, group.SnapNearest); ok {
		t.Error("ReplaceLastGroup on empty map succeeded")
	}
	m.AddGroup(grid.Cell{X: 1, Y: 1}, grid.Cell{X: 1, Y: 1}, palette.Red, group.SnapNearest)
	g, ok := m.ReplaceLastGroup(grid.Cell{X: 1, Y: 1}, grid.Cell{X: 2, Y: 2}, palette.Red, group.SnapNearest)
	if !ok || g.Width != 2 || g.Height != 2 {
		t.Errorf("ReplaceLastGroup = %+v, %v, want 2x2", g, ok)
	}
	if m.GroupCount() != 1 {
		t.Errorf("GroupCount() = %d, want 1", m.GroupCount())
	}
	if !m.RemoveLastGroup() || m.GroupCount() != 0 {
		t.Error("RemoveLastGroup did not drop the group")
	}
	if m.RemoveLastGroup() {
		t.Error("RemoveLastGroup on empty map succeeded")
	}
}

func TestRemoveGroupAt(t *testing.T) {
	m := New()
	m.AddGroup(grid.Cell{X: 0, Y: 0}, grid.Cell{X: 1, Y: 0}, palette.Red, group.SnapNearest)
	m.AddGroup(grid.Cell{X: 1, Y: 0}, grid.Cell{X: 1, Y: 1}, palette.Blue, group.SnapNearest)

	if !m.RemoveGroupAt(1, 0) {
		t.Fatal("RemoveGroupAt(1,0) = false")
	}
	groups := m.Groups()
	if len(groups) != 1 || groups[0].Color != palette.Red {
		t.Errorf("Groups() = %+v, want only the red group", groups)
	}
	if m.RemoveGroupAt(3, 3) {
		t.Error("RemoveGroupAt(3,3) removed a group")
	}
	m.ClearGroups()
	if m.GroupCount() != 0 {
		t.Error("ClearGroups left groups behind")
	}
}

func TestSetOutputIgnoresInvalid(t *testing.T) {
	m := New()
	m.SetOutput(0, 0, 2)
	m.SetOutput(-1, 0, 1)
	m.SetOutput(1, 2, 1)
	want := [][]int{{0, 0, 0, 0}, {0, 0, 0, 0}, {0, 1, 0, 0}, {0, 0, 0, 0}}
	if got := m.OutValues(); !reflect.DeepEqual(got, want) {
		t.Errorf("OutValues() = %v, want %v", got, want)
	}
}

func TestRestore(t *testing.T) {
	m := New()
	m.SetPosition(grid.Point{X: 10, Y: 20})
	s := Snapshot{
		VariableCount: 2,
		VarNames:      []string{"X", "Y"},
		OutValues:     [][]int{{1, 0}, {0, 1}},
		Groups:        []group.Group{{X: 1, Y: 1, Width: 2, Height: 1, Color: palette.Green}},
		Style:         style.Light(),
	}
	if err := m.Restore(s); err != nil {
		t.Fatalf("Restore() = %v", err)
	}
	if !reflect.DeepEqual(m.Snapshot(), s) {
		t.Errorf("Snapshot() = %+v, want %+v", m.Snapshot(), s)
	}
	if m.Position() != (grid.Point{X: 10, Y: 20}) {
		t.Errorf("Restore moved the map to %v", m.Position())
	}

	bad := s
	bad.OutValues = [][]int{{1, 0}}
	if err := m.Restore(bad); !errors.Is(err, ErrInvalidConfiguration) {
		t.Errorf("Restore(short outValues) = %v, want ErrInvalidConfiguration", err)
	}
	bad = s
	bad.Groups = []group.Group{{X: 2, Y: 0, Width: 1, Height: 1}}
	if err := m.Restore(bad); !errors.Is(err, group.ErrInvalidGroup) {
		t.Errorf("Restore(bad group) = %v, want ErrInvalidGroup", err)
	}
	if !reflect.DeepEqual(m.Snapshot(), s) {
		t.Error("rejected Restore changed the model")
	}
}

func TestScreenToCell(t *testing.T) {
	m := New()
	m.SetPosition(grid.Point{X: 100, Y: 50})
	m.SetCellSize(20)
	// first cell starts one cell past the position
	if c := m.ScreenToCell(grid.Point{X: 125, Y: 75}); c != (grid.Cell{X: 0, Y: 0}) {
		t.Errorf("ScreenToCell = %v, want (0,0)", c)
	}
	if !m.OnGrid(grid.Point{X: 199, Y: 149}) {
		t.Error("OnGrid(last cell) = false")
	}
	if m.OnGrid(grid.Point{X: 110, Y: 75}) {
		t.Error("OnGrid(label column) = true")
	}
	m.SetCellSize(0)
	if m.CellSize() != 20 {
		t.Errorf("SetCellSize(0) changed size to %v", m.CellSize())
	}
}
