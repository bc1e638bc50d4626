// Package model owns the state of one Karnaugh map: its variables, output
// bits and the ordered list of groups drawn over it.
package model

import (
	"errors"
	"fmt"
	"strings"

	"kmap/pkg/editor/group"
	"kmap/pkg/editor/style"
	"kmap/pkg/engine/grid"
	"kmap/pkg/engine/palette"
)

// ErrInvalidConfiguration is returned when too few variable names are supplied
var ErrInvalidConfiguration = errors.New("invalid configuration")

// Defaults used by New
const (
	DefaultVariableCount = 4
	DefaultCellSize      = 16.0
)

// DefaultVarNames are used when no names are given
var DefaultVarNames = []string{"A", "B", "C", "D"}

// Model represents a Karnaugh map with encapsulated state
type Model struct {
	variableCount int
	varNames      []string
	size          grid.Size
	xBits         int
	yBits         int

	// outValues is indexed [row][col]
	outValues [][]int
	groups    []group.Group

	style    style.Style
	position grid.Point
	cellSize float64
}

// New creates a 4-variable map at the origin with the default style
func New() *Model {
	m := &Model{
		style:    style.Default(),
		cellSize: DefaultCellSize,
	}
	if err := m.ChangeVariableCount(DefaultVariableCount, DefaultVarNames, true); err != nil {
		panic("model: default configuration rejected: " + err.Error())
	}
	return m
}

// ChangeVariableCount rebuilds the grid for count variables named by names.
// Output values are reset to 0; groups are dropped when resetGroups is set.
// On error the model is left unchanged.
func (m *Model) ChangeVariableCount(count int, names []string, resetGroups bool) error {
	xBits, yBits, err := grid.VarBits(count)
	if err != nil {
		return err
	}
	if len(names) < count {
		return fmt.Errorf("%w: %d variables need %d names, got %d", ErrInvalidConfiguration, count, count, len(names))
	}
	size := grid.Size{Cols: 1 << xBits, Rows: 1 << yBits}

	m.variableCount = count
	m.varNames = append([]string(nil), names...)
	m.size = size
	m.xBits = xBits
	m.yBits = yBits
	m.outValues = zeroMatrix(size)
	if resetGroups {
		m.groups = nil
	}
	return nil
}

func zeroMatrix(size grid.Size) [][]int {
	rows := make([][]int, size.Rows)
	for y := range rows {
		rows[y] = make([]int, size.Cols)
	}
	return rows
}

// VariableCount returns the number of input variables
func (m *Model) VariableCount() int {
	return m.variableCount
}

// VarNames returns a copy of the variable names
func (m *Model) VarNames() []string {
	return append([]string(nil), m.varNames...)
}

// Size returns the grid dimensions
func (m *Model) Size() grid.Size {
	return m.size
}

// AxisNames returns the joined variable names labelling the columns and rows
func (m *Model) AxisNames() (cols, rows string) {
	cols = strings.Join(m.varNames[:m.xBits], "")
	rows = strings.Join(m.varNames[m.xBits:m.xBits+m.yBits], "")
	return cols, rows
}

// AxisLabels returns the Gray-order value labels of the columns and rows
func (m *Model) AxisLabels() (cols, rows []string) {
	cols, rows, _ = grid.AxisLabels(m.variableCount)
	return cols, rows
}

// ToggleOutput flips the bit at column x, row y. Positions outside the grid are ignored.
func (m *Model) ToggleOutput(x, y int) {
	if !m.size.Contains(x, y) {
		return
	}
	m.outValues[y][x] = (m.outValues[y][x] + 1) % 2
}

// Output returns the bit at column x, row y and whether the position is on the grid
func (m *Model) Output(x, y int) (int, bool) {
	if !m.size.Contains(x, y) {
		return 0, false
	}
	return m.outValues[y][x], true
}

// SetOutput sets the bit at column x, row y. Out of range positions and values other than 0 or 1 are ignored.
func (m *Model) SetOutput(x, y, v int) {
	if !m.size.Contains(x, y) || (v != 0 && v != 1) {
		return
	}
	m.outValues[y][x] = v
}

// OutValues returns a copy of the output matrix, indexed [row][col]
func (m *Model) OutValues() [][]int {
	return copyMatrix(m.outValues)
}

func copyMatrix(src [][]int) [][]int {
	out := make([][]int, len(src))
	for i, row := range src {
		out[i] = append([]int(nil), row...)
	}
	return out
}

// AddGroup builds a group from two corners and appends it on top of the others
func (m *Model) AddGroup(c1, c2 grid.Cell, color palette.RGB, mode group.Snap) group.Group {
	g := group.Make(c1, c2, color, m.size, mode)
	m.groups = append(m.groups, g)
	return g
}

// ReplaceLastGroup rebuilds the most recent group from two corners.
// It is used while a drag is in progress. Returns false if there are no groups.
func (m *Model) ReplaceLastGroup(c1, c2 grid.Cell, color palette.RGB, mode group.Snap) (group.Group, bool) {
	if len(m.groups) == 0 {
		return group.Group{}, false
	}
	g := group.Make(c1, c2, color, m.size, mode)
	m.groups[len(m.groups)-1] = g
	return g, true
}

// RemoveLastGroup drops the most recent group, used to cancel a drag
func (m *Model) RemoveLastGroup() bool {
	if len(m.groups) == 0 {
		return false
	}
	m.groups = m.groups[:len(m.groups)-1]
	return true
}

// TopGroupAt returns the most recently added group covering (x, y) and its index
func (m *Model) TopGroupAt(x, y int) (group.Group, int, bool) {
	for i := len(m.groups) - 1; i >= 0; i-- {
		if group.Contains(m.groups[i], x, y, m.size) {
			return m.groups[i], i, true
		}
	}
	return group.Group{}, -1, false
}

// RemoveGroupAt deletes the topmost group covering (x, y)
func (m *Model) RemoveGroupAt(x, y int) bool {
	_, i, ok := m.TopGroupAt(x, y)
	if !ok {
		return false
	}
	m.groups = append(m.groups[:i], m.groups[i+1:]...)
	return true
}

// ClearGroups removes every group
func (m *Model) ClearGroups() {
	m.groups = nil
}

// Groups returns a copy of the groups in insertion order
func (m *Model) Groups() []group.Group {
	return append([]group.Group(nil), m.groups...)
}

// GroupCount returns the number of groups
func (m *Model) GroupCount() int {
	return len(m.groups)
}

// Style returns the map style
func (m *Model) Style() style.Style {
	return m.style
}

// SetStyle replaces the map style
func (m *Model) SetStyle(s style.Style) {
	m.style = s
}

// Position returns the screen position of the map's top-left corner
func (m *Model) Position() grid.Point {
	return m.position
}

// SetPosition moves the map
func (m *Model) SetPosition(p grid.Point) {
	m.position = p
}

// CellSize returns the size of one cell in screen units
func (m *Model) CellSize() float64 {
	return m.cellSize
}

// SetCellSize changes the cell size. Non-positive sizes are ignored.
func (m *Model) SetCellSize(size float64) {
	if size > 0 {
		m.cellSize = size
	}
}

// ScreenToCell maps a screen position to a grid cell using the model's geometry
func (m *Model) ScreenToCell(p grid.Point) grid.Cell {
	return grid.ScreenToGridCell(p, m.position, m.cellSize, m.size)
}

// OnGrid reports whether p lies on a grid cell without wrapping
func (m *Model) OnGrid(p grid.Point) bool {
	return grid.InGrid(p, m.position, m.cellSize, m.size)
}
