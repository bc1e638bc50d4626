package model

import (
	"fmt"

	"kmap/pkg/editor/group"
	"kmap/pkg/editor/style"
	"kmap/pkg/engine/grid"
)

// Snapshot is a detached copy of the persistent parts of a model
type Snapshot struct {
	VariableCount int
	VarNames      []string
	OutValues     [][]int
	Groups        []group.Group
	Style         style.Style
}

// Snapshot copies the persistent state out of the model
func (m *Model) Snapshot() Snapshot {
	return Snapshot{
		VariableCount: m.variableCount,
		VarNames:      m.VarNames(),
		OutValues:     m.OutValues(),
		Groups:        m.Groups(),
		Style:         m.style,
	}
}

// Restore replaces the model's persistent state with s in one step.
// Position and cell size are kept. On error the model is unchanged.
func (m *Model) Restore(s Snapshot) error {
	xBits, yBits, err := grid.VarBits(s.VariableCount)
	if err != nil {
		return err
	}
	if len(s.VarNames) < s.VariableCount {
		return fmt.Errorf("%w: %d variables need %d names, got %d",
			ErrInvalidConfiguration, s.VariableCount, s.VariableCount, len(s.VarNames))
	}
	size := grid.Size{Cols: 1 << xBits, Rows: 1 << yBits}
	if len(s.OutValues) != size.Rows {
		return fmt.Errorf("%w: %d output rows, want %d", ErrInvalidConfiguration, len(s.OutValues), size.Rows)
	}
	for y, row := range s.OutValues {
		if len(row) != size.Cols {
			return fmt.Errorf("%w: output row %d has %d cells, want %d", ErrInvalidConfiguration, y, len(row), size.Cols)
		}
	}
	for i, g := range s.Groups {
		if err := group.Validate(g, size); err != nil {
			return fmt.Errorf("group %d: %w", i, err)
		}
	}

	m.variableCount = s.VariableCount
	m.varNames = append([]string(nil), s.VarNames...)
	m.size = size
	m.xBits = xBits
	m.yBits = yBits
	m.outValues = copyMatrix(s.OutValues)
	m.groups = append([]group.Group(nil), s.Groups...)
	m.style = s.Style
	return nil
}
