// Package grid holds the coordinate math of a Karnaugh map grid: variable
// layout, Gray-order axis labels and the toroidal screen-to-cell transform.
package grid

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidVariableCount is returned for variable counts other than 2, 3 or 4
var ErrInvalidVariableCount = errors.New("invalid variable count")

// MinVariables and MaxVariables bound the supported variable counts
const (
	MinVariables = 2
	MaxVariables = 4
)

// binaryValues is the reflected (Gray) order used on both axes
var binaryValues = [4]string{"00", "01", "11", "10"}

// Cell is a position on the grid, X along columns and Y along rows
type Cell struct {
	X int
	Y int
}

// Point is a position in screen space
type Point struct {
	X float64
	Y float64
}

// Add returns p shifted by q
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Size is the grid dimensions in cells
type Size struct {
	Cols int
	Rows int
}

// Contains checks if a column/row position is within grid bounds
func (s Size) Contains(x, y int) bool {
	return x >= 0 && x < s.Cols && y >= 0 && y < s.Rows
}

// Area returns the number of cells in the grid
func (s Size) Area() int {
	return s.Cols * s.Rows
}

// ForEachCell iterates over all cells row by row
func (s Size) ForEachCell(fn func(x, y int)) {
	for y := 0; y < s.Rows; y++ {
		for x := 0; x < s.Cols; x++ {
			fn(x, y)
		}
	}
}

// VarBits returns how many variables are laid out along the columns and rows
func VarBits(variableCount int) (xBits, yBits int, err error) {
	switch variableCount {
	case 2:
		return 1, 1, nil
	case 3:
		return 2, 1, nil
	case 4:
		return 2, 2, nil
	}
	return 0, 0, fmt.Errorf("%w: %d (want %d-%d)", ErrInvalidVariableCount, variableCount, MinVariables, MaxVariables)
}

// Dimensions returns the grid size for the given variable count
func Dimensions(variableCount int) (Size, error) {
	xBits, yBits, err := VarBits(variableCount)
	if err != nil {
		return Size{}, err
	}
	return Size{Cols: 1 << xBits, Rows: 1 << yBits}, nil
}

// GrayLabel returns the label of index i on an axis that is bits wide.
// Indices wrap, so GrayLabel(-1, 2) is "10".
func GrayLabel(i, bits int) string {
	n := 1 << bits
	v := binaryValues[Wrap(i, n)]
	return v[len(v)-bits:]
}

// AxisLabels builds the Gray-order value labels of both axes
func AxisLabels(variableCount int) (xLabels, yLabels []string, err error) {
	xBits, yBits, err := VarBits(variableCount)
	if err != nil {
		return nil, nil, err
	}
	xLabels = make([]string, 1<<xBits)
	for i := range xLabels {
		xLabels[i] = GrayLabel(i, xBits)
	}
	yLabels = make([]string, 1<<yBits)
	for i := range yLabels {
		yLabels[i] = GrayLabel(i, yBits)
	}
	return xLabels, yLabels, nil
}

// Wrap reduces v into [0, n), adding n back for negative values
func Wrap(v, n int) int {
	if n <= 0 {
		return 0
	}
	return ((v % n) + n) % n
}

// ScreenToGridCell maps a screen position to a grid cell.
// The first row and column of cells at origin are reserved for labels, so the
// grid starts one cellSize right of and below origin. Positions outside the
// grid wrap around to the opposite edge.
func ScreenToGridCell(screen, origin Point, cellSize float64, size Size) Cell {
	if cellSize <= 0 {
		return Cell{}
	}
	gx := int(math.Floor((screen.X - (origin.X + cellSize)) / cellSize))
	gy := int(math.Floor((screen.Y - (origin.Y + cellSize)) / cellSize))
	return Cell{X: Wrap(gx, size.Cols), Y: Wrap(gy, size.Rows)}
}

// InGrid reports whether a screen position falls on a grid cell without wrapping
func InGrid(screen, origin Point, cellSize float64, size Size) bool {
	if cellSize <= 0 {
		return false
	}
	fx := (screen.X - (origin.X + cellSize)) / cellSize
	fy := (screen.Y - (origin.Y + cellSize)) / cellSize
	return fx >= 0 && fy >= 0 && fx < float64(size.Cols) && fy < float64(size.Rows)
}

// CellOrigin returns the top-left screen position of a grid cell
func CellOrigin(c Cell, origin Point, cellSize float64) Point {
	return Point{
		X: origin.X + float64(c.X+1)*cellSize,
		Y: origin.Y + float64(c.Y+1)*cellSize,
	}
}
