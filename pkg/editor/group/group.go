// Package group builds and queries the rectangular, possibly wrapping,
// regions drawn over a Karnaugh map.
package group

import (
	"errors"
	"fmt"
	"math"

	"github.com/zyedidia/generic/mapset"

	"kmap/pkg/engine/grid"
	"kmap/pkg/engine/palette"
)

// ErrInvalidGroup is returned by Validate
var ErrInvalidGroup = errors.New("invalid group")

// Snap selects how a dragged extent is rounded to a group size
type Snap int

const (
	// SnapNearest rounds to the nearest power of two
	SnapNearest Snap = iota
	// SnapFloor rounds down to a power of two
	SnapFloor
	// SnapNone keeps the raw extent
	SnapNone
)

// String returns the config name of the mode
func (s Snap) String() string {
	switch s {
	case SnapNearest:
		return "nearest"
	case SnapFloor:
		return "floor"
	case SnapNone:
		return "none"
	}
	return "unknown"
}

// ParseSnap converts a config name into a Snap mode
func ParseSnap(s string) (Snap, error) {
	switch s {
	case "", "nearest":
		return SnapNearest, nil
	case "floor":
		return SnapFloor, nil
	case "none":
		return SnapNone, nil
	}
	return SnapNearest, fmt.Errorf("unknown snap mode %q", s)
}

// Group is one highlighted region. X, Y is the anchor corner; the rectangle
// extends Width columns right and Height rows down, wrapping past the edges.
type Group struct {
	X      int
	Y      int
	Width  int
	Height int
	Color  palette.RGB
}

// Origin returns the anchor corner
func (g Group) Origin() grid.Cell {
	return grid.Cell{X: g.X, Y: g.Y}
}

// Make turns two grid corners into a group. A corner "before" the first one
// on an axis is reached by wrapping around that axis.
func Make(c1, c2 grid.Cell, color palette.RGB, size grid.Size, mode Snap) Group {
	w := c2.X - c1.X
	if c1.X > c2.X {
		w += size.Cols
	}
	h := c2.Y - c1.Y
	if c1.Y > c2.Y {
		h += size.Rows
	}
	w++
	h++

	if mode != SnapNone {
		w = snapExtent(w, mode)
		h = snapExtent(h, mode)
	}

	return Group{
		X:      c1.X,
		Y:      c1.Y,
		Width:  clamp(w, 1, size.Cols),
		Height: clamp(h, 1, size.Rows),
		Color:  color,
	}
}

func snapExtent(e int, mode Snap) int {
	if e < 1 {
		return 1
	}
	l := math.Log2(float64(e))
	switch mode {
	case SnapFloor:
		l = math.Floor(l)
	default:
		l = math.Round(l)
	}
	return 1 << int(l)
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		hi = lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Contains reports whether the group covers cell (x, y)
func Contains(g Group, x, y int, size grid.Size) bool {
	dx := grid.Wrap(x-g.X, size.Cols)
	dy := grid.Wrap(y-g.Y, size.Rows)
	return dx < g.Width && dy < g.Height
}

// Cells returns the set of grid cells the group covers
func Cells(g Group, size grid.Size) mapset.Set[grid.Cell] {
	cells := mapset.New[grid.Cell]()
	w := clamp(g.Width, 1, size.Cols)
	h := clamp(g.Height, 1, size.Rows)
	for dy := 0; dy < h; dy++ {
		for dx := 0; dx < w; dx++ {
			cells.Put(grid.Cell{
				X: grid.Wrap(g.X+dx, size.Cols),
				Y: grid.Wrap(g.Y+dy, size.Rows),
			})
		}
	}
	return cells
}

// Validate checks the group against the grid it belongs to
func Validate(g Group, size grid.Size) error {
	switch {
	case g.X < 0 || g.X > size.Cols-1:
		return fmt.Errorf("%w: x %d outside [0,%d]", ErrInvalidGroup, g.X, size.Cols-1)
	case g.Y < 0 || g.Y > size.Rows-1:
		return fmt.Errorf("%w: y %d outside [0,%d]", ErrInvalidGroup, g.Y, size.Rows-1)
	case g.Width < 1 || g.Width > size.Cols:
		return fmt.Errorf("%w: width %d outside [1,%d]", ErrInvalidGroup, g.Width, size.Cols)
	case g.Height < 1 || g.Height > size.Rows:
		return fmt.Errorf("%w: height %d outside [1,%d]", ErrInvalidGroup, g.Height, size.Rows)
	}
	return nil
}

// IsPowerOfTwo reports whether n is 1, 2, 4, ...
func IsPowerOfTwo(n int) bool {
	return n > 0 && n&(n-1) == 0
}
