package render

import (
	"kmap/pkg/editor/group"
	"kmap/pkg/engine/grid"
)

// CellRect is a block of grid cells that does not wrap
type CellRect struct {
	X, Y          int
	Width, Height int
}

// Contains reports whether the block covers cell (x, y)
func (r CellRect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}

// Piece is one screen rectangle of a group outline
type Piece struct {
	Pos     grid.Point
	Size    grid.Point
	Cells   CellRect
	Corners [4]bool
}

// GroupPieces splits a group into the rectangles that outline it on screen.
// A group that wraps past the right edge gets a second piece on the left
// edge, one that wraps past the bottom gets a piece on the top edge, and one
// that wraps both ways gets a fourth piece in the top-left corner. Sides that
// continue across a wrap are left square and extended past the split so the
// pieces read as one rounded rectangle.
func GroupPieces(g group.Group, size grid.Size, origin grid.Point, cellSize float64) []Piece {
	w := clampInt(g.Width, 1, size.Cols)
	h := clampInt(g.Height, 1, size.Rows)

	xOverflow := max(g.X+w-size.Cols, 0)
	yOverflow := max(g.Y+h-size.Rows, 0)
	w -= xOverflow
	h -= yOverflow

	cs := cellSize
	stretchX, stretchY := 1.0, 1.0
	if xOverflow > 0 {
		stretchX = 2
	}
	if yOverflow > 0 {
		stretchY = 2
	}

	pieces := make([]Piece, 0, 4)
	pieces = append(pieces, Piece{
		Pos: grid.Point{
			X: origin.X + float64(g.X+1)*cs,
			Y: origin.Y + float64(g.Y+1)*cs,
		},
		Size: grid.Point{
			X: float64(w) * cs * stretchX,
			Y: float64(h) * cs * stretchY,
		},
		Cells:   CellRect{X: g.X, Y: g.Y, Width: w, Height: h},
		Corners: [4]bool{true, xOverflow == 0, xOverflow == 0 && yOverflow == 0, yOverflow == 0},
	})

	if xOverflow > 0 {
		pieces = append(pieces, Piece{
			Pos: grid.Point{
				X: origin.X + cs - float64(xOverflow)*cs,
				Y: origin.Y + float64(g.Y+1)*cs,
			},
			Size: grid.Point{
				X: float64(xOverflow) * cs * 2,
				Y: float64(h) * cs * stretchY,
			},
			Cells:   CellRect{X: 0, Y: g.Y, Width: xOverflow, Height: h},
			Corners: [4]bool{false, true, yOverflow == 0, false},
		})
	}

	if yOverflow > 0 {
		pieces = append(pieces, Piece{
			Pos: grid.Point{
				X: origin.X + float64(g.X+1)*cs,
				Y: origin.Y + cs - float64(yOverflow)*cs,
			},
			Size: grid.Point{
				X: float64(w) * cs * stretchX,
				Y: float64(yOverflow) * cs * 2,
			},
			Cells:   CellRect{X: g.X, Y: 0, Width: w, Height: yOverflow},
			Corners: [4]bool{false, false, xOverflow == 0, true},
		})
	}

	if xOverflow > 0 && yOverflow > 0 {
		pieces = append(pieces, Piece{
			Pos: grid.Point{
				X: origin.X + cs - float64(xOverflow)*cs,
				Y: origin.Y + cs - float64(yOverflow)*cs,
			},
			Size: grid.Point{
				X: float64(xOverflow) * cs * 2,
				Y: float64(yOverflow) * cs * 2,
			},
			Cells:   CellRect{X: 0, Y: 0, Width: xOverflow, Height: yOverflow},
			Corners: [4]bool{false, false, true, false},
		})
	}

	return pieces
}

// DrawGroup outlines one group on s
func DrawGroup(s Surface, g group.Group, f Frame) {
	for _, p := range GroupPieces(g, f.Size, f.Position, f.CellSize) {
		s.DrawRect(p.Pos, p.Size, RectOptions{
			StrokeColor:  g.Color,
			StrokeWidth:  f.Style.GroupBorderWidth,
			Rounded:      p.Corners,
			CornerRadius: f.CellSize / 2,
		})
	}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
