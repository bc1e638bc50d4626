// Package render draws a Karnaugh map through a backend-neutral Surface.
package render

import (
	"kmap/pkg/engine/grid"
	"kmap/pkg/engine/palette"
)

// HAlign is the horizontal anchor of a text position
type HAlign int

const (
	AlignLeft HAlign = iota
	AlignCenter
	AlignRight
)

// VAlign is the vertical anchor of a text position
type VAlign int

const (
	AlignMiddle VAlign = iota
	AlignTop
	AlignBottom
)

// Corner indexes into RectOptions.Rounded
const (
	CornerTopLeft = iota
	CornerTopRight
	CornerBottomRight
	CornerBottomLeft
)

// LineOptions describes a stroked line
type LineOptions struct {
	Color palette.RGB
	Width float64
}

// RectOptions describes an axis-aligned rectangle
type RectOptions struct {
	Filled      bool
	FillColor   palette.RGB
	StrokeColor palette.RGB
	StrokeWidth float64
	// Rounded selects which corners use CornerRadius, clockwise from top-left
	Rounded      [4]bool
	CornerRadius float64
}

// TextOptions describes a text draw. Size is the font size in screen units.
type TextOptions struct {
	AlignH HAlign
	AlignV VAlign
	Color  palette.RGB
	Size   float64
}

// Surface is the drawing collaborator used by the map renderer.
// Implementations include an ebiten screen, a gg raster image and a
// recording surface in tests.
type Surface interface {
	// DrawLine strokes a line from p1 to p2
	DrawLine(p1, p2 grid.Point, opts LineOptions)

	// DrawRect draws a rectangle at pos with the given width and height
	DrawRect(pos, size grid.Point, opts RectOptions)

	// DrawText draws str anchored at pos according to the alignment
	DrawText(str string, pos grid.Point, opts TextOptions)

	// MeasureTextWidth returns the width str would have at the given size
	MeasureTextWidth(str string, size float64) float64
}

// RoundedRectPath walks the outline of a rectangle with per-corner rounding,
// starting at the top edge and going clockwise. Backends pass their path
// builder's methods; a quadratic curve through the corner stands in for a
// circular arc.
func RoundedRectPath(pos, size grid.Point, rounded [4]bool, radius float64,
	moveTo, lineTo func(x, y float64), quadTo func(cx, cy, x, y float64), closePath func()) {
	r := radius
	if half := min(size.X, size.Y) / 2; r > half {
		r = half
	}
	if r < 0 {
		r = 0
	}
	x0, y0 := pos.X, pos.Y
	x1, y1 := pos.X+size.X, pos.Y+size.Y

	radiusAt := func(i int) float64 {
		if rounded[i] {
			return r
		}
		return 0
	}
	tl, tr, br, bl := radiusAt(CornerTopLeft), radiusAt(CornerTopRight), radiusAt(CornerBottomRight), radiusAt(CornerBottomLeft)

	moveTo(x0+tl, y0)
	lineTo(x1-tr, y0)
	if tr > 0 {
		quadTo(x1, y0, x1, y0+tr)
	}
	lineTo(x1, y1-br)
	if br > 0 {
		quadTo(x1, y1, x1-br, y1)
	}
	lineTo(x0+bl, y1)
	if bl > 0 {
		quadTo(x0, y1, x0, y1-bl)
	}
	lineTo(x0, y0+tl)
	if tl > 0 {
		quadTo(x0, y0, x0+tl, y0)
	}
	closePath()
}

// AnchorOffset returns how far to shift a text box of width w and height h
// so that pos lands on the requested anchor
func AnchorOffset(w, h float64, opts TextOptions) grid.Point {
	var off grid.Point
	switch opts.AlignH {
	case AlignCenter:
		off.X = -w / 2
	case AlignRight:
		off.X = -w
	}
	switch opts.AlignV {
	case AlignMiddle:
		off.Y = -h / 2
	case AlignBottom:
		off.Y = -h
	}
	return off
}
