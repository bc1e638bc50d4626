package render

import (
	"strconv"

	"kmap/pkg/editor/model"
	"kmap/pkg/editor/style"
	"kmap/pkg/engine/grid"
)

// Options overrides model fields for a single draw. Nil fields fall back to
// the model, which is never modified.
type Options struct {
	Position *grid.Point
	CellSize *float64
	Style    *style.Style
}

// Frame is the resolved geometry and style of one draw
type Frame struct {
	Position grid.Point
	CellSize float64
	Size     grid.Size
	Style    style.Style
}

// Resolve merges opts over the model's own fields
func Resolve(m *model.Model, opts Options) Frame {
	f := Frame{
		Position: m.Position(),
		CellSize: m.CellSize(),
		Size:     m.Size(),
		Style:    m.Style(),
	}
	if opts.Position != nil {
		f.Position = *opts.Position
	}
	if opts.CellSize != nil && *opts.CellSize > 0 {
		f.CellSize = *opts.CellSize
	}
	if opts.Style != nil {
		f.Style = *opts.Style
	}
	return f
}

// Extent returns the screen width and height of the map including the label
// row and column
func (f Frame) Extent() grid.Point {
	return grid.Point{
		X: float64(f.Size.Cols+1) * f.CellSize,
		Y: float64(f.Size.Rows+1) * f.CellSize,
	}
}

// DrawMap draws the whole map: grid lines, axis names, Gray labels, output
// bits and finally the groups in insertion order
func DrawMap(s Surface, m *model.Model, opts Options) {
	f := Resolve(m, opts)
	drawGridLines(s, f)
	drawAxisNames(s, m, f)
	drawAxisLabels(s, m, f)
	drawOutValues(s, m, f)
	for _, g := range m.Groups() {
		DrawGroup(s, g, f)
	}
}

func drawGridLines(s Surface, f Frame) {
	lo := LineOptions{Color: f.Style.Lines.Color, Width: f.Style.Lines.Width}
	cs := f.CellSize
	pos := f.Position
	ext := f.Extent()

	// label corner split
	s.DrawLine(pos, grid.Point{X: pos.X + cs, Y: pos.Y + cs}, lo)

	for i := 1; i <= f.Size.Cols+1; i++ {
		x := pos.X + float64(i)*cs
		s.DrawLine(grid.Point{X: x, Y: pos.Y}, grid.Point{X: x, Y: pos.Y + ext.Y}, lo)
	}
	for i := 1; i <= f.Size.Rows+1; i++ {
		y := pos.Y + float64(i)*cs
		s.DrawLine(grid.Point{X: pos.X, Y: y}, grid.Point{X: pos.X + ext.X, Y: y}, lo)
	}
}

func drawAxisNames(s Surface, m *model.Model, f Frame) {
	cs := f.CellSize
	center := grid.Point{X: f.Position.X + cs/2, Y: f.Position.Y + cs/2}
	cols, rows := m.AxisNames()

	s.DrawText(cols, center, TextOptions{
		AlignH: AlignLeft,
		AlignV: AlignBottom,
		Color:  f.Style.Text.Color,
		Size:   fitTextSize(s, cols, cs*f.Style.Text.Scale, cs/2),
	})
	s.DrawText(rows, center, TextOptions{
		AlignH: AlignRight,
		AlignV: AlignTop,
		Color:  f.Style.Text.Color,
		Size:   fitTextSize(s, rows, cs*f.Style.Text.Scale, cs/2),
	})
}

// fitTextSize shrinks size until str fits in maxWidth
func fitTextSize(s Surface, str string, size, maxWidth float64) float64 {
	w := s.MeasureTextWidth(str, size)
	if w <= maxWidth || w <= 0 {
		return size
	}
	return size * maxWidth / w
}

func drawAxisLabels(s Surface, m *model.Model, f Frame) {
	cs := f.CellSize
	to := TextOptions{
		AlignH: AlignCenter,
		AlignV: AlignMiddle,
		Color:  f.Style.Text.Color,
		Size:   cs * f.Style.Text.Scale,
	}
	cols, rows := m.AxisLabels()
	for i, label := range cols {
		s.DrawText(label, grid.Point{
			X: f.Position.X + float64(i+1)*cs + cs/2,
			Y: f.Position.Y + cs/2,
		}, to)
	}
	for i, label := range rows {
		s.DrawText(label, grid.Point{
			X: f.Position.X + cs/2,
			Y: f.Position.Y + float64(i+1)*cs + cs/2,
		}, to)
	}
}

func drawOutValues(s Surface, m *model.Model, f Frame) {
	cs := f.CellSize
	to := TextOptions{
		AlignH: AlignCenter,
		AlignV: AlignMiddle,
		Color:  f.Style.OutValues.Color,
		Size:   cs * f.Style.OutValues.Scale,
	}
	for y, row := range m.OutValues() {
		for x, v := range row {
			s.DrawText(strconv.Itoa(v), grid.Point{
				X: f.Position.X + cs*1.5 + float64(x)*cs,
				Y: f.Position.Y + cs*1.5 + float64(y)*cs,
			}, to)
		}
	}
}
