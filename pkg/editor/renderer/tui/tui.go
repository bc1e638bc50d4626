// Package tui prints a map as a text table for terminals and pipes.
package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/gookit/color"

	"kmap/pkg/editor/group"
	"kmap/pkg/editor/model"
)

// Options controls the text output
type Options struct {
	// Color paints group letters in their group color
	Color bool
}

// groupTag is the letter that marks cells of the i-th group
func groupTag(i int) string {
	if i < 26 {
		return string(rune('a' + i))
	}
	return "+"
}

type printer struct {
	opts   Options
	groups []group.Group
}

func (p printer) tag(i int) string {
	tag := groupTag(i)
	if !p.opts.Color {
		return tag
	}
	c := p.groups[i].Color
	return color.Style{color.OpBold}.Sprint(color.RGB(c.R, c.G, c.B).Sprint(tag))
}

// Render writes the map as a table. Each cell shows its output bit followed
// by the letter of the most recent group covering it, then one legend line
// per group.
func Render(w io.Writer, m *model.Model, opts Options) error {
	p := printer{opts: opts, groups: m.Groups()}
	colNames, rowNames := m.AxisNames()
	colLabels, rowLabels := m.AxisLabels()
	size := m.Size()

	corner := rowNames + `\` + colNames
	cornerWidth := max(len(corner), len(rowLabels[0]))
	cellWidth := max(len(colLabels[0]), 2)

	var b strings.Builder
	line := func(s string) {
		b.WriteString(strings.TrimRight(s, " "))
		b.WriteByte('\n')
	}

	header := pad(corner, cornerWidth)
	for _, l := range colLabels {
		header += " " + pad(l, cellWidth)
	}
	line(header)

	for y := 0; y < size.Rows; y++ {
		row := pad(rowLabels[y], cornerWidth)
		for x := 0; x < size.Cols; x++ {
			v, _ := m.Output(x, y)
			cell := fmt.Sprint(v)
			if _, i, ok := m.TopGroupAt(x, y); ok {
				cell += p.tag(i)
			} else {
				cell += " "
			}
			row += " " + cell + strings.Repeat(" ", cellWidth-2)
		}
		line(row)
	}

	if len(p.groups) > 0 {
		b.WriteByte('\n')
	}
	for i, g := range p.groups {
		line(fmt.Sprintf("%s  %dx%d at (%d,%d)  %s", p.tag(i), g.Width, g.Height, g.X, g.Y, g.Color.Hex()))
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func pad(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}
