package ebiten

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"kmap/pkg/editor/render"
	"kmap/pkg/engine/grid"
)

// surface draws map primitives onto an ebiten image
type surface struct {
	dst   *ebiten.Image
	fonts *fonts
}

func (s *surface) DrawLine(p1, p2 grid.Point, opts render.LineOptions) {
	vector.StrokeLine(s.dst,
		float32(p1.X), float32(p1.Y), float32(p2.X), float32(p2.Y),
		float32(opts.Width), opts.Color.RGBA(), true)
}

func (s *surface) DrawRect(pos, size grid.Point, opts render.RectOptions) {
	var path vector.Path
	appendRect(&path, float32(pos.X), float32(pos.Y), float32(size.X), float32(size.Y),
		opts.Rounded, float32(opts.CornerRadius))

	if opts.Filled {
		drawOpts := &vector.DrawPathOptions{AntiAlias: true}
		drawOpts.ColorScale.ScaleWithColor(opts.FillColor.RGBA())
		vector.FillPath(s.dst, &path, nil, drawOpts)
	}
	if opts.StrokeWidth > 0 {
		strokeOpts := &vector.StrokeOptions{Width: float32(opts.StrokeWidth), MiterLimit: 10}
		drawOpts := &vector.DrawPathOptions{AntiAlias: true}
		drawOpts.ColorScale.ScaleWithColor(opts.StrokeColor.RGBA())
		vector.StrokePath(s.dst, &path, strokeOpts, drawOpts)
	}
}

func (s *surface) DrawText(str string, pos grid.Point, opts render.TextOptions) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(pos.X, pos.Y)
	op.ColorScale.ScaleWithColor(opts.Color.RGBA())
	op.PrimaryAlign = primaryAlign(opts.AlignH)
	op.SecondaryAlign = secondaryAlign(opts.AlignV)
	text.Draw(s.dst, str, s.fonts.face(opts.Size), op)
}

func (s *surface) MeasureTextWidth(str string, size float64) float64 {
	w, _ := text.Measure(str, s.fonts.face(size), 0)
	return w
}

func primaryAlign(a render.HAlign) text.Align {
	switch a {
	case render.AlignCenter:
		return text.AlignCenter
	case render.AlignRight:
		return text.AlignEnd
	}
	return text.AlignStart
}

func secondaryAlign(a render.VAlign) text.Align {
	switch a {
	case render.AlignTop:
		return text.AlignStart
	case render.AlignBottom:
		return text.AlignEnd
	}
	return text.AlignCenter
}

// appendRect adds a rectangle to the path, rounding the selected corners
// with clockwise arcs so the path winds correctly for fill.
func appendRect(p *vector.Path, x, y, w, h float32, rounded [4]bool, r float32) {
	r = min(r, w/2, h/2)
	if r < 0 {
		r = 0
	}
	radius := func(corner int) float32 {
		if rounded[corner] {
			return r
		}
		return 0
	}
	tl := radius(render.CornerTopLeft)
	tr := radius(render.CornerTopRight)
	br := radius(render.CornerBottomRight)
	bl := radius(render.CornerBottomLeft)

	halfPi := float32(math.Pi / 2)
	pi := float32(math.Pi)
	p.MoveTo(x+tl, y)
	p.LineTo(x+w-tr, y)
	if tr > 0 {
		p.Arc(x+w-tr, y+tr, tr, 3*halfPi, 0, vector.Clockwise)
	}
	p.LineTo(x+w, y+h-br)
	if br > 0 {
		p.Arc(x+w-br, y+h-br, br, 0, halfPi, vector.Clockwise)
	}
	p.LineTo(x+bl, y+h)
	if bl > 0 {
		p.Arc(x+bl, y+h-bl, bl, halfPi, pi, vector.Clockwise)
	}
	p.LineTo(x, y+tl)
	if tl > 0 {
		p.Arc(x+tl, y+tl, tl, pi, 3*halfPi, vector.Clockwise)
	}
	p.Close()
}
