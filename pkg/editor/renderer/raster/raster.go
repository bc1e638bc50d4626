// Package raster draws a map into an off-screen image and writes it as PNG.
package raster

import (
	"fmt"
	"image/color"
	"io"
	"math"
	"os"
	"path/filepath"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
	"golang.org/x/image/font/gofont/goregular"

	"kmap/pkg/editor/model"
	"kmap/pkg/editor/render"
	"kmap/pkg/editor/style"
	"kmap/pkg/engine/grid"
	"kmap/pkg/engine/palette"
)

// Options controls an export. The model's own position, cell size and style
// are left untouched; these values only apply to the image.
type Options struct {
	CellSize   float64
	Margin     float64
	Background palette.RGB
	// Style overrides the model's style when set
	Style *style.Style
}

// DefaultOptions is a white image with dark lines
func DefaultOptions() Options {
	light := style.Light()
	return Options{CellSize: 64, Margin: 16, Background: palette.White, Style: &light}
}

// canvas is the part of *gg.Context the surface draws with
type canvas interface {
	SetColor(c color.Color)
	SetLineWidth(width float64)
	DrawLine(x1, y1, x2, y2 float64)
	MoveTo(x, y float64)
	LineTo(x, y float64)
	QuadraticTo(cx, cy, x, y float64)
	ClosePath()
	Fill() error
	Stroke() error
	SetFont(face text.Face)
	DrawString(s string, x, y float64)
}

// surface implements render.Surface on a gg context. render.Surface has no
// error returns, so the first failed fill or stroke is kept in err.
type surface struct {
	ctx    canvas
	source *text.FontSource
	faces  map[float64]text.Face
	err    error
}

func newSurface(ctx canvas, source *text.FontSource) *surface {
	return &surface{ctx: ctx, source: source, faces: make(map[float64]text.Face)}
}

func (s *surface) keep(err error) {
	if err != nil && s.err == nil {
		s.err = err
	}
}

// drawMap draws m and reports the first drawing error
func (s *surface) drawMap(m *model.Model, opts render.Options) error {
	render.DrawMap(s, m, opts)
	return s.err
}

func (s *surface) face(size float64) text.Face {
	if f, ok := s.faces[size]; ok {
		return f
	}
	f := s.source.Face(size)
	s.faces[size] = f
	return f
}

func (s *surface) DrawLine(p1, p2 grid.Point, opts render.LineOptions) {
	s.ctx.SetColor(opts.Color.RGBA())
	s.ctx.SetLineWidth(opts.Width)
	s.ctx.DrawLine(p1.X, p1.Y, p2.X, p2.Y)
	s.keep(s.ctx.Stroke())
}

func (s *surface) DrawRect(pos, size grid.Point, opts render.RectOptions) {
	path := func() {
		render.RoundedRectPath(pos, size, opts.Rounded, opts.CornerRadius,
			s.ctx.MoveTo, s.ctx.LineTo, s.ctx.QuadraticTo, s.ctx.ClosePath)
	}
	if opts.Filled {
		path()
		s.ctx.SetColor(opts.FillColor.RGBA())
		s.keep(s.ctx.Fill())
	}
	if opts.StrokeWidth > 0 {
		path()
		s.ctx.SetColor(opts.StrokeColor.RGBA())
		s.ctx.SetLineWidth(opts.StrokeWidth)
		s.keep(s.ctx.Stroke())
	}
}

func (s *surface) DrawText(str string, pos grid.Point, opts render.TextOptions) {
	face := s.face(opts.Size)
	m := face.Metrics()
	w := face.Advance(str)
	off := render.AnchorOffset(w, m.Ascent+m.Descent, opts)

	s.ctx.SetFont(face)
	s.ctx.SetColor(opts.Color.RGBA())
	s.ctx.DrawString(str, pos.X+off.X, pos.Y+off.Y+m.Ascent)
}

func (s *surface) MeasureTextWidth(str string, size float64) float64 {
	return s.face(size).Advance(str)
}

// Render draws m into a new context sized to fit the map plus the margin
func Render(m *model.Model, opts Options) (*gg.Context, error) {
	if opts.CellSize <= 0 {
		return nil, fmt.Errorf("cell size must be positive, got %g", opts.CellSize)
	}
	if opts.Style != nil {
		if err := opts.Style.Validate(); err != nil {
			return nil, err
		}
	}
	source, err := text.NewFontSource(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("load font: %w", err)
	}

	origin := grid.Point{X: opts.Margin, Y: opts.Margin}
	ropts := render.Options{Position: &origin, CellSize: &opts.CellSize, Style: opts.Style}
	frame := render.Resolve(m, ropts)
	extent := frame.Extent()
	// Room for a group border drawn past the last line
	pad := 2*opts.Margin + frame.Style.GroupBorderWidth
	width := int(math.Ceil(extent.X + pad))
	height := int(math.Ceil(extent.Y + pad))

	ctx := gg.NewContext(width, height)
	ctx.ClearWithColor(gg.FromColor(opts.Background.RGBA()))

	if err := newSurface(ctx, source).drawMap(m, ropts); err != nil {
		ctx.Close()
		return nil, fmt.Errorf("draw map: %w", err)
	}
	return ctx, nil
}

// EncodePNG renders m and writes the PNG to w
func EncodePNG(w io.Writer, m *model.Model, opts Options) error {
	ctx, err := Render(m, opts)
	if err != nil {
		return err
	}
	defer ctx.Close()
	if err := ctx.EncodePNG(w); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

// ExportPNG renders m to a PNG file. The file is written next to its final
// name and renamed into place so a failed export leaves no partial image.
func ExportPNG(path string, m *model.Model, opts Options) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".kmap-*.png")
	if err != nil {
		return fmt.Errorf("export %s: %w", path, err)
	}
	defer func() {
		if err != nil {
			os.Remove(tmp.Name())
		}
	}()

	if err = EncodePNG(tmp, m, opts); err != nil {
		tmp.Close()
		return fmt.Errorf("export %s: %w", path, err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("export %s: %w", path, err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("export %s: %w", path, err)
	}
	return nil
}
