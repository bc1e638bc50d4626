package raster

import (
	"bytes"
	"errors"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
	"golang.org/x/image/font/gofont/goregular"

	"kmap/pkg/editor/group"
	"kmap/pkg/editor/model"
	"kmap/pkg/editor/render"
	"kmap/pkg/engine/grid"
	"kmap/pkg/engine/palette"
)

func exampleModel(t *testing.T) *model.Model {
	t.Helper()
	m := model.New()
	m.ToggleOutput(1, 1)
	m.AddGroup(grid.Cell{X: 0, Y: 0}, grid.Cell{X: 1, Y: 1}, palette.Red, group.SnapNearest)
	m.AddGroup(grid.Cell{X: 3, Y: 0}, grid.Cell{X: 0, Y: 0}, palette.Blue, group.SnapNearest)
	return m
}

func TestRenderSizeAndPixels(t *testing.T) {
	m := exampleModel(t)
	opts := DefaultOptions()
	ctx, err := Render(m, opts)
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	defer ctx.Close()

	// 5 cells of 64 plus two margins of 16 plus the border width
	if ctx.Width() != 356 || ctx.Height() != 356 {
		t.Errorf("size = %dx%d, want 356x356", ctx.Width(), ctx.Height())
	}

	img := ctx.Image()
	r, g, b, _ := img.At(2, 2).RGBA()
	if r>>8 != 255 || g>>8 != 255 || b>>8 != 255 {
		t.Errorf("margin pixel = (%d,%d,%d), want white", r>>8, g>>8, b>>8)
	}
	// first vertical grid line sits one cell in from the margin
	r, _, _, _ = img.At(80, 300).RGBA()
	if r>>8 > 128 {
		t.Errorf("grid line pixel red = %d, want dark", r>>8)
	}
}

func TestRenderLeavesModelAlone(t *testing.T) {
	m := exampleModel(t)
	m.SetPosition(grid.Point{X: 7, Y: 9})
	before := m.Snapshot()

	if _, err := Render(m, DefaultOptions()); err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	if m.Position() != (grid.Point{X: 7, Y: 9}) || m.CellSize() != model.DefaultCellSize {
		t.Errorf("position %v cell size %v changed", m.Position(), m.CellSize())
	}
	if m.Style() != before.Style {
		t.Error("style changed")
	}
}

func TestRenderRejectsBadOptions(t *testing.T) {
	m := model.New()
	opts := DefaultOptions()
	opts.CellSize = 0
	if _, err := Render(m, opts); err == nil {
		t.Error("Render() with zero cell size = nil error")
	}

	opts = DefaultOptions()
	opts.Style.Lines.Width = -1
	if _, err := Render(m, opts); err == nil {
		t.Error("Render() with negative line width = nil error")
	}
}

func TestExportPNG(t *testing.T) {
	m := exampleModel(t)
	path := filepath.Join(t.TempDir(), "map.png")
	opts := DefaultOptions()
	opts.CellSize = 32
	if err := ExportPNG(path, m, opts); err != nil {
		t.Fatalf("ExportPNG() error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("png.Decode() error: %v", err)
	}
	// 5 cells of 32 plus two margins of 16 plus the border width
	if b := img.Bounds(); b.Dx() != 196 || b.Dy() != 196 {
		t.Errorf("bounds = %v, want 196x196", b)
	}

	entries, _ := os.ReadDir(filepath.Dir(path))
	if len(entries) != 1 {
		t.Errorf("directory has %d entries, want only the png", len(entries))
	}
}

func TestExportPNGMissingDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "map.png")
	if err := ExportPNG(path, model.New(), DefaultOptions()); err == nil {
		t.Error("ExportPNG() into a missing directory = nil error")
	}
}

// brokenStroke fails its second stroke and draws everything else normally
type brokenStroke struct {
	*gg.Context
	strokes int
}

var errStroke = errors.New("stroke failed")

func (b *brokenStroke) Stroke() error {
	b.strokes++
	if b.strokes == 2 {
		return errStroke
	}
	return b.Context.Stroke()
}

func TestDrawMapReportsStrokeError(t *testing.T) {
	source, err := text.NewFontSource(goregular.TTF)
	if err != nil {
		t.Fatal(err)
	}
	ctx := gg.NewContext(300, 300)
	defer ctx.Close()
	canvas := &brokenStroke{Context: ctx}

	cs := 48.0
	err = newSurface(canvas, source).drawMap(exampleModel(t), render.Options{CellSize: &cs})
	if !errors.Is(err, errStroke) {
		t.Errorf("drawMap() = %v, want the stroke error", err)
	}
	if canvas.strokes <= 2 {
		t.Errorf("strokes = %d, want drawing to carry on after the failure", canvas.strokes)
	}
}
