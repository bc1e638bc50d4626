package grid

import (
	"errors"
	"strings"
	"testing"
)

func TestDimensions_SupportedCounts(t *testing.T) {
	tests := []struct {
		count int
		want  Size
	}{
		{2, Size{Cols: 2, Rows: 2}},
		{3, Size{Cols: 4, Rows: 2}},
		{4, Size{Cols: 4, Rows: 4}},
	}
	for _, tt := range tests {
		got, err := Dimensions(tt.count)
		if err != nil {
			t.Fatalf("Dimensions(%d) error: %v", tt.count, err)
		}
		if got != tt.want {
			t.Errorf("Dimensions(%d) = %+v, want %+v", tt.count, got, tt.want)
		}
		if got.Area() != 1<<tt.count {
			t.Errorf("Dimensions(%d) area = %d, want %d", tt.count, got.Area(), 1<<tt.count)
		}
		for _, d := range []int{got.Cols, got.Rows} {
			if d != 1 && d != 2 && d != 4 {
				t.Errorf("Dimensions(%d) has dimension %d, want one of 1,2,4", tt.count, d)
			}
		}
	}
}

func TestDimensions_RejectsUnsupported(t *testing.T) {
	for _, count := range []int{-1, 0, 1, 5, 8} {
		if _, err := Dimensions(count); !errors.Is(err, ErrInvalidVariableCount) {
			t.Errorf("Dimensions(%d) error = %v, want ErrInvalidVariableCount", count, err)
		}
	}
}

func bitDiff(a, b string) int {
	n := 0
	for i := range a {
		if a[i] != b[i] {
			n++
		}
	}
	return n
}

func TestAxisLabels_GrayAdjacency(t *testing.T) {
	for count := MinVariables; count <= MaxVariables; count++ {
		xs, ys, err := AxisLabels(count)
		if err != nil {
			t.Fatalf("AxisLabels(%d) error: %v", count, err)
		}
		for _, labels := range [][]string{xs, ys} {
			if len(labels) < 2 {
				continue
			}
			for i := range labels {
				next := labels[(i+1)%len(labels)]
				if d := bitDiff(labels[i], next); d != 1 {
					t.Errorf("count %d: %q -> %q differ in %d bits, want 1", count, labels[i], next, d)
				}
			}
		}
	}
}

func TestAxisLabels_ThreeVariables(t *testing.T) {
	xs, ys, err := AxisLabels(3)
	if err != nil {
		t.Fatal(err)
	}
	if got := strings.Join(xs, ","); got != "00,01,11,10" {
		t.Errorf("x labels = %s, want 00,01,11,10", got)
	}
	if got := strings.Join(ys, ","); got != "0,1" {
		t.Errorf("y labels = %s, want 0,1", got)
	}
}

func TestWrap(t *testing.T) {
	tests := []struct{ v, n, want int }{
		{0, 4, 0},
		{3, 4, 3},
		{4, 4, 0},
		{-1, 4, 3},
		{-5, 4, 3},
		{9, 2, 1},
		{7, 0, 0},
	}
	for _, tt := range tests {
		if got := Wrap(tt.v, tt.n); got != tt.want {
			t.Errorf("Wrap(%d, %d) = %d, want %d", tt.v, tt.n, got, tt.want)
		}
	}
}

func TestScreenToGridCell(t *testing.T) {
	size := Size{Cols: 4, Rows: 2}
	origin := Point{X: 10, Y: 20}
	const cell = 16.0

	tests := []struct {
		name   string
		screen Point
		want   Cell
	}{
		{"first cell", Point{X: 10 + 16 + 1, Y: 20 + 16 + 1}, Cell{0, 0}},
		{"last cell", Point{X: 10 + 16*4 + 15, Y: 20 + 16*2 + 15}, Cell{3, 1}},
		{"label column wraps to last", Point{X: 10 + 1, Y: 20 + 16 + 1}, Cell{3, 0}},
		{"above grid wraps to bottom", Point{X: 10 + 16*2 + 1, Y: 0}, Cell{1, 1}},
		{"right of grid wraps to start", Point{X: 10 + 16*5 + 1, Y: 20 + 16 + 1}, Cell{0, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ScreenToGridCell(tt.screen, origin, cell, size); got != tt.want {
				t.Errorf("ScreenToGridCell(%+v) = %+v, want %+v", tt.screen, got, tt.want)
			}
		})
	}
}

func TestScreenToGridCell_Periodic(t *testing.T) {
	origin := Point{X: 3, Y: 7}
	const cell = 20.0
	for count := MinVariables; count <= MaxVariables; count++ {
		size, _ := Dimensions(count)
		for sx := -100.0; sx < 200; sx += 7.5 {
			for sy := -100.0; sy < 200; sy += 11 {
				p := Point{X: sx, Y: sy}
				base := ScreenToGridCell(p, origin, cell, size)
				shiftX := ScreenToGridCell(Point{X: sx + float64(size.Cols)*cell, Y: sy}, origin, cell, size)
				shiftY := ScreenToGridCell(Point{X: sx, Y: sy - float64(size.Rows)*cell}, origin, cell, size)
				if base != shiftX || base != shiftY {
					t.Fatalf("count %d at %+v: base %+v, x-shift %+v, y-shift %+v", count, p, base, shiftX, shiftY)
				}
				if !size.Contains(base.X, base.Y) {
					t.Fatalf("count %d at %+v: %+v outside %+v", count, p, base, size)
				}
			}
		}
	}
}

func TestInGridAndCellOrigin(t *testing.T) {
	size := Size{Cols: 2, Rows: 2}
	origin := Point{X: 0, Y: 0}
	p := CellOrigin(Cell{X: 1, Y: 1}, origin, 10)
	if p != (Point{X: 20, Y: 20}) {
		t.Errorf("CellOrigin = %+v, want {20 20}", p)
	}
	if !InGrid(Point{X: 25, Y: 25}, origin, 10, size) {
		t.Error("InGrid(25,25) = false, want true")
	}
	if InGrid(Point{X: 5, Y: 25}, origin, 10, size) {
		t.Error("InGrid on label column = true, want false")
	}
	if InGrid(Point{X: 31, Y: 25}, origin, 10, size) {
		t.Error("InGrid past right edge = true, want false")
	}
}
