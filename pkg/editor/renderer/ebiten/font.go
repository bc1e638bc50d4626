package ebiten

import (
	"bytes"
	"fmt"
	"math"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"
)

// fonts hands out Go Regular faces, cached by size
type fonts struct {
	source *text.GoTextFaceSource
	faces  map[float64]*text.GoTextFace
}

func newFonts() (*fonts, error) {
	src, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		return nil, fmt.Errorf("load font: %w", err)
	}
	return &fonts{source: src, faces: make(map[float64]*text.GoTextFace)}, nil
}

// face returns a cached face. Sizes are rounded to half points so zooming
// does not grow the cache without bound.
func (f *fonts) face(size float64) *text.GoTextFace {
	size = math.Max(1, math.Round(size*2)/2)
	if face, ok := f.faces[size]; ok {
		return face
	}
	face := &text.GoTextFace{Source: f.source, Size: size}
	f.faces[size] = face
	return face
}
