// Package style holds the cosmetic settings used when drawing a map.
package style

import (
	"errors"
	"fmt"

	"kmap/pkg/engine/palette"
)

// ErrInvalidStyle is returned by Validate
var ErrInvalidStyle = errors.New("invalid style")

// Stroke is a colored line
type Stroke struct {
	Color palette.RGB
	Width float64
}

// Label is colored text scaled relative to the cell size
type Label struct {
	Color palette.RGB
	Scale float64
}

// Style is copied by value; callers override fields on their own copy
type Style struct {
	Lines     Stroke
	Text      Label
	OutValues Label
	// GroupBorderWidth is the stroke width of group outlines
	GroupBorderWidth float64
}

// Default returns the stock look: white on transparent
func Default() Style {
	return Style{
		Lines:            Stroke{Color: palette.White, Width: 2},
		Text:             Label{Color: palette.White, Scale: 0.33},
		OutValues:        Label{Color: palette.White, Scale: 0.5},
		GroupBorderWidth: 4,
	}
}

// Light returns a variant for white backgrounds, used by PNG export
func Light() Style {
	s := Default()
	s.Lines.Color = palette.Black
	s.Text.Color = palette.Black
	s.OutValues.Color = palette.Black
	return s
}

// Validate checks that every width and scale is non-negative
func (s Style) Validate() error {
	checks := []struct {
		name string
		v    float64
	}{
		{"lines.width", s.Lines.Width},
		{"text.scale", s.Text.Scale},
		{"outValues.scale", s.OutValues.Scale},
		{"groups.borderWidth", s.GroupBorderWidth},
	}
	for _, c := range checks {
		if c.v < 0 {
			return fmt.Errorf("%w: %s is %g, want >= 0", ErrInvalidStyle, c.name, c.v)
		}
	}
	return nil
}
