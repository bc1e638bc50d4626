// Package palette resolves the color inputs accepted by the editor (hex
// strings, grayscale levels and RGB triples) to a canonical RGB value.
package palette

import (
	"errors"
	"fmt"
	"image/color"
	"strings"

	gcolor "github.com/gookit/color"
)

// ErrInvalidColor is returned when a color input cannot be resolved
var ErrInvalidColor = errors.New("invalid color")

// RGB is an opaque 8-bit color
type RGB struct {
	R, G, B uint8
}

// RGBA converts to the standard library color type
func (c RGB) RGBA() color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 255}
}

// Hex returns the color as "#rrggbb"
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Triple returns the channels as ints, the persisted representation
func (c RGB) Triple() [3]int {
	return [3]int{int(c.R), int(c.G), int(c.B)}
}

// FromTriple builds an RGB from three 0-255 channels
func FromTriple(t [3]int) (RGB, error) {
	for _, v := range t {
		if v < 0 || v > 255 {
			return RGB{}, fmt.Errorf("%w: channel %d out of range 0-255", ErrInvalidColor, v)
		}
	}
	return RGB{R: uint8(t[0]), G: uint8(t[1]), B: uint8(t[2])}, nil
}

// Kind tells which variant an Input holds
type Kind int

const (
	KindRGB Kind = iota
	KindHex
	KindGray
)

// Input is one of the accepted color forms
type Input struct {
	Kind Kind
	Hex  string
	Gray int
	RGB  [3]int
}

// FromHex wraps a "#rgb" or "#rrggbb" string
func FromHex(s string) Input {
	return Input{Kind: KindHex, Hex: s}
}

// FromGray wraps a single 0-255 level used for all three channels
func FromGray(level int) Input {
	return Input{Kind: KindGray, Gray: level}
}

// FromRGB wraps an RGB triple
func FromRGB(r, g, b int) Input {
	return Input{Kind: KindRGB, RGB: [3]int{r, g, b}}
}

// Resolve converts the input to a canonical RGB
func (in Input) Resolve() (RGB, error) {
	switch in.Kind {
	case KindHex:
		s := strings.TrimSpace(in.Hex)
		rgb := gcolor.HexToRgb(s)
		if len(rgb) != 3 {
			return RGB{}, fmt.Errorf("%w: hex %q", ErrInvalidColor, in.Hex)
		}
		return FromTriple([3]int{rgb[0], rgb[1], rgb[2]})
	case KindGray:
		return FromTriple([3]int{in.Gray, in.Gray, in.Gray})
	case KindRGB:
		return FromTriple(in.RGB)
	}
	return RGB{}, fmt.Errorf("%w: unknown kind %d", ErrInvalidColor, in.Kind)
}

// Parse accepts the textual forms used in config files and flags:
// "#ff0000", "ff0000", "128" (gray) or "255,0,0".
func Parse(s string) (RGB, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return RGB{}, fmt.Errorf("%w: empty", ErrInvalidColor)
	}
	if strings.Contains(s, ",") {
		parts := strings.Split(s, ",")
		if len(parts) != 3 {
			return RGB{}, fmt.Errorf("%w: %q needs 3 channels", ErrInvalidColor, s)
		}
		var t [3]int
		for i, p := range parts {
			if _, err := fmt.Sscanf(strings.TrimSpace(p), "%d", &t[i]); err != nil {
				return RGB{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
			}
		}
		return FromRGB(t[0], t[1], t[2]).Resolve()
	}
	if strings.HasPrefix(s, "#") || len(s) == 6 || (len(s) == 3 && !isDigits(s)) {
		return FromHex(s).Resolve()
	}
	var level int
	if _, err := fmt.Sscanf(s, "%d", &level); err != nil || !isDigits(s) {
		return RGB{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	return FromGray(level).Resolve()
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}

// Common colors
var (
	White   = RGB{255, 255, 255}
	Black   = RGB{0, 0, 0}
	Red     = RGB{255, 0, 0}
	Green   = RGB{0, 200, 0}
	Blue    = RGB{60, 120, 255}
	Yellow  = RGB{255, 220, 0}
	Magenta = RGB{230, 0, 230}
	Cyan    = RGB{0, 220, 220}
	Orange  = RGB{255, 150, 0}
)

// DefaultGroupColors is the cycle used for new groups
var DefaultGroupColors = []RGB{Red, Green, Blue, Yellow, Magenta, Cyan, Orange}

// Cycle hands out colors from a fixed list in order
type Cycle struct {
	colors []RGB
	next   int
}

// NewCycle creates a cycle over colors, falling back to DefaultGroupColors
func NewCycle(colors []RGB) *Cycle {
	if len(colors) == 0 {
		colors = DefaultGroupColors
	}
	c := make([]RGB, len(colors))
	copy(c, colors)
	return &Cycle{colors: c}
}

// Current returns the color that the next group will use
func (c *Cycle) Current() RGB {
	return c.colors[c.next]
}

// Advance moves to the next color and returns it
func (c *Cycle) Advance() RGB {
	c.next = (c.next + 1) % len(c.colors)
	return c.colors[c.next]
}

// Select jumps to index i; out of range indices are ignored
func (c *Cycle) Select(i int) bool {
	if i < 0 || i >= len(c.colors) {
		return false
	}
	c.next = i
	return true
}

// Len returns the number of colors in the cycle
func (c *Cycle) Len() int {
	return len(c.colors)
}
