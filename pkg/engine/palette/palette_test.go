package palette

import (
	"errors"
	"testing"
)

func TestInput_Resolve(t *testing.T) {
	tests := []struct {
		name string
		in   Input
		want RGB
	}{
		{"hex long", FromHex("#ff8000"), RGB{255, 128, 0}},
		{"hex short", FromHex("#0f0"), RGB{0, 255, 0}},
		{"hex no hash", FromHex("0000ff"), RGB{0, 0, 255}},
		{"gray", FromGray(128), RGB{128, 128, 128}},
		{"rgb", FromRGB(1, 2, 3), RGB{1, 2, 3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.in.Resolve()
			if err != nil {
				t.Fatalf("Resolve() error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Resolve() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestInput_ResolveInvalid(t *testing.T) {
	for _, in := range []Input{
		FromHex("#12"),
		FromHex("zzzzzz"),
		FromGray(256),
		FromGray(-1),
		FromRGB(0, 300, 0),
		{Kind: Kind(42)},
	} {
		if _, err := in.Resolve(); !errors.Is(err, ErrInvalidColor) {
			t.Errorf("Resolve(%+v) error = %v, want ErrInvalidColor", in, err)
		}
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want RGB
	}{
		{"#ffffff", White},
		{"255,0,0", Red},
		{" 10, 20 ,30 ", RGB{10, 20, 30}},
		{"64", RGB{64, 64, 64}},
		{"abc", RGB{0xaa, 0xbb, 0xcc}},
	}
	for _, tt := range tests {
		got, err := Parse(tt.in)
		if err != nil {
			t.Errorf("Parse(%q) error: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("Parse(%q) = %+v, want %+v", tt.in, got, tt.want)
		}
	}
	for _, bad := range []string{"", "1,2", "a,b,c", "999", "#ggg"} {
		if _, err := Parse(bad); err == nil {
			t.Errorf("Parse(%q) = nil error, want failure", bad)
		}
	}
}

func TestRGB_HexAndTriple(t *testing.T) {
	c := RGB{255, 16, 1}
	if got := c.Hex(); got != "#ff1001" {
		t.Errorf("Hex() = %q, want #ff1001", got)
	}
	back, err := FromTriple(c.Triple())
	if err != nil || back != c {
		t.Errorf("FromTriple(Triple()) = %+v, %v; want %+v", back, err, c)
	}
}

func TestCycle(t *testing.T) {
	c := NewCycle([]RGB{Red, Green})
	if c.Current() != Red {
		t.Errorf("Current() = %+v, want Red", c.Current())
	}
	if got := c.Advance(); got != Green {
		t.Errorf("Advance() = %+v, want Green", got)
	}
	if got := c.Advance(); got != Red {
		t.Errorf("Advance() wrap = %+v, want Red", got)
	}
	if c.Select(5) {
		t.Error("Select(5) = true, want false")
	}
	if !c.Select(1) || c.Current() != Green {
		t.Error("Select(1) did not move to Green")
	}
	if NewCycle(nil).Len() != len(DefaultGroupColors) {
		t.Error("NewCycle(nil) should fall back to DefaultGroupColors")
	}
}
