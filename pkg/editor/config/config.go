// Package config loads and saves the editor's YAML preferences.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"

	"kmap/pkg/editor/group"
	"kmap/pkg/editor/style"
	"kmap/pkg/engine/palette"
)

type Config struct {
	LogLevel  string            `yaml:"loglevel"`
	LogFile   string            `yaml:"logfile"`
	HistoryDB string            `yaml:"history_db"`
	Locale    string            `yaml:"locale"`
	Editor    EditorConfig      `yaml:"editor"`
	Style     StyleConfig       `yaml:"style"`
	Export    ExportConfig      `yaml:"export"`
	Window    WindowConfig      `yaml:"window"`
	Bindings  map[string]string `yaml:"bindings,omitempty"`

	path string
}

type EditorConfig struct {
	VariableCount int      `yaml:"variable_count"`
	VarNames      []string `yaml:"var_names"`
	CellSize      float64  `yaml:"cell_size"`
	ZoomStep      float64  `yaml:"zoom_step"`
	Snap          string   `yaml:"snap"` // nearest, floor or none
	Palette       []string `yaml:"palette"`
}

type StyleConfig struct {
	LineColor   string  `yaml:"line_color"`
	LineWidth   float64 `yaml:"line_width"`
	TextColor   string  `yaml:"text_color"`
	TextScale   float64 `yaml:"text_scale"`
	ValueColor  string  `yaml:"value_color"`
	ValueScale  float64 `yaml:"value_scale"`
	BorderWidth float64 `yaml:"border_width"`
	Background  string  `yaml:"background"`
}

type ExportConfig struct {
	CellSize   float64 `yaml:"cell_size"`
	Margin     float64 `yaml:"margin"`
	Background string  `yaml:"background"`
	Light      bool    `yaml:"light"` // dark lines and text for white backgrounds
}

type WindowConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// Defaults returns a Config populated with all default values.
func Defaults() *Config {
	return defaults()
}

func defaults() *Config {
	d := style.Default()
	return &Config{
		LogLevel:  "warn",
		LogFile:   "",
		HistoryDB: defaultDataPath("history.db"),
		Locale:    "en",
		Editor: EditorConfig{
			VariableCount: 4,
			VarNames:      []string{"A", "B", "C", "D"},
			CellSize:      48,
			ZoomStep:      4,
			Snap:          group.SnapNearest.String(),
			Palette:       hexList(palette.DefaultGroupColors),
		},
		Style: StyleConfig{
			LineColor:   d.Lines.Color.Hex(),
			LineWidth:   d.Lines.Width,
			TextColor:   d.Text.Color.Hex(),
			TextScale:   d.Text.Scale,
			ValueColor:  d.OutValues.Color.Hex(),
			ValueScale:  d.OutValues.Scale,
			BorderWidth: d.GroupBorderWidth,
			Background:  palette.Black.Hex(),
		},
		Export: ExportConfig{
			CellSize:   64,
			Margin:     16,
			Background: palette.White.Hex(),
			Light:      true,
		},
		Window: WindowConfig{Width: 800, Height: 600},
	}
}

func hexList(colors []palette.RGB) []string {
	out := make([]string, len(colors))
	for i, c := range colors {
		out[i] = c.Hex()
	}
	return out
}

// DefaultPath returns the config file location under the user config dir
func DefaultPath() string {
	return defaultDataPath("config.yaml")
}

func defaultDataPath(name string) string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return name
	}
	return filepath.Join(dir, "kmap", name)
}

func Load(path string) (*Config, error) {
	cfg := defaults()
	cfg.path = path
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return cfg, nil
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadOrDefault loads path, falling back to defaults when the file does not exist yet
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		cfg = defaults()
		cfg.path = path
		return cfg, nil
	}
	return cfg, err
}

// Save writes cfg to path in YAML format, creating parent directories as needed.
func Save(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}

// Path returns the file the config was loaded from
func (c *Config) Path() string {
	return c.path
}

// MapStyle resolves the style section
func (c *Config) MapStyle() (style.Style, error) {
	s := style.Style{
		Lines:            style.Stroke{Width: c.Style.LineWidth},
		Text:             style.Label{Scale: c.Style.TextScale},
		OutValues:        style.Label{Scale: c.Style.ValueScale},
		GroupBorderWidth: c.Style.BorderWidth,
	}
	var err error
	if s.Lines.Color, err = palette.Parse(c.Style.LineColor); err != nil {
		return style.Style{}, fmt.Errorf("style.line_color: %w", err)
	}
	if s.Text.Color, err = palette.Parse(c.Style.TextColor); err != nil {
		return style.Style{}, fmt.Errorf("style.text_color: %w", err)
	}
	if s.OutValues.Color, err = palette.Parse(c.Style.ValueColor); err != nil {
		return style.Style{}, fmt.Errorf("style.value_color: %w", err)
	}
	if err := s.Validate(); err != nil {
		return style.Style{}, err
	}
	return s, nil
}

// Background resolves the window background color
func (c *Config) Background() (palette.RGB, error) {
	return palette.Parse(c.Style.Background)
}

// ExportBackground resolves the PNG background color
func (c *Config) ExportBackground() (palette.RGB, error) {
	return palette.Parse(c.Export.Background)
}

// GroupColors resolves the palette used for new groups
func (c *Config) GroupColors() ([]palette.RGB, error) {
	colors := make([]palette.RGB, 0, len(c.Editor.Palette))
	for i, s := range c.Editor.Palette {
		rgb, err := palette.Parse(s)
		if err != nil {
			return nil, fmt.Errorf("editor.palette[%d]: %w", i, err)
		}
		colors = append(colors, rgb)
	}
	return colors, nil
}

// SnapMode resolves editor.snap
func (c *Config) SnapMode() (group.Snap, error) {
	return group.ParseSnap(c.Editor.Snap)
}

// Validate checks every section that is resolved lazily
func (c *Config) Validate() error {
	if _, err := c.MapStyle(); err != nil {
		return err
	}
	if _, err := c.GroupColors(); err != nil {
		return err
	}
	if _, err := c.SnapMode(); err != nil {
		return fmt.Errorf("editor.snap: %w", err)
	}
	if _, err := c.Background(); err != nil {
		return fmt.Errorf("style.background: %w", err)
	}
	if _, err := c.ExportBackground(); err != nil {
		return fmt.Errorf("export.background: %w", err)
	}
	if c.Editor.CellSize <= 0 {
		return fmt.Errorf("editor.cell_size must be positive, got %g", c.Editor.CellSize)
	}
	return nil
}

var (
	mu      sync.Mutex
	current *Config
)

// Current returns the active config, defaults if none was set
func Current() *Config {
	mu.Lock()
	defer mu.Unlock()
	if current == nil {
		current = defaults()
	}
	return current
}

// SetCurrent makes cfg the active config
func SetCurrent(cfg *Config) {
	mu.Lock()
	defer mu.Unlock()
	current = cfg
}

// SetCellSize remembers the editor zoom level and writes it back to the
// config file, if the config was loaded from one
func (c *Config) SetCellSize(size float64) error {
	if size <= 0 {
		return fmt.Errorf("cell size must be positive, got %g", size)
	}
	c.Editor.CellSize = size
	if c.path == "" {
		return nil
	}
	return Save(c.path, c)
}
