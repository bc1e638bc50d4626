// Package serial reads and writes Karnaugh maps in their JSON file format.
package serial

import (
	"encoding/json"
	"fmt"

	"kmap/pkg/editor/group"
	"kmap/pkg/editor/model"
	"kmap/pkg/editor/style"
	"kmap/pkg/engine/palette"
)

// Document is the persisted form of a map
type Document struct {
	Groups        []GroupDoc `json:"groups"`
	OutValues     [][]int    `json:"outValues"`
	Style         StyleDoc   `json:"style"`
	VariableCount int        `json:"variableCount"`
	VarNames      []string   `json:"varNames"`
}

// Color is an [r, g, b] triple
type Color [3]int

// UnmarshalJSON accepts exactly three integers
func (c *Color) UnmarshalJSON(data []byte) error {
	parts, err := fields(data, 3, "color")
	if err != nil {
		return err
	}
	for i := range c {
		if err := json.Unmarshal(parts[i], &c[i]); err != nil {
			return fmt.Errorf("color channel %d: %w", i, err)
		}
	}
	return nil
}

// fields splits a fixed-length JSON array, rejecting null entries
func fields(data []byte, n int, what string) ([]json.RawMessage, error) {
	var parts []json.RawMessage
	if err := json.Unmarshal(data, &parts); err != nil {
		return nil, err
	}
	if len(parts) != n {
		return nil, fmt.Errorf("%s has %d fields, want %d", what, len(parts), n)
	}
	for i, p := range parts {
		if isNull(p) {
			return nil, fmt.Errorf("%s field %d is null", what, i)
		}
	}
	return parts, nil
}

// GroupDoc is a group stored as [x, y, width, height, [r, g, b]]
type GroupDoc struct {
	X, Y          int
	Width, Height int
	Color         Color
}

// MarshalJSON writes the 5-tuple form
func (g GroupDoc) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{g.X, g.Y, g.Width, g.Height, g.Color})
}

// UnmarshalJSON reads the 5-tuple form
func (g *GroupDoc) UnmarshalJSON(data []byte) error {
	parts, err := fields(data, 5, "group")
	if err != nil {
		return err
	}
	for i, dst := range []*int{&g.X, &g.Y, &g.Width, &g.Height} {
		if err := json.Unmarshal(parts[i], dst); err != nil {
			return fmt.Errorf("group field %d: %w", i, err)
		}
	}
	if err := json.Unmarshal(parts[4], &g.Color); err != nil {
		return fmt.Errorf("group color: %w", err)
	}
	return nil
}

// StrokeDoc is a colored line setting
type StrokeDoc struct {
	Color Color   `json:"color"`
	Width float64 `json:"width"`
}

// LabelDoc is a colored, scaled text setting
type LabelDoc struct {
	Color Color   `json:"color"`
	Scale float64 `json:"scale"`
}

// GroupStyleDoc holds the group outline settings
type GroupStyleDoc struct {
	BorderWidth float64 `json:"borderWidth"`
}

// StyleDoc is the persisted style
type StyleDoc struct {
	Lines     StrokeDoc     `json:"lines"`
	Text      LabelDoc      `json:"text"`
	OutValues LabelDoc      `json:"outValues"`
	Groups    GroupStyleDoc `json:"groups"`
}

// FromStyle converts a style to its persisted form
func FromStyle(s style.Style) StyleDoc {
	return StyleDoc{
		Lines:     StrokeDoc{Color: s.Lines.Color.Triple(), Width: s.Lines.Width},
		Text:      LabelDoc{Color: s.Text.Color.Triple(), Scale: s.Text.Scale},
		OutValues: LabelDoc{Color: s.OutValues.Color.Triple(), Scale: s.OutValues.Scale},
		Groups:    GroupStyleDoc{BorderWidth: s.GroupBorderWidth},
	}
}

// Style converts back to a style value. Colors must be valid.
func (d StyleDoc) Style() (style.Style, error) {
	lines, err := palette.FromTriple(d.Lines.Color)
	if err != nil {
		return style.Style{}, fmt.Errorf("style.lines.color: %w", err)
	}
	text, err := palette.FromTriple(d.Text.Color)
	if err != nil {
		return style.Style{}, fmt.Errorf("style.text.color: %w", err)
	}
	values, err := palette.FromTriple(d.OutValues.Color)
	if err != nil {
		return style.Style{}, fmt.Errorf("style.outValues.color: %w", err)
	}
	return style.Style{
		Lines:            style.Stroke{Color: lines, Width: d.Lines.Width},
		Text:             style.Label{Color: text, Scale: d.Text.Scale},
		OutValues:        style.Label{Color: values, Scale: d.OutValues.Scale},
		GroupBorderWidth: d.Groups.BorderWidth,
	}, nil
}

// FromModel captures the persistent state of m
func FromModel(m *model.Model) Document {
	snap := m.Snapshot()
	doc := Document{
		Groups:        make([]GroupDoc, 0, len(snap.Groups)),
		OutValues:     snap.OutValues,
		Style:         FromStyle(snap.Style),
		VariableCount: snap.VariableCount,
		VarNames:      snap.VarNames,
	}
	for _, g := range snap.Groups {
		doc.Groups = append(doc.Groups, GroupDoc{
			X:      g.X,
			Y:      g.Y,
			Width:  g.Width,
			Height: g.Height,
			Color:  g.Color.Triple(),
		})
	}
	return doc
}

// Snapshot converts a validated document into model state
func (d Document) Snapshot() (model.Snapshot, error) {
	st, err := d.Style.Style()
	if err != nil {
		return model.Snapshot{}, err
	}
	snap := model.Snapshot{
		VariableCount: d.VariableCount,
		VarNames:      append([]string(nil), d.VarNames...),
		OutValues:     d.OutValues,
		Groups:        make([]group.Group, 0, len(d.Groups)),
		Style:         st,
	}
	for i, g := range d.Groups {
		c, err := palette.FromTriple(g.Color)
		if err != nil {
			return model.Snapshot{}, fmt.Errorf("groups[%d]: %w", i, err)
		}
		snap.Groups = append(snap.Groups, group.Group{X: g.X, Y: g.Y, Width: g.Width, Height: g.Height, Color: c})
	}
	return snap, nil
}
