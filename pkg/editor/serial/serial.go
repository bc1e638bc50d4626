package serial

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"kmap/pkg/editor/group"
	"kmap/pkg/editor/model"
	"kmap/pkg/engine/grid"
	"kmap/pkg/engine/palette"
)

var (
	// ErrParse is returned for text that is not a map document
	ErrParse = errors.New("parse error")
	// ErrValidationFailed is returned for a well-formed document that breaks a map invariant
	ErrValidationFailed = errors.New("validation failed")
)

var (
	documentKeys = []string{"groups", "outValues", "style", "variableCount", "varNames"}
	styleKeys    = []string{"lines", "text", "outValues", "groups"}
	strokeKeys   = []string{"color", "width"}
	labelKeys    = []string{"color", "scale"}
	nestedKeys   = map[string][]string{
		"lines":     strokeKeys,
		"text":      labelKeys,
		"outValues": labelKeys,
		"groups":    {"borderWidth"},
	}
)

// Validate checks a document against the invariants of a map built from
// its own variable count
func Validate(doc Document) error {
	size, err := grid.Dimensions(doc.VariableCount)
	if err != nil {
		return fmt.Errorf("%w: variableCount: %w", ErrValidationFailed, err)
	}
	if len(doc.VarNames) < doc.VariableCount {
		return fmt.Errorf("%w: varNames: %d names for %d variables", ErrValidationFailed, len(doc.VarNames), doc.VariableCount)
	}

	if len(doc.OutValues) != size.Rows {
		return fmt.Errorf("%w: outValues: %d rows, want %d", ErrValidationFailed, len(doc.OutValues), size.Rows)
	}
	for y, row := range doc.OutValues {
		if len(row) != size.Cols {
			return fmt.Errorf("%w: outValues[%d]: %d cells, want %d", ErrValidationFailed, y, len(row), size.Cols)
		}
		for x, v := range row {
			if v != 0 && v != 1 {
				return fmt.Errorf("%w: outValues[%d][%d]: %d is not 0 or 1", ErrValidationFailed, y, x, v)
			}
		}
	}

	for i, gd := range doc.Groups {
		g := group.Group{X: gd.X, Y: gd.Y, Width: gd.Width, Height: gd.Height}
		if err := group.Validate(g, size); err != nil {
			return fmt.Errorf("%w: groups[%d]: %w", ErrValidationFailed, i, err)
		}
		if _, err := palette.FromTriple(gd.Color); err != nil {
			return fmt.Errorf("%w: groups[%d].color: %w", ErrValidationFailed, i, err)
		}
	}

	st, err := doc.Style.Style()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrValidationFailed, err)
	}
	if err := st.Validate(); err != nil {
		return fmt.Errorf("%w: style: %w", ErrValidationFailed, err)
	}
	return nil
}

// Serialize validates the model and encodes it
func Serialize(m *model.Model) ([]byte, error) {
	doc := FromModel(m)
	if err := Validate(doc); err != nil {
		return nil, err
	}
	return json.Marshal(doc)
}

// Decode parses text into a document without validating it
func Decode(data []byte) (Document, error) {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(data, &top); err != nil {
		return Document{}, fmt.Errorf("%w: %w", ErrParse, err)
	}
	if err := checkKeys("", top, documentKeys); err != nil {
		return Document{}, err
	}
	var st map[string]json.RawMessage
	if err := json.Unmarshal(top["style"], &st); err != nil {
		return Document{}, fmt.Errorf("%w: style: %w", ErrParse, err)
	}
	if err := checkKeys("style.", st, styleKeys); err != nil {
		return Document{}, err
	}
	for _, k := range styleKeys {
		var sub map[string]json.RawMessage
		if err := json.Unmarshal(st[k], &sub); err != nil {
			return Document{}, fmt.Errorf("%w: style.%s: %w", ErrParse, k, err)
		}
		if err := checkKeys("style."+k+".", sub, nestedKeys[k]); err != nil {
			return Document{}, err
		}
	}
	if _, err := nonNullItems("groups", top["groups"]); err != nil {
		return Document{}, err
	}
	if _, err := nonNullItems("varNames", top["varNames"]); err != nil {
		return Document{}, err
	}
	rows, err := nonNullItems("outValues", top["outValues"])
	if err != nil {
		return Document{}, err
	}
	for y, row := range rows {
		if _, err := nonNullItems(fmt.Sprintf("outValues[%d]", y), row); err != nil {
			return Document{}, err
		}
	}

	var doc Document
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&doc); err != nil {
		return Document{}, fmt.Errorf("%w: %w", ErrParse, err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return Document{}, fmt.Errorf("%w: trailing data after document", ErrParse)
	}
	return doc, nil
}

func checkKeys(prefix string, got map[string]json.RawMessage, want []string) error {
	if got == nil {
		return fmt.Errorf("%w: %snull is not an object", ErrParse, prefix)
	}
	var unknown []string
	for k := range got {
		if !contains(want, k) {
			unknown = append(unknown, prefix+k)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return fmt.Errorf("%w: unknown keys %v", ErrParse, unknown)
	}
	for _, k := range want {
		v, ok := got[k]
		if !ok {
			return fmt.Errorf("%w: missing key %s%s", ErrParse, prefix, k)
		}
		if isNull(v) {
			return fmt.Errorf("%w: %s%s is null", ErrParse, prefix, k)
		}
	}
	return nil
}

func isNull(raw json.RawMessage) bool {
	return string(bytes.TrimSpace(raw)) == "null"
}

// nonNullItems splits a JSON array and rejects null elements
func nonNullItems(name string, raw json.RawMessage) ([]json.RawMessage, error) {
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrParse, name, err)
	}
	for i, item := range items {
		if isNull(item) {
			return nil, fmt.Errorf("%w: %s[%d] is null", ErrParse, name, i)
		}
	}
	return items, nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// Deserialize parses and validates data and only then replaces the model's
// state. On any error the model is unchanged.
func Deserialize(m *model.Model, data []byte) error {
	doc, err := Decode(data)
	if err != nil {
		return err
	}
	if err := Validate(doc); err != nil {
		return err
	}
	snap, err := doc.Snapshot()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrValidationFailed, err)
	}
	if err := m.Restore(snap); err != nil {
		return fmt.Errorf("%w: %w", ErrValidationFailed, err)
	}
	return nil
}

// SaveFile writes the model to path through a temporary file in the same directory
func SaveFile(path string, m *model.Model) error {
	data, err := Serialize(m)
	if err != nil {
		return err
	}
	data = append(data, '\n')

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("serial: create temp: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("serial: write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("serial: close %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("serial: rename %s: %w", path, err)
	}
	return nil
}

// LoadFile reads path into the model
func LoadFile(path string, m *model.Model) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("serial: read %s: %w", path, err)
	}
	if err := Deserialize(m, data); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

// CheckFile parses and validates path without loading it anywhere
func CheckFile(path string) (Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Document{}, fmt.Errorf("serial: read %s: %w", path, err)
	}
	doc, err := Decode(data)
	if err != nil {
		return Document{}, err
	}
	return doc, Validate(doc)
}
