package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"kmap/pkg/editor/config"
	"kmap/pkg/editor/history"
	"kmap/pkg/editor/model"
	"kmap/pkg/editor/serial"
)

// newModel builds an empty map from the editor section of the config
func newModel(cfg *config.Config) (*model.Model, error) {
	m := model.New()
	names := cfg.Editor.VarNames
	if len(names) == 0 {
		names = model.DefaultVarNames
	}
	if err := m.ChangeVariableCount(cfg.Editor.VariableCount, names, true); err != nil {
		return nil, fmt.Errorf("editor.variable_count: %w", err)
	}
	s, err := cfg.MapStyle()
	if err != nil {
		return nil, err
	}
	m.SetStyle(s)
	m.SetCellSize(cfg.Editor.CellSize)
	return m, nil
}

// openMap loads path into a map configured from cfg. A missing file yields
// an empty map when allowMissing is set.
func openMap(cfg *config.Config, path string, allowMissing bool) (*model.Model, error) {
	m, err := newModel(cfg)
	if err != nil {
		return nil, err
	}
	if err := serial.LoadFile(path, m); err != nil {
		if allowMissing && errors.Is(err, fs.ErrNotExist) {
			slog.Info("no map file yet, starting empty", "path", path)
			return m, nil
		}
		return nil, err
	}
	return m, nil
}

// pngPath is the default export location for a map file
func pngPath(mapPath string) string {
	return strings.TrimSuffix(mapPath, ".json") + ".png"
}

// openHistory opens the history database named in the config. Failures are
// logged and yield nil so commands keep working without history.
func openHistory(cfg *config.Config) *history.History {
	if cfg.HistoryDB == "" {
		return nil
	}
	h, err := history.New(cfg.HistoryDB)
	if err != nil {
		slog.Warn("history disabled", "path", cfg.HistoryDB, "err", err)
		return nil
	}
	return h
}

// record adds an event to the history, logging instead of failing
func record(h *history.History, kind, path string, m *model.Model) {
	if h == nil {
		return
	}
	e := history.Entry{Kind: kind, Path: path, VariableCount: m.VariableCount(), Groups: m.GroupCount()}
	if err := h.Record(context.Background(), e); err != nil {
		slog.Warn("could not record history", "kind", kind, "path", path, "err", err)
	}
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
