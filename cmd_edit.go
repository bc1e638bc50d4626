package main

import (
	"fmt"
	"log/slog"

	"github.com/leonelquinteros/gotext"
	"github.com/spf13/cobra"

	"kmap/pkg/editor/config"
	"kmap/pkg/editor/history"
	"kmap/pkg/editor/model"
	"kmap/pkg/editor/renderer/ebiten"
	"kmap/pkg/editor/renderer/raster"
	"kmap/pkg/editor/serial"
	"kmap/pkg/editor/session"
)

var editCmd = &cobra.Command{
	Use:   "edit [file]",
	Short: "Open a map in the editor window",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runEdit,
}

func init() {
	editCmd.Flags().StringP("output", "o", "", "PNG written by the export key (default: <file>.png)")
}

func runEdit(cmd *cobra.Command, args []string) error {
	cfg := config.Current()
	path := "kmap.json"
	if len(args) > 0 {
		path = args[0]
	}
	out, _ := cmd.Flags().GetString("output")
	if out == "" {
		out = pngPath(path)
	}

	m, err := openMap(cfg, path, true)
	if err != nil {
		return err
	}
	snap, err := cfg.SnapMode()
	if err != nil {
		return err
	}
	colors, err := cfg.GroupColors()
	if err != nil {
		return err
	}
	background, err := cfg.Background()
	if err != nil {
		return err
	}

	hist := openHistory(cfg)
	if hist != nil {
		defer hist.Close()
	}

	ed := session.New(m, session.Options{
		Snap:     snap,
		Colors:   colors,
		VarNames: cfg.Editor.VarNames,
		Zoom:     session.Zoom{Step: cfg.Editor.ZoomStep, Min: session.DefaultZoom.Min, Max: session.DefaultZoom.Max},
		Hooks: session.Hooks{
			Save: func(m *model.Model) error {
				if err := serial.SaveFile(path, m); err != nil {
					slog.Error("save failed", "path", path, "err", err)
					return err
				}
				slog.Info("map saved", "path", path)
				record(hist, history.KindSave, path, m)
				return nil
			},
			Export: func(m *model.Model) error {
				opts, err := exportOptions(cfg, m)
				if err != nil {
					return err
				}
				if err := raster.ExportPNG(out, m, opts); err != nil {
					slog.Error("export failed", "path", out, "err", err)
					return err
				}
				slog.Info("image exported", "path", out)
				record(hist, history.KindExport, out, m)
				return nil
			},
			Zoomed: func(cellSize float64) {
				if err := config.Current().SetCellSize(cellSize); err != nil {
					slog.Warn("could not save preferences", "err", err)
				}
			},
		},
	})

	win, err := ebiten.New(ed, ebiten.Options{
		Title:      fmt.Sprintf("%s - %s", gotext.Get("Karnaugh map"), path),
		Width:      cfg.Window.Width,
		Height:     cfg.Window.Height,
		Background: background,
		Logger:     slog.Default().With("component", "window"),
	})
	if err != nil {
		return err
	}
	return win.Run()
}
