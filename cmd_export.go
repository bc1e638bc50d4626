package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"kmap/pkg/editor/config"
	"kmap/pkg/editor/history"
	"kmap/pkg/editor/model"
	"kmap/pkg/editor/renderer/raster"
	"kmap/pkg/engine/palette"
)

var exportCmd = &cobra.Command{
	Use:   "export <file>",
	Short: "Render a map file to PNG",
	Args:  cobra.ExactArgs(1),
	RunE:  runExport,
}

var (
	flagExportOut        string
	flagExportCellSize   float64
	flagExportMargin     float64
	flagExportBackground string
	flagExportDark       bool
)

func init() {
	exportCmd.Flags().StringVarP(&flagExportOut, "output", "o", "", "PNG file (default: <file>.png)")
	exportCmd.Flags().Float64Var(&flagExportCellSize, "cell-size", 0, "cell size in pixels (overrides config)")
	exportCmd.Flags().Float64Var(&flagExportMargin, "margin", -1, "margin around the map in pixels (overrides config)")
	exportCmd.Flags().StringVar(&flagExportBackground, "background", "", "background color: #rrggbb, gray level or r,g,b")
	exportCmd.Flags().BoolVar(&flagExportDark, "dark", false, "keep the map's own line and text colors")
}

// exportOptions resolves the export section for m. Unless the export is
// dark, lines and labels are drawn black so they show on a light background.
func exportOptions(cfg *config.Config, m *model.Model) (raster.Options, error) {
	bg, err := cfg.ExportBackground()
	if err != nil {
		return raster.Options{}, fmt.Errorf("export.background: %w", err)
	}
	s := m.Style()
	if cfg.Export.Light {
		s.Lines.Color = palette.Black
		s.Text.Color = palette.Black
		s.OutValues.Color = palette.Black
	}
	return raster.Options{
		CellSize:   cfg.Export.CellSize,
		Margin:     cfg.Export.Margin,
		Background: bg,
		Style:      &s,
	}, nil
}

func runExport(cmd *cobra.Command, args []string) error {
	cfg := config.Current()
	if flagExportDark {
		cfg.Export.Light = false
	}
	if flagExportBackground != "" {
		cfg.Export.Background = flagExportBackground
	}

	m, err := openMap(cfg, args[0], false)
	if err != nil {
		return err
	}
	opts, err := exportOptions(cfg, m)
	if err != nil {
		return err
	}
	if flagExportCellSize > 0 {
		opts.CellSize = flagExportCellSize
	}
	if flagExportMargin >= 0 {
		opts.Margin = flagExportMargin
	}

	out := flagExportOut
	if out == "" {
		out = pngPath(args[0])
	}
	if err := raster.ExportPNG(out, m, opts); err != nil {
		return err
	}
	slog.Info("image exported", "path", out)

	if hist := openHistory(cfg); hist != nil {
		defer hist.Close()
		record(hist, history.KindExport, out, m)
	}
	fmt.Println(out)
	return nil
}
