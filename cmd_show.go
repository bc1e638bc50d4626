package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"kmap/pkg/editor/config"
	"kmap/pkg/editor/renderer/tui"
	"kmap/pkg/engine/terminal"
)

var showCmd = &cobra.Command{
	Use:   "show <file>",
	Short: "Print a map file as a table",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

var flagShowColor string

func init() {
	showCmd.Flags().StringVar(&flagShowColor, "color", "auto", "color group letters: auto, always or never")
}

func runShow(cmd *cobra.Command, args []string) error {
	m, err := openMap(config.Current(), args[0], false)
	if err != nil {
		return err
	}
	var useColor bool
	switch flagShowColor {
	case "auto":
		useColor = terminal.IsTerminal(os.Stdout)
	case "always":
		useColor = true
	case "never":
	default:
		return fmt.Errorf("--color must be auto, always or never, got %q", flagShowColor)
	}
	return tui.Render(os.Stdout, m, tui.Options{Color: useColor})
}
