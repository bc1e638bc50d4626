package main

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"kmap/pkg/editor/config"
	"kmap/pkg/editor/history"
	"kmap/pkg/editor/serial"
)

var newCmd = &cobra.Command{
	Use:   "new <file>",
	Short: "Create an empty map file",
	Args:  cobra.ExactArgs(1),
	RunE:  runNew,
}

var (
	flagNewVars  int
	flagNewNames string
	flagNewForce bool
)

func init() {
	newCmd.Flags().IntVar(&flagNewVars, "vars", 0, "number of variables, 2 to 4 (default from config)")
	newCmd.Flags().StringVar(&flagNewNames, "names", "", "one letter per variable, e.g. ABCD (default from config)")
	newCmd.Flags().BoolVarP(&flagNewForce, "force", "f", false, "overwrite an existing file")
}

func runNew(cmd *cobra.Command, args []string) error {
	path := args[0]
	if fileExists(path) && !flagNewForce {
		return fmt.Errorf("%s already exists, use --force to overwrite", path)
	}

	cfg := config.Current()
	if flagNewVars != 0 {
		cfg.Editor.VariableCount = flagNewVars
	}
	if flagNewNames != "" {
		cfg.Editor.VarNames = strings.Split(flagNewNames, "")
	}
	m, err := newModel(cfg)
	if err != nil {
		return err
	}
	if err := serial.SaveFile(path, m); err != nil {
		return err
	}
	slog.Info("map created", "path", path, "variables", m.VariableCount())

	if hist := openHistory(cfg); hist != nil {
		defer hist.Close()
		record(hist, history.KindNew, path, m)
	}
	fmt.Println(path)
	return nil
}
