package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"kmap/pkg/editor/config"
	"kmap/pkg/engine/terminal"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recently saved and exported maps",
	Args:  cobra.NoArgs,
	RunE:  runHistory,
}

var flagHistoryLimit int

func init() {
	historyCmd.Flags().IntVarP(&flagHistoryLimit, "limit", "n", 20, "number of entries, 0 for all")
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg := config.Current()
	hist := openHistory(cfg)
	if hist == nil {
		return fmt.Errorf("history database %q is not available", cfg.HistoryDB)
	}
	defer hist.Close()

	entries, err := hist.List(cmd.Context(), flagHistoryLimit)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Println("no history yet")
		return nil
	}

	// time, kind, counts and padding take about 40 columns
	pathWidth := max(terminal.GetWidth(os.Stdout)-40, 20)
	for _, e := range entries {
		fmt.Printf("%s  %-6s  %dv %2dg  %s\n",
			e.Time.Local().Format("2006-01-02 15:04"), e.Kind, e.VariableCount, e.Groups,
			truncateLeft(e.Path, pathWidth))
	}
	return nil
}

// truncateLeft keeps the end of s, which for paths is the file name
func truncateLeft(s string, width int) string {
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	return "…" + string(r[len(r)-width+1:])
}
