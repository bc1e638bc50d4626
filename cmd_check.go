package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"kmap/pkg/editor/serial"
)

var checkCmd = &cobra.Command{
	Use:   "check <file>...",
	Short: "Validate map files without opening them",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runCheck,
}

func runCheck(cmd *cobra.Command, args []string) error {
	ok, failed := 0, 0
	for _, path := range args {
		doc, err := serial.CheckFile(path)
		if err != nil {
			fmt.Printf("  ✗ %s\n      %v\n", path, err)
			failed++
			continue
		}
		fmt.Printf("  ✓ %s (%d variables, %d groups)\n", path, doc.VariableCount, len(doc.Groups))
		ok++
	}
	fmt.Printf("\n%d ok, %d failed\n", ok, failed)
	if failed > 0 {
		return fmt.Errorf("%d of %d files failed validation", failed, len(args))
	}
	return nil
}
