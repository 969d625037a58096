package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCMD().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCMD() *cobra.Command {
	root := &cobra.Command{
		Use:          "labchain",
		Short:        "Structure lab protocols and check them for missing details",
		SilenceUsage: true,
	}
	root.AddCommand(serveCMD(), extractCMD(), analyzeCMD())
	return root
}

func checkFormat(format string) error {
	switch format {
	case formatJSON, formatYAML:
		return nil
	default:
		return fmt.Errorf("unknown output format %q (want json or yaml)", format)
	}
}
