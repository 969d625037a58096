package main

import (
	"fmt"

	"github.com/mohammad-safakhou/labchain/internal/completeness"
	"github.com/mohammad-safakhou/labchain/models"
	"github.com/spf13/cobra"
)

func analyzeCMD() *cobra.Command {
	var (
		format string
		step   int
	)
	cmd := &cobra.Command{
		Use:   "analyze [file]",
		Short: "Report missing step details in a protocol document",
		Long:  "Reads a protocol ({title, steps: [...]}) as JSON or YAML from a file (or stdin) and prints its completeness report.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkFormat(format); err != nil {
				return err
			}
			b, err := readInput(cmd.InOrStdin(), args)
			if err != nil {
				return err
			}
			var doc models.ProtocolInput
			if err := decodeDocument(b, &doc); err != nil {
				return err
			}

			var report models.CompletenessReport
			switch {
			case step == 0:
				report = completeness.Analyze(doc.Steps)
			case step < 0 || step > len(doc.Steps):
				return fmt.Errorf("--step %d out of range for %d steps", step, len(doc.Steps))
			default:
				report = completeness.AnalyzeStep(doc.Steps, step-1)
			}
			return writeOutput(cmd.OutOrStdout(), format, report)
		},
	}
	cmd.Flags().StringVarP(&format, "output", "o", formatJSON, "output format: json or yaml")
	cmd.Flags().IntVar(&step, "step", 0, "analyze only this step (1-based); 0 analyzes all")
	return cmd
}
