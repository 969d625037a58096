package main

import (
	"github.com/mohammad-safakhou/labchain/internal/extract"
	"github.com/spf13/cobra"
)

func extractCMD() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "extract [file]",
		Short: "Split protocol text into steps without a model",
		Long:  "Reads free text from a file (or stdin) and prints the rule-based extraction result.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkFormat(format); err != nil {
				return err
			}
			text, err := readInput(cmd.InOrStdin(), args)
			if err != nil {
				return err
			}
			return writeOutput(cmd.OutOrStdout(), format, extract.Standardize(string(text)))
		},
	}
	cmd.Flags().StringVarP(&format, "output", "o", formatJSON, "output format: json or yaml")
	return cmd
}
