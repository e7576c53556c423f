package main

import (
	"github.com/spf13/cobra"
)

var analyzeArea float64

var analyzeCmd = &cobra.Command{
	Use:   "analyze <crop>",
	Short: "Investment analysis for a crop over a planted area",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		advisor, err := newAdvisor(cfg)
		if err != nil {
			return err
		}

		analysis, err := advisor.Analyze(cmd.Context(), args[0], analyzeArea)
		if err != nil {
			return err
		}
		return printJSON(cmd, analysis)
	},
}

func init() {
	analyzeCmd.Flags().Float64Var(&analyzeArea, "area", 1.0, "planted area in hectares")
	rootCmd.AddCommand(analyzeCmd)
}
