package main

import (
	"github.com/spf13/cobra"
)

var pricesCmd = &cobra.Command{
	Use:   "prices",
	Short: "Current market price quotes for all crops",
	RunE: func(cmd *cobra.Command, args []string) error {
		advisor, err := newAdvisor(cfg)
		if err != nil {
			return err
		}

		quotes, err := advisor.Prices(cmd.Context())
		if err != nil {
			return err
		}
		return printJSON(cmd, quotes)
	},
}

func init() {
	rootCmd.AddCommand(pricesCmd)
}
