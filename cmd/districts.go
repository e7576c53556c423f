package main

import (
	"github.com/spf13/cobra"
)

var districtsCmd = &cobra.Command{
	Use:   "districts [district]",
	Short: "List covered districts, or show climate data for one",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		advisor, err := newAdvisor(cfg)
		if err != nil {
			return err
		}

		if len(args) == 0 {
			names, err := advisor.Districts(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(cmd, names)
		}

		climate, err := advisor.Climate(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return printJSON(cmd, climate)
	},
}

func init() {
	rootCmd.AddCommand(districtsCmd)
}
