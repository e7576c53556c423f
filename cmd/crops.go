package main

import (
	"github.com/spf13/cobra"
)

var cropsCmd = &cobra.Command{
	Use:   "crops [crop]",
	Short: "List known crops, or show details for one",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			store, err := loadStore(cfg)
			if err != nil {
				return err
			}
			return printJSON(cmd, store.CropIDs())
		}

		advisor, err := newAdvisor(cfg)
		if err != nil {
			return err
		}
		info, err := advisor.CropInfo(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return printJSON(cmd, info)
	},
}

func init() {
	rootCmd.AddCommand(cropsCmd)
}
