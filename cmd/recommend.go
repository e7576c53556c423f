package main

import (
	"github.com/spf13/cobra"

	"github.com/agrisense/advisor-cli/internal/engine"
)

var recommendFlags struct {
	nitrogen    string
	phosphorus  string
	potassium   string
	temperature string
	humidity    string
	ph          string
	rainfall    string
}

var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Recommend a crop for a soil and weather sample",
	RunE: func(cmd *cobra.Command, args []string) error {
		advisor, err := newAdvisor(cfg)
		if err != nil {
			return err
		}

		sample := engine.Sample{
			N:           engine.Coerce(recommendFlags.nitrogen),
			P:           engine.Coerce(recommendFlags.phosphorus),
			K:           engine.Coerce(recommendFlags.potassium),
			Temperature: engine.Coerce(recommendFlags.temperature),
			Humidity:    engine.Coerce(recommendFlags.humidity),
			PH:          engine.Coerce(recommendFlags.ph),
			Rainfall:    engine.Coerce(recommendFlags.rainfall),
		}

		rec, err := advisor.Recommend(cmd.Context(), sample)
		if err != nil {
			return err
		}
		return printJSON(cmd, rec)
	},
}

func init() {
	f := recommendCmd.Flags()
	f.StringVarP(&recommendFlags.nitrogen, "nitrogen", "n", "0", "soil nitrogen (kg/ha)")
	f.StringVarP(&recommendFlags.phosphorus, "phosphorus", "p", "0", "soil phosphorus (kg/ha)")
	f.StringVarP(&recommendFlags.potassium, "potassium", "k", "0", "soil potassium (kg/ha)")
	f.StringVarP(&recommendFlags.temperature, "temperature", "t", "0", "temperature (deg C)")
	f.StringVar(&recommendFlags.humidity, "humidity", "0", "relative humidity (%)")
	f.StringVar(&recommendFlags.ph, "ph", "0", "soil pH")
	f.StringVarP(&recommendFlags.rainfall, "rainfall", "r", "0", "rainfall (mm)")
	rootCmd.AddCommand(recommendCmd)
}
