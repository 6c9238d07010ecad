package main

import (
	"fmt"

	"github.com/fentz26/carcare/internal/models"
	"github.com/fentz26/carcare/internal/schedule"
	"github.com/spf13/cobra"
)

// vehicleFlags are shared by the commands that take a vehicle profile.
type vehicleFlags struct {
	category  string
	modelYear int
	odometer  int
}

func (f *vehicleFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.category, "type", "", "Car type (Compact Car, Sedan, SUV)")
	cmd.Flags().IntVar(&f.modelYear, "model-year", 0, "Car model year")
	cmd.Flags().IntVar(&f.odometer, "odometer", 0, "Odometer reading in km")
}

func (f *vehicleFlags) profile() (models.VehicleProfile, error) {
	cat, err := schedule.ParseCategory(f.category)
	if err != nil {
		return models.VehicleProfile{}, err
	}
	return models.VehicleProfile{Category: cat, ModelYear: f.modelYear, OdometerKm: f.odometer}, nil
}

func newRecommendCmd(opts *options) *cobra.Command {
	var vf vehicleFlags

	cmd := &cobra.Command{
		Use:   "recommend",
		Short: "Print recommended maintenance for a vehicle",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := vf.profile()
			if err != nil {
				return err
			}
			engine, err := opts.engine()
			if err != nil {
				return err
			}
			recs, err := engine.RecommendFor(v, opts.year)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Recommended maintenance tasks:")
			for i, r := range recs {
				fmt.Fprintf(out, "%d. %s - Priority: %s, %s\n", i+1, r.Item, r.Priority, r.Description)
			}
			return nil
		},
	}
	vf.register(cmd)
	cmd.MarkFlagRequired("type")
	cmd.MarkFlagRequired("model-year")
	cmd.MarkFlagRequired("odometer")
	return cmd
}
