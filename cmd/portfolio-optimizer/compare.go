package main

import (
	"github.com/iwvelando/portfolio-optimizer/pkg/output"
	"github.com/iwvelando/portfolio-optimizer/pkg/validation"
	"github.com/spf13/cobra"
)

func newCompareCmd(a *app) *cobra.Command {
	var (
		catalogPath string
		dataset     string
		strategies  string
		budget      float64
	)

	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Run several strategies on the same catalog and compare them",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			names, err := validation.ValidateStrategies(strategies)
			if err != nil {
				return err
			}
			runner, err := a.runner(cmd, budget)
			if err != nil {
				return err
			}
			cat, err := a.loadCatalog(cmd, catalogPath, dataset)
			if err != nil {
				return err
			}

			comparison, err := runner.Compare(cat, names)
			if err != nil {
				return err
			}
			return output.ComparisonFormat(cmd.OutOrStdout(), a.conf.Output.Format, comparison)
		},
	}

	cmd.Flags().StringVarP(&catalogPath, "catalog", "c", "", "path to a CSV catalog")
	cmd.Flags().StringVarP(&dataset, "dataset", "d", "", "name of a CSV file in the catalog directory")
	cmd.Flags().StringVar(&strategies, "strategies", "", "comma separated strategies to compare (default all)")
	cmd.Flags().Float64VarP(&budget, "budget", "b", 0, "budget override")
	return cmd
}
