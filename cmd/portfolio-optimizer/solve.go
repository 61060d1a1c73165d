package main

import (
	"github.com/iwvelando/portfolio-optimizer/pkg/output"
	"github.com/spf13/cobra"
)

func newSolveCmd(a *app) *cobra.Command {
	var (
		catalogPath string
		dataset     string
		strategy    string
		budget      float64
	)

	cmd := &cobra.Command{
		Use:   "solve",
		Short: "Select the most profitable actions within the budget",
		Long: "Solve loads a catalog and runs one strategy on it. Without --catalog or --dataset the " +
			"configured file is used, and when none is configured the datasets of the catalog " +
			"directory are listed for an interactive choice.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			runner, err := a.runner(cmd, budget)
			if err != nil {
				return err
			}
			cat, err := a.loadCatalog(cmd, catalogPath, dataset)
			if err != nil {
				return err
			}

			if strategy == "" {
				strategy = a.conf.Strategy
			}
			report, err := runner.Run(cat, strategy)
			if err != nil {
				return err
			}
			return output.Write(cmd.OutOrStdout(), a.conf.Output.Format, report)
		},
	}

	cmd.Flags().StringVarP(&catalogPath, "catalog", "c", "", "path to a CSV catalog")
	cmd.Flags().StringVarP(&dataset, "dataset", "d", "", "name of a CSV file in the catalog directory")
	cmd.Flags().StringVarP(&strategy, "strategy", "s", "", "strategy override: dynamic, recursive, enumeration, greedy")
	cmd.Flags().Float64VarP(&budget, "budget", "b", 0, "budget override")
	return cmd
}
