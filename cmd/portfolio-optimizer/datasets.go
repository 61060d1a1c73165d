package main

import (
	"fmt"

	"github.com/iwvelando/portfolio-optimizer/pkg/constants"
	"github.com/iwvelando/portfolio-optimizer/pkg/output"
	"github.com/spf13/cobra"
)

func newDatasetsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "datasets",
		Short: "List the CSV datasets of the catalog directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			names, err := a.source().Datasets()
			if err != nil {
				return err
			}
			if a.conf.Output.Format == constants.OutputFormatJSON {
				if names == nil {
					names = []string{}
				}
				return output.JSONFormat(cmd.OutOrStdout(), names)
			}
			for _, name := range names {
				if _, err := fmt.Fprintln(cmd.OutOrStdout(), name); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
