package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"argminer/internal/strategy"
)

func newStrategiesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "strategies",
		Short: "List analysis strategies",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tSTATUS\tDESCRIPTION")
			for _, info := range strategy.List() {
				status := "available"
				if !info.Implemented {
					status = "not implemented"
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\n", info.Kind, status, info.Description)
			}
			return tw.Flush()
		},
	}
}
