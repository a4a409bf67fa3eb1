package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vegasq/datamunger/datatype"
)

func newInferCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "infer <value>...",
		Short: "Print the data type each value is compared as",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, value := range args {
				if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", value, datatype.Infer(value)); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
