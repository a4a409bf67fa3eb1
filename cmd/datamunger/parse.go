package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vegasq/datamunger/query"
)

func newParseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "parse <sql>",
		Short: "Print the parsed query descriptor as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			q, err := query.Parse(args[0])
			if err != nil {
				return err
			}
			data, err := json.MarshalIndent(q, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to encode query: %w", err)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return err
		},
	}
}
