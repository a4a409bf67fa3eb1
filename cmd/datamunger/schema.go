package main

import (
	"github.com/spf13/cobra"

	"github.com/vegasq/datamunger/reader"
	"github.com/vegasq/datamunger/table"
)

func newSchemaCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "schema <file>",
		Short: "Print column names with their inferred types",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := a.formatter(cmd)
			if err != nil {
				return err
			}
			cols, err := reader.Schema(a.fs, a.engine().Resolve(args[0]))
			if err != nil {
				return err
			}
			return f.Format(schemaTable(cols))
		},
	}
}

func schemaTable(cols []reader.ColumnInfo) *table.Table {
	t := table.New("name", "type", "physical_type")
	for _, c := range cols {
		t.Append(c.Name, c.Type.String(), c.PhysicalType)
	}
	return t
}
