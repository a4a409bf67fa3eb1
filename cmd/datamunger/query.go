package main

import (
	"github.com/spf13/cobra"

	"github.com/vegasq/datamunger/engine"
	"github.com/vegasq/datamunger/query"
)

func newQueryCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "query <sql>",
		Short: "Run a query and print the result rows",
		Example: `  datamunger query "select * from ipl.csv where season = 2017"
  datamunger query -f table "select city, count(*) from ipl.csv group by city order by city"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runQuery(cmd, args[0])
		},
	}
}

func (a *app) runQuery(cmd *cobra.Command, sql string) error {
	f, err := a.formatter(cmd)
	if err != nil {
		return err
	}
	q, err := query.Parse(sql)
	if err != nil {
		return err
	}
	result, err := a.engine().Execute(cmd.Context(), q)
	if err != nil {
		return err
	}
	if a.cfg.Limit > 0 && result.Len() > a.cfg.Limit {
		printWarning(cmd.ErrOrStderr(), "showing %d of %d rows", a.cfg.Limit, result.Len())
	}
	return f.Format(engine.ApplyLimit(result, a.cfg.Limit))
}
