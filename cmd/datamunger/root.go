package main

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/vegasq/datamunger/engine"
	"github.com/vegasq/datamunger/internal/config"
	"github.com/vegasq/datamunger/internal/logging"
	"github.com/vegasq/datamunger/output"
)

// app carries state shared by every subcommand once flags are parsed.
type app struct {
	fs         afero.Fs
	v          *viper.Viper
	configFile string
	cfg        *config.Config
	logger     *slog.Logger
}

func newRootCmd() *cobra.Command {
	return newRootCmdWithFs(afero.NewOsFs())
}

func newRootCmdWithFs(fs afero.Fs) *cobra.Command {
	a := &app{fs: fs, v: config.NewViper(config.AppFs)}

	root := &cobra.Command{
		Use:   "datamunger [sql]",
		Short: "Query CSV and Parquet files with a small SQL dialect",
		Long: `datamunger reads CSV (plain, .gz, .zst) and Parquet files and runs queries of
the form

  select <fields> from <file> [where <conditions>] [group by <fields>] [order by <fields>]

Conditions compare a column with a literal using =, !=, >, >=, < or <= and are
joined with and/or. Comparisons are typed: integers, decimals and dates compare
by value, everything else as text.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			return a.runQuery(cmd, args[0])
		},
	}

	flags := root.PersistentFlags()
	flags.StringP("format", "f", "jsonl", "output format: "+strings.Join(output.Formats, ", "))
	flags.Int("limit", 0, "limit number of rows (0 = unlimited)")
	flags.Int("workers", engine.DefaultWorkers, "number of goroutines evaluating the where clause")
	flags.String("data-dir", "", "directory relative file names are resolved against")
	flags.String("log-level", logging.DefaultLevel, "log level: debug, info, warn, error")
	flags.StringVar(&a.configFile, "config", "", "config file (default .datamunger.yaml in ., $HOME or $HOME/.config/datamunger)")

	if err := bindFlags(a.v, flags); err != nil {
		panic(err)
	}

	root.AddCommand(
		newQueryCmd(a),
		newParseCmd(),
		newInferCmd(),
		newSchemaCmd(a),
	)
	return root
}

// flagKeys maps config keys to the persistent flags that override them.
var flagKeys = map[string]string{
	config.KeyFormat:   "format",
	config.KeyLimit:    "limit",
	config.KeyWorkers:  "workers",
	config.KeyDataDir:  "data-dir",
	config.KeyLogLevel: "log-level",
}

func bindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	for key, name := range flagKeys {
		if err := v.BindPFlag(key, flags.Lookup(name)); err != nil {
			return fmt.Errorf("failed to bind --%s: %w", name, err)
		}
	}
	return nil
}

func (a *app) init(cmd *cobra.Command) error {
	cfg, err := config.Load(a.v, a.configFile)
	if err != nil {
		return err
	}
	logger, err := logging.New(cmd.ErrOrStderr(), cfg.LogLevel)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.logger = logger
	return nil
}

func (a *app) engine() *engine.Engine {
	return engine.New(a.fs,
		engine.WithLogger(a.logger),
		engine.WithWorkers(a.cfg.Workers),
		engine.WithDataDir(a.cfg.DataDir),
	)
}

func (a *app) formatter(cmd *cobra.Command) (output.Formatter, error) {
	return output.New(a.cfg.Format, cmd.OutOrStdout())
}

