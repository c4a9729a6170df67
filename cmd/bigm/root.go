package main

import (
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/askiada/bigm/internal/config"
	"github.com/askiada/bigm/internal/logging"
)

// app carries what every subcommand needs once the persistent flags are parsed.
type app struct {
	conf   *config.Config
	logger *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}
	var configPath, logLevel string

	cmd := &cobra.Command{
		Use:   "bigm",
		Short: "bigm solves linear programs with the Big-M simplex method",
		Long: `bigm standardizes a linear program, builds the Big-M tableau and pivots it to optimality,
printing every intermediate tableau along the way. It can also serve the solver over HTTP.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			conf, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("log-level") {
				conf.Log.Level = strings.ToLower(logLevel)
				if err := conf.Validate(); err != nil {
					return err
				}
			}
			a.conf = conf
			a.logger = logging.New(logging.ParseLevel(conf.Log.Level), cmd.ErrOrStderr())
			return nil
		},
	}
	cmd.PersistentFlags().StringVar(&configPath, "config", "", "Configuration file (yaml, json or toml)")
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level: debug, info, warn or error")

	cmd.AddCommand(newSolveCmd(a), newServeCmd(a))
	return cmd
}
