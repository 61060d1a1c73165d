package main

import (
	"path/filepath"
	"strings"

	"github.com/iwvelando/portfolio-optimizer/internal/catalog"
	"github.com/iwvelando/portfolio-optimizer/internal/config"
	"github.com/iwvelando/portfolio-optimizer/internal/optimizer"
	"github.com/iwvelando/portfolio-optimizer/pkg/constants"
	"github.com/iwvelando/portfolio-optimizer/pkg/validation"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

// app carries the state shared by every subcommand once the root command has
// loaded the configuration.
type app struct {
	configPath   string
	logLevel     string
	outputFormat string

	fs     afero.Fs
	conf   *config.Configuration
	logger *zap.Logger
}

func newApp() *app {
	return &app{fs: afero.NewOsFs()}
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "portfolio-optimizer",
		Short: "Pick the most profitable set of actions within a budget",
		Long: "portfolio-optimizer reads a catalog of actions (cost and two-year profit) and selects " +
			"the subset with the highest total profit whose cost fits within a budget.",
		Version:           version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", constants.DefaultConfigFile, "path to configuration file")
	flags.StringVar(&a.logLevel, "log-level", "", "log level override (debug, info, warn, error)")
	flags.StringVar(&a.outputFormat, "output-format", "", "type of output override: pretty, csv, json, markdown")

	root.AddCommand(
		newSolveCmd(a),
		newCompareCmd(a),
		newDatasetsCmd(a),
		newServeCmd(a),
	)
	return root
}

// setup loads the configuration and logger. A missing default config file
// is tolerated; an explicit --config must exist.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	required := cmd.Flags().Changed("config")
	conf, err := config.Load(config.NewViper(), a.configPath, required)
	if err != nil {
		return err
	}

	if a.outputFormat != "" {
		conf.Output.Format = strings.ToLower(strings.TrimSpace(a.outputFormat))
	}
	if err := validation.ValidateOutputFormat(conf.Output.Format); err != nil {
		return err
	}
	if err := conf.Validate(); err != nil {
		return err
	}

	logger, err := initializeLogger(conf.Logging, a.logLevel)
	if err != nil {
		return err
	}

	for _, warning := range conf.ValidateConfiguration() {
		logger.Warn("Configuration warning: "+warning,
			zap.String("op", "main"),
		)
	}

	a.conf = conf
	a.logger = logger
	return nil
}

// runner returns a runner for the configured budget, or for the --budget
// flag of cmd when it was given.
func (a *app) runner(cmd *cobra.Command, budget float64) (*optimizer.Runner, error) {
	runner, err := optimizer.NewRunner(a.logger, a.conf)
	if err != nil {
		return nil, err
	}
	if cmd.Flags().Changed("budget") {
		return runner.WithBudget(budget)
	}
	return runner, nil
}

// source returns the dataset directory named in the configuration.
func (a *app) source() *catalog.DirSource {
	return catalog.NewDirSource(a.fs, a.conf.Catalog.Directory)
}

// loadCatalog resolves the catalog from an explicit file path, a dataset
// name, the configured file or, failing all three, an interactive choice.
func (a *app) loadCatalog(cmd *cobra.Command, path, dataset string) (*catalog.Catalog, error) {
	schema := a.conf.Catalog.Columns

	var (
		cat *catalog.Catalog
		err error
	)
	if path != "" {
		src := catalog.NewDirSource(a.fs, filepath.Dir(path))
		cat, err = catalog.LoadFrom(src, filepath.Base(path), schema)
	} else {
		src := a.source()
		if dataset == "" {
			dataset = a.conf.Catalog.File
		}
		if dataset == "" {
			var names []string
			names, err = src.Datasets()
			if err != nil {
				return nil, err
			}
			dataset, err = catalog.Choose(names, cmd.InOrStdin(), cmd.ErrOrStderr())
			if err != nil {
				return nil, err
			}
		}
		cat, err = catalog.LoadFrom(src, dataset, schema)
	}
	if err != nil {
		return nil, err
	}

	for _, skipped := range cat.Skipped {
		a.logger.Debug("skipped catalog record",
			zap.String("op", "catalog.Load"),
			zap.String("dataset", cat.Name),
			zap.Int("line", skipped.Line),
			zap.String("id", skipped.ID),
			zap.String("reason", skipped.Reason),
		)
	}
	a.logger.Info("catalog loaded",
		zap.String("op", "catalog.Load"),
		zap.String("dataset", cat.Name),
		zap.Int("items", len(cat.Items)),
		zap.Int("skipped", len(cat.Skipped)),
	)
	return cat, nil
}
