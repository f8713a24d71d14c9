package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"physmap/internal/config"
	"physmap/internal/persist"
	"physmap/internal/repository/sqlite"
)

var version = "0.3.0"

// app carries what every command needs once flags and config are resolved
type app struct {
	configPath string
	cfg        *config.Config
	logger     *zap.Logger

	flagDB       string
	flagKey      string
	flagLogLevel string
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:     "physmap",
		Short:   "physmap - a graph editor for physics formulas",
		Long:    brand.Sprint("physmap") + " - map how physical laws derive from each other\n" + subtle.Sprint("Nodes are formulas, edges are derivations; the graph is saved on every change."),
		Version: version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
		SilenceUsage: true,
	}

	root.SetVersionTemplate("physmap {{ .Version }}\n")
	root.PersistentFlags().StringVar(&a.configPath, "config", "", "Config file (default: search $PHYSMAP_CONFIG, beside --db, ./physmap.yaml, ~/.config/physmap)")
	root.PersistentFlags().StringVar(&a.flagDB, "db", "", "SQLite database path")
	root.PersistentFlags().StringVar(&a.flagKey, "key", "", "Record key the graph is stored under")
	root.PersistentFlags().StringVar(&a.flagLogLevel, "log-level", "", "Log level (debug, info, warn, error)")

	root.AddCommand(
		serveCmd(a),
		exportCmd(a),
		importCmd(a),
		resetCmd(a),
		showCmd(a),
		quarantineCmd(a),
		configCmd(a),
	)

	return root
}

// init loads config and applies flag overrides
func (a *app) init(cmd *cobra.Command) error {
	var (
		cfg  *config.Config
		path string
		err  error
	)
	if a.configPath != "" {
		cfg, path, err = config.LoadFromPath(a.configPath)
	} else {
		cfg, path, err = config.Load(a.flagDB)
	}
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	a.configPath = path

	flags := cmd.Flags()
	if flags.Changed("db") {
		cfg.Database.Path = a.flagDB
	}
	if flags.Changed("key") {
		cfg.Storage.Key = a.flagKey
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = a.flagLogLevel
	}
	a.cfg = cfg

	logger, err := cfg.Log.NewLogger()
	if err != nil {
		return err
	}
	a.logger = logger
	return nil
}

// openStore opens the database and wraps it in the graph adapter. Callers
// close the repository when done.
func (a *app) openStore() (*persist.Adapter, *sqlite.Repository, error) {
	repo, err := sqlite.New(a.cfg.Database.Path)
	if err != nil {
		return nil, nil, fmt.Errorf("open database: %w", err)
	}
	a.logger.Debug("Database opened", zap.String("path", a.cfg.Database.Path))
	return persist.New(repo, a.cfg.Storage.Key, a.logger), repo, nil
}

func resetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Replace the stored graph with the starter graph",
		RunE: func(cmd *cobra.Command, args []string) error {
			adapter, repo, err := a.openStore()
			if err != nil {
				return err
			}
			defer repo.Close()

			g, err := adapter.Reset(context.Background())
			if err != nil {
				bad.Fprintf(cmd.ErrOrStderr(), "reset failed: %v\n", err)
				return err
			}
			good.Fprintf(cmd.OutOrStdout(), "Graph reset: %d nodes, %d edges\n", len(g.Nodes), len(g.Edges))
			return nil
		},
	}
}
