// Package cli implements the tunegraph command line.
//
// Commands:
//   - load: write playlist slice files into Memgraph
//   - literal: print the openCypher literal for a JSON value
//   - indices: create the catalog indices
package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/agenthands/tunegraph/internal/catalog"
	"github.com/agenthands/tunegraph/internal/config"
	"github.com/agenthands/tunegraph/internal/cypher"
	"github.com/agenthands/tunegraph/internal/driver"
	"github.com/agenthands/tunegraph/internal/loader"
)

// DriverFactory opens the graph connection for commands that need one.
type DriverFactory func(ctx context.Context, cfg config.MemgraphConfig) (driver.GraphDriver, error)

func memgraphFactory(ctx context.Context, cfg config.MemgraphConfig) (driver.GraphDriver, error) {
	d, err := driver.NewMemgraphDriver(ctx, cfg.URI, cfg.User, cfg.Password)
	if err != nil {
		return nil, err
	}
	return d, nil
}

// Execute runs the CLI against a real Memgraph connection.
func Execute() error {
	return NewRootCmd(memgraphFactory, os.Stdout).ExecuteContext(context.Background())
}

func NewRootCmd(open DriverFactory, out io.Writer) *cobra.Command {
	var (
		verbose    bool
		configPath string
	)

	root := &cobra.Command{
		Use:          "tunegraph",
		Short:        "Load music catalogs into a graph as openCypher literals",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := log.InfoLevel
			if verbose {
				level = log.DebugLevel
			}
			cmd.SetContext(withLogger(cmd.Context(), newLogger(os.Stderr, level)))
		},
	}
	root.SetOut(out)
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to a TOML config file")

	loadConfig := func() (*config.Config, error) {
		cfg := config.Default()
		if configPath != "" {
			var err error
			if cfg, err = config.Load(configPath); err != nil {
				return nil, err
			}
		}
		if err := cfg.ApplyEnv(); err != nil {
			return nil, err
		}
		return cfg, nil
	}

	root.AddCommand(newLoadCmd(open, loadConfig))
	root.AddCommand(newLiteralCmd())
	root.AddCommand(newIndicesCmd(open, loadConfig))

	return root
}

func newLoadCmd(open DriverFactory, loadConfig func() (*config.Config, error)) *cobra.Command {
	var (
		workers int
		raw     bool
	)

	cmd := &cobra.Command{
		Use:   "load <slice.json>...",
		Short: "Load playlist slice files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if workers > 0 {
				cfg.Loader.Workers = workers
			}
			if raw {
				cfg.Loader.QuoteText = false
			}

			d, err := open(ctx, cfg.Memgraph)
			if err != nil {
				return err
			}
			defer d.Close(ctx)

			c := catalog.NewCatalog(d)
			if err := c.BuildIndices(ctx); err != nil {
				return err
			}

			stats, err := loader.New(c, cfg.Loader, logger).LoadFiles(ctx, args)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "playlists=%d tracks=%d invalid=%d duration_ms=%d\n",
				stats.Playlists, stats.Tracks, stats.Invalid, stats.DurationMS)
			return nil
		},
	}

	cmd.Flags().IntVarP(&workers, "workers", "w", 0, "playlists saved concurrently (default from config)")
	cmd.Flags().BoolVar(&raw, "raw", false, "insert text fields verbatim, without quoting")
	return cmd
}

func newLiteralCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "literal <json>",
		Short: "Print the openCypher literal for a JSON value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := loader.DecodeValue([]byte(args[0]))
			if err != nil {
				return err
			}
			lit, err := cypher.Literal(v)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), lit)
			return nil
		},
	}
}

func newIndicesCmd(open DriverFactory, loadConfig func() (*config.Config, error)) *cobra.Command {
	return &cobra.Command{
		Use:   "indices",
		Short: "Create the Track and Playlist indices",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			d, err := open(ctx, cfg.Memgraph)
			if err != nil {
				return err
			}
			defer d.Close(ctx)

			if err := catalog.NewCatalog(d).BuildIndices(ctx); err != nil {
				return err
			}
			loggerFromContext(ctx).Info("Indices ready")
			return nil
		},
	}
}
