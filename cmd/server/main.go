package main

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"

	"github.com/agenthands/tunegraph/internal/catalog"
	"github.com/agenthands/tunegraph/internal/config"
	"github.com/agenthands/tunegraph/internal/driver"
	"github.com/agenthands/tunegraph/internal/loader"
	"github.com/agenthands/tunegraph/internal/server"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Info("No .env file found, using defaults")
	}

	if err := run(context.Background()); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	d, err := driver.NewMemgraphDriver(ctx, cfg.Memgraph.URI, cfg.Memgraph.User, cfg.Memgraph.Password)
	if err != nil {
		return fmt.Errorf("failed to connect to Memgraph: %w", err)
	}
	defer d.Close(ctx)

	c := catalog.NewCatalog(d)
	if err := c.BuildIndices(ctx); err != nil {
		return fmt.Errorf("failed to build indices: %w", err)
	}

	srv := server.NewServer(c, loader.New(c, cfg.Loader, log.Default()))
	r := srv.SetupRouter()

	log.Infof("Starting server on port %s", cfg.Server.Port)
	return r.Run(":" + cfg.Server.Port)
}

// loadConfig reads CONFIG_PATH when set, then applies the environment.
func loadConfig() (*config.Config, error) {
	cfg := config.Default()
	if path := os.Getenv("CONFIG_PATH"); path != "" {
		var err error
		if cfg, err = config.Load(path); err != nil {
			return nil, fmt.Errorf("failed to load configuration: %w", err)
		}
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, fmt.Errorf("invalid environment: %w", err)
	}
	return cfg, nil
}
