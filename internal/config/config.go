package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/pelletier/go-toml/v2"
)

type MemgraphConfig struct {
	URI      string `toml:"uri"`
	User     string `toml:"user"`
	Password string `toml:"password"`
}

type LoaderConfig struct {
	Workers int `toml:"workers"`
	// QuoteText wraps text fields in quotes before building entities, so
	// raw slice rows produce valid fragments.
	QuoteText bool `toml:"quote_text"`
}

type ServerConfig struct {
	Port string `toml:"port"`
}

type Config struct {
	Memgraph MemgraphConfig `toml:"memgraph"`
	Loader   LoaderConfig   `toml:"loader"`
	Server   ServerConfig   `toml:"server"`
}

func Default() *Config {
	return &Config{
		Memgraph: MemgraphConfig{URI: "bolt://localhost:7687"},
		Loader:   LoaderConfig{Workers: 4, QuoteText: true},
		Server:   ServerConfig{Port: "8080"},
	}
}

// Load reads a TOML file over Default, so omitted keys keep their
// defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %w", path, err)
	}

	cfg := Default()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse TOML: %w", err)
	}

	return cfg, nil
}

// ApplyEnv overrides config values with environment variables when set.
func (c *Config) ApplyEnv() error {
	if v := os.Getenv("MEMGRAPH_URI"); v != "" {
		c.Memgraph.URI = v
	}
	if v := os.Getenv("MEMGRAPH_USER"); v != "" {
		c.Memgraph.User = v
	}
	if v := os.Getenv("MEMGRAPH_PASSWORD"); v != "" {
		c.Memgraph.Password = v
	}
	if v := os.Getenv("PORT"); v != "" {
		c.Server.Port = v
	}
	if v := os.Getenv("LOADER_WORKERS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid LOADER_WORKERS %q: %w", v, err)
		}
		c.Loader.Workers = n
	}
	return nil
}
