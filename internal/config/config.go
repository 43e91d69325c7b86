// Package config provides functionality for managing configuration options
// for the application using command-line flags and environment variables.
package config

import (
	"encoding/json"
	"flag"
	"log"
	"os"
)

// Options holds the configuration values for the application.
type Options struct {
	// Backend selects the store backend: file, sqlite, postgres or memory.
	Backend string `json:"backend"`

	// StorePath is the file or SQLite database path for local backends.
	StorePath string `json:"store_path"`

	// DatabaseDSN holds the PostgreSQL connection string.
	DatabaseDSN string `json:"database_dsn"`

	// LatencyMs overrides the simulated API latency in milliseconds for
	// every operation. Negative keeps the per-operation defaults.
	LatencyMs int `json:"latency_ms"`

	// LogLevel sets the zap log level.
	LogLevel string `json:"log_level"`

	// Config is the path to the Config file.
	Config string `json:"-"`
}

// options holds the current configuration values.
var options = &Options{}

// init initializes command-line flags and sets default values.
func init() {
	flag.StringVar(&options.Backend, "b", "file", "store backend: file | sqlite | postgres | memory")
	flag.StringVar(&options.StorePath, "s", "portal.json", "store file or sqlite database path")
	flag.StringVar(&options.DatabaseDSN, "d", "", "db address")
	flag.IntVar(&options.LatencyMs, "latency", -1, "simulated API latency in ms (-1 keeps defaults)")
	flag.StringVar(&options.LogLevel, "log", "info", "log level")
	flag.StringVar(&options.Config, "config", "config.json", "path to config file")
	flag.StringVar(&options.Config, "c", "config.json", "path to config file (shorthand)")
}

// Parse parses the command-line flags and environment variables to set
// configuration values. It returns a pointer to the Options struct containing
// the parsed configuration values.
func Parse() *Options {
	flag.Parse()

	// Override flags with environment variables if set
	if configPath := os.Getenv("CONFIG"); configPath != "" {
		options.Config = configPath
	}

	if options.Config != "" {
		if _, err := os.Stat(options.Config); err == nil {
			data, err := os.ReadFile(options.Config)
			if err != nil {
				log.Fatalf("error while reading config file: %v", err)
			}
			if err := json.Unmarshal(data, options); err != nil {
				log.Fatalf("error while parsing config file: %v", err)
			}
		}
	}

	if backend := os.Getenv("STORE_BACKEND"); backend != "" {
		options.Backend = backend
	}
	if path := os.Getenv("STORE_PATH"); path != "" {
		options.StorePath = path
	}
	if dsn := os.Getenv("DATABASE_DSN"); dsn != "" {
		options.DatabaseDSN = dsn
	}
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		options.LogLevel = level
	}

	return options
}
