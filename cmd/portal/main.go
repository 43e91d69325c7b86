// Package main wires the admin portal together: configuration, logging,
// the durable store backend, the mock API and the session container, then
// hands control to the interactive shell.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"adminportal/internal/config"
	"adminportal/internal/logger"
	"adminportal/internal/mockapi"
	"adminportal/internal/portal"
	"adminportal/internal/session"
	"adminportal/internal/store"
)

var (
	// version holds the build version set via ldflags.
	version string
	// buildDate holds the build timestamp set via ldflags.
	buildDate string
)

func main() {
	// Parse command-line and environment configuration.
	options := config.Parse()

	// Print build metadata (or "N/A" if unset).
	fmt.Printf("Build version: %s\n", or(version, "N/A"))
	fmt.Printf("Build date: %s\n", or(buildDate, "N/A"))

	// Initialize structured logging.
	log := logger.New()
	defer func() { _ = log.Log.Sync() }()
	if err := log.Init(options.LogLevel); err != nil {
		log.Log.Fatal("failed to init logger", zap.Error(err))
	}
	zapLogger := log.Log

	// Initialize the durable store backend.
	backend, closeStore, err := buildStore(options)
	if err != nil {
		zapLogger.Fatal("cannot init store", zap.Error(err))
	}
	defer func() { _ = closeStore() }()

	// Storage failures degrade to in-memory-only behavior, never to
	// feature failures.
	st := store.NewBestEffort(backend, zapLogger)

	var opts []mockapi.Option
	if options.LatencyMs >= 0 {
		d := time.Duration(options.LatencyMs) * time.Millisecond
		opts = append(opts, mockapi.WithDelays(d, d, d))
	}
	api := mockapi.New(st, zapLogger, opts...)
	sess := session.NewManager(api, st, zapLogger)

	app := portal.NewApp(sess, api, os.Stdin, os.Stdout, zapLogger)
	zapLogger.Info("starting admin portal shell", zap.String("backend", options.Backend))
	app.Run(context.Background())
}

// or returns a if it is non-empty, otherwise b (cmp.Or equivalent for
// toolchains predating Go 1.22).
func or(a, b string) string {
	if a != "" {
		return a
	}
	return b
}

// buildStore opens the configured store backend and returns it along with
// its close function.
func buildStore(options *config.Options) (store.Store, func() error, error) {
	noop := func() error { return nil }

	switch options.Backend {
	case "memory":
		return store.NewMemory(), noop, nil
	case "file":
		f, err := store.NewFile(options.StorePath)
		if err != nil {
			return nil, nil, err
		}
		return f, noop, nil
	case "sqlite":
		db, err := store.OpenSQLite(options.StorePath)
		if err != nil {
			return nil, nil, err
		}
		s, err := store.NewSQLite(db)
		if err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		return s, db.Close, nil
	case "postgres":
		db, err := store.OpenPostgres(options.DatabaseDSN)
		if err != nil {
			return nil, nil, err
		}
		return store.NewPostgres(db), db.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown store backend %q", options.Backend)
	}
}
