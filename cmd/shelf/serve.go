package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/shelf/internal/config"
	"github.com/alexisbeaulieu97/shelf/internal/logger"
	"github.com/alexisbeaulieu97/shelf/internal/server"
)

type serveOptions struct {
	addr        string
	databaseURL string
	seed        bool
	reset       bool
}

func newServeCmd(app *appContext) *cobra.Command {
	opts := &serveOptions{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the reference books and authors backend",
		Long: `Serve the REST backend the admin screens talk to.

Records are kept in memory unless a Postgres database URL is configured,
in which case pending migrations are applied on start.`,
		Example: `  # In-memory backend with sample data
  shelf serve --seed

  # Postgres-backed backend on a custom port
  DATABASE_URL=postgres://localhost/shelf shelf serve --addr :9000`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, app, opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", "", "Listen address (default from config, :8000)")
	cmd.Flags().StringVar(&opts.databaseURL, "database-url", "", "Postgres connection URL (overrides DATABASE_URL)")
	cmd.Flags().BoolVar(&opts.seed, "seed", false, "Insert sample authors and books on start")
	cmd.Flags().BoolVar(&opts.reset, "reset", false, "Drop and recreate the Postgres schema before serving")

	return cmd
}

func runServe(cmd *cobra.Command, app *appContext, opts *serveOptions) error {
	cfg := serveConfig(app.cfg.Server, opts)
	if err := config.Validate(&config.Config{APIURL: app.cfg.APIURL, LogLevel: app.cfg.LogLevel, Server: cfg}); err != nil {
		return newCommandError("serve", "validating server settings", err, "Check --addr and --database-url.")
	}

	log, err := app.logger(cmd.ErrOrStderr())
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	log = log.WithFields(map[string]any{"component": "server"})

	ctx := cmd.Context()
	repo, err := openRepository(ctx, cfg, opts.reset, log)
	if err != nil {
		return newCommandError("serve", "opening storage", err, "Check the database URL and that Postgres is reachable.")
	}
	defer repo.Close()

	library := server.NewLibrary(repo)
	if cfg.Seed {
		if err := server.Seed(ctx, library); err != nil {
			return newCommandError("serve", "seeding sample data", err, "")
		}
		log.Info("sample data loaded")
	}

	srv := server.New(library, server.Options{
		Addr:   cfg.ListenAddr,
		Debug:  app.cfg.Debug,
		Logger: log,
	})
	return srv.Run(ctx)
}

// serveConfig applies command flags over the configured server settings.
func serveConfig(base config.ServerConfig, opts *serveOptions) config.ServerConfig {
	cfg := base
	if opts.addr != "" {
		cfg.ListenAddr = opts.addr
	}
	if opts.databaseURL != "" {
		cfg.DatabaseURL = opts.databaseURL
	}
	if opts.seed {
		cfg.Seed = true
	}
	return cfg
}

func openRepository(ctx context.Context, cfg config.ServerConfig, reset bool, log *logger.Logger) (server.Repository, error) {
	if cfg.DatabaseURL == "" {
		if reset {
			log.Warn("--reset ignored without a database URL")
		}
		log.Info("using in-memory storage")
		return server.NewMemoryStore(), nil
	}

	store, err := server.OpenPostgres(ctx, cfg.DatabaseURL, log)
	if err != nil {
		return nil, err
	}
	if reset {
		if err := server.Reset(store.DB().DB); err != nil {
			_ = store.Close()
			return nil, err
		}
		log.Warn("database schema reset")
	}
	log.Info("using postgres storage")
	return store, nil
}
