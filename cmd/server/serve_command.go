package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/moviecatalog/movie-api/internal/platform/cache"
	"github.com/moviecatalog/movie-api/internal/platform/postgres"
	"github.com/spf13/cobra"
)

func newServeCommand(ctx *commandContext) *cobra.Command {
	var migrate bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			log := ctx.logger

			runCtx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			db, err := postgres.Open(runCtx, cfg.Database, log)
			if err != nil {
				return err
			}

			if migrate {
				if err := postgres.Migrate(runCtx, db, postgres.MigrateUp, log); err != nil {
					_ = db.Close()
					return err
				}
			}

			responseCache, err := cache.New(runCtx, cfg.Cache, log)
			if err != nil {
				_ = db.Close()
				return fmt.Errorf("failed to initialize response cache: %w", err)
			}

			app, err := newApplication(cfg, log, db, responseCache)
			if err != nil {
				_ = responseCache.Close()
				_ = db.Close()
				return fmt.Errorf("failed to initialize application: %w", err)
			}
			return app.Run(runCtx)
		},
	}

	cmd.Flags().BoolVar(&migrate, "migrate", false, "Apply pending migrations before serving")
	return cmd
}

// Run serves HTTP until ctx is canceled, then releases application resources.
func (app *application) Run(ctx context.Context) error {
	defer app.cleanup()

	if err := app.startHTTPServer(ctx, app.setupRouter()); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}
