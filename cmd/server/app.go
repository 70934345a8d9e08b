package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/moviecatalog/movie-api/internal/api/middleware"
	"github.com/moviecatalog/movie-api/internal/config"
	"github.com/moviecatalog/movie-api/internal/events"
	"github.com/moviecatalog/movie-api/internal/platform/cache"
	"github.com/moviecatalog/movie-api/internal/platform/filestore"
	"github.com/moviecatalog/movie-api/internal/platform/postgres"
	"github.com/moviecatalog/movie-api/internal/service"
	"github.com/moviecatalog/movie-api/internal/service/auth"
	"github.com/moviecatalog/movie-api/internal/store"
	"github.com/moviecatalog/movie-api/internal/task"
)

// application holds the shared dependencies so they can be wired once and
// released together on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB
	cache  cache.Cache

	responseCache *middleware.ResponseCache

	// Stores
	categoryStore store.CategoryStore
	movieStore    store.MovieStore
	userStore     store.UserStore

	images     *filestore.LocalStore
	jwtService auth.JWTService

	// Event system
	eventEmitter *events.InMemoryEventEmitter
	taskRunner   *task.TaskRunner

	// Services
	categoryService service.CategoryService
	movieService    service.MovieService
	userService     service.UserService
}

// newApplication wires stores, services and event handlers around an open
// database and response cache. The application takes ownership of both.
func newApplication(cfg *config.Config, logger *slog.Logger, db *sql.DB, c cache.Cache) (*application, error) {
	if logger == nil {
		logger = slog.Default()
	}

	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
		cache:  c,
	}

	var err error
	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	logger.Info("JWT authentication service initialized",
		"token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes)

	app.images, err = filestore.NewLocalStore(cfg.Storage, cfg.Server.PublicBaseURL, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize image store: %w", err)
	}

	app.categoryStore = postgres.NewPostgresCategoryStore(db, logger)
	app.movieStore = postgres.NewPostgresMovieStore(db, logger)
	app.userStore = postgres.NewPostgresUserStore(db, cfg.Auth.BcryptCost, logger)

	app.taskRunner = task.NewTaskRunner(task.RunnerConfigFrom(cfg.Task), logger)
	app.taskRunner.Start()

	// Cache invalidation stays synchronous so a client reading after its own
	// write never sees the cached pre-write response.
	app.responseCache = middleware.NewResponseCache(c, logger)
	app.eventEmitter = events.NewInMemoryEventEmitter(logger)
	app.eventEmitter.RegisterHandler(events.NewCacheInvalidationHandler(app.responseCache, logger))
	app.eventEmitter.RegisterHandler(task.NewAsyncEventHandler(
		"image_cleanup",
		events.NewImageCleanupHandler(app.images, logger),
		app.taskRunner,
		logger,
	))

	app.categoryService, err = service.NewCategoryService(
		db,
		app.categoryStore,
		app.movieStore,
		app.eventEmitter,
		logger,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create category service: %w", err)
	}

	app.movieService, err = service.NewMovieService(
		db,
		app.movieStore,
		app.categoryStore,
		app.images,
		app.eventEmitter,
		logger,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create movie service: %w", err)
	}

	app.userService, err = service.NewUserService(
		db,
		app.userStore,
		app.jwtService,
		auth.NewBcryptVerifier(cfg.Auth.BcryptCost),
		logger,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create user service: %w", err)
	}

	logger.Info("Application initialized successfully",
		"image_dir", app.images.Dir(),
		"cache_ttl_seconds", cfg.Cache.TTLSeconds)
	return app, nil
}

func (app *application) cacheTTL() time.Duration {
	return time.Duration(app.config.Cache.TTLSeconds) * time.Second
}

func (app *application) shutdownTimeout() time.Duration {
	if app.config.Server.ShutdownTimeoutSeconds <= 0 {
		return 10 * time.Second
	}
	return time.Duration(app.config.Server.ShutdownTimeoutSeconds) * time.Second
}

// cleanup drains background tasks, then releases the cache and database
// connection.
func (app *application) cleanup() {
	if app.taskRunner != nil {
		ctx, cancel := context.WithTimeout(context.Background(), app.shutdownTimeout())
		if err := app.taskRunner.Stop(ctx); err != nil {
			app.logger.Error("Error stopping task runner", "error", err)
		}
		cancel()
	}

	if app.cache != nil {
		if err := app.cache.Close(); err != nil {
			app.logger.Error("Error closing response cache", "error", err)
		}
	}

	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("Error closing database connection", "error", err)
		}
	}

	app.logger.Info("Application shutdown completed")
}
