package main

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/moviecatalog/movie-api/internal/api"
	apiMiddleware "github.com/moviecatalog/movie-api/internal/api/middleware"
	"github.com/moviecatalog/movie-api/internal/domain"
)

// setupRouter creates the application router with all middleware and routes.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.NewTraceMiddleware(app.logger))
	r.Use(apiMiddleware.RequestLogger)
	r.Use(apiMiddleware.CORS(app.config.CORS.AllowedOrigins))

	categoryHandler := api.NewCategoryHandler(app.categoryService, app.logger)
	movieHandler := api.NewMovieHandler(app.movieService, app.config.Storage.MaxUploadBytes, app.logger)
	userHandler := api.NewUserHandler(app.userService, app.logger)

	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService)
	adminOnly := chi.Chain(authMiddleware.Authenticate, apiMiddleware.RequireRole(domain.RoleAdmin))
	cached := app.responseCache.CacheResponse(app.cacheTTL())

	// User routes are version-neutral.
	userRoutes := func(r chi.Router) {
		r.With(authMiddleware.OptionalAuthenticate).Post("/register", userHandler.Register)
		r.Post("/login", userHandler.Login)

		r.Group(func(r chi.Router) {
			r.Use(adminOnly...)
			r.Get("/", userHandler.ListUsers)
			r.Get("/{userId}", userHandler.GetUser)
		})
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/category", func(r chi.Router) {
			r.Get("/GetString", categoryHandler.GetStringV1)

			r.With(cached).Get("/", categoryHandler.ListCategories)
			r.With(cached).Get("/{categoryId}", categoryHandler.GetCategory)

			r.Group(func(r chi.Router) {
				r.Use(adminOnly...)
				r.Post("/", categoryHandler.CreateCategory)
				r.Patch("/{categoryId}", categoryHandler.UpdateCategory)
				r.Delete("/{categoryId}", categoryHandler.DeleteCategory)
			})
		})

		r.Route("/movies", func(r chi.Router) {
			r.Get("/search", movieHandler.SearchMovies)

			r.With(cached).Get("/", movieHandler.ListMovies)
			r.With(cached).Get("/category/{categoryId}", movieHandler.ListMoviesByCategory)
			r.With(cached).Get("/{movieId}", movieHandler.GetMovie)

			r.Group(func(r chi.Router) {
				r.Use(adminOnly...)
				r.Post("/", movieHandler.CreateMovie)
				r.Patch("/{movieId}", movieHandler.UpdateMovie)
				r.Delete("/{movieId}", movieHandler.DeleteMovie)
			})
		})

		r.Route("/user", userRoutes)
	})

	// v2 replaces GetString and shares the user routes.
	r.Route("/api/v2", func(r chi.Router) {
		r.Get("/category/GetString", categoryHandler.GetStringV2)
		r.Route("/user", userRoutes)
	})

	// Uploaded images
	publicPath := app.images.PublicPath()
	fileServer := http.StripPrefix(publicPath, http.FileServer(http.Dir(app.images.Dir())))
	r.Get(publicPath+"/*", func(w http.ResponseWriter, r *http.Request) {
		// Directory listings are not exposed.
		if strings.HasSuffix(r.URL.Path, "/") {
			http.NotFound(w, r)
			return
		}
		fileServer.ServeHTTP(w, r)
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, err := w.Write([]byte("OK"))
		if err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	return r
}
