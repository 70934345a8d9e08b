package main

import (
	"database/sql"
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/moviecatalog/movie-api/internal/platform/cache"
	"github.com/moviecatalog/movie-api/internal/platform/postgres"
	"github.com/spf13/cobra"
)

type routeInfo struct {
	Method      string
	Pattern     string
	Middlewares int
}

func newRoutesCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "routes",
		Short: "List the HTTP routes served by the API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			// sql.Open does not connect; the router only needs the handle.
			db, err := sql.Open(postgres.DriverName, cfg.Database.URL)
			if err != nil {
				return fmt.Errorf("failed to open database handle: %w", err)
			}

			app, err := newApplication(cfg, ctx.logger, db, cache.NewMemoryCache(0))
			if err != nil {
				_ = db.Close()
				return err
			}
			defer app.cleanup()

			routes, err := collectRoutes(app.setupRouter())
			if err != nil {
				return err
			}

			rows := make([][]string, 0, len(routes))
			for _, r := range routes {
				rows = append(rows, []string{r.Method, r.Pattern, fmt.Sprint(r.Middlewares)})
			}
			return writeTable(cmd.OutOrStdout(), []string{"Method", "Route", "Middlewares"}, rows,
				[]columnAlignment{alignLeft, alignLeft, alignRight})
		},
	}
}

// collectRoutes walks a chi router and returns its routes sorted by pattern
// then method.
func collectRoutes(h http.Handler) ([]routeInfo, error) {
	router, ok := h.(chi.Routes)
	if !ok {
		return nil, fmt.Errorf("handler %T does not expose its routes", h)
	}

	var routes []routeInfo
	err := chi.Walk(router, func(method, route string, _ http.Handler, middlewares ...func(http.Handler) http.Handler) error {
		routes = append(routes, routeInfo{
			Method:      method,
			Pattern:     strings.Replace(route, "/*/", "/", -1),
			Middlewares: len(middlewares),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk routes: %w", err)
	}

	sort.Slice(routes, func(i, j int) bool {
		if routes[i].Pattern != routes[j].Pattern {
			return routes[i].Pattern < routes[j].Pattern
		}
		return routes[i].Method < routes[j].Method
	})
	return routes, nil
}
