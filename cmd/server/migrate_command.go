package main

import (
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	"github.com/moviecatalog/movie-api/internal/platform/postgres"
	"github.com/spf13/cobra"
)

func newMigrateCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:       "migrate [" + strings.Join(postgres.MigrationCommands, "|") + "]",
		Short:     "Run database migrations",
		Long:      "Apply, roll back or inspect the embedded SQL migrations. Defaults to up.",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: postgres.MigrationCommands,
		RunE: func(cmd *cobra.Command, args []string) error {
			command := postgres.MigrateUp
			if len(args) == 1 {
				command = strings.ToLower(args[0])
			}
			if !isMigrationCommand(command) {
				return fmt.Errorf("unknown migration command %q (expected one of %s)",
					command, strings.Join(postgres.MigrationCommands, ", "))
			}

			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			db, err := postgres.Open(cmd.Context(), cfg.Database, ctx.logger)
			if err != nil {
				return err
			}
			defer func() {
				if err := db.Close(); err != nil {
					ctx.logger.Warn("failed to close database connection", "error", err)
				}
			}()

			if command == postgres.MigrateStatus {
				return printMigrationStatus(cmd, db, ctx)
			}
			return postgres.Migrate(cmd.Context(), db, command, ctx.logger)
		},
	}
}

func isMigrationCommand(command string) bool {
	for _, c := range postgres.MigrationCommands {
		if c == command {
			return true
		}
	}
	return false
}

func printMigrationStatus(cmd *cobra.Command, db *sql.DB, ctx *commandContext) error {
	states, current, err := postgres.MigrationStatus(cmd.Context(), db, ctx.logger)
	if err != nil {
		return err
	}

	rows := make([][]string, 0, len(states))
	pending := 0
	for _, s := range states {
		state := "applied"
		if !s.Applied {
			state = "pending"
			pending++
		}
		rows = append(rows, []string{strconv.FormatInt(s.Version, 10), s.Name, state})
	}

	out := cmd.OutOrStdout()
	if err := writeTable(out, []string{"Version", "Migration", "State"}, rows,
		[]columnAlignment{alignRight, alignLeft, alignLeft}); err != nil {
		return err
	}
	_, err = fmt.Fprintf(out, "database version %d, %d pending\n", current, pending)
	return err
}
