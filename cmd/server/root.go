package main

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/moviecatalog/movie-api/internal/config"
	"github.com/moviecatalog/movie-api/internal/platform/logger"
	"github.com/spf13/cobra"
)

// skipConfigAnnotation marks commands that run without loading configuration.
const skipConfigAnnotation = "skipConfigLoad"

type commandContext struct {
	configFlag  *string
	envFileFlag *string

	configOnce sync.Once
	config     *config.Config
	logger     *slog.Logger
	configErr  error
}

func newCommandContext(configFlag, envFileFlag *string) *commandContext {
	return &commandContext{
		configFlag:  configFlag,
		envFileFlag: envFileFlag,
	}
}

// ensureConfig loads configuration and installs the default logger once per
// process.
func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var opts []config.LoadOption
		if path := strings.TrimSpace(*c.configFlag); path != "" {
			opts = append(opts, config.WithConfigFile(path))
		}
		if path := strings.TrimSpace(*c.envFileFlag); path != "" {
			opts = append(opts, config.WithEnvFiles(path))
		}

		cfg, err := config.Load(opts...)
		if err != nil {
			c.configErr = fmt.Errorf("failed to load configuration: %w", err)
			return
		}

		l, err := logger.Setup(cfg.Server)
		if err != nil {
			c.configErr = fmt.Errorf("failed to set up logger: %w", err)
			return
		}

		c.config = cfg
		c.logger = l
	})
	return c.config, c.configErr
}

func newRootCommand() *cobra.Command {
	var configFlag string
	var envFileFlag string

	ctx := newCommandContext(&configFlag, &envFileFlag)

	rootCmd := &cobra.Command{
		Use:           "movie-api",
		Short:         "Movie catalog HTTP API",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if shouldSkipConfig(cmd) {
				return nil
			}
			_, err := ctx.ensureConfig()
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path (default ./config.yaml)")
	rootCmd.PersistentFlags().StringVar(&envFileFlag, "env-file", "", "Dotenv file loaded before the environment (default .env)")

	rootCmd.AddCommand(newServeCommand(ctx))
	rootCmd.AddCommand(newMigrateCommand(ctx))
	rootCmd.AddCommand(newRoutesCommand(ctx))
	rootCmd.AddCommand(newHashCommand())

	return rootCmd
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations[skipConfigAnnotation] == "true" {
			return true
		}
	}
	return false
}
