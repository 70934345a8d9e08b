package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable, e.g. MOVIES_SERVER_PORT.
const EnvPrefix = "MOVIES"

// LoadOption customizes Load.
type LoadOption func(*loadOptions)

type loadOptions struct {
	configFile string
	envFiles   []string
}

// WithConfigFile reads settings from an explicit file instead of searching
// for config.yaml in the working directory.
func WithConfigFile(path string) LoadOption {
	return func(o *loadOptions) {
		o.configFile = path
	}
}

// WithEnvFiles overrides the dotenv files loaded before reading the environment.
func WithEnvFiles(paths ...string) LoadOption {
	return func(o *loadOptions) {
		o.envFiles = paths
	}
}

// Load configuration from environment variables and optionally config files.
// Environment variables take precedence over values from config files; values
// from .env never override variables that are already set.
func Load(opts ...LoadOption) (*Config, error) {
	options := loadOptions{envFiles: []string{".env"}}
	for _, opt := range opts {
		opt(&options)
	}

	if err := loadEnvFiles(options.envFiles); err != nil {
		return nil, err
	}

	v := viper.New()
	setDefaults(v)

	if options.configFile != "" {
		v.SetConfigFile(options.configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", options.configFile, err)
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("error reading config file: %w", err)
			}
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

func loadEnvFiles(paths []string) error {
	for _, path := range paths {
		if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			return fmt.Errorf("failed to load env file %s: %w", path, err)
		}
	}
	return nil
}

// setDefaults registers every key so that AutomaticEnv can populate it
// during Unmarshal, even when no config file mentions it.
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("server.public_base_url", "http://localhost:8080")
	v.SetDefault("server.shutdown_timeout_seconds", 10)

	v.SetDefault("database.url", "")
	v.SetDefault("database.max_open_conns", 10)
	v.SetDefault("database.max_idle_conns", 5)

	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("auth.issuer", "movie-api")
	v.SetDefault("auth.token_lifetime_minutes", 7*24*60)
	v.SetDefault("auth.bcrypt_cost", 10)

	v.SetDefault("cache.ttl_seconds", 30)
	v.SetDefault("cache.redis_addr", "")
	v.SetDefault("cache.redis_db", 0)

	v.SetDefault("storage.upload_dir", "./wwwroot/images")
	v.SetDefault("storage.public_path", "/images")
	v.SetDefault("storage.max_upload_bytes", 5<<20)

	v.SetDefault("cors.allowed_origins", []string{"*"})

	v.SetDefault("task.worker_count", 2)
	v.SetDefault("task.queue_size", 100)
	v.SetDefault("task.timeout_seconds", 30)
}
