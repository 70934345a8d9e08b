package config

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig   `mapstructure:"server" validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Auth     AuthConfig     `mapstructure:"auth" validate:"required"`
	Cache    CacheConfig    `mapstructure:"cache"`
	Storage  StorageConfig  `mapstructure:"storage" validate:"required"`
	CORS     CORSConfig     `mapstructure:"cors"`
	Task     TaskConfig     `mapstructure:"task"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	// PublicBaseURL prefixes the URLs returned for uploaded images.
	PublicBaseURL          string `mapstructure:"public_base_url" validate:"required,url"`
	ShutdownTimeoutSeconds int    `mapstructure:"shutdown_timeout_seconds" validate:"gte=0"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL          string `mapstructure:"url" validate:"required"`
	MaxOpenConns int    `mapstructure:"max_open_conns" validate:"gte=1"`
	MaxIdleConns int    `mapstructure:"max_idle_conns" validate:"gte=0"`
}

// AuthConfig contains all authentication and authorization settings.
type AuthConfig struct {
	JWTSecret            string `mapstructure:"jwt_secret" validate:"required,min=32"`
	Issuer               string `mapstructure:"issuer" validate:"required"`
	TokenLifetimeMinutes int    `mapstructure:"token_lifetime_minutes" validate:"required,gt=0"`
	BcryptCost           int    `mapstructure:"bcrypt_cost" validate:"gte=4,lte=31"`
}

// CacheConfig controls the response cache for public catalog reads.
// An empty RedisAddr selects the in-process cache.
type CacheConfig struct {
	TTLSeconds int    `mapstructure:"ttl_seconds" validate:"gte=0"`
	RedisAddr  string `mapstructure:"redis_addr" validate:"omitempty,hostname_port"`
	RedisDB    int    `mapstructure:"redis_db" validate:"gte=0"`
}

// StorageConfig controls where uploaded movie images are written and served from.
type StorageConfig struct {
	UploadDir      string `mapstructure:"upload_dir" validate:"required"`
	PublicPath     string `mapstructure:"public_path" validate:"required,startswith=/"`
	MaxUploadBytes int64  `mapstructure:"max_upload_bytes" validate:"gt=0"`
}

// CORSConfig lists the origins allowed to call the API from a browser.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// TaskConfig sizes the background worker pool that runs slow event handlers.
type TaskConfig struct {
	WorkerCount    int `mapstructure:"worker_count" validate:"gte=1"`
	QueueSize      int `mapstructure:"queue_size" validate:"gte=1"`
	TimeoutSeconds int `mapstructure:"timeout_seconds" validate:"gte=0"`
}
