// Package config loads and validates application settings from config.yaml,
// a .env file and MOVIES_* environment variables.
package config
