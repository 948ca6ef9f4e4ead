package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all environment-driven settings for the server.
type Config struct {
	DBDriver   string `envconfig:"DB_DRIVER" default:"mysql"`
	DBHost     string `envconfig:"DB_HOST" default:"localhost"`
	DBPort     string `envconfig:"DB_PORT"`
	DBUser     string `envconfig:"DB_USER" default:"relief"`
	DBPassword string `envconfig:"DB_PASSWORD" default:"relief"`
	DBName     string `envconfig:"DB_NAME" default:"disaster_relief"`

	RedisHost string `envconfig:"REDIS_HOST" default:"localhost"`
	RedisPort string `envconfig:"REDIS_PORT" default:"6379"`

	SessionSecret string `envconfig:"SESSION_SECRET" default:"default-secret-key-change-me"`
	GinMode       string `envconfig:"GIN_MODE" default:"debug"`
	ListenAddr    string `envconfig:"LISTEN_ADDR" default:":8080"`

	// AdminEmail promotes the matching account to the Admin role at signup.
	AdminEmail string `envconfig:"ADMIN_EMAIL"`
}

// Load processes the environment into a Config.
func Load() (*Config, error) {
	cfg := new(Config)
	if err := envconfig.Process("", cfg); err != nil {
		return nil, fmt.Errorf("process environment config: %w", err)
	}

	if cfg.DBPort == "" {
		switch cfg.DBDriver {
		case "postgres":
			cfg.DBPort = "5432"
		default:
			cfg.DBPort = "3306"
		}
	}

	return cfg, nil
}
