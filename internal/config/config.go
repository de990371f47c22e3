package config

import (
	"errors"
	"fmt"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

// Config stores all configuration of the application.
// Values are read from app.env in the config path and overridden by
// environment variables of the same name.
type Config struct {
	ServerAddress  string `mapstructure:"SERVER_ADDRESS"`
	LogLevel       string `mapstructure:"LOG_LEVEL"`
	CounterBackend string `mapstructure:"COUNTER_BACKEND"`
	SQLitePath     string `mapstructure:"SQLITE_PATH"`
	DBSource       string `mapstructure:"DB_SOURCE"`
	DataDir        string `mapstructure:"DATA_DIR"`

	v *viper.Viper
}

var defaults = map[string]string{
	"SERVER_ADDRESS":      ":8000",
	"LOG_LEVEL":           "info",
	"COUNTER_BACKEND":     "sqlite",
	"SQLITE_PATH":         "./data/visits.db",
	"DB_SOURCE":           "",
	"DATA_DIR":            "",
	"MAPBOX_ACCESS_TOKEN": "",
}

// LoadConfig reads configuration from file or environment variables.
// A .env file in the working directory is loaded first when present, and a
// missing app.env is not an error.
func LoadConfig(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("no .env file found, using environment")
	}

	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("app")
	v.SetConfigType("env")
	v.AutomaticEnv()

	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("config: failed to read config: %w", err)
		}
	}

	cfg := &Config{v: v}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to decode config: %w", err)
	}

	switch cfg.CounterBackend {
	case "sqlite", "postgres", "memory":
	default:
		return nil, fmt.Errorf("config: unknown counter backend %q", cfg.CounterBackend)
	}
	if cfg.CounterBackend == "postgres" && cfg.DBSource == "" {
		return nil, fmt.Errorf("config: DB_SOURCE is required for the postgres counter backend")
	}

	return cfg, nil
}

// MapboxToken returns the map provider access token. It is looked up on every
// call so a token rotated in the environment is picked up without a restart.
// An unset token yields an empty string.
func (c *Config) MapboxToken() string {
	if c.v == nil {
		return ""
	}
	return c.v.GetString("MAPBOX_ACCESS_TOKEN")
}
