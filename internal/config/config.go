package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config holds environment-based settings
type Config struct {
	Environment    string
	ServerAddress  string
	DatabaseDriver string
	DatabaseURL    string
	RedisAddress   string
	RedisUsername  string
	RedisPassword  string
	CacheTTL       time.Duration
	LogLevel       string
	CORSOrigins    []string
}

// Development reports whether the app runs with APP_ENV=development (or unset).
func (c *Config) Development() bool {
	return c.Environment == "" || c.Environment == "development"
}

// Load resolves settings from, in order of precedence: environment
// variables, an optional dayplan.{yaml,json,toml} config file in the working
// directory or ~/.config/dayplan, then defaults. Values from an optional
// .env file (or the files given) are loaded into the environment first and
// never override variables that are already set.
func Load(envFiles ...string) (*Config, error) {
	if err := loadEnvFiles(envFiles); err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetDefault("app_env", "")
	v.SetDefault("server_address", ":8080")
	v.SetDefault("database_driver", DriverSQLite)
	v.SetDefault("database_url", "")
	v.SetDefault("redis_address", "")
	v.SetDefault("redis_username", "")
	v.SetDefault("redis_password", "")
	v.SetDefault("cache_ttl", "24h")
	v.SetDefault("log_level", "info")
	v.SetDefault("cors_origins", "")
	v.AutomaticEnv()

	v.SetConfigName("dayplan")
	v.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".config", "dayplan"))
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	driver := v.GetString("database_driver")
	if driver != DriverPostgres && driver != DriverSQLite {
		return nil, fmt.Errorf("DATABASE_DRIVER must be %q or %q, got %q", DriverPostgres, DriverSQLite, driver)
	}

	dbURL := v.GetString("database_url")
	if dbURL == "" {
		if driver == DriverPostgres {
			return nil, fmt.Errorf("DATABASE_URL is required")
		}
		dbURL = "./data/dayplan.db"
	}

	ttl, err := time.ParseDuration(v.GetString("cache_ttl"))
	if err != nil {
		return nil, fmt.Errorf("invalid CACHE_TTL: %w", err)
	}

	return &Config{
		Environment:    v.GetString("app_env"),
		ServerAddress:  v.GetString("server_address"),
		DatabaseDriver: driver,
		DatabaseURL:    dbURL,
		RedisAddress:   v.GetString("redis_address"),
		RedisUsername:  v.GetString("redis_username"),
		RedisPassword:  v.GetString("redis_password"),
		CacheTTL:       ttl,
		LogLevel:       v.GetString("log_level"),
		CORSOrigins:    splitList(v.GetString("cors_origins")),
	}, nil
}

func loadEnvFiles(files []string) error {
	if len(files) == 0 {
		if _, err := os.Stat(".env"); err != nil {
			return nil
		}
		files = []string{".env"}
	}
	if err := godotenv.Load(files...); err != nil {
		return fmt.Errorf("load env files: %w", err)
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
