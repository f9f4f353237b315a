package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
type Config struct {
	ServerHost string
	ServerPort string

	// DBDriver selects the database backend: "postgres" or "sqlite".
	DBDriver   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string
	// SQLitePath is the database file when DBDriver is "sqlite".
	SQLitePath string

	// RedisAddr is optional; when empty the favorite-count cache and the
	// rate limiter are disabled and everything hits the database directly.
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	JWTSecret string
	JWTExpiry time.Duration

	LogLevel string
}

// Load reads configuration from FUSION_* environment variables with
// development defaults for everything except the JWT secret.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("fusion")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", "8000")
	v.SetDefault("db.driver", "sqlite")
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", "5432")
	v.SetDefault("db.user", "fusion")
	v.SetDefault("db.password", "")
	v.SetDefault("db.name", "flavourfusion")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("sqlite.path", "flavourfusion.db")
	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("jwt.secret", "")
	v.SetDefault("jwt.expiry", 24*time.Hour)
	v.SetDefault("log.level", "info")

	cfg := &Config{
		ServerHost:    v.GetString("server.host"),
		ServerPort:    v.GetString("server.port"),
		DBDriver:      v.GetString("db.driver"),
		DBHost:        v.GetString("db.host"),
		DBPort:        v.GetString("db.port"),
		DBUser:        v.GetString("db.user"),
		DBPassword:    v.GetString("db.password"),
		DBName:        v.GetString("db.name"),
		DBSSLMode:     v.GetString("db.sslmode"),
		SQLitePath:    v.GetString("sqlite.path"),
		RedisAddr:     v.GetString("redis.addr"),
		RedisPassword: v.GetString("redis.password"),
		RedisDB:       v.GetInt("redis.db"),
		JWTSecret:     v.GetString("jwt.secret"),
		JWTExpiry:     v.GetDuration("jwt.expiry"),
		LogLevel:      v.GetString("log.level"),
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

func validate(cfg *Config) error {
	if cfg.JWTSecret == "" {
		return fmt.Errorf("FUSION_JWT_SECRET is required")
	}
	switch cfg.DBDriver {
	case "postgres", "sqlite":
	default:
		return fmt.Errorf("unknown database driver %q", cfg.DBDriver)
	}
	if cfg.DBDriver == "sqlite" && cfg.SQLitePath == "" {
		return fmt.Errorf("FUSION_SQLITE_PATH is required for the sqlite driver")
	}
	return nil
}

// PostgresDSN builds the connection string for the postgres driver.
func (c *Config) PostgresDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode,
	)
}
