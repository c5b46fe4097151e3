package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Store configuration. STORE_DRIVER is one of sqlite, mongo or memory.
	StoreDriver         string `mapstructure:"STORE_DRIVER"`
	SQLitePath          string `mapstructure:"SQLITE_PATH"`
	DatabaseURL         string `mapstructure:"DATABASE_URL"`
	MongoDatabase       string `mapstructure:"MONGO_DATABASE"`
	StoreTimeoutSeconds int    `mapstructure:"STORE_TIMEOUT_SECONDS"`

	// Booking lock. LOCK_DRIVER is local or redis.
	LockDriver     string `mapstructure:"LOCK_DRIVER"`
	LockTTLSeconds int    `mapstructure:"LOCK_TTL_SECONDS"`

	// NOTIFY_DRIVER is log or asynq.
	NotifyDriver string `mapstructure:"NOTIFY_DRIVER"`

	// Redis configuration.
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisLockDB   int    `mapstructure:"REDIS_LOCK_DB"`
	RedisQueueDB  int    `mapstructure:"REDIS_QUEUE_DB"`
}

var AppConfig Config

// LoadConfig reads config.yaml (if present), the environment and defaults into AppConfig.
func LoadConfig() (Config, error) {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	// Set default values.
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 200)
	viper.SetDefault("STORE_DRIVER", "sqlite")
	viper.SetDefault("SQLITE_PATH", "sessions.db")
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017/?replicaSet=rs0")
	viper.SetDefault("MONGO_DATABASE", "mentorly")
	viper.SetDefault("STORE_TIMEOUT_SECONDS", 5)
	viper.SetDefault("LOCK_DRIVER", "local")
	viper.SetDefault("LOCK_TTL_SECONDS", 10)
	viper.SetDefault("NOTIFY_DRIVER", "log")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_LOCK_DB", 0)
	viper.SetDefault("REDIS_QUEUE_DB", 1)

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	AppConfig = cfg
	return cfg, nil
}

// Validate rejects unknown drivers and non-positive timeouts.
func (c Config) Validate() error {
	switch c.StoreDriver {
	case "sqlite", "mongo", "memory":
	default:
		return fmt.Errorf("unsupported STORE_DRIVER %q", c.StoreDriver)
	}
	switch c.LockDriver {
	case "local", "redis":
	default:
		return fmt.Errorf("unsupported LOCK_DRIVER %q", c.LockDriver)
	}
	switch c.NotifyDriver {
	case "log", "asynq":
	default:
		return fmt.Errorf("unsupported NOTIFY_DRIVER %q", c.NotifyDriver)
	}
	if c.StoreTimeoutSeconds <= 0 {
		return fmt.Errorf("STORE_TIMEOUT_SECONDS must be positive")
	}
	if c.LockTTLSeconds <= 0 {
		return fmt.Errorf("LOCK_TTL_SECONDS must be positive")
	}
	return nil
}

// StoreTimeout bounds every store round trip and booking transaction.
func (c Config) StoreTimeout() time.Duration {
	return time.Duration(c.StoreTimeoutSeconds) * time.Second
}

// LockTTL bounds how long a distributed booking lock may be held.
func (c Config) LockTTL() time.Duration {
	return time.Duration(c.LockTTLSeconds) * time.Second
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}
