package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config holds the runtime settings of the service.
type Config struct {
	AppEnv           string
	AppPort          string
	LogLevel         zapcore.Level
	DBDriver         string
	DatabaseDSN      string
	RabbitMQURL      string
	RabbitMQExchange string
	RateLimitRPS     float64
	RateLimitBurst   int
}

// IsProduction reports whether the service runs with production settings.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.AppEnv, "production")
}

// Load reads the configuration from environment variables, a .env file and,
// when CONFIG_FILE points to one, a config file. Environment variables win
// over both files.
func Load() (*Config, error) {
	// A .env file only fills variables that are not already set.
	envFile := os.Getenv("ENV_FILE")
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load env file %s: %w", envFile, err)
	}

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	if file := v.GetString("CONFIG_FILE"); file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", file, err)
		}
	}

	return fromViper(v)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("APP_PORT", ":8080")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("DB_DRIVER", DriverPostgres)
	v.SetDefault("DATABASE_DSN", "")
	v.SetDefault("RABBITMQ_URL", "") // empty disables event publishing
	v.SetDefault("RABBITMQ_EXCHANGE", "productselector.events")
	v.SetDefault("RATE_LIMIT_RPS", 0) // 0 disables rate limiting
	v.SetDefault("RATE_LIMIT_BURST", 100)
}

func fromViper(v *viper.Viper) (*Config, error) {
	level, err := zapcore.ParseLevel(v.GetString("LOG_LEVEL"))
	if err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}

	driver := strings.ToLower(v.GetString("DB_DRIVER"))
	dsn := v.GetString("DATABASE_DSN")
	switch driver {
	case DriverPostgres:
		if dsn == "" {
			dsn = "host=127.0.0.1 user=postgres password=postgres dbname=productselector port=5432 sslmode=disable"
		}
	case DriverSQLite:
		if dsn == "" {
			dsn = "productselector.db"
		}
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", driver)
	}

	if v.GetFloat64("RATE_LIMIT_RPS") < 0 {
		return nil, errors.New("RATE_LIMIT_RPS must not be negative")
	}

	port := v.GetString("APP_PORT")
	if port == "" {
		return nil, errors.New("APP_PORT must not be empty")
	}
	if !strings.Contains(port, ":") {
		port = ":" + port
	}

	return &Config{
		AppEnv:           v.GetString("APP_ENV"),
		AppPort:          port,
		LogLevel:         level,
		DBDriver:         driver,
		DatabaseDSN:      dsn,
		RabbitMQURL:      v.GetString("RABBITMQ_URL"),
		RabbitMQExchange: v.GetString("RABBITMQ_EXCHANGE"),
		RateLimitRPS:     v.GetFloat64("RATE_LIMIT_RPS"),
		RateLimitBurst:   v.GetInt("RATE_LIMIT_BURST"),
	}, nil
}
