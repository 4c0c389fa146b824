package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/spf13/viper"
)

// Config holds all configuration for our application.
// Sections are squashed so every key maps 1:1 onto a flat environment variable.
type Config struct {
	Server    ServerConfig    `mapstructure:",squash"`
	Database  DatabaseConfig  `mapstructure:",squash"`
	Redis     RedisConfig     `mapstructure:",squash"`
	Scheduler SchedulerConfig `mapstructure:",squash"`
	Logging   LoggingConfig   `mapstructure:",squash"`
	Auth      AuthConfig      `mapstructure:",squash"`
	Business  BusinessConfig  `mapstructure:",squash"`
	Health    HealthConfig    `mapstructure:",squash"`
}

type ServerConfig struct {
	Port         string `mapstructure:"SERVER_PORT"`
	Host         string `mapstructure:"SERVER_HOST"`
	Env          string `mapstructure:"ENV"`
	ReadTimeout  string `mapstructure:"SERVER_READ_TIMEOUT"`
	WriteTimeout string `mapstructure:"SERVER_WRITE_TIMEOUT"`
}

type DatabaseConfig struct {
	Driver       string `mapstructure:"DATABASE_DRIVER"`
	URL          string `mapstructure:"DATABASE_URL"`
	Host         string `mapstructure:"DATABASE_HOST"`
	Port         string `mapstructure:"DATABASE_PORT"`
	Name         string `mapstructure:"DATABASE_NAME"`
	User         string `mapstructure:"DATABASE_USER"`
	Password     string `mapstructure:"DATABASE_PASSWORD"`
	SSLMode      string `mapstructure:"DATABASE_SSLMODE"`
	MaxOpenConns int    `mapstructure:"DATABASE_MAX_OPEN_CONNS"`
	MaxIdleConns int    `mapstructure:"DATABASE_MAX_IDLE_CONNS"`
	AutoMigrate  bool   `mapstructure:"DATABASE_AUTO_MIGRATE"`
}

type RedisConfig struct {
	URL      string `mapstructure:"REDIS_URL"`
	Host     string `mapstructure:"REDIS_HOST"`
	Port     string `mapstructure:"REDIS_PORT"`
	Password string `mapstructure:"REDIS_PASSWORD"`
	DB       int    `mapstructure:"REDIS_DB"`
}

type SchedulerConfig struct {
	ReconcileSpec string `mapstructure:"SCHEDULER_RECONCILE_SPEC"`
	Timezone      string `mapstructure:"SCHEDULER_TIMEZONE"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"LOG_LEVEL"`
	Format string `mapstructure:"LOG_FORMAT"`
}

type AuthConfig struct {
	JWTSecret string `mapstructure:"JWT_SECRET"`
}

type BusinessConfig struct {
	ApplicationNumberPrefix   string `mapstructure:"APPLICATION_NUMBER_PREFIX"`
	ApplicationNumberAttempts int    `mapstructure:"APPLICATION_NUMBER_ATTEMPTS"`
	EnforceStatusTransitions  bool   `mapstructure:"ENFORCE_STATUS_TRANSITIONS"`
	ProductCacheTTL           string `mapstructure:"PRODUCT_CACHE_TTL"`
}

type HealthConfig struct {
	Timeout string `mapstructure:"HEALTH_CHECK_TIMEOUT"`
}

var keys = []string{
	"SERVER_PORT", "SERVER_HOST", "ENV", "SERVER_READ_TIMEOUT", "SERVER_WRITE_TIMEOUT",
	"DATABASE_DRIVER", "DATABASE_URL", "DATABASE_HOST", "DATABASE_PORT", "DATABASE_NAME",
	"DATABASE_USER", "DATABASE_PASSWORD", "DATABASE_SSLMODE", "DATABASE_MAX_OPEN_CONNS",
	"DATABASE_MAX_IDLE_CONNS", "DATABASE_AUTO_MIGRATE",
	"REDIS_URL", "REDIS_HOST", "REDIS_PORT", "REDIS_PASSWORD", "REDIS_DB",
	"SCHEDULER_RECONCILE_SPEC", "SCHEDULER_TIMEZONE",
	"LOG_LEVEL", "LOG_FORMAT",
	"JWT_SECRET",
	"APPLICATION_NUMBER_PREFIX", "APPLICATION_NUMBER_ATTEMPTS", "ENFORCE_STATUS_TRANSITIONS", "PRODUCT_CACHE_TTL",
	"HEALTH_CHECK_TIMEOUT",
}

// Load reads configuration from environment variables and an optional .env file
func Load() (*Config, error) {
	v := viper.New()

	// Set defaults
	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("SERVER_HOST", "0.0.0.0")
	v.SetDefault("ENV", "development")
	v.SetDefault("SERVER_READ_TIMEOUT", "15s")
	v.SetDefault("SERVER_WRITE_TIMEOUT", "15s")
	v.SetDefault("DATABASE_DRIVER", "postgres")
	v.SetDefault("DATABASE_PORT", "5432")
	v.SetDefault("DATABASE_SSLMODE", "disable")
	v.SetDefault("DATABASE_MAX_OPEN_CONNS", 25)
	v.SetDefault("DATABASE_MAX_IDLE_CONNS", 5)
	v.SetDefault("DATABASE_AUTO_MIGRATE", true)
	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", "6379")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("SCHEDULER_RECONCILE_SPEC", "0 0 2 * * *")
	v.SetDefault("SCHEDULER_TIMEZONE", "Asia/Kolkata")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("APPLICATION_NUMBER_PREFIX", "LAMF")
	v.SetDefault("APPLICATION_NUMBER_ATTEMPTS", 10)
	v.SetDefault("ENFORCE_STATUS_TRANSITIONS", false)
	v.SetDefault("PRODUCT_CACHE_TTL", "10m")
	v.SetDefault("HEALTH_CHECK_TIMEOUT", "5s")

	// Read from environment variables
	v.AutomaticEnv()
	// AutomaticEnv only resolves keys viper already knows about
	for _, k := range keys {
		_ = v.BindEnv(k)
	}

	// Try to read from .env file (optional)
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	v.AddConfigPath("./deployments")

	// Don't fail if .env file doesn't exist
	_ = v.ReadInConfig()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// Validate configuration
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("SERVER_PORT is required")
	}

	if c.Database.URL == "" && c.Database.Host == "" {
		return fmt.Errorf("DATABASE_URL or DATABASE_HOST is required")
	}

	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}

	if c.Business.ApplicationNumberAttempts <= 0 {
		return fmt.Errorf("APPLICATION_NUMBER_ATTEMPTS must be greater than 0")
	}

	durations := map[string]string{
		"SERVER_READ_TIMEOUT":  c.Server.ReadTimeout,
		"SERVER_WRITE_TIMEOUT": c.Server.WriteTimeout,
		"PRODUCT_CACHE_TTL":    c.Business.ProductCacheTTL,
		"HEALTH_CHECK_TIMEOUT": c.Health.Timeout,
	}
	for key, value := range durations {
		if _, err := time.ParseDuration(value); err != nil {
			return fmt.Errorf("%s must be a valid duration: %w", key, err)
		}
	}

	// Validate scheduler spec (seconds field included)
	parser := cron.NewParser(cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)
	if _, err := parser.Parse(c.Scheduler.ReconcileSpec); err != nil {
		return fmt.Errorf("SCHEDULER_RECONCILE_SPEC must be a valid cron spec: %w", err)
	}

	if _, err := time.LoadLocation(c.Scheduler.Timezone); err != nil {
		return fmt.Errorf("SCHEDULER_TIMEZONE must be a valid timezone: %w", err)
	}

	return nil
}

// IsDevelopment returns true if running in development environment
func (c *Config) IsDevelopment() bool {
	return c.Server.Env == "development" || c.Server.Env == "dev"
}

// IsProduction returns true if running in production environment
func (c *Config) IsProduction() bool {
	return c.Server.Env == "production" || c.Server.Env == "prod"
}

// DSN returns DATABASE_URL, or builds a postgres connection string from its parts.
func (c *Config) DSN() string {
	if c.Database.URL != "" {
		return c.Database.URL
	}
	parts := []string{
		"host=" + c.Database.Host,
		"port=" + c.Database.Port,
		"user=" + c.Database.User,
		"password=" + c.Database.Password,
		"dbname=" + c.Database.Name,
		"sslmode=" + c.Database.SSLMode,
	}
	return strings.Join(parts, " ")
}

// RedisAddr returns host:port for the redis client.
func (c *Config) RedisAddr() string {
	return c.Redis.Host + ":" + c.Redis.Port
}

// GetReadTimeout returns the server read timeout as duration
func (c *Config) GetReadTimeout() time.Duration {
	d, _ := time.ParseDuration(c.Server.ReadTimeout)
	return d
}

// GetWriteTimeout returns the server write timeout as duration
func (c *Config) GetWriteTimeout() time.Duration {
	d, _ := time.ParseDuration(c.Server.WriteTimeout)
	return d
}

// GetProductCacheTTL returns the product cache TTL as duration
func (c *Config) GetProductCacheTTL() time.Duration {
	d, _ := time.ParseDuration(c.Business.ProductCacheTTL)
	return d
}

// GetHealthTimeout returns the health check timeout as duration
func (c *Config) GetHealthTimeout() time.Duration {
	timeout, _ := time.ParseDuration(c.Health.Timeout)
	return timeout
}

// GetSchedulerLocation returns the scheduler timezone, falling back to UTC.
func (c *Config) GetSchedulerLocation() *time.Location {
	loc, err := time.LoadLocation(c.Scheduler.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
