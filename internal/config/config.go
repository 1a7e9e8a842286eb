package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	Database DatabaseConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Server   ServerConfig
	Demo     DemoConfig
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	Host        string
	Port        int
	User        string
	Password    string //nolint:gosec // G117: DB connection config
	DBName      string
	SSLMode     string
	MaxConns    int
	AutoMigrate bool
}

// RedisConfig holds Redis connection settings.
type RedisConfig struct {
	Addr     string
	Password string //nolint:gosec // G117: Redis connection config
	DB       int
}

// JWTConfig holds bearer token settings.
type JWTConfig struct {
	Secret   string //nolint:gosec // G117: JWT signing secret config
	TokenTTL time.Duration
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Addr         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	CORSOrigins  []string
}

// DemoConfig controls the fixture boards seeded at startup.
type DemoConfig struct {
	Boards int
	Seed   uint64 // 0 picks a random seed
}

// Load reads configuration from environment variables.
// Defaults are safe for local development only. In production,
// sensitive values (JWT secret, DB password) must be set explicitly.
func Load() (*Config, error) {
	dbPort, err := getEnvInt("SPHERE_DB_PORT", 5432)
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}

	dbMaxConns, err := getEnvInt("SPHERE_DB_MAX_CONNS", 10)
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}

	autoMigrate, err := getEnvBool("SPHERE_DB_AUTO_MIGRATE", true)
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}

	redisDB, err := getEnvInt("SPHERE_REDIS_DB", 0)
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}

	tokenTTL, err := getEnvDuration("SPHERE_JWT_TTL", 24*time.Hour)
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}

	readTimeout, err := getEnvDuration("SPHERE_SERVER_READ_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}

	writeTimeout, err := getEnvDuration("SPHERE_SERVER_WRITE_TIMEOUT", 30*time.Second)
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}

	demoBoards, err := getEnvInt("SPHERE_DEMO_BOARDS", 1)
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}

	demoSeed, err := getEnvUint64("SPHERE_DEMO_SEED", 0)
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}

	corsOrigins := getEnvList("SPHERE_CORS_ORIGINS", []string{"http://localhost:5173"})

	cfg := &Config{
		Database: DatabaseConfig{
			Host:        getEnv("SPHERE_DB_HOST", "localhost"),
			Port:        dbPort,
			User:        getEnv("SPHERE_DB_USER", "sphere"),
			Password:    getEnv("SPHERE_DB_PASSWORD", ""),
			DBName:      getEnv("SPHERE_DB_NAME", "sphere_dev"),
			SSLMode:     getEnv("SPHERE_DB_SSLMODE", "disable"),
			MaxConns:    dbMaxConns,
			AutoMigrate: autoMigrate,
		},
		Redis: RedisConfig{
			Addr:     getEnv("SPHERE_REDIS_ADDR", "localhost:6379"),
			Password: getEnv("SPHERE_REDIS_PASSWORD", ""),
			DB:       redisDB,
		},
		JWT: JWTConfig{
			Secret:   getEnv("SPHERE_JWT_SECRET", ""),
			TokenTTL: tokenTTL,
		},
		Server: ServerConfig{
			Addr:         getEnv("SPHERE_SERVER_ADDR", ":8080"),
			ReadTimeout:  readTimeout,
			WriteTimeout: writeTimeout,
			CORSOrigins:  corsOrigins,
		},
		Demo: DemoConfig{
			Boards: demoBoards,
			Seed:   demoSeed,
		},
	}

	err = cfg.validate()
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}

	return cfg, nil
}

// validate checks required fields and value bounds.
func (c *Config) validate() error {
	// JWT secret is required (no insecure default).
	if c.JWT.Secret == "" {
		return errors.New("SPHERE_JWT_SECRET is required")
	}
	if len(c.JWT.Secret) < 32 {
		return errors.New("SPHERE_JWT_SECRET must be at least 32 characters")
	}

	if c.Database.SSLMode == "disable" && c.Database.Host != "localhost" && c.Database.Host != "127.0.0.1" {
		log.Warn().Str("host", c.Database.Host).Msg("SPHERE_DB_SSLMODE=disable for a remote database; set to 'require' or 'verify-full'")
	}

	// Bounds checks.
	if c.Database.Port < 1 || c.Database.Port > 65535 {
		return fmt.Errorf("SPHERE_DB_PORT must be 1-65535, got %d", c.Database.Port)
	}
	if c.Database.MaxConns < 1 {
		return fmt.Errorf("SPHERE_DB_MAX_CONNS must be >= 1, got %d", c.Database.MaxConns)
	}
	if c.JWT.TokenTTL <= 0 {
		return fmt.Errorf("SPHERE_JWT_TTL must be positive, got %s", c.JWT.TokenTTL)
	}
	if c.Server.ReadTimeout <= 0 {
		return fmt.Errorf("SPHERE_SERVER_READ_TIMEOUT must be positive, got %s", c.Server.ReadTimeout)
	}
	if c.Server.WriteTimeout <= 0 {
		return fmt.Errorf("SPHERE_SERVER_WRITE_TIMEOUT must be positive, got %s", c.Server.WriteTimeout)
	}
	if c.Demo.Boards < 0 {
		return fmt.Errorf("SPHERE_DEMO_BOARDS must be >= 0, got %d", c.Demo.Boards)
	}

	return nil
}

// DSN returns the PostgreSQL connection string.
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("parsing %s=%q as int: %w", key, v, err)
	}
	return n, nil
}

func getEnvUint64(key string, fallback uint64) (uint64, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.ParseUint(v, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parsing %s=%q as uint64: %w", key, v, err)
	}
	return n, nil
}

func getEnvBool(key string, fallback bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("parsing %s=%q as bool: %w", key, v, err)
	}
	return b, nil
}

func getEnvDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("parsing %s=%q as duration: %w", key, v, err)
	}
	return d, nil
}

func getEnvList(key string, fallback []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	parts := strings.Split(v, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			result = append(result, p)
		}
	}
	return result
}
