package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Cache drivers accepted by CACHE_DRIVER.
const (
	CacheDriverMemory = "memory"
	CacheDriverRedis  = "redis"
)

// Config holds all application configuration loaded from environment variables.
// It is the single source of truth for runtime parameters.
type Config struct {
	Port         string
	Env          string
	JWTSecret    string
	CookieSecure bool
	CORSHosts    []string

	Catalog CatalogConfig
	Cache   CacheConfig
	Redis   RedisConfig
	Auth    AuthConfig
	Worker  WorkerConfig
}

// CatalogConfig contains the upstream product catalog parameters.
type CatalogConfig struct {
	BaseURL    string
	Timeout    time.Duration
	WriteDelay time.Duration
}

// CacheConfig selects the request cache / session store backend.
type CacheConfig struct {
	Driver string
	TTL    time.Duration
}

// RedisConfig contains Redis connection parameters.
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// AuthConfig contains the artificial latencies of the mock auth store.
type AuthConfig struct {
	LoginDelay  time.Duration
	LogoutDelay time.Duration
}

// WorkerConfig contains interval configuration for background workers.
type WorkerConfig struct {
	CacheWarmInterval time.Duration
}

// IsProduction reports whether the service runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Load reads configuration from environment variables. If a .env file exists
// in the working directory, it will be loaded first. It returns a populated
// Config or an error with a human-friendly message.
func Load() (*Config, error) {
	// Missing .env is fine: production relies on real environment variables.
	_ = godotenv.Load()

	cfg := &Config{}

	// Server
	cfg.Port = getEnv("PORT", "8080")
	cfg.Env = getEnv("ENV", "development")
	cfg.JWTSecret = getEnv("JWT_SECRET", "")
	cfg.CookieSecure = getEnvBool("COOKIE_SECURE", false)
	cfg.CORSHosts = getEnvList("CORS_ALLOWED_HOSTS")

	// Catalog
	cfg.Catalog.BaseURL = strings.TrimSuffix(getEnv("CATALOG_BASE_URL", "https://fakestoreapi.com"), "/")

	// Cache
	cfg.Cache.Driver = strings.ToLower(getEnv("CACHE_DRIVER", CacheDriverMemory))

	// Redis
	cfg.Redis = RedisConfig{
		Host:     getEnv("REDIS_HOST", "localhost"),
		Port:     getEnv("REDIS_PORT", "6379"),
		Password: getEnv("REDIS_PASSWORD", ""),
		DB:       getEnvInt("REDIS_DB", 0),
	}

	// Durations
	var err error
	if cfg.Catalog.Timeout, err = parseDurationEnv("CATALOG_TIMEOUT", "15s"); err != nil {
		return nil, fmt.Errorf("invalid CATALOG_TIMEOUT: %w", err)
	}
	if cfg.Catalog.WriteDelay, err = parseDurationEnv("WRITE_DELAY", "500ms"); err != nil {
		return nil, fmt.Errorf("invalid WRITE_DELAY: %w", err)
	}
	if cfg.Cache.TTL, err = parseDurationEnv("CACHE_TTL", "5m"); err != nil {
		return nil, fmt.Errorf("invalid CACHE_TTL: %w", err)
	}
	if cfg.Auth.LoginDelay, err = parseDurationEnv("LOGIN_DELAY", "500ms"); err != nil {
		return nil, fmt.Errorf("invalid LOGIN_DELAY: %w", err)
	}
	if cfg.Auth.LogoutDelay, err = parseDurationEnv("LOGOUT_DELAY", "300ms"); err != nil {
		return nil, fmt.Errorf("invalid LOGOUT_DELAY: %w", err)
	}
	if cfg.Worker.CacheWarmInterval, err = parseDurationEnv("CACHE_WARM_INTERVAL", "0s"); err != nil {
		return nil, fmt.Errorf("invalid CACHE_WARM_INTERVAL: %w", err)
	}

	if cfg.Cache.Driver != CacheDriverMemory && cfg.Cache.Driver != CacheDriverRedis {
		return nil, fmt.Errorf("CACHE_DRIVER must be %q or %q", CacheDriverMemory, CacheDriverRedis)
	}

	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET must be set for session signing")
	}

	return cfg, nil
}

// getEnv returns the value of an environment variable or a default if empty.
func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// getEnvList splits a comma-separated variable, dropping empty items.
func getEnvList(key string) []string {
	var out []string
	for _, item := range strings.Split(os.Getenv(key), ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// getEnvInt returns the value of an environment variable as an integer or a default if empty/invalid.
func getEnvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return i
}

func getEnvBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

// parseDurationEnv reads an environment variable and parses it as time.Duration.
// If the variable is empty, it falls back to the provided default value.
func parseDurationEnv(key, def string) (time.Duration, error) {
	raw := getEnv(key, def)
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, err
	}
	if d < 0 {
		return 0, fmt.Errorf("duration must be >= 0")
	}
	return d, nil
}
