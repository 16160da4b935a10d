package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"
)

const DefaultAdminSecret = "supersecret"

type Config struct {
	Port            string
	MongoDBURI      string
	MongoDBPassword string
	MongoDBDatabase string
	AdminSecret     string
	OMDbAPIKey      string
	OMDbBaseURL     string
	DefaultPoster   string
	PosterTimeout   time.Duration
	SweepInterval   time.Duration
	RedisAddr       string
	RedisPassword   string
	PosterCacheTTL  time.Duration
	CORSOrigins     []string
	Environment     string
	LogLevel        string
}

func LoadConfig() (*Config, error) {
	cfg := &Config{
		Port:            getEnvWithDefault("PORT", "3000"),
		MongoDBURI:      os.Getenv("MONGODB_URI"),
		MongoDBPassword: os.Getenv("MONGODB_PASSWORD"),
		MongoDBDatabase: getEnvWithDefault("MONGODB_DATABASE", "watchparty"),
		AdminSecret:     getEnvWithDefault("ADMIN_SECRET", DefaultAdminSecret),
		OMDbAPIKey:      os.Getenv("OMDB_API_KEY"),
		OMDbBaseURL:     getEnvWithDefault("OMDB_BASE_URL", "http://www.omdbapi.com/"),
		DefaultPoster:   getEnvWithDefault("DEFAULT_POSTER", "/posters/default.jpg"),
		RedisAddr:       os.Getenv("REDIS_ADDR"),
		RedisPassword:   os.Getenv("REDIS_PASSWORD"),
		CORSOrigins:     splitList(getEnvWithDefault("CORS_ORIGINS", "http://localhost:3000")),
		Environment:     getEnvWithDefault("ENVIRONMENT", "development"),
		LogLevel:        getEnvWithDefault("LOG_LEVEL", "info"),
	}

	if len(cfg.CORSOrigins) == 0 {
		cfg.CORSOrigins = []string{"http://localhost:3000"}
	}

	// Validate required fields
	if cfg.MongoDBURI == "" {
		return nil, fmt.Errorf("MONGODB_URI is required")
	}

	var err error
	if cfg.PosterTimeout, err = getDurationWithDefault("POSTER_TIMEOUT", 5*time.Second); err != nil {
		return nil, err
	}
	if cfg.SweepInterval, err = getDurationWithDefault("SWEEP_INTERVAL", time.Hour); err != nil {
		return nil, err
	}
	if cfg.PosterCacheTTL, err = getDurationWithDefault("POSTER_CACHE_TTL", 24*time.Hour); err != nil {
		return nil, err
	}

	return cfg, nil
}

func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDurationWithDefault(key string, defaultValue time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: invalid duration %q: %v", key, raw, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%s must be positive, got %s", key, d)
	}
	return d, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

func (c *Config) PosterLookupEnabled() bool {
	return c.OMDbAPIKey != ""
}

func (c *Config) UsesDefaultAdminSecret() bool {
	return c.AdminSecret == DefaultAdminSecret
}

func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
