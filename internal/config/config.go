package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	DefaultSecretKey   = "dev-secret-key"
	DefaultDatabaseURL = "sqlite:///site.db"
	DefaultPerPage     = 5
)

// Config holds everything the server reads from the environment.
type Config struct {
	SecretKey   string
	DatabaseURL string
	Port        string
	AppEnv      string // development | production
	LogLevel    string
	PerPage     int
}

// Load reads an optional .env file and then the process environment.
func Load() *Config {
	// 忽略错误，允许只使用环境变量
	_ = godotenv.Load()

	cfg := &Config{
		SecretKey:   getenv("SECRET_KEY", DefaultSecretKey),
		DatabaseURL: NormalizeDatabaseURL(getenv("DATABASE_URL", DefaultDatabaseURL)),
		Port:        getenv("PORT", "8080"),
		AppEnv:      getenv("APP_ENV", "development"),
		LogLevel:    getenv("LOG_LEVEL", "info"),
		PerPage:     DefaultPerPage,
	}

	if n, err := strconv.Atoi(os.Getenv("PER_PAGE")); err == nil && n > 0 {
		cfg.PerPage = n
	}

	return cfg
}

// IsProduction reports whether APP_ENV is "production".
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// NormalizeDatabaseURL rewrites the legacy postgres:// scheme (as handed out
// by several hosting providers) to postgresql://. Other URLs are returned
// trimmed but otherwise untouched.
func NormalizeDatabaseURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "postgres://") {
		return "postgresql://" + strings.TrimPrefix(raw, "postgres://")
	}
	return raw
}

func getenv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}
