package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Authentication modes.
const (
	AuthModeAccounts = "accounts"
	AuthModeDemo     = "demo"
)

// Config holds application level configuration loaded from environment variables.
type Config struct {
	ServerPort  string
	DBDriver    string
	MySQLDSN    string
	SQLiteDSN   string
	RedisAddr   string
	RedisDB     int
	RedisPass   string
	JWTSecret   string
	SessionTTL  time.Duration
	AuthMode    string
	LogLevel    string
	LogFormat   string
	SwaggerHost string

	// Seed only.
	CatalogURL    string
	AdminEmail    string
	AdminPassword string
	AdminName     string
}

// Load builds Config from environment with sensible defaults. A .env file in the
// working directory is read first when present; real environment variables win.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		ServerPort:  getEnv("SERVER_PORT", "8080"),
		DBDriver:    getEnv("DB_DRIVER", "mysql"),
		MySQLDSN:    getEnv("MYSQL_DSN", "user:password@tcp(localhost:3306)/hotelstay?charset=utf8mb4&parseTime=True&loc=Local"),
		SQLiteDSN:   getEnv("SQLITE_DSN", "hotelstay.db"),
		RedisAddr:   os.Getenv("REDIS_ADDR"),
		RedisDB:     getEnvInt("REDIS_DB", 0),
		RedisPass:   os.Getenv("REDIS_PASSWORD"),
		JWTSecret:   getEnv("JWT_SECRET", "change-me"),
		SessionTTL:  getEnvDuration("SESSION_TTL", 24*time.Hour),
		AuthMode:    getEnv("AUTH_MODE", AuthModeAccounts),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		LogFormat:   getEnv("LOG_FORMAT", "json"),
		SwaggerHost: os.Getenv("SWAGGER_HOST"),

		CatalogURL:    os.Getenv("CATALOG_URL"),
		AdminEmail:    getEnv("ADMIN_EMAIL", "admin@hotel.com"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),
		AdminName:     getEnv("ADMIN_NAME", "Front Desk"),
	}
}

// DemoAuth reports whether any non-empty credentials are accepted.
func (c *Config) DemoAuth() bool {
	return c.AuthMode == AuthModeDemo
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return def
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil && parsed > 0 {
			return parsed
		}
	}
	return def
}
