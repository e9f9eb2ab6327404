package config

import (
	"os"
	"strconv"
)

// Config holds server configuration, read from the environment.
type Config struct {
	Port           string
	DBPath         string
	ClientOrigin   string
	JWTSecret      string
	JWTExpiresDays int
	CookieName     string
	LogLevel       string
	Production     bool
}

// Load reads configuration from environment variables with development
// defaults. godotenv has already populated the environment by the time
// this runs.
func Load() *Config {
	return &Config{
		Port:           getEnv("PORT", "3001"),
		DBPath:         getEnv("DB_PATH", "./data/newswordy.db"),
		ClientOrigin:   getEnv("CLIENT_ORIGIN", "http://localhost:3000"),
		JWTSecret:      getEnv("JWT_SECRET", "dev_secret_change_me"),
		JWTExpiresDays: getEnvInt("JWT_EXPIRES_DAYS", 14),
		CookieName:     getEnv("COOKIE_NAME", "newswordy_token"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		Production:     os.Getenv("APP_ENV") == "production",
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}
