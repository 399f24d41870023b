// config/config.go - Environment-based configuration
package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds everything the service reads from the environment.
// Loaded once at startup and treated as immutable afterwards.
type Config struct {
	Port        string
	Env         string
	CORSOrigins string
	BaseURL     string

	DatabaseURL string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	JWTSecret         string
	AccessTokenTTL    time.Duration
	RefreshTokenTTL   time.Duration
	EphemeralTokenTTL time.Duration
	AccessCookieName  string
	RefreshCookieName string

	SMTPHost     string
	SMTPPort     string
	SMTPUser     string
	SMTPPassword string
	EmailFrom    string

	AdminUsers      []string
	AdminPathSecret string

	// SingleTeamPerOwner rejects team creation when the requester
	// already owns a team.
	SingleTeamPerOwner bool
}

// Load reads configuration from the environment with defaults suitable
// for local development. Call godotenv.Load before this.
func Load() *Config {
	return &Config{
		Port:        getEnv("PORT", "8000"),
		Env:         getEnv("APP_ENV", "development"),
		CORSOrigins: getEnv("CORS_ORIGINS", "http://localhost:3000"),
		BaseURL:     getEnv("BASE_URL", "http://127.0.0.1:8000"),

		DatabaseURL: os.Getenv("DATABASE_URL"),

		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       getEnvInt("REDIS_DB", 0),

		JWTSecret:         os.Getenv("JWT_SECRET"),
		AccessTokenTTL:    getEnvMinutes("ACCESS_TOKEN_EXPIRES_IN", 30),
		RefreshTokenTTL:   getEnvMinutes("REFRESH_TOKEN_EXPIRES_IN", 7*24*60),
		EphemeralTokenTTL: time.Duration(getEnvInt("EPHEMERAL_TOKEN_TTL_SECONDS", 900)) * time.Second,
		AccessCookieName:  getEnv("COOKIE_ACCESS_TOKEN_KEY", "find-team"),
		RefreshCookieName: getEnv("COOKIE_REFRESH_TOKEN_KEY", "rstoken"),

		SMTPHost:     os.Getenv("SMTP_HOST"),
		SMTPPort:     getEnv("SMTP_PORT", "587"),
		SMTPUser:     os.Getenv("SMTP_USER"),
		SMTPPassword: os.Getenv("SMTP_PASSWORD"),
		EmailFrom:    getEnv("EMAIL_FROM", os.Getenv("SMTP_USER")),

		AdminUsers:      splitList(os.Getenv("ADMIN_USERS")),
		AdminPathSecret: getEnv("ADMIN_PATH_SECRET", "admin-secret"),

		SingleTeamPerOwner: getEnvBool("SINGLE_TEAM_PER_OWNER", true),
	}
}

// IsAdmin reports whether a username is on the static allow-list.
func (c *Config) IsAdmin(username string) bool {
	for _, name := range c.AdminUsers {
		if name == username {
			return true
		}
	}
	return false
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			return n
		}
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	if val := os.Getenv(key); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			return b
		}
	}
	return defaultVal
}

func getEnvMinutes(key string, defaultVal int) time.Duration {
	return time.Duration(getEnvInt(key, defaultVal)) * time.Minute
}

func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
