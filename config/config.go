package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	SupabaseURL           string
	SupabaseAnonKey       string
	SupabaseServiceKey    string
	JWTSecret             string
	AdminRegistrationCode string
	Port                  string
	Environment           string
	AllowedOrigins        []string
	RedisAddr             string
	RedisPassword         string
	RedisDB               int
	BookingDedupWindow    time.Duration
}

func NewConfig() *Config {
	allowedOriginsStr := os.Getenv("ALLOWED_ORIGINS")
	allowedOrigins := []string{"http://localhost:3000"}
	if allowedOriginsStr != "" {
		allowedOrigins = strings.Split(allowedOriginsStr, ",")
	}

	cfg := &Config{
		SupabaseURL:           os.Getenv("SUPABASE_URL"),
		SupabaseAnonKey:       os.Getenv("SUPABASE_ANON_KEY"),
		SupabaseServiceKey:    os.Getenv("SUPABASE_SERVICE_ROLE_KEY"),
		JWTSecret:             os.Getenv("JWT_SECRET"),
		AdminRegistrationCode: os.Getenv("ADMIN_REGISTRATION_CODE"),
		Port:                  getEnvOrDefault("PORT", "8080"),
		Environment:           getEnvOrDefault("ENVIRONMENT", "development"),
		AllowedOrigins:        allowedOrigins,
		RedisAddr:             os.Getenv("REDIS_ADDR"),
		RedisPassword:         os.Getenv("REDIS_PASSWORD"),
		RedisDB:               getEnvInt("REDIS_DB", 0),
		BookingDedupWindow:    getEnvDuration("BOOKING_DEDUP_WINDOW", 10*time.Minute),
	}

	// Missing backend endpoint or key is fatal; nothing works without it.
	if cfg.SupabaseURL == "" {
		log.Fatal("SUPABASE_URL is required")
	}
	if cfg.SupabaseAnonKey == "" && cfg.SupabaseServiceKey == "" {
		log.Fatal("SUPABASE_ANON_KEY or SUPABASE_SERVICE_ROLE_KEY is required")
	}
	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET is required")
	}

	return cfg
}

// APIKey returns the key used for backend calls, preferring the
// service-role key so admin mutations are not blocked by row-level policies.
func (c *Config) APIKey() string {
	if c.SupabaseServiceKey != "" {
		return c.SupabaseServiceKey
	}
	return c.SupabaseAnonKey
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
