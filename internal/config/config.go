package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the reference endpoint configuration loaded from the
// environment.
type Config struct {
	AppName           string
	LogLevel          string
	LogFormat         string
	HTTPPort          string
	SubscriptionPath  string
	StaticDir         string
	// AllowedOrigins lists the cross-origin pages allowed to sync. Empty
	// means same-origin only.
	AllowedOrigins    []string
	DatabaseURL       string
	DBMaxOpenConns    int
	SubscriptionTable string
	RedisURL          string
	GroupIndexTTL     time.Duration
	RabbitURL         string
	EventExchange     string
	RequestTimeout    time.Duration
}

// Load loads configuration and performs basic validation.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		AppName:           getEnv("APP_NAME", "push_subscriber"),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		LogFormat:         getEnv("LOG_FORMAT", "text"),
		HTTPPort:          getEnv("HTTP_PORT", "8083"),
		SubscriptionPath:  getEnv("SUBSCRIPTION_PATH", "/push/subscriptions"),
		StaticDir:         getEnv("STATIC_DIR", ""),
		AllowedOrigins:    getEnvAsList("ALLOWED_ORIGINS", nil),
		DatabaseURL:       getEnv("DATABASE_URL", ""),
		DBMaxOpenConns:    getEnvAsInt("DB_MAX_OPEN_CONNS", 10),
		SubscriptionTable: getEnv("SUBSCRIPTION_TABLE", "push_subscriptions"),
		RedisURL:          getEnv("REDIS_URL", ""),
		GroupIndexTTL:     getEnvAsDuration("GROUP_INDEX_TTL", 0),
		RabbitURL:         getEnv("RABBITMQ_URL", ""),
		EventExchange:     getEnv("EVENT_EXCHANGE", "push.subscriptions"),
		RequestTimeout:    getEnvAsDuration("REQUEST_TIMEOUT", 15*time.Second),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	var missing []string
	if c.DatabaseURL == "" {
		missing = append(missing, "DATABASE_URL")
	}
	if !strings.HasPrefix(c.SubscriptionPath, "/") {
		return fmt.Errorf("SUBSCRIPTION_PATH must start with /, got %q", c.SubscriptionPath)
	}
	// Sync requests carry cookies, so cross-origin callers must be named exactly.
	for _, origin := range c.AllowedOrigins {
		if strings.Contains(origin, "*") {
			return fmt.Errorf("ALLOWED_ORIGINS must list exact origins, got %q", origin)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required environment variables: %v", missing)
	}
	return nil
}

func getEnv(key, def string) string {
	value, ok := os.LookupEnv(key)
	if !ok {
		return def
	}
	return value
}

func getEnvAsInt(key string, def int) int {
	if value, ok := os.LookupEnv(key); ok {
		i, err := strconv.Atoi(value)
		if err != nil {
			log.Printf("invalid int for %s, using default %d: %v", key, def, err)
			return def
		}
		return i
	}
	return def
}

func getEnvAsDuration(key string, def time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok {
		d, err := time.ParseDuration(value)
		if err != nil {
			log.Printf("invalid duration for %s, using default %s: %v", key, def, err)
			return def
		}
		return d
	}
	return def
}

func getEnvAsList(key string, def []string) []string {
	value, ok := os.LookupEnv(key)
	if !ok {
		return def
	}
	return splitList(value)
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
