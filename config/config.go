package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ListenAddr      string
	BackendBaseURL  string
	BackendTimeout  time.Duration
	CookieDomain    string
	CookieSecure    bool
	SessionTTL      time.Duration
	PollInterval    time.Duration
	TrackInterval   time.Duration
	LowStockMinimum float64
}

func LoadConfig() *Config {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	return &Config{
		ListenAddr:      getEnv("LISTEN_ADDR", ":8080"),
		BackendBaseURL:  getEnv("BACKEND_BASE_URL", "http://localhost:8000"),
		BackendTimeout:  getDuration("BACKEND_TIMEOUT", 10*time.Second),
		CookieDomain:    getEnv("COOKIE_DOMAIN", ""),
		CookieSecure:    getBool("COOKIE_SECURE", false),
		SessionTTL:      getDuration("SESSION_TTL", 12*time.Hour),
		PollInterval:    getDuration("POLL_INTERVAL", 15*time.Second),
		TrackInterval:   getDuration("TRACK_INTERVAL", 30*time.Second),
		LowStockMinimum: getFloat("LOW_STOCK_MINIMUM", 20),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func getBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}
