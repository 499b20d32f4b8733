package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds application configuration
type Config struct {
	Port     string
	Env      string
	LogLevel string

	// BackendBaseURL is the transit data provider the assistant talks to.
	// Defaults to the local API server so a single process can serve both.
	BackendBaseURL string

	CacheTTL       time.Duration
	FetchTimeout   time.Duration
	ProbeTimeout   time.Duration
	BookingTimeout time.Duration
	SeatPrice      int

	RedisAddr     string
	RedisPassword string
	RedisTLS      bool

	DatabaseURL string

	AdminUsername  string
	AdminPassword  string
	AdminJWTSecret string
}

// Load reads configuration from environment variables
func Load() *Config {
	port := getEnv("PORT", "8080")
	return &Config{
		Port:           port,
		Env:            getEnv("ENV", "development"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		BackendBaseURL: getEnv("BACKEND_BASE_URL", "http://localhost:"+port),
		CacheTTL:       getEnvAsDuration("CACHE_TTL", 60*time.Second),
		FetchTimeout:   getEnvAsDuration("FETCH_TIMEOUT", 5*time.Second),
		ProbeTimeout:   getEnvAsDuration("PROBE_TIMEOUT", 3*time.Second),
		BookingTimeout: getEnvAsDuration("BOOKING_TIMEOUT", 10*time.Second),
		SeatPrice:      getEnvAsInt("SEAT_PRICE", 50),
		RedisAddr:      getEnv("REDIS_ADDR", ""),
		RedisPassword:  getEnv("REDIS_PASSWORD", ""),
		RedisTLS:       getEnvAsBool("REDIS_TLS", false),
		DatabaseURL:    getEnv("DATABASE_URL", ""),
		AdminUsername:  getEnv("ADMIN_USERNAME", "admin"),
		AdminPassword:  getEnv("ADMIN_PASSWORD", ""),
		AdminJWTSecret: getEnv("ADMIN_JWT_SECRET", ""),
	}
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer or returns a default value
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

// getEnvAsBool retrieves an environment variable as a boolean or returns a default value
func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}
