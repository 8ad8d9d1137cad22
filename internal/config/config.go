package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Load reads the .env file specified by WOLFMIND_ENV (or .env by default),
// then loads the corresponding .secret file if it exists.
// All config is flat env vars read via os.Getenv after loading.
func Load() error {
	envFile := os.Getenv("WOLFMIND_ENV")
	if envFile == "" {
		envFile = ".env"
	}

	// Missing files are fine; the environment may already be populated.
	_ = godotenv.Load(envFile)
	_ = godotenv.Load(envFile + ".secret")

	return nil
}

func ServerPort() int {
	port, err := strconv.Atoi(os.Getenv("SERVER_PORT"))
	if err != nil {
		return 8080
	}
	return port
}

func ServerAddr() string {
	return fmt.Sprintf(":%d", ServerPort())
}

// DatabaseURL is optional. Without it diagnostics are only logged.
func DatabaseURL() string {
	return os.Getenv("DATABASE_URL")
}

// LogLevel returns the log level (debug, info, warn, error).
// Defaults to "info" if not set.
func LogLevel() string {
	level := os.Getenv("LOG_LEVEL")
	if level == "" {
		return "info"
	}
	return level
}

// RateLimitRPS returns requests per second limit.
// Defaults to 100 if not set.
func RateLimitRPS() float64 {
	rps, err := strconv.ParseFloat(os.Getenv("RATE_LIMIT_RPS"), 64)
	if err != nil || rps <= 0 {
		return 100
	}
	return rps
}

// RateLimitBurst returns the burst size for rate limiting.
// Defaults to 20 if not set.
func RateLimitBurst() int {
	burst, err := strconv.Atoi(os.Getenv("RATE_LIMIT_BURST"))
	if err != nil || burst <= 0 {
		return 20
	}
	return burst
}

// SessionIdleTimeout is how long an unused session is kept. Defaults to 30m.
func SessionIdleTimeout() time.Duration {
	return durationOr("SESSION_IDLE_TIMEOUT", 30*time.Minute)
}

// SessionReapInterval is how often idle sessions are collected. Defaults to 1m.
func SessionReapInterval() time.Duration {
	return durationOr("SESSION_REAP_INTERVAL", time.Minute)
}

// RandomSeed returns the base seed for tie-break sources.
// Zero (the default) means a fresh seed per process.
func RandomSeed() int64 {
	seed, err := strconv.ParseInt(os.Getenv("RANDOM_SEED"), 10, 64)
	if err != nil {
		return 0
	}
	return seed
}

// DiagnosticsEnabled turns on persistence of belief snapshots and decisions.
// Requires DATABASE_URL.
func DiagnosticsEnabled() bool {
	enabled, err := strconv.ParseBool(os.Getenv("DIAGNOSTICS_ENABLED"))
	return err == nil && enabled
}

func DiagnosticsBuffer() int {
	n, err := strconv.Atoi(os.Getenv("DIAGNOSTICS_BUFFER"))
	if err != nil || n <= 0 {
		return 256
	}
	return n
}

func durationOr(key string, def time.Duration) time.Duration {
	d, err := time.ParseDuration(os.Getenv(key))
	if err != nil || d <= 0 {
		return def
	}
	return d
}
