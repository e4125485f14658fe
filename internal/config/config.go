// Package config loads runtime configuration from the environment, with
// optional .env file support for local development.
package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds the runtime settings shared by the CLI and the API server.
type Config struct {
	// Port is the HTTP listen port for the API server.
	Port string

	// LogLevel is the zerolog level name (debug, info, warn, error).
	LogLevel string

	// GeminiModel names the model used for education fallback answers.
	GeminiModel string

	// GeminiEnabled turns the LLM fallback on. Off by default so the
	// engine stays fully offline unless explicitly opted in.
	GeminiEnabled bool

	// DefaultLanguage is the education language when a request omits one.
	DefaultLanguage string
}

// Load reads configuration from a .env file (when present) and the process
// environment. Environment variables win over .env entries loaded earlier.
func Load() Config {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	return Config{
		Port:            getEnv("PORT", "8080"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		GeminiModel:     getEnv("GEMINI_MODEL", "gemini-2.0-flash"),
		GeminiEnabled:   getBoolEnv("GEMINI_ENABLED", false),
		DefaultLanguage: getEnv("DEFAULT_LANGUAGE", "en"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getBoolEnv(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}
