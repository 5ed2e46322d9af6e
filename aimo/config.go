package aimo

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

const (
	// DefaultBaseURL is the AiMo Network devnet OpenAI-compatible endpoint.
	DefaultBaseURL = "https://devnet.aimo.network/api/v1"
	// DefaultModel is used when a call does not name a model.
	DefaultModel = "openai/gpt-4o"
	// DefaultMaxTokens bounds every completion the examples request.
	DefaultMaxTokens = 256
)

// Config selects the endpoint, credential and request limits for a Client.
type Config struct {
	APIKey    string
	BaseURL   string
	Model     string
	MaxTokens int
	LogLevel  string
}

// LoadConfig reads the example configuration from the environment. A .env
// file in the working directory is loaded first when present.
//
// AIMO_API_KEY is not validated; an empty key still yields a usable Config.
func LoadConfig() Config {
	// Missing .env is fine.
	_ = godotenv.Load()

	return Config{
		APIKey:    os.Getenv("AIMO_API_KEY"),
		BaseURL:   getEnv("AIMO_BASE_URL", DefaultBaseURL),
		Model:     getEnv("AIMO_MODEL", DefaultModel),
		MaxTokens: getEnvInt("AIMO_MAX_TOKENS", DefaultMaxTokens),
		LogLevel:  getEnv("LOG_LEVEL", "info"),
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}
