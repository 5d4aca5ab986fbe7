package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Environment variable names. A .env file in the working directory is
// loaded first; real environment variables win over it.
const (
	envBaseURL    = "CAMPUS_BASE_URL"
	envSessionDSN = "CAMPUS_SESSION_DSN"
	envGeminiKey  = "GEMINI_API_KEY"
)

func parseEnv(cfg *Config) {
	// Missing .env is the normal case, not an error.
	_ = godotenv.Load()

	if v := os.Getenv(envBaseURL); v != "" {
		cfg.BaseURL = v
	}
	if v := os.Getenv(envSessionDSN); v != "" {
		cfg.SessionDSN = v
	}
	if v := os.Getenv(envGeminiKey); v != "" {
		cfg.GeminiAPIKey = v
	}
}
