package config

import (
	"encoding/base64"
	"fmt"
	"os"
	"strings"
)

// Config holds the runtime configuration for the service.
type Config struct {
	Port           string
	DBPath         string
	AllowedOrigins []string

	// Gemini collaborator; the API runs without it (reflection falls back,
	// transcription is unavailable).
	GeminiAPIKey string
	GeminiModel  string

	// Optional 32-byte key (base64) enabling journal encryption at rest.
	EncryptionKey []byte
}

// NewFromEnv creates a new Config object from environment variables.
func NewFromEnv() (*Config, error) {
	cfg := &Config{
		Port:         getenv("PORT", "8080"),
		DBPath:       getenv("LIFEOS_DB_PATH", "lifeos.db"),
		GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),
		GeminiModel:  os.Getenv("GEMINI_MODEL"),
	}

	origins := getenv("ALLOWED_ORIGINS", "*")
	for _, o := range strings.Split(origins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			cfg.AllowedOrigins = append(cfg.AllowedOrigins, o)
		}
	}

	if raw := os.Getenv("LIFEOS_ENCRYPTION_KEY"); raw != "" {
		key, err := base64.StdEncoding.DecodeString(raw)
		if err != nil {
			return nil, fmt.Errorf("LIFEOS_ENCRYPTION_KEY is not valid base64: %w", err)
		}
		if len(key) != 32 {
			return nil, fmt.Errorf("LIFEOS_ENCRYPTION_KEY must decode to 32 bytes, got %d", len(key))
		}
		cfg.EncryptionKey = key
	}

	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
