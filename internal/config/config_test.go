package config

import (
	"bytes"
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFromEnvDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("LIFEOS_DB_PATH", "")
	t.Setenv("ALLOWED_ORIGINS", "")
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("LIFEOS_ENCRYPTION_KEY", "")

	cfg, err := NewFromEnv()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "lifeos.db", cfg.DBPath)
	assert.Equal(t, []string{"*"}, cfg.AllowedOrigins)
	assert.Empty(t, cfg.GeminiAPIKey)
	assert.Nil(t, cfg.EncryptionKey)
}

func TestNewFromEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("LIFEOS_DB_PATH", "/data/lifeos.db")
	t.Setenv("ALLOWED_ORIGINS", "http://localhost:5173, https://lifeos.local")
	t.Setenv("GEMINI_API_KEY", "test-key")
	t.Setenv("GEMINI_MODEL", "gemini-test")

	cfg, err := NewFromEnv()
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "/data/lifeos.db", cfg.DBPath)
	assert.Equal(t, []string{"http://localhost:5173", "https://lifeos.local"}, cfg.AllowedOrigins)
	assert.Equal(t, "test-key", cfg.GeminiAPIKey)
	assert.Equal(t, "gemini-test", cfg.GeminiModel)
}

func TestNewFromEnvEncryptionKey(t *testing.T) {
	key := bytes.Repeat([]byte{5}, 32)
	t.Setenv("LIFEOS_ENCRYPTION_KEY", base64.StdEncoding.EncodeToString(key))

	cfg, err := NewFromEnv()
	require.NoError(t, err)
	assert.Equal(t, key, cfg.EncryptionKey)

	t.Setenv("LIFEOS_ENCRYPTION_KEY", "not base64!!")
	_, err = NewFromEnv()
	assert.Error(t, err)

	t.Setenv("LIFEOS_ENCRYPTION_KEY", base64.StdEncoding.EncodeToString([]byte("short")))
	_, err = NewFromEnv()
	assert.Error(t, err)
}
