package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFromEnvDefaults(t *testing.T) {
	for _, key := range []string{"HTTP_ADDR", "CORS_ORIGINS", "JWT_ALGORITHM", "JWT_TTL", "AWS_REGION", "REQUEST_TIMEOUT", "UPLOAD_MAX_MEMORY_MB"} {
		t.Setenv(key, "")
	}
	// t.Setenv registers cleanup; unset to exercise the fallbacks.
	unset(t, "HTTP_ADDR", "CORS_ORIGINS", "JWT_ALGORITHM", "JWT_TTL", "AWS_REGION", "REQUEST_TIMEOUT", "UPLOAD_MAX_MEMORY_MB")

	cfg := FromEnv()
	assert.Equal(t, ":8000", cfg.HTTPAddr)
	assert.Equal(t, []string{"http://localhost:5173", "http://127.0.0.1:5173"}, cfg.CORSOrigins)
	assert.Equal(t, "HS256", cfg.JWTAlgorithm)
	assert.Equal(t, 24*time.Hour, cfg.JWTTTL)
	assert.Equal(t, "ap-south-1", cfg.S3Region)
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout)
	assert.Equal(t, int64(32<<20), cfg.UploadMaxMemory)
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("CORS_ORIGINS", "https://app.example.com, ,https://admin.example.com")
	t.Setenv("JWT_TTL", "90m")
	t.Setenv("S3_USE_SSL", "false")
	t.Setenv("DB_PORT", "3307")
	t.Setenv("REQUEST_TIMEOUT", "not-a-duration")

	cfg := FromEnv()
	assert.Equal(t, []string{"https://app.example.com", "https://admin.example.com"}, cfg.CORSOrigins)
	assert.Equal(t, 90*time.Minute, cfg.JWTTTL)
	assert.False(t, cfg.S3UseSSL)
	assert.Equal(t, "3307", cfg.DBPort)
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout)
}

func unset(t *testing.T, keys ...string) {
	t.Helper()
	for _, key := range keys {
		if err := os.Unsetenv(key); err != nil {
			t.Fatalf("unset %s: %v", key, err)
		}
	}
}
