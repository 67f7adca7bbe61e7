package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "3000", cfg.AppPort)
	assert.Equal(t, "us-east-1", cfg.AWSRegion)
	assert.Equal(t, "users", cfg.DynamoTables.Users)
	assert.Equal(t, "user_credentials", cfg.DynamoTables.Credentials)
	assert.Equal(t, "codearena", cfg.JWTIssuer)
	assert.Equal(t, "codearena-clients", cfg.JWTAudience)
	assert.Equal(t, 180*time.Minute, cfg.AccessTTL)
	assert.Equal(t, 7*24*time.Hour, cfg.RefreshTTL)
	assert.Equal(t, []string{"*"}, cfg.AllowedOrigins)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("APP_PORT", "8080")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("ACCESS_TOKEN_TTL_MINUTES", "30")
	t.Setenv("REFRESH_TOKEN_TTL_DAYS", "14")
	t.Setenv("ALLOWED_ORIGINS", "https://codearena.dev,https://admin.codearena.dev")

	cfg := Load()

	assert.Equal(t, "8080", cfg.AppPort)
	assert.Equal(t, "s3cret", cfg.JWTSecret)
	assert.Equal(t, 30*time.Minute, cfg.AccessTTL)
	assert.Equal(t, 14*24*time.Hour, cfg.RefreshTTL)
	assert.Equal(t, []string{"https://codearena.dev", "https://admin.codearena.dev"}, cfg.AllowedOrigins)
}

func TestLoad_BadIntFallsBack(t *testing.T) {
	t.Setenv("ACCESS_TOKEN_TTL_MINUTES", "not-a-number")
	cfg := Load()
	assert.Equal(t, 180*time.Minute, cfg.AccessTTL)
}
