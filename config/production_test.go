package config

import (
	"testing"

	"github.com/snipr-io/snipr/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Setenv("DB_PASSWORD", "test-password")
	t.Setenv("JWT_SECRET_KEY", "0123456789abcdef0123456789abcdef")
}

func TestLoadProductionConfigDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := LoadProductionConfig()
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, utils.TokenTTL, cfg.JWT.TokenTTL)
	assert.Equal(t, utils.CORSMaxAge, cfg.Security.CORSMaxAge)
	assert.Equal(t, "http://localhost:8080", cfg.App.BaseURL)
	assert.Equal(t, 6, cfg.App.ShortCodeLength)
	assert.Equal(t, 10, cfg.App.MaxCodeAttempts)
	assert.False(t, cfg.IsProduction())
}

func TestLoadProductionConfigOverrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("JWT_TOKEN_TTL", "2h")
	t.Setenv("CORS_MAX_AGE", "600")

	cfg, err := LoadProductionConfig()
	require.NoError(t, err)

	assert.Equal(t, "2h0m0s", cfg.JWT.TokenTTL.String())
	assert.Equal(t, 600, cfg.Security.CORSMaxAge)
}

func TestValidateProductionConfigRejectsShortSecret(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("JWT_SECRET_KEY", "too-short")

	_, err := LoadProductionConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET_KEY")
}
