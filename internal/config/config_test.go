package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:8080", cfg.Server.Addr)
	assert.Equal(t, "data/bugsight.db", cfg.Database.Path)
	assert.Equal(t, 60, cfg.Auth.TokenTTLMinutes)
	assert.Equal(t, "sha256", cfg.Auth.HashScheme)
	assert.Empty(t, cfg.Auth.JWTSecret)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("BUGSIGHT_SERVER_ADDR", "127.0.0.1:9999")
	t.Setenv("BUGSIGHT_AUTH_JWTSECRET", "env-secret")
	t.Setenv("BUGSIGHT_AUTH_TOKENTTLMINUTES", "15")
	t.Setenv("BUGSIGHT_AUTH_HASHSCHEME", "argon2id")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9999", cfg.Server.Addr)
	assert.Equal(t, "env-secret", cfg.Auth.JWTSecret)
	assert.Equal(t, 15, cfg.Auth.TokenTTLMinutes)
	assert.Equal(t, "argon2id", cfg.Auth.HashScheme)
}
