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
	assert.Equal(t, "data/school.db", cfg.Database.Path)
	assert.Equal(t, 30, cfg.Auth.TokenTTLMinutes)
	assert.Equal(t, "local", cfg.Storage.Backend)
	assert.Equal(t, "data/uploads", cfg.Upload.Dir)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("SCHOOL_SERVER_ADDR", "127.0.0.1:9999")
	t.Setenv("SCHOOL_AUTH_JWTSECRET", "env-secret")
	t.Setenv("SCHOOL_ADMIN_EMAIL", "admin@school.org")
	t.Setenv("SCHOOL_STORAGE_BACKEND", "s3")
	t.Setenv("SCHOOL_STORAGE_BUCKET", "school-media")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9999", cfg.Server.Addr)
	assert.Equal(t, "env-secret", cfg.Auth.JWTSecret)
	assert.Equal(t, "admin@school.org", cfg.Admin.Email)
	assert.Equal(t, "s3", cfg.Storage.Backend)
	assert.Equal(t, "school-media", cfg.Storage.Bucket)
}
