package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("JWT_TTL", "")
	t.Setenv("STRICT_ADMIN_MUTATIONS", "")
	t.Setenv("DB_MAX_OPEN_CONNS", "")
	t.Setenv("GIN_MODE", "")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("ADMIN_PASSWORD", "")
	t.Setenv("AUTH_RATE_LIMIT_PER_MINUTE", "")
	t.Setenv("AUTH_RATE_LIMIT_BURST", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 24*time.Hour, cfg.JWTTTL)
	assert.False(t, cfg.StrictAdminMutations)
	assert.Equal(t, 10, cfg.DBMaxOpenConns)
	assert.False(t, cfg.IsRelease())
	assert.Equal(t, DefaultJWTSecret, cfg.JWTSecret)
	assert.Equal(t, 30, cfg.AuthRateLimitPerMinute)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("GIN_MODE", "release")
	t.Setenv("JWT_TTL", "2h")
	t.Setenv("STRICT_ADMIN_MUTATIONS", "true")
	t.Setenv("AUTH_RATE_LIMIT_PER_MINUTE", "5")
	t.Setenv("JWT_SECRET", "a-long-production-secret")
	t.Setenv("ADMIN_PASSWORD", "a-strong-admin-password")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.True(t, cfg.IsRelease())
	assert.Equal(t, 2*time.Hour, cfg.JWTTTL)
	assert.True(t, cfg.StrictAdminMutations)
	assert.Equal(t, 5, cfg.AuthRateLimitPerMinute)
}

func TestLoad_ReleaseRejectsDevelopmentSecrets(t *testing.T) {
	tests := []struct {
		name          string
		secret        string
		adminPassword string
	}{
		{"default secret", "", "a-strong-admin-password"},
		{"default admin password", "a-long-production-secret", ""},
		{"both defaults", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("GIN_MODE", "release")
			t.Setenv("JWT_SECRET", tt.secret)
			t.Setenv("ADMIN_PASSWORD", tt.adminPassword)

			cfg, err := Load()
			assert.Error(t, err)
			assert.Nil(t, cfg)
		})
	}
}

func TestLoad_DebugAllowsDevelopmentSecrets(t *testing.T) {
	t.Setenv("GIN_MODE", "debug")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("ADMIN_PASSWORD", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, DefaultAdminPassword, cfg.AdminPassword)
}

func TestLoad_RejectsNonPositiveRateLimit(t *testing.T) {
	for _, key := range []string{"AUTH_RATE_LIMIT_PER_MINUTE", "AUTH_RATE_LIMIT_BURST"} {
		for _, value := range []string{"0", "-3"} {
			t.Run(key+"="+value, func(t *testing.T) {
				t.Setenv("GIN_MODE", "debug")
				t.Setenv(key, value)

				_, err := Load()
				assert.Error(t, err)
			})
		}
	}
}
