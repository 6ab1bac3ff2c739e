package configs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("ENVIRONMENT", "")
	t.Setenv("PORT", "")
	t.Setenv("ALLOWED_ORIGINS", "")
	t.Setenv("BACKEND_ORIGIN", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, 3000, cfg.Port)
	assert.Empty(t, cfg.AllowedOrigins)
	assert.Equal(t, "http://localhost:8080", cfg.BackendOrigin)
}

func TestLoadConfigParsesOrigins(t *testing.T) {
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("PORT", "4000")
	t.Setenv("ALLOWED_ORIGINS", "https://app.pandacare.id, https://staging.pandacare.id")
	t.Setenv("BACKEND_ORIGIN", "https://api.pandacare.id/")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, 4000, cfg.Port)
	assert.Equal(t, []string{"https://app.pandacare.id", "https://staging.pandacare.id"}, cfg.AllowedOrigins)
	assert.Equal(t, "https://api.pandacare.id", cfg.BackendOrigin, "trailing slash is trimmed")
}

func TestLoadConfigInvalidPort(t *testing.T) {
	t.Setenv("PORT", "not-a-port")
	_, err := LoadConfig()
	assert.Error(t, err)

	t.Setenv("PORT", "80")
	_, err = LoadConfig()
	assert.Error(t, err, "ports below 1024 are refused")
}

func TestLoadConfigRequiresBackendOutsideDevelopment(t *testing.T) {
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("PORT", "")
	t.Setenv("BACKEND_ORIGIN", "")

	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestMessagingEndpoint(t *testing.T) {
	cases := []struct {
		origin string
		want   string
	}{
		{"http://localhost:8080", "ws://localhost:8080/ws"},
		{"https://api.pandacare.id", "wss://api.pandacare.id/ws"},
	}

	for _, tc := range cases {
		cfg := &AppConfig{BackendOrigin: tc.origin}
		assert.Equal(t, tc.want, cfg.MessagingEndpoint())
	}
}
