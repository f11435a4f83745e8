package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var configKeys = []string{
	"PORT", "DATABASE_URL", "SETTINGS_PATH", "REDIS_ADDRESS", "LOG_LEVEL",
	"TIMEZONE", "DEFAULT_STOCK", "LOW_STOCK_THRESHOLD", "PHONE_REGION",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range configKeys {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), ".env"))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Empty(t, cfg.DatabaseURL)
	assert.Equal(t, "lickees-settings.yaml", cfg.SettingsPath)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "Asia/Kolkata", cfg.Location.String())
	assert.Equal(t, 50, cfg.DefaultStock)
	assert.Equal(t, 10, cfg.LowStockThreshold)
	assert.Equal(t, "IN", cfg.PhoneRegion)
}

func TestLoadEnvFileAndOverrides(t *testing.T) {
	clearEnv(t)
	envPath := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(envPath, []byte(
		"PORT=9090\nDATABASE_URL='postgres://till@localhost/lickees'\nDEFAULT_STOCK=0\nTIMEZONE=UTC\n",
	), 0o600))
	t.Setenv("PORT", "7070")

	cfg, err := LoadFrom(envPath)
	require.NoError(t, err)
	assert.Equal(t, 7070, cfg.Port)
	assert.Equal(t, "postgres://till@localhost/lickees", cfg.DatabaseURL)
	assert.Equal(t, 0, cfg.DefaultStock)
	assert.Equal(t, "UTC", cfg.Location.String())
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		key   string
		value string
	}{
		{key: "PORT", value: "zero"},
		{key: "PORT", value: "-1"},
		{key: "DEFAULT_STOCK", value: "-5"},
		{key: "LOW_STOCK_THRESHOLD", value: "0"},
		{key: "TIMEZONE", value: "Mars/Olympus"},
	}
	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.value)
			_, err := LoadFrom(filepath.Join(t.TempDir(), ".env"))
			assert.Error(t, err)
		})
	}
}
