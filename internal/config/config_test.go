package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfig(t *testing.T) {
	t.Run("Success loading from env", func(t *testing.T) {
		t.Setenv("BACKEND_URL", "http://localhost:5000")
		t.Setenv("APP_PORT", "8080")
		t.Setenv("APP_ENV", "test")
		t.Setenv("STATE_DIR", "/tmp/state")
		t.Setenv("REDIS_ADDR", "localhost:6379")
		t.Setenv("CURRENCY", "USD")
		t.Setenv("CURRENCY_LOCALE", "en-US")

		cfg := LoadConfig()

		assert.NotNil(t, cfg)
		assert.Equal(t, "http://localhost:5000", cfg.BackendURL)
		assert.Equal(t, "8080", cfg.AppPort)
		assert.Equal(t, "test", cfg.AppEnv)
		assert.Equal(t, "/tmp/state", cfg.StateDir)
		assert.Equal(t, "localhost:6379", cfg.RedisAddr)
		assert.Equal(t, "USD", cfg.Currency)
		assert.Equal(t, "en-US", cfg.CurrencyLocale)
	})

	t.Run("Defaults applied", func(t *testing.T) {
		t.Setenv("BACKEND_URL", "http://localhost:5000")
		t.Setenv("APP_PORT", "")
		t.Setenv("CURRENCY", "")
		t.Setenv("CURRENCY_LOCALE", "")

		cfg := LoadConfig()

		assert.Equal(t, "3000", cfg.AppPort)
		assert.Equal(t, "KES", cfg.Currency)
		assert.Equal(t, "en-KE", cfg.CurrencyLocale)
	})
}
