package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_DefaultsAndOverrides(t *testing.T) {
	t.Setenv("APP_PORT", "9090")
	t.Setenv("JWT_ACCESS_EXPIRY_MINUTES", "15")
	t.Setenv("RECEIPT_DEFAULT_WIDTH", "48")

	cfg := Load()

	assert.Equal(t, "9090", cfg.App.Port)
	assert.Equal(t, 15*time.Minute, cfg.JWT.AccessExpiry)
	assert.Equal(t, 168*time.Hour, cfg.JWT.RefreshExpiry)
	assert.Equal(t, 48, cfg.Receipt.DefaultWidth)
	assert.Equal(t, 20, cfg.Receipt.MinWidth)
	assert.Equal(t, 120, cfg.Receipt.MaxWidth)
	assert.Equal(t, "none", cfg.Printer.Type)
	assert.Empty(t, cfg.Cache.RedisAddr)
}

func TestDatabaseConfig_DSN(t *testing.T) {
	c := DatabaseConfig{
		Host:     "db",
		Port:     "5432",
		Name:     "receipts",
		User:     "app",
		Password: "pw",
		SSLMode:  "disable",
		Timezone: "UTC",
	}
	assert.Equal(t, "host=db user=app password=pw dbname=receipts port=5432 sslmode=disable TimeZone=UTC", c.DSN())
}
