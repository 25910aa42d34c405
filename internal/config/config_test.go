package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "wallet", cfg.Database.DBName)
	assert.Equal(t, 15*time.Minute, cfg.JWT.AccessExpiry)
	assert.Equal(t, 14*24*time.Hour, cfg.Transfer.ExpiryTTL)
	assert.Equal(t, time.Hour, cfg.Transfer.SweepInterval)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("DB_PORT", "5433")
	t.Setenv("TRANSFER_EXPIRY_TTL", "0s")
	t.Setenv("JWT_ACCESS_EXPIRY", "30m")

	cfg := Load()

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, 5433, cfg.Database.Port)
	assert.Equal(t, time.Duration(0), cfg.Transfer.ExpiryTTL)
	assert.Equal(t, 30*time.Minute, cfg.JWT.AccessExpiry)
}

func TestDatabaseURL(t *testing.T) {
	cfg := DatabaseConfig{
		Host:     "db",
		Port:     5432,
		User:     "u",
		Password: "p",
		DBName:   "wallet",
		SSLMode:  "disable",
	}
	assert.Equal(t, "postgres://u:p@db:5432/wallet?sslmode=disable", cfg.URL())
}

func TestInvalidEnvValuesFallBack(t *testing.T) {
	t.Setenv("DB_PORT", "not-a-number")
	t.Setenv("TRANSFER_EXPIRY_TTL", "not-a-duration")

	cfg := Load()

	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, 14*24*time.Hour, cfg.Transfer.ExpiryTTL)
}
