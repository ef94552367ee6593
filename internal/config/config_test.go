package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("SMTP_HOST", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, 24*7, cfg.JWT.TTLHours)
	assert.False(t, cfg.Mail.Enabled())
	assert.False(t, cfg.Scheduler.OverdueSweepEnabled)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("DB_PORT", "6543")
	t.Setenv("OVERDUE_SWEEP_ENABLED", "true")
	t.Setenv("CORS_ALLOWED_ORIGINS", " https://a.example , ,https://b.example")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, 6543, cfg.Database.Port)
	assert.True(t, cfg.Scheduler.OverdueSweepEnabled)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORS.Origins())
	assert.Contains(t, cfg.Database.GetDSN(), "port=6543")
}

func TestLoad_RejectsUnknownDriver(t *testing.T) {
	t.Setenv("DB_DRIVER", "mysql")

	_, err := Load()
	assert.Error(t, err)
}
