package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Defaults(t *testing.T) {
	cfg, err := Parse()
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.App.LogLevel)
	assert.False(t, cfg.App.Debug)
	assert.Equal(t, ":8080", cfg.HTTP.Addr)
	assert.Equal(t, "./web/templates", cfg.HTTP.TemplatesDir)
	assert.Equal(t, "./web/static", cfg.HTTP.StaticDir)
	assert.Equal(t, "notesapp", cfg.Database.Name)
	assert.Equal(t, int32(5), cfg.Database.PoolMax)
}

func TestParse_EnvOverrides(t *testing.T) {
	t.Setenv("APP_DEBUG", "true")
	t.Setenv("APP_LOG_LEVEL", "debug")
	t.Setenv("HTTP_ADDR", ":9999")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_POOL_MAX", "10")

	cfg, err := Parse()
	require.NoError(t, err)

	assert.True(t, cfg.App.Debug)
	assert.Equal(t, "debug", cfg.App.LogLevel)
	assert.Equal(t, ":9999", cfg.HTTP.Addr)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, int32(10), cfg.Database.PoolMax)
}

func TestDatabaseConfig_Addr(t *testing.T) {
	d := DatabaseConfig{Host: "localhost", Port: "5432"}
	assert.Equal(t, "localhost:5432", d.Addr())
}
