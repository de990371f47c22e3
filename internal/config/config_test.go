package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	// empty variables fall back to defaults
	t.Setenv("SERVER_ADDRESS", "")
	t.Setenv("COUNTER_BACKEND", "")
	t.Setenv("SQLITE_PATH", "")

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, ":8000", cfg.ServerAddress)
	assert.Equal(t, "sqlite", cfg.CounterBackend)
	assert.Equal(t, "./data/visits.db", cfg.SQLitePath)
}

func TestLoadConfig_FileAndEnv(t *testing.T) {
	dir := t.TempDir()
	err := os.WriteFile(filepath.Join(dir, "app.env"), []byte("SERVER_ADDRESS=:9090\nCOUNTER_BACKEND=memory\n"), 0644)
	require.NoError(t, err)

	t.Setenv("SERVER_ADDRESS", ":7070")

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, ":7070", cfg.ServerAddress)
	assert.Equal(t, "memory", cfg.CounterBackend)
}

func TestLoadConfig_InvalidBackend(t *testing.T) {
	t.Setenv("COUNTER_BACKEND", "redis")

	_, err := LoadConfig(t.TempDir())
	assert.Error(t, err)
}

func TestLoadConfig_PostgresRequiresSource(t *testing.T) {
	t.Setenv("COUNTER_BACKEND", "postgres")
	t.Setenv("DB_SOURCE", "")

	_, err := LoadConfig(t.TempDir())
	assert.Error(t, err)
}

func TestConfig_MapboxTokenReadAtCallTime(t *testing.T) {
	t.Setenv("MAPBOX_ACCESS_TOKEN", "")

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "", cfg.MapboxToken())

	t.Setenv("MAPBOX_ACCESS_TOKEN", "pk.test")
	assert.Equal(t, "pk.test", cfg.MapboxToken())
}
