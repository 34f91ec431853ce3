package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, 8086, cfg.Server.Port)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, 0.4, cfg.Routing.ConfidenceThreshold)
	assert.Equal(t, 12*time.Second, cfg.Routing.FallbackTimeout)
	assert.Equal(t, 10, cfg.Routing.MaxPromptEntries)
	assert.False(t, cfg.Cache.SnapshotFallback)
	require.NoError(t, cfg.Validate())
}

func TestLoad_EmptyPathUsesDefaults(t *testing.T) {
	cfg, err := Load("")

	require.NoError(t, err)
	assert.Equal(t, 8086, cfg.Server.Port)
}

func TestLoad_YAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  port: 9090
routing:
  confidence_threshold: 0.55
matching:
  lexical_weight: 0.7
`), 0o600))

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 0.55, cfg.Routing.ConfidenceThreshold)
	assert.Equal(t, 0.7, cfg.Matching.LexicalWeight)
	// Untouched sections keep defaults.
	assert.Equal(t, "sqlite", cfg.Database.Driver)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load("/nonexistent/config.yaml")

	assert.Error(t, err)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "7070")
	t.Setenv("FAQ_CONFIDENCE_THRESHOLD", "0.6")
	t.Setenv("DATABASE_URL", "postgres://u:p@localhost:5432/support?sslmode=disable")
	t.Setenv("GENAI_API_KEY", "sk-test")
	t.Setenv("LOG_LEVEL", "warn")

	cfg, err := Load("")

	require.NoError(t, err)
	assert.Equal(t, 7070, cfg.Server.Port)
	assert.Equal(t, 0.6, cfg.Routing.ConfidenceThreshold)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, "postgres://u:p@localhost:5432/support?sslmode=disable", cfg.Database.Postgres.DSN)
	assert.Equal(t, "sk-test", cfg.GenAI.APIKey)
	assert.Equal(t, "warn", cfg.Observability.LogLevel)
}

func TestEnvOverrides_SQLiteURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "sqlite:/var/lib/engine.db")

	cfg, err := Load("")

	require.NoError(t, err)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "/var/lib/engine.db", cfg.Database.SQLite.Path)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad port", func(c *Config) { c.Server.Port = 0 }},
		{"bad driver", func(c *Config) { c.Database.Driver = "oracle" }},
		{"bad cache driver", func(c *Config) { c.Cache.Driver = "memcached" }},
		{"threshold above one", func(c *Config) { c.Routing.ConfidenceThreshold = 1.5 }},
		{"threshold negative", func(c *Config) { c.Routing.ConfidenceThreshold = -0.1 }},
		{"zero prompt entries", func(c *Config) { c.Routing.MaxPromptEntries = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestDatabaseDSN(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, cfg.Database.SQLite.Path, cfg.DatabaseDSN())

	cfg.Database.Driver = "postgres"
	cfg.Database.Postgres.DSN = "postgres://localhost/x"
	assert.Equal(t, "postgres://localhost/x", cfg.DatabaseDSN())
}
