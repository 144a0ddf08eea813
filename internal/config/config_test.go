package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, ":3000", cfg.ServerAddr)
	assert.Equal(t, SourceFile, cfg.CitySource)
	assert.Equal(t, 3, cfg.QgramSize)
	assert.Equal(t, 10, cfg.SuggestLimit)
	assert.Equal(t, "http://google.com/maps?q=", cfg.MapsURL)
	assert.Equal(t, 10*time.Minute, cfg.CacheTTL)
	assert.False(t, cfg.UseDatabase())
	assert.False(t, cfg.UseRedis())
	assert.True(t, cfg.IsDev())
	assert.NoError(t, cfg.Validate())
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("ENV", "production")
	t.Setenv("SUGGEST_LIMIT", "5")
	t.Setenv("RELOAD_INTERVAL", "90s")
	t.Setenv("QGRAM_SIZE", "not-a-number")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")

	cfg := Load()

	assert.False(t, cfg.IsDev())
	assert.Equal(t, 5, cfg.SuggestLimit)
	assert.Equal(t, 90*time.Second, cfg.ReloadInterval)
	assert.Equal(t, 3, cfg.QgramSize)
	assert.True(t, cfg.UseRedis())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"db source without url", func(c *Config) { c.CitySource = SourceDB }, true},
		{"db source with url", func(c *Config) {
			c.CitySource = SourceDB
			c.DatabaseURL = "postgres://localhost:5432/cities"
		}, false},
		{"unknown source", func(c *Config) { c.CitySource = "s3" }, true},
		{"zero limit", func(c *Config) { c.SuggestLimit = 0 }, true},
		{"bad maps url", func(c *Config) { c.MapsURL = "not a url" }, true},
		{"file source without file", func(c *Config) { c.CitiesFile = "" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Load()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLoadWidgetConfig(t *testing.T) {
	dir := t.TempDir()

	t.Run("missing file yields defaults", func(t *testing.T) {
		cfg, err := LoadWidgetConfig(filepath.Join(dir, "absent.yaml"))
		require.NoError(t, err)
		assert.Equal(t, "get_cities", cfg.Source)
		assert.Equal(t, 20, cfg.MaxResults)
		assert.Equal(t, 1, cfg.MinTriggerLength)
	})

	t.Run("partial override", func(t *testing.T) {
		path := filepath.Join(dir, "partial.yaml")
		require.NoError(t, os.WriteFile(path, []byte("autocomplete:\n  max_results: 8\n"), 0o644))

		cfg, err := LoadWidgetConfig(path)
		require.NoError(t, err)
		assert.Equal(t, "get_cities", cfg.Source)
		assert.Equal(t, 8, cfg.MaxResults)
		assert.Equal(t, 1, cfg.MinTriggerLength)
	})

	t.Run("invalid values", func(t *testing.T) {
		path := filepath.Join(dir, "invalid.yaml")
		require.NoError(t, os.WriteFile(path, []byte("autocomplete:\n  source: \"\"\n"), 0o644))

		_, err := LoadWidgetConfig(path)
		assert.Error(t, err)
	})

	t.Run("malformed yaml", func(t *testing.T) {
		path := filepath.Join(dir, "broken.yaml")
		require.NoError(t, os.WriteFile(path, []byte("autocomplete: [\n"), 0o644))

		_, err := LoadWidgetConfig(path)
		assert.Error(t, err)
	})
}
