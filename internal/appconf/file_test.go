package appconf

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadFromFile(t *testing.T) {
	t.Run("loads valid JSON config", func(t *testing.T) {
		path := writeConfig(t, "config.json", `{
  "port": 3000,
  "env": "development",
  "api-keys": ["test"],
  "rate-limit": 100,
  "verbose": true,
  "data-path": "network.json",
  "bus-wait-time": 4,
  "route-cache-size": 256
}`)

		fileCfg, err := LoadFromFile(path)
		require.NoError(t, err)

		cfg := fileCfg.ToAppConfig()
		assert.Equal(t, 3000, cfg.Port)
		assert.Equal(t, Development, cfg.Env)
		assert.Equal(t, []string{"test"}, cfg.ApiKeys)
		assert.Equal(t, 100, cfg.RateLimit)
		assert.True(t, cfg.Verbose)

		data := fileCfg.ToDataConfig()
		assert.Equal(t, "network.json", data.Path)
		assert.Equal(t, FormatJSON, data.Format)
		require.NotNil(t, data.BusWaitTime)
		assert.Equal(t, 4, *data.BusWaitTime)
		assert.Nil(t, data.BusVelocity)
		assert.Equal(t, 256, data.RouteCacheSize)
	})

	t.Run("loads valid YAML config", func(t *testing.T) {
		path := writeConfig(t, "config.yaml", `
port: 8080
env: production
api-keys:
  - key1
  - key2
rate-limit: 50
log-level: warn
log-format: text
log-file: /var/log/catalogue.log
data-path: https://example.com/gtfs.zip
bus-velocity: 30.5
`)

		fileCfg, err := LoadFromFile(path)
		require.NoError(t, err)

		cfg := fileCfg.ToAppConfig()
		assert.Equal(t, 8080, cfg.Port)
		assert.Equal(t, Production, cfg.Env)
		assert.Equal(t, []string{"key1", "key2"}, cfg.ApiKeys)
		assert.Equal(t, 50, cfg.RateLimit)
		assert.Equal(t, "warn", cfg.LogLevel)
		assert.Equal(t, "text", cfg.LogFormat)
		assert.Equal(t, "/var/log/catalogue.log", cfg.LogFile)

		data := fileCfg.ToDataConfig()
		assert.Equal(t, FormatGTFS, data.Format)
		require.NotNil(t, data.BusVelocity)
		assert.Equal(t, 30.5, *data.BusVelocity)
	})

	t.Run("applies defaults", func(t *testing.T) {
		path := writeConfig(t, "config.json", `{"data-path": "network.txt"}`)

		fileCfg, err := LoadFromFile(path)
		require.NoError(t, err)

		cfg := fileCfg.ToAppConfig()
		assert.Equal(t, 4000, cfg.Port)
		assert.Equal(t, 100, cfg.RateLimit)
		assert.Equal(t, []string{}, cfg.ApiKeys)
		assert.Equal(t, FormatText, fileCfg.ToDataConfig().Format)
	})

	t.Run("fails on invalid config", func(t *testing.T) {
		path := writeConfig(t, "config.json", `{"port": 70000, "env": "staging", "data-path": "x.json"}`)

		fileCfg, err := LoadFromFile(path)
		assert.Error(t, err)
		assert.Nil(t, fileCfg)
		assert.Contains(t, err.Error(), "invalid configuration")
	})

	t.Run("fails without data path", func(t *testing.T) {
		path := writeConfig(t, "config.json", `{"port": 3000}`)

		_, err := LoadFromFile(path)
		assert.ErrorContains(t, err, "invalid configuration")
	})

	t.Run("fails on negative velocity", func(t *testing.T) {
		path := writeConfig(t, "config.json", `{"data-path": "x.json", "bus-velocity": -1}`)

		_, err := LoadFromFile(path)
		assert.ErrorContains(t, err, "invalid configuration")
	})

	t.Run("fails on malformed JSON", func(t *testing.T) {
		path := writeConfig(t, "config.json", `{"port": `)

		fileCfg, err := LoadFromFile(path)
		assert.Error(t, err)
		assert.Nil(t, fileCfg)
		assert.Contains(t, err.Error(), "failed to parse JSON config")
	})

	t.Run("fails on malformed YAML", func(t *testing.T) {
		path := writeConfig(t, "config.yml", "port: [unclosed")

		_, err := LoadFromFile(path)
		assert.ErrorContains(t, err, "failed to parse YAML config")
	})

	t.Run("fails on nonexistent file", func(t *testing.T) {
		fileCfg, err := LoadFromFile(filepath.Join(t.TempDir(), "nonexistent.json"))
		assert.Error(t, err)
		assert.Nil(t, fileCfg)
		assert.Contains(t, err.Error(), "failed to stat config file")
	})
}

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		path     string
		explicit string
		expected DataFormat
	}{
		{"feed.zip", "", FormatGTFS},
		{"https://example.com/feed.ZIP", "", FormatGTFS},
		{"input.txt", "", FormatText},
		{"input.json", "", FormatJSON},
		{"input", "", FormatJSON},
		{"input.json", "GTFS", FormatGTFS},
	}

	for _, tt := range tests {
		t.Run(tt.path+"/"+tt.explicit, func(t *testing.T) {
			assert.Equal(t, tt.expected, DetectFormat(tt.path, tt.explicit))
		})
	}
}

func TestEnvFlagToEnvironment(t *testing.T) {
	assert.Equal(t, Development, EnvFlagToEnvironment("development"))
	assert.Equal(t, Test, EnvFlagToEnvironment("test"))
	assert.Equal(t, Production, EnvFlagToEnvironment(" Production "))
	assert.Equal(t, Development, EnvFlagToEnvironment("unknown"))
	assert.Equal(t, "production", Production.String())
}
