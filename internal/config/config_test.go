package config

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	viper.Reset()
	defer viper.Reset()

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "localhost", cfg.Server.Host)
	assert.Equal(t, 7331, cfg.Server.Port)
	assert.Equal(t, []string{"./components"}, cfg.Components.ScanPaths)
	assert.Contains(t, cfg.Components.ExcludePatterns, "*.test.tsx")
	assert.Equal(t, 2000, cfg.Sandbox.TimeoutMS)
	assert.Equal(t, ".chisel/revisions.db", cfg.Store.Path)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
}

func TestLoad_ViperOverrides(t *testing.T) {
	viper.Reset()
	defer viper.Reset()

	viper.Set("server.host", "0.0.0.0")
	viper.Set("server.port", 9000)
	viper.Set("components.scan_paths", []string{"./src", "./ui"})
	viper.Set("sandbox.timeout_ms", 500)
	viper.Set("catalog.path", "catalog.yml")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, []string{"./src", "./ui"}, cfg.Components.ScanPaths)
	assert.Equal(t, 500, cfg.Sandbox.TimeoutMS)
	assert.Equal(t, "catalog.yml", cfg.Catalog.Path)
}

func TestLoad_SnakeCaseLoggingKeys(t *testing.T) {
	viper.Reset()
	defer viper.Reset()

	// The config file spells these log_level / log_format.
	viper.Set("log_level", "debug")
	viper.Set("log_format", "json")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
}

func TestLoad_InvalidPort(t *testing.T) {
	viper.Reset()
	defer viper.Reset()

	viper.Set("server.port", 99999)
	_, err := Load()
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := &Config{
		Server:     ServerConfig{Host: "localhost", Port: 7331},
		Components: ComponentsConfig{ScanPaths: []string{"./components"}},
		LogFormat:  "text",
	}
	assert.NoError(t, validate(cfg))

	cfg.LogFormat = "xml"
	assert.Error(t, validate(cfg))

	cfg.LogFormat = "json"
	cfg.Components.ScanPaths = []string{""}
	assert.Error(t, validate(cfg))
}
