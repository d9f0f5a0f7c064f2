package config

import (
	"testing"

	"github.com/samvad-hq/getrequester/pkg/targets"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("TARGET_URL", "")
	t.Setenv("OUTPUT_FORMAT", "")

	cfg, err := load(viper.New())
	require.NoError(t, err)
	assert.Equal(t, "getrequester", cfg.AppName)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, targets.FormatJSON, cfg.OutputFormat)
	assert.Empty(t, cfg.URL)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("TARGET_URL", "  https://example.com/data.json ")
	t.Setenv("OUTPUT_FORMAT", "YAML")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := load(viper.New())
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/data.json", cfg.URL)
	assert.Equal(t, targets.FormatYAML, cfg.OutputFormat)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadRejectsUnknownFormat(t *testing.T) {
	t.Setenv("OUTPUT_FORMAT", "xml")

	_, err := load(viper.New())
	assert.Error(t, err)
}
