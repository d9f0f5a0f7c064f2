package config

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/samvad-hq/getrequester/pkg/targets"
	"github.com/spf13/viper"
)

// Config holds the application configuration loaded from files and environment variables.
type Config struct {
	AppName      string `mapstructure:"app_name"`
	Env          string `mapstructure:"app_env"`
	LogLevel     string `mapstructure:"log_level"`
	URL          string `mapstructure:"target_url"`
	TargetsFile  string `mapstructure:"targets_file"`
	OutputFormat string `mapstructure:"output_format"`
}

// Load reads configuration from environment variables and the optional configs/.env file.
func Load() (*Config, error) {
	_ = godotenv.Load("configs/.env")
	return load(viper.New())
}

func load(v *viper.Viper) (*Config, error) {
	v.SetDefault("app_name", "getrequester")
	v.SetDefault("app_env", "development")
	v.SetDefault("log_level", "info")
	v.SetDefault("target_url", "")
	v.SetDefault("targets_file", "")
	v.SetDefault("output_format", targets.FormatJSON)

	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	cfg.URL = strings.TrimSpace(cfg.URL)
	cfg.TargetsFile = strings.TrimSpace(cfg.TargetsFile)
	cfg.OutputFormat = strings.ToLower(strings.TrimSpace(cfg.OutputFormat))
	if !targets.ValidFormat(cfg.OutputFormat) {
		return nil, fmt.Errorf("invalid output_format %q (expected raw, json or yaml)", cfg.OutputFormat)
	}

	return &cfg, nil
}
