// Package config loads ustriage defaults from a config file and the
// environment. Flags override config values; config values override the
// built-in defaults. Nothing here is mutable after Load returns, so
// repeated invocations in one process cannot leak settings.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/canonical/ustriage/internal/expiry"
	"github.com/canonical/ustriage/internal/filter"
)

// EnvPrefix is the environment variable prefix (e.g. USTRIAGE_TEAM).
const EnvPrefix = "USTRIAGE"

// Config holds the per-user triage defaults.
type Config struct {
	Team             string `mapstructure:"team" yaml:"team"`
	Tag              string `mapstructure:"tag" yaml:"tag"`
	ExpireDays       int    `mapstructure:"expire-days" yaml:"expire-days"`
	ExpireTaggedDays int    `mapstructure:"expire-tagged-days" yaml:"expire-tagged-days"`
	LinkStyle        string `mapstructure:"link-style" yaml:"link-style"`
	OpenBrowser      bool   `mapstructure:"open-browser" yaml:"open-browser"`
}

// Load reads the config file (if present) and environment overrides.
// $USTRIAGE_CONFIG names an explicit file; otherwise
// ~/.config/ustriage/config.yaml is used. A missing file is not an error.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault("team", filter.DefaultSubjectName)
	v.SetDefault("tag", filter.DefaultTag)
	v.SetDefault("expire-days", expiry.DefaultGeneralThresholdDays)
	v.SetDefault("expire-tagged-days", expiry.DefaultTaggedThresholdDays)
	v.SetDefault("link-style", "short")
	v.SetDefault("open-browser", false)

	if path := os.Getenv(EnvPrefix + "_CONFIG"); path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "ustriage"))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}

// Render returns the effective configuration as YAML, for `ustriage config`.
func (c *Config) Render() (string, error) {
	out, err := yaml.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("failed to render config: %w", err)
	}
	return string(out), nil
}
