// Package appconfig loads the renderer's tunables from environment
// variables and an optional YAML config file, layering a user file
// over built-in defaults with viper doing the binding.
package appconfig

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"

	"github.com/walkthru-earth/radarcast/internal/rcerrors"
)

// Config is every tunable the CLI and chat surface read from the
// environment or a config file.
type Config struct {
	ThunderforestAPIKey string
	BMKGAPIKey          string
	ProxyURL            string

	TileTimeout    time.Duration
	CatalogTimeout time.Duration
	MaxTiles       int
	AgeThreshold   time.Duration
	EnforceAge     bool
	Opacity        float64

	StationsOverridesPath string
}

// defaults returns every tunable set to a concrete value; a user
// config file only overrides what it explicitly sets.
func defaults() Config {
	return Config{
		TileTimeout:    15 * time.Second,
		CatalogTimeout: 20 * time.Second,
		MaxTiles:       50,
		AgeThreshold:   20 * time.Minute,
		EnforceAge:     false,
		Opacity:        0.7,
	}
}

// Load builds a Config from defaults, an optional config file, and
// environment variables, in that increasing order of precedence.
func Load() (*Config, error) {
	cfg := defaults()

	v := viper.New()
	v.SetEnvPrefix("RADARCAST")
	v.AutomaticEnv()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(configDir())

	if err := v.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
			return nil, &rcerrors.ConfigError{Context: "reading config.yaml", Cause: err}
		}
	}

	if v.IsSet("max_tiles") {
		cfg.MaxTiles = v.GetInt("max_tiles")
	}
	if v.IsSet("age_threshold_minutes") {
		cfg.AgeThreshold = time.Duration(v.GetInt("age_threshold_minutes")) * time.Minute
	}
	if v.IsSet("enforce_age") {
		cfg.EnforceAge = v.GetBool("enforce_age")
	}
	if v.IsSet("opacity") {
		cfg.Opacity = v.GetFloat64("opacity")
	}
	if v.IsSet("stations_overrides_path") {
		cfg.StationsOverridesPath = v.GetString("stations_overrides_path")
	}

	// Environment variables take precedence and use the upstream
	// provider's own names, since these are credentials the source
	// already documents under these exact names.
	if key := os.Getenv("THUNDERFOREST_APIKEY"); key != "" {
		cfg.ThunderforestAPIKey = key
	}
	if key := os.Getenv("BMKG_APIKEY"); key != "" {
		cfg.BMKGAPIKey = key
	}
	if proxy := os.Getenv("PROXY_URL"); proxy != "" {
		cfg.ProxyURL = proxy
	}

	return &cfg, nil
}

// configDir returns $XDG_CONFIG_HOME/radarcast, falling back to
// ~/.radarcast.
func configDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "radarcast")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".radarcast"
	}
	return filepath.Join(home, ".radarcast")
}

// Validate checks the tunables a render actually depends on.
func (c *Config) Validate() error {
	if c.MaxTiles <= 0 {
		return &rcerrors.ConfigError{Context: "max_tiles", Cause: fmt.Errorf("must be positive, got %d", c.MaxTiles)}
	}
	if c.Opacity < 0 || c.Opacity > 1 {
		return &rcerrors.ConfigError{Context: "opacity", Cause: fmt.Errorf("must be in [0,1], got %v", c.Opacity)}
	}
	return nil
}
