// Package config loads runtime settings from an optional config file and
// ATLAS_-prefixed environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/renswick/atlas/geocode"
)

// MapSettings is the initial map view for new sessions.
type MapSettings struct {
	CenterLongitude float64 `mapstructure:"center_longitude"`
	CenterLatitude  float64 `mapstructure:"center_latitude"`
	Zoom            int     `mapstructure:"zoom"`
}

// GeocodeSettings configures the outbound geocoding client.
type GeocodeSettings struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// Settings is the full runtime configuration.
type Settings struct {
	Provider      string  `mapstructure:"provider"`
	Model         string  `mapstructure:"model"`
	BaseURL       string  `mapstructure:"base_url"`
	APIKey        string  `mapstructure:"api_key"`
	MaxTokens     uint32  `mapstructure:"max_tokens"`
	Temperature   float32 `mapstructure:"temperature"`
	MaxIterations int     `mapstructure:"max_iterations"`
	Listen        string  `mapstructure:"listen"`

	Map     MapSettings     `mapstructure:"map"`
	Geocode GeocodeSettings `mapstructure:"geocode"`
}

// Center returns the initial map center as (longitude, latitude).
func (s Settings) Center() [2]float64 {
	return [2]float64{s.Map.CenterLongitude, s.Map.CenterLatitude}
}

// Load reads settings. When path is empty, an `atlas.yaml` in the working
// directory is used if present; a missing file is not an error. An
// explicit path that cannot be read is. Environment variables override
// file values: ATLAS_PROVIDER, ATLAS_MAX_ITERATIONS, ATLAS_MAP_ZOOM, and
// so on, with dots replaced by underscores.
func Load(path string) (Settings, error) {
	v := viper.New()

	v.SetDefault("provider", "openai")
	v.SetDefault("model", "")
	v.SetDefault("base_url", "")
	v.SetDefault("api_key", "")
	v.SetDefault("max_tokens", 4096)
	v.SetDefault("temperature", 0.7)
	v.SetDefault("max_iterations", 5)
	v.SetDefault("listen", ":8000")
	v.SetDefault("map.center_longitude", 0.0)
	v.SetDefault("map.center_latitude", 0.0)
	v.SetDefault("map.zoom", 2)
	v.SetDefault("geocode.base_url", geocode.DefaultBaseURL)
	v.SetDefault("geocode.timeout", 10*time.Second)

	v.SetEnvPrefix("ATLAS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Settings{}, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	} else {
		v.SetConfigName("atlas")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return Settings{}, fmt.Errorf("failed to read config: %w", err)
			}
		}
	}

	var settings Settings
	if err := v.Unmarshal(&settings); err != nil {
		return Settings{}, fmt.Errorf("failed to decode config: %w", err)
	}
	return settings, nil
}
