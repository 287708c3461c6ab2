// Package config loads the latency service configuration from
// an optional yaml file with sane defaults.
package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Load reads the config file at configFile, parses it and
// returns the configuration. An empty configFile yields the
// defaults.
func Load(configFile string) (*Config, error) {
	v := viper.New()
	v.SetDefault("listen_address", "127.0.0.1:8080")
	v.SetDefault("dataset_path", "")
	v.SetDefault("debug", false)

	if configFile != "" {
		v.SetConfigFile(configFile)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	out := new(Config)
	if err := v.Unmarshal(out); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	if out.ListenAddress == "" {
		return nil, fmt.Errorf("listen_address is required")
	}
	return out, nil
}
