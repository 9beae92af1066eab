// Package config loads CLI and server settings. The matching core itself
// takes no configuration; everything here drives the refresh pipeline and
// the optional HTTP service.
package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/AIM-Technologies-CO/demoji/internal/logging"
	"github.com/AIM-Technologies-CO/demoji/internal/refresh"
)

// AppConfig holds the application configuration.
type AppConfig struct {
	Log          logging.Config `mapstructure:"log"`
	RegistryURL  string         `mapstructure:"registry_url"`
	FetchTimeout time.Duration  `mapstructure:"fetch_timeout"`
	ListenAddr   string         `mapstructure:"listen_addr"`
	RateLimitRPS float64        `mapstructure:"rate_limit_rps"`
	RateBurst    int            `mapstructure:"rate_burst"`
}

// Load reads configuration from an optional file and DEMOJI_* environment
// variables, falling back to defaults.
func Load(configPath string) (*AppConfig, error) {
	v := viper.New()

	v.SetDefault("log.level", "info")
	v.SetDefault("log.console", true)
	v.SetDefault("log.time_format", time.RFC3339)
	v.SetDefault("registry_url", refresh.DefaultURL)
	v.SetDefault("fetch_timeout", 30*time.Second)
	v.SetDefault("listen_addr", ":8080")
	v.SetDefault("rate_limit_rps", 50.0)
	v.SetDefault("rate_burst", 100)

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/demoji")
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, err
			}
		}
	}

	v.SetEnvPrefix("DEMOJI")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg AppConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
