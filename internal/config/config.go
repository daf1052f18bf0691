// Package config provides Viper-based configuration for the CLI and HTTP server.
package config

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. CARDSTMT_LOG_LEVEL.
const EnvPrefix = "CARDSTMT"

// Config represents the complete application configuration
type Config struct {
	Log struct {
		Level  string `mapstructure:"level"`
		Format string `mapstructure:"format"`
	} `mapstructure:"log"`

	Server struct {
		Addr        string `mapstructure:"addr"`
		BodyLimitMB int    `mapstructure:"body_limit_mb"`
	} `mapstructure:"server"`

	Output struct {
		Format string `mapstructure:"format"`
	} `mapstructure:"output"`
}

// OutputFormats lists the accepted values of output.format.
var OutputFormats = []string{"text", "json", "yaml", "csv"}

// Load reads configuration from defaults, an optional config file and the
// environment, in increasing priority. configFile may be empty, in which case
// config.yaml is searched for in $HOME/.cardstmt and the working directory.
func Load(configFile string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("$HOME/.cardstmt")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || configFile != "" {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.body_limit_mb", 32)

	v.SetDefault("output.format", "text")
}

func validate(cfg *Config) error {
	if _, err := logrus.ParseLevel(cfg.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", cfg.Log.Level)
	}

	if cfg.Log.Format != "text" && cfg.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", cfg.Log.Format)
	}

	if cfg.Server.Addr == "" {
		return fmt.Errorf("server.addr must not be empty")
	}

	if cfg.Server.BodyLimitMB < 1 || cfg.Server.BodyLimitMB > 512 {
		return fmt.Errorf("server.body_limit_mb must be between 1 and 512, got: %d", cfg.Server.BodyLimitMB)
	}

	if !validOutputFormat(cfg.Output.Format) {
		return fmt.Errorf("invalid output format: %s (must be one of %s)",
			cfg.Output.Format, strings.Join(OutputFormats, ", "))
	}
	return nil
}

func validOutputFormat(format string) bool {
	for _, f := range OutputFormats {
		if f == format {
			return true
		}
	}
	return false
}
