// Package config loads and validates webmapper configuration via Viper.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config captures every configuration knob loaded via Viper.
type Config struct {
	Mapper  MapperConfig  `mapstructure:"mapper"`
	HTTP    HTTPConfig    `mapstructure:"http"`
	Output  OutputConfig  `mapstructure:"output"`
	Metrics MetricsConfig `mapstructure:"metrics"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// MapperConfig governs the crawl engine.
type MapperConfig struct {
	MaxDepth  int           `mapstructure:"max_depth"`
	RateLimit time.Duration `mapstructure:"rate_limit"`
}

// HTTPConfig configures the fetch layer.
type HTTPConfig struct {
	Timeout   time.Duration `mapstructure:"timeout"`
	UserAgent string        `mapstructure:"user_agent"`
}

// OutputConfig sets where the run report is written.
type OutputConfig struct {
	Dir     string `mapstructure:"dir"`
	Enabled bool   `mapstructure:"enabled"`
}

// MetricsConfig controls the optional observability listener. An empty
// address disables it.
type MetricsConfig struct {
	Addr string `mapstructure:"addr"`
}

// LoggingConfig toggles zap development features.
type LoggingConfig struct {
	Development bool `mapstructure:"development"`
}

// Load builds a Config from disk/environment.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("WEBMAPPER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("mapper.max_depth", 2)
	v.SetDefault("mapper.rate_limit", 500*time.Millisecond)
	v.SetDefault("http.timeout", 15*time.Second)
	v.SetDefault("http.user_agent", "webmapper/0.1")
	v.SetDefault("output.dir", "./out")
	v.SetDefault("output.enabled", true)
	v.SetDefault("metrics.addr", "")
	v.SetDefault("logging.development", true)
}

// Validate enforces required values and reasonable limits.
func (c Config) Validate() error {
	if c.Mapper.MaxDepth < 0 {
		return fmt.Errorf("mapper.max_depth must be >= 0")
	}
	if c.Mapper.RateLimit < 0 {
		return fmt.Errorf("mapper.rate_limit must be >= 0")
	}
	if c.HTTP.Timeout <= 0 {
		return fmt.Errorf("http.timeout must be > 0")
	}
	if c.HTTP.UserAgent == "" {
		return fmt.Errorf("http.user_agent must be set")
	}
	if c.Output.Enabled && c.Output.Dir == "" {
		return fmt.Errorf("output.dir must be set when output is enabled")
	}
	return nil
}
