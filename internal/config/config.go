package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds the settings shared by the energy-tools CLI and the
// evaluation daemon.
type Config struct {
	Listen        string        `mapstructure:"listen"`
	HTTPListen    string        `mapstructure:"http_listen"`
	EnableSwagger bool          `mapstructure:"enable_swagger"`
	DatabasePath  string        `mapstructure:"database"`
	RetentionDays int           `mapstructure:"retention_days"`
	PurgeInterval time.Duration `mapstructure:"purge_interval"`
	ClientSecret  string        `mapstructure:"client_secret"`
	ApiSecret     string        `mapstructure:"api_secret"`
	LogLevel      string        `mapstructure:"log_level"`

	// Remote is the daemon address the CLI submits to. Empty evaluates
	// locally.
	Remote      string `mapstructure:"remote"`
	ProfilePath string `mapstructure:"profile"`
	Format      string `mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load(cfgFile string) (*Config, error) {
	v := viper.New()
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("energy")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		v.AddConfigPath("/etc/energy-tools")
	}

	v.SetDefault("listen", ":9650")
	v.SetDefault("http_listen", ":9651")
	v.SetDefault("enable_swagger", true)
	v.SetDefault("database", "energy.db")
	v.SetDefault("retention_days", 0)
	v.SetDefault("purge_interval", "24h")
	v.SetDefault("client_secret", "")
	v.SetDefault("api_secret", "")
	v.SetDefault("log_level", "info")
	v.SetDefault("remote", "")
	v.SetDefault("profile", "energy-tools.json")
	v.SetDefault("format", "text")

	v.SetEnvPrefix("ENERGY")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// A missing default config is fine; an explicit or broken one is not.
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if cfg.PurgeInterval <= 0 {
		return nil, fmt.Errorf("purge_interval must be positive, got %s", cfg.PurgeInterval)
	}

	return &cfg, nil
}
