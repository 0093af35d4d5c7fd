package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	mailgun "github.com/courierkit/mailgun-go"
)

// Config holds all configuration for the mailgun CLI
type Config struct {
	APIKey   string        `mapstructure:"api_key"`
	Domain   string        `mapstructure:"domain"`
	Host     string        `mapstructure:"host"`
	Protocol string        `mapstructure:"protocol"`
	Port     int           `mapstructure:"port"`
	Endpoint string        `mapstructure:"endpoint"`
	Proxy    string        `mapstructure:"proxy"`
	Timeout  time.Duration `mapstructure:"timeout"`
	Retry    int           `mapstructure:"retry"`
	Mute     bool          `mapstructure:"mute"`
	Log      LogConfig     `mapstructure:"log"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Client converts the CLI configuration into a library client config.
func (c *Config) Client() mailgun.Config {
	return mailgun.Config{
		APIKey:   c.APIKey,
		Domain:   c.Domain,
		Host:     c.Host,
		Protocol: c.Protocol,
		Port:     c.Port,
		Endpoint: c.Endpoint,
		Proxy:    c.Proxy,
		Timeout:  c.Timeout,
		Retry:    c.Retry,
		Mute:     c.Mute,
	}
}

// Load reads configuration from file and environment variables
func Load() (*Config, error) {
	v := viper.New()

	// Set config file name and paths
	v.SetConfigName("mailgun")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.config/mailgun")

	// Set defaults
	setDefaults(v)

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found is OK, we'll use defaults and env vars
	}

	// Bind environment variables
	v.SetEnvPrefix("MAILGUN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Unmarshal config
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	// Credential keys need explicit defaults so AutomaticEnv can
	// resolve them during Unmarshal
	v.SetDefault("api_key", "")
	v.SetDefault("domain", "")

	// Connection defaults
	v.SetDefault("host", mailgun.DefaultHost)
	v.SetDefault("proxy", "")
	v.SetDefault("protocol", mailgun.DefaultProtocol)
	v.SetDefault("port", mailgun.DefaultPort)
	v.SetDefault("endpoint", mailgun.DefaultEndpoint)
	v.SetDefault("timeout", "30s")
	v.SetDefault("retry", 1)
	v.SetDefault("mute", false)

	// Log defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
}
