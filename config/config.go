// Package config loads application configuration from defaults, an optional
// config file, and STELLARSPLIT_-prefixed environment variables, in that
// order of precedence (lowest to highest).
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"

	"github.com/MrunalGhorpade13/stellar-split/stellarnet"
)

// EnvPrefix namespaces the environment variables read by Load, e.g.
// STELLARSPLIT_HORIZON_URL.
const EnvPrefix = "STELLARSPLIT"

// Config is the application configuration.
type Config struct {
	// HorizonURL is the Horizon API endpoint.
	HorizonURL string `mapstructure:"horizon_url"`

	// NetworkPassphrase identifies the Stellar network transactions are
	// signed for.
	NetworkPassphrase string `mapstructure:"network_passphrase"`

	// FriendbotURL funds test accounts; empty disables funding hints.
	FriendbotURL string `mapstructure:"friendbot_url"`

	// ContractID is the deployed split contract. Empty or the placeholder
	// value selects simulated submission mode.
	ContractID string `mapstructure:"contract_id"`

	// HTTPTimeout bounds individual Horizon calls.
	HTTPTimeout time.Duration `mapstructure:"http_timeout"`

	// LogLevel is a zap level name: debug, info, warn, or error.
	LogLevel string `mapstructure:"log_level"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("horizon_url", stellarnet.TestnetHorizonURL)
	v.SetDefault("network_passphrase", stellarnet.TestnetPassphrase)
	v.SetDefault("friendbot_url", stellarnet.TestnetFriendbotURL)
	v.SetDefault("contract_id", stellarnet.PlaceholderContractID)
	v.SetDefault("http_timeout", 60*time.Second)
	v.SetDefault("log_level", "info")
}

// Load reads configuration from the optional YAML file at path (empty skips
// the file) and the environment.
func Load(path string) (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// Validate checks the configuration for required fields and parseable values.
func (c Config) Validate() error {
	if c.HorizonURL == "" {
		return errors.New("horizon URL is required")
	}
	if c.NetworkPassphrase == "" {
		return errors.New("network passphrase is required")
	}
	if _, err := c.ZapLevel(); err != nil {
		return fmt.Errorf("invalid log level %q: %w", c.LogLevel, err)
	}

	return nil
}

// ZapLevel parses the configured log level.
func (c Config) ZapLevel() (zapcore.Level, error) {
	return zapcore.ParseLevel(c.LogLevel)
}

// NetworkConfig converts the application configuration into the network
// provider's configuration.
func (c Config) NetworkConfig() stellarnet.Config {
	return stellarnet.Config{
		HorizonURL:        c.HorizonURL,
		NetworkPassphrase: c.NetworkPassphrase,
		FriendbotURL:      c.FriendbotURL,
		ContractID:        c.ContractID,
		HTTPTimeout:       c.HTTPTimeout,
	}
}
