package config

import (
	"fmt"
	"path/filepath"
	"strings"

	internal "github.com/ZanzyTHEbar/sourced-text/stext"

	"github.com/spf13/viper"
)

// Config stores all configuration of the toolkit.
// The values are read by viper from a config file or environment variables.
type Config struct {
	SText STextConfig `mapstructure:"stext"`
}

// STextConfig stores corpus encoding and loader configurations.
type STextConfig struct {
	// DefaultMode selects the encoding used when callers do not specify one.
	// Accepted values: "bytes", "codepoints".
	DefaultMode string `mapstructure:"defaultMode"`

	// MaxWorkers bounds the loader's encode pool.
	MaxWorkers int `mapstructure:"maxWorkers"`

	// IgnoreFile is the gitignore-style file honored by the directory loader.
	IgnoreFile string `mapstructure:"ignoreFile"`
}

var AppConfig Config

// LoadConfig reads configuration from file or environment variables.
func LoadConfig(configPath string) (*Config, error) {
	if configPath != "" {
		viper.SetConfigFile(configPath)
	} else {
		viper.AddConfigPath(".")
		viper.AddConfigPath("..")
		viper.AddConfigPath(filepath.Join("etc", internal.DefaultAppName))
		viper.AddConfigPath(internal.DefaultConfigPath)
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	// Set default values
	viper.SetDefault("stext.defaultMode", internal.DefaultEncodingMode)
	viper.SetDefault("stext.maxWorkers", internal.DefaultMaxWorkers)
	viper.SetDefault("stext.ignoreFile", internal.DefaultIgnoreFileName)

	viper.AutomaticEnv()                                   // Read in environment variables that match
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_")) // e.g. stext.maxWorkers becomes STEXT_MAXWORKERS

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// Config file not found; defaults will be used.
		} else {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		return nil, fmt.Errorf("unable to decode into struct: %w", err)
	}

	if err := validate(&AppConfig); err != nil {
		return nil, err
	}

	return &AppConfig, nil
}

func validate(cfg *Config) error {
	switch cfg.SText.DefaultMode {
	case "bytes", "codepoints":
	default:
		return fmt.Errorf("invalid stext.defaultMode %q: must be \"bytes\" or \"codepoints\"", cfg.SText.DefaultMode)
	}
	if cfg.SText.MaxWorkers < 1 {
		return fmt.Errorf("invalid stext.maxWorkers %d: must be >= 1", cfg.SText.MaxWorkers)
	}
	return nil
}
