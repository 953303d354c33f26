package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config represents the root configuration structure
type Config struct {
	Editor  EditorConfig `mapstructure:"editor" yaml:"editor"`
	LogFile string       `mapstructure:"log_file" yaml:"log_file"`
	Debug   bool         `mapstructure:"debug" yaml:"debug"`
}

// EditorConfig holds editing and display preferences
type EditorConfig struct {
	TabStop       int           `mapstructure:"tab_stop" yaml:"tab_stop"`
	LineNumbers   bool          `mapstructure:"line_numbers" yaml:"line_numbers"`
	GutterWidth   int           `mapstructure:"gutter_width" yaml:"gutter_width"`
	StatusTimeout time.Duration `mapstructure:"status_timeout" yaml:"status_timeout"`
}

// LoadConfig loads configuration from the default search paths and
// environment variables. A missing config file is not an error.
func LoadConfig() (*Config, error) {
	v := newViper()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("$HOME/.config/vex")
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}
	return decode(v)
}

// LoadConfigFromPath loads configuration from an explicit file path.
func LoadConfigFromPath(path string) (*Config, error) {
	v := newViper()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file %s: %w", path, err)
	}
	return decode(v)
}

func newViper() *viper.Viper {
	v := viper.New()

	// Environment variable support
	v.AutomaticEnv()
	v.SetEnvPrefix("VEX")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	applyDefaults(v)
	return v
}

func decode(v *viper.Viper) (*Config, error) {
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := ValidateConfig(&config); err != nil {
		return nil, err
	}
	return &config, nil
}

// ValidateConfig validates the configuration values
func ValidateConfig(cfg *Config) error {
	if cfg.Editor.TabStop < 1 || cfg.Editor.TabStop > 32 {
		return fmt.Errorf("editor.tab_stop must be between 1 and 32, got %d", cfg.Editor.TabStop)
	}
	if cfg.Editor.GutterWidth < 1 || cfg.Editor.GutterWidth > 10 {
		return fmt.Errorf("editor.gutter_width must be between 1 and 10, got %d", cfg.Editor.GutterWidth)
	}
	if cfg.Editor.StatusTimeout < time.Second || cfg.Editor.StatusTimeout > 60*time.Second {
		return fmt.Errorf("editor.status_timeout must be between 1s and 60s, got %v", cfg.Editor.StatusTimeout)
	}
	return nil
}

// applyDefaults sets default configuration values
func applyDefaults(v *viper.Viper) {
	v.SetDefault("editor.tab_stop", 8)
	v.SetDefault("editor.line_numbers", true)
	v.SetDefault("editor.gutter_width", 4)
	v.SetDefault("editor.status_timeout", "5s")

	v.SetDefault("log_file", "")
	v.SetDefault("debug", false)
}
