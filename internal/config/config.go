// Package config provides configuration types and defaults for circuit-coach.
package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// LogConfig holds log file rotation settings.
type LogConfig struct {
	File       string `mapstructure:"file"`         // log file path; empty means ~/.circuit-coach/circuit-coach.log
	MaxSizeMB  int    `mapstructure:"max_size_mb"`  // rotate after this many megabytes
	MaxBackups int    `mapstructure:"max_backups"`  // rotated files to keep
	MaxAgeDays int    `mapstructure:"max_age_days"` // days to keep rotated files
}

// Config holds all configuration options for circuit-coach.
type Config struct {
	PlanDir string `mapstructure:"plan_dir"` // directory of user YAML plans, merged with the built-in library

	ReadyCountdownSeconds  int `mapstructure:"ready_countdown_seconds"`
	LeadInCountdownSeconds int `mapstructure:"lead_in_countdown_seconds"`
	TransitionRestSeconds  int `mapstructure:"transition_rest_seconds"`
	RestExtensionSeconds   int `mapstructure:"rest_extension_seconds"`

	Log LogConfig `mapstructure:"log"`
}

// Defaults returns the stock configuration.
func Defaults() Config {
	return Config{
		ReadyCountdownSeconds:  5,
		LeadInCountdownSeconds: 3,
		TransitionRestSeconds:  15,
		RestExtensionSeconds:   15,
		Log: LogConfig{
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 30,
		},
	}
}

// Load reads the config file, falling back to defaults when it is
// absent. With cfgFile empty, ~/.config/circuit-coach/config.yaml is
// tried. A missing file is not an error; a malformed one is.
func Load(cfgFile string) (Config, error) {
	v := viper.New()

	defaults := Defaults()
	v.SetDefault("plan_dir", defaults.PlanDir)
	v.SetDefault("ready_countdown_seconds", defaults.ReadyCountdownSeconds)
	v.SetDefault("lead_in_countdown_seconds", defaults.LeadInCountdownSeconds)
	v.SetDefault("transition_rest_seconds", defaults.TransitionRestSeconds)
	v.SetDefault("rest_extension_seconds", defaults.RestExtensionSeconds)
	v.SetDefault("log.file", defaults.Log.File)
	v.SetDefault("log.max_size_mb", defaults.Log.MaxSizeMB)
	v.SetDefault("log.max_backups", defaults.Log.MaxBackups)
	v.SetDefault("log.max_age_days", defaults.Log.MaxAgeDays)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			home = "."
		}
		v.AddConfigPath(filepath.Join(home, ".config", "circuit-coach"))
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	if err := v.ReadInConfig(); err != nil {
		_, notFound := err.(viper.ConfigFileNotFoundError)
		if !notFound && !os.IsNotExist(err) {
			return Config{}, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
