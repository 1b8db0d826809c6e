package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Settings controls a batch of headless matches. Every key can be set from
// the environment with the ARENA_ prefix, e.g. ARENA_RUNS=16.
type Settings struct {
	Config   string
	Runs     int
	Workers  int
	Duration time.Duration
	Seed     int64
	Recorder string
	DSN      string
	LogLevel string
	Timeout  time.Duration
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetDefault("config", "config.yaml")
	v.SetDefault("runs", 8)
	v.SetDefault("workers", 0)
	v.SetDefault("duration", "60s")
	v.SetDefault("seed", 1)
	v.SetDefault("recorder", "")
	v.SetDefault("dsn", "")
	v.SetDefault("logLevel", "info")
	v.SetDefault("timeout", "10m")

	v.SetEnvPrefix("ARENA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// loadSettings reads an optional settings file, then resolves every key.
func loadSettings(v *viper.Viper, file string) (Settings, error) {
	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return Settings{}, fmt.Errorf("failed to read settings: %w", err)
			}
		}
	}

	s := Settings{
		Config:   v.GetString("config"),
		Runs:     v.GetInt("runs"),
		Workers:  v.GetInt("workers"),
		Duration: v.GetDuration("duration"),
		Seed:     v.GetInt64("seed"),
		Recorder: v.GetString("recorder"),
		DSN:      v.GetString("dsn"),
		LogLevel: v.GetString("logLevel"),
		Timeout:  v.GetDuration("timeout"),
	}
	if s.Runs <= 0 {
		return s, fmt.Errorf("runs must be positive, got %d", s.Runs)
	}
	if s.Duration <= 0 {
		return s, fmt.Errorf("duration must be positive, got %s", s.Duration)
	}
	return s, nil
}
