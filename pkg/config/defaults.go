package config

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cast"
)

// Default values for configuration.
const (
	DefaultWebhookTimeout   = 10 * time.Second
	DefaultSampleSize       = 100
	DefaultTimestampPattern = `^\[(\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2}(?:[.,]\d+)?)\]`
	DefaultTimestampLayout  = "2006-01-02 15:04:05"
)

// Environment variable names.
const (
	EnvTimestampLayout = "GOTIME_TIMESTAMP_LAYOUT"
	EnvLocation        = "GOTIME_LOCATION"
	EnvSampleSize      = "GOTIME_SAMPLE_SIZE"
)

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		LogSources: []string{},
		TimestampFormat: TimestampConfig{
			Pattern: DefaultTimestampPattern,
			Layout:  DefaultTimestampLayout,
		},
		Detect: DetectConfig{SampleSize: DefaultSampleSize},
	}
}

// applyEnvironmentOverrides applies environment variable overrides to the config.
func (c *Config) applyEnvironmentOverrides() error {
	if layout := os.Getenv(EnvTimestampLayout); layout != "" {
		c.TimestampFormat.Layout = layout
	}
	if loc := os.Getenv(EnvLocation); loc != "" {
		c.TimestampFormat.Location = loc
	}
	if v := os.Getenv(EnvSampleSize); v != "" {
		n, err := cast.ToIntE(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvSampleSize, err)
		}
		c.Detect.SampleSize = n
	}
	return nil
}
