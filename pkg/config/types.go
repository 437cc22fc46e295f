// Package config loads and validates gotime configuration files.
package config

import (
	"regexp"
	"time"
)

// Config is the root configuration structure loaded from YAML.
type Config struct {
	LogSources      []string          `yaml:"log_sources"`
	TimestampFormat TimestampConfig   `yaml:"timestamp_format"`
	Layouts         map[string]string `yaml:"layouts,omitempty"`
	Detect          DetectConfig      `yaml:"detect,omitempty"`
	Webhooks        []WebhookConfig   `yaml:"webhooks,omitempty"`
}

// TimestampConfig defines how to extract timestamps from log lines.
type TimestampConfig struct {
	// Pattern is a regex whose first capture group is the timestamp text.
	Pattern string `yaml:"pattern"`

	// Layout is a reference layout ("2006-01-02 15:04:05") or the name of a
	// standard one ("RFC3339"). Validation replaces a name with its layout.
	Layout string `yaml:"layout"`

	// Location is an IANA zone name used for timestamps that carry no zone.
	// Empty means UTC.
	Location string `yaml:"location,omitempty"`

	compiledPattern *regexp.Regexp
	location        *time.Location
}

// CompiledPattern returns the pattern compiled during validation.
func (t *TimestampConfig) CompiledPattern() *regexp.Regexp {
	return t.compiledPattern
}

// LoadedLocation returns the location loaded during validation, or UTC.
func (t *TimestampConfig) LoadedLocation() *time.Location {
	if t.location == nil {
		return time.UTC
	}
	return t.location
}

// DetectConfig tunes format detection.
type DetectConfig struct {
	SampleSize int `yaml:"sample_size,omitempty"`
}

// WebhookTrigger determines when a webhook fires.
type WebhookTrigger string

const (
	// WebhookTriggerOnFailures fires only when some timestamps failed to
	// parse (default).
	WebhookTriggerOnFailures WebhookTrigger = "on_failures"
	// WebhookTriggerAlways fires after every scan.
	WebhookTriggerAlways WebhookTrigger = "always"
	// WebhookTriggerNever disables the webhook.
	WebhookTriggerNever WebhookTrigger = "never"
)

// WebhookConfig defines a webhook endpoint for scan reports.
type WebhookConfig struct {
	Name string `yaml:"name,omitempty"`

	// URL is the webhook endpoint (required).
	URL string `yaml:"url"`

	// Token is an optional bearer token. ${VAR} and $VAR are expanded.
	Token string `yaml:"token,omitempty"`

	// Trigger defaults to on_failures.
	Trigger WebhookTrigger `yaml:"trigger,omitempty"`

	// Timeout defaults to 10s.
	Timeout time.Duration `yaml:"timeout,omitempty"`
}
