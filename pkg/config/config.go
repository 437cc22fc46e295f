package config

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"regexp"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/ccollicutt/gotime/pkg/layout"
)

// Load reads and validates a configuration file.
func Load(_ context.Context, path string) (*Config, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- user-provided config path is expected
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	if err := cfg.applyEnvironmentOverrides(); err != nil {
		return nil, fmt.Errorf("environment: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// Validate checks a configuration for errors, compiles the timestamp
// pattern and layouts and loads the location.
func Validate(cfg *Config) error {
	if len(cfg.LogSources) == 0 {
		return errors.New("log_sources: at least one log source is required")
	}

	if err := validateTimestampFormat(&cfg.TimestampFormat); err != nil {
		return fmt.Errorf("timestamp_format: %w", err)
	}

	names := make([]string, 0, len(cfg.Layouts))
	for name := range cfg.Layouts {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if strings.TrimSpace(name) == "" {
			return errors.New("layouts: name must not be empty")
		}
		text, err := validateLayout(cfg.Layouts[name])
		if err != nil {
			return fmt.Errorf("layouts[%s]: %w", name, err)
		}
		cfg.Layouts[name] = text
	}

	if cfg.Detect.SampleSize < 0 {
		return fmt.Errorf("detect: sample_size must be >= 0, got %d", cfg.Detect.SampleSize)
	}
	if cfg.Detect.SampleSize == 0 {
		cfg.Detect.SampleSize = DefaultSampleSize
	}

	// Webhooks are optional, but validate if present
	for i := range cfg.Webhooks {
		if err := validateWebhook(&cfg.Webhooks[i]); err != nil {
			name := cfg.Webhooks[i].Name
			if name == "" {
				name = cfg.Webhooks[i].URL
			}
			return fmt.Errorf("webhooks[%d] (%s): %w", i, name, err)
		}
	}

	return nil
}

// Layout returns the layout registered under name in the layouts section,
// then the standard layout of that name, then name itself.
func (c *Config) Layout(name string) string {
	if text, ok := c.Layouts[name]; ok {
		return text
	}
	return layout.Lookup(name)
}

func validateTimestampFormat(tf *TimestampConfig) error {
	if tf.Pattern == "" {
		return errors.New("pattern is required")
	}

	re, err := regexp.Compile(tf.Pattern)
	if err != nil {
		return fmt.Errorf("invalid pattern: %w", err)
	}

	if re.NumSubexp() < 1 {
		return errors.New("pattern must have at least one capture group for the timestamp")
	}

	tf.compiledPattern = re

	text, err := validateLayout(tf.Layout)
	if err != nil {
		return err
	}
	tf.Layout = text

	if tf.Location != "" {
		loc, err := time.LoadLocation(tf.Location)
		if err != nil {
			return fmt.Errorf("invalid location: %w", err)
		}
		tf.location = loc
	}

	return nil
}

// validateLayout expands a standard layout name and checks that the
// layout tokenizes and names at least one field.
func validateLayout(text string) (string, error) {
	if text == "" {
		return "", errors.New("layout is required")
	}
	text = layout.Lookup(text)

	tokens, err := layout.Tokenize(text)
	if err != nil {
		return "", fmt.Errorf("invalid layout: %w", err)
	}
	for _, tok := range tokens {
		if _, ok := tok.(layout.Field); ok {
			return text, nil
		}
	}
	return "", fmt.Errorf("layout %q has no time fields", text)
}

func validateWebhook(wh *WebhookConfig) error {
	if wh.URL == "" {
		return errors.New("url is required")
	}

	u, err := url.Parse(wh.URL)
	if err != nil {
		return fmt.Errorf("invalid url: %w", err)
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("url scheme must be http or https, got %q", u.Scheme)
	}

	if u.Host == "" {
		return errors.New("url must have a host")
	}

	wh.Token = expandEnvVar(wh.Token)

	switch wh.Trigger {
	case "":
		wh.Trigger = WebhookTriggerOnFailures
	case WebhookTriggerOnFailures, WebhookTriggerAlways, WebhookTriggerNever:
	default:
		return fmt.Errorf("invalid trigger %q (must be on_failures, always, or never)", wh.Trigger)
	}

	if wh.Timeout <= 0 {
		wh.Timeout = DefaultWebhookTimeout
	}

	return nil
}

// expandEnvVar expands a token written as ${VAR} or $VAR.
func expandEnvVar(s string) string {
	switch {
	case strings.HasPrefix(s, "${") && strings.HasSuffix(s, "}"):
		return os.Getenv(s[2 : len(s)-1])
	case strings.HasPrefix(s, "$") && !strings.HasPrefix(s, "${"):
		return os.Getenv(s[1:])
	}
	return s
}
