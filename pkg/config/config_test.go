package config

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
	_ "time/tzdata"
)

func validConfig() *Config {
	return &Config{
		LogSources: []string{"/var/log/*.log"},
		TimestampFormat: TimestampConfig{
			Pattern: `^\[(\d{4})\]`,
			Layout:  "2006",
		},
	}
}

func TestLoad_ValidConfig(t *testing.T) {
	content := `
log_sources:
  - /var/log/*.log
timestamp_format:
  pattern: '^\[(\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2})\]'
  layout: "2006-01-02 15:04:05"
  location: "America/Los_Angeles"
layouts:
  app: "Jan _2 15:04:05.000"
  web: RFC1123Z
detect:
  sample_size: 250
`
	path := writeTempFile(t, "config.yaml", content)
	cfg, err := Load(context.Background(), path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if len(cfg.LogSources) != 1 {
		t.Errorf("LogSources = %d, want 1", len(cfg.LogSources))
	}
	if cfg.TimestampFormat.CompiledPattern() == nil {
		t.Error("CompiledPattern() is nil")
	}
	if got := cfg.TimestampFormat.LoadedLocation().String(); got != "America/Los_Angeles" {
		t.Errorf("LoadedLocation() = %s, want America/Los_Angeles", got)
	}
	if cfg.Detect.SampleSize != 250 {
		t.Errorf("SampleSize = %d, want 250", cfg.Detect.SampleSize)
	}
	if cfg.Layouts["web"] != time.RFC1123Z {
		t.Errorf("Layouts[web] = %q, want expanded RFC1123Z", cfg.Layouts["web"])
	}
}

func TestLoad_Defaults(t *testing.T) {
	path := writeTempFile(t, "config.yaml", "log_sources: [app.log]\n")
	cfg, err := Load(context.Background(), path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.TimestampFormat.Layout != DefaultTimestampLayout {
		t.Errorf("Layout = %q, want default", cfg.TimestampFormat.Layout)
	}
	if cfg.TimestampFormat.LoadedLocation() != time.UTC {
		t.Errorf("LoadedLocation() = %v, want UTC", cfg.TimestampFormat.LoadedLocation())
	}
	if cfg.Detect.SampleSize != DefaultSampleSize {
		t.Errorf("SampleSize = %d, want %d", cfg.Detect.SampleSize, DefaultSampleSize)
	}
}

func TestLoad_FileNotFound(t *testing.T) {
	_, err := Load(context.Background(), "/nonexistent/config.yaml")
	if err == nil {
		t.Error("Load() expected error for missing file")
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	content := `invalid: yaml: content: [`
	path := writeTempFile(t, "invalid.yaml", content)
	_, err := Load(context.Background(), path)
	if err == nil {
		t.Error("Load() expected error for invalid YAML")
	}
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv(EnvTimestampLayout, "RFC3339")
	t.Setenv(EnvLocation, "Europe/Berlin")
	t.Setenv(EnvSampleSize, "42")

	path := writeTempFile(t, "config.yaml", "log_sources: [app.log]\n")
	cfg, err := Load(context.Background(), path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.TimestampFormat.Layout != time.RFC3339 {
		t.Errorf("Layout = %q, want %q", cfg.TimestampFormat.Layout, time.RFC3339)
	}
	if got := cfg.TimestampFormat.LoadedLocation().String(); got != "Europe/Berlin" {
		t.Errorf("LoadedLocation() = %s, want Europe/Berlin", got)
	}
	if cfg.Detect.SampleSize != 42 {
		t.Errorf("SampleSize = %d, want 42", cfg.Detect.SampleSize)
	}
}

func TestLoad_InvalidSampleSizeEnv(t *testing.T) {
	t.Setenv(EnvSampleSize, "lots")

	path := writeTempFile(t, "config.yaml", "log_sources: [app.log]\n")
	_, err := Load(context.Background(), path)
	if err == nil || !strings.Contains(err.Error(), EnvSampleSize) {
		t.Errorf("Load() error = %v, want %s error", err, EnvSampleSize)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr string
	}{
		{
			name:   "valid",
			modify: func(*Config) {},
		},
		{
			name:    "no log sources",
			modify:  func(c *Config) { c.LogSources = nil },
			wantErr: "log_sources",
		},
		{
			name:    "empty pattern",
			modify:  func(c *Config) { c.TimestampFormat.Pattern = "" },
			wantErr: "pattern is required",
		},
		{
			name:    "invalid pattern",
			modify:  func(c *Config) { c.TimestampFormat.Pattern = `[invalid` },
			wantErr: "invalid pattern",
		},
		{
			name:    "pattern without capture group",
			modify:  func(c *Config) { c.TimestampFormat.Pattern = `^\d+` },
			wantErr: "capture group",
		},
		{
			name:    "empty layout",
			modify:  func(c *Config) { c.TimestampFormat.Layout = "" },
			wantErr: "layout is required",
		},
		{
			name:    "layout without fields",
			modify:  func(c *Config) { c.TimestampFormat.Layout = "hello" },
			wantErr: "no time fields",
		},
		{
			name:    "layout with overlong fraction",
			modify:  func(c *Config) { c.TimestampFormat.Layout = "15:04:05.0000000000" },
			wantErr: "invalid layout",
		},
		{
			name:    "unknown location",
			modify:  func(c *Config) { c.TimestampFormat.Location = "Mars/Olympus_Mons" },
			wantErr: "invalid location",
		},
		{
			name:    "bad named layout",
			modify:  func(c *Config) { c.Layouts = map[string]string{"x": "nothing here"} },
			wantErr: "layouts[x]",
		},
		{
			name:    "empty layout name",
			modify:  func(c *Config) { c.Layouts = map[string]string{" ": "2006"} },
			wantErr: "name must not be empty",
		},
		{
			name:    "negative sample size",
			modify:  func(c *Config) { c.Detect.SampleSize = -1 },
			wantErr: "sample_size",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.modify(cfg)
			err := Validate(cfg)
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() error = %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestValidate_NamedTimestampLayout(t *testing.T) {
	cfg := validConfig()
	cfg.TimestampFormat.Layout = "Kitchen"
	if err := Validate(cfg); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if cfg.TimestampFormat.Layout != time.Kitchen {
		t.Errorf("Layout = %q, want %q", cfg.TimestampFormat.Layout, time.Kitchen)
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg == nil {
		t.Fatal("DefaultConfig() returned nil")
	}
	if cfg.TimestampFormat.Pattern == "" {
		t.Error("DefaultConfig() has empty timestamp pattern")
	}
	if cfg.TimestampFormat.Layout == "" {
		t.Error("DefaultConfig() has empty timestamp layout")
	}
}

func TestConfig_Layout(t *testing.T) {
	cfg := validConfig()
	cfg.Layouts = map[string]string{"app": "Jan _2 15:04:05.000", "RFC3339": "2006"}

	tests := []struct {
		name string
		want string
	}{
		{"app", "Jan _2 15:04:05.000"},
		{"RFC3339", "2006"}, // configured names win over standard ones
		{"ANSIC", time.ANSIC},
		{"15:04", "15:04"},
	}
	for _, tt := range tests {
		if got := cfg.Layout(tt.name); got != tt.want {
			t.Errorf("Layout(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestValidate_Webhooks(t *testing.T) {
	tests := []struct {
		name    string
		webhook WebhookConfig
		wantErr bool
	}{
		{"https", WebhookConfig{Name: "test", URL: "https://example.com/webhook", Trigger: WebhookTriggerOnFailures}, false},
		{"http", WebhookConfig{URL: "http://localhost:8080/webhook"}, false},
		{"always", WebhookConfig{URL: "https://example.com", Trigger: WebhookTriggerAlways}, false},
		{"never", WebhookConfig{URL: "https://example.com", Trigger: WebhookTriggerNever}, false},
		{"missing url", WebhookConfig{Name: "no-url"}, true},
		{"ftp scheme", WebhookConfig{URL: "ftp://example.com/webhook"}, true},
		{"no host", WebhookConfig{URL: "https:///path"}, true},
		{"invalid trigger", WebhookConfig{URL: "https://example.com", Trigger: "on_issues"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			cfg.Webhooks = []WebhookConfig{tt.webhook}
			err := Validate(cfg)
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidate_WebhookDefaults(t *testing.T) {
	cfg := validConfig()
	cfg.Webhooks = []WebhookConfig{{URL: "https://example.com/webhook"}}
	if err := Validate(cfg); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if cfg.Webhooks[0].Trigger != WebhookTriggerOnFailures {
		t.Errorf("Default trigger = %v, want %v", cfg.Webhooks[0].Trigger, WebhookTriggerOnFailures)
	}
	if cfg.Webhooks[0].Timeout != DefaultWebhookTimeout {
		t.Errorf("Default timeout = %v, want %v", cfg.Webhooks[0].Timeout, DefaultWebhookTimeout)
	}
}

func TestExpandEnvVar(t *testing.T) {
	t.Setenv("TEST_WEBHOOK_TOKEN", "secret-value")

	tests := []struct {
		input string
		want  string
	}{
		{"${TEST_WEBHOOK_TOKEN}", "secret-value"},
		{"$TEST_WEBHOOK_TOKEN", "secret-value"},
		{"plain-value", "plain-value"},
		{"", ""},
		{"${NONEXISTENT_VAR}", ""},
	}

	for _, tt := range tests {
		got := expandEnvVar(tt.input)
		if got != tt.want {
			t.Errorf("expandEnvVar(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestLoad_WithWebhooks(t *testing.T) {
	t.Setenv("HOOK_TOKEN", "abc123")
	content := `
log_sources:
  - /var/log/*.log
webhooks:
  - name: test-webhook
    url: "https://example.com/webhook"
    token: ${HOOK_TOKEN}
    trigger: on_failures
    timeout: 30s
  - url: "https://backup.example.com/webhook"
    trigger: always
`
	path := writeTempFile(t, "config-with-webhooks.yaml", content)
	cfg, err := Load(context.Background(), path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if len(cfg.Webhooks) != 2 {
		t.Fatalf("Webhooks = %d, want 2", len(cfg.Webhooks))
	}
	if cfg.Webhooks[0].Token != "abc123" {
		t.Errorf("Webhook[0].Token = %q, want expanded", cfg.Webhooks[0].Token)
	}
	if cfg.Webhooks[0].Timeout != 30*time.Second {
		t.Errorf("Webhook[0].Timeout = %v, want 30s", cfg.Webhooks[0].Timeout)
	}
	if cfg.Webhooks[1].Trigger != WebhookTriggerAlways {
		t.Errorf("Webhook[1].Trigger = %v, want %v", cfg.Webhooks[1].Trigger, WebhookTriggerAlways)
	}
}

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write temp file: %v", err)
	}
	return path
}
