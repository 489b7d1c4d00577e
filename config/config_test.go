package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func validLoggingConfig() LoggingConfig {
	return LoggingConfig{Level: "info", Format: "console"}
}

func TestValidateLoggingLevel(t *testing.T) {
	tests := []struct {
		name    string
		level   string
		wantErr bool
	}{
		{name: "Valid level - trace", level: "trace", wantErr: false},
		{name: "Valid level - debug", level: "debug", wantErr: false},
		{name: "Valid level - info", level: "info", wantErr: false},
		{name: "Valid level - warn", level: "warn", wantErr: false},
		{name: "Valid level - error", level: "error", wantErr: false},
		{name: "Invalid level", level: "verbose", wantErr: true},
		{name: "Empty level", level: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{
				Logging: LoggingConfig{Level: tt.level, Format: "console"},
			}

			err := validate(cfg)
			if (err != nil) != tt.wantErr {
				t.Errorf("validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateLoggingFormat(t *testing.T) {
	for format, wantErr := range map[string]bool{"console": false, "json": false, "xml": true} {
		cfg := &Config{Logging: LoggingConfig{Level: "info", Format: format}}
		if err := validate(cfg); (err != nil) != wantErr {
			t.Errorf("validate() with format %q error = %v, wantErr %v", format, err, wantErr)
		}
	}
}

func TestValidateRetryDelay(t *testing.T) {
	cfg := &Config{
		TomTom:  TomTomConfig{RetryDelay: -time.Second},
		Logging: validLoggingConfig(),
	}
	if err := validate(cfg); err == nil {
		t.Error("validate() accepted negative retry delay")
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
tomtom:
  api_key: file-key
  limit: 10
  retry_delay: 2s
filter:
  presets:
    amsterdam: 'Municipality == "Amsterdam"'
logging:
  level: debug
  format: json
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.TomTom.APIKey != "file-key" {
		t.Errorf("api_key = %q, want file-key", cfg.TomTom.APIKey)
	}
	if cfg.TomTom.Limit != 10 {
		t.Errorf("limit = %d, want 10", cfg.TomTom.Limit)
	}
	if cfg.TomTom.RetryDelay != 2*time.Second {
		t.Errorf("retry_delay = %v, want 2s", cfg.TomTom.RetryDelay)
	}
	if cfg.TomTom.Timeout != 30*time.Second {
		t.Errorf("timeout default = %v, want 30s", cfg.TomTom.Timeout)
	}
	if cfg.Filter.Presets["amsterdam"] == "" {
		t.Error("expected amsterdam preset to be loaded")
	}
	if cfg.Logging.Format != "json" {
		t.Errorf("logging format = %q, want json", cfg.Logging.Format)
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("Load() with missing explicit path should fail")
	}
}
