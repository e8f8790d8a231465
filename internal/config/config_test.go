package config

import (
	"os"
	"testing"
	"time"
)

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "test-gemini-key")

	cfg, err := LoadFromEnv()
	if err != nil {
		t.Fatalf("LoadFromEnv() failed: %v", err)
	}

	if cfg.GeminiAPIKey != "test-gemini-key" {
		t.Errorf("Expected GeminiAPIKey 'test-gemini-key', got '%s'", cfg.GeminiAPIKey)
	}
}

func TestLoad_MissingRequired(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	os.Unsetenv("GEMINI_API_KEY")

	if _, err := LoadFromEnv(); err == nil {
		t.Error("Expected error when GEMINI_API_KEY is missing")
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "test-gemini-key")

	cfg, err := LoadFromEnv()
	if err != nil {
		t.Fatalf("LoadFromEnv() failed: %v", err)
	}

	if cfg.Port != "8080" {
		t.Errorf("Expected default Port '8080', got '%s'", cfg.Port)
	}
	if cfg.GeminiModel != "gemini-2.5-flash-preview-tts" {
		t.Errorf("Expected default GeminiModel, got '%s'", cfg.GeminiModel)
	}
	if cfg.TTSTimeout != 60*time.Second {
		t.Errorf("Expected default TTSTimeout 60s, got %v", cfg.TTSTimeout)
	}
	if cfg.SampleRate != 24000 {
		t.Errorf("Expected default SampleRate 24000, got %d", cfg.SampleRate)
	}
	if cfg.DefaultVoice != "Kore" {
		t.Errorf("Expected default DefaultVoice 'Kore', got '%s'", cfg.DefaultVoice)
	}
	if cfg.DefaultFormat != "wav" {
		t.Errorf("Expected default DefaultFormat 'wav', got '%s'", cfg.DefaultFormat)
	}
	if !cfg.MP3Enabled {
		t.Error("Expected default MP3Enabled true, got false")
	}
	if cfg.HistorySize != 50 {
		t.Errorf("Expected default HistorySize 50, got %d", cfg.HistorySize)
	}
}

func TestConfig_ResilienceDefaults(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "test-gemini-key")

	cfg, err := LoadFromEnv()
	if err != nil {
		t.Fatalf("LoadFromEnv() failed: %v", err)
	}

	if cfg.CircuitBreakerMaxFailures != 5 {
		t.Errorf("Expected default CircuitBreakerMaxFailures 5, got %d", cfg.CircuitBreakerMaxFailures)
	}
	if cfg.CircuitBreakerReset() != 30*time.Second {
		t.Errorf("Expected default reset 30s, got %v", cfg.CircuitBreakerReset())
	}
	if cfg.RetryMaxAttempts != 3 {
		t.Errorf("Expected default RetryMaxAttempts 3, got %d", cfg.RetryMaxAttempts)
	}
	if cfg.RetryBackoff() != 500*time.Millisecond {
		t.Errorf("Expected default backoff 500ms, got %v", cfg.RetryBackoff())
	}
}

func TestConfig_ObservabilityDefaults(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "test-gemini-key")
	t.Setenv("LOG_LEVEL", "")
	os.Unsetenv("LOG_LEVEL")

	cfg, err := LoadFromEnv()
	if err != nil {
		t.Fatalf("LoadFromEnv() failed: %v", err)
	}

	if cfg.LogLevel != "info" {
		t.Errorf("Expected default LogLevel 'info', got '%s'", cfg.LogLevel)
	}
	if cfg.LogPretty {
		t.Error("Expected default LogPretty false, got true")
	}
	if !cfg.MetricsEnabled {
		t.Error("Expected default MetricsEnabled true, got false")
	}
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			GeminiAPIKey:  "key",
			SampleRate:    24000,
			MaxTextLength: 100,
			HistorySize:   10,
			DefaultFormat: "wav",
			DefaultVoice:  "Puck",
			MP3Enabled:    true,
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid", func(c *Config) {}, false},
		{"mp3 upper", func(c *Config) { c.DefaultFormat = "MP3" }, false},
		{"mp3 default disabled", func(c *Config) { c.DefaultFormat = "mp3"; c.MP3Enabled = false }, true},
		{"mp3 at 24k", func(c *Config) { c.SampleRate = 24000 }, false},
		{"mp3 at mpeg-2.5 rate", func(c *Config) { c.SampleRate = 8000 }, true},
		{"mp3 at 11.025k", func(c *Config) { c.SampleRate = 11025 }, true},
		{"odd rate without mp3", func(c *Config) { c.SampleRate = 8000; c.MP3Enabled = false }, false},
		{"blank key", func(c *Config) { c.GeminiAPIKey = "  " }, true},
		{"zero rate", func(c *Config) { c.SampleRate = 0 }, true},
		{"bad format", func(c *Config) { c.DefaultFormat = "ogg" }, true},
		{"bad voice", func(c *Config) { c.DefaultVoice = "Robot" }, true},
		{"zero history", func(c *Config) { c.HistorySize = 0 }, true},
		{"zero text", func(c *Config) { c.MaxTextLength = 0 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
