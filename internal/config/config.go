package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/lexiqai/speech-gateway/internal/audio"
)

var validVoices = []string{"Puck", "Charon", "Kore", "Fenrir", "Zephyr", "Aoede", "Leda", "Orpheus"}

// Config holds all configuration for the speech gateway service
type Config struct {
	// Server configuration
	Port    string `envconfig:"PORT" default:"8080"`
	GinMode string `envconfig:"GIN_MODE" default:"release"` // debug, release, test

	// Gemini speech provider
	GeminiAPIKey  string        `envconfig:"GEMINI_API_KEY" required:"true"`
	GeminiModel   string        `envconfig:"GEMINI_MODEL" default:"gemini-2.5-flash-preview-tts"`
	GeminiBaseURL string        `envconfig:"GEMINI_BASE_URL" default:"https://generativelanguage.googleapis.com"`
	TTSTimeout    time.Duration `envconfig:"TTS_TIMEOUT" default:"60s"`

	// Audio output
	SampleRate    int    `envconfig:"SAMPLE_RATE" default:"24000"` // PCM rate the provider emits
	DefaultVoice  string `envconfig:"DEFAULT_VOICE" default:"Kore"`
	DefaultFormat string `envconfig:"DEFAULT_FORMAT" default:"wav"` // wav or mp3
	MP3Enabled    bool   `envconfig:"MP3_ENABLED" default:"true"`

	// Request limits and history
	MaxTextLength int `envconfig:"MAX_TEXT_LENGTH" default:"5000"` // characters
	HistorySize   int `envconfig:"HISTORY_SIZE" default:"50"`

	// Resilience configuration
	CircuitBreakerMaxFailures  int `envconfig:"CIRCUIT_BREAKER_MAX_FAILURES" default:"5"`   // Failures before opening circuit
	CircuitBreakerResetTimeout int `envconfig:"CIRCUIT_BREAKER_RESET_TIMEOUT" default:"30"` // Seconds before attempting recovery
	RetryMaxAttempts           int `envconfig:"RETRY_MAX_ATTEMPTS" default:"3"`             // Maximum attempts per provider call
	RetryInitialBackoff        int `envconfig:"RETRY_INITIAL_BACKOFF" default:"500"`        // Initial backoff in milliseconds

	// Observability configuration
	LogLevel       string `envconfig:"LOG_LEVEL" default:"info"`       // Log level: debug, info, warn, error
	LogPretty      bool   `envconfig:"LOG_PRETTY" default:"false"`     // Pretty print logs (for development)
	MetricsEnabled bool   `envconfig:"METRICS_ENABLED" default:"true"` // Enable Prometheus metrics
}

// Load reads configuration from environment variables
// It first attempts to load from .env file if it exists, then from environment
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	return LoadFromEnv()
}

// LoadFromEnv loads configuration directly from environment variables
// without attempting to load .env file (useful for containerized deployments)
func LoadFromEnv() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks values envconfig cannot express as tags
func (c *Config) Validate() error {
	if strings.TrimSpace(c.GeminiAPIKey) == "" {
		return fmt.Errorf("GEMINI_API_KEY is required")
	}
	if c.SampleRate <= 0 {
		return fmt.Errorf("SAMPLE_RATE must be positive, got %d", c.SampleRate)
	}
	if c.MaxTextLength <= 0 {
		return fmt.Errorf("MAX_TEXT_LENGTH must be positive, got %d", c.MaxTextLength)
	}
	if c.HistorySize <= 0 {
		return fmt.Errorf("HISTORY_SIZE must be positive, got %d", c.HistorySize)
	}

	if c.MP3Enabled && !audio.MP3SampleRateSupported(c.SampleRate) {
		return fmt.Errorf("SAMPLE_RATE %d Hz cannot be encoded as MP3; use 16000, 22050, 24000, 32000, 44100 or 48000, or set MP3_ENABLED=false", c.SampleRate)
	}

	switch strings.ToLower(c.DefaultFormat) {
	case "wav":
	case "mp3":
		if !c.MP3Enabled {
			return fmt.Errorf("DEFAULT_FORMAT mp3 requires MP3_ENABLED")
		}
	default:
		return fmt.Errorf("DEFAULT_FORMAT must be wav or mp3, got %q", c.DefaultFormat)
	}

	for _, v := range validVoices {
		if v == c.DefaultVoice {
			return nil
		}
	}
	return fmt.Errorf("DEFAULT_VOICE %q is not a known voice", c.DefaultVoice)
}

// CircuitBreakerReset returns the reset timeout as a duration
func (c *Config) CircuitBreakerReset() time.Duration {
	return time.Duration(c.CircuitBreakerResetTimeout) * time.Second
}

// RetryBackoff returns the initial retry backoff as a duration
func (c *Config) RetryBackoff() time.Duration {
	return time.Duration(c.RetryInitialBackoff) * time.Millisecond
}
