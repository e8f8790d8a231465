package tts

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/lexiqai/speech-gateway/internal/config"
	"github.com/lexiqai/speech-gateway/internal/observability"
	"github.com/lexiqai/speech-gateway/internal/resilience"
)

const maxErrorBody = 1024

// GeminiClient implements Client using the Gemini generateContent API with
// the AUDIO response modality
type GeminiClient struct {
	apiKey         string
	baseURL        string
	model          string
	sampleRate     int
	httpClient     *http.Client
	retry          *resilience.RetryConfig
	circuitBreaker *resilience.CircuitBreaker
	logger         zerolog.Logger
}

// geminiRequest is the JSON body sent to generateContent
type geminiRequest struct {
	Contents         []geminiContent        `json:"contents"`
	GenerationConfig geminiGenerationConfig `json:"generationConfig"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text       string            `json:"text,omitempty"`
	InlineData *geminiInlineData `json:"inlineData,omitempty"`
}

type geminiInlineData struct {
	MIMEType string `json:"mimeType"`
	Data     string `json:"data"`
}

type geminiGenerationConfig struct {
	ResponseModalities []string           `json:"responseModalities"`
	SpeechConfig       geminiSpeechConfig `json:"speechConfig"`
}

type geminiSpeechConfig struct {
	VoiceConfig struct {
		PrebuiltVoiceConfig struct {
			VoiceName string `json:"voiceName"`
		} `json:"prebuiltVoiceConfig"`
	} `json:"voiceConfig"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
}

// NewGeminiClient creates a new Gemini TTS client
func NewGeminiClient(cfg *config.Config, logger zerolog.Logger) *GeminiClient {
	circuitBreaker := resilience.NewCircuitBreaker(
		"gemini",
		cfg.CircuitBreakerMaxFailures,
		cfg.CircuitBreakerReset(),
	)
	circuitBreaker.OnStateChange(func(name string, from, to resilience.CircuitState) {
		observability.UpdateCircuitBreakerState(name, int(to))
		logger.Warn().
			Str("breaker", name).
			Str("from", from.String()).
			Str("to", to.String()).
			Msg("Circuit breaker state changed")
	})

	return &GeminiClient{
		apiKey:     cfg.GeminiAPIKey,
		baseURL:    strings.TrimRight(cfg.GeminiBaseURL, "/"),
		model:      cfg.GeminiModel,
		sampleRate: cfg.SampleRate,
		httpClient: &http.Client{
			Timeout: cfg.TTSTimeout,
		},
		retry: &resilience.RetryConfig{
			MaxAttempts:       cfg.RetryMaxAttempts,
			InitialBackoff:    cfg.RetryBackoff(),
			MaxBackoff:        resilience.DefaultRetryConfig().MaxBackoff,
			BackoffMultiplier: 2.0,
		},
		circuitBreaker: circuitBreaker,
		logger:         logger.With().Str("component", "gemini_tts").Logger(),
	}
}

// Synthesize requests speech for req and returns the base64 PCM payload
func (c *GeminiClient) Synthesize(ctx context.Context, req SynthesisRequest) (*SynthesisResult, error) {
	body, err := json.Marshal(c.buildRequest(req))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal TTS request: %w", err)
	}

	var result *SynthesisResult
	attempt := 0
	err = resilience.Retry(ctx, func(ctx context.Context) error {
		attempt++
		return c.circuitBreaker.Call(func() error {
			res, err := c.doRequest(ctx, body)
			if err != nil {
				c.logger.Debug().Err(err).Int("attempt", attempt).Msg("Gemini TTS attempt failed")
				return err
			}
			result = res
			return nil
		}, countsAgainstProvider)
	}, c.retry, isRetryable)
	if err != nil {
		return nil, err
	}

	return result, nil
}

// HealthCheck reports unhealthy while the circuit breaker is open. It does
// not call the API to avoid spending quota.
func (c *GeminiClient) HealthCheck(ctx context.Context) (bool, error) {
	state, requests, failures, failureRate := c.circuitBreaker.GetStats()
	if state == resilience.StateOpen {
		return false, fmt.Errorf("%w: %d of %d provider calls failed (%.0f%%)",
			resilience.ErrCircuitOpen, failures, requests, failureRate)
	}
	return true, nil
}

func (c *GeminiClient) buildRequest(req SynthesisRequest) geminiRequest {
	var speech geminiSpeechConfig
	speech.VoiceConfig.PrebuiltVoiceConfig.VoiceName = string(req.Voice)

	return geminiRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: req.Text}}}},
		GenerationConfig: geminiGenerationConfig{
			ResponseModalities: []string{"AUDIO"},
			SpeechConfig:       speech,
		},
	}
}

func (c *GeminiClient) doRequest(ctx context.Context, body []byte) (*SynthesisResult, error) {
	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent", c.baseURL, c.model)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create TTS request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("TTS API request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &APIError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(respBody))}
	}

	var decoded geminiResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("failed to decode TTS response: %w", err)
	}

	if len(decoded.Candidates) == 0 || len(decoded.Candidates[0].Content.Parts) == 0 {
		return nil, ErrNoAudio
	}
	inline := decoded.Candidates[0].Content.Parts[0].InlineData
	if inline == nil || inline.Data == "" {
		return nil, ErrNoAudio
	}

	return &SynthesisResult{
		AudioBase64: inline.Data,
		MIMEType:    inline.MIMEType,
		SampleRate:  SampleRateFromMIME(inline.MIMEType, c.sampleRate),
		Model:       c.model,
	}, nil
}

// SampleRateFromMIME extracts the rate parameter of a PCM MIME type such as
// "audio/L16;codec=pcm;rate=24000", returning fallback if absent or invalid
func SampleRateFromMIME(mimeType string, fallback int) int {
	_, params, err := mime.ParseMediaType(mimeType)
	if err != nil {
		return fallback
	}
	rate, err := strconv.Atoi(params["rate"])
	if err != nil || rate <= 0 {
		return fallback
	}
	return rate
}

func isRetryable(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Temporary()
	}
	if errors.Is(err, resilience.ErrCircuitOpen) || errors.Is(err, ErrNoAudio) || errors.Is(err, context.Canceled) {
		return false
	}
	return resilience.IsRetryableNetworkError(err)
}

// countsAgainstProvider keeps caller mistakes (4xx other than 429) from
// tripping the breaker
func countsAgainstProvider(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Temporary()
	}
	return !errors.Is(err, context.Canceled)
}
