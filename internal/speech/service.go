// Package speech turns text into a finished audio container: it calls the
// speech provider, decodes the base64 PCM payload, frames it as WAV or MP3
// and keeps the result in a bounded history.
package speech

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/lexiqai/speech-gateway/internal/audio"
	"github.com/lexiqai/speech-gateway/internal/observability"
	"github.com/lexiqai/speech-gateway/internal/tts"
)

// ValidationError reports a request field the service refuses to process
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Request is a single synthesis request. Empty Voice and Format fall back to
// the service defaults.
type Request struct {
	Text          string
	Voice         string
	Format        string
	CorrelationID string
}

// Options configures a Service
type Options struct {
	DefaultVoice  tts.Voice
	DefaultFormat audio.Format
	SampleRate    int // used when the provider does not report one
	MaxTextLength int // in characters
}

// Service orchestrates provider, container builder and history
type Service struct {
	client  tts.Client
	builder *audio.Builder
	history *History
	opts    Options
	logger  zerolog.Logger
	now     func() time.Time
}

// NewService creates a new speech service
func NewService(client tts.Client, builder *audio.Builder, history *History, opts Options, logger zerolog.Logger) *Service {
	if opts.SampleRate <= 0 {
		opts.SampleRate = audio.DefaultSampleRate
	}
	if opts.DefaultFormat == "" {
		opts.DefaultFormat = audio.FormatWAV
	}
	if opts.DefaultVoice == "" {
		opts.DefaultVoice = tts.VoiceKore
	}

	return &Service{
		client:  client,
		builder: builder,
		history: history,
		opts:    opts,
		logger:  logger.With().Str("component", "speech_service").Logger(),
		now:     time.Now,
	}
}

// History exposes the clip store
func (s *Service) History() *History {
	return s.history
}

// Formats lists the container formats this instance can currently produce
func (s *Service) Formats() []audio.Format {
	if s.builder.MP3Available() {
		return []audio.Format{audio.FormatWAV, audio.FormatMP3}
	}
	return []audio.Format{audio.FormatWAV}
}

// HealthCheck reports the provider's health
func (s *Service) HealthCheck(ctx context.Context) (bool, error) {
	return s.client.HealthCheck(ctx)
}

// Generate synthesizes req and stores the finished container in the history.
// On error nothing is stored.
func (s *Service) Generate(ctx context.Context, req Request) (*Item, error) {
	text, voice, format, err := s.validate(req)
	if err != nil {
		return nil, err
	}

	logger, _ := observability.WithCorrelationID(s.logger, req.CorrelationID)
	logger = logger.With().
		Str("voice", string(voice)).
		Str("format", string(format)).
		Logger()
	metrics := observability.NewSynthesisMetrics(string(format))

	item, err := s.generate(ctx, text, voice, format, metrics, logger)
	metrics.RecordResult(err == nil)
	if err != nil {
		logger.Error().Err(err).Str("error_kind", audio.KindOf(err).String()).Msg("Speech generation failed")
		return nil, err
	}

	retained := s.history.Add(item)
	observability.SetHistoryItems(retained)

	logger.Info().
		Str("id", item.ID).
		Int("size_bytes", item.SizeBytes).
		Int64("duration_ms", item.DurationMs).
		Msg("Speech generated")
	return item, nil
}

func (s *Service) validate(req Request) (string, tts.Voice, audio.Format, error) {
	text := strings.TrimSpace(req.Text)
	if text == "" {
		return "", "", "", &ValidationError{Field: "text", Message: "must not be empty"}
	}
	if n := utf8.RuneCountInString(text); n > s.opts.MaxTextLength && s.opts.MaxTextLength > 0 {
		return "", "", "", &ValidationError{
			Field:   "text",
			Message: fmt.Sprintf("must be at most %d characters, got %d", s.opts.MaxTextLength, n),
		}
	}

	voice := s.opts.DefaultVoice
	if req.Voice != "" {
		v, err := tts.ParseVoice(req.Voice)
		if err != nil {
			return "", "", "", &ValidationError{Field: "voice", Message: err.Error()}
		}
		voice = v
	}

	format := s.opts.DefaultFormat
	if req.Format != "" {
		f, err := audio.ParseFormat(req.Format)
		if err != nil {
			return "", "", "", err
		}
		format = f
	}

	// MP3 capability is checked before the provider is called
	if format == audio.FormatMP3 && !s.builder.MP3Available() {
		return "", "", "", &audio.CapabilityUnavailableError{Capability: "MP3"}
	}

	return text, voice, format, nil
}

func (s *Service) generate(
	ctx context.Context,
	text string,
	voice tts.Voice,
	format audio.Format,
	metrics *observability.SynthesisMetrics,
	logger zerolog.Logger,
) (*Item, error) {
	metrics.RecordProviderStart()
	result, err := s.client.Synthesize(ctx, tts.SynthesisRequest{Text: text, Voice: voice})
	metrics.RecordProviderEnd()
	if err != nil {
		metrics.RecordError("provider", "tts")
		return nil, fmt.Errorf("speech provider failed: %w", err)
	}

	pcm, err := audio.DecodeBase64(result.AudioBase64)
	if err != nil {
		metrics.RecordError(audio.KindDecode.String(), "audio")
		return nil, err
	}

	sampleRate := result.SampleRate
	if sampleRate <= 0 {
		sampleRate = s.opts.SampleRate
	}

	metrics.RecordBuildStart()
	container, err := s.builder.Build(pcm, sampleRate, format)
	if err != nil {
		metrics.RecordError(audio.KindOf(err).String(), "audio")
		return nil, err
	}
	metrics.RecordBuildEnd(len(pcm), len(container))
	if format == audio.FormatMP3 && len(pcm)%audio.BytesPerSample != 0 {
		metrics.RecordParityPad()
	}

	if e := logger.Debug(); e.Enabled() {
		e.Int("pcm_bytes", len(pcm)).
			Float64("rms", audio.CalculateRMS(audio.BytesToSamples(pcm))).
			Msg("Decoded provider PCM")
	}

	return &Item{
		ID:         uuid.New().String(),
		Text:       text,
		Voice:      voice,
		Format:     format,
		MIMEType:   format.MIMEType(),
		SampleRate: sampleRate,
		SizeBytes:  len(container),
		DurationMs: audio.WavDuration(len(pcm), audio.PCMParams(sampleRate)),
		CreatedAt:  s.now().UTC(),
		Audio:      container,
	}, nil
}
