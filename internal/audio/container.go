package audio

import (
	"strings"

	"github.com/rs/zerolog"
)

// Format is an output container format
type Format string

const (
	FormatWAV Format = "wav"
	FormatMP3 Format = "mp3"
)

// ParseFormat parses a case-insensitive format name
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case FormatWAV:
		return FormatWAV, nil
	case FormatMP3:
		return FormatMP3, nil
	default:
		return "", &UnsupportedFormatError{Format: s}
	}
}

// MIMEType returns the content type tag handed to downstream consumers
func (f Format) MIMEType() string {
	switch f {
	case FormatMP3:
		return "audio/mp3"
	case FormatWAV:
		return "audio/wav"
	default:
		return "application/octet-stream"
	}
}

// Extension returns the file extension (without dot) for the format
func (f Format) Extension() string {
	return string(f)
}

// BuildContainer routes pcm to the WAV or MP3 builder
func BuildContainer(pcm []byte, sampleRate int, format Format, newEncoder EncoderFactory) ([]byte, error) {
	switch format {
	case FormatWAV:
		return BuildWavContainer(pcm, sampleRate), nil
	case FormatMP3:
		return BuildMp3Container(pcm, sampleRate, newEncoder)
	default:
		return nil, &UnsupportedFormatError{Format: string(format)}
	}
}

// Builder carries the injected MP3 capability and logger for container builds
type Builder struct {
	newEncoder EncoderFactory
	logger     zerolog.Logger
}

// NewBuilder creates a Builder. newEncoder may be nil, in which case MP3
// builds fail with CapabilityUnavailableError.
func NewBuilder(newEncoder EncoderFactory, logger zerolog.Logger) *Builder {
	return &Builder{
		newEncoder: newEncoder,
		logger:     logger.With().Str("component", "container_builder").Logger(),
	}
}

// MP3Available reports whether an MP3 frame encoder was injected
func (b *Builder) MP3Available() bool {
	return b.newEncoder != nil
}

// Build produces a complete container for pcm in the requested format
func (b *Builder) Build(pcm []byte, sampleRate int, format Format) ([]byte, error) {
	if format == FormatMP3 && b.newEncoder != nil && len(pcm)%BytesPerSample != 0 {
		b.logger.Warn().
			Int("pcm_bytes", len(pcm)).
			Int("padded_bytes", len(pcm)+1).
			Msg("Odd-length PCM payload, zero-padding before MP3 encoding")
	}
	return BuildContainer(pcm, sampleRate, format, b.newEncoder)
}
