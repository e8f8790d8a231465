package tts

import (
	"context"
	"fmt"
	"strings"
)

// Voice is a prebuilt provider voice
type Voice string

const (
	VoicePuck    Voice = "Puck"
	VoiceCharon  Voice = "Charon"
	VoiceKore    Voice = "Kore"
	VoiceFenrir  Voice = "Fenrir"
	VoiceZephyr  Voice = "Zephyr"
	VoiceAoede   Voice = "Aoede"
	VoiceLeda    Voice = "Leda"
	VoiceOrpheus Voice = "Orpheus"
)

// Voices lists every supported voice in display order
var Voices = []Voice{
	VoicePuck, VoiceCharon, VoiceKore, VoiceFenrir,
	VoiceZephyr, VoiceAoede, VoiceLeda, VoiceOrpheus,
}

// ParseVoice matches a voice name case-insensitively
func ParseVoice(name string) (Voice, error) {
	for _, v := range Voices {
		if strings.EqualFold(string(v), strings.TrimSpace(name)) {
			return v, nil
		}
	}
	return "", fmt.Errorf("unknown voice %q", name)
}

// SynthesisRequest is the input to a speech provider
type SynthesisRequest struct {
	Text  string
	Voice Voice
}

// SynthesisResult holds the provider's still-encoded audio payload
type SynthesisResult struct {
	AudioBase64 string // base64 16-bit mono PCM
	MIMEType    string // as reported by the provider, e.g. audio/L16;codec=pcm;rate=24000
	SampleRate  int    // Hz
	Model       string
}

// Client defines the interface for a text-to-speech provider
type Client interface {
	// Synthesize converts text to a complete PCM payload
	Synthesize(ctx context.Context, req SynthesisRequest) (*SynthesisResult, error)

	// HealthCheck reports whether the provider can currently be called
	HealthCheck(ctx context.Context) (bool, error)
}
