package audio

import (
	"bytes"
	"fmt"

	shine "github.com/braheezy/shine-mp3/pkg/mp3"
)

// shineBitrateKbps is the only bitrate shine-mp3 produces
const shineBitrateKbps = 128

// MPEG-1 and MPEG-2 layer III sample rates. shine writes broken frame
// headers for the MPEG-2.5 rates (8000, 11025, 12000).
var shineSampleRates = map[int]bool{
	48000: true, 44100: true, 32000: true,
	24000: true, 22050: true, 16000: true,
}

// MP3SampleRateSupported reports whether NewShineEncoder accepts sampleRate
func MP3SampleRateSupported(sampleRate int) bool {
	return shineSampleRates[sampleRate]
}

// ShineEncoder adapts the pure-Go shine-mp3 encoder to FrameEncoder.
// Samples are buffered until a whole block is available so shine never sees
// a partial granule; Flush zero-pads the remainder to one final block.
type ShineEncoder struct {
	encoder *shine.Encoder
	pending []int16
}

// NewShineEncoder is an EncoderFactory backed by shine-mp3
func NewShineEncoder(channels, sampleRate, bitrateKbps int) (FrameEncoder, error) {
	if channels != Channels {
		return nil, fmt.Errorf("shine encoder supports mono input only, got %d channels", channels)
	}
	if bitrateKbps != shineBitrateKbps {
		return nil, fmt.Errorf("shine encoder supports %d kbps only, got %d", shineBitrateKbps, bitrateKbps)
	}
	if !MP3SampleRateSupported(sampleRate) {
		return nil, fmt.Errorf("sample rate %d Hz is not supported by the MP3 encoder", sampleRate)
	}

	// shine-mp3 mono output is unreliable; encode dual-mono stereo instead
	return &ShineEncoder{
		encoder: shine.NewEncoder(sampleRate, 2),
		pending: make([]int16, 0, BlockSize),
	}, nil
}

// EncodeBuffer implements FrameEncoder
func (e *ShineEncoder) EncodeBuffer(samples []int16) ([]byte, error) {
	e.pending = append(e.pending, samples...)

	whole := len(e.pending) / BlockSize * BlockSize
	if whole == 0 {
		return nil, nil
	}

	frames, err := e.encode(e.pending[:whole])
	if err != nil {
		return nil, err
	}
	e.pending = append(e.pending[:0], e.pending[whole:]...)
	return frames, nil
}

// Flush implements FrameEncoder
func (e *ShineEncoder) Flush() ([]byte, error) {
	if len(e.pending) == 0 {
		return nil, nil
	}

	block := make([]int16, BlockSize)
	copy(block, e.pending)
	e.pending = e.pending[:0]
	return e.encode(block)
}

func (e *ShineEncoder) encode(mono []int16) ([]byte, error) {
	stereo := make([]int16, len(mono)*2)
	for i, s := range mono {
		stereo[2*i] = s
		stereo[2*i+1] = s
	}

	var buf bytes.Buffer
	if err := e.encoder.Write(&buf, stereo); err != nil {
		return nil, fmt.Errorf("shine encode failed: %w", err)
	}
	return buf.Bytes(), nil
}
