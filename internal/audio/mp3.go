package audio

import (
	"bytes"
	"fmt"
)

const (
	// BlockSize is the number of samples handed to the frame encoder per call
	BlockSize = 1152
	// MP3BitrateKbps is the constant bitrate requested from the frame encoder
	MP3BitrateKbps = 128
)

// FrameEncoder is the MP3 bitstream capability. EncodeBuffer may return an
// empty slice when the encoder is still buffering; Flush emits whatever is left.
type FrameEncoder interface {
	EncodeBuffer(samples []int16) ([]byte, error)
	Flush() ([]byte, error)
}

// EncoderFactory constructs a FrameEncoder for the given stream layout.
// A nil factory means the MP3 capability is not available.
type EncoderFactory func(channels, sampleRate, bitrateKbps int) (FrameEncoder, error)

// SplitBlocks partitions samples into contiguous windows of size samples.
// Only the last block may be shorter. The blocks share memory with samples.
func SplitBlocks(samples []int16, size int) [][]int16 {
	if size <= 0 || len(samples) == 0 {
		return nil
	}

	blocks := make([][]int16, 0, (len(samples)+size-1)/size)
	for start := 0; start < len(samples); start += size {
		end := start + size
		if end > len(samples) {
			end = len(samples)
		}
		blocks = append(blocks, samples[start:end])
	}
	return blocks
}

// BuildMp3Container encodes mono 16-bit pcm into a sequence of MP3 frames at
// MP3BitrateKbps.
func BuildMp3Container(pcm []byte, sampleRate int, newEncoder EncoderFactory) ([]byte, error) {
	return EncodeMP3(pcm, sampleRate, MP3BitrateKbps, newEncoder)
}

// EncodeMP3 feeds pcm to a fresh frame encoder in BlockSize windows, in order,
// then flushes exactly once. Either the full frame sequence is returned or an
// error; never a partial container.
func EncodeMP3(pcm []byte, sampleRate, bitrateKbps int, newEncoder EncoderFactory) ([]byte, error) {
	if newEncoder == nil {
		return nil, &CapabilityUnavailableError{Capability: "MP3"}
	}

	encoder, err := newEncoder(Channels, sampleRate, bitrateKbps)
	if err != nil {
		return nil, fmt.Errorf("failed to create MP3 encoder: %w", err)
	}
	if encoder == nil {
		return nil, &CapabilityUnavailableError{Capability: "MP3"}
	}

	pcm, _ = NormalizeParity(pcm)
	samples := BytesToSamples(pcm)

	var frames [][]byte
	for i, block := range SplitBlocks(samples, BlockSize) {
		frame, err := encoder.EncodeBuffer(block)
		if err != nil {
			return nil, fmt.Errorf("failed to encode block %d: %w", i, err)
		}
		if len(frame) > 0 {
			frames = append(frames, frame)
		}
	}

	trailer, err := encoder.Flush()
	if err != nil {
		return nil, fmt.Errorf("failed to flush MP3 encoder: %w", err)
	}
	if len(trailer) > 0 {
		frames = append(frames, trailer)
	}

	return bytes.Join(frames, nil), nil
}
