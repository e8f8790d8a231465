package audio

import (
	"encoding/binary"
	"math"
)

const (
	// DefaultSampleRate is the rate the speech provider emits PCM at
	DefaultSampleRate = 24000
	// Channels is fixed: provider audio is always mono
	Channels = 1
	// BitsPerSample is fixed: provider audio is always 16-bit signed LE
	BitsPerSample = 16
	// BytesPerSample for 16-bit mono PCM
	BytesPerSample = BitsPerSample / 8
)

// NormalizeParity returns pcm unchanged when its length is even. Otherwise it
// returns a copy with one trailing zero byte so every byte belongs to a whole
// 16-bit sample. The second result reports whether padding happened.
func NormalizeParity(pcm []byte) ([]byte, bool) {
	if len(pcm)%BytesPerSample == 0 {
		return pcm, false
	}

	padded := make([]byte, len(pcm)+1)
	copy(padded, pcm)
	return padded, true
}

// BytesToSamples reinterprets even-length pcm as 16-bit signed little-endian
// samples. A trailing odd byte is ignored; callers pad with NormalizeParity first.
func BytesToSamples(pcm []byte) []int16 {
	samples := make([]int16, len(pcm)/BytesPerSample)
	for i := range samples {
		samples[i] = int16(binary.LittleEndian.Uint16(pcm[i*2:]))
	}
	return samples
}

// SamplesToBytes encodes samples as 16-bit signed little-endian PCM
func SamplesToBytes(samples []int16) []byte {
	pcm := make([]byte, len(samples)*BytesPerSample)
	for i, sample := range samples {
		binary.LittleEndian.PutUint16(pcm[i*2:], uint16(sample))
	}
	return pcm
}

// CalculateRMS calculates the root mean square (RMS) of audio samples.
// Useful for spotting silent provider output.
func CalculateRMS(samples []int16) float64 {
	if len(samples) == 0 {
		return 0.0
	}

	sum := 0.0
	for _, sample := range samples {
		sum += float64(sample) * float64(sample)
	}

	return math.Sqrt(sum / float64(len(samples)))
}
