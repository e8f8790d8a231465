package audio

import (
	"bytes"
	"encoding/binary"
)

// WavHeaderSize is the size of the canonical RIFF/WAVE header
const WavHeaderSize = 44

// ContainerParams describes the PCM layout written into a container header
type ContainerParams struct {
	SampleRate    int // Hz
	NumChannels   int
	BitsPerSample int // multiple of 8
}

// PCMParams returns the fixed mono 16-bit policy used for provider audio
func PCMParams(sampleRate int) ContainerParams {
	return ContainerParams{
		SampleRate:    sampleRate,
		NumChannels:   Channels,
		BitsPerSample: BitsPerSample,
	}
}

// ByteRate is SampleRate * NumChannels * BitsPerSample / 8
func (p ContainerParams) ByteRate() int {
	return p.SampleRate * p.NumChannels * p.BitsPerSample / 8
}

// BlockAlign is NumChannels * BitsPerSample / 8
func (p ContainerParams) BlockAlign() int {
	return p.NumChannels * p.BitsPerSample / 8
}

// wavHeader mirrors the on-disk layout; binary.Write encodes it field by field
type wavHeader struct {
	ChunkID       [4]byte // "RIFF"
	ChunkSize     uint32  // 36 + data length
	Format        [4]byte // "WAVE"
	Subchunk1ID   [4]byte // "fmt "
	Subchunk1Size uint32  // 16 for PCM
	AudioFormat   uint16  // 1 for PCM
	NumChannels   uint16
	SampleRate    uint32
	ByteRate      uint32
	BlockAlign    uint16
	BitsPerSample uint16
	Subchunk2ID   [4]byte // "data"
	Subchunk2Size uint32  // data length
}

// BuildWavHeader returns the 44-byte RIFF/WAVE header for pcmLength bytes of
// PCM data. Sizes beyond 32 bits are the caller's responsibility.
func BuildWavHeader(pcmLength int, params ContainerParams) []byte {
	header := wavHeader{
		ChunkID:       [4]byte{'R', 'I', 'F', 'F'},
		ChunkSize:     uint32(36 + pcmLength),
		Format:        [4]byte{'W', 'A', 'V', 'E'},
		Subchunk1ID:   [4]byte{'f', 'm', 't', ' '},
		Subchunk1Size: 16,
		AudioFormat:   1,
		NumChannels:   uint16(params.NumChannels),
		SampleRate:    uint32(params.SampleRate),
		ByteRate:      uint32(params.ByteRate()),
		BlockAlign:    uint16(params.BlockAlign()),
		BitsPerSample: uint16(params.BitsPerSample),
		Subchunk2ID:   [4]byte{'d', 'a', 't', 'a'},
		Subchunk2Size: uint32(pcmLength),
	}

	buf := bytes.NewBuffer(make([]byte, 0, WavHeaderSize))
	// Writing fixed-size fields into a bytes.Buffer cannot fail
	_ = binary.Write(buf, binary.LittleEndian, header)
	return buf.Bytes()
}

// BuildWavContainer prefixes pcm with a mono 16-bit header. The result has
// length WavHeaderSize + len(pcm) and does not alias pcm.
func BuildWavContainer(pcm []byte, sampleRate int) []byte {
	out := make([]byte, 0, WavHeaderSize+len(pcm))
	out = append(out, BuildWavHeader(len(pcm), PCMParams(sampleRate))...)
	return append(out, pcm...)
}

// WavDuration returns the playback length in milliseconds of pcm at the given params
func WavDuration(pcmLength int, params ContainerParams) int64 {
	rate := params.ByteRate()
	if rate <= 0 {
		return 0
	}
	return int64(pcmLength) * 1000 / int64(rate)
}
