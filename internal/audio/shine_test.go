package audio

import (
	"bytes"
	"math"
	"strconv"
	"testing"

	"github.com/hajimehoshi/go-mp3"
)

func sineSamples(n, sampleRate int, freq float64) []int16 {
	samples := make([]int16, n)
	for i := range samples {
		samples[i] = int16(8000 * math.Sin(2*math.Pi*freq*float64(i)/float64(sampleRate)))
	}
	return samples
}

func TestNewShineEncoder_Validation(t *testing.T) {
	tests := []struct {
		name       string
		channels   int
		sampleRate int
		bitrate    int
		wantErr    bool
	}{
		{"mono 24k", 1, 24000, 128, false},
		{"mono 44.1k", 1, 44100, 128, false},
		{"stereo", 2, 24000, 128, true},
		{"bad bitrate", 1, 24000, 320, true},
		{"bad rate", 1, 23000, 128, true},
		{"mpeg-2.5 8k", 1, 8000, 128, true},
		{"mpeg-2.5 11.025k", 1, 11025, 128, true},
		{"mpeg-2.5 12k", 1, 12000, 128, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			enc, err := NewShineEncoder(tt.channels, tt.sampleRate, tt.bitrate)
			if tt.wantErr {
				if err == nil {
					t.Error("Expected error")
				}
				return
			}
			if err != nil || enc == nil {
				t.Fatalf("NewShineEncoder failed: %v", err)
			}
		})
	}
}

func TestShineEncoder_BuffersPartialBlocks(t *testing.T) {
	enc, err := NewShineEncoder(1, 44100, 128)
	if err != nil {
		t.Fatalf("NewShineEncoder failed: %v", err)
	}

	out, err := enc.EncodeBuffer(make([]int16, 100))
	if err != nil {
		t.Fatalf("EncodeBuffer failed: %v", err)
	}
	if len(out) != 0 {
		t.Errorf("Expected no output for a partial block, got %d bytes", len(out))
	}

	shineEnc := enc.(*ShineEncoder)
	if len(shineEnc.pending) != 100 {
		t.Errorf("Expected 100 pending samples, got %d", len(shineEnc.pending))
	}

	if _, err := enc.Flush(); err != nil {
		t.Fatalf("Flush failed: %v", err)
	}
	if len(shineEnc.pending) != 0 {
		t.Errorf("Expected flush to drain pending samples, got %d", len(shineEnc.pending))
	}

	trailer, err := enc.Flush()
	if err != nil || len(trailer) != 0 {
		t.Errorf("Expected empty second flush, got %d bytes, err %v", len(trailer), err)
	}
}

func TestShineEncoder_ProducesDecodableMP3(t *testing.T) {
	for _, sampleRate := range []int{16000, 22050, 24000, 32000, 44100, 48000} {
		t.Run(strconv.Itoa(sampleRate), func(t *testing.T) {
			if !MP3SampleRateSupported(sampleRate) {
				t.Fatalf("Expected %d Hz to be supported", sampleRate)
			}
			samples := sineSamples(sampleRate/2, sampleRate, 440)

			out, err := BuildMp3Container(SamplesToBytes(samples), sampleRate, NewShineEncoder)
			if err != nil {
				t.Fatalf("BuildMp3Container failed: %v", err)
			}
			if len(out) == 0 {
				t.Fatal("Expected MP3 output")
			}

			dec, err := mp3.NewDecoder(bytes.NewReader(out))
			if err != nil {
				t.Fatalf("Failed to decode produced MP3: %v", err)
			}
			if dec.SampleRate() != sampleRate {
				t.Errorf("Expected decoded sample rate %d, got %d", sampleRate, dec.SampleRate())
			}
			if dec.Length() <= 0 {
				t.Errorf("Expected positive decoded length, got %d", dec.Length())
			}
		})
	}
}

func TestBuildMp3Container_RejectsUnsupportedRate(t *testing.T) {
	for _, sampleRate := range []int{8000, 11025, 12000} {
		if MP3SampleRateSupported(sampleRate) {
			t.Errorf("Expected %d Hz to be unsupported", sampleRate)
		}
		out, err := BuildMp3Container(make([]byte, BlockSize*2), sampleRate, NewShineEncoder)
		if err == nil || out != nil {
			t.Errorf("%d Hz: expected error and no output, got %d bytes, err %v", sampleRate, len(out), err)
		}
	}
}
