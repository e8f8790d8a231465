package audio

import (
	"bytes"
	"errors"
	"testing"

	"github.com/rs/zerolog"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"wav", FormatWAV, false},
		{"MP3", FormatMP3, false},
		{" Wav ", FormatWAV, false},
		{"ogg", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if tt.wantErr {
			var formatErr *UnsupportedFormatError
			if !errors.As(err, &formatErr) {
				t.Errorf("ParseFormat(%q): expected UnsupportedFormatError, got %v", tt.in, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseFormat(%q) failed: %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ParseFormat(%q): expected %s, got %s", tt.in, tt.want, got)
		}
	}
}

func TestFormatMIMEType(t *testing.T) {
	if FormatWAV.MIMEType() != "audio/wav" {
		t.Errorf("Expected audio/wav, got %s", FormatWAV.MIMEType())
	}
	if FormatMP3.MIMEType() != "audio/mp3" {
		t.Errorf("Expected audio/mp3, got %s", FormatMP3.MIMEType())
	}
	if FormatMP3.Extension() != "mp3" {
		t.Errorf("Expected mp3 extension, got %s", FormatMP3.Extension())
	}
}

func TestBuildContainer_Routing(t *testing.T) {
	pcm := []byte{0x00, 0x01, 0x02, 0x03}

	wav, err := BuildContainer(pcm, 24000, FormatWAV, nil)
	if err != nil {
		t.Fatalf("BuildContainer(wav) failed: %v", err)
	}
	if !bytes.Equal(wav, BuildWavContainer(pcm, 24000)) {
		t.Error("Expected wav route to match BuildWavContainer")
	}

	enc := newRecordingEncoder()
	enc.flushOut = []byte{0x42}
	mp3, err := BuildContainer(pcm, 24000, FormatMP3, factoryFor(enc, nil))
	if err != nil {
		t.Fatalf("BuildContainer(mp3) failed: %v", err)
	}
	if !bytes.Equal(mp3, []byte{0, 2, 0x42}) {
		t.Errorf("Unexpected mp3 route output %v", mp3)
	}

	_, err = BuildContainer(pcm, 24000, Format("flac"), nil)
	if KindOf(err) != KindUnsupportedFormat {
		t.Errorf("Expected unsupported format kind, got %v", err)
	}
}

func TestBuilder_Build(t *testing.T) {
	enc := newRecordingEncoder()
	builder := NewBuilder(factoryFor(enc, nil), zerolog.Nop())

	if !builder.MP3Available() {
		t.Error("Expected MP3 to be available")
	}

	out, err := builder.Build([]byte{1, 2, 3}, 24000, FormatMP3)
	if err != nil {
		t.Fatalf("Build(mp3) failed: %v", err)
	}
	if !bytes.Equal(out, []byte{0, 2}) {
		t.Errorf("Expected single padded frame, got %v", out)
	}

	wav, err := builder.Build([]byte{1, 2, 3}, 24000, FormatWAV)
	if err != nil {
		t.Fatalf("Build(wav) failed: %v", err)
	}
	if len(wav) != WavHeaderSize+3 {
		t.Errorf("Expected wav length %d, got %d", WavHeaderSize+3, len(wav))
	}
}

func TestBuilder_LogsParityPadding(t *testing.T) {
	var logs bytes.Buffer
	builder := NewBuilder(factoryFor(newRecordingEncoder(), nil), zerolog.New(&logs))

	if _, err := builder.Build([]byte{1, 2, 3, 4}, 24000, FormatMP3); err != nil {
		t.Fatalf("Build(mp3) failed: %v", err)
	}
	if logs.Len() != 0 {
		t.Errorf("Expected no warning for even-length PCM, got %s", logs.String())
	}

	if _, err := builder.Build([]byte{1, 2, 3}, 24000, FormatMP3); err != nil {
		t.Fatalf("Build(mp3) failed: %v", err)
	}
	if !bytes.Contains(logs.Bytes(), []byte(`"padded_bytes":4`)) {
		t.Errorf("Expected padding warning, got %s", logs.String())
	}

	logs.Reset()
	if _, err := builder.Build([]byte{1, 2, 3}, 24000, FormatWAV); err != nil {
		t.Fatalf("Build(wav) failed: %v", err)
	}
	if logs.Len() != 0 {
		t.Errorf("Expected no warning for wav, got %s", logs.String())
	}

	if _, err := builder.Build([]byte{1, 2}, 24000, Format("flac")); KindOf(err) != KindUnsupportedFormat {
		t.Errorf("Expected unsupported format kind, got %v", err)
	}
}

func TestBuilder_NoMP3Capability(t *testing.T) {
	builder := NewBuilder(nil, zerolog.Nop())

	if builder.MP3Available() {
		t.Error("Expected MP3 to be unavailable")
	}
	if _, err := builder.Build([]byte{1, 2}, 24000, FormatMP3); KindOf(err) != KindCapabilityUnavailable {
		t.Errorf("Expected capability error, got %v", err)
	}
	if _, err := builder.Build([]byte{1, 2}, 24000, FormatWAV); err != nil {
		t.Errorf("Expected wav to build without MP3 capability, got %v", err)
	}
}

func TestErrorKindString(t *testing.T) {
	tests := map[ErrorKind]string{
		KindDecode:                "decode",
		KindCapabilityUnavailable: "capability_unavailable",
		KindUnsupportedFormat:     "unsupported_format",
		KindUnknown:               "unknown",
	}
	for kind, want := range tests {
		if kind.String() != want {
			t.Errorf("Expected %s, got %s", want, kind.String())
		}
	}

	if KindOf(errors.New("other")) != KindUnknown {
		t.Error("Expected plain errors to be unknown kind")
	}
	if KindOf(nil) != KindUnknown {
		t.Error("Expected nil to be unknown kind")
	}
}
