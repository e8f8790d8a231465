package audio

import (
	"errors"
	"fmt"
)

// ErrorKind categorizes container build failures so callers can branch on
// kind instead of parsing messages
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	KindDecode
	KindCapabilityUnavailable
	KindUnsupportedFormat
)

// String returns the string representation of the error kind
func (k ErrorKind) String() string {
	switch k {
	case KindDecode:
		return "decode"
	case KindCapabilityUnavailable:
		return "capability_unavailable"
	case KindUnsupportedFormat:
		return "unsupported_format"
	default:
		return "unknown"
	}
}

// DecodeError is returned when a base64 payload cannot be decoded
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("failed to decode base64 audio payload: %v", e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// CapabilityUnavailableError is returned when the MP3 frame encoder is missing.
// It is raised before any encoding work starts.
type CapabilityUnavailableError struct {
	Capability string
}

func (e *CapabilityUnavailableError) Error() string {
	return fmt.Sprintf("%s library not loaded: reload or reinstall the encoder capability", e.Capability)
}

// UnsupportedFormatError is returned for container formats outside wav/mp3
type UnsupportedFormatError struct {
	Format string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported audio format %q (expected wav or mp3)", e.Format)
}

// KindOf reports which taxonomy member err belongs to, looking through wrapping
func KindOf(err error) ErrorKind {
	var decodeErr *DecodeError
	var capErr *CapabilityUnavailableError
	var formatErr *UnsupportedFormatError

	switch {
	case err == nil:
		return KindUnknown
	case errors.As(err, &decodeErr):
		return KindDecode
	case errors.As(err, &capErr):
		return KindCapabilityUnavailable
	case errors.As(err, &formatErr):
		return KindUnsupportedFormat
	default:
		return KindUnknown
	}
}
