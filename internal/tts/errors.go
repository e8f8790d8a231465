package tts

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNoAudio is returned when the provider answers without an inline audio part
var ErrNoAudio = errors.New("no audio content was generated in the response")

// APIError represents an error response from the provider with the HTTP status code preserved
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	switch e.StatusCode {
	case http.StatusBadRequest:
		return fmt.Sprintf("speech provider rejected the request: %s", e.Body)
	case http.StatusUnauthorized, http.StatusForbidden:
		return "speech provider API key is invalid or lacks access"
	case http.StatusNotFound:
		return "speech provider model not found, check GEMINI_MODEL"
	case http.StatusTooManyRequests:
		return "speech provider rate limit or quota exceeded, try again later"
	default:
		return fmt.Sprintf("speech provider returned status %d: %s", e.StatusCode, e.Body)
	}
}

// Temporary reports whether retrying the same request may succeed
func (e *APIError) Temporary() bool {
	return e.StatusCode == http.StatusTooManyRequests || e.StatusCode >= 500
}
