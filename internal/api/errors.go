package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lexiqai/speech-gateway/internal/audio"
	"github.com/lexiqai/speech-gateway/internal/resilience"
	"github.com/lexiqai/speech-gateway/internal/speech"
	"github.com/lexiqai/speech-gateway/internal/tts"
)

// ErrorBody is the JSON error envelope
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

type errorResponse struct {
	Error ErrorBody `json:"error"`
}

// classify maps a service error to an HTTP status and client-safe body
func classify(err error) (int, ErrorBody) {
	var validationErr *speech.ValidationError
	var apiErr *tts.APIError

	switch {
	case errors.As(err, &validationErr):
		return http.StatusBadRequest, ErrorBody{Code: "invalid_request", Message: validationErr.Error(), Field: validationErr.Field}
	case audio.KindOf(err) == audio.KindUnsupportedFormat:
		return http.StatusBadRequest, ErrorBody{Code: audio.KindUnsupportedFormat.String(), Message: err.Error(), Field: "format"}
	case audio.KindOf(err) == audio.KindCapabilityUnavailable:
		return http.StatusServiceUnavailable, ErrorBody{Code: audio.KindCapabilityUnavailable.String(), Message: err.Error()}
	case audio.KindOf(err) == audio.KindDecode:
		return http.StatusBadGateway, ErrorBody{Code: audio.KindDecode.String(), Message: "speech provider returned an undecodable audio payload"}
	case errors.Is(err, resilience.ErrCircuitOpen):
		return http.StatusServiceUnavailable, ErrorBody{Code: "provider_unavailable", Message: "speech provider is temporarily unavailable"}
	case errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusTooManyRequests:
		return http.StatusTooManyRequests, ErrorBody{Code: "rate_limited", Message: apiErr.Error()}
	case errors.As(err, &apiErr):
		return http.StatusBadGateway, ErrorBody{Code: "provider_error", Message: apiErr.Error()}
	case errors.Is(err, tts.ErrNoAudio):
		return http.StatusBadGateway, ErrorBody{Code: "no_audio", Message: tts.ErrNoAudio.Error()}
	default:
		return http.StatusInternalServerError, ErrorBody{Code: "internal_error", Message: "failed to generate audio"}
	}
}

func respondError(c *gin.Context, err error) {
	status, body := classify(err)
	c.AbortWithStatusJSON(status, errorResponse{Error: body})
}

func respondNotFound(c *gin.Context, what string) {
	c.AbortWithStatusJSON(http.StatusNotFound, errorResponse{Error: ErrorBody{Code: "not_found", Message: what + " not found"}})
}
