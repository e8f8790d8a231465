package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/lexiqai/speech-gateway/internal/audio"
	"github.com/lexiqai/speech-gateway/internal/speech"
	"github.com/lexiqai/speech-gateway/internal/tts"
)

// SpeechRequest is the JSON body of POST /v1/speech
type SpeechRequest struct {
	Text   string `json:"text" binding:"required"`
	Voice  string `json:"voice"`
	Format string `json:"format"`
}

// SpeechResponse describes a generated clip
type SpeechResponse struct {
	ID         string       `json:"id"`
	Text       string       `json:"text"`
	Voice      tts.Voice    `json:"voice"`
	Format     audio.Format `json:"format"`
	MIMEType   string       `json:"mime_type"`
	SampleRate int          `json:"sample_rate"`
	SizeBytes  int          `json:"size_bytes"`
	DurationMs int64        `json:"duration_ms"`
	CreatedAt  time.Time    `json:"created_at"`
	AudioURL   string       `json:"audio_url"`
}

func toResponse(item *speech.Item) SpeechResponse {
	return SpeechResponse{
		ID:         item.ID,
		Text:       item.Text,
		Voice:      item.Voice,
		Format:     item.Format,
		MIMEType:   item.MIMEType,
		SampleRate: item.SampleRate,
		SizeBytes:  item.SizeBytes,
		DurationMs: item.DurationMs,
		CreatedAt:  item.CreatedAt,
		AudioURL:   fmt.Sprintf("/v1/speech/%s/audio", item.ID),
	}
}

// CreateSpeech handles POST /v1/speech. With ?download=1 the container is
// returned directly instead of JSON metadata.
func (h *Handlers) CreateSpeech(c *gin.Context) {
	var req SpeechRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, errorResponse{Error: ErrorBody{
			Code:    "invalid_request",
			Message: err.Error(),
		}})
		return
	}

	item, err := h.svc.Generate(c.Request.Context(), speech.Request{
		Text:          req.Text,
		Voice:         req.Voice,
		Format:        req.Format,
		CorrelationID: c.GetString(correlationHeader),
	})
	if err != nil {
		respondError(c, err)
		return
	}

	if c.Query("download") == "1" || c.Query("download") == "true" {
		writeAudio(c, item)
		return
	}

	c.Header("Location", toResponse(item).AudioURL)
	c.JSON(http.StatusCreated, toResponse(item))
}

// GetSpeech handles GET /v1/speech/:id
func (h *Handlers) GetSpeech(c *gin.Context) {
	item, ok := h.svc.History().Get(c.Param("id"))
	if !ok {
		respondNotFound(c, "speech")
		return
	}
	c.JSON(http.StatusOK, toResponse(item))
}

// GetSpeechAudio handles GET /v1/speech/:id/audio
func (h *Handlers) GetSpeechAudio(c *gin.Context) {
	item, ok := h.svc.History().Get(c.Param("id"))
	if !ok {
		respondNotFound(c, "speech")
		return
	}
	writeAudio(c, item)
}

func writeAudio(c *gin.Context, item *speech.Item) {
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="speech-%s.%s"`, item.ID, item.Format.Extension()))
	c.Data(http.StatusOK, item.MIMEType, item.Audio)
}

// ListHistory handles GET /v1/history
func (h *Handlers) ListHistory(c *gin.Context) {
	items := h.svc.History().List()
	out := make([]SpeechResponse, 0, len(items))
	for _, item := range items {
		out = append(out, toResponse(item))
	}
	c.JSON(http.StatusOK, gin.H{"items": out, "count": len(out)})
}

// DeleteHistoryItem handles DELETE /v1/history/:id
func (h *Handlers) DeleteHistoryItem(c *gin.Context) {
	if !h.svc.History().Delete(c.Param("id")) {
		respondNotFound(c, "speech")
		return
	}
	c.Status(http.StatusNoContent)
}

// ClearHistory handles DELETE /v1/history
func (h *Handlers) ClearHistory(c *gin.Context) {
	h.svc.History().Clear()
	c.Status(http.StatusNoContent)
}

// ListVoices handles GET /v1/voices
func (h *Handlers) ListVoices(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"voices":  tts.Voices,
		"formats": h.svc.Formats(),
	})
}
