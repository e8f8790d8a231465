package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/lexiqai/speech-gateway/internal/observability"
	"github.com/lexiqai/speech-gateway/internal/speech"
)

const (
	wsReadLimit    = 64 * 1024
	wsWriteTimeout = 10 * time.Second
)

var upgrader = websocket.Upgrader{
	// Browser clients are served from other origins during development
	CheckOrigin:     func(r *http.Request) bool { return true },
	ReadBufferSize:  4096,
	WriteBufferSize: 64 * 1024,
}

// wsMessage is sent as a text frame ahead of each binary audio frame, or alone on error
type wsMessage struct {
	Type   string          `json:"type"`
	Speech *SpeechResponse `json:"speech,omitempty"`
	Error  *ErrorBody      `json:"error,omitempty"`
}

// SpeechWebsocket handles GET /v1/speech/ws. Each JSON request frame yields a
// metadata frame followed by one binary frame with the complete container.
func (h *Handlers) SpeechWebsocket(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to upgrade WebSocket connection")
		return
	}
	defer conn.Close()

	conn.SetReadLimit(wsReadLimit)

	logger, correlationID := observability.WithCorrelationID(h.logger, c.GetString(correlationHeader))
	logger.Info().Msg("WebSocket session started")

	for {
		msgType, payload, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Warn().Err(err).Msg("WebSocket read error")
			}
			logger.Info().Msg("WebSocket session ended")
			return
		}
		if msgType != websocket.TextMessage {
			if err := h.writeWSError(conn, ErrorBody{Code: "invalid_request", Message: "expected a JSON text frame"}); err != nil {
				return
			}
			continue
		}

		var req SpeechRequest
		if err := json.Unmarshal(payload, &req); err != nil {
			if err := h.writeWSError(conn, ErrorBody{Code: "invalid_request", Message: "malformed JSON request"}); err != nil {
				return
			}
			continue
		}

		item, err := h.svc.Generate(c.Request.Context(), speech.Request{
			Text:          req.Text,
			Voice:         req.Voice,
			Format:        req.Format,
			CorrelationID: correlationID,
		})
		if err != nil {
			_, body := classify(err)
			if err := h.writeWSError(conn, body); err != nil {
				return
			}
			continue
		}

		resp := toResponse(item)
		if err := h.writeWS(conn, websocket.TextMessage, wsMessage{Type: "speech", Speech: &resp}); err != nil {
			logger.Warn().Err(err).Msg("Failed to write speech metadata")
			return
		}
		if err := conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout)); err != nil {
			return
		}
		if err := conn.WriteMessage(websocket.BinaryMessage, item.Audio); err != nil {
			logger.Warn().Err(err).Msg("Failed to write audio frame")
			return
		}
	}
}

func (h *Handlers) writeWSError(conn *websocket.Conn, body ErrorBody) error {
	return h.writeWS(conn, websocket.TextMessage, wsMessage{Type: "error", Error: &body})
}

func (h *Handlers) writeWS(conn *websocket.Conn, msgType int, msg wsMessage) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	if err := conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout)); err != nil {
		return err
	}
	return conn.WriteMessage(msgType, data)
}
