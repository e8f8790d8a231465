// Package api exposes the speech service over HTTP and websocket.
package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/lexiqai/speech-gateway/internal/observability"
	"github.com/lexiqai/speech-gateway/internal/speech"
)

const correlationHeader = "X-Correlation-ID"

// Options configures the router
type Options struct {
	GinMode        string
	MetricsEnabled bool
	ReadyChecks    map[string]observability.HealthCheckFunc
}

// Handlers holds the dependencies of the HTTP handlers
type Handlers struct {
	svc    *speech.Service
	logger zerolog.Logger
}

// NewRouter configures and returns the API router with all routes and middleware
func NewRouter(svc *speech.Service, opts Options, logger zerolog.Logger) *gin.Engine {
	if opts.GinMode != "" {
		gin.SetMode(opts.GinMode)
	}

	h := &Handlers{svc: svc, logger: logger.With().Str("component", "api").Logger()}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(correlationMiddleware())
	r.Use(requestLogger(h.logger))

	r.GET("/health", gin.WrapF(observability.HealthCheckHandler()))
	r.GET("/ready", gin.WrapF(observability.ReadinessHandler(opts.ReadyChecks)))
	if opts.MetricsEnabled {
		r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}

	v1 := r.Group("/v1")
	{
		v1.GET("/voices", h.ListVoices)

		v1.POST("/speech", h.CreateSpeech)
		v1.GET("/speech/ws", h.SpeechWebsocket)
		v1.GET("/speech/:id", h.GetSpeech)
		v1.GET("/speech/:id/audio", h.GetSpeechAudio)

		v1.GET("/history", h.ListHistory)
		v1.DELETE("/history", h.ClearHistory)
		v1.DELETE("/history/:id", h.DeleteHistoryItem)
	}

	r.NoRoute(func(c *gin.Context) {
		respondNotFound(c, "route")
	})

	return r
}

// correlationMiddleware propagates or assigns a correlation ID per request
func correlationMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(correlationHeader)
		if id == "" {
			id = observability.NewCorrelationID()
		}
		c.Set(correlationHeader, id)
		c.Header(correlationHeader, id)
		c.Next()
	}
}

func requestLogger(logger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		event := logger.Info()
		if status >= http.StatusInternalServerError {
			event = logger.Error()
		} else if status >= http.StatusBadRequest {
			event = logger.Warn()
		}

		event.
			Str("method", c.Request.Method).
			Str("path", c.FullPath()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("correlation_id", c.GetString(correlationHeader)).
			Msg("HTTP request")
	}
}
