package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lexiqai/speech-gateway/internal/api"
	"github.com/lexiqai/speech-gateway/internal/audio"
	"github.com/lexiqai/speech-gateway/internal/config"
	"github.com/lexiqai/speech-gateway/internal/observability"
	"github.com/lexiqai/speech-gateway/internal/speech"
	"github.com/lexiqai/speech-gateway/internal/tts"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		// Use fmt for fatal errors before logger is initialized
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize structured logger
	observability.InitLogger(cfg.LogLevel, cfg.LogPretty)
	logger := observability.GetLogger()

	logger.Info().
		Str("port", cfg.Port).
		Str("model", cfg.GeminiModel).
		Str("default_voice", cfg.DefaultVoice).
		Str("default_format", cfg.DefaultFormat).
		Bool("mp3_enabled", cfg.MP3Enabled).
		Bool("metrics_enabled", cfg.MetricsEnabled).
		Msg("Speech Gateway Service starting")

	var encoderFactory audio.EncoderFactory
	if cfg.MP3Enabled {
		encoderFactory = audio.NewShineEncoder
	} else {
		logger.Warn().Msg("MP3 encoding disabled; only WAV output is available")
	}
	builder := audio.NewBuilder(encoderFactory, logger)

	client := tts.NewGeminiClient(cfg, logger)

	// Validate has already accepted these
	defaultVoice, _ := tts.ParseVoice(cfg.DefaultVoice)
	defaultFormat, _ := audio.ParseFormat(cfg.DefaultFormat)

	svc := speech.NewService(client, builder, speech.NewHistory(cfg.HistorySize), speech.Options{
		DefaultVoice:  defaultVoice,
		DefaultFormat: defaultFormat,
		SampleRate:    cfg.SampleRate,
		MaxTextLength: cfg.MaxTextLength,
	}, logger)

	router := api.NewRouter(svc, api.Options{
		GinMode:        cfg.GinMode,
		MetricsEnabled: cfg.MetricsEnabled,
		ReadyChecks: map[string]observability.HealthCheckFunc{
			"gemini": svc.HealthCheck,
		},
	}, logger)

	// Synthesis of long text can take most of TTSTimeout
	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.TTSTimeout + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Info().
			Str("port", cfg.Port).
			Str("endpoint", fmt.Sprintf("http://localhost:%s/v1/speech", cfg.Port)).
			Msg("Server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("Server failed to start")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	logger.Info().Msg("Server exited gracefully")
}
