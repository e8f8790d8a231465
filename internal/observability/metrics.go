package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Synthesis metrics
	synthesisRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "speech_gateway_synthesis_requests_total",
		Help: "Total number of synthesis requests by output format and status",
	}, []string{"format", "status"})

	providerLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "speech_gateway_provider_latency_seconds",
		Help:    "Speech provider round-trip latency in seconds",
		Buckets: []float64{0.25, 0.5, 1.0, 2.0, 5.0, 10.0, 20.0, 40.0},
	})

	containerLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "speech_gateway_container_build_seconds",
		Help:    "Time spent building the audio container",
		Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1.0, 5.0},
	}, []string{"format"})

	// Audio metrics
	audioBytes = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "speech_gateway_audio_bytes_total",
		Help: "Total audio bytes processed",
	}, []string{"direction", "format"}) // direction: "pcm_in" or "container_out"

	parityPads = promauto.NewCounter(prometheus.CounterOpts{
		Name: "speech_gateway_pcm_parity_pads_total",
		Help: "Number of odd-length PCM payloads zero-padded before MP3 encoding",
	})

	// Error metrics
	errorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "speech_gateway_errors_total",
		Help: "Total number of errors",
	}, []string{"type", "component"})

	// Circuit breaker metrics
	circuitBreakerState = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "speech_gateway_circuit_breaker_state",
		Help: "Circuit breaker state (0=closed, 1=open, 2=half-open)",
	}, []string{"service"})

	historyItems = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "speech_gateway_history_items",
		Help: "Number of generated clips currently retained in history",
	})
)

// SynthesisMetrics tracks metrics for a single synthesis request
type SynthesisMetrics struct {
	format        string
	providerStart time.Time
	buildStart    time.Time
}

// NewSynthesisMetrics creates a new metrics tracker for one request
func NewSynthesisMetrics(format string) *SynthesisMetrics {
	return &SynthesisMetrics{format: format}
}

// RecordProviderStart records the start of the provider call
func (m *SynthesisMetrics) RecordProviderStart() {
	m.providerStart = time.Now()
}

// RecordProviderEnd records the provider latency
func (m *SynthesisMetrics) RecordProviderEnd() {
	if !m.providerStart.IsZero() {
		providerLatency.Observe(time.Since(m.providerStart).Seconds())
	}
}

// RecordBuildStart records the start of container building
func (m *SynthesisMetrics) RecordBuildStart() {
	m.buildStart = time.Now()
}

// RecordBuildEnd records container build latency and byte counts
func (m *SynthesisMetrics) RecordBuildEnd(pcmBytes, containerBytes int) {
	if !m.buildStart.IsZero() {
		containerLatency.WithLabelValues(m.format).Observe(time.Since(m.buildStart).Seconds())
	}
	audioBytes.WithLabelValues("pcm_in", m.format).Add(float64(pcmBytes))
	audioBytes.WithLabelValues("container_out", m.format).Add(float64(containerBytes))
}

// RecordParityPad records that an odd-length payload was padded
func (m *SynthesisMetrics) RecordParityPad() {
	parityPads.Inc()
}

// RecordResult records the final status of the request
func (m *SynthesisMetrics) RecordResult(success bool) {
	status := "success"
	if !success {
		status = "error"
	}
	synthesisRequests.WithLabelValues(m.format, status).Inc()
}

// RecordError records an error
func (m *SynthesisMetrics) RecordError(errorType, component string) {
	errorsTotal.WithLabelValues(errorType, component).Inc()
}

// UpdateCircuitBreakerState updates circuit breaker state metric
func UpdateCircuitBreakerState(service string, state int) {
	circuitBreakerState.WithLabelValues(service).Set(float64(state))
}

// SetHistoryItems updates the retained history gauge
func SetHistoryItems(n int) {
	historyItems.Set(float64(n))
}
